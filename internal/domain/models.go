// Package domain defines the persistence models for teammates, generated
// images, generation history and visitor analytics. These types are mapped
// with GORM and form the core data layer of the teammate generator.
package domain

import (
	"time"

	"gorm.io/datatypes"
)

// Image statuses written by providers and the orchestrator.
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// User is the optional owner of teammates and images. The service never
// creates users itself; ids arriving on requests are stored as loose keys.
type User struct {
	ID        string    `json:"id"        gorm:"type:varchar(64);primaryKey"`
	Email     string    `json:"email"     gorm:"type:varchar(255);not null;uniqueIndex"`
	Name      string    `json:"name"      gorm:"type:varchar(255);not null"`
	Avatar    *string   `json:"avatar,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName returns the database table name for User.
func (User) TableName() string { return "users" }

// Teammate is a user-created profile that may carry a generated portrait.
//
// Fields:
//   - ID: UUID primary key (char(36)).
//   - UserID: optional owner key; indexed for listing.
//   - Skills / Interests: ordered string lists stored as JSON.
//   - ImageURL / ImagePrompt: set only when portrait generation completed.
//   - CompatibilityScore: reserved, never computed.
type Teammate struct {
	ID                 string         `json:"id"                 gorm:"type:char(36);primaryKey"`
	UserID             *string        `json:"userId"             gorm:"type:varchar(64);index:idx_teammates_user"`
	Name               string         `json:"name"               gorm:"type:varchar(100);not null"`
	Age                *int           `json:"age"`
	Location           *string        `json:"location"           gorm:"type:varchar(100)"`
	Bio                string         `json:"bio"                gorm:"type:text"`
	Skills             datatypes.JSON `json:"skills"`
	Interests          datatypes.JSON `json:"interests"`
	Category           string         `json:"category"           gorm:"type:varchar(64);not null;index:idx_teammates_category"`
	ImageURL           *string        `json:"imageUrl"`
	ImagePrompt        *string        `json:"imagePrompt"        gorm:"type:text"`
	CompatibilityScore *float64       `json:"compatibilityScore"`
	CreatedAt          time.Time      `json:"createdAt"`
	UpdatedAt          time.Time      `json:"updatedAt"`
}

// TableName returns the database table name for Teammate.
func (Teammate) TableName() string { return "teammates" }

// GeneratedImage is the stored record of one successful generation.
// Rows are written with status completed and never updated afterwards.
//
// Fields:
//   - ProviderID: upstream prediction/request id (replicate_id column).
//   - Model / Provider: which backend produced the image.
//   - Parameters: options used for the call, including the resolved seed.
type GeneratedImage struct {
	ID           string         `json:"id"                     gorm:"type:char(36);primaryKey"`
	UserID       *string        `json:"userId"                 gorm:"type:varchar(64);index:idx_images_user"`
	TeammateID   *string        `json:"teammateId"             gorm:"type:varchar(64);index:idx_images_teammate"`
	Prompt       string         `json:"prompt"                 gorm:"type:text;not null"`
	ImageURL     string         `json:"imageUrl"               gorm:"type:text;not null"`
	ProviderID   *string        `json:"replicateId"            gorm:"column:replicate_id;type:varchar(128)"`
	Model        string         `json:"model"                  gorm:"type:varchar(128);not null;default:'ideogram-ai/ideogram-v3-turbo'"`
	Provider     string         `json:"provider"               gorm:"type:varchar(32);index:idx_images_provider"`
	Parameters   datatypes.JSON `json:"parameters"`
	Status       string         `json:"status"                 gorm:"type:varchar(16);not null;default:'pending'"`
	ErrorMessage *string        `json:"errorMessage,omitempty" gorm:"type:text"`
	CreatedAt    time.Time      `json:"createdAt"              gorm:"index:idx_images_created"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

// TableName returns the database table name for GeneratedImage.
func (GeneratedImage) TableName() string { return "generated_images" }

// UserPreference holds per-user generation defaults.
type UserPreference struct {
	ID                  string    `json:"id"                  gorm:"type:char(36);primaryKey"`
	UserID              string    `json:"userId"              gorm:"type:varchar(64);uniqueIndex"`
	PreferredImageStyle string    `json:"preferredImageStyle" gorm:"type:varchar(32);default:'realistic'"`
	DefaultCategory     *string   `json:"defaultCategory"     gorm:"type:varchar(64)"`
	AutoGenerateImages  bool      `json:"autoGenerateImages"  gorm:"default:true"`
	ImageQuality        string    `json:"imageQuality"        gorm:"type:varchar(16);default:'standard'"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

// TableName returns the database table name for UserPreference.
func (UserPreference) TableName() string { return "user_preferences" }

// GenerationHistory is the append-only audit row for one generation attempt,
// written whether or not the attempt succeeded.
type GenerationHistory struct {
	ID             string    `json:"id"             gorm:"type:char(36);primaryKey"`
	UserID         string    `json:"userId"         gorm:"type:varchar(64);index:idx_history_user"`
	Prompt         string    `json:"prompt"         gorm:"type:text;not null"`
	Category       *string   `json:"category"       gorm:"type:varchar(64)"`
	Style          string    `json:"style"          gorm:"type:varchar(32)"`
	Provider       *string   `json:"provider"       gorm:"type:varchar(32)"`
	GenerationTime int       `json:"generationTime"`
	Success        bool      `json:"success"        gorm:"not null"`
	ErrorType      *string   `json:"errorType"      gorm:"type:text"`
	CreatedAt      time.Time `json:"createdAt"`
}

// TableName returns the database table name for GenerationHistory.
func (GenerationHistory) TableName() string { return "image_generation_history" }

// VisitorTracking is one deduplicated page visit (at most one per visitor
// per UTC day).
type VisitorTracking struct {
	ID        string    `json:"id"        gorm:"type:char(36);primaryKey"`
	VisitorID string    `json:"visitorId" gorm:"type:varchar(128);not null;index:idx_visits_visitor_time,priority:1"`
	SessionID string    `json:"sessionId" gorm:"type:varchar(128);not null"`
	IPAddress *string   `json:"ipAddress" gorm:"type:varchar(64)"`
	UserAgent *string   `json:"userAgent" gorm:"type:text"`
	Referrer  *string   `json:"referrer"  gorm:"type:text"`
	Page      string    `json:"page"      gorm:"type:varchar(255);not null"`
	VisitTime time.Time `json:"visitTime" gorm:"not null;index:idx_visits_visitor_time,priority:2;index:idx_visits_time"`
}

// TableName returns the database table name for VisitorTracking.
func (VisitorTracking) TableName() string { return "visitor_tracking" }

// UserSession tracks a browser session; IsActive is cleared by the sweeper
// once LastActivity falls outside the session timeout.
type UserSession struct {
	ID           string    `json:"id"           gorm:"type:char(36);primaryKey"`
	SessionID    string    `json:"sessionId"    gorm:"type:varchar(128);not null;uniqueIndex"`
	VisitorID    string    `json:"visitorId"    gorm:"type:varchar(128);not null"`
	StartTime    time.Time `json:"startTime"    gorm:"not null"`
	LastActivity time.Time `json:"lastActivity" gorm:"not null;index:idx_sessions_activity"`
	IPAddress    *string   `json:"ipAddress"    gorm:"type:varchar(64)"`
	UserAgent    *string   `json:"userAgent"    gorm:"type:text"`
	IsActive     bool      `json:"isActive"     gorm:"not null;default:true"`
}

// TableName returns the database table name for UserSession.
func (UserSession) TableName() string { return "user_sessions" }
