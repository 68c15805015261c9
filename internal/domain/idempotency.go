package domain

import "time"

// Idempotency records the outcome of a previously processed POST, keyed by
// (scope, key) where scope is the route that produced it. A replay within
// the TTL returns the stored resource without re-running side effects such
// as a provider call.
type Idempotency struct {
	ID         string    `gorm:"type:varchar(36);not null;primaryKey"`
	Scope      string    `gorm:"type:varchar(255);not null;uniqueIndex:ux_idem_scope_key,priority:1"`
	Key        string    `gorm:"type:varchar(255);not null;uniqueIndex:ux_idem_scope_key,priority:2"`
	ResourceID string    `gorm:"type:varchar(64);not null"`
	Status     int       `gorm:"not null"`
	CreatedAt  time.Time `gorm:"not null;autoCreateTime"`
	ExpiresAt  time.Time `gorm:"not null;index"`
}

// TableName implements the GORM tabler interface.
func (Idempotency) TableName() string { return "idempotency" }
