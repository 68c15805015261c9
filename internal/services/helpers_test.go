package services

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"testing"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/teammate-generator/internal/prompt"
	"github.com/tbourn/teammate-generator/internal/providers"
	"github.com/tbourn/teammate-generator/internal/repo"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(1)
	}
	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

// ----- Fake adapter -----

type fakeAdapter struct {
	name providers.Name

	mu    sync.Mutex
	calls []providers.Options

	result providers.Result
	err    error
}

func (f *fakeAdapter) Name() providers.Name { return f.name }
func (f *fakeAdapter) Model() string        { return "fake/" + string(f.name) }

func (f *fakeAdapter) GenerateImage(_ context.Context, o providers.Options) (providers.Result, error) {
	f.mu.Lock()
	f.calls = append(f.calls, o)
	f.mu.Unlock()
	if f.err != nil {
		return providers.Result{}, f.err
	}
	r := f.result
	r.Provider = f.name
	r.Model = f.Model()
	if r.Prompt == "" {
		r.Prompt = o.Prompt
	}
	return r, nil
}

func (f *fakeAdapter) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func completed(url string) providers.Result {
	return providers.Result{
		ID:         "r1",
		ImageURL:   url,
		Status:     providers.StatusCompleted,
		Parameters: map[string]any{"aspect_ratio": "1:1"},
	}
}

type reqMap map[string][]string

func (m reqMap) MissingVars(p string) []string { return m[p] }

func newGeneration(t *testing.T, db *gorm.DB, missing reqMap, adapters ...providers.Adapter) *GenerationService {
	t.Helper()
	return &GenerationService{
		DB:       db,
		Registry: providers.NewRegistry(missing, "", adapters...),
		Traits:   prompt.NewGenerator(rand.NewPCG(1, 2)),
	}
}
