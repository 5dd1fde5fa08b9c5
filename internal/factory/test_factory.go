package factory

import (
	"github.com/mcoot/fnstats/internal/services/auth"
	"github.com/mcoot/fnstats/internal/storage/memory"
)

// TestAPIKey is the API key configured on apps built by NewTestApp
const TestAPIKey = "test-api-key"

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Memory exposes the backing store for seeding stats
	Memory *memory.Storage
}

// NewTestApp creates an App backed by in-memory storage
func NewTestApp() *TestApp {
	store := memory.New()

	app, err := newWithDependencies(store, auth.Config{APIKey: TestAPIKey})
	if err != nil {
		panic(err)
	}

	return &TestApp{
		App:    app,
		Memory: store,
	}
}
