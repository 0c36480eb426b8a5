package integration

import (
	"os"
	"sync"
	"testing"

	"storefront-be/internal/bootstrap"
	"storefront-be/internal/config"
	"storefront-be/internal/server"
	"storefront-be/pkg/database"

	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

var (
	setupOnce sync.Once
	testDB    *gorm.DB
	testSrv   *server.Server
	setupErr  error
)

// setup connects once per package run; the container registers Prometheus
// collectors globally and cannot be built twice in one process.
func setup(t *testing.T) (*gorm.DB, *server.Server) {
	t.Helper()

	// Load .env from root (2 levels up) because tests run in package dir
	_ = godotenv.Load("../../.env")
	if os.Getenv("DB_CONNECTION_STRING") == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	setupOnce.Do(func() {
		// Keep the flow independent of external chat and cache services.
		os.Setenv("LLM_PROVIDER", "ollama")
		os.Setenv("CATALOG_CACHE", "none")
		os.Setenv("SMTP_HOST", "")

		cfg := config.Load()
		testDB, setupErr = database.NewGormDBFromDSN(cfg.Database.Connection, true)
		if setupErr != nil {
			return
		}
		testSrv = server.New(cfg, bootstrap.NewContainer(testDB, cfg))
	})
	if setupErr != nil {
		t.Fatalf("Failed to connect to DB: %v", setupErr)
	}
	return testDB, testSrv
}
