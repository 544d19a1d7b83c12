package db

import (
	"fmt"

	"incident-hub/logger"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// RunMigrations applies all pending migrations from the given directory.
// Each service owns its own migrations directory and database.
func RunMigrations(migrateURL, migrationsPath string) error {
	mig, err := migrate.New("file://"+migrationsPath, migrateURL)
	if err != nil {
		return fmt.Errorf("cannot create migrate instance: %w", err)
	}
	defer mig.Close()

	if err := mig.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to run migrate up: %w", err)
	}

	logger.Log.WithField("path", migrationsPath).Info("Database migrations applied")
	return nil
}
