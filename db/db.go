package db

import (
	"database/sql"
	"fmt"

	"incident-hub/config"
	"incident-hub/logger"

	_ "github.com/lib/pq"
)

// Connect opens and pings the Postgres database described by cfg.
func Connect(cfg config.DatabaseConfig) (*sql.DB, error) {
	safeConnStr := fmt.Sprintf("host=%s port=%d user=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.User, cfg.Name)

	logger.Log.WithField("connection", safeConnStr).Info("Attempting to connect to the database")

	database, err := sql.Open("postgres", cfg.ConnString())
	if err != nil {
		logger.Log.WithError(err).Error("Failed to open database connection")
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if err = database.Ping(); err != nil {
		logger.Log.WithError(err).Error("Failed to ping database")
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Log.Info("Database connection established successfully")
	return database, nil
}
