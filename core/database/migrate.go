package database

import (
	"campusflow/core/config"
	"campusflow/core/logger"
	"embed"
	stdErrors "errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

func newMigrator(cfg config.DatabaseConfig) (*migrate.Migrate, error) {
	src, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		return nil, fmt.Errorf("open migrations: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, URL(cfg))
	if err != nil {
		return nil, fmt.Errorf("init migrator: %w", err)
	}
	return m, nil
}

func MigrateUp(cfg config.DatabaseConfig) error {
	m, err := newMigrator(cfg)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && !stdErrors.Is(err, migrate.ErrNoChange) {
		logger.Error("Database:MigrateUp", err)
		return err
	}
	version, dirty, _ := m.Version()
	logger.Info("Database:MigrateUp:Done", "version", version, "dirty", dirty)
	return nil
}

// MigrateDown rolls back the given number of steps; steps <= 0 rolls back everything.
func MigrateDown(cfg config.DatabaseConfig, steps int) error {
	m, err := newMigrator(cfg)
	if err != nil {
		return err
	}
	defer m.Close()

	if steps > 0 {
		err = m.Steps(-steps)
	} else {
		err = m.Down()
	}
	if err != nil && !stdErrors.Is(err, migrate.ErrNoChange) {
		logger.Error("Database:MigrateDown", err)
		return err
	}
	logger.Info("Database:MigrateDown:Done", "steps", steps)
	return nil
}
