package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/desertthunder/petstore/internal/shared"
	"github.com/urfave/cli/v3"
)

// SetupDatabase creates the config file when missing, then initializes the database and runs migrations.
func (r *Runner) SetupDatabase(ctx context.Context, cmd *cli.Command) error {
	db, config, err := r.openConfigured(cmd.String("config"), true)
	if err != nil {
		return err
	}
	defer db.Close()

	r.logger.Info("running database migrations")
	if err := shared.RunMigrationsContext(ctx, db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	r.logger.Infof("setup complete for database: %v", config.Database.Path)
	r.writePlain("%s database ready at %s\n", styles.OK("✓"), config.Database.Path)
	return nil
}

// SetupRollback rolls back the most recently applied migration.
func (r *Runner) SetupRollback(ctx context.Context, cmd *cli.Command) error {
	db, config, err := r.openConfigured(cmd.String("config"), false)
	if err != nil {
		return err
	}
	defer db.Close()

	r.logger.Warn("rolling back latest migration", "path", config.Database.Path)
	if err := shared.RollbackMigration(db); err != nil {
		return fmt.Errorf("failed to roll back migration: %w", err)
	}

	r.writePlain("%s rolled back latest migration\n", styles.Warn("!"))
	return nil
}

// openConfigured loads the config at path, optionally creating it from the template, and opens its database.
//
// Unreadable or invalid config files fall back to the runner's config.
func (r *Runner) openConfigured(path string, create bool) (*sql.DB, *shared.Config, error) {
	config := r.config

	if _, err := os.Stat(path); err == nil {
		if loaded, err := shared.LoadConfig(path); err != nil {
			r.logger.Warn("failed to load config, using defaults", "error", err)
		} else {
			config = loaded
		}
	} else if create {
		r.logger.Info("config file not found, creating from template", "path", path)
		if err := shared.CreateConfigFile(path); err != nil {
			r.logger.Warn("failed to create config file, using defaults", "error", err)
		} else {
			r.logger.Info("config file created", "path", path)
		}
	}

	r.logger.Info("initializing database", "path", config.Database.Path)

	db, err := shared.NewDatabase(config.Database.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create database: %w", err)
	}
	shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)

	return db, config, nil
}
