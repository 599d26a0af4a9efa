package main

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/osse101/FissureBot_Go/internal/database"
)

const confirmYes = "--yes"

// SetupDBCommand creates the database when missing and migrates it.
type SetupDBCommand struct{}

func (c *SetupDBCommand) Name() string {
	return "setup-db"
}

func (c *SetupDBCommand) Description() string {
	return "Create the database if it does not exist and apply migrations"
}

func (c *SetupDBCommand) Run(args []string) error {
	ctx := context.Background()
	name := getEnv("DB_NAME", defaultDBName)
	PrintHeader(fmt.Sprintf("Setting up database %s...", name))

	conn, err := pgx.Connect(ctx, serverURL())
	if err != nil {
		return fmt.Errorf("unable to connect to postgres database: %w", err)
	}
	defer func() { _ = conn.Close(ctx) }()

	var exists bool
	if err := conn.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)", name).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check if database exists: %w", err)
	}
	if exists {
		PrintInfo("Database %s already exists", name)
	} else {
		if _, err := conn.Exec(ctx, "CREATE DATABASE "+pgx.Identifier{name}.Sanitize()); err != nil {
			return fmt.Errorf("failed to create database: %w", err)
		}
		PrintSuccess("Database %s created", name)
	}

	return (&MigrateCommand{}).Run(nil)
}

// ResetDBCommand drops and recreates the database, then migrates it.
type ResetDBCommand struct{}

func (c *ResetDBCommand) Name() string {
	return "reset-db"
}

func (c *ResetDBCommand) Description() string {
	return "Drop, recreate and migrate the database (requires --yes)"
}

func (c *ResetDBCommand) Run(args []string) error {
	if len(args) == 0 || args[0] != confirmYes {
		return fmt.Errorf("reset-db deletes every subscription and preference; rerun with %s", confirmYes)
	}

	ctx := context.Background()
	name := getEnv("DB_NAME", defaultDBName)
	PrintHeader(fmt.Sprintf("Resetting database %s...", name))

	conn, err := pgx.Connect(ctx, serverURL())
	if err != nil {
		return fmt.Errorf("unable to connect to postgres database: %w", err)
	}
	defer func() { _ = conn.Close(ctx) }()

	if _, err := conn.Exec(ctx, `
		SELECT pg_terminate_backend(pid)
		FROM pg_stat_activity
		WHERE datname = $1 AND pid <> pg_backend_pid()`, name); err != nil {
		PrintWarning("Failed to terminate connections: %v", err)
	}

	ident := pgx.Identifier{name}.Sanitize()
	if _, err := conn.Exec(ctx, "DROP DATABASE IF EXISTS "+ident); err != nil {
		return fmt.Errorf("failed to drop database: %w", err)
	}
	if _, err := conn.Exec(ctx, "CREATE DATABASE "+ident); err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	PrintSuccess("Database %s recreated", name)

	pool, err := database.NewPool(ctx, dbURL(), database.PoolConfig{MaxConns: 2})
	if err != nil {
		return err
	}
	defer pool.Close()
	version, err := database.Migrate(ctx, pool)
	if err != nil {
		return err
	}
	PrintSuccess("Schema at version %d", version)
	return nil
}

// serverURL points at the maintenance database of the same server.
func serverURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/postgres?sslmode=disable",
		getEnv("DB_USER", defaultDBUser),
		getEnv("DB_PASSWORD", defaultDBPass),
		getEnv("DB_HOST", defaultDBHost),
		getEnv("DB_PORT", defaultDBPort),
	)
}
