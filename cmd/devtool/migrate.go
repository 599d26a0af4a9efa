package main

import (
	"context"
	"fmt"

	"github.com/osse101/FissureBot_Go/internal/database"
)

type MigrateCommand struct{}

func (c *MigrateCommand) Name() string {
	return "migrate"
}

func (c *MigrateCommand) Description() string {
	return "Apply pending embedded database migrations"
}

func (c *MigrateCommand) Run(args []string) error {
	if len(args) > 0 && args[0] != "up" {
		return fmt.Errorf("unsupported subcommand %q: only up is available, use goose directly for the rest", args[0])
	}

	PrintHeader("Applying migrations...")
	ctx := context.Background()

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
