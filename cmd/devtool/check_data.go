package main

import (
	"flag"

	"github.com/osse101/FissureBot_Go/internal/config"
	"github.com/osse101/FissureBot_Go/internal/fissure"
	"github.com/osse101/FissureBot_Go/internal/relic"
	"github.com/osse101/FissureBot_Go/internal/validation"
)

type CheckDataCommand struct{}

func (c *CheckDataCommand) Name() string {
	return "check-data"
}

func (c *CheckDataCommand) Description() string {
	return "Validate the relic and solnode tables against their schemas"
}

func (c *CheckDataCommand) Run(args []string) error {
	fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	relicsPath := fs.String("relics", getEnv("RELIC_TABLE_PATH", config.ConfigPathRelics), "relic table path")
	nodesPath := fs.String("solnodes", getEnv("SOLNODE_TABLE_PATH", config.ConfigPathSolnodes), "solnode table path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	PrintHeader("Checking reference data...")
	schemas := validation.NewSchemaValidator()

	table, err := relic.Load(*relicsPath, schemas)
	if err != nil {
		return err
	}
	relics, items, sets := table.Counts()
	PrintSuccess("%s: %d relics, %d items, %d sets", *relicsPath, relics, items, sets)

	nodes, err := fissure.LoadNodes(*nodesPath, schemas)
	if err != nil {
		return err
	}
	PrintSuccess("%s: %d nodes", *nodesPath, nodes.Len())
	return nil
}
