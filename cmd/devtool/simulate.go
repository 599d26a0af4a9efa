package main

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/osse101/FissureBot_Go/internal/config"
	"github.com/osse101/FissureBot_Go/internal/priority"
	"github.com/osse101/FissureBot_Go/internal/relic"
	"github.com/osse101/FissureBot_Go/internal/simulation"
	"github.com/osse101/FissureBot_Go/internal/validation"
)

const simulateCacheSize = 16

// SimulateCommand runs one simulation offline, without a database.
type SimulateCommand struct{}

func (c *SimulateCommand) Name() string {
	return "simulate"
}

func (c *SimulateCommand) Description() string {
	return "Run a relic simulation against the local relic table"
}

func (c *SimulateCommand) Run(args []string) error {
	fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	relicsPath := fs.String("table", getEnv("RELIC_TABLE_PATH", config.ConfigPathRelics), "relic table path")
	relics := fs.String("relics", "", "comma separated primary relics, e.g. \"Axi L4,Lith B1\"")
	refinement := fs.String("refinement", "intact", "primary refinement")
	style := fs.String("style", "solo", "run style: solo, 1b1, 2b2, 3b3, 4b4, 8b8")
	cycles := fs.Int("cycles", 10, "number of cycles")
	offcycle := fs.String("offcycle", "", "semicolon separated offcycle pools, each comma separated")
	offRefinement := fs.String("offcycle-refinement", "intact", "offcycle refinement")
	mode := fs.String("mode", "auto", "priority mode: auto, plat, ducat")
	seed := fs.Uint64("seed", 0, "seed for a reproducible run")
	verbose := fs.Bool("verbose", false, "print the first reward screens")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *relics == "" {
		return fmt.Errorf("-relics is required")
	}

	table, err := relic.Load(*relicsPath, validation.NewSchemaValidator())
	if err != nil {
		return err
	}
	resolver := priority.NewResolver(table, simulateCacheSize, 0)
	svc := simulation.NewService(table, resolver, nil, nil, simulation.Config{})

	req := simulation.Request{
		Primary: simulation.PoolSpec{Relics: splitList(*relics, ","), Refinement: *refinement},
		Style:   *style,
		Cycles:  *cycles,
		Mode:    *mode,
		Seed:    *seed,
		Verbose: verbose,
	}
	for _, pool := range splitList(*offcycle, ";") {
		req.Offcycle = append(req.Offcycle, simulation.PoolSpec{Relics: splitList(pool, ","), Refinement: *offRefinement})
	}

	run, err := svc.Simulate(context.Background(), req)
	if err != nil {
		return err
	}

	PrintHeader(fmt.Sprintf("%s · %d cycles · %d runs · %s priority", run.Style, run.Cycles, run.Runs, run.Mode))
	for _, line := range run.Aggregation.Lines {
		fmt.Println(line.String())
	}
	for _, extra := range run.Aggregation.Extra {
		PrintInfo("%s", extra)
	}
	for _, screen := range simulation.FormatScreens(run.Result.Screens) {
		fmt.Println(screen)
	}
	PrintSuccess("seed %d in %v", run.Seed, run.Elapsed)
	return nil
}

func splitList(s, sep string) []string {
	var out []string
	for _, part := range strings.Split(s, sep) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
