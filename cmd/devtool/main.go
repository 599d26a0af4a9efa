package main

import (
	"os"

	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	registry := newDefaultRegistry()
	if len(os.Args) < 2 {
		registry.PrintHelp()
		os.Exit(1)
	}

	cmd, ok := registry.Get(os.Args[1])
	if !ok {
		PrintError("Unknown command: %s", os.Args[1])
		registry.PrintHelp()
		os.Exit(1)
	}

	if err := cmd.Run(os.Args[2:]); err != nil {
		PrintError("%v", err)
		os.Exit(1)
	}
}

func newDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&MigrateCommand{})
	r.Register(&WaitForDBCommand{})
	r.Register(&SetupDBCommand{})
	r.Register(&ResetDBCommand{})
	r.Register(&HealthCheckCommand{})
	r.Register(&CheckDataCommand{})
	r.Register(&SimulateCommand{})
	r.Register(&SmokeCommand{})
	return r
}
