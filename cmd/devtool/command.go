package main

import (
	"fmt"
	"io"
	"os"
	"sort"
)

const (
	appName = "fissurebot"

	defaultDBUser = "dev"
	defaultDBPass = "change_this_secure_password"
	defaultDBHost = "localhost"
	defaultDBPort = "5432"
	defaultDBName = "fissurebot"
)

// Command interface that all devtool commands must implement
type Command interface {
	Name() string
	Description() string
	Run(args []string) error
}

// Registry manages the available commands
type Registry struct {
	commands map[string]Command
	out      io.Writer
}

// NewRegistry creates a new command registry
func NewRegistry() *Registry {
	return &Registry{
		commands: make(map[string]Command),
		out:      os.Stdout,
	}
}

// Register adds a command to the registry
func (r *Registry) Register(cmd Command) {
	r.commands[cmd.Name()] = cmd
}

// Get retrieves a command by name
func (r *Registry) Get(name string) (Command, bool) {
	cmd, ok := r.commands[name]
	return cmd, ok
}

// List returns a sorted list of all registered commands
func (r *Registry) List() []Command {
	cmds := make([]Command, 0, len(r.commands))
	for _, cmd := range r.commands {
		cmds = append(cmds, cmd)
	}
	sort.Slice(cmds, func(i, j int) bool {
		return cmds[i].Name() < cmds[j].Name()
	})
	return cmds
}

// PrintHelp prints the usage information
func (r *Registry) PrintHelp() {
	fmt.Fprintf(r.out, "Usage: %s-devtool <command> [args...]\n", appName)
	fmt.Fprintln(r.out, "\nAvailable Commands:")

	cmds := r.List()
	maxLen := 0
	for _, cmd := range cmds {
		if len(cmd.Name()) > maxLen {
			maxLen = len(cmd.Name())
		}
	}

	for _, cmd := range cmds {
		padding := maxLen - len(cmd.Name()) + 2
		fmt.Fprintf(r.out, "  %s%*s%s\n", cmd.Name(), padding, "", cmd.Description())
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// dbURL prefers DB_URL and otherwise builds one from the DB_* variables.
func dbURL() string {
	if u := os.Getenv("DB_URL"); u != "" {
		return u
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		getEnv("DB_USER", defaultDBUser),
		getEnv("DB_PASSWORD", defaultDBPass),
		getEnv("DB_HOST", defaultDBHost),
		getEnv("DB_PORT", defaultDBPort),
		getEnv("DB_NAME", defaultDBName),
	)
}
