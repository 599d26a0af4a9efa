package discord

import (
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/FissureBot_Go/internal/metrics"
)

// CommandHandler handles a slash command
type CommandHandler func(s Session, i *discordgo.InteractionCreate)

// CommandRegistry holds the registered commands
type CommandRegistry struct {
	Commands     map[string]*discordgo.ApplicationCommand
	Handlers     map[string]CommandHandler
	Autocomplete map[string]CommandHandler
}

// NewCommandRegistry creates a new registry
func NewCommandRegistry() *CommandRegistry {
	return &CommandRegistry{
		Commands:     make(map[string]*discordgo.ApplicationCommand),
		Handlers:     make(map[string]CommandHandler),
		Autocomplete: make(map[string]CommandHandler),
	}
}

// Register adds a command to the registry
func (r *CommandRegistry) Register(cmd *discordgo.ApplicationCommand, handler CommandHandler) {
	r.Commands[cmd.Name] = cmd
	r.Handlers[cmd.Name] = handler
}

// RegisterAutocomplete adds an autocomplete handler for a registered command.
func (r *CommandRegistry) RegisterAutocomplete(name string, handler CommandHandler) {
	r.Autocomplete[name] = handler
}

// Handle processes an interaction
func (r *CommandRegistry) Handle(s Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		name := i.ApplicationCommandData().Name
		h, ok := r.Handlers[name]
		if !ok {
			slog.Warn(LogMsgUnknownCommand, LogFieldCommand, name)
			return
		}
		metrics.DiscordCommandsTotal.WithLabelValues(name).Inc()
		h(s, i)
	case discordgo.InteractionApplicationCommandAutocomplete:
		if h, ok := r.Autocomplete[i.ApplicationCommandData().Name]; ok {
			h(s, i)
		}
	}
}

// RegisterCommands intelligently registers/updates commands with Discord
// Only performs updates if commands have changed to avoid rate limits
func (b *Bot) RegisterCommands(registry *CommandRegistry, forceUpdate bool) error {
	return syncCommands(b.Session, b.AppID, b.GuildID, registry, forceUpdate)
}

func syncCommands(s Session, appID, guildID string, registry *CommandRegistry, forceUpdate bool) error {
	slog.Info(LogMsgCheckingCommands, LogFieldGuild, guildID)

	existingCmds, err := s.ApplicationCommands(appID, guildID)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrContextFetchCmds, err)
	}

	desiredCmds := make([]*discordgo.ApplicationCommand, 0, len(registry.Commands))
	for _, cmd := range registry.Commands {
		desiredCmds = append(desiredCmds, cmd)
	}

	if forceUpdate {
		slog.Info(LogMsgForceUpdate, LogFieldCount, len(desiredCmds))
		if _, err := s.ApplicationCommandBulkOverwrite(appID, guildID, desiredCmds); err != nil {
			return fmt.Errorf("%s: %w", ErrContextOverwrite, err)
		}
		slog.Info(LogMsgCommandsForced)
		return nil
	}

	if commandsEqual(existingCmds, desiredCmds) {
		slog.Info(LogMsgCommandsUnchanged, LogFieldCount, len(existingCmds))
		return nil
	}

	slog.Info(LogMsgCommandsChanged,
		LogFieldExisting, len(existingCmds),
		LogFieldDesired, len(desiredCmds))

	if _, err := s.ApplicationCommandBulkOverwrite(appID, guildID, desiredCmds); err != nil {
		return fmt.Errorf("%s: %w", ErrContextUpdateCmds, err)
	}

	slog.Info(LogMsgCommandsUpdated, LogFieldCount, len(desiredCmds))
	return nil
}

// commandsEqual checks if two command sets are equivalent
func commandsEqual(existing, desired []*discordgo.ApplicationCommand) bool {
	if len(existing) != len(desired) {
		return false
	}

	existingMap := make(map[string]*discordgo.ApplicationCommand, len(existing))
	for _, cmd := range existing {
		existingMap[cmd.Name] = cmd
	}

	for _, want := range desired {
		have, ok := existingMap[want.Name]
		if !ok || !commandEqual(have, want) {
			return false
		}
	}
	return true
}

func commandEqual(a, b *discordgo.ApplicationCommand) bool {
	if a.Name != b.Name || a.Description != b.Description {
		return false
	}

	if (a.DefaultMemberPermissions == nil) != (b.DefaultMemberPermissions == nil) {
		return false
	}
	if a.DefaultMemberPermissions != nil && *a.DefaultMemberPermissions != *b.DefaultMemberPermissions {
		return false
	}

	if len(a.Options) != len(b.Options) {
		return false
	}
	for i := range a.Options {
		if !optionEqual(a.Options[i], b.Options[i]) {
			return false
		}
	}
	return true
}

func optionEqual(a, b *discordgo.ApplicationCommandOption) bool {
	if a.Type != b.Type || a.Name != b.Name || a.Description != b.Description ||
		a.Required != b.Required || a.Autocomplete != b.Autocomplete {
		return false
	}

	if len(a.Choices) != len(b.Choices) {
		return false
	}
	for i := range a.Choices {
		// Discord echoes numeric choice values back as float64.
		if a.Choices[i].Name != b.Choices[i].Name || fmt.Sprint(a.Choices[i].Value) != fmt.Sprint(b.Choices[i].Value) {
			return false
		}
	}
	return true
}
