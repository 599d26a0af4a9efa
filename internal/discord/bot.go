package discord

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/FissureBot_Go/internal/domain"
	"github.com/osse101/FissureBot_Go/internal/fissure"
	"github.com/osse101/FissureBot_Go/internal/simulation"
)

// Bot represents the Discord bot
type Bot struct {
	Session      *discordgo.Session
	AppID        string
	GuildID      string
	ThreadParent string
	Registry     *CommandRegistry
}

// Config holds the bot configuration
type Config struct {
	Token   string
	AppID   string
	GuildID string
	// ThreadParent is the channel /fissure-subscribe opens threads under.
	ThreadParent string
}

// Services are the backends slash commands call.
type Services struct {
	Simulation simulation.Service
	Fissures   fissure.Service
	Relics     RelicIndex
}

// New creates the bot session. Commands are attached with Bind once the
// services that need the session for delivery exist.
func New(cfg Config) (*Bot, error) {
	s, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextSession, err)
	}
	s.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsDirectMessages

	return &Bot{
		Session:      s,
		AppID:        cfg.AppID,
		GuildID:      cfg.GuildID,
		ThreadParent: cfg.ThreadParent,
	}, nil
}

// Bind registers every FissureBot command against svc.
func (b *Bot) Bind(svc Services) {
	b.Registry = DefaultRegistry(svc, b.ThreadParent)
}

// Notifiers returns the delivery channels backed by this bot's session.
func (b *Bot) Notifiers() map[domain.NotificationKind]fissure.Notifier {
	return map[domain.NotificationKind]fissure.Notifier{
		domain.NotifyDM:     NewDMNotifier(b.Session),
		domain.NotifyThread: NewThreadNotifier(b.Session),
	}
}

// DefaultRegistry builds the registry of every slash command.
func DefaultRegistry(svc Services, threadParent string) *CommandRegistry {
	r := NewCommandRegistry()
	r.Register(PingCommand())
	r.Register(SimulateCommand(svc.Simulation))
	r.RegisterAutocomplete(CmdSimulate, RelicAutocomplete(svc.Relics))
	r.Register(PriorityCommand(svc.Simulation))
	r.RegisterAutocomplete(CmdPriority, RelicAutocomplete(svc.Relics))
	r.Register(SimConfigCommand(svc.Simulation))
	r.Register(FissuresCommand(svc.Fissures))
	r.Register(SubscribeCommand(svc.Fissures, threadParent))
	r.Register(UnsubscribeCommand(svc.Fissures))
	return r
}

// Start opens the gateway connection and syncs slash commands.
func (b *Bot) Start() error {
	if b.Registry == nil {
		return errors.New(ErrMsgNotBound)
	}
	b.Session.AddHandler(b.ready)
	b.Session.AddHandler(b.interactionCreate)

	if err := b.Session.Open(); err != nil {
		return fmt.Errorf("%s: %w", ErrContextOpen, err)
	}
	if err := b.RegisterCommands(b.Registry, false); err != nil {
		_ = b.Session.Close()
		return err
	}

	slog.Info(LogMsgBotRunning, LogFieldGuild, b.GuildID)
	return nil
}

// Stop stops the bot
func (b *Bot) Stop() error {
	return b.Session.Close()
}

// Ready is a readiness check for the gateway connection.
func (b *Bot) Ready(_ context.Context) error {
	if b.Session == nil || !b.Session.DataReady {
		return errors.New(ErrMsgNotConnected)
	}
	return nil
}

func (b *Bot) ready(s *discordgo.Session, _ *discordgo.Ready) {
	slog.Info(LogMsgBotReady, LogFieldUser, s.State.User.Username)
}

func (b *Bot) interactionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if b.Registry != nil {
		b.Registry.Handle(s, i)
	}
}
