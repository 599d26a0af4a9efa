package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/FissureBot_Go/internal/config"
	"github.com/osse101/FissureBot_Go/internal/database"
	"github.com/osse101/FissureBot_Go/internal/database/postgres"
	"github.com/osse101/FissureBot_Go/internal/discord"
	"github.com/osse101/FissureBot_Go/internal/domain"
	"github.com/osse101/FissureBot_Go/internal/fissure"
	"github.com/osse101/FissureBot_Go/internal/handler"
	"github.com/osse101/FissureBot_Go/internal/priority"
	"github.com/osse101/FissureBot_Go/internal/relic"
	"github.com/osse101/FissureBot_Go/internal/scheduler"
	"github.com/osse101/FissureBot_Go/internal/server"
	"github.com/osse101/FissureBot_Go/internal/simulation"
	"github.com/osse101/FissureBot_Go/internal/sse"
	"github.com/osse101/FissureBot_Go/internal/validation"
	"github.com/osse101/FissureBot_Go/internal/worker"
)

// App is the wired application.
type App struct {
	cfg *config.Config

	DB         *pgxpool.Pool
	Pool       *worker.Pool
	Scheduler  *scheduler.Scheduler
	Simulation simulation.Service
	Fissures   fissure.Service
	Server     *server.Server
	Bot        *discord.Bot
	Display    *worker.DisplayWorker
	Stream     *sse.Hub
}

// Build loads reference data, connects to PostgreSQL and wires every
// service. Nothing is started yet.
func Build(ctx context.Context, cfg *config.Config) (*App, error) {
	schemas := validation.NewSchemaValidator()

	relics, err := relic.Load(cfg.RelicTablePath, schemas)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextRelicTable, err)
	}
	nodes, err := fissure.LoadNodes(cfg.SolnodeTablePath, schemas)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextSolnodeTable, err)
	}
	slog.Info(LogMsgReferenceDataLoaded, LogFieldRelics, cfg.RelicTablePath, LogFieldNodes, cfg.SolnodeTablePath)

	db, err := database.NewPool(ctx, cfg.GetDBConnString(), database.PoolConfig{MaxConns: cfg.DBMaxConns})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextDatabase, err)
	}
	applied, err := database.Migrate(ctx, db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: %w", ErrContextMigrations, err)
	}
	slog.Info(LogMsgMigrationsApplied, LogFieldMigrations, applied)

	app := &App{cfg: cfg, DB: db}
	store := postgres.NewStore(db)

	app.Pool = worker.NewPool(cfg.SimulationWorkers, cfg.SimulationQueue)
	app.Scheduler = scheduler.New(app.Pool)

	resolver := priority.NewResolver(relics, cfg.PriorityCacheSize, cfg.PriorityCacheTTL)
	app.Simulation = simulation.NewService(relics, resolver, store, app.Pool, simulation.Config{
		Timeout:           cfg.SimulationTimeout,
		MinutesPerMission: cfg.MinutesPerMission,
	})

	notifiers := map[domain.NotificationKind]fissure.Notifier{}
	if cfg.DiscordEnabled() {
		app.Bot, err = discord.New(discord.Config{
			Token:        cfg.DiscordToken,
			AppID:        cfg.DiscordAppID,
			GuildID:      cfg.DiscordGuildID,
			ThreadParent: cfg.DiscordThreadParent,
		})
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("%s: %w", ErrContextDiscordCreate, err)
		}
		notifiers = app.Bot.Notifiers()
	} else {
		slog.Warn(LogMsgDiscordDisabled)
	}

	feed := fissure.NewHTTPFeed(fissure.FeedConfig{
		BaseURL:  cfg.FeedURL,
		Platform: cfg.FeedPlatform,
		Timeout:  cfg.FeedTimeout,
	}, nodes)
	tracker := fissure.NewTracker(feed, fissure.TrackerConfig{})
	dispatcher := fissure.NewDispatcher(store, notifiers, cfg.DeliveryConcurrency)
	app.Stream = sse.NewHub()
	app.Fissures = fissure.NewService(tracker, dispatcher, store, sse.NewPublisher(app.Stream))

	if app.Bot != nil {
		app.Bot.Bind(discord.Services{
			Simulation: app.Simulation,
			Fissures:   app.Fissures,
			Relics:     relics,
		})
		if cfg.DiscordDisplayChan != "" {
			display := discord.NewDisplay(app.Bot.Session, app.Fissures, cfg.DiscordDisplayChan)
			app.Display = worker.NewDisplayWorker(display, cfg.DisplayInterval)
		} else {
			slog.Info(LogMsgDisplayDisabled)
		}
	}

	app.Server = server.NewServer(cfg.Port, server.Deps{
		APIKey:     cfg.APIKey,
		Version:    cfg.Version,
		Detector:   server.DefaultDetectorConfig(),
		Simulation: app.Simulation,
		Fissures:   app.Fissures,
		Readiness:  app.readinessChecks(),
		Stream:     app.Stream,
	})

	return app, nil
}

func (a *App) readinessChecks() []handler.ReadinessCheck {
	checks := []handler.ReadinessCheck{{Name: ReadinessDatabase, Check: a.DB.Ping}}
	if a.Bot != nil {
		checks = append(checks, handler.ReadinessCheck{Name: ReadinessDiscord, Check: a.Bot.Ready})
	}
	return checks
}

// Run starts every component and blocks until ctx is cancelled or the HTTP
// server fails, then shuts everything down within cfg.ShutdownTimeout.
func (a *App) Run(ctx context.Context) error {
	a.Stream.Start()
	a.Pool.Start()
	a.Scheduler.ScheduleNow(JobNameFissurePoll, a.cfg.PollInterval, fissure.PollJob(a.Fissures))

	if a.Bot != nil {
		if err := a.Bot.Start(); err != nil {
			a.shutdown()
			return fmt.Errorf("%s: %w", ErrContextDiscordStart, err)
		}
	}
	if a.Display != nil {
		a.Display.Start()
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info(LogMsgStartingServer, LogFieldPort, a.cfg.Port)
		if err := a.Server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	var runErr error
	select {
	case <-ctx.Done():
		slog.Info(LogMsgShutdownSignal)
	case err, ok := <-serverErr:
		if ok {
			slog.Error(LogMsgServerFailed, LogFieldError, err)
			runErr = err
		}
	}

	a.shutdown()
	return runErr
}

func (a *App) shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	GracefulShutdown(ctx, a.components())
}

// components leaves disabled parts as nil interfaces.
func (a *App) components() ShutdownComponents {
	c := ShutdownComponents{
		Stream:     a.Stream,
		Server:     a.Server,
		Scheduler:  a.Scheduler,
		WorkerPool: a.Pool,
		Database:   a.DB,
	}
	if a.Display != nil {
		c.DisplayWorker = a.Display
	}
	if a.Bot != nil {
		c.Bot = a.Bot
	}
	return c
}
