package bootstrap

import (
	"context"
	"log/slog"

	"github.com/osse101/FissureBot_Go/internal/database"
)

// ShutdownComponents holds all components that need graceful shutdown.
// Nil fields are skipped.
type ShutdownComponents struct {
	Stream        Stopper
	Server        ContextStopper
	DisplayWorker shutdownable
	Scheduler     Stopper
	WorkerPool    Stopper
	Bot           closer
	Database      database.Pool
}

// ContextStopper is a component stopped within a deadline.
type ContextStopper interface {
	Stop(ctx context.Context) error
}

// Stopper is a component whose Stop blocks until it is drained.
type Stopper interface {
	Stop()
}

type shutdownable interface {
	Shutdown(ctx context.Context) error
}

type closer interface {
	Stop() error
}

// GracefulShutdown performs graceful shutdown of all application components.
// It shuts down in dependency order:
// 1. Event stream hub, then the HTTP server (open streams would hold Shutdown)
// 2. Display worker and scheduler (stop producing new jobs)
// 3. Worker pool (finish in-flight polls and simulations)
// 4. Discord session (deliveries are done), then the database pool
//
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	stopAll(components.Stream)

	if components.Server != nil {
		if err := components.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, LogFieldError, err)
		}
	}

	if components.DisplayWorker != nil {
		if err := components.DisplayWorker.Shutdown(ctx); err != nil {
			logStopFailed(ComponentDisplayWorker, err)
		}
	}

	stopAll(components.Scheduler, components.WorkerPool)

	if components.Bot != nil {
		if err := components.Bot.Stop(); err != nil {
			logStopFailed(ComponentDiscord, err)
		}
	}

	if components.Database != nil {
		components.Database.Close()
		slog.Info(LogMsgDatabaseClosed)
	}

	slog.Info(LogMsgServerStopped)
}

func stopAll(stoppers ...Stopper) {
	for _, s := range stoppers {
		if s != nil {
			s.Stop()
		}
	}
}

func logStopFailed(component string, err error) {
	slog.Error(LogMsgComponentStopFailed, LogFieldComponent, component, LogFieldError, err)
}
