package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// DisplayRefresher redraws the pinned list of active fissures.
type DisplayRefresher interface {
	RefreshDisplay(ctx context.Context) error
}

// DisplayWorker periodically refreshes the active fissure display.
type DisplayWorker struct {
	refresher DisplayRefresher
	interval  time.Duration
	ticker    *time.Ticker
	shutdown  chan struct{}
	wg        sync.WaitGroup
	once      sync.Once
}

// NewDisplayWorker creates a new display worker
func NewDisplayWorker(refresher DisplayRefresher, interval time.Duration) *DisplayWorker {
	if interval <= 0 {
		interval = DefaultDisplayInterval
	}
	return &DisplayWorker{
		refresher: refresher,
		interval:  interval,
		shutdown:  make(chan struct{}),
	}
}

// Start starts the display worker
func (w *DisplayWorker) Start() {
	slog.Info(LogMsgDisplayWorkerStarting, LogFieldInterval, w.interval)

	w.ticker = time.NewTicker(w.interval)

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()

		w.refresh()

		for {
			select {
			case <-w.ticker.C:
				w.refresh()
			case <-w.shutdown:
				slog.Info(LogMsgDisplayWorkerSignal)
				return
			}
		}
	}()
}

func (w *DisplayWorker) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), w.interval)
	defer cancel()
	if err := w.refresher.RefreshDisplay(ctx); err != nil {
		slog.Warn(LogMsgDisplayRefreshFailed, "error", err)
	}
}

// Shutdown gracefully shuts down the worker
func (w *DisplayWorker) Shutdown(ctx context.Context) error {
	slog.Info(LogMsgDisplayWorkerStopping)

	w.once.Do(func() {
		if w.ticker != nil {
			w.ticker.Stop()
		}
		close(w.shutdown)
	})

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		slog.Info(LogMsgDisplayWorkerStopped)
		return nil
	case <-ctx.Done():
		slog.Warn(LogMsgDisplayWorkerTimeout)
		return ctx.Err()
	}
}
