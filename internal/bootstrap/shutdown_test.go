package bootstrap

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type recorder struct {
	calls []string
}

type fakeServer struct {
	r   *recorder
	err error
}

func (f *fakeServer) Stop(context.Context) error {
	f.r.calls = append(f.r.calls, "server")
	return f.err
}

type fakeDisplay struct{ r *recorder }

func (f *fakeDisplay) Shutdown(context.Context) error {
	f.r.calls = append(f.r.calls, "display")
	return errors.New("timeout")
}

type fakeStopper struct {
	r    *recorder
	name string
}

func (f *fakeStopper) Stop() { f.r.calls = append(f.r.calls, f.name) }

type fakeBot struct{ r *recorder }

func (f *fakeBot) Stop() error {
	f.r.calls = append(f.r.calls, "bot")
	return nil
}

type fakeDB struct{ r *recorder }

func (f *fakeDB) Ping(context.Context) error { return nil }
func (f *fakeDB) Close()                     { f.r.calls = append(f.r.calls, "db") }

func TestGracefulShutdown_Order(t *testing.T) {
	r := &recorder{}
	GracefulShutdown(context.Background(), ShutdownComponents{
		Stream:        &fakeStopper{r: r, name: "stream"},
		Server:        &fakeServer{r: r, err: errors.New("forced")},
		DisplayWorker: &fakeDisplay{r: r},
		Scheduler:     &fakeStopper{r: r, name: "scheduler"},
		WorkerPool:    &fakeStopper{r: r, name: "pool"},
		Bot:           &fakeBot{r: r},
		Database:      &fakeDB{r: r},
	})

	// Failures are logged and the sequence keeps going.
	assert.Equal(t, []string{"stream", "server", "display", "scheduler", "pool", "bot", "db"}, r.calls)
}

func TestGracefulShutdown_SkipsMissing(t *testing.T) {
	r := &recorder{}
	assert.NotPanics(t, func() {
		GracefulShutdown(context.Background(), ShutdownComponents{
			WorkerPool: &fakeStopper{r: r, name: "pool"},
		})
	})
	assert.Equal(t, []string{"pool"}, r.calls)
}
