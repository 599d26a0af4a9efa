package worker

import "time"

// Pool defaults
const (
	DefaultWorkers   = 4
	DefaultQueueSize = 64
)

// DefaultDisplayInterval is how often the fissure display is refreshed.
const DefaultDisplayInterval = 60 * time.Second

// Error messages
const (
	ErrMsgPoolStopped = "worker pool stopped"
)

// ============================================================================
// Log Messages - Worker Pool
// ============================================================================

const (
	LogMsgPoolStarted       = "Worker pool started"
	LogMsgPoolStopped       = "Worker pool stopped"
	LogMsgWorkerJobFailed   = "Worker job failed"
	LogMsgWorkerJobPanicked = "Worker job panicked"
)

// ============================================================================
// Log Messages - Display Worker
// ============================================================================

const (
	LogMsgDisplayWorkerStarting = "Starting fissure display worker"
	LogMsgDisplayWorkerSignal   = "Fissure display worker shutdown signal received"
	LogMsgDisplayRefreshFailed  = "Fissure display refresh failed"
	LogMsgDisplayWorkerStopping = "Shutting down fissure display worker"
	LogMsgDisplayWorkerStopped  = "Fissure display worker shutdown complete"
	LogMsgDisplayWorkerTimeout  = "Fissure display worker shutdown timeout"
)

// Log field keys
const (
	LogFieldWorkers   = "workers"
	LogFieldQueueSize = "queue_size"
	LogFieldWorker    = "worker"
	LogFieldPanic     = "panic"
	LogFieldInterval  = "interval"
)
