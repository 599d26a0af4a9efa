package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Simulation metric names
const (
	MetricNameSimulationsTotal    = "relic_simulations_total"
	MetricNameSimulationDuration  = "relic_simulation_duration_seconds"
	MetricNameSimulatedRunsTotal  = "relic_simulated_runs_total"
	MetricNamePriorityCacheTotal  = "relic_priority_cache_total"
	MetricNameSimulationQueueWait = "relic_simulation_queue_wait_seconds"
)

// Fissure metric names
const (
	MetricNameFissurePollsTotal         = "fissure_polls_total"
	MetricNameFissuresActive            = "fissures_active"
	MetricNameFissureTransitionsTotal   = "fissure_transitions_total"
	MetricNameFissureNotificationsTotal = "fissure_notifications_total"
)

// Discord metric names
const (
	MetricNameDiscordCommandsTotal         = "discord_commands_total"
	MetricNameDiscordDisplayRefreshesTotal = "discord_display_refreshes_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Simulation metric help text
const (
	HelpTextSimulationsTotal    = "Total number of relic simulations by style and result"
	HelpTextSimulationDuration  = "Relic simulation wall time in seconds"
	HelpTextSimulatedRunsTotal  = "Total number of simulated mission runs"
	HelpTextPriorityCacheTotal  = "Drop priority order cache lookups by result"
	HelpTextSimulationQueueWait = "Time a simulation waited for a worker in seconds"
)

// Fissure metric help text
const (
	HelpTextFissurePollsTotal         = "Total number of fissure feed polls by result"
	HelpTextFissuresActive            = "Number of fissures currently tracked as active"
	HelpTextFissureTransitionsTotal   = "Fissure lifecycle transitions by target state"
	HelpTextFissureNotificationsTotal = "Fissure notifications by delivery kind and result"
)

// Discord metric help text
const (
	HelpTextDiscordCommandsTotal         = "Slash commands received by command name"
	HelpTextDiscordDisplayRefreshesTotal = "Active fissure display refreshes by result"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod  = "method"
	LabelPath    = "path"
	LabelStatus  = "status"
	LabelStyle   = "style"
	LabelResult  = "result"
	LabelState   = "state"
	LabelKind    = "kind"
	LabelCommand = "command"
)

// Label values
const (
	ResultSuccess = "success"
	ResultError   = "error"
	ResultInvalid = "invalid"
	ResultTimeout = "timeout"
	ResultSkipped = "skipped"
	ResultHit     = "hit"
	ResultMiss    = "miss"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, from 1ms to 10s.
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// SimulationBuckets covers small interactive runs up to 100k-cycle batches.
var SimulationBuckets = []float64{.0005, .001, .005, .01, .05, .1, .25, .5, 1, 2.5, 5}
