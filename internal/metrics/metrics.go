package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Simulation Metrics
var (
	SimulationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSimulationsTotal,
			Help: HelpTextSimulationsTotal,
		},
		[]string{LabelStyle, LabelResult},
	)

	SimulationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameSimulationDuration,
			Help:    HelpTextSimulationDuration,
			Buckets: SimulationBuckets,
		},
		[]string{LabelStyle},
	)

	SimulatedRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSimulatedRunsTotal,
			Help: HelpTextSimulatedRunsTotal,
		},
		[]string{LabelStyle},
	)

	PriorityCacheTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNamePriorityCacheTotal,
			Help: HelpTextPriorityCacheTotal,
		},
		[]string{LabelResult},
	)

	SimulationQueueWait = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    MetricNameSimulationQueueWait,
			Help:    HelpTextSimulationQueueWait,
			Buckets: SimulationBuckets,
		},
	)
)

// Fissure Metrics
var (
	FissurePollsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameFissurePollsTotal,
			Help: HelpTextFissurePollsTotal,
		},
		[]string{LabelResult},
	)

	FissuresActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameFissuresActive,
			Help: HelpTextFissuresActive,
		},
	)

	FissureTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameFissureTransitionsTotal,
			Help: HelpTextFissureTransitionsTotal,
		},
		[]string{LabelState},
	)

	FissureNotificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameFissureNotificationsTotal,
			Help: HelpTextFissureNotificationsTotal,
		},
		[]string{LabelKind, LabelResult},
	)
)

// Discord Metrics
var (
	DiscordCommandsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameDiscordCommandsTotal,
			Help: HelpTextDiscordCommandsTotal,
		},
		[]string{LabelCommand},
	)

	DiscordDisplayRefreshesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameDiscordDisplayRefreshesTotal,
			Help: HelpTextDiscordDisplayRefreshesTotal,
		},
		[]string{LabelResult},
	)
)
