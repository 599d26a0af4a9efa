package config

import "time"

const (
	// Configuration file paths
	ConfigPathRelics   = "configs/relics/relics.json"
	ConfigPathSolnodes = "configs/fissures/solnodes.json"
)

// Defaults for optional environment variables
const (
	DefaultPort                = 8080
	DefaultLogLevel            = "info"
	DefaultLogFormat           = "text"
	DefaultEnvironment         = "dev"
	DefaultDBMaxConns          = 10
	DefaultFeedURL             = "https://api.warframestat.us"
	DefaultFeedPlatform        = "pc"
	DefaultFeedTimeout         = 10 * time.Second
	DefaultPollInterval        = 10 * time.Second
	DefaultDisplayInterval     = 60 * time.Second
	DefaultMinutesPerMission   = 4.0
	DefaultSimulationWorkers   = 4
	DefaultSimulationQueue     = 64
	DefaultSimulationTimeout   = 30 * time.Second
	DefaultDeliveryConcurrency = 8
	DefaultShutdownTimeout     = 15 * time.Second
	DefaultPriorityCacheSize   = 512
	DefaultPriorityCacheTTL    = 30 * time.Minute
	MinPollInterval            = 5 * time.Second
)

// Error messages
const (
	ErrMsgInvalidPortFmt         = "invalid PORT value: %w"
	ErrMsgInvalidPollIntervalFmt = "FISSURE_POLL_INTERVAL must be at least %s"
	ErrMsgInvalidMinutes         = "MINUTES_PER_MISSION must be positive"
	ErrMsgAPIKeyRequired         = "API_KEY environment variable must be set for security"
)
