package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int
	LogLevel    string
	LogFormat   string
	Environment string
	Version     string
	LogDir      string // optional; session log files are written here as well as stdout
	APIKey      string // API key for authentication

	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string
	DBMaxConns int

	DiscordToken        string
	DiscordAppID        string
	DiscordGuildID      string // optional; registers commands on one guild for fast iteration
	DiscordDisplayChan  string // optional; channel whose pinned message lists active fissures
	DiscordThreadParent string // optional; channel new notification threads are created under

	RelicTablePath   string
	SolnodeTablePath string

	FeedURL         string
	FeedPlatform    string
	FeedTimeout     time.Duration
	PollInterval    time.Duration
	DisplayInterval time.Duration

	MinutesPerMission   float64
	SimulationWorkers   int
	SimulationQueue     int
	SimulationTimeout   time.Duration
	DeliveryConcurrency int
	PriorityCacheSize   int
	PriorityCacheTTL    time.Duration
	ShutdownTimeout     time.Duration
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:    getEnv("LOG_LEVEL", DefaultLogLevel),
		LogFormat:   getEnv("LOG_FORMAT", DefaultLogFormat),
		Environment: getEnv("ENVIRONMENT", DefaultEnvironment),
		Version:     getEnv("VERSION", "dev"),
		LogDir:      getEnv("LOG_DIR", ""),
		APIKey:      getEnv("API_KEY", ""),

		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBName:     getEnv("DB_NAME", "fissurebot"),
		DBMaxConns: getEnvAsInt("DB_MAX_CONNS", DefaultDBMaxConns),

		DiscordToken:        getEnv("DISCORD_TOKEN", ""),
		DiscordAppID:        getEnv("DISCORD_APP_ID", ""),
		DiscordGuildID:      getEnv("DISCORD_GUILD_ID", ""),
		DiscordDisplayChan:  getEnv("DISCORD_DISPLAY_CHANNEL_ID", ""),
		DiscordThreadParent: getEnv("DISCORD_THREAD_PARENT_ID", ""),

		RelicTablePath:   getEnv("RELIC_TABLE_PATH", ConfigPathRelics),
		SolnodeTablePath: getEnv("SOLNODE_TABLE_PATH", ConfigPathSolnodes),

		FeedURL:         getEnv("FISSURE_FEED_URL", DefaultFeedURL),
		FeedPlatform:    getEnv("FISSURE_FEED_PLATFORM", DefaultFeedPlatform),
		FeedTimeout:     getEnvAsDuration("FISSURE_FEED_TIMEOUT", DefaultFeedTimeout),
		PollInterval:    getEnvAsDuration("FISSURE_POLL_INTERVAL", DefaultPollInterval),
		DisplayInterval: getEnvAsDuration("FISSURE_DISPLAY_INTERVAL", DefaultDisplayInterval),

		MinutesPerMission:   getEnvAsFloat("MINUTES_PER_MISSION", DefaultMinutesPerMission),
		SimulationWorkers:   getEnvAsInt("SIMULATION_WORKERS", DefaultSimulationWorkers),
		SimulationQueue:     getEnvAsInt("SIMULATION_QUEUE_SIZE", DefaultSimulationQueue),
		SimulationTimeout:   getEnvAsDuration("SIMULATION_TIMEOUT", DefaultSimulationTimeout),
		DeliveryConcurrency: getEnvAsInt("DELIVERY_CONCURRENCY", DefaultDeliveryConcurrency),
		PriorityCacheSize:   getEnvAsInt("PRIORITY_CACHE_SIZE", DefaultPriorityCacheSize),
		PriorityCacheTTL:    getEnvAsDuration("PRIORITY_CACHE_TTL", DefaultPriorityCacheTTL),
		ShutdownTimeout:     getEnvAsDuration("SHUTDOWN_TIMEOUT", DefaultShutdownTimeout),
	}

	port, err := strconv.Atoi(getEnv("PORT", strconv.Itoa(DefaultPort)))
	if err != nil {
		return nil, fmt.Errorf(ErrMsgInvalidPortFmt, err)
	}
	cfg.Port = port

	// Validate API key is set
	if cfg.APIKey == "" {
		return nil, errors.New(ErrMsgAPIKeyRequired)
	}
	if cfg.PollInterval < MinPollInterval {
		return nil, fmt.Errorf(ErrMsgInvalidPollIntervalFmt, MinPollInterval)
	}
	if cfg.MinutesPerMission <= 0 {
		return nil, errors.New(ErrMsgInvalidMinutes)
	}

	return cfg, nil
}

// DiscordEnabled reports whether enough is set to start the bot.
func (c *Config) DiscordEnabled() bool {
	return c.DiscordToken != "" && c.DiscordAppID != ""
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if v, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil {
		return v
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if v, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return v
	}
	return defaultValue
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
