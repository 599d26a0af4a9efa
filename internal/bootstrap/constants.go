package bootstrap

// =============================================================================
// File System Permissions
// =============================================================================

const (
	// DirPermission is the standard permission for creating directories
	DirPermission = 0755

	// LogFilePermission is the permission for log files (read/write for owner, read for group/others)
	LogFilePermission = 0666
)

// =============================================================================
// Logger Configuration
// =============================================================================

const (
	// LogFileTimestampFormat is the timestamp format for log filenames (YYYY-MM-DD_HH-MM-SS)
	LogFileTimestampFormat = "2006-01-02_15-04-05"

	// LogFileNamePattern is the format string for log filenames
	LogFileNamePattern = "session_%s.log"

	// LogFileExtension is the file extension for log files
	LogFileExtension = ".log"

	// LogFileRetentionCount is the number of log files kept, including the new one
	LogFileRetentionCount = 10
)

// Log messages for logger initialization
const (
	LogMsgLoggingInitialized  = "Logging initialized"
	LogMsgStartingFissureBot  = "Starting FissureBot"
	LogMsgConfigurationLoaded = "Configuration loaded"
	LogMsgEnvWarning          = "Environment warning"
	LogMsgFailedDeleteOldLog  = "Failed to delete old log file"
	ErrMsgFailedCreateLogsDir = "failed to create logs directory"
	ErrMsgFailedOpenLogFile   = "failed to open log file"
)

// =============================================================================
// Startup
// =============================================================================

// Job names
const (
	JobNameFissurePoll = "fissure-poll"
)

// Readiness check names
const (
	ReadinessDatabase = "database"
	ReadinessDiscord  = "discord"
)

const (
	LogMsgReferenceDataLoaded = "Reference data loaded"
	LogMsgMigrationsApplied   = "Database migrations applied"
	LogMsgDiscordDisabled     = "Discord token or app id not set, bot disabled"
	LogMsgDisplayDisabled     = "Display channel not set, display refresh disabled"
	LogMsgStartingServer      = "Starting HTTP server"
	LogMsgServerFailed        = "HTTP server failed"
	LogMsgShutdownSignal      = "Shutdown signal received"

	ErrContextRelicTable    = "failed to load relic table"
	ErrContextSolnodeTable  = "failed to load solnode table"
	ErrContextDatabase      = "failed to connect to database"
	ErrContextMigrations    = "failed to apply migrations"
	ErrContextDiscordCreate = "failed to create Discord bot"
	ErrContextDiscordStart  = "failed to start Discord bot"
)

// Log field keys
const (
	LogFieldError       = "error"
	LogFieldLevel       = "level"
	LogFieldFile        = "file"
	LogFieldPort        = "port"
	LogFieldEnvironment = "environment"
	LogFieldVersion     = "version"
	LogFieldLogFormat   = "log_format"
	LogFieldDBHost      = "db_host"
	LogFieldDBPort      = "db_port"
	LogFieldDBName      = "db_name"
	LogFieldRelics      = "relics"
	LogFieldNodes       = "nodes"
	LogFieldMigrations  = "migrations"
	LogFieldWarning     = "warning"
	LogFieldComponent   = "component"
)

// =============================================================================
// Shutdown Messages
// =============================================================================

const (
	LogMsgShuttingDownServer   = "Shutting down server..."
	LogMsgServerStopped        = "Server stopped"
	LogMsgServerForcedShutdown = "Server forced to shutdown"
	LogMsgComponentStopFailed  = "Component shutdown failed"
	LogMsgDatabaseClosed       = "Database pool closed"

	// Component names for shutdown logging
	ComponentDisplayWorker = "display_worker"
	ComponentScheduler     = "scheduler"
	ComponentWorkerPool    = "worker_pool"
	ComponentDiscord       = "discord"
)
