package bootstrap

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/osse101/FissureBot_Go/internal/config"
	"github.com/osse101/FissureBot_Go/internal/logger"
)

// SetupLogger installs the default logger. Output goes to stdout, and also
// to a timestamped session file when cfg.LogDir is set. The returned file
// is nil without a log dir; otherwise the caller must close it.
func SetupLogger(cfg *config.Config) (*os.File, error) {
	return setupLogger(cfg, os.Stdout, time.Now())
}

func setupLogger(cfg *config.Config, stdout io.Writer, now time.Time) (*os.File, error) {
	var (
		w       = stdout
		logFile *os.File
	)

	if cfg.LogDir != "" {
		if err := os.MkdirAll(cfg.LogDir, DirPermission); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedCreateLogsDir, err)
		}

		// Keep room for the file about to be created.
		cleanupLogs(cfg.LogDir, LogFileRetentionCount-1)

		name := filepath.Join(cfg.LogDir, fmt.Sprintf(LogFileNamePattern, now.Format(LogFileTimestampFormat)))
		f, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, LogFilePermission)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedOpenLogFile, err)
		}
		logFile = f
		w = io.MultiWriter(stdout, f)
	}

	lc := logger.NewConfig(
		cfg.LogLevel,
		cfg.LogFormat,
		logger.DefaultServiceName,
		cfg.Version,
		cfg.Environment,
		isDevEnvironment(cfg.Environment),
	)
	logger.InitLoggerWithWriter(lc, w)

	slog.Info(LogMsgLoggingInitialized, LogFieldLevel, lc.LogLevel())
	slog.Info(LogMsgStartingFissureBot,
		LogFieldEnvironment, cfg.Environment,
		LogFieldLogFormat, cfg.LogFormat,
		LogFieldVersion, cfg.Version)
	slog.Debug(LogMsgConfigurationLoaded,
		LogFieldDBHost, cfg.DBHost,
		LogFieldDBPort, cfg.DBPort,
		LogFieldDBName, cfg.DBName,
		LogFieldPort, cfg.Port)

	return logFile, nil
}

func isDevEnvironment(env string) bool {
	return env == logger.EnvironmentDev || env == "development"
}

// cleanupLogs deletes the oldest session logs until at most keep remain.
// Session file names sort by their timestamp.
func cleanupLogs(logDir string, keep int) {
	entries, err := os.ReadDir(logDir)
	if err != nil {
		return
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), LogFileExtension) {
			names = append(names, entry.Name())
		}
	}
	if len(names) <= keep {
		return
	}

	sort.Strings(names)
	for _, name := range names[:len(names)-keep] {
		if err := os.Remove(filepath.Join(logDir, name)); err != nil {
			slog.Warn(LogMsgFailedDeleteOldLog, LogFieldFile, name, LogFieldError, err)
		}
	}
}
