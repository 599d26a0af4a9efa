package simulation

import "time"

// Cycle bounds accepted by Simulate
const (
	MinCycles = 1
	MaxCycles = 100000
)

// DefaultMaxScreens caps how many raw reward screens a verbose run keeps.
const DefaultMaxScreens = 20

// DefaultTimeout bounds a single simulation at the caller boundary.
const DefaultTimeout = 30 * time.Second

// Output formats
const (
	LineFmtPlat  = "%dx %s worth %s plat"
	LineFmtDucat = "%dx %s worth %d ducats"

	InfoFmtPlatPerHour    = "Platinum per hour: %s"
	InfoFmtDucatPerHour   = "Ducats per hour: %s"
	InfoFmtPerCycle       = "Per cycle: %s plat, %s ducats"
	InfoFmtPerRun         = "Per run: %s plat, %s ducats"
	InfoFmtTraces         = "Void traces spent: %d"
	InfoFmtTraceEff       = "Traces per platinum: %s"
	InfoMsgDucatFallback  = "No platinum earned, showing ducat rates"
	InfoFmtTotals         = "Total: %s plat, %d ducats over %d runs"
	ScreenFmtRoll         = "%s (%s, %s)"
	ScreenFmtHeader       = "Run %d:"
	ScreenFmtKept         = "kept %s"
	ScreenRollSeparator   = ", "
	ScreenKeptSeparator   = " | "
	ScreenPoolPrimaryName = "primary"
	ScreenPoolOffcycleFmt = "offcycle %d"
)

// Error context messages
const (
	ErrContextCompilePool  = "failed to build roll table"
	ErrContextLoadConfig   = "failed to load simulation config"
	ErrContextLoadOverride = "failed to load priority override"
	ErrContextSaveOverride = "failed to save priority override"
	ErrContextQueue        = "failed to queue simulation"
)

// ErrMsgNoRuns is returned when the sampler is asked for zero runs.
const ErrMsgNoRuns = "simulation needs at least one run"

// ErrMsgOverrideUnknownDropFmt rejects override entries for drops outside the pool.
const ErrMsgOverrideUnknownDropFmt = "%q is not a drop of the selected relics"

// ErrMsgOverrideRankFmt rejects nonsensical override ranks.
const ErrMsgOverrideRankFmt = "rank for %q must be positive (got %d)"

// Log messages
const (
	LogMsgSimulationStarted   = "Simulation started"
	LogMsgSimulationCompleted = "Simulation completed"
	LogMsgSimulationFailed    = "Simulation failed"
	LogMsgSimulationRejected  = "Simulation rejected"
	LogMsgOverrideSaved       = "Priority override saved"
)

// Log field keys
const (
	LogFieldUserID    = "user_id"
	LogFieldStyle     = "style"
	LogFieldCycles    = "cycles"
	LogFieldRuns      = "runs"
	LogFieldPools     = "pools"
	LogFieldSignature = "signature"
	LogFieldDuration  = "duration"
	LogFieldReason    = "reason"
	LogFieldEntries   = "entries"
)
