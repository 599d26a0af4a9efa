package discord

import "time"

// Embed colors
const (
	ColorInfo    = 0x3498db
	ColorSuccess = 0x2ecc71
	ColorWarning = 0xf39c12
	ColorFissure = 0x9b59b6
)

// FooterFissureBot is the standard embed footer.
const FooterFissureBot = "FissureBot"

// Discord limits
const (
	MaxEmbedDescription  = 4096
	MaxEmbedFields       = 25
	MaxEmbedFieldValue   = 1024
	MaxAutocompleteItems = 25
	TruncationMarker     = "\n…"
)

// CommandTimeout bounds the service call behind one slash command.
const CommandTimeout = 45 * time.Second

// DMChannelCacheSize and DMChannelCacheTTL bound the user to DM channel cache.
const (
	DMChannelCacheSize = 1024
	DMChannelCacheTTL  = 6 * time.Hour
)

// ThreadArchiveMinutes is how long an idle notification thread stays open.
const ThreadArchiveMinutes = 10080

// Command names
const (
	CmdPing        = "ping"
	CmdSimulate    = "simulate"
	CmdPriority    = "priority"
	CmdFissures    = "fissures"
	CmdSubscribe   = "fissure-subscribe"
	CmdUnsubscribe = "fissure-unsubscribe"
	CmdSimConfig   = "sim-config"
)

// Option names
const (
	OptRelics             = "relics"
	OptStyle              = "style"
	OptCycles             = "cycles"
	OptRefinement         = "refinement"
	OptOffcycle           = "offcycle"
	OptOffcycleRefinement = "offcycle-refinement"
	OptMode               = "mode"
	OptMinSetPrice        = "min-set-price"
	OptVerbose            = "verbose"
	OptMissing            = "include-missing"
	OptEra                = "era"
	OptMission            = "mission"
	OptNode               = "node"
	OptPlanet             = "planet"
	OptTileset            = "tileset"
	OptEnemy              = "enemy"
	OptCategory           = "category"
	OptMaxTier            = "max-tier"
	OptKind               = "kind"
	OptID                 = "id"
	OptAll                = "all"
	OptShowPlatPerHour    = "plat-per-hour"
	OptShowDucatPerHour   = "ducats-per-hour"
	OptShowPerCycle       = "per-cycle"
	OptShowPerRun         = "per-run"
	OptShowTraces         = "traces"
	OptShowTraceEff       = "trace-efficiency"
	OptMinutesPerMission  = "minutes-per-mission"
)

// Argument separators for pool options
const (
	RelicSeparator = ","
	PoolSeparator  = ";"
)

// Embed titles
const (
	TitleSimulation    = "🎲 Relic Simulation"
	TitlePriority      = "📜 Drop Priority"
	TitleFissures      = "🌀 Active Fissures"
	TitleNewFissure    = "🌀 New Fissure"
	TitleSubscribed    = "🔔 Subscribed"
	TitleSubscriptions = "🔔 Fissure Subscriptions"
	TitleUnsubscribed  = "🔕 Unsubscribed"
	TitleSimConfig     = "⚙️ Simulation Settings"
	TitleDisplay       = "🌀 Active Fissures"
)

// Friendly message constants for Discord responses
const (
	MsgPong                = "Pong! 🏓"
	MsgGenericError        = "❌ Something went wrong."
	MsgSimulationTimeout   = "⏳ **Simulation took too long.**\nTry fewer cycles."
	MsgSimulationBusy      = "⏳ **Simulator is busy.**\nTry again in a moment."
	MsgSubscriptionMissing = "❓ **Subscription Not Found**\nCheck the id with /fissure-subscribe."
	MsgFeedUnavailable     = "📡 **Fissure feed unavailable.**\nTry again shortly."
	MsgNoFissures          = "No fissures match."
	MsgNoSubscriptions     = "You have no fissure subscriptions."
	MsgNoRewards           = "Nothing kept."
	MsgThreadsDisabled     = "Thread notifications are not enabled on this bot."
	MsgUnsubscribeArgs     = "Give a subscription id or set all."
	MsgSubscribedFmt       = "Subscription `%s` saved. Delivery: %s."
	MsgUnsubscribedFmt     = "Removed subscription `%s`."
	MsgUnsubscribedAllFmt  = "Removed %d subscriptions."
	MsgNoMatchingRelics    = "No matching relics"
)

// Embed body formats
const (
	FmtSimHeader      = "**%s** · %d cycles · %d runs · %s priority"
	FmtSimOverridden  = " (your ranking)"
	FmtFissureLine    = "**%s %s** · %s (%s) · %s · ends %s"
	FmtFissureTitle   = "%s %s on %s"
	FmtRelativeTime   = "<t:%d:R>"
	FmtPriorityLine   = "%d. %s (%s)"
	FmtSubscriptionID = "`%s` → %s"
	FmtThreadName     = "fissures-%s"
	FmtFieldEnemy     = "%s / %s"
)

// Embed field names
const (
	FieldTotals   = "Totals"
	FieldScreens  = "Reward Screens"
	FieldSeed     = "Seed"
	FieldMission  = "Mission"
	FieldNode     = "Node"
	FieldEnemy    = "Faction / Tileset"
	FieldExpires  = "Expires"
	FieldCategory = "Category"
)

// Log messages
const (
	LogMsgBotReady          = "Bot is ready"
	LogMsgBotRunning        = "Discord bot is now running"
	LogMsgCheckingCommands  = "Checking Discord commands..."
	LogMsgForceUpdate       = "Force update enabled - replacing all commands"
	LogMsgCommandsForced    = "Commands force updated successfully"
	LogMsgCommandsUnchanged = "Commands unchanged, skipping registration"
	LogMsgCommandsChanged   = "Commands changed, updating..."
	LogMsgCommandsUpdated   = "Commands updated successfully"
	LogMsgCommandFailed     = "Command failed"
	LogMsgUnknownCommand    = "Unhandled command"
	LogMsgDeferFailed       = "Failed to send deferred response"
	LogMsgEditFailed        = "Failed to edit interaction response"
	LogMsgRespondFailed     = "Failed to respond to interaction"
	LogMsgDisplayRefreshed  = "Fissure display refreshed"
)

// Log field keys
const (
	LogFieldCommand  = "command"
	LogFieldUser     = "user"
	LogFieldCount    = "count"
	LogFieldExisting = "existing"
	LogFieldDesired  = "desired"
	LogFieldChannel  = "channel"
	LogFieldMessage  = "message"
	LogFieldGuild    = "guild"
)

// Error context messages
const (
	ErrContextSession      = "error creating Discord session"
	ErrMsgNotBound         = "bot started before commands were bound"
	ErrContextOpen         = "error opening connection"
	ErrContextFetchCmds    = "failed to fetch existing commands"
	ErrContextOverwrite    = "failed to bulk overwrite commands"
	ErrContextUpdateCmds   = "failed to update commands"
	ErrContextDMChannel    = "failed to open DM channel"
	ErrContextSendMessage  = "failed to send message"
	ErrContextPinned       = "failed to list pinned messages"
	ErrContextPin          = "failed to pin display message"
	ErrContextEditDisplay  = "failed to edit display message"
	ErrContextStartThread  = "failed to start notification thread"
	ErrMsgNotConnected     = "discord session not connected"
	ErrMsgMissingTarget    = "subscriber has no target"
	ErrMsgDisplayNoChannel = "display channel not configured"
)
