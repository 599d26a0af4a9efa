package fissure

import "time"

// NodesSchemaPath is the schema the solnode table is validated against.
const NodesSchemaPath = "configs/schemas/solnodes.schema.json"

// Tracker defaults
const (
	DefaultTombstoneSize = 4096
	DefaultTombstoneTTL  = 72 * time.Hour
)

// Feed defaults
const (
	DefaultFeedBaseURL  = "https://api.warframestat.us"
	DefaultFeedPlatform = "pc"
	DefaultFeedTimeout  = 10 * time.Second
	DefaultFeedInterval = 2 * time.Second
	FeedUserAgent       = "FissureBot/1.0"
)

// DefaultDeliveryConcurrency bounds parallel notification deliveries per poll.
const DefaultDeliveryConcurrency = 8

// MaxFissureTier is the highest tier (Omnia).
const MaxFissureTier = 6

// Error context messages
const (
	ErrContextReadNodes     = "failed to read solnode file"
	ErrContextParseNodes    = "failed to parse solnode file"
	ErrContextNodesSchema   = "solnode schema validation failed"
	ErrContextFeedRequest   = "failed to build feed request"
	ErrContextFeedRateLimit = "feed rate limiter"
	ErrContextFeedDecode    = "failed to decode feed response"
	ErrContextFeedStatusFmt = "feed returned HTTP %d"
	ErrContextCreateSub     = "failed to create subscription"
	ErrContextDeleteSub     = "failed to delete subscription"
	ErrContextListSubs      = "failed to list subscriptions"
	ErrMsgUnknownEraFmt     = "unknown fissure era %q"
	ErrMsgMaxTierRangeFmt   = "max tier must be between 1 and %d"
	ErrMsgUnknownKindFmt    = "unknown notification kind %q"
	ErrMsgMissingTarget     = "notification target is required"
	ErrMsgMissingUser       = "user id is required"
	ErrMsgDuplicateNode     = "duplicate solnode"
	ErrMsgEmptyNodeName     = "solnode without a name"
)

// Log messages
const (
	LogMsgNodesLoaded          = "Solnode table loaded"
	LogMsgPollSkipped          = "Fissure poll skipped, previous poll still running"
	LogMsgPollFailed           = "Fissure feed poll failed, treating as no change"
	LogMsgPollCompleted        = "Fissure poll completed"
	LogMsgFissureActivated     = "Fissure activated"
	LogMsgFissureExpired       = "Fissure expired"
	LogMsgFissureRemoved       = "Fissure removed from feed"
	LogMsgSubscriptionsFailed  = "Failed to load subscriptions for notification fan-out"
	LogMsgDeliveryFailed       = "Fissure notification delivery failed"
	LogMsgDispatchCompleted    = "Fissure notifications dispatched"
	LogMsgSubscriptionCreated  = "Fissure subscription created"
	LogMsgSubscriptionDeleted  = "Fissure subscription deleted"
	LogMsgSubscriptionsCleared = "Fissure subscriptions cleared"
	LogMsgUnknownNode          = "Feed node missing from solnode table"
	LogMsgSkippedRecord        = "Skipping malformed feed record"
)

// Log field keys
const (
	LogFieldKey          = "key"
	LogFieldNode         = "node"
	LogFieldEra          = "era"
	LogFieldMission      = "mission"
	LogFieldCategory     = "category"
	LogFieldCount        = "count"
	LogFieldNew          = "new"
	LogFieldExpired      = "expired"
	LogFieldRemoved      = "removed"
	LogFieldActive       = "active"
	LogFieldKind         = "kind"
	LogFieldTarget       = "target"
	LogFieldUserID       = "user_id"
	LogFieldSubscription = "subscription_id"
	LogFieldDelivered    = "delivered"
	LogFieldFailed       = "failed"
	LogFieldPath         = "path"
	LogFieldURL          = "url"
	LogFieldDuration     = "duration"
)
