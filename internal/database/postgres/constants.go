package postgres

// PostgreSQL Error Codes
const (
	// PgErrorCodeCheckViolation is raised when a row breaks a CHECK constraint
	PgErrorCodeCheckViolation = "23514"
)

// ConstraintPatternSet rejects subscriptions with every pattern field null
const ConstraintPatternSet = "fissure_subscriptions_pattern_set"

// Error Messages - Subscription Operations
const (
	ErrMsgFailedToListSubscriptions   = "failed to list subscriptions"
	ErrMsgFailedToScanSubscription    = "failed to scan subscription"
	ErrMsgFailedToInsertSubscription  = "failed to insert subscription"
	ErrMsgFailedToDeleteSubscription  = "failed to delete subscription"
	ErrMsgFailedToDeleteSubscriptions = "failed to delete user subscriptions"
	ErrMsgInvalidSubscriptionID       = "invalid subscription id"
)

// Error Messages - Preference Operations
const (
	ErrMsgFailedToGetOverride    = "failed to get priority override"
	ErrMsgFailedToSaveOverride   = "failed to save priority override"
	ErrMsgFailedToDeleteOverride = "failed to delete priority override"
	ErrMsgFailedToEncodeOverride = "failed to encode priority override"
	ErrMsgFailedToDecodeOverride = "failed to decode priority override"
	ErrMsgFailedToGetSimConfig   = "failed to get sim config"
	ErrMsgFailedToSaveSimConfig  = "failed to save sim config"
)
