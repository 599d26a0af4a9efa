package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgMissingQueryParam     = "Missing %s query parameter"
	ErrMsgMissingPathParam      = "Missing %s path parameter"
)

// User-facing error messages derived from domain errors
const (
	ErrMsgGenericServerError  = "Something went wrong"
	ErrMsgUnknownError        = "Unknown error"
	ErrMsgNotFoundError       = "Resource not found"
	ErrMsgSubscriptionMissing = "Subscription not found"
	ErrMsgSimulationTimeout   = "Simulation took too long. Try fewer cycles."
	ErrMsgSimulationBusy      = "Simulations are unavailable right now. Please try again later."
	ErrMsgFeedUnavailable     = "The fissure feed is unavailable. Please try again later."
	ErrMsgReferenceData       = "Relic data is inconsistent. Please report this."
)

// Success messages for API responses
const (
	MsgOverrideDeleted      = "Priority override removed"
	MsgSimConfigSaved       = "Simulation settings saved"
	MsgSubscriptionDeleted  = "Subscription removed"
	MsgSubscriptionsDeleted = "Subscriptions removed"
)

// Health check values
const (
	HealthStatusOK          = "ok"
	HealthStatusUnavailable = "unavailable"
)

// Log messages
const (
	LogMsgDecodeFailed     = "Failed to decode request"
	LogMsgRequestDecoded   = "Request decoded"
	LogMsgMissingParam     = "Missing request parameter"
	LogMsgServiceError     = "Service call failed"
	LogMsgReadinessFailed  = "Readiness check failed"
	LogMsgEncodeFailed     = "Failed to encode JSON response"
	LogMsgWriteFailed      = "Failed to write response buffer"
	LogFieldAction         = "action"
	LogFieldParam          = "param"
	LogFieldCheck          = "check"
	LogFieldUserID         = "user_id"
	LogFieldSubscriptionID = "subscription_id"
)

// Request parameter names
const (
	ParamUserID         = "user_id"
	ParamSubscriptionID = "id"
)
