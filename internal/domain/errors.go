package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	ErrMsgValidation       = "validation failed"
	ErrMsgDataIntegrity    = "reference data integrity error"
	ErrMsgFeedUnavailable  = "fissure feed unavailable"
	ErrMsgDelivery         = "notification delivery failed"
	ErrMsgPollInProgress   = "fissure poll already in progress"
	ErrMsgNotFound         = "not found"
	ErrMsgSubscriptionNone = "subscription not found"

	// User-facing validation messages
	ErrMsgUnknownRelicFmt       = "unknown relic %q"
	ErrMsgUnknownStyleFmt       = "unknown run style %q"
	ErrMsgUnknownRefinementFmt  = "unknown refinement %q"
	ErrMsgUnknownModeFmt        = "unknown priority mode %q"
	ErrMsgCycleRangeFmt         = "cycle count must be between %d and %d"
	ErrMsgCycleMultipleFmt      = "style %s needs a cycle count that gives a whole number of runs (got %d)"
	ErrMsgTooManyOffcycleFmt    = "style %s allows at most %d offcycle pools (got %d)"
	ErrMsgEmptyPool             = "relic pool is empty"
	ErrMsgEmptySubscription     = "subscription must set at least one field"
	ErrMsgNegativeMinSetPrice   = "minimum set price cannot be negative"
	ErrMsgUnknownFissureKindFmt = "unknown fissure category %q"
)

// Sentinel errors. Wrap with fmt.Errorf("%w: ...", domain.ErrXxx).
var (
	ErrValidation         = errors.New(ErrMsgValidation)
	ErrDataIntegrity      = errors.New(ErrMsgDataIntegrity)
	ErrFeedUnavailable    = errors.New(ErrMsgFeedUnavailable)
	ErrDelivery           = errors.New(ErrMsgDelivery)
	ErrPollInProgress     = errors.New(ErrMsgPollInProgress)
	ErrNotFound           = errors.New(ErrMsgNotFound)
	ErrSubscriptionAbsent = errors.New(ErrMsgSubscriptionNone)
)

// ValidationError carries a message meant to be shown to the end user verbatim.
type ValidationError struct {
	Msg string
}

// NewValidationError builds a ValidationError.
func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Msg: msg}
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// Is lets errors.Is(err, ErrValidation) match any ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// UserMessage extracts the user-facing message of a validation error.
func UserMessage(err error) (string, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Msg, true
	}
	return "", false
}
