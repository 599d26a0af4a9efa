package repository

import (
	"context"

	"github.com/osse101/FissureBot_Go/internal/domain"
)

// Preferences persists per-user simulation preferences.
//
// Lookups of absent records return (nil, nil) so callers can fall back to
// defaults without inspecting errors.
type Preferences interface {
	// GetPriorityOverride returns the user's saved name -> rank list for a pool signature.
	GetPriorityOverride(ctx context.Context, userID, signature string) (map[string]int, error)
	SavePriorityOverride(ctx context.Context, userID, signature string, ranks map[string]int) error
	DeletePriorityOverride(ctx context.Context, userID, signature string) error

	GetSimConfig(ctx context.Context, userID string) (*domain.SimConfig, error)
	SaveSimConfig(ctx context.Context, cfg domain.SimConfig) error
}

// PreferenceStore is everything the bot persists.
type PreferenceStore interface {
	Preferences
	Subscription
}
