package postgres

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/FissureBot_Go/internal/repository"
)

type store struct {
	repository.Preferences
	repository.Subscription
}

// NewStore bundles every PostgreSQL repository over one pool
func NewStore(db *pgxpool.Pool) repository.PreferenceStore {
	return &store{
		Preferences:  NewPreferenceRepository(db),
		Subscription: NewSubscriptionRepository(db),
	}
}
