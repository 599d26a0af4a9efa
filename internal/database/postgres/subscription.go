package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/FissureBot_Go/internal/domain"
	"github.com/osse101/FissureBot_Go/internal/repository"
)

const subscriptionColumns = `subscription_id, user_id, kind, target, era, mission, node, planet,
	tileset, enemy, category, max_tier, created_at`

// SubscriptionRepository implements the fissure subscription repository for PostgreSQL
type SubscriptionRepository struct {
	db *pgxpool.Pool
}

// NewSubscriptionRepository creates a new SubscriptionRepository
func NewSubscriptionRepository(db *pgxpool.Pool) repository.Subscription {
	return &SubscriptionRepository{db: db}
}

// GetSubscriptions lists every subscription of one delivery kind, oldest first
func (r *SubscriptionRepository) GetSubscriptions(ctx context.Context, kind domain.NotificationKind) ([]domain.FissureSubscription, error) {
	rows, err := r.db.Query(ctx, `SELECT `+subscriptionColumns+`
		FROM fissure_subscriptions WHERE kind = $1 ORDER BY created_at, subscription_id`, string(kind))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListSubscriptions, err)
	}
	return collectSubscriptions(rows)
}

// GetUserSubscriptions lists a user's subscriptions, oldest first
func (r *SubscriptionRepository) GetUserSubscriptions(ctx context.Context, userID string) ([]domain.FissureSubscription, error) {
	rows, err := r.db.Query(ctx, `SELECT `+subscriptionColumns+`
		FROM fissure_subscriptions WHERE user_id = $1 ORDER BY created_at, subscription_id`, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListSubscriptions, err)
	}
	return collectSubscriptions(rows)
}

// CreateSubscription inserts sub and fills in its ID and CreatedAt
func (r *SubscriptionRepository) CreateSubscription(ctx context.Context, sub *domain.FissureSubscription) error {
	id := uuid.New()
	var category *string
	if sub.Category != nil {
		c := string(*sub.Category)
		category = &c
	}

	var createdAt time.Time
	err := r.db.QueryRow(ctx, `
		INSERT INTO fissure_subscriptions
			(subscription_id, user_id, kind, target, era, mission, node, planet, tileset, enemy, category, max_tier)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at`,
		id, sub.UserID, string(sub.Kind), sub.Target,
		sub.Era, sub.Mission, sub.Node, sub.Planet, sub.Tileset, sub.Enemy, category, sub.MaxTier,
	).Scan(&createdAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == PgErrorCodeCheckViolation && pgErr.ConstraintName == ConstraintPatternSet {
			return domain.NewValidationError(domain.ErrMsgEmptySubscription)
		}
		return fmt.Errorf("%s: %w", ErrMsgFailedToInsertSubscription, err)
	}

	sub.ID = id.String()
	sub.CreatedAt = createdAt
	return nil
}

// DeleteSubscription removes one subscription owned by userID
func (r *SubscriptionRepository) DeleteSubscription(ctx context.Context, userID, subscriptionID string) error {
	id, err := uuid.Parse(subscriptionID)
	if err != nil {
		return fmt.Errorf("%w: %s", domain.ErrSubscriptionAbsent, ErrMsgInvalidSubscriptionID)
	}
	tag, err := r.db.Exec(ctx, `DELETE FROM fissure_subscriptions WHERE subscription_id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToDeleteSubscription, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSubscriptionAbsent
	}
	return nil
}

// DeleteUserSubscriptions removes every subscription of userID and returns how many went
func (r *SubscriptionRepository) DeleteUserSubscriptions(ctx context.Context, userID string) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM fissure_subscriptions WHERE user_id = $1`, userID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToDeleteSubscriptions, err)
	}
	return tag.RowsAffected(), nil
}

func collectSubscriptions(rows pgx.Rows) ([]domain.FissureSubscription, error) {
	defer rows.Close()

	subs := []domain.FissureSubscription{}
	for rows.Next() {
		var (
			sub      domain.FissureSubscription
			id       uuid.UUID
			kind     string
			category *string
		)
		if err := rows.Scan(&id, &sub.UserID, &kind, &sub.Target,
			&sub.Era, &sub.Mission, &sub.Node, &sub.Planet, &sub.Tileset, &sub.Enemy,
			&category, &sub.MaxTier, &sub.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToScanSubscription, err)
		}
		sub.ID = id.String()
		sub.Kind = domain.NotificationKind(kind)
		if category != nil {
			c := domain.FissureCategory(*category)
			sub.Category = &c
		}
		subs = append(subs, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListSubscriptions, err)
	}
	return subs, nil
}
