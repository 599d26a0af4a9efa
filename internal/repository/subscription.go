package repository

import (
	"context"

	"github.com/osse101/FissureBot_Go/internal/domain"
)

// Subscription defines the interface for fissure subscription persistence
type Subscription interface {
	// GetSubscriptions lists every subscription delivered through kind.
	GetSubscriptions(ctx context.Context, kind domain.NotificationKind) ([]domain.FissureSubscription, error)
	GetUserSubscriptions(ctx context.Context, userID string) ([]domain.FissureSubscription, error)
	// CreateSubscription assigns ID and CreatedAt on success.
	CreateSubscription(ctx context.Context, sub *domain.FissureSubscription) error
	// DeleteSubscription returns domain.ErrSubscriptionAbsent when the user owns no such id.
	DeleteSubscription(ctx context.Context, userID, subscriptionID string) error
	DeleteUserSubscriptions(ctx context.Context, userID string) (int64, error)
}
