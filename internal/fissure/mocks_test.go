package fissure

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/FissureBot_Go/internal/domain"
)

// MockRepository implements repository.Subscription for testing
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetSubscriptions(ctx context.Context, kind domain.NotificationKind) ([]domain.FissureSubscription, error) {
	args := m.Called(ctx, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FissureSubscription), args.Error(1)
}

func (m *MockRepository) GetUserSubscriptions(ctx context.Context, userID string) ([]domain.FissureSubscription, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FissureSubscription), args.Error(1)
}

func (m *MockRepository) CreateSubscription(ctx context.Context, sub *domain.FissureSubscription) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}

func (m *MockRepository) DeleteSubscription(ctx context.Context, userID, subscriptionID string) error {
	args := m.Called(ctx, userID, subscriptionID)
	return args.Error(0)
}

func (m *MockRepository) DeleteUserSubscriptions(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

// MockNotifier implements Notifier for testing
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Deliver(ctx context.Context, f domain.Fissure, to domain.Subscriber) error {
	args := m.Called(ctx, f, to)
	return args.Error(0)
}
