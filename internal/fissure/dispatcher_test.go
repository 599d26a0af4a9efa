package fissure

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/FissureBot_Go/internal/domain"
)

func dmSub(id, user string, era string) domain.FissureSubscription {
	return domain.FissureSubscription{ID: id, UserID: user, Kind: domain.NotifyDM, Target: user, Era: str(era)}
}

func TestTargets_OncePerSubscriber(t *testing.T) {
	axi := fissure("A", 4, epoch, time.Hour)
	lith := fissure("L", 1, epoch, time.Hour)
	lith.Era = "Lith"

	subs := []domain.FissureSubscription{
		dmSub("s1", "u1", "Axi"),
		{ID: "s2", UserID: "u1", Kind: domain.NotifyDM, Target: "u1", MaxTier: num(6)},
		dmSub("s3", "u2", "Lith"),
		{ID: "s4", UserID: "u3", Kind: domain.NotifyDM, Target: "u3"},
	}

	got := Targets([]domain.Fissure{axi, lith}, subs)
	pairs := map[string][]string{}
	for _, d := range got {
		pairs[d.Fissure.Key] = append(pairs[d.Fissure.Key], d.Subscriber.Target)
	}
	assert.Equal(t, []string{"u1"}, pairs["A"])
	assert.ElementsMatch(t, []string{"u1", "u2"}, pairs["L"])
}

func TestDispatch_FailureIsIsolated(t *testing.T) {
	ctx := context.Background()
	a := fissure("A", 4, epoch, time.Hour)
	b := fissure("B", 4, epoch, time.Hour)

	repo := new(MockRepository)
	repo.On("GetSubscriptions", ctx, domain.NotifyDM).Return([]domain.FissureSubscription{
		dmSub("s1", "good", "Axi"),
		dmSub("s2", "bad", "Axi"),
	}, nil)

	dm := new(MockNotifier)
	dm.On("Deliver", mock.Anything, mock.Anything, mock.MatchedBy(func(s domain.Subscriber) bool { return s.Target == "good" })).Return(nil)
	dm.On("Deliver", mock.Anything, mock.Anything, mock.MatchedBy(func(s domain.Subscriber) bool { return s.Target == "bad" })).
		Return(errors.New("cannot send messages to this user"))

	report := NewDispatcher(repo, map[domain.NotificationKind]Notifier{domain.NotifyDM: dm}, 2).
		Dispatch(ctx, []domain.Fissure{a, b})

	assert.Equal(t, Report{Delivered: 2, Failed: 2}, report)
	dm.AssertNumberOfCalls(t, "Deliver", 4)
	repo.AssertExpectations(t)
}

func TestDispatch_SubscriptionLoadFailureSkipsKind(t *testing.T) {
	ctx := context.Background()
	a := fissure("A", 4, epoch, time.Hour)

	repo := new(MockRepository)
	repo.On("GetSubscriptions", ctx, domain.NotifyDM).Return(nil, errors.New("db down"))
	repo.On("GetSubscriptions", ctx, domain.NotifyThread).Return([]domain.FissureSubscription{
		{ID: "t1", UserID: "u1", Kind: domain.NotifyThread, Target: "thread-1", Era: str("Axi")},
	}, nil)

	dm := new(MockNotifier)
	thread := new(MockNotifier)
	thread.On("Deliver", mock.Anything, a, domain.Subscriber{SubscriptionID: "t1", UserID: "u1", Kind: domain.NotifyThread, Target: "thread-1"}).Return(nil)

	report := NewDispatcher(repo, map[domain.NotificationKind]Notifier{
		domain.NotifyDM:     dm,
		domain.NotifyThread: thread,
	}, 0).Dispatch(ctx, []domain.Fissure{a})

	assert.Equal(t, Report{Delivered: 1}, report)
	dm.AssertNotCalled(t, "Deliver", mock.Anything, mock.Anything, mock.Anything)
	thread.AssertExpectations(t)
}

func TestDispatch_NothingNew(t *testing.T) {
	repo := new(MockRepository)
	report := NewDispatcher(repo, map[domain.NotificationKind]Notifier{domain.NotifyDM: new(MockNotifier)}, 1).
		Dispatch(context.Background(), nil)
	require.Equal(t, Report{}, report)
	repo.AssertNotCalled(t, "GetSubscriptions", mock.Anything, mock.Anything)
}
