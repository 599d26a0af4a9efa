package fissure

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/osse101/FissureBot_Go/internal/domain"
	"github.com/osse101/FissureBot_Go/internal/logger"
	"github.com/osse101/FissureBot_Go/internal/repository"
	"github.com/osse101/FissureBot_Go/internal/worker"
)

// SubscribeRequest is an unnormalized subscription pattern. Empty strings
// are wildcards.
type SubscribeRequest struct {
	UserID   string `json:"user_id" validate:"required,max=64"`
	Kind     string `json:"kind" validate:"omitempty,oneof=dm thread"`
	Target   string `json:"target" validate:"max=64"`
	Era      string `json:"era" validate:"max=32"`
	Mission  string `json:"mission" validate:"max=64"`
	Node     string `json:"node" validate:"max=64"`
	Planet   string `json:"planet" validate:"max=64"`
	Tileset  string `json:"tileset" validate:"max=64"`
	Enemy    string `json:"enemy" validate:"max=64"`
	Category string `json:"category" validate:"max=32"`
	MaxTier  *int   `json:"max_tier,omitempty"`
}

// PollResult is the outcome of one poll and fan-out.
type PollResult struct {
	Activated []domain.Fissure
	Report    Report
}

// Service defines the interface for fissure tracking and subscriptions
type Service interface {
	Poll(ctx context.Context) (*PollResult, error)
	Active() []domain.Fissure
	Subscribe(ctx context.Context, req SubscribeRequest) (*domain.FissureSubscription, error)
	ListSubscriptions(ctx context.Context, userID string) ([]domain.FissureSubscription, error)
	Unsubscribe(ctx context.Context, userID, subscriptionID string) error
	UnsubscribeAll(ctx context.Context, userID string) (int64, error)
}

// Listener observes every batch of newly active fissures, after subscriber
// delivery has finished. It must not block.
type Listener interface {
	FissuresActivated(ctx context.Context, activated []domain.Fissure)
}

type service struct {
	tracker    *Tracker
	dispatcher *Dispatcher
	repo       repository.Subscription
	listeners  []Listener
}

// NewService creates a fissure service.
func NewService(tracker *Tracker, dispatcher *Dispatcher, repo repository.Subscription, listeners ...Listener) Service {
	return &service{tracker: tracker, dispatcher: dispatcher, repo: repo, listeners: listeners}
}

// Poll runs one tracker poll and notifies subscribers of what became active.
func (s *service) Poll(ctx context.Context) (*PollResult, error) {
	activated, err := s.tracker.Poll(ctx)
	if err != nil {
		return nil, err
	}
	res := &PollResult{Activated: activated}
	if s.dispatcher != nil {
		res.Report = s.dispatcher.Dispatch(ctx, activated)
	}
	if len(activated) > 0 {
		for _, l := range s.listeners {
			l.FissuresActivated(ctx, activated)
		}
	}
	return res, nil
}

// Active returns the currently tracked fissures.
func (s *service) Active() []domain.Fissure {
	return s.tracker.Active()
}

// Subscribe normalizes and stores a subscription. An all-wildcard pattern
// is rejected.
func (s *service) Subscribe(ctx context.Context, req SubscribeRequest) (*domain.FissureSubscription, error) {
	sub, err := normalize(req)
	if err != nil {
		return nil, err
	}
	if err := s.repo.CreateSubscription(ctx, sub); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextCreateSub, err)
	}
	logger.FromContext(ctx).Info(LogMsgSubscriptionCreated,
		LogFieldUserID, sub.UserID,
		LogFieldSubscription, sub.ID,
		LogFieldKind, sub.Kind)
	return sub, nil
}

// ListSubscriptions returns a user's subscriptions.
func (s *service) ListSubscriptions(ctx context.Context, userID string) ([]domain.FissureSubscription, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, domain.NewValidationError(ErrMsgMissingUser)
	}
	subs, err := s.repo.GetUserSubscriptions(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextListSubs, err)
	}
	return subs, nil
}

// Unsubscribe deletes one of the user's subscriptions.
func (s *service) Unsubscribe(ctx context.Context, userID, subscriptionID string) error {
	if err := s.repo.DeleteSubscription(ctx, userID, subscriptionID); err != nil {
		if errors.Is(err, domain.ErrSubscriptionAbsent) {
			return err
		}
		return fmt.Errorf("%s: %w", ErrContextDeleteSub, err)
	}
	logger.FromContext(ctx).Info(LogMsgSubscriptionDeleted, LogFieldUserID, userID, LogFieldSubscription, subscriptionID)
	return nil
}

// UnsubscribeAll deletes every subscription of the user.
func (s *service) UnsubscribeAll(ctx context.Context, userID string) (int64, error) {
	if strings.TrimSpace(userID) == "" {
		return 0, domain.NewValidationError(ErrMsgMissingUser)
	}
	n, err := s.repo.DeleteUserSubscriptions(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrContextDeleteSub, err)
	}
	logger.FromContext(ctx).Info(LogMsgSubscriptionsCleared, LogFieldUserID, userID, LogFieldCount, n)
	return n, nil
}

// PollJob adapts a poll to the worker pool. An overlapping poll is not an error.
func PollJob(svc Service) worker.Job {
	return worker.JobFunc(func(ctx context.Context) error {
		_, err := svc.Poll(ctx)
		if errors.Is(err, domain.ErrPollInProgress) {
			return nil
		}
		return err
	})
}

func normalize(req SubscribeRequest) (*domain.FissureSubscription, error) {
	userID := strings.TrimSpace(req.UserID)
	if userID == "" {
		return nil, domain.NewValidationError(ErrMsgMissingUser)
	}
	kind, ok := domain.ParseNotificationKind(strings.ToLower(strings.TrimSpace(req.Kind)))
	if !ok {
		return nil, domain.NewValidationError(fmt.Sprintf(ErrMsgUnknownKindFmt, req.Kind))
	}
	target := strings.TrimSpace(req.Target)
	if target == "" {
		if kind != domain.NotifyDM {
			return nil, domain.NewValidationError(ErrMsgMissingTarget)
		}
		target = userID
	}

	title := cases.Title(language.English)
	text := func(s string) *string {
		s = strings.TrimSpace(s)
		if s == "" {
			return nil
		}
		s = title.String(s)
		return &s
	}

	sub := &domain.FissureSubscription{
		UserID:  userID,
		Kind:    kind,
		Target:  target,
		Era:     text(req.Era),
		Mission: text(req.Mission),
		Node:    text(req.Node),
		Planet:  text(req.Planet),
		Tileset: text(req.Tileset),
		Enemy:   text(req.Enemy),
	}

	if sub.Era != nil {
		if _, ok := domain.FissureTiers[*sub.Era]; !ok {
			return nil, domain.NewValidationError(fmt.Sprintf(ErrMsgUnknownEraFmt, req.Era))
		}
	}
	if c := strings.TrimSpace(req.Category); c != "" {
		category, ok := domain.ParseFissureCategory(c)
		if !ok {
			return nil, domain.NewValidationError(fmt.Sprintf(domain.ErrMsgUnknownFissureKindFmt, req.Category))
		}
		sub.Category = &category
	}
	if req.MaxTier != nil {
		if *req.MaxTier < 1 || *req.MaxTier > MaxFissureTier {
			return nil, domain.NewValidationError(fmt.Sprintf(ErrMsgMaxTierRangeFmt, MaxFissureTier))
		}
		tier := *req.MaxTier
		sub.MaxTier = &tier
	}

	if sub.IsEmpty() {
		return nil, domain.NewValidationError(domain.ErrMsgEmptySubscription)
	}
	return sub, nil
}
