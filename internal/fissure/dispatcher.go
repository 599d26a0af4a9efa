package fissure

import (
	"context"
	"sort"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/osse101/FissureBot_Go/internal/domain"
	"github.com/osse101/FissureBot_Go/internal/logger"
	"github.com/osse101/FissureBot_Go/internal/metrics"
)

// SubscriptionSource lists stored subscriptions by delivery kind.
type SubscriptionSource interface {
	GetSubscriptions(ctx context.Context, kind domain.NotificationKind) ([]domain.FissureSubscription, error)
}

// Notifier delivers one fissure to one subscriber.
type Notifier interface {
	Deliver(ctx context.Context, f domain.Fissure, to domain.Subscriber) error
}

// Delivery is one (fissure, subscriber) pair to notify.
type Delivery struct {
	Fissure    domain.Fissure
	Subscriber domain.Subscriber
}

// Report summarizes one fan-out.
type Report struct {
	Delivered int
	Failed    int
}

// Dispatcher computes who to notify for newly active fissures and delivers
// in parallel. Failed deliveries are logged and counted, never returned.
type Dispatcher struct {
	subs      SubscriptionSource
	notifiers map[domain.NotificationKind]Notifier
	limit     int
}

// NewDispatcher creates a dispatcher. Only kinds with a notifier are fanned out.
func NewDispatcher(subs SubscriptionSource, notifiers map[domain.NotificationKind]Notifier, limit int) *Dispatcher {
	if limit <= 0 {
		limit = DefaultDeliveryConcurrency
	}
	return &Dispatcher{subs: subs, notifiers: notifiers, limit: limit}
}

// Targets pairs each fissure with every matching subscriber. A subscriber
// with several matching subscriptions appears once per fissure.
func Targets(fissures []domain.Fissure, subs []domain.FissureSubscription) []Delivery {
	var out []Delivery
	for _, f := range fissures {
		seen := make(map[domain.Subscriber]bool)
		for _, sub := range subs {
			if !Matches(sub, f) {
				continue
			}
			to := sub.Subscriber()
			key := domain.Subscriber{Kind: to.Kind, Target: to.Target}
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, Delivery{Fissure: f, Subscriber: to})
		}
	}
	return out
}

// Dispatch notifies every subscriber matching fissures and waits for all
// deliveries to finish or ctx to end.
func (d *Dispatcher) Dispatch(ctx context.Context, fissures []domain.Fissure) Report {
	if len(fissures) == 0 {
		return Report{}
	}
	log := logger.FromContext(ctx)

	kinds := make([]domain.NotificationKind, 0, len(d.notifiers))
	for kind := range d.notifiers {
		kinds = append(kinds, kind)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })

	var delivered, failed atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.limit)

	for _, kind := range kinds {
		subs, err := d.subs.GetSubscriptions(ctx, kind)
		if err != nil {
			log.Error(LogMsgSubscriptionsFailed, LogFieldKind, kind, "error", err)
			continue
		}
		notifier := d.notifiers[kind]
		for _, del := range Targets(fissures, subs) {
			g.Go(func() error {
				if err := notifier.Deliver(gctx, del.Fissure, del.Subscriber); err != nil {
					failed.Add(1)
					metrics.FissureNotificationsTotal.WithLabelValues(string(kind), metrics.ResultError).Inc()
					log.Warn(LogMsgDeliveryFailed,
						LogFieldKey, del.Fissure.Key,
						LogFieldKind, kind,
						LogFieldTarget, del.Subscriber.Target,
						LogFieldSubscription, del.Subscriber.SubscriptionID,
						"error", err)
					return nil
				}
				delivered.Add(1)
				metrics.FissureNotificationsTotal.WithLabelValues(string(kind), metrics.ResultSuccess).Inc()
				return nil
			})
		}
	}
	_ = g.Wait()

	report := Report{Delivered: int(delivered.Load()), Failed: int(failed.Load())}
	log.Info(LogMsgDispatchCompleted,
		LogFieldCount, len(fissures),
		LogFieldDelivered, report.Delivered,
		LogFieldFailed, report.Failed)
	return report
}
