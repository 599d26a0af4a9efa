package fissure

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/FissureBot_Go/internal/domain"
	"github.com/osse101/FissureBot_Go/internal/logger"
	"github.com/osse101/FissureBot_Go/internal/metrics"
)

// Feed returns the current snapshot of active fissures.
type Feed interface {
	Fetch(ctx context.Context) ([]domain.Fissure, error)
}

// TrackerConfig tunes a Tracker. Zero values take the defaults.
type TrackerConfig struct {
	TombstoneSize int
	TombstoneTTL  time.Duration
	// Now is the clock used for expiry checks.
	Now func() time.Time
}

// Tracker diffs successive feed snapshots and reports each fissure key at
// most once, on its Unseen to Active transition. Keys that leave Active are
// tombstoned and never reported again.
type Tracker struct {
	feed Feed
	now  func() time.Time

	// pollMu serializes polls; TryLock makes concurrent polls skip.
	pollMu sync.Mutex

	mu         sync.RWMutex
	active     map[string]domain.Fissure
	tombstones *expirable.LRU[string, domain.FissureState]
}

// NewTracker creates a tracker reading from feed.
func NewTracker(feed Feed, cfg TrackerConfig) *Tracker {
	if cfg.TombstoneSize <= 0 {
		cfg.TombstoneSize = DefaultTombstoneSize
	}
	if cfg.TombstoneTTL <= 0 {
		cfg.TombstoneTTL = DefaultTombstoneTTL
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Tracker{
		feed:       feed,
		now:        cfg.Now,
		active:     make(map[string]domain.Fissure),
		tombstones: expirable.NewLRU[string, domain.FissureState](cfg.TombstoneSize, nil, cfg.TombstoneTTL),
	}
}

// Poll fetches one snapshot and returns the newly active fissures sorted by
// tier then expiry. A feed failure is logged and treated as no change. A poll
// started while another is running returns domain.ErrPollInProgress.
func (t *Tracker) Poll(ctx context.Context) ([]domain.Fissure, error) {
	if !t.pollMu.TryLock() {
		metrics.FissurePollsTotal.WithLabelValues(metrics.ResultSkipped).Inc()
		logger.FromContext(ctx).Warn(LogMsgPollSkipped)
		return nil, domain.ErrPollInProgress
	}
	defer t.pollMu.Unlock()

	log := logger.FromContext(ctx)
	start := time.Now()

	snapshot, err := t.feed.Fetch(ctx)
	if err != nil {
		metrics.FissurePollsTotal.WithLabelValues(metrics.ResultError).Inc()
		log.Warn(LogMsgPollFailed, "error", err)
		return nil, nil
	}

	now := t.now()
	present := make(map[string]domain.Fissure, len(snapshot))
	for _, f := range snapshot {
		if f.Key == "" {
			log.Debug(LogMsgSkippedRecord, LogFieldNode, f.Node)
			continue
		}
		present[f.Key] = f
	}

	t.mu.Lock()
	var removed, expired int
	for key, tracked := range t.active {
		latest, ok := present[key]
		switch {
		case !ok:
			t.retire(key, domain.FissureRemoved)
			removed++
			log.Debug(LogMsgFissureRemoved, LogFieldKey, key, LogFieldNode, tracked.Node)
		case latest.ExpiredAt(now):
			t.retire(key, domain.FissureExpired)
			expired++
			log.Debug(LogMsgFissureExpired, LogFieldKey, key, LogFieldNode, tracked.Node)
		default:
			t.active[key] = latest
		}
	}

	var fresh []domain.Fissure
	for key, f := range present {
		if _, tracked := t.active[key]; tracked {
			continue
		}
		if t.tombstones.Contains(key) {
			continue
		}
		if f.ExpiredAt(now) {
			// Never reported, but remembered so it cannot surface later.
			t.tombstones.Add(key, domain.FissureExpired)
			continue
		}
		t.active[key] = f
		fresh = append(fresh, f)
		metrics.FissureTransitionsTotal.WithLabelValues(string(domain.FissureActive)).Inc()
		log.Info(LogMsgFissureActivated,
			LogFieldKey, key,
			LogFieldEra, f.Era,
			LogFieldMission, f.Mission,
			LogFieldNode, f.Node,
			LogFieldCategory, f.Category)
	}
	activeCount := len(t.active)
	t.mu.Unlock()

	sortFissures(fresh)
	metrics.FissuresActive.Set(float64(activeCount))
	metrics.FissurePollsTotal.WithLabelValues(metrics.ResultSuccess).Inc()
	log.Debug(LogMsgPollCompleted,
		LogFieldNew, len(fresh),
		LogFieldExpired, expired,
		LogFieldRemoved, removed,
		LogFieldActive, activeCount,
		LogFieldDuration, time.Since(start))
	return fresh, nil
}

// retire moves key to a terminal state. Callers hold mu.
func (t *Tracker) retire(key string, state domain.FissureState) {
	delete(t.active, key)
	t.tombstones.Add(key, state)
	metrics.FissureTransitionsTotal.WithLabelValues(string(state)).Inc()
}

// State reports the lifecycle state of key.
func (t *Tracker) State(key string) domain.FissureState {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if _, ok := t.active[key]; ok {
		return domain.FissureActive
	}
	if state, ok := t.tombstones.Peek(key); ok {
		return state
	}
	return domain.FissureUnseen
}

// Active returns the tracked fissures sorted by tier then expiry.
func (t *Tracker) Active() []domain.Fissure {
	t.mu.RLock()
	out := make([]domain.Fissure, 0, len(t.active))
	for _, f := range t.active {
		out = append(out, f)
	}
	t.mu.RUnlock()
	sortFissures(out)
	return out
}

func sortFissures(fs []domain.Fissure) {
	sort.Slice(fs, func(i, j int) bool {
		a, b := fs[i], fs[j]
		if a.Tier != b.Tier {
			return a.Tier < b.Tier
		}
		if ea, eb := a.Expiry(), b.Expiry(); !ea.Equal(eb) {
			return ea.Before(eb)
		}
		return a.Key < b.Key
	})
}
