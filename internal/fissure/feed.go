package fissure

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/time/rate"

	"github.com/osse101/FissureBot_Go/internal/domain"
	"github.com/osse101/FissureBot_Go/internal/logger"
)

// FeedConfig configures the HTTP feed.
type FeedConfig struct {
	BaseURL  string
	Platform string
	Timeout  time.Duration
	// MinInterval is the minimum spacing between two requests.
	MinInterval time.Duration
}

// feedRecord is one entry of the /{platform}/fissures response.
type feedRecord struct {
	ID          string    `json:"id"`
	Activation  time.Time `json:"activation"`
	Expiry      time.Time `json:"expiry"`
	Node        string    `json:"node"`
	MissionType string    `json:"missionType"`
	Enemy       string    `json:"enemy"`
	Tier        string    `json:"tier"`
	TierNum     int       `json:"tierNum"`
	Expired     bool      `json:"expired"`
	IsStorm     bool      `json:"isStorm"`
	IsHard      bool      `json:"isHard"`
}

// HTTPFeed polls a warframestat-compatible fissure endpoint.
type HTTPFeed struct {
	url        string
	httpClient *http.Client
	limiter    *rate.Limiter
	nodes      *Nodes
}

// NewHTTPFeed creates a feed client. nodes may be nil, in which case
// tileset stays empty and enemy comes from the feed alone.
func NewHTTPFeed(cfg FeedConfig, nodes *Nodes) *HTTPFeed {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultFeedBaseURL
	}
	if cfg.Platform == "" {
		cfg.Platform = DefaultFeedPlatform
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultFeedTimeout
	}
	if cfg.MinInterval <= 0 {
		cfg.MinInterval = DefaultFeedInterval
	}
	return &HTTPFeed{
		url:        fmt.Sprintf("%s/%s/fissures", strings.TrimRight(cfg.BaseURL, "/"), cfg.Platform),
		httpClient: &http.Client{Timeout: cfg.Timeout},
		limiter:    rate.NewLimiter(rate.Every(cfg.MinInterval), 1),
		nodes:      nodes,
	}
}

// Fetch implements Feed. Any transport or decode failure wraps
// domain.ErrFeedUnavailable.
func (h *HTTPFeed) Fetch(ctx context.Context) ([]domain.Fissure, error) {
	if err := h.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrFeedUnavailable, ErrContextFeedRateLimit, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrFeedUnavailable, ErrContextFeedRequest, err)
	}
	req.Header.Set("User-Agent", FeedUserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFeedUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: "+ErrContextFeedStatusFmt, domain.ErrFeedUnavailable, resp.StatusCode)
	}

	var records []feedRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrFeedUnavailable, ErrContextFeedDecode, err)
	}

	// Casers are stateful, so each fetch gets its own.
	title := cases.Title(language.English)
	out := make([]domain.Fissure, 0, len(records))
	for _, rec := range records {
		f, ok := h.convert(ctx, rec, title)
		if ok {
			out = append(out, f)
		}
	}
	return out, nil
}

func (h *HTTPFeed) convert(ctx context.Context, rec feedRecord, title cases.Caser) (domain.Fissure, bool) {
	log := logger.FromContext(ctx)
	if rec.ID == "" || rec.Expiry.Before(rec.Activation) {
		log.Debug(LogMsgSkippedRecord, LogFieldKey, rec.ID, LogFieldNode, rec.Node)
		return domain.Fissure{}, false
	}

	era := title.String(strings.TrimSpace(rec.Tier))
	tier, ok := domain.FissureTiers[era]
	if !ok {
		tier = rec.TierNum
	}

	category := domain.FissureNormal
	switch {
	case rec.IsStorm:
		category = domain.FissureVoidStorm
	case rec.IsHard:
		category = domain.FissureSteelPath
	}

	node, planet := SplitNode(rec.Node)
	f := domain.Fissure{
		Key:        rec.ID,
		Era:        era,
		Mission:    rec.MissionType,
		Node:       node,
		Planet:     planet,
		Enemy:      rec.Enemy,
		Tier:       tier,
		Category:   category,
		Activation: rec.Activation,
		Duration:   rec.Expiry.Sub(rec.Activation),
	}

	if known, ok := h.nodes.Lookup(node); ok {
		f.Tileset = known.Tileset
		if f.Planet == "" {
			f.Planet = known.Planet
		}
		if f.Enemy == "" {
			f.Enemy = known.Enemy
		}
		if f.Mission == "" {
			f.Mission = known.Mission
		}
	} else if h.nodes.Len() > 0 {
		log.Debug(LogMsgUnknownNode, LogFieldNode, node)
	}
	return f, true
}
