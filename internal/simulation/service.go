package simulation

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/osse101/FissureBot_Go/internal/domain"
	"github.com/osse101/FissureBot_Go/internal/logger"
	"github.com/osse101/FissureBot_Go/internal/metrics"
	"github.com/osse101/FissureBot_Go/internal/priority"
	"github.com/osse101/FissureBot_Go/internal/repository"
	"github.com/osse101/FissureBot_Go/internal/worker"
)

// ErrTimeout is returned when a simulation does not finish within the service timeout.
var ErrTimeout = errors.New("simulation timed out")

// PoolSpec is an unparsed relic pool as typed by a user.
type PoolSpec struct {
	Relics     []string `json:"relics" validate:"required,min=1,max=16,dive,required"`
	Refinement string   `json:"refinement"`
}

// Request is a simulate call from the chat or HTTP layer.
type Request struct {
	UserID   string
	Primary  PoolSpec
	Style    string
	Cycles   int
	Offcycle []PoolSpec
	Mode     string
	// MinSetPrice overrides the user's saved threshold when set.
	MinSetPrice    *float64
	IncludeMissing bool
	// Verbose overrides the user's saved verbose flag when set.
	Verbose *bool
	// Seed makes a run reproducible; zero picks a random seed.
	Seed uint64
}

// Run is one finished simulation.
type Run struct {
	Style       domain.RunStyle      `json:"style"`
	Cycles      int                  `json:"cycles"`
	Runs        int                  `json:"runs"`
	Pools       []domain.RelicPool   `json:"pools"`
	Signature   string               `json:"signature"`
	MinSetPrice float64              `json:"min_set_price"`
	Mode        domain.PriorityMode  `json:"mode"`
	Overridden  bool                 `json:"overridden"`
	Order       domain.PriorityOrder `json:"-"`
	Result      *Result              `json:"result"`
	Aggregation *Aggregation         `json:"aggregation"`
	Seed        uint64               `json:"seed"`
	Elapsed     time.Duration        `json:"elapsed"`
}

// PriorityRequest asks for the drop order of some pools.
type PriorityRequest struct {
	UserID      string
	Pools       []PoolSpec
	Mode        string
	MinSetPrice *float64
}

// PriorityResult is a resolved drop order.
type PriorityResult struct {
	Signature   string              `json:"signature"`
	Mode        domain.PriorityMode `json:"mode"`
	MinSetPrice float64             `json:"min_set_price"`
	Overridden  bool                `json:"overridden"`
	Drops       []domain.RankedDrop `json:"drops"`
}

// Service defines the interface for relic simulation operations
type Service interface {
	Simulate(ctx context.Context, req Request) (*Run, error)
	ResolvePriority(ctx context.Context, req PriorityRequest) (*PriorityResult, error)
	SavePriorityOverride(ctx context.Context, userID string, pools []PoolSpec, ranks map[string]int) (*PriorityResult, error)
	DeletePriorityOverride(ctx context.Context, userID string, pools []PoolSpec) error
	GetSimConfig(ctx context.Context, userID string) (domain.SimConfig, error)
	SaveSimConfig(ctx context.Context, cfg domain.SimConfig) error
}

// Config tunes the service.
type Config struct {
	Timeout    time.Duration
	MaxScreens int
	// MinutesPerMission is the pace for users who have not set their own.
	MinutesPerMission float64
}

type service struct {
	catalog    Catalog
	resolver   *priority.Resolver
	aggregator *Aggregator
	prefs      repository.Preferences
	pool       *worker.Pool
	timeout    time.Duration
	maxScreens int
	minutes    float64
}

// NewService creates a simulation service. Sampling runs on pool when it is
// non-nil, otherwise inline on the caller's goroutine. prefs may be nil.
func NewService(catalog Catalog, resolver *priority.Resolver, prefs repository.Preferences, pool *worker.Pool, cfg Config) Service {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.MaxScreens <= 0 {
		cfg.MaxScreens = DefaultMaxScreens
	}
	if cfg.MinutesPerMission <= 0 {
		cfg.MinutesPerMission = domain.DefaultMinutesPerMission
	}
	return &service{
		catalog:    catalog,
		resolver:   resolver,
		aggregator: NewAggregator(catalog),
		prefs:      prefs,
		pool:       pool,
		timeout:    cfg.Timeout,
		maxScreens: cfg.MaxScreens,
		minutes:    cfg.MinutesPerMission,
	}
}

// Simulate validates the request, resolves the drop order and samples.
func (s *service) Simulate(ctx context.Context, req Request) (*Run, error) {
	log := logger.FromContext(ctx)
	start := time.Now()

	run, plan, cfg, err := s.prepare(ctx, req)
	if err != nil {
		style := "unknown"
		if st, ok := domain.ParseRunStyle(req.Style); ok {
			style = string(st)
		}
		if errors.Is(err, domain.ErrValidation) {
			metrics.SimulationsTotal.WithLabelValues(style, metrics.ResultInvalid).Inc()
			log.Info(LogMsgSimulationRejected, LogFieldUserID, req.UserID, LogFieldReason, err.Error())
		} else {
			metrics.SimulationsTotal.WithLabelValues(style, metrics.ResultError).Inc()
			log.Error(LogMsgSimulationFailed, LogFieldUserID, req.UserID, "error", err)
		}
		return nil, err
	}
	styleLabel := string(run.Style)

	log.Debug(LogMsgSimulationStarted,
		LogFieldUserID, req.UserID,
		LogFieldStyle, run.Style,
		LogFieldCycles, run.Cycles,
		LogFieldRuns, run.Runs,
		LogFieldPools, len(run.Pools))

	sampler := NewSampler(s.catalog, newRand(run.Seed).Float64)
	result, err := s.sample(ctx, sampler, plan)
	if err != nil {
		label := metrics.ResultError
		if errors.Is(err, ErrTimeout) {
			label = metrics.ResultTimeout
		}
		metrics.SimulationsTotal.WithLabelValues(styleLabel, label).Inc()
		log.Error(LogMsgSimulationFailed, LogFieldUserID, req.UserID, LogFieldStyle, run.Style, "error", err)
		return nil, err
	}
	run.Result = result

	agg, err := s.aggregator.Aggregate(AggregateInput{
		Result:         result,
		Style:          plan.Style,
		Cycles:         run.Cycles,
		Pools:          run.Pools,
		Order:          run.Order,
		Config:         cfg,
		IncludeMissing: req.IncludeMissing,
	})
	if err != nil {
		metrics.SimulationsTotal.WithLabelValues(styleLabel, metrics.ResultError).Inc()
		log.Error(LogMsgSimulationFailed, LogFieldUserID, req.UserID, "error", err)
		return nil, err
	}
	run.Aggregation = agg
	run.Elapsed = time.Since(start)

	metrics.SimulationsTotal.WithLabelValues(styleLabel, metrics.ResultSuccess).Inc()
	metrics.SimulationDuration.WithLabelValues(styleLabel).Observe(run.Elapsed.Seconds())
	metrics.SimulatedRunsTotal.WithLabelValues(styleLabel).Add(float64(run.Runs))
	log.Info(LogMsgSimulationCompleted,
		LogFieldUserID, req.UserID,
		LogFieldStyle, run.Style,
		LogFieldRuns, run.Runs,
		LogFieldDuration, run.Elapsed)
	return run, nil
}

// prepare runs every check that can fail on user input before any sampling.
func (s *service) prepare(ctx context.Context, req Request) (*Run, Plan, domain.SimConfig, error) {
	if req.Cycles < MinCycles || req.Cycles > MaxCycles {
		return nil, Plan{}, domain.SimConfig{}, domain.NewValidationError(fmt.Sprintf(domain.ErrMsgCycleRangeFmt, MinCycles, MaxCycles))
	}

	style, ok := domain.ParseRunStyle(req.Style)
	if !ok {
		return nil, Plan{}, domain.SimConfig{}, domain.NewValidationError(fmt.Sprintf(domain.ErrMsgUnknownStyleFmt, req.Style))
	}
	spec, _ := style.Spec()

	runs, ok := spec.Runs(req.Cycles)
	if !ok {
		return nil, Plan{}, domain.SimConfig{}, domain.NewValidationError(fmt.Sprintf(domain.ErrMsgCycleMultipleFmt, style, req.Cycles))
	}
	if len(req.Offcycle) > spec.MaxOffcycle {
		return nil, Plan{}, domain.SimConfig{}, domain.NewValidationError(fmt.Sprintf(domain.ErrMsgTooManyOffcycleFmt, style, spec.MaxOffcycle, len(req.Offcycle)))
	}

	primary, err := s.parsePool(req.Primary)
	if err != nil {
		return nil, Plan{}, domain.SimConfig{}, err
	}
	pools := []domain.RelicPool{primary}
	for _, off := range req.Offcycle {
		p, err := s.parsePool(off)
		if err != nil {
			return nil, Plan{}, domain.SimConfig{}, err
		}
		pools = append(pools, p)
	}

	mode, ok := domain.ParsePriorityMode(req.Mode)
	if !ok {
		return nil, Plan{}, domain.SimConfig{}, domain.NewValidationError(fmt.Sprintf(domain.ErrMsgUnknownModeFmt, req.Mode))
	}

	cfg, err := s.GetSimConfig(ctx, req.UserID)
	if err != nil {
		return nil, Plan{}, domain.SimConfig{}, err
	}
	if req.MinSetPrice != nil {
		cfg.MinSetPrice = *req.MinSetPrice
	}
	if req.Verbose != nil {
		cfg.Verbose = *req.Verbose
	}

	order, overridden, err := s.resolve(ctx, req.UserID, pools, mode, cfg.MinSetPrice)
	if err != nil {
		return nil, Plan{}, domain.SimConfig{}, err
	}

	seed := req.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}

	run := &Run{
		Style:       style,
		Cycles:      req.Cycles,
		Runs:        runs,
		Pools:       pools,
		Signature:   domain.PoolsSignature(pools),
		MinSetPrice: cfg.MinSetPrice,
		Mode:        mode,
		Overridden:  overridden,
		Order:       order,
		Seed:        seed,
	}
	plan := Plan{
		Primary:  primary,
		Offcycle: pools[1:],
		Style:    spec,
		Runs:     runs,
		Order:    order,
	}
	if cfg.Verbose {
		plan.MaxScreens = s.maxScreens
	}
	return run, plan, cfg, nil
}

// sample runs the sampler on the worker pool, bounded by the service timeout.
func (s *service) sample(ctx context.Context, sampler *Sampler, plan Plan) (*Result, error) {
	if s.pool == nil {
		return sampler.Simulate(plan)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	job := newSimulationJob(sampler, plan)
	if err := s.pool.Submit(ctx, job); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %s", ErrTimeout, ErrContextQueue)
		}
		return nil, fmt.Errorf("%s: %w", ErrContextQueue, err)
	}

	select {
	case out := <-job.done:
		return out.result, out.err
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w after %s", ErrTimeout, s.timeout)
		}
		return nil, ctx.Err()
	}
}

// ResolvePriority returns the drop order a simulation over pools would use.
func (s *service) ResolvePriority(ctx context.Context, req PriorityRequest) (*PriorityResult, error) {
	pools, err := s.parsePools(req.Pools)
	if err != nil {
		return nil, err
	}
	mode, ok := domain.ParsePriorityMode(req.Mode)
	if !ok {
		return nil, domain.NewValidationError(fmt.Sprintf(domain.ErrMsgUnknownModeFmt, req.Mode))
	}
	cfg, err := s.GetSimConfig(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	minSet := cfg.MinSetPrice
	if req.MinSetPrice != nil {
		minSet = *req.MinSetPrice
	}

	order, overridden, err := s.resolve(ctx, req.UserID, pools, mode, minSet)
	if err != nil {
		return nil, err
	}
	return &PriorityResult{
		Signature:   domain.PoolsSignature(pools),
		Mode:        mode,
		MinSetPrice: minSet,
		Overridden:  overridden,
		Drops:       order.Sorted(),
	}, nil
}

// SavePriorityOverride stores a user's own ranking for the exact pools.
// Every ranked name must be a drop of the pools.
func (s *service) SavePriorityOverride(ctx context.Context, userID string, specs []PoolSpec, ranks map[string]int) (*PriorityResult, error) {
	pools, err := s.parsePools(specs)
	if err != nil {
		return nil, err
	}
	computed, err := s.resolver.Resolve(priority.Request{Pools: pools, MinSetPrice: 0, Mode: domain.PriorityAuto})
	if err != nil {
		return nil, err
	}
	for name, rank := range ranks {
		if _, ok := computed[name]; !ok {
			return nil, domain.NewValidationError(fmt.Sprintf(ErrMsgOverrideUnknownDropFmt, name))
		}
		if rank <= 0 {
			return nil, domain.NewValidationError(fmt.Sprintf(ErrMsgOverrideRankFmt, name, rank))
		}
	}

	signature := domain.PoolsSignature(pools)
	if s.prefs != nil {
		if err := s.prefs.SavePriorityOverride(ctx, userID, signature, ranks); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrContextSaveOverride, err)
		}
	}
	logger.FromContext(ctx).Info(LogMsgOverrideSaved, LogFieldUserID, userID, LogFieldSignature, signature, LogFieldEntries, len(ranks))

	return s.ResolvePriority(ctx, PriorityRequest{UserID: userID, Pools: specs})
}

// DeletePriorityOverride removes a user's saved ranking for the pools.
func (s *service) DeletePriorityOverride(ctx context.Context, userID string, specs []PoolSpec) error {
	pools, err := s.parsePools(specs)
	if err != nil {
		return err
	}
	if s.prefs == nil {
		return nil
	}
	return s.prefs.DeletePriorityOverride(ctx, userID, domain.PoolsSignature(pools))
}

// GetSimConfig returns the user's saved display preferences or the defaults.
func (s *service) GetSimConfig(ctx context.Context, userID string) (domain.SimConfig, error) {
	if s.prefs == nil || userID == "" {
		return s.defaultConfig(userID), nil
	}
	cfg, err := s.prefs.GetSimConfig(ctx, userID)
	if err != nil {
		return domain.SimConfig{}, fmt.Errorf("%s: %w", ErrContextLoadConfig, err)
	}
	if cfg == nil {
		return s.defaultConfig(userID), nil
	}
	if cfg.MinutesPerMission <= 0 {
		cfg.MinutesPerMission = s.minutes
	}
	return *cfg, nil
}

func (s *service) defaultConfig(userID string) domain.SimConfig {
	cfg := domain.DefaultSimConfig(userID)
	cfg.MinutesPerMission = s.minutes
	return cfg
}

// SaveSimConfig stores display preferences.
func (s *service) SaveSimConfig(ctx context.Context, cfg domain.SimConfig) error {
	if cfg.MinSetPrice < 0 {
		return domain.NewValidationError(domain.ErrMsgNegativeMinSetPrice)
	}
	if s.prefs == nil {
		return nil
	}
	return s.prefs.SaveSimConfig(ctx, cfg)
}

func (s *service) resolve(ctx context.Context, userID string, pools []domain.RelicPool, mode domain.PriorityMode, minSet float64) (domain.PriorityOrder, bool, error) {
	var override map[string]int
	if mode == domain.PriorityAuto && s.prefs != nil && userID != "" {
		saved, err := s.prefs.GetPriorityOverride(ctx, userID, domain.PoolsSignature(pools))
		if err != nil {
			return nil, false, fmt.Errorf("%s: %w", ErrContextLoadOverride, err)
		}
		override = saved
	}
	order, err := s.resolver.Resolve(priority.Request{
		Pools:       pools,
		MinSetPrice: minSet,
		Mode:        mode,
		Override:    override,
	})
	if err != nil {
		return nil, false, err
	}
	return order, len(override) > 0, nil
}

func (s *service) parsePools(specs []PoolSpec) ([]domain.RelicPool, error) {
	if len(specs) == 0 {
		return nil, domain.NewValidationError(domain.ErrMsgEmptyPool)
	}
	pools := make([]domain.RelicPool, 0, len(specs))
	for _, spec := range specs {
		p, err := s.parsePool(spec)
		if err != nil {
			return nil, err
		}
		pools = append(pools, p)
	}
	return pools, nil
}

func (s *service) parsePool(spec PoolSpec) (domain.RelicPool, error) {
	if len(spec.Relics) == 0 {
		return domain.RelicPool{}, domain.NewValidationError(domain.ErrMsgEmptyPool)
	}

	refinement := domain.RefinementIntact
	if spec.Refinement != "" {
		r, ok := domain.ParseRefinement(spec.Refinement)
		if !ok {
			return domain.RelicPool{}, domain.NewValidationError(fmt.Sprintf(domain.ErrMsgUnknownRefinementFmt, spec.Refinement))
		}
		refinement = r
	}

	pool := domain.RelicPool{Refinement: refinement, Relics: make([]domain.RelicID, 0, len(spec.Relics))}
	for _, name := range spec.Relics {
		id, err := domain.ParseRelicID(name)
		if err != nil {
			return domain.RelicPool{}, err
		}
		if !s.catalog.HasRelic(id) {
			return domain.RelicPool{}, domain.NewValidationError(fmt.Sprintf(domain.ErrMsgUnknownRelicFmt, name))
		}
		pool.Relics = append(pool.Relics, id)
	}
	return pool, nil
}

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
