package simulation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/FissureBot_Go/internal/domain"
	"github.com/osse101/FissureBot_Go/internal/priority"
	"github.com/osse101/FissureBot_Go/internal/worker"
)

func newTestService(t *testing.T, prefs *MockPreferences, pool *worker.Pool, cfg Config) Service {
	t.Helper()
	table := loadTable(t)
	resolver := priority.NewResolver(table, 16, time.Minute)
	if prefs == nil {
		return NewService(table, resolver, nil, pool, cfg)
	}
	return NewService(table, resolver, prefs, pool, cfg)
}

func axiRequest(style string, cycles int) Request {
	return Request{
		Primary: PoolSpec{Relics: []string{"Axi L4"}, Refinement: "radiant"},
		Style:   style,
		Cycles:  cycles,
		Seed:    1234,
	}
}

func TestSimulate_RunsPerStyle(t *testing.T) {
	svc := newTestService(t, nil, nil, Config{})
	ctx := context.Background()

	tests := []struct {
		style  string
		cycles int
		runs   int
	}{
		{"solo", 10, 10},
		{"1b1", 10, 40},
		{"2b2", 10, 20},
		{"3b3", 3, 4},
		{"3b3", 6, 8},
		{"4b4", 10, 10},
		{"8b8", 10, 5},
	}
	for _, tt := range tests {
		t.Run(tt.style, func(t *testing.T) {
			run, err := svc.Simulate(ctx, axiRequest(tt.style, tt.cycles))
			require.NoError(t, err)
			assert.Equal(t, tt.runs, run.Runs)
			assert.Equal(t, tt.runs, run.Result.PoolKept[0].Total())
			assert.Equal(t, domain.PriorityAuto, run.Mode)
			assert.Equal(t, domain.DefaultMinSetPrice, run.MinSetPrice)
			assert.NotEmpty(t, run.Aggregation.Lines)
		})
	}
}

func TestSimulate_ValidationErrors(t *testing.T) {
	svc := newTestService(t, nil, nil, Config{})
	ctx := context.Background()

	tests := []struct {
		name string
		req  func() Request
		msg  string
	}{
		{"3b3 one cycle", func() Request { return axiRequest("3b3", 1) }, "whole number of runs"},
		{"3b3 two cycles", func() Request { return axiRequest("3b3", 2) }, "whole number of runs"},
		{"3b3 four cycles", func() Request { return axiRequest("3b3", 4) }, "whole number of runs"},
		{"3b3 five cycles", func() Request { return axiRequest("3b3", 5) }, "whole number of runs"},
		{"8b8 odd cycles", func() Request { return axiRequest("8b8", 3) }, "whole number of runs"},
		{"zero cycles", func() Request { return axiRequest("solo", 0) }, "between"},
		{"too many cycles", func() Request { return axiRequest("solo", MaxCycles+1) }, "between"},
		{"unknown style", func() Request { return axiRequest("5b5", 10) }, "unknown run style"},
		{"unknown relic", func() Request {
			r := axiRequest("solo", 1)
			r.Primary.Relics = []string{"Axi Z9"}
			return r
		}, "unknown relic"},
		{"malformed relic", func() Request {
			r := axiRequest("solo", 1)
			r.Primary.Relics = []string{"L4"}
			return r
		}, "unknown relic"},
		{"unknown refinement", func() Request {
			r := axiRequest("solo", 1)
			r.Primary.Refinement = "shiny"
			return r
		}, "unknown refinement"},
		{"unknown mode", func() Request {
			r := axiRequest("solo", 1)
			r.Mode = "credits"
			return r
		}, "unknown priority mode"},
		{"empty pool", func() Request {
			r := axiRequest("solo", 1)
			r.Primary.Relics = nil
			return r
		}, domain.ErrMsgEmptyPool},
		{"offcycle on solo", func() Request {
			r := axiRequest("solo", 1)
			r.Offcycle = []PoolSpec{{Relics: []string{"Lith B1"}}}
			return r
		}, "at most 0 offcycle"},
		{"too many offcycle on 2b2", func() Request {
			r := axiRequest("2b2", 1)
			r.Offcycle = []PoolSpec{{Relics: []string{"Lith B1"}}, {Relics: []string{"Lith L2"}}, {Relics: []string{"Meso N3"}}}
			return r
		}, "at most 2 offcycle"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Simulate(ctx, tt.req())
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrValidation)
			msg, ok := domain.UserMessage(err)
			require.True(t, ok)
			assert.Contains(t, msg, tt.msg)
		})
	}
}

func TestSimulate_Offcycle(t *testing.T) {
	svc := newTestService(t, nil, nil, Config{})
	req := axiRequest("1b1", 25)
	req.Offcycle = []PoolSpec{
		{Relics: []string{"Lith B1"}},
		{Relics: []string{"Lith L2"}, Refinement: "e"},
	}

	run, err := svc.Simulate(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, run.Pools, 3)
	assert.Equal(t, domain.RefinementIntact, run.Pools[1].Refinement)
	assert.Equal(t, domain.RefinementExceptional, run.Pools[2].Refinement)

	assert.Equal(t, 100, run.Runs)
	assert.Equal(t, 100, run.Result.PoolKept[1].Total())
	assert.Equal(t, 100, run.Result.PoolKept[2].Total())
	// Radiant primary slots at 100 traces, one Exceptional pool with one or two slots per run.
	assert.Equal(t, 300, run.Result.Slots[1]+run.Result.Slots[2])
	assert.Equal(t, 100*100+run.Result.Slots[2]*25, run.Aggregation.Totals.Traces)
}

func TestSimulate_SeedIsReproducible(t *testing.T) {
	svc := newTestService(t, nil, nil, Config{})
	ctx := context.Background()

	a, err := svc.Simulate(ctx, axiRequest("4b4", 200))
	require.NoError(t, err)
	b, err := svc.Simulate(ctx, axiRequest("4b4", 200))
	require.NoError(t, err)
	assert.Equal(t, a.Result.Kept, b.Result.Kept)
	assert.Equal(t, uint64(1234), a.Seed)

	random := axiRequest("4b4", 1)
	random.Seed = 0
	c, err := svc.Simulate(ctx, random)
	require.NoError(t, err)
	assert.NotZero(t, c.Seed)
}

func TestSimulate_OnWorkerPool(t *testing.T) {
	pool := worker.NewPool(2, 4)
	pool.Start()
	defer pool.Stop()

	svc := newTestService(t, nil, pool, Config{Timeout: 5 * time.Second})
	inline := newTestService(t, nil, nil, Config{})

	a, err := svc.Simulate(context.Background(), axiRequest("2b2", 50))
	require.NoError(t, err)
	b, err := inline.Simulate(context.Background(), axiRequest("2b2", 50))
	require.NoError(t, err)
	assert.Equal(t, b.Result.Kept, a.Result.Kept)
}

func TestSimulate_Timeout(t *testing.T) {
	// Never started, unbuffered: the submit can only time out.
	pool := worker.NewPool(1, 0)
	defer pool.Stop()

	svc := newTestService(t, nil, pool, Config{Timeout: 20 * time.Millisecond})
	_, err := svc.Simulate(context.Background(), axiRequest("solo", 1))
	assert.ErrorIs(t, err, ErrTimeout)
	assert.NotErrorIs(t, err, domain.ErrValidation)
}

func TestSimulate_VerboseRecordsScreens(t *testing.T) {
	svc := newTestService(t, nil, nil, Config{MaxScreens: 5})
	verbose := true
	req := axiRequest("4b4", 50)
	req.Verbose = &verbose

	run, err := svc.Simulate(context.Background(), req)
	require.NoError(t, err)
	assert.Len(t, run.Result.Screens, 5)

	quiet, err := svc.Simulate(context.Background(), axiRequest("4b4", 50))
	require.NoError(t, err)
	assert.Empty(t, quiet.Result.Screens)
}

func TestSimulate_UsesSavedConfigAndOverride(t *testing.T) {
	prefs := new(MockPreferences)
	svc := newTestService(t, prefs, nil, Config{})
	ctx := context.Background()

	saved := domain.DefaultSimConfig("u1")
	saved.MinSetPrice = 0
	saved.ShowTraceEff = true
	prefs.On("GetSimConfig", ctx, "u1").Return(&saved, nil)
	prefs.On("GetPriorityOverride", ctx, "u1", "Axi L4@Radiant").
		Return(map[string]int{"Paris Prime Lower Limb": 1}, nil)

	req := axiRequest("solo", 100)
	req.UserID = "u1"
	run, err := svc.Simulate(ctx, req)
	require.NoError(t, err)

	assert.True(t, run.Overridden)
	assert.Equal(t, 0.0, run.MinSetPrice)
	rank, ok := run.Order.Rank("Paris Prime Lower Limb")
	require.True(t, ok)
	assert.Equal(t, 1, rank.Value())
	assert.True(t, run.Aggregation.Display.TraceEff)
	prefs.AssertExpectations(t)
}

func TestSimulate_ForcedModeIgnoresOverride(t *testing.T) {
	prefs := new(MockPreferences)
	svc := newTestService(t, prefs, nil, Config{})
	ctx := context.Background()
	prefs.On("GetSimConfig", ctx, "u1").Return(nil, nil)

	req := axiRequest("solo", 10)
	req.UserID = "u1"
	req.Mode = "ducat"
	run, err := svc.Simulate(ctx, req)
	require.NoError(t, err)

	assert.False(t, run.Overridden)
	prefs.AssertNotCalled(t, "GetPriorityOverride", mock.Anything, mock.Anything, mock.Anything)
	for _, rank := range run.Order {
		assert.Equal(t, domain.BandDucat, rank.Band)
	}
}

func TestSimulate_PreferenceStoreFailure(t *testing.T) {
	prefs := new(MockPreferences)
	svc := newTestService(t, prefs, nil, Config{})
	ctx := context.Background()
	prefs.On("GetSimConfig", ctx, "u1").Return(nil, errors.New("connection refused"))

	req := axiRequest("solo", 10)
	req.UserID = "u1"
	_, err := svc.Simulate(ctx, req)
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, err.Error(), ErrContextLoadConfig)
}

func TestResolvePriority(t *testing.T) {
	svc := newTestService(t, nil, nil, Config{})
	zero := 0.0

	res, err := svc.ResolvePriority(context.Background(), PriorityRequest{
		Pools:       []PoolSpec{{Relics: []string{"axi l4"}, Refinement: "R"}},
		MinSetPrice: &zero,
	})
	require.NoError(t, err)
	assert.Equal(t, "Axi L4@Radiant", res.Signature)
	require.Len(t, res.Drops, 6)
	assert.Equal(t, "Loki Prime Neuroptics Blueprint", res.Drops[0].Name)
	assert.Equal(t, "Forma Blueprint", res.Drops[5].Name)
	assert.False(t, res.Overridden)
}

func TestSavePriorityOverride(t *testing.T) {
	prefs := new(MockPreferences)
	svc := newTestService(t, prefs, nil, Config{})
	ctx := context.Background()
	pools := []PoolSpec{{Relics: []string{"Axi L4"}, Refinement: "radiant"}}
	ranks := map[string]int{"Forma Blueprint": 1}

	prefs.On("SavePriorityOverride", ctx, "u1", "Axi L4@Radiant", ranks).Return(nil)
	prefs.On("GetSimConfig", ctx, "u1").Return(nil, nil)
	prefs.On("GetPriorityOverride", ctx, "u1", "Axi L4@Radiant").Return(ranks, nil)

	res, err := svc.SavePriorityOverride(ctx, "u1", pools, ranks)
	require.NoError(t, err)
	assert.True(t, res.Overridden)
	assert.Equal(t, "Forma Blueprint", res.Drops[0].Name)
	prefs.AssertExpectations(t)
}

func TestSavePriorityOverride_Rejected(t *testing.T) {
	prefs := new(MockPreferences)
	svc := newTestService(t, prefs, nil, Config{})
	ctx := context.Background()
	pools := []PoolSpec{{Relics: []string{"Axi L4"}}}

	_, err := svc.SavePriorityOverride(ctx, "u1", pools, map[string]int{"Nikana Prime Blade": 1})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.SavePriorityOverride(ctx, "u1", pools, map[string]int{"Forma Blueprint": 0})
	assert.ErrorIs(t, err, domain.ErrValidation)

	prefs.AssertNotCalled(t, "SavePriorityOverride", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDeletePriorityOverride(t *testing.T) {
	prefs := new(MockPreferences)
	svc := newTestService(t, prefs, nil, Config{})
	ctx := context.Background()
	prefs.On("DeletePriorityOverride", ctx, "u1", "Axi L4@Intact|Lith B1@Intact").Return(nil)

	err := svc.DeletePriorityOverride(ctx, "u1", []PoolSpec{{Relics: []string{"Axi L4"}}, {Relics: []string{"Lith B1"}}})
	require.NoError(t, err)
	prefs.AssertExpectations(t)
}

func TestSimConfig(t *testing.T) {
	prefs := new(MockPreferences)
	svc := newTestService(t, prefs, nil, Config{})
	ctx := context.Background()

	prefs.On("GetSimConfig", ctx, "new").Return(nil, nil)
	cfg, err := svc.GetSimConfig(ctx, "new")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSimConfig("new"), cfg)

	bad := domain.DefaultSimConfig("u1")
	bad.MinSetPrice = -1
	assert.ErrorIs(t, svc.SaveSimConfig(ctx, bad), domain.ErrValidation)

	good := domain.DefaultSimConfig("u1")
	prefs.On("SaveSimConfig", ctx, good).Return(nil)
	require.NoError(t, svc.SaveSimConfig(ctx, good))
	prefs.AssertExpectations(t)
}

func TestSimConfig_ConfiguredPace(t *testing.T) {
	prefs := new(MockPreferences)
	svc := newTestService(t, prefs, nil, Config{MinutesPerMission: 6.5})
	ctx := context.Background()

	prefs.On("GetSimConfig", ctx, "new").Return(nil, nil)
	cfg, err := svc.GetSimConfig(ctx, "new")
	require.NoError(t, err)
	assert.Equal(t, 6.5, cfg.MinutesPerMission)

	anon, err := svc.GetSimConfig(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 6.5, anon.MinutesPerMission)
}
