package simulation

import (
	"context"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/FissureBot_Go/internal/domain"
	"github.com/osse101/FissureBot_Go/internal/priority"
	"github.com/osse101/FissureBot_Go/internal/relic"
	"github.com/osse101/FissureBot_Go/internal/validation"
)

var (
	axiL4  = domain.RelicID{Era: domain.EraAxi, Name: "L4"}
	axiN5  = domain.RelicID{Era: domain.EraAxi, Name: "N5"}
	lithB1 = domain.RelicID{Era: domain.EraLith, Name: "B1"}
	lithL2 = domain.RelicID{Era: domain.EraLith, Name: "L2"}
	mesoN3 = domain.RelicID{Era: domain.EraMeso, Name: "N3"}
	neoP1  = domain.RelicID{Era: domain.EraNeo, Name: "P1"}
)

func loadTable(t testing.TB) *relic.Table {
	t.Helper()
	path, err := validation.ResolvePath("configs/relics/testdata/relics.json")
	require.NoError(t, err)
	table, err := relic.Load(path, nil)
	require.NoError(t, err)
	return table
}

func seeded(seed uint64) func() float64 {
	return rand.New(rand.NewPCG(seed, seed+1)).Float64
}

func resolveOrder(t testing.TB, table *relic.Table, pools ...domain.RelicPool) domain.PriorityOrder {
	t.Helper()
	order, err := priority.NewResolver(table, 8, 0).Resolve(priority.Request{Pools: pools, MinSetPrice: domain.DefaultMinSetPrice})
	require.NoError(t, err)
	return order
}

// MockPreferences implements repository.Preferences for testing
type MockPreferences struct {
	mock.Mock
}

func (m *MockPreferences) GetPriorityOverride(ctx context.Context, userID, signature string) (map[string]int, error) {
	args := m.Called(ctx, userID, signature)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int), args.Error(1)
}

func (m *MockPreferences) SavePriorityOverride(ctx context.Context, userID, signature string, ranks map[string]int) error {
	args := m.Called(ctx, userID, signature, ranks)
	return args.Error(0)
}

func (m *MockPreferences) DeletePriorityOverride(ctx context.Context, userID, signature string) error {
	args := m.Called(ctx, userID, signature)
	return args.Error(0)
}

func (m *MockPreferences) GetSimConfig(ctx context.Context, userID string) (*domain.SimConfig, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SimConfig), args.Error(1)
}

func (m *MockPreferences) SaveSimConfig(ctx context.Context, cfg domain.SimConfig) error {
	args := m.Called(ctx, cfg)
	return args.Error(0)
}
