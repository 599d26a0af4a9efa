package priority

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/FissureBot_Go/internal/domain"
	"github.com/osse101/FissureBot_Go/internal/relic"
	"github.com/osse101/FissureBot_Go/internal/validation"
)

var (
	axiL4  = domain.RelicID{Era: domain.EraAxi, Name: "L4"}
	lithB1 = domain.RelicID{Era: domain.EraLith, Name: "B1"}
	lithL2 = domain.RelicID{Era: domain.EraLith, Name: "L2"}
)

func newTestResolver(t *testing.T) *Resolver {
	t.Helper()
	path, err := validation.ResolvePath("configs/relics/testdata/relics.json")
	require.NoError(t, err)
	table, err := relic.Load(path, nil)
	require.NoError(t, err)
	return NewResolver(table, 16, 0)
}

func pool(ref domain.Refinement, ids ...domain.RelicID) domain.RelicPool {
	return domain.RelicPool{Relics: ids, Refinement: ref}
}

func values(order domain.PriorityOrder) map[string]int {
	return order.Values()
}

func TestResolve_DefaultThreshold(t *testing.T) {
	r := newTestResolver(t)

	order, err := r.Resolve(Request{
		Pools:       []domain.RelicPool{pool(domain.RefinementRadiant, axiL4)},
		MinSetPrice: domain.DefaultMinSetPrice,
	})
	require.NoError(t, err)

	assert.Equal(t, map[string]int{
		"Loki Prime Neuroptics Blueprint": 1,
		"Lex Prime Receiver":              2,
		"Paris Prime Lower Limb":          3,
		"Braton Prime Receiver":           101,
		"Akbronco Prime Link":             102,
		"Forma Blueprint":                 103,
	}, values(order))
}

func TestResolve_ZeroThresholdKeepsPricelessInDucats(t *testing.T) {
	r := newTestResolver(t)

	order, err := r.Resolve(Request{Pools: []domain.RelicPool{pool(domain.RefinementIntact, axiL4)}})
	require.NoError(t, err)

	assert.Equal(t, map[string]int{
		"Loki Prime Neuroptics Blueprint": 1,
		"Lex Prime Receiver":              2,
		"Braton Prime Receiver":           3,
		"Akbronco Prime Link":             4,
		"Paris Prime Lower Limb":          5,
		"Forma Blueprint":                 101,
	}, values(order))
}

func TestResolve_CheapSetRankedByDucats(t *testing.T) {
	r := newTestResolver(t)

	// Akbronco Prime Set: 3 + 4/2 = 5 platinum.
	order, err := r.Resolve(Request{
		Pools:       []domain.RelicPool{pool(domain.RefinementRadiant, lithB1, axiL4)},
		MinSetPrice: 10,
	})
	require.NoError(t, err)

	for _, part := range []string{"Akbronco Prime Blueprint", "Akbronco Prime Link"} {
		rank, ok := order.Rank(part)
		require.True(t, ok, part)
		assert.Equal(t, domain.BandDucat, rank.Band, part)
		assert.GreaterOrEqual(t, rank.Value(), 101, part)
	}

	rank, _ := order.Rank("Lex Prime Receiver")
	assert.Equal(t, domain.BandPlat, rank.Band)
}

func TestResolve_ForceModes(t *testing.T) {
	r := newTestResolver(t)
	pools := []domain.RelicPool{pool(domain.RefinementRadiant, axiL4)}

	plat, err := r.Resolve(Request{Pools: pools, MinSetPrice: 1000, Mode: domain.PriorityForcePlat})
	require.NoError(t, err)
	rank, _ := plat.Rank("Akbronco Prime Link")
	assert.Equal(t, domain.BandPlat, rank.Band)
	rank, _ = plat.Rank("Forma Blueprint")
	assert.Equal(t, domain.BandDucat, rank.Band)

	ducat, err := r.Resolve(Request{Pools: pools, MinSetPrice: 0, Mode: domain.PriorityForceDucat})
	require.NoError(t, err)
	assert.Equal(t, map[string]int{
		"Loki Prime Neuroptics Blueprint": 101,
		"Braton Prime Receiver":           102,
		"Lex Prime Receiver":              103,
		"Akbronco Prime Link":             104,
		"Paris Prime Lower Limb":          105,
		"Forma Blueprint":                 106,
	}, values(ducat))
}

func TestResolve_Deterministic(t *testing.T) {
	r := newTestResolver(t)
	req := Request{
		Pools: []domain.RelicPool{
			pool(domain.RefinementRadiant, axiL4, lithL2),
			pool(domain.RefinementIntact, lithB1),
		},
		MinSetPrice: domain.DefaultMinSetPrice,
	}

	first, err := r.Resolve(req)
	require.NoError(t, err)
	r.cache.Clear()
	second, err := r.Resolve(req)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	third, err := r.Resolve(req)
	require.NoError(t, err)
	assert.Equal(t, first, third)
}

func TestResolve_RanksAreContiguous(t *testing.T) {
	r := newTestResolver(t)

	for _, minSet := range []float64{0, 10, 30, 100} {
		order, err := r.Resolve(Request{
			Pools:       []domain.RelicPool{pool(domain.RefinementFlawless, axiL4, lithB1, lithL2)},
			MinSetPrice: minSet,
		})
		require.NoError(t, err)

		positions := map[domain.Band][]bool{}
		counts := map[domain.Band]int{}
		for _, rank := range order {
			counts[rank.Band]++
		}
		for band, n := range counts {
			positions[band] = make([]bool, n+1)
		}
		for name, rank := range order {
			used := positions[rank.Band]
			require.Less(t, rank.Position, len(used), name)
			require.Greater(t, rank.Position, 0, name)
			assert.False(t, used[rank.Position], "rank %d used twice", rank.Value())
			used[rank.Position] = true
		}
	}
}

func TestResolve_Override(t *testing.T) {
	r := newTestResolver(t)
	pools := []domain.RelicPool{pool(domain.RefinementRadiant, axiL4)}
	override := map[string]int{"Paris Prime Lower Limb": 1, "Not In Pool": 2}

	order, err := r.Resolve(Request{Pools: pools, MinSetPrice: 30, Override: override})
	require.NoError(t, err)
	assert.Equal(t, map[string]int{
		"Paris Prime Lower Limb":          1,
		"Loki Prime Neuroptics Blueprint": 2,
		"Lex Prime Receiver":              3,
		"Braton Prime Receiver":           101,
		"Akbronco Prime Link":             102,
		"Forma Blueprint":                 103,
	}, values(order))

	// Forced modes bypass the override.
	forced, err := r.Resolve(Request{Pools: pools, MinSetPrice: 30, Mode: domain.PriorityForcePlat, Override: override})
	require.NoError(t, err)
	rank, _ := forced.Rank("Paris Prime Lower Limb")
	assert.NotEqual(t, 1, rank.Value())
}

func TestResolve_PartialOverridePosition(t *testing.T) {
	r := newTestResolver(t)
	pools := []domain.RelicPool{pool(domain.RefinementRadiant, axiL4)}

	tests := []struct {
		name     string
		override map[string]int
		want     map[string]int
	}{
		{
			name:     "moved to the bottom of its band",
			override: map[string]int{"Lex Prime Receiver": 3},
			want: map[string]int{
				"Loki Prime Neuroptics Blueprint": 1,
				"Paris Prime Lower Limb":          2,
				"Lex Prime Receiver":              3,
			},
		},
		{
			name:     "position past the band end clamps to last",
			override: map[string]int{"Loki Prime Neuroptics Blueprint": 9},
			want: map[string]int{
				"Lex Prime Receiver":              1,
				"Paris Prime Lower Limb":          2,
				"Loki Prime Neuroptics Blueprint": 3,
			},
		},
		{
			name:     "saved wins a shared position",
			override: map[string]int{"Paris Prime Lower Limb": 2},
			want: map[string]int{
				"Loki Prime Neuroptics Blueprint": 1,
				"Paris Prime Lower Limb":          2,
				"Lex Prime Receiver":              3,
			},
		},
		{
			name:     "moved into the ducat band",
			override: map[string]int{"Loki Prime Neuroptics Blueprint": 102},
			want: map[string]int{
				"Lex Prime Receiver":              1,
				"Paris Prime Lower Limb":          2,
				"Braton Prime Receiver":           101,
				"Loki Prime Neuroptics Blueprint": 102,
				"Akbronco Prime Link":             103,
				"Forma Blueprint":                 104,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order, err := r.Resolve(Request{Pools: pools, MinSetPrice: 30, Override: tt.override})
			require.NoError(t, err)
			got := values(order)
			for name, want := range tt.want {
				assert.Equal(t, want, got[name], name)
			}
		})
	}
}

func TestResolve_CachedOrderIsNotShared(t *testing.T) {
	r := newTestResolver(t)
	req := Request{Pools: []domain.RelicPool{pool(domain.RefinementRadiant, axiL4)}, MinSetPrice: 30}

	first, err := r.Resolve(req)
	require.NoError(t, err)
	delete(first, "Forma Blueprint")

	second, err := r.Resolve(req)
	require.NoError(t, err)
	assert.Contains(t, second, "Forma Blueprint")
	assert.Equal(t, 1, r.cache.Len())
}

func TestResolve_ValidationErrors(t *testing.T) {
	r := newTestResolver(t)

	tests := []struct {
		name string
		req  Request
	}{
		{"unknown relic", Request{Pools: []domain.RelicPool{pool(domain.RefinementIntact, domain.RelicID{Era: domain.EraAxi, Name: "Z1"})}}},
		{"empty pool", Request{Pools: []domain.RelicPool{pool(domain.RefinementIntact)}}},
		{"negative threshold", Request{Pools: []domain.RelicPool{pool(domain.RefinementIntact, axiL4)}, MinSetPrice: -1}},
		{"unknown mode", Request{Pools: []domain.RelicPool{pool(domain.RefinementIntact, axiL4)}, Mode: "gold"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Resolve(tt.req)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

type brokenCatalog struct{ Catalog }

func (brokenCatalog) HasRelic(domain.RelicID) bool { return true }

func (brokenCatalog) Drops(domain.RelicID, domain.Refinement) ([]domain.RelicDrop, error) {
	return []domain.RelicDrop{{Name: "Ghost Part", Rarity: domain.RarityRare}}, nil
}

func (brokenCatalog) Price(name string) (float64, error) {
	return 0, errors.New("no such item")
}

func TestResolve_DataIntegrity(t *testing.T) {
	r := NewResolver(brokenCatalog{}, 4, 0)
	_, err := r.Resolve(Request{Pools: []domain.RelicPool{pool(domain.RefinementIntact, axiL4)}})
	assert.ErrorIs(t, err, domain.ErrDataIntegrity)
	assert.NotErrorIs(t, err, domain.ErrValidation)
}
