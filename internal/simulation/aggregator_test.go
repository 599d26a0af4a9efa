package simulation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/FissureBot_Go/internal/domain"
)

func axiL4Input(t *testing.T, kept Rewards) AggregateInput {
	t.Helper()
	table := loadTable(t)
	pool := domain.RelicPool{Relics: []domain.RelicID{axiL4}, Refinement: domain.RefinementRadiant}
	spec, _ := domain.StyleSolo.Spec()
	return AggregateInput{
		Result: &Result{Runs: 10, Kept: kept, Slots: []int{10}},
		Style:  spec,
		Cycles: 10,
		Pools:  []domain.RelicPool{pool},
		Order:  resolveOrder(t, table, pool),
		Config: domain.DefaultSimConfig("u1"),
	}
}

func TestAggregate_Totals(t *testing.T) {
	in := axiL4Input(t, Rewards{
		"Loki Prime Neuroptics Blueprint": 2,
		"Lex Prime Receiver":              3,
		"Braton Prime Receiver":           5,
	})
	agg, err := NewAggregator(loadTable(t)).Aggregate(in)
	require.NoError(t, err)

	assert.Equal(t, 130.0, agg.Totals.Plat)
	assert.Equal(t, 225, agg.Totals.Ducats)
	assert.Equal(t, 1000, agg.Totals.Traces)
	assert.InDelta(t, 195.0, agg.Totals.PlatPerHour, 1e-9)
	assert.InDelta(t, 337.5, agg.Totals.DucatsPerHour, 1e-9)
	assert.InDelta(t, 13.0, agg.Totals.PlatPerRun, 1e-9)
	assert.InDelta(t, 22.5, agg.Totals.DucatsPerRun, 1e-9)
	assert.InDelta(t, 13.0, agg.Totals.PlatPerCycle, 1e-9)
	assert.InDelta(t, 1000.0/130.0, agg.Totals.TraceEfficiency, 1e-9)
	assert.False(t, agg.Display.DucatFallback)

	require.Len(t, agg.Lines, 3)
	assert.Equal(t, "2x Loki Prime Neuroptics Blueprint worth 70 plat", agg.Lines[0].String())
	assert.Equal(t, "3x Lex Prime Receiver worth 60 plat", agg.Lines[1].String())
	assert.Equal(t, "5x Braton Prime Receiver worth 225 ducats", agg.Lines[2].String())
	assert.Equal(t, 101, agg.Lines[2].Rank)

	assert.Contains(t, agg.Extra, "Platinum per hour: 195")
}

func TestAggregate_DucatFallback(t *testing.T) {
	in := axiL4Input(t, Rewards{"Forma Blueprint": 4})
	in.Result.Runs = 4
	agg, err := NewAggregator(loadTable(t)).Aggregate(in)
	require.NoError(t, err)

	assert.Zero(t, agg.Totals.Plat)
	assert.Zero(t, agg.Totals.TraceEfficiency)
	assert.True(t, agg.Display.DucatFallback)
	assert.True(t, agg.Display.DucatsPerHour)
	assert.Contains(t, agg.Extra, InfoMsgDucatFallback)
}

func TestAggregate_NoFallbackWhenDucatsAlreadyShown(t *testing.T) {
	in := axiL4Input(t, Rewards{"Forma Blueprint": 1})
	in.Config.ShowDucatPerHour = true
	agg, err := NewAggregator(loadTable(t)).Aggregate(in)
	require.NoError(t, err)

	assert.False(t, agg.Display.DucatFallback)
	assert.True(t, agg.Display.DucatsPerHour)
}

func TestAggregate_IncludeMissing(t *testing.T) {
	in := axiL4Input(t, Rewards{"Lex Prime Receiver": 1})
	in.IncludeMissing = true
	agg, err := NewAggregator(loadTable(t)).Aggregate(in)
	require.NoError(t, err)

	require.Len(t, agg.Lines, len(in.Order))
	for i := 1; i < len(agg.Lines); i++ {
		prev := in.Order[agg.Lines[i-1].Name]
		cur := in.Order[agg.Lines[i].Name]
		assert.True(t, prev.Less(cur), "lines must follow rank order")
	}
	assert.Equal(t, "0x Loki Prime Neuroptics Blueprint worth 0 plat", agg.Lines[0].String())
}

func TestAggregate_UnrankedDropIsIntegrityError(t *testing.T) {
	in := axiL4Input(t, Rewards{"Nikana Prime Blade": 1})
	_, err := NewAggregator(loadTable(t)).Aggregate(in)
	assert.ErrorIs(t, err, domain.ErrDataIntegrity)
}

func TestAggregate_PerHourUsesMinutesPerMission(t *testing.T) {
	in := axiL4Input(t, Rewards{"Lex Prime Receiver": 10})
	in.Config.MinutesPerMission = 6
	agg, err := NewAggregator(loadTable(t)).Aggregate(in)
	require.NoError(t, err)

	// 200 plat over 10 runs of 6 minutes.
	assert.InDelta(t, 200.0, agg.Totals.PlatPerHour, 1e-9)
}

func TestFormatNumber(t *testing.T) {
	tests := map[float64]string{
		195:      "195",
		337.5:    "337.5",
		7.692307: "7.69",
		0:        "0",
		2.005e3:  "2005",
	}
	for in, want := range tests {
		assert.Equal(t, want, formatNumber(in))
	}
}
