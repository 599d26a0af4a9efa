package simulation

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/osse101/FissureBot_Go/internal/domain"
)

// Line is one kept reward in display order.
type Line struct {
	Name  string      `json:"name"`
	Count int         `json:"count"`
	Rank  int         `json:"rank"`
	Band  domain.Band `json:"band"`
	// Value is platinum for the platinum band and ducats for the ducat band.
	Value float64 `json:"value"`
}

// String renders "<count>x <name> worth <value>".
func (l Line) String() string {
	if l.Band == domain.BandDucat {
		return fmt.Sprintf(LineFmtDucat, l.Count, l.Name, int(l.Value))
	}
	return fmt.Sprintf(LineFmtPlat, l.Count, l.Name, formatNumber(l.Value))
}

// Totals are the derived numbers of one simulation.
type Totals struct {
	Runs            int     `json:"runs"`
	Cycles          int     `json:"cycles"`
	Plat            float64 `json:"plat"`
	Ducats          int     `json:"ducats"`
	Traces          int     `json:"traces"`
	PlatPerHour     float64 `json:"plat_per_hour"`
	DucatsPerHour   float64 `json:"ducats_per_hour"`
	PlatPerCycle    float64 `json:"plat_per_cycle"`
	DucatsPerCycle  float64 `json:"ducats_per_cycle"`
	PlatPerRun      float64 `json:"plat_per_run"`
	DucatsPerRun    float64 `json:"ducats_per_run"`
	TraceEfficiency float64 `json:"trace_efficiency"`
}

// Display is the effective set of metrics shown, after fallbacks.
type Display struct {
	PlatPerHour   bool `json:"plat_per_hour"`
	DucatsPerHour bool `json:"ducats_per_hour"`
	PerCycle      bool `json:"per_cycle"`
	PerRun        bool `json:"per_run"`
	Traces        bool `json:"traces"`
	TraceEff      bool `json:"trace_efficiency"`
	// DucatFallback is set when ducat rates were forced on because no
	// platinum was earned.
	DucatFallback bool `json:"ducat_fallback"`
}

// Aggregation is the display-ready summary of a simulation.
type Aggregation struct {
	Lines   []Line   `json:"lines"`
	Totals  Totals   `json:"totals"`
	Display Display  `json:"display"`
	Extra   []string `json:"extra"`
}

// AggregateInput is everything Aggregate needs beyond the catalog.
type AggregateInput struct {
	Result *Result
	Style  domain.StyleSpec
	Cycles int
	// Pools are primary first, then offcycle, matching Result.Slots.
	Pools  []domain.RelicPool
	Order  domain.PriorityOrder
	Config domain.SimConfig
	// IncludeMissing lists every ranked drop, including ones never kept.
	IncludeMissing bool
}

// Aggregator turns kept rewards into platinum and ducat totals.
type Aggregator struct {
	catalog Catalog
}

// NewAggregator creates an aggregator over the relic catalog.
func NewAggregator(catalog Catalog) *Aggregator {
	return &Aggregator{catalog: catalog}
}

// Aggregate partitions kept rewards by priority band, sums each band and
// derives the configured rates.
func (a *Aggregator) Aggregate(in AggregateInput) (*Aggregation, error) {
	if in.Result == nil {
		return nil, fmt.Errorf("%w: nil simulation result", domain.ErrDataIntegrity)
	}

	lines, err := a.lines(in)
	if err != nil {
		return nil, err
	}

	totals := Totals{Runs: in.Result.Runs, Cycles: in.Cycles}
	for _, l := range lines {
		if l.Band == domain.BandDucat {
			totals.Ducats += int(l.Value)
		} else {
			totals.Plat += l.Value
		}
	}

	for i, slots := range in.Result.Slots {
		if i >= len(in.Pools) {
			return nil, fmt.Errorf("%w: %d slot counts for %d pools", domain.ErrDataIntegrity, len(in.Result.Slots), len(in.Pools))
		}
		cost, err := a.catalog.TraceCost(in.Pools[i].Refinement)
		if err != nil {
			return nil, fmt.Errorf("%w: trace cost: %v", domain.ErrDataIntegrity, err)
		}
		totals.Traces += slots * cost
	}

	minutes := in.Config.MinutesPerMission
	if minutes <= 0 {
		minutes = domain.DefaultMinutesPerMission
	}
	if totals.Runs > 0 {
		hours := float64(totals.Runs) * minutes / 60
		totals.PlatPerHour = totals.Plat / hours
		totals.DucatsPerHour = float64(totals.Ducats) / hours
		totals.PlatPerRun = totals.Plat / float64(totals.Runs)
		totals.DucatsPerRun = float64(totals.Ducats) / float64(totals.Runs)
	}
	if totals.Cycles > 0 {
		totals.PlatPerCycle = totals.Plat / float64(totals.Cycles)
		totals.DucatsPerCycle = float64(totals.Ducats) / float64(totals.Cycles)
	}
	if totals.Plat > 0 {
		totals.TraceEfficiency = float64(totals.Traces) / totals.Plat
	}

	display := Display{
		PlatPerHour:   in.Config.ShowPlatPerHour,
		DucatsPerHour: in.Config.ShowDucatPerHour,
		PerCycle:      in.Config.ShowPerCycle,
		PerRun:        in.Config.ShowPerRun,
		Traces:        in.Config.ShowTraces,
		TraceEff:      in.Config.ShowTraceEff,
	}
	if totals.Plat == 0 {
		display.DucatFallback = !display.DucatsPerHour
		display.DucatsPerHour = true
	}

	return &Aggregation{
		Lines:   lines,
		Totals:  totals,
		Display: display,
		Extra:   extraInfo(totals, display),
	}, nil
}

func (a *Aggregator) lines(in AggregateInput) ([]Line, error) {
	counts := make(Rewards, len(in.Result.Kept))
	for name, n := range in.Result.Kept {
		counts[name] = n
	}
	if in.IncludeMissing {
		for name := range in.Order {
			if _, ok := counts[name]; !ok {
				counts[name] = 0
			}
		}
	}

	lines := make([]Line, 0, len(counts))
	for name, n := range counts {
		rank, ok := in.Order.Rank(name)
		if !ok {
			return nil, fmt.Errorf("%w: kept drop %q has no priority rank", domain.ErrDataIntegrity, name)
		}
		line := Line{Name: name, Count: n, Rank: rank.Value(), Band: rank.Band}

		if rank.Band == domain.BandDucat {
			ducats, _, err := a.catalog.Ducats(name)
			if err != nil {
				return nil, fmt.Errorf("%w: ducats of %q: %v", domain.ErrDataIntegrity, name, err)
			}
			line.Value = float64(ducats * n)
		} else {
			price, err := a.catalog.Price(name)
			if err != nil {
				return nil, fmt.Errorf("%w: price of %q: %v", domain.ErrDataIntegrity, name, err)
			}
			line.Value = price * float64(n)
		}
		lines = append(lines, line)
	}

	sort.Slice(lines, func(i, j int) bool {
		ri, rj := in.Order[lines[i].Name], in.Order[lines[j].Name]
		if ri != rj {
			return ri.Less(rj)
		}
		return lines[i].Name < lines[j].Name
	})
	return lines, nil
}

func extraInfo(t Totals, d Display) []string {
	var out []string
	out = append(out, fmt.Sprintf(InfoFmtTotals, formatNumber(t.Plat), t.Ducats, t.Runs))
	if d.DucatFallback {
		out = append(out, InfoMsgDucatFallback)
	}
	if d.PlatPerHour {
		out = append(out, fmt.Sprintf(InfoFmtPlatPerHour, formatNumber(t.PlatPerHour)))
	}
	if d.DucatsPerHour {
		out = append(out, fmt.Sprintf(InfoFmtDucatPerHour, formatNumber(t.DucatsPerHour)))
	}
	if d.PerCycle {
		out = append(out, fmt.Sprintf(InfoFmtPerCycle, formatNumber(t.PlatPerCycle), formatNumber(t.DucatsPerCycle)))
	}
	if d.PerRun {
		out = append(out, fmt.Sprintf(InfoFmtPerRun, formatNumber(t.PlatPerRun), formatNumber(t.DucatsPerRun)))
	}
	if d.Traces {
		out = append(out, fmt.Sprintf(InfoFmtTraces, t.Traces))
	}
	if d.TraceEff {
		out = append(out, fmt.Sprintf(InfoFmtTraceEff, formatNumber(t.TraceEfficiency)))
	}
	return out
}

// formatNumber prints at most two decimals and drops trailing zeros.
func formatNumber(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}
