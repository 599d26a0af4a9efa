package simulation

import (
	"context"
	"testing"

	"github.com/osse101/FissureBot_Go/internal/domain"
	"github.com/osse101/FissureBot_Go/internal/priority"
)

// Run with: go test -bench=. -benchmem ./internal/simulation/ | benchstat

func BenchmarkSampler_4b4(b *testing.B) {
	table := loadTable(b)
	primary := domain.RelicPool{Relics: []domain.RelicID{axiL4, axiN5}, Refinement: domain.RefinementRadiant}
	order := resolveOrder(b, table, primary)
	spec, _ := domain.Style4b4.Spec()
	plan := Plan{Primary: primary, Style: spec, Runs: 1000, Order: order}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := NewSampler(table, seeded(uint64(i))).Simulate(plan); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSampler_1b1Offcycle(b *testing.B) {
	table := loadTable(b)
	primary := domain.RelicPool{Relics: []domain.RelicID{axiL4}, Refinement: domain.RefinementRadiant}
	offcycle := []domain.RelicPool{
		{Relics: []domain.RelicID{lithB1}, Refinement: domain.RefinementIntact},
		{Relics: []domain.RelicID{lithL2}, Refinement: domain.RefinementIntact},
		{Relics: []domain.RelicID{mesoN3}, Refinement: domain.RefinementIntact},
		{Relics: []domain.RelicID{neoP1}, Refinement: domain.RefinementIntact},
	}
	order := resolveOrder(b, table, append([]domain.RelicPool{primary}, offcycle...)...)
	spec, _ := domain.Style1b1.Spec()
	plan := Plan{Primary: primary, Offcycle: offcycle, Style: spec, Runs: 1000, Order: order}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := NewSampler(table, seeded(uint64(i))).Simulate(plan); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkService_Simulate(b *testing.B) {
	table := loadTable(b)
	svc := NewService(table, priority.NewResolver(table, 64, 0), nil, nil, Config{})
	req := Request{
		Primary: PoolSpec{Relics: []string{"Axi L4"}, Refinement: "radiant"},
		Style:   "4b4",
		Cycles:  100,
		Seed:    42,
	}
	ctx := context.Background()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := svc.Simulate(ctx, req); err != nil {
			b.Fatal(err)
		}
	}
}
