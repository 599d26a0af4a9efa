package fissure

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/osse101/FissureBot_Go/internal/domain"
)

func str(s string) *string { return &s }
func num(n int) *int       { return &n }

func category(c domain.FissureCategory) *domain.FissureCategory { return &c }

func TestMatches(t *testing.T) {
	axi := domain.Fissure{
		Key: "a", Era: "Axi", Tier: 4, Mission: "Mobile Defense", Node: "Xini",
		Planet: "Eris", Tileset: "Infested Ship", Enemy: "Infested", Category: domain.FissureNormal,
	}

	tests := []struct {
		name string
		sub  domain.FissureSubscription
		want bool
	}{
		{"era only", domain.FissureSubscription{Era: str("Axi")}, true},
		{"era ignores case", domain.FissureSubscription{Era: str("axi")}, true},
		{"wrong era", domain.FissureSubscription{Era: str("Lith")}, false},
		{"era with low max tier", domain.FissureSubscription{Era: str("Axi"), MaxTier: num(2)}, false},
		{"max tier equal", domain.FissureSubscription{MaxTier: num(4)}, true},
		{"mission substring", domain.FissureSubscription{Mission: str("defense")}, true},
		{"mission is not equality", domain.FissureSubscription{Mission: str("Defense"), Era: str("Axi")}, true},
		{"mission mismatch", domain.FissureSubscription{Mission: str("Survival")}, false},
		{"node and planet", domain.FissureSubscription{Node: str("xini"), Planet: str("Eris")}, true},
		{"node is equality", domain.FissureSubscription{Node: str("Xin")}, false},
		{"tileset", domain.FissureSubscription{Tileset: str("Infested Ship")}, true},
		{"enemy mismatch", domain.FissureSubscription{Enemy: str("Grineer")}, false},
		{"category", domain.FissureSubscription{Category: category(domain.FissureNormal)}, true},
		{"category mismatch", domain.FissureSubscription{Category: category(domain.FissureSteelPath)}, false},
		{"one mismatch fails the rest", domain.FissureSubscription{Era: str("Axi"), Planet: str("Sedna")}, false},
		{"empty never matches", domain.FissureSubscription{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Matches(tt.sub, axi))
		})
	}
}

func TestFilterActive(t *testing.T) {
	active := []domain.Fissure{
		{Key: "a", Era: "Axi", Mission: "Survival", Planet: "Lua", Category: domain.FissureNormal},
		{Key: "b", Era: "Lith", Mission: "Capture", Planet: "Earth", Category: domain.FissureSteelPath},
		{Key: "c", Era: "Axi", Mission: "Defense", Planet: "Earth", Category: domain.FissureSteelPath},
	}
	keys := func(fs []domain.Fissure) []string {
		out := make([]string, 0, len(fs))
		for _, f := range fs {
			out = append(out, f.Key)
		}
		return out
	}

	tests := []struct {
		name string
		ff   FilterFields
		want []string
	}{
		{"no filter", FilterFields{}, []string{"a", "b", "c"}},
		{"blank filter", FilterFields{Era: "  "}, []string{"a", "b", "c"}},
		{"era", FilterFields{Era: "axi"}, []string{"a", "c"}},
		{"planet and category", FilterFields{Planet: "Earth", Category: "steelpath"}, []string{"b", "c"}},
		{"mission substring", FilterFields{Mission: "surv"}, []string{"a"}},
		{"unknown category", FilterFields{Category: "Railjack"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, keys(FilterActive(active, tt.ff)))
		})
	}
}
