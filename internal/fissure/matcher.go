package fissure

import (
	"strings"

	"github.com/osse101/FissureBot_Go/internal/domain"
)

// patternField is one optional subscription field and how it compares.
type patternField struct {
	want  func(s *domain.FissureSubscription) (string, bool)
	have  func(f *domain.Fissure) string
	match func(want, have string) bool
}

func optional(p *string) (string, bool) {
	if p == nil {
		return "", false
	}
	return *p, true
}

func equalFold(want, have string) bool { return strings.EqualFold(want, have) }

func containsFold(want, have string) bool {
	return strings.Contains(strings.ToLower(have), strings.ToLower(want))
}

// patternFields covers every string field of a subscription. MaxTier is
// numeric and checked separately.
var patternFields = []patternField{
	{
		want:  func(s *domain.FissureSubscription) (string, bool) { return optional(s.Era) },
		have:  func(f *domain.Fissure) string { return f.Era },
		match: equalFold,
	},
	{
		want:  func(s *domain.FissureSubscription) (string, bool) { return optional(s.Mission) },
		have:  func(f *domain.Fissure) string { return f.Mission },
		match: containsFold,
	},
	{
		want:  func(s *domain.FissureSubscription) (string, bool) { return optional(s.Node) },
		have:  func(f *domain.Fissure) string { return f.Node },
		match: equalFold,
	},
	{
		want:  func(s *domain.FissureSubscription) (string, bool) { return optional(s.Planet) },
		have:  func(f *domain.Fissure) string { return f.Planet },
		match: equalFold,
	},
	{
		want:  func(s *domain.FissureSubscription) (string, bool) { return optional(s.Tileset) },
		have:  func(f *domain.Fissure) string { return f.Tileset },
		match: equalFold,
	},
	{
		want:  func(s *domain.FissureSubscription) (string, bool) { return optional(s.Enemy) },
		have:  func(f *domain.Fissure) string { return f.Enemy },
		match: equalFold,
	},
	{
		want: func(s *domain.FissureSubscription) (string, bool) {
			if s.Category == nil {
				return "", false
			}
			return string(*s.Category), true
		},
		have:  func(f *domain.Fissure) string { return string(f.Category) },
		match: equalFold,
	},
}

// Matches reports whether every set field of sub agrees with f. Mission
// matches on a case-insensitive substring and MaxTier on f.Tier <= MaxTier.
// A subscription with no fields set never matches.
func Matches(sub domain.FissureSubscription, f domain.Fissure) bool {
	if sub.IsEmpty() {
		return false
	}
	for _, field := range patternFields {
		want, ok := field.want(&sub)
		if ok && !field.match(want, field.have(&f)) {
			return false
		}
	}
	if sub.MaxTier != nil && f.Tier > *sub.MaxTier {
		return false
	}
	return true
}

// FilterFields are ad hoc list filters. Empty fields are wildcards.
type FilterFields struct {
	Era      string
	Mission  string
	Planet   string
	Category string
}

// Filter builds a match pattern from list filters and reports whether any
// field was set. An unknown category matches nothing.
func Filter(ff FilterFields) (domain.FissureSubscription, bool) {
	var sub domain.FissureSubscription
	set := func(dst **string, v string) {
		if v = strings.TrimSpace(v); v != "" {
			*dst = &v
		}
	}
	set(&sub.Era, ff.Era)
	set(&sub.Mission, ff.Mission)
	set(&sub.Planet, ff.Planet)
	if v := strings.TrimSpace(ff.Category); v != "" {
		c, ok := domain.ParseFissureCategory(v)
		if !ok {
			c = domain.FissureCategory(v)
		}
		sub.Category = &c
	}
	return sub, !sub.IsEmpty()
}

// FilterActive keeps the fissures matching the list filters.
func FilterActive(active []domain.Fissure, ff FilterFields) []domain.Fissure {
	pattern, filtered := Filter(ff)
	if !filtered {
		return active
	}
	out := make([]domain.Fissure, 0, len(active))
	for _, f := range active {
		if Matches(pattern, f) {
			out = append(out, f)
		}
	}
	return out
}
