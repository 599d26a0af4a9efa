package domain

import (
	"strings"
)

// RunStyle describes how many squad members share a relic per mission.
type RunStyle string

const (
	StyleSolo RunStyle = "solo"
	Style1b1  RunStyle = "1b1"
	Style2b2  RunStyle = "2b2"
	Style3b3  RunStyle = "3b3"
	Style4b4  RunStyle = "4b4"
	Style8b8  RunStyle = "8b8"
)

// StyleSpec is the fixed shape of a run style.
//
// Runs per cycle is the rational RollsNum/RollsDen; a cycle count is only
// valid when cycles*RollsNum is divisible by RollsDen.
type StyleSpec struct {
	Style        RunStyle
	RollsNum     int
	RollsDen     int
	PrimarySlots int
	SquadSlots   int
	MaxOffcycle  int
}

// FreeSlots is the number of reward slots per run left to offcycle pools.
func (s StyleSpec) FreeSlots() int {
	return s.SquadSlots - s.PrimarySlots
}

// RollsPerCycle returns the rational as a float for rate normalization.
func (s StyleSpec) RollsPerCycle() float64 {
	return float64(s.RollsNum) / float64(s.RollsDen)
}

// Runs returns the number of runs for a cycle count and whether it is integral.
func (s StyleSpec) Runs(cycles int) (int, bool) {
	n := cycles * s.RollsNum
	if n%s.RollsDen != 0 {
		return 0, false
	}
	return n / s.RollsDen, true
}

var styleSpecs = map[RunStyle]StyleSpec{
	StyleSolo: {Style: StyleSolo, RollsNum: 1, RollsDen: 1, PrimarySlots: 1, SquadSlots: 1, MaxOffcycle: 0},
	Style1b1:  {Style: Style1b1, RollsNum: 4, RollsDen: 1, PrimarySlots: 1, SquadSlots: 4, MaxOffcycle: 4},
	Style2b2:  {Style: Style2b2, RollsNum: 2, RollsDen: 1, PrimarySlots: 2, SquadSlots: 4, MaxOffcycle: 2},
	Style3b3:  {Style: Style3b3, RollsNum: 4, RollsDen: 3, PrimarySlots: 3, SquadSlots: 4, MaxOffcycle: 1},
	Style4b4:  {Style: Style4b4, RollsNum: 1, RollsDen: 1, PrimarySlots: 4, SquadSlots: 4, MaxOffcycle: 0},
	Style8b8:  {Style: Style8b8, RollsNum: 1, RollsDen: 2, PrimarySlots: 8, SquadSlots: 8, MaxOffcycle: 0},
}

// Styles in display order.
var Styles = []RunStyle{StyleSolo, Style1b1, Style2b2, Style3b3, Style4b4, Style8b8}

// Spec returns the fixed shape of the style.
func (s RunStyle) Spec() (StyleSpec, bool) {
	spec, ok := styleSpecs[s]
	return spec, ok
}

// ParseRunStyle accepts "solo", "4b4", "4B4" and so on.
func ParseRunStyle(s string) (RunStyle, bool) {
	st := RunStyle(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := styleSpecs[st]; ok {
		return st, true
	}
	return "", false
}
