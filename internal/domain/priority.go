package domain

import "sort"

// Band separates drops valued in platinum from those valued in ducats.
type Band int

const (
	BandPlat Band = iota
	BandDucat
)

func (b Band) String() string {
	if b == BandDucat {
		return "ducat"
	}
	return "plat"
}

// DucatRankOffset marks the ducat band in numeric ranks: ranks above it count as ducats.
const DucatRankOffset = 100

// Rank is a drop's position in a priority order. Lower sorts first.
type Rank struct {
	Band     Band `json:"band"`
	Position int  `json:"position"` // 1-based inside the band
}

// Value is the flat numeric rank: 1..K for platinum, 101.. for ducats.
func (r Rank) Value() int {
	if r.Band == BandDucat {
		return DucatRankOffset + r.Position
	}
	return r.Position
}

// Less orders by band, then position.
func (r Rank) Less(o Rank) bool {
	if r.Band != o.Band {
		return r.Band < o.Band
	}
	return r.Position < o.Position
}

// RankFromValue converts a flat numeric rank back into a Rank.
func RankFromValue(v int) Rank {
	if v > DucatRankOffset {
		return Rank{Band: BandDucat, Position: v - DucatRankOffset}
	}
	return Rank{Band: BandPlat, Position: v}
}

// PriorityMode selects how an order is produced.
type PriorityMode string

const (
	PriorityAuto       PriorityMode = "auto"
	PriorityForcePlat  PriorityMode = "plat"
	PriorityForceDucat PriorityMode = "ducat"
)

// ParsePriorityMode defaults an empty string to auto.
func ParsePriorityMode(s string) (PriorityMode, bool) {
	switch PriorityMode(s) {
	case "", PriorityAuto:
		return PriorityAuto, true
	case PriorityForcePlat, PriorityForceDucat:
		return PriorityMode(s), true
	}
	return "", false
}

// PriorityOrder is a total order over drop names.
type PriorityOrder map[string]Rank

// Rank returns the drop's rank; unknown drops sort after everything.
func (o PriorityOrder) Rank(name string) (Rank, bool) {
	r, ok := o[name]
	return r, ok
}

// RankedDrop is one line of an order listing.
type RankedDrop struct {
	Name string `json:"name"`
	Rank int    `json:"rank"`
	Band Band   `json:"band"`
}

// Sorted lists the order from highest priority to lowest.
func (o PriorityOrder) Sorted() []RankedDrop {
	out := make([]RankedDrop, 0, len(o))
	for name, r := range o {
		out = append(out, RankedDrop{Name: name, Rank: r.Value(), Band: r.Band})
	}
	sort.Slice(out, func(i, j int) bool {
		ri, rj := o[out[i].Name], o[out[j].Name]
		if ri != rj {
			return ri.Less(rj)
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Values flattens the order into name -> numeric rank, the persisted override shape.
func (o PriorityOrder) Values() map[string]int {
	out := make(map[string]int, len(o))
	for name, r := range o {
		out[name] = r.Value()
	}
	return out
}

func sortStrings(s []string) {
	sort.Strings(s)
}
