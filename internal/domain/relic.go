package domain

import (
	"fmt"
	"strings"
)

// Era is the relic generation a relic belongs to.
type Era string

const (
	EraLith    Era = "Lith"
	EraMeso    Era = "Meso"
	EraNeo     Era = "Neo"
	EraAxi     Era = "Axi"
	EraRequiem Era = "Requiem"
)

// Eras lists every known era in tier order.
var Eras = []Era{EraLith, EraMeso, EraNeo, EraAxi, EraRequiem}

// ParseEra matches an era name case-insensitively.
func ParseEra(s string) (Era, bool) {
	for _, e := range Eras {
		if strings.EqualFold(string(e), s) {
			return e, true
		}
	}
	return "", false
}

// Rarity is the drop class of a reward inside one relic.
type Rarity string

const (
	RarityCommon   Rarity = "Common"
	RarityUncommon Rarity = "Uncommon"
	RarityRare     Rarity = "Rare"
)

// Rarities in cumulative roll order.
var Rarities = []Rarity{RarityCommon, RarityUncommon, RarityRare}

// Refinement is the quality tier of an opened relic.
type Refinement string

const (
	RefinementIntact      Refinement = "Intact"
	RefinementExceptional Refinement = "Exceptional"
	RefinementFlawless    Refinement = "Flawless"
	RefinementRadiant     Refinement = "Radiant"
)

// Refinements lists refinements from lowest to highest.
var Refinements = []Refinement{RefinementIntact, RefinementExceptional, RefinementFlawless, RefinementRadiant}

// ParseRefinement accepts the full name or the conventional one-letter short form.
func ParseRefinement(s string) (Refinement, bool) {
	s = strings.TrimSpace(s)
	for _, r := range Refinements {
		if strings.EqualFold(string(r), s) || strings.EqualFold(string(r)[:1], s) {
			return r, true
		}
	}
	return "", false
}

// RelicID identifies a relic by era and name, e.g. Axi L4.
type RelicID struct {
	Era  Era    `json:"era"`
	Name string `json:"name"`
}

func (id RelicID) String() string {
	return fmt.Sprintf("%s %s", id.Era, id.Name)
}

// ParseRelicID parses "Axi L4" (case-insensitive era, upper-cased name).
// It only checks shape; existence is the relic table's job.
func ParseRelicID(s string) (RelicID, error) {
	fields := strings.Fields(s)
	if len(fields) != 2 {
		return RelicID{}, NewValidationError(fmt.Sprintf(ErrMsgUnknownRelicFmt, s))
	}
	era, ok := ParseEra(fields[0])
	if !ok {
		return RelicID{}, NewValidationError(fmt.Sprintf(ErrMsgUnknownRelicFmt, s))
	}
	return RelicID{Era: era, Name: strings.ToUpper(fields[1])}, nil
}

// RelicDrop is one reward slot of a relic.
type RelicDrop struct {
	Name   string `json:"name"`
	Rarity Rarity `json:"rarity"`
}

// Relic is immutable reference data.
type Relic struct {
	ID      RelicID     `json:"id"`
	Vaulted bool        `json:"vaulted"`
	Drops   []RelicDrop `json:"drops"`
}

// ItemValue is the market data of a drop. Ducats and Set are optional.
type ItemValue struct {
	Name     string   `json:"name"`
	Price    float64  `json:"price"`
	Ducats   *int     `json:"ducats,omitempty"`
	Set      string   `json:"set,omitempty"`
	Required int      `json:"required,omitempty"`
	Tags     []string `json:"tags,omitempty"`
}

// RelicPool is a list of relics opened at one refinement. A pool with more
// than one relic contributes one uniformly chosen relic per roll.
type RelicPool struct {
	Relics     []RelicID  `json:"relics"`
	Refinement Refinement `json:"refinement"`
}

// Signature is a stable key of the pool contents, independent of order.
func (p RelicPool) Signature() string {
	names := make([]string, 0, len(p.Relics))
	for _, r := range p.Relics {
		names = append(names, r.String())
	}
	sortStrings(names)
	return strings.Join(names, ",") + "@" + string(p.Refinement)
}

// PoolsSignature joins the signatures of multiple pools in order.
func PoolsSignature(pools []RelicPool) string {
	parts := make([]string, 0, len(pools))
	for _, p := range pools {
		parts = append(parts, p.Signature())
	}
	return strings.Join(parts, "|")
}
