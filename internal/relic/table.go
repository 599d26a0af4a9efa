package relic

import (
	"fmt"
	"sort"

	"github.com/osse101/FissureBot_Go/internal/domain"
)

// Data is the on-disk shape of the relic table.
type Data struct {
	Version string             `json:"version"`
	Relics  []domain.Relic     `json:"relics"`
	Items   []domain.ItemValue `json:"items"`
	Sets    []SetDef           `json:"sets"`
}

// SetDef lists the parts that make up a craftable set.
type SetDef struct {
	Name  string   `json:"name"`
	Parts []string `json:"parts"`
}

// RarityChances is the class probability mass at one refinement.
type RarityChances struct {
	Common   float64
	Uncommon float64
	Rare     float64
}

// Mass returns the class mass of rarity.
func (c RarityChances) Mass(r domain.Rarity) float64 {
	switch r {
	case domain.RarityCommon:
		return c.Common
	case domain.RarityUncommon:
		return c.Uncommon
	case domain.RarityRare:
		return c.Rare
	}
	return 0
}

// Table is immutable relic reference data. It is safe for concurrent reads.
type Table struct {
	relics map[domain.RelicID]*domain.Relic
	items  map[string]domain.ItemValue
	sets   map[string][]string
	byEra  map[domain.Era][]domain.RelicID
}

// NewTable indexes and cross-checks data. Every drop must have an item
// entry and every set part must exist.
func NewTable(data Data) (*Table, error) {
	t := &Table{
		relics: make(map[domain.RelicID]*domain.Relic, len(data.Relics)),
		items:  make(map[string]domain.ItemValue, len(data.Items)),
		sets:   make(map[string][]string, len(data.Sets)),
		byEra:  make(map[domain.Era][]domain.RelicID),
	}

	for _, item := range data.Items {
		if item.Name == "" {
			return nil, fmt.Errorf("%w: item with empty name", domain.ErrDataIntegrity)
		}
		if _, dup := t.items[item.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate item %q", domain.ErrDataIntegrity, item.Name)
		}
		if item.Required <= 0 {
			item.Required = 1
		}
		t.items[item.Name] = item
	}

	for _, set := range data.Sets {
		for _, part := range set.Parts {
			item, ok := t.items[part]
			if !ok {
				return nil, fmt.Errorf("%w: set %q part %q has no item entry", domain.ErrDataIntegrity, set.Name, part)
			}
			if item.Set != set.Name {
				return nil, fmt.Errorf("%w: part %q claims set %q, listed under %q", domain.ErrDataIntegrity, part, item.Set, set.Name)
			}
		}
		t.sets[set.Name] = append([]string(nil), set.Parts...)
	}

	for i := range data.Relics {
		relic := data.Relics[i]
		if _, ok := relicEra(relic.ID.Era); !ok {
			return nil, fmt.Errorf("%w: relic %s has unknown era", domain.ErrDataIntegrity, relic.ID)
		}
		if len(relic.Drops) == 0 || len(relic.Drops) > MaxDropsPerRelic {
			return nil, fmt.Errorf("%w: relic %s has %d drops", domain.ErrDataIntegrity, relic.ID, len(relic.Drops))
		}
		for _, drop := range relic.Drops {
			if _, ok := t.items[drop.Name]; !ok {
				return nil, fmt.Errorf("%w: relic %s drop %q has no item entry", domain.ErrDataIntegrity, relic.ID, drop.Name)
			}
			if _, ok := rarityIndex(drop.Rarity); !ok {
				return nil, fmt.Errorf("%w: relic %s drop %q has rarity %q", domain.ErrDataIntegrity, relic.ID, drop.Name, drop.Rarity)
			}
		}
		if _, dup := t.relics[relic.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate relic %s", domain.ErrDataIntegrity, relic.ID)
		}
		relic.Drops = append([]domain.RelicDrop(nil), relic.Drops...)
		t.relics[relic.ID] = &relic
		t.byEra[relic.ID.Era] = append(t.byEra[relic.ID.Era], relic.ID)
	}

	for era := range t.byEra {
		ids := t.byEra[era]
		sort.Slice(ids, func(i, j int) bool { return ids[i].Name < ids[j].Name })
	}

	return t, nil
}

// HasRelic reports whether id is known.
func (t *Table) HasRelic(id domain.RelicID) bool {
	_, ok := t.relics[id]
	return ok
}

// Relic returns the relic definition.
func (t *Table) Relic(id domain.RelicID) (*domain.Relic, error) {
	r, ok := t.relics[id]
	if !ok {
		return nil, fmt.Errorf("%w: relic %s", domain.ErrNotFound, id)
	}
	return r, nil
}

// RelicsByEra lists relic ids of one era sorted by name.
func (t *Table) RelicsByEra(era domain.Era) []domain.RelicID {
	return append([]domain.RelicID(nil), t.byEra[era]...)
}

// Drops returns the relic's drops in declared order. Every refinement has
// the same drop list; only the odds differ.
func (t *Table) Drops(id domain.RelicID, refinement domain.Refinement) ([]domain.RelicDrop, error) {
	if _, ok := rarityMass[refinement]; !ok {
		return nil, fmt.Errorf("%w: refinement %q", domain.ErrNotFound, refinement)
	}
	r, err := t.Relic(id)
	if err != nil {
		return nil, err
	}
	return r.Drops, nil
}

// Chances returns the class mass table of a refinement.
func (t *Table) Chances(refinement domain.Refinement) (RarityChances, error) {
	m, ok := rarityMass[refinement]
	if !ok {
		return RarityChances{}, fmt.Errorf("%w: refinement %q", domain.ErrNotFound, refinement)
	}
	return RarityChances{Common: m[0], Uncommon: m[1], Rare: m[2]}, nil
}

// DropProbability is the chance of one specific drop of the given class:
// the class mass split evenly across that class's drops in the relic.
func (t *Table) DropProbability(id domain.RelicID, rarity domain.Rarity, refinement domain.Refinement) (float64, error) {
	chances, err := t.Chances(refinement)
	if err != nil {
		return 0, err
	}
	r, err := t.Relic(id)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, d := range r.Drops {
		if d.Rarity == rarity {
			n++
		}
	}
	if n == 0 {
		return 0, nil
	}
	return chances.Mass(rarity) / float64(n), nil
}

// TraceCost is the void trace cost of refining one relic.
func (t *Table) TraceCost(refinement domain.Refinement) (int, error) {
	c, ok := traceCost[refinement]
	if !ok {
		return 0, fmt.Errorf("%w: refinement %q", domain.ErrNotFound, refinement)
	}
	return c, nil
}

// Item returns the market data of a drop.
func (t *Table) Item(name string) (domain.ItemValue, error) {
	item, ok := t.items[name]
	if !ok {
		return domain.ItemValue{}, fmt.Errorf("%w: item %q", domain.ErrNotFound, name)
	}
	return item, nil
}

// Price is the platinum value of a drop; zero means it has no platinum price.
func (t *Table) Price(name string) (float64, error) {
	item, err := t.Item(name)
	if err != nil {
		return 0, err
	}
	return item.Price, nil
}

// Ducats returns the ducat value, or false when the drop cannot be sold for ducats.
func (t *Table) Ducats(name string) (int, bool, error) {
	item, err := t.Item(name)
	if err != nil {
		return 0, false, err
	}
	if item.Ducats == nil {
		return 0, false, nil
	}
	return *item.Ducats, true, nil
}

// SetOf returns the set a part belongs to, or false for standalone drops.
func (t *Table) SetOf(name string) (string, bool, error) {
	item, err := t.Item(name)
	if err != nil {
		return "", false, err
	}
	if item.Set == "" {
		return "", false, nil
	}
	return item.Set, true, nil
}

// RequiredCount is how many copies of the part a set needs.
func (t *Table) RequiredCount(name string) (int, error) {
	item, err := t.Item(name)
	if err != nil {
		return 0, err
	}
	return item.Required, nil
}

// SetParts lists the parts of a set.
func (t *Table) SetParts(set string) ([]string, error) {
	parts, ok := t.sets[set]
	if !ok {
		return nil, fmt.Errorf("%w: set %q", domain.ErrNotFound, set)
	}
	return append([]string(nil), parts...), nil
}

// Counts reports the table size for logging.
func (t *Table) Counts() (relics, items, sets int) {
	return len(t.relics), len(t.items), len(t.sets)
}

func relicEra(e domain.Era) (domain.Era, bool) {
	return domain.ParseEra(string(e))
}

func rarityIndex(r domain.Rarity) (int, bool) {
	for i, x := range domain.Rarities {
		if x == r {
			return i, true
		}
	}
	return 0, false
}
