package simulation

import (
	"fmt"

	"github.com/osse101/FissureBot_Go/internal/domain"
	"github.com/osse101/FissureBot_Go/internal/relic"
)

// Catalog is the relic table surface the engine reads.
type Catalog interface {
	HasRelic(id domain.RelicID) bool
	Drops(id domain.RelicID, refinement domain.Refinement) ([]domain.RelicDrop, error)
	Chances(refinement domain.Refinement) (relic.RarityChances, error)
	TraceCost(refinement domain.Refinement) (int, error)
	Price(name string) (float64, error)
	Ducats(name string) (int, bool, error)
}

// Rewards is a multiset of drop names.
type Rewards map[string]int

// Total is the number of rewards in the multiset.
func (r Rewards) Total() int {
	n := 0
	for _, c := range r {
		n += c
	}
	return n
}

// Roll is one slot of one reward screen.
type Roll struct {
	Pool   int            `json:"pool"` // 0 is the primary pool
	Relic  domain.RelicID `json:"relic"`
	Drop   string         `json:"drop"`
	Rarity domain.Rarity  `json:"rarity"`
}

// Screen is the unfiltered reward screen of one run.
type Screen struct {
	Run   int    `json:"run"`
	Rolls []Roll `json:"rolls"`
	Kept  []Roll `json:"kept"`
}

// Plan is a validated sampling request.
type Plan struct {
	Primary  domain.RelicPool
	Offcycle []domain.RelicPool
	Style    domain.StyleSpec
	Runs     int
	Order    domain.PriorityOrder
	// MaxScreens is how many reward screens to record; zero records none.
	MaxScreens int
}

// Result is what the sampler kept.
type Result struct {
	Runs int `json:"runs"`
	// Kept merges every pool's kept rewards.
	Kept Rewards `json:"kept"`
	// PoolKept and Slots are indexed like Plan pools: primary first.
	PoolKept []Rewards `json:"pool_kept"`
	Slots    []int     `json:"slots"`
	Screens  []Screen  `json:"screens,omitempty"`
}

// rollTable is one relic at one refinement, ready to roll.
type rollTable struct {
	relic   domain.RelicID
	bounds  [2]float64 // cumulative Common and Uncommon upper bounds
	classes [3][]string
}

// roll picks a class using cumulative bounds, then a drop uniformly within it.
func (t *rollTable) roll(rnd func() float64) (string, domain.Rarity) {
	u := rnd()
	class := 2
	switch {
	case u < t.bounds[0]:
		class = 0
	case u < t.bounds[1]:
		class = 1
	}
	// Rounding can leave a sliver above an empty class's bound.
	for len(t.classes[class]) == 0 {
		class = (class + 2) % 3
	}
	drops := t.classes[class]
	return drops[pick(len(drops), rnd())], domain.Rarities[class]
}

type compiledPool struct {
	tables []*rollTable
}

func (p *compiledPool) roll(index int, rnd func() float64) Roll {
	t := p.tables[0]
	if len(p.tables) > 1 {
		t = p.tables[pick(len(p.tables), rnd())]
	}
	drop, rarity := t.roll(rnd)
	return Roll{Pool: index, Relic: t.relic, Drop: drop, Rarity: rarity}
}

// Sampler reproduces the relic reward screen across run styles.
// A Sampler is not safe for concurrent use; build one per simulation.
type Sampler struct {
	catalog Catalog
	rnd     func() float64
}

// NewSampler creates a sampler drawing uniform [0,1) values from rnd.
func NewSampler(catalog Catalog, rnd func() float64) *Sampler {
	return &Sampler{catalog: catalog, rnd: rnd}
}

// Simulate rolls plan.Runs reward screens. Every active pool keeps exactly
// one reward per run: the slot whose drop has the best priority rank.
func (s *Sampler) Simulate(plan Plan) (*Result, error) {
	if plan.Runs <= 0 {
		return nil, domain.NewValidationError(ErrMsgNoRuns)
	}

	pools := make([]*compiledPool, 0, 1+len(plan.Offcycle))
	for _, p := range append([]domain.RelicPool{plan.Primary}, plan.Offcycle...) {
		cp, err := s.compile(p)
		if err != nil {
			return nil, err
		}
		pools = append(pools, cp)
	}

	res := &Result{
		Runs:     plan.Runs,
		Kept:     make(Rewards),
		PoolKept: make([]Rewards, len(pools)),
		Slots:    make([]int, len(pools)),
	}
	for i := range res.PoolKept {
		res.PoolKept[i] = make(Rewards)
	}

	alloc := make([]int, len(pools))
	scratch := make([]int, len(plan.Offcycle))
	slotRolls := make([]Roll, 0, plan.Style.SquadSlots)

	for run := 1; run <= plan.Runs; run++ {
		alloc[0] = plan.Style.PrimarySlots
		allocateSlots(plan.Style.FreeSlots(), alloc[1:], scratch, s.rnd)

		var screen *Screen
		if run <= plan.MaxScreens {
			screen = &Screen{Run: run}
		}

		for i, cp := range pools {
			if alloc[i] == 0 {
				continue
			}
			slotRolls = slotRolls[:0]
			for slot := 0; slot < alloc[i]; slot++ {
				slotRolls = append(slotRolls, cp.roll(i, s.rnd))
			}
			kept := keepBest(slotRolls, plan.Order)

			res.Slots[i] += alloc[i]
			res.PoolKept[i][kept.Drop]++
			res.Kept[kept.Drop]++

			if screen != nil {
				screen.Rolls = append(screen.Rolls, slotRolls...)
				screen.Kept = append(screen.Kept, kept)
			}
		}

		if screen != nil {
			res.Screens = append(res.Screens, *screen)
		}
	}

	return res, nil
}

func (s *Sampler) compile(pool domain.RelicPool) (*compiledPool, error) {
	if len(pool.Relics) == 0 {
		return nil, domain.NewValidationError(domain.ErrMsgEmptyPool)
	}
	chances, err := s.catalog.Chances(pool.Refinement)
	if err != nil {
		return nil, domain.NewValidationError(fmt.Sprintf(domain.ErrMsgUnknownRefinementFmt, pool.Refinement))
	}

	cp := &compiledPool{tables: make([]*rollTable, 0, len(pool.Relics))}
	for _, id := range pool.Relics {
		drops, err := s.catalog.Drops(id, pool.Refinement)
		if err != nil {
			return nil, fmt.Errorf("%w: %s %s: %v", domain.ErrDataIntegrity, ErrContextCompilePool, id, err)
		}
		cp.tables = append(cp.tables, newRollTable(id, drops, chances))
	}
	return cp, nil
}

// newRollTable drops empty classes and renormalizes the remaining mass so a
// relic with no drop of some class never rolls into it.
func newRollTable(id domain.RelicID, drops []domain.RelicDrop, chances relic.RarityChances) *rollTable {
	t := &rollTable{relic: id}
	for _, d := range drops {
		for c, r := range domain.Rarities {
			if d.Rarity == r {
				t.classes[c] = append(t.classes[c], d.Name)
			}
		}
	}

	var mass [3]float64
	total := 0.0
	for c, r := range domain.Rarities {
		if len(t.classes[c]) > 0 {
			mass[c] = chances.Mass(r)
			total += mass[c]
		}
	}
	if total == 0 {
		// Every present class has zero mass; fall back to uniform.
		for c := range mass {
			if len(t.classes[c]) > 0 {
				mass[c] = 1
				total++
			}
		}
	}

	// Draws are in [0,1), so a class with no mass is never chosen.
	t.bounds[0] = mass[0] / total
	t.bounds[1] = (mass[0] + mass[1]) / total
	return t
}

// allocateSlots spreads free squad slots over the offcycle pools for one run.
//
// With no more pools than slots, each pool gets free/len(alloc) slots and the
// remainder goes to pools drawn without replacement. With more pools than
// slots, free pools are drawn without replacement and get one slot each.
func allocateSlots(free int, alloc []int, scratch []int, rnd func() float64) {
	k := len(alloc)
	if k == 0 {
		return
	}
	if free <= 0 {
		clear(alloc)
		return
	}

	extra := free
	base := 0
	if k <= free {
		base = free / k
		extra = free % k
	}
	for i := range alloc {
		alloc[i] = base
	}
	for _, idx := range sampleWithoutReplacement(k, extra, scratch, rnd) {
		alloc[idx]++
	}
}

// sampleWithoutReplacement returns n distinct indexes in [0,k) using a
// partial Fisher-Yates shuffle over scratch.
func sampleWithoutReplacement(k, n int, scratch []int, rnd func() float64) []int {
	if n <= 0 {
		return nil
	}
	scratch = scratch[:k]
	for i := range scratch {
		scratch[i] = i
	}
	for i := 0; i < n; i++ {
		j := i + pick(k-i, rnd())
		scratch[i], scratch[j] = scratch[j], scratch[i]
	}
	return scratch[:n]
}

// keepBest is the argmin of the slot rolls by priority rank. Drops missing
// from the order lose to ranked ones; name order breaks the remaining ties.
func keepBest(rolls []Roll, order domain.PriorityOrder) Roll {
	best := rolls[0]
	for _, r := range rolls[1:] {
		if better(r.Drop, best.Drop, order) {
			best = r
		}
	}
	return best
}

func better(a, b string, order domain.PriorityOrder) bool {
	if a == b {
		return false
	}
	ra, okA := order.Rank(a)
	rb, okB := order.Rank(b)
	switch {
	case okA && okB:
		if ra != rb {
			return ra.Less(rb)
		}
	case okA != okB:
		return okA
	}
	return a < b
}

// pick maps a uniform [0,1) draw onto an index in [0,n).
func pick(n int, u float64) int {
	i := int(u * float64(n))
	if i >= n {
		i = n - 1
	}
	return i
}
