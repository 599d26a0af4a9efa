package priority

import (
	"fmt"
	"sort"
	"time"

	"github.com/osse101/FissureBot_Go/internal/domain"
	"github.com/osse101/FissureBot_Go/internal/logger"
)

// Request describes one priority resolution.
type Request struct {
	Pools       []domain.RelicPool
	MinSetPrice float64
	Mode        domain.PriorityMode
	// Override is a saved name -> numeric rank list for this exact pool
	// signature. It is only honoured in auto mode.
	Override map[string]int
}

// Resolver builds drop priority orders over relic pools.
type Resolver struct {
	catalog Catalog
	cache   *orderCache
}

// NewResolver creates a resolver with an expiring order cache.
func NewResolver(catalog Catalog, cacheSize int, cacheTTL time.Duration) *Resolver {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	if cacheTTL <= 0 {
		cacheTTL = DefaultCacheTTL
	}
	return &Resolver{catalog: catalog, cache: newOrderCache(cacheSize, cacheTTL)}
}

type candidate struct {
	name   string
	price  float64
	ducats int
	band   domain.Band
}

// Resolve returns a total order over every drop of every pool.
//
// Platinum band ranks are 1..K by descending price; ducat band ranks are
// 101..101+M-1 by descending ducats. Ties fall back to name order.
func (r *Resolver) Resolve(req Request) (domain.PriorityOrder, error) {
	if req.MinSetPrice < 0 {
		return nil, domain.NewValidationError(domain.ErrMsgNegativeMinSetPrice)
	}
	mode := req.Mode
	if mode == "" {
		mode = domain.PriorityAuto
	}
	if _, ok := domain.ParsePriorityMode(string(mode)); !ok {
		return nil, domain.NewValidationError(fmt.Sprintf(domain.ErrMsgUnknownModeFmt, mode))
	}

	names, err := r.unionDrops(req.Pools)
	if err != nil {
		return nil, err
	}

	signature := domain.PoolsSignature(req.Pools)
	key := cacheKey(signature, req.MinSetPrice, mode)
	computed, ok := r.cache.Get(key)
	if !ok {
		computed, err = r.compute(signature, names, req.MinSetPrice, mode)
		if err != nil {
			return nil, err
		}
		r.cache.Set(key, computed)
	}

	if mode == domain.PriorityAuto && len(req.Override) > 0 {
		logger.Debug(LogMsgOverrideUsed, LogFieldSignature, signature)
		return applyOverride(computed, req.Override, signature), nil
	}
	return computed, nil
}

// unionDrops collects the distinct drop names of all pools.
func (r *Resolver) unionDrops(pools []domain.RelicPool) ([]string, error) {
	seen := make(map[string]bool)
	var names []string
	for _, pool := range pools {
		if len(pool.Relics) == 0 {
			return nil, domain.NewValidationError(domain.ErrMsgEmptyPool)
		}
		for _, id := range pool.Relics {
			if !r.catalog.HasRelic(id) {
				return nil, domain.NewValidationError(fmt.Sprintf(domain.ErrMsgUnknownRelicFmt, id.String()))
			}
			drops, err := r.catalog.Drops(id, pool.Refinement)
			if err != nil {
				return nil, fmt.Errorf("%w: drops of %s: %v", domain.ErrDataIntegrity, id, err)
			}
			for _, d := range drops {
				if !seen[d.Name] {
					seen[d.Name] = true
					names = append(names, d.Name)
				}
			}
		}
	}
	return names, nil
}

func (r *Resolver) compute(signature string, names []string, minSetPrice float64, mode domain.PriorityMode) (domain.PriorityOrder, error) {
	threshold := minSetPrice
	if mode == domain.PriorityForcePlat {
		threshold = 0
	}

	setValues := make(map[string]float64)
	var plat, ducat []candidate

	for _, name := range names {
		c, err := r.candidate(name, threshold, mode, setValues)
		if err != nil {
			return nil, err
		}
		if c.band == domain.BandDucat {
			ducat = append(ducat, c)
		} else {
			plat = append(plat, c)
		}
	}

	sort.Slice(plat, func(i, j int) bool {
		if plat[i].price != plat[j].price {
			return plat[i].price > plat[j].price
		}
		return plat[i].name < plat[j].name
	})
	sort.Slice(ducat, func(i, j int) bool {
		if ducat[i].ducats != ducat[j].ducats {
			return ducat[i].ducats > ducat[j].ducats
		}
		return ducat[i].name < ducat[j].name
	})

	order := make(domain.PriorityOrder, len(names))
	for i, c := range plat {
		order[c.name] = domain.Rank{Band: domain.BandPlat, Position: i + 1}
	}
	for i, c := range ducat {
		order[c.name] = domain.Rank{Band: domain.BandDucat, Position: i + 1}
	}
	logger.Debug(LogMsgOrderComputed,
		LogFieldSignature, signature,
		LogFieldMinSetPrice, minSetPrice,
		LogFieldMode, mode,
		LogFieldPlat, len(plat),
		LogFieldDucat, len(ducat))
	return order, nil
}

func (r *Resolver) candidate(name string, minSetPrice float64, mode domain.PriorityMode, setValues map[string]float64) (candidate, error) {
	price, err := r.catalog.Price(name)
	if err != nil {
		return candidate{}, fmt.Errorf("%w: price of %q: %v", domain.ErrDataIntegrity, name, err)
	}
	ducats, hasDucats, err := r.catalog.Ducats(name)
	if err != nil {
		return candidate{}, fmt.Errorf("%w: ducats of %q: %v", domain.ErrDataIntegrity, name, err)
	}
	c := candidate{name: name, price: price, ducats: ducats, band: domain.BandPlat}

	switch {
	case price <= 0:
		// Nothing to sell on the market; ducats are all it is worth.
		c.band = domain.BandDucat
	case mode == domain.PriorityForceDucat && hasDucats:
		c.band = domain.BandDucat
	case mode == domain.PriorityForceDucat:
		// no ducat value, so it stays in the platinum band
	default:
		set, inSet, err := r.catalog.SetOf(name)
		if err != nil {
			return candidate{}, fmt.Errorf("%w: set of %q: %v", domain.ErrDataIntegrity, name, err)
		}
		if !inSet {
			break
		}
		value, ok := setValues[set]
		if !ok {
			value, err = r.setValue(set)
			if err != nil {
				return candidate{}, err
			}
			setValues[set] = value
		}
		if value < minSetPrice {
			c.band = domain.BandDucat
		}
	}
	return c, nil
}

// setValue is the sum over the set's parts of price / required count.
func (r *Resolver) setValue(set string) (float64, error) {
	parts, err := r.catalog.SetParts(set)
	if err != nil {
		return 0, fmt.Errorf("%w: parts of %q: %v", domain.ErrDataIntegrity, set, err)
	}
	total := 0.0
	for _, part := range parts {
		price, err := r.catalog.Price(part)
		if err != nil {
			return 0, fmt.Errorf("%w: price of %q: %v", domain.ErrDataIntegrity, part, err)
		}
		required, err := r.catalog.RequiredCount(part)
		if err != nil {
			return 0, fmt.Errorf("%w: required count of %q: %v", domain.ErrDataIntegrity, part, err)
		}
		if required <= 0 {
			required = 1
		}
		total += price / float64(required)
	}
	return total, nil
}

// applyOverride ranks the pool's drops by the saved ranks. A saved drop
// takes its saved position within its saved band, and drops the override
// does not mention fill the open positions in computed order. Two drops
// wanting one position resolve saved first, then by name. Positions are
// renumbered so each band stays contiguous.
func applyOverride(computed domain.PriorityOrder, override map[string]int, signature string) domain.PriorityOrder {
	type entry struct {
		name string
		rank domain.Rank
	}
	type band struct {
		saved, rest []entry
	}

	bands := map[domain.Band]*band{}
	bandOf := func(b domain.Band) *band {
		if bands[b] == nil {
			bands[b] = &band{}
		}
		return bands[b]
	}
	for name, rank := range computed {
		if v, ok := override[name]; ok {
			r := domain.RankFromValue(v)
			bandOf(r.Band).saved = append(bandOf(r.Band).saved, entry{name: name, rank: r})
			continue
		}
		bandOf(rank.Band).rest = append(bandOf(rank.Band).rest, entry{name: name, rank: rank})
	}

	extra := 0
	for name := range override {
		if _, ok := computed[name]; !ok {
			extra++
		}
	}
	if extra > 0 {
		logger.Debug(LogMsgOverrideUnused, LogFieldSignature, signature, LogFieldExtra, extra)
	}

	byPosition := func(entries []entry) {
		sort.Slice(entries, func(i, j int) bool {
			if entries[i].rank.Position != entries[j].rank.Position {
				return entries[i].rank.Position < entries[j].rank.Position
			}
			return entries[i].name < entries[j].name
		})
	}

	order := make(domain.PriorityOrder, len(computed))
	for b, entries := range bands {
		byPosition(entries.saved)
		byPosition(entries.rest)

		saved, rest := entries.saved, entries.rest
		for pos := 1; len(saved)+len(rest) > 0; pos++ {
			var e entry
			if len(saved) > 0 && (len(rest) == 0 || saved[0].rank.Position <= pos) {
				e, saved = saved[0], saved[1:]
			} else {
				e, rest = rest[0], rest[1:]
			}
			order[e.name] = domain.Rank{Band: b, Position: pos}
		}
	}
	return order
}
