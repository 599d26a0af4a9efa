package priority

import "github.com/osse101/FissureBot_Go/internal/domain"

// Catalog is the slice of the relic table the resolver reads.
type Catalog interface {
	HasRelic(id domain.RelicID) bool
	Drops(id domain.RelicID, refinement domain.Refinement) ([]domain.RelicDrop, error)
	Price(name string) (float64, error)
	Ducats(name string) (int, bool, error)
	SetOf(name string) (string, bool, error)
	RequiredCount(name string) (int, error)
	SetParts(set string) ([]string, error)
}
