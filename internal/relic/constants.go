package relic

import "github.com/osse101/FissureBot_Go/internal/domain"

// RelicsSchemaPath is the schema the relic table file is validated against.
const RelicsSchemaPath = "configs/schemas/relics.schema.json"

// MaxDropsPerRelic bounds the drop list of a single relic.
const MaxDropsPerRelic = 6

// rarityMass is the total probability of each class at a refinement.
// Refinement moves mass from Common toward Rare; Uncommon is what is left.
var rarityMass = map[domain.Refinement][3]float64{
	domain.RefinementIntact:      {0.76, 0.22, 0.02},
	domain.RefinementExceptional: {0.70, 0.26, 0.04},
	domain.RefinementFlawless:    {0.60, 0.34, 0.06},
	domain.RefinementRadiant:     {0.50, 0.40, 0.10},
}

// traceCost is the void trace cost of refining one relic.
var traceCost = map[domain.Refinement]int{
	domain.RefinementIntact:      0,
	domain.RefinementExceptional: 25,
	domain.RefinementFlawless:    50,
	domain.RefinementRadiant:     100,
}

// Error context messages for wrapped errors during table loading
const (
	ErrContextFailedToReadRelicFile  = "failed to read relic table file"
	ErrContextFailedToParseRelicFile = "failed to parse relic table"
	ErrContextSchemaValidation       = "relic table schema validation failed"
)

// Log messages
const (
	LogMsgRelicTableLoaded = "Relic table loaded"
	LogMsgUnusedItem       = "Item not dropped by any relic"
)

// Log field keys
const (
	LogFieldPath   = "path"
	LogFieldRelics = "relics"
	LogFieldItems  = "items"
	LogFieldSets   = "sets"
	LogFieldItem   = "item"
)
