package domain

import (
	"strings"
	"time"
)

// FissureCategory separates the three fissure rotations.
type FissureCategory string

const (
	FissureNormal    FissureCategory = "Normal"
	FissureSteelPath FissureCategory = "SteelPath"
	FissureVoidStorm FissureCategory = "VoidStorm"
)

// ParseFissureCategory matches a category name case-insensitively.
func ParseFissureCategory(s string) (FissureCategory, bool) {
	for _, c := range []FissureCategory{FissureNormal, FissureSteelPath, FissureVoidStorm} {
		if strings.EqualFold(string(c), s) {
			return c, true
		}
	}
	return "", false
}

// Fissure tier names as reported by the feed.
const (
	FissureEraOmnia = "Omnia"
)

// FissureTiers maps era names to their numeric tier.
var FissureTiers = map[string]int{
	string(EraLith):    1,
	string(EraMeso):    2,
	string(EraNeo):     3,
	string(EraAxi):     4,
	string(EraRequiem): 5,
	FissureEraOmnia:    6,
}

// Fissure is one active fissure occurrence. The key is feed-provided and
// never reused for another occurrence.
type Fissure struct {
	Key        string          `json:"key"`
	Era        string          `json:"era"`
	Mission    string          `json:"mission"`
	Node       string          `json:"node"`
	Planet     string          `json:"planet"`
	Tileset    string          `json:"tileset"`
	Enemy      string          `json:"enemy"`
	Tier       int             `json:"tier"`
	Category   FissureCategory `json:"category"`
	Activation time.Time       `json:"activation"`
	Duration   time.Duration   `json:"duration"`
}

// Expiry is activation plus duration.
func (f Fissure) Expiry() time.Time {
	return f.Activation.Add(f.Duration)
}

// ExpiredAt reports whether the fissure has run out at now.
func (f Fissure) ExpiredAt(now time.Time) bool {
	return !f.Expiry().After(now)
}

// FissureState is the lifecycle state of a tracked key.
type FissureState string

const (
	FissureUnseen  FissureState = "unseen"
	FissureActive  FissureState = "active"
	FissureExpired FissureState = "expired"
	FissureRemoved FissureState = "removed"
)
