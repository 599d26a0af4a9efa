package sse

import (
	"time"

	"github.com/osse101/FissureBot_Go/internal/domain"
)

// FissureActivatedPayload is the SSE payload for a newly active fissure
type FissureActivatedPayload struct {
	Key      string                 `json:"key"`
	Era      string                 `json:"era"`
	Tier     int                    `json:"tier"`
	Mission  string                 `json:"mission"`
	Node     string                 `json:"node"`
	Planet   string                 `json:"planet"`
	Tileset  string                 `json:"tileset,omitempty"`
	Enemy    string                 `json:"enemy,omitempty"`
	Category domain.FissureCategory `json:"category"`
	Expiry   time.Time              `json:"expiry"`
}

// NewFissureActivatedPayload flattens f for the stream.
func NewFissureActivatedPayload(f domain.Fissure) FissureActivatedPayload {
	return FissureActivatedPayload{
		Key:      f.Key,
		Era:      f.Era,
		Tier:     f.Tier,
		Mission:  f.Mission,
		Node:     f.Node,
		Planet:   f.Planet,
		Tileset:  f.Tileset,
		Enemy:    f.Enemy,
		Category: f.Category,
		Expiry:   f.Expiry(),
	}
}
