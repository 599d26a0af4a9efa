package sse

import (
	"context"

	"github.com/osse101/FissureBot_Go/internal/domain"
	"github.com/osse101/FissureBot_Go/internal/logger"
)

// Publisher forwards newly active fissures from the poll loop to the hub.
type Publisher struct {
	hub *Hub
}

// NewPublisher returns a fissure listener that broadcasts on hub.
func NewPublisher(hub *Hub) *Publisher {
	return &Publisher{hub: hub}
}

// FissuresActivated broadcasts one event per fissure, in poll order.
func (p *Publisher) FissuresActivated(ctx context.Context, activated []domain.Fissure) {
	log := logger.FromContext(ctx)
	for _, f := range activated {
		log.Debug(LogMsgEventBroadcast, LogFieldEventType, EventTypeFissureActivated, LogFieldFissure, f.Key)
		p.hub.Broadcast(EventTypeFissureActivated, NewFissureActivatedPayload(f))
	}
}
