package sse

import "time"

// Buffer sizes
const (
	// BroadcastBufferSize is the buffer size for the broadcast channel
	BroadcastBufferSize = 100

	// ClientEventBuffer is the buffer size for each client's event channel
	ClientEventBuffer = 50
)

// SSE connection settings
const (
	// KeepaliveInterval is how often to send keepalive pings
	KeepaliveInterval = 30 * time.Second
)

// Event types for SSE
const (
	// EventTypeFissureActivated is sent once per fissure when it first becomes active
	EventTypeFissureActivated = "fissure.activated"

	// EventTypeConnected is the first event on every stream
	EventTypeConnected = "connected"

	// EventTypeKeepalive is the keepalive ping event type
	EventTypeKeepalive = "keepalive"
)

// QueryTypes is the comma separated event type filter parameter.
const QueryTypes = "types"

// Log messages
const (
	LogMsgClientConnected    = "SSE client connected"
	LogMsgClientDisconnected = "SSE client disconnected"
	LogMsgEventBroadcast     = "Broadcasting SSE event"
	LogMsgEventDropped       = "SSE broadcast buffer full, event dropped"
	LogMsgWriteError         = "Failed to write SSE event"
	LogMsgStreamUnsupported  = "SSE not supported"
)

// Log field keys
const (
	LogFieldClientID     = "client_id"
	LogFieldFilters      = "filters"
	LogFieldTotalClients = "total_clients"
	LogFieldEventType    = "event_type"
	LogFieldFissure      = "fissure"
	LogFieldError        = "error"
)
