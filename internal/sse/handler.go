package sse

import (
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// Handler returns an HTTP handler for SSE connections.
// The optional "types" query parameter narrows the stream to a comma
// separated list of event types.
func Handler(hub *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.Header().Set("Access-Control-Allow-Origin", "*")

		// Middleware wrappers expose the connection through Unwrap.
		rc := http.NewResponseController(w)
		if err := rc.Flush(); err != nil {
			http.Error(w, LogMsgStreamUnsupported, http.StatusInternalServerError)
			return
		}
		// Streams outlive the server's write timeout.
		_ = rc.SetWriteDeadline(time.Time{})

		var eventTypes []string
		if filterParam := r.URL.Query().Get(QueryTypes); filterParam != "" {
			for _, t := range strings.Split(filterParam, ",") {
				if t = strings.TrimSpace(t); t != "" {
					eventTypes = append(eventTypes, t)
				}
			}
		}

		client := hub.Register(eventTypes)
		slog.Info(LogMsgClientConnected,
			LogFieldClientID, client.ID,
			LogFieldFilters, eventTypes,
			LogFieldTotalClients, hub.ClientCount())

		defer func() {
			hub.Unregister(client.ID)
			slog.Info(LogMsgClientDisconnected,
				LogFieldClientID, client.ID,
				LogFieldTotalClients, hub.ClientCount())
		}()

		connectEvent := Event{
			ID:        client.ID,
			Type:      EventTypeConnected,
			Timestamp: time.Now().Unix(),
			Payload: map[string]any{
				LogFieldClientID: client.ID,
				LogFieldFilters:  eventTypes,
			},
		}
		if !writeEvent(w, rc, connectEvent) {
			return
		}

		ticker := time.NewTicker(KeepaliveInterval)
		defer ticker.Stop()

		ctx := r.Context()
		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-client.EventChannel:
				if !ok {
					// Hub stopped.
					return
				}
				if !writeEvent(w, rc, event) {
					return
				}

			case <-ticker.C:
				keepalive := Event{Type: EventTypeKeepalive, Timestamp: time.Now().Unix()}
				if !writeEvent(w, rc, keepalive) {
					return
				}
			}
		}
	}
}

// writeEvent reports false once the connection is unusable.
func writeEvent(w http.ResponseWriter, rc *http.ResponseController, event Event) bool {
	msg, err := FormatSSEMessage(event)
	if err != nil {
		slog.Error(LogMsgWriteError, LogFieldError, err)
		return true
	}
	if _, err := w.Write(msg); err != nil {
		slog.Warn(LogMsgWriteError, LogFieldError, err)
		return false
	}
	return rc.Flush() == nil
}
