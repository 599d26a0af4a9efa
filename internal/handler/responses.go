package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/osse101/FissureBot_Go/internal/domain"
	"github.com/osse101/FissureBot_Go/internal/simulation"
	"github.com/osse101/FissureBot_Go/internal/worker"
)

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// DataResponse represents a response with data payload
type DataResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

// bufferPool reuses encode buffers across responses
var bufferPool = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, 1024))
	},
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	buf := bufferPool.Get().(*bytes.Buffer)
	defer func() {
		buf.Reset()
		bufferPool.Put(buf)
	}()

	// Encode before writing headers so a failure can still become a 500
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error(LogMsgEncodeFailed, "error", err)
		http.Error(w, ErrMsgGenericServerError, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error(LogMsgWriteFailed, "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError maps a service error onto a status and message and
// logs anything the caller did not cause.
func respondServiceError(w http.ResponseWriter, r *http.Request, action string, err error) {
	status, msg := mapServiceErrorToUserMessage(err)
	if status >= http.StatusInternalServerError {
		loggerFor(r).Error(LogMsgServiceError, LogFieldAction, action, "error", err)
	}
	respondError(w, status, msg)
}

// mapServiceErrorToUserMessage maps domain errors to user-friendly HTTP responses.
// Validation errors carry their own message, which is shown verbatim.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	if msg, ok := domain.UserMessage(err); ok {
		return http.StatusBadRequest, msg
	}

	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, ErrMsgInvalidRequestSummary
	case errors.Is(err, domain.ErrSubscriptionAbsent):
		return http.StatusNotFound, ErrMsgSubscriptionMissing
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, ErrMsgNotFoundError
	case errors.Is(err, simulation.ErrTimeout):
		return http.StatusGatewayTimeout, ErrMsgSimulationTimeout
	case errors.Is(err, worker.ErrPoolStopped):
		return http.StatusServiceUnavailable, ErrMsgSimulationBusy
	case errors.Is(err, domain.ErrFeedUnavailable):
		return http.StatusServiceUnavailable, ErrMsgFeedUnavailable
	case errors.Is(err, domain.ErrDataIntegrity):
		return http.StatusInternalServerError, ErrMsgReferenceData
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}
