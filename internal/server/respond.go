package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/abhisek/careerpath/internal/gateway"
)

// Response bodies for the two advice failure classes. Clients match on
// these strings.
const (
	MessageConfigurationError = "API configuration error"
	MessageRequestFailed      = "Failed to process request"
	MessageBadRequest         = "Invalid request body"
)

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

// httpError carries a client-facing status and message.
type httpError struct {
	status  int
	message string
	details []string
	cause   error
}

func (e *httpError) Error() string {
	if e.cause != nil {
		return e.message + ": " + e.cause.Error()
	}
	return e.message
}

func (e *httpError) Unwrap() error { return e.cause }

func badRequest(message string, details []string, cause error) *httpError {
	return &httpError{status: http.StatusBadRequest, message: message, details: details, cause: cause}
}

// normalizeError maps any handler error to a status and body. Server-side
// failures never leak their cause.
func normalizeError(err error) (int, errorBody) {
	var he *httpError
	if errors.As(err, &he) {
		if he.status >= 500 {
			return http.StatusInternalServerError, errorBody{Error: MessageRequestFailed}
		}
		return he.status, errorBody{Error: he.message, Details: he.details}
	}
	if errors.Is(err, gateway.ErrConfiguration) {
		return http.StatusInternalServerError, errorBody{Error: MessageConfigurationError}
	}
	return http.StatusInternalServerError, errorBody{Error: MessageRequestFailed}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, body := normalizeError(err)
	if status >= 500 {
		s.logger.Sugar().Errorw("request error",
			"request_id", RequestIDFrom(r.Context()),
			"path", r.URL.Path,
			"error", err,
		)
	}
	writeJSON(w, status, body)
}
