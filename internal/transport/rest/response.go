package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/lularocha/glossary-builder/internal/domain"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// decodeBody decodes the JSON body into dst. Bodies over maxBytes are
// rejected by http.MaxBytesReader.
func decodeBody(w http.ResponseWriter, r *http.Request, maxBytes int64, dst any) error {
	if maxBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return domain.NewValidationError("body", "not valid JSON")
	}
	return nil
}

// stringField reports the value of an optional JSON string. null and any
// other JSON type count as absent.
func stringField(raw json.RawMessage) (string, bool) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

func optionalString(raw json.RawMessage) *string {
	s, ok := stringField(raw)
	if !ok {
		return nil
	}
	return &s
}

// handleError maps service errors to the JSON error responses the browser
// client understands.
func handleError(log *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	var (
		valErr       *domain.ValidationError
		upstreamErr  *domain.UpstreamError
		malformedErr *domain.MalformedResponseError
		shapeErr     *domain.InvalidShapeError
	)

	switch {
	case errors.As(err, &valErr):
		writeError(w, http.StatusBadRequest, firstFieldMessage(valErr))
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.As(err, &upstreamErr):
		log.ErrorContext(r.Context(), "upstream error",
			slog.String("provider", upstreamErr.Provider),
			slog.Int("status", upstreamErr.StatusCode),
			slog.String("error", upstreamErr.Message),
		)
		writeError(w, http.StatusInternalServerError, upstreamErr.Error())
	case errors.As(err, &malformedErr):
		writeError(w, http.StatusInternalServerError, "Failed to parse model response as JSON")
	case errors.As(err, &shapeErr):
		writeError(w, http.StatusInternalServerError, "Invalid response structure from model")
	default:
		log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func firstFieldMessage(e *domain.ValidationError) string {
	if len(e.Errors) == 0 {
		return e.Error()
	}
	return e.Errors[0].Field + " is " + e.Errors[0].Message
}
