package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"orcamentos/internal/domain"
	"orcamentos/internal/shared/middleware"
)

const msgInternal = "Erro interno do servidor."

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Message string              `json:"message"`
	Errors  []domain.FieldError `json:"errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Message: message})
}

// writeError maps the domain error taxonomy onto status codes. Store failures
// and unknown errors are logged and reported with a generic message.
func writeError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	var (
		notFound     *domain.NotFoundError
		conflict     *domain.ConflictError
		validation   *domain.ValidationError
		unauthorized *domain.UnauthorizedError
	)

	switch {
	case errors.As(err, &validation):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Message: "Dados inválidos.",
			Errors:  validation.Errors,
		})
	case errors.As(err, &notFound):
		writeMessage(w, http.StatusNotFound, notFound.Message)
	case errors.As(err, &conflict):
		writeMessage(w, http.StatusConflict, conflict.Message)
	case errors.As(err, &unauthorized):
		writeMessage(w, http.StatusUnauthorized, unauthorized.Message)
	default:
		logger.ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", middleware.RequestIDFromContext(r.Context()),
			"error", err,
		)
		writeMessage(w, http.StatusInternalServerError, msgInternal)
	}
}

func methodNotAllowed(w http.ResponseWriter) {
	writeMessage(w, http.StatusMethodNotAllowed, "Método não permitido.")
}

// decodeJSON reads the request body into dst. Malformed bodies become a
// validation error naming the offending field when the decoder knows it.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return domain.NewValidationError(typeErr.Field, "valor com tipo inválido")
		}
		var timeErr *time.ParseError
		if errors.As(err, &timeErr) {
			return domain.NewValidationError("data", "data deve estar no formato RFC 3339")
		}
		return domain.NewValidationError("body", "corpo da requisição inválido")
	}
	return nil
}

// pathID parses a positive integer path parameter. Anything else cannot name
// an existing row, so it is reported as notFound.
func pathID(r *http.Request, name string, notFound error) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, notFound
	}
	return id, nil
}

func requireUser(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Autenticação necessária.")
		return 0, false
	}
	return userID, true
}

// money renders amounts as JSON numbers with two decimals.
func money(d decimal.Decimal) json.Number {
	return json.Number(d.StringFixed(2))
}

func moneyPtr(d *decimal.Decimal) *json.Number {
	if d == nil {
		return nil
	}
	n := money(*d)
	return &n
}

// parseDateParam accepts a calendar date (2006-01-02, read as UTC midnight)
// or a full RFC 3339 timestamp.
func parseDateParam(q map[string][]string, key string, v *domain.ValidationError) *time.Time {
	raw := strings.TrimSpace(first(q[key]))
	if raw == "" {
		return nil
	}
	if t, err := time.Parse(time.DateOnly, raw); err == nil {
		return &t
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t
	}
	v.Add(key, key+" deve ser uma data no formato AAAA-MM-DD")
	return nil
}

func parseBoolParam(q map[string][]string, key string, v *domain.ValidationError) *bool {
	raw := strings.TrimSpace(first(q[key]))
	if raw == "" {
		return nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		v.Add(key, key+" deve ser true ou false")
		return nil
	}
	return &b
}

func first(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
