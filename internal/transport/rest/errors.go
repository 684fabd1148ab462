package rest

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/queue-backend/internal/domain"
	"github.com/heartmarshall/queue-backend/pkg/ctxutil"
)

// ErrorResponse is the JSON body of every failed /api request.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody carries a stable code for clients and a readable message.
type ErrorBody struct {
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Fields  []FieldResponse `json:"fields,omitempty"`
}

// FieldResponse is one field-level validation failure.
type FieldResponse struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// classify maps a domain error to an HTTP status and error code.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrAlreadyExists):
		return http.StatusConflict, "ALREADY_EXISTS"
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict, "CONFLICT"
	case errors.Is(err, domain.ErrInvalidOperation):
		return http.StatusConflict, "INVALID_OPERATION"
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "UNAUTHENTICATED"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "FORBIDDEN"
	default:
		return http.StatusInternalServerError, "INTERNAL"
	}
}

// handleError writes err as an ErrorResponse. Unexpected errors are logged
// and hidden from the client.
func handleError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	status, code := classify(err)
	body := ErrorBody{Code: code, Message: err.Error()}

	switch code {
	case "INTERNAL":
		log.ErrorContext(r.Context(), "unexpected error",
			slog.String("error", err.Error()),
			slog.String("request_id", ctxutil.RequestIDFromCtx(r.Context())),
		)
		body.Message = "internal error"
	case "UNAUTHENTICATED":
		body.Message = "unauthorized"
	case "VALIDATION":
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			body.Fields = make([]FieldResponse, 0, len(ve.Errors))
			for _, fe := range ve.Errors {
				body.Fields = append(body.Fields, FieldResponse{Field: fe.Field, Message: fe.Message})
			}
		}
	}

	writeJSON(w, status, ErrorResponse{Error: body})
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Error: ErrorBody{Code: code, Message: message}})
}
