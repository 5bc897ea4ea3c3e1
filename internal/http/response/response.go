package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/planejacasar/wedding-backend/internal/domain"
	"github.com/planejacasar/wedding-backend/pkg/logger"
)

// Envelope is the wire shape for every API response.
type Envelope struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorBody `json:"error,omitempty"`
}

type ErrorBody struct {
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Details []domain.FieldError `json:"details,omitempty"`
}

// Common error codes
const (
	CodeValidation         = "VALIDATION_ERROR"
	CodeNoToken            = "NO_TOKEN"
	CodeInvalidTokenFormat = "INVALID_TOKEN_FORMAT"
	CodeInvalidToken       = "INVALID_TOKEN"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeForbidden          = "FORBIDDEN"
	CodeNotFound           = "NOT_FOUND"
	CodeEventNotFound      = "EVENT_NOT_FOUND"
	CodeUserNotFound       = "USER_NOT_FOUND"
	CodeInvalidInviteCode  = "INVALID_INVITE_CODE"
	CodeAlreadyMember      = "ALREADY_MEMBER"
	CodeEmailExists        = "EMAIL_ALREADY_EXISTS"
	CodeRateLimit          = "RATE_LIMIT_EXCEEDED"
	CodeNotImplemented     = "NOT_IMPLEMENTED"
	CodeInternalError      = "INTERNAL_ERROR"
)

// JSON writes a success envelope with the given payload.
func JSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(Envelope{Success: true, Data: data}); err != nil {
		logger.Error("failed to encode response", "error", err)
	}
}

// NoContent writes a bare success envelope without a data field.
func NoContent(w http.ResponseWriter) {
	JSON(w, http.StatusOK, nil)
}

// WriteError writes an error envelope.
func WriteError(w http.ResponseWriter, statusCode int, code, message string) {
	writeErrorBody(w, statusCode, &ErrorBody{Code: code, Message: message})
}

func writeErrorBody(w http.ResponseWriter, statusCode int, body *ErrorBody) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(Envelope{Success: false, Error: body}); err != nil {
		logger.Error("failed to encode error response", "error", err)
	}
}

// Error maps a service error onto the envelope. Unknown errors become a
// generic 500 so internals never leak to the client.
func Error(w http.ResponseWriter, err error) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		writeErrorBody(w, http.StatusBadRequest, &ErrorBody{
			Code:    CodeValidation,
			Message: "validation failed",
			Details: verr.Fields,
		})
		return
	}

	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		WriteError(w, http.StatusUnauthorized, CodeInvalidCredentials, "invalid email or password")
	case errors.Is(err, domain.ErrForbidden):
		WriteError(w, http.StatusForbidden, CodeForbidden, "you do not have access to this resource")
	case errors.Is(err, domain.ErrEventNotFound):
		WriteError(w, http.StatusNotFound, CodeEventNotFound, "event not found")
	case errors.Is(err, domain.ErrUserNotFound):
		WriteError(w, http.StatusNotFound, CodeUserNotFound, "user not found")
	case errors.Is(err, domain.ErrGuestNotFound),
		errors.Is(err, domain.ErrTaskNotFound),
		errors.Is(err, domain.ErrBudgetNotFound),
		errors.Is(err, domain.ErrVendorNotFound),
		errors.Is(err, domain.ErrIdeaNotFound):
		WriteError(w, http.StatusNotFound, CodeNotFound, err.Error())
	case errors.Is(err, domain.ErrInvalidInviteCode):
		WriteError(w, http.StatusNotFound, CodeInvalidInviteCode, "invite code not recognized")
	case errors.Is(err, domain.ErrAlreadyMember):
		WriteError(w, http.StatusConflict, CodeAlreadyMember, "user is already a member of this event")
	case errors.Is(err, domain.ErrEmailExists):
		WriteError(w, http.StatusConflict, CodeEmailExists, "an account with this email already exists")
	case errors.Is(err, domain.ErrNotImplemented):
		WriteError(w, http.StatusNotImplemented, CodeNotImplemented, "this operation is not implemented yet")
	default:
		logger.Error("unhandled service error", "error", err)
		WriteError(w, http.StatusInternalServerError, CodeInternalError, "something went wrong")
	}
}

// Convenience helpers for handler-level failures.
func BadRequest(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, CodeValidation, message)
}

func RateLimit(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusTooManyRequests, CodeRateLimit, message)
}
