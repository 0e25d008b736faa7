package transport

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/office-management/internal"
	"github.com/frahmantamala/office-management/pkg/i18n"
	"github.com/frahmantamala/office-management/pkg/logger"
)

// BaseHandler provides common functionality for HTTP handlers
type BaseHandler struct {
	Logger *slog.Logger
}

// NewBaseHandler creates a base handler with logger
func NewBaseHandler(lg *slog.Logger) *BaseHandler {
	if lg == nil {
		lg = logger.LoggerWrapper()
	}
	return &BaseHandler{Logger: lg}
}

// WriteJSON writes a JSON response
func (h *BaseHandler) WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.Logger.Error("failed to encode JSON response", "error", err)
	}
}

// WriteError writes an error response
func (h *BaseHandler) WriteError(w http.ResponseWriter, status int, message string) {
	if status >= http.StatusInternalServerError {
		h.Logger.Error("http error", "status", status, "message", message)
	} else {
		h.Logger.Debug("http error", "status", status, "message", message)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	errorResp := map[string]interface{}{
		"code":    status,
		"message": message,
	}

	if err := json.NewEncoder(w).Encode(errorResp); err != nil {
		h.Logger.Error("failed to encode error response", "error", err)
	}
}

// WriteServiceError maps a service error to its status and localized message.
// Anything that is not an AppError is a 500 carrying the raw error text.
func (h *BaseHandler) WriteServiceError(w http.ResponseWriter, r *http.Request, err error) {
	appErr, ok := internal.IsAppError(err)
	if !ok {
		logger.From(r.Context()).Error("unexpected service error", "error", err)
		h.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if appErr.StatusCode >= http.StatusInternalServerError {
		logger.From(r.Context()).Error("service error", "code", appErr.Code, "error", appErr)
		h.WriteError(w, appErr.StatusCode, appErr.Error())
		return
	}

	message := i18n.T(r.Context(), string(appErr.Code), appErr.Message)
	if appErr.Code == internal.ErrCodeValidationFailed {
		message = appErr.GetDetailedMessage()
	}
	h.WriteError(w, appErr.StatusCode, message)
}

// DecodeJSON reads the request body into dst. An empty body leaves dst untouched.
func (h *BaseHandler) DecodeJSON(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return nil
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return internal.NewValidationError("Invalid request body", internal.ErrCodeInvalidBody).WithCause(err)
	}
	return nil
}

// WriteText writes a plain text response.
func (h *BaseHandler) WriteText(w http.ResponseWriter, status int, text string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	if _, err := io.WriteString(w, text); err != nil {
		h.Logger.Error("failed to write text response", "error", err)
	}
}
