package transport

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/document-management/internal"
	"github.com/frahmantamala/document-management/pkg/logger"
)

// BaseHandler provides common functionality for HTTP handlers.
type BaseHandler struct {
	Logger *slog.Logger
}

func NewBaseHandler(lg *slog.Logger) *BaseHandler {
	if lg == nil {
		lg = logger.L()
	}
	return &BaseHandler{Logger: lg}
}

// WriteJSON writes a JSON response.
func (h *BaseHandler) WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.Logger.Error("failed to encode JSON response", "error", err)
	}
}

// WriteMessage writes the standard {status, message} envelope.
func (h *BaseHandler) WriteMessage(w http.ResponseWriter, httpStatus int, ok bool, message string) {
	h.WriteJSON(w, httpStatus, map[string]interface{}{
		"status":  ok,
		"message": message,
	})
}

// WriteError writes a bare {message} error body. Authentication and internal
// failures use this shape.
func (h *BaseHandler) WriteError(w http.ResponseWriter, status int, message string) {
	h.Logger.Error("http error", "status", status, "message", message)
	h.WriteJSON(w, status, map[string]interface{}{
		"message": message,
	})
}

// WriteValidationErrors writes the 400 field-keyed validation envelope.
func (h *BaseHandler) WriteValidationErrors(w http.ResponseWriter, errs internal.FieldErrors) {
	h.WriteJSON(w, http.StatusBadRequest, map[string]interface{}{
		"status":  false,
		"message": "Validation error",
		"errors":  errs,
	})
}

// HandleServiceError maps service errors onto the response taxonomy:
// validation failures become field-keyed 400s, AppErrors keep their status,
// anything else is a 500 carrying the underlying message.
func (h *BaseHandler) HandleServiceError(w http.ResponseWriter, err error) {
	var vErr *internal.ValidationError
	if errors.As(err, &vErr) {
		h.WriteValidationErrors(w, vErr.Errors)
		return
	}

	var appErr *internal.AppError
	if errors.As(err, &appErr) {
		h.Logger.Warn("service error", "status", appErr.StatusCode, "message", appErr.Message)
		h.WriteMessage(w, appErr.StatusCode, false, appErr.Message)
		return
	}

	h.Logger.Error("unexpected service error", "error", err)
	h.WriteError(w, http.StatusInternalServerError, err.Error())
}

// ExtractTokenFromHeader extracts the Bearer token from the Authorization header.
func (h *BaseHandler) ExtractTokenFromHeader(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
		return ""
	}

	return authHeader[7:]
}
