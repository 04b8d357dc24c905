package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"quill/app/middleware"
	"quill/app/services"
	"quill/logging"
)

// maxBodyBytes bounds every JSON request body.
const maxBodyBytes = 1 << 20

// responder holds the response helpers shared by every controller.
type responder struct {
	log logging.Logger
}

func (c responder) sendJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.log.Warn(context.Background(), "failed to encode response", "error", err)
	}
}

func (c responder) sendMessage(w http.ResponseWriter, status int, message string) {
	c.sendJSON(w, status, map[string]string{"message": message})
}

func (c responder) sendError(w http.ResponseWriter, message string, status int) {
	c.sendMessage(w, status, message)
}

// sendServiceError maps a service failure to its status. Anything outside
// the service taxonomy is logged and reported as a bare 500.
func (c responder) sendServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var svcErr *services.Error
	if !errors.As(err, &svcErr) {
		c.log.Error(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		c.sendError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrValidation),
		errors.Is(err, services.ErrConflict),
		errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrInvalidOrExpiredToken):
		status = http.StatusBadRequest
	case errors.Is(err, services.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrForbidden):
		status = http.StatusForbidden
	}
	c.sendError(w, svcErr.Error(), status)
}

// decodeJSON reads the request body into dst and answers 400 on failure.
func (c responder) decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	return c.decode(w, r, dst, true)
}

// decodeOptionalJSON is decodeJSON for requests whose fields are all
// optional. An empty body leaves dst untouched.
func (c responder) decodeOptionalJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	return c.decode(w, r, dst, false)
}

func (c responder) decode(w http.ResponseWriter, r *http.Request, dst interface{}, required bool) bool {
	err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(dst)
	if err == nil {
		return true
	}
	if errors.Is(err, io.EOF) {
		if !required {
			return true
		}
		c.sendError(w, "Request body is required", http.StatusBadRequest)
	} else {
		c.sendError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
	}
	return false
}

// currentUser returns the id placed in the context by the auth middleware.
func (c responder) currentUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		c.sendError(w, "Authorization header required", http.StatusUnauthorized)
	}
	return id, ok
}
