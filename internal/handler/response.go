package handler

import (
	"encoding/json"
	"net/http"

	"github.com/Dan9191/gallery-service/internal/apperrors"
)

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

// respondResultError writes the {success,result} error envelope used by the
// user and image endpoints.
func (h *Handler) respondResultError(w http.ResponseWriter, err error) {
	respondJSON(w, h.logged(err), map[string]interface{}{
		"success": false,
		"result":  apperrors.ClientMessage(err),
	})
}

// respondMessageError writes the {success,message} error envelope used by
// the collection endpoints. The two shapes coexist in the original API and
// its frontend depends on both.
func (h *Handler) respondMessageError(w http.ResponseWriter, err error) {
	respondJSON(w, h.logged(err), map[string]interface{}{
		"success": false,
		"message": apperrors.ClientMessage(err),
	})
}

// logged maps the error to its status and records internal faults
// server-side. The response body only ever carries the generic message.
func (h *Handler) logged(err error) int {
	status := apperrors.Status(err)
	if status == http.StatusInternalServerError {
		h.log.Errorf("Internal error: %v", err)
	}
	return status
}
