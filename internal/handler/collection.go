package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/Dan9191/gallery-service/internal/apperrors"
	"github.com/Dan9191/gallery-service/internal/middleware"
	"github.com/gorilla/mux"
)

type createCollectionRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type updateCollectionRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func collectionID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		return 0, apperrors.Validation("Invalid collection ID")
	}
	return id, nil
}

// CreateCollection handles collection creation
func (h *Handler) CreateCollection(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		h.respondMessageError(w, apperrors.Unauthorized("Unauthorized"))
		return
	}

	var req createCollectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondMessageError(w, apperrors.Validation("Invalid request body"))
		return
	}

	c, err := h.svc.CreateCollection(userID, req.Name, req.Description)
	if err != nil {
		h.respondMessageError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, c)
}

// ListCollections returns all collections, most recently created first
func (h *Handler) ListCollections(w http.ResponseWriter, r *http.Request) {
	collections, err := h.svc.ListCollections()
	if err != nil {
		h.respondMessageError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, collections)
}

// GetCollection returns one collection by id
func (h *Handler) GetCollection(w http.ResponseWriter, r *http.Request) {
	id, err := collectionID(r)
	if err != nil {
		h.respondMessageError(w, err)
		return
	}

	c, err := h.svc.GetCollection(id)
	if err != nil {
		h.respondMessageError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, c)
}

// UpdateCollection applies a partial update to a collection
func (h *Handler) UpdateCollection(w http.ResponseWriter, r *http.Request) {
	id, err := collectionID(r)
	if err != nil {
		h.respondMessageError(w, err)
		return
	}

	var req updateCollectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondMessageError(w, apperrors.Validation("Invalid request body"))
		return
	}

	c, err := h.svc.UpdateCollection(id, req.Name, req.Description)
	if err != nil {
		h.respondMessageError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, c)
}

// DeleteCollection removes a collection
func (h *Handler) DeleteCollection(w http.ResponseWriter, r *http.Request) {
	id, err := collectionID(r)
	if err != nil {
		h.respondMessageError(w, err)
		return
	}

	if err := h.svc.DeleteCollection(id); err != nil {
		h.respondMessageError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
