package handler

import (
	"encoding/json"
	"net/http"

	"github.com/Dan9191/gallery-service/internal/apperrors"
)

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles user registration
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondResultError(w, apperrors.Validation("Invalid request body"))
		return
	}

	if err := h.svc.Register(req.Email, req.Password, req.Username); err != nil {
		h.respondResultError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"result":  "User registered successfully",
	})
}

// Login handles user authentication
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondResultError(w, apperrors.Validation("Invalid request body"))
		return
	}

	token, err := h.svc.Login(req.Email, req.Password)
	if err != nil {
		h.respondResultError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"token":   token,
	})
}
