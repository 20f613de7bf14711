package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/Dan9191/gallery-service/internal/apperrors"
	"github.com/Dan9191/gallery-service/internal/middleware"
	"github.com/Dan9191/gallery-service/internal/models"
	"github.com/gorilla/mux"
)

// maxUploadBytes bounds a single upload request body
const maxUploadBytes = 32 << 20

type createImageRequest struct {
	Title string `json:"title"`
}

type imageView struct {
	ID          int64     `json:"id"`
	URL         string    `json:"url"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	MimeType    string    `json:"mime_type"`
	CreatedAt   time.Time `json:"created_at"`
	ShotDate    time.Time `json:"shot_date"`
}

func (h *Handler) viewOf(img models.Image) imageView {
	return imageView{
		ID:          img.ID,
		URL:         h.publicURL + "/uploads/" + img.Filename,
		Title:       img.Title,
		Description: img.Description,
		MimeType:    img.MimeType,
		CreatedAt:   img.CreatedAt,
		ShotDate:    img.ShotDate,
	}
}

// imageID parses the id path variable. A non-numeric id reports not-found
// rather than a validation error: the original coerces it to a lookup that
// can never match, so its API answers 404 here.
func imageID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		return 0, apperrors.NotFound("Image not found")
	}
	return id, nil
}

// CreateImage creates the metadata record of a two-step upload
func (h *Handler) CreateImage(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		h.respondResultError(w, apperrors.Unauthorized("Unauthorized"))
		return
	}

	var req createImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondResultError(w, apperrors.Validation("Invalid request body"))
		return
	}

	img, err := h.svc.CreateImage(userID, req.Title)
	if err != nil {
		h.respondResultError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"content": map[string]interface{}{"id": img.ID},
	})
}

// UploadImage attaches the binary to an existing image record
func (h *Handler) UploadImage(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		h.respondResultError(w, apperrors.Unauthorized("Unauthorized"))
		return
	}

	id, err := imageID(r)
	if err != nil {
		h.respondResultError(w, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		h.respondResultError(w, apperrors.Validation("No file provided"))
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		h.respondResultError(w, apperrors.Validation("No file provided"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.respondResultError(w, apperrors.Internal("failed to read upload", err))
		return
	}

	img, err := h.svc.UploadImage(userID, id, data, header.Filename)
	if err != nil {
		h.respondResultError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"content": map[string]interface{}{
			"id":        img.ID,
			"filename":  img.Filename,
			"mime_type": img.MimeType,
		},
	})
}

// GetMyImages returns image records for the gallery view
func (h *Handler) GetMyImages(w http.ResponseWriter, r *http.Request) {
	images, err := h.svc.ListImages()
	if err != nil {
		h.respondResultError(w, err)
		return
	}

	views := []imageView{}
	for _, img := range images {
		views = append(views, h.viewOf(img))
	}
	respondJSON(w, http.StatusOK, views)
}

// GetImage returns one image record by id
func (h *Handler) GetImage(w http.ResponseWriter, r *http.Request) {
	id, err := imageID(r)
	if err != nil {
		h.respondResultError(w, err)
		return
	}

	img, err := h.svc.GetImage(id)
	if err != nil {
		h.respondResultError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"content": h.viewOf(*img),
	})
}
