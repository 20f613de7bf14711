package service

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Dan9191/gallery-service/internal/apperrors"
	"github.com/Dan9191/gallery-service/internal/models"
	"github.com/Dan9191/gallery-service/internal/repository"
	"github.com/Dan9191/gallery-service/internal/utils/xmp"
)

var mimeExtensions = map[string]string{
	"image/jpeg":    ".jpg",
	"image/png":     ".png",
	"image/gif":     ".gif",
	"image/webp":    ".webp",
	"image/bmp":     ".bmp",
	"image/tiff":    ".tiff",
	"image/svg+xml": ".svg",
}

// CreateImage creates the metadata record for a two-step upload. The
// filename and mime type are placeholders until the binary arrives.
func (s *Service) CreateImage(ownerID int64, title string) (*models.Image, error) {
	if title == "" {
		return nil, apperrors.Validation("Title is required")
	}

	id, err := s.store.NextID("images")
	if err != nil {
		return nil, apperrors.Internal("failed to allocate image id", err)
	}

	now := time.Now()
	img := &models.Image{
		ID:        id,
		Title:     title,
		Filename:  title,
		MimeType:  "image/png",
		OwnerID:   ownerID,
		ShotDate:  now,
		CreatedAt: now,
	}
	if err := s.store.CreateImage(img); err != nil {
		return nil, apperrors.Internal("failed to create image", err)
	}

	s.log.Infof("Image %d created by user %d", img.ID, ownerID)
	return img, nil
}

// UploadImage stores the binary for an existing image record. Only the
// record's owner may attach the upload.
func (s *Service) UploadImage(userID, imageID int64, data []byte, originalName string) (*models.Image, error) {
	img, err := s.store.FindImageByID(imageID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("Image not found")
		}
		return nil, apperrors.Internal("failed to find image", err)
	}

	if img.OwnerID != userID {
		return nil, apperrors.Forbidden("Forbidden: You do not own this image")
	}

	mimeType := detectMimeType(data)
	img.Filename = fmt.Sprintf("%d%s", img.ID, extensionFor(mimeType, originalName))
	img.MimeType = mimeType

	if shotDate, ok := xmp.ShotDate(data); ok {
		img.ShotDate = shotDate
	}

	if err := os.MkdirAll(s.config.UploadDir, 0o755); err != nil {
		return nil, apperrors.Internal("failed to create upload dir", err)
	}
	path := filepath.Join(s.config.UploadDir, img.Filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, apperrors.Internal("failed to write upload", err)
	}

	if err := s.store.UpdateImage(img); err != nil {
		return nil, apperrors.Internal("failed to update image", err)
	}

	s.log.Infof("Image %d uploaded by user %d (%s, %d bytes)", img.ID, userID, mimeType, len(data))
	return img, nil
}

// ListImages returns all image records.
// Note: not filtered by owner, matching the original API behavior.
func (s *Service) ListImages() ([]models.Image, error) {
	images, err := s.store.ListImages()
	if err != nil {
		return nil, apperrors.Internal("failed to list images", err)
	}
	return images, nil
}

// GetImage returns an image record by id
func (s *Service) GetImage(id int64) (*models.Image, error) {
	img, err := s.store.FindImageByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("Image not found")
		}
		return nil, apperrors.Internal("failed to find image", err)
	}
	return img, nil
}

func detectMimeType(data []byte) string {
	mimeType := http.DetectContentType(data)
	// DetectContentType returns "a; charset=b" forms for text
	if i := strings.Index(mimeType, ";"); i != -1 {
		mimeType = strings.TrimSpace(mimeType[:i])
	}
	return mimeType
}

func extensionFor(mimeType, originalName string) string {
	if ext, ok := mimeExtensions[mimeType]; ok {
		return ext
	}
	if ext := filepath.Ext(originalName); ext != "" {
		return ext
	}
	return ".bin"
}
