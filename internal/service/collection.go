package service

import (
	"errors"
	"time"

	"github.com/Dan9191/gallery-service/internal/apperrors"
	"github.com/Dan9191/gallery-service/internal/models"
	"github.com/Dan9191/gallery-service/internal/repository"
)

// CreateCollection creates a collection owned by the given user
func (s *Service) CreateCollection(ownerID int64, name, description string) (*models.Collection, error) {
	if name == "" {
		return nil, apperrors.Validation("Name is required")
	}

	id, err := s.store.NextID("collections")
	if err != nil {
		return nil, apperrors.Internal("failed to allocate collection id", err)
	}

	now := time.Now()
	c := &models.Collection{
		ID:          id,
		Name:        name,
		Description: description,
		OwnerID:     ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.CreateCollection(c); err != nil {
		return nil, apperrors.Internal("failed to create collection", err)
	}

	s.log.Infof("Collection %d created by user %d", c.ID, ownerID)
	return c, nil
}

// ListCollections returns all collections, most recently created first.
// Note: not filtered by owner, matching the original API behavior.
func (s *Service) ListCollections() ([]models.Collection, error) {
	collections, err := s.store.ListCollections()
	if err != nil {
		return nil, apperrors.Internal("failed to list collections", err)
	}
	return collections, nil
}

// GetCollection returns a collection by id
func (s *Service) GetCollection(id int64) (*models.Collection, error) {
	c, err := s.store.FindCollectionByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("Collection not found")
		}
		return nil, apperrors.Internal("failed to find collection", err)
	}
	return c, nil
}

// UpdateCollection applies a partial update. Nil fields keep their value.
func (s *Service) UpdateCollection(id int64, name, description *string) (*models.Collection, error) {
	c, err := s.GetCollection(id)
	if err != nil {
		return nil, err
	}

	if name != nil {
		if *name == "" {
			return nil, apperrors.Validation("Name is required")
		}
		c.Name = *name
	}
	if description != nil {
		c.Description = *description
	}
	c.UpdatedAt = time.Now()

	if err := s.store.UpdateCollection(c); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("Collection not found")
		}
		return nil, apperrors.Internal("failed to update collection", err)
	}

	s.log.Infof("Collection %d updated", c.ID)
	return c, nil
}

// DeleteCollection removes a collection by id
func (s *Service) DeleteCollection(id int64) error {
	if err := s.store.DeleteCollection(id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound("Collection not found")
		}
		return apperrors.Internal("failed to delete collection", err)
	}

	s.log.Infof("Collection %d deleted", id)
	return nil
}
