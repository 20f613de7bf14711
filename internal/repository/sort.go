package repository

import (
	"fmt"
	"sort"

	"github.com/Dan9191/gallery-service/internal/models"
)

func errUnknownEntity(entity string) error {
	return fmt.Errorf("unknown entity kind: %s", entity)
}

func sortCollections(cs []models.Collection) {
	sort.Slice(cs, func(i, j int) bool {
		if !cs[i].CreatedAt.Equal(cs[j].CreatedAt) {
			return cs[i].CreatedAt.After(cs[j].CreatedAt)
		}
		return cs[i].ID > cs[j].ID
	})
}

func sortImages(imgs []models.Image) {
	sort.Slice(imgs, func(i, j int) bool {
		return imgs[i].ID < imgs[j].ID
	})
}
