package repository

import (
	"sync"

	"github.com/Dan9191/gallery-service/internal/models"
)

// Memory is an in-memory store with the same behavior as the Postgres
// repository, including the read-max id allocation. It backs the
// STORAGE=memory mode for offline development and the test suite.
type Memory struct {
	mu          sync.Mutex
	users       map[int64]*models.User
	collections map[int64]*models.Collection
	images      map[int64]*models.Image
}

// NewMemory initializes an empty in-memory store
func NewMemory() *Memory {
	return &Memory{
		users:       make(map[int64]*models.User),
		collections: make(map[int64]*models.Collection),
		images:      make(map[int64]*models.Image),
	}
}

// NextID returns max(id)+1 for the given entity kind, mirroring the
// Postgres allocator.
func (m *Memory) NextID(entity string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var max int64
	switch entity {
	case "users":
		for id := range m.users {
			if id > max {
				max = id
			}
		}
	case "collections":
		for id := range m.collections {
			if id > max {
				max = id
			}
		}
	case "images":
		for id := range m.images {
			if id > max {
				max = id
			}
		}
	default:
		return 0, errUnknownEntity(entity)
	}
	return max + 1, nil
}

func (m *Memory) CreateUser(user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := *user
	m.users[u.ID] = &u
	return nil
}

func (m *Memory) FindUserByEmail(email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) CreateCollection(c *models.Collection) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *c
	m.collections[copied.ID] = &copied
	return nil
}

func (m *Memory) ListCollections() ([]models.Collection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Collection{}
	for _, c := range m.collections {
		out = append(out, *c)
	}
	// Most recently created first
	sortCollections(out)
	return out, nil
}

func (m *Memory) FindCollectionByID(id int64) (*models.Collection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.collections[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *c
	return &copied, nil
}

func (m *Memory) UpdateCollection(c *models.Collection) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.collections[c.ID]; !ok {
		return ErrNotFound
	}
	copied := *c
	m.collections[copied.ID] = &copied
	return nil
}

func (m *Memory) DeleteCollection(id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.collections[id]; !ok {
		return ErrNotFound
	}
	delete(m.collections, id)
	return nil
}

func (m *Memory) CreateImage(img *models.Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *img
	m.images[copied.ID] = &copied
	return nil
}

func (m *Memory) FindImageByID(id int64) (*models.Image, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	img, ok := m.images[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *img
	return &copied, nil
}

func (m *Memory) UpdateImage(img *models.Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.images[img.ID]
	if !ok {
		return ErrNotFound
	}
	existing.Filename = img.Filename
	existing.MimeType = img.MimeType
	existing.ShotDate = img.ShotDate
	return nil
}

func (m *Memory) ListImages() ([]models.Image, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Image{}
	for _, img := range m.images {
		out = append(out, *img)
	}
	sortImages(out)
	return out, nil
}
