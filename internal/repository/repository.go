package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dan9191/gallery-service/internal/models"
)

// ErrNotFound is returned when a record does not exist
var ErrNotFound = errors.New("record not found")

// tables maps an entity kind to its table, and doubles as a whitelist so an
// entity name can never reach the query string unchecked.
var tables = map[string]string{
	"users":       "gallery.users",
	"collections": "gallery.collections",
	"images":      "gallery.images",
}

// Repository provides database operations
type Repository struct {
	db *sql.DB
}

// NewRepository initializes a new repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// NextID returns the next id for the given entity kind by reading the
// current maximum. Not atomic: two concurrent creators can read the same
// maximum and collide. Kept for parity with the original allocator.
func (r *Repository) NextID(entity string) (int64, error) {
	table, ok := tables[entity]
	if !ok {
		return 0, fmt.Errorf("unknown entity kind: %s", entity)
	}
	var next int64
	query := fmt.Sprintf("SELECT COALESCE(MAX(id), 0) + 1 FROM %s", table)
	if err := r.db.QueryRow(query).Scan(&next); err != nil {
		return 0, fmt.Errorf("failed to allocate id for %s: %w", entity, err)
	}
	return next, nil
}

// CreateUser creates a new user in the database
func (r *Repository) CreateUser(user *models.User) error {
	query := `
		INSERT INTO gallery.users (id, username, email, password_hash, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.Exec(query, user.ID, user.Username, user.Email, user.PasswordHash, user.IsActive, user.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindUserByEmail retrieves a user by email
func (r *Repository) FindUserByEmail(email string) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, username, email, password_hash, is_active, created_at
		FROM gallery.users
		WHERE email = $1`
	err := r.db.QueryRow(query, email).
		Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.IsActive, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// CreateCollection creates a new collection in the database
func (r *Repository) CreateCollection(c *models.Collection) error {
	query := `
		INSERT INTO gallery.collections (id, name, description, owner_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.Exec(query, c.ID, c.Name, c.Description, c.OwnerID, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}
	return nil
}

// ListCollections returns all collections, most recently created first
func (r *Repository) ListCollections() ([]models.Collection, error) {
	query := `
		SELECT id, name, description, owner_id, created_at, updated_at
		FROM gallery.collections
		ORDER BY created_at DESC, id DESC`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}
	defer rows.Close()

	collections := []models.Collection{}
	for rows.Next() {
		var c models.Collection
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.OwnerID, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan collection: %w", err)
		}
		collections = append(collections, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read collections: %w", err)
	}
	return collections, nil
}

// FindCollectionByID retrieves a collection by id
func (r *Repository) FindCollectionByID(id int64) (*models.Collection, error) {
	c := &models.Collection{}
	query := `
		SELECT id, name, description, owner_id, created_at, updated_at
		FROM gallery.collections
		WHERE id = $1`
	err := r.db.QueryRow(query, id).
		Scan(&c.ID, &c.Name, &c.Description, &c.OwnerID, &c.CreatedAt, &c.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find collection: %w", err)
	}
	return c, nil
}

// UpdateCollection persists name, description and updated_at
func (r *Repository) UpdateCollection(c *models.Collection) error {
	query := `
		UPDATE gallery.collections
		SET name = $1, description = $2, updated_at = $3
		WHERE id = $4`
	res, err := r.db.Exec(query, c.Name, c.Description, c.UpdatedAt, c.ID)
	if err != nil {
		return fmt.Errorf("failed to update collection: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update collection: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteCollection removes a collection by id
func (r *Repository) DeleteCollection(id int64) error {
	res, err := r.db.Exec(`DELETE FROM gallery.collections WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete collection: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete collection: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// CreateImage creates a new image record in the database
func (r *Repository) CreateImage(img *models.Image) error {
	query := `
		INSERT INTO gallery.images (id, title, description, filename, mime_type, owner_id, collection_id, shot_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	collectionID := sql.NullInt64{Int64: img.CollectionID, Valid: img.CollectionID != 0}
	_, err := r.db.Exec(query, img.ID, img.Title, img.Description, img.Filename, img.MimeType,
		img.OwnerID, collectionID, img.ShotDate, img.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create image: %w", err)
	}
	return nil
}

// FindImageByID retrieves an image record by id
func (r *Repository) FindImageByID(id int64) (*models.Image, error) {
	img := &models.Image{}
	var collectionID sql.NullInt64
	query := `
		SELECT id, title, description, filename, mime_type, owner_id, collection_id, shot_date, created_at
		FROM gallery.images
		WHERE id = $1`
	err := r.db.QueryRow(query, id).
		Scan(&img.ID, &img.Title, &img.Description, &img.Filename, &img.MimeType,
			&img.OwnerID, &collectionID, &img.ShotDate, &img.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find image: %w", err)
	}
	img.CollectionID = collectionID.Int64
	return img, nil
}

// UpdateImage persists filename, mime type and shot date after an upload
func (r *Repository) UpdateImage(img *models.Image) error {
	query := `
		UPDATE gallery.images
		SET filename = $1, mime_type = $2, shot_date = $3
		WHERE id = $4`
	res, err := r.db.Exec(query, img.Filename, img.MimeType, img.ShotDate, img.ID)
	if err != nil {
		return fmt.Errorf("failed to update image: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update image: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListImages returns all image records in insertion order
func (r *Repository) ListImages() ([]models.Image, error) {
	query := `
		SELECT id, title, description, filename, mime_type, owner_id, collection_id, shot_date, created_at
		FROM gallery.images
		ORDER BY id`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list images: %w", err)
	}
	defer rows.Close()

	images := []models.Image{}
	for rows.Next() {
		var img models.Image
		var collectionID sql.NullInt64
		if err := rows.Scan(&img.ID, &img.Title, &img.Description, &img.Filename, &img.MimeType,
			&img.OwnerID, &collectionID, &img.ShotDate, &img.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan image: %w", err)
		}
		img.CollectionID = collectionID.Int64
		images = append(images, img)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read images: %w", err)
	}
	return images, nil
}
