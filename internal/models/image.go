package models

import "time"

// Image metadata; the binary itself lives on disk under the upload dir.
// CollectionID is zero when the image is not assigned to a collection.
type Image struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	Filename     string    `json:"filename"`
	MimeType     string    `json:"mime_type"`
	OwnerID      int64     `json:"owner_id"`
	CollectionID int64     `json:"collection_id,omitempty"`
	ShotDate     time.Time `json:"shot_date"`
	CreatedAt    time.Time `json:"created_at"`
}
