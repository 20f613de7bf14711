package jobs

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Dan9191/gallery-service/internal/models"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// ImageLister is the slice of the store the sweep needs
type ImageLister interface {
	ListImages() ([]models.Image, error)
}

// Cleaner removes files from the upload directory whose image record no
// longer exists. Upload filenames start with the record id, so a file with
// no matching record is an orphan left behind by a deleted image.
type Cleaner struct {
	store     ImageLister
	uploadDir string
	log       *logrus.Logger
}

// NewCleaner creates a cleaner over the given upload directory
func NewCleaner(store ImageLister, uploadDir string, log *logrus.Logger) *Cleaner {
	return &Cleaner{store: store, uploadDir: uploadDir, log: log}
}

// Schedule registers the hourly sweep on the given cron runner
func (c *Cleaner) Schedule(runner *cron.Cron) error {
	_, err := runner.AddFunc("@hourly", func() {
		if err := c.Run(); err != nil {
			c.log.Errorf("Upload sweep failed: %v", err)
		}
	})
	return err
}

// Run performs a single sweep
func (c *Cleaner) Run() error {
	images, err := c.store.ListImages()
	if err != nil {
		return err
	}
	known := make(map[int64]bool, len(images))
	for _, img := range images {
		known[img.ID] = true
	}

	entries, err := os.ReadDir(c.uploadDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		id, ok := leadingID(entry.Name())
		if !ok || known[id] {
			continue
		}
		path := filepath.Join(c.uploadDir, entry.Name())
		if err := os.Remove(path); err != nil {
			c.log.Errorf("Failed to remove orphan upload %s: %v", path, err)
			continue
		}
		removed++
	}

	if removed > 0 {
		c.log.Infof("Upload sweep removed %d orphan file(s)", removed)
	}
	return nil
}

// leadingID parses the integer id prefix of an upload filename
func leadingID(name string) (int64, bool) {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	if base == "" {
		return 0, false
	}
	id, err := strconv.ParseInt(base, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
