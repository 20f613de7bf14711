package service

import (
	"github.com/Dan9191/gallery-service/internal/auth"
	"github.com/Dan9191/gallery-service/internal/config"
	"github.com/Dan9191/gallery-service/internal/models"
	"github.com/sirupsen/logrus"
)

// Store is the persistence boundary: a keyed collection per entity kind
// with query-by-field and sorted listing. Implemented by
// repository.Repository (Postgres) and repository.Memory.
type Store interface {
	NextID(entity string) (int64, error)

	CreateUser(user *models.User) error
	FindUserByEmail(email string) (*models.User, error)

	CreateCollection(c *models.Collection) error
	ListCollections() ([]models.Collection, error)
	FindCollectionByID(id int64) (*models.Collection, error)
	UpdateCollection(c *models.Collection) error
	DeleteCollection(id int64) error

	CreateImage(img *models.Image) error
	FindImageByID(id int64) (*models.Image, error)
	UpdateImage(img *models.Image) error
	ListImages() ([]models.Image, error)
}

// Mailer sends account emails. A nil Mailer disables outgoing mail.
type Mailer interface {
	SendWelcome(to, username string) error
}

// Service handles business logic
type Service struct {
	store  Store
	tokens *auth.TokenService
	mail   Mailer
	log    *logrus.Logger
	config *config.Config
}

// NewService initializes a new service
func NewService(store Store, tokens *auth.TokenService, mail Mailer, log *logrus.Logger, cfg *config.Config) *Service {
	return &Service{store: store, tokens: tokens, mail: mail, log: log, config: cfg}
}
