package repository

import (
	"errors"

	"solarserver/internal/models"
)

// ErrFieldNotFound is returned by PanelImageRepository.CreateInField when the
// referenced solar field does not exist at commit time.
var ErrFieldNotFound = errors.New("solar field not found")

// UserRepository defines the interface for user account operations.
type UserRepository interface {
	Create(user *models.User) (int64, error)
	GetByID(id int64) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	GetAll() ([]models.User, error)
	Update(user *models.User) error
	Delete(id int64) error
}

// FieldRepository defines the interface for solar field operations.
type FieldRepository interface {
	Create(field *models.SolarField) (int64, error)
	GetByID(id int64) (*models.SolarField, error)
	GetAll() ([]models.SolarField, error)
	Exists(id int64) (bool, error)
	Update(field *models.SolarField) error
	Delete(id int64) error
}

// JobRepository defines the interface for inspection job operations.
type JobRepository interface {
	Create(job *models.Job) (int64, error)
	GetByID(id int64) (*models.Job, error)
	GetAll() ([]models.Job, error)
	Update(job *models.Job) error
	Delete(id int64) error
}

// PanelImageRepository defines the interface for classified image metadata.
type PanelImageRepository interface {
	// CreateInField verifies the field exists and inserts one metadata row,
	// both inside a single transaction. Returns ErrFieldNotFound without
	// writing anything when the field is absent.
	CreateInField(fieldID int64, path, imageClass string) (*models.PanelImage, error)

	GetByID(id int64) (*models.PanelImage, error)
	GetAll() ([]models.PanelImage, error)
	GetByFieldID(fieldID int64) ([]models.PanelImage, error)
	Update(img *models.PanelImage) error
	Delete(id int64) error
}
