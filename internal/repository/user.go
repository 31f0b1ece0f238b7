package repository

import (
	"github.com/google/uuid"
	"github.com/sreaderapp/sreader-server/internal/models"
)

type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uuid.UUID) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	ListStudents() ([]models.User, error)
	Update(user *models.User) error
	SetPassword(id uuid.UUID, passwordHash string) error
	Delete(id uuid.UUID) error

	GetProfile(userID uuid.UUID) (*models.Profile, error)
	SaveProfile(profile *models.Profile) error

	ListDevices(userID uuid.UUID) ([]models.Device, error)
	RegisterDevice(device *models.Device) error
	RevokeDevice(userID, deviceID uuid.UUID) error

	GetLocation(userID uuid.UUID) (*models.LastLocation, error)
	SaveLocation(location *models.LastLocation) error
}
