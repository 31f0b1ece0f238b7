package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sreaderapp/sreader-server/internal/models"
	"github.com/sreaderapp/sreader-server/internal/repository"
)

var ErrDeviceNotFound = errors.New("device not found")

type UserService struct {
	users repository.UserRepository
	now   func() time.Time
}

func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users, now: time.Now}
}

func (s *UserService) GetUser(id uuid.UUID) (*models.User, error) {
	user, err := s.users.GetByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return user, nil
}

func (s *UserService) UpdateUser(id uuid.UUID, displayName, avatarURL *string) (*models.User, error) {
	user, err := s.GetUser(id)
	if err != nil {
		return nil, err
	}
	if displayName != nil {
		user.DisplayName = *displayName
	}
	if avatarURL != nil {
		user.AvatarURL = *avatarURL
	}
	if err := s.users.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

func (s *UserService) ListDevices(userID uuid.UUID) ([]models.Device, error) {
	return s.users.ListDevices(userID)
}

// RegisterDevice upserts a push token registration. A token already
// registered to the user just refreshes its last-seen timestamp.
func (s *UserService) RegisterDevice(userID uuid.UUID, platform, pushToken string, metadata []byte) (*models.Device, error) {
	if platform == "" || pushToken == "" {
		return nil, &ValidationError{Fields: map[string]string{"platform": "platform and push_token are required"}}
	}

	device := models.Device{
		ID:        uuid.New(),
		UserID:    userID,
		Platform:  platform,
		PushToken: pushToken,
		Metadata:  metadata,
		LastSeen:  s.now(),
	}
	if err := s.users.RegisterDevice(&device); err != nil {
		return nil, fmt.Errorf("failed to register device: %w", err)
	}
	return &device, nil
}

func (s *UserService) RevokeDevice(userID, deviceID uuid.UUID) error {
	if err := s.users.RevokeDevice(userID, deviceID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrDeviceNotFound
		}
		return fmt.Errorf("failed to revoke device: %w", err)
	}
	return nil
}

func (s *UserService) GetLocation(userID uuid.UUID) (*models.LastLocation, error) {
	location, err := s.users.GetLocation(userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load location: %w", err)
	}
	return location, nil
}

func (s *UserService) SaveLocation(userID uuid.UUID, latitude, longitude float64) (*models.LastLocation, error) {
	if latitude < -90 || latitude > 90 || longitude < -180 || longitude > 180 {
		return nil, &ValidationError{Fields: map[string]string{"location": "coordinates out of range"}}
	}

	location := models.LastLocation{
		ID:         uuid.New(),
		UserID:     userID,
		Latitude:   latitude,
		Longitude:  longitude,
		RecordedAt: s.now(),
	}
	if err := s.users.SaveLocation(&location); err != nil {
		return nil, fmt.Errorf("failed to save location: %w", err)
	}
	return &location, nil
}
