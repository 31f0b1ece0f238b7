package postgres

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sreaderapp/sreader-server/internal/models"
	"github.com/sreaderapp/sreader-server/internal/repository"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(user *models.User) error {
	if err := r.db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByID(id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &user, nil
}

func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return &user, nil
}

func (r *UserRepository) ListStudents() ([]models.User, error) {
	var users []models.User
	err := r.db.Where("roles @> ?", models.RoleList{models.RoleStudent}).
		Order("display_name ASC").
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return users, nil
}

func (r *UserRepository) Update(user *models.User) error {
	result := r.db.Model(&models.User{}).Where("id = ?", user.ID).Updates(map[string]interface{}{
		"display_name": user.DisplayName,
		"avatar_url":   user.AvatarURL,
		"phone":        user.Phone,
		"roles":        user.Roles,
	})
	if result.Error != nil {
		return fmt.Errorf("update user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) SetPassword(id uuid.UUID, passwordHash string) error {
	result := r.db.Model(&models.User{}).Where("id = ?", id).Update("password", passwordHash)
	if result.Error != nil {
		return fmt.Errorf("set password: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) Delete(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		tx.Where("user_id = ?", id).Delete(&models.RefreshToken{})
		tx.Where("user_id = ?", id).Delete(&models.Device{})
		tx.Where("user_id = ?", id).Delete(&models.LastLocation{})
		tx.Where("user_id = ?", id).Delete(&models.Profile{})
		tx.Where("user_id = ?", id).Delete(&models.ProgressStat{})
		tx.Where("requester_id = ? OR addressee_id = ?", id, id).Delete(&models.Friendship{})
		return tx.Delete(&models.User{}, "id = ?", id).Error
	})
}

func (r *UserRepository) GetProfile(userID uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.First(&profile, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return &profile, nil
}

func (r *UserRepository) SaveProfile(profile *models.Profile) error {
	var existing models.Profile
	err := r.db.First(&existing, "user_id = ?", profile.UserID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if profile.ID == uuid.Nil {
			profile.ID = uuid.New()
		}
		return r.db.Create(profile).Error
	}
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	profile.ID = existing.ID
	return r.db.Model(&existing).Updates(map[string]interface{}{
		"bio":         profile.Bio,
		"grade_level": profile.GradeLevel,
		"avatar_url":  profile.AvatarURL,
	}).Error
}

func (r *UserRepository) ListDevices(userID uuid.UUID) ([]models.Device, error) {
	var devices []models.Device
	err := r.db.Where("user_id = ?", userID).Order("last_seen DESC").Find(&devices).Error
	if err != nil {
		return nil, fmt.Errorf("list devices: %w", err)
	}
	return devices, nil
}

func (r *UserRepository) RegisterDevice(device *models.Device) error {
	// Re-registering the same push token refreshes ownership and last_seen.
	var existing models.Device
	err := r.db.First(&existing, "push_token = ?", device.PushToken).Error
	if err == nil {
		device.ID = existing.ID
		return r.db.Model(&existing).Updates(map[string]interface{}{
			"user_id":   device.UserID,
			"platform":  device.Platform,
			"metadata":  device.Metadata,
			"last_seen": device.LastSeen,
		}).Error
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("register device: %w", err)
	}
	return r.db.Create(device).Error
}

func (r *UserRepository) RevokeDevice(userID, deviceID uuid.UUID) error {
	result := r.db.Where("id = ? AND user_id = ?", deviceID, userID).Delete(&models.Device{})
	if result.Error != nil {
		return fmt.Errorf("revoke device: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) GetLocation(userID uuid.UUID) (*models.LastLocation, error) {
	var location models.LastLocation
	if err := r.db.First(&location, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("get location: %w", err)
	}
	return &location, nil
}

func (r *UserRepository) SaveLocation(location *models.LastLocation) error {
	var existing models.LastLocation
	err := r.db.First(&existing, "user_id = ?", location.UserID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.Create(location).Error
	}
	if err != nil {
		return fmt.Errorf("save location: %w", err)
	}
	location.ID = existing.ID
	return r.db.Model(&existing).Updates(map[string]interface{}{
		"latitude":    location.Latitude,
		"longitude":   location.Longitude,
		"recorded_at": location.RecordedAt,
	}).Error
}
