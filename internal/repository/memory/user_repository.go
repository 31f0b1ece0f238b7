// Package memory provides in-memory repository adapters used in tests and
// local development.
package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sreaderapp/sreader-server/internal/models"
	"github.com/sreaderapp/sreader-server/internal/repository"
)

type UserRepository struct {
	mu        sync.RWMutex
	users     map[uuid.UUID]models.User
	profiles  map[uuid.UUID]models.Profile
	devices   map[uuid.UUID]models.Device
	locations map[uuid.UUID]models.LastLocation
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		users:     make(map[uuid.UUID]models.User),
		profiles:  make(map[uuid.UUID]models.Profile),
		devices:   make(map[uuid.UUID]models.Device),
		locations: make(map[uuid.UUID]models.LastLocation),
	}
}

func (r *UserRepository) Create(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.users[user.ID] = *user
	return nil
}

func (r *UserRepository) GetByID(id uuid.UUID) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &user, nil
}

func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *UserRepository) ListStudents() ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []models.User
	for _, user := range r.users {
		if user.Roles.Has(models.RoleStudent) {
			out = append(out, user)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DisplayName < out[j].DisplayName })
	return out, nil
}

func (r *UserRepository) Update(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.users[user.ID]
	if !ok {
		return repository.ErrNotFound
	}
	existing.DisplayName = user.DisplayName
	existing.AvatarURL = user.AvatarURL
	existing.Phone = user.Phone
	existing.Roles = user.Roles
	existing.UpdatedAt = time.Now()
	r.users[user.ID] = existing
	return nil
}

func (r *UserRepository) SetPassword(id uuid.UUID, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	existing.Password = passwordHash
	existing.UpdatedAt = time.Now()
	r.users[id] = existing
	return nil
}

func (r *UserRepository) Delete(id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.users, id)
	delete(r.profiles, id)
	delete(r.locations, id)
	for deviceID, device := range r.devices {
		if device.UserID == id {
			delete(r.devices, deviceID)
		}
	}
	return nil
}

func (r *UserRepository) GetProfile(userID uuid.UUID) (*models.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	profile, ok := r.profiles[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &profile, nil
}

func (r *UserRepository) SaveProfile(profile *models.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}
	profile.UpdatedAt = time.Now()
	r.profiles[profile.UserID] = *profile
	return nil
}

func (r *UserRepository) ListDevices(userID uuid.UUID) ([]models.Device, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []models.Device
	for _, device := range r.devices {
		if device.UserID == userID {
			out = append(out, device)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LastSeen.After(out[j].LastSeen) })
	return out, nil
}

func (r *UserRepository) RegisterDevice(device *models.Device) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, existing := range r.devices {
		if existing.PushToken == device.PushToken {
			device.ID = id
			r.devices[id] = *device
			return nil
		}
	}
	if device.ID == uuid.Nil {
		device.ID = uuid.New()
	}
	r.devices[device.ID] = *device
	return nil
}

func (r *UserRepository) RevokeDevice(userID, deviceID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	device, ok := r.devices[deviceID]
	if !ok || device.UserID != userID {
		return repository.ErrNotFound
	}
	delete(r.devices, deviceID)
	return nil
}

func (r *UserRepository) GetLocation(userID uuid.UUID) (*models.LastLocation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	location, ok := r.locations[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &location, nil
}

func (r *UserRepository) SaveLocation(location *models.LastLocation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if location.ID == uuid.Nil {
		location.ID = uuid.New()
	}
	r.locations[location.UserID] = *location
	return nil
}
