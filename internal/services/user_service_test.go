package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sreaderapp/sreader-server/internal/repository/memory"
)

func TestRegisterDeviceUpserts(t *testing.T) {
	users := memory.NewUserRepository()
	svc := NewUserService(users)
	userID := addStudent(t, users, "device-owner")

	_, err := svc.RegisterDevice(userID, "", "", nil)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)

	first, err := svc.RegisterDevice(userID, "ios", "token-1", []byte(`{"model":"iPhone"}`))
	require.NoError(t, err)

	// Re-registering the same token keeps a single device record.
	second, err := svc.RegisterDevice(userID, "ios", "token-1", []byte(`{"model":"iPhone"}`))
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	devices, err := svc.ListDevices(userID)
	require.NoError(t, err)
	assert.Len(t, devices, 1)

	assert.ErrorIs(t, svc.RevokeDevice(userID, uuid.New()), ErrDeviceNotFound)
	require.NoError(t, svc.RevokeDevice(userID, first.ID))

	devices, err = svc.ListDevices(userID)
	require.NoError(t, err)
	assert.Empty(t, devices)
}

func TestSaveLocation(t *testing.T) {
	users := memory.NewUserRepository()
	svc := NewUserService(users)
	userID := addStudent(t, users, "traveler")

	missing, err := svc.GetLocation(userID)
	require.NoError(t, err)
	assert.Nil(t, missing, "no location yet is not an error")

	_, err = svc.SaveLocation(userID, 91.0, 0.0)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)

	saved, err := svc.SaveLocation(userID, 41.0082, 28.9784)
	require.NoError(t, err)

	// A later report replaces the previous one.
	_, err = svc.SaveLocation(userID, 40.4093, 49.8671)
	require.NoError(t, err)

	current, err := svc.GetLocation(userID)
	require.NoError(t, err)
	assert.Equal(t, saved.UserID, current.UserID)
	assert.InDelta(t, 40.4093, current.Latitude, 0.0001)
}
