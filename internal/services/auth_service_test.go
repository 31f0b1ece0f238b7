package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sreaderapp/sreader-server/internal/config"
	"github.com/sreaderapp/sreader-server/internal/dto"
	"github.com/sreaderapp/sreader-server/internal/models"
	"github.com/sreaderapp/sreader-server/internal/repository/memory"
)

type captureMailer struct {
	to   string
	code string
}

func (m *captureMailer) SendResetCode(to, code string) error {
	m.to = to
	m.code = code
	return nil
}

func newAuthFixture(t *testing.T) (*AuthService, *memory.UserRepository, *memory.TokenRepository, *captureMailer) {
	t.Helper()
	users := memory.NewUserRepository()
	tokens := memory.NewTokenRepository()
	mailer := &captureMailer{}
	cfg := &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: 24 * time.Hour,
		ResetCodeTTL:     15 * time.Minute,
	}
	return NewAuthService(users, tokens, mailer, cfg), users, tokens, mailer
}

func register(t *testing.T, svc *AuthService, email string) *dto.AuthResponse {
	t.Helper()
	resp, err := svc.Register(&dto.RegisterRequest{
		Email:           email,
		DisplayName:     "Test User",
		Password:        "password123",
		ConfirmPassword: "password123",
	})
	require.NoError(t, err)
	return resp
}

func TestRegisterValidation(t *testing.T) {
	svc, _, _, _ := newAuthFixture(t)

	_, err := svc.Register(&dto.RegisterRequest{
		Email:           "not-an-email",
		DisplayName:     " ",
		Password:        "short",
		ConfirmPassword: "different",
	})
	require.Error(t, err)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, "email")
	assert.Contains(t, vErr.Fields, "display_name")
	assert.Contains(t, vErr.Fields, "password")
	assert.Contains(t, vErr.Fields, "confirm_password")
}

func TestRegisterAssignsStudentRole(t *testing.T) {
	svc, users, _, _ := newAuthFixture(t)

	resp := register(t, svc, "student@example.com")
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, models.RoleList{models.RoleStudent}, resp.User.Roles)

	stored, err := users.GetByEmail("student@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "password123", stored.Password, "password must be stored hashed")
	assert.NotNil(t, stored.EmailConfirmedAt)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _, _ := newAuthFixture(t)

	register(t, svc, "dup@example.com")
	_, err := svc.Register(&dto.RegisterRequest{
		Email:           "dup@example.com",
		DisplayName:     "Other",
		Password:        "password123",
		ConfirmPassword: "password123",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLogin(t *testing.T) {
	svc, _, _, _ := newAuthFixture(t)
	register(t, svc, "login@example.com")

	resp, err := svc.Login(&dto.LoginRequest{Email: "login@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)

	_, err = svc.Login(&dto.LoginRequest{Email: "login@example.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(&dto.LoginRequest{Email: "nobody@example.com", Password: "password123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginRequiresConfirmedEmail(t *testing.T) {
	svc, _, _, _ := newAuthFixture(t)
	svc.cfg.RequireEmailConfirm = true

	register(t, svc, "pending@example.com")
	_, err := svc.Login(&dto.LoginRequest{Email: "pending@example.com", Password: "password123"})
	assert.ErrorIs(t, err, ErrEmailNotConfirmed)
}

func TestRefreshIsSingleUse(t *testing.T) {
	svc, _, _, _ := newAuthFixture(t)
	resp := register(t, svc, "refresh@example.com")

	next, err := svc.Refresh(&dto.RefreshRequest{RefreshToken: resp.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, resp.RefreshToken, next.RefreshToken)

	_, err = svc.Refresh(&dto.RefreshRequest{RefreshToken: resp.RefreshToken})
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPasswordResetFlow(t *testing.T) {
	svc, _, _, mailer := newAuthFixture(t)
	first := register(t, svc, "reset@example.com")

	require.NoError(t, svc.RequestPasswordReset(&dto.RequestResetRequest{Email: "reset@example.com"}))
	require.Equal(t, "reset@example.com", mailer.to)
	require.Len(t, mailer.code, 6)

	require.NoError(t, svc.VerifyResetOTP(&dto.VerifyResetRequest{Email: "reset@example.com", Code: mailer.code}))

	require.NoError(t, svc.ResetPassword(&dto.ResetPasswordRequest{
		Email:           "reset@example.com",
		Code:            mailer.code,
		NewPassword:     "newpassword1",
		ConfirmPassword: "newpassword1",
	}))

	_, err := svc.Login(&dto.LoginRequest{Email: "reset@example.com", Password: "password123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(&dto.LoginRequest{Email: "reset@example.com", Password: "newpassword1"})
	assert.NoError(t, err)

	// Credential change invalidates existing sessions.
	_, err = svc.Refresh(&dto.RefreshRequest{RefreshToken: first.RefreshToken})
	assert.ErrorIs(t, err, ErrInvalidToken)

	// Consumed codes cannot be replayed.
	err = svc.ResetPassword(&dto.ResetPasswordRequest{
		Email:           "reset@example.com",
		Code:            mailer.code,
		NewPassword:     "anotherpass1",
		ConfirmPassword: "anotherpass1",
	})
	assert.ErrorIs(t, err, ErrInvalidResetCode)
}

func TestResetPasswordRequiresVerification(t *testing.T) {
	svc, _, _, mailer := newAuthFixture(t)
	register(t, svc, "unverified@example.com")

	require.NoError(t, svc.RequestPasswordReset(&dto.RequestResetRequest{Email: "unverified@example.com"}))

	err := svc.ResetPassword(&dto.ResetPasswordRequest{
		Email:           "unverified@example.com",
		Code:            mailer.code,
		NewPassword:     "newpassword1",
		ConfirmPassword: "newpassword1",
	})
	assert.ErrorIs(t, err, ErrResetNotVerified)
}

func TestResetCodeUnknownUser(t *testing.T) {
	svc, _, _, _ := newAuthFixture(t)

	err := svc.RequestPasswordReset(&dto.RequestResetRequest{Email: "ghost@example.com"})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestResetCodeWrongCode(t *testing.T) {
	svc, _, _, mailer := newAuthFixture(t)
	register(t, svc, "wrongcode@example.com")

	require.NoError(t, svc.RequestPasswordReset(&dto.RequestResetRequest{Email: "wrongcode@example.com"}))

	wrong := "000000"
	if mailer.code == wrong {
		wrong = "000001"
	}
	err := svc.VerifyResetOTP(&dto.VerifyResetRequest{Email: "wrongcode@example.com", Code: wrong})
	assert.ErrorIs(t, err, ErrInvalidResetCode)
}

func TestResetCodeExpiry(t *testing.T) {
	svc, _, _, mailer := newAuthFixture(t)
	register(t, svc, "expired@example.com")

	require.NoError(t, svc.RequestPasswordReset(&dto.RequestResetRequest{Email: "expired@example.com"}))

	svc.now = func() time.Time { return time.Now().Add(16 * time.Minute) }
	err := svc.VerifyResetOTP(&dto.VerifyResetRequest{Email: "expired@example.com", Code: mailer.code})
	assert.ErrorIs(t, err, ErrResetCodeExpired)
}

func TestDeleteAccount(t *testing.T) {
	svc, users, _, _ := newAuthFixture(t)
	resp := register(t, svc, "delete@example.com")

	err := svc.DeleteAccount(resp.User.ID, "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	require.NoError(t, svc.DeleteAccount(resp.User.ID, "password123"))
	_, err = users.GetByID(resp.User.ID)
	assert.Error(t, err)
}

func TestUpdateProfilePartialUpdateKeepsOmittedFields(t *testing.T) {
	svc, _, _, _ := newAuthFixture(t)
	resp := register(t, svc, "profile@example.com")

	_, err := svc.UpdateProfile(resp.User.ID, &dto.UpdateProfileRequest{
		Bio:        "Reads every night",
		GradeLevel: "5",
	})
	require.NoError(t, err)

	profile, err := svc.UpdateProfile(resp.User.ID, &dto.UpdateProfileRequest{
		DisplayName: "New Name",
	})
	require.NoError(t, err)
	assert.Equal(t, "Reads every night", profile.Bio, "omitted bio must survive the update")
	assert.Equal(t, "5", profile.GradeLevel)
}
