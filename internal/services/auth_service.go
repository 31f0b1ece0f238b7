package services

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"regexp"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sreaderapp/sreader-server/internal/config"
	"github.com/sreaderapp/sreader-server/internal/dto"
	"github.com/sreaderapp/sreader-server/internal/models"
	"github.com/sreaderapp/sreader-server/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailNotConfirmed  = errors.New("email not confirmed")
	ErrInvalidToken       = errors.New("invalid or expired refresh token")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidResetCode   = errors.New("invalid reset code")
	ErrResetCodeExpired   = errors.New("reset code expired")
	ErrResetNotVerified   = errors.New("reset code was not verified")
)

// ValidationError carries field-level messages for input rejected before any
// repository call.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, field+": "+msg)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Mailer delivers password reset codes.
type Mailer interface {
	SendResetCode(to, code string) error
}

type AuthService struct {
	users  repository.UserRepository
	tokens repository.TokenRepository
	mailer Mailer
	cfg    *config.Config
	now    func() time.Time
}

func NewAuthService(users repository.UserRepository, tokens repository.TokenRepository, mailer Mailer, cfg *config.Config) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
		mailer: mailer,
		cfg:    cfg,
		now:    time.Now,
	}
}

func (s *AuthService) Register(req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if err := validateRegister(req); err != nil {
		return nil, err
	}

	if _, err := s.users.GetByEmail(req.Email); err == nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:          uuid.New(),
		Email:       req.Email,
		Password:    string(hash),
		Roles:       models.RoleList{models.RoleStudent},
		DisplayName: req.DisplayName,
	}
	if req.Phone != "" {
		user.Phone = &req.Phone
	}
	if !s.cfg.RequireEmailConfirm {
		confirmed := s.now()
		user.EmailConfirmedAt = &confirmed
	}

	if err := s.users.Create(&user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.generateTokenPair(&user)
}

func validateRegister(req *dto.RegisterRequest) error {
	fields := make(map[string]string)
	if req.Email == "" && req.Phone == "" {
		fields["email"] = "email or phone is required"
	}
	if req.Email != "" && !emailPattern.MatchString(req.Email) {
		fields["email"] = "invalid email address"
	}
	if strings.TrimSpace(req.DisplayName) == "" {
		fields["display_name"] = "required"
	}
	if len(req.Password) < 8 {
		fields["password"] = "must be at least 8 characters"
	}
	if req.Password != req.ConfirmPassword {
		fields["confirm_password"] = "passwords do not match"
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func (s *AuthService) Login(req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.users.GetByEmail(req.Email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if s.cfg.RequireEmailConfirm && user.EmailConfirmedAt == nil {
		return nil, ErrEmailNotConfirmed
	}

	return s.generateTokenPair(user)
}

func (s *AuthService) Refresh(req *dto.RefreshRequest) (*dto.AuthResponse, error) {
	tokenHash := hashToken(req.RefreshToken)

	stored, err := s.tokens.GetRefreshByHash(tokenHash)
	if err != nil {
		return nil, ErrInvalidToken
	}

	// Refresh tokens are single-use.
	if err := s.tokens.RevokeRefresh(tokenHash); err != nil {
		return nil, fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	if s.now().After(stored.ExpiresAt) {
		return nil, ErrInvalidToken
	}

	user, err := s.users.GetByID(stored.UserID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	return s.generateTokenPair(user)
}

// Logout revokes the refresh token best-effort: a failed remote revoke is
// logged, never surfaced, so the client can always clear its session.
func (s *AuthService) Logout(req *dto.LogoutRequest) {
	if req.RefreshToken == "" {
		return
	}
	if err := s.tokens.RevokeRefresh(hashToken(req.RefreshToken)); err != nil {
		slog.Error("logout revoke failed", "error", err)
	}
}

// RequestPasswordReset issues a one-time numeric code bound to the email and
// mails it. The code is stored hashed with a short expiry.
func (s *AuthService) RequestPasswordReset(req *dto.RequestResetRequest) error {
	if req.Email == "" || !emailPattern.MatchString(req.Email) {
		return &ValidationError{Fields: map[string]string{"email": "invalid email address"}}
	}

	if _, err := s.users.GetByEmail(req.Email); err != nil {
		return ErrUserNotFound
	}

	code, err := newResetCode()
	if err != nil {
		return err
	}

	record := models.PasswordResetCode{
		ID:        uuid.New(),
		Email:     req.Email,
		CodeHash:  hashToken(code),
		ExpiresAt: s.now().Add(s.cfg.ResetCodeTTL),
	}
	if err := s.tokens.CreateResetCode(&record); err != nil {
		return fmt.Errorf("failed to store reset code: %w", err)
	}

	if err := s.mailer.SendResetCode(req.Email, code); err != nil {
		return fmt.Errorf("failed to send reset code: %w", err)
	}
	return nil
}

// VerifyResetOTP checks a code without consuming it, so the client can move
// to the new-password step while the code stays valid for the final call.
func (s *AuthService) VerifyResetOTP(req *dto.VerifyResetRequest) error {
	record, err := s.lookupResetCode(req.Email, req.Code)
	if err != nil {
		return err
	}
	return s.tokens.MarkResetVerified(record.ID)
}

// ResetPassword consumes a previously verified code and updates the
// credential. It fails when no code was ever requested or verified.
func (s *AuthService) ResetPassword(req *dto.ResetPasswordRequest) error {
	fields := make(map[string]string)
	if len(req.NewPassword) < 8 {
		fields["new_password"] = "must be at least 8 characters"
	}
	if req.NewPassword != req.ConfirmPassword {
		fields["confirm_password"] = "passwords do not match"
	}
	if req.Code == "" {
		fields["code"] = "required"
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}

	record, err := s.lookupResetCode(req.Email, req.Code)
	if err != nil {
		return err
	}
	if !record.Verified {
		return ErrResetNotVerified
	}

	user, err := s.users.GetByEmail(record.Email)
	if err != nil {
		return ErrUserNotFound
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.users.SetPassword(user.ID, string(hash)); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if err := s.tokens.MarkResetConsumed(record.ID, s.now()); err != nil {
		return fmt.Errorf("failed to consume reset code: %w", err)
	}

	// Existing sessions are invalidated after a credential change.
	if err := s.tokens.RevokeAllForUser(user.ID); err != nil {
		slog.Error("failed to revoke sessions after password reset", "error", err, "user_id", user.ID)
	}
	return nil
}

func (s *AuthService) lookupResetCode(email, code string) (*models.PasswordResetCode, error) {
	record, err := s.tokens.GetResetCodeByHash(hashToken(code))
	if err != nil {
		return nil, ErrInvalidResetCode
	}
	if record.Email != email || record.ConsumedAt != nil {
		return nil, ErrInvalidResetCode
	}
	if s.now().After(record.ExpiresAt) {
		return nil, ErrResetCodeExpired
	}
	return record, nil
}

func (s *AuthService) GetProfile(userID uuid.UUID) (*models.Profile, error) {
	profile, err := s.users.GetProfile(userID)
	if errors.Is(err, repository.ErrNotFound) {
		// Missing profile is recoverable: return a default empty one.
		return &models.Profile{UserID: userID}, nil
	}
	if err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *AuthService) UpdateProfile(userID uuid.UUID, req *dto.UpdateProfileRequest) (*models.Profile, error) {
	user, err := s.users.GetByID(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	if strings.TrimSpace(req.DisplayName) != "" {
		user.DisplayName = strings.TrimSpace(req.DisplayName)
	}
	if req.AvatarURL != "" {
		user.AvatarURL = req.AvatarURL
	}
	if err := s.users.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	profile, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}
	if req.Bio != "" {
		profile.Bio = req.Bio
	}
	if req.GradeLevel != "" {
		profile.GradeLevel = req.GradeLevel
	}
	if req.AvatarURL != "" {
		profile.AvatarURL = req.AvatarURL
	}
	if err := s.users.SaveProfile(profile); err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}
	return profile, nil
}

func (s *AuthService) DeleteAccount(userID uuid.UUID, password string) error {
	user, err := s.users.GetByID(userID)
	if err != nil {
		return ErrUserNotFound
	}
	if password == "" {
		return &ValidationError{Fields: map[string]string{"password": "required"}}
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return s.users.Delete(userID)
}

func (s *AuthService) generateTokenPair(user *models.User) (*dto.AuthResponse, error) {
	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.generateRefreshToken(user)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         dto.UserResponseFrom(user),
	}, nil
}

func (s *AuthService) generateAccessToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":   user.ID.String(),
		"email": user.Email,
		"roles": []string(user.Roles),
		"iat":   s.now().Unix(),
		"exp":   s.now().Add(s.cfg.JWTAccessExpiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func (s *AuthService) generateRefreshToken(user *models.User) (string, error) {
	rawBytes := make([]byte, 32)
	if _, err := rand.Read(rawBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	rawToken := base64.URLEncoding.EncodeToString(rawBytes)

	record := models.RefreshToken{
		ID:        uuid.New(),
		UserID:    user.ID,
		TokenHash: hashToken(rawToken),
		ExpiresAt: s.now().Add(s.cfg.JWTRefreshExpiry),
	}
	if err := s.tokens.CreateRefresh(&record); err != nil {
		return "", fmt.Errorf("failed to store refresh token: %w", err)
	}

	return rawToken, nil
}

func newResetCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("failed to generate reset code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func hashToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return fmt.Sprintf("%x", h)
}
