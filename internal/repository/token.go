package repository

import (
	"time"

	"github.com/google/uuid"
	"github.com/sreaderapp/sreader-server/internal/models"
)

// TokenRepository stores refresh tokens and password reset codes, both kept
// only as sha256 hashes.
type TokenRepository interface {
	CreateRefresh(token *models.RefreshToken) error
	GetRefreshByHash(hash string) (*models.RefreshToken, error)
	RevokeRefresh(hash string) error
	RevokeAllForUser(userID uuid.UUID) error

	CreateResetCode(code *models.PasswordResetCode) error
	GetResetCodeByHash(hash string) (*models.PasswordResetCode, error)
	MarkResetVerified(id uuid.UUID) error
	MarkResetConsumed(id uuid.UUID, when time.Time) error
}
