package postgres

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sreaderapp/sreader-server/internal/models"
	"github.com/sreaderapp/sreader-server/internal/repository"
	"gorm.io/gorm"
)

type TokenRepository struct {
	db *gorm.DB
}

func NewTokenRepository(db *gorm.DB) *TokenRepository {
	return &TokenRepository{db: db}
}

func (r *TokenRepository) CreateRefresh(token *models.RefreshToken) error {
	if err := r.db.Create(token).Error; err != nil {
		return fmt.Errorf("create refresh token: %w", err)
	}
	return nil
}

func (r *TokenRepository) GetRefreshByHash(hash string) (*models.RefreshToken, error) {
	var token models.RefreshToken
	err := r.db.First(&token, "token_hash = ? AND revoked = false", hash).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("get refresh token: %w", err)
	}
	return &token, nil
}

func (r *TokenRepository) RevokeRefresh(hash string) error {
	return r.db.Model(&models.RefreshToken{}).
		Where("token_hash = ?", hash).
		Update("revoked", true).Error
}

func (r *TokenRepository) RevokeAllForUser(userID uuid.UUID) error {
	return r.db.Model(&models.RefreshToken{}).
		Where("user_id = ?", userID).
		Update("revoked", true).Error
}

func (r *TokenRepository) CreateResetCode(code *models.PasswordResetCode) error {
	if err := r.db.Create(code).Error; err != nil {
		return fmt.Errorf("create reset code: %w", err)
	}
	return nil
}

func (r *TokenRepository) GetResetCodeByHash(hash string) (*models.PasswordResetCode, error) {
	var code models.PasswordResetCode
	if err := r.db.First(&code, "code_hash = ?", hash).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("get reset code: %w", err)
	}
	return &code, nil
}

func (r *TokenRepository) MarkResetVerified(id uuid.UUID) error {
	result := r.db.Model(&models.PasswordResetCode{}).Where("id = ?", id).Update("verified", true)
	if result.Error != nil {
		return fmt.Errorf("mark reset verified: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *TokenRepository) MarkResetConsumed(id uuid.UUID, when time.Time) error {
	result := r.db.Model(&models.PasswordResetCode{}).
		Where("id = ? AND consumed_at IS NULL", id).
		Update("consumed_at", when)
	if result.Error != nil {
		return fmt.Errorf("mark reset consumed: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
