package postgres

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sreaderapp/sreader-server/internal/models"
	"github.com/sreaderapp/sreader-server/internal/repository"
	"gorm.io/gorm"
)

type MultiplayerRepository struct {
	db *gorm.DB
}

func NewMultiplayerRepository(db *gorm.DB) *MultiplayerRepository {
	return &MultiplayerRepository{db: db}
}

func (r *MultiplayerRepository) CreateSession(session *models.GameSession) error {
	if err := r.db.Create(session).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("create game session: %w", err)
	}
	return nil
}

func (r *MultiplayerRepository) GetSession(id uuid.UUID) (*models.GameSession, error) {
	var session models.GameSession
	if err := r.db.First(&session, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("get game session: %w", err)
	}
	return &session, nil
}

func (r *MultiplayerRepository) GetSessionByCode(code string) (*models.GameSession, error) {
	var session models.GameSession
	if err := r.db.First(&session, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("get game session by code: %w", err)
	}
	return &session, nil
}

func (r *MultiplayerRepository) UpdateSession(session *models.GameSession) error {
	result := r.db.Model(&models.GameSession{}).Where("id = ?", session.ID).Updates(map[string]interface{}{
		"status":      session.Status,
		"settings":    session.Settings,
		"started_at":  session.StartedAt,
		"finished_at": session.FinishedAt,
	})
	if result.Error != nil {
		return fmt.Errorf("update game session: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *MultiplayerRepository) AddPlayer(player *models.GamePlayer) error {
	if err := r.db.Create(player).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("add player: %w", err)
	}
	return nil
}

func (r *MultiplayerRepository) ListPlayers(sessionID uuid.UUID) ([]models.GamePlayer, error) {
	var players []models.GamePlayer
	err := r.db.Preload("User").Where("session_id = ?", sessionID).
		Order("score DESC, joined_at ASC").
		Find(&players).Error
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	return players, nil
}

func (r *MultiplayerRepository) SetPlayerScore(sessionID, userID uuid.UUID, score int) error {
	result := r.db.Model(&models.GamePlayer{}).
		Where("session_id = ? AND user_id = ?", sessionID, userID).
		Update("score", score)
	if result.Error != nil {
		return fmt.Errorf("set player score: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
