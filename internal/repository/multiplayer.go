package repository

import (
	"github.com/google/uuid"
	"github.com/sreaderapp/sreader-server/internal/models"
)

type MultiplayerRepository interface {
	// CreateSession inserts a session. Returns ErrDuplicate when the join
	// code collides.
	CreateSession(session *models.GameSession) error
	GetSession(id uuid.UUID) (*models.GameSession, error)
	GetSessionByCode(code string) (*models.GameSession, error)
	UpdateSession(session *models.GameSession) error

	AddPlayer(player *models.GamePlayer) error
	ListPlayers(sessionID uuid.UUID) ([]models.GamePlayer, error)
	SetPlayerScore(sessionID, userID uuid.UUID, score int) error
}
