package memory

import (
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/sreaderapp/sreader-server/internal/models"
	"github.com/sreaderapp/sreader-server/internal/repository"
)

type MultiplayerRepository struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]models.GameSession
	players  map[uuid.UUID][]models.GamePlayer
}

func NewMultiplayerRepository() *MultiplayerRepository {
	return &MultiplayerRepository{
		sessions: make(map[uuid.UUID]models.GameSession),
		players:  make(map[uuid.UUID][]models.GamePlayer),
	}
}

func (r *MultiplayerRepository) CreateSession(session *models.GameSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.sessions {
		if existing.Code == session.Code {
			return repository.ErrDuplicate
		}
	}
	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}
	r.sessions[session.ID] = *session
	return nil
}

func (r *MultiplayerRepository) GetSession(id uuid.UUID) (*models.GameSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	session, ok := r.sessions[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &session, nil
}

func (r *MultiplayerRepository) GetSessionByCode(code string) (*models.GameSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, session := range r.sessions {
		if session.Code == code {
			s := session
			return &s, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *MultiplayerRepository) UpdateSession(session *models.GameSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[session.ID]; !ok {
		return repository.ErrNotFound
	}
	r.sessions[session.ID] = *session
	return nil
}

func (r *MultiplayerRepository) AddPlayer(player *models.GamePlayer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.players[player.SessionID] {
		if existing.UserID == player.UserID {
			return repository.ErrDuplicate
		}
	}
	if player.ID == uuid.Nil {
		player.ID = uuid.New()
	}
	r.players[player.SessionID] = append(r.players[player.SessionID], *player)
	return nil
}

func (r *MultiplayerRepository) ListPlayers(sessionID uuid.UUID) ([]models.GamePlayer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.GamePlayer, len(r.players[sessionID]))
	copy(out, r.players[sessionID])
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].JoinedAt.Before(out[j].JoinedAt)
	})
	return out, nil
}

func (r *MultiplayerRepository) SetPlayerScore(sessionID, userID uuid.UUID, score int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	players := r.players[sessionID]
	for i := range players {
		if players[i].UserID == userID {
			players[i].Score = score
			return nil
		}
	}
	return repository.ErrNotFound
}
