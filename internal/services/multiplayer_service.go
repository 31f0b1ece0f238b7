package services

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/sreaderapp/sreader-server/internal/models"
	"github.com/sreaderapp/sreader-server/internal/repository"
	"github.com/sreaderapp/sreader-server/internal/ws"
)

var (
	ErrSessionNotFound  = errors.New("game session not found")
	ErrSessionNotOpen   = errors.New("game session is not accepting players")
	ErrSessionNotActive = errors.New("game session is not active")
	ErrNotSessionHost   = errors.New("only the host can control this session")
	ErrNotSessionPlayer = errors.New("you have not joined this session")
)

// Session join codes avoid 0/O and 1/I lookalikes.
const joinCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

type MultiplayerService struct {
	sessions     repository.MultiplayerRepository
	assignments  repository.AssignmentRepository
	gamification *GamificationService
	hub          *ws.Hub
	now          func() time.Time
}

func NewMultiplayerService(sessions repository.MultiplayerRepository, assignments repository.AssignmentRepository, gamification *GamificationService, hub *ws.Hub) *MultiplayerService {
	return &MultiplayerService{
		sessions:     sessions,
		assignments:  assignments,
		gamification: gamification,
		hub:          hub,
		now:          time.Now,
	}
}

// CreateSession opens a waiting lobby for an assignment. The host is added
// as the first player.
func (s *MultiplayerService) CreateSession(hostID, assignmentID uuid.UUID, settings map[string]interface{}) (*models.GameSession, error) {
	if _, err := s.assignments.GetByID(assignmentID); err != nil {
		return nil, ErrAssignmentNotFound
	}

	raw, err := json.Marshal(settings)
	if err != nil {
		return nil, fmt.Errorf("failed to encode settings: %w", err)
	}
	if settings == nil {
		raw = []byte("{}")
	}

	session := models.GameSession{
		ID:           uuid.New(),
		HostID:       hostID,
		AssignmentID: assignmentID,
		Status:       models.SessionWaiting,
		Settings:     raw,
	}

	// Regenerate on the rare code collision.
	for attempt := 0; attempt < 5; attempt++ {
		session.Code, err = newJoinCode(6)
		if err != nil {
			return nil, fmt.Errorf("failed to generate join code: %w", err)
		}
		err = s.sessions.CreateSession(&session)
		if err == nil {
			break
		}
		if !errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("failed to create session: %w", err)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	if err := s.sessions.AddPlayer(&models.GamePlayer{
		ID:        uuid.New(),
		SessionID: session.ID,
		UserID:    hostID,
		JoinedAt:  s.now(),
	}); err != nil {
		return nil, fmt.Errorf("failed to seat host: %w", err)
	}
	return &session, nil
}

func (s *MultiplayerService) GetSession(id uuid.UUID) (*models.GameSession, []models.GamePlayer, error) {
	session, err := s.sessions.GetSession(id)
	if err != nil {
		return nil, nil, ErrSessionNotFound
	}
	players, err := s.sessions.ListPlayers(id)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list players: %w", err)
	}
	return session, players, nil
}

// JoinSession seats a user in a waiting lobby by its join code and
// announces the arrival to everyone already connected.
func (s *MultiplayerService) JoinSession(code string, userID uuid.UUID) (*models.GameSession, error) {
	session, err := s.sessions.GetSessionByCode(code)
	if err != nil {
		return nil, ErrSessionNotFound
	}
	if session.Status != models.SessionWaiting {
		return nil, ErrSessionNotOpen
	}

	err = s.sessions.AddPlayer(&models.GamePlayer{
		ID:        uuid.New(),
		SessionID: session.ID,
		UserID:    userID,
		JoinedAt:  s.now(),
	})
	if err != nil && !errors.Is(err, repository.ErrDuplicate) {
		return nil, fmt.Errorf("failed to join session: %w", err)
	}

	s.broadcast(session.ID, "player_joined", map[string]interface{}{"user_id": userID})
	return session, nil
}

// StartSession moves a waiting lobby to active. Host only.
func (s *MultiplayerService) StartSession(id, userID uuid.UUID) (*models.GameSession, error) {
	session, err := s.sessions.GetSession(id)
	if err != nil {
		return nil, ErrSessionNotFound
	}
	if session.HostID != userID {
		return nil, ErrNotSessionHost
	}
	if session.Status != models.SessionWaiting {
		return nil, ErrSessionNotOpen
	}

	now := s.now()
	session.Status = models.SessionActive
	session.StartedAt = &now
	if err := s.sessions.UpdateSession(session); err != nil {
		return nil, fmt.Errorf("failed to start session: %w", err)
	}

	s.broadcast(session.ID, "session_started", map[string]interface{}{"started_at": now})
	return session, nil
}

// SubmitScore records a player's score during an active round.
func (s *MultiplayerService) SubmitScore(id, userID uuid.UUID, score int) error {
	session, err := s.sessions.GetSession(id)
	if err != nil {
		return ErrSessionNotFound
	}
	if session.Status != models.SessionActive {
		return ErrSessionNotActive
	}

	if err := s.sessions.SetPlayerScore(id, userID, score); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotSessionPlayer
		}
		return fmt.Errorf("failed to record score: %w", err)
	}

	s.broadcast(id, "score_updated", map[string]interface{}{"user_id": userID, "score": score})
	return nil
}

// FinishSession closes an active round, credits every player's score as
// gamification points, and broadcasts the final standings. Host only.
func (s *MultiplayerService) FinishSession(id, userID uuid.UUID) (*models.GameSession, []models.GamePlayer, error) {
	session, err := s.sessions.GetSession(id)
	if err != nil {
		return nil, nil, ErrSessionNotFound
	}
	if session.HostID != userID {
		return nil, nil, ErrNotSessionHost
	}
	if session.Status != models.SessionActive {
		return nil, nil, ErrSessionNotActive
	}

	now := s.now()
	session.Status = models.SessionFinished
	session.FinishedAt = &now
	if err := s.sessions.UpdateSession(session); err != nil {
		return nil, nil, fmt.Errorf("failed to finish session: %w", err)
	}

	players, err := s.sessions.ListPlayers(id)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list players: %w", err)
	}
	for _, player := range players {
		if player.Score <= 0 {
			continue
		}
		if _, err := s.gamification.RecordActivity(player.UserID, player.Score); err != nil {
			slog.Warn("failed to credit session points", "user_id", player.UserID, "error", err)
		}
	}

	s.broadcast(id, "session_finished", map[string]interface{}{"players": players})
	return session, players, nil
}

func (s *MultiplayerService) broadcast(sessionID uuid.UUID, event string, data map[string]interface{}) {
	if s.hub == nil {
		return
	}
	s.hub.BroadcastToSession(sessionID.String(), ws.Event{Event: event, Data: data})
}

func newJoinCode(length int) (string, error) {
	code := make([]byte, length)
	max := big.NewInt(int64(len(joinCodeAlphabet)))
	for i := range code {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		code[i] = joinCodeAlphabet[n.Int64()]
	}
	return string(code), nil
}
