package memory

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sreaderapp/sreader-server/internal/models"
	"github.com/sreaderapp/sreader-server/internal/repository"
)

type TokenRepository struct {
	mu         sync.RWMutex
	refresh    map[string]models.RefreshToken
	resetCodes map[string]models.PasswordResetCode
}

func NewTokenRepository() *TokenRepository {
	return &TokenRepository{
		refresh:    make(map[string]models.RefreshToken),
		resetCodes: make(map[string]models.PasswordResetCode),
	}
}

func (r *TokenRepository) CreateRefresh(token *models.RefreshToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if token.ID == uuid.Nil {
		token.ID = uuid.New()
	}
	r.refresh[token.TokenHash] = *token
	return nil
}

func (r *TokenRepository) GetRefreshByHash(hash string) (*models.RefreshToken, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	token, ok := r.refresh[hash]
	if !ok || token.Revoked {
		return nil, repository.ErrNotFound
	}
	return &token, nil
}

func (r *TokenRepository) RevokeRefresh(hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if token, ok := r.refresh[hash]; ok {
		token.Revoked = true
		r.refresh[hash] = token
	}
	return nil
}

func (r *TokenRepository) RevokeAllForUser(userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for hash, token := range r.refresh {
		if token.UserID == userID {
			token.Revoked = true
			r.refresh[hash] = token
		}
	}
	return nil
}

func (r *TokenRepository) CreateResetCode(code *models.PasswordResetCode) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if code.ID == uuid.Nil {
		code.ID = uuid.New()
	}
	r.resetCodes[code.CodeHash] = *code
	return nil
}

func (r *TokenRepository) GetResetCodeByHash(hash string) (*models.PasswordResetCode, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	code, ok := r.resetCodes[hash]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &code, nil
}

func (r *TokenRepository) MarkResetVerified(id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for hash, code := range r.resetCodes {
		if code.ID == id {
			code.Verified = true
			r.resetCodes[hash] = code
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *TokenRepository) MarkResetConsumed(id uuid.UUID, when time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for hash, code := range r.resetCodes {
		if code.ID == id {
			if code.ConsumedAt != nil {
				return repository.ErrNotFound
			}
			code.ConsumedAt = &when
			r.resetCodes[hash] = code
			return nil
		}
	}
	return repository.ErrNotFound
}
