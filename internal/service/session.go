package service

import (
	"time"

	"github.com/google/uuid"
	"github.com/vaultpass/passfx-go/internal/crypto"
	"github.com/vaultpass/passfx-go/internal/model"
)

// SessionService issues anonymous session tokens that scope history.
type SessionService struct {
	secret string
	ttl    time.Duration
}

// NewSessionService creates a new SessionService.
func NewSessionService(secret string, ttl time.Duration) *SessionService {
	return &SessionService{secret: secret, ttl: ttl}
}

// Create starts a new session.
func (s *SessionService) Create() (model.SessionResponse, error) {
	id := uuid.NewString()
	token, err := crypto.GenerateToken(id, s.secret, s.ttl)
	if err != nil {
		return model.SessionResponse{}, err
	}

	return model.SessionResponse{
		Token:     token,
		SessionID: id,
		ExpiresAt: time.Now().Add(s.ttl).UTC(),
	}, nil
}
