package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/vaultpass/passfx-go/internal/crypto"
	"github.com/vaultpass/passfx-go/internal/model"
	"github.com/vaultpass/passfx-go/internal/repository"
)

// GeneratorService handles password generation and scoring.
type GeneratorService struct {
	history *repository.HistoryRepository
	hasher  *crypto.Hasher
	source  crypto.Source
}

// NewGeneratorService creates a new GeneratorService.
func NewGeneratorService(history *repository.HistoryRepository, hasher *crypto.Hasher) *GeneratorService {
	return &GeneratorService{
		history: history,
		hasher:  hasher,
		source:  crypto.SecureSource,
	}
}

// Generate produces a password based on the given request. When sessionID is
// set the password is added to that session's history.
func (s *GeneratorService) Generate(ctx context.Context, sessionID string, req model.GenerateRequest) (model.GenerateResponse, error) {
	opts := crypto.GeneratorOptions{
		Length:         req.Length,
		Uppercase:      boolOrDefault(req.Uppercase, true),
		Lowercase:      boolOrDefault(req.Lowercase, true),
		Numbers:        boolOrDefault(req.Numbers, true),
		Symbols:        boolOrDefault(req.Symbols, true),
		ExcludeSimilar: req.ExcludeSimilar,
	}

	if opts.Length == 0 {
		opts.Length = crypto.DefaultOptions().Length
	}

	password, err := crypto.GenerateWith(s.source, opts)
	if err != nil {
		return model.GenerateResponse{}, err
	}

	resp := model.GenerateResponse{
		Password: password,
		Length:   len(password),
		Strength: crypto.Score(password),
	}

	if req.Hash {
		if resp.Hash, err = s.hasher.Hash(password); err != nil {
			return model.GenerateResponse{}, err
		}
	}

	if sessionID != "" {
		item := model.GeneratedPassword{
			ID:        uuid.NewString(),
			Password:  password,
			Strength:  resp.Strength,
			Timestamp: time.Now().UTC(),
		}
		if err := s.history.AddPassword(ctx, sessionID, item); err != nil {
			slog.Warn("failed to record password history", "session_id", sessionID, "error", err)
		}
	}

	return resp, nil
}

// Strength scores an arbitrary password.
func (s *GeneratorService) Strength(req model.StrengthRequest) crypto.Strength {
	return crypto.Score(req.Password)
}

// Verify checks a password against a hash previously returned by Generate.
func (s *GeneratorService) Verify(req model.VerifyRequest) (model.VerifyResponse, error) {
	match, err := s.hasher.Verify(req.Password, req.Hash)
	if err != nil {
		return model.VerifyResponse{}, err
	}
	return model.VerifyResponse{Match: match}, nil
}

// History returns the session's generated passwords, newest first.
func (s *GeneratorService) History(ctx context.Context, sessionID string) ([]model.GeneratedPassword, error) {
	return s.history.ListPasswords(ctx, sessionID)
}

// ClearHistory forgets the session's generated passwords.
func (s *GeneratorService) ClearHistory(ctx context.Context, sessionID string) error {
	return s.history.ClearPasswords(ctx, sessionID)
}

// boolOrDefault returns the dereferenced pointer value, or the fallback if nil.
func boolOrDefault(p *bool, fallback bool) bool {
	if p == nil {
		return fallback
	}
	return *p
}
