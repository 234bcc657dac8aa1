package repository

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/vaultpass/passfx-go/internal/model"
)

const (
	MaxPasswordHistory   = 10
	MaxConversionHistory = 20
)

var ErrSessionRequired = errors.New("session id is required")

type sessionHistory struct {
	passwords   []model.GeneratedPassword
	conversions []model.ConversionHistoryItem
	lastSeen    time.Time
}

// HistoryRepository keeps per-session password and conversion history in
// memory. Lists are newest first and bounded; nothing survives a restart.
type HistoryRepository struct {
	mu       sync.Mutex
	sessions map[string]*sessionHistory
	now      func() time.Time
}

// NewHistoryRepository creates an empty HistoryRepository.
func NewHistoryRepository() *HistoryRepository {
	return &HistoryRepository{
		sessions: make(map[string]*sessionHistory),
		now:      time.Now,
	}
}

func (r *HistoryRepository) session(sessionID string) *sessionHistory {
	s, ok := r.sessions[sessionID]
	if !ok {
		s = &sessionHistory{}
		r.sessions[sessionID] = s
	}
	s.lastSeen = r.now()
	return s
}

// AddPassword prepends a generated password to the session's history.
func (r *HistoryRepository) AddPassword(ctx context.Context, sessionID string, item model.GeneratedPassword) error {
	if sessionID == "" {
		return ErrSessionRequired
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	s := r.session(sessionID)
	s.passwords = prepend(s.passwords, item, MaxPasswordHistory)
	return nil
}

// AddConversion prepends a conversion to the session's history.
func (r *HistoryRepository) AddConversion(ctx context.Context, sessionID string, item model.ConversionHistoryItem) error {
	if sessionID == "" {
		return ErrSessionRequired
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	s := r.session(sessionID)
	s.conversions = prepend(s.conversions, item, MaxConversionHistory)
	return nil
}

// ListPasswords returns the session's password history, newest first.
func (r *HistoryRepository) ListPasswords(ctx context.Context, sessionID string) ([]model.GeneratedPassword, error) {
	if sessionID == "" {
		return nil, ErrSessionRequired
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return clone(r.session(sessionID).passwords), nil
}

// ListConversions returns the session's conversion history, newest first.
func (r *HistoryRepository) ListConversions(ctx context.Context, sessionID string) ([]model.ConversionHistoryItem, error) {
	if sessionID == "" {
		return nil, ErrSessionRequired
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return clone(r.session(sessionID).conversions), nil
}

// ClearPasswords empties the session's password history.
func (r *HistoryRepository) ClearPasswords(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return ErrSessionRequired
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.session(sessionID).passwords = nil
	return nil
}

// ClearConversions empties the session's conversion history.
func (r *HistoryRepository) ClearConversions(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return ErrSessionRequired
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.session(sessionID).conversions = nil
	return nil
}

// Purge drops sessions not touched within maxIdle and returns how many were dropped.
func (r *HistoryRepository) Purge(maxIdle time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-maxIdle)
	dropped := 0
	for id, s := range r.sessions {
		if s.lastSeen.Before(cutoff) {
			delete(r.sessions, id)
			dropped++
		}
	}
	return dropped
}

// RunJanitor purges idle sessions every interval until ctx is done.
func (r *HistoryRepository) RunJanitor(ctx context.Context, interval, maxIdle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Purge(maxIdle)
		}
	}
}

func prepend[T any](list []T, item T, limit int) []T {
	out := make([]T, 0, min(len(list)+1, limit))
	out = append(out, item)
	for _, existing := range list {
		if len(out) == limit {
			break
		}
		out = append(out, existing)
	}
	return out
}

func clone[T any](list []T) []T {
	out := make([]T, len(list))
	copy(out, list)
	return out
}
