package calculator

import (
	"context"
	"errors"
	"sync"
	"time"

	"go-chi-calculator/internal/observability"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionLimit    = errors.New("session limit reached")
)

// Session is one calculator addressed by id.
type Session struct {
	ID     string
	Engine *Engine

	lastUsed time.Time // guarded by Store.mu
}

// Store keeps live sessions in memory and evicts those left idle for longer
// than its TTL.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	max      int

	now func() time.Time
}

// NewStore returns a store holding at most max sessions.
func NewStore(ttl time.Duration, max int) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		max:      max,
		now:      time.Now,
	}
}

// Create starts a new session with a cleared engine.
func (s *Store) Create() (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.max > 0 && len(s.sessions) >= s.max {
		return nil, ErrSessionLimit
	}

	sess := &Session{
		ID:       uuid.New().String(),
		Engine:   NewEngine(),
		lastUsed: s.now(),
	}
	s.sessions[sess.ID] = sess
	return sess, nil
}

// Get returns the session and marks it as used.
func (s *Store) Get(id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	sess.lastUsed = s.now()
	return sess, nil
}

func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(s.sessions, id)
	return nil
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep removes sessions idle since before now-TTL and returns their ids.
func (s *Store) Sweep(now time.Time) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var evicted []string
	for id, sess := range s.sessions {
		if now.Sub(sess.lastUsed) > s.ttl {
			delete(s.sessions, id)
			evicted = append(evicted, id)
		}
	}
	return evicted
}

// Run sweeps the store every interval until ctx is done.
func (s *Store) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			evicted := s.Sweep(s.now())
			if len(evicted) == 0 {
				continue
			}
			recordEvictions(ctx, len(evicted))
			observability.Logger.Info("idle sessions evicted",
				zap.Int("count", len(evicted)),
				zap.Int("remaining", s.Len()),
			)
		}
	}
}
