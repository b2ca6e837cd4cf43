package session

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/stockrest/internal/domain/entity"
	"github.com/jhoicas/stockrest/internal/domain/repository"
)

var _ repository.SessionStore = (*MemoryStore)(nil)

// MemoryStore ranura en memoria del proceso; se pierde al reiniciar.
type MemoryStore struct {
	mu      sync.Mutex
	user    *entity.User
	expires time.Time
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryStore ttl <= 0 = sin expiración. now nil = time.Now.
func NewMemoryStore(ttl time.Duration, now func() time.Time) *MemoryStore {
	if now == nil {
		now = time.Now
	}
	return &MemoryStore{ttl: ttl, now: now}
}

func (s *MemoryStore) Get(_ context.Context) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil, nil
	}
	if s.ttl > 0 && !s.now().Before(s.expires) {
		s.user = nil
		return nil, nil
	}
	u := *s.user
	return &u, nil
}

func (s *MemoryStore) Set(_ context.Context, u entity.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clean := u.WithoutPassword()
	s.user = &clean
	s.expires = s.now().Add(s.ttl)
	return nil
}

func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	return nil
}
