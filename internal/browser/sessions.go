package browser

import (
	"context"
	"sync"
	"time"

	"github.com/senyabanana/records-browser/internal/metrics"

	"github.com/google/uuid"
)

type sessionEntry struct {
	controller *Controller
	lastSeen   time.Time
}

// SessionStore хранит по контроллеру на сессию браузера и выселяет
// сессии, простаивающие дольше ttl.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*sessionEntry
	ttl      time.Duration
	factory  func() *Controller
	now      func() time.Time
}

// NewSessionStore создаёт новый экземпляр SessionStore.
func NewSessionStore(ttl time.Duration, factory func() *Controller) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*sessionEntry),
		ttl:      ttl,
		factory:  factory,
		now:      time.Now,
	}
}

// Get возвращает контроллер сессии id. Для пустого или неизвестного id
// создаётся новая сессия; created сообщает об этом, а newID содержит
// её идентификатор.
func (s *SessionStore) Get(id string) (controller *Controller, newID string, created bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if entry, ok := s.sessions[id]; ok && id != "" {
		entry.lastSeen = now
		return entry.controller, id, false
	}

	if _, err := uuid.Parse(id); err != nil {
		id = uuid.NewString()
	}
	entry := &sessionEntry{controller: s.factory(), lastSeen: now}
	s.sessions[id] = entry
	metrics.ActiveSessions.Set(float64(len(s.sessions)))
	return entry.controller, id, true
}

// Len возвращает число активных сессий.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep удаляет сессии, простаивающие дольше ttl, и возвращает их число.
func (s *SessionStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	deadline := s.now().Add(-s.ttl)
	removed := 0
	for id, entry := range s.sessions {
		if entry.lastSeen.Before(deadline) {
			delete(s.sessions, id)
			removed++
		}
	}
	metrics.ActiveSessions.Set(float64(len(s.sessions)))
	return removed
}

// Run периодически вызывает Sweep до отмены ctx. Неположительный
// interval заменяется на ttl.
func (s *SessionStore) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = s.ttl
	}
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}
