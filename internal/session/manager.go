package session

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/daniilsolovey/newsly/internal/headlines"
)

// Session is one browser's view state.
type Session struct {
	ID    string
	Store *headlines.Store

	lastSeen time.Time
}

// Manager owns one headlines store per session.
type Manager struct {
	fetcher     headlines.Fetcher
	opts        headlines.Options
	idleTimeout time.Duration
	log         *slog.Logger
	now         func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewManager(fetcher headlines.Fetcher, opts headlines.Options, idleTimeout time.Duration, log *slog.Logger) *Manager {
	return &Manager{
		fetcher:     fetcher,
		opts:        opts,
		idleTimeout: idleTimeout,
		log:         log,
		now:         time.Now,
		sessions:    make(map[string]*Session),
	}
}

// Create starts a session and fetches the default category for it.
func (m *Manager) Create() *Session {
	s := &Session{
		ID:       uuid.NewString(),
		Store:    headlines.NewStore(m.fetcher, m.opts, m.log),
		lastSeen: m.now(),
	}

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	m.log.Debug("session created", "session", s.ID)
	s.Store.FetchNews(s.Store.Snapshot().Category)

	return s
}

// Get returns the live session with id and marks it as seen.
func (m *Manager) Get(id string) (*Session, bool) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, false
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if ok {
		s.lastSeen = m.now()
	}
	return s, ok
}

// Touch marks a session as seen; long-lived event streams call it.
func (m *Manager) Touch(id string) {
	m.Get(id)
}

func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Reap closes sessions idle for longer than the idle timeout.
func (m *Manager) Reap(now time.Time) int {
	if m.idleTimeout <= 0 {
		return 0
	}

	var expired []*Session
	m.mu.Lock()
	for id, s := range m.sessions {
		if now.Sub(s.lastSeen) > m.idleTimeout {
			expired = append(expired, s)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, s := range expired {
		s.Store.Close()
		m.log.Debug("session expired", "session", s.ID)
	}

	return len(expired)
}

// Close ends every session.
func (m *Manager) Close() {
	m.mu.Lock()
	sessions := m.sessions
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()

	for _, s := range sessions {
		s.Store.Close()
	}
}
