package session

import (
	"context"
	"sync"
	"time"

	"github.com/Abraxas-365/resumegpt/assistant/conversation"
	"github.com/Abraxas-365/resumegpt/assistant/index"
	"github.com/Abraxas-365/resumegpt/pkg/errx"
	"github.com/Abraxas-365/resumegpt/pkg/kernel"
	"github.com/Abraxas-365/resumegpt/pkg/logx"
	"github.com/google/uuid"
)

// Manager keeps live sessions in memory. Sessions idle for longer than the
// TTL are dropped on the next Create; their indexes stay in the store and
// can be restored.
type Manager struct {
	mu       sync.RWMutex
	sessions map[kernel.SessionID]*Session

	loader        IndexLoader
	defaultPolicy conversation.Policy
	memoryConfig  conversation.Config
	summarizer    conversation.Summarizer
	ttl           time.Duration
	now           func() time.Time
}

func NewManager(
	loader IndexLoader,
	defaultPolicy conversation.Policy,
	memoryConfig conversation.Config,
	summarizer conversation.Summarizer,
	ttl time.Duration,
) *Manager {
	if defaultPolicy == "" {
		defaultPolicy = conversation.PolicyBuffer
	}
	return &Manager{
		sessions:      make(map[kernel.SessionID]*Session),
		loader:        loader,
		defaultPolicy: defaultPolicy,
		memoryConfig:  memoryConfig,
		summarizer:    summarizer,
		ttl:           ttl,
		now:           time.Now,
	}
}

// DefaultPolicy is the memory policy used when a request names none
func (m *Manager) DefaultPolicy() conversation.Policy { return m.defaultPolicy }

// NewMemory builds an empty memory for policy, falling back to the default policy
func (m *Manager) NewMemory(policy conversation.Policy) conversation.Memory {
	if policy == "" {
		policy = m.defaultPolicy
	}
	return conversation.New(policy, m.memoryConfig, m.summarizer)
}

// Create registers a new session with an empty memory and no index
func (m *Manager) Create(policy conversation.Policy) *Session {
	now := m.now()
	s := &Session{
		ID:        kernel.NewSessionID(uuid.NewString()),
		CreatedAt: now,
		memory:    m.NewMemory(policy),
		lastUsed:  now,
	}

	m.mu.Lock()
	m.evictIdleLocked(now)
	m.sessions[s.ID] = s
	m.mu.Unlock()

	logx.Debugf("session %s created with %s memory", s.ID, s.memory.Policy())
	return s
}

// Get returns a live session
func (m *Manager) Get(id kernel.SessionID) (*Session, bool) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if ok {
		m.touch(s)
	}
	return s, ok
}

// Restore returns the live session or rebuilds it from its persisted index.
// A restored session starts with an empty memory.
func (m *Manager) Restore(ctx context.Context, id kernel.SessionID) (*Session, error) {
	if s, ok := m.Get(id); ok {
		return s, nil
	}
	if id.IsEmpty() {
		return nil, ErrSessionNotFound()
	}

	idx, err := m.loader.Load(ctx, id)
	if err != nil {
		if errx.IsCode(err, index.CodeIndexNotFound) {
			return nil, ErrSessionNotFound().WithDetail("session_id", id)
		}
		return nil, err
	}

	now := m.now()
	restored := &Session{
		ID:        id,
		CreatedAt: idx.CreatedAt,
		memory:    m.NewMemory(""),
		index:     idx,
		lastUsed:  now,
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	// a concurrent restore may have won
	if s, ok := m.sessions[id]; ok {
		return s, nil
	}
	m.sessions[id] = restored
	logx.Infof("session %s restored from stored index (%d chunks)", id, len(idx.Entries))
	return restored, nil
}

// Delete forgets a live session. The persisted index is left alone.
func (m *Manager) Delete(id kernel.SessionID) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

// Len is the number of live sessions
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

func (m *Manager) touch(s *Session) {
	now := m.now()
	m.mu.Lock()
	s.lastUsed = now
	m.mu.Unlock()
}

func (m *Manager) evictIdleLocked(now time.Time) {
	if m.ttl <= 0 {
		return
	}
	for id, s := range m.sessions {
		if now.Sub(s.lastUsed) > m.ttl {
			delete(m.sessions, id)
			logx.Debugf("session %s evicted after %s idle", id, m.ttl)
		}
	}
}
