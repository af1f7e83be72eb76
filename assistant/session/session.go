package session

import (
	"sync"
	"time"

	"github.com/Abraxas-365/resumegpt/assistant/conversation"
	"github.com/Abraxas-365/resumegpt/assistant/index"
	"github.com/Abraxas-365/resumegpt/pkg/kernel"
)

// Session is one user's conversation state. It owns its memory and references
// the index of the last uploaded resume. Callers must hold the lock while
// touching either.
type Session struct {
	ID        kernel.SessionID
	CreatedAt time.Time

	mu       sync.Mutex
	memory   conversation.Memory
	index    *index.Index
	lastUsed time.Time
}

func (s *Session) Lock()   { s.mu.Lock() }
func (s *Session) Unlock() { s.mu.Unlock() }

// Memory returns the conversation memory. Lock held.
func (s *Session) Memory() conversation.Memory { return s.memory }

// SetMemory replaces the conversation memory. Lock held.
func (s *Session) SetMemory(m conversation.Memory) { s.memory = m }

// Index returns the attached index, nil before the first upload. Lock held.
func (s *Session) Index() *index.Index { return s.index }

// SetIndex attaches a new index. Lock held.
func (s *Session) SetIndex(idx *index.Index) { s.index = idx }

// HasResume reports whether an index is attached. Lock held.
func (s *Session) HasResume() bool { return s.index != nil }

// ResumeText is the full normalized text of the uploaded resume. Lock held.
func (s *Session) ResumeText() kernel.ResumeText {
	if s.index == nil {
		return ""
	}
	return kernel.ResumeText(s.index.Document.Text)
}
