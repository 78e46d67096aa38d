package memory

import (
	"sync"

	"github.com/finchlabs/finchbot/internal/core"
)

const (
	DefaultMaxMessages = 50
	DefaultMaxSessions = 100
)

// Sessions is the in-process conversation memory: a bounded message history
// per session plus a global cap on the number of live sessions. State lives
// for the process lifetime only; a restart clears everything.
//
// The session cap evicts by table insertion order, not by recency of use, so
// a busy session can be dropped before an idle newer one.
type Sessions struct {
	mu          sync.Mutex
	maxMessages int
	maxSessions int
	histories   map[string][]core.Message
	order       []string
}

func NewSessions(maxMessages, maxSessions int) *Sessions {
	if maxMessages <= 0 {
		maxMessages = DefaultMaxMessages
	}
	if maxSessions <= 0 {
		maxSessions = DefaultMaxSessions
	}
	return &Sessions{
		maxMessages: maxMessages,
		maxSessions: maxSessions,
		histories:   make(map[string][]core.Message),
	}
}

// Append records a message, creating the session if needed. The history is
// truncated to the newest maxMessages entries, then the session cap is
// enforced by evicting the oldest-inserted session wholesale.
func (s *Sessions) Append(sessionID, role, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	history, exists := s.histories[sessionID]
	if !exists {
		s.order = append(s.order, sessionID)
	}

	history = append(history, core.Message{Role: role, Content: content})
	if len(history) > s.maxMessages {
		history = history[len(history)-s.maxMessages:]
	}
	s.histories[sessionID] = history

	if len(s.histories) > s.maxSessions {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.histories, oldest)
	}
}

// Recent returns up to the last n messages in chronological order. Unknown
// sessions yield an empty slice.
func (s *Sessions) Recent(sessionID string, n int) []core.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := s.histories[sessionID]
	if n < 0 {
		n = 0
	}
	if n > len(history) {
		n = len(history)
	}

	out := make([]core.Message, n)
	copy(out, history[len(history)-n:])
	return out
}

// Len reports the number of live sessions.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.histories)
}
