package memory

import (
	"fmt"
	"sync"
	"testing"

	"github.com/finchlabs/finchbot/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessions_AppendAndRecent(t *testing.T) {
	s := NewSessions(50, 100)
	s.Append("s1", core.RoleUser, "hello")
	s.Append("s1", core.RoleAssistant, "hi there")

	got := s.Recent("s1", 10)
	require.Len(t, got, 2)
	assert.Equal(t, core.Message{Role: core.RoleUser, Content: "hello"}, got[0])
	assert.Equal(t, core.Message{Role: core.RoleAssistant, Content: "hi there"}, got[1])
}

func TestSessions_RecentLimitsToN(t *testing.T) {
	s := NewSessions(50, 100)
	for i := 0; i < 5; i++ {
		s.Append("s1", core.RoleUser, fmt.Sprintf("msg %d", i))
	}

	got := s.Recent("s1", 2)
	require.Len(t, got, 2)
	assert.Equal(t, "msg 3", got[0].Content)
	assert.Equal(t, "msg 4", got[1].Content)
}

func TestSessions_RecentUnknownSession(t *testing.T) {
	s := NewSessions(50, 100)
	assert.Empty(t, s.Recent("ghost", 10))
}

func TestSessions_HistoryCapDropsOldest(t *testing.T) {
	s := NewSessions(50, 100)
	for i := 0; i < 51; i++ {
		s.Append("s1", core.RoleUser, fmt.Sprintf("msg %d", i))
	}

	got := s.Recent("s1", 100)
	require.Len(t, got, 50)
	assert.Equal(t, "msg 1", got[0].Content, "the oldest message must be dropped")
	assert.Equal(t, "msg 50", got[49].Content)
}

func TestSessions_SessionCapEvictsFirstInserted(t *testing.T) {
	s := NewSessions(50, 100)
	for i := 0; i < 100; i++ {
		s.Append(fmt.Sprintf("session-%d", i), core.RoleUser, "hello")
	}
	require.Equal(t, 100, s.Len())

	// Keep session-0 active; insertion-order eviction drops it anyway.
	s.Append("session-0", core.RoleUser, "still here")
	s.Append("session-100", core.RoleUser, "newcomer")

	assert.Equal(t, 100, s.Len())
	assert.Empty(t, s.Recent("session-0", 10), "first-inserted session is evicted wholesale")
	assert.NotEmpty(t, s.Recent("session-100", 10))
	assert.NotEmpty(t, s.Recent("session-1", 10))
}

func TestSessions_EvictedSessionCanReturn(t *testing.T) {
	s := NewSessions(50, 2)
	s.Append("a", core.RoleUser, "1")
	s.Append("b", core.RoleUser, "2")
	s.Append("c", core.RoleUser, "3") // evicts a

	assert.Empty(t, s.Recent("a", 10))

	s.Append("a", core.RoleUser, "back") // evicts b, reinserts a at the end
	assert.Empty(t, s.Recent("b", 10))
	require.Len(t, s.Recent("a", 10), 1)
	assert.Equal(t, "back", s.Recent("a", 10)[0].Content)
}

func TestSessions_ConcurrentAppends(t *testing.T) {
	s := NewSessions(50, 100)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			session := fmt.Sprintf("session-%d", id)
			for j := 0; j < 100; j++ {
				s.Append(session, core.RoleUser, fmt.Sprintf("msg %d", j))
			}
		}(i)
	}
	wg.Wait()

	for i := 0; i < 10; i++ {
		got := s.Recent(fmt.Sprintf("session-%d", i), 100)
		require.Len(t, got, 50)
		assert.Equal(t, "msg 99", got[49].Content)
	}
}
