package agent

import (
	"sync"

	"github.com/sakif/code-studio/internal/llm"
)

// Memory is the ordered conversation history for one session.
//
// It only ever grows within a session (turns are never summarized or
// pruned) and is discarded when the session goes away. The mutex guards
// against a browser firing overlapping requests for the same session.
type Memory struct {
	mu       sync.Mutex
	messages []*llm.Message
}

func NewMemory() *Memory {
	return &Memory{}
}

// Append adds messages to the end of the history.
func (m *Memory) Append(messages ...*llm.Message) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, messages...)
}

// Messages returns a copy of the history. The slice is safe for the caller
// to extend without affecting the stored conversation.
func (m *Memory) Messages() []*llm.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*llm.Message, len(m.messages))
	copy(out, m.messages)
	return out
}

// Len reports the number of stored messages.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.messages)
}

// Reset discards the entire history.
func (m *Memory) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = nil
}
