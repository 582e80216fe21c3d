package session

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/sakif/code-studio/internal/agent"
	"github.com/sakif/code-studio/internal/llm"
	"github.com/sakif/code-studio/internal/tools"
)

type staticClient struct{}

func (staticClient) Complete(context.Context, *llm.Request) (*llm.Response, error) {
	return &llm.Response{Content: "ok"}, nil
}
func (staticClient) ModelName() string { return "static" }

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	reg := tools.NewRegistry()
	return NewManager(func() *agent.Agent {
		return agent.New(staticClient{}, reg, logger)
	})
}

func TestGetOrCreate_ReusesSession(t *testing.T) {
	m := newTestManager(t)

	first := m.GetOrCreate("")
	if first.ID == "" {
		t.Fatal("new session has no ID")
	}

	again := m.GetOrCreate(first.ID)
	if again != first {
		t.Error("GetOrCreate with a known ID created a new session")
	}
	if m.Len() != 1 {
		t.Errorf("Len() = %d, want 1", m.Len())
	}
}

func TestGetOrCreate_UnknownIDStartsFresh(t *testing.T) {
	m := newTestManager(t)

	s := m.GetOrCreate("stale-cookie-from-before-restart")
	if s == nil || s.ID == "stale-cookie-from-before-restart" {
		t.Error("unknown ID must produce a brand new session with its own ID")
	}
}

func TestSessionsHaveIndependentMemory(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	a := m.Create()
	b := m.Create()

	if _, err := a.Agent.Respond(ctx, "hello from a"); err != nil {
		t.Fatalf("Respond() error = %v", err)
	}

	if a.Agent.Memory().Len() == 0 {
		t.Error("session a's memory is empty after a turn")
	}
	if b.Agent.Memory().Len() != 0 {
		t.Error("session b's memory picked up session a's turn")
	}
}

func TestReset(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	s := m.Create()
	if _, err := s.Agent.Respond(ctx, "hello"); err != nil {
		t.Fatalf("Respond() error = %v", err)
	}

	if !m.Reset(s.ID) {
		t.Fatal("Reset() = false for a live session")
	}
	if s.Agent.Memory().Len() != 0 {
		t.Error("Reset() did not clear memory")
	}

	if m.Reset("no-such-session") {
		t.Error("Reset() = true for an unknown session")
	}
}
