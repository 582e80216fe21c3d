package agent

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sakif/code-studio/internal/apperror"
	"github.com/sakif/code-studio/internal/llm"
	"github.com/sakif/code-studio/internal/tools"
)

// scriptedClient replays a fixed sequence of responses and records every
// request it sees, so tests can assert on the exact conversation the agent
// sent to the model.
type scriptedClient struct {
	responses []*llm.Response
	requests  []*llm.Request
	err       error
}

func (c *scriptedClient) Complete(_ context.Context, req *llm.Request) (*llm.Response, error) {
	c.requests = append(c.requests, req)
	if c.err != nil {
		return nil, c.err
	}
	if len(c.responses) == 0 {
		return &llm.Response{Content: "done"}, nil
	}
	resp := c.responses[0]
	c.responses = c.responses[1:]
	return resp, nil
}

func (c *scriptedClient) ModelName() string { return "scripted" }

func newTestAgent(t *testing.T, client llm.Client) (*Agent, *tools.Workspace) {
	t.Helper()
	ws := &tools.Workspace{Root: t.TempDir()}
	reg := tools.NewRegistry(
		tools.NewCreateFolderTool(ws),
		tools.NewCreateFileTool(ws),
		tools.NewAddCodeTool(ws),
	)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	return New(client, reg, logger), ws
}

func TestRespond_PlainAnswer(t *testing.T) {
	client := &scriptedClient{responses: []*llm.Response{{Content: "hello there"}}}
	a, _ := newTestAgent(t, client)

	reply, err := a.Respond(context.Background(), "hi")
	if err != nil {
		t.Fatalf("Respond() error = %v", err)
	}
	if reply != "hello there" {
		t.Errorf("reply = %q, want %q", reply, "hello there")
	}

	// user + assistant
	if a.Memory().Len() != 2 {
		t.Errorf("memory holds %d messages, want 2", a.Memory().Len())
	}
}

func TestRespond_ToolCallRoundTrip(t *testing.T) {
	client := &scriptedClient{responses: []*llm.Response{
		{ToolCalls: []llm.ToolCall{{Name: "create_file", Args: map[string]any{
			"name":    "hello.py",
			"content": "print('hi')",
		}}}},
		{Content: "created hello.py for you"},
	}}
	a, ws := newTestAgent(t, client)

	reply, err := a.Respond(context.Background(), "make me a hello script")
	if err != nil {
		t.Fatalf("Respond() error = %v", err)
	}
	if reply != "created hello.py for you" {
		t.Errorf("reply = %q", reply)
	}

	// The tool really ran.
	data, err := os.ReadFile(filepath.Join(ws.Root, "hello.py"))
	if err != nil {
		t.Fatalf("tool did not create the file: %v", err)
	}
	if string(data) != "print('hi')" {
		t.Errorf("file content = %q", data)
	}

	// The second request must include the tool result message.
	if len(client.requests) != 2 {
		t.Fatalf("model called %d times, want 2", len(client.requests))
	}
	second := client.requests[1].Messages
	last := second[len(second)-1]
	if last.Role != llm.RoleTool || last.ToolName != "create_file" {
		t.Errorf("last message before re-ask = %+v, want the tool result", last)
	}
	if !strings.Contains(last.Content, "created successfully") {
		t.Errorf("tool result = %q", last.Content)
	}
}

func TestRespond_FailingToolDoesNotAbortTurn(t *testing.T) {
	client := &scriptedClient{responses: []*llm.Response{
		// Invalid params: missing name. The tool reports an error string and
		// the turn continues to a final answer.
		{ToolCalls: []llm.ToolCall{{Name: "create_file", Args: map[string]any{}}}},
		{Content: "that didn't work, what should the file be called?"},
	}}
	a, _ := newTestAgent(t, client)

	reply, err := a.Respond(context.Background(), "make a file")
	if err != nil {
		t.Fatalf("Respond() error = %v, want tool failure to stay inside the turn", err)
	}
	if reply == "" {
		t.Error("expected a final reply after the failed tool call")
	}

	second := client.requests[1].Messages
	last := second[len(second)-1]
	if !strings.HasPrefix(last.Content, "Error") {
		t.Errorf("tool result = %q, want an error string observation", last.Content)
	}
}

func TestRespond_IterationCap(t *testing.T) {
	// A model that never stops calling tools.
	loop := &llm.Response{ToolCalls: []llm.ToolCall{{Name: "create_folder", Args: map[string]any{"name": "x"}}}}
	responses := make([]*llm.Response, DefaultMaxIterations+5)
	for i := range responses {
		responses[i] = loop
	}
	client := &scriptedClient{responses: responses}
	a, _ := newTestAgent(t, client)

	_, err := a.Respond(context.Background(), "go wild")
	if err == nil {
		t.Fatal("Respond() = nil error, want iteration cap error")
	}
	if len(client.requests) != DefaultMaxIterations {
		t.Errorf("model called %d times, want exactly %d", len(client.requests), DefaultMaxIterations)
	}
}

func TestRespond_EmptyMessage(t *testing.T) {
	a, _ := newTestAgent(t, &scriptedClient{})

	_, err := a.Respond(context.Background(), "   ")
	if !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("Respond() error = %v, want ErrValidation", err)
	}
	if a.Memory().Len() != 0 {
		t.Error("rejected message must not enter memory")
	}
}

func TestRespond_MemoryAccumulatesAcrossTurns(t *testing.T) {
	client := &scriptedClient{responses: []*llm.Response{
		{Content: "first answer"},
		{Content: "second answer"},
	}}
	a, _ := newTestAgent(t, client)
	ctx := context.Background()

	if _, err := a.Respond(ctx, "first question"); err != nil {
		t.Fatalf("turn 1: %v", err)
	}
	if _, err := a.Respond(ctx, "second question"); err != nil {
		t.Fatalf("turn 2: %v", err)
	}

	// Turn 2's request must carry turn 1's full exchange.
	second := client.requests[1].Messages
	if len(second) != 3 {
		t.Fatalf("turn 2 sent %d messages, want 3 (q1, a1, q2)", len(second))
	}
	if second[0].Content != "first question" || second[1].Content != "first answer" {
		t.Errorf("history out of order: %+v", second)
	}

	a.Memory().Reset()
	if a.Memory().Len() != 0 {
		t.Error("Reset() left messages behind")
	}
}
