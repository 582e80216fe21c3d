// Package llm defines a provider-agnostic chat completion client with
// function calling. The agent package talks to this interface only; the one
// production implementation (gemini.go) wraps the official Google GenAI SDK,
// and tests substitute a scripted fake.
package llm

import "context"

// Role values for Message.Role.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// ToolCall is a function invocation requested by the model.
type ToolCall struct {
	ID   string         `json:"id,omitempty"`
	Name string         `json:"name"`
	Args map[string]any `json:"args"`
}

// Message is one turn in a conversation.
//
// For RoleAssistant, ToolCalls carries any function invocations the model
// made alongside (or instead of) text. For RoleTool, Content is the string
// result of executing the call named by ToolName.
type Message struct {
	Role      string     `json:"role"`
	Content   string     `json:"content"`
	ToolCalls []ToolCall `json:"toolCalls,omitempty"`
	ToolName  string     `json:"toolName,omitempty"`
	ToolID    string     `json:"toolId,omitempty"`
}

// ToolSchema declares one callable function to the model. Parameters is a
// JSON Schema object (type/properties/required) as a plain map.
type ToolSchema struct {
	Name        string
	Description string
	Parameters  map[string]any
}

// Request is one completion call: the running conversation plus the tools
// the model may invoke.
type Request struct {
	System   string
	Messages []*Message
	Tools    []ToolSchema
}

// Response is what the model produced: final text, tool invocations, or both.
type Response struct {
	Content   string
	ToolCalls []ToolCall
}

// Client produces chat completions.
type Client interface {
	Complete(ctx context.Context, req *Request) (*Response, error)
	ModelName() string
}
