// Package tools implements the assistant's callable tools and the registry
// the agent loop dispatches through.
//
// Tools deliberately never return a Go error: every failure is formatted
// into the string result instead, so a failing tool call becomes an
// observation in the conversation rather than an aborted turn.
package tools

import (
	"context"
	"fmt"
	"sort"

	"github.com/sakif/code-studio/internal/llm"
)

// Tool is one callable action exposed to the model.
type Tool interface {
	Name() string
	Description() string
	// Parameters returns the JSON Schema for the tool's arguments.
	Parameters() map[string]any
	// Execute runs the tool and describes the outcome, errors included.
	Execute(ctx context.Context, params map[string]any) string
}

// Registry holds the tools available to an agent. It is populated once at
// startup and read-only afterwards, so it is safe to share across sessions.
type Registry struct {
	tools map[string]Tool
	order []string
}

// NewRegistry creates a registry with the given tools.
func NewRegistry(tools ...Tool) *Registry {
	r := &Registry{tools: make(map[string]Tool, len(tools))}
	for _, t := range tools {
		if _, exists := r.tools[t.Name()]; !exists {
			r.order = append(r.order, t.Name())
		}
		r.tools[t.Name()] = t
	}
	return r
}

// Get looks up a tool by name.
func (r *Registry) Get(name string) (Tool, bool) {
	t, ok := r.tools[name]
	return t, ok
}

// Execute dispatches a call by name. An unknown tool name produces a
// descriptive string result like any other tool failure.
func (r *Registry) Execute(ctx context.Context, name string, params map[string]any) string {
	t, ok := r.tools[name]
	if !ok {
		return fmt.Sprintf("Error: unknown tool %q", name)
	}
	return t.Execute(ctx, params)
}

// Schemas returns the tool declarations in registration order, ready to
// attach to an LLM request.
func (r *Registry) Schemas() []llm.ToolSchema {
	schemas := make([]llm.ToolSchema, 0, len(r.order))
	for _, name := range r.order {
		t := r.tools[name]
		schemas = append(schemas, llm.ToolSchema{
			Name:        t.Name(),
			Description: t.Description(),
			Parameters:  t.Parameters(),
		})
	}
	return schemas
}

// Names returns the registered tool names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// stringParam extracts a string argument, returning def when absent or of
// the wrong type. Model-produced arguments arrive as map[string]any, so
// every access goes through a type assertion.
func stringParam(params map[string]any, key, def string) string {
	if v, ok := params[key].(string); ok {
		return v
	}
	return def
}
