// Package agent runs the assistant's tool-use loop.
//
// One Agent belongs to one UI session and owns that session's conversation
// memory. A turn works like this: the user message joins the history, the
// model sees the history plus the tool declarations, and as long as it keeps
// requesting tool calls we execute them and feed the results back. The loop
// ends when the model answers in plain text, or when the iteration cap trips.
package agent

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/code-studio/internal/apperror"
	"github.com/sakif/code-studio/internal/llm"
	"github.com/sakif/code-studio/internal/tools"
)

// DefaultMaxIterations bounds tool-call rounds within a single turn, so a
// model stuck requesting tools forever can't spin the server.
const DefaultMaxIterations = 10

const systemPrompt = `You are the Code Studio assistant. You help users manage
files in their workspace and research programming questions. Use the provided
tools when a request calls for creating folders or files, appending code, or
searching the web; answer directly otherwise. Keep replies short and concrete.`

// Agent is a conversational assistant with tool use and per-session memory.
type Agent struct {
	client        llm.Client
	registry      *tools.Registry
	memory        *Memory
	logger        *slog.Logger
	maxIterations int
}

// New creates an Agent with fresh, empty memory.
func New(client llm.Client, registry *tools.Registry, logger *slog.Logger) *Agent {
	return &Agent{
		client:        client,
		registry:      registry,
		memory:        NewMemory(),
		logger:        logger,
		maxIterations: DefaultMaxIterations,
	}
}

// Memory exposes the conversation history (for reset and inspection).
func (a *Agent) Memory() *Memory {
	return a.memory
}

// Respond runs one conversational turn and returns the assistant's reply.
//
// The user message and the final reply are committed to memory, along with
// every intermediate tool call and result; the model needs those on the
// next turn to know what it already did.
func (a *Agent) Respond(ctx context.Context, userMessage string) (string, error) {
	if strings.TrimSpace(userMessage) == "" {
		return "", apperror.ValidationFailed("message", "message must not be empty")
	}

	a.memory.Append(&llm.Message{Role: llm.RoleUser, Content: userMessage})

	for i := 0; i < a.maxIterations; i++ {
		resp, err := a.client.Complete(ctx, &llm.Request{
			System:   systemPrompt,
			Messages: a.memory.Messages(),
			Tools:    a.registry.Schemas(),
		})
		if err != nil {
			return "", fmt.Errorf("agent: completion failed: %w", err)
		}

		if len(resp.ToolCalls) == 0 {
			a.memory.Append(&llm.Message{Role: llm.RoleAssistant, Content: resp.Content})
			return resp.Content, nil
		}

		a.memory.Append(&llm.Message{
			Role:      llm.RoleAssistant,
			Content:   resp.Content,
			ToolCalls: resp.ToolCalls,
		})

		for _, call := range resp.ToolCalls {
			result := a.registry.Execute(ctx, call.Name, call.Args)

			a.logger.Info("tool call",
				slog.String("tool", call.Name),
				slog.Int("round", i+1),
			)

			a.memory.Append(&llm.Message{
				Role:     llm.RoleTool,
				Content:  result,
				ToolName: call.Name,
				ToolID:   call.ID,
			})
		}
	}

	return "", fmt.Errorf("agent: no final answer after %d tool rounds", a.maxIterations)
}
