package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/sakif/code-studio/internal/search"
)

const defaultSearchResults = 5

// WebSearchTool lets the assistant query the web through a search.Provider
// and receive the top results as plain text.
type WebSearchTool struct {
	provider search.Provider
}

func NewWebSearchTool(provider search.Provider) *WebSearchTool {
	return &WebSearchTool{provider: provider}
}

func (t *WebSearchTool) Name() string { return "web_search" }

func (t *WebSearchTool) Description() string {
	return "Perform an online search and return the top results as text."
}

func (t *WebSearchTool) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"query": map[string]any{
				"type":        "string",
				"description": "The search query",
			},
		},
		"required": []string{"query"},
	}
}

func (t *WebSearchTool) Execute(ctx context.Context, params map[string]any) string {
	query := strings.TrimSpace(stringParam(params, "query", ""))
	if query == "" {
		return "Error: a search query is required"
	}

	resp, err := t.provider.Search(ctx, query, defaultSearchResults)
	if err != nil {
		return fmt.Sprintf("Error: search failed: %v", err)
	}
	if len(resp.Results) == 0 {
		return fmt.Sprintf("No results found for %q.", query)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Top results for %q:\n", query)
	for i, r := range resp.Results {
		fmt.Fprintf(&sb, "%d. %s (%s)\n", i+1, r.Title, r.URL)
		if r.Snippet != "" {
			fmt.Fprintf(&sb, "   %s\n", r.Snippet)
		}
	}
	return sb.String()
}
