// Package search defines the web search provider interface and its Tavily
// implementation. The assistant's web_search tool consumes the interface so
// tests can substitute a canned provider.
package search

import "context"

// Result represents a single search result.
type Result struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

// Response represents the response from a search provider.
type Response struct {
	Query   string   `json:"query"`
	Results []Result `json:"results"`
}

// Provider performs web searches.
type Provider interface {
	// Search runs the query and returns up to maxResults results.
	Search(ctx context.Context, query string, maxResults int) (*Response, error)

	// Name returns the provider's name for logging.
	Name() string

	// Validate checks the provider is properly configured.
	Validate() error
}
