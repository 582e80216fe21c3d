// Package model defines the data structures used throughout the application:
// plain structs with JSON tags, no behaviour beyond what they carry.
package model

import "time"

// Snippet represents a saved piece of code in the snippet library.
//
// Language holds one of the four supported language tags ("python",
// "javascript", "java", "cpp"). The service layer validates it against
// executor.ParseLanguage so a stored snippet can always be re-run.
//
// UserID is empty for snippets saved anonymously. When a user is logged in
// via GitHub, their internal ID is recorded here and only they may update
// or delete the snippet.
type Snippet struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Language    string    `json:"language"`
	Code        string    `json:"code"`
	Description string    `json:"description"`
	UserID      string    `json:"userId,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
