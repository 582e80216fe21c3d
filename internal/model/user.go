package model

import "time"

// User represents a registered user account.
//
// GitHub OAuth is the only identity provider, so the stable external
// identifier is the numeric GitHub user ID. We still generate our own
// internal string ID (xid) so primary keys are not tied to a third party's
// numbering scheme and stay consistent with Snippet IDs.
//
// Email may be empty; GitHub returns the primary public email only if the
// user has not hidden it. An empty string is simpler and safer to display
// than a nullable pointer.
type User struct {
	ID        string    `json:"id"`
	GitHubID  int64     `json:"githubId"`
	Login     string    `json:"login"`
	Email     string    `json:"email"`
	AvatarURL string    `json:"avatarUrl"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
