// Package repository declares the storage interfaces consumed by the service
// layer. Concrete implementations live in subpackages (sqlite); services only
// ever see these interfaces, which is what lets tests inject in-memory mocks.
package repository

import (
	"context"

	"github.com/sakif/code-studio/internal/model"
)

// ListOptions controls pagination and filtering for snippet listings.
// UserID, when non-empty, restricts the listing to one owner.
type ListOptions struct {
	Limit  int
	Offset int
	UserID string
}

type SnippetRepository interface {
	Create(ctx context.Context, snippet *model.Snippet) error
	GetByID(ctx context.Context, id string) (*model.Snippet, error)
	List(ctx context.Context, opts ListOptions) ([]model.Snippet, error)
	Update(ctx context.Context, snippet *model.Snippet) error
	Delete(ctx context.Context, id string) error
}

type UserRepository interface {
	Upsert(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id string) (*model.User, error)
}
