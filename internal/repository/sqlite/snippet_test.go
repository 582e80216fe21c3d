package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/sakif/code-studio/internal/apperror"
	"github.com/sakif/code-studio/internal/model"
	"github.com/sakif/code-studio/internal/repository"
)

// newTestDB opens an in-memory database so tests touch no filesystem and each
// test gets a completely fresh schema.
func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(":memory:")
	if err != nil {
		t.Fatalf("New(:memory:) error = %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSnippetCreateAndGet(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	snippet := &model.Snippet{
		Name:     "hello",
		Language: "python",
		Code:     `print("ok")`,
	}
	if err := db.Create(ctx, snippet); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if snippet.ID == "" {
		t.Fatal("Create() did not assign an ID")
	}
	if snippet.CreatedAt.IsZero() || snippet.UpdatedAt.IsZero() {
		t.Error("Create() did not assign timestamps")
	}

	got, err := db.GetByID(ctx, snippet.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Name != "hello" || got.Language != "python" || got.Code != `print("ok")` {
		t.Errorf("GetByID() = %+v, want stored values back", got)
	}
	if got.UserID != "" {
		t.Errorf("UserID = %q, want empty for anonymous snippet", got.UserID)
	}
}

func TestSnippetGetByID_NotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := db.GetByID(context.Background(), "does-not-exist")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetByID() error = %v, want ErrNotFound", err)
	}
}

func TestSnippetList_FiltersByUser(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	owner := &model.User{GitHubID: 42, Login: "sakif"}
	if err := db.Upsert(ctx, owner); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	mine := &model.Snippet{Name: "mine", Language: "java", UserID: owner.ID}
	anon := &model.Snippet{Name: "anon", Language: "cpp"}
	for _, s := range []*model.Snippet{mine, anon} {
		if err := db.Create(ctx, s); err != nil {
			t.Fatalf("Create(%s) error = %v", s.Name, err)
		}
	}

	all, err := db.List(ctx, repository.ListOptions{Limit: 10})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("List() returned %d snippets, want 2", len(all))
	}

	owned, err := db.List(ctx, repository.ListOptions{Limit: 10, UserID: owner.ID})
	if err != nil {
		t.Fatalf("List(UserID) error = %v", err)
	}
	if len(owned) != 1 || owned[0].Name != "mine" {
		t.Errorf("List(UserID) = %+v, want only the owned snippet", owned)
	}
}

func TestSnippetUpdate(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	snippet := &model.Snippet{Name: "before", Language: "python", Code: "x = 1"}
	if err := db.Create(ctx, snippet); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	snippet.Name = "after"
	snippet.Code = "x = 2"
	if err := db.Update(ctx, snippet); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	got, err := db.GetByID(ctx, snippet.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Name != "after" || got.Code != "x = 2" {
		t.Errorf("after Update, got %+v", got)
	}
}

func TestSnippetUpdate_NotFound(t *testing.T) {
	db := newTestDB(t)

	err := db.Update(context.Background(), &model.Snippet{ID: "missing", Name: "x"})
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Update() error = %v, want ErrNotFound", err)
	}
}

func TestSnippetDelete(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	snippet := &model.Snippet{Name: "doomed", Language: "javascript"}
	if err := db.Create(ctx, snippet); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := db.Delete(ctx, snippet.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := db.GetByID(ctx, snippet.ID); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetByID() after delete error = %v, want ErrNotFound", err)
	}

	if err := db.Delete(ctx, snippet.ID); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("second Delete() error = %v, want ErrNotFound", err)
	}
}
