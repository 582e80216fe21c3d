package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/xid"

	"github.com/sakif/code-studio/internal/apperror"
	"github.com/sakif/code-studio/internal/model"
	"github.com/sakif/code-studio/internal/repository"
)

// Compile-time check that *DB implements repository.SnippetRepository.
var _ repository.SnippetRepository = (*DB)(nil)

// Create inserts a new snippet. The snippet's ID and timestamps are filled in
// here; xid gives 20-char URL-safe IDs that sort by creation time.
func (db *DB) Create(ctx context.Context, snippet *model.Snippet) error {
	snippet.ID = xid.New().String()
	now := time.Now()
	snippet.CreatedAt = now
	snippet.UpdatedAt = now

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO snippets (id, name, language, code, description, user_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		snippet.ID,
		snippet.Name,
		snippet.Language,
		snippet.Code,
		snippet.Description,
		nullableString(snippet.UserID),
		snippet.CreatedAt,
		snippet.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting snippet %s: %w", snippet.ID, err)
	}

	return nil
}

// GetByID retrieves a snippet by its ID.
// Returns apperror.ErrNotFound if no snippet exists with that ID.
func (db *DB) GetByID(ctx context.Context, id string) (*model.Snippet, error) {
	row := db.conn.QueryRowContext(ctx,
		`SELECT id, name, language, code, description, user_id, created_at, updated_at
		 FROM snippets WHERE id = ?`,
		id,
	)

	snippet, err := scanSnippet(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("snippet", id)
		}
		return nil, fmt.Errorf("sqlite: getting snippet %s: %w", id, err)
	}

	return snippet, nil
}

// List retrieves snippets newest-first with pagination. When opts.UserID is
// set only that owner's snippets are returned.
func (db *DB) List(ctx context.Context, opts repository.ListOptions) ([]model.Snippet, error) {
	query := `SELECT id, name, language, code, description, user_id, created_at, updated_at
	          FROM snippets`
	args := []any{}

	if opts.UserID != "" {
		query += ` WHERE user_id = ?`
		args = append(args, opts.UserID)
	}
	query += ` ORDER BY created_at DESC LIMIT ? OFFSET ?`
	args = append(args, opts.Limit, opts.Offset)

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing snippets: %w", err)
	}
	defer rows.Close()

	snippets := []model.Snippet{}
	for rows.Next() {
		snippet, err := scanSnippet(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning snippet row: %w", err)
		}
		snippets = append(snippets, *snippet)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating snippet rows: %w", err)
	}

	return snippets, nil
}

// Update persists changes to an existing snippet and bumps updated_at.
// Returns apperror.ErrNotFound if the snippet doesn't exist.
func (db *DB) Update(ctx context.Context, snippet *model.Snippet) error {
	snippet.UpdatedAt = time.Now()

	res, err := db.conn.ExecContext(ctx,
		`UPDATE snippets SET name = ?, language = ?, code = ?, description = ?, updated_at = ?
		 WHERE id = ?`,
		snippet.Name,
		snippet.Language,
		snippet.Code,
		snippet.Description,
		snippet.UpdatedAt,
		snippet.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating snippet %s: %w", snippet.ID, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking update result: %w", err)
	}
	if affected == 0 {
		return apperror.NotFound("snippet", snippet.ID)
	}

	return nil
}

// Delete removes a snippet by ID.
// Returns apperror.ErrNotFound if the snippet doesn't exist.
func (db *DB) Delete(ctx context.Context, id string) error {
	res, err := db.conn.ExecContext(ctx, `DELETE FROM snippets WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: deleting snippet %s: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking delete result: %w", err)
	}
	if affected == 0 {
		return apperror.NotFound("snippet", id)
	}

	return nil
}

// scanSnippet reads one snippet row. It accepts the Scan func so the same
// code serves both QueryRow (single) and Rows (iteration).
func scanSnippet(scan func(dest ...any) error) (*model.Snippet, error) {
	var s model.Snippet
	var userID sql.NullString

	err := scan(
		&s.ID,
		&s.Name,
		&s.Language,
		&s.Code,
		&s.Description,
		&userID,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	s.UserID = userID.String
	return &s, nil
}

// nullableString maps Go's empty string to SQL NULL, so anonymous snippets
// don't trip the foreign key on users(id).
func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
