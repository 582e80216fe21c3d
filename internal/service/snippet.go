// Package service contains the business logic layer: validation, ownership
// rules, and orchestration between handlers and repositories. Services take
// primitives and return domain errors; they know nothing about HTTP.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/code-studio/internal/apperror"
	"github.com/sakif/code-studio/internal/executor"
	"github.com/sakif/code-studio/internal/model"
	"github.com/sakif/code-studio/internal/repository"
)

const (
	MaxSnippetNameLength = 100
	MaxCodeLength        = 100000 // ~100KB of code
	DefaultListLimit     = 20
	MaxListLimit         = 100
)

// SnippetService handles business logic for the snippet library.
type SnippetService struct {
	repo   repository.SnippetRepository
	logger *slog.Logger
}

func NewSnippetService(repo repository.SnippetRepository, logger *slog.Logger) *SnippetService {
	return &SnippetService{
		repo:   repo,
		logger: logger,
	}
}

// Create validates and saves a new snippet. userID may be empty (anonymous
// snippet); when set, the snippet belongs to that user.
func (s *SnippetService) Create(ctx context.Context, name, language, code, description, userID string) (*model.Snippet, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperror.ValidationFailed("name", "snippet name is required")
	}
	if len(name) > MaxSnippetNameLength {
		return nil, apperror.ValidationFailed("name",
			fmt.Sprintf("snippet name must be %d characters or less", MaxSnippetNameLength))
	}

	lang, err := executor.ParseLanguage(language)
	if err != nil {
		return nil, apperror.ValidationFailed("language", err.Error())
	}

	if len(code) > MaxCodeLength {
		return nil, apperror.ValidationFailed("code",
			fmt.Sprintf("code must be %d characters or less", MaxCodeLength))
	}

	snippet := &model.Snippet{
		Name:        name,
		Language:    string(lang),
		Code:        code,
		Description: strings.TrimSpace(description),
		UserID:      userID,
	}

	if err := s.repo.Create(ctx, snippet); err != nil {
		s.logger.Error("failed to create snippet",
			slog.String("name", name),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating snippet: %w", err)
	}

	s.logger.Info("snippet created",
		slog.String("id", snippet.ID),
		slog.String("language", snippet.Language),
	)

	return snippet, nil
}

// GetByID retrieves a snippet by its ID.
func (s *SnippetService) GetByID(ctx context.Context, id string) (*model.Snippet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "snippet ID is required")
	}

	return s.repo.GetByID(ctx, id)
}

// List retrieves snippets with pagination, optionally restricted to one
// owner. The limit is clamped so a caller can't request unbounded pages.
func (s *SnippetService) List(ctx context.Context, limit, offset int, userID string) ([]model.Snippet, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	if offset < 0 {
		offset = 0
	}

	snippets, err := s.repo.List(ctx, repository.ListOptions{
		Limit:  limit,
		Offset: offset,
		UserID: userID,
	})
	if err != nil {
		s.logger.Error("failed to list snippets", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing snippets: %w", err)
	}

	return snippets, nil
}

// Update modifies an existing snippet after an ownership check. actorID is
// the requesting user ("" for anonymous). Empty name/language mean "leave
// unchanged"; code and description are always replaced.
func (s *SnippetService) Update(ctx context.Context, id, name, language, code, description, actorID string) (*model.Snippet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "snippet ID is required")
	}

	snippet, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := checkOwnership(snippet, actorID); err != nil {
		return nil, err
	}

	if name = strings.TrimSpace(name); name != "" {
		if len(name) > MaxSnippetNameLength {
			return nil, apperror.ValidationFailed("name",
				fmt.Sprintf("snippet name must be %d characters or less", MaxSnippetNameLength))
		}
		snippet.Name = name
	}

	if strings.TrimSpace(language) != "" {
		lang, err := executor.ParseLanguage(language)
		if err != nil {
			return nil, apperror.ValidationFailed("language", err.Error())
		}
		snippet.Language = string(lang)
	}

	if len(code) > MaxCodeLength {
		return nil, apperror.ValidationFailed("code",
			fmt.Sprintf("code must be %d characters or less", MaxCodeLength))
	}
	snippet.Code = code
	snippet.Description = strings.TrimSpace(description)

	if err := s.repo.Update(ctx, snippet); err != nil {
		s.logger.Error("failed to update snippet",
			slog.String("id", id),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("updating snippet: %w", err)
	}

	s.logger.Info("snippet updated", slog.String("id", snippet.ID))

	return snippet, nil
}

// Delete removes a snippet after an ownership check.
func (s *SnippetService) Delete(ctx context.Context, id, actorID string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return apperror.ValidationFailed("id", "snippet ID is required")
	}

	snippet, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := checkOwnership(snippet, actorID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("snippet deleted", slog.String("id", id))
	return nil
}

// checkOwnership enforces the write rule: snippets saved anonymously are
// writable by anyone, owned snippets only by their owner.
func checkOwnership(snippet *model.Snippet, actorID string) error {
	if snippet.UserID == "" || snippet.UserID == actorID {
		return nil
	}
	return apperror.Forbidden("you do not own this snippet")
}
