package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/code-studio/internal/auth"
	"github.com/sakif/code-studio/internal/model"
	"github.com/sakif/code-studio/internal/repository"
)

// AuthService handles GitHub-based login and token validation.
type AuthService struct {
	users  repository.UserRepository
	tokens *auth.TokenService
	logger *slog.Logger
}

func NewAuthService(users repository.UserRepository, tokens *auth.TokenService, logger *slog.Logger) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
		logger: logger,
	}
}

// AuthResult is returned after a successful login.
type AuthResult struct {
	User  *model.User
	Token string
}

// LoginOrRegisterGitHub upserts the GitHub account into the user store and
// issues a signed session token. First login creates the user, later logins
// refresh the profile fields.
func (s *AuthService) LoginOrRegisterGitHub(ctx context.Context, gh *auth.GitHubUser) (*AuthResult, error) {
	if gh == nil || gh.ID == 0 {
		return nil, fmt.Errorf("github profile is missing an account ID")
	}

	user := &model.User{
		GitHubID:  gh.ID,
		Login:     strings.TrimSpace(gh.Login),
		Email:     strings.TrimSpace(gh.Email),
		AvatarURL: gh.AvatarURL,
	}

	if err := s.users.Upsert(ctx, user); err != nil {
		s.logger.Error("failed to upsert user",
			slog.Int64("github_id", gh.ID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("storing user: %w", err)
	}

	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, fmt.Errorf("generating token: %w", err)
	}

	s.logger.Info("user logged in",
		slog.String("user_id", user.ID),
		slog.String("login", user.Login),
	)

	return &AuthResult{User: user, Token: token}, nil
}

// GetUserByID retrieves a user's profile.
func (s *AuthService) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	return s.users.GetUserByID(ctx, id)
}

// ValidateToken checks a session token and returns the user ID it carries.
func (s *AuthService) ValidateToken(token string) (string, error) {
	return s.tokens.Validate(token)
}
