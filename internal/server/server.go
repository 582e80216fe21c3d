// Package server wires dependencies together and owns the HTTP lifecycle.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/sakif/code-studio/internal/agent"
	"github.com/sakif/code-studio/internal/auth"
	"github.com/sakif/code-studio/internal/executor/toolchain"
	"github.com/sakif/code-studio/internal/handler"
	"github.com/sakif/code-studio/internal/llm"
	"github.com/sakif/code-studio/internal/middleware"
	"github.com/sakif/code-studio/internal/repository/sqlite"
	"github.com/sakif/code-studio/internal/search"
	"github.com/sakif/code-studio/internal/service"
	"github.com/sakif/code-studio/internal/session"
	"github.com/sakif/code-studio/internal/tools"
)

// Config carries everything the server needs at startup. Zero values for the
// optional fields disable the feature they configure.
type Config struct {
	Port        string
	TemplateDir string
	StaticDir   string
	DBPath      string

	// assistant
	GeminiAPIKey string
	GeminiModel  string
	TavilyAPIKey string
	WorkspaceDir string

	// auth; all four must be set for login to be enabled
	JWTSecret          string
	GitHubClientID     string
	GitHubClientSecret string
	GitHubCallbackURL  string
}

// Server is the assembled application.
type Server struct {
	cfg    Config
	logger *slog.Logger
	db     *sqlite.DB
	router *chi.Mux
}

// New builds the full dependency graph: storage, executor, assistant,
// handlers and routes.
func New(ctx context.Context, cfg Config, logger *slog.Logger) (*Server, error) {
	db, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	exec := toolchain.New(logger)

	sessions, err := buildAssistant(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	snippetService := service.NewSnippetService(db, logger)

	var (
		tokens      *auth.TokenService
		authService *service.AuthService
		github      *auth.GitHubProvider
	)
	if cfg.JWTSecret != "" && cfg.GitHubClientID != "" && cfg.GitHubClientSecret != "" && cfg.GitHubCallbackURL != "" {
		tokens, err = auth.NewTokenService(cfg.JWTSecret)
		if err != nil {
			return nil, fmt.Errorf("configuring tokens: %w", err)
		}
		authService = service.NewAuthService(db, tokens, logger)
		github = auth.NewGitHubProvider(cfg.GitHubClientID, cfg.GitHubClientSecret, cfg.GitHubCallbackURL)
	} else {
		logger.Warn("github login disabled, set JWT_SECRET and GITHUB_CLIENT_ID/SECRET/CALLBACK_URL to enable")
	}

	executeHandler := handler.NewExecuteHandler(exec, logger)
	chatHandler := handler.NewChatHandler(sessions, logger)
	snippetHandler := handler.NewSnippetHandler(snippetService, logger)
	pageHandler, err := handler.NewPageHandler(cfg.TemplateDir, logger)
	if err != nil {
		return nil, fmt.Errorf("loading templates: %w", err)
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Logger(logger))

	r.Get("/", pageHandler.HandleIndex)

	fileServer := http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticDir)))
	r.Get("/static/*", fileServer.ServeHTTP)

	r.Route("/api", func(r chi.Router) {
		r.Get("/languages", executeHandler.HandleLanguages)
		r.Post("/execute", executeHandler.HandleExecute)
		r.Post("/assistant/chat", chatHandler.HandleChat)
		r.Delete("/assistant/chat", chatHandler.HandleReset)

		r.Route("/snippets", func(r chi.Router) {
			if tokens != nil {
				r.Use(auth.OptionalAuth(tokens))
			}
			r.Post("/", snippetHandler.HandleCreate)
			r.Get("/", snippetHandler.HandleList)
			r.Get("/{id}", snippetHandler.HandleGet)
			r.Put("/{id}", snippetHandler.HandleUpdate)
			r.Delete("/{id}", snippetHandler.HandleDelete)
		})
	})

	if authService != nil {
		authHandler := handler.NewAuthHandler(authService, github, logger)
		r.Get("/auth/github/login", authHandler.HandleGitHubLogin)
		r.Get("/auth/github/callback", authHandler.HandleGitHubCallback)
		r.Post("/auth/logout", authHandler.HandleLogout)
		r.With(auth.RequireAuth(tokens)).Get("/api/me", authHandler.HandleMe)
	}

	return &Server{
		cfg:    cfg,
		logger: logger,
		db:     db,
		router: r,
	}, nil
}

// buildAssistant assembles the Gemini client, search provider, tools and
// session manager. Missing API keys disable the assistant rather than
// failing startup.
func buildAssistant(ctx context.Context, cfg Config, logger *slog.Logger) (*session.Manager, error) {
	if cfg.GeminiAPIKey == "" {
		logger.Warn("assistant disabled, set GEMINI_API_KEY to enable")
		return nil, nil
	}

	client, err := llm.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	ws := &tools.Workspace{Root: cfg.WorkspaceDir}
	toolSet := []tools.Tool{
		tools.NewCreateFolderTool(ws),
		tools.NewCreateFileTool(ws),
		tools.NewAddCodeTool(ws),
	}

	if cfg.TavilyAPIKey != "" {
		toolSet = append(toolSet, tools.NewWebSearchTool(search.NewTavilyProvider(cfg.TavilyAPIKey)))
	} else {
		logger.Warn("web search disabled, set TAVILY_API_KEY to enable")
	}

	registry := tools.NewRegistry(toolSet...)

	logger.Info("assistant ready",
		slog.String("model", client.ModelName()),
		slog.Any("tools", registry.Names()),
	)

	return session.NewManager(func() *agent.Agent {
		return agent.New(client, registry, logger)
	}), nil
}

// Router exposes the route tree, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start runs the HTTP server until the context is canceled or an interrupt
// arrives, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:         ":" + s.cfg.Port,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0, // code execution and assistant turns can run long
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	case sig := <-stop:
		s.logger.Info("shutting down", slog.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}

	if err := s.db.Close(); err != nil {
		s.logger.Error("failed to close database", slog.String("error", err.Error()))
	}

	s.logger.Info("server stopped")
	return nil
}
