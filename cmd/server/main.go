package main

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/sakif/code-studio/internal/server"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := server.Config{
		Port:         envOr("PORT", "8080"),
		TemplateDir:  envOr("TEMPLATE_DIR", "web/templates"),
		StaticDir:    envOr("STATIC_DIR", "web/static"),
		DBPath:       envOr("DB_PATH", "data/codestudio.db"),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  os.Getenv("GEMINI_MODEL"),
		TavilyAPIKey: os.Getenv("TAVILY_API_KEY"),
		WorkspaceDir: envOr("WORKSPACE_DIR", "workspace"),

		JWTSecret:          os.Getenv("JWT_SECRET"),
		GitHubClientID:     os.Getenv("GITHUB_CLIENT_ID"),
		GitHubClientSecret: os.Getenv("GITHUB_CLIENT_SECRET"),
		GitHubCallbackURL:  os.Getenv("GITHUB_CALLBACK_URL"),
	}

	if cfg.GeminiAPIKey == "" {
		logger.Error("GEMINI_API_KEY is required")
		os.Exit(1)
	}
	if cfg.TavilyAPIKey == "" {
		logger.Error("TAVILY_API_KEY is required")
		os.Exit(1)
	}

	for _, dir := range []string{filepath.Dir(cfg.DBPath), cfg.WorkspaceDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			logger.Error("failed to create directory",
				slog.String("dir", dir),
				slog.String("error", err.Error()),
			)
			os.Exit(1)
		}
	}

	ctx := context.Background()

	srv, err := server.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := srv.Start(ctx); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
