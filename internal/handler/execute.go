package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/sakif/code-studio/internal/apperror"
	"github.com/sakif/code-studio/internal/executor"
)

// ExecuteHandler runs user code through the local toolchains.
type ExecuteHandler struct {
	executor executor.Executor
	logger   *slog.Logger
}

func NewExecuteHandler(exec executor.Executor, logger *slog.Logger) *ExecuteHandler {
	return &ExecuteHandler{
		executor: exec,
		logger:   logger,
	}
}

type executeRequest struct {
	Language string `json:"language"`
	Code     string `json:"code"`
}

type executeResponse struct {
	Stdout        string `json:"stdout"`
	Stderr        string `json:"stderr"`
	CompileOutput string `json:"compile_output,omitempty"`
	Compiled      bool   `json:"compiled"`
	ExitCode      int    `json:"exit_code"`
	DurationMS    int64  `json:"duration_ms"`
}

// HandleExecute handles POST /api/execute.
func (h *ExecuteHandler) HandleExecute(w http.ResponseWriter, r *http.Request) {
	if h.executor == nil {
		writeError(w, apperror.Unavailable("code execution"))
		return
	}

	var req executeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.ValidationFailed("body", "invalid JSON body"))
		return
	}

	lang, err := executor.ParseLanguage(req.Language)
	if err != nil {
		writeError(w, apperror.ValidationFailed("language", err.Error()))
		return
	}

	result, err := h.executor.Execute(r.Context(), executor.ExecutionRequest{
		Language: lang,
		Code:     req.Code,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	h.logger.Info("code executed",
		slog.String("language", string(lang)),
		slog.Int("exit_code", result.ExitCode),
		slog.Duration("duration", result.Duration),
	)

	writeJSON(w, http.StatusOK, executeResponse{
		Stdout:        result.Stdout,
		Stderr:        result.Stderr,
		CompileOutput: result.CompileOutput,
		Compiled:      result.Compiled,
		ExitCode:      result.ExitCode,
		DurationMS:    result.Duration.Milliseconds(),
	})
}

// HandleLanguages handles GET /api/languages.
func (h *ExecuteHandler) HandleLanguages(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]executor.Language{
		"languages": executor.Languages(),
	})
}
