package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/code-studio/internal/apperror"
	"github.com/sakif/code-studio/internal/auth"
	"github.com/sakif/code-studio/internal/service"
)

// SnippetHandler serves the snippet library CRUD API.
type SnippetHandler struct {
	service *service.SnippetService
	logger  *slog.Logger
}

func NewSnippetHandler(svc *service.SnippetService, logger *slog.Logger) *SnippetHandler {
	return &SnippetHandler{
		service: svc,
		logger:  logger,
	}
}

type snippetRequest struct {
	Name        string `json:"name"`
	Language    string `json:"language"`
	Code        string `json:"code"`
	Description string `json:"description"`
}

// HandleCreate handles POST /api/snippets.
func (h *SnippetHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req snippetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.ValidationFailed("body", "invalid JSON body"))
		return
	}

	userID, _ := auth.UserIDFromContext(r.Context())

	snippet, err := h.service.Create(r.Context(), req.Name, req.Language, req.Code, req.Description, userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, snippet)
}

// HandleGet handles GET /api/snippets/{id}.
func (h *SnippetHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	snippet, err := h.service.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, snippet)
}

// HandleList handles GET /api/snippets. With ?mine=true and a logged-in
// user, only that user's snippets are returned.
func (h *SnippetHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	var userID string
	if r.URL.Query().Get("mine") == "true" {
		id, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			writeError(w, apperror.ValidationFailed("mine", "log in to list your own snippets"))
			return
		}
		userID = id
	}

	snippets, err := h.service.List(r.Context(), limit, offset, userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"snippets": snippets,
		"count":    len(snippets),
	})
}

// HandleUpdate handles PUT /api/snippets/{id}.
func (h *SnippetHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req snippetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.ValidationFailed("body", "invalid JSON body"))
		return
	}

	userID, _ := auth.UserIDFromContext(r.Context())

	snippet, err := h.service.Update(r.Context(), chi.URLParam(r, "id"),
		req.Name, req.Language, req.Code, req.Description, userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, snippet)
}

// HandleDelete handles DELETE /api/snippets/{id}.
func (h *SnippetHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id"), userID); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
