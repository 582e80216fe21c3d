package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/sakif/code-studio/internal/apperror"
	"github.com/sakif/code-studio/internal/session"
)

// ChatHandler exposes the coding assistant over HTTP. Conversations are
// tracked per browser via a session cookie.
type ChatHandler struct {
	sessions *session.Manager
	logger   *slog.Logger
}

func NewChatHandler(sessions *session.Manager, logger *slog.Logger) *ChatHandler {
	return &ChatHandler{
		sessions: sessions,
		logger:   logger,
	}
}

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

// HandleChat handles POST /api/assistant/chat.
func (h *ChatHandler) HandleChat(w http.ResponseWriter, r *http.Request) {
	if h.sessions == nil {
		writeError(w, apperror.Unavailable("the coding assistant"))
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.ValidationFailed("body", "invalid JSON body"))
		return
	}

	sess := h.sessions.GetOrCreate(sessionID(r))
	setSessionCookie(w, sess.ID)

	reply, err := sess.Agent.Respond(r.Context(), req.Message)
	if err != nil {
		h.logger.Error("assistant turn failed",
			slog.String("session_id", sess.ID),
			slog.String("error", err.Error()),
		)
		writeError(w, err)
		return
	}

	h.logger.Info("assistant replied",
		slog.String("session_id", sess.ID),
		slog.Int("history_len", sess.Agent.Memory().Len()),
	)

	writeJSON(w, http.StatusOK, chatResponse{Reply: reply})
}

// HandleReset handles DELETE /api/assistant/chat. It clears the session's
// conversation so the next message starts fresh.
func (h *ChatHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	if h.sessions == nil {
		writeError(w, apperror.Unavailable("the coding assistant"))
		return
	}

	if id := sessionID(r); id != "" {
		h.sessions.Reset(id)
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

func sessionID(r *http.Request) string {
	cookie, err := r.Cookie(session.CookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func setSessionCookie(w http.ResponseWriter, id string) {
	http.SetCookie(w, &http.Cookie{
		Name:     session.CookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
