package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"netviz/application/commands"
	commandbus "netviz/application/commands/bus"
	"netviz/application/ports"
	"netviz/application/sessions"
	"netviz/domain/graph"
	"netviz/interfaces/http/rest/middleware"
	"netviz/pkg/common"
	pkgerrors "netviz/pkg/errors"
)

// SessionHandler manages visualization session lifecycle
type SessionHandler struct {
	store      *sessions.Store
	source     ports.GraphSource
	commandBus *commandbus.CommandBus
	logger     *zap.Logger
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(
	store *sessions.Store,
	source ports.GraphSource,
	commandBus *commandbus.CommandBus,
	logger *zap.Logger,
) *SessionHandler {
	return &SessionHandler{
		store:      store,
		source:     source,
		commandBus: commandBus,
		logger:     logger,
	}
}

type createSessionRequest struct {
	// Payload carries an inline graph; when absent the graph is
	// fetched from the upstream collaborator instead.
	Payload *graph.Payload `json:"payload,omitempty"`
}

type createSessionResponse struct {
	SessionID string `json:"session_id"`
	Status    string `json:"status"`
}

// CreateSession handles POST /sessions
func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, http.StatusBadRequest,
				string(pkgerrors.ErrorTypeValidation), "malformed request body")
			return
		}
	}

	payload := req.Payload
	if payload == nil {
		fetched, err := h.source.FetchGraph(r.Context(), middleware.AccessTokenFromContext(r.Context()))
		if err != nil {
			h.logger.Error("initial graph fetch failed", zap.Error(err))
			common.RespondAppError(w, err)
			return
		}
		payload = fetched
	}

	sessionID, view, err := h.store.Create(payload)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	status := graph.StatusReady
	if view.Stats().Empty {
		status = graph.StatusEmpty
	}

	common.RespondJSON(w, http.StatusCreated, createSessionResponse{
		SessionID: sessionID,
		Status:    status,
	})
}

// DeleteSession handles DELETE /sessions/{sessionID}
func (h *SessionHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if err := h.store.Delete(sessionID); err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, map[string]string{"deleted": sessionID})
}

// ReloadGraph handles POST /sessions/{sessionID}/reload: it re-fetches
// the payload from the upstream collaborator and discards all session
// state. Failed reloads keep the prior scene; the retry is the user's.
func (h *SessionHandler) ReloadGraph(w http.ResponseWriter, r *http.Request) {
	cmd := commands.ReloadGraphCommand{
		SessionID:   chi.URLParam(r, "sessionID"),
		AccessToken: middleware.AccessTokenFromContext(r.Context()),
	}

	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, map[string]string{"reloaded": cmd.SessionID})
}

// LoadGraph handles POST /sessions/{sessionID}/graph: it replaces the
// session's graph with an inline payload.
func (h *SessionHandler) LoadGraph(w http.ResponseWriter, r *http.Request) {
	var payload graph.Payload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.RespondError(w, http.StatusBadRequest,
			string(pkgerrors.ErrorTypeValidation), "malformed graph payload")
		return
	}

	cmd := commands.LoadGraphCommand{
		SessionID: chi.URLParam(r, "sessionID"),
		Payload:   &payload,
	}

	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, map[string]string{"loaded": cmd.SessionID})
}
