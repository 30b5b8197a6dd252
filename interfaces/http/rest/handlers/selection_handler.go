package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"netviz/application/commands"
	commandbus "netviz/application/commands/bus"
	"netviz/application/queries"
	querybus "netviz/application/queries/bus"
	"netviz/pkg/common"
	pkgerrors "netviz/pkg/errors"
)

// SelectionHandler exposes click and selection operations over HTTP
type SelectionHandler struct {
	commandBus *commandbus.CommandBus
	queryBus   *querybus.QueryBus
	logger     *zap.Logger
}

// NewSelectionHandler creates a new selection handler
func NewSelectionHandler(commandBus *commandbus.CommandBus, queryBus *querybus.QueryBus, logger *zap.Logger) *SelectionHandler {
	return &SelectionHandler{commandBus: commandBus, queryBus: queryBus, logger: logger}
}

type clickRequest struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type selectRequest struct {
	NodeID string `json:"node_id"`
}

// Click handles POST /sessions/{sessionID}/pointer/click: screen
// coordinates in, selection state out. A miss on empty canvas changes
// nothing.
func (h *SelectionHandler) Click(w http.ResponseWriter, r *http.Request) {
	var req clickRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondError(w, http.StatusBadRequest,
			string(pkgerrors.ErrorTypeValidation), "malformed request body")
		return
	}

	cmd := commands.ClickCanvasCommand{
		SessionID: chi.URLParam(r, "sessionID"),
		X:         req.X,
		Y:         req.Y,
	}
	h.sendAndRespond(w, r, cmd)
}

// Select handles POST /sessions/{sessionID}/selection: toggles a node
// by id, the path the detail panel uses.
func (h *SelectionHandler) Select(w http.ResponseWriter, r *http.Request) {
	var req selectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondError(w, http.StatusBadRequest,
			string(pkgerrors.ErrorTypeValidation), "malformed request body")
		return
	}

	cmd := commands.SelectNodeCommand{
		SessionID: chi.URLParam(r, "sessionID"),
		NodeID:    req.NodeID,
	}
	h.sendAndRespond(w, r, cmd)
}

// GetSelection handles GET /sessions/{sessionID}/selection
func (h *SelectionHandler) GetSelection(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	result, err := h.queryBus.Ask(r.Context(), queries.GetSelectionQuery{SessionID: sessionID})
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, result)
}

// ClearSelection handles DELETE /sessions/{sessionID}/selection
func (h *SelectionHandler) ClearSelection(w http.ResponseWriter, r *http.Request) {
	cmd := commands.ClearSelectionCommand{
		SessionID: chi.URLParam(r, "sessionID"),
	}
	h.sendAndRespond(w, r, cmd)
}

func (h *SelectionHandler) sendAndRespond(w http.ResponseWriter, r *http.Request, cmd commandbus.Command) {
	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		common.RespondAppError(w, err)
		return
	}

	sessionID := chi.URLParam(r, "sessionID")
	result, err := h.queryBus.Ask(r.Context(), queries.GetSelectionQuery{SessionID: sessionID})
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, result)
}
