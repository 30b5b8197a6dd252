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

// ViewportHandler exposes camera operations over HTTP
type ViewportHandler struct {
	commandBus *commandbus.CommandBus
	queryBus   *querybus.QueryBus
	logger     *zap.Logger
}

// NewViewportHandler creates a new viewport handler
func NewViewportHandler(commandBus *commandbus.CommandBus, queryBus *querybus.QueryBus, logger *zap.Logger) *ViewportHandler {
	return &ViewportHandler{commandBus: commandBus, queryBus: queryBus, logger: logger}
}

type panRequest struct {
	DX float64 `json:"dx"`
	DY float64 `json:"dy"`
}

type zoomRequest struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Factor float64 `json:"factor"`
}

type zoomStepRequest struct {
	Direction int `json:"direction"`
}

// GetViewport handles GET /sessions/{sessionID}/viewport
func (h *ViewportHandler) GetViewport(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	result, err := h.queryBus.Ask(r.Context(), queries.GetViewportQuery{SessionID: sessionID})
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, result)
}

// Pan handles POST /sessions/{sessionID}/viewport/pan
func (h *ViewportHandler) Pan(w http.ResponseWriter, r *http.Request) {
	var req panRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondError(w, http.StatusBadRequest,
			string(pkgerrors.ErrorTypeValidation), "malformed request body")
		return
	}

	cmd := commands.PanViewportCommand{
		SessionID: chi.URLParam(r, "sessionID"),
		DX:        req.DX,
		DY:        req.DY,
	}
	h.send(w, r, cmd)
}

// ZoomAt handles POST /sessions/{sessionID}/viewport/zoom
func (h *ViewportHandler) ZoomAt(w http.ResponseWriter, r *http.Request) {
	var req zoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondError(w, http.StatusBadRequest,
			string(pkgerrors.ErrorTypeValidation), "malformed request body")
		return
	}

	cmd := commands.ZoomAtPointerCommand{
		SessionID: chi.URLParam(r, "sessionID"),
		X:         req.X,
		Y:         req.Y,
		Factor:    req.Factor,
	}
	h.send(w, r, cmd)
}

// ZoomStep handles POST /sessions/{sessionID}/viewport/zoom-step
func (h *ViewportHandler) ZoomStep(w http.ResponseWriter, r *http.Request) {
	var req zoomStepRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondError(w, http.StatusBadRequest,
			string(pkgerrors.ErrorTypeValidation), "malformed request body")
		return
	}

	cmd := commands.ZoomStepCommand{
		SessionID: chi.URLParam(r, "sessionID"),
		Direction: req.Direction,
	}
	h.send(w, r, cmd)
}

// Reset handles POST /sessions/{sessionID}/viewport/reset
func (h *ViewportHandler) Reset(w http.ResponseWriter, r *http.Request) {
	cmd := commands.ResetViewportCommand{
		SessionID: chi.URLParam(r, "sessionID"),
	}
	h.send(w, r, cmd)
}

func (h *ViewportHandler) send(w http.ResponseWriter, r *http.Request, cmd commandbus.Command) {
	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		common.RespondAppError(w, err)
		return
	}

	// Return the resulting transform so the client can stay in sync
	sessionID := chi.URLParam(r, "sessionID")
	result, err := h.queryBus.Ask(r.Context(), queries.GetViewportQuery{SessionID: sessionID})
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, result)
}
