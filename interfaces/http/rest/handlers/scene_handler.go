package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"netviz/application/queries"
	querybus "netviz/application/queries/bus"
	"netviz/pkg/common"
	pkgerrors "netviz/pkg/errors"
)

// SceneHandler serves the rendered scene and graph data of a session
type SceneHandler struct {
	queryBus *querybus.QueryBus
	logger   *zap.Logger
}

// NewSceneHandler creates a new scene handler
func NewSceneHandler(queryBus *querybus.QueryBus, logger *zap.Logger) *SceneHandler {
	return &SceneHandler{queryBus: queryBus, logger: logger}
}

// GetScene handles GET /sessions/{sessionID}/scene, returning the SVG
// document for the session's current state.
func (h *SceneHandler) GetScene(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	result, err := h.queryBus.Ask(r.Context(), queries.GetSceneQuery{SessionID: sessionID})
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	scene, ok := result.(*queries.SceneResult)
	if !ok {
		common.RespondAppError(w, pkgerrors.NewInternalError("unexpected scene result"))
		return
	}

	w.Header().Set("X-Scene-Revision", strconv.FormatUint(scene.Revision, 10))
	common.RespondSVG(w, http.StatusOK, scene.SVG)
}

// GetGraphData handles GET /sessions/{sessionID}/graph, returning the
// positioned, styled graph as JSON for the detail panel.
func (h *SceneHandler) GetGraphData(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	result, err := h.queryBus.Ask(r.Context(), queries.GetGraphDataQuery{SessionID: sessionID})
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, result)
}
