package handlers

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"netviz/application/commands"
	"netviz/application/commands/bus"
	"netviz/application/ports"
	"netviz/application/sessions"
)

// LoadGraphHandler loads an already-fetched payload into a session
type LoadGraphHandler struct {
	store  *sessions.Store
	logger *zap.Logger
}

// NewLoadGraphHandler creates the handler
func NewLoadGraphHandler(store *sessions.Store, logger *zap.Logger) *LoadGraphHandler {
	return &LoadGraphHandler{store: store, logger: logger}
}

// Handle implements bus.CommandHandler
func (h *LoadGraphHandler) Handle(ctx context.Context, cmd bus.Command) error {
	c, ok := cmd.(commands.LoadGraphCommand)
	if !ok {
		return fmt.Errorf("unexpected command type %T", cmd)
	}

	if err := h.store.Load(c.SessionID, c.Payload); err != nil {
		return err
	}

	h.logger.Info("graph loaded",
		zap.String("sessionID", c.SessionID),
		zap.Int("nodes", len(c.Payload.Nodes)),
		zap.Int("edges", len(c.Payload.Edges)),
	)
	return nil
}

// ReloadGraphHandler re-fetches the payload from the upstream
// collaborator and rebuilds the session. The engine never retries on
// its own; a failed reload surfaces to the caller with retry left to
// the user.
type ReloadGraphHandler struct {
	store  *sessions.Store
	source ports.GraphSource
	logger *zap.Logger
}

// NewReloadGraphHandler creates the handler
func NewReloadGraphHandler(store *sessions.Store, source ports.GraphSource, logger *zap.Logger) *ReloadGraphHandler {
	return &ReloadGraphHandler{store: store, source: source, logger: logger}
}

// Handle implements bus.CommandHandler
func (h *ReloadGraphHandler) Handle(ctx context.Context, cmd bus.Command) error {
	c, ok := cmd.(commands.ReloadGraphCommand)
	if !ok {
		return fmt.Errorf("unexpected command type %T", cmd)
	}

	// Verify the session before the upstream round trip
	if _, err := h.store.Get(c.SessionID); err != nil {
		return err
	}

	payload, err := h.source.FetchGraph(ctx, c.AccessToken)
	if err != nil {
		h.logger.Warn("upstream graph fetch failed",
			zap.String("sessionID", c.SessionID),
			zap.Error(err),
		)
		return err
	}

	if err := h.store.Load(c.SessionID, payload); err != nil {
		return err
	}

	h.logger.Info("graph reloaded",
		zap.String("sessionID", c.SessionID),
		zap.String("status", payload.Status),
	)
	return nil
}
