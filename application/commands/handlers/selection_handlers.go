package handlers

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"netviz/application/commands"
	"netviz/application/commands/bus"
	"netviz/application/sessions"
	"netviz/domain/graph"
)

// SelectionHandler applies click and selection commands
type SelectionHandler struct {
	store  *sessions.Store
	logger *zap.Logger
}

// NewSelectionHandler creates the handler
func NewSelectionHandler(store *sessions.Store, logger *zap.Logger) *SelectionHandler {
	return &SelectionHandler{store: store, logger: logger}
}

// Handle implements bus.CommandHandler for all selection commands
func (h *SelectionHandler) Handle(ctx context.Context, cmd bus.Command) error {
	switch c := cmd.(type) {
	case commands.ClickCanvasCommand:
		view, err := h.store.Get(c.SessionID)
		if err != nil {
			return err
		}
		id, hit, err := view.Click(c.X, c.Y)
		if err != nil {
			return err
		}
		if hit {
			h.logger.Debug("node clicked",
				zap.String("sessionID", c.SessionID),
				zap.String("nodeID", string(id)),
			)
		}
		return nil

	case commands.SelectNodeCommand:
		view, err := h.store.Get(c.SessionID)
		if err != nil {
			return err
		}
		return view.Select(graph.NodeID(c.NodeID))

	case commands.ClearSelectionCommand:
		view, err := h.store.Get(c.SessionID)
		if err != nil {
			return err
		}
		view.ClearSelection()
		return nil

	default:
		return fmt.Errorf("unexpected command type %T", cmd)
	}
}
