package handlers

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"netviz/application/commands"
	"netviz/application/commands/bus"
	"netviz/application/sessions"
)

// ViewportHandler applies camera commands to a session's viewport
// controller. Pan is unbounded; zoom is clamped by the controller.
type ViewportHandler struct {
	store  *sessions.Store
	logger *zap.Logger
}

// NewViewportHandler creates the handler
func NewViewportHandler(store *sessions.Store, logger *zap.Logger) *ViewportHandler {
	return &ViewportHandler{store: store, logger: logger}
}

// Handle implements bus.CommandHandler for all viewport commands
func (h *ViewportHandler) Handle(ctx context.Context, cmd bus.Command) error {
	switch c := cmd.(type) {
	case commands.PanViewportCommand:
		view, err := h.store.Get(c.SessionID)
		if err != nil {
			return err
		}
		view.PanBy(c.DX, c.DY)
		return nil

	case commands.ZoomAtPointerCommand:
		view, err := h.store.Get(c.SessionID)
		if err != nil {
			return err
		}
		view.ZoomAt(c.X, c.Y, c.Factor)
		return nil

	case commands.ZoomStepCommand:
		view, err := h.store.Get(c.SessionID)
		if err != nil {
			return err
		}
		view.ZoomStep(c.Direction)
		return nil

	case commands.ResetViewportCommand:
		view, err := h.store.Get(c.SessionID)
		if err != nil {
			return err
		}
		view.ResetViewport()
		return nil

	default:
		return fmt.Errorf("unexpected command type %T", cmd)
	}
}
