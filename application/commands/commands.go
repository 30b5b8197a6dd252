// Package commands defines the state-changing operations of the
// visualization service. Each command carries its own validation;
// handlers live in the handlers subpackage.
package commands

import (
	"netviz/domain/graph"
	pkgerrors "netviz/pkg/errors"
)

// LoadGraphCommand loads a graph payload into an existing session,
// discarding all prior layout, viewport, and selection state.
type LoadGraphCommand struct {
	SessionID string
	Payload   *graph.Payload
}

// Validate validates the command
func (c LoadGraphCommand) Validate() error {
	if c.SessionID == "" {
		return pkgerrors.NewValidationError("sessionID is required")
	}
	if c.Payload == nil {
		return pkgerrors.NewValidationError("payload is required")
	}
	return nil
}

// ReloadGraphCommand re-fetches the payload from the upstream
// collaborator and rebuilds the session from scratch.
type ReloadGraphCommand struct {
	SessionID   string
	AccessToken string
}

// Validate validates the command
func (c ReloadGraphCommand) Validate() error {
	if c.SessionID == "" {
		return pkgerrors.NewValidationError("sessionID is required")
	}
	return nil
}

// PanViewportCommand shifts the camera by a pixel delta
type PanViewportCommand struct {
	SessionID string
	DX        float64
	DY        float64
}

// Validate validates the command
func (c PanViewportCommand) Validate() error {
	if c.SessionID == "" {
		return pkgerrors.NewValidationError("sessionID is required")
	}
	return nil
}

// ZoomAtPointerCommand zooms about a screen position
type ZoomAtPointerCommand struct {
	SessionID string
	X         float64
	Y         float64
	Factor    float64
}

// Validate validates the command
func (c ZoomAtPointerCommand) Validate() error {
	if c.SessionID == "" {
		return pkgerrors.NewValidationError("sessionID is required")
	}
	if c.Factor <= 0 {
		return pkgerrors.NewValidationError("zoom factor must be positive")
	}
	return nil
}

// ZoomStepCommand zooms about the viewport center, button driven
type ZoomStepCommand struct {
	SessionID string
	Direction int
}

// Validate validates the command
func (c ZoomStepCommand) Validate() error {
	if c.SessionID == "" {
		return pkgerrors.NewValidationError("sessionID is required")
	}
	if c.Direction == 0 {
		return pkgerrors.NewValidationError("zoom direction must be non-zero")
	}
	return nil
}

// ResetViewportCommand returns the camera to identity
type ResetViewportCommand struct {
	SessionID string
}

// Validate validates the command
func (c ResetViewportCommand) Validate() error {
	if c.SessionID == "" {
		return pkgerrors.NewValidationError("sessionID is required")
	}
	return nil
}

// ClickCanvasCommand resolves a click at a screen position: a node
// hit toggles selection, empty canvas is a no-op.
type ClickCanvasCommand struct {
	SessionID string
	X         float64
	Y         float64
}

// Validate validates the command
func (c ClickCanvasCommand) Validate() error {
	if c.SessionID == "" {
		return pkgerrors.NewValidationError("sessionID is required")
	}
	return nil
}

// SelectNodeCommand toggles selection for a node by id
type SelectNodeCommand struct {
	SessionID string
	NodeID    string
}

// Validate validates the command
func (c SelectNodeCommand) Validate() error {
	if c.SessionID == "" {
		return pkgerrors.NewValidationError("sessionID is required")
	}
	if c.NodeID == "" {
		return pkgerrors.NewValidationError("nodeID is required")
	}
	return nil
}

// ClearSelectionCommand returns the session to the unselected state
type ClearSelectionCommand struct {
	SessionID string
}

// Validate validates the command
func (c ClearSelectionCommand) Validate() error {
	if c.SessionID == "" {
		return pkgerrors.NewValidationError("sessionID is required")
	}
	return nil
}
