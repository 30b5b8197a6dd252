// Package queries defines the read side of the visualization service.
package queries

import (
	"netviz/engine"
	"netviz/engine/viewport"
	pkgerrors "netviz/pkg/errors"
)

// GetSceneQuery asks for the rendered SVG scene of a session
type GetSceneQuery struct {
	SessionID string
}

// Validate validates the query
func (q GetSceneQuery) Validate() error {
	if q.SessionID == "" {
		return pkgerrors.NewValidationError("sessionID is required")
	}
	return nil
}

// SceneResult carries the rendered document and the state revision it
// reflects.
type SceneResult struct {
	SVG      []byte
	Revision uint64
}

// GetGraphDataQuery asks for the raw graph data plus layout positions,
// consumed by the detail panel and other dashboard surfaces.
type GetGraphDataQuery struct {
	SessionID string
}

// Validate validates the query
func (q GetGraphDataQuery) Validate() error {
	if q.SessionID == "" {
		return pkgerrors.NewValidationError("sessionID is required")
	}
	return nil
}

// GraphNodeDTO is one node of the graph-data result
type GraphNodeDTO struct {
	ID           string  `json:"id"`
	Label        string  `json:"label"`
	Kind         string  `json:"kind"`
	WeightMetric int     `json:"weight_metric"`
	DomainKey    string  `json:"domain_key,omitempty"`
	Description  string  `json:"description,omitempty"`
	X            float64 `json:"x"`
	Y            float64 `json:"y"`
	Radius       float64 `json:"radius"`
	Color        string  `json:"color"`
}

// GraphEdgeDTO is one edge of the graph-data result
type GraphEdgeDTO struct {
	SourceID string `json:"source_id"`
	TargetID string `json:"target_id"`
	Weight   int    `json:"weight"`
}

// GraphDataResult is the full graph-data response
type GraphDataResult struct {
	Nodes []GraphNodeDTO `json:"nodes"`
	Edges []GraphEdgeDTO `json:"edges"`
	Stats engine.Stats   `json:"stats"`
}

// GetViewportQuery asks for the current camera transform
type GetViewportQuery struct {
	SessionID string
}

// Validate validates the query
func (q GetViewportQuery) Validate() error {
	if q.SessionID == "" {
		return pkgerrors.NewValidationError("sessionID is required")
	}
	return nil
}

// ViewportResult carries the camera snapshot
type ViewportResult struct {
	Transform viewport.Transform `json:"transform"`
}

// GetSelectionQuery asks for the current selection state
type GetSelectionQuery struct {
	SessionID string
}

// Validate validates the query
func (q GetSelectionQuery) Validate() error {
	if q.SessionID == "" {
		return pkgerrors.NewValidationError("sessionID is required")
	}
	return nil
}

// SelectionResult is the consumer contract for the detail panel:
// SelectedNodeID is the raw selection, SelectedContactID excludes the
// self node, which has no contact-detail semantics.
type SelectionResult struct {
	SelectedNodeID    string `json:"selected_node_id,omitempty"`
	SelectedContactID string `json:"selected_contact_id,omitempty"`
}
