package handlers

import (
	"context"
	"fmt"

	"netviz/application/queries"
	"netviz/application/queries/bus"
	"netviz/application/sessions"
)

// GetViewportHandler reports a session's camera transform
type GetViewportHandler struct {
	store *sessions.Store
}

// NewGetViewportHandler creates the handler
func NewGetViewportHandler(store *sessions.Store) *GetViewportHandler {
	return &GetViewportHandler{store: store}
}

// Handle implements bus.QueryHandler
func (h *GetViewportHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	q, ok := query.(queries.GetViewportQuery)
	if !ok {
		return nil, fmt.Errorf("unexpected query type %T", query)
	}

	view, err := h.store.Get(q.SessionID)
	if err != nil {
		return nil, err
	}

	return &queries.ViewportResult{Transform: view.Viewport()}, nil
}

// GetSelectionHandler reports a session's selection state
type GetSelectionHandler struct {
	store *sessions.Store
}

// NewGetSelectionHandler creates the handler
func NewGetSelectionHandler(store *sessions.Store) *GetSelectionHandler {
	return &GetSelectionHandler{store: store}
}

// Handle implements bus.QueryHandler
func (h *GetSelectionHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	q, ok := query.(queries.GetSelectionQuery)
	if !ok {
		return nil, fmt.Errorf("unexpected query type %T", query)
	}

	view, err := h.store.Get(q.SessionID)
	if err != nil {
		return nil, err
	}

	result := &queries.SelectionResult{}
	if id, ok := view.SelectedNodeID(); ok {
		result.SelectedNodeID = string(id)
	}
	if id, ok := view.SelectedContactID(); ok {
		result.SelectedContactID = string(id)
	}
	return result, nil
}
