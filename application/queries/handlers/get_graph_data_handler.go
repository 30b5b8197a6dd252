package handlers

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"netviz/application/queries"
	"netviz/application/queries/bus"
	"netviz/application/sessions"
	"netviz/domain/config"
	"netviz/engine/style"
)

// GetGraphDataHandler serves the positioned, styled graph as JSON for
// non-canvas consumers (the detail panel, exports).
type GetGraphDataHandler struct {
	store  *sessions.Store
	styles *style.Mapper
	logger *zap.Logger
}

// NewGetGraphDataHandler creates the handler
func NewGetGraphDataHandler(store *sessions.Store, tuning *config.Tuning, logger *zap.Logger) *GetGraphDataHandler {
	return &GetGraphDataHandler{
		store:  store,
		styles: style.NewMapper(tuning.Style),
		logger: logger,
	}
}

// Handle implements bus.QueryHandler
func (h *GetGraphDataHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	q, ok := query.(queries.GetGraphDataQuery)
	if !ok {
		return nil, fmt.Errorf("unexpected query type %T", query)
	}

	view, err := h.store.Get(q.SessionID)
	if err != nil {
		return nil, err
	}

	result := &queries.GraphDataResult{
		Nodes: []queries.GraphNodeDTO{},
		Edges: []queries.GraphEdgeDTO{},
		Stats: view.Stats(),
	}

	g := view.Graph()
	if g == nil {
		return result, nil
	}

	for _, n := range view.Positioned() {
		result.Nodes = append(result.Nodes, queries.GraphNodeDTO{
			ID:           string(n.ID),
			Label:        n.Label,
			Kind:         string(n.Kind),
			WeightMetric: n.WeightMetric,
			DomainKey:    n.DomainKey,
			Description:  n.Description,
			X:            n.X,
			Y:            n.Y,
			Radius:       h.styles.RadiusOf(n.Node),
			Color:        h.styles.ColorOf(n.Node),
		})
	}

	for _, e := range g.Edges() {
		result.Edges = append(result.Edges, queries.GraphEdgeDTO{
			SourceID: string(e.SourceID),
			TargetID: string(e.TargetID),
			Weight:   e.Weight,
		})
	}

	return result, nil
}
