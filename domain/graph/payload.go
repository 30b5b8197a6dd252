package graph

import (
	"sync"

	"github.com/go-playground/validator/v10"

	pkgerrors "netviz/pkg/errors"
)

// Payload status values reported by the upstream collaborator
const (
	StatusReady = "ready"
	StatusEmpty = "empty"
)

// Payload is the wire shape the upstream network endpoint produces.
// It is validated at the boundary and converted into a Graph before
// anything downstream sees it.
type Payload struct {
	Status        string        `json:"status" validate:"required,oneof=ready empty"`
	Nodes         []PayloadNode `json:"nodes" validate:"dive"`
	Edges         []PayloadEdge `json:"edges"`
	TotalMessages int           `json:"total_messages" validate:"gte=0"`
}

// PayloadNode mirrors one upstream graph node
type PayloadNode struct {
	ID           string `json:"id" validate:"required"`
	Label        string `json:"label"`
	Kind         string `json:"kind" validate:"required"`
	WeightMetric int    `json:"weight_metric" validate:"gte=0"`
	DomainKey    string `json:"domain_key,omitempty"`
	Description  string `json:"description,omitempty"`
}

// PayloadEdge mirrors one upstream graph edge. Endpoint and weight
// problems are handled leniently in NewGraph, not rejected here.
type PayloadEdge struct {
	SourceID string `json:"source_id"`
	TargetID string `json:"target_id"`
	Weight   int    `json:"weight"`
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func payloadValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
	})
	return validate
}

// Validate checks the structural contract of the payload
func (p *Payload) Validate() error {
	if err := payloadValidator().Struct(p); err != nil {
		return pkgerrors.NewValidationError("invalid graph payload").WithCause(err)
	}
	return nil
}

// IsEmpty reports whether the payload carries no graph
func (p *Payload) IsEmpty() bool {
	return p.Status == StatusEmpty || len(p.Nodes) == 0
}

// ToGraph validates the payload and builds the immutable graph model
func (p *Payload) ToGraph(opts ...Option) (*Graph, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	if p.IsEmpty() {
		return NewGraph(nil, nil, append(opts, WithTotalMessages(p.TotalMessages))...)
	}

	nodes := make([]Node, 0, len(p.Nodes))
	for _, n := range p.Nodes {
		nodes = append(nodes, Node{
			ID:           NodeID(n.ID),
			Label:        n.Label,
			Kind:         NodeKind(n.Kind),
			WeightMetric: n.WeightMetric,
			DomainKey:    n.DomainKey,
			Description:  n.Description,
		})
	}

	edges := make([]Edge, 0, len(p.Edges))
	for _, e := range p.Edges {
		edges = append(edges, Edge{
			SourceID: NodeID(e.SourceID),
			TargetID: NodeID(e.TargetID),
			Weight:   e.Weight,
		})
	}

	return NewGraph(nodes, edges, append(opts, WithTotalMessages(p.TotalMessages))...)
}
