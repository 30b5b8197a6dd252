package graph

import (
	"fmt"

	pkgerrors "netviz/pkg/errors"
)

// Graph is the validated, immutable model the visualization pipeline
// consumes. Construction drops malformed edges and guarantees the
// self-node invariant; after NewGraph returns, nothing mutates it.
type Graph struct {
	nodes         []Node
	edges         []Edge
	index         map[NodeID]int
	adjacency     map[NodeID]map[NodeID]bool
	maxEdgeWeight int
	droppedEdges  int
	totalMessages int
}

// Option configures graph construction
type Option func(*options)

type options struct {
	strict        bool
	totalMessages int
}

// Strict makes invariant violations (duplicate ids, missing self node)
// construction errors instead of degrading gracefully. Development
// builds run strict; production promotes the first node to self.
func Strict() Option {
	return func(o *options) { o.strict = true }
}

// WithTotalMessages attaches the upstream aggregate message count.
// It is display-only and never feeds layout.
func WithTotalMessages(total int) Option {
	return func(o *options) { o.totalMessages = total }
}

// NewGraph validates nodes and edges into an immutable graph model.
// Edges referencing missing nodes, self-loops, and non-positive
// weights are dropped silently; they are upstream data-integrity
// concerns, not visualization failures.
func NewGraph(nodes []Node, edges []Edge, opts ...Option) (*Graph, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	g := &Graph{
		index:         make(map[NodeID]int, len(nodes)),
		adjacency:     make(map[NodeID]map[NodeID]bool, len(nodes)),
		totalMessages: o.totalMessages,
	}

	if len(nodes) == 0 {
		return g, nil
	}

	g.nodes = make([]Node, 0, len(nodes))
	selfCount := 0
	for _, n := range nodes {
		if n.ID == "" {
			if o.strict {
				return nil, pkgerrors.NewValidationError("node id cannot be empty")
			}
			continue
		}
		if _, dup := g.index[n.ID]; dup {
			if o.strict {
				return nil, pkgerrors.NewValidationError(fmt.Sprintf("duplicate node id %q", n.ID))
			}
			continue
		}
		if n.Kind != KindSelf && n.Kind != KindContact {
			// Unknown kinds from a newer upstream degrade to contact
			n.Kind = KindContact
		}
		if n.Kind == KindSelf {
			selfCount++
			if selfCount > 1 {
				if o.strict {
					return nil, pkgerrors.NewValidationError("graph must contain exactly one self node")
				}
				n.Kind = KindContact
			}
		}
		g.index[n.ID] = len(g.nodes)
		g.nodes = append(g.nodes, n)
	}

	if len(g.nodes) > 0 && selfCount == 0 {
		if o.strict {
			return nil, pkgerrors.NewValidationError("non-empty graph is missing its self node")
		}
		g.nodes[0].Kind = KindSelf
	}

	g.edges = make([]Edge, 0, len(edges))
	for _, e := range edges {
		if !g.validEdge(e) {
			g.droppedEdges++
			continue
		}
		g.edges = append(g.edges, e)
		g.connect(e.SourceID, e.TargetID)
		if e.Weight > g.maxEdgeWeight {
			g.maxEdgeWeight = e.Weight
		}
	}

	return g, nil
}

func (g *Graph) validEdge(e Edge) bool {
	if e.SourceID == e.TargetID {
		return false
	}
	if e.Weight <= 0 {
		return false
	}
	if _, ok := g.index[e.SourceID]; !ok {
		return false
	}
	if _, ok := g.index[e.TargetID]; !ok {
		return false
	}
	return true
}

func (g *Graph) connect(a, b NodeID) {
	if g.adjacency[a] == nil {
		g.adjacency[a] = make(map[NodeID]bool)
	}
	if g.adjacency[b] == nil {
		g.adjacency[b] = make(map[NodeID]bool)
	}
	g.adjacency[a][b] = true
	g.adjacency[b][a] = true
}

// Nodes returns the node set in construction order
func (g *Graph) Nodes() []Node {
	return g.nodes
}

// Edges returns the surviving edge set in construction order
func (g *Graph) Edges() []Edge {
	return g.edges
}

// Node looks up a node by id
func (g *Graph) Node(id NodeID) (Node, bool) {
	i, ok := g.index[id]
	if !ok {
		return Node{}, false
	}
	return g.nodes[i], true
}

// HasNode reports whether the id resolves to a node
func (g *Graph) HasNode(id NodeID) bool {
	_, ok := g.index[id]
	return ok
}

// Self returns the account-owner node
func (g *Graph) Self() (Node, bool) {
	for _, n := range g.nodes {
		if n.IsSelf() {
			return n, true
		}
	}
	return Node{}, false
}

// Connected reports whether an edge joins a and b
func (g *Graph) Connected(a, b NodeID) bool {
	return g.adjacency[a][b]
}

// Neighbors returns the ids adjacent to the given node
func (g *Graph) Neighbors(id NodeID) []NodeID {
	adj := g.adjacency[id]
	if len(adj) == 0 {
		return nil
	}
	out := make([]NodeID, 0, len(adj))
	for _, n := range g.nodes {
		if adj[n.ID] {
			out = append(out, n.ID)
		}
	}
	return out
}

// MaxEdgeWeight returns the heaviest surviving edge weight, 0 when edgeless.
// Edge styling is normalized against this so visual weight is always
// relative to the current data set.
func (g *Graph) MaxEdgeWeight() int {
	return g.maxEdgeWeight
}

// IsEmpty reports whether the graph has no nodes
func (g *Graph) IsEmpty() bool {
	return len(g.nodes) == 0
}

// NodeCount returns the number of nodes
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// EdgeCount returns the number of surviving edges
func (g *Graph) EdgeCount() int {
	return len(g.edges)
}

// DroppedEdges returns how many malformed edges construction discarded
func (g *Graph) DroppedEdges() int {
	return g.droppedEdges
}

// TotalMessages returns the upstream display-only aggregate count
func (g *Graph) TotalMessages() int {
	return g.totalMessages
}
