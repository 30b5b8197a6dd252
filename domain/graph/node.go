package graph

// NodeKind distinguishes the account owner from their contacts
type NodeKind string

const (
	KindSelf    NodeKind = "self"
	KindContact NodeKind = "contact"
)

// NodeID is the stable identifier of a graph node
type NodeID string

// Node is a single participant in the relationship network.
// It is read-only from the engine's point of view: the hosting
// application derives it from communication metadata upstream.
type Node struct {
	ID           NodeID
	Label        string
	Kind         NodeKind
	WeightMetric int
	DomainKey    string
	Description  string
}

// IsSelf reports whether this node is the account owner
func (n Node) IsSelf() bool {
	return n.Kind == KindSelf
}

// Edge is an undirected weighted relationship between two nodes
type Edge struct {
	SourceID NodeID
	TargetID NodeID
	Weight   int
}

// Touches reports whether the edge has the given node as an endpoint
func (e Edge) Touches(id NodeID) bool {
	return e.SourceID == id || e.TargetID == id
}

// Other returns the opposite endpoint of the edge, if id is an endpoint
func (e Edge) Other(id NodeID) (NodeID, bool) {
	switch id {
	case e.SourceID:
		return e.TargetID, true
	case e.TargetID:
		return e.SourceID, true
	}
	return "", false
}
