// Package selection owns the selected-node state and derives, per
// render, which elements are emphasized and which are dimmed.
package selection

import (
	"netviz/domain/graph"
	pkgerrors "netviz/pkg/errors"
)

// Controller is the selection state machine: Unselected, or
// Selected(nodeID). It never outlives the graph it was built for;
// a reload discards it along with everything else.
type Controller struct {
	g        *graph.Graph
	selected graph.NodeID
}

// NewController creates an unselected controller for the given graph
func NewController(g *graph.Graph) *Controller {
	return &Controller{g: g}
}

// Toggle flips selection for a node: selecting while unselected,
// clearing on a repeated click, and switching directly when a
// different node is already selected.
func (c *Controller) Toggle(id graph.NodeID) error {
	if !c.g.HasNode(id) {
		return pkgerrors.NewNotFoundError("node")
	}
	if c.selected == id {
		c.selected = ""
		return nil
	}
	c.selected = id
	return nil
}

// Clear returns to the Unselected state
func (c *Controller) Clear() {
	c.selected = ""
}

// Selected returns the selected node id, if any
func (c *Controller) Selected() (graph.NodeID, bool) {
	return c.selected, c.selected != ""
}

// SelectedContactID is the consumer contract for the detail panel:
// it reports the selected node unless it is the self node, which has
// no contact-detail semantics.
func (c *Controller) SelectedContactID() (graph.NodeID, bool) {
	if c.selected == "" {
		return "", false
	}
	if n, ok := c.g.Node(c.selected); ok && n.IsSelf() {
		return "", false
	}
	return c.selected, true
}

// NodeDimmed reports whether a node renders de-emphasized: anything
// that is neither the selection nor adjacent to it. With no selection
// nothing is dimmed.
func (c *Controller) NodeDimmed(id graph.NodeID) bool {
	if c.selected == "" {
		return false
	}
	if id == c.selected {
		return false
	}
	return !c.g.Connected(id, c.selected)
}

// EdgeDimmed reports whether an edge renders de-emphasized: any edge
// not touching the selected node.
func (c *Controller) EdgeDimmed(e graph.Edge) bool {
	if c.selected == "" {
		return false
	}
	return !e.Touches(c.selected)
}

// EdgeEmphasized reports whether an edge gets the highlight stroke:
// exactly the edges touching the selected node.
func (c *Controller) EdgeEmphasized(e graph.Edge) bool {
	if c.selected == "" {
		return false
	}
	return e.Touches(c.selected)
}
