// Package style derives visual attributes from graph data with pure,
// deterministic rules. The same node renders the same radius and color
// on every reload without any server-maintained registry.
package style

import (
	"hash/fnv"
	"math"

	"netviz/domain/config"
	"netviz/domain/graph"
)

// Mapper maps nodes and edges to their visual attributes
type Mapper struct {
	cfg config.StyleTuning
}

// NewMapper creates a mapper with the given tuning
func NewMapper(cfg config.StyleTuning) *Mapper {
	return &Mapper{cfg: cfg}
}

// Config returns the tuning the mapper was built with
func (m *Mapper) Config() config.StyleTuning {
	return m.cfg
}

// RadiusOf returns the rendered disc radius for a node. The self node
// gets a fixed large radius; contacts scale with the square root of
// their activity count, saturating so heavy contacts stand out without
// dominating the canvas.
func (m *Mapper) RadiusOf(n graph.Node) float64 {
	if n.IsSelf() {
		return m.cfg.SelfRadius
	}
	r := m.cfg.RadiusBase + math.Sqrt(float64(n.WeightMetric))*m.cfg.RadiusScale
	return math.Max(m.cfg.MinRadius, math.Min(m.cfg.MaxRadius, r))
}

// ColorOf returns the fill color for a node. Contacts hash their
// domain key into a fixed palette so the same domain always renders
// the same color across reloads.
func (m *Mapper) ColorOf(n graph.Node) string {
	if n.IsSelf() {
		return m.cfg.SelfColor
	}
	if n.DomainKey == "" || len(m.cfg.Palette) == 0 {
		return m.cfg.NeutralColor
	}
	h := fnv.New32a()
	h.Write([]byte(n.DomainKey))
	return m.cfg.Palette[h.Sum32()%uint32(len(m.cfg.Palette))]
}

// EdgeWidthOf returns the stroke width for an edge, scaled linearly
// between the configured bounds by weight relative to the heaviest
// edge in the current graph.
func (m *Mapper) EdgeWidthOf(e graph.Edge, maxWeight int) float64 {
	return m.cfg.MinEdgeWidth + (m.cfg.MaxEdgeWidth-m.cfg.MinEdgeWidth)*relativeWeight(e.Weight, maxWeight)
}

// EdgeOpacityOf returns the base opacity for an edge when no selection
// override applies; heavier edges read as more present.
func (m *Mapper) EdgeOpacityOf(e graph.Edge, maxWeight int) float64 {
	return m.cfg.MinEdgeOpacity + (m.cfg.MaxEdgeOpacity-m.cfg.MinEdgeOpacity)*relativeWeight(e.Weight, maxWeight)
}

// DimOpacity is the constant applied to de-emphasized elements
func (m *Mapper) DimOpacity() float64 {
	return m.cfg.DimOpacity
}

// EmphasisOpacity is applied to edges touching the selected node
func (m *Mapper) EmphasisOpacity() float64 {
	return m.cfg.EmphasisOpacity
}

func relativeWeight(weight, maxWeight int) float64 {
	if maxWeight <= 0 {
		return 0
	}
	rel := float64(weight) / float64(maxWeight)
	if rel < 0 {
		return 0
	}
	if rel > 1 {
		return 1
	}
	return rel
}
