// Package render draws the styled, positioned graph as an SVG scene.
// Rendering is a pure function of its inputs: the same positions,
// viewport, and selection always produce an identical document, and no
// drawing state is carried between calls.
package render

import (
	"bytes"
	"fmt"
	"html"
	"math"

	"netviz/domain/graph"
	"netviz/engine/layout"
	"netviz/engine/selection"
	"netviz/engine/style"
	"netviz/engine/viewport"
)

// Renderer draws scenes; it owns no mutable state beyond its styling
// rules.
type Renderer struct {
	styles *style.Mapper
}

// NewRenderer creates a renderer with the given style mapper
func NewRenderer(styles *style.Mapper) *Renderer {
	return &Renderer{styles: styles}
}

// Render produces the SVG document for the current pipeline state.
// Draw order is grid, edges, nodes, labels, so nodes always sit above
// edges and labels above everything.
func (r *Renderer) Render(
	g *graph.Graph,
	nodes []layout.PositionedNode,
	vp *viewport.Controller,
	sel *selection.Controller,
) ([]byte, error) {
	if g == nil || g.IsEmpty() || len(nodes) == 0 {
		return r.RenderEmpty(vp, "No network data yet"), nil
	}

	cfg := r.styles.Config()
	w, h := vp.SurfaceSize()
	t := vp.Transform()
	cx, cy := w/2, h/2

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">`, w, h, w, h)
	fmt.Fprintf(&buf, `<rect width="%.0f" height="%.0f" fill="%s"/>`, w, h, cfg.Background)

	if cfg.ShowGrid {
		r.drawGrid(&buf, w, h, t)
	}

	// One shared affine transform: screen = graph*scale + pan + center.
	fmt.Fprintf(&buf, `<g transform="translate(%.2f %.2f) scale(%.4f)">`, cx+t.PanX, cy+t.PanY, t.Scale)

	index := positionIndex(nodes)
	maxWeight := g.MaxEdgeWeight()
	for _, e := range g.Edges() {
		r.drawEdge(&buf, e, index, maxWeight, sel)
	}
	for _, n := range nodes {
		r.drawNode(&buf, n, sel)
	}
	for _, n := range nodes {
		r.drawLabel(&buf, n, sel)
	}

	buf.WriteString(`</g></svg>`)
	return buf.Bytes(), nil
}

// RenderEmpty produces the defined empty-state document shown for an
// empty payload or before the first load.
func (r *Renderer) RenderEmpty(vp *viewport.Controller, message string) []byte {
	cfg := r.styles.Config()
	w, h := vp.SurfaceSize()

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">`, w, h, w, h)
	fmt.Fprintf(&buf, `<rect width="%.0f" height="%.0f" fill="%s"/>`, w, h, cfg.Background)
	fmt.Fprintf(&buf, `<text x="%.1f" y="%.1f" text-anchor="middle" fill="%s" font-size="%.1f" font-family="sans-serif">%s</text>`,
		w/2, h/2, cfg.LabelColor, cfg.FontSize+2, html.EscapeString(message))
	buf.WriteString(`</svg>`)
	return buf.Bytes()
}

// NodeAt hit-tests a screen position against the rendered node discs,
// using the same viewport transform the drawing path uses. The topmost
// node wins when discs overlap.
func (r *Renderer) NodeAt(nodes []layout.PositionedNode, vp *viewport.Controller, sx, sy float64) (graph.NodeID, bool) {
	gx, gy := vp.ScreenToGraph(sx, sy)
	for i := len(nodes) - 1; i >= 0; i-- {
		n := nodes[i]
		radius := r.styles.RadiusOf(n.Node)
		if math.Hypot(n.X-gx, n.Y-gy) <= radius {
			return n.ID, true
		}
	}
	return "", false
}

// drawGrid paints the decorative background grid in screen space,
// scaled and offset by the viewport so it appears to pan and zoom
// with the content.
func (r *Renderer) drawGrid(buf *bytes.Buffer, w, h float64, t viewport.Transform) {
	cfg := r.styles.Config()
	spacing := cfg.GridSpacing * t.Scale
	if spacing < 4 {
		// Zoomed far out the grid is just noise
		return
	}

	offsetX := math.Mod(w/2+t.PanX, spacing)
	offsetY := math.Mod(h/2+t.PanY, spacing)

	fmt.Fprintf(buf, `<g stroke="%s" stroke-width="1">`, cfg.GridColor)
	for x := offsetX - spacing; x <= w; x += spacing {
		fmt.Fprintf(buf, `<line x1="%.1f" y1="0" x2="%.1f" y2="%.0f"/>`, x, x, h)
	}
	for y := offsetY - spacing; y <= h; y += spacing {
		fmt.Fprintf(buf, `<line x1="0" y1="%.1f" x2="%.0f" y2="%.1f"/>`, y, w, y)
	}
	buf.WriteString(`</g>`)
}

func (r *Renderer) drawEdge(buf *bytes.Buffer, e graph.Edge, index map[graph.NodeID]layout.PositionedNode, maxWeight int, sel *selection.Controller) {
	src, okSrc := index[e.SourceID]
	dst, okDst := index[e.TargetID]
	if !okSrc || !okDst {
		return
	}

	cfg := r.styles.Config()
	color := cfg.EdgeColor
	opacity := r.styles.EdgeOpacityOf(e, maxWeight)
	switch {
	case sel.EdgeEmphasized(e):
		color = cfg.EmphasisColor
		opacity = r.styles.EmphasisOpacity()
	case sel.EdgeDimmed(e):
		opacity = r.styles.DimOpacity()
	}

	fmt.Fprintf(buf, `<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="%.2f" stroke-opacity="%.2f"/>`,
		src.X, src.Y, dst.X, dst.Y, color, r.styles.EdgeWidthOf(e, maxWeight), opacity)
}

func (r *Renderer) drawNode(buf *bytes.Buffer, n layout.PositionedNode, sel *selection.Controller) {
	opacity := 1.0
	if sel.NodeDimmed(n.ID) {
		opacity = r.styles.DimOpacity()
	}

	fmt.Fprintf(buf, `<circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s" fill-opacity="%.2f" data-node-id="%s"/>`,
		n.X, n.Y, r.styles.RadiusOf(n.Node), r.styles.ColorOf(n.Node), opacity, html.EscapeString(string(n.ID)))
}

func (r *Renderer) drawLabel(buf *bytes.Buffer, n layout.PositionedNode, sel *selection.Controller) {
	cfg := r.styles.Config()
	opacity := 1.0
	if sel.NodeDimmed(n.ID) {
		opacity = r.styles.DimOpacity()
	}

	if n.IsSelf() {
		// Self gets its short label inline at the disc center instead
		// of the usual caption below.
		fmt.Fprintf(buf, `<text x="%.2f" y="%.2f" text-anchor="middle" dominant-baseline="central" fill="%s" font-size="%.1f" font-family="sans-serif" fill-opacity="%.2f">%s</text>`,
			n.X, n.Y, cfg.Background, cfg.FontSize, opacity, html.EscapeString(shortLabel(n.Label)))
		return
	}

	fmt.Fprintf(buf, `<text x="%.2f" y="%.2f" text-anchor="middle" fill="%s" font-size="%.1f" font-family="sans-serif" fill-opacity="%.2f">%s</text>`,
		n.X, n.Y+r.styles.RadiusOf(n.Node)+cfg.FontSize, cfg.LabelColor, cfg.FontSize, opacity, html.EscapeString(n.Label))
}

func positionIndex(nodes []layout.PositionedNode) map[graph.NodeID]layout.PositionedNode {
	index := make(map[graph.NodeID]layout.PositionedNode, len(nodes))
	for _, n := range nodes {
		index[n.ID] = n
	}
	return index
}

func shortLabel(label string) string {
	if label == "" {
		return "You"
	}
	runes := []rune(label)
	if len(runes) > 6 {
		return string(runes[:6])
	}
	return label
}
