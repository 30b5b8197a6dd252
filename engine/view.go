// Package engine assembles the visualization pipeline: graph model in,
// force layout, styling, selection and viewport state, rendered scene
// out. One View corresponds to one loaded graph and is discarded
// wholesale on reload.
package engine

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"netviz/domain/config"
	"netviz/domain/graph"
	"netviz/engine/layout"
	"netviz/engine/render"
	"netviz/engine/selection"
	"netviz/engine/style"
	"netviz/engine/viewport"
	pkgerrors "netviz/pkg/errors"
)

// Stats summarizes the loaded graph for display surfaces
type Stats struct {
	NodeCount     int  `json:"node_count"`
	EdgeCount     int  `json:"edge_count"`
	DroppedEdges  int  `json:"dropped_edges"`
	TotalMessages int  `json:"total_messages"`
	Empty         bool `json:"empty"`
}

// View owns all per-graph visualization state. Controllers mutate
// their own slice of it through documented methods; the renderer only
// reads, which keeps repeated re-renders deterministic.
type View struct {
	mu sync.Mutex

	tuning *config.Tuning
	strict bool
	logger *zap.Logger

	styles       *style.Mapper
	layoutEngine *layout.Engine
	renderer     *render.Renderer

	g          *graph.Graph
	positioned []layout.PositionedNode
	viewport   *viewport.Controller
	selection  *selection.Controller
	pointer    *viewport.PointerMachine

	loaded   bool
	revision uint64

	// LastLayoutDuration is how long the most recent simulation took
	lastLayoutDuration time.Duration
}

// Option configures a View
type Option func(*View)

// WithStrictValidation makes graph invariant violations fatal instead
// of degrading. Development builds run strict.
func WithStrictValidation() Option {
	return func(v *View) { v.strict = true }
}

// NewView creates an empty view; nothing renders until Load
func NewView(tuning *config.Tuning, logger *zap.Logger, opts ...Option) *View {
	styles := style.NewMapper(tuning.Style)
	v := &View{
		tuning:       tuning,
		logger:       logger,
		styles:       styles,
		layoutEngine: layout.NewEngine(tuning.Layout, styles, logger),
		renderer:     render.NewRenderer(styles),
		viewport:     viewport.NewController(tuning.Viewport),
		pointer:      viewport.NewPointerMachine(),
	}
	for _, opt := range opts {
		opt(v)
	}
	v.selection = selection.NewController(mustEmptyGraph())
	return v
}

func mustEmptyGraph() *graph.Graph {
	g, _ := graph.NewGraph(nil, nil)
	return g
}

// Load runs the full pipeline for a fresh payload, discarding all
// prior positioned-node, viewport, and selection state.
func (v *View) Load(p *graph.Payload) error {
	var opts []graph.Option
	if v.strict {
		opts = append(opts, graph.Strict())
	}
	g, err := p.ToGraph(opts...)
	if err != nil {
		return err
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	start := time.Now()
	v.g = g
	v.positioned = v.layoutEngine.Compute(g)
	v.lastLayoutDuration = time.Since(start)

	v.viewport.Reset()
	v.selection = selection.NewController(g)
	v.pointer.Leave()
	v.loaded = true
	v.revision++

	if g.DroppedEdges() > 0 {
		v.logger.Warn("dropped malformed edges from upstream payload",
			zap.Int("dropped", g.DroppedEdges()),
		)
	}

	return nil
}

// Loaded reports whether a graph has been loaded
func (v *View) Loaded() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loaded
}

// Revision increments on every state change; scene caching keys on it
func (v *View) Revision() uint64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.revision
}

// LastLayoutDuration returns how long the most recent layout took
func (v *View) LastLayoutDuration() time.Duration {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.lastLayoutDuration
}

// Scene renders the current state to an SVG document
func (v *View) Scene() ([]byte, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.loaded {
		return v.renderer.RenderEmpty(v.viewport, "No network data yet"), nil
	}
	return v.renderer.Render(v.g, v.positioned, v.viewport, v.selection)
}

// Click resolves a screen position: a hit on a node toggles its
// selection, a miss on empty canvas does nothing (pan gestures go
// through the pointer methods instead).
func (v *View) Click(sx, sy float64) (graph.NodeID, bool, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.loaded {
		return "", false, pkgerrors.NewConflictError("no graph loaded")
	}

	id, hit := v.renderer.NodeAt(v.positioned, v.viewport, sx, sy)
	if !hit {
		return "", false, nil
	}
	if err := v.selection.Toggle(id); err != nil {
		return "", false, err
	}
	v.revision++
	return id, true, nil
}

// PointerDown begins a potential pan or click gesture. A press on a
// node arms a click only; pan gestures start on empty canvas.
func (v *View) PointerDown(sx, sy float64) {
	v.mu.Lock()
	defer v.mu.Unlock()

	onNode := false
	if v.loaded {
		_, onNode = v.renderer.NodeAt(v.positioned, v.viewport, sx, sy)
	}
	v.pointer.Down(sx, sy, onNode)
}

// PointerMove pans the viewport while a drag is active
func (v *View) PointerMove(sx, sy float64) {
	v.mu.Lock()
	defer v.mu.Unlock()

	dx, dy, panning := v.pointer.Move(sx, sy)
	if panning && (dx != 0 || dy != 0) {
		v.viewport.PanBy(dx, dy)
		v.revision++
	}
}

// PointerUp ends the gesture; a press that never travelled resolves
// as a click through the same hit-test path as Click.
func (v *View) PointerUp(sx, sy float64) (graph.NodeID, bool, error) {
	v.mu.Lock()
	click := v.pointer.Up(sx, sy)
	v.mu.Unlock()

	if !click {
		return "", false, nil
	}
	return v.Click(sx, sy)
}

// PointerLeave cancels a drag mid-gesture
func (v *View) PointerLeave() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.pointer.Leave()
}

// PanBy shifts the camera directly (button or keyboard driven)
func (v *View) PanBy(dx, dy float64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.viewport.PanBy(dx, dy)
	v.revision++
}

// ZoomAt zooms about a pointer position
func (v *View) ZoomAt(sx, sy, factor float64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.viewport.ZoomAt(sx, sy, factor)
	v.revision++
}

// ZoomStep zooms about the viewport center
func (v *View) ZoomStep(direction int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.viewport.ZoomStep(direction)
	v.revision++
}

// ResetViewport returns the camera to identity
func (v *View) ResetViewport() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.viewport.Reset()
	v.revision++
}

// Viewport returns the current camera snapshot
func (v *View) Viewport() viewport.Transform {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.viewport.Transform()
}

// Select toggles selection for a node by id (detail-panel driven)
func (v *View) Select(id graph.NodeID) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.loaded {
		return pkgerrors.NewConflictError("no graph loaded")
	}
	if err := v.selection.Toggle(id); err != nil {
		return err
	}
	v.revision++
	return nil
}

// ClearSelection returns to the unselected state
func (v *View) ClearSelection() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.selection.Clear()
	v.revision++
}

// SelectedNodeID exposes the raw selection state
func (v *View) SelectedNodeID() (graph.NodeID, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.selection.Selected()
}

// SelectedContactID exposes the detail-panel consumer contract; the
// self node never opens a contact detail.
func (v *View) SelectedContactID() (graph.NodeID, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.selection.SelectedContactID()
}

// Graph returns the loaded model, nil before the first load
func (v *View) Graph() *graph.Graph {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.g
}

// Positioned returns the immutable layout snapshot
func (v *View) Positioned() []layout.PositionedNode {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.positioned
}

// Stats summarizes the loaded graph
func (v *View) Stats() Stats {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.loaded || v.g == nil {
		return Stats{Empty: true}
	}
	return Stats{
		NodeCount:     v.g.NodeCount(),
		EdgeCount:     v.g.EdgeCount(),
		DroppedEdges:  v.g.DroppedEdges(),
		TotalMessages: v.g.TotalMessages(),
		Empty:         v.g.IsEmpty(),
	}
}
