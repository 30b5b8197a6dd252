package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"netviz/domain/config"
	"netviz/domain/graph"
	pkgerrors "netviz/pkg/errors"
)

func testPayload() *graph.Payload {
	return &graph.Payload{
		Status: graph.StatusReady,
		Nodes: []graph.PayloadNode{
			{ID: "me", Label: "Me", Kind: "self"},
			{ID: "alice", Label: "Alice", Kind: "contact", WeightMetric: 10, DomainKey: "x.com"},
			{ID: "bob", Label: "Bob", Kind: "contact", WeightMetric: 2, DomainKey: "y.com"},
		},
		Edges: []graph.PayloadEdge{
			{SourceID: "me", TargetID: "alice", Weight: 10},
			{SourceID: "me", TargetID: "bob", Weight: 2},
			{SourceID: "me", TargetID: "ghost", Weight: 1},
		},
		TotalMessages: 13,
	}
}

func loadedView(t *testing.T) *View {
	t.Helper()
	v := NewView(config.DefaultTuning(), zap.NewNop())
	require.NoError(t, v.Load(testPayload()))
	return v
}

func TestView_BeforeLoad(t *testing.T) {
	v := NewView(config.DefaultTuning(), zap.NewNop())

	assert.False(t, v.Loaded())
	assert.Nil(t, v.Graph())
	assert.True(t, v.Stats().Empty)

	doc, err := v.Scene()
	require.NoError(t, err)
	assert.Contains(t, string(doc), "No network data yet")

	_, _, err = v.Click(480, 300)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsType(err, pkgerrors.ErrorTypeConflict))
}

func TestView_Load_RunsFullPipeline(t *testing.T) {
	v := loadedView(t)

	assert.True(t, v.Loaded())
	assert.Len(t, v.Positioned(), 3)

	stats := v.Stats()
	assert.Equal(t, 3, stats.NodeCount)
	assert.Equal(t, 2, stats.EdgeCount)
	assert.Equal(t, 1, stats.DroppedEdges)
	assert.Equal(t, 13, stats.TotalMessages)
	assert.False(t, stats.Empty)

	doc, err := v.Scene()
	require.NoError(t, err)
	assert.Contains(t, string(doc), `data-node-id="alice"`)
}

func TestView_Load_ResetsViewportAndSelection(t *testing.T) {
	v := loadedView(t)

	v.PanBy(40, 40)
	v.ZoomStep(1)
	require.NoError(t, v.Select("alice"))

	require.NoError(t, v.Load(testPayload()))

	tr := v.Viewport()
	assert.Zero(t, tr.PanX)
	assert.Zero(t, tr.PanY)
	assert.InDelta(t, 1.0, tr.Scale, 1e-9)
	_, selected := v.SelectedNodeID()
	assert.False(t, selected)
}

func TestView_Load_StrictRejectsBadGraph(t *testing.T) {
	v := NewView(config.DefaultTuning(), zap.NewNop(), WithStrictValidation())
	p := testPayload()
	p.Nodes[0].Kind = "contact" // no self node left

	err := v.Load(p)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsType(err, pkgerrors.ErrorTypeValidation))
	assert.False(t, v.Loaded())
}

func TestView_Load_LenientPromotesFirstNode(t *testing.T) {
	v := NewView(config.DefaultTuning(), zap.NewNop())
	p := testPayload()
	p.Nodes[0].Kind = "contact"

	require.NoError(t, v.Load(p))
	self, ok := v.Graph().Self()
	require.True(t, ok)
	assert.Equal(t, graph.NodeID("me"), self.ID)
}

func TestView_Revision_BumpsOnEveryStateChange(t *testing.T) {
	v := loadedView(t)
	r := v.Revision()

	v.PanBy(1, 0)
	assert.Equal(t, r+1, v.Revision())

	v.ZoomAt(480, 300, 1.5)
	assert.Equal(t, r+2, v.Revision())

	require.NoError(t, v.Select("bob"))
	assert.Equal(t, r+3, v.Revision())

	v.ClearSelection()
	assert.Equal(t, r+4, v.Revision())

	require.NoError(t, v.Load(testPayload()))
	assert.Equal(t, r+5, v.Revision())
}

func TestView_SelectToggleSemantics(t *testing.T) {
	v := loadedView(t)

	require.NoError(t, v.Select("alice"))
	id, ok := v.SelectedNodeID()
	require.True(t, ok)
	assert.Equal(t, graph.NodeID("alice"), id)

	cid, ok := v.SelectedContactID()
	require.True(t, ok)
	assert.Equal(t, graph.NodeID("alice"), cid)

	require.NoError(t, v.Select("alice"))
	_, ok = v.SelectedNodeID()
	assert.False(t, ok)

	err := v.Select("ghost")
	require.Error(t, err)
	assert.True(t, pkgerrors.IsType(err, pkgerrors.ErrorTypeNotFound))
}

func TestView_SelectedContactID_SelfExcluded(t *testing.T) {
	v := loadedView(t)

	require.NoError(t, v.Select("me"))
	_, ok := v.SelectedNodeID()
	assert.True(t, ok)
	_, ok = v.SelectedContactID()
	assert.False(t, ok)
}

func TestView_Click_TogglesHitNode(t *testing.T) {
	v := loadedView(t)

	// The self node sits at the graph origin, which the identity
	// transform maps to the surface center.
	id, hit, err := v.Click(480, 300)
	require.NoError(t, err)
	require.True(t, hit)
	assert.Equal(t, graph.NodeID("me"), id)

	sel, ok := v.SelectedNodeID()
	require.True(t, ok)
	assert.Equal(t, graph.NodeID("me"), sel)

	// Clicking empty canvas far from everything neither errors nor
	// clears the selection.
	r := v.Revision()
	_, hit, err = v.Click(5, 5)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, r, v.Revision())
}

func TestView_PointerGesture_DragPansWithoutSelecting(t *testing.T) {
	v := loadedView(t)

	// (100, 100) is empty canvas, far from every node
	v.PointerDown(100, 100)
	v.PointerMove(120, 110)
	v.PointerMove(140, 120)
	id, hit, err := v.PointerUp(140, 120)

	require.NoError(t, err)
	assert.False(t, hit)
	assert.Empty(t, id)

	tr := v.Viewport()
	assert.InDelta(t, 40, tr.PanX, 1e-9)
	assert.InDelta(t, 20, tr.PanY, 1e-9)
	_, selected := v.SelectedNodeID()
	assert.False(t, selected)
}

func TestView_PointerGesture_DragFromNodeDoesNotPan(t *testing.T) {
	v := loadedView(t)

	// The press lands on the self node at the surface center, so the
	// gesture may resolve as a click but never as a pan.
	v.PointerDown(480, 300)
	v.PointerMove(520, 330)
	id, hit, err := v.PointerUp(520, 330)

	require.NoError(t, err)
	assert.False(t, hit)
	assert.Empty(t, id)

	tr := v.Viewport()
	assert.Zero(t, tr.PanX)
	assert.Zero(t, tr.PanY)
	_, selected := v.SelectedNodeID()
	assert.False(t, selected)
}

func TestView_PointerGesture_SubSlopWiggleNeverPans(t *testing.T) {
	v := loadedView(t)

	v.PointerDown(100, 100)
	v.PointerMove(101, 101)
	id, hit, err := v.PointerUp(101, 101)

	require.NoError(t, err)
	assert.False(t, hit, "nothing to click on empty canvas")
	assert.Empty(t, id)

	tr := v.Viewport()
	assert.Zero(t, tr.PanX)
	assert.Zero(t, tr.PanY)
}

func TestView_PointerGesture_StationaryPressIsClick(t *testing.T) {
	v := loadedView(t)

	v.PointerDown(480, 300)
	id, hit, err := v.PointerUp(480, 300)

	require.NoError(t, err)
	require.True(t, hit)
	assert.Equal(t, graph.NodeID("me"), id)
}

func TestView_PointerLeave_CancelsDrag(t *testing.T) {
	v := loadedView(t)

	v.PointerDown(480, 300)
	v.PointerLeave()
	v.PointerMove(600, 400)

	tr := v.Viewport()
	assert.Zero(t, tr.PanX)
	assert.Zero(t, tr.PanY)
}

func TestView_ZoomAt_ClampsAndAnchors(t *testing.T) {
	v := loadedView(t)

	v.ZoomAt(700, 200, 1000)
	assert.InDelta(t, 4.0, v.Viewport().Scale, 1e-9)

	v.ResetViewport()
	assert.InDelta(t, 1.0, v.Viewport().Scale, 1e-9)
}

func TestView_ReloadIsIdempotentForLayout(t *testing.T) {
	v := loadedView(t)
	first := v.Positioned()

	require.NoError(t, v.Load(testPayload()))
	second := v.Positioned()

	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)
		assert.Equal(t, first[i].X, second[i].X)
		assert.Equal(t, first[i].Y, second[i].Y)
	}
}

func TestView_EmptyPayload_RendersEmptyState(t *testing.T) {
	v := NewView(config.DefaultTuning(), zap.NewNop())
	require.NoError(t, v.Load(&graph.Payload{Status: graph.StatusEmpty}))

	assert.True(t, v.Loaded())
	assert.True(t, v.Stats().Empty)

	doc, err := v.Scene()
	require.NoError(t, err)
	assert.Contains(t, string(doc), "No network data yet")
}

func TestView_EndToEndStyling(t *testing.T) {
	v := loadedView(t)
	g := v.Graph()

	alice, ok := g.Node("alice")
	require.True(t, ok)
	bob, ok := g.Node("bob")
	require.True(t, ok)

	styles := stylesOf(v)
	assert.Greater(t, styles.RadiusOf(alice), styles.RadiusOf(bob))
	assert.NotEqual(t, styles.ColorOf(alice), styles.ColorOf(bob))
}

func stylesOf(v *View) interface {
	RadiusOf(graph.Node) float64
	ColorOf(graph.Node) string
} {
	return v.styles
}
