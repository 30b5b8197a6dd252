package graph

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "netviz/pkg/errors"
)

func readyPayload() *Payload {
	return &Payload{
		Status: StatusReady,
		Nodes: []PayloadNode{
			{ID: "me", Label: "Me", Kind: "self"},
			{ID: "alice", Label: "Alice", Kind: "contact", WeightMetric: 10, DomainKey: "x.com"},
		},
		Edges: []PayloadEdge{
			{SourceID: "me", TargetID: "alice", Weight: 10},
		},
		TotalMessages: 12,
	}
}

func TestPayload_Validate_Success(t *testing.T) {
	require.NoError(t, readyPayload().Validate())
}

func TestPayload_Validate_BadStatus(t *testing.T) {
	p := readyPayload()
	p.Status = "partial"

	err := p.Validate()
	require.Error(t, err)
	assert.True(t, pkgerrors.IsType(err, pkgerrors.ErrorTypeValidation))
}

func TestPayload_Validate_MissingNodeID(t *testing.T) {
	p := readyPayload()
	p.Nodes[1].ID = ""

	err := p.Validate()
	require.Error(t, err)
	assert.True(t, pkgerrors.IsType(err, pkgerrors.ErrorTypeValidation))
}

func TestPayload_IsEmpty(t *testing.T) {
	assert.True(t, (&Payload{Status: StatusEmpty}).IsEmpty())
	assert.True(t, (&Payload{Status: StatusReady}).IsEmpty())
	assert.False(t, readyPayload().IsEmpty())
}

func TestPayload_ToGraph(t *testing.T) {
	g, err := readyPayload().ToGraph()

	require.NoError(t, err)
	assert.Equal(t, 2, g.NodeCount())
	assert.Equal(t, 1, g.EdgeCount())
	assert.Equal(t, 12, g.TotalMessages())

	n, ok := g.Node("alice")
	require.True(t, ok)
	assert.Equal(t, KindContact, n.Kind)
	assert.Equal(t, 10, n.WeightMetric)
	assert.Equal(t, "x.com", n.DomainKey)
}

func TestPayload_ToGraph_EmptyStatusYieldsEmptyGraph(t *testing.T) {
	p := &Payload{Status: StatusEmpty, TotalMessages: 0}

	g, err := p.ToGraph()
	require.NoError(t, err)
	assert.True(t, g.IsEmpty())
}

func TestPayload_JSONRoundTrip(t *testing.T) {
	raw := `{
		"status": "ready",
		"nodes": [
			{"id": "me", "label": "Me", "kind": "self"},
			{"id": "bob", "label": "Bob", "kind": "contact", "weight_metric": 2, "domain_key": "y.com", "description": "old friend"}
		],
		"edges": [{"source_id": "me", "target_id": "bob", "weight": 2}],
		"total_messages": 7
	}`

	var p Payload
	require.NoError(t, json.Unmarshal([]byte(raw), &p))
	require.NoError(t, p.Validate())

	g, err := p.ToGraph()
	require.NoError(t, err)

	bob, ok := g.Node("bob")
	require.True(t, ok)
	assert.Equal(t, "old friend", bob.Description)
	assert.Equal(t, 7, g.TotalMessages())
}
