package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"netviz/application/sessions"
	"netviz/domain/config"
	"netviz/domain/graph"
	infraconfig "netviz/infrastructure/config"
	"netviz/infrastructure/di"
	pkgerrors "netviz/pkg/errors"
)

type stubSource struct {
	payload *graph.Payload
	err     error
	calls   int
}

func (s *stubSource) FetchGraph(ctx context.Context, accessToken string) (*graph.Payload, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.payload, nil
}

func testPayload() *graph.Payload {
	return &graph.Payload{
		Status: graph.StatusReady,
		Nodes: []graph.PayloadNode{
			{ID: "me", Label: "Me", Kind: "self"},
			{ID: "alice", Label: "Alice", Kind: "contact", WeightMetric: 6, DomainKey: "x.com"},
			{ID: "bob", Label: "Bob", Kind: "contact", WeightMetric: 2, DomainKey: "y.com"},
		},
		Edges: []graph.PayloadEdge{
			{SourceID: "me", TargetID: "alice", Weight: 6},
			{SourceID: "me", TargetID: "bob", Weight: 2},
		},
		TotalMessages: 8,
	}
}

func newTestServer(t *testing.T, source *stubSource) http.Handler {
	t.Helper()
	cfg := &infraconfig.Config{
		ServerAddress: ":0",
		Environment:   "test",
		JWTIssuer:     "dashboard",
		EnableMetrics: false,
		EnableCORS:    false,
	}
	logger := zap.NewNop()
	tuning := config.DefaultTuning()
	store := sessions.NewStore(tuning, false, logger, nil)

	commandBus, err := di.ProvideCommandBus(store, source, logger)
	require.NoError(t, err)
	queryBus, err := di.ProvideQueryBus(store, tuning, logger, nil)
	require.NoError(t, err)

	return NewRouter(cfg, store, source, commandBus, queryBus, nil, logger).Setup()
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

func doJSON(t *testing.T, server http.Handler, method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	var env envelope
	if rec.Header().Get("Content-Type") == "application/json" {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func createSession(t *testing.T, server http.Handler) string {
	t.Helper()
	rec, env := doJSON(t, server, http.MethodPost, "/api/v1/sessions",
		map[string]interface{}{"payload": testPayload()})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var data struct {
		SessionID string `json:"session_id"`
		Status    string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(t, data.SessionID)
	require.Equal(t, "ready", data.Status)
	return data.SessionID
}

func TestRouter_HealthAndReady(t *testing.T) {
	server := newTestServer(t, &stubSource{})

	rec, env := doJSON(t, server, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)
	assert.Contains(t, string(env.Data), `"healthy"`)

	rec, _ = doJSON(t, server, http.MethodGet, "/ready", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_CreateSession_InlinePayload(t *testing.T) {
	source := &stubSource{}
	server := newTestServer(t, source)

	createSession(t, server)
	assert.Zero(t, source.calls, "inline payload skips the upstream fetch")
}

func TestRouter_CreateSession_FetchesWhenNoPayload(t *testing.T) {
	source := &stubSource{payload: testPayload()}
	server := newTestServer(t, source)

	rec, env := doJSON(t, server, http.MethodPost, "/api/v1/sessions", nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, 1, source.calls)
	assert.Contains(t, string(env.Data), `"ready"`)
}

func TestRouter_CreateSession_UpstreamDown(t *testing.T) {
	source := &stubSource{err: pkgerrors.NewUnavailableError("graph source unreachable")}
	server := newTestServer(t, source)

	rec, env := doJSON(t, server, http.MethodPost, "/api/v1/sessions", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "UNAVAILABLE", env.Error.Type)
}

func TestRouter_GetScene(t *testing.T) {
	server := newTestServer(t, &stubSource{})
	id := createSession(t, server)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/sessions/"+id+"/scene", nil)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/svg+xml", rec.Header().Get("Content-Type"))
	assert.NotEmpty(t, rec.Header().Get("X-Scene-Revision"))
	assert.Contains(t, rec.Body.String(), `data-node-id="alice"`)
}

func TestRouter_GetScene_UnknownSession(t *testing.T) {
	server := newTestServer(t, &stubSource{})

	rec, env := doJSON(t, server, http.MethodGet, "/api/v1/sessions/missing/scene", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "NOT_FOUND", env.Error.Type)
}

func TestRouter_GetGraphData(t *testing.T) {
	server := newTestServer(t, &stubSource{})
	id := createSession(t, server)

	rec, env := doJSON(t, server, http.MethodGet, "/api/v1/sessions/"+id+"/graph", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var data struct {
		Nodes []struct {
			ID     string  `json:"id"`
			Radius float64 `json:"radius"`
			Color  string  `json:"color"`
		} `json:"nodes"`
		Stats struct {
			NodeCount     int `json:"node_count"`
			TotalMessages int `json:"total_messages"`
		} `json:"stats"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Len(t, data.Nodes, 3)
	assert.Equal(t, 3, data.Stats.NodeCount)
	assert.Equal(t, 8, data.Stats.TotalMessages)
}

func TestRouter_ViewportFlow(t *testing.T) {
	server := newTestServer(t, &stubSource{})
	id := createSession(t, server)
	base := "/api/v1/sessions/" + id + "/viewport"

	rec, env := doJSON(t, server, http.MethodPost, base+"/pan", map[string]float64{"dx": 25, "dy": -10})
	require.Equal(t, http.StatusOK, rec.Code)

	var result struct {
		Transform struct {
			PanX  float64 `json:"pan_x"`
			PanY  float64 `json:"pan_y"`
			Scale float64 `json:"scale"`
		} `json:"transform"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Equal(t, 25.0, result.Transform.PanX)
	assert.Equal(t, -10.0, result.Transform.PanY)

	rec, env = doJSON(t, server, http.MethodPost, base+"/zoom",
		map[string]float64{"x": 480, "y": 300, "factor": 2})
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Equal(t, 2.0, result.Transform.Scale)

	rec, env = doJSON(t, server, http.MethodPost, base+"/zoom-step", map[string]int{"direction": -1})
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.InDelta(t, 1.6, result.Transform.Scale, 1e-9)

	rec, env = doJSON(t, server, http.MethodPost, base+"/reset", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Equal(t, 1.0, result.Transform.Scale)
	assert.Zero(t, result.Transform.PanX)

	rec, env = doJSON(t, server, http.MethodGet, base, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Equal(t, 1.0, result.Transform.Scale)
}

func TestRouter_ViewportValidation(t *testing.T) {
	server := newTestServer(t, &stubSource{})
	id := createSession(t, server)

	rec, env := doJSON(t, server, http.MethodPost, "/api/v1/sessions/"+id+"/viewport/zoom",
		map[string]float64{"x": 10, "y": 10, "factor": -1})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION", env.Error.Type)
}

func TestRouter_SelectionFlow(t *testing.T) {
	server := newTestServer(t, &stubSource{})
	id := createSession(t, server)
	base := "/api/v1/sessions/" + id + "/selection"

	var result struct {
		SelectedNodeID    string `json:"selected_node_id"`
		SelectedContactID string `json:"selected_contact_id"`
	}

	rec, env := doJSON(t, server, http.MethodPost, base, map[string]string{"node_id": "alice"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Equal(t, "alice", result.SelectedNodeID)
	assert.Equal(t, "alice", result.SelectedContactID)

	rec, env = doJSON(t, server, http.MethodGet, base, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Equal(t, "alice", result.SelectedNodeID)

	rec, env = doJSON(t, server, http.MethodDelete, base, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	result.SelectedNodeID, result.SelectedContactID = "", ""
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Empty(t, result.SelectedNodeID)
}

func TestRouter_SelectUnknownNode(t *testing.T) {
	server := newTestServer(t, &stubSource{})
	id := createSession(t, server)

	rec, env := doJSON(t, server, http.MethodPost, "/api/v1/sessions/"+id+"/selection",
		map[string]string{"node_id": "ghost"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "NOT_FOUND", env.Error.Type)
}

func TestRouter_PointerClick(t *testing.T) {
	server := newTestServer(t, &stubSource{})
	id := createSession(t, server)

	// The self node renders at the surface center under the identity
	// transform.
	rec, env := doJSON(t, server, http.MethodPost, "/api/v1/sessions/"+id+"/pointer/click",
		map[string]float64{"x": 480, "y": 300})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var result struct {
		SelectedNodeID string `json:"selected_node_id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Equal(t, "me", result.SelectedNodeID)
}

func TestRouter_SceneRevisionAdvancesAfterCommand(t *testing.T) {
	server := newTestServer(t, &stubSource{})
	id := createSession(t, server)
	scenePath := "/api/v1/sessions/" + id + "/scene"

	req := httptest.NewRequest(http.MethodGet, scenePath, nil)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)
	before := rec.Header().Get("X-Scene-Revision")

	_, _ = doJSON(t, server, http.MethodPost, "/api/v1/sessions/"+id+"/viewport/pan",
		map[string]float64{"dx": 5, "dy": 5})

	req = httptest.NewRequest(http.MethodGet, scenePath, nil)
	rec = httptest.NewRecorder()
	server.ServeHTTP(rec, req)
	assert.NotEqual(t, before, rec.Header().Get("X-Scene-Revision"))
}

func TestRouter_LoadGraph(t *testing.T) {
	server := newTestServer(t, &stubSource{})
	id := createSession(t, server)

	rec, _ := doJSON(t, server, http.MethodPost, "/api/v1/sessions/"+id+"/graph", testPayload())
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec, env := doJSON(t, server, http.MethodPost, "/api/v1/sessions/"+id+"/graph", "not-a-payload")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, env.Error)
}

func TestRouter_ReloadGraph(t *testing.T) {
	source := &stubSource{payload: testPayload()}
	server := newTestServer(t, source)
	id := createSession(t, server)

	rec, _ := doJSON(t, server, http.MethodPost, "/api/v1/sessions/"+id+"/reload", nil)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, 1, source.calls)
}

func TestRouter_DeleteSession(t *testing.T) {
	server := newTestServer(t, &stubSource{})
	id := createSession(t, server)

	rec, _ := doJSON(t, server, http.MethodDelete, "/api/v1/sessions/"+id, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, env := doJSON(t, server, http.MethodGet, fmt.Sprintf("/api/v1/sessions/%s/scene", id), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	require.NotNil(t, env.Error)
}
