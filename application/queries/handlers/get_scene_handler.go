package handlers

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"netviz/application/queries"
	"netviz/application/queries/bus"
	"netviz/application/sessions"
	"netviz/pkg/observability"
)

// GetSceneHandler renders the current scene of a session. Renders are
// cached per session keyed on the view's state revision: re-reads
// between interactions are served without re-rendering, and any
// command invalidates the entry simply by bumping the revision.
type GetSceneHandler struct {
	store   *sessions.Store
	logger  *zap.Logger
	metrics *observability.Collector

	mu    sync.Mutex
	cache map[string]cachedScene
}

type cachedScene struct {
	revision uint64
	doc      []byte
}

// NewGetSceneHandler creates the handler and hooks cache eviction into
// session deletion, so a removed session frees its rendered document.
func NewGetSceneHandler(store *sessions.Store, logger *zap.Logger, metrics *observability.Collector) *GetSceneHandler {
	h := &GetSceneHandler{
		store:   store,
		logger:  logger,
		metrics: metrics,
		cache:   make(map[string]cachedScene),
	}
	store.OnDelete(h.Evict)
	return h
}

// Evict drops the cached scene for a session
func (h *GetSceneHandler) Evict(sessionID string) {
	h.mu.Lock()
	delete(h.cache, sessionID)
	h.mu.Unlock()
}

// Handle implements bus.QueryHandler
func (h *GetSceneHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	q, ok := query.(queries.GetSceneQuery)
	if !ok {
		return nil, fmt.Errorf("unexpected query type %T", query)
	}

	view, err := h.store.Get(q.SessionID)
	if err != nil {
		return nil, err
	}

	revision := view.Revision()

	h.mu.Lock()
	entry, hit := h.cache[q.SessionID]
	h.mu.Unlock()

	if hit && entry.revision == revision {
		if h.metrics != nil {
			h.metrics.SceneCacheHits.Inc()
		}
		return &queries.SceneResult{SVG: entry.doc, Revision: revision}, nil
	}

	doc, err := view.Scene()
	if err != nil {
		return nil, err
	}

	h.mu.Lock()
	h.cache[q.SessionID] = cachedScene{revision: revision, doc: doc}
	h.mu.Unlock()

	if h.metrics != nil {
		h.metrics.ScenesRendered.Inc()
	}

	return &queries.SceneResult{SVG: doc, Revision: revision}, nil
}
