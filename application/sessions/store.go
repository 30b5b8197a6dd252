// Package sessions keeps one visualization View per live dashboard
// session, in memory only. A session holds no persisted state: a
// reload rebuilds everything from a fresh upstream payload.
package sessions

import (
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"netviz/domain/config"
	"netviz/domain/graph"
	"netviz/engine"
	pkgerrors "netviz/pkg/errors"
	"netviz/pkg/observability"
)

// Store maps session ids to their views
type Store struct {
	mu       sync.RWMutex
	views    map[string]*engine.View
	onDelete []func(id string)

	tuning  *config.Tuning
	strict  bool
	logger  *zap.Logger
	metrics *observability.Collector
}

// NewStore creates an empty session store
func NewStore(tuning *config.Tuning, strict bool, logger *zap.Logger, metrics *observability.Collector) *Store {
	return &Store{
		views:   make(map[string]*engine.View),
		tuning:  tuning,
		strict:  strict,
		logger:  logger,
		metrics: metrics,
	}
}

// Create allocates a new session, optionally loading an initial
// payload, and returns its id.
func (s *Store) Create(payload *graph.Payload) (string, *engine.View, error) {
	var opts []engine.Option
	if s.strict {
		opts = append(opts, engine.WithStrictValidation())
	}
	view := engine.NewView(s.tuning, s.logger, opts...)

	if payload != nil {
		if err := view.Load(payload); err != nil {
			return "", nil, err
		}
		s.recordLayout(view)
	}

	id := uuid.New().String()

	s.mu.Lock()
	s.views[id] = view
	s.mu.Unlock()

	if s.metrics != nil {
		s.metrics.ActiveSessions.Inc()
	}
	s.logger.Info("session created", zap.String("sessionID", id))

	return id, view, nil
}

// Get returns the view for a session id
func (s *Store) Get(id string) (*engine.View, error) {
	s.mu.RLock()
	view, ok := s.views[id]
	s.mu.RUnlock()

	if !ok {
		return nil, pkgerrors.NewNotFoundError("session")
	}
	return view, nil
}

// Load replaces a session's graph with a fresh payload
func (s *Store) Load(id string, payload *graph.Payload) error {
	view, err := s.Get(id)
	if err != nil {
		return err
	}
	if err := view.Load(payload); err != nil {
		return err
	}
	s.recordLayout(view)
	return nil
}

// OnDelete registers a callback run after a session is removed, so
// collaborators holding per-session state can drop it too.
func (s *Store) OnDelete(fn func(id string)) {
	s.mu.Lock()
	s.onDelete = append(s.onDelete, fn)
	s.mu.Unlock()
}

// Delete removes a session and all its state
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	_, ok := s.views[id]
	if ok {
		delete(s.views, id)
	}
	callbacks := s.onDelete
	s.mu.Unlock()

	if !ok {
		return pkgerrors.NewNotFoundError("session")
	}
	for _, fn := range callbacks {
		fn(id)
	}
	if s.metrics != nil {
		s.metrics.ActiveSessions.Dec()
	}
	s.logger.Info("session deleted", zap.String("sessionID", id))
	return nil
}

// Count returns the number of live sessions
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.views)
}

func (s *Store) recordLayout(view *engine.View) {
	if s.metrics == nil {
		return
	}
	s.metrics.LayoutsComputed.Inc()
	s.metrics.LayoutDuration.Observe(view.LastLayoutDuration().Seconds())
}
