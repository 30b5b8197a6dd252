package di

import (
	"time"

	"go.uber.org/zap"

	"netviz/application/commands"
	commandbus "netviz/application/commands/bus"
	commandhandlers "netviz/application/commands/handlers"
	"netviz/application/ports"
	"netviz/application/queries"
	querybus "netviz/application/queries/bus"
	queryhandlers "netviz/application/queries/handlers"
	"netviz/application/sessions"
	domainconfig "netviz/domain/config"
	"netviz/infrastructure/config"
	"netviz/infrastructure/upstream"
	"netviz/pkg/observability"
)

// Container holds all application dependencies
type Container struct {
	Config     *config.Config
	Tuning     *domainconfig.Tuning
	Logger     *zap.Logger
	Metrics    *observability.Collector
	Source     ports.GraphSource
	Sessions   *sessions.Store
	CommandBus *commandbus.CommandBus
	QueryBus   *querybus.QueryBus
}

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// ProvideTuning loads the engine tuning with optional file overrides
func ProvideTuning(cfg *config.Config) (*domainconfig.Tuning, error) {
	return config.LoadTuning(cfg.TuningFile)
}

// ProvideMetrics creates the Prometheus collector
func ProvideMetrics() *observability.Collector {
	return observability.NewCollector("netviz")
}

// ProvideGraphSource creates the upstream graph client
func ProvideGraphSource(cfg *config.Config, logger *zap.Logger) ports.GraphSource {
	return upstream.NewClient(
		cfg.UpstreamBaseURL,
		time.Duration(cfg.UpstreamTimeout)*time.Millisecond,
		logger,
	)
}

// ProvideSessionStore creates the in-memory session store.
// Development builds validate graph invariants strictly; production
// degrades gracefully instead of failing a load.
func ProvideSessionStore(
	cfg *config.Config,
	tuning *domainconfig.Tuning,
	logger *zap.Logger,
	metrics *observability.Collector,
) *sessions.Store {
	return sessions.NewStore(tuning, cfg.IsDevelopment(), logger, metrics)
}

// ProvideCommandBus wires every command handler onto the bus
func ProvideCommandBus(
	store *sessions.Store,
	source ports.GraphSource,
	logger *zap.Logger,
) (*commandbus.CommandBus, error) {
	b := commandbus.NewCommandBus()

	loadHandler := commandhandlers.NewLoadGraphHandler(store, logger)
	reloadHandler := commandhandlers.NewReloadGraphHandler(store, source, logger)
	viewportHandler := commandhandlers.NewViewportHandler(store, logger)
	selectionHandler := commandhandlers.NewSelectionHandler(store, logger)

	logging := commandbus.LoggingMiddleware(logger)

	registrations := []struct {
		cmd     commandbus.Command
		handler commandbus.CommandHandler
	}{
		{commands.LoadGraphCommand{}, loadHandler},
		{commands.ReloadGraphCommand{}, reloadHandler},
		{commands.PanViewportCommand{}, viewportHandler},
		{commands.ZoomAtPointerCommand{}, viewportHandler},
		{commands.ZoomStepCommand{}, viewportHandler},
		{commands.ResetViewportCommand{}, viewportHandler},
		{commands.ClickCanvasCommand{}, selectionHandler},
		{commands.SelectNodeCommand{}, selectionHandler},
		{commands.ClearSelectionCommand{}, selectionHandler},
	}

	for _, r := range registrations {
		if err := b.Register(r.cmd, logging(r.handler)); err != nil {
			return nil, err
		}
	}

	return b, nil
}

// ProvideQueryBus wires every query handler onto the bus
func ProvideQueryBus(
	store *sessions.Store,
	tuning *domainconfig.Tuning,
	logger *zap.Logger,
	metrics *observability.Collector,
) (*querybus.QueryBus, error) {
	b := querybus.NewQueryBus()

	registrations := []struct {
		query   querybus.Query
		handler querybus.QueryHandler
	}{
		{queries.GetSceneQuery{}, queryhandlers.NewGetSceneHandler(store, logger, metrics)},
		{queries.GetGraphDataQuery{}, queryhandlers.NewGetGraphDataHandler(store, tuning, logger)},
		{queries.GetViewportQuery{}, queryhandlers.NewGetViewportHandler(store)},
		{queries.GetSelectionQuery{}, queryhandlers.NewGetSelectionHandler(store)},
	}

	for _, r := range registrations {
		if err := b.Register(r.query, r.handler); err != nil {
			return nil, err
		}
	}

	return b, nil
}
