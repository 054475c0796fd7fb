package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"feed-indexer/config"
	"feed-indexer/consumer"
	"feed-indexer/domain"
	"feed-indexer/driver"
	"feed-indexer/gateway"
	"feed-indexer/logger"
	"feed-indexer/port"
	"feed-indexer/usecase"
	appOtel "feed-indexer/utils/otel"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// App holds all components of the feed-indexer service.
type App struct {
	httpServer    *http.Server
	redisConsumer *consumer.Consumer
	otelShutdown  appOtel.ShutdownFunc
}

// Run initializes all components and starts the service.
// It blocks until ctx is cancelled, then performs graceful shutdown.
func Run(ctx context.Context) error {
	// ── OpenTelemetry ──
	otelCfg := appOtel.ConfigFromEnv()
	otelShutdown, err := appOtel.InitProvider(ctx, otelCfg)
	if err != nil {
		fmt.Printf("Failed to initialize OpenTelemetry: %v\n", err)
		otelCfg.Enabled = false
		otelShutdown = func(context.Context) error { return nil }
	}

	// ── Logger ──
	logger.InitWithOTel(otelCfg.Enabled)
	logger.Logger.Info("Starting feed-indexer",
		"service", otelCfg.ServiceName,
		"otel_enabled", otelCfg.Enabled,
	)

	// ── Load config ──
	appCfg, err := config.Load()
	if err != nil {
		logger.Logger.Error("Failed to load config", "err", err)
		return err
	}

	// ── Search backend (optional) ──
	// A missing backend host is a supported deployment: ingestion keeps
	// working, search and latest report unavailable/empty.
	var searchEngine port.SearchEngine
	backendState := domain.BackendUnconfigured

	if appCfg.SearchConfigured() {
		msClient, err := initMeilisearchClient(appCfg)
		if err != nil {
			logger.Logger.Error("Search backend configured but unusable, search disabled", "err", err)
			backendState = domain.BackendMisconfigured
		} else {
			searchDriver := driver.NewMeilisearchDriver(msClient, appCfg.Meilisearch.IndexName)
			searchEngine = gateway.NewSearchEngineGateway(searchDriver)

			if err := searchEngine.EnsureIndex(ctx); err != nil {
				logger.Logger.Error("Failed to ensure search index, search disabled", "err", err)
				backendState = domain.BackendMisconfigured
			} else {
				backendState = domain.BackendConfigured
			}
		}
	} else {
		logger.Logger.Info("No search backend configured, search disabled")
	}
	logger.Logger.Info("Search backend state", "state", backendState.String())

	// ── Feed pipeline ──
	feedDriver := driver.NewFeedDriver(appCfg.Ingest.FetchTimeout)
	feedFetcher := gateway.NewFeedFetchGateway(feedDriver)

	// ── Use cases (application layer) ──
	indexUsecase := usecase.NewIndexStoriesUsecase(searchEngine, backendState, logger.Logger)
	ingestUsecase := usecase.NewIngestFeedUsecase(feedFetcher, indexUsecase, logger.Logger)
	searchUsecase := usecase.NewSearchStoriesUsecase(searchEngine, backendState, logger.Logger)
	latestUsecase := usecase.NewLatestStoriesUsecase(searchEngine, backendState, logger.Logger)

	ingestor := &instrumentedIngestor{inner: ingestUsecase}
	searcher := &instrumentedSearcher{inner: searchUsecase}

	// ── Redis Streams Consumer ──
	var redisConsumer *consumer.Consumer
	consumerCfg := consumer.ConfigFromEnv()
	if consumerCfg.Enabled {
		eventHandler := consumer.NewIngestEventHandler(ingestor, logger.Logger)
		redisConsumer, err = consumer.NewConsumer(consumerCfg, eventHandler, logger.Logger)
		if err != nil {
			logger.Logger.Error("Failed to create Redis Streams consumer", "err", err)
		} else {
			if err := redisConsumer.Start(ctx); err != nil {
				logger.Logger.Error("Failed to start Redis Streams consumer", "err", err)
			} else {
				logger.Logger.Info("Redis Streams consumer started",
					"stream", consumerCfg.StreamKey,
					"group", consumerCfg.GroupName,
				)
			}
		}
	} else {
		logger.Logger.Info("Redis Streams consumer disabled")
	}

	// ── Servers ──
	app := &App{
		httpServer:    newHTTPServer(appCfg, ingestor, searcher, latestUsecase),
		redisConsumer: redisConsumer,
		otelShutdown:  otelShutdown,
	}

	go func() {
		logger.Logger.Info("http listen", "addr", appCfg.HTTP.Addr)
		if err := app.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Error("http", "err", err)
		}
	}()

	// ── Wait for shutdown signal ──
	<-ctx.Done()
	app.shutdown()
	return nil
}

// shutdown performs graceful shutdown of all components.
func (a *App) shutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Logger.Error("http shutdown error", "err", err)
	}
	if a.redisConsumer != nil {
		a.redisConsumer.Stop()
	}

	otelCtx, otelCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer otelCancel()
	if err := a.otelShutdown(otelCtx); err != nil {
		fmt.Printf("Failed to shutdown OpenTelemetry: %v\n", err)
	}
}

// instrumentedIngestor records ingestion metrics around the usecase.
type instrumentedIngestor struct {
	inner *usecase.IngestFeedUsecase
}

func (i *instrumentedIngestor) Execute(ctx context.Context, feedURL string) (*usecase.IngestResult, error) {
	start := time.Now()
	result, err := i.inner.Execute(ctx, feedURL)
	if err != nil {
		recordError(ctx, "ingest")
		return nil, err
	}
	recordIngest(ctx, len(result.Stories), result.Indexed, time.Since(start))
	return result, nil
}

// instrumentedSearcher records search latency around the usecase.
type instrumentedSearcher struct {
	inner *usecase.SearchStoriesUsecase
}

func (s *instrumentedSearcher) Execute(ctx context.Context, query string, offset, limit int64) (*usecase.SearchResult, error) {
	start := time.Now()
	result, err := s.inner.Execute(ctx, query, offset, limit)
	if err != nil {
		recordError(ctx, "search")
		return nil, err
	}
	if m := appOtel.Metrics; m != nil {
		m.SearchDuration.Record(ctx, time.Since(start).Seconds())
	}
	return result, nil
}

// recordIngest records metrics for one completed ingestion.
func recordIngest(ctx context.Context, stories int, indexed bool, duration time.Duration) {
	m := appOtel.Metrics
	if m == nil {
		return
	}
	m.FeedsIngestedTotal.Add(ctx, 1)
	if indexed && stories > 0 {
		m.StoriesIndexedTotal.Add(ctx, int64(stories))
	}
	m.IngestDuration.Record(ctx, duration.Seconds())
}

// recordError records an error metric.
func recordError(ctx context.Context, operation string) {
	m := appOtel.Metrics
	if m == nil {
		return
	}
	m.ErrorsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", operation)))
}
