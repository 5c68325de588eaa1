package container

import (
	"fmt"
	"net/http"

	"go-image-analyzer/internal/analyzer"
	"go-image-analyzer/internal/config"
	"go-image-analyzer/internal/orchestrator"
	"go-image-analyzer/internal/repository"
	"go-image-analyzer/internal/storage"
	"go-image-analyzer/internal/store"
	"go-image-analyzer/internal/transport"
	"go-image-analyzer/internal/watcher"
)

// Container holds all application dependencies
type Container struct {
	config  *config.Config
	blobs   storage.BlobSource
	reports repository.ReportRepository
	engine  *orchestrator.Engine
	pool    *orchestrator.JobPool
	watcher *watcher.Watcher
	handler http.Handler
}

// NewContainer builds the dependency graph from the configuration.
func NewContainer(cfg *config.Config) (*Container, error) {
	var blobs storage.BlobSource
	if cfg.StorageAccountName != "" {
		azure, err := storage.NewAzureBlobSource(cfg.StorageAccountName, cfg.StorageAccountKey)
		if err != nil {
			return nil, fmt.Errorf("failed to init blob source: %w", err)
		}
		blobs = azure
	} else {
		blobs = storage.NewMemoryBlobSource()
	}

	results, err := store.NewSQLiteStore(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to init result store: %w", err)
	}
	reports := repository.NewReportRepository(results)

	engine := orchestrator.NewEngine(
		analyzer.NewColorAnalyzer(blobs),
		analyzer.NewObjectAnalyzer(blobs),
		analyzer.NewTextAnalyzer(),
		analyzer.NewMetadataAnalyzer(blobs),
		reports,
		cfg.AnalyzerTimeout,
	)
	pool := orchestrator.NewJobPool(engine, cfg.MaxConcurrentJobs)

	return &Container{
		config:  cfg,
		blobs:   blobs,
		reports: reports,
		engine:  engine,
		pool:    pool,
		watcher: watcher.New(blobs, pool, cfg.WatchContainer, cfg.PollInterval),
		handler: transport.NewHandler(reports, cfg),
	}, nil
}

// Handler returns the HTTP handler
func (c *Container) Handler() http.Handler {
	return c.handler
}

// Pool returns the job pool
func (c *Container) Pool() *orchestrator.JobPool {
	return c.pool
}

// Watcher returns the blob watcher
func (c *Container) Watcher() *watcher.Watcher {
	return c.watcher
}

// Config returns the configuration
func (c *Container) Config() *config.Config {
	return c.config
}
