// Package container wires the application's dependencies together.
// It centralizes the creation of every component so the command layer
// only decides what to run, never how to build it.
package container

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"hsaledger/internal/archive"
	"hsaledger/internal/batch"
	"hsaledger/internal/categorizer"
	"hsaledger/internal/config"
	"hsaledger/internal/extraction"
	"hsaledger/internal/ingest"
	"hsaledger/internal/ledger"
	"hsaledger/internal/logging"
	"hsaledger/internal/models"
	"hsaledger/internal/rasterize"
	"hsaledger/internal/report"
	"hsaledger/internal/store"
	"hsaledger/internal/validation"
)

// Container holds all application dependencies and provides methods to
// access them. Fields are private; everything is reached through
// getters so nothing can be rewired after initialization.
//
// The ledger, validator and report components are always available.
// The ingestion side (orchestrator, batch runner) additionally needs an
// extraction service, so its getters return an error when no API key
// was configured and no extractor was injected.
type Container struct {
	logger      logging.Logger
	config      *config.Config
	store       *store.CategoryStore
	categorizer *categorizer.Categorizer
	ledger      *ledger.Store
	archive     *archive.Store
	detector    *ledger.Detector
	validator   *validation.Validator
	reporter    *report.Generator

	extractor    extraction.Extractor
	closeFn      func() error
	orchestrator *ingest.Orchestrator
	runner       *batch.Runner
}

// NewContainer creates and wires all application dependencies. When the
// configuration carries a Gemini API key the real extraction client is
// built; otherwise the ingestion side stays unavailable until an
// extractor is injected with NewContainerWithExtractor.
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	c, err := newBase(cfg)
	if err != nil {
		return nil, err
	}

	if cfg.AI.APIKey != "" {
		gemini, err := extraction.NewGeminiExtractor(ctx, cfg.AI.APIKey, cfg.AI.Model, c.categoryNames(), c.logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create extraction client: %w", err)
		}
		c.extractor = gemini
		c.closeFn = gemini.Close
		c.wireIngestion()
	} else {
		c.logger.Info("No GEMINI_API_KEY configured, receipt extraction unavailable")
	}

	return c, nil
}

// NewContainerWithExtractor wires the container around a caller-supplied
// extraction service. Tests and offline tooling use this.
func NewContainerWithExtractor(cfg *config.Config, extractor extraction.Extractor) (*Container, error) {
	c, err := newBase(cfg)
	if err != nil {
		return nil, err
	}
	c.extractor = extractor
	c.wireIngestion()
	return c, nil
}

func newBase(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	logger := logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)

	categoryStore := store.NewCategoryStore(cfg.Categories.File)
	store.SetLogger(logger)
	cat := categorizer.NewCategorizer(categoryStore, logger)

	ledgerStore := ledger.NewStore(cfg.Data.Dir, logger)
	archiveStore := archive.NewStore(cfg.Receipts.Dir, logger)
	detector := ledger.NewDetector(
		ledgerStore,
		decimal.NewFromFloat(cfg.Dedup.Tolerance),
		cfg.Dedup.MatchProvider,
		logger,
	)

	return &Container{
		logger:      logger,
		config:      cfg,
		store:       categoryStore,
		categorizer: cat,
		ledger:      ledgerStore,
		archive:     archiveStore,
		detector:    detector,
		validator:   validation.NewValidator(ledgerStore, archiveStore, logger),
		reporter:    report.NewGenerator(ledgerStore, logger),
	}, nil
}

func (c *Container) wireIngestion() {
	c.orchestrator = ingest.NewOrchestrator(
		c.extractor,
		rasterize.NewPopplerRenderer(),
		c.ledger,
		c.archive,
		c.detector,
		c.categorizer,
		c.logger,
	)
	c.runner = batch.NewRunner(c.orchestrator, c.logger)
}

// categoryNames lists the configured category names for the extraction
// prompt, with the fallback category always present.
func (c *Container) categoryNames() []string {
	configs, err := c.store.LoadCategories()
	if err != nil || len(configs) == 0 {
		return models.CategoryNames()
	}
	names := make([]string, 0, len(configs)+1)
	seen := make(map[string]bool, len(configs)+1)
	for _, cc := range configs {
		if !seen[cc.Name] {
			names = append(names, cc.Name)
			seen[cc.Name] = true
		}
	}
	if !seen[string(models.CategoryOther)] {
		names = append(names, string(models.CategoryOther))
	}
	return names
}

// Close releases the extraction client's connection, if one was built.
func (c *Container) Close() error {
	if c.closeFn != nil {
		return c.closeFn()
	}
	return nil
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetStore returns the category store.
func (c *Container) GetStore() *store.CategoryStore {
	return c.store
}

// GetCategorizer returns the keyword categorizer.
func (c *Container) GetCategorizer() *categorizer.Categorizer {
	return c.categorizer
}

// GetLedger returns the ledger store.
func (c *Container) GetLedger() *ledger.Store {
	return c.ledger
}

// GetArchive returns the receipt archive store.
func (c *Container) GetArchive() *archive.Store {
	return c.archive
}

// GetDetector returns the duplicate detector.
func (c *Container) GetDetector() *ledger.Detector {
	return c.detector
}

// GetValidator returns the ledger validator.
func (c *Container) GetValidator() *validation.Validator {
	return c.validator
}

// GetReporter returns the report generator.
func (c *Container) GetReporter() *report.Generator {
	return c.reporter
}

// GetOrchestrator returns the ingestion orchestrator, or an error when
// no extraction service is available.
func (c *Container) GetOrchestrator() (*ingest.Orchestrator, error) {
	if c.orchestrator == nil {
		return nil, fmt.Errorf("receipt extraction unavailable: set GEMINI_API_KEY")
	}
	return c.orchestrator, nil
}

// GetRunner returns the batch runner, or an error when no extraction
// service is available.
func (c *Container) GetRunner() (*batch.Runner, error) {
	if c.runner == nil {
		return nil, fmt.Errorf("receipt extraction unavailable: set GEMINI_API_KEY")
	}
	return c.runner, nil
}
