// Package pipeline is the embeddable face of the receipt pipeline: one
// call to ingest a receipt, a directory, or to validate the ledger
// tree, without assembling the internal components by hand.
package pipeline

import (
	"context"

	"hsaledger/internal/batch"
	"hsaledger/internal/config"
	"hsaledger/internal/container"
	"hsaledger/internal/extraction"
	"hsaledger/internal/ingest"
	"hsaledger/internal/validation"
)

// Pipeline bundles the wired application components behind a small API.
type Pipeline struct {
	c *container.Container
}

// New builds a Pipeline from configuration. The extraction client is
// the real one when the configuration carries an API key.
func New(ctx context.Context, cfg *config.Config) (*Pipeline, error) {
	c, err := container.NewContainer(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &Pipeline{c: c}, nil
}

// NewWithExtractor builds a Pipeline around a caller-supplied
// extraction service, for tests and offline embedding.
func NewWithExtractor(cfg *config.Config, extractor extraction.Extractor) (*Pipeline, error) {
	c, err := container.NewContainerWithExtractor(cfg, extractor)
	if err != nil {
		return nil, err
	}
	return &Pipeline{c: c}, nil
}

// ProcessReceipt ingests a single receipt file.
func (p *Pipeline) ProcessReceipt(ctx context.Context, path string, dryRun bool) (*ingest.Outcome, error) {
	orchestrator, err := p.c.GetOrchestrator()
	if err != nil {
		return nil, err
	}
	return orchestrator.Process(ctx, path, dryRun)
}

// ProcessDirectory ingests every supported receipt in a directory.
func (p *Pipeline) ProcessDirectory(ctx context.Context, dir string, opts batch.Options) (*batch.Summary, error) {
	runner, err := p.c.GetRunner()
	if err != nil {
		return nil, err
	}
	return runner.Run(ctx, dir, opts)
}

// ValidateTree reconciles every ledger partition against the archive.
func (p *Pipeline) ValidateTree() (*validation.TreeReport, error) {
	return p.c.GetValidator().ValidateTree()
}

// Close releases the extraction client, if one was built.
func (p *Pipeline) Close() error {
	return p.c.Close()
}
