package pipeline

import (
	"context"
	"fmt"
	"time"

	"app-inventory/core/graph"
	"app-inventory/feature/export"
	"app-inventory/feature/inventory"
	"app-inventory/feature/metadata"

	"go.uber.org/zap"
)

// TokenSource issues the bearer token for the inventory API.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// InventorySource lists the tenant's managed applications.
type InventorySource interface {
	ListMobileApps(ctx context.Context, token string) ([]graph.MobileApp, error)
}

// Summary reports the outcome of every phase of a run.
type Summary struct {
	Ingest     inventory.IngestSummary `json:"ingest"`
	Enrichment *metadata.EnrichSummary `json:"enrichment,omitempty"`
	Export     *export.Result          `json:"export"`
	Duration   time.Duration           `json:"duration"`
}

// Pipeline runs authenticate, fetch, persist, enrich and export in order.
type Pipeline struct {
	tokens     TokenSource
	inventory  InventorySource
	ingester   *inventory.Ingester
	enricher   *metadata.Enricher
	exporter   *export.Exporter
	outputName string
	logger     *zap.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithEnricher enables the enrichment phase.
func WithEnricher(enricher *metadata.Enricher) Option {
	return func(p *Pipeline) {
		p.enricher = enricher
	}
}

// New creates a pipeline exporting to outputName.
func New(tokens TokenSource, source InventorySource, ingester *inventory.Ingester, exporter *export.Exporter, outputName string, logger *zap.Logger, opts ...Option) *Pipeline {
	p := &Pipeline{
		tokens:     tokens,
		inventory:  source,
		ingester:   ingester,
		exporter:   exporter,
		outputName: outputName,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run executes one full pass. Any phase error ends the run; rows persisted before the
// failure stay in the store.
func (p *Pipeline) Run(ctx context.Context) (*Summary, error) {
	start := time.Now()
	summary := &Summary{}

	p.logger.Info("Requesting access token")
	token, err := p.tokens.Token(ctx)
	if err != nil {
		return summary, fmt.Errorf("failed to authenticate: %w", err)
	}

	p.logger.Info("Fetching inventory")
	apps, err := p.inventory.ListMobileApps(ctx, token)
	if err != nil {
		return summary, fmt.Errorf("failed to fetch inventory: %w", err)
	}

	summary.Ingest, err = p.ingester.Ingest(ctx, apps)
	if err != nil {
		return summary, fmt.Errorf("failed to persist inventory: %w", err)
	}

	if p.enricher != nil {
		enrichment, err := p.enricher.EnrichAll(ctx)
		summary.Enrichment = &enrichment
		if err != nil {
			return summary, fmt.Errorf("failed to enrich apps: %w", err)
		}
	} else {
		p.logger.Debug("Metadata enrichment disabled")
	}

	summary.Export, err = p.exporter.Export(ctx, p.outputName)
	if err != nil {
		return summary, fmt.Errorf("failed to export apps: %w", err)
	}

	summary.Duration = time.Since(start)
	p.logger.Info("Run completed", zap.Duration("duration", summary.Duration))
	return summary, nil
}
