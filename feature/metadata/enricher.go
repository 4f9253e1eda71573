package metadata

import (
	"context"
	"fmt"
	"time"

	"app-inventory/feature/inventory/models"

	"go.uber.org/zap"
)

// Repository is the persistence the enricher reads from and writes to.
type Repository interface {
	ListUnenriched(ctx context.Context) ([]models.App, error)
	UpdateMetadata(ctx context.Context, key string, meta models.Metadata) error
	MarkEnrichmentFailed(ctx context.Context, key, reason string) error
}

// EnrichSummary counts the outcome of one enrichment pass.
type EnrichSummary struct {
	Attempted int `json:"attempted"`
	Enriched  int `json:"enriched"`
	Failed    int `json:"failed"`
}

// Enricher fills store metadata for records without a title, one lookup at a time.
type Enricher struct {
	repo      Repository
	providers map[models.Platform]Provider
	interval  time.Duration
	logger    *zap.Logger
}

// NewEnricher creates an enricher that pauses for interval after every lookup.
// An interval of zero disables the pause.
func NewEnricher(repo Repository, providers map[models.Platform]Provider, interval time.Duration, logger *zap.Logger) *Enricher {
	return &Enricher{
		repo:      repo,
		providers: providers,
		interval:  interval,
		logger:    logger,
	}
}

// EnrichAll enriches every record lacking a title. A failed lookup stores the error
// text as the record's title, so the record is not looked up again on later runs,
// and the pass continues. Repository errors and cancellation abort the pass.
func (e *Enricher) EnrichAll(ctx context.Context) (EnrichSummary, error) {
	var summary EnrichSummary

	pending, err := e.repo.ListUnenriched(ctx)
	if err != nil {
		return summary, err
	}
	e.logger.Info("Enriching apps", zap.Int("pending", len(pending)))

	for i := range pending {
		app := &pending[i]

		if err := ctx.Err(); err != nil {
			return summary, fmt.Errorf("enrichment interrupted: %w", err)
		}

		summary.Attempted++
		log := e.logger.With(
			zap.String("key", app.PlatformAppKey),
			zap.Int("index", i+1),
			zap.Int("total", len(pending)),
		)

		ok, err := e.enrichOne(ctx, app)
		if err != nil {
			return summary, err
		}
		if ok {
			summary.Enriched++
			log.Info("App enriched")
		} else {
			summary.Failed++
		}

		if err := pause(ctx, e.interval); err != nil {
			return summary, fmt.Errorf("enrichment interrupted: %w", err)
		}
	}

	return summary, nil
}

// pause blocks for d once the previous lookup has finished, so a pass over n
// records takes at least n*d regardless of how long each lookup took.
func pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// enrichOne looks up one record and persists the result. It returns false when the
// lookup failed and the failure was recorded instead.
func (e *Enricher) enrichOne(ctx context.Context, app *models.App) (bool, error) {
	provider, ok := e.providers[app.Platform]
	if !ok {
		return false, e.fail(ctx, app, fmt.Errorf("no metadata provider for platform %s", app.Platform))
	}

	meta, err := provider.Lookup(ctx, app.AppID)
	if err != nil {
		if ctx.Err() != nil {
			return false, fmt.Errorf("enrichment interrupted: %w", ctx.Err())
		}
		return false, e.fail(ctx, app, err)
	}

	// A successful lookup must leave a title behind, otherwise the record would be retried forever
	if meta.Title == nil {
		meta.Title = app.DisplayName
	}
	if meta.Title == nil {
		meta.Title = models.String(app.AppID)
	}

	if err := e.repo.UpdateMetadata(ctx, app.PlatformAppKey, *meta); err != nil {
		return false, err
	}
	return true, nil
}

func (e *Enricher) fail(ctx context.Context, app *models.App, cause error) error {
	e.logger.Warn("Enrichment failed",
		zap.String("key", app.PlatformAppKey),
		zap.Error(cause),
	)
	return e.repo.MarkEnrichmentFailed(ctx, app.PlatformAppKey, cause.Error())
}

// NewProviders returns the store provider for each supported platform.
func NewProviders(cfg Config) map[models.Platform]Provider {
	return map[models.Platform]Provider{
		models.PlatformIOS:     NewAppStoreProvider(cfg, nil),
		models.PlatformAndroid: NewPlayStoreProvider(cfg, nil),
	}
}
