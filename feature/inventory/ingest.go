package inventory

import (
	"context"
	"errors"

	"app-inventory/core/graph"

	"go.uber.org/zap"
)

// IngestSummary counts the outcome of one ingestion pass.
type IngestSummary struct {
	Fetched  int `json:"fetched"`
	Inserted int `json:"inserted"`
	Existing int `json:"existing"`
	Skipped  int `json:"skipped"`
}

// Ingester resolves inventory records and stores the new ones.
type Ingester struct {
	store  *Store
	logger *zap.Logger
}

// NewIngester creates a new ingester.
func NewIngester(store *Store, logger *zap.Logger) *Ingester {
	return &Ingester{store: store, logger: logger}
}

// Ingest processes records in order. Records that cannot be resolved are logged and
// skipped; a database error aborts the pass.
func (i *Ingester) Ingest(ctx context.Context, records []graph.MobileApp) (IngestSummary, error) {
	summary := IngestSummary{Fetched: len(records)}

	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		app, err := Resolve(rec)
		if err != nil {
			summary.Skipped++
			log := i.logger.Warn
			if errors.Is(err, ErrUnsupportedPlatform) {
				log = i.logger.Debug
			}
			log("Skipping inventory record",
				zap.String("intune_id", rec.ID),
				zap.String("name", rec.DisplayName),
				zap.Error(err),
			)
			continue
		}

		inserted, err := i.store.UpsertNew(ctx, app)
		if err != nil {
			return summary, err
		}
		if inserted {
			summary.Inserted++
			i.logger.Debug("Stored app", zap.String("key", app.PlatformAppKey))
		} else {
			summary.Existing++
		}
	}

	i.logger.Info("Inventory ingested",
		zap.Int("fetched", summary.Fetched),
		zap.Int("inserted", summary.Inserted),
		zap.Int("existing", summary.Existing),
		zap.Int("skipped", summary.Skipped),
	)
	return summary, nil
}
