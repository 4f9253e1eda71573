package inventory

import (
	"context"
	"errors"
	"fmt"

	"app-inventory/core/database"
	"app-inventory/feature/inventory/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrAppNotFound is returned when an update matches no row.
var ErrAppNotFound = errors.New("app not found")

// Store persists Application Records keyed by platformAppKey.
// It is meant for a single exclusive writer process.
type Store struct {
	db *gorm.DB
}

// NewStore creates a new store on top of an open connection.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Migrate creates the 'app' table when missing and verifies its columns.
func (s *Store) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&models.App{}); err != nil {
		return fmt.Errorf("failed to migrate app table: %w", err)
	}

	missing, err := database.MissingColumns(s.db.WithContext(ctx), models.App{}.TableName(), models.Columns)
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		return fmt.Errorf("app table is missing columns %v", missing)
	}
	return nil
}

// FindByKey returns the rows whose platformAppKey equals key.
func (s *Store) FindByKey(ctx context.Context, key string) ([]models.App, error) {
	var apps []models.App
	if err := s.db.WithContext(ctx).Where("platform_app_key = ?", key).Find(&apps).Error; err != nil {
		return nil, fmt.Errorf("failed to find app %s: %w", key, err)
	}
	return apps, nil
}

// UpsertNew inserts the record only when no row has its key. A row already holding the
// record's inventory ID is left untouched as well. It reports whether a row was inserted.
func (s *Store) UpsertNew(ctx context.Context, app *models.App) (bool, error) {
	existing, err := s.FindByKey(ctx, app.PlatformAppKey)
	if err != nil {
		return false, err
	}
	if len(existing) > 0 {
		return false, nil
	}

	result := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(app)
	if result.Error != nil {
		return false, fmt.Errorf("failed to insert app %s: %w", app.PlatformAppKey, result.Error)
	}
	return result.RowsAffected > 0, nil
}

// UpdateMetadata overwrites every descriptive column of the row matched by key.
func (s *Store) UpdateMetadata(ctx context.Context, key string, meta models.Metadata) error {
	return s.updateColumns(ctx, key, meta.Columns())
}

// MarkEnrichmentFailed records reason as the title so the row is not enriched again.
func (s *Store) MarkEnrichmentFailed(ctx context.Context, key, reason string) error {
	return s.updateColumns(ctx, key, map[string]any{"title": reason})
}

func (s *Store) updateColumns(ctx context.Context, key string, columns map[string]any) error {
	result := s.db.WithContext(ctx).Model(&models.App{}).Where("platform_app_key = ?", key).Updates(columns)
	if result.Error != nil {
		return fmt.Errorf("failed to update app %s: %w", key, result.Error)
	}
	if result.RowsAffected > 0 {
		return nil
	}

	// MySQL counts changed rows only, so an update that rewrites identical values
	// affects nothing even though the row exists.
	existing, err := s.FindByKey(ctx, key)
	if err != nil {
		return err
	}
	if len(existing) == 0 {
		return fmt.Errorf("%w: %s", ErrAppNotFound, key)
	}
	return nil
}

// ListUnenriched returns the rows without a title, oldest first.
func (s *Store) ListUnenriched(ctx context.Context) ([]models.App, error) {
	var apps []models.App
	if err := s.db.WithContext(ctx).Where("title IS NULL").Order("id").Find(&apps).Error; err != nil {
		return nil, fmt.Errorf("failed to list unenriched apps: %w", err)
	}
	return apps, nil
}

// All returns every row in insertion order.
func (s *Store) All(ctx context.Context) ([]models.App, error) {
	apps := []models.App{}
	if err := s.db.WithContext(ctx).Order("id").Find(&apps).Error; err != nil {
		return nil, fmt.Errorf("failed to list apps: %w", err)
	}
	return apps, nil
}

// Count returns the number of rows.
func (s *Store) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.App{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count apps: %w", err)
	}
	return count, nil
}
