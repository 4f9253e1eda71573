package metadata_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"app-inventory/core/database"
	"app-inventory/feature/inventory"
	"app-inventory/feature/inventory/models"
	"app-inventory/feature/metadata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockProvider struct {
	mock.Mock
}

func (m *mockProvider) Name() string {
	return "mock"
}

func (m *mockProvider) Lookup(ctx context.Context, appID string) (*models.Metadata, error) {
	args := m.Called(ctx, appID)
	meta, _ := args.Get(0).(*models.Metadata)
	return meta, args.Error(1)
}

func setupStore(t *testing.T, apps ...*models.App) *inventory.Store {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)

	store := inventory.NewStore(db)
	require.NoError(t, store.Migrate(context.Background()))
	for _, app := range apps {
		_, err := store.UpsertNew(context.Background(), app)
		require.NoError(t, err)
	}
	return store
}

func newApp(intuneID string, platform models.Platform, storeID string) *models.App {
	return &models.App{
		IntuneID:       intuneID,
		Platform:       platform,
		AppID:          storeID,
		PlatformAppKey: models.BuildKey(platform, storeID),
	}
}

func TestEnricher_EnrichAll(t *testing.T) {
	ctx := context.Background()

	t.Run("Persists provider metadata", func(t *testing.T) {
		store := setupStore(t, newApp("i-1", models.PlatformIOS, "284882215"))
		ios := new(mockProvider)
		ios.On("Lookup", mock.Anything, "284882215").Return(&models.Metadata{
			Title:        models.String("Facebook"),
			PrimaryGenre: models.String("Social Networking"),
			Released:     models.Int64(1549353600),
			Score:        models.Float64(4.2),
		}, nil).Once()

		enricher := metadata.NewEnricher(store, map[models.Platform]metadata.Provider{models.PlatformIOS: ios}, 0, zap.NewNop())
		summary, err := enricher.EnrichAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, metadata.EnrichSummary{Attempted: 1, Enriched: 1}, summary)

		rows, err := store.FindByKey(ctx, "ios-284882215")
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "Facebook", *rows[0].Title)
		assert.Equal(t, "Social Networking", *rows[0].PrimaryGenre)
		assert.Equal(t, int64(1549353600), *rows[0].Released)
		assert.Equal(t, 4.2, *rows[0].Score)
		ios.AssertExpectations(t)
	})

	t.Run("Failed lookup is recorded and not retried", func(t *testing.T) {
		store := setupStore(t,
			newApp("a-1", models.PlatformAndroid, "com.gone"),
			newApp("a-2", models.PlatformAndroid, "com.einnovation.temu"),
		)
		android := new(mockProvider)
		android.On("Lookup", mock.Anything, "com.gone").Return(nil, metadata.ErrNotFound).Once()
		android.On("Lookup", mock.Anything, "com.einnovation.temu").Return(&models.Metadata{
			Title: models.String("Temu"),
		}, nil).Once()

		enricher := metadata.NewEnricher(store, map[models.Platform]metadata.Provider{models.PlatformAndroid: android}, 0, zap.NewNop())
		summary, err := enricher.EnrichAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, metadata.EnrichSummary{Attempted: 2, Enriched: 1, Failed: 1}, summary)

		rows, err := store.FindByKey(ctx, "android-com.gone")
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, metadata.ErrNotFound.Error(), *rows[0].Title)

		summary, err = enricher.EnrichAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, metadata.EnrichSummary{}, summary)
		android.AssertNumberOfCalls(t, "Lookup", 2)
	})

	t.Run("Missing provider is a failure", func(t *testing.T) {
		store := setupStore(t, newApp("i-1", models.PlatformIOS, "1"))

		enricher := metadata.NewEnricher(store, nil, 0, zap.NewNop())
		summary, err := enricher.EnrichAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, summary.Failed)

		rows, err := store.FindByKey(ctx, "ios-1")
		require.NoError(t, err)
		assert.Equal(t, "no metadata provider for platform ios", *rows[0].Title)
	})

	t.Run("Lookup without title falls back to the app id", func(t *testing.T) {
		store := setupStore(t, newApp("i-1", models.PlatformIOS, "42"))
		ios := new(mockProvider)
		ios.On("Lookup", mock.Anything, "42").Return(&models.Metadata{}, nil)

		enricher := metadata.NewEnricher(store, map[models.Platform]metadata.Provider{models.PlatformIOS: ios}, 0, zap.NewNop())
		_, err := enricher.EnrichAll(ctx)
		require.NoError(t, err)

		pending, err := store.ListUnenriched(ctx)
		require.NoError(t, err)
		assert.Empty(t, pending)
	})

	t.Run("Lookups are spaced by the interval", func(t *testing.T) {
		store := setupStore(t,
			newApp("i-1", models.PlatformIOS, "1"),
			newApp("i-2", models.PlatformIOS, "2"),
			newApp("i-3", models.PlatformIOS, "3"),
		)
		ios := new(mockProvider)
		ios.On("Lookup", mock.Anything, mock.Anything).Return(&models.Metadata{Title: models.String("x")}, nil)

		interval := 50 * time.Millisecond
		enricher := metadata.NewEnricher(store, map[models.Platform]metadata.Provider{models.PlatformIOS: ios}, interval, zap.NewNop())

		start := time.Now()
		summary, err := enricher.EnrichAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, 3, summary.Enriched)
		assert.GreaterOrEqual(t, time.Since(start), 3*interval)
	})

	t.Run("Slow lookups do not shorten the pause", func(t *testing.T) {
		store := setupStore(t,
			newApp("i-1", models.PlatformIOS, "1"),
			newApp("i-2", models.PlatformIOS, "2"),
		)
		lookupTime := 40 * time.Millisecond
		interval := 50 * time.Millisecond

		var starts []time.Time
		ios := new(mockProvider)
		ios.On("Lookup", mock.Anything, mock.Anything).
			Run(func(mock.Arguments) {
				starts = append(starts, time.Now())
				time.Sleep(lookupTime)
			}).
			Return(&models.Metadata{Title: models.String("x")}, nil)

		enricher := metadata.NewEnricher(store, map[models.Platform]metadata.Provider{models.PlatformIOS: ios}, interval, zap.NewNop())
		_, err := enricher.EnrichAll(ctx)
		require.NoError(t, err)

		require.Len(t, starts, 2)
		assert.GreaterOrEqual(t, starts[1].Sub(starts[0]), lookupTime+interval)
	})

	t.Run("Cancellation stops the pass without recording failures", func(t *testing.T) {
		store := setupStore(t, newApp("i-1", models.PlatformIOS, "1"))
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		ios := new(mockProvider)
		enricher := metadata.NewEnricher(store, map[models.Platform]metadata.Provider{models.PlatformIOS: ios}, time.Second, zap.NewNop())
		_, err := enricher.EnrichAll(cancelled)
		require.Error(t, err)
		assert.True(t, errors.Is(err, context.Canceled))
		ios.AssertNotCalled(t, "Lookup", mock.Anything, mock.Anything)

		pending, err := store.ListUnenriched(ctx)
		require.NoError(t, err)
		assert.Len(t, pending, 1)
	})
}
