package inventory_test

import (
	"context"
	"testing"

	"app-inventory/core/database"
	"app-inventory/feature/inventory"
	"app-inventory/feature/inventory/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func setupStore(t *testing.T) *inventory.Store {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)

	store := inventory.NewStore(db)
	require.NoError(t, store.Migrate(context.Background()))
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

func TestStore_Migrate(t *testing.T) {
	store := setupStore(t)

	// Create-if-missing: a second migration on the same schema is a no-op
	assert.NoError(t, store.Migrate(context.Background()))
}

func TestStore_UpsertNew(t *testing.T) {
	ctx := context.Background()
	store := setupStore(t)

	inserted, err := store.UpsertNew(ctx, newApp("i-1", models.PlatformIOS, "284882215"))
	require.NoError(t, err)
	assert.True(t, inserted)

	t.Run("Same key is not inserted twice", func(t *testing.T) {
		inserted, err := store.UpsertNew(ctx, newApp("i-2", models.PlatformIOS, "284882215"))
		require.NoError(t, err)
		assert.False(t, inserted)
	})

	t.Run("Same inventory id is not inserted twice", func(t *testing.T) {
		inserted, err := store.UpsertNew(ctx, newApp("i-1", models.PlatformIOS, "999"))
		require.NoError(t, err)
		assert.False(t, inserted)
	})

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestStore_FindByKey(t *testing.T) {
	ctx := context.Background()
	store := setupStore(t)

	_, err := store.UpsertNew(ctx, newApp("a-1", models.PlatformAndroid, "com.einnovation.temu"))
	require.NoError(t, err)

	apps, err := store.FindByKey(ctx, "android-com.einnovation.temu")
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, "a-1", apps[0].IntuneID)
	assert.Nil(t, apps[0].Title)

	apps, err = store.FindByKey(ctx, "ios-com.einnovation.temu")
	require.NoError(t, err)
	assert.Empty(t, apps)
}

func TestStore_UpdateMetadata(t *testing.T) {
	ctx := context.Background()
	store := setupStore(t)

	_, err := store.UpsertNew(ctx, newApp("i-1", models.PlatformIOS, "1"))
	require.NoError(t, err)

	meta := models.Metadata{
		Title:        models.String("Facebook"),
		PrimaryGenre: models.String("Social Networking"),
		Released:     models.Int64(1328688000),
		Score:        models.Float64(4.2),
		Ratings:      models.Int64(120),
		Histogram:    datatypes.JSON(`{"1":10,"5":100}`),
	}
	require.NoError(t, store.UpdateMetadata(ctx, "ios-1", meta))

	apps, err := store.FindByKey(ctx, "ios-1")
	require.NoError(t, err)
	require.Len(t, apps, 1)
	app := apps[0]
	assert.Equal(t, "Facebook", *app.Title)
	assert.Equal(t, "Social Networking", *app.PrimaryGenre)
	assert.Equal(t, int64(1328688000), *app.Released)
	assert.Equal(t, 4.2, *app.Score)
	assert.Equal(t, int64(120), *app.Ratings)
	assert.Nil(t, app.Description)
	assert.JSONEq(t, `{"1":10,"5":100}`, string(app.Histogram))

	t.Run("Identical values again", func(t *testing.T) {
		assert.NoError(t, store.UpdateMetadata(ctx, "ios-1", meta))
	})

	t.Run("Unknown key", func(t *testing.T) {
		err := store.UpdateMetadata(ctx, "ios-404", meta)
		assert.ErrorIs(t, err, inventory.ErrAppNotFound)
	})
}

func TestStore_ListUnenriched(t *testing.T) {
	ctx := context.Background()
	store := setupStore(t)

	for _, app := range []*models.App{
		newApp("i-1", models.PlatformIOS, "1"),
		newApp("i-2", models.PlatformIOS, "2"),
		newApp("a-3", models.PlatformAndroid, "com.three"),
	} {
		_, err := store.UpsertNew(ctx, app)
		require.NoError(t, err)
	}

	require.NoError(t, store.UpdateMetadata(ctx, "ios-1", models.Metadata{Title: models.String("One")}))
	require.NoError(t, store.MarkEnrichmentFailed(ctx, "ios-2", "HTTP 404"))

	pending, err := store.ListUnenriched(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "android-com.three", pending[0].PlatformAppKey)

	all, err := store.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "HTTP 404", *all[1].Title)
}

func TestStore_AllEmpty(t *testing.T) {
	apps, err := setupStore(t).All(context.Background())
	assert.NoError(t, err)
	assert.NotNil(t, apps)
	assert.Empty(t, apps)
}
