package weather_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ycsite/siteops/internal/adapter/sqlite/testhelper"
	"github.com/ycsite/siteops/internal/adapter/sqlite/weather"
	"github.com/ycsite/siteops/internal/domain"
)

func TestRepo_UpsertReplacesAndEvicts(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := testhelper.SetupTestDB(t)
	repo := weather.New(store.DB())

	old := time.Now().Add(-48 * time.Hour).Truncate(time.Millisecond)
	temp := 28.0
	require.NoError(t, repo.Upsert(ctx, &domain.Weather{
		Location: "Mumbai", Temperature: &temp, Condition: "Partly Cloudy", Timestamp: old,
	}))

	got, err := repo.Get(ctx, "Mumbai")
	require.NoError(t, err)
	assert.Equal(t, "Partly Cloudy", got.Condition)
	assert.True(t, got.Timestamp.Equal(old))
	assert.Nil(t, got.Humidity)

	require.NoError(t, repo.Upsert(ctx, &domain.Weather{
		Location: "Pune", Condition: "Clear Sky", Timestamp: time.Now(),
	}))

	n, err := repo.DeleteOlderThan(ctx, time.Now().Add(-24*time.Hour))
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	_, err = repo.Get(ctx, "Mumbai")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 1, testhelper.Count(t, store, "weather_cache"))
}
