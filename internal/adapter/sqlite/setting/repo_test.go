package setting_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ycsite/siteops/internal/adapter/sqlite/setting"
	"github.com/ycsite/siteops/internal/adapter/sqlite/testhelper"
	"github.com/ycsite/siteops/internal/domain"
)

func TestRepo_SetOverwrites(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := setting.New(testhelper.SetupTestDB(t).DB())

	_, err := repo.Get(ctx, domain.SettingTheme)
	require.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, repo.Set(ctx, domain.SettingTheme, "dark", time.Now()))
	require.NoError(t, repo.Set(ctx, domain.SettingTheme, "light", time.Now()))

	got, err := repo.Get(ctx, domain.SettingTheme)
	require.NoError(t, err)
	assert.Equal(t, "light", got.Value)

	all, err := repo.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestRepo_SeededDefaults(t *testing.T) {
	t.Parallel()
	repo := setting.New(testhelper.SetupSeededDB(t).DB())

	got, err := repo.Get(context.Background(), domain.SettingAIModel)
	require.NoError(t, err)
	assert.Equal(t, "phi3", got.Value)
}
