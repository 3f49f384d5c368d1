package blueprint_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ycsite/siteops/internal/adapter/sqlite/blueprint"
	"github.com/ycsite/siteops/internal/adapter/sqlite/testhelper"
	"github.com/ycsite/siteops/internal/domain"
)

func rev(name string, version int, content string) *domain.Blueprint {
	return &domain.Blueprint{
		Name:       name,
		Version:    version,
		Size:       int64(len(content)),
		Checksum:   "sum-" + content,
		Content:    []byte(content),
		UploadedAt: time.Now(),
	}
}

func TestRepo_VersionsAndContent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := blueprint.New(testhelper.SetupTestDB(t).DB())

	_, err := repo.Create(ctx, rev("ground-floor.pdf", 1, "v1"))
	require.NoError(t, err)
	second, err := repo.Create(ctx, rev("ground-floor.pdf", 2, "v2"))
	require.NoError(t, err)
	assert.Nil(t, second.Content, "metadata reads never carry content")

	latest, err := repo.LatestByName(ctx, "ground-floor.pdf")
	require.NoError(t, err)
	assert.Equal(t, 2, latest.Version)

	content, err := repo.GetContent(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), content)

	found, err := repo.FindByChecksum(ctx, "sum-v1")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, 1, found[0].Version)

	_, err = repo.Create(ctx, rev("ground-floor.pdf", 2, "again"))
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func TestRepo_LatestByNameMissing(t *testing.T) {
	t.Parallel()
	repo := blueprint.New(testhelper.SetupTestDB(t).DB())

	_, err := repo.LatestByName(context.Background(), "nope.dwg")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
