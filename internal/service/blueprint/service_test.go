package blueprint

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ycsite/siteops/internal/adapter/shell"
	"github.com/ycsite/siteops/internal/adapter/sqlite"
	blueprintrepo "github.com/ycsite/siteops/internal/adapter/sqlite/blueprint"
	"github.com/ycsite/siteops/internal/adapter/sqlite/testhelper"
	"github.com/ycsite/siteops/internal/domain"
)

type stubOpener struct {
	names  []string
	result shell.Result
}

func (o *stubOpener) OpenFolder(_ context.Context, name string) shell.Result {
	o.names = append(o.names, name)
	return o.result
}

func newTestService(t *testing.T, opener folderOpener) (*Service, *sqlite.Store) {
	t.Helper()
	store := testhelper.SetupTestDB(t)
	if opener == nil {
		opener = shell.Unavailable{}
	}
	svc := NewService(testhelper.Logger(), blueprintrepo.New(store.DB()), sqlite.NewTxManager(store.DB()), opener, "")
	return svc, store
}

func TestUpload_Versioning(t *testing.T) {
	t.Parallel()
	svc, store := newTestService(t, nil)
	ctx := context.Background()

	first, err := svc.Upload(ctx, UploadInput{Name: "Ground Floor", Content: []byte("rev-a")})
	require.NoError(t, err)
	assert.Equal(t, 1, first.Version)
	assert.Equal(t, "Drawings/Ground Floor/v1", first.Path)
	assert.Equal(t, int64(5), first.Size)
	assert.Equal(t, Checksum([]byte("rev-a")), first.Checksum)

	same, err := svc.Upload(ctx, UploadInput{Name: "Ground Floor", Content: []byte("rev-a")})
	require.NoError(t, err)
	assert.Equal(t, first.ID, same.ID)

	second, err := svc.Upload(ctx, UploadInput{Name: "Ground Floor", Content: []byte("rev-b")})
	require.NoError(t, err)
	assert.Equal(t, 2, second.Version)

	assert.Equal(t, 2, testhelper.Count(t, store, "blueprints"))
}

func TestUpload_Validation(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService(t, nil)

	_, err := svc.Upload(context.Background(), UploadInput{Name: "a/b"})
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Len(t, ve.Errors, 2)
}

func TestDownload_LoadsContent(t *testing.T) {
	t.Parallel()
	svc, store := newTestService(t, nil)
	ctx := context.Background()
	projectID := testhelper.SeedProject(t, store, 1000, 0)

	b, err := svc.Upload(ctx, UploadInput{Name: "Elevation", ProjectID: &projectID, Content: []byte("svg")})
	require.NoError(t, err)

	meta, err := svc.GetBlueprint(ctx, b.ID)
	require.NoError(t, err)
	assert.Empty(t, meta.Content)

	got, err := svc.Download(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("svg"), got.Content)

	list, err := svc.ListBlueprints(ctx, &projectID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestDuplicatesOf(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService(t, nil)
	ctx := context.Background()

	a, err := svc.Upload(ctx, UploadInput{Name: "Plan A", Content: []byte("same")})
	require.NoError(t, err)
	b, err := svc.Upload(ctx, UploadInput{Name: "Plan B", Content: []byte("same")})
	require.NoError(t, err)

	dups, err := svc.DuplicatesOf(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, dups, 1)
	assert.Equal(t, b.ID, dups[0].ID)
}

func TestDeleteBlueprint(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService(t, nil)
	ctx := context.Background()

	b, err := svc.Upload(ctx, UploadInput{Name: "Roof", Content: []byte("x")})
	require.NoError(t, err)
	require.NoError(t, svc.DeleteBlueprint(ctx, b.ID))

	_, err = svc.GetBlueprint(ctx, b.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestOpenDrawingsFolder(t *testing.T) {
	t.Parallel()
	opener := &stubOpener{result: shell.Result{OK: true, Path: "/tmp/Drawings"}}
	svc, _ := newTestService(t, opener)

	res := svc.OpenDrawingsFolder(context.Background())
	assert.True(t, res.OK)
	assert.Equal(t, []string{DefaultFolder}, opener.names)
}

func TestOpenDrawingsFolder_Unavailable(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService(t, nil)

	res := svc.OpenDrawingsFolder(context.Background())
	assert.False(t, res.OK)
	assert.NotEmpty(t, res.Error)
}
