package project_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ycsite/siteops/internal/adapter/sqlite/project"
	"github.com/ycsite/siteops/internal/adapter/sqlite/testhelper"
	"github.com/ycsite/siteops/internal/domain"
)

func TestRepo_AddSpent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := testhelper.SetupTestDB(t)
	repo := project.New(store.DB())

	id := testhelper.SeedProject(t, store, 10_000, 1_000)

	require.NoError(t, repo.AddSpent(ctx, id, 2_500))
	p, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 3_500.0, p.Spent)

	require.NoError(t, repo.AddSpent(ctx, id, -10_000))
	p, err = repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 0.0, p.Spent, "spent is floored at zero")
}

func TestRepo_AddSpent_UnknownProject(t *testing.T) {
	t.Parallel()
	store := testhelper.SetupTestDB(t)

	err := project.New(store.DB()).AddSpent(context.Background(), 404, 10)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRepo_CreateStartsWithZeroSpent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := testhelper.SetupTestDB(t)
	repo := project.New(store.DB())

	p, err := repo.Create(ctx, &domain.Project{
		Name:      "Tower B",
		Status:    domain.ProjectStatusPlanned,
		Budget:    1_000,
		Spent:     500,
		CreatedAt: time.Now(),
	})
	require.NoError(t, err)
	assert.Equal(t, 0.0, p.Spent)
	assert.Nil(t, p.StartDate)
}

func TestRepo_DeleteReferencedProjectConflicts(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := testhelper.SetupTestDB(t)
	repo := project.New(store.DB())

	id := testhelper.SeedProject(t, store, 100, 0)
	_, err := store.DB().ExecContext(ctx,
		`INSERT INTO transactions (type, amount, date, project_id, created_at) VALUES ('expense', 10, 0, ?, 0)`, id)
	require.NoError(t, err)

	err = repo.Delete(ctx, id)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, 1, testhelper.Count(t, store, "projects"))
}
