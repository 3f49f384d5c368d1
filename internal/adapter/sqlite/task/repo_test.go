package task_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ycsite/siteops/internal/adapter/sqlite/employee"
	"github.com/ycsite/siteops/internal/adapter/sqlite/task"
	"github.com/ycsite/siteops/internal/adapter/sqlite/testhelper"
	"github.com/ycsite/siteops/internal/domain"
)

func TestRepo_ListFilters(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := testhelper.SetupTestDB(t)
	repo := task.New(store.DB())

	emp := testhelper.SeedEmployee(t, store, "Priya", domain.AvailabilityAvailable)
	testhelper.SeedTask(t, store, "Pour slab", domain.TaskStatusPending, &emp, nil)
	testhelper.SeedTask(t, store, "Cure slab", domain.TaskStatusActive, &emp, nil)
	testhelper.SeedTask(t, store, "Order rebar", domain.TaskStatusPending, nil, nil)

	pending := domain.TaskStatusPending
	got, err := repo.List(ctx, domain.TaskFilter{Status: &pending})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = repo.List(ctx, domain.TaskFilter{Status: &pending, AssignedTo: &emp})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Pour slab", got[0].Title)

	got, err = repo.List(ctx, domain.TaskFilter{})
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestRepo_UpdateClearsAssignee(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := testhelper.SetupTestDB(t)
	repo := task.New(store.DB())

	emp := testhelper.SeedEmployee(t, store, "Ravi", domain.AvailabilityAvailable)
	id := testhelper.SeedTask(t, store, "Inspect", domain.TaskStatusPending, &emp, nil)

	none := int64(0)
	updated, err := repo.Update(ctx, id, domain.TaskUpdateParams{AssignedTo: &none, UpdatedAt: time.Now()})
	require.NoError(t, err)
	assert.Nil(t, updated.AssignedTo)
	assert.NotNil(t, updated.UpdatedAt)
}

func TestRepo_UpdateMissingTask(t *testing.T) {
	t.Parallel()
	store := testhelper.SetupTestDB(t)

	title := "x"
	_, err := task.New(store.DB()).Update(context.Background(), 999,
		domain.TaskUpdateParams{Title: &title, UpdatedAt: time.Now()})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRepo_DeletingEmployeeNullsAssignment(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := testhelper.SetupTestDB(t)
	repo := task.New(store.DB())

	emp := testhelper.SeedEmployee(t, store, "Arjun", domain.AvailabilityOnLeave)
	id := testhelper.SeedTask(t, store, "Wire panel", domain.TaskStatusPending, &emp, nil)

	require.NoError(t, employee.New(store.DB()).Delete(ctx, emp))

	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, got.AssignedTo)
}

func TestRepo_UnassignEmployee(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := testhelper.SetupTestDB(t)
	repo := task.New(store.DB())

	emp := testhelper.SeedEmployee(t, store, "Lakshmi", domain.AvailabilityAvailable)
	testhelper.SeedTask(t, store, "Pipes", domain.TaskStatusPending, &emp, nil)
	testhelper.SeedTask(t, store, "Drains", domain.TaskStatusActive, &emp, nil)

	n, err := repo.UnassignEmployee(ctx, emp, time.Now())
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	got, err := repo.List(ctx, domain.TaskFilter{AssignedTo: &emp})
	require.NoError(t, err)
	assert.Empty(t, got)
}
