package dataloader_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dl "github.com/ycsite/siteops/internal/dataloader"
	"github.com/ycsite/siteops/internal/domain"
)

type mockEmployeeRepo struct {
	mu     sync.Mutex
	calls  [][]int64
	result []*domain.Employee
	err    error
}

func (m *mockEmployeeRepo) GetByIDs(_ context.Context, ids []int64) ([]*domain.Employee, error) {
	m.mu.Lock()
	m.calls = append(m.calls, ids)
	m.mu.Unlock()
	return m.result, m.err
}

func TestEmployees_BatchesAndDeduplicates(t *testing.T) {
	t.Parallel()

	repo := &mockEmployeeRepo{result: []*domain.Employee{
		{ID: 1, Name: "Nandha"},
		{ID: 3, Name: "Priya"},
	}}
	loaders := dl.NewLoaders(repo)

	got, err := loaders.Employees(context.Background(), []int64{1, 3, 1, 7})
	require.NoError(t, err)

	require.Len(t, repo.calls, 1)
	assert.ElementsMatch(t, []int64{1, 3, 7}, repo.calls[0])
	assert.Equal(t, "Nandha", got[1].Name)
	assert.Equal(t, "Priya", got[3].Name)
	_, ok := got[7]
	assert.False(t, ok, "unknown ids are absent")
}

func TestEmployees_Empty(t *testing.T) {
	t.Parallel()

	repo := &mockEmployeeRepo{}
	got, err := dl.NewLoaders(repo).Employees(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Empty(t, repo.calls)
}

func TestEmployees_PropagatesError(t *testing.T) {
	t.Parallel()

	boom := errors.New("db down")
	_, err := dl.NewLoaders(&mockEmployeeRepo{err: boom}).Employees(context.Background(), []int64{1})
	assert.ErrorIs(t, err, boom)
}

func TestFromContext_FallsBackToFreshLoaders(t *testing.T) {
	t.Parallel()

	repo := &mockEmployeeRepo{}
	assert.NotNil(t, dl.FromContext(context.Background(), repo))

	stored := dl.NewLoaders(repo)
	ctx := dl.WithLoaders(context.Background(), stored)
	assert.Same(t, stored, dl.FromContext(ctx, repo))
}

func TestMiddleware_InjectsLoaders(t *testing.T) {
	t.Parallel()

	repo := &mockEmployeeRepo{}
	var seen *dl.Loaders
	handler := dl.Middleware(repo)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = dl.FromContext(r.Context(), nil)
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	require.NotNil(t, seen)
	assert.NotNil(t, seen.EmployeeByID)
}
