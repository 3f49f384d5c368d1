package finance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ycsite/siteops/internal/adapter/sqlite"
	"github.com/ycsite/siteops/internal/adapter/sqlite/allocation"
	"github.com/ycsite/siteops/internal/adapter/sqlite/employee"
	"github.com/ycsite/siteops/internal/adapter/sqlite/project"
	"github.com/ycsite/siteops/internal/adapter/sqlite/testhelper"
	"github.com/ycsite/siteops/internal/adapter/sqlite/transaction"
	"github.com/ycsite/siteops/internal/domain"
)

var fixedNow = time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (*Service, *sqlite.Store) {
	t.Helper()
	store := testhelper.SetupTestDB(t)
	svc := NewService(testhelper.Logger(),
		transaction.New(store.DB()),
		allocation.New(store.DB()),
		project.New(store.DB()),
		employee.New(store.DB()),
		sqlite.NewTxManager(store.DB()),
	)
	svc.now = func() time.Time { return fixedNow }
	return svc, store
}

func spentOf(t *testing.T, svc *Service, id int64) float64 {
	t.Helper()
	p, err := svc.GetProject(context.Background(), id)
	require.NoError(t, err)
	return p.Spent
}

func ptr[T any](v T) *T { return &v }

func TestCreateTransaction_ExpenseRaisesSpent(t *testing.T) {
	t.Parallel()
	svc, store := newTestService(t)
	ctx := context.Background()

	pid := testhelper.SeedProject(t, store, 1000, 100)

	tx, err := svc.CreateTransaction(ctx, CreateTransactionInput{
		Amount:    -250,
		Category:  "Labour",
		ProjectID: &pid,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.TransactionTypeExpense, tx.Type)
	assert.Equal(t, 250.0, tx.Amount)
	assert.True(t, tx.Date.Equal(fixedNow))
	assert.Equal(t, 350.0, spentOf(t, svc, pid))

	_, err = svc.CreateTransaction(ctx, CreateTransactionInput{
		Type:      domain.TransactionTypeIncome,
		Amount:    500,
		Category:  "Client payment",
		ProjectID: &pid,
	})
	require.NoError(t, err)
	assert.Equal(t, 350.0, spentOf(t, svc, pid), "income leaves spent alone")
}

func TestCreateTransaction_UnknownProjectLeavesNothing(t *testing.T) {
	t.Parallel()
	svc, store := newTestService(t)

	_, err := svc.CreateTransaction(context.Background(), CreateTransactionInput{
		Amount:    10,
		Category:  "Fuel",
		ProjectID: ptr(int64(99)),
	})
	require.Error(t, err)
	assert.Equal(t, 0, testhelper.Count(t, store, "transactions"))
}

func TestCreateTransaction_Validation(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService(t)

	_, err := svc.CreateTransaction(context.Background(), CreateTransactionInput{Type: "gift"})
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Len(t, ve.Errors, 3)
}

func TestDeleteTransaction_FloorsSpentAtZero(t *testing.T) {
	t.Parallel()
	svc, store := newTestService(t)
	ctx := context.Background()

	pid := testhelper.SeedProject(t, store, 1000, 40)
	res, err := store.DB().ExecContext(ctx,
		`INSERT INTO transactions (type, amount, category, date, project_id, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		"expense", 100.0, "Steel", sqlite.ToMillis(fixedNow), pid, sqlite.ToMillis(fixedNow))
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)

	require.NoError(t, svc.DeleteTransaction(ctx, id))

	assert.Equal(t, 0.0, spentOf(t, svc, pid))
	assert.Equal(t, 0, testhelper.Count(t, store, "transactions"))
}

func TestDeleteTransaction_RestoresSpent(t *testing.T) {
	t.Parallel()
	svc, store := newTestService(t)
	ctx := context.Background()

	pid := testhelper.SeedProject(t, store, 1000, 120)

	tx, err := svc.CreateTransaction(ctx, CreateTransactionInput{
		Type:      domain.TransactionTypeExpense,
		Amount:    300,
		Category:  "Steel",
		ProjectID: &pid,
	})
	require.NoError(t, err)
	assert.Equal(t, 420.0, spentOf(t, svc, pid))

	require.NoError(t, svc.DeleteTransaction(ctx, tx.ID))

	assert.Equal(t, 120.0, spentOf(t, svc, pid))
	assert.Equal(t, 0, testhelper.Count(t, store, "transactions"))
}

func TestDeleteTransaction_Missing(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService(t)

	assert.ErrorIs(t, svc.DeleteTransaction(context.Background(), 1), domain.ErrNotFound)
}

func TestUpdateTransaction_ReappliesSpend(t *testing.T) {
	t.Parallel()
	svc, store := newTestService(t)
	ctx := context.Background()

	a := testhelper.SeedProject(t, store, 1000, 0)
	b := testhelper.SeedProject(t, store, 1000, 0)

	tx, err := svc.CreateTransaction(ctx, CreateTransactionInput{Amount: 200, Category: "Cement", ProjectID: &a})
	require.NoError(t, err)
	require.Equal(t, 200.0, spentOf(t, svc, a))

	_, err = svc.UpdateTransaction(ctx, UpdateTransactionInput{ID: tx.ID, Amount: ptr(300.0)})
	require.NoError(t, err)
	assert.Equal(t, 300.0, spentOf(t, svc, a))

	_, err = svc.UpdateTransaction(ctx, UpdateTransactionInput{ID: tx.ID, ProjectID: &b, Amount: ptr(150.0)})
	require.NoError(t, err)
	assert.Equal(t, 0.0, spentOf(t, svc, a))
	assert.Equal(t, 150.0, spentOf(t, svc, b))

	income := domain.TransactionTypeIncome
	got, err := svc.UpdateTransaction(ctx, UpdateTransactionInput{ID: tx.ID, Type: &income})
	require.NoError(t, err)
	assert.Equal(t, domain.TransactionTypeIncome, got.Type)
	assert.Equal(t, 0.0, spentOf(t, svc, b))
	assert.NotNil(t, got.UpdatedAt)
}

func TestSpendDelta(t *testing.T) {
	t.Parallel()
	p1, p2 := int64(1), int64(2)

	tests := []struct {
		name string
		prev *domain.Transaction
		next *domain.Transaction
		want map[int64]float64
	}{
		{
			name: "create expense",
			next: &domain.Transaction{Type: domain.TransactionTypeExpense, Amount: 50, ProjectID: &p1},
			want: map[int64]float64{1: 50},
		},
		{
			name: "delete expense",
			prev: &domain.Transaction{Type: domain.TransactionTypeExpense, Amount: 50, ProjectID: &p1},
			want: map[int64]float64{1: -50},
		},
		{
			name: "same project nets out",
			prev: &domain.Transaction{Type: domain.TransactionTypeExpense, Amount: 50, ProjectID: &p1},
			next: &domain.Transaction{Type: domain.TransactionTypeExpense, Amount: 80, ProjectID: &p1},
			want: map[int64]float64{1: 30},
		},
		{
			name: "moved project",
			prev: &domain.Transaction{Type: domain.TransactionTypeExpense, Amount: 50, ProjectID: &p1},
			next: &domain.Transaction{Type: domain.TransactionTypeExpense, Amount: 50, ProjectID: &p2},
			want: map[int64]float64{1: -50, 2: 50},
		},
		{
			name: "income is ignored",
			next: &domain.Transaction{Type: domain.TransactionTypeIncome, Amount: 50, ProjectID: &p1},
			want: map[int64]float64{1: 0},
		},
		{
			name: "no project",
			next: &domain.Transaction{Type: domain.TransactionTypeExpense, Amount: 50},
			want: map[int64]float64{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, spendDelta(tt.prev, tt.next))
		})
	}
}

func TestUpdateAllocationStatus_CashAdvanceBooksOnce(t *testing.T) {
	t.Parallel()
	svc, store := newTestService(t)
	ctx := context.Background()

	emp := testhelper.SeedEmployee(t, store, "Ravi", domain.AvailabilityAvailable)
	a, err := svc.CreateAllocation(ctx, CreateAllocationInput{
		Resource:   domain.CashAdvanceResource,
		Amount:     5000,
		AssignedTo: &emp,
		Site:       "Block A",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.AllocationStatusPending, a.Status)
	require.NotNil(t, a.Assignee)
	assert.Equal(t, "Ravi", a.Assignee.Name)

	for range 2 {
		got, err := svc.UpdateAllocationStatus(ctx, a.ID, domain.AllocationStatusUtilized)
		require.NoError(t, err)
		assert.Equal(t, domain.AllocationStatusUtilized, got.Status)
	}

	ledger, err := svc.ListTransactions(ctx, domain.TransactionFilter{})
	require.NoError(t, err)
	require.Len(t, ledger, 1)
	assert.Equal(t, domain.TransactionTypeExpense, ledger[0].Type)
	assert.Equal(t, domain.AllocationsCategory, ledger[0].Category)
	assert.Equal(t, 5000.0, ledger[0].Amount)
	assert.Equal(t, "Allocation utilized: Cash Advance - Block A", ledger[0].Description)
}

func TestUpdateAllocationStatus_OtherResourcesBookNothing(t *testing.T) {
	t.Parallel()
	svc, store := newTestService(t)
	ctx := context.Background()

	a, err := svc.CreateAllocation(ctx, CreateAllocationInput{Resource: "Cement", Amount: 40, Site: "Block B"})
	require.NoError(t, err)

	_, err = svc.UpdateAllocationStatus(ctx, a.ID, domain.AllocationStatusUtilized)
	require.NoError(t, err)
	assert.Equal(t, 0, testhelper.Count(t, store, "transactions"))
}

func TestUpdateAllocationStatus_Invalid(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService(t)

	_, err := svc.UpdateAllocationStatus(context.Background(), 1, "spent")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.UpdateAllocationStatus(context.Background(), 1, domain.AllocationStatusCancelled)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateAllocationStatus_AcceptsSynonyms(t *testing.T) {
	t.Parallel()
	svc, store := newTestService(t)
	ctx := context.Background()

	a, err := svc.CreateAllocation(ctx, CreateAllocationInput{
		Resource: domain.CashAdvanceResource,
		Amount:   800,
		Site:     "Block C",
		Status:   "Pending",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.AllocationStatusPending, a.Status)

	got, err := svc.UpdateAllocationStatus(ctx, a.ID, "used")
	require.NoError(t, err)
	assert.Equal(t, domain.AllocationStatusUtilized, got.Status)
	assert.Equal(t, 1, testhelper.Count(t, store, "transactions"))
}

func TestAllocationStats(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService(t)
	ctx := context.Background()

	for _, st := range []domain.AllocationStatus{
		domain.AllocationStatusPending,
		domain.AllocationStatusPending,
		domain.AllocationStatusCancelled,
	} {
		_, err := svc.CreateAllocation(ctx, CreateAllocationInput{Resource: "Sand", Amount: 1, Status: st})
		require.NoError(t, err)
	}

	st, err := svc.AllocationStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, AllocationStats{Total: 3, Pending: 2, Cancelled: 1}, st)
}

func TestProjectBudgetStatus(t *testing.T) {
	t.Parallel()
	svc, store := newTestService(t)
	ctx := context.Background()

	over := testhelper.SeedProject(t, store, 1000, 1250)
	unbudgeted := testhelper.SeedProject(t, store, 0, 10)

	bs, err := svc.ProjectBudgetStatus(ctx, over)
	require.NoError(t, err)
	assert.Equal(t, domain.BudgetStatus{
		ProjectID:      over,
		Budget:         1000,
		Spent:          1250,
		Remaining:      -250,
		PercentageUsed: 125,
		IsOverBudget:   true,
	}, bs)

	bs, err = svc.ProjectBudgetStatus(ctx, unbudgeted)
	require.NoError(t, err)
	assert.Equal(t, 0, bs.PercentageUsed)
	assert.True(t, bs.IsOverBudget)
}

func TestCreateProject_SpentStartsAtZero(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService(t)

	p, err := svc.CreateProject(context.Background(), CreateProjectInput{Name: "Villa 7", Budget: 250000})
	require.NoError(t, err)
	assert.Equal(t, 0.0, p.Spent)
	assert.Equal(t, domain.ProjectStatusPlanned, p.Status)
}

func TestDeleteProject_WithLedgerIsConflict(t *testing.T) {
	t.Parallel()
	svc, store := newTestService(t)
	ctx := context.Background()

	pid := testhelper.SeedProject(t, store, 100, 0)
	_, err := svc.CreateTransaction(ctx, CreateTransactionInput{Amount: 10, Category: "Tools", ProjectID: &pid})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeleteProject(ctx, pid), domain.ErrConflict)
}

func TestSummaryAndExpensesByCategory(t *testing.T) {
	t.Parallel()
	svc, store := newTestService(t)
	ctx := context.Background()

	pid := testhelper.SeedProject(t, store, 500, 0)
	inputs := []CreateTransactionInput{
		{Type: domain.TransactionTypeIncome, Amount: 1000, Category: "Client payment"},
		{Amount: 300, Category: "Labour", ProjectID: &pid},
		{Amount: 100, Category: "Fuel"},
	}
	for _, in := range inputs {
		_, err := svc.CreateTransaction(ctx, in)
		require.NoError(t, err)
	}

	sum, err := svc.Summary(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, Summary{
		TotalIncome:      1000,
		TotalExpenses:    400,
		Balance:          600,
		TransactionCount: 3,
		Budget:           500,
		Spent:            300,
	}, sum)

	scoped, err := svc.Summary(ctx, &pid)
	require.NoError(t, err)
	assert.Equal(t, 1, scoped.TransactionCount)
	assert.Equal(t, 300.0, scoped.TotalExpenses)

	byCat, err := svc.ExpensesByCategory(ctx)
	require.NoError(t, err)
	assert.Equal(t, []CategoryExpense{
		{Category: "Labour", Amount: 300, Percentage: 75},
		{Category: "Fuel", Amount: 100, Percentage: 25},
	}, byCat)
}
