package domain

import (
	"math"
	"time"
)

// CashAdvanceResource is the allocation resource whose utilization is
// booked as an expense.
const CashAdvanceResource = "Cash Advance"

// AllocationsCategory is the ledger category of expenses booked from allocations.
const AllocationsCategory = "ALLOCATIONS"

// Transaction is a ledger entry. Amount is always stored as an absolute value;
// Type carries the sign.
type Transaction struct {
	ID          int64
	Type        TransactionType
	Amount      float64
	Category    string
	Description string
	Date        time.Time
	ProjectID   *int64
	TaskID      *int64
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

// SignedAmount returns the amount with the sign implied by Type.
func (t *Transaction) SignedAmount() float64 {
	if t.Type == TransactionTypeExpense {
		return -math.Abs(t.Amount)
	}
	return math.Abs(t.Amount)
}

// SpendOn returns the amount this transaction adds to the spent total of
// the given project: |amount| for an expense booked against it, else 0.
func (t *Transaction) SpendOn(projectID int64) float64 {
	if t.Type != TransactionTypeExpense || t.ProjectID == nil || *t.ProjectID != projectID {
		return 0
	}
	return math.Abs(t.Amount)
}

// TransactionUpdateParams carries a partial update. Nil fields are left unchanged.
// ProjectID and TaskID pointing at 0 clear the reference.
type TransactionUpdateParams struct {
	Type        *TransactionType
	Amount      *float64
	Category    *string
	Description *string
	Date        *time.Time
	ProjectID   *int64
	TaskID      *int64
	UpdatedAt   time.Time
}

// Allocation is a dispatch of cash or material to a site or employee,
// tracked separately from the ledger until utilized.
type Allocation struct {
	ID         int64
	Resource   string
	Amount     float64
	AssignedTo *int64
	Site       string
	Status     AllocationStatus
	Date       time.Time
	Notes      string
	CreatedAt  time.Time
	UpdatedAt  *time.Time

	// Assignee is resolved from AssignedTo on read; never stored.
	Assignee *Employee
}

// IsCashAdvance reports whether utilizing the allocation books an expense.
func (a *Allocation) IsCashAdvance() bool {
	return a.Resource == CashAdvanceResource
}

// Project is a construction project with a budget. Spent is changed only by
// ledger side effects.
type Project struct {
	ID        int64
	Name      string
	Location  string
	StartDate *time.Time
	EndDate   *time.Time
	Status    ProjectStatus
	Budget    float64
	Spent     float64
	CreatedAt time.Time
}

// BudgetStatus is the derived budget position of one project.
type BudgetStatus struct {
	ProjectID      int64   `json:"projectId"`
	Budget         float64 `json:"budget"`
	Spent          float64 `json:"spent"`
	Remaining      float64 `json:"remaining"`
	PercentageUsed int     `json:"percentageUsed"`
	IsOverBudget   bool    `json:"isOverBudget"`
}

// BudgetStatus derives remaining, percentage used and the over-budget flag.
func (p *Project) BudgetStatus() BudgetStatus {
	bs := BudgetStatus{
		ProjectID:    p.ID,
		Budget:       p.Budget,
		Spent:        p.Spent,
		Remaining:    p.Budget - p.Spent,
		IsOverBudget: p.Spent > p.Budget,
	}
	if p.Budget > 0 {
		bs.PercentageUsed = int(math.Round(p.Spent / p.Budget * 100))
	}
	return bs
}
