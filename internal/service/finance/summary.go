package finance

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/ycsite/siteops/internal/domain"
)

// Summary is the ledger and budget position over a scope of projects.
type Summary struct {
	TotalIncome      float64 `json:"totalIncome"`
	TotalExpenses    float64 `json:"totalExpenses"`
	Balance          float64 `json:"balance"`
	TransactionCount int     `json:"transactionCount"`
	Budget           float64 `json:"budget"`
	Spent            float64 `json:"spent"`
	IsOverBudget     bool    `json:"isOverBudget"`
}

// CategoryExpense is one slice of the expense breakdown.
type CategoryExpense struct {
	Category   string  `json:"category"`
	Amount     float64 `json:"amount"`
	Percentage float64 `json:"percentage"`
}

// Summary totals the ledger and project budgets. A nil projectID covers
// every project and the whole ledger.
func (s *Service) Summary(ctx context.Context, projectID *int64) (Summary, error) {
	transactions, err := s.transactions.List(ctx, domain.TransactionFilter{ProjectID: projectID})
	if err != nil {
		return Summary{}, fmt.Errorf("list transactions: %w", err)
	}

	var projects []*domain.Project
	if projectID != nil {
		p, err := s.projects.GetByID(ctx, *projectID)
		if err != nil {
			return Summary{}, fmt.Errorf("get project: %w", err)
		}
		projects = []*domain.Project{p}
	} else {
		projects, err = s.projects.List(ctx)
		if err != nil {
			return Summary{}, fmt.Errorf("list projects: %w", err)
		}
	}

	return ComputeSummary(transactions, projects), nil
}

// ComputeSummary derives a Summary from already-loaded rows.
func ComputeSummary(transactions []*domain.Transaction, projects []*domain.Project) Summary {
	sum := Summary{TransactionCount: len(transactions)}
	for _, t := range transactions {
		if t.Type == domain.TransactionTypeIncome {
			sum.TotalIncome += math.Abs(t.Amount)
		} else {
			sum.TotalExpenses += math.Abs(t.Amount)
		}
	}
	sum.Balance = sum.TotalIncome - sum.TotalExpenses

	for _, p := range projects {
		sum.Budget += p.Budget
		sum.Spent += p.Spent
	}
	sum.IsOverBudget = sum.Spent > sum.Budget
	return sum
}

// ExpensesByCategory breaks total expenses down by category, largest first.
// Percentages are rounded to one decimal.
func (s *Service) ExpensesByCategory(ctx context.Context) ([]CategoryExpense, error) {
	expense := domain.TransactionTypeExpense
	transactions, err := s.transactions.List(ctx, domain.TransactionFilter{Type: &expense})
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}

	var total float64
	byCategory := make(map[string]float64)
	for _, t := range transactions {
		amount := math.Abs(t.Amount)
		byCategory[t.Category] += amount
		total += amount
	}

	out := make([]CategoryExpense, 0, len(byCategory))
	for category, amount := range byCategory {
		ce := CategoryExpense{Category: category, Amount: amount}
		if total > 0 {
			ce.Percentage = math.Round(amount/total*1000) / 10
		}
		out = append(out, ce)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Amount != out[j].Amount {
			return out[i].Amount > out[j].Amount
		}
		return out[i].Category < out[j].Category
	})
	return out, nil
}
