package finance

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ycsite/siteops/internal/domain"
)

// ListTransactions returns ledger entries newest first.
func (s *Service) ListTransactions(ctx context.Context, filter domain.TransactionFilter) ([]*domain.Transaction, error) {
	transactions, err := s.transactions.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return transactions, nil
}

// GetTransaction returns one ledger entry.
func (s *Service) GetTransaction(ctx context.Context, id int64) (*domain.Transaction, error) {
	t, err := s.transactions.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	return t, nil
}

// CreateTransaction records a ledger entry. Type defaults to expense and date
// to now. An expense booked against a project raises its spent total in the
// same transaction.
func (s *Service) CreateTransaction(ctx context.Context, input CreateTransactionInput) (*domain.Transaction, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	now := s.now()
	typ := input.Type
	if typ == "" {
		typ = domain.TransactionTypeExpense
	}
	date := now
	if input.Date != nil {
		date = *input.Date
	}

	var created *domain.Transaction
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		t, err := s.transactions.Create(txCtx, &domain.Transaction{
			Type:        typ,
			Amount:      input.Amount,
			Category:    strings.TrimSpace(input.Category),
			Description: strings.TrimSpace(input.Description),
			Date:        date,
			ProjectID:   input.ProjectID,
			TaskID:      input.TaskID,
			CreatedAt:   now,
		})
		if err != nil {
			return fmt.Errorf("create transaction: %w", err)
		}
		created = t
		return s.applySpend(txCtx, spendDelta(nil, t))
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "transaction created",
		slog.Int64("transaction_id", created.ID),
		slog.String("type", string(created.Type)),
		slog.Float64("amount", created.Amount),
	)
	return created, nil
}

// UpdateTransaction merges the given fields. The old ledger effect on project
// spent is reversed and the new one applied in the same transaction.
func (s *Service) UpdateTransaction(ctx context.Context, input UpdateTransactionInput) (*domain.Transaction, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var updated *domain.Transaction
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		prev, err := s.transactions.GetByID(txCtx, input.ID)
		if err != nil {
			return fmt.Errorf("get transaction: %w", err)
		}

		params := domain.TransactionUpdateParams{
			Type:        input.Type,
			Amount:      input.Amount,
			Description: input.Description,
			Date:        input.Date,
			ProjectID:   input.ProjectID,
			TaskID:      input.TaskID,
			UpdatedAt:   s.now(),
		}
		if input.Category != nil {
			category := strings.TrimSpace(*input.Category)
			params.Category = &category
		}

		next, err := s.transactions.Update(txCtx, input.ID, params)
		if err != nil {
			return fmt.Errorf("update transaction: %w", err)
		}
		updated = next
		return s.applySpend(txCtx, spendDelta(prev, next))
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "transaction updated", slog.Int64("transaction_id", updated.ID))
	return updated, nil
}

// DeleteTransaction removes a ledger entry. Deleting a project expense lowers
// the project's spent total, never below zero.
func (s *Service) DeleteTransaction(ctx context.Context, id int64) error {
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		prev, err := s.transactions.GetByID(txCtx, id)
		if err != nil {
			return fmt.Errorf("get transaction: %w", err)
		}
		if err := s.transactions.Delete(txCtx, id); err != nil {
			return fmt.Errorf("delete transaction: %w", err)
		}
		return s.applySpend(txCtx, spendDelta(prev, nil))
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "transaction deleted", slog.Int64("transaction_id", id))
	return nil
}
