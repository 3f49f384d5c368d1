// Package transaction implements the ledger repository on SQLite.
package transaction

import (
	"context"
	"database/sql"
	"fmt"
	"math"

	"github.com/Masterminds/squirrel"

	"github.com/ycsite/siteops/internal/adapter/sqlite"
	"github.com/ycsite/siteops/internal/domain"
)

const table = "transactions"

var columns = []string{
	"id", "type", "amount", "category", "description", "date", "project_id", "task_id",
	"created_at", "updated_at",
}

// Repo provides ledger persistence backed by SQLite.
type Repo struct {
	db *sql.DB
}

// New creates a new transaction repository.
func New(db *sql.DB) *Repo {
	return &Repo{db: db}
}

// Create inserts a transaction. The amount is stored as an absolute value.
func (r *Repo) Create(ctx context.Context, t *domain.Transaction) (*domain.Transaction, error) {
	q := sqlite.QuerierFromCtx(ctx, r.db)

	query, args, err := sqlite.Builder().Insert(table).
		Columns("type", "amount", "category", "description", "date", "project_id", "task_id", "created_at").
		Values(string(t.Type), math.Abs(t.Amount), t.Category, t.Description, sqlite.ToMillis(t.Date),
			sqlite.NullID(t.ProjectID), sqlite.NullID(t.TaskID), sqlite.ToMillis(t.CreatedAt)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert transaction: %w", err)
	}

	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, sqlite.MapError(err, "transaction", t.Category)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("transaction id: %w", err)
	}
	return r.GetByID(ctx, id)
}

// GetByID returns a transaction by primary key.
func (r *Repo) GetByID(ctx context.Context, id int64) (*domain.Transaction, error) {
	q := sqlite.QuerierFromCtx(ctx, r.db)

	query, args, err := sqlite.Builder().Select(columns...).From(table).
		Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get transaction: %w", err)
	}

	t, err := scanTransaction(q.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, sqlite.MapError(err, "transaction", id)
	}
	return t, nil
}

// List returns transactions matching the filter, most recent date first.
func (r *Repo) List(ctx context.Context, filter domain.TransactionFilter) ([]*domain.Transaction, error) {
	q := sqlite.QuerierFromCtx(ctx, r.db)

	b := sqlite.Builder().Select(columns...).From(table).OrderBy("date DESC", "id DESC")
	if filter.Type != nil {
		b = b.Where(squirrel.Eq{"type": string(*filter.Type)})
	}
	if filter.Category != "" {
		b = b.Where(squirrel.Eq{"category": filter.Category})
	}
	if filter.From != nil {
		b = b.Where(squirrel.GtOrEq{"date": sqlite.ToMillis(*filter.From)})
	}
	if filter.To != nil {
		b = b.Where(squirrel.LtOrEq{"date": sqlite.ToMillis(*filter.To)})
	}
	if filter.ProjectID != nil {
		b = b.Where(squirrel.Eq{"project_id": *filter.ProjectID})
	}
	if filter.Limit > 0 {
		b = b.Limit(uint64(filter.Limit))
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list transactions: %w", err)
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	txs := []*domain.Transaction{}
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		txs = append(txs, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return txs, nil
}

// Update applies a partial update and returns the stored row.
func (r *Repo) Update(ctx context.Context, id int64, params domain.TransactionUpdateParams) (*domain.Transaction, error) {
	q := sqlite.QuerierFromCtx(ctx, r.db)

	b := sqlite.Builder().Update(table).
		Set("updated_at", sqlite.ToMillis(params.UpdatedAt)).
		Where(squirrel.Eq{"id": id})
	if params.Type != nil {
		b = b.Set("type", string(*params.Type))
	}
	if params.Amount != nil {
		b = b.Set("amount", math.Abs(*params.Amount))
	}
	if params.Category != nil {
		b = b.Set("category", *params.Category)
	}
	if params.Description != nil {
		b = b.Set("description", *params.Description)
	}
	if params.Date != nil {
		b = b.Set("date", sqlite.ToMillis(*params.Date))
	}
	if params.ProjectID != nil {
		b = b.Set("project_id", sqlite.NullID(params.ProjectID))
	}
	if params.TaskID != nil {
		b = b.Set("task_id", sqlite.NullID(params.TaskID))
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update transaction: %w", err)
	}
	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, sqlite.MapError(err, "transaction", id)
	}
	if err := sqlite.ExpectAffected(res, "transaction", id); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// Delete removes a transaction.
func (r *Repo) Delete(ctx context.Context, id int64) error {
	q := sqlite.QuerierFromCtx(ctx, r.db)

	res, err := q.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id)
	if err != nil {
		return sqlite.MapDeleteError(err, "transaction", id)
	}
	return sqlite.ExpectAffected(res, "transaction", id)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row scanner) (*domain.Transaction, error) {
	var (
		t                 domain.Transaction
		typ               string
		date, created     int64
		projectID, taskID sql.NullInt64
		updated           sql.NullInt64
	)
	if err := row.Scan(&t.ID, &typ, &t.Amount, &t.Category, &t.Description, &date,
		&projectID, &taskID, &created, &updated); err != nil {
		return nil, err
	}
	t.Type = domain.TransactionType(typ)
	t.Date = sqlite.FromMillis(date)
	t.ProjectID = sqlite.IDPtr(projectID)
	t.TaskID = sqlite.IDPtr(taskID)
	t.CreatedAt = sqlite.FromMillis(created)
	t.UpdatedAt = sqlite.TimePtr(updated)
	return &t, nil
}
