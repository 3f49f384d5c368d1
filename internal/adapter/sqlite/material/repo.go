// Package material implements the inventory repository on SQLite.
package material

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/ycsite/siteops/internal/adapter/sqlite"
	"github.com/ycsite/siteops/internal/domain"
)

const table = "materials"

var columns = []string{
	"id", "name", "quantity", "unit", "category", "supplier", "cost", "min_quantity", "project_id", "last_updated",
}

// Repo provides material persistence backed by SQLite.
type Repo struct {
	db *sql.DB
}

// New creates a new material repository.
func New(db *sql.DB) *Repo {
	return &Repo{db: db}
}

// Create inserts a material and returns the stored row.
func (r *Repo) Create(ctx context.Context, m *domain.Material) (*domain.Material, error) {
	q := sqlite.QuerierFromCtx(ctx, r.db)

	query, args, err := sqlite.Builder().Insert(table).
		Columns("name", "quantity", "unit", "category", "supplier", "cost", "min_quantity", "project_id", "last_updated").
		Values(m.Name, m.Quantity, m.Unit, m.Category, m.Supplier, m.Cost,
			sqlite.NullFloat(m.MinQuantity), sqlite.NullID(m.ProjectID), sqlite.ToMillis(m.LastUpdated)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert material: %w", err)
	}

	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, sqlite.MapError(err, "material", m.Name)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("material id: %w", err)
	}
	return r.GetByID(ctx, id)
}

// GetByID returns a material by primary key.
func (r *Repo) GetByID(ctx context.Context, id int64) (*domain.Material, error) {
	q := sqlite.QuerierFromCtx(ctx, r.db)

	query, args, err := sqlite.Builder().Select(columns...).From(table).
		Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get material: %w", err)
	}

	m, err := scanMaterial(q.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, sqlite.MapError(err, "material", id)
	}
	return m, nil
}

// List returns materials ordered by name. LowStock in the filter is ignored
// here; the caller applies the threshold.
func (r *Repo) List(ctx context.Context, filter domain.MaterialFilter) ([]*domain.Material, error) {
	q := sqlite.QuerierFromCtx(ctx, r.db)

	b := sqlite.Builder().Select(columns...).From(table).OrderBy("name ASC", "id ASC")
	if filter.Category != "" {
		b = b.Where(squirrel.Eq{"category": filter.Category})
	}
	if filter.ProjectID != nil {
		b = b.Where(squirrel.Eq{"project_id": *filter.ProjectID})
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list materials: %w", err)
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list materials: %w", err)
	}
	defer rows.Close()

	materials := []*domain.Material{}
	for rows.Next() {
		m, err := scanMaterial(rows)
		if err != nil {
			return nil, fmt.Errorf("scan material: %w", err)
		}
		materials = append(materials, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list materials: %w", err)
	}
	return materials, nil
}

// Update applies a partial update and returns the stored row.
func (r *Repo) Update(ctx context.Context, id int64, params domain.MaterialUpdateParams) (*domain.Material, error) {
	q := sqlite.QuerierFromCtx(ctx, r.db)

	b := sqlite.Builder().Update(table).
		Set("last_updated", sqlite.ToMillis(params.LastUpdated)).
		Where(squirrel.Eq{"id": id})
	if params.Name != nil {
		b = b.Set("name", *params.Name)
	}
	if params.Quantity != nil {
		b = b.Set("quantity", *params.Quantity)
	}
	if params.Unit != nil {
		b = b.Set("unit", *params.Unit)
	}
	if params.Category != nil {
		b = b.Set("category", *params.Category)
	}
	if params.Supplier != nil {
		b = b.Set("supplier", *params.Supplier)
	}
	if params.Cost != nil {
		b = b.Set("cost", *params.Cost)
	}
	if params.MinQuantity != nil {
		b = b.Set("min_quantity", *params.MinQuantity)
	}
	if params.ProjectID != nil {
		b = b.Set("project_id", sqlite.NullID(params.ProjectID))
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update material: %w", err)
	}
	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, sqlite.MapError(err, "material", id)
	}
	if err := sqlite.ExpectAffected(res, "material", id); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// SetQuantity overwrites the on-hand quantity.
func (r *Repo) SetQuantity(ctx context.Context, id int64, quantity float64, at time.Time) (*domain.Material, error) {
	q := sqlite.QuerierFromCtx(ctx, r.db)

	res, err := q.ExecContext(ctx,
		`UPDATE materials SET quantity = ?, last_updated = ? WHERE id = ?`,
		quantity, sqlite.ToMillis(at), id)
	if err != nil {
		return nil, sqlite.MapError(err, "material", id)
	}
	if err := sqlite.ExpectAffected(res, "material", id); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// Delete removes a material.
func (r *Repo) Delete(ctx context.Context, id int64) error {
	q := sqlite.QuerierFromCtx(ctx, r.db)

	res, err := q.ExecContext(ctx, `DELETE FROM materials WHERE id = ?`, id)
	if err != nil {
		return sqlite.MapDeleteError(err, "material", id)
	}
	return sqlite.ExpectAffected(res, "material", id)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanMaterial(row scanner) (*domain.Material, error) {
	var (
		m         domain.Material
		minQty    sql.NullFloat64
		projectID sql.NullInt64
		updated   int64
	)
	if err := row.Scan(&m.ID, &m.Name, &m.Quantity, &m.Unit, &m.Category, &m.Supplier, &m.Cost,
		&minQty, &projectID, &updated); err != nil {
		return nil, err
	}
	m.MinQuantity = sqlite.FloatPtr(minQty)
	m.ProjectID = sqlite.IDPtr(projectID)
	m.LastUpdated = sqlite.FromMillis(updated)
	return &m, nil
}
