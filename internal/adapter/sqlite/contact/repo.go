// Package contact implements the contacts directory repository on SQLite.
package contact

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/ycsite/siteops/internal/adapter/sqlite"
	"github.com/ycsite/siteops/internal/domain"
)

var columns = []string{"id", "name", "role", "email", "phone", "created_at"}

// Repo provides contact persistence backed by SQLite.
type Repo struct {
	db *sql.DB
}

// New creates a new contact repository.
func New(db *sql.DB) *Repo {
	return &Repo{db: db}
}

// Create inserts a contact and returns the stored row.
func (r *Repo) Create(ctx context.Context, c *domain.Contact) (*domain.Contact, error) {
	q := sqlite.QuerierFromCtx(ctx, r.db)

	res, err := q.ExecContext(ctx,
		`INSERT INTO contacts (name, role, email, phone, created_at) VALUES (?, ?, ?, ?, ?)`,
		c.Name, c.Role, c.Email, c.Phone, sqlite.ToMillis(c.CreatedAt))
	if err != nil {
		return nil, sqlite.MapError(err, "contact", c.Name)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("contact id: %w", err)
	}
	return r.GetByID(ctx, id)
}

// GetByID returns a contact by primary key.
func (r *Repo) GetByID(ctx context.Context, id int64) (*domain.Contact, error) {
	q := sqlite.QuerierFromCtx(ctx, r.db)

	query, args, err := sqlite.Builder().Select(columns...).From("contacts").
		Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get contact: %w", err)
	}

	c, err := scanContact(q.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, sqlite.MapError(err, "contact", id)
	}
	return c, nil
}

// List returns contacts ordered by name, optionally restricted to one role.
func (r *Repo) List(ctx context.Context, role string) ([]*domain.Contact, error) {
	q := sqlite.QuerierFromCtx(ctx, r.db)

	b := sqlite.Builder().Select(columns...).From("contacts").OrderBy("name ASC", "id ASC")
	if role != "" {
		b = b.Where(squirrel.Eq{"role": role})
	}
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list contacts: %w", err)
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	defer rows.Close()

	contacts := []*domain.Contact{}
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("scan contact: %w", err)
		}
		contacts = append(contacts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	return contacts, nil
}

// Delete removes a contact.
func (r *Repo) Delete(ctx context.Context, id int64) error {
	q := sqlite.QuerierFromCtx(ctx, r.db)

	res, err := q.ExecContext(ctx, `DELETE FROM contacts WHERE id = ?`, id)
	if err != nil {
		return sqlite.MapDeleteError(err, "contact", id)
	}
	return sqlite.ExpectAffected(res, "contact", id)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanContact(row scanner) (*domain.Contact, error) {
	var (
		c       domain.Contact
		created int64
	)
	if err := row.Scan(&c.ID, &c.Name, &c.Role, &c.Email, &c.Phone, &created); err != nil {
		return nil, err
	}
	c.CreatedAt = sqlite.FromMillis(created)
	return &c, nil
}
