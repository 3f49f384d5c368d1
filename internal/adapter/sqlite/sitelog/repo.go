// Package sitelog implements the site diary repository on SQLite.
package sitelog

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/ycsite/siteops/internal/adapter/sqlite"
	"github.com/ycsite/siteops/internal/domain"
)

const table = "site_logs"

var columns = []string{
	"id", "caption", "description", "priority", "status", "location", "tags", "notes",
	"acknowledged", "acknowledged_at", "bookmarked", "created_at", "updated_at",
}

// Repo provides site-log persistence backed by SQLite.
type Repo struct {
	db *sql.DB
}

// New creates a new site-log repository.
func New(db *sql.DB) *Repo {
	return &Repo{db: db}
}

// Create inserts a log and returns the stored row.
func (r *Repo) Create(ctx context.Context, l *domain.SiteLog) (*domain.SiteLog, error) {
	q := sqlite.QuerierFromCtx(ctx, r.db)

	query, args, err := sqlite.Builder().Insert(table).
		Columns("caption", "description", "priority", "status", "location", "tags", "notes",
			"acknowledged", "acknowledged_at", "bookmarked", "created_at").
		Values(l.Caption, l.Description, string(l.Priority), string(l.Status), l.Location,
			sqlite.EncodeStrings(l.Tags), l.Notes, sqlite.BoolInt(l.Acknowledged),
			sqlite.NullMillis(l.AcknowledgedAt), sqlite.BoolInt(l.Bookmarked), sqlite.ToMillis(l.CreatedAt)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert site log: %w", err)
	}

	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, sqlite.MapError(err, "site log", l.Caption)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("site log id: %w", err)
	}

	return r.GetByID(ctx, id)
}

// GetByID returns a log by primary key.
// Returns domain.ErrNotFound if the log does not exist.
func (r *Repo) GetByID(ctx context.Context, id int64) (*domain.SiteLog, error) {
	q := sqlite.QuerierFromCtx(ctx, r.db)

	query, args, err := sqlite.Builder().Select(columns...).From(table).
		Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get site log: %w", err)
	}

	l, err := scanLog(q.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, sqlite.MapError(err, "site log", id)
	}
	return l, nil
}

// List returns logs matching the filter, newest first. The location filter
// is a substring match, case-insensitive for ASCII.
func (r *Repo) List(ctx context.Context, filter domain.LogFilter) ([]*domain.SiteLog, error) {
	q := sqlite.QuerierFromCtx(ctx, r.db)

	b := sqlite.Builder().Select(columns...).From(table).OrderBy("created_at DESC", "id DESC")
	if filter.Priority != nil {
		b = b.Where(squirrel.Eq{"priority": string(*filter.Priority)})
	}
	if filter.Status != nil {
		b = b.Where(squirrel.Eq{"status": string(*filter.Status)})
	}
	if loc := strings.TrimSpace(filter.Location); loc != "" {
		b = b.Where(squirrel.Expr(`location LIKE ? ESCAPE '\'`, "%"+escapeLike(loc)+"%"))
	}
	if filter.Bookmarked {
		b = b.Where(squirrel.Eq{"bookmarked": 1})
	}
	if filter.CreatedFrom != nil {
		b = b.Where(squirrel.GtOrEq{"created_at": sqlite.ToMillis(*filter.CreatedFrom)})
	}
	if filter.CreatedTo != nil {
		b = b.Where(squirrel.Lt{"created_at": sqlite.ToMillis(*filter.CreatedTo)})
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list site logs: %w", err)
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list site logs: %w", err)
	}
	defer rows.Close()

	logs := []*domain.SiteLog{}
	for rows.Next() {
		l, err := scanLog(rows)
		if err != nil {
			return nil, fmt.Errorf("scan site log: %w", err)
		}
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list site logs: %w", err)
	}
	return logs, nil
}

// Update applies a partial update and returns the stored row.
func (r *Repo) Update(ctx context.Context, id int64, params domain.SiteLogUpdateParams) (*domain.SiteLog, error) {
	q := sqlite.QuerierFromCtx(ctx, r.db)

	b := sqlite.Builder().Update(table).Where(squirrel.Eq{"id": id})
	set := 0
	if params.Caption != nil {
		b, set = b.Set("caption", *params.Caption), set+1
	}
	if params.Description != nil {
		b, set = b.Set("description", *params.Description), set+1
	}
	if params.Priority != nil {
		b, set = b.Set("priority", string(*params.Priority)), set+1
	}
	if params.Status != nil {
		b, set = b.Set("status", string(*params.Status)), set+1
	}
	if params.Location != nil {
		b, set = b.Set("location", *params.Location), set+1
	}
	if params.Tags != nil {
		b, set = b.Set("tags", sqlite.EncodeStrings(*params.Tags)), set+1
	}
	if params.Notes != nil {
		b, set = b.Set("notes", *params.Notes), set+1
	}
	if params.Acknowledged != nil {
		b, set = b.Set("acknowledged", sqlite.BoolInt(*params.Acknowledged)), set+1
	}
	if params.AcknowledgedAt != nil {
		b, set = b.Set("acknowledged_at", sqlite.NullMillis(params.AcknowledgedAt)), set+1
	}
	if params.Bookmarked != nil {
		b, set = b.Set("bookmarked", sqlite.BoolInt(*params.Bookmarked)), set+1
	}
	if params.UpdatedAt != nil {
		b, set = b.Set("updated_at", sqlite.NullMillis(params.UpdatedAt)), set+1
	}

	if set == 0 {
		return r.GetByID(ctx, id)
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update site log: %w", err)
	}
	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, sqlite.MapError(err, "site log", id)
	}
	if err := sqlite.ExpectAffected(res, "site log", id); err != nil {
		return nil, err
	}

	return r.GetByID(ctx, id)
}

// Delete removes a log.
func (r *Repo) Delete(ctx context.Context, id int64) error {
	q := sqlite.QuerierFromCtx(ctx, r.db)

	res, err := q.ExecContext(ctx, `DELETE FROM site_logs WHERE id = ?`, id)
	if err != nil {
		return sqlite.MapDeleteError(err, "site log", id)
	}
	return sqlite.ExpectAffected(res, "site log", id)
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanLog(row scanner) (*domain.SiteLog, error) {
	var (
		l                    domain.SiteLog
		priority, status     string
		tags                 string
		acknowledged, marked int
		ackAt, updated       sql.NullInt64
		created              int64
	)
	if err := row.Scan(&l.ID, &l.Caption, &l.Description, &priority, &status, &l.Location, &tags, &l.Notes,
		&acknowledged, &ackAt, &marked, &created, &updated); err != nil {
		return nil, err
	}
	l.Priority = domain.LogPriority(priority)
	l.Status = domain.LogStatus(status)
	l.Tags = sqlite.DecodeStrings(tags)
	l.Acknowledged = acknowledged != 0
	l.AcknowledgedAt = sqlite.TimePtr(ackAt)
	l.Bookmarked = marked != 0
	l.CreatedAt = sqlite.FromMillis(created)
	l.UpdatedAt = sqlite.TimePtr(updated)
	return &l, nil
}
