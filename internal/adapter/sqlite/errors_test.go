package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/mattn/go-sqlite3"

	"github.com/ycsite/siteops/internal/domain"
)

func TestMapError(t *testing.T) {
	t.Parallel()

	constraint := func(ext sqlite3.ErrNoExtended) error {
		return sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: ext}
	}

	tests := []struct {
		name string
		in   error
		want error
	}{
		{name: "no rows", in: sql.ErrNoRows, want: domain.ErrNotFound},
		{name: "unique", in: constraint(sqlite3.ErrConstraintUnique), want: domain.ErrAlreadyExists},
		{name: "primary key", in: constraint(sqlite3.ErrConstraintPrimaryKey), want: domain.ErrAlreadyExists},
		{name: "foreign key", in: constraint(sqlite3.ErrConstraintForeignKey), want: domain.ErrNotFound},
		{name: "check", in: constraint(sqlite3.ErrConstraintCheck), want: domain.ErrValidation},
		{name: "deadline passes through", in: context.DeadlineExceeded, want: context.DeadlineExceeded},
		{name: "wrapped no rows", in: fmt.Errorf("scan: %w", sql.ErrNoRows), want: domain.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := MapError(tt.in, "task", int64(42))
			if !errors.Is(got, tt.want) {
				t.Errorf("MapError(%v) = %v, want wrapping %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestMapError_Nil(t *testing.T) {
	t.Parallel()
	if err := MapError(nil, "task", int64(1)); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
}

func TestMapDeleteError_RestrictIsConflict(t *testing.T) {
	t.Parallel()
	err := MapDeleteError(sqlite3.Error{
		Code:         sqlite3.ErrConstraint,
		ExtendedCode: sqlite3.ErrConstraintForeignKey,
	}, "project", int64(1))
	if !errors.Is(err, domain.ErrConflict) {
		t.Errorf("expected ErrConflict, got %v", err)
	}
}
