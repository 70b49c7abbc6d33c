package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"contractpad/internal/domain"
)

func TestIsPgDuplicateError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "unique violation", err: &pgconn.PgError{Code: "23505"}, want: true},
		{name: "wrapped unique violation", err: fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"}), want: true},
		{name: "foreign key violation", err: &pgconn.PgError{Code: "23503"}, want: false},
		{name: "plain error", err: errors.New("boom"), want: false},
		{name: "nil", err: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsPgDuplicateError(tt.err); got != tt.want {
				t.Errorf("IsPgDuplicateError() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsPgNoRowsError(t *testing.T) {
	if !IsPgNoRowsError(fmt.Errorf("get: %w", pgx.ErrNoRows)) {
		t.Error("expected wrapped ErrNoRows to match")
	}
	if IsPgNoRowsError(errors.New("other")) {
		t.Error("unexpected match")
	}
}

func TestRequireAffected(t *testing.T) {
	if err := requireAffected(pgconn.NewCommandTag("UPDATE 1"), "document", "d1"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	err := requireAffected(pgconn.NewCommandTag("DELETE 0"), "document", "d1")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
