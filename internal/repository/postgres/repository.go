// Package postgres implements the repository layer against PostgreSQL via
// sqlx, replacing the teacher's ent-generated client with hand-written SQL:
// this module has no code generator available, and a generic verification
// protocol (internal/auth) needs ordinary Go types to verify against rather
// than ent's query builders.
package postgres

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"

	apperrors "github.com/sport-log/sport-log-server/internal/pkg/errors"
)

// Repository wraps the shared sqlx handle. One Repository per process;
// individual entity repositories below are thin method sets on the same
// handle so a caller can compose multi-table operations without juggling
// multiple structs.
type Repository struct {
	db *sqlx.DB
}

// New creates a Repository backed by db.
func New(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// withTx runs fn inside a transaction, committing on success and rolling
// back otherwise, matching the teacher's pgx.Tx usage in its atomic writers.
func (r *Repository) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func wrapNotFound(err error) error {
	return apperrors.Wrap(err, "NOT_FOUND", "resource not found", http.StatusNotFound)
}

func wrapInternal(err error, msg string) error {
	return apperrors.Wrap(err, "DATABASE_ERROR", msg, http.StatusInternalServerError)
}

func wrapConflict(code, msg string) error {
	return apperrors.Conflict(code, msg)
}

func isUniqueViolation(err error) bool {
	// pgx surfaces unique-constraint violations as *pgconn.PgError with
	// SQLSTATE 23505; repositories that need to distinguish a duplicate
	// key from any other failure check this instead of string-matching.
	type sqlStater interface{ SQLState() string }
	var s sqlStater
	for e := err; e != nil; {
		if st, ok := e.(sqlStater); ok {
			s = st
			break
		}
		u, ok := e.(interface{ Unwrap() error })
		if !ok {
			break
		}
		e = u.Unwrap()
	}
	return s != nil && s.SQLState() == "23505"
}
