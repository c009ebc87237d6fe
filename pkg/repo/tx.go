package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrNotFound is the common sentinel repositories translate pgx.ErrNoRows
// into, so callers can test with errors.Is regardless of entity.
var ErrNotFound = errors.New("record not found")

// Tx is the minimal query surface shared by pgx.Tx and *pgxpool.Pool.
// Repositories accept whichever the context carries.
type Tx interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}
