package repository

import (
	"context"
)

// Transactor runs fn inside a single storage transaction. Repository calls
// made with the context passed to fn join that transaction; any error rolls
// the whole write back.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
