package repositories

import "context"

// TransactionManager runs units of work atomically.
type TransactionManager interface {
	// WithinTx runs fn inside one database transaction. Repositories called with
	// the ctx handed to fn participate in that transaction. A nested call runs
	// under a savepoint of the outer transaction: its failure undoes only its
	// own writes, and its success is final only when the outer unit commits.
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
