package repositories

import (
	"context"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountByCode retrieves an account by its unique code.
	FindAccountByCode(ctx context.Context, code string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts by their IDs. Missing ids are simply absent from the map.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves the chart of accounts ordered by code.
	ListAccounts(ctx context.Context, includeInactive bool) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount updates an existing account's mutable details.
	UpdateAccount(ctx context.Context, account domain.Account) error

	// DeleteAccount physically removes an account that nothing references.
	DeleteAccount(ctx context.Context, accountID string) error
}

// AccountUsage defines the queries and moves needed to retire an account safely.
type AccountUsage interface {
	// LockAccount selects the account FOR UPDATE inside the current transaction.
	LockAccount(ctx context.Context, accountID string) (*domain.Account, error)

	// CountLineReferences returns how many lines reference the account in total
	// and how many of those belong to POSTED or VOID entries.
	CountLineReferences(ctx context.Context, accountID string) (total int64, posted int64, err error)

	// ReassignLines moves every line of fromAccountID to toAccountID and returns the number moved.
	ReassignLines(ctx context.Context, fromAccountID, toAccountID string) (int64, error)

	// ReparentChildren points every child of fromParentID at toParentID ("" for root).
	ReparentChildren(ctx context.Context, fromParentID, toParentID string) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
// This is a facade for clients that need access to all operations
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountUsage
}

// AccountRepositoryWithTx extends AccountRepositoryFacade with transaction capabilities
type AccountRepositoryWithTx interface {
	AccountRepositoryFacade
	TransactionManager
}
