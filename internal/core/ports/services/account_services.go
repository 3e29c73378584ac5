package services

import (
	"context"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/dto"
)

// AccountReaderSvc defines read operations over the chart of accounts
type AccountReaderSvc interface {
	// GetAccountByID retrieves an account by id.
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// GetAccountByCode retrieves an account by its unique code.
	GetAccountByCode(ctx context.Context, code string) (*domain.Account, error)

	// GetAccountsByIDs retrieves several accounts at once. Unknown ids are absent from the map.
	GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts lists accounts ordered by code.
	ListAccounts(ctx context.Context, includeInactive bool) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations over the chart of accounts
type AccountWriterSvc interface {
	// CreateAccount adds an account to the chart.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, actor string) (*domain.Account, error)

	// UpdateAccount changes mutable account details. The type is frozen once posted lines exist.
	UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, actor string) (*domain.Account, error)

	// DeactivateAccount soft-retires an account; it no longer accepts new lines.
	DeactivateAccount(ctx context.Context, accountID string, actor string) (*domain.Account, error)

	// ActivateAccount reverses a deactivation.
	ActivateAccount(ctx context.Context, accountID string, actor string) (*domain.Account, error)

	// DeleteAccount removes an account, first reassigning referencing lines when a replacement is given.
	DeleteAccount(ctx context.Context, accountID string, req dto.DeleteAccountRequest, actor string) (*dto.DeleteAccountResponse, error)

	// EnsureSystemAccount returns the account with code, creating it as a system account when missing.
	EnsureSystemAccount(ctx context.Context, code string, name string, accountType domain.AccountType, actor string) (*domain.Account, error)
}

// AccountSvcFacade combines all account-related service interfaces
// This is a facade for clients that need access to all operations
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
