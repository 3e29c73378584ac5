package pgsql

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_engine/internal/models"
	"github.com/SscSPs/ledger_engine/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

const accountColumns = `account_id, code, name, account_type, category, parent_account_id, description,
	is_active, is_system, created_at, created_by, last_updated_at, last_updated_by`

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(base BaseRepository) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{BaseRepository: base}
}

var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

func scanAccount(row pgx.Row) (models.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountID, &m.Code, &m.Name, &m.AccountType, &m.Category, &m.ParentAccountID, &m.Description,
		&m.IsActive, &m.IsSystem, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

// SaveAccount inserts a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)

	query := `INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);`

	_, err := r.db(ctx).Exec(ctx, query,
		m.AccountID, m.Code, m.Name, m.AccountType, m.Category, m.ParentAccountID, m.Description,
		m.IsActive, m.IsSystem, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if uniqueViolationOn(err, "") {
			return fmt.Errorf("%w: account with code %s already exists", apperrors.ErrDuplicate, m.Code)
		}
		return fmt.Errorf("failed to save account %s: %w", m.AccountID, err)
	}
	return nil
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1;`
	return r.findOne(ctx, query, accountID)
}

// FindAccountByCode retrieves an account by its code.
func (r *PgxAccountRepository) FindAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE code = $1;`
	return r.findOne(ctx, query, code)
}

// LockAccount selects the account row FOR UPDATE.
func (r *PgxAccountRepository) LockAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	if !inTx(ctx) {
		return nil, fmt.Errorf("lock account %s: no transaction in context", accountID)
	}
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1 FOR UPDATE;`
	return r.findOne(ctx, query, accountID)
}

func (r *PgxAccountRepository) findOne(ctx context.Context, query string, arg string) (*domain.Account, error) {
	m, err := scanAccount(r.db(ctx).QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("account " + arg)
		}
		return nil, fmt.Errorf("failed to find account %s: %w", arg, err)
	}
	account := mapping.ToDomainAccount(m)
	return &account, nil
}

// FindAccountsByIDs retrieves multiple accounts by their IDs.
func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	accounts := make(map[string]domain.Account, len(accountIDs))
	if len(accountIDs) == 0 {
		return accounts, nil
	}

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = ANY($1);`
	rows, err := r.db(ctx).Query(ctx, query, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts by IDs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts[m.AccountID] = mapping.ToDomainAccount(m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}

	if len(accounts) != len(accountIDs) {
		slog.DebugContext(ctx, "some accounts not found", "requested", len(accountIDs), "found", len(accounts))
	}
	return accounts, nil
}

// ListAccounts retrieves the chart of accounts ordered by code.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, includeInactive bool) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE ($1 OR is_active) ORDER BY code;`
	rows, err := r.db(ctx).Query(ctx, query, includeInactive)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	var ms []models.Account
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}
	return mapping.ToDomainAccountSlice(ms), nil
}

// UpdateAccount updates mutable fields of an existing account.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `
		UPDATE accounts
		SET code = $2, name = $3, account_type = $4, category = $5, parent_account_id = $6,
		    description = $7, is_active = $8, last_updated_at = $9, last_updated_by = $10
		WHERE account_id = $1;`

	tag, err := r.db(ctx).Exec(ctx, query,
		m.AccountID, m.Code, m.Name, m.AccountType, m.Category, m.ParentAccountID,
		m.Description, m.IsActive, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if uniqueViolationOn(err, "") {
			return fmt.Errorf("%w: account with code %s already exists", apperrors.ErrDuplicate, m.Code)
		}
		return fmt.Errorf("failed to update account %s: %w", m.AccountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("account " + m.AccountID)
	}
	return nil
}

// DeleteAccount removes an account row.
func (r *PgxAccountRepository) DeleteAccount(ctx context.Context, accountID string) error {
	tag, err := r.db(ctx).Exec(ctx, `DELETE FROM accounts WHERE account_id = $1;`, accountID)
	if err != nil {
		return fmt.Errorf("failed to delete account %s: %w", accountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("account " + accountID)
	}
	return nil
}

// CountLineReferences counts lines on the account, split by whether the entry is still a draft.
func (r *PgxAccountRepository) CountLineReferences(ctx context.Context, accountID string) (int64, int64, error) {
	query := `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE je.status <> 'DRAFT')
		FROM journal_entry_lines jl
		JOIN journal_entries je ON je.entry_id = jl.entry_id
		WHERE jl.account_id = $1;`

	var total, posted int64
	if err := r.db(ctx).QueryRow(ctx, query, accountID).Scan(&total, &posted); err != nil {
		return 0, 0, fmt.Errorf("failed to count lines for account %s: %w", accountID, err)
	}
	return total, posted, nil
}

// ReassignLines moves every line from one account to another.
func (r *PgxAccountRepository) ReassignLines(ctx context.Context, fromAccountID, toAccountID string) (int64, error) {
	tag, err := r.db(ctx).Exec(ctx,
		`UPDATE journal_entry_lines SET account_id = $2 WHERE account_id = $1;`, fromAccountID, toAccountID)
	if err != nil {
		return 0, fmt.Errorf("failed to reassign lines from %s to %s: %w", fromAccountID, toAccountID, err)
	}
	return tag.RowsAffected(), nil
}

// ReparentChildren moves the children of one account under another, or to the root.
func (r *PgxAccountRepository) ReparentChildren(ctx context.Context, fromParentID, toParentID string) error {
	var newParent *string
	if toParentID != "" {
		newParent = &toParentID
	}
	_, err := r.db(ctx).Exec(ctx,
		`UPDATE accounts SET parent_account_id = $2 WHERE parent_account_id = $1;`, fromParentID, newParent)
	if err != nil {
		return fmt.Errorf("failed to reparent children of %s: %w", fromParentID, err)
	}
	return nil
}
