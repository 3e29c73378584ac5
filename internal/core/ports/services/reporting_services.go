package services

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

// ReportingService derives balances from posted lines. Every method is read-only.
type ReportingService interface {
	// AccountBalance returns one account's posted position as of a date.
	AccountBalance(ctx context.Context, accountID string, asOf time.Time) (*domain.AccountBalance, error)

	// TrialBalance lists gross debits and credits per account for entries dated within [start, end].
	TrialBalance(ctx context.Context, start, end time.Time) (*domain.TrialBalanceReport, error)

	// BalanceSheet reports assets, liabilities and equity as of asOf, with an optional comparison column.
	BalanceSheet(ctx context.Context, asOf time.Time, compareTo *time.Time) (*domain.BalanceSheetReport, error)
}
