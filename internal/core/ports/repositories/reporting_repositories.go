package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

// ReportingRepository defines the read-only aggregations the balance engine builds on.
// Only lines of POSTED entries are counted; DRAFT and VOID entries never contribute.
type ReportingRepository interface {
	// SumPostedLinesByAccount totals posted debits and credits per account for
	// entries dated within [from, to]. A nil from means since the beginning.
	SumPostedLinesByAccount(ctx context.Context, from *time.Time, to time.Time) ([]domain.AccountTotals, error)

	// SumPostedLinesForAccount totals posted debits and credits of one account up to asOf.
	SumPostedLinesForAccount(ctx context.Context, accountID string, asOf time.Time) (domain.AccountTotals, error)
}
