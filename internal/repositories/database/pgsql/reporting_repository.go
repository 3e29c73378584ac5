package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

// reportingRepository implements the ReportingRepository interface
type reportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new reporting repository
func newReportingRepository(base BaseRepository) portsrepo.ReportingRepository {
	return &reportingRepository{BaseRepository: base}
}

var _ portsrepo.ReportingRepository = (*reportingRepository)(nil)

// SumPostedLinesByAccount totals posted lines per account for entries dated in [from, to].
func (r *reportingRepository) SumPostedLinesByAccount(ctx context.Context, from *time.Time, to time.Time) ([]domain.AccountTotals, error) {
	query := `
		SELECT
			jl.account_id,
			COALESCE(SUM(jl.debit), 0) AS total_debit,
			COALESCE(SUM(jl.credit), 0) AS total_credit
		FROM journal_entry_lines jl
		JOIN journal_entries je ON je.entry_id = jl.entry_id
		WHERE je.status = 'POSTED'
			AND je.entry_date <= $1
			AND ($2::date IS NULL OR je.entry_date >= $2::date)
		GROUP BY jl.account_id
		ORDER BY jl.account_id;
	`

	rows, err := r.db(ctx).Query(ctx, query, to, from)
	if err != nil {
		return nil, fmt.Errorf("failed to query posted totals: %w", err)
	}
	defer rows.Close()

	var totals []domain.AccountTotals
	for rows.Next() {
		var t domain.AccountTotals
		if err := rows.Scan(&t.AccountID, &t.Debit, &t.Credit); err != nil {
			return nil, fmt.Errorf("failed to scan posted totals: %w", err)
		}
		totals = append(totals, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating posted totals: %w", err)
	}
	return totals, nil
}

// SumPostedLinesForAccount totals posted lines of one account up to asOf.
func (r *reportingRepository) SumPostedLinesForAccount(ctx context.Context, accountID string, asOf time.Time) (domain.AccountTotals, error) {
	query := `
		SELECT COALESCE(SUM(jl.debit), 0), COALESCE(SUM(jl.credit), 0)
		FROM journal_entry_lines jl
		JOIN journal_entries je ON je.entry_id = jl.entry_id
		WHERE jl.account_id = $1
			AND je.status = 'POSTED'
			AND je.entry_date <= $2;
	`

	totals := domain.AccountTotals{AccountID: accountID}
	var debit, credit decimal.Decimal
	if err := r.db(ctx).QueryRow(ctx, query, accountID, asOf).Scan(&debit, &credit); err != nil {
		return totals, fmt.Errorf("failed to sum posted lines for account %s: %w", accountID, err)
	}
	totals.Debit = debit
	totals.Credit = credit
	return totals, nil
}
