package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// reportingService implements the ReportingService interface
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
	accountRepo   portsrepo.AccountReader
	tolerance     decimal.Decimal
}

// ReportingServiceOption is a functional option for configuring the reporting service
type ReportingServiceOption func(*reportingService)

// WithReportingTolerance sets the difference below which reports count as balanced.
func WithReportingTolerance(tolerance decimal.Decimal) ReportingServiceOption {
	return func(s *reportingService) {
		if tolerance.IsPositive() {
			s.tolerance = tolerance
		}
	}
}

// NewReportingService creates a new reporting service with the provided options
func NewReportingService(repo portsrepo.ReportingRepository, accountRepo portsrepo.AccountReader, options ...ReportingServiceOption) portssvc.ReportingService {
	svc := &reportingService{
		reportingRepo: repo,
		accountRepo:   accountRepo,
		tolerance:     domain.DefaultBalanceTolerance,
	}

	// Apply all options
	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure reportingService implements the ReportingService interface
var _ portssvc.ReportingService = (*reportingService)(nil)

// AccountBalance returns the posted position of one account as of asOf.
func (s *reportingService) AccountBalance(ctx context.Context, accountID string, asOf time.Time) (*domain.AccountBalance, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	asOf = domain.DateOnly(asOf)
	totals, err := s.reportingRepo.SumPostedLinesForAccount(ctx, accountID, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to sum account lines",
			slog.String("account_id", accountID),
			slog.String("asOf", asOf.Format(domain.DateLayout)))
		return nil, fmt.Errorf("failed to compute account balance: %w", err)
	}

	balance, err := accounting.PresentedBalance(account.AccountType, totals.Debit, totals.Credit)
	if err != nil {
		return nil, &apperrors.IntegrityError{Check: "account_type", Detail: err.Error()}
	}

	return &domain.AccountBalance{
		AccountID:   account.AccountID,
		Code:        account.Code,
		Name:        account.Name,
		AccountType: account.AccountType,
		AsOf:        asOf,
		Debit:       totals.Debit,
		Credit:      totals.Credit,
		RawBalance:  accounting.RawBalance(totals.Debit, totals.Credit),
		Balance:     balance,
	}, nil
}

// TrialBalance lists gross debits and credits of posted entries dated within
// [start, end] for every active account and every inactive account with activity.
func (s *reportingService) TrialBalance(ctx context.Context, start, end time.Time) (*domain.TrialBalanceReport, error) {
	start, end = domain.DateOnly(start), domain.DateOnly(end)
	if end.Before(start) {
		return nil, apperrors.NewValidationError(apperrors.ReasonInvalidInput,
			"period end %s is before start %s", end.Format(domain.DateLayout), start.Format(domain.DateLayout))
	}

	accounts, err := s.accountRepo.ListAccounts(ctx, true)
	if err != nil {
		s.LogError(ctx, err, "Failed to load accounts for trial balance")
		return nil, fmt.Errorf("failed to load accounts: %w", err)
	}
	domain.SortAccountsByCode(accounts)

	totals, err := s.reportingRepo.SumPostedLinesByAccount(ctx, &start, end)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve trial balance data",
			slog.String("start", start.Format(domain.DateLayout)),
			slog.String("end", end.Format(domain.DateLayout)))
		return nil, fmt.Errorf("failed to retrieve trial balance data: %w", err)
	}
	byAccount := totalsByAccount(totals)

	report := &domain.TrialBalanceReport{
		Start:       start,
		End:         end,
		Rows:        make([]domain.TrialBalanceRow, 0, len(accounts)),
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
	}
	for _, account := range accounts {
		t, hasActivity := byAccount[account.AccountID]
		delete(byAccount, account.AccountID)
		if !account.IsActive && !hasActivity {
			continue
		}
		row := domain.TrialBalanceRow{
			AccountID:   account.AccountID,
			Code:        account.Code,
			AccountName: account.Name,
			AccountType: account.AccountType,
			Debit:       decimal.Zero,
			Credit:      decimal.Zero,
		}
		if hasActivity {
			row.Debit, row.Credit = t.Debit, t.Credit
		}
		report.Rows = append(report.Rows, row)
		report.TotalDebit = report.TotalDebit.Add(row.Debit)
		report.TotalCredit = report.TotalCredit.Add(row.Credit)
	}

	// Lines pointing at accounts missing from the registry still count toward totals.
	for accountID, t := range byAccount {
		s.LogError(ctx, &apperrors.IntegrityError{Check: "line_account", Detail: "posted lines reference an unknown account"},
			"Trial balance found lines for an unknown account", slog.String("account_id", accountID))
		report.TotalDebit = report.TotalDebit.Add(t.Debit)
		report.TotalCredit = report.TotalCredit.Add(t.Credit)
	}

	report.Difference = report.TotalDebit.Sub(report.TotalCredit)
	report.Balanced = domain.WithinTolerance(report.TotalDebit, report.TotalCredit, s.tolerance)
	if !report.Balanced {
		s.LogError(ctx, &apperrors.IntegrityError{Check: "trial_balance", Detail: "debits and credits differ"},
			"Trial balance does not balance",
			slog.String("total_debit", report.TotalDebit.String()),
			slog.String("total_credit", report.TotalCredit.String()),
			slog.String("difference", report.Difference.String()))
	}

	s.LogInfo(ctx, "Trial balance report generated successfully",
		slog.String("start", start.Format(domain.DateLayout)),
		slog.String("end", end.Format(domain.DateLayout)),
		slog.Int("row_count", len(report.Rows)))
	return report, nil
}

// BalanceSheet reports the position as of asOf. Net income is cumulative
// income minus expenses through asOf and is added to equity in the totals.
func (s *reportingService) BalanceSheet(ctx context.Context, asOf time.Time, compareTo *time.Time) (*domain.BalanceSheetReport, error) {
	asOf = domain.DateOnly(asOf)

	accounts, err := s.accountRepo.ListAccounts(ctx, true)
	if err != nil {
		s.LogError(ctx, err, "Failed to load accounts for balance sheet")
		return nil, fmt.Errorf("failed to load accounts: %w", err)
	}
	index := domain.NewAccountIndex(accounts)

	current, err := s.balanceColumn(ctx, accounts, asOf)
	if err != nil {
		return nil, err
	}

	var prior *sheetColumn
	report := &domain.BalanceSheetReport{AsOf: asOf}
	if compareTo != nil {
		cmp := domain.DateOnly(*compareTo)
		report.CompareTo = &cmp
		if prior, err = s.balanceColumn(ctx, accounts, cmp); err != nil {
			return nil, err
		}
	}

	report.Assets = buildSection(index, domain.Asset, current, prior)
	report.Liabilities = buildSection(index, domain.Liability, current, prior)
	report.Equity = buildSection(index, domain.Equity, current, prior)

	report.Totals = current.totals(s.tolerance)
	report.NetIncome = report.Totals.NetIncome
	report.Balanced = report.Totals.Balanced
	if prior != nil {
		pt := prior.totals(s.tolerance)
		report.PriorTotals = &pt
		report.Balanced = report.Balanced && pt.Balanced
	}

	if !report.Balanced {
		s.LogError(ctx, &apperrors.IntegrityError{Check: "balance_sheet", Detail: "assets differ from liabilities plus equity"},
			"Balance sheet does not balance",
			slog.String("asOf", asOf.Format(domain.DateLayout)),
			slog.String("imbalance", report.Totals.Imbalance.String()))
	}

	s.LogInfo(ctx, "Balance sheet report generated successfully",
		slog.String("asOf", asOf.Format(domain.DateLayout)),
		slog.Bool("comparison", compareTo != nil))
	return report, nil
}

// sheetColumn holds presented balances of every account as of one date.
type sheetColumn struct {
	amounts   map[string]decimal.Decimal
	byType    map[domain.AccountType]decimal.Decimal
	netIncome decimal.Decimal
}

func (s *reportingService) balanceColumn(ctx context.Context, accounts []domain.Account, asOf time.Time) (*sheetColumn, error) {
	totals, err := s.reportingRepo.SumPostedLinesByAccount(ctx, nil, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve balance sheet data", slog.String("asOf", asOf.Format(domain.DateLayout)))
		return nil, fmt.Errorf("failed to retrieve balance sheet data: %w", err)
	}
	byAccount := totalsByAccount(totals)

	col := &sheetColumn{
		amounts: make(map[string]decimal.Decimal, len(accounts)),
		byType:  make(map[domain.AccountType]decimal.Decimal, len(domain.AccountTypes)),
	}
	for _, t := range domain.AccountTypes {
		col.byType[t] = decimal.Zero
	}
	for _, account := range accounts {
		t, ok := byAccount[account.AccountID]
		if !ok {
			col.amounts[account.AccountID] = decimal.Zero
			continue
		}
		amount, err := accounting.PresentedBalance(account.AccountType, t.Debit, t.Credit)
		if err != nil {
			return nil, &apperrors.IntegrityError{Check: "account_type", Detail: err.Error()}
		}
		col.amounts[account.AccountID] = amount
		col.byType[account.AccountType] = col.byType[account.AccountType].Add(amount)
	}
	col.netIncome = col.byType[domain.Income].Sub(col.byType[domain.Expense])
	return col, nil
}

func (c *sheetColumn) totals(tolerance decimal.Decimal) domain.BalanceSheetTotals {
	t := domain.BalanceSheetTotals{
		Assets:      c.byType[domain.Asset],
		Liabilities: c.byType[domain.Liability],
		Equity:      c.byType[domain.Equity],
		NetIncome:   c.netIncome,
	}
	t.EquityWithNetIncome = t.Equity.Add(t.NetIncome)
	t.LiabilitiesAndEquity = t.Liabilities.Add(t.EquityWithNetIncome)
	t.Imbalance = t.Assets.Sub(t.LiabilitiesAndEquity)
	t.Balanced = domain.WithinTolerance(t.Assets, t.LiabilitiesAndEquity, tolerance)
	return t
}

// buildSection lists the accounts of one type in code pre-order with their
// own amount and the rolled-up amount of their subtree. Inactive accounts are
// hidden when neither they nor any descendant carry a balance.
func buildSection(index *domain.AccountIndex, accountType domain.AccountType, current, prior *sheetColumn) []domain.BalanceSheetLine {
	order := index.PreOrder(accountType)

	rollup := subtreeSums(index, order, current)
	var priorRollup map[string]decimal.Decimal
	if prior != nil {
		priorRollup = subtreeSums(index, order, prior)
	}

	visible := make(map[string]bool, len(order))
	for i := len(order) - 1; i >= 0; i-- {
		id := order[i]
		account, _ := index.Get(id)
		show := account.IsActive || !current.amounts[id].IsZero() || (prior != nil && !prior.amounts[id].IsZero())
		for _, child := range index.Children(id) {
			if visible[child] {
				show = true
			}
		}
		visible[id] = show
	}

	lines := make([]domain.BalanceSheetLine, 0, len(order))
	for _, id := range order {
		if !visible[id] {
			continue
		}
		account, _ := index.Get(id)
		line := domain.BalanceSheetLine{
			AccountID:       id,
			Code:            account.Code,
			Name:            account.Name,
			Category:        account.Category,
			ParentAccountID: account.ParentAccountID,
			Depth:           index.Depth(id),
			Amount:          current.amounts[id],
			RollupAmount:    rollup[id],
		}
		if prior != nil {
			amount, sub := prior.amounts[id], priorRollup[id]
			line.PriorAmount = &amount
			line.PriorRollupAmount = &sub
		}
		lines = append(lines, line)
	}
	return lines
}

// subtreeSums walks a pre-order listing backwards so every child is summed
// before its parent.
func subtreeSums(index *domain.AccountIndex, order []string, col *sheetColumn) map[string]decimal.Decimal {
	inSection := make(map[string]bool, len(order))
	for _, id := range order {
		inSection[id] = true
	}
	sums := make(map[string]decimal.Decimal, len(order))
	for i := len(order) - 1; i >= 0; i-- {
		id := order[i]
		sum := col.amounts[id]
		for _, child := range index.Children(id) {
			if inSection[child] {
				sum = sum.Add(sums[child])
			}
		}
		sums[id] = sum
	}
	return sums
}

func totalsByAccount(totals []domain.AccountTotals) map[string]domain.AccountTotals {
	m := make(map[string]domain.AccountTotals, len(totals))
	for _, t := range totals {
		m[t.AccountID] = t
	}
	return m
}
