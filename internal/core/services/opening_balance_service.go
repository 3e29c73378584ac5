package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/SscSPs/ledger_engine/internal/utils/accounting"
)

const (
	// DefaultOpeningBalanceEquityCode is the code of the account that absorbs opening residuals.
	DefaultOpeningBalanceEquityCode = "3900"
	openingBalanceEquityName        = "Opening Balance Equity"
	defaultOpeningDescription       = "Opening balances"
)

// openingBalanceService turns a list of seed balances into one posted entry.
type openingBalanceService struct {
	BaseService
	txManager  portsrepo.TransactionManager
	accounts   portssvc.AccountWriterSvc
	journal    portssvc.JournalPosterSvc
	equityCode string
}

// NewOpeningBalanceService creates the importer. An empty equityCode uses DefaultOpeningBalanceEquityCode.
func NewOpeningBalanceService(txManager portsrepo.TransactionManager, accounts portssvc.AccountWriterSvc, journal portssvc.JournalPosterSvc, equityCode string) portssvc.OpeningBalanceSvc {
	if equityCode == "" {
		equityCode = DefaultOpeningBalanceEquityCode
	}
	return &openingBalanceService{txManager: txManager, accounts: accounts, journal: journal, equityCode: equityCode}
}

var _ portssvc.OpeningBalanceSvc = (*openingBalanceService)(nil)

// PostOpeningBalances drops all-zero rows and balances the rest against the
// opening balance equity account, which is created on first use. Creating the
// account and posting the entry commit together.
func (s *openingBalanceService) PostOpeningBalances(ctx context.Context, req dto.PostOpeningBalancesRequest, actor string) (*domain.JournalEntry, error) {
	lines := make([]dto.JournalLineRequest, 0, len(req.Rows)+1)
	for _, row := range req.Rows {
		if row.Debit.IsZero() && row.Credit.IsZero() {
			continue
		}
		lines = append(lines, dto.JournalLineRequest{AccountID: row.AccountID, Debit: row.Debit, Credit: row.Credit})
	}
	if len(lines) == 0 {
		return nil, apperrors.NewValidationError(apperrors.ReasonTooFewLines, "no non-zero opening balances given")
	}

	proposed := make([]domain.ProposedLine, len(lines))
	for i, l := range lines {
		proposed[i] = domain.ProposedLine{AccountID: l.AccountID, Debit: l.Debit, Credit: l.Credit}
	}
	debit, credit := accounting.SumProposed(proposed)
	residual := debit.Sub(credit)

	description := req.Description
	if description == "" {
		description = defaultOpeningDescription
	}

	var entry *domain.JournalEntry
	err := s.txManager.WithinTx(ctx, func(txCtx context.Context) error {
		entryLines := lines
		if !residual.IsZero() {
			equity, err := s.accounts.EnsureSystemAccount(txCtx, s.equityCode, openingBalanceEquityName, domain.Equity, actor)
			if err != nil {
				s.LogError(txCtx, err, "Failed to ensure opening balance equity account", slog.String("code", s.equityCode))
				return err
			}
			balancing := dto.JournalLineRequest{AccountID: equity.AccountID, Description: openingBalanceEquityName}
			if residual.IsPositive() {
				balancing.Credit = residual
			} else {
				balancing.Debit = residual.Neg()
			}
			entryLines = append(entryLines, balancing)
		}

		posted, err := s.journal.PostEntry(txCtx, dto.PostJournalEntryRequest{
			EntryDate:   req.EntryDate,
			EntryType:   domain.EntryTypeOpening,
			Description: description,
			Lines:       entryLines,
		}, actor)
		if err != nil {
			return err
		}
		entry = posted
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Opening balances posted",
		slog.String("entry_id", entry.EntryID),
		slog.String("reference", entry.Reference),
		slog.String("residual", residual.String()))
	return entry, nil
}
