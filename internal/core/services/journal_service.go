package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/SscSPs/ledger_engine/internal/utils/accounting"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	defaultBaseCurrency         = "USD"
	defaultReferencePrefix      = "JE"
	defaultReferenceMaxAttempts = 5
	defaultEntryPageSize        = 20
	maxEntryPageSize            = 100
)

// halfUnit is the largest rounding error a single converted line can carry.
var halfUnit = decimal.New(5, -(domain.AmountScale + 1))

// journalService posts, voids and edits journal entries.
type journalService struct {
	BaseService
	txManager            portsrepo.TransactionManager
	journalRepo          portsrepo.JournalRepositoryFacade
	accountRepo          portsrepo.AccountReader
	rates                portssvc.ExchangeRateReaderSvc
	auditor              portssvc.AuditAppender
	validator            *JournalValidator
	baseCurrency         string
	referencePrefix      string
	maxReferenceAttempts int
}

// JournalServiceOption is a functional option for configuring the journal service
type JournalServiceOption func(*journalService)

// WithBaseCurrency sets the currency all balances are kept in.
func WithBaseCurrency(code string) JournalServiceOption {
	return func(s *journalService) {
		if code != "" {
			s.baseCurrency = strings.ToUpper(code)
		}
	}
}

// WithValidator replaces the default validator (0.01 tolerance, no lock date).
func WithValidator(v *JournalValidator) JournalServiceOption {
	return func(s *journalService) {
		if v != nil {
			s.validator = v
		}
	}
}

// WithReferencePrefix sets the prefix of generated entry references.
func WithReferencePrefix(prefix string) JournalServiceOption {
	return func(s *journalService) {
		if prefix != "" {
			s.referencePrefix = prefix
		}
	}
}

// WithReferenceMaxAttempts bounds how often posting is retried after a reference collision.
func WithReferenceMaxAttempts(n int) JournalServiceOption {
	return func(s *journalService) {
		if n > 0 {
			s.maxReferenceAttempts = n
		}
	}
}

// WithJournalAuditor records voids and edits of posted entries in the audit chain.
func WithJournalAuditor(auditor portssvc.AuditAppender) JournalServiceOption {
	return func(s *journalService) {
		s.auditor = auditor
	}
}

// WithJournalClock overrides the clock used for posting timestamps.
func WithJournalClock(now func() time.Time) JournalServiceOption {
	return func(s *journalService) {
		s.Now = now
	}
}

// NewJournalService creates a new journal service with the provided options.
func NewJournalService(
	txManager portsrepo.TransactionManager,
	journalRepo portsrepo.JournalRepositoryFacade,
	accountRepo portsrepo.AccountReader,
	rates portssvc.ExchangeRateReaderSvc,
	options ...JournalServiceOption,
) portssvc.JournalSvcFacade {
	svc := &journalService{
		txManager:            txManager,
		journalRepo:          journalRepo,
		accountRepo:          accountRepo,
		rates:                rates,
		validator:            NewJournalValidator(domain.DefaultBalanceTolerance, nil),
		baseCurrency:         defaultBaseCurrency,
		referencePrefix:      defaultReferencePrefix,
		maxReferenceAttempts: defaultReferenceMaxAttempts,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure journalService implements the portssvc.JournalSvcFacade interface
var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// ValidateEntry runs the full posting pipeline without writing anything.
func (s *journalService) ValidateEntry(ctx context.Context, req dto.PostJournalEntryRequest) error {
	proposed, currency, err := s.proposalFromRequest(req)
	if err != nil {
		return err
	}
	accounts, err := s.loadAccounts(ctx, proposed)
	if err != nil {
		return err
	}
	if err := s.validator.Validate(proposed, accounts); err != nil {
		return err
	}
	draft := domain.JournalEntry{EntryDate: proposed.EntryDate, CurrencyCode: currency}
	lines, err := s.convertLines(ctx, draft, proposed.Lines, "")
	if err != nil {
		return err
	}
	return s.validator.Validate(baseProposal(proposed, lines), accounts)
}

// PostEntry validates, converts and posts a new entry in one transaction.
func (s *journalService) PostEntry(ctx context.Context, req dto.PostJournalEntryRequest, actor string) (*domain.JournalEntry, error) {
	proposed, currency, err := s.proposalFromRequest(req)
	if err != nil {
		return nil, err
	}

	var posted domain.JournalEntry
	err = s.withReferenceRetry(ctx, func(txCtx context.Context) error {
		accounts, err := s.loadAccounts(txCtx, proposed)
		if err != nil {
			return err
		}
		if err := s.validator.Validate(proposed, accounts); err != nil {
			return err
		}
		if err := s.checkReplaces(txCtx, req.ReplacesEntryID); err != nil {
			return err
		}

		now := s.now()
		entry := domain.JournalEntry{
			EntryID:         uuid.NewString(),
			EntryDate:       proposed.EntryDate,
			EntryType:       proposed.EntryType,
			Description:     proposed.Description,
			CurrencyCode:    currency,
			Status:          domain.Posted,
			PostedAt:        &now,
			PostedBy:        actor,
			ReplacesEntryID: req.ReplacesEntryID,
			AuditFields:     newAuditFields(now, actor),
		}

		lines, err := s.convertLines(txCtx, entry, proposed.Lines, actor)
		if err != nil {
			return err
		}
		if err := s.validator.Validate(baseProposal(proposed, lines), accounts); err != nil {
			return err
		}
		entry.Lines = lines

		if entry.Reference, err = s.nextReference(txCtx, entry.EntryDate); err != nil {
			return err
		}
		if err := s.journalRepo.InsertEntry(txCtx, entry); err != nil {
			return err
		}
		posted = entry
		return nil
	})
	if err != nil {
		s.logFailure(ctx, err, "Failed to post journal entry")
		return nil, err
	}

	s.LogInfo(ctx, "Journal entry posted",
		slog.String("entry_id", posted.EntryID),
		slog.String("reference", posted.Reference),
		slog.Int("lines", len(posted.Lines)))
	return &posted, nil
}

// CreateDraft stores an entry without posting it. Only line-level checks apply.
func (s *journalService) CreateDraft(ctx context.Context, req dto.PostJournalEntryRequest, actor string) (*domain.JournalEntry, error) {
	proposed, currency, err := s.proposalFromRequest(req)
	if err != nil {
		return nil, err
	}

	var draft domain.JournalEntry
	err = s.txManager.WithinTx(ctx, func(txCtx context.Context) error {
		accounts, err := s.loadAccounts(txCtx, proposed)
		if err != nil {
			return err
		}
		if err := s.validator.ValidateLines(proposed, accounts); err != nil {
			return err
		}

		now := s.now()
		entry := domain.JournalEntry{
			EntryID:         uuid.NewString(),
			EntryDate:       proposed.EntryDate,
			EntryType:       proposed.EntryType,
			Description:     proposed.Description,
			CurrencyCode:    currency,
			Status:          domain.Draft,
			ReplacesEntryID: req.ReplacesEntryID,
			AuditFields:     newAuditFields(now, actor),
		}
		if entry.Lines, err = s.convertLines(txCtx, entry, proposed.Lines, actor); err != nil {
			return err
		}
		if err := s.journalRepo.InsertEntry(txCtx, entry); err != nil {
			return err
		}
		draft = entry
		return nil
	})
	if err != nil {
		s.logFailure(ctx, err, "Failed to create draft journal entry")
		return nil, err
	}

	s.LogInfo(ctx, "Draft journal entry created", slog.String("entry_id", draft.EntryID))
	return &draft, nil
}

// PostDraft fully validates a draft, re-converts its lines at the current
// rates for its date and posts it.
func (s *journalService) PostDraft(ctx context.Context, entryID string, actor string) (*domain.JournalEntry, error) {
	var posted domain.JournalEntry
	err := s.withReferenceRetry(ctx, func(txCtx context.Context) error {
		entry, err := s.journalRepo.LockEntry(txCtx, entryID)
		if err != nil {
			return err
		}
		if !entry.Status.CanTransitionTo(domain.Posted) {
			return &apperrors.StateError{EntryID: entryID, Status: string(entry.Status), Operation: "post"}
		}

		proposed := proposalFromEntry(*entry)
		accounts, err := s.loadAccounts(txCtx, proposed)
		if err != nil {
			return err
		}
		if err := s.validator.Validate(proposed, accounts); err != nil {
			return err
		}
		if err := s.checkReplaces(txCtx, entry.ReplacesEntryID); err != nil {
			return err
		}

		lines, err := s.convertLines(txCtx, *entry, proposed.Lines, actor)
		if err != nil {
			return err
		}
		if err := s.validator.Validate(baseProposal(proposed, lines), accounts); err != nil {
			return err
		}

		reference, err := s.nextReference(txCtx, entry.EntryDate)
		if err != nil {
			return err
		}
		now := s.now()
		if err := s.journalRepo.ReplaceLines(txCtx, entryID, lines); err != nil {
			return err
		}
		if err := s.journalRepo.MarkPosted(txCtx, entryID, reference, now, actor); err != nil {
			return err
		}

		entry.Lines = lines
		entry.Reference = reference
		entry.Status = domain.Posted
		entry.PostedAt = &now
		entry.PostedBy = actor
		entry.LastUpdatedAt = now
		entry.LastUpdatedBy = actor
		posted = *entry
		return nil
	})
	if err != nil {
		s.logFailure(ctx, err, "Failed to post draft journal entry", slog.String("entry_id", entryID))
		return nil, err
	}

	s.LogInfo(ctx, "Draft journal entry posted",
		slog.String("entry_id", posted.EntryID),
		slog.String("reference", posted.Reference))
	return &posted, nil
}

// VoidEntry excludes a posted entry from every balance. Its lines are kept.
func (s *journalService) VoidEntry(ctx context.Context, entryID string, actor string) (*domain.JournalEntry, error) {
	var voided domain.JournalEntry
	err := s.txManager.WithinTx(ctx, func(txCtx context.Context) error {
		entry, err := s.journalRepo.LockEntry(txCtx, entryID)
		if err != nil {
			return err
		}
		if !entry.Status.CanTransitionTo(domain.Void) {
			return &apperrors.StateError{EntryID: entryID, Status: string(entry.Status), Operation: "void"}
		}
		if err := s.validator.CheckPeriod(entry.EntryDate); err != nil {
			return err
		}

		before := snapshotOf(*entry, false)
		now := s.now()
		if err := s.journalRepo.MarkVoided(txCtx, entryID, now, actor); err != nil {
			return err
		}
		entry.Status = domain.Void
		entry.VoidedAt = &now
		entry.VoidedBy = actor
		entry.LastUpdatedAt = now
		entry.LastUpdatedBy = actor

		if err := s.audit(txCtx, actor, domain.ActionEntryVoided, entryID, before, snapshotOf(*entry, false)); err != nil {
			return err
		}
		voided = *entry
		return nil
	})
	if err != nil {
		s.logFailure(ctx, err, "Failed to void journal entry", slog.String("entry_id", entryID))
		return nil, err
	}

	s.LogInfo(ctx, "Journal entry voided",
		slog.String("entry_id", entryID),
		slog.String("reference", voided.Reference))
	return &voided, nil
}

// EditEntry replaces all lines of a draft or posted entry and optionally its
// date and description. Posted entries are fully re-validated and the change
// is recorded in the audit chain.
func (s *journalService) EditEntry(ctx context.Context, entryID string, req dto.EditJournalEntryRequest, actor string) (*domain.JournalEntry, error) {
	var edited domain.JournalEntry
	err := s.txManager.WithinTx(ctx, func(txCtx context.Context) error {
		entry, err := s.journalRepo.LockEntry(txCtx, entryID)
		if err != nil {
			return err
		}
		if !entry.Status.IsEditable() {
			return &apperrors.StateError{EntryID: entryID, Status: string(entry.Status), Operation: "edit"}
		}
		isPosted := entry.Status == domain.Posted
		if isPosted {
			if err := s.validator.CheckPeriod(entry.EntryDate); err != nil {
				return err
			}
		}

		updated := *entry
		if req.EntryDate != nil && !req.EntryDate.IsZero() {
			updated.EntryDate = domain.DateOnly(req.EntryDate.Time)
		}
		if req.Description != nil {
			updated.Description = *req.Description
		}

		proposed := domain.ProposedEntry{
			EntryDate:   updated.EntryDate,
			EntryType:   updated.EntryType,
			Description: updated.Description,
			Lines:       proposedLines(req.Lines),
		}
		accounts, err := s.loadAccounts(txCtx, proposed)
		if err != nil {
			return err
		}
		if isPosted {
			err = s.validator.Validate(proposed, accounts)
		} else {
			err = s.validator.ValidateLines(proposed, accounts)
		}
		if err != nil {
			return err
		}

		lines, err := s.convertLines(txCtx, updated, proposed.Lines, actor)
		if err != nil {
			return err
		}
		if isPosted {
			if err := s.validator.Validate(baseProposal(proposed, lines), accounts); err != nil {
				return err
			}
		}

		now := s.now()
		updated.Lines = lines
		updated.LastUpdatedAt = now
		updated.LastUpdatedBy = actor
		if err := s.journalRepo.UpdateEntryHeader(txCtx, updated); err != nil {
			return err
		}
		if err := s.journalRepo.ReplaceLines(txCtx, entryID, lines); err != nil {
			return err
		}

		if isPosted {
			if err := s.audit(txCtx, actor, domain.ActionEntryEdited, entryID,
				snapshotOf(*entry, true), snapshotOf(updated, true)); err != nil {
				return err
			}
		}
		edited = updated
		return nil
	})
	if err != nil {
		s.logFailure(ctx, err, "Failed to edit journal entry", slog.String("entry_id", entryID))
		return nil, err
	}

	s.LogInfo(ctx, "Journal entry edited",
		slog.String("entry_id", entryID),
		slog.String("status", string(edited.Status)),
		slog.Int("lines", len(edited.Lines)))
	return &edited, nil
}

func (s *journalService) GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get journal entry", slog.String("entry_id", entryID))
		}
		return nil, err
	}
	return entry, nil
}

func (s *journalService) GetEntryByReference(ctx context.Context, reference string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByReference(ctx, reference)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get journal entry by reference", slog.String("reference", reference))
		}
		return nil, err
	}
	return entry, nil
}

func (s *journalService) ListEntries(ctx context.Context, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error) {
	filter := domain.JournalEntryFilter{Status: params.Status}
	if params.From != "" {
		from, err := dto.ParseDate(params.From)
		if err != nil {
			return nil, apperrors.NewValidationError(apperrors.ReasonInvalidInput, "%s", err.Error())
		}
		filter.FromDate = &from.Time
	}
	if params.To != "" {
		to, err := dto.ParseDate(params.To)
		if err != nil {
			return nil, apperrors.NewValidationError(apperrors.ReasonInvalidInput, "%s", err.Error())
		}
		filter.ToDate = &to.Time
	}

	limit := params.Limit
	if limit <= 0 {
		limit = defaultEntryPageSize
	}
	if limit > maxEntryPageSize {
		limit = maxEntryPageSize
	}

	entries, nextToken, err := s.journalRepo.ListEntries(ctx, filter, limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list journal entries")
		return nil, fmt.Errorf("failed to list journal entries: %w", err)
	}

	resp := &dto.ListJournalEntriesResponse{
		Entries:   make([]dto.JournalEntryResponse, 0, len(entries)),
		NextToken: nextToken,
	}
	for i := range entries {
		resp.Entries = append(resp.Entries, dto.ToJournalEntryResponse(&entries[i]))
	}
	return resp, nil
}

// withReferenceRetry runs fn in a fresh transaction, retrying the whole unit
// when the generated reference was already taken.
func (s *journalService) withReferenceRetry(ctx context.Context, fn func(ctx context.Context) error) error {
	var err error
	for attempt := 1; attempt <= s.maxReferenceAttempts; attempt++ {
		err = s.txManager.WithinTx(ctx, fn)
		if !errors.Is(err, apperrors.ErrReferenceCollision) {
			return err
		}
		s.LogWarn(ctx, "Journal reference collision, retrying", slog.Int("attempt", attempt))
	}
	return fmt.Errorf("giving up after %d attempts: %w", s.maxReferenceAttempts, err)
}

func (s *journalService) nextReference(ctx context.Context, entryDate time.Time) (string, error) {
	year := entryDate.Year()
	n, err := s.journalRepo.NextReferenceNumber(ctx, year)
	if err != nil {
		return "", fmt.Errorf("failed to allocate journal reference: %w", err)
	}
	return fmt.Sprintf("%s-%d-%06d", s.referencePrefix, year, n), nil
}

// checkReplaces enforces that a replacement entry only points at a voided entry.
func (s *journalService) checkReplaces(ctx context.Context, replacesEntryID string) error {
	if replacesEntryID == "" {
		return nil
	}
	replaced, err := s.journalRepo.FindEntryByID(ctx, replacesEntryID)
	if err != nil {
		return err
	}
	if replaced.Status != domain.Void {
		return &apperrors.StateError{EntryID: replacesEntryID, Status: string(replaced.Status), Operation: "replace"}
	}
	return nil
}

func (s *journalService) loadAccounts(ctx context.Context, proposed domain.ProposedEntry) (map[string]domain.Account, error) {
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, proposed.AccountIDs())
	if err != nil {
		return nil, fmt.Errorf("failed to load accounts: %w", err)
	}
	return accounts, nil
}

// convertLines turns proposed lines into persisted lines with base amounts.
// One rate is resolved per entry and applied to every line. When the entered
// amounts balance exactly, any residual left by per-line rounding is moved
// onto the largest line of the lighter side.
func (s *journalService) convertLines(ctx context.Context, entry domain.JournalEntry, proposed []domain.ProposedLine, actor string) ([]domain.JournalLine, error) {
	rate, err := s.rates.GetExchangeRate(ctx, entry.CurrencyCode, s.baseCurrency, entry.EntryDate)
	if err != nil {
		return nil, err
	}

	now := s.now()
	lines := make([]domain.JournalLine, len(proposed))
	for i, p := range proposed {
		lines[i] = domain.JournalLine{
			LineID:         uuid.NewString(),
			EntryID:        entry.EntryID,
			LineNo:         i + 1,
			AccountID:      p.AccountID,
			Description:    p.Description,
			CurrencyCode:   entry.CurrencyCode,
			ExchangeRate:   rate.Rate,
			OriginalDebit:  p.Debit,
			OriginalCredit: p.Credit,
			Debit:          domain.RoundAmount(p.Debit.Mul(rate.Rate)),
			Credit:         domain.RoundAmount(p.Credit.Mul(rate.Rate)),
			CreatedAt:      now,
			CreatedBy:      actor,
		}
	}

	origDebit, origCredit := accounting.SumProposed(proposed)
	if origDebit.Equal(origCredit) {
		maxResidual := halfUnit.Mul(decimal.NewFromInt(int64(len(lines))))
		if residual := accounting.AllocateRoundingResidual(lines, maxResidual); !residual.IsZero() {
			s.LogDebug(ctx, "Allocated rounding residual",
				slog.String("entry_id", entry.EntryID),
				slog.String("residual", residual.String()))
		}
	}
	return lines, nil
}

func (s *journalService) proposalFromRequest(req dto.PostJournalEntryRequest) (domain.ProposedEntry, string, error) {
	if req.EntryDate.IsZero() {
		return domain.ProposedEntry{}, "", apperrors.NewValidationError(apperrors.ReasonInvalidInput, "entry date is required")
	}
	currency := strings.ToUpper(strings.TrimSpace(req.CurrencyCode))
	if currency == "" {
		currency = s.baseCurrency
	}
	entryType := req.EntryType
	if entryType == "" {
		entryType = domain.EntryTypeAdjustment
	}
	return domain.ProposedEntry{
		EntryDate:   domain.DateOnly(req.EntryDate.Time),
		EntryType:   entryType,
		Description: req.Description,
		Lines:       proposedLines(req.Lines),
	}, currency, nil
}

func (s *journalService) audit(ctx context.Context, actor string, action domain.AuditAction, entryID string, before, after any) error {
	if s.auditor == nil {
		return nil
	}
	record, err := newAuditRecord(actor, action, domain.SubjectJournalEntry, entryID, before, after)
	if err != nil {
		return err
	}
	_, err = s.auditor.Append(ctx, record)
	return err
}

// logFailure logs rejected requests at WARN and everything else at ERROR.
func (s *journalService) logFailure(ctx context.Context, err error, msg string, keyvals ...any) {
	if errors.Is(err, apperrors.ErrValidation) || errors.Is(err, apperrors.ErrState) || errors.Is(err, apperrors.ErrNotFound) {
		args := append([]any{slog.String("error", err.Error())}, keyvals...)
		s.LogWarn(ctx, msg, args...)
		return
	}
	s.LogError(ctx, err, msg, keyvals...)
}

func proposedLines(reqLines []dto.JournalLineRequest) []domain.ProposedLine {
	lines := make([]domain.ProposedLine, len(reqLines))
	for i, l := range reqLines {
		lines[i] = domain.ProposedLine{
			AccountID:   l.AccountID,
			Debit:       l.Debit,
			Credit:      l.Credit,
			Description: l.Description,
		}
	}
	return lines
}

// proposalFromEntry rebuilds the entered amounts of a stored entry.
func proposalFromEntry(entry domain.JournalEntry) domain.ProposedEntry {
	lines := make([]domain.ProposedLine, len(entry.Lines))
	for i, l := range entry.Lines {
		lines[i] = domain.ProposedLine{
			AccountID:   l.AccountID,
			Debit:       l.OriginalDebit,
			Credit:      l.OriginalCredit,
			Description: l.Description,
		}
	}
	return domain.ProposedEntry{
		EntryDate:   entry.EntryDate,
		EntryType:   entry.EntryType,
		Description: entry.Description,
		Lines:       lines,
	}
}

// baseProposal re-expresses converted lines as a proposal for re-validation.
func baseProposal(p domain.ProposedEntry, lines []domain.JournalLine) domain.ProposedEntry {
	base := domain.ProposedEntry{
		EntryDate:   p.EntryDate,
		EntryType:   p.EntryType,
		Description: p.Description,
		Lines:       make([]domain.ProposedLine, len(lines)),
	}
	for i, l := range lines {
		base.Lines[i] = domain.ProposedLine{AccountID: l.AccountID, Debit: l.Debit, Credit: l.Credit, Description: l.Description}
	}
	return base
}

func newAuditFields(now time.Time, actor string) domain.AuditFields {
	return domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     actor,
		LastUpdatedAt: now,
		LastUpdatedBy: actor,
	}
}

// entrySnapshot is the audit representation of an entry. Lines carry every
// persisted field, originals and rate included.
type entrySnapshot struct {
	EntryID         string               `json:"entryID"`
	Reference       string               `json:"reference"`
	Status          domain.JournalStatus `json:"status"`
	EntryType       domain.EntryType     `json:"entryType"`
	EntryDate       string               `json:"entryDate"`
	Description     string               `json:"description"`
	CurrencyCode    string               `json:"currencyCode"`
	PostedAt        *time.Time           `json:"postedAt,omitempty"`
	PostedBy        string               `json:"postedBy,omitempty"`
	VoidedAt        *time.Time           `json:"voidedAt,omitempty"`
	VoidedBy        string               `json:"voidedBy,omitempty"`
	ReplacesEntryID string               `json:"replacesEntryID,omitempty"`
	Lines           []domain.JournalLine `json:"lines,omitempty"`
}

func snapshotOf(entry domain.JournalEntry, withLines bool) entrySnapshot {
	snap := entrySnapshot{
		EntryID:         entry.EntryID,
		Reference:       entry.Reference,
		Status:          entry.Status,
		EntryType:       entry.EntryType,
		EntryDate:       entry.EntryDate.Format(domain.DateLayout),
		Description:     entry.Description,
		CurrencyCode:    entry.CurrencyCode,
		PostedAt:        entry.PostedAt,
		PostedBy:        entry.PostedBy,
		VoidedAt:        entry.VoidedAt,
		VoidedBy:        entry.VoidedBy,
		ReplacesEntryID: entry.ReplacesEntryID,
	}
	if withLines {
		snap.Lines = append([]domain.JournalLine(nil), entry.Lines...)
	}
	return snap
}
