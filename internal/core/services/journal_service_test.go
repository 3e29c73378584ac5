package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/stretchr/testify/suite"
)

type JournalServiceTestSuite struct {
	suite.Suite
	ctx     context.Context
	store   *fakeStore
	ledger  *testLedger
	cash    *domain.Account
	bank    *domain.Account
	fees    *domain.Account
	expense *domain.Account
}

func (suite *JournalServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.store = newFakeStore()
	suite.ledger = newTestLedger(suite.store)
	suite.cash = suite.ledger.account(suite.T(), "1000", "Cash", domain.Asset, "")
	suite.bank = suite.ledger.account(suite.T(), "1010", "Bank", domain.Asset, "")
	suite.fees = suite.ledger.account(suite.T(), "4000", "Program Fees", domain.Income, "")
	suite.expense = suite.ledger.account(suite.T(), "5000", "Supplies", domain.Expense, "")
}

func (suite *JournalServiceTestSuite) trialBalance(start, end string) *domain.TrialBalanceReport {
	report, err := suite.ledger.Reporting.TrialBalance(suite.ctx, mustDate(start), mustDate(end))
	suite.Require().NoError(err)
	return report
}

func (suite *JournalServiceTestSuite) rowFor(report *domain.TrialBalanceReport, accountID string) domain.TrialBalanceRow {
	for _, row := range report.Rows {
		if row.AccountID == accountID {
			return row
		}
	}
	suite.FailNow("row not found", accountID)
	return domain.TrialBalanceRow{}
}

func (suite *JournalServiceTestSuite) TestPostThenVoid_TrialBalanceReturnsToZero() {
	entry := suite.ledger.post(suite.T(), "2024-01-10",
		debit(suite.cash.AccountID, "100000"),
		credit(suite.fees.AccountID, "100000"))

	suite.Equal(domain.Posted, entry.Status)
	suite.Equal("JE-2024-000001", entry.Reference)
	suite.Require().NotNil(entry.PostedAt)
	suite.Equal(testActor, entry.PostedBy)
	suite.Len(entry.Lines, 2)

	tb := suite.trialBalance("2024-01-01", "2024-01-31")
	suite.True(tb.Balanced)
	requireDecimal(suite.T(), "100000", suite.rowFor(tb, suite.cash.AccountID).Debit)
	requireDecimal(suite.T(), "100000", suite.rowFor(tb, suite.fees.AccountID).Credit)
	requireDecimal(suite.T(), "100000", tb.TotalDebit)
	requireDecimal(suite.T(), "100000", tb.TotalCredit)

	voided, err := suite.ledger.Journal.VoidEntry(suite.ctx, entry.EntryID, testActor)
	suite.Require().NoError(err)
	suite.Equal(domain.Void, voided.Status)
	suite.Equal(entry.Reference, voided.Reference)
	suite.Require().NotNil(voided.VoidedAt)

	tb = suite.trialBalance("2024-01-01", "2024-01-31")
	suite.True(tb.Balanced)
	requireDecimal(suite.T(), "0", tb.TotalDebit)
	requireDecimal(suite.T(), "0", tb.TotalCredit)
	requireDecimal(suite.T(), "0", suite.rowFor(tb, suite.cash.AccountID).Debit)

	// Lines survive the void untouched.
	stored, err := suite.ledger.Journal.GetEntryByID(suite.ctx, entry.EntryID)
	suite.Require().NoError(err)
	suite.Len(stored.Lines, 2)
	requireDecimal(suite.T(), "100000", stored.Lines[0].Debit)

	suite.Equal([]string{string(domain.ActionEntryVoided)}, suite.store.auditActions())
	verification, err := suite.ledger.Audit.Verify(suite.ctx, 0, 0)
	suite.Require().NoError(err)
	suite.True(verification.Valid)
	suite.Equal(1, verification.Checked)
}

func (suite *JournalServiceTestSuite) TestPostEntry_UnbalancedIsRejectedAndNothingPersisted() {
	before := suite.store.entryCount()

	_, err := suite.ledger.Journal.PostEntry(suite.ctx, entryRequest("2024-01-10",
		debit(suite.cash.AccountID, "50000"),
		credit(suite.fees.AccountID, "49000")), testActor)

	suite.Require().Error(err)
	suite.True(errors.Is(err, apperrors.ErrValidation))
	reason, ok := apperrors.ReasonOf(err)
	suite.True(ok)
	suite.Equal(apperrors.ReasonUnbalanced, reason)
	suite.Equal(before, suite.store.entryCount())
	suite.Empty(suite.store.refSeq, "no reference number may be consumed")
}

func (suite *JournalServiceTestSuite) TestPostEntry_ValidationReasons() {
	inactive := suite.ledger.account(suite.T(), "1090", "Old Till", domain.Asset, "")
	_, err := suite.ledger.Account.DeactivateAccount(suite.ctx, inactive.AccountID, testActor)
	suite.Require().NoError(err)

	tests := []struct {
		name      string
		lines     []dto.JournalLineRequest
		reason    apperrors.ValidationReason
		lineIndex int
	}{
		{"single line", []dto.JournalLineRequest{debit(suite.cash.AccountID, "10")}, apperrors.ReasonTooFewLines, -1},
		{"unknown account", []dto.JournalLineRequest{debit("missing", "10"), credit(suite.fees.AccountID, "10")}, apperrors.ReasonUnknownAccount, 0},
		{"inactive account", []dto.JournalLineRequest{debit(suite.cash.AccountID, "10"), credit(inactive.AccountID, "10")}, apperrors.ReasonInactiveAccount, 1},
		{"both debits", []dto.JournalLineRequest{debit(suite.cash.AccountID, "10"), debit(suite.bank.AccountID, "10")}, apperrors.ReasonMissingCredit, -1},
		{"sub-tolerance rounding rejected", []dto.JournalLineRequest{debit(suite.cash.AccountID, "10.00"), credit(suite.fees.AccountID, "9.99")}, apperrors.ReasonUnbalanced, -1},
	}
	for _, tc := range tests {
		suite.Run(tc.name, func() {
			_, err := suite.ledger.Journal.PostEntry(suite.ctx, entryRequest("2024-01-10", tc.lines...), testActor)
			var vErr *apperrors.ValidationError
			suite.Require().True(errors.As(err, &vErr), "expected a validation error, got %v", err)
			suite.Equal(tc.reason, vErr.Reason)
			suite.Equal(tc.lineIndex, vErr.LineIndex)
		})
	}
	suite.Equal(0, suite.store.entryCount())
}

func (suite *JournalServiceTestSuite) TestPostEntry_MissingDateIsInvalidInput() {
	req := entryRequest("2024-01-10", debit(suite.cash.AccountID, "1"), credit(suite.fees.AccountID, "1"))
	req.EntryDate = dto.Date{}

	_, err := suite.ledger.Journal.PostEntry(suite.ctx, req, testActor)
	reason, _ := apperrors.ReasonOf(err)
	suite.Equal(apperrors.ReasonInvalidInput, reason)
}

func (suite *JournalServiceTestSuite) TestPostEntry_ReferencesAreSequentialPerYear() {
	first := suite.ledger.post(suite.T(), "2024-03-01", debit(suite.cash.AccountID, "1"), credit(suite.fees.AccountID, "1"))
	second := suite.ledger.post(suite.T(), "2024-03-02", debit(suite.cash.AccountID, "2"), credit(suite.fees.AccountID, "2"))
	nextYear := suite.ledger.post(suite.T(), "2025-01-02", debit(suite.cash.AccountID, "3"), credit(suite.fees.AccountID, "3"))

	suite.Equal("JE-2024-000001", first.Reference)
	suite.Equal("JE-2024-000002", second.Reference)
	suite.Equal("JE-2025-000001", nextYear.Reference)

	found, err := suite.ledger.Journal.GetEntryByReference(suite.ctx, "JE-2024-000002")
	suite.Require().NoError(err)
	suite.Equal(second.EntryID, found.EntryID)
}

func (suite *JournalServiceTestSuite) TestPostEntry_RetriesReferenceCollisions() {
	suite.store.collisions = 2

	entry := suite.ledger.post(suite.T(), "2024-01-10", debit(suite.cash.AccountID, "5"), credit(suite.fees.AccountID, "5"))

	// Each failed attempt rolled back its counter increment.
	suite.Equal("JE-2024-000001", entry.Reference)
	suite.Equal(1, suite.store.entryCount())
}

func (suite *JournalServiceTestSuite) TestPostEntry_GivesUpAfterMaxReferenceAttempts() {
	suite.store.collisions = 5

	_, err := suite.ledger.Journal.PostEntry(suite.ctx, entryRequest("2024-01-10",
		debit(suite.cash.AccountID, "5"), credit(suite.fees.AccountID, "5")), testActor)

	suite.True(errors.Is(err, apperrors.ErrReferenceCollision))
	suite.Equal(0, suite.store.entryCount())
}

func (suite *JournalServiceTestSuite) TestPostEntry_ForeignCurrencyConvertsAtEntryDate() {
	_, err := suite.ledger.ExchangeRate.CreateExchangeRate(suite.ctx, dto.CreateExchangeRateRequest{
		FromCurrencyCode: "EUR", ToCurrencyCode: "USD", Rate: dec("1.10"), DateEffective: dto.NewDate(mustDate("2024-01-01")),
	}, testActor)
	suite.Require().NoError(err)
	_, err = suite.ledger.ExchangeRate.CreateExchangeRate(suite.ctx, dto.CreateExchangeRateRequest{
		FromCurrencyCode: "EUR", ToCurrencyCode: "USD", Rate: dec("1.20"), DateEffective: dto.NewDate(mustDate("2024-02-01")),
	}, testActor)
	suite.Require().NoError(err)

	req := entryRequest("2024-01-15", debit(suite.cash.AccountID, "100"), credit(suite.fees.AccountID, "100"))
	req.CurrencyCode = "eur"
	entry, err := suite.ledger.Journal.PostEntry(suite.ctx, req, testActor)
	suite.Require().NoError(err)

	suite.Equal("EUR", entry.CurrencyCode)
	for _, line := range entry.Lines {
		suite.Equal("EUR", line.CurrencyCode)
		requireDecimal(suite.T(), "1.10", line.ExchangeRate)
	}
	requireDecimal(suite.T(), "100", entry.Lines[0].OriginalDebit)
	requireDecimal(suite.T(), "110", entry.Lines[0].Debit)
	requireDecimal(suite.T(), "110", entry.Lines[1].Credit)
}

func (suite *JournalServiceTestSuite) TestPostEntry_RoundingResidualGoesToLargestLighterLine() {
	_, err := suite.ledger.ExchangeRate.CreateExchangeRate(suite.ctx, dto.CreateExchangeRateRequest{
		FromCurrencyCode: "EUR", ToCurrencyCode: "USD", Rate: dec("1.2345"), DateEffective: dto.NewDate(mustDate("2024-01-01")),
	}, testActor)
	suite.Require().NoError(err)

	req := entryRequest("2024-01-15",
		debit(suite.cash.AccountID, "33.33"),
		debit(suite.bank.AccountID, "33.33"),
		debit(suite.expense.AccountID, "33.34"),
		credit(suite.fees.AccountID, "100"))
	req.CurrencyCode = "EUR"

	entry, err := suite.ledger.Journal.PostEntry(suite.ctx, req, testActor)
	suite.Require().NoError(err)

	debitTotal, creditTotal := entry.Totals()
	suite.True(debitTotal.Equal(creditTotal), "base amounts must balance exactly, got %s/%s", debitTotal, creditTotal)
	requireDecimal(suite.T(), "123.46", debitTotal)
	// 100 * 1.2345 = 123.45 before the residual is applied.
	requireDecimal(suite.T(), "123.46", entry.Lines[3].Credit)
}

func (suite *JournalServiceTestSuite) TestPostEntry_MissingRateIsRejected() {
	req := entryRequest("2024-01-15", debit(suite.cash.AccountID, "100"), credit(suite.fees.AccountID, "100"))
	req.CurrencyCode = "GBP"

	_, err := suite.ledger.Journal.PostEntry(suite.ctx, req, testActor)
	reason, ok := apperrors.ReasonOf(err)
	suite.True(ok)
	suite.Equal(apperrors.ReasonRateUnavailable, reason)
	suite.Equal(0, suite.store.entryCount())
}

func (suite *JournalServiceTestSuite) TestVoidEntry_OnlyPostedEntries() {
	entry := suite.ledger.post(suite.T(), "2024-01-10", debit(suite.cash.AccountID, "10"), credit(suite.fees.AccountID, "10"))
	_, err := suite.ledger.Journal.VoidEntry(suite.ctx, entry.EntryID, testActor)
	suite.Require().NoError(err)

	_, err = suite.ledger.Journal.VoidEntry(suite.ctx, entry.EntryID, testActor)
	suite.True(errors.Is(err, apperrors.ErrState))
	suite.Contains(err.Error(), "not postable for void")

	draft, err := suite.ledger.Journal.CreateDraft(suite.ctx, entryRequest("2024-01-11",
		debit(suite.cash.AccountID, "1"), credit(suite.fees.AccountID, "1")), testActor)
	suite.Require().NoError(err)
	_, err = suite.ledger.Journal.VoidEntry(suite.ctx, draft.EntryID, testActor)
	suite.True(errors.Is(err, apperrors.ErrState))

	_, err = suite.ledger.Journal.VoidEntry(suite.ctx, "missing", testActor)
	suite.True(errors.Is(err, apperrors.ErrNotFound))

	suite.Equal([]string{string(domain.ActionEntryVoided)}, suite.store.auditActions())
}

func (suite *JournalServiceTestSuite) TestReplacementEntryMustReferenceVoidEntry() {
	original := suite.ledger.post(suite.T(), "2024-01-10", debit(suite.cash.AccountID, "10"), credit(suite.fees.AccountID, "10"))

	req := entryRequest("2024-01-10", debit(suite.cash.AccountID, "12"), credit(suite.fees.AccountID, "12"))
	req.ReplacesEntryID = original.EntryID
	_, err := suite.ledger.Journal.PostEntry(suite.ctx, req, testActor)
	suite.True(errors.Is(err, apperrors.ErrState))

	_, err = suite.ledger.Journal.VoidEntry(suite.ctx, original.EntryID, testActor)
	suite.Require().NoError(err)
	replacement, err := suite.ledger.Journal.PostEntry(suite.ctx, req, testActor)
	suite.Require().NoError(err)
	suite.Equal(original.EntryID, replacement.ReplacesEntryID)
}

func (suite *JournalServiceTestSuite) TestEditPostedEntry_ReplacesLinesAndAudits() {
	entry := suite.ledger.post(suite.T(), "2024-01-10", debit(suite.cash.AccountID, "100000"), credit(suite.fees.AccountID, "100000"))
	newDescription := "corrected amount"

	edited, err := suite.ledger.Journal.EditEntry(suite.ctx, entry.EntryID, dto.EditJournalEntryRequest{
		Description: &newDescription,
		Lines: []dto.JournalLineRequest{
			debit(suite.bank.AccountID, "90000"),
			credit(suite.fees.AccountID, "90000"),
		},
	}, testActor)
	suite.Require().NoError(err)
	suite.Equal(domain.Posted, edited.Status)
	suite.Equal(entry.Reference, edited.Reference)
	suite.Equal(newDescription, edited.Description)

	tb := suite.trialBalance("2024-01-01", "2024-01-31")
	requireDecimal(suite.T(), "0", suite.rowFor(tb, suite.cash.AccountID).Debit)
	requireDecimal(suite.T(), "90000", suite.rowFor(tb, suite.bank.AccountID).Debit)
	suite.True(tb.Balanced)

	suite.Require().Equal([]string{string(domain.ActionEntryEdited)}, suite.store.auditActions())
	var changes struct {
		Before struct {
			Lines []domain.JournalLine `json:"lines"`
		} `json:"before"`
		After struct {
			Description string               `json:"description"`
			Lines       []domain.JournalLine `json:"lines"`
		} `json:"after"`
	}
	suite.Require().NoError(json.Unmarshal(suite.store.audit[0].Changes, &changes))
	suite.Require().Len(changes.Before.Lines, 2)
	suite.Require().Len(changes.After.Lines, 2)
	suite.Equal(suite.cash.AccountID, changes.Before.Lines[0].AccountID)
	suite.Equal(entry.Lines[0].LineID, changes.Before.Lines[0].LineID)
	suite.Equal(entry.Lines[0].CurrencyCode, changes.Before.Lines[0].CurrencyCode)
	requireDecimal(suite.T(), "100000", changes.Before.Lines[0].OriginalDebit)
	requireDecimal(suite.T(), "1", changes.Before.Lines[0].ExchangeRate)
	requireDecimal(suite.T(), "90000", changes.After.Lines[0].OriginalDebit)
	requireDecimal(suite.T(), "90000", changes.After.Lines[1].OriginalCredit)
	suite.Equal(newDescription, changes.After.Description)
}

func (suite *JournalServiceTestSuite) TestEditPostedEntry_AuditsLineDescriptionChange() {
	first := debit(suite.cash.AccountID, "250")
	first.Description = "till float"
	second := credit(suite.fees.AccountID, "250")
	second.Description = "fee income"
	entry := suite.ledger.post(suite.T(), "2024-01-12", first, second)

	first.Description = "till float, march"
	second.Description = "card fee income"
	_, err := suite.ledger.Journal.EditEntry(suite.ctx, entry.EntryID, dto.EditJournalEntryRequest{
		Lines: []dto.JournalLineRequest{first, second},
	}, testActor)
	suite.Require().NoError(err)

	suite.Require().Equal([]string{string(domain.ActionEntryEdited)}, suite.store.auditActions())
	var changes struct {
		Before json.RawMessage `json:"before"`
		After  json.RawMessage `json:"after"`
	}
	suite.Require().NoError(json.Unmarshal(suite.store.audit[0].Changes, &changes))
	suite.NotEqual(string(changes.Before), string(changes.After))
	suite.Contains(string(changes.Before), `"till float"`)
	suite.Contains(string(changes.After), `"card fee income"`)
}

func (suite *JournalServiceTestSuite) TestEditPostedEntry_UnbalancedLeavesEntryUntouched() {
	entry := suite.ledger.post(suite.T(), "2024-01-10", debit(suite.cash.AccountID, "100"), credit(suite.fees.AccountID, "100"))

	_, err := suite.ledger.Journal.EditEntry(suite.ctx, entry.EntryID, dto.EditJournalEntryRequest{
		Lines: []dto.JournalLineRequest{debit(suite.cash.AccountID, "100"), credit(suite.fees.AccountID, "90")},
	}, testActor)
	reason, _ := apperrors.ReasonOf(err)
	suite.Equal(apperrors.ReasonUnbalanced, reason)

	stored, err := suite.ledger.Journal.GetEntryByID(suite.ctx, entry.EntryID)
	suite.Require().NoError(err)
	requireDecimal(suite.T(), "100", stored.Lines[1].Credit)
	suite.Empty(suite.store.auditActions())
}

func (suite *JournalServiceTestSuite) TestEditVoidEntry_IsRefused() {
	entry := suite.ledger.post(suite.T(), "2024-01-10", debit(suite.cash.AccountID, "100"), credit(suite.fees.AccountID, "100"))
	_, err := suite.ledger.Journal.VoidEntry(suite.ctx, entry.EntryID, testActor)
	suite.Require().NoError(err)

	_, err = suite.ledger.Journal.EditEntry(suite.ctx, entry.EntryID, dto.EditJournalEntryRequest{
		Lines: []dto.JournalLineRequest{debit(suite.cash.AccountID, "1"), credit(suite.fees.AccountID, "1")},
	}, testActor)
	suite.True(errors.Is(err, apperrors.ErrState))
}

func (suite *JournalServiceTestSuite) TestDraftLifecycle() {
	draft, err := suite.ledger.Journal.CreateDraft(suite.ctx, entryRequest("2024-01-20",
		debit(suite.cash.AccountID, "70"), credit(suite.fees.AccountID, "60")), testActor)
	suite.Require().NoError(err, "drafts only need valid lines")
	suite.Equal(domain.Draft, draft.Status)
	suite.Empty(draft.Reference)

	tb := suite.trialBalance("2024-01-01", "2024-01-31")
	requireDecimal(suite.T(), "0", tb.TotalDebit, "drafts never affect balances")

	_, err = suite.ledger.Journal.PostDraft(suite.ctx, draft.EntryID, testActor)
	reason, _ := apperrors.ReasonOf(err)
	suite.Equal(apperrors.ReasonUnbalanced, reason)

	_, err = suite.ledger.Journal.EditEntry(suite.ctx, draft.EntryID, dto.EditJournalEntryRequest{
		Lines: []dto.JournalLineRequest{debit(suite.cash.AccountID, "70"), credit(suite.fees.AccountID, "70")},
	}, testActor)
	suite.Require().NoError(err)
	suite.Empty(suite.store.auditActions(), "draft edits are not audited")

	posted, err := suite.ledger.Journal.PostDraft(suite.ctx, draft.EntryID, testActor)
	suite.Require().NoError(err)
	suite.Equal(domain.Posted, posted.Status)
	suite.Equal("JE-2024-000001", posted.Reference)

	tb = suite.trialBalance("2024-01-01", "2024-01-31")
	requireDecimal(suite.T(), "70", tb.TotalDebit)

	_, err = suite.ledger.Journal.PostDraft(suite.ctx, draft.EntryID, testActor)
	suite.True(errors.Is(err, apperrors.ErrState))
}

func (suite *JournalServiceTestSuite) TestDraftRejectsInvalidLines() {
	_, err := suite.ledger.Journal.CreateDraft(suite.ctx, entryRequest("2024-01-20",
		dto.JournalLineRequest{AccountID: suite.cash.AccountID, Debit: dec("5"), Credit: dec("5")},
		credit(suite.fees.AccountID, "5")), testActor)
	reason, _ := apperrors.ReasonOf(err)
	suite.Equal(apperrors.ReasonBothSidesSet, reason)
}

func (suite *JournalServiceTestSuite) TestPeriodLock() {
	entry := suite.ledger.post(suite.T(), "2024-01-10", debit(suite.cash.AccountID, "10"), credit(suite.fees.AccountID, "10"))
	locked := newTestLedger(suite.store, withLockDate("2024-02-01"))

	_, err := locked.Journal.PostEntry(suite.ctx, entryRequest("2024-01-31",
		debit(suite.cash.AccountID, "1"), credit(suite.fees.AccountID, "1")), testActor)
	reason, _ := apperrors.ReasonOf(err)
	suite.Equal(apperrors.ReasonPeriodLocked, reason)

	_, err = locked.Journal.VoidEntry(suite.ctx, entry.EntryID, testActor)
	reason, _ = apperrors.ReasonOf(err)
	suite.Equal(apperrors.ReasonPeriodLocked, reason)

	_, err = locked.Journal.PostEntry(suite.ctx, entryRequest("2024-02-01",
		debit(suite.cash.AccountID, "1"), credit(suite.fees.AccountID, "1")), testActor)
	suite.NoError(err, "the lock date itself is open")
}

func (suite *JournalServiceTestSuite) TestValidateEntry_DoesNotPersist() {
	err := suite.ledger.Journal.ValidateEntry(suite.ctx, entryRequest("2024-01-10",
		debit(suite.cash.AccountID, "10"), credit(suite.fees.AccountID, "10")))
	suite.NoError(err)

	err = suite.ledger.Journal.ValidateEntry(suite.ctx, entryRequest("2024-01-10",
		debit(suite.cash.AccountID, "10"), credit(suite.fees.AccountID, "11")))
	reason, _ := apperrors.ReasonOf(err)
	suite.Equal(apperrors.ReasonUnbalanced, reason)

	suite.Equal(0, suite.store.entryCount())
	suite.Empty(suite.store.refSeq)
}

func (suite *JournalServiceTestSuite) TestListEntries_PagesNewestFirst() {
	for _, date := range []string{"2024-01-01", "2024-01-02", "2024-01-03"} {
		suite.ledger.post(suite.T(), date, debit(suite.cash.AccountID, "1"), credit(suite.fees.AccountID, "1"))
	}

	page, err := suite.ledger.Journal.ListEntries(suite.ctx, dto.ListJournalEntriesParams{Limit: 2})
	suite.Require().NoError(err)
	suite.Require().Len(page.Entries, 2)
	suite.Equal("2024-01-03", page.Entries[0].EntryDate.Format(domain.DateLayout))
	suite.Require().NotNil(page.NextToken)

	next, err := suite.ledger.Journal.ListEntries(suite.ctx, dto.ListJournalEntriesParams{Limit: 2, NextToken: page.NextToken})
	suite.Require().NoError(err)
	suite.Require().Len(next.Entries, 1)
	suite.Equal("2024-01-01", next.Entries[0].EntryDate.Format(domain.DateLayout))
	suite.Nil(next.NextToken)

	filtered, err := suite.ledger.Journal.ListEntries(suite.ctx, dto.ListJournalEntriesParams{From: "2024-01-02", To: "2024-01-02", Limit: 10})
	suite.Require().NoError(err)
	suite.Len(filtered.Entries, 1)

	_, err = suite.ledger.Journal.ListEntries(suite.ctx, dto.ListJournalEntriesParams{From: "02/01/2024"})
	suite.True(errors.Is(err, apperrors.ErrValidation))
}

func TestJournalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}
