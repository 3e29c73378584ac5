package services_test

import (
	"testing"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validatorAccounts() map[string]domain.Account {
	return map[string]domain.Account{
		"cash":   {AccountID: "cash", Code: "1000", AccountType: domain.Asset, IsActive: true},
		"fees":   {AccountID: "fees", Code: "4000", AccountType: domain.Income, IsActive: true},
		"closed": {AccountID: "closed", Code: "1090", AccountType: domain.Asset, IsActive: false},
	}
}

func line(accountID, debit, credit string) domain.ProposedLine {
	return domain.ProposedLine{AccountID: accountID, Debit: dec(debit), Credit: dec(credit)}
}

func proposal(date string, lines ...domain.ProposedLine) domain.ProposedEntry {
	return domain.ProposedEntry{EntryDate: mustDate(date), Lines: lines}
}

func TestJournalValidator_Validate(t *testing.T) {
	lock := mustDate("2024-03-01")
	v := services.NewJournalValidator(dec("0.01"), &lock)

	tests := []struct {
		name      string
		entry     domain.ProposedEntry
		reason    apperrors.ValidationReason
		lineIndex int
	}{
		{
			name:      "no lines",
			entry:     proposal("2024-03-05"),
			reason:    apperrors.ReasonTooFewLines,
			lineIndex: -1,
		},
		{
			name:      "one line",
			entry:     proposal("2024-03-05", line("cash", "10", "0")),
			reason:    apperrors.ReasonTooFewLines,
			lineIndex: -1,
		},
		{
			name:      "unknown account",
			entry:     proposal("2024-03-05", line("cash", "10", "0"), line("nope", "0", "10")),
			reason:    apperrors.ReasonUnknownAccount,
			lineIndex: 1,
		},
		{
			name:      "inactive account",
			entry:     proposal("2024-03-05", line("closed", "10", "0"), line("fees", "0", "10")),
			reason:    apperrors.ReasonInactiveAccount,
			lineIndex: 0,
		},
		{
			name:      "account checks run before amount checks",
			entry:     proposal("2024-03-05", line("cash", "-1", "0"), line("nope", "0", "10")),
			reason:    apperrors.ReasonUnknownAccount,
			lineIndex: 1,
		},
		{
			name:      "negative amount",
			entry:     proposal("2024-03-05", line("cash", "10", "0"), line("fees", "0", "-10")),
			reason:    apperrors.ReasonNegativeAmount,
			lineIndex: 1,
		},
		{
			name:      "both sides",
			entry:     proposal("2024-03-05", line("cash", "10", "10"), line("fees", "0", "10")),
			reason:    apperrors.ReasonBothSidesSet,
			lineIndex: 0,
		},
		{
			name:      "too many decimal places",
			entry:     proposal("2024-03-05", line("cash", "10.00001", "0"), line("fees", "0", "10")),
			reason:    apperrors.ReasonInvalidInput,
			lineIndex: 0,
		},
		{
			name:      "zero line",
			entry:     proposal("2024-03-05", line("cash", "10", "0"), line("fees", "0", "10"), line("cash", "0", "0")),
			reason:    apperrors.ReasonNoAmount,
			lineIndex: 2,
		},
		{
			name:      "no debit",
			entry:     proposal("2024-03-05", line("cash", "0", "10"), line("fees", "0", "10")),
			reason:    apperrors.ReasonMissingDebit,
			lineIndex: -1,
		},
		{
			name:      "no credit",
			entry:     proposal("2024-03-05", line("cash", "10", "0"), line("fees", "10", "0")),
			reason:    apperrors.ReasonMissingCredit,
			lineIndex: -1,
		},
		{
			name:      "difference equal to tolerance",
			entry:     proposal("2024-03-05", line("cash", "100.01", "0"), line("fees", "0", "100")),
			reason:    apperrors.ReasonUnbalanced,
			lineIndex: -1,
		},
		{
			name:      "balanced but locked",
			entry:     proposal("2024-02-29", line("cash", "100", "0"), line("fees", "0", "100")),
			reason:    apperrors.ReasonPeriodLocked,
			lineIndex: -1,
		},
		{
			name:      "unbalanced wins over locked",
			entry:     proposal("2024-02-29", line("cash", "100", "0"), line("fees", "0", "90")),
			reason:    apperrors.ReasonUnbalanced,
			lineIndex: -1,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := v.Validate(tc.entry, validatorAccounts())
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrValidation)

			var vErr *apperrors.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tc.reason, vErr.Reason)
			assert.Equal(t, tc.lineIndex, vErr.LineIndex)
		})
	}
}

func TestJournalValidator_AcceptsBalancedEntries(t *testing.T) {
	lock := mustDate("2024-03-01")
	v := services.NewJournalValidator(dec("0.01"), &lock)

	ok := []domain.ProposedEntry{
		proposal("2024-03-01", line("cash", "100", "0"), line("fees", "0", "100")),
		proposal("2024-03-02", line("cash", "100.004", "0"), line("fees", "0", "100")),
		proposal("2024-04-01", line("cash", "60", "0"), line("cash", "40", "0"), line("fees", "0", "100")),
	}
	for _, entry := range ok {
		assert.NoError(t, v.Validate(entry, validatorAccounts()))
	}
}

func TestJournalValidator_ValidateLinesIgnoresBalance(t *testing.T) {
	v := services.NewJournalValidator(decimal.Zero, nil)

	entry := proposal("2020-01-01", line("cash", "10", "0"))
	assert.NoError(t, v.ValidateLines(entry, validatorAccounts()))

	entry = proposal("2020-01-01", line("cash", "10", "0"), line("fees", "0", "3"))
	assert.NoError(t, v.ValidateLines(entry, validatorAccounts()))

	entry = proposal("2020-01-01", line("closed", "10", "0"))
	reason, _ := apperrors.ReasonOf(v.ValidateLines(entry, validatorAccounts()))
	assert.Equal(t, apperrors.ReasonInactiveAccount, reason)
}

func TestJournalValidator_DefaultTolerance(t *testing.T) {
	assert.True(t, services.NewJournalValidator(decimal.Zero, nil).Tolerance().Equal(domain.DefaultBalanceTolerance))
	assert.True(t, services.NewJournalValidator(dec("-1"), nil).Tolerance().Equal(domain.DefaultBalanceTolerance))
	assert.True(t, services.NewJournalValidator(dec("0.5"), nil).Tolerance().Equal(dec("0.5")))
}

func TestJournalValidator_CheckPeriod(t *testing.T) {
	lock := time.Date(2024, 3, 1, 15, 30, 0, 0, time.UTC)
	v := services.NewJournalValidator(decimal.Zero, &lock)

	assert.NoError(t, v.CheckPeriod(mustDate("2024-03-01")), "the lock date itself stays open")
	assert.NoError(t, v.CheckPeriod(mustDate("2024-12-31")))

	reason, ok := apperrors.ReasonOf(v.CheckPeriod(mustDate("2024-02-29")))
	assert.True(t, ok)
	assert.Equal(t, apperrors.ReasonPeriodLocked, reason)

	assert.NoError(t, services.NewJournalValidator(decimal.Zero, nil).CheckPeriod(mustDate("1900-01-01")))
}
