package services

import (
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// JournalValidator checks a proposed entry against the posting rules. It holds
// no state beyond its configuration and never touches storage.
type JournalValidator struct {
	tolerance decimal.Decimal
	lockDate  *time.Time
}

// NewJournalValidator creates a validator. A non-positive tolerance falls back
// to domain.DefaultBalanceTolerance. Entries dated before lockDate are rejected.
func NewJournalValidator(tolerance decimal.Decimal, lockDate *time.Time) *JournalValidator {
	if !tolerance.IsPositive() {
		tolerance = domain.DefaultBalanceTolerance
	}
	v := &JournalValidator{tolerance: tolerance}
	if lockDate != nil {
		d := domain.DateOnly(*lockDate)
		v.lockDate = &d
	}
	return v
}

// Tolerance returns the balance tolerance in use.
func (v *JournalValidator) Tolerance() decimal.Decimal {
	return v.tolerance
}

// Validate runs every posting check in order and returns the first failure as
// an *apperrors.ValidationError. accounts must contain every account the
// lines reference that exists.
func (v *JournalValidator) Validate(entry domain.ProposedEntry, accounts map[string]domain.Account) error {
	if len(entry.Lines) < 2 {
		return apperrors.NewValidationError(apperrors.ReasonTooFewLines,
			"an entry needs at least two lines, got %d", len(entry.Lines))
	}

	if err := v.ValidateLines(entry, accounts); err != nil {
		return err
	}

	if err := v.checkSides(entry.Lines); err != nil {
		return err
	}

	debit, credit := accounting.SumProposed(entry.Lines)
	if !domain.WithinTolerance(debit, credit, v.tolerance) {
		return apperrors.NewValidationError(apperrors.ReasonUnbalanced,
			"debits %s and credits %s differ by %s", debit.StringFixed(domain.AmountScale),
			credit.StringFixed(domain.AmountScale), debit.Sub(credit).Abs().String())
	}

	return v.CheckPeriod(entry.EntryDate)
}

// ValidateLines checks account references and per-line amounts only. Drafts
// are held to this weaker rule until they are posted.
func (v *JournalValidator) ValidateLines(entry domain.ProposedEntry, accounts map[string]domain.Account) error {
	for i, line := range entry.Lines {
		account, ok := accounts[line.AccountID]
		if !ok {
			return apperrors.NewLineValidationError(apperrors.ReasonUnknownAccount, i,
				"account %s does not exist", line.AccountID)
		}
		if !account.IsActive {
			return apperrors.NewLineValidationError(apperrors.ReasonInactiveAccount, i,
				"account %s (%s) is inactive", account.Code, account.AccountID)
		}
	}

	for i, line := range entry.Lines {
		if line.Debit.IsNegative() || line.Credit.IsNegative() {
			return apperrors.NewLineValidationError(apperrors.ReasonNegativeAmount, i,
				"amounts must not be negative")
		}
		if !domain.FitsOriginalScale(line.Debit) || !domain.FitsOriginalScale(line.Credit) {
			return apperrors.NewLineValidationError(apperrors.ReasonInvalidInput, i,
				"amounts may have at most %d decimal places", domain.OriginalAmountScale)
		}
		if line.Debit.IsPositive() && line.Credit.IsPositive() {
			return apperrors.NewLineValidationError(apperrors.ReasonBothSidesSet, i,
				"a line must carry either a debit or a credit, not both")
		}
		if line.Debit.IsZero() && line.Credit.IsZero() {
			return apperrors.NewLineValidationError(apperrors.ReasonNoAmount, i,
				"a line must carry a non-zero debit or credit")
		}
	}
	return nil
}

// CheckPeriod rejects dates that fall before the lock date.
func (v *JournalValidator) CheckPeriod(entryDate time.Time) error {
	if v.lockDate == nil {
		return nil
	}
	if domain.DateOnly(entryDate).Before(*v.lockDate) {
		return apperrors.NewValidationError(apperrors.ReasonPeriodLocked,
			"entry date %s is before the period lock date %s",
			entryDate.Format(domain.DateLayout), v.lockDate.Format(domain.DateLayout))
	}
	return nil
}

func (v *JournalValidator) checkSides(lines []domain.ProposedLine) error {
	hasDebit, hasCredit := false, false
	for _, line := range lines {
		if line.Debit.IsPositive() {
			hasDebit = true
		}
		if line.Credit.IsPositive() {
			hasCredit = true
		}
	}
	if !hasDebit {
		return apperrors.NewValidationError(apperrors.ReasonMissingDebit, "an entry needs at least one debit line")
	}
	if !hasCredit {
		return apperrors.NewValidationError(apperrors.ReasonMissingCredit, "an entry needs at least one credit line")
	}
	return nil
}
