package accounting

import (
	"fmt"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RawBalance is debit minus credit. Ledger arithmetic never depends on account type.
func RawBalance(debit, credit decimal.Decimal) decimal.Decimal {
	return debit.Sub(credit)
}

// PresentedBalance applies the report sign convention for accountType:
// ASSET/EXPENSE are debit-positive, LIABILITY/EQUITY/INCOME credit-positive.
func PresentedBalance(accountType domain.AccountType, debit, credit decimal.Decimal) (decimal.Decimal, error) {
	switch accountType {
	case domain.Asset, domain.Expense:
		return debit.Sub(credit), nil
	case domain.Liability, domain.Equity, domain.Income:
		return credit.Sub(debit), nil
	default:
		return decimal.Zero, fmt.Errorf("unknown account type '%s'", accountType)
	}
}

// SumLines totals the base-currency debits and credits of lines.
func SumLines(lines []domain.JournalLine) (debit, credit decimal.Decimal) {
	debit, credit = decimal.Zero, decimal.Zero
	for _, line := range lines {
		debit = debit.Add(line.Debit)
		credit = credit.Add(line.Credit)
	}
	return debit, credit
}

// SumProposed totals the debits and credits of proposed lines.
func SumProposed(lines []domain.ProposedLine) (debit, credit decimal.Decimal) {
	debit, credit = decimal.Zero, decimal.Zero
	for _, line := range lines {
		debit = debit.Add(line.Debit)
		credit = credit.Add(line.Credit)
	}
	return debit, credit
}

// AllocateRoundingResidual makes converted lines balance exactly when per-line
// rounding left a difference. The residual is added to the largest line on the
// lighter side; ties go to the earliest line. It returns the residual applied.
// Residuals larger than maxResidual are left alone so the validator rejects them.
func AllocateRoundingResidual(lines []domain.JournalLine, maxResidual decimal.Decimal) decimal.Decimal {
	debit, credit := SumLines(lines)
	diff := debit.Sub(credit)
	if diff.IsZero() || diff.Abs().GreaterThan(maxResidual) {
		return decimal.Zero
	}

	target := -1
	for i, line := range lines {
		var amount decimal.Decimal
		if diff.IsPositive() {
			amount = line.Credit
		} else {
			amount = line.Debit
		}
		if !amount.IsPositive() {
			continue
		}
		if target == -1 {
			target = i
			continue
		}
		var best decimal.Decimal
		if diff.IsPositive() {
			best = lines[target].Credit
		} else {
			best = lines[target].Debit
		}
		if amount.GreaterThan(best) {
			target = i
		}
	}
	if target == -1 {
		return decimal.Zero
	}

	if diff.IsPositive() {
		lines[target].Credit = lines[target].Credit.Add(diff)
	} else {
		lines[target].Debit = lines[target].Debit.Add(diff.Neg())
	}
	return diff.Abs()
}
