package accounting_test

import (
	"testing"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestPresentedBalance(t *testing.T) {
	tests := []struct {
		accountType domain.AccountType
		debit       string
		credit      string
		want        string
	}{
		{domain.Asset, "150", "50", "100"},
		{domain.Expense, "20", "0", "20"},
		{domain.Liability, "10", "110", "100"},
		{domain.Equity, "0", "5", "5"},
		{domain.Income, "30", "100", "70"},
	}
	for _, tt := range tests {
		t.Run(string(tt.accountType), func(t *testing.T) {
			got, err := accounting.PresentedBalance(tt.accountType, d(tt.debit), d(tt.credit))
			require.NoError(t, err)
			assert.True(t, d(tt.want).Equal(got), "got %s", got)
		})
	}

	_, err := accounting.PresentedBalance(domain.AccountType("REVENUE"), d("1"), d("0"))
	assert.Error(t, err)
}

func TestAllocateRoundingResidual(t *testing.T) {
	lines := []domain.JournalLine{
		{AccountID: "a", Debit: d("33.33")},
		{AccountID: "b", Debit: d("33.33")},
		{AccountID: "c", Debit: d("33.33")},
		{AccountID: "d", Credit: d("100.00")},
	}

	applied := accounting.AllocateRoundingResidual(lines, d("0.04"))

	assert.True(t, d("0.01").Equal(applied))
	assert.True(t, d("33.34").Equal(lines[0].Debit), "earliest largest debit absorbs the residual")
	debit, credit := accounting.SumLines(lines)
	assert.True(t, debit.Equal(credit))
}

func TestAllocateRoundingResidual_CreditSide(t *testing.T) {
	lines := []domain.JournalLine{
		{AccountID: "a", Debit: d("10.01")},
		{AccountID: "b", Credit: d("5.00")},
		{AccountID: "c", Credit: d("5.00")},
	}

	applied := accounting.AllocateRoundingResidual(lines, d("0.03"))

	assert.True(t, d("0.01").Equal(applied))
	assert.True(t, d("5.01").Equal(lines[1].Credit))
	assert.True(t, d("5.00").Equal(lines[2].Credit))
}

func TestAllocateRoundingResidual_LeavesRealImbalance(t *testing.T) {
	lines := []domain.JournalLine{
		{AccountID: "a", Debit: d("50000")},
		{AccountID: "b", Credit: d("49000")},
	}

	applied := accounting.AllocateRoundingResidual(lines, d("0.02"))

	assert.True(t, applied.IsZero())
	assert.True(t, d("49000").Equal(lines[1].Credit))
}
