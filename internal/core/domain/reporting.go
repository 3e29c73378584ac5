package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountTotals are the raw posted debit and credit sums for one account.
type AccountTotals struct {
	AccountID string
	Debit     decimal.Decimal
	Credit    decimal.Decimal
}

// AccountBalance is an account's position as of a date. RawBalance is always
// debit minus credit; Balance applies the presentation sign of the account type.
type AccountBalance struct {
	AccountID   string          `json:"accountID"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	AccountType AccountType     `json:"accountType"`
	AsOf        time.Time       `json:"asOf"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	RawBalance  decimal.Decimal `json:"rawBalance"`
	Balance     decimal.Decimal `json:"balance"`
}

// TrialBalanceRow represents a single row in a trial balance report
type TrialBalanceRow struct {
	AccountID   string          `json:"accountID"`
	Code        string          `json:"code"`
	AccountName string          `json:"accountName"`
	AccountType AccountType     `json:"accountType"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// TrialBalanceReport lists gross debits and credits per account over a period.
type TrialBalanceReport struct {
	Start       time.Time         `json:"start"`
	End         time.Time         `json:"end"`
	Rows        []TrialBalanceRow `json:"rows"`
	TotalDebit  decimal.Decimal   `json:"totalDebit"`
	TotalCredit decimal.Decimal   `json:"totalCredit"`
	Difference  decimal.Decimal   `json:"difference"`
	Balanced    bool              `json:"balanced"`
}

// BalanceSheetLine is one account row of a balance sheet section. Amount is the
// account's own balance; RollupAmount adds every descendant's balance and is
// for presentation only.
type BalanceSheetLine struct {
	AccountID         string           `json:"accountID"`
	Code              string           `json:"code"`
	Name              string           `json:"name"`
	Category          AccountCategory  `json:"category,omitempty"`
	ParentAccountID   string           `json:"parentAccountID,omitempty"`
	Depth             int              `json:"depth"`
	Amount            decimal.Decimal  `json:"amount"`
	RollupAmount      decimal.Decimal  `json:"rollupAmount"`
	PriorAmount       *decimal.Decimal `json:"priorAmount,omitempty"`
	PriorRollupAmount *decimal.Decimal `json:"priorRollupAmount,omitempty"`
}

// BalanceSheetTotals are the section totals of a balance sheet column.
type BalanceSheetTotals struct {
	Assets               decimal.Decimal `json:"assets"`
	Liabilities          decimal.Decimal `json:"liabilities"`
	Equity               decimal.Decimal `json:"equity"`
	NetIncome            decimal.Decimal `json:"netIncome"`
	EquityWithNetIncome  decimal.Decimal `json:"equityWithNetIncome"`
	LiabilitiesAndEquity decimal.Decimal `json:"liabilitiesAndEquity"`
	Imbalance            decimal.Decimal `json:"imbalance"`
	Balanced             bool            `json:"balanced"`
}

// BalanceSheetReport represents a balance sheet report
type BalanceSheetReport struct {
	AsOf        time.Time           `json:"asOf"`
	CompareTo   *time.Time          `json:"compareTo,omitempty"`
	Assets      []BalanceSheetLine  `json:"assets"`
	Liabilities []BalanceSheetLine  `json:"liabilities"`
	Equity      []BalanceSheetLine  `json:"equity"`
	NetIncome   decimal.Decimal     `json:"netIncome"`
	Totals      BalanceSheetTotals  `json:"totals"`
	PriorTotals *BalanceSheetTotals `json:"priorTotals,omitempty"`
	Balanced    bool                `json:"balanced"`
}
