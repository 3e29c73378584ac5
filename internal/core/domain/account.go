package domain

import "sort"

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Income    AccountType = "INCOME"
	Expense   AccountType = "EXPENSE"
)

// AccountTypes lists every account type in balance-sheet order.
var AccountTypes = []AccountType{Asset, Liability, Equity, Income, Expense}

// IsValid reports whether t is one of the closed set of account types.
func (t AccountType) IsValid() bool {
	switch t {
	case Asset, Liability, Equity, Income, Expense:
		return true
	}
	return false
}

// DebitNormal reports whether balances of this type are presented debit-positive.
// Unknown types return ok=false so callers never silently bucket them.
func (t AccountType) DebitNormal() (debitNormal bool, ok bool) {
	switch t {
	case Asset, Expense:
		return true, true
	case Liability, Equity, Income:
		return false, true
	}
	return false, false
}

// AccountCategory refines asset and liability accounts by horizon.
type AccountCategory string

const (
	NoCategory AccountCategory = ""
	ShortTerm  AccountCategory = "SHORT_TERM"
	LongTerm   AccountCategory = "LONG_TERM"
)

// IsValid reports whether c is a known category (the empty category is valid).
func (c AccountCategory) IsValid() bool {
	switch c {
	case NoCategory, ShortTerm, LongTerm:
		return true
	}
	return false
}

// AllowedFor reports whether the category may be set on an account of type t.
func (c AccountCategory) AllowedFor(t AccountType) bool {
	if c == NoCategory {
		return true
	}
	return t == Asset || t == Liability
}

// Account represents a financial account within the core domain.
// This is the primary representation used by services.
type Account struct {
	AccountID       string          `json:"accountID"`
	Code            string          `json:"code"` // Unique, defines natural ordering
	Name            string          `json:"name"`
	AccountType     AccountType     `json:"accountType"`
	Category        AccountCategory `json:"category,omitempty"`
	ParentAccountID string          `json:"parentAccountID,omitempty"` // Empty for root accounts
	Description     string          `json:"description"`
	IsActive        bool            `json:"isActive"`
	IsSystem        bool            `json:"isSystem"` // Created by the engine, not by chart setup
	AuditFields
}

// SortAccountsByCode orders accounts by their code.
func SortAccountsByCode(accounts []Account) {
	sort.SliceStable(accounts, func(i, j int) bool {
		return accounts[i].Code < accounts[j].Code
	})
}
