package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalStatus indicates the state of a journal entry.
type JournalStatus string

const (
	Draft  JournalStatus = "DRAFT"
	Posted JournalStatus = "POSTED"
	Void   JournalStatus = "VOID"
)

// CanTransitionTo encodes the entry state machine: DRAFT -> POSTED -> VOID.
func (s JournalStatus) CanTransitionTo(next JournalStatus) bool {
	switch s {
	case Draft:
		return next == Posted
	case Posted:
		return next == Void
	}
	return false
}

// IsEditable reports whether lines of an entry in this status may be replaced.
func (s JournalStatus) IsEditable() bool {
	return s == Draft || s == Posted
}

// EntryType is an informational classification; it never affects balancing.
type EntryType string

const (
	EntryTypeExpense          EntryType = "EXPENSE"
	EntryTypeIncome           EntryType = "INCOME"
	EntryTypePayment          EntryType = "PAYMENT"
	EntryTypeAdjustment       EntryType = "ADJUSTMENT"
	EntryTypeOpening          EntryType = "OPENING"
	EntryTypeClosing          EntryType = "CLOSING"
	EntryTypeAccrual          EntryType = "ACCRUAL"
	EntryTypeReclassification EntryType = "RECLASSIFICATION"
)

// JournalEntry is a dated, balanced set of lines. Once posted its reference
// never changes and it can only move to VOID.
type JournalEntry struct {
	EntryID         string        `json:"entryID"`
	Reference       string        `json:"reference,omitempty"` // Assigned on posting
	EntryDate       time.Time     `json:"entryDate"`
	EntryType       EntryType     `json:"entryType"`
	Description     string        `json:"description"`
	CurrencyCode    string        `json:"currencyCode"` // Transaction currency of the lines
	Status          JournalStatus `json:"status"`
	PostedAt        *time.Time    `json:"postedAt,omitempty"`
	PostedBy        string        `json:"postedBy,omitempty"`
	VoidedAt        *time.Time    `json:"voidedAt,omitempty"`
	VoidedBy        string        `json:"voidedBy,omitempty"`
	ReplacesEntryID string        `json:"replacesEntryID,omitempty"` // Weak link to a voided entry
	Lines           []JournalLine `json:"lines"`
	AuditFields
}

// Totals sums the base-currency debits and credits of the entry's lines.
func (e JournalEntry) Totals() (debit, credit decimal.Decimal) {
	debit, credit = decimal.Zero, decimal.Zero
	for _, line := range e.Lines {
		debit = debit.Add(line.Debit)
		credit = credit.Add(line.Credit)
	}
	return debit, credit
}

// AccountIDs returns the distinct account ids referenced by the lines, in line order.
func (e JournalEntry) AccountIDs() []string {
	seen := make(map[string]bool, len(e.Lines))
	ids := make([]string, 0, len(e.Lines))
	for _, line := range e.Lines {
		if !seen[line.AccountID] {
			seen[line.AccountID] = true
			ids = append(ids, line.AccountID)
		}
	}
	return ids
}

// JournalLine posts one amount against exactly one account. Exactly one of
// Debit/Credit is positive. Original* hold the amounts as entered in
// CurrencyCode; Debit/Credit are the base-currency amounts used in balances.
type JournalLine struct {
	LineID         string          `json:"lineID"`
	EntryID        string          `json:"entryID"`
	LineNo         int             `json:"lineNo"`
	AccountID      string          `json:"accountID"`
	Description    string          `json:"description"`
	CurrencyCode   string          `json:"currencyCode"`
	ExchangeRate   decimal.Decimal `json:"exchangeRate"`
	OriginalDebit  decimal.Decimal `json:"originalDebit"`
	OriginalCredit decimal.Decimal `json:"originalCredit"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	CreatedAt      time.Time       `json:"createdAt"`
	CreatedBy      string          `json:"createdBy"`
}

// ProposedLine is a candidate line before conversion and persistence.
type ProposedLine struct {
	AccountID   string
	Debit       decimal.Decimal
	Credit      decimal.Decimal
	Description string
}

// ProposedEntry is a candidate entry handed to the validator.
type ProposedEntry struct {
	EntryDate   time.Time
	EntryType   EntryType
	Description string
	Lines       []ProposedLine
}

// AccountIDs returns the distinct account ids referenced by the proposed lines.
func (p ProposedEntry) AccountIDs() []string {
	seen := make(map[string]bool, len(p.Lines))
	ids := make([]string, 0, len(p.Lines))
	for _, line := range p.Lines {
		if !seen[line.AccountID] {
			seen[line.AccountID] = true
			ids = append(ids, line.AccountID)
		}
	}
	return ids
}

// JournalEntryFilter narrows entry listings.
type JournalEntryFilter struct {
	Status   JournalStatus
	FromDate *time.Time
	ToDate   *time.Time
}
