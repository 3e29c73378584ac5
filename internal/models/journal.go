package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry is a row of the journal_entries table.
type JournalEntry struct {
	EntryID         string     `db:"entry_id"`
	Reference       *string    `db:"reference"` // NULL until posted
	EntryDate       time.Time  `db:"entry_date"`
	EntryType       string     `db:"entry_type"`
	Description     string     `db:"description"`
	CurrencyCode    string     `db:"currency_code"`
	Status          string     `db:"status"`
	PostedAt        *time.Time `db:"posted_at"`
	PostedBy        *string    `db:"posted_by"`
	VoidedAt        *time.Time `db:"voided_at"`
	VoidedBy        *string    `db:"voided_by"`
	ReplacesEntryID *string    `db:"replaces_entry_id"`
	AuditFields
}

// JournalLine is a row of the journal_lines table.
type JournalLine struct {
	LineID         string          `db:"line_id"`
	EntryID        string          `db:"entry_id"`
	LineNo         int             `db:"line_no"`
	AccountID      string          `db:"account_id"`
	Description    string          `db:"description"`
	CurrencyCode   string          `db:"currency_code"`
	ExchangeRate   decimal.Decimal `db:"exchange_rate"`
	OriginalDebit  decimal.Decimal `db:"original_debit"`
	OriginalCredit decimal.Decimal `db:"original_credit"`
	Debit          decimal.Decimal `db:"debit"`
	Credit         decimal.Decimal `db:"credit"`
	CreatedAt      time.Time       `db:"created_at"`
	CreatedBy      string          `db:"created_by"`
}
