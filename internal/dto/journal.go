package dto

import (
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// JournalLineRequest is one proposed line. Exactly one of Debit/Credit must be positive.
type JournalLineRequest struct {
	AccountID   string          `json:"accountID" binding:"required"`
	Debit       decimal.Decimal `json:"debit" binding:"dgte=0,dscale=4"`
	Credit      decimal.Decimal `json:"credit" binding:"dgte=0,dscale=4"`
	Description string          `json:"description" binding:"max=500"`
}

// PostJournalEntryRequest defines a candidate entry. CurrencyCode defaults to the base currency.
type PostJournalEntryRequest struct {
	EntryDate       Date                 `json:"entryDate"`
	EntryType       domain.EntryType     `json:"entryType" binding:"omitempty,max=32"`
	Description     string               `json:"description" binding:"max=1000"`
	CurrencyCode    string               `json:"currencyCode" binding:"omitempty,iso4217"`
	ReplacesEntryID string               `json:"replacesEntryID"`
	Lines           []JournalLineRequest `json:"lines" binding:"required,dive"`
}

// EditJournalEntryRequest replaces all lines of an entry, optionally moving its date or description.
type EditJournalEntryRequest struct {
	EntryDate   *Date                `json:"entryDate"`
	Description *string              `json:"description" binding:"omitempty,max=1000"`
	Lines       []JournalLineRequest `json:"lines" binding:"required,dive"`
}

// JournalLineResponse defines the data returned for a journal line.
type JournalLineResponse struct {
	LineID         string          `json:"lineID"`
	LineNo         int             `json:"lineNo"`
	AccountID      string          `json:"accountID"`
	Description    string          `json:"description"`
	CurrencyCode   string          `json:"currencyCode"`
	ExchangeRate   decimal.Decimal `json:"exchangeRate"`
	OriginalDebit  decimal.Decimal `json:"originalDebit"`
	OriginalCredit decimal.Decimal `json:"originalCredit"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
}

// JournalEntryResponse defines the data returned for a journal entry.
type JournalEntryResponse struct {
	EntryID         string                `json:"entryID"`
	Reference       string                `json:"reference,omitempty"`
	EntryDate       Date                  `json:"entryDate"`
	EntryType       domain.EntryType      `json:"entryType"`
	Description     string                `json:"description"`
	CurrencyCode    string                `json:"currencyCode"`
	Status          domain.JournalStatus  `json:"status"`
	PostedAt        *time.Time            `json:"postedAt,omitempty"`
	PostedBy        string                `json:"postedBy,omitempty"`
	VoidedAt        *time.Time            `json:"voidedAt,omitempty"`
	VoidedBy        string                `json:"voidedBy,omitempty"`
	ReplacesEntryID string                `json:"replacesEntryID,omitempty"`
	TotalDebit      decimal.Decimal       `json:"totalDebit"`
	TotalCredit     decimal.Decimal       `json:"totalCredit"`
	Lines           []JournalLineResponse `json:"lines,omitempty"`
	CreatedAt       time.Time             `json:"createdAt"`
	CreatedBy       string                `json:"createdBy"`
	LastUpdatedAt   time.Time             `json:"lastUpdatedAt"`
	LastUpdatedBy   string                `json:"lastUpdatedBy"`
}

// ToJournalEntryResponse converts a domain.JournalEntry to JournalEntryResponse DTO.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	debit, credit := e.Totals()
	resp := JournalEntryResponse{
		EntryID:         e.EntryID,
		Reference:       e.Reference,
		EntryDate:       NewDate(e.EntryDate),
		EntryType:       e.EntryType,
		Description:     e.Description,
		CurrencyCode:    e.CurrencyCode,
		Status:          e.Status,
		PostedAt:        e.PostedAt,
		PostedBy:        e.PostedBy,
		VoidedAt:        e.VoidedAt,
		VoidedBy:        e.VoidedBy,
		ReplacesEntryID: e.ReplacesEntryID,
		TotalDebit:      debit,
		TotalCredit:     credit,
		CreatedAt:       e.CreatedAt,
		CreatedBy:       e.CreatedBy,
		LastUpdatedAt:   e.LastUpdatedAt,
		LastUpdatedBy:   e.LastUpdatedBy,
	}
	for _, line := range e.Lines {
		resp.Lines = append(resp.Lines, JournalLineResponse{
			LineID:         line.LineID,
			LineNo:         line.LineNo,
			AccountID:      line.AccountID,
			Description:    line.Description,
			CurrencyCode:   line.CurrencyCode,
			ExchangeRate:   line.ExchangeRate,
			OriginalDebit:  line.OriginalDebit,
			OriginalCredit: line.OriginalCredit,
			Debit:          line.Debit,
			Credit:         line.Credit,
		})
	}
	return resp
}

// ListJournalEntriesParams defines query parameters for listing entries.
type ListJournalEntriesParams struct {
	Status    domain.JournalStatus `form:"status" binding:"omitempty,oneof=DRAFT POSTED VOID"`
	From      string               `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To        string               `form:"to" binding:"omitempty,datetime=2006-01-02"`
	Limit     int                  `form:"limit,default=20" binding:"min=1,max=100"`
	NextToken *string              `form:"nextToken"`
}

// ListJournalEntriesResponse wraps a page of entries.
type ListJournalEntriesResponse struct {
	Entries   []JournalEntryResponse `json:"entries"`
	NextToken *string                `json:"nextToken,omitempty"`
}

// ValidationResultResponse is returned by the dry-run validation endpoint.
type ValidationResultResponse struct {
	Valid     bool   `json:"valid"`
	Reason    string `json:"reason,omitempty"`
	LineIndex *int   `json:"lineIndex,omitempty"`
	Message   string `json:"message,omitempty"`
}

// OpeningBalanceRow is a seed balance for one account.
type OpeningBalanceRow struct {
	AccountID string          `json:"accountID" binding:"required"`
	Debit     decimal.Decimal `json:"debit" binding:"dgte=0,dscale=4"`
	Credit    decimal.Decimal `json:"credit" binding:"dgte=0,dscale=4"`
}

// PostOpeningBalancesRequest seeds the ledger with one balancing entry.
type PostOpeningBalancesRequest struct {
	EntryDate   Date                `json:"entryDate"`
	Description string              `json:"description" binding:"max=1000"`
	Rows        []OpeningBalanceRow `json:"rows" binding:"required,min=1,dive"`
}
