package mapping

import (
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry header to a model JournalEntry.
// Lines are mapped separately.
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:         d.EntryID,
		Reference:       nullable(d.Reference),
		EntryDate:       d.EntryDate,
		EntryType:       string(d.EntryType),
		Description:     d.Description,
		CurrencyCode:    d.CurrencyCode,
		Status:          string(d.Status),
		PostedAt:        d.PostedAt,
		PostedBy:        nullable(d.PostedBy),
		VoidedAt:        d.VoidedAt,
		VoidedBy:        nullable(d.VoidedBy),
		ReplacesEntryID: nullable(d.ReplacesEntryID),
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalEntry converts a model JournalEntry to a domain JournalEntry without lines.
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:         m.EntryID,
		Reference:       deref(m.Reference),
		EntryDate:       domain.DateOnly(m.EntryDate),
		EntryType:       domain.EntryType(m.EntryType),
		Description:     m.Description,
		CurrencyCode:    m.CurrencyCode,
		Status:          domain.JournalStatus(m.Status),
		PostedAt:        m.PostedAt,
		PostedBy:        deref(m.PostedBy),
		VoidedAt:        m.VoidedAt,
		VoidedBy:        deref(m.VoidedBy),
		ReplacesEntryID: deref(m.ReplacesEntryID),
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelJournalLine converts a domain JournalLine to a model JournalLine
func ToModelJournalLine(d domain.JournalLine) models.JournalLine {
	return models.JournalLine{
		LineID:         d.LineID,
		EntryID:        d.EntryID,
		LineNo:         d.LineNo,
		AccountID:      d.AccountID,
		Description:    d.Description,
		CurrencyCode:   d.CurrencyCode,
		ExchangeRate:   d.ExchangeRate,
		OriginalDebit:  d.OriginalDebit,
		OriginalCredit: d.OriginalCredit,
		Debit:          d.Debit,
		Credit:         d.Credit,
		CreatedAt:      d.CreatedAt,
		CreatedBy:      d.CreatedBy,
	}
}

// ToDomainJournalLine converts a model JournalLine to a domain JournalLine
func ToDomainJournalLine(m models.JournalLine) domain.JournalLine {
	return domain.JournalLine{
		LineID:         m.LineID,
		EntryID:        m.EntryID,
		LineNo:         m.LineNo,
		AccountID:      m.AccountID,
		Description:    m.Description,
		CurrencyCode:   m.CurrencyCode,
		ExchangeRate:   m.ExchangeRate,
		OriginalDebit:  m.OriginalDebit,
		OriginalCredit: m.OriginalCredit,
		Debit:          m.Debit,
		Credit:         m.Credit,
		CreatedAt:      m.CreatedAt,
		CreatedBy:      m.CreatedBy,
	}
}

// ToDomainJournalLineSlice converts a slice of model JournalLines to domain JournalLines
func ToDomainJournalLineSlice(ms []models.JournalLine) []domain.JournalLine {
	ds := make([]domain.JournalLine, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainJournalLine(m)
	}
	return ds
}
