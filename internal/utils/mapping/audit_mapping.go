package mapping

import (
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/models"
)

// ToModelActivityLog converts a domain AuditRecord to a model ActivityLog
func ToModelActivityLog(d domain.AuditRecord) models.ActivityLog {
	return models.ActivityLog{
		ID:          d.ID,
		Actor:       d.Actor,
		Action:      string(d.Action),
		SubjectType: string(d.SubjectType),
		SubjectID:   d.SubjectID,
		Changes:     d.Changes,
		IPAddress:   d.IPAddress,
		URL:         d.URL,
		UserAgent:   d.UserAgent,
		Nonce:       d.Nonce,
		PrevHash:    d.PrevHash,
		Hash:        d.Hash,
		CreatedAt:   d.CreatedAt,
	}
}

// ToDomainAuditRecord converts a model ActivityLog to a domain AuditRecord
func ToDomainAuditRecord(m models.ActivityLog) domain.AuditRecord {
	return domain.AuditRecord{
		ID:          m.ID,
		Actor:       m.Actor,
		Action:      domain.AuditAction(m.Action),
		SubjectType: domain.AuditSubjectType(m.SubjectType),
		SubjectID:   m.SubjectID,
		Changes:     m.Changes,
		IPAddress:   m.IPAddress,
		URL:         m.URL,
		UserAgent:   m.UserAgent,
		Nonce:       m.Nonce,
		PrevHash:    m.PrevHash,
		Hash:        m.Hash,
		CreatedAt:   m.CreatedAt.UTC(),
	}
}
