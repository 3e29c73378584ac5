package dto

import "github.com/SscSPs/ledger_engine/internal/core/domain"

// ListAuditRecordsParams defines query parameters for browsing the activity log.
type ListAuditRecordsParams struct {
	SubjectType domain.AuditSubjectType `form:"subjectType" binding:"omitempty,oneof=journal_entry account"`
	SubjectID   string                  `form:"subjectID"`
	AfterID     int64                   `form:"afterID,default=0" binding:"min=0"`
	Limit       int                     `form:"limit,default=50" binding:"min=1,max=500"`
}

// ListAuditRecordsResponse wraps a page of audit records.
type ListAuditRecordsResponse struct {
	Records     []domain.AuditRecord `json:"records"`
	NextAfterID *int64               `json:"nextAfterID,omitempty"`
}

// VerifyAuditParams bounds a chain verification. Zero means open-ended.
type VerifyAuditParams struct {
	From int64 `form:"from,default=0" binding:"min=0"`
	To   int64 `form:"to,default=0" binding:"min=0"`
}
