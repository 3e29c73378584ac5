package domain

import (
	"encoding/json"
	"time"
)

// AuditAction names the mutation an audit record describes.
type AuditAction string

const (
	ActionEntryVoided            AuditAction = "journal_entry.voided"
	ActionEntryEdited            AuditAction = "journal_entry.edited"
	ActionAccountLinesReassigned AuditAction = "account.lines_reassigned"
	ActionAccountDeleted         AuditAction = "account.deleted"
)

// AuditSubjectType names the kind of record an audit entry is about.
type AuditSubjectType string

const (
	SubjectJournalEntry AuditSubjectType = "journal_entry"
	SubjectAccount      AuditSubjectType = "account"
)

// AuditChanges is the before/after snapshot stored with each record.
type AuditChanges struct {
	Before any `json:"before"`
	After  any `json:"after"`
}

// RequestContext is best-effort information about the request that caused a mutation.
type RequestContext struct {
	IPAddress string
	URL       string
	UserAgent string
}

// AuditRecord is one link of the append-only activity log. Hash covers the
// record's canonical serialization including PrevHash and Nonce.
type AuditRecord struct {
	ID          int64            `json:"id"`
	Actor       string           `json:"actor"`
	Action      AuditAction      `json:"action"`
	SubjectType AuditSubjectType `json:"subjectType"`
	SubjectID   string           `json:"subjectID"`
	Changes     json.RawMessage  `json:"changes"`
	IPAddress   *string          `json:"ipAddress,omitempty"`
	URL         *string          `json:"url,omitempty"`
	UserAgent   *string          `json:"userAgent,omitempty"`
	Nonce       string           `json:"nonce"`
	PrevHash    *string          `json:"prevHash"`
	Hash        string           `json:"hash"`
	CreatedAt   time.Time        `json:"createdAt"`
}

// AuditRecordFilter narrows audit log listings.
type AuditRecordFilter struct {
	SubjectType AuditSubjectType
	SubjectID   string
}

// ChainVerification is the result of recomputing a range of the audit chain.
type ChainVerification struct {
	Valid      bool   `json:"valid"`
	Checked    int    `json:"checked"`
	FirstID    int64  `json:"firstID,omitempty"`
	LastID     int64  `json:"lastID,omitempty"`
	BrokenAtID *int64 `json:"brokenAtID,omitempty"`
	Reason     string `json:"reason,omitempty"`
}
