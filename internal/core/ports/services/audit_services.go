package services

import (
	"context"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/dto"
)

// AuditAppender appends records to the hash chain.
type AuditAppender interface {
	// Append seals record against the current chain head and stores it. When ctx
	// carries a transaction the record commits or rolls back with it.
	Append(ctx context.Context, record domain.AuditRecord) (*domain.AuditRecord, error)
}

// AuditReaderSvc defines read and verification operations on the chain
type AuditReaderSvc interface {
	// Verify recomputes the chain over [fromID, toID]; zero bounds are open.
	Verify(ctx context.Context, fromID, toID int64) (*domain.ChainVerification, error)

	// ListRecords returns a page of records.
	ListRecords(ctx context.Context, params dto.ListAuditRecordsParams) (*dto.ListAuditRecordsResponse, error)
}

// AuditSvcFacade combines the audit chain service interfaces
type AuditSvcFacade interface {
	AuditAppender
	AuditReaderSvc
}
