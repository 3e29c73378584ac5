package repositories

import (
	"context"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

// AuditLogReader defines read operations for the activity log
type AuditLogReader interface {
	// FindLatestRecord returns the most recently appended record, or apperrors.ErrNotFound on an empty log.
	FindLatestRecord(ctx context.Context) (*domain.AuditRecord, error)

	// FindRecordBefore returns the record immediately preceding id, or apperrors.ErrNotFound.
	FindRecordBefore(ctx context.Context, id int64) (*domain.AuditRecord, error)

	// ListRecordRange returns records with fromID <= id <= toID in id order. Zero bounds are open.
	ListRecordRange(ctx context.Context, fromID, toID int64) ([]domain.AuditRecord, error)

	// ListRecords retrieves records after afterID matching filter, oldest first.
	ListRecords(ctx context.Context, filter domain.AuditRecordFilter, limit int, afterID int64) ([]domain.AuditRecord, error)
}

// AuditLogWriter defines the append-only write side of the activity log
type AuditLogWriter interface {
	// LockChain serializes appenders until the current transaction ends.
	LockChain(ctx context.Context) error

	// AppendRecord stores a sealed record and returns its assigned id.
	AppendRecord(ctx context.Context, record domain.AuditRecord) (int64, error)
}

// AuditLogRepositoryFacade combines all audit log repository interfaces
type AuditLogRepositoryFacade interface {
	AuditLogReader
	AuditLogWriter
}
