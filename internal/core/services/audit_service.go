package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/SscSPs/ledger_engine/internal/middleware"
	"github.com/SscSPs/ledger_engine/internal/utils"
	"github.com/SscSPs/ledger_engine/internal/utils/hashchain"
)

// auditService appends to and verifies the hash-chained activity log.
type auditService struct {
	BaseService
	txManager portsrepo.TransactionManager
	auditRepo portsrepo.AuditLogRepositoryFacade
	nonce     func(at time.Time) (string, error)
}

// AuditServiceOption is a functional option for configuring the audit service
type AuditServiceOption func(*auditService)

// WithAuditClock overrides the clock used to stamp records.
func WithAuditClock(now func() time.Time) AuditServiceOption {
	return func(s *auditService) {
		s.Now = now
	}
}

// WithNonceSource overrides the nonce generator.
func WithNonceSource(nonce func(at time.Time) (string, error)) AuditServiceOption {
	return func(s *auditService) {
		s.nonce = nonce
	}
}

// NewAuditService creates a new audit chain service.
func NewAuditService(txManager portsrepo.TransactionManager, auditRepo portsrepo.AuditLogRepositoryFacade, options ...AuditServiceOption) portssvc.AuditSvcFacade {
	svc := &auditService{
		txManager: txManager,
		auditRepo: auditRepo,
		nonce:     utils.NewNonce,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.AuditSvcFacade = (*auditService)(nil)

// Append seals record against the chain head and stores it. Appenders are
// serialized by a transaction-scoped lock so two records never share a prev_hash.
func (s *auditService) Append(ctx context.Context, record domain.AuditRecord) (*domain.AuditRecord, error) {
	if record.Actor == "" || record.Action == "" || record.SubjectType == "" || record.SubjectID == "" {
		return nil, apperrors.NewValidationError(apperrors.ReasonInvalidInput,
			"audit records need an actor, an action and a subject")
	}

	info := middleware.GetRequestContext(ctx)
	if record.IPAddress == nil {
		record.IPAddress = optionalString(info.IPAddress)
	}
	if record.URL == nil {
		record.URL = optionalString(info.URL)
	}
	if record.UserAgent == nil {
		record.UserAgent = optionalString(info.UserAgent)
	}

	err := s.txManager.WithinTx(ctx, func(txCtx context.Context) error {
		if err := s.auditRepo.LockChain(txCtx); err != nil {
			return fmt.Errorf("failed to lock audit chain: %w", err)
		}

		var prevHash *string
		latest, err := s.auditRepo.FindLatestRecord(txCtx)
		switch {
		case err == nil:
			h := latest.Hash
			prevHash = &h
		case errors.Is(err, apperrors.ErrNotFound):
			prevHash = nil
		default:
			return fmt.Errorf("failed to read audit chain head: %w", err)
		}

		record.CreatedAt = s.now().Truncate(time.Microsecond)
		nonce, err := s.nonce(record.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to generate audit nonce: %w", err)
		}
		record.Nonce = nonce

		if err := hashchain.Seal(&record, prevHash); err != nil {
			return err
		}

		id, err := s.auditRepo.AppendRecord(txCtx, record)
		if err != nil {
			return fmt.Errorf("failed to append audit record: %w", err)
		}
		record.ID = id
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to append audit record",
			slog.String("action", string(record.Action)),
			slog.String("subject_id", record.SubjectID))
		return nil, err
	}

	s.LogDebug(ctx, "Audit record appended",
		slog.Int64("audit_id", record.ID),
		slog.String("action", string(record.Action)),
		slog.String("subject_id", record.SubjectID))
	return &record, nil
}

// Verify recomputes every hash in [fromID, toID] and checks each link. A
// broken chain is reported, never repaired.
func (s *auditService) Verify(ctx context.Context, fromID, toID int64) (*domain.ChainVerification, error) {
	if fromID < 0 || toID < 0 || (toID > 0 && fromID > toID) {
		return nil, apperrors.NewValidationError(apperrors.ReasonInvalidInput, "invalid audit range %d..%d", fromID, toID)
	}

	records, err := s.auditRepo.ListRecordRange(ctx, fromID, toID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load audit records for verification")
		return nil, fmt.Errorf("failed to load audit records: %w", err)
	}

	var anchor *string
	if len(records) > 0 {
		prev, err := s.auditRepo.FindRecordBefore(ctx, records[0].ID)
		switch {
		case err == nil:
			h := prev.Hash
			anchor = &h
		case errors.Is(err, apperrors.ErrNotFound):
			anchor = nil
		default:
			s.LogError(ctx, err, "Failed to load audit anchor record")
			return nil, fmt.Errorf("failed to load audit anchor: %w", err)
		}
	}

	result := hashchain.Verify(records, anchor)
	if !result.Valid {
		s.LogError(ctx, &apperrors.IntegrityError{Check: "audit_chain", Detail: result.Reason},
			"Audit chain verification failed",
			slog.Int64("broken_at_id", *result.BrokenAtID))
	} else {
		s.LogInfo(ctx, "Audit chain verified", slog.Int("checked", result.Checked))
	}
	return &result, nil
}

// ListRecords returns a page of records, oldest first.
func (s *auditService) ListRecords(ctx context.Context, params dto.ListAuditRecordsParams) (*dto.ListAuditRecordsResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 50
	}

	filter := domain.AuditRecordFilter{SubjectType: params.SubjectType, SubjectID: params.SubjectID}
	records, err := s.auditRepo.ListRecords(ctx, filter, limit+1, params.AfterID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list audit records")
		return nil, fmt.Errorf("failed to list audit records: %w", err)
	}

	resp := &dto.ListAuditRecordsResponse{Records: records}
	if len(records) > limit {
		resp.Records = records[:limit]
		next := resp.Records[limit-1].ID
		resp.NextAfterID = &next
	}
	if resp.Records == nil {
		resp.Records = []domain.AuditRecord{}
	}
	return resp, nil
}

// newAuditRecord builds an unsealed record with a before/after snapshot.
func newAuditRecord(actor string, action domain.AuditAction, subjectType domain.AuditSubjectType, subjectID string, before, after any) (domain.AuditRecord, error) {
	changes, err := json.Marshal(domain.AuditChanges{Before: before, After: after})
	if err != nil {
		return domain.AuditRecord{}, fmt.Errorf("failed to serialize audit changes: %w", err)
	}
	return domain.AuditRecord{
		Actor:       actor,
		Action:      action,
		SubjectType: subjectType,
		SubjectID:   subjectID,
		Changes:     changes,
	}, nil
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
