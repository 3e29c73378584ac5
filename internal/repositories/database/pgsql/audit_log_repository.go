package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_engine/internal/models"
	"github.com/SscSPs/ledger_engine/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

// chainLockKey is the advisory lock key held while appending to the activity log.
const chainLockKey int64 = 0x6c6564676572 // "ledger"

const activityColumns = `id, actor, action, subject_type, subject_id, changes, ip_address, url, user_agent,
	nonce, prev_hash, hash, created_at`

// PgxAuditLogRepository stores the hash-chained activity log.
type PgxAuditLogRepository struct {
	BaseRepository
}

func newPgxAuditLogRepository(base BaseRepository) portsrepo.AuditLogRepositoryFacade {
	return &PgxAuditLogRepository{BaseRepository: base}
}

var _ portsrepo.AuditLogRepositoryFacade = (*PgxAuditLogRepository)(nil)

func scanActivity(row pgx.Row) (models.ActivityLog, error) {
	var m models.ActivityLog
	err := row.Scan(
		&m.ID, &m.Actor, &m.Action, &m.SubjectType, &m.SubjectID, &m.Changes, &m.IPAddress, &m.URL, &m.UserAgent,
		&m.Nonce, &m.PrevHash, &m.Hash, &m.CreatedAt,
	)
	return m, err
}

// LockChain takes a transaction-scoped advisory lock so appends see a stable tail.
func (r *PgxAuditLogRepository) LockChain(ctx context.Context) error {
	if !inTx(ctx) {
		return errors.New("lock activity log: no transaction in context")
	}
	if _, err := r.db(ctx).Exec(ctx, `SELECT pg_advisory_xact_lock($1);`, chainLockKey); err != nil {
		return apperrors.NewAppError(500, "failed to lock activity log", err)
	}
	return nil
}

// AppendRecord inserts a sealed record and returns its id.
func (r *PgxAuditLogRepository) AppendRecord(ctx context.Context, record domain.AuditRecord) (int64, error) {
	m := mapping.ToModelActivityLog(record)
	query := `
		INSERT INTO activity_log (actor, action, subject_type, subject_id, changes, ip_address, url, user_agent,
			nonce, prev_hash, hash, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id;`

	var id int64
	err := r.db(ctx).QueryRow(ctx, query,
		m.Actor, m.Action, m.SubjectType, m.SubjectID, m.Changes, m.IPAddress, m.URL, m.UserAgent,
		m.Nonce, m.PrevHash, m.Hash, m.CreatedAt,
	).Scan(&id)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to append activity record", err)
	}
	return id, nil
}

// FindLatestRecord returns the tail of the chain.
func (r *PgxAuditLogRepository) FindLatestRecord(ctx context.Context) (*domain.AuditRecord, error) {
	query := `SELECT ` + activityColumns + ` FROM activity_log ORDER BY id DESC LIMIT 1;`
	return r.findOne(ctx, query)
}

// FindRecordBefore returns the record immediately preceding id.
func (r *PgxAuditLogRepository) FindRecordBefore(ctx context.Context, id int64) (*domain.AuditRecord, error) {
	query := `SELECT ` + activityColumns + ` FROM activity_log WHERE id < $1 ORDER BY id DESC LIMIT 1;`
	return r.findOne(ctx, query, id)
}

func (r *PgxAuditLogRepository) findOne(ctx context.Context, query string, args ...any) (*domain.AuditRecord, error) {
	m, err := scanActivity(r.db(ctx).QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("activity record")
		}
		return nil, apperrors.NewAppError(500, "failed to read activity log", err)
	}
	record := mapping.ToDomainAuditRecord(m)
	return &record, nil
}

// ListRecordRange returns records with ids in [fromID, toID]; zero bounds are open.
func (r *PgxAuditLogRepository) ListRecordRange(ctx context.Context, fromID, toID int64) ([]domain.AuditRecord, error) {
	query := `SELECT ` + activityColumns + ` FROM activity_log
		WHERE ($1 = 0 OR id >= $1) AND ($2 = 0 OR id <= $2)
		ORDER BY id;`
	return r.list(ctx, query, fromID, toID)
}

// ListRecords lists records after afterID matching filter, oldest first.
func (r *PgxAuditLogRepository) ListRecords(ctx context.Context, filter domain.AuditRecordFilter, limit int, afterID int64) ([]domain.AuditRecord, error) {
	query := `SELECT ` + activityColumns + ` FROM activity_log
		WHERE id > $1
			AND ($2 = '' OR subject_type = $2)
			AND ($3 = '' OR subject_id = $3)
		ORDER BY id
		LIMIT $4;`
	return r.list(ctx, query, afterID, string(filter.SubjectType), filter.SubjectID, limit)
}

func (r *PgxAuditLogRepository) list(ctx context.Context, query string, args ...any) ([]domain.AuditRecord, error) {
	rows, err := r.db(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query activity log", err)
	}
	defer rows.Close()

	records := make([]domain.AuditRecord, 0)
	for rows.Next() {
		m, err := scanActivity(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan activity record: %w", err)
		}
		records = append(records, mapping.ToDomainAuditRecord(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating activity log: %w", err)
	}
	return records, nil
}
