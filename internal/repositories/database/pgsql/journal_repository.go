package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_engine/internal/models"
	"github.com/SscSPs/ledger_engine/internal/utils/mapping"
	"github.com/SscSPs/ledger_engine/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
)

const referenceConstraint = "journal_entries_reference_key"

const entryColumns = `entry_id, reference, entry_date, entry_type, description, currency_code, status,
	posted_at, posted_by, voided_at, voided_by, replaces_entry_id,
	created_at, created_by, last_updated_at, last_updated_by`

const lineColumns = `line_id, entry_id, line_no, account_id, description, currency_code, exchange_rate,
	original_debit, original_credit, debit, credit, created_at, created_by`

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal entries and their lines.
func newPgxJournalRepository(base BaseRepository) portsrepo.JournalRepositoryFacade {
	return &PgxJournalRepository{BaseRepository: base}
}

var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

func scanEntry(row pgx.Row) (models.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.EntryID, &m.Reference, &m.EntryDate, &m.EntryType, &m.Description, &m.CurrencyCode, &m.Status,
		&m.PostedAt, &m.PostedBy, &m.VoidedAt, &m.VoidedBy, &m.ReplacesEntryID,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

// NextReferenceNumber increments the per-year counter and returns the new value.
func (r *PgxJournalRepository) NextReferenceNumber(ctx context.Context, year int) (int64, error) {
	query := `
		INSERT INTO journal_reference_sequences (year, last_number)
		VALUES ($1, 1)
		ON CONFLICT (year) DO UPDATE SET last_number = journal_reference_sequences.last_number + 1
		RETURNING last_number;`

	var next int64
	if err := r.db(ctx).QueryRow(ctx, query, year).Scan(&next); err != nil {
		return 0, apperrors.NewAppError(500, fmt.Sprintf("failed to advance reference sequence for %d", year), err)
	}
	return next, nil
}

// InsertEntry saves the entry header and queues its lines in one batch.
func (r *PgxJournalRepository) InsertEntry(ctx context.Context, entry domain.JournalEntry) error {
	m := mapping.ToModelJournalEntry(entry)

	query := `INSERT INTO journal_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);`

	_, err := r.db(ctx).Exec(ctx, query,
		m.EntryID, m.Reference, m.EntryDate, m.EntryType, m.Description, m.CurrencyCode, m.Status,
		m.PostedAt, m.PostedBy, m.VoidedAt, m.VoidedBy, m.ReplacesEntryID,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if uniqueViolationOn(err, referenceConstraint) {
			return apperrors.ErrReferenceCollision
		}
		return apperrors.NewAppError(500, "failed to insert journal entry "+m.EntryID, err)
	}

	return r.insertLines(ctx, entry.EntryID, entry.Lines)
}

func (r *PgxJournalRepository) insertLines(ctx context.Context, entryID string, lines []domain.JournalLine) error {
	if len(lines) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	query := `INSERT INTO journal_entry_lines (` + lineColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);`

	for _, line := range lines {
		l := mapping.ToModelJournalLine(line)
		batch.Queue(query,
			l.LineID, l.EntryID, l.LineNo, l.AccountID, l.Description, l.CurrencyCode, l.ExchangeRate,
			l.OriginalDebit, l.OriginalCredit, l.Debit, l.Credit, l.CreatedAt, l.CreatedBy,
		)
	}

	// Close surfaces the first failing statement of the batch.
	if err := r.db(ctx).SendBatch(ctx, batch).Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert lines for journal entry "+entryID, err)
	}
	return nil
}

// FindEntryByID retrieves an entry and its lines.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE entry_id = $1;`
	return r.findEntry(ctx, query, entryID)
}

// FindEntryByReference retrieves an entry by its reference.
func (r *PgxJournalRepository) FindEntryByReference(ctx context.Context, reference string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE reference = $1;`
	return r.findEntry(ctx, query, reference)
}

// LockEntry retrieves an entry FOR UPDATE along with its lines.
func (r *PgxJournalRepository) LockEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	if !inTx(ctx) {
		return nil, fmt.Errorf("lock journal entry %s: no transaction in context", entryID)
	}
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE entry_id = $1 FOR UPDATE;`
	return r.findEntry(ctx, query, entryID)
}

func (r *PgxJournalRepository) findEntry(ctx context.Context, query string, arg string) (*domain.JournalEntry, error) {
	m, err := scanEntry(r.db(ctx).QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("journal entry " + arg)
		}
		return nil, apperrors.NewAppError(500, "failed to find journal entry "+arg, err)
	}

	entry := mapping.ToDomainJournalEntry(m)
	lines, err := r.findLines(ctx, entry.EntryID)
	if err != nil {
		return nil, err
	}
	entry.Lines = lines
	return &entry, nil
}

func (r *PgxJournalRepository) findLines(ctx context.Context, entryID string) ([]domain.JournalLine, error) {
	query := `SELECT ` + lineColumns + ` FROM journal_entry_lines WHERE entry_id = $1 ORDER BY line_no;`
	rows, err := r.db(ctx).Query(ctx, query, entryID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query lines for journal entry "+entryID, err)
	}
	defer rows.Close()

	var ms []models.JournalLine
	for rows.Next() {
		var l models.JournalLine
		if err := rows.Scan(
			&l.LineID, &l.EntryID, &l.LineNo, &l.AccountID, &l.Description, &l.CurrencyCode, &l.ExchangeRate,
			&l.OriginalDebit, &l.OriginalCredit, &l.Debit, &l.Credit, &l.CreatedAt, &l.CreatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan journal line", err)
		}
		ms = append(ms, l)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating journal lines", err)
	}
	return mapping.ToDomainJournalLineSlice(ms), nil
}

// ListEntries lists entry headers newest first. The token encodes the last
// (entry_date, created_at, entry_id) of the previous page.
func (r *PgxJournalRepository) ListEntries(ctx context.Context, filter domain.JournalEntryFilter, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	args := []any{limit + 1}
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE TRUE`

	if filter.Status != "" {
		args = append(args, string(filter.Status))
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.FromDate != nil {
		args = append(args, *filter.FromDate)
		query += fmt.Sprintf(" AND entry_date >= $%d", len(args))
	}
	if filter.ToDate != nil {
		args = append(args, *filter.ToDate)
		query += fmt.Sprintf(" AND entry_date <= $%d", len(args))
	}
	if nextToken != nil && *nextToken != "" {
		cursor, err := pagination.DecodeEntryCursor(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		args = append(args, cursor.EntryDate, cursor.CreatedAt, cursor.EntryID)
		n := len(args)
		query += fmt.Sprintf(" AND (entry_date, created_at, entry_id) < ($%d, $%d, $%d)", n-2, n-1, n)
	}
	query += " ORDER BY entry_date DESC, created_at DESC, entry_id DESC LIMIT $1;"

	rows, err := r.db(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to list journal entries", err)
	}
	defer rows.Close()

	entries := make([]domain.JournalEntry, 0, limit)
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan journal entry", err)
		}
		entries = append(entries, mapping.ToDomainJournalEntry(m))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating journal entries", err)
	}

	var token *string
	if len(entries) > limit {
		entries = entries[:limit]
		last := entries[limit-1]
		next := pagination.EncodeEntryCursor(pagination.EntryCursor{
			EntryDate: last.EntryDate,
			CreatedAt: last.CreatedAt,
			EntryID:   last.EntryID,
		})
		token = &next
	}
	return entries, token, nil
}

// MarkPosted transitions a draft to POSTED.
func (r *PgxJournalRepository) MarkPosted(ctx context.Context, entryID string, reference string, postedAt time.Time, postedBy string) error {
	query := `
		UPDATE journal_entries
		SET status = 'POSTED', reference = $2, posted_at = $3, posted_by = $4,
		    last_updated_at = $3, last_updated_by = $4
		WHERE entry_id = $1 AND status = 'DRAFT';`

	tag, err := r.db(ctx).Exec(ctx, query, entryID, reference, postedAt, postedBy)
	if err != nil {
		if uniqueViolationOn(err, referenceConstraint) {
			return apperrors.ErrReferenceCollision
		}
		return apperrors.NewAppError(500, "failed to post journal entry "+entryID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: journal entry %s is not a draft", apperrors.ErrState, entryID)
	}
	return nil
}

// MarkVoided transitions a posted entry to VOID.
func (r *PgxJournalRepository) MarkVoided(ctx context.Context, entryID string, voidedAt time.Time, voidedBy string) error {
	query := `
		UPDATE journal_entries
		SET status = 'VOID', voided_at = $2, voided_by = $3,
		    last_updated_at = $2, last_updated_by = $3
		WHERE entry_id = $1 AND status = 'POSTED';`

	tag, err := r.db(ctx).Exec(ctx, query, entryID, voidedAt, voidedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to void journal entry "+entryID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: journal entry %s is not posted", apperrors.ErrState, entryID)
	}
	return nil
}

// UpdateEntryHeader updates the editable header fields of an entry.
func (r *PgxJournalRepository) UpdateEntryHeader(ctx context.Context, entry domain.JournalEntry) error {
	m := mapping.ToModelJournalEntry(entry)
	query := `
		UPDATE journal_entries
		SET entry_date = $2, entry_type = $3, description = $4, currency_code = $5,
		    replaces_entry_id = $6, last_updated_at = $7, last_updated_by = $8
		WHERE entry_id = $1 AND status <> 'VOID';`

	tag, err := r.db(ctx).Exec(ctx, query,
		m.EntryID, m.EntryDate, m.EntryType, m.Description, m.CurrencyCode,
		m.ReplacesEntryID, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update journal entry "+m.EntryID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: journal entry %s cannot be edited", apperrors.ErrState, m.EntryID)
	}
	return nil
}

// ReplaceLines swaps the full line set of an entry.
func (r *PgxJournalRepository) ReplaceLines(ctx context.Context, entryID string, lines []domain.JournalLine) error {
	if _, err := r.db(ctx).Exec(ctx, `DELETE FROM journal_entry_lines WHERE entry_id = $1;`, entryID); err != nil {
		return apperrors.NewAppError(500, "failed to delete lines for journal entry "+entryID, err)
	}
	return r.insertLines(ctx, entryID, lines)
}
