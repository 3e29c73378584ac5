package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

// JournalReader defines read operations for journal entry data
type JournalReader interface {
	// FindEntryByID retrieves an entry with its lines ordered by line number.
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// FindEntryByReference retrieves a posted or voided entry by its reference.
	FindEntryByReference(ctx context.Context, reference string) (*domain.JournalEntry, error)

	// ListEntries retrieves entry headers (without lines) newest first using token-based pagination.
	// It returns the entries, a token for the next page, and an error.
	ListEntries(ctx context.Context, filter domain.JournalEntryFilter, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)
}

// JournalWriter defines write operations for journal entry data. All of them
// are expected to run inside TransactionManager.WithinTx.
type JournalWriter interface {
	// NextReferenceNumber atomically increments and returns the counter for year.
	NextReferenceNumber(ctx context.Context, year int) (int64, error)

	// InsertEntry persists an entry header and all its lines as one unit.
	// A taken reference yields apperrors.ErrReferenceCollision.
	InsertEntry(ctx context.Context, entry domain.JournalEntry) error

	// LockEntry selects an entry FOR UPDATE, with its lines, serializing concurrent void/edit attempts.
	LockEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// MarkPosted moves a draft to POSTED, assigning its reference.
	MarkPosted(ctx context.Context, entryID string, reference string, postedAt time.Time, postedBy string) error

	// MarkVoided moves a posted entry to VOID. Lines are left untouched.
	MarkVoided(ctx context.Context, entryID string, voidedAt time.Time, voidedBy string) error

	// UpdateEntryHeader updates date, type, description and currency of an entry.
	UpdateEntryHeader(ctx context.Context, entry domain.JournalEntry) error

	// ReplaceLines deletes every line of the entry and inserts lines in their place.
	ReplaceLines(ctx context.Context, entryID string, lines []domain.JournalLine) error
}

// JournalRepositoryFacade combines all journal-related repository interfaces
// This is a facade for clients that need access to all operations
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
}

// JournalRepositoryWithTx extends JournalRepositoryFacade with transaction capabilities
type JournalRepositoryWithTx interface {
	JournalRepositoryFacade
	TransactionManager
}
