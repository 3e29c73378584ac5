package services

import (
	"context"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/dto"
)

// JournalReaderSvc defines read operations for journal entries
type JournalReaderSvc interface {
	// GetEntryByID retrieves an entry with its lines.
	GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// GetEntryByReference retrieves a posted or voided entry by reference.
	GetEntryByReference(ctx context.Context, reference string) (*domain.JournalEntry, error)

	// ListEntries retrieves a page of entry headers.
	ListEntries(ctx context.Context, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error)
}

// JournalPosterSvc defines the posting state machine
type JournalPosterSvc interface {
	// ValidateEntry runs every posting check without persisting anything.
	ValidateEntry(ctx context.Context, req dto.PostJournalEntryRequest) error

	// PostEntry validates, converts and posts a new entry atomically.
	PostEntry(ctx context.Context, req dto.PostJournalEntryRequest, actor string) (*domain.JournalEntry, error)

	// CreateDraft stores an entry in DRAFT status. Drafts do not affect balances.
	CreateDraft(ctx context.Context, req dto.PostJournalEntryRequest, actor string) (*domain.JournalEntry, error)

	// PostDraft posts a draft after full validation.
	PostDraft(ctx context.Context, entryID string, actor string) (*domain.JournalEntry, error)

	// VoidEntry excludes a posted entry from balances without touching its lines.
	VoidEntry(ctx context.Context, entryID string, actor string) (*domain.JournalEntry, error)

	// EditEntry replaces every line of a draft or posted entry.
	EditEntry(ctx context.Context, entryID string, req dto.EditJournalEntryRequest, actor string) (*domain.JournalEntry, error)
}

// JournalSvcFacade combines all journal-related service interfaces
// This is a facade for clients that need access to all operations
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalPosterSvc
}

// OpeningBalanceSvc seeds account balances with a single balancing entry.
type OpeningBalanceSvc interface {
	PostOpeningBalances(ctx context.Context, req dto.PostOpeningBalancesRequest, actor string) (*domain.JournalEntry, error)
}
