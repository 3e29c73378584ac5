package services_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/utils/pagination"
	"github.com/shopspring/decimal"
)

// fakeStore is an in-memory stand-in for every repository. WithinTx snapshots
// the whole store and restores it when the unit of work fails.
type fakeStore struct {
	mu       sync.Mutex
	accounts map[string]domain.Account
	entries  map[string]domain.JournalEntry
	rates    []domain.ExchangeRate
	audit    []domain.AuditRecord
	refSeq   map[int]int64

	// collisions makes the next n InsertEntry/MarkPosted calls fail with a reference collision.
	collisions int
	txCount    int
}

type fakeTxKey struct{}

func newFakeStore() *fakeStore {
	return &fakeStore{
		accounts: map[string]domain.Account{},
		entries:  map[string]domain.JournalEntry{},
		refSeq:   map[int]int64{},
	}
}

type fakeSnapshot struct {
	accounts map[string]domain.Account
	entries  map[string]domain.JournalEntry
	rates    []domain.ExchangeRate
	audit    []domain.AuditRecord
	refSeq   map[int]int64
}

func (f *fakeStore) snapshot() fakeSnapshot {
	s := fakeSnapshot{
		accounts: make(map[string]domain.Account, len(f.accounts)),
		entries:  make(map[string]domain.JournalEntry, len(f.entries)),
		rates:    append([]domain.ExchangeRate(nil), f.rates...),
		audit:    append([]domain.AuditRecord(nil), f.audit...),
		refSeq:   make(map[int]int64, len(f.refSeq)),
	}
	for k, v := range f.accounts {
		s.accounts[k] = v
	}
	for k, v := range f.entries {
		s.entries[k] = cloneEntry(v)
	}
	for k, v := range f.refSeq {
		s.refSeq[k] = v
	}
	return s
}

func (f *fakeStore) restore(s fakeSnapshot) {
	f.accounts, f.entries, f.rates, f.audit, f.refSeq = s.accounts, s.entries, s.rates, s.audit, s.refSeq
}

func cloneEntry(e domain.JournalEntry) domain.JournalEntry {
	e.Lines = append([]domain.JournalLine(nil), e.Lines...)
	return e
}

// seedPosted stores a posted entry as-is, bypassing validation, so tests can
// reproduce rows a faulty writer might leave behind.
func (f *fakeStore) seedPosted(entry domain.JournalEntry) {
	f.mu.Lock()
	defer f.mu.Unlock()
	entry.Status = domain.Posted
	f.entries[entry.EntryID] = cloneEntry(entry)
}

// --- TransactionManager ---

func (f *fakeStore) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	nested := ctx.Value(fakeTxKey{}) != nil
	f.mu.Lock()
	if !nested {
		f.txCount++
	}
	snap := f.snapshot()
	f.mu.Unlock()

	err := fn(context.WithValue(ctx, fakeTxKey{}, true))
	if err != nil {
		f.mu.Lock()
		f.restore(snap)
		f.mu.Unlock()
	}
	return err
}

// --- AccountRepositoryFacade ---

func (f *fakeStore) FindAccountByID(_ context.Context, accountID string) (*domain.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	acc, ok := f.accounts[accountID]
	if !ok {
		return nil, apperrors.NewNotFoundError("account " + accountID)
	}
	return &acc, nil
}

func (f *fakeStore) FindAccountByCode(_ context.Context, code string) (*domain.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, acc := range f.accounts {
		if acc.Code == code {
			found := acc
			return &found, nil
		}
	}
	return nil, apperrors.NewNotFoundError("account code " + code)
}

func (f *fakeStore) FindAccountsByIDs(_ context.Context, accountIDs []string) (map[string]domain.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]domain.Account, len(accountIDs))
	for _, id := range accountIDs {
		if acc, ok := f.accounts[id]; ok {
			out[id] = acc
		}
	}
	return out, nil
}

func (f *fakeStore) ListAccounts(_ context.Context, includeInactive bool) ([]domain.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Account, 0, len(f.accounts))
	for _, acc := range f.accounts {
		if acc.IsActive || includeInactive {
			out = append(out, acc)
		}
	}
	domain.SortAccountsByCode(out)
	return out, nil
}

func (f *fakeStore) SaveAccount(_ context.Context, account domain.Account) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, acc := range f.accounts {
		if acc.Code == account.Code {
			return apperrors.ErrDuplicate
		}
	}
	f.accounts[account.AccountID] = account
	return nil
}

func (f *fakeStore) UpdateAccount(_ context.Context, account domain.Account) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.accounts[account.AccountID]; !ok {
		return apperrors.ErrNotFound
	}
	f.accounts[account.AccountID] = account
	return nil
}

func (f *fakeStore) DeleteAccount(_ context.Context, accountID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.accounts[accountID]; !ok {
		return apperrors.ErrNotFound
	}
	delete(f.accounts, accountID)
	return nil
}

func (f *fakeStore) LockAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	return f.FindAccountByID(ctx, accountID)
}

func (f *fakeStore) CountLineReferences(_ context.Context, accountID string) (int64, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var total, posted int64
	for _, e := range f.entries {
		for _, l := range e.Lines {
			if l.AccountID != accountID {
				continue
			}
			total++
			if e.Status != domain.Draft {
				posted++
			}
		}
	}
	return total, posted, nil
}

func (f *fakeStore) ReassignLines(_ context.Context, fromAccountID, toAccountID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var moved int64
	for id, e := range f.entries {
		for i := range e.Lines {
			if e.Lines[i].AccountID == fromAccountID {
				e.Lines[i].AccountID = toAccountID
				moved++
			}
		}
		f.entries[id] = e
	}
	return moved, nil
}

func (f *fakeStore) ReparentChildren(_ context.Context, fromParentID, toParentID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, acc := range f.accounts {
		if acc.ParentAccountID == fromParentID {
			acc.ParentAccountID = toParentID
			f.accounts[id] = acc
		}
	}
	return nil
}

// --- JournalRepositoryFacade ---

func (f *fakeStore) FindEntryByID(_ context.Context, entryID string) (*domain.JournalEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.entries[entryID]
	if !ok {
		return nil, apperrors.NewNotFoundError("journal entry " + entryID)
	}
	e = cloneEntry(e)
	return &e, nil
}

func (f *fakeStore) FindEntryByReference(_ context.Context, reference string) (*domain.JournalEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.entries {
		if e.Reference == reference {
			e = cloneEntry(e)
			return &e, nil
		}
	}
	return nil, apperrors.NewNotFoundError("journal entry " + reference)
}

func (f *fakeStore) ListEntries(_ context.Context, filter domain.JournalEntryFilter, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var all []domain.JournalEntry
	for _, e := range f.entries {
		if filter.Status != "" && e.Status != filter.Status {
			continue
		}
		if filter.FromDate != nil && e.EntryDate.Before(*filter.FromDate) {
			continue
		}
		if filter.ToDate != nil && e.EntryDate.After(*filter.ToDate) {
			continue
		}
		e.Lines = nil
		all = append(all, e)
	}
	sort.Slice(all, func(i, j int) bool { return entryAfter(all[i], all[j]) })

	if nextToken != nil {
		cursor, err := pagination.DecodeEntryCursor(*nextToken)
		if err != nil {
			return nil, nil, err
		}
		marker := domain.JournalEntry{EntryDate: cursor.EntryDate, EntryID: cursor.EntryID}
		marker.CreatedAt = cursor.CreatedAt
		var rest []domain.JournalEntry
		for _, e := range all {
			if entryAfter(marker, e) {
				rest = append(rest, e)
			}
		}
		all = rest
	}

	if len(all) <= limit {
		return all, nil, nil
	}
	page := all[:limit]
	last := page[len(page)-1]
	token := pagination.EncodeEntryCursor(pagination.EntryCursor{EntryDate: last.EntryDate, CreatedAt: last.CreatedAt, EntryID: last.EntryID})
	return page, &token, nil
}

// entryAfter orders entries newest first.
func entryAfter(a, b domain.JournalEntry) bool {
	if !a.EntryDate.Equal(b.EntryDate) {
		return a.EntryDate.After(b.EntryDate)
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.EntryID > b.EntryID
}

func (f *fakeStore) NextReferenceNumber(_ context.Context, year int) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.refSeq[year]++
	return f.refSeq[year], nil
}

func (f *fakeStore) takeCollision() bool {
	if f.collisions > 0 {
		f.collisions--
		return true
	}
	return false
}

func (f *fakeStore) referenceTaken(reference, exceptID string) bool {
	for id, e := range f.entries {
		if id != exceptID && reference != "" && e.Reference == reference {
			return true
		}
	}
	return false
}

func (f *fakeStore) InsertEntry(_ context.Context, entry domain.JournalEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.takeCollision() || f.referenceTaken(entry.Reference, entry.EntryID) {
		return apperrors.ErrReferenceCollision
	}
	if _, exists := f.entries[entry.EntryID]; exists {
		return apperrors.ErrDuplicate
	}
	f.entries[entry.EntryID] = cloneEntry(entry)
	return nil
}

func (f *fakeStore) LockEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	return f.FindEntryByID(ctx, entryID)
}

func (f *fakeStore) MarkPosted(_ context.Context, entryID string, reference string, postedAt time.Time, postedBy string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.entries[entryID]
	if !ok {
		return apperrors.ErrNotFound
	}
	if f.takeCollision() || f.referenceTaken(reference, entryID) {
		return apperrors.ErrReferenceCollision
	}
	e.Status = domain.Posted
	e.Reference = reference
	e.PostedAt = &postedAt
	e.PostedBy = postedBy
	e.LastUpdatedAt = postedAt
	e.LastUpdatedBy = postedBy
	f.entries[entryID] = e
	return nil
}

func (f *fakeStore) MarkVoided(_ context.Context, entryID string, voidedAt time.Time, voidedBy string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.entries[entryID]
	if !ok {
		return apperrors.ErrNotFound
	}
	e.Status = domain.Void
	e.VoidedAt = &voidedAt
	e.VoidedBy = voidedBy
	f.entries[entryID] = e
	return nil
}

func (f *fakeStore) UpdateEntryHeader(_ context.Context, entry domain.JournalEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.entries[entry.EntryID]
	if !ok {
		return apperrors.ErrNotFound
	}
	e.EntryDate = entry.EntryDate
	e.EntryType = entry.EntryType
	e.Description = entry.Description
	e.CurrencyCode = entry.CurrencyCode
	e.LastUpdatedAt = entry.LastUpdatedAt
	e.LastUpdatedBy = entry.LastUpdatedBy
	f.entries[entry.EntryID] = e
	return nil
}

func (f *fakeStore) ReplaceLines(_ context.Context, entryID string, lines []domain.JournalLine) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.entries[entryID]
	if !ok {
		return apperrors.ErrNotFound
	}
	e.Lines = append([]domain.JournalLine(nil), lines...)
	f.entries[entryID] = e
	return nil
}

// --- ExchangeRateRepositoryFacade ---

func (f *fakeStore) FindRateOnOrBefore(_ context.Context, from, to string, asOf time.Time) (*domain.ExchangeRate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var best *domain.ExchangeRate
	for i := range f.rates {
		r := f.rates[i]
		if r.FromCurrencyCode != from || r.ToCurrencyCode != to || r.DateEffective.After(asOf) {
			continue
		}
		if best == nil || r.DateEffective.After(best.DateEffective) {
			best = &r
		}
	}
	if best == nil {
		return nil, apperrors.NewNotFoundError("exchange rate " + from + "/" + to)
	}
	return best, nil
}

func (f *fakeStore) ListExchangeRates(_ context.Context, from, to string) ([]domain.ExchangeRate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.ExchangeRate
	for _, r := range f.rates {
		if (from == "" || r.FromCurrencyCode == from) && (to == "" || r.ToCurrencyCode == to) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeStore) SaveExchangeRate(_ context.Context, rate domain.ExchangeRate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.rates {
		if r.FromCurrencyCode == rate.FromCurrencyCode && r.ToCurrencyCode == rate.ToCurrencyCode && r.DateEffective.Equal(rate.DateEffective) {
			return apperrors.ErrDuplicate
		}
	}
	f.rates = append(f.rates, rate)
	return nil
}

// --- ReportingRepository ---

func (f *fakeStore) SumPostedLinesByAccount(_ context.Context, from *time.Time, to time.Time) ([]domain.AccountTotals, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	sums := map[string]domain.AccountTotals{}
	for _, e := range f.entries {
		if e.Status != domain.Posted || e.EntryDate.After(to) || (from != nil && e.EntryDate.Before(*from)) {
			continue
		}
		for _, l := range e.Lines {
			t, ok := sums[l.AccountID]
			if !ok {
				t = domain.AccountTotals{AccountID: l.AccountID, Debit: decimal.Zero, Credit: decimal.Zero}
			}
			t.Debit = t.Debit.Add(l.Debit)
			t.Credit = t.Credit.Add(l.Credit)
			sums[l.AccountID] = t
		}
	}
	out := make([]domain.AccountTotals, 0, len(sums))
	for _, t := range sums {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AccountID < out[j].AccountID })
	return out, nil
}

func (f *fakeStore) SumPostedLinesForAccount(ctx context.Context, accountID string, asOf time.Time) (domain.AccountTotals, error) {
	all, _ := f.SumPostedLinesByAccount(ctx, nil, asOf)
	for _, t := range all {
		if t.AccountID == accountID {
			return t, nil
		}
	}
	return domain.AccountTotals{AccountID: accountID, Debit: decimal.Zero, Credit: decimal.Zero}, nil
}

// --- AuditLogRepositoryFacade ---

func (f *fakeStore) FindLatestRecord(_ context.Context) (*domain.AuditRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.audit) == 0 {
		return nil, apperrors.NewNotFoundError("audit record")
	}
	rec := f.audit[len(f.audit)-1]
	return &rec, nil
}

func (f *fakeStore) FindRecordBefore(_ context.Context, id int64) (*domain.AuditRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.audit) - 1; i >= 0; i-- {
		if f.audit[i].ID < id {
			rec := f.audit[i]
			return &rec, nil
		}
	}
	return nil, apperrors.NewNotFoundError("audit record")
}

func (f *fakeStore) ListRecordRange(_ context.Context, fromID, toID int64) ([]domain.AuditRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.AuditRecord
	for _, rec := range f.audit {
		if rec.ID >= fromID && (toID == 0 || rec.ID <= toID) {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (f *fakeStore) ListRecords(_ context.Context, filter domain.AuditRecordFilter, limit int, afterID int64) ([]domain.AuditRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.AuditRecord
	for _, rec := range f.audit {
		if rec.ID <= afterID {
			continue
		}
		if filter.SubjectType != "" && rec.SubjectType != filter.SubjectType {
			continue
		}
		if filter.SubjectID != "" && rec.SubjectID != filter.SubjectID {
			continue
		}
		out = append(out, rec)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeStore) LockChain(_ context.Context) error { return nil }

func (f *fakeStore) AppendRecord(_ context.Context, record domain.AuditRecord) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	record.ID = int64(len(f.audit) + 1)
	f.audit = append(f.audit, record)
	return record.ID, nil
}

// entriesWithStatus returns copies of the stored entries with the given status.
func (f *fakeStore) entriesWithStatus(status domain.JournalStatus) []domain.JournalEntry {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.JournalEntry
	for _, e := range f.entries {
		if e.Status == status {
			out = append(out, cloneEntry(e))
		}
	}
	return out
}

func (f *fakeStore) entryCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.entries)
}

func (f *fakeStore) auditActions() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.audit))
	for i, rec := range f.audit {
		out[i] = string(rec.Action)
	}
	return out
}
