package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/core/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/SscSPs/ledger_engine/internal/platform/config"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

const testActor = "user-1"

// testLedger wires the real services over a fakeStore.
type testLedger struct {
	store *fakeStore
	*portssvc.ServiceContainer
}

func testConfig() *config.Config {
	return &config.Config{
		BaseCurrency:             "USD",
		BalanceTolerance:         domain.DefaultBalanceTolerance,
		OpeningBalanceEquityCode: "3900",
		ReferencePrefix:          "JE",
		ReferenceMaxAttempts:     5,
	}
}

func newTestLedger(store *fakeStore, configure ...func(*config.Config)) *testLedger {
	cfg := testConfig()
	for _, c := range configure {
		c(cfg)
	}
	repos := portsrepo.RepositoryProvider{
		TxManager:        store,
		AccountRepo:      store,
		ExchangeRateRepo: store,
		JournalRepo:      store,
		ReportingRepo:    store,
		AuditLogRepo:     store,
	}
	return &testLedger{store: store, ServiceContainer: services.NewServiceContainer(cfg, repos)}
}

func withLockDate(date string) func(*config.Config) {
	return func(cfg *config.Config) {
		d := mustDate(date)
		cfg.PeriodLockDate = &d
	}
}

func (l *testLedger) account(t *testing.T, code, name string, accountType domain.AccountType, parentCode string) *domain.Account {
	t.Helper()
	acc, err := l.Account.CreateAccount(context.Background(), dto.CreateAccountRequest{
		Code:        code,
		Name:        name,
		AccountType: accountType,
		ParentCode:  parentCode,
	}, testActor)
	require.NoError(t, err)
	return acc
}

func (l *testLedger) post(t *testing.T, date string, lines ...dto.JournalLineRequest) *domain.JournalEntry {
	t.Helper()
	entry, err := l.Journal.PostEntry(context.Background(), entryRequest(date, lines...), testActor)
	require.NoError(t, err)
	return entry
}

func entryRequest(date string, lines ...dto.JournalLineRequest) dto.PostJournalEntryRequest {
	return dto.PostJournalEntryRequest{
		EntryDate:   dto.NewDate(mustDate(date)),
		Description: "test entry",
		Lines:       lines,
	}
}

func debit(accountID, amount string) dto.JournalLineRequest {
	return dto.JournalLineRequest{AccountID: accountID, Debit: dec(amount), Credit: decimal.Zero}
}

func credit(accountID, amount string) dto.JournalLineRequest {
	return dto.JournalLineRequest{AccountID: accountID, Debit: decimal.Zero, Credit: dec(amount)}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func mustDate(s string) time.Time {
	t, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

// requireDecimal compares decimals by value so 100 and 100.00 are equal.
func requireDecimal(t *testing.T, expected string, actual decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	require.Truef(t, dec(expected).Equal(actual), "expected %s, got %s %v", expected, actual.String(), msgAndArgs)
}
