package handlers_test

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountService) ListAccounts(ctx context.Context, includeInactive bool) ([]domain.Account, error) {
	args := m.Called(ctx, includeInactive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, actor string) (*domain.Account, error) {
	args := m.Called(ctx, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, actor string) (*domain.Account, error) {
	args := m.Called(ctx, accountID, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) DeactivateAccount(ctx context.Context, accountID string, actor string) (*domain.Account, error) {
	args := m.Called(ctx, accountID, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) ActivateAccount(ctx context.Context, accountID string, actor string) (*domain.Account, error) {
	args := m.Called(ctx, accountID, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) DeleteAccount(ctx context.Context, accountID string, req dto.DeleteAccountRequest, actor string) (*dto.DeleteAccountResponse, error) {
	args := m.Called(ctx, accountID, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.DeleteAccountResponse), args.Error(1)
}

func (m *MockAccountService) EnsureSystemAccount(ctx context.Context, code string, name string, accountType domain.AccountType, actor string) (*domain.Account, error) {
	args := m.Called(ctx, code, name, accountType, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

// --- Mock ExchangeRateService ---
type MockExchangeRateService struct {
	mock.Mock
}

func (m *MockExchangeRateService) GetExchangeRate(ctx context.Context, from, to string, asOf time.Time) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, from, to, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateService) Convert(ctx context.Context, amount decimal.Decimal, from, to string, asOf time.Time) (*domain.Conversion, error) {
	args := m.Called(ctx, amount, from, to, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Conversion), args.Error(1)
}

func (m *MockExchangeRateService) ListExchangeRates(ctx context.Context, from, to string) ([]domain.ExchangeRate, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateService) CreateExchangeRate(ctx context.Context, req dto.CreateExchangeRateRequest, actor string) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

var _ portssvc.ExchangeRateSvcFacade = (*MockExchangeRateService)(nil)

// --- Mock JournalService ---
type MockJournalService struct {
	mock.Mock
}

func (m *MockJournalService) entry(args mock.Arguments) (*domain.JournalEntry, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalService) GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	return m.entry(m.Called(ctx, entryID))
}

func (m *MockJournalService) GetEntryByReference(ctx context.Context, reference string) (*domain.JournalEntry, error) {
	return m.entry(m.Called(ctx, reference))
}

func (m *MockJournalService) ListEntries(ctx context.Context, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListJournalEntriesResponse), args.Error(1)
}

func (m *MockJournalService) ValidateEntry(ctx context.Context, req dto.PostJournalEntryRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *MockJournalService) PostEntry(ctx context.Context, req dto.PostJournalEntryRequest, actor string) (*domain.JournalEntry, error) {
	return m.entry(m.Called(ctx, req, actor))
}

func (m *MockJournalService) CreateDraft(ctx context.Context, req dto.PostJournalEntryRequest, actor string) (*domain.JournalEntry, error) {
	return m.entry(m.Called(ctx, req, actor))
}

func (m *MockJournalService) PostDraft(ctx context.Context, entryID string, actor string) (*domain.JournalEntry, error) {
	return m.entry(m.Called(ctx, entryID, actor))
}

func (m *MockJournalService) VoidEntry(ctx context.Context, entryID string, actor string) (*domain.JournalEntry, error) {
	return m.entry(m.Called(ctx, entryID, actor))
}

func (m *MockJournalService) EditEntry(ctx context.Context, entryID string, req dto.EditJournalEntryRequest, actor string) (*domain.JournalEntry, error) {
	return m.entry(m.Called(ctx, entryID, req, actor))
}

var _ portssvc.JournalSvcFacade = (*MockJournalService)(nil)

// --- Mock OpeningBalanceService ---
type MockOpeningBalanceService struct {
	mock.Mock
}

func (m *MockOpeningBalanceService) PostOpeningBalances(ctx context.Context, req dto.PostOpeningBalancesRequest, actor string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

var _ portssvc.OpeningBalanceSvc = (*MockOpeningBalanceService)(nil)

// --- Mock ReportingService ---
type MockReportingService struct {
	mock.Mock
}

func (m *MockReportingService) AccountBalance(ctx context.Context, accountID string, asOf time.Time) (*domain.AccountBalance, error) {
	args := m.Called(ctx, accountID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountBalance), args.Error(1)
}

func (m *MockReportingService) TrialBalance(ctx context.Context, start, end time.Time) (*domain.TrialBalanceReport, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrialBalanceReport), args.Error(1)
}

func (m *MockReportingService) BalanceSheet(ctx context.Context, asOf time.Time, compareTo *time.Time) (*domain.BalanceSheetReport, error) {
	args := m.Called(ctx, asOf, compareTo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BalanceSheetReport), args.Error(1)
}

var _ portssvc.ReportingService = (*MockReportingService)(nil)

// --- Mock AuditService ---
type MockAuditService struct {
	mock.Mock
}

func (m *MockAuditService) Append(ctx context.Context, record domain.AuditRecord) (*domain.AuditRecord, error) {
	args := m.Called(ctx, record)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuditRecord), args.Error(1)
}

func (m *MockAuditService) Verify(ctx context.Context, fromID, toID int64) (*domain.ChainVerification, error) {
	args := m.Called(ctx, fromID, toID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChainVerification), args.Error(1)
}

func (m *MockAuditService) ListRecords(ctx context.Context, params dto.ListAuditRecordsParams) (*dto.ListAuditRecordsResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListAuditRecordsResponse), args.Error(1)
}

var _ portssvc.AuditSvcFacade = (*MockAuditService)(nil)
