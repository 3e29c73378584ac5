package services

import (
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// The audit chain comes first since account and journal mutations append to it
	container.Audit = NewAuditService(repos.TxManager, repos.AuditLogRepo)

	container.Account = NewAccountService(
		repos.TxManager,
		repos.AccountRepo,
		WithAccountAuditor(container.Audit),
	)

	container.ExchangeRate = NewExchangeRateService(repos.ExchangeRateRepo)

	validator := NewJournalValidator(cfg.BalanceTolerance, cfg.PeriodLockDate)
	container.Journal = NewJournalService(
		repos.TxManager,
		repos.JournalRepo,
		repos.AccountRepo,
		container.ExchangeRate,
		WithBaseCurrency(cfg.BaseCurrency),
		WithValidator(validator),
		WithReferencePrefix(cfg.ReferencePrefix),
		WithReferenceMaxAttempts(cfg.ReferenceMaxAttempts),
		WithJournalAuditor(container.Audit),
	)

	container.OpeningBalance = NewOpeningBalanceService(repos.TxManager, container.Account, container.Journal, cfg.OpeningBalanceEquityCode)

	container.Reporting = NewReportingService(
		repos.ReportingRepo,
		repos.AccountRepo,
		WithReportingTolerance(validator.Tolerance()),
	)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.AccountSvcFacade      = (*accountService)(nil)
	_ portssvc.ExchangeRateSvcFacade = (*exchangeRateService)(nil)
	_ portssvc.JournalSvcFacade      = (*journalService)(nil)
	_ portssvc.OpeningBalanceSvc     = (*openingBalanceService)(nil)
	_ portssvc.ReportingService      = (*reportingService)(nil)
	_ portssvc.AuditSvcFacade        = (*auditService)(nil)
)
