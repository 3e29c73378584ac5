package pgsql

import (
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every repository over one pool. They share the
// transaction manager so a unit of work can span several of them.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	base := BaseRepository{Pool: dbPool}

	return portsrepo.RepositoryProvider{
		TxManager:        &base,
		AccountRepo:      newPgxAccountRepository(base),
		ExchangeRateRepo: newPgxExchangeRateRepository(base),
		JournalRepo:      newPgxJournalRepository(base),
		ReportingRepo:    newReportingRepository(base),
		AuditLogRepo:     newPgxAuditLogRepository(base),
	}
}
