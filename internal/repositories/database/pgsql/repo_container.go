package pgsql

import (
	portsrepo "github.com/finposting/ledger-core/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires all pgx repositories over one shared pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		CompanyRepo:   NewCompanyRepository(dbPool),
		AccountRepo:   NewAccountRepository(dbPool),
		DimensionRepo: NewDimensionRepository(dbPool),
		PeriodRepo:    NewPeriodRepository(dbPool),
		FxRateRepo:    NewFxRateRepository(dbPool),
		JournalRepo:   NewJournalRepository(dbPool),
		RevalRepo:     NewRevalRepository(dbPool),
	}
}
