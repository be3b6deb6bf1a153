// Package repositories defines the persistence contracts the posting core
// depends on. Implementations live under internal/repositories/database.
package repositories

import (
	"context"
	"time"

	"github.com/finposting/ledger-core/internal/core/domain"
)

// CompanyRepositoryFacade resolves tenant metadata, notably the base currency.
type CompanyRepositoryFacade interface {
	FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error)
}

// AccountRepositoryFacade is the account policy store: dimension requirement
// flags and unrealized gain/loss mappings hang off the account record.
type AccountRepositoryFacade interface {
	FindAccountByCode(ctx context.Context, companyID string, accountCode string) (*domain.Account, error)
	FindAccountsByCodes(ctx context.Context, companyID string, accountCodes []string) (map[string]domain.Account, error)
}

// DimensionRepositoryFacade resolves cost-center/project records.
type DimensionRepositoryFacade interface {
	FindDimensionByID(ctx context.Context, companyID string, dimensionID string) (*domain.Dimension, error)
}

// PeriodRepositoryFacade reads period lock state. Nil means no row exists for
// the (company, year, month) tuple.
type PeriodRepositoryFacade interface {
	FindPeriod(ctx context.Context, companyID string, year int, month int) (*domain.Period, error)
}

// FxRateRepositoryFacade is the FX quote source: latest rate effective on or
// before asOf, same-currency pairs resolving to 1, inverse quotes usable when
// no direct quote exists.
type FxRateRepositoryFacade interface {
	FindRate(ctx context.Context, companyID string, fromCurrency, toCurrency string, asOf time.Time) (*domain.FxRate, error)
}

// RevalRepositoryFacade persists revaluation runs and their per-tuple locks.
type RevalRepositoryFacade interface {
	// FindMonetaryBalances returns carrying values per (monetary account,
	// currency) from journal lines dated strictly before cutoff, optionally
	// restricted to accountCodes. Passing the first instant of a month
	// therefore captures every posting of the prior month, whatever its
	// time-of-day component.
	FindMonetaryBalances(ctx context.Context, companyID string, cutoff time.Time, accountCodes []string) ([]domain.MonetaryBalance, error)

	SaveRun(ctx context.Context, run domain.FxRevalRun) error
	SaveLines(ctx context.Context, lines []domain.FxRevalLine) error

	// AcquireLock inserts the lock if absent. acquired=false means a lock for
	// the tuple already existed, so the balance was adjusted by an earlier
	// commit and must be skipped.
	AcquireLock(ctx context.Context, lock domain.FxRevalLock) (acquired bool, err error)
}
