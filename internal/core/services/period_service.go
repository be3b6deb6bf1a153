package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/finposting/ledger-core/internal/apperrors"
	"github.com/finposting/ledger-core/internal/core/domain"
	portsrepo "github.com/finposting/ledger-core/internal/core/ports/repositories"
	portssvc "github.com/finposting/ledger-core/internal/core/ports/services"
	"github.com/finposting/ledger-core/internal/middleware"
)

// periodService inspects period lock state. It never transitions periods;
// period management is a separate concern.
type periodService struct {
	periodRepo portsrepo.PeriodRepositoryFacade
}

// NewPeriodService creates the period guard.
func NewPeriodService(periodRepo portsrepo.PeriodRepositoryFacade) portssvc.PeriodSvcFacade {
	return &periodService{periodRepo: periodRepo}
}

var _ portssvc.PeriodSvcFacade = (*periodService)(nil)

// AssertOpenPeriod checks the period the date falls in. A missing period row
// allows the posting; a row in any state other than open rejects it with a
// PeriodLockedError carrying the target state. This runs before the posting
// transaction is opened.
func (s *periodService) AssertOpenPeriod(ctx context.Context, companyID string, date time.Time) error {
	year, month := date.Year(), int(date.Month())

	period, err := s.periodRepo.FindPeriod(ctx, companyID, year, month)
	if err != nil {
		return fmt.Errorf("failed to read period %04d-%02d for company %s: %w", year, month, companyID, err)
	}
	if period == nil {
		// Unmanaged month, posting allowed.
		return nil
	}

	if period.State != domain.PeriodOpen {
		middleware.GetLoggerFromCtx(ctx).Warn("Posting date falls in a locked period",
			slog.String("company_id", companyID),
			slog.Int("year", year),
			slog.Int("month", month),
			slog.String("state", string(period.State)),
		)
		return &apperrors.PeriodLockedError{
			CompanyID: companyID,
			Year:      year,
			Month:     month,
			State:     period.State,
		}
	}
	return nil
}
