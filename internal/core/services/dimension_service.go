package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/finposting/ledger-core/internal/apperrors"
	"github.com/finposting/ledger-core/internal/core/domain"
	portsrepo "github.com/finposting/ledger-core/internal/core/ports/repositories"
	portssvc "github.com/finposting/ledger-core/internal/core/ports/services"
	"github.com/finposting/ledger-core/internal/middleware"
)

// dimensionService validates dimension references against the dimension store
// and per-account requirement policy. Read-only.
type dimensionService struct {
	dimensionRepo portsrepo.DimensionRepositoryFacade
	accountRepo   portsrepo.AccountRepositoryFacade
}

// NewDimensionService creates the dimension validator.
func NewDimensionService(dimensionRepo portsrepo.DimensionRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade) portssvc.DimensionSvcFacade {
	return &dimensionService{dimensionRepo: dimensionRepo, accountRepo: accountRepo}
}

var _ portssvc.DimensionSvcFacade = (*dimensionService)(nil)

// EnsureDimensionValid is a no-op for a nil id; dimensions are optional by
// default. A non-nil id must resolve to an active record of the given kind.
func (s *dimensionService) EnsureDimensionValid(ctx context.Context, companyID string, dimensionID *string, kind domain.DimensionKind) error {
	if dimensionID == nil {
		return nil
	}

	dim, err := s.dimensionRepo.FindDimensionByID(ctx, companyID, *dimensionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: %s %s", apperrors.ErrDimensionNotFound, kind, *dimensionID)
		}
		return fmt.Errorf("failed to resolve dimension %s: %w", *dimensionID, err)
	}
	if dim.Kind != kind || !dim.IsActive {
		middleware.GetLoggerFromCtx(ctx).Warn("Dimension reference rejected",
			slog.String("dimension_id", *dimensionID),
			slog.String("expected_kind", string(kind)),
			slog.String("actual_kind", string(dim.Kind)),
			slog.Bool("active", dim.IsActive),
		)
		return fmt.Errorf("%w: %s %s", apperrors.ErrDimensionNotFound, kind, *dimensionID)
	}
	return nil
}

// EnsureAccountPolicy loads the account's requirement flags and fails when a
// required dimension is absent. Called once per journal line after line-level
// and document-level defaults have been merged.
func (s *dimensionService) EnsureAccountPolicy(ctx context.Context, companyID string, accountCode string, dims domain.DimensionRefs) error {
	account, err := s.accountRepo.FindAccountByCode(ctx, companyID, accountCode)
	if err != nil {
		return fmt.Errorf("failed to load account %s policy: %w", accountCode, err)
	}

	if account.RequireCostCenter && dims.CostCenterID == nil {
		return fmt.Errorf("%w: account %s requires a cost center", apperrors.ErrDimensionRequired, accountCode)
	}
	if account.RequireProject && dims.ProjectID == nil {
		return fmt.Errorf("%w: account %s requires a project", apperrors.ErrDimensionRequired, accountCode)
	}
	return nil
}
