package pgsql

import (
	"context"
	"errors"

	"github.com/finposting/ledger-core/internal/apperrors"
	"github.com/finposting/ledger-core/internal/core/domain"
	portsrepo "github.com/finposting/ledger-core/internal/core/ports/repositories"
	"github.com/finposting/ledger-core/internal/models"
	"github.com/finposting/ledger-core/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxDimensionRepository resolves cost-center/project records.
type PgxDimensionRepository struct {
	BaseRepository
}

// NewDimensionRepository creates the dimension repository.
func NewDimensionRepository(pool *pgxpool.Pool) portsrepo.DimensionRepositoryFacade {
	return &PgxDimensionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.DimensionRepositoryFacade = (*PgxDimensionRepository)(nil)

// FindDimensionByID retrieves one dimension of a company.
func (r *PgxDimensionRepository) FindDimensionByID(ctx context.Context, companyID string, dimensionID string) (*domain.Dimension, error) {
	var m models.Dimension
	err := r.Pool.QueryRow(ctx, `
		SELECT dimension_id, company_id, kind, name, is_active,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM dimension
		WHERE company_id = $1 AND dimension_id = $2;
	`, companyID, dimensionID).Scan(
		&m.DimensionID, &m.CompanyID, &m.Kind, &m.Name, &m.IsActive,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("dimension " + dimensionID + " not found")
		}
		return nil, apperrors.NewAppError(500, "failed to find dimension "+dimensionID, err)
	}
	d := mapping.ToDomainDimension(m)
	return &d, nil
}
