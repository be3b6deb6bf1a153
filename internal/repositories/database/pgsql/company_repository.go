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

// PgxCompanyRepository resolves tenant metadata.
type PgxCompanyRepository struct {
	BaseRepository
}

// NewCompanyRepository creates the company repository.
func NewCompanyRepository(pool *pgxpool.Pool) portsrepo.CompanyRepositoryFacade {
	return &PgxCompanyRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CompanyRepositoryFacade = (*PgxCompanyRepository)(nil)

// FindCompanyByID retrieves one company.
func (r *PgxCompanyRepository) FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	var m models.Company
	err := r.Pool.QueryRow(ctx, `
		SELECT company_id, name, base_currency_code,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM company
		WHERE company_id = $1;
	`, companyID).Scan(
		&m.CompanyID, &m.Name, &m.BaseCurrencyCode,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("company " + companyID + " not found")
		}
		return nil, apperrors.NewAppError(500, "failed to find company "+companyID, err)
	}
	c := mapping.ToDomainCompany(m)
	return &c, nil
}
