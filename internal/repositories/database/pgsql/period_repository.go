package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/finposting/ledger-core/internal/apperrors"
	"github.com/finposting/ledger-core/internal/core/domain"
	portsrepo "github.com/finposting/ledger-core/internal/core/ports/repositories"
	"github.com/finposting/ledger-core/internal/models"
	"github.com/finposting/ledger-core/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxPeriodRepository reads period lock state.
type PgxPeriodRepository struct {
	BaseRepository
}

// NewPeriodRepository creates the period repository.
func NewPeriodRepository(pool *pgxpool.Pool) portsrepo.PeriodRepositoryFacade {
	return &PgxPeriodRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PeriodRepositoryFacade = (*PgxPeriodRepository)(nil)

// FindPeriod returns the period row, or nil when the month is unmanaged.
func (r *PgxPeriodRepository) FindPeriod(ctx context.Context, companyID string, year int, month int) (*domain.Period, error) {
	var m models.Period
	err := r.Pool.QueryRow(ctx, `
		SELECT company_id, year, month, state, created_at, created_by, last_updated_at, last_updated_by
		FROM periods
		WHERE company_id = $1 AND year = $2 AND month = $3;
	`, companyID, year, month).Scan(
		&m.CompanyID, &m.Year, &m.Month, &m.State,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, apperrors.NewAppError(500, fmt.Sprintf("failed to read period %04d-%02d", year, month), err)
	}
	p := mapping.ToDomainPeriod(m)
	return &p, nil
}
