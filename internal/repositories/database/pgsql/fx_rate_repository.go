package pgsql

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/finposting/ledger-core/internal/apperrors"
	"github.com/finposting/ledger-core/internal/core/domain"
	portsrepo "github.com/finposting/ledger-core/internal/core/ports/repositories"
	"github.com/finposting/ledger-core/internal/models"
	"github.com/finposting/ledger-core/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// PgxFxRateRepository is the FX quote source. The latest rate effective on or
// before the requested date wins; when no direct quote exists an inverse
// quote is inverted and used.
type PgxFxRateRepository struct {
	BaseRepository
}

// NewFxRateRepository creates the FX rate repository.
func NewFxRateRepository(pool *pgxpool.Pool) portsrepo.FxRateRepositoryFacade {
	return &PgxFxRateRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.FxRateRepositoryFacade = (*PgxFxRateRepository)(nil)

// FindRate resolves the conversion rate for (from, to) effective at asOf.
// Matching currencies resolve to a rate of 1 without touching the database.
func (r *PgxFxRateRepository) FindRate(ctx context.Context, companyID string, fromCurrency, toCurrency string, asOf time.Time) (*domain.FxRate, error) {
	from := strings.ToUpper(fromCurrency)
	to := strings.ToUpper(toCurrency)

	if from == to {
		return &domain.FxRate{
			CompanyID:        companyID,
			FromCurrencyCode: from,
			ToCurrencyCode:   to,
			Rate:             decimal.NewFromInt(1),
			DateEffective:    asOf,
		}, nil
	}

	direct, err := r.findRate(ctx, companyID, from, to, asOf)
	if err == nil {
		return direct, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	inverse, err := r.findRate(ctx, companyID, to, from, asOf)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("no fx rate for " + from + " to " + to + " as of " + asOf.Format("2006-01-02"))
		}
		return nil, err
	}

	inverse.FromCurrencyCode = from
	inverse.ToCurrencyCode = to
	if !inverse.Rate.IsZero() {
		inverse.Rate = decimal.NewFromInt(1).Div(inverse.Rate)
	}
	return inverse, nil
}

func (r *PgxFxRateRepository) findRate(ctx context.Context, companyID, from, to string, asOf time.Time) (*domain.FxRate, error) {
	var m models.FxRate
	err := r.Pool.QueryRow(ctx, `
		SELECT fx_rate_id, company_id, from_currency_code, to_currency_code, rate, date_effective,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM fx_rate
		WHERE company_id = $1 AND from_currency_code = $2 AND to_currency_code = $3
		  AND date_effective <= $4
		ORDER BY date_effective DESC
		LIMIT 1;
	`, companyID, from, to, asOf).Scan(
		&m.FxRateID, &m.CompanyID, &m.FromCurrencyCode, &m.ToCurrencyCode, &m.Rate, &m.DateEffective,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find fx rate "+from+"->"+to, err)
	}
	rate := mapping.ToDomainFxRate(m)
	return &rate, nil
}
