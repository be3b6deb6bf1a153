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

const accountColumns = `
	account_code, company_id, name, account_type, is_monetary,
	require_cost_center, require_project,
	unrealized_gain_account, unrealized_loss_account, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

// PgxAccountRepository is the account policy store.
type PgxAccountRepository struct {
	BaseRepository
}

// NewAccountRepository creates the account repository.
func NewAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

func scanAccount(row pgx.Row) (models.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountCode, &m.CompanyID, &m.Name, &m.AccountType, &m.IsMonetary,
		&m.RequireCostCenter, &m.RequireProject,
		&m.UnrealizedGainAccount, &m.UnrealizedLossAccount, &m.IsActive,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

// FindAccountByCode retrieves one account of a company.
func (r *PgxAccountRepository) FindAccountByCode(ctx context.Context, companyID string, accountCode string) (*domain.Account, error) {
	row := r.Pool.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM account WHERE company_id = $1 AND account_code = $2;`,
		companyID, accountCode,
	)
	m, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("account " + accountCode + " not found")
		}
		return nil, apperrors.NewAppError(500, "failed to find account "+accountCode, err)
	}
	a := mapping.ToDomainAccount(m)
	return &a, nil
}

// FindAccountsByCodes retrieves several accounts keyed by code; absent codes
// are simply missing from the map.
func (r *PgxAccountRepository) FindAccountsByCodes(ctx context.Context, companyID string, accountCodes []string) (map[string]domain.Account, error) {
	rows, err := r.Pool.Query(ctx,
		`SELECT `+accountColumns+` FROM account WHERE company_id = $1 AND account_code = ANY($2);`,
		companyID, accountCodes,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query accounts", err)
	}
	defer rows.Close()

	accounts := make(map[string]domain.Account, len(accountCodes))
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account", err)
		}
		accounts[m.AccountCode] = mapping.ToDomainAccount(m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating accounts", err)
	}
	return accounts, nil
}
