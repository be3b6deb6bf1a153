package pgsql

import (
	"context"
	"time"

	"github.com/finposting/ledger-core/internal/apperrors"
	"github.com/finposting/ledger-core/internal/core/domain"
	portsrepo "github.com/finposting/ledger-core/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxRevalRepository persists revaluation runs, lines and per-tuple locks.
type PgxRevalRepository struct {
	BaseRepository
}

// NewRevalRepository creates the revaluation repository.
func NewRevalRepository(pool *pgxpool.Pool) portsrepo.RevalRepositoryFacade {
	return &PgxRevalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.RevalRepositoryFacade = (*PgxRevalRepository)(nil)

// FindMonetaryBalances aggregates journal lines of monetary accounts into
// carrying values per (account, currency), taking every posting dated
// strictly before cutoff. Debits add, credits subtract, on both the
// transaction and the base amount.
func (r *PgxRevalRepository) FindMonetaryBalances(ctx context.Context, companyID string, cutoff time.Time, accountCodes []string) ([]domain.MonetaryBalance, error) {
	var filter any
	if len(accountCodes) > 0 {
		filter = accountCodes
	}

	rows, err := r.Pool.Query(ctx, `
		SELECT l.account_code, l.currency_code,
		       COALESCE(SUM(CASE WHEN l.side = 'DEBIT' THEN l.amount ELSE -l.amount END), 0)           AS source_balance,
		       COALESCE(SUM(CASE WHEN l.side = 'DEBIT' THEN l.base_amount ELSE -l.base_amount END), 0) AS base_balance
		FROM journal_line l
		JOIN journal j ON j.journal_id = l.journal_id
		JOIN account a ON a.company_id = j.company_id AND a.account_code = l.account_code
		WHERE j.company_id = $1
		  AND j.posting_date < $2
		  AND a.is_monetary
		  AND ($3::text[] IS NULL OR l.account_code = ANY($3))
		GROUP BY l.account_code, l.currency_code
		ORDER BY l.account_code, l.currency_code;
	`, companyID, cutoff, filter)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query monetary balances", err)
	}
	defer rows.Close()

	var balances []domain.MonetaryBalance
	for rows.Next() {
		var b domain.MonetaryBalance
		if err := rows.Scan(&b.AccountCode, &b.CurrencyCode, &b.SourceBalance, &b.BaseBalance); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan monetary balance", err)
		}
		balances = append(balances, b)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating monetary balances", err)
	}
	return balances, nil
}

// SaveRun records one revaluation run.
func (r *PgxRevalRepository) SaveRun(ctx context.Context, run domain.FxRevalRun) error {
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO fx_reval_run (run_id, company_id, year, month, mode, run_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`, run.RunID, run.CompanyID, run.Year, run.Month, string(run.Mode), run.RunAt, run.CreatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert reval run "+run.RunID, err)
	}
	return nil
}

// SaveLines records the computed lines of a run, batched.
func (r *PgxRevalRepository) SaveLines(ctx context.Context, lines []domain.FxRevalLine) error {
	batch := &pgx.Batch{}
	for _, line := range lines {
		batch.Queue(`
			INSERT INTO fx_reval_line (
				line_id, run_id, account_code, currency_code,
				old_rate, new_rate, source_balance, base_balance, delta
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
		`,
			line.LineID, line.RunID, line.AccountCode, line.CurrencyCode,
			line.OldRate, line.NewRate, line.SourceBalance, line.BaseBalance, line.Delta,
		)
	}
	if err := r.Pool.SendBatch(ctx, batch).Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert reval lines", err)
	}
	return nil
}

// AcquireLock inserts the per-tuple lock if absent. A pre-existing lock is
// not an error; it reports acquired=false so the caller skips the tuple.
func (r *PgxRevalRepository) AcquireLock(ctx context.Context, lock domain.FxRevalLock) (bool, error) {
	tag, err := r.Pool.Exec(ctx, `
		INSERT INTO fx_reval_lock (company_id, year, month, account_code, currency_code, run_id, locked_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (company_id, year, month, account_code, currency_code) DO NOTHING;
	`, lock.CompanyID, lock.Year, lock.Month, lock.AccountCode, lock.CurrencyCode, lock.RunID, lock.LockedAt)
	if err != nil {
		return false, apperrors.NewAppError(500, "failed to insert reval lock", err)
	}
	return tag.RowsAffected() == 1, nil
}
