package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/finposting/ledger-core/internal/apperrors"
	"github.com/finposting/ledger-core/internal/core/domain"
	portsrepo "github.com/finposting/ledger-core/internal/core/ports/repositories"
	"github.com/finposting/ledger-core/internal/models"
	"github.com/finposting/ledger-core/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxJournalRepository is the idempotent journal store. The unique index on
// (company_id, idempotency_key) is the authoritative idempotency signal; the
// pre-check inside the transaction only short-circuits the common replay.
type PgxJournalRepository struct {
	BaseRepository
}

// NewJournalRepository creates the repository for journal and line data.
func NewJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryFacade {
	return &PgxJournalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

// FindJournalIDByKey returns the id persisted under (company, key), or nil.
func (r *PgxJournalRepository) FindJournalIDByKey(ctx context.Context, companyID string, key string) (*string, error) {
	var journalID string
	err := r.Pool.QueryRow(ctx,
		`SELECT journal_id FROM journal WHERE company_id = $1 AND idempotency_key = $2;`,
		companyID, key,
	).Scan(&journalID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, apperrors.NewAppError(500, "failed to look up idempotency key "+key, err)
	}
	return &journalID, nil
}

// SaveJournalWithOutbox persists the header, all lines and the outbox entry
// in one transaction. Replays (pre-check hit or unique violation raced by a
// concurrent identical posting) return the existing id with created=false.
func (r *PgxJournalRepository) SaveJournalWithOutbox(ctx context.Context, journal domain.Journal, lines []domain.JournalLine, entry domain.OutboxEntry) (string, bool, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return "", false, err
	}
	defer r.Rollback(ctx, tx)

	// Replay short-circuit: no new rows, no new outbox entry.
	var existingID string
	err = tx.QueryRow(ctx,
		`SELECT journal_id FROM journal WHERE company_id = $1 AND idempotency_key = $2;`,
		journal.CompanyID, journal.IdempotencyKey,
	).Scan(&existingID)
	if err == nil {
		return existingID, false, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return "", false, apperrors.NewAppError(500, "failed to check idempotency key "+journal.IdempotencyKey, err)
	}

	m := mapping.ToModelJournal(journal)
	_, err = tx.Exec(ctx, `
		INSERT INTO journal (
			journal_id, company_id, posting_date, currency_code, base_currency_code,
			fx_rate, source_doc_type, source_doc_id, idempotency_key,
			is_reversal, reverses_journal_id, linked_journal_id,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`,
		m.JournalID, m.CompanyID, m.PostingDate, m.CurrencyCode, m.BaseCurrencyCode,
		m.FxRate, m.SourceDocType, m.SourceDocID, m.IdempotencyKey,
		m.IsReversal, m.ReversesJournalID, m.LinkedJournalID,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			// A concurrent identical posting won the race; roll back our
			// writes and resolve to its journal.
			_ = r.Rollback(ctx, tx)
			winnerID, lookupErr := r.FindJournalIDByKey(ctx, journal.CompanyID, journal.IdempotencyKey)
			if lookupErr != nil {
				return "", false, lookupErr
			}
			if winnerID == nil {
				return "", false, apperrors.NewAppError(500, "idempotency conflict but no journal found for key "+journal.IdempotencyKey, err)
			}
			return *winnerID, false, nil
		}
		return "", false, apperrors.NewAppError(500, "failed to insert journal "+m.JournalID, err)
	}

	// Lines go in after the header, batched.
	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO journal_line (
			line_id, journal_id, account_code, side, amount, currency_code,
			base_amount, base_currency_code, party_id, cost_center_id, project_id,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	for _, line := range lines {
		ml := mapping.ToModelJournalLine(line)
		batch.Queue(lineQuery,
			ml.LineID, ml.JournalID, ml.AccountCode, ml.Side, ml.Amount, ml.CurrencyCode,
			ml.BaseAmount, ml.BaseCurrencyCode, ml.PartyID, ml.CostCenterID, ml.ProjectID,
			ml.CreatedAt, ml.CreatedBy, ml.LastUpdatedAt, ml.LastUpdatedBy,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return "", false, apperrors.NewAppError(500, "failed to insert lines for journal "+m.JournalID, err)
	}

	// The outbox entry commits or rolls back with the journal, so an event is
	// visible to the dispatcher iff its journal is visible to readers.
	_, err = tx.Exec(ctx, `
		INSERT INTO outbox (entry_id, company_id, topic, payload, created_at)
		VALUES ($1, $2, $3, $4, $5);
	`, entry.EntryID, entry.CompanyID, entry.Topic, entry.Payload, entry.CreatedAt)
	if err != nil {
		return "", false, apperrors.NewAppError(500, "failed to append outbox entry for journal "+m.JournalID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return "", false, err
	}
	return m.JournalID, true, nil
}

// FindJournalByID retrieves a journal header by its id.
func (r *PgxJournalRepository) FindJournalByID(ctx context.Context, journalID string) (*domain.Journal, error) {
	var m models.Journal
	err := r.Pool.QueryRow(ctx, `
		SELECT journal_id, company_id, posting_date, currency_code, base_currency_code,
		       fx_rate, source_doc_type, source_doc_id, idempotency_key,
		       is_reversal, reverses_journal_id, linked_journal_id,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM journal
		WHERE journal_id = $1;
	`, journalID).Scan(
		&m.JournalID, &m.CompanyID, &m.PostingDate, &m.CurrencyCode, &m.BaseCurrencyCode,
		&m.FxRate, &m.SourceDocType, &m.SourceDocID, &m.IdempotencyKey,
		&m.IsReversal, &m.ReversesJournalID, &m.LinkedJournalID,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find journal "+journalID, err)
	}

	j := mapping.ToDomainJournal(m)
	return &j, nil
}

// FindLinesByJournalID retrieves all lines of a journal in insert order.
func (r *PgxJournalRepository) FindLinesByJournalID(ctx context.Context, journalID string) ([]domain.JournalLine, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT line_id, journal_id, account_code, side, amount, currency_code,
		       base_amount, base_currency_code, party_id, cost_center_id, project_id,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM journal_line
		WHERE journal_id = $1
		ORDER BY line_id;
	`, journalID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query lines for journal "+journalID, err)
	}
	defer rows.Close()

	var ms []models.JournalLine
	for rows.Next() {
		var m models.JournalLine
		if err := rows.Scan(
			&m.LineID, &m.JournalID, &m.AccountCode, &m.Side, &m.Amount, &m.CurrencyCode,
			&m.BaseAmount, &m.BaseCurrencyCode, &m.PartyID, &m.CostCenterID, &m.ProjectID,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan line for journal "+journalID, err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating lines for journal "+journalID, err)
	}
	return mapping.ToDomainJournalLineSlice(ms), nil
}

// AttachLinkedJournal records the journal a payment settles.
func (r *PgxJournalRepository) AttachLinkedJournal(ctx context.Context, journalID string, linkedJournalID string, updatedBy string, updatedAt time.Time) error {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE journal
		SET linked_journal_id = $1, last_updated_by = $2, last_updated_at = $3
		WHERE journal_id = $4;
	`, linkedJournalID, updatedBy, updatedAt, journalID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to link journal "+journalID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("journal %s: %w", journalID, apperrors.ErrNotFound)
	}
	return nil
}
