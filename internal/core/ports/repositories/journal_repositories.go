package repositories

import (
	"context"
	"time"

	"github.com/finposting/ledger-core/internal/core/domain"
)

// JournalRepositoryFacade is the idempotent journal store. Persistence of a
// journal, its lines and the describing outbox entry happens in one database
// transaction; the (company_id, idempotency_key) uniqueness constraint is the
// authoritative idempotency signal.
type JournalRepositoryFacade interface {
	// FindJournalIDByKey returns the id of the journal persisted under the
	// key, or nil when none exists.
	FindJournalIDByKey(ctx context.Context, companyID string, key string) (*string, error)

	// SaveJournalWithOutbox inserts the journal header, all lines and one
	// outbox entry atomically. When a journal already exists under the
	// journal's idempotency key (pre-check or unique-violation on insert),
	// it returns the existing id with created=false and writes nothing.
	SaveJournalWithOutbox(ctx context.Context, journal domain.Journal, lines []domain.JournalLine, entry domain.OutboxEntry) (journalID string, created bool, err error)

	FindJournalByID(ctx context.Context, journalID string) (*domain.Journal, error)
	FindLinesByJournalID(ctx context.Context, journalID string) ([]domain.JournalLine, error)

	// AttachLinkedJournal records the journal a payment settles; the only
	// mutation a journal header permits.
	AttachLinkedJournal(ctx context.Context, journalID string, linkedJournalID string, updatedBy string, updatedAt time.Time) error
}
