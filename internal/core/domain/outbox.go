package domain

import "time"

// Outbox topics emitted by the posting core.
const (
	TopicJournalPosted   = "ledger.journal.posted"
	TopicJournalReversed = "ledger.journal.reversed"
)

// OutboxEntry is a pending domain event, appended in the same transaction as
// the journal it describes and drained by an external dispatcher.
type OutboxEntry struct {
	EntryID   string    `json:"entryID"`
	CompanyID string    `json:"companyID"`
	Topic     string    `json:"topic"`
	Payload   []byte    `json:"payload"` // JSON
	CreatedAt time.Time `json:"createdAt"`
}

// JournalPostedEvent is the payload published when a journal is created.
type JournalPostedEvent struct {
	JournalID      string       `json:"journalID"`
	CompanyID      string       `json:"companyID"`
	SourceDocType  DocumentType `json:"sourceDocType"`
	SourceDocID    string       `json:"sourceDocID"`
	IdempotencyKey string       `json:"idempotencyKey"`
}

// JournalReversedEvent is the payload published when a reversal is posted.
type JournalReversedEvent struct {
	ReversalID        string `json:"reversalID"`
	ReversedJournalID string `json:"reversedJournalID"`
	CompanyID         string `json:"companyID"`
}
