package dto

import (
	"time"

	"github.com/finposting/ledger-core/internal/core/domain"
)

// PostByRuleRequest carries everything needed to post one business document.
type PostByRuleRequest struct {
	DocType      domain.DocumentType
	DocID        string
	CurrencyCode string
	CompanyID    string
	PostingDate  time.Time
	Document     domain.SourceDocument
}

// PostingResult reports the journal a posting resolved to. Replayed is true
// when the idempotency key already had a journal and nothing new was written.
type PostingResult struct {
	JournalID string `json:"journalID"`
	Replayed  bool   `json:"replayed"`
}

// ReversalResult reports the reversal journal a request resolved to.
type ReversalResult struct {
	ReversalID string `json:"reversalID"`
	Replayed   bool   `json:"replayed"`
}
