package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Journal mirrors the journal table.
type Journal struct {
	JournalID         string
	CompanyID         string
	PostingDate       time.Time
	CurrencyCode      string
	BaseCurrencyCode  string
	FxRate            decimal.Decimal
	SourceDocType     string
	SourceDocID       string
	IdempotencyKey    string
	IsReversal        bool
	ReversesJournalID *string
	LinkedJournalID   *string
	AuditFields
}

// JournalLine mirrors the journal_line table.
type JournalLine struct {
	LineID           string
	JournalID        string
	AccountCode      string
	Side             string
	Amount           decimal.Decimal
	CurrencyCode     string
	BaseAmount       decimal.Decimal
	BaseCurrencyCode string
	PartyID          *string
	CostCenterID     *string
	ProjectID        *string
	AuditFields
}
