package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntrySide indicates whether a journal line is a Debit or a Credit.
type EntrySide string

const (
	Debit  EntrySide = "DEBIT"
	Credit EntrySide = "CREDIT"
)

// Opposite returns the mirrored side, used when reversing a journal.
func (s EntrySide) Opposite() EntrySide {
	if s == Debit {
		return Credit
	}
	return Debit
}

// Journal is one balanced, immutable posting of a business event.
// The idempotency key is unique per company and identifies the logical event
// the journal was posted for, so replays resolve to the same journal.
type Journal struct {
	JournalID      string          `json:"journalID"`
	CompanyID      string          `json:"companyID"`
	PostingDate    time.Time       `json:"postingDate"`
	CurrencyCode   string          `json:"currencyCode"`     // Transaction currency
	BaseCurrency   string          `json:"baseCurrencyCode"` // Company reporting currency
	FxRate         decimal.Decimal `json:"fxRate"`           // Rate applied at posting
	SourceDocType  DocumentType    `json:"sourceDocType"`
	SourceDocID    string          `json:"sourceDocID"`
	IdempotencyKey string          `json:"idempotencyKey"`
	IsReversal     bool            `json:"isReversal"`
	// ReversesJournalID links a reversal back to the journal it mirrors.
	ReversesJournalID *string `json:"reversesJournalID"`
	// LinkedJournalID is the only mutable field: payments attach the journal
	// they settle after both sides are posted.
	LinkedJournalID *string       `json:"linkedJournalID"`
	Lines           []JournalLine `json:"lines,omitempty"`
	AuditFields
}

// JournalLine is a single debit or credit within a journal. Amounts are
// carried in both transaction currency and the company base currency.
type JournalLine struct {
	LineID       string          `json:"lineID"`
	JournalID    string          `json:"journalID"`
	AccountCode  string          `json:"accountCode"`
	Side         EntrySide       `json:"side"`
	Amount       decimal.Decimal `json:"amount"` // Transaction currency, positive
	CurrencyCode string          `json:"currencyCode"`
	BaseAmount   decimal.Decimal `json:"baseAmount"` // Base currency, 2dp
	BaseCurrency string          `json:"baseCurrencyCode"`
	PartyID      *string         `json:"partyID"`
	CostCenterID *string         `json:"costCenterID"`
	ProjectID    *string         `json:"projectID"`
	AuditFields
}

// DebitBaseTotal sums the base amounts of the debit lines.
func DebitBaseTotal(lines []JournalLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		if l.Side == Debit {
			total = total.Add(l.BaseAmount)
		}
	}
	return total
}

// CreditBaseTotal sums the base amounts of the credit lines.
func CreditBaseTotal(lines []JournalLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		if l.Side == Credit {
			total = total.Add(l.BaseAmount)
		}
	}
	return total
}
