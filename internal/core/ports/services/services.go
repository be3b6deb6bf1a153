// Package services defines the service contracts the transport layer and the
// engines consume from each other.
package services

import (
	"context"
	"time"

	"github.com/finposting/ledger-core/internal/core/domain"
	"github.com/finposting/ledger-core/internal/dto"
	"github.com/shopspring/decimal"
)

// PostingSvcFacade is the rule-driven journal construction and posting core.
type PostingSvcFacade interface {
	// PostByRule builds and persists a balanced journal for the document,
	// exactly once per rendered idempotency key.
	PostByRule(ctx context.Context, req dto.PostByRuleRequest) (*dto.PostingResult, error)

	// ReverseJournal posts the mirror journal of journalID dated postingDate,
	// idempotent per (journalID, date).
	ReverseJournal(ctx context.Context, companyID string, journalID string, postingDate time.Time) (*dto.ReversalResult, error)

	// LinkJournal attaches the journal a payment settles; the only header
	// mutation allowed after posting.
	LinkJournal(ctx context.Context, companyID string, journalID string, linkedJournalID string) error

	GetJournal(ctx context.Context, companyID string, journalID string) (*domain.Journal, error)
}

// RevalSvcFacade is the FX revaluation batch engine.
type RevalSvcFacade interface {
	RevalueMonetaryAccounts(ctx context.Context, params dto.RevalParams) (*dto.RevalResult, error)
}

// PeriodSvcFacade guards posting dates against period locks.
type PeriodSvcFacade interface {
	// AssertOpenPeriod fails with *apperrors.PeriodLockedError when the date
	// falls in a managed period whose state is not open.
	AssertOpenPeriod(ctx context.Context, companyID string, date time.Time) error
}

// DimensionSvcFacade validates dimension references and account policy.
type DimensionSvcFacade interface {
	EnsureDimensionValid(ctx context.Context, companyID string, dimensionID *string, kind domain.DimensionKind) error
	EnsureAccountPolicy(ctx context.Context, companyID string, accountCode string, dims domain.DimensionRefs) error
}

// ConversionResult carries the outcome of a base-amount computation.
type ConversionResult struct {
	BaseCurrency string
	RateUsed     decimal.Decimal // Rate for the journal's own currency
	Lines        []domain.JournalLine
}

// CurrencySvcFacade computes base-currency amounts for journal lines.
type CurrencySvcFacade interface {
	// ComputeBaseAmounts resolves the company base currency and the rate
	// effective at asOf for every line currency, filling BaseAmount and
	// BaseCurrency on each line. journalCurrency selects RateUsed.
	ComputeBaseAmounts(ctx context.Context, companyID string, asOf time.Time, journalCurrency string, lines []domain.JournalLine) (*ConversionResult, error)
}
