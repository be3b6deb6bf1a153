package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RevalMode distinguishes a preview run from one that posts adjustments.
type RevalMode string

const (
	RevalDryRun RevalMode = "DRY_RUN"
	RevalCommit RevalMode = "COMMIT"
)

// FxRevalRun records one revaluation batch attempt for (company, year, month).
type FxRevalRun struct {
	RunID     string    `json:"runID"`
	CompanyID string    `json:"companyID"`
	Year      int       `json:"year"`
	Month     int       `json:"month"`
	Mode      RevalMode `json:"mode"`
	RunAt     time.Time `json:"runAt"`
	CreatedBy string    `json:"createdBy"`
}

// FxRevalLine is the computed adjustment for one (account, currency) balance.
type FxRevalLine struct {
	LineID        string          `json:"lineID"`
	RunID         string          `json:"runID"`
	AccountCode   string          `json:"accountCode"`
	CurrencyCode  string          `json:"currencyCode"`
	OldRate       decimal.Decimal `json:"oldRate"` // Implied carrying rate
	NewRate       decimal.Decimal `json:"newRate"`
	SourceBalance decimal.Decimal `json:"sourceBalance"` // Transaction currency
	BaseBalance   decimal.Decimal `json:"baseBalance"`   // Carrying base value
	Delta         decimal.Decimal `json:"delta"`         // source*newRate - base, 2dp
}

// FxRevalLock forbids a second committed adjustment of the same
// (company, year, month, account, currency) balance.
type FxRevalLock struct {
	CompanyID    string    `json:"companyID"`
	Year         int       `json:"year"`
	Month        int       `json:"month"`
	AccountCode  string    `json:"accountCode"`
	CurrencyCode string    `json:"currencyCode"`
	RunID        string    `json:"runID"`
	LockedAt     time.Time `json:"lockedAt"`
}

// MonetaryBalance is the carrying value of one (monetary account, currency)
// bucket as of a cutoff date, in both transaction and base currency.
type MonetaryBalance struct {
	AccountCode   string          `json:"accountCode"`
	CurrencyCode  string          `json:"currencyCode"`
	SourceBalance decimal.Decimal `json:"sourceBalance"`
	BaseBalance   decimal.Decimal `json:"baseBalance"`
}
