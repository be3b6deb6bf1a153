package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// FxRevalRun mirrors the fx_reval_run table.
type FxRevalRun struct {
	RunID     string
	CompanyID string
	Year      int
	Month     int
	Mode      string
	RunAt     time.Time
	CreatedBy string
}

// FxRevalLine mirrors the fx_reval_line table.
type FxRevalLine struct {
	LineID        string
	RunID         string
	AccountCode   string
	CurrencyCode  string
	OldRate       decimal.Decimal
	NewRate       decimal.Decimal
	SourceBalance decimal.Decimal
	BaseBalance   decimal.Decimal
	Delta         decimal.Decimal
}
