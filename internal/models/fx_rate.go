package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// FxRate mirrors the fx_rate table.
type FxRate struct {
	FxRateID         string
	CompanyID        string
	FromCurrencyCode string
	ToCurrencyCode   string
	Rate             decimal.Decimal
	DateEffective    time.Time
	AuditFields
}

// Period mirrors the periods table.
type Period struct {
	CompanyID string
	Year      int
	Month     int
	State     string
	AuditFields
}
