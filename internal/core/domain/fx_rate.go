package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// FxRate is one quoted conversion rate effective from a given date.
// Rate expresses how much 1 unit of FromCurrencyCode is worth in
// ToCurrencyCode. The latest rate effective on or before the posting date
// wins; an inverse quote is usable when no direct quote exists.
type FxRate struct {
	FxRateID         string          `json:"fxRateID"`
	CompanyID        string          `json:"companyID"`
	FromCurrencyCode string          `json:"fromCurrencyCode"`
	ToCurrencyCode   string          `json:"toCurrencyCode"`
	Rate             decimal.Decimal `json:"rate"`
	DateEffective    time.Time       `json:"dateEffective"`
	AuditFields
}
