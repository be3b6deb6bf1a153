package dto

import (
	"github.com/finposting/ledger-core/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RevalParams selects the scope of one FX revaluation run.
type RevalParams struct {
	CompanyID string
	Year      int
	Month     int
	DryRun    bool
	// Accounts optionally restricts the run to a subset of monetary accounts.
	Accounts  []string
	CreatedBy string
}

// RevalResult summarizes a revaluation run: computed lines, the adjustment
// journals posted (empty for dry runs) and the net delta across all lines.
type RevalResult struct {
	RunID      string               `json:"runID"`
	Lines      []domain.FxRevalLine `json:"lines"`
	JournalIDs []string             `json:"journalIDs,omitempty"`
	DeltaTotal decimal.Decimal      `json:"deltaTotal"`
}
