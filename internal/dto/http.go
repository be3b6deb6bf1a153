package dto

import (
	"time"

	"github.com/finposting/ledger-core/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PostByRuleHTTPRequest is the wire shape of a rule-driven posting request.
// Amount and party slots arrive keyed by their enumerated field names.
type PostByRuleHTTPRequest struct {
	DocType      string                     `json:"docType" binding:"required"`
	DocID        string                     `json:"docID" binding:"required"`
	CurrencyCode string                     `json:"currencyCode" binding:"required,len=3"`
	PostingDate  time.Time                  `json:"postingDate" binding:"required"`
	Amounts      map[string]decimal.Decimal `json:"amounts" binding:"required"`
	Parties      map[string]string          `json:"parties"`
	CostCenterID *string                    `json:"costCenterID"`
	ProjectID    *string                    `json:"projectID"`
}

// ToServiceRequest converts the wire shape into the typed posting request.
func (r PostByRuleHTTPRequest) ToServiceRequest(companyID string) PostByRuleRequest {
	amounts := make(map[domain.AmountField]decimal.Decimal, len(r.Amounts))
	for k, v := range r.Amounts {
		amounts[domain.AmountField(k)] = v
	}
	parties := make(map[domain.PartyField]string, len(r.Parties))
	for k, v := range r.Parties {
		parties[domain.PartyField(k)] = v
	}
	return PostByRuleRequest{
		DocType:      domain.DocumentType(r.DocType),
		DocID:        r.DocID,
		CurrencyCode: r.CurrencyCode,
		CompanyID:    companyID,
		PostingDate:  r.PostingDate,
		Document: domain.SourceDocument{
			Amounts:      amounts,
			Parties:      parties,
			CostCenterID: r.CostCenterID,
			ProjectID:    r.ProjectID,
		},
	}
}

// ReverseJournalHTTPRequest carries the posting date of a reversal.
type ReverseJournalHTTPRequest struct {
	PostingDate string `json:"postingDate" binding:"required"` // YYYY-MM-DD
}

// LinkJournalHTTPRequest names the journal that settles the one addressed.
type LinkJournalHTTPRequest struct {
	LinkedJournalID string `json:"linkedJournalID" binding:"required"`
}

// RevalHTTPRequest is the wire shape of a revaluation request.
type RevalHTTPRequest struct {
	Year     int      `json:"year" binding:"required"`
	Month    int      `json:"month" binding:"required,min=1,max=12"`
	DryRun   bool     `json:"dryRun"`
	Accounts []string `json:"accounts"`
}

// ToServiceParams converts the wire shape into revaluation run parameters.
func (r RevalHTTPRequest) ToServiceParams(companyID string) RevalParams {
	return RevalParams{
		CompanyID: companyID,
		Year:      r.Year,
		Month:     r.Month,
		DryRun:    r.DryRun,
		Accounts:  r.Accounts,
	}
}
