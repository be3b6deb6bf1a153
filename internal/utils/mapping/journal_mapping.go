package mapping

import (
	"github.com/finposting/ledger-core/internal/core/domain"
	"github.com/finposting/ledger-core/internal/models"
)

// ToModelJournal converts a domain Journal to a model Journal.
func ToModelJournal(d domain.Journal) models.Journal {
	return models.Journal{
		JournalID:         d.JournalID,
		CompanyID:         d.CompanyID,
		PostingDate:       d.PostingDate,
		CurrencyCode:      d.CurrencyCode,
		BaseCurrencyCode:  d.BaseCurrency,
		FxRate:            d.FxRate,
		SourceDocType:     string(d.SourceDocType),
		SourceDocID:       d.SourceDocID,
		IdempotencyKey:    d.IdempotencyKey,
		IsReversal:        d.IsReversal,
		ReversesJournalID: d.ReversesJournalID,
		LinkedJournalID:   d.LinkedJournalID,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournal converts a model Journal to a domain Journal.
func ToDomainJournal(m models.Journal) domain.Journal {
	return domain.Journal{
		JournalID:         m.JournalID,
		CompanyID:         m.CompanyID,
		PostingDate:       m.PostingDate,
		CurrencyCode:      m.CurrencyCode,
		BaseCurrency:      m.BaseCurrencyCode,
		FxRate:            m.FxRate,
		SourceDocType:     domain.DocumentType(m.SourceDocType),
		SourceDocID:       m.SourceDocID,
		IdempotencyKey:    m.IdempotencyKey,
		IsReversal:        m.IsReversal,
		ReversesJournalID: m.ReversesJournalID,
		LinkedJournalID:   m.LinkedJournalID,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelJournalLine converts a domain JournalLine to a model JournalLine.
func ToModelJournalLine(d domain.JournalLine) models.JournalLine {
	return models.JournalLine{
		LineID:           d.LineID,
		JournalID:        d.JournalID,
		AccountCode:      d.AccountCode,
		Side:             string(d.Side),
		Amount:           d.Amount,
		CurrencyCode:     d.CurrencyCode,
		BaseAmount:       d.BaseAmount,
		BaseCurrencyCode: d.BaseCurrency,
		PartyID:          d.PartyID,
		CostCenterID:     d.CostCenterID,
		ProjectID:        d.ProjectID,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalLine converts a model JournalLine to a domain JournalLine.
func ToDomainJournalLine(m models.JournalLine) domain.JournalLine {
	return domain.JournalLine{
		LineID:       m.LineID,
		JournalID:    m.JournalID,
		AccountCode:  m.AccountCode,
		Side:         domain.EntrySide(m.Side),
		Amount:       m.Amount,
		CurrencyCode: m.CurrencyCode,
		BaseAmount:   m.BaseAmount,
		BaseCurrency: m.BaseCurrencyCode,
		PartyID:      m.PartyID,
		CostCenterID: m.CostCenterID,
		ProjectID:    m.ProjectID,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainJournalLineSlice converts a slice of model lines to domain lines.
func ToDomainJournalLineSlice(ms []models.JournalLine) []domain.JournalLine {
	ds := make([]domain.JournalLine, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainJournalLine(m)
	}
	return ds
}
