package mapping

import (
	"github.com/finposting/ledger-core/internal/core/domain"
	"github.com/finposting/ledger-core/internal/models"
)

// ToDomainAccount converts a model Account to a domain Account.
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountCode:           m.AccountCode,
		CompanyID:             m.CompanyID,
		Name:                  m.Name,
		AccountType:           domain.AccountType(m.AccountType),
		IsMonetary:            m.IsMonetary,
		RequireCostCenter:     m.RequireCostCenter,
		RequireProject:        m.RequireProject,
		UnrealizedGainAccount: m.UnrealizedGainAccount,
		UnrealizedLossAccount: m.UnrealizedLossAccount,
		IsActive:              m.IsActive,
		AuditFields:           ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainDimension converts a model Dimension to a domain Dimension.
func ToDomainDimension(m models.Dimension) domain.Dimension {
	return domain.Dimension{
		DimensionID: m.DimensionID,
		CompanyID:   m.CompanyID,
		Kind:        domain.DimensionKind(m.Kind),
		Name:        m.Name,
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainCompany converts a model Company to a domain Company.
func ToDomainCompany(m models.Company) domain.Company {
	return domain.Company{
		CompanyID:        m.CompanyID,
		Name:             m.Name,
		BaseCurrencyCode: m.BaseCurrencyCode,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainFxRate converts a model FxRate to a domain FxRate.
func ToDomainFxRate(m models.FxRate) domain.FxRate {
	return domain.FxRate{
		FxRateID:         m.FxRateID,
		CompanyID:        m.CompanyID,
		FromCurrencyCode: m.FromCurrencyCode,
		ToCurrencyCode:   m.ToCurrencyCode,
		Rate:             m.Rate,
		DateEffective:    m.DateEffective,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainPeriod converts a model Period to a domain Period.
func ToDomainPeriod(m models.Period) domain.Period {
	return domain.Period{
		CompanyID:   m.CompanyID,
		Year:        m.Year,
		Month:       m.Month,
		State:       domain.PeriodState(m.State),
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
