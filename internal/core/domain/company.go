package domain

// Company is the tenant boundary; every ledger row is scoped to one company.
type Company struct {
	CompanyID        string `json:"companyID"`
	Name             string `json:"name"`
	BaseCurrencyCode string `json:"baseCurrencyCode"` // Reporting currency, ISO 4217
	AuditFields
}
