package models

// Account mirrors the account table; the policy columns feed the dimension
// validator and the revaluation engine.
type Account struct {
	AccountCode           string
	CompanyID             string
	Name                  string
	AccountType           string
	IsMonetary            bool
	RequireCostCenter     bool
	RequireProject        bool
	UnrealizedGainAccount *string
	UnrealizedLossAccount *string
	IsActive              bool
	AuditFields
}

// Dimension mirrors the dimension table.
type Dimension struct {
	DimensionID string
	CompanyID   string
	Kind        string
	Name        string
	IsActive    bool
	AuditFields
}

// Company mirrors the company table.
type Company struct {
	CompanyID        string
	Name             string
	BaseCurrencyCode string
	AuditFields
}
