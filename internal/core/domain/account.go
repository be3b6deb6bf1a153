package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// Account is a GL account within a company's chart of accounts.
// The dimension requirement flags and the unrealized gain/loss mapping make
// up the per-account posting policy consulted by the posting core.
type Account struct {
	AccountCode       string      `json:"accountCode"` // Unique per company
	CompanyID         string      `json:"companyID"`
	Name              string      `json:"name"`
	AccountType       AccountType `json:"accountType"`
	IsMonetary        bool        `json:"isMonetary"` // Eligible for FX revaluation
	RequireCostCenter bool        `json:"requireCostCenter"`
	RequireProject    bool        `json:"requireProject"`
	// Unrealized gain/loss accounts used when revaluing this account's
	// foreign-currency balance. Nil means revaluation skips the account.
	UnrealizedGainAccount *string `json:"unrealizedGainAccount"`
	UnrealizedLossAccount *string `json:"unrealizedLossAccount"`
	IsActive              bool    `json:"isActive"`
	AuditFields
}
