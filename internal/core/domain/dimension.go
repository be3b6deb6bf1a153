package domain

// DimensionKind distinguishes the analytical tags a journal line may carry.
type DimensionKind string

const (
	CostCenter DimensionKind = "COST_CENTER"
	Project    DimensionKind = "PROJECT"
)

// Dimension is an analytical tag (cost center or project) referenced by
// journal lines, subject to per-account requirement policy.
type Dimension struct {
	DimensionID string        `json:"dimensionID"`
	CompanyID   string        `json:"companyID"`
	Kind        DimensionKind `json:"kind"`
	Name        string        `json:"name"`
	IsActive    bool          `json:"isActive"`
	AuditFields
}

// DimensionRefs bundles the optional dimension references of one journal line
// after line-level values have been merged over document-level defaults.
type DimensionRefs struct {
	CostCenterID *string `json:"costCenterID"`
	ProjectID    *string `json:"projectID"`
}
