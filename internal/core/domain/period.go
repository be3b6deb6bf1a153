package domain

// PeriodState is the lock state of one accounting month.
// Normal operation moves a period open -> pending_close -> closed; the
// posting core only inspects the state, it never transitions it.
type PeriodState string

const (
	PeriodOpen         PeriodState = "OPEN"
	PeriodPendingClose PeriodState = "PENDING_CLOSE"
	PeriodClosed       PeriodState = "CLOSED"
)

// Period gates postings dated inside (company, year, month).
// A missing period row means the month has never been managed and postings
// are allowed, so pre-existing tenants keep working without period setup.
type Period struct {
	CompanyID string      `json:"companyID"`
	Year      int         `json:"year"`
	Month     int         `json:"month"`
	State     PeriodState `json:"state"`
	AuditFields
}
