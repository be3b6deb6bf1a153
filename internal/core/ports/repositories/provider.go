package repositories

// RepositoryProvider bundles the repository implementations handed to the
// service layer.
type RepositoryProvider struct {
	CompanyRepo   CompanyRepositoryFacade
	AccountRepo   AccountRepositoryFacade
	DimensionRepo DimensionRepositoryFacade
	PeriodRepo    PeriodRepositoryFacade
	FxRateRepo    FxRateRepositoryFacade
	JournalRepo   JournalRepositoryFacade
	RevalRepo     RevalRepositoryFacade
}
