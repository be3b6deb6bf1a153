package services

import (
	portsrepo "github.com/finposting/ledger-core/internal/core/ports/repositories"
	portssvc "github.com/finposting/ledger-core/internal/core/ports/services"
	"github.com/finposting/ledger-core/internal/core/rules"
)

// Container holds all the services and manages their dependencies.
type Container struct {
	Period    portssvc.PeriodSvcFacade
	Dimension portssvc.DimensionSvcFacade
	Currency  portssvc.CurrencySvcFacade
	Posting   portssvc.PostingSvcFacade
	Reval     portssvc.RevalSvcFacade
}

// NewContainer wires the posting core over the given repositories.
func NewContainer(repos portsrepo.RepositoryProvider) *Container {
	container := &Container{}

	container.Period = NewPeriodService(repos.PeriodRepo)
	container.Dimension = NewDimensionService(repos.DimensionRepo, repos.AccountRepo)
	container.Currency = NewCurrencyService(repos.CompanyRepo, repos.FxRateRepo)

	container.Posting = NewPostingService(
		rules.NewRegistry(),
		repos.JournalRepo,
		container.Period,
		container.Dimension,
		container.Currency,
	)
	container.Reval = NewRevalService(
		repos.RevalRepo,
		repos.AccountRepo,
		repos.CompanyRepo,
		repos.FxRateRepo,
		repos.JournalRepo,
		container.Period,
	)

	return container
}
