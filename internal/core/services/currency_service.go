package services

import (
	"context"
	"fmt"
	"time"

	"github.com/finposting/ledger-core/internal/core/domain"
	portsrepo "github.com/finposting/ledger-core/internal/core/ports/repositories"
	portssvc "github.com/finposting/ledger-core/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// currencyService resolves company base currency and FX rates to populate
// base amounts on journal lines. Base amounts are fixed to 2 decimal places,
// rounded half up.
type currencyService struct {
	companyRepo portsrepo.CompanyRepositoryFacade
	fxRateRepo  portsrepo.FxRateRepositoryFacade
}

// NewCurrencyService creates the currency converter.
func NewCurrencyService(companyRepo portsrepo.CompanyRepositoryFacade, fxRateRepo portsrepo.FxRateRepositoryFacade) portssvc.CurrencySvcFacade {
	return &currencyService{companyRepo: companyRepo, fxRateRepo: fxRateRepo}
}

var _ portssvc.CurrencySvcFacade = (*currencyService)(nil)

// ComputeBaseAmounts fills BaseAmount and BaseCurrency on every line using
// the rate effective at asOf for that line's currency. Lines already in the
// base currency get rate 1 and the amount copied unchanged.
func (s *currencyService) ComputeBaseAmounts(ctx context.Context, companyID string, asOf time.Time, journalCurrency string, lines []domain.JournalLine) (*portssvc.ConversionResult, error) {
	company, err := s.companyRepo.FindCompanyByID(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve company %s: %w", companyID, err)
	}
	baseCurrency := company.BaseCurrencyCode

	// One lookup per distinct currency in the journal.
	rates := make(map[string]decimal.Decimal)
	resolve := func(currency string) (decimal.Decimal, error) {
		if rate, ok := rates[currency]; ok {
			return rate, nil
		}
		if currency == baseCurrency {
			rates[currency] = decimal.NewFromInt(1)
			return rates[currency], nil
		}
		fxRate, err := s.fxRateRepo.FindRate(ctx, companyID, currency, baseCurrency, asOf)
		if err != nil {
			return decimal.Zero, fmt.Errorf("failed to resolve rate %s->%s as of %s: %w", currency, baseCurrency, asOf.Format("2006-01-02"), err)
		}
		rates[currency] = fxRate.Rate
		return fxRate.Rate, nil
	}

	converted := make([]domain.JournalLine, len(lines))
	for i, line := range lines {
		rate, err := resolve(line.CurrencyCode)
		if err != nil {
			return nil, err
		}
		line.BaseCurrency = baseCurrency
		if line.CurrencyCode == baseCurrency {
			line.BaseAmount = line.Amount
		} else {
			line.BaseAmount = line.Amount.Mul(rate).Round(2)
		}
		converted[i] = line
	}

	rateUsed, err := resolve(journalCurrency)
	if err != nil {
		return nil, err
	}

	return &portssvc.ConversionResult{
		BaseCurrency: baseCurrency,
		RateUsed:     rateUsed,
		Lines:        converted,
	}, nil
}
