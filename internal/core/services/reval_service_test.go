package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/finposting/ledger-core/internal/apperrors"
	"github.com/finposting/ledger-core/internal/core/domain"
	portssvc "github.com/finposting/ledger-core/internal/core/ports/services"
	"github.com/finposting/ledger-core/internal/core/services"
	"github.com/finposting/ledger-core/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type RevalServiceTestSuite struct {
	suite.Suite
	mockRevalRepo   *MockRevalRepository
	mockAccountRepo *MockAccountRepository
	mockCompanyRepo *MockCompanyRepository
	mockFxRateRepo  *MockFxRateRepository
	mockJournalRepo *MockJournalRepository
	mockPeriodRepo  *MockPeriodRepository
	service         portssvc.RevalSvcFacade
	companyID       string
	ctx             context.Context
	monthEnd        time.Time
	cutoff          time.Time
}

func (s *RevalServiceTestSuite) SetupTest() {
	s.mockRevalRepo = new(MockRevalRepository)
	s.mockAccountRepo = new(MockAccountRepository)
	s.mockCompanyRepo = new(MockCompanyRepository)
	s.mockFxRateRepo = new(MockFxRateRepository)
	s.mockJournalRepo = new(MockJournalRepository)
	s.mockPeriodRepo = new(MockPeriodRepository)

	s.service = services.NewRevalService(
		s.mockRevalRepo,
		s.mockAccountRepo,
		s.mockCompanyRepo,
		s.mockFxRateRepo,
		s.mockJournalRepo,
		services.NewPeriodService(s.mockPeriodRepo),
	)

	s.companyID = "C1"
	s.ctx = context.Background()
	s.monthEnd = time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	// Balance cutoff is exclusive at the first instant of the next month so
	// postings late on the 31st are still revalued.
	s.cutoff = time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)

	s.mockCompanyRepo.On("FindCompanyByID", s.ctx, s.companyID).
		Return(&domain.Company{CompanyID: s.companyID, BaseCurrencyCode: "MYR"}, nil)
}

func (s *RevalServiceTestSuite) params(dryRun bool) dto.RevalParams {
	return dto.RevalParams{CompanyID: s.companyID, Year: 2025, Month: 1, DryRun: dryRun}
}

func (s *RevalServiceTestSuite) allowPeriod() {
	s.mockPeriodRepo.On("FindPeriod", s.ctx, s.companyID, mock.Anything, mock.Anything).Return(nil, nil)
}

func (s *RevalServiceTestSuite) stubBalances(balances []domain.MonetaryBalance) {
	s.mockRevalRepo.On("FindMonetaryBalances", s.ctx, s.companyID, s.cutoff, []string(nil)).
		Return(balances, nil)
}

func (s *RevalServiceTestSuite) stubRate(currency string, rate string) {
	s.mockFxRateRepo.On("FindRate", s.ctx, s.companyID, currency, "MYR", s.monthEnd).
		Return(&domain.FxRate{FromCurrencyCode: currency, ToCurrencyCode: "MYR", Rate: decimal.RequireFromString(rate)}, nil)
}

func (s *RevalServiceTestSuite) monetaryAccount(code string) domain.Account {
	return domain.Account{
		AccountCode:           code,
		CompanyID:             s.companyID,
		AccountType:           domain.Asset,
		IsMonetary:            true,
		UnrealizedGainAccount: strPtr("7150"),
		UnrealizedLossAccount: strPtr("7160"),
		IsActive:              true,
	}
}

func (s *RevalServiceTestSuite) stubAccounts(codes ...string) {
	byCode := make(map[string]domain.Account, len(codes))
	for _, code := range codes {
		byCode[code] = s.monetaryAccount(code)
	}
	s.mockAccountRepo.On("FindAccountsByCodes", s.ctx, s.companyID, codes).Return(byCode, nil)
}

func (s *RevalServiceTestSuite) TestReval_UnchangedRateProducesNoLines() {
	s.allowPeriod()
	s.stubBalances([]domain.MonetaryBalance{
		{AccountCode: "1105", CurrencyCode: "USD",
			SourceBalance: decimal.RequireFromString("250.00"),
			BaseBalance:   decimal.RequireFromString("1000.00")},
	})
	// 250 * 4.00 - 1000 = 0, below the noise floor.
	s.stubRate("USD", "4.00")
	s.mockRevalRepo.On("SaveRun", s.ctx, mock.Anything).Return(nil)

	result, err := s.service.RevalueMonetaryAccounts(s.ctx, s.params(false))

	s.Require().NoError(err)
	s.Empty(result.Lines)
	s.Empty(result.JournalIDs)
	s.True(result.DeltaTotal.IsZero())
	s.mockRevalRepo.AssertNotCalled(s.T(), "SaveLines")
	s.mockRevalRepo.AssertNotCalled(s.T(), "AcquireLock")
	s.mockJournalRepo.AssertNotCalled(s.T(), "SaveJournalWithOutbox")
}

func (s *RevalServiceTestSuite) TestReval_GainPostsAdjustmentJournal() {
	s.allowPeriod()
	s.stubBalances([]domain.MonetaryBalance{
		{AccountCode: "1105", CurrencyCode: "USD",
			SourceBalance: decimal.RequireFromString("250.00"),
			BaseBalance:   decimal.RequireFromString("1000.00")},
	})
	// 250 * 4.08 - 1000 = 20.00 gain.
	s.stubRate("USD", "4.08")
	s.mockRevalRepo.On("SaveRun", s.ctx, mock.Anything).Return(nil)
	s.mockRevalRepo.On("SaveLines", s.ctx, mock.Anything).Return(nil)
	s.mockRevalRepo.On("AcquireLock", s.ctx, mock.Anything).Return(true, nil)
	s.stubAccounts("1105")

	var savedJournal domain.Journal
	var savedLines []domain.JournalLine
	s.mockJournalRepo.On("SaveJournalWithOutbox", s.ctx, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			savedJournal = args.Get(1).(domain.Journal)
			savedLines = args.Get(2).([]domain.JournalLine)
		}).
		Return("JR-1", true, nil)

	result, err := s.service.RevalueMonetaryAccounts(s.ctx, s.params(false))

	s.Require().NoError(err)
	s.Require().Len(result.Lines, 1)
	s.Equal("20.00", result.Lines[0].Delta.StringFixed(2))
	s.Equal("4.00", result.Lines[0].OldRate.StringFixed(2)) // 1000 / 250
	s.Equal("20.00", result.DeltaTotal.StringFixed(2))
	s.Equal([]string{"JR-1"}, result.JournalIDs)

	s.Equal(domain.FxRevalAdjustment, savedJournal.SourceDocType)
	s.Equal("2025-01:1105", savedJournal.SourceDocID)
	s.Equal("FxReval:C1:2025-01:1105", savedJournal.IdempotencyKey)
	s.Equal(s.monthEnd, savedJournal.PostingDate)
	s.Equal("MYR", savedJournal.CurrencyCode)

	s.Require().Len(savedLines, 2)
	s.Equal(domain.Debit, savedLines[0].Side)
	s.Equal("1105", savedLines[0].AccountCode)
	s.Equal(domain.Credit, savedLines[1].Side)
	s.Equal("7150", savedLines[1].AccountCode)
	for _, line := range savedLines {
		s.Equal("20.00", line.Amount.StringFixed(2))
		s.Equal("20.00", line.BaseAmount.StringFixed(2))
		s.Equal("MYR", line.CurrencyCode)
	}
}

func (s *RevalServiceTestSuite) TestReval_LossDebitsLossAccount() {
	s.allowPeriod()
	s.stubBalances([]domain.MonetaryBalance{
		{AccountCode: "1105", CurrencyCode: "USD",
			SourceBalance: decimal.RequireFromString("250.00"),
			BaseBalance:   decimal.RequireFromString("1000.00")},
	})
	// 250 * 3.90 - 1000 = -25.00 loss.
	s.stubRate("USD", "3.90")
	s.mockRevalRepo.On("SaveRun", s.ctx, mock.Anything).Return(nil)
	s.mockRevalRepo.On("SaveLines", s.ctx, mock.Anything).Return(nil)
	s.mockRevalRepo.On("AcquireLock", s.ctx, mock.Anything).Return(true, nil)
	s.stubAccounts("1105")

	var savedLines []domain.JournalLine
	s.mockJournalRepo.On("SaveJournalWithOutbox", s.ctx, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			savedLines = args.Get(2).([]domain.JournalLine)
		}).
		Return("JR-2", true, nil)

	result, err := s.service.RevalueMonetaryAccounts(s.ctx, s.params(false))

	s.Require().NoError(err)
	s.Equal("-25.00", result.DeltaTotal.StringFixed(2))

	s.Require().Len(savedLines, 2)
	s.Equal(domain.Debit, savedLines[0].Side)
	s.Equal("7160", savedLines[0].AccountCode)
	s.Equal(domain.Credit, savedLines[1].Side)
	s.Equal("1105", savedLines[1].AccountCode)
	s.Equal("25.00", savedLines[0].Amount.StringFixed(2))
}

func (s *RevalServiceTestSuite) TestReval_DryRunPostsNothing() {
	s.stubBalances([]domain.MonetaryBalance{
		{AccountCode: "1105", CurrencyCode: "USD",
			SourceBalance: decimal.RequireFromString("250.00"),
			BaseBalance:   decimal.RequireFromString("1000.00")},
	})
	s.stubRate("USD", "4.08")
	s.mockRevalRepo.On("SaveRun", s.ctx, mock.Anything).Return(nil)
	s.mockRevalRepo.On("SaveLines", s.ctx, mock.Anything).Return(nil)

	result, err := s.service.RevalueMonetaryAccounts(s.ctx, s.params(true))

	s.Require().NoError(err)
	s.Len(result.Lines, 1)
	s.Empty(result.JournalIDs)
	s.mockPeriodRepo.AssertNotCalled(s.T(), "FindPeriod")
	s.mockRevalRepo.AssertNotCalled(s.T(), "AcquireLock")
	s.mockJournalRepo.AssertNotCalled(s.T(), "SaveJournalWithOutbox")
}

func (s *RevalServiceTestSuite) TestReval_ClosedPeriodRejectsCommit() {
	s.mockPeriodRepo.On("FindPeriod", s.ctx, s.companyID, 2025, 1).
		Return(&domain.Period{CompanyID: s.companyID, Year: 2025, Month: 1, State: domain.PeriodClosed}, nil)

	result, err := s.service.RevalueMonetaryAccounts(s.ctx, s.params(false))

	s.Require().Error(err)
	var locked *apperrors.PeriodLockedError
	s.Require().ErrorAs(err, &locked)
	s.Equal(domain.PeriodClosed, locked.State)
	s.Nil(result)
	s.mockRevalRepo.AssertNotCalled(s.T(), "SaveRun")
	s.mockJournalRepo.AssertNotCalled(s.T(), "SaveJournalWithOutbox")
}

func (s *RevalServiceTestSuite) TestReval_HeldLockStillResolvesAdjustment() {
	s.allowPeriod()
	s.stubBalances([]domain.MonetaryBalance{
		{AccountCode: "1105", CurrencyCode: "USD",
			SourceBalance: decimal.RequireFromString("250.00"),
			BaseBalance:   decimal.RequireFromString("1000.00")},
	})
	s.stubRate("USD", "4.08")
	s.mockRevalRepo.On("SaveRun", s.ctx, mock.Anything).Return(nil)
	s.mockRevalRepo.On("SaveLines", s.ctx, mock.Anything).Return(nil)
	// An earlier commit already holds the lock. Posting still runs; the
	// journal store replays the adjustment already written under its key.
	s.mockRevalRepo.On("AcquireLock", s.ctx, mock.Anything).Return(false, nil)
	s.stubAccounts("1105")
	s.mockJournalRepo.On("SaveJournalWithOutbox", s.ctx, mock.Anything, mock.Anything, mock.Anything).
		Return("JR-1", false, nil)

	result, err := s.service.RevalueMonetaryAccounts(s.ctx, s.params(false))

	s.Require().NoError(err)
	s.Len(result.Lines, 1)
	s.Equal([]string{"JR-1"}, result.JournalIDs)
}

func (s *RevalServiceTestSuite) TestReval_RetryAfterFailedCommitPostsAdjustment() {
	s.allowPeriod()
	s.stubBalances([]domain.MonetaryBalance{
		{AccountCode: "1105", CurrencyCode: "USD",
			SourceBalance: decimal.RequireFromString("250.00"),
			BaseBalance:   decimal.RequireFromString("1000.00")},
	})
	s.stubRate("USD", "4.08")
	s.mockRevalRepo.On("SaveRun", s.ctx, mock.Anything).Return(nil)
	s.mockRevalRepo.On("SaveLines", s.ctx, mock.Anything).Return(nil)

	// First commit writes the lock row, then dies before posting.
	s.mockRevalRepo.On("AcquireLock", s.ctx, mock.Anything).Return(true, nil).Once()
	s.mockAccountRepo.On("FindAccountsByCodes", s.ctx, s.companyID, []string{"1105"}).
		Return(nil, assert.AnError).Once()

	_, err := s.service.RevalueMonetaryAccounts(s.ctx, s.params(false))
	s.Require().Error(err)
	s.mockJournalRepo.AssertNotCalled(s.T(), "SaveJournalWithOutbox")

	// The retry finds the lock already held and must still post the 20.00
	// adjustment rather than dropping the tuple.
	s.mockRevalRepo.On("AcquireLock", s.ctx, mock.Anything).Return(false, nil)
	s.stubAccounts("1105")
	var savedJournal domain.Journal
	s.mockJournalRepo.On("SaveJournalWithOutbox", s.ctx, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			savedJournal = args.Get(1).(domain.Journal)
		}).
		Return("JR-1", true, nil)

	result, err := s.service.RevalueMonetaryAccounts(s.ctx, s.params(false))

	s.Require().NoError(err)
	s.Equal([]string{"JR-1"}, result.JournalIDs)
	s.Equal("FxReval:C1:2025-01:1105", savedJournal.IdempotencyKey)
}

func (s *RevalServiceTestSuite) TestReval_UnmappedAccountSkippedNotFailed() {
	s.allowPeriod()
	s.stubBalances([]domain.MonetaryBalance{
		{AccountCode: "1105", CurrencyCode: "USD",
			SourceBalance: decimal.RequireFromString("250.00"),
			BaseBalance:   decimal.RequireFromString("1000.00")},
	})
	s.stubRate("USD", "4.08")
	s.mockRevalRepo.On("SaveRun", s.ctx, mock.Anything).Return(nil)
	s.mockRevalRepo.On("SaveLines", s.ctx, mock.Anything).Return(nil)
	s.mockRevalRepo.On("AcquireLock", s.ctx, mock.Anything).Return(true, nil)

	unmapped := s.monetaryAccount("1105")
	unmapped.UnrealizedGainAccount = nil
	unmapped.UnrealizedLossAccount = nil
	s.mockAccountRepo.On("FindAccountsByCodes", s.ctx, s.companyID, []string{"1105"}).
		Return(map[string]domain.Account{"1105": unmapped}, nil)

	result, err := s.service.RevalueMonetaryAccounts(s.ctx, s.params(false))

	s.Require().NoError(err)
	s.Len(result.Lines, 1)
	s.Empty(result.JournalIDs)
	s.mockJournalRepo.AssertNotCalled(s.T(), "SaveJournalWithOutbox")
}

func (s *RevalServiceTestSuite) TestReval_BaseCurrencyBalancesIgnored() {
	s.allowPeriod()
	s.stubBalances([]domain.MonetaryBalance{
		{AccountCode: "1100", CurrencyCode: "MYR",
			SourceBalance: decimal.RequireFromString("5000.00"),
			BaseBalance:   decimal.RequireFromString("5000.00")},
	})
	s.mockRevalRepo.On("SaveRun", s.ctx, mock.Anything).Return(nil)

	result, err := s.service.RevalueMonetaryAccounts(s.ctx, s.params(false))

	s.Require().NoError(err)
	s.Empty(result.Lines)
	s.mockFxRateRepo.AssertNotCalled(s.T(), "FindRate")
}

func (s *RevalServiceTestSuite) TestReval_RunDefaultsToSystemActor() {
	s.allowPeriod()
	s.stubBalances(nil)

	var savedRun domain.FxRevalRun
	s.mockRevalRepo.On("SaveRun", s.ctx, mock.Anything).
		Run(func(args mock.Arguments) {
			savedRun = args.Get(1).(domain.FxRevalRun)
		}).
		Return(nil)

	_, err := s.service.RevalueMonetaryAccounts(s.ctx, s.params(false))

	s.Require().NoError(err)
	s.Equal("system", savedRun.CreatedBy)
}

func (s *RevalServiceTestSuite) TestReval_LockCarriesRunAndTuple() {
	s.allowPeriod()
	s.stubBalances([]domain.MonetaryBalance{
		{AccountCode: "1105", CurrencyCode: "USD",
			SourceBalance: decimal.RequireFromString("250.00"),
			BaseBalance:   decimal.RequireFromString("1000.00")},
	})
	s.stubRate("USD", "4.08")
	s.mockRevalRepo.On("SaveRun", s.ctx, mock.Anything).Return(nil)
	s.mockRevalRepo.On("SaveLines", s.ctx, mock.Anything).Return(nil)

	var savedLock domain.FxRevalLock
	s.mockRevalRepo.On("AcquireLock", s.ctx, mock.Anything).
		Run(func(args mock.Arguments) {
			savedLock = args.Get(1).(domain.FxRevalLock)
		}).
		Return(true, nil)
	s.stubAccounts("1105")
	s.mockJournalRepo.On("SaveJournalWithOutbox", s.ctx, mock.Anything, mock.Anything, mock.Anything).
		Return("JR-3", true, nil)

	_, err := s.service.RevalueMonetaryAccounts(s.ctx, s.params(false))

	s.Require().NoError(err)
	s.Equal(s.companyID, savedLock.CompanyID)
	s.Equal(2025, savedLock.Year)
	s.Equal(1, savedLock.Month)
	s.Equal("1105", savedLock.AccountCode)
	s.Equal("USD", savedLock.CurrencyCode)
	s.NotEmpty(savedLock.RunID)
}

func TestRevalService(t *testing.T) {
	suite.Run(t, new(RevalServiceTestSuite))
}
