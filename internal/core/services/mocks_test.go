package services_test

import (
	"context"
	"time"

	"github.com/finposting/ledger-core/internal/core/domain"
	portsrepo "github.com/finposting/ledger-core/internal/core/ports/repositories"
	"github.com/stretchr/testify/mock"
)

// --- Mock JournalRepository ---
type MockJournalRepository struct {
	mock.Mock
}

var _ portsrepo.JournalRepositoryFacade = (*MockJournalRepository)(nil)

func (m *MockJournalRepository) FindJournalIDByKey(ctx context.Context, companyID string, key string) (*string, error) {
	args := m.Called(ctx, companyID, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*string), args.Error(1)
}

func (m *MockJournalRepository) SaveJournalWithOutbox(ctx context.Context, journal domain.Journal, lines []domain.JournalLine, entry domain.OutboxEntry) (string, bool, error) {
	args := m.Called(ctx, journal, lines, entry)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockJournalRepository) FindJournalByID(ctx context.Context, journalID string) (*domain.Journal, error) {
	args := m.Called(ctx, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}

func (m *MockJournalRepository) FindLinesByJournalID(ctx context.Context, journalID string) ([]domain.JournalLine, error) {
	args := m.Called(ctx, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalLine), args.Error(1)
}

func (m *MockJournalRepository) AttachLinkedJournal(ctx context.Context, journalID string, linkedJournalID string, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, journalID, linkedJournalID, updatedBy, updatedAt)
	return args.Error(0)
}

// --- Mock PeriodRepository ---
type MockPeriodRepository struct {
	mock.Mock
}

var _ portsrepo.PeriodRepositoryFacade = (*MockPeriodRepository)(nil)

func (m *MockPeriodRepository) FindPeriod(ctx context.Context, companyID string, year int, month int) (*domain.Period, error) {
	args := m.Called(ctx, companyID, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Period), args.Error(1)
}

// --- Mock DimensionRepository ---
type MockDimensionRepository struct {
	mock.Mock
}

var _ portsrepo.DimensionRepositoryFacade = (*MockDimensionRepository)(nil)

func (m *MockDimensionRepository) FindDimensionByID(ctx context.Context, companyID string, dimensionID string) (*domain.Dimension, error) {
	args := m.Called(ctx, companyID, dimensionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Dimension), args.Error(1)
}

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByCode(ctx context.Context, companyID string, accountCode string) (*domain.Account, error) {
	args := m.Called(ctx, companyID, accountCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByCodes(ctx context.Context, companyID string, accountCodes []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, companyID, accountCodes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

// --- Mock CompanyRepository ---
type MockCompanyRepository struct {
	mock.Mock
}

var _ portsrepo.CompanyRepositoryFacade = (*MockCompanyRepository)(nil)

func (m *MockCompanyRepository) FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Company), args.Error(1)
}

// --- Mock FxRateRepository ---
type MockFxRateRepository struct {
	mock.Mock
}

var _ portsrepo.FxRateRepositoryFacade = (*MockFxRateRepository)(nil)

func (m *MockFxRateRepository) FindRate(ctx context.Context, companyID string, fromCurrency, toCurrency string, asOf time.Time) (*domain.FxRate, error) {
	args := m.Called(ctx, companyID, fromCurrency, toCurrency, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FxRate), args.Error(1)
}

// --- Mock RevalRepository ---
type MockRevalRepository struct {
	mock.Mock
}

var _ portsrepo.RevalRepositoryFacade = (*MockRevalRepository)(nil)

func (m *MockRevalRepository) FindMonetaryBalances(ctx context.Context, companyID string, cutoff time.Time, accountCodes []string) ([]domain.MonetaryBalance, error) {
	args := m.Called(ctx, companyID, cutoff, accountCodes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MonetaryBalance), args.Error(1)
}

func (m *MockRevalRepository) SaveRun(ctx context.Context, run domain.FxRevalRun) error {
	args := m.Called(ctx, run)
	return args.Error(0)
}

func (m *MockRevalRepository) SaveLines(ctx context.Context, lines []domain.FxRevalLine) error {
	args := m.Called(ctx, lines)
	return args.Error(0)
}

func (m *MockRevalRepository) AcquireLock(ctx context.Context, lock domain.FxRevalLock) (bool, error) {
	args := m.Called(ctx, lock)
	return args.Bool(0), args.Error(1)
}
