package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/finposting/ledger-core/internal/apperrors"
	"github.com/finposting/ledger-core/internal/core/domain"
	"github.com/finposting/ledger-core/internal/core/services"
	"github.com/stretchr/testify/assert"
)

func TestAssertOpenPeriod_OpenPeriodAllows(t *testing.T) {
	mockRepo := new(MockPeriodRepository)
	svc := services.NewPeriodService(mockRepo)

	date := time.Date(2025, 2, 14, 0, 0, 0, 0, time.UTC)
	mockRepo.On("FindPeriod", context.Background(), "C1", 2025, 2).
		Return(&domain.Period{CompanyID: "C1", Year: 2025, Month: 2, State: domain.PeriodOpen}, nil)

	err := svc.AssertOpenPeriod(context.Background(), "C1", date)

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestAssertOpenPeriod_MissingPeriodAllows(t *testing.T) {
	mockRepo := new(MockPeriodRepository)
	svc := services.NewPeriodService(mockRepo)

	date := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	mockRepo.On("FindPeriod", context.Background(), "C1", 2025, 7).Return(nil, nil)

	err := svc.AssertOpenPeriod(context.Background(), "C1", date)

	assert.NoError(t, err)
}

func TestAssertOpenPeriod_ClosedPeriodRejects(t *testing.T) {
	mockRepo := new(MockPeriodRepository)
	svc := services.NewPeriodService(mockRepo)

	date := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	mockRepo.On("FindPeriod", context.Background(), "C1", 2025, 1).
		Return(&domain.Period{CompanyID: "C1", Year: 2025, Month: 1, State: domain.PeriodClosed}, nil)

	err := svc.AssertOpenPeriod(context.Background(), "C1", date)

	var locked *apperrors.PeriodLockedError
	assert.ErrorAs(t, err, &locked)
	assert.Equal(t, "C1", locked.CompanyID)
	assert.Equal(t, 2025, locked.Year)
	assert.Equal(t, 1, locked.Month)
	assert.Equal(t, domain.PeriodClosed, locked.State)
}

func TestAssertOpenPeriod_PendingCloseRejects(t *testing.T) {
	mockRepo := new(MockPeriodRepository)
	svc := services.NewPeriodService(mockRepo)

	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	mockRepo.On("FindPeriod", context.Background(), "C1", 2025, 3).
		Return(&domain.Period{CompanyID: "C1", Year: 2025, Month: 3, State: domain.PeriodPendingClose}, nil)

	err := svc.AssertOpenPeriod(context.Background(), "C1", date)

	var locked *apperrors.PeriodLockedError
	assert.ErrorAs(t, err, &locked)
	assert.Equal(t, domain.PeriodPendingClose, locked.State)
}

func TestAssertOpenPeriod_RepoErrorPropagates(t *testing.T) {
	mockRepo := new(MockPeriodRepository)
	svc := services.NewPeriodService(mockRepo)

	date := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	repoErr := errors.New("connection refused")
	mockRepo.On("FindPeriod", context.Background(), "C1", 2025, 4).Return(nil, repoErr)

	err := svc.AssertOpenPeriod(context.Background(), "C1", date)

	assert.ErrorIs(t, err, repoErr)
}
