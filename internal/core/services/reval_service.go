package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finposting/ledger-core/internal/apperrors"
	"github.com/finposting/ledger-core/internal/core/domain"
	portsrepo "github.com/finposting/ledger-core/internal/core/ports/repositories"
	portssvc "github.com/finposting/ledger-core/internal/core/ports/services"
	"github.com/finposting/ledger-core/internal/dto"
	"github.com/finposting/ledger-core/internal/middleware"
)

// deltaNoiseFloor is the threshold below which a computed adjustment is
// rounding noise and skipped.
var deltaNoiseFloor = decimal.RequireFromString("0.005")

// revalService recomputes monetary-account carrying values at the period-end
// admin rate and posts one aggregated adjustment journal per account.
//
// The old carrying rate is derived as baseBalance/sourceBalance at run time
// rather than stored at posting time; when prior postings mixed several rates
// into one (account, currency) bucket the derived rate is a blend, not any
// single historical rate.
type revalService struct {
	revalRepo   portsrepo.RevalRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
	companyRepo portsrepo.CompanyRepositoryFacade
	fxRateRepo  portsrepo.FxRateRepositoryFacade
	journalRepo portsrepo.JournalRepositoryFacade
	periodSvc   portssvc.PeriodSvcFacade
}

// NewRevalService creates the FX revaluation engine.
func NewRevalService(
	revalRepo portsrepo.RevalRepositoryFacade,
	accountRepo portsrepo.AccountRepositoryFacade,
	companyRepo portsrepo.CompanyRepositoryFacade,
	fxRateRepo portsrepo.FxRateRepositoryFacade,
	journalRepo portsrepo.JournalRepositoryFacade,
	periodSvc portssvc.PeriodSvcFacade,
) portssvc.RevalSvcFacade {
	return &revalService{
		revalRepo:   revalRepo,
		accountRepo: accountRepo,
		companyRepo: companyRepo,
		fxRateRepo:  fxRateRepo,
		journalRepo: journalRepo,
		periodSvc:   periodSvc,
	}
}

var _ portssvc.RevalSvcFacade = (*revalService)(nil)

// monthEnd returns the last day of (year, month) in UTC.
func monthEnd(year, month int) time.Time {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC)
}

// RevalueMonetaryAccounts runs one revaluation batch.
//
// For every (monetary account, foreign currency) balance at month end it
// resolves the admin rate, computes delta = source*newRate - base (2dp) and
// records a line unless |delta| is below the noise floor. A dry run stops
// there. A commit checks the period is open, records one lock row per tuple,
// groups lines by account and posts a two-line adjustment journal against the
// account's unrealized gain/loss pair; accounts with no mapping are skipped,
// not failed. The adjustment journal's idempotency key is what makes a
// commit run-once per (company, period, account), so a retry after a partial
// failure completes the posting instead of losing it.
func (s *revalService) RevalueMonetaryAccounts(ctx context.Context, params dto.RevalParams) (*dto.RevalResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	company, err := s.companyRepo.FindCompanyByID(ctx, params.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve company %s: %w", params.CompanyID, err)
	}
	baseCurrency := company.BaseCurrencyCode
	periodEnd := monthEnd(params.Year, params.Month)

	if !params.DryRun {
		// Adjustments post on the last day of the period, so a commit is
		// subject to the same period guard as any other posting.
		if err := s.periodSvc.AssertOpenPeriod(ctx, params.CompanyID, periodEnd); err != nil {
			return nil, err
		}
	}

	// Balances include everything posted up to, but excluding, the first
	// instant of the next month; posting_date carries a time component.
	cutoff := periodEnd.AddDate(0, 0, 1)
	balances, err := s.revalRepo.FindMonetaryBalances(ctx, params.CompanyID, cutoff, params.Accounts)
	if err != nil {
		return nil, fmt.Errorf("failed to load monetary balances: %w", err)
	}

	mode := domain.RevalCommit
	if params.DryRun {
		mode = domain.RevalDryRun
	}
	createdBy := params.CreatedBy
	if createdBy == "" {
		createdBy = systemActor
	}
	run := domain.FxRevalRun{
		RunID:     uuid.NewString(),
		CompanyID: params.CompanyID,
		Year:      params.Year,
		Month:     params.Month,
		Mode:      mode,
		RunAt:     time.Now().UTC(),
		CreatedBy: createdBy,
	}
	if err := s.revalRepo.SaveRun(ctx, run); err != nil {
		return nil, fmt.Errorf("failed to record revaluation run: %w", err)
	}

	lines := make([]domain.FxRevalLine, 0, len(balances))
	deltaTotal := decimal.Zero
	for _, bal := range balances {
		if bal.CurrencyCode == baseCurrency {
			continue
		}

		rate, err := s.fxRateRepo.FindRate(ctx, params.CompanyID, bal.CurrencyCode, baseCurrency, periodEnd)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %s->%s rate at period end: %w", bal.CurrencyCode, baseCurrency, err)
		}
		newRate := rate.Rate

		// Implied carrying rate; fall back to the new rate when the bucket
		// has no base value to divide.
		oldRate := newRate
		if !bal.BaseBalance.IsZero() && !bal.SourceBalance.IsZero() {
			oldRate = bal.BaseBalance.Div(bal.SourceBalance)
		}

		delta := bal.SourceBalance.Mul(newRate).Sub(bal.BaseBalance).Round(2)
		if delta.Abs().LessThan(deltaNoiseFloor) {
			continue
		}

		lines = append(lines, domain.FxRevalLine{
			LineID:        uuid.NewString(),
			RunID:         run.RunID,
			AccountCode:   bal.AccountCode,
			CurrencyCode:  bal.CurrencyCode,
			OldRate:       oldRate,
			NewRate:       newRate,
			SourceBalance: bal.SourceBalance,
			BaseBalance:   bal.BaseBalance,
			Delta:         delta,
		})
		deltaTotal = deltaTotal.Add(delta)
	}

	if len(lines) > 0 {
		if err := s.revalRepo.SaveLines(ctx, lines); err != nil {
			return nil, fmt.Errorf("failed to record revaluation lines: %w", err)
		}
	}

	result := &dto.RevalResult{RunID: run.RunID, Lines: lines, DeltaTotal: deltaTotal}
	if params.DryRun {
		logger.Info("Revaluation dry run complete",
			slog.String("run_id", run.RunID),
			slog.Int("lines", len(lines)),
			slog.String("delta_total", deltaTotal.String()),
		)
		return result, nil
	}

	// Record one lock row per tuple, attributing the period's adjustment to
	// the first committing run. The lock is not the dedupe guard: a lock left
	// by an earlier commit that failed before posting must not drop the
	// tuple, so posting always proceeds and the adjustment journal's
	// idempotency key replays any journal that already landed.
	for _, line := range lines {
		acquired, err := s.revalRepo.AcquireLock(ctx, domain.FxRevalLock{
			CompanyID:    params.CompanyID,
			Year:         params.Year,
			Month:        params.Month,
			AccountCode:  line.AccountCode,
			CurrencyCode: line.CurrencyCode,
			RunID:        run.RunID,
			LockedAt:     run.RunAt,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to lock %s/%s for period %04d-%02d: %w",
				line.AccountCode, line.CurrencyCode, params.Year, params.Month, err)
		}
		if !acquired {
			logger.Info("Revaluation tuple locked by an earlier commit",
				slog.String("account", line.AccountCode),
				slog.String("currency", line.CurrencyCode),
			)
		}
	}

	journalIDs, err := s.postAdjustments(ctx, company, run, lines)
	if err != nil {
		return nil, err
	}
	result.JournalIDs = journalIDs

	logger.Info("Revaluation committed",
		slog.String("run_id", run.RunID),
		slog.Int("lines", len(lines)),
		slog.Int("journals", len(journalIDs)),
		slog.String("delta_total", deltaTotal.String()),
	)
	return result, nil
}

// postAdjustments groups lines by account and posts one two-line journal per
// account with a non-trivial net delta.
func (s *revalService) postAdjustments(ctx context.Context, company *domain.Company, run domain.FxRevalRun, lines []domain.FxRevalLine) ([]string, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	netByAccount := make(map[string]decimal.Decimal)
	for _, line := range lines {
		netByAccount[line.AccountCode] = netByAccount[line.AccountCode].Add(line.Delta)
	}

	accounts := make([]string, 0, len(netByAccount))
	for account := range netByAccount {
		accounts = append(accounts, account)
	}
	sort.Strings(accounts)
	if len(accounts) == 0 {
		return nil, nil
	}

	accountsByCode, err := s.accountRepo.FindAccountsByCodes(ctx, company.CompanyID, accounts)
	if err != nil {
		return nil, fmt.Errorf("failed to load accounts for adjustment: %w", err)
	}

	postingDate := monthEnd(run.Year, run.Month)
	journalIDs := make([]string, 0, len(accounts))
	for _, accountCode := range accounts {
		net := netByAccount[accountCode]
		if net.Abs().LessThan(deltaNoiseFloor) {
			continue
		}

		account, ok := accountsByCode[accountCode]
		if !ok {
			return nil, fmt.Errorf("account %s vanished during adjustment: %w", accountCode, apperrors.ErrNotFound)
		}
		if account.UnrealizedGainAccount == nil || account.UnrealizedLossAccount == nil {
			// Misconfigured mapping blocks only this account, not the run.
			logger.Warn("No unrealized gain/loss mapping, skipping account",
				slog.String("account", accountCode))
			continue
		}

		journalID, err := s.postOneAdjustment(ctx, company, run, postingDate, account, net)
		if err != nil {
			return nil, err
		}
		journalIDs = append(journalIDs, journalID)
	}
	return journalIDs, nil
}

func (s *revalService) postOneAdjustment(ctx context.Context, company *domain.Company, run domain.FxRevalRun, postingDate time.Time, account domain.Account, net decimal.Decimal) (string, error) {
	now := time.Now().UTC()
	journalID := uuid.NewString()
	periodTag := fmt.Sprintf("%04d-%02d", run.Year, run.Month)
	sourceDocID := fmt.Sprintf("%s:%s", periodTag, account.AccountCode)

	// One adjustment per (company, period, account); retried commits replay.
	key := fmt.Sprintf("FxReval:%s:%s", company.CompanyID, sourceDocID)

	amount := net.Abs()
	var debitAccount, creditAccount string
	if net.IsPositive() {
		debitAccount = account.AccountCode
		creditAccount = *account.UnrealizedGainAccount
	} else {
		debitAccount = *account.UnrealizedLossAccount
		creditAccount = account.AccountCode
	}

	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     systemActor,
		LastUpdatedAt: now,
		LastUpdatedBy: systemActor,
	}

	journal := domain.Journal{
		JournalID:      journalID,
		CompanyID:      company.CompanyID,
		PostingDate:    postingDate,
		CurrencyCode:   company.BaseCurrencyCode,
		BaseCurrency:   company.BaseCurrencyCode,
		FxRate:         decimal.NewFromInt(1),
		SourceDocType:  domain.FxRevalAdjustment,
		SourceDocID:    sourceDocID,
		IdempotencyKey: key,
		AuditFields:    audit,
	}

	makeLine := func(accountCode string, side domain.EntrySide) domain.JournalLine {
		return domain.JournalLine{
			LineID:       uuid.NewString(),
			JournalID:    journalID,
			AccountCode:  accountCode,
			Side:         side,
			Amount:       amount,
			CurrencyCode: company.BaseCurrencyCode,
			BaseAmount:   amount,
			BaseCurrency: company.BaseCurrencyCode,
			AuditFields:  audit,
		}
	}
	lines := []domain.JournalLine{
		makeLine(debitAccount, domain.Debit),
		makeLine(creditAccount, domain.Credit),
	}

	payload, err := json.Marshal(domain.JournalPostedEvent{
		JournalID:      journalID,
		CompanyID:      company.CompanyID,
		SourceDocType:  domain.FxRevalAdjustment,
		SourceDocID:    sourceDocID,
		IdempotencyKey: key,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode adjustment event: %w", err)
	}
	entry := domain.OutboxEntry{
		EntryID:   uuid.NewString(),
		CompanyID: company.CompanyID,
		Topic:     domain.TopicJournalPosted,
		Payload:   payload,
		CreatedAt: now,
	}

	persistedID, _, err := s.journalRepo.SaveJournalWithOutbox(ctx, journal, lines, entry)
	if err != nil {
		return "", fmt.Errorf("failed to post adjustment for account %s: %w", account.AccountCode, err)
	}
	return persistedID, nil
}
