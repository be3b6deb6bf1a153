package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/finposting/ledger-core/internal/apperrors"
	"github.com/finposting/ledger-core/internal/core/domain"
	portsrepo "github.com/finposting/ledger-core/internal/core/ports/repositories"
	portssvc "github.com/finposting/ledger-core/internal/core/ports/services"
	"github.com/finposting/ledger-core/internal/core/rules"
	"github.com/finposting/ledger-core/internal/dto"
	"github.com/finposting/ledger-core/internal/middleware"
)

var (
	// ErrJournalUnbalanced guards the balance invariant. Besides documents
	// whose source amounts do not add up, it also rejects documents whose
	// per-line 2dp base rounding drifts the two sides apart; such documents
	// are refused rather than posted with a plug line.
	ErrJournalUnbalanced = errors.New("journal lines do not balance")
)

// systemActor stamps audit fields; the posting core carries no user identity.
const systemActor = "system"

// postingService is the rule engine: it composes a posting rule, a source
// document and the dimension/currency services into a balanced journal, and
// persists it exactly once per idempotency key. It also hosts the reversal
// engine, which reuses the same idempotent store.
type postingService struct {
	registry     *rules.Registry
	journalRepo  portsrepo.JournalRepositoryFacade
	periodSvc    portssvc.PeriodSvcFacade
	dimensionSvc portssvc.DimensionSvcFacade
	currencySvc  portssvc.CurrencySvcFacade
}

// NewPostingService creates the posting core.
func NewPostingService(
	registry *rules.Registry,
	journalRepo portsrepo.JournalRepositoryFacade,
	periodSvc portssvc.PeriodSvcFacade,
	dimensionSvc portssvc.DimensionSvcFacade,
	currencySvc portssvc.CurrencySvcFacade,
) portssvc.PostingSvcFacade {
	return &postingService{
		registry:     registry,
		journalRepo:  journalRepo,
		periodSvc:    periodSvc,
		dimensionSvc: dimensionSvc,
		currencySvc:  currencySvc,
	}
}

var _ portssvc.PostingSvcFacade = (*postingService)(nil)

// buildLines renders the rule's debit templates then its credit templates
// against the document. Line-level dimensions win over document defaults.
func (s *postingService) buildLines(rule rules.PostingRule, journalID string, currency string, doc domain.SourceDocument, now time.Time) ([]domain.JournalLine, error) {
	render := func(tmpl rules.LineTemplate, side domain.EntrySide) (domain.JournalLine, error) {
		amount, ok := doc.AmountAt(tmpl.Amount)
		if !ok {
			return domain.JournalLine{}, fmt.Errorf("%w: %q for account %s", apperrors.ErrMissingAmountField, tmpl.Amount, tmpl.AccountCode)
		}

		line := domain.JournalLine{
			LineID:       uuid.NewString(),
			JournalID:    journalID,
			AccountCode:  tmpl.AccountCode,
			Side:         side,
			Amount:       amount,
			CurrencyCode: currency,
			CostCenterID: tmpl.CostCenterID,
			ProjectID:    tmpl.ProjectID,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     systemActor,
				LastUpdatedAt: now,
				LastUpdatedBy: systemActor,
			},
		}
		if line.CostCenterID == nil {
			line.CostCenterID = doc.CostCenterID
		}
		if line.ProjectID == nil {
			line.ProjectID = doc.ProjectID
		}
		if tmpl.Party != nil {
			if party, ok := doc.PartyAt(*tmpl.Party); ok {
				line.PartyID = &party
			}
		}
		return line, nil
	}

	lines := make([]domain.JournalLine, 0, len(rule.DebitLines)+len(rule.CreditLines))
	for _, tmpl := range rule.DebitLines {
		line, err := render(tmpl, domain.Debit)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	for _, tmpl := range rule.CreditLines {
		line, err := render(tmpl, domain.Credit)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// validateDimensions runs the dimension validator over every line.
func (s *postingService) validateDimensions(ctx context.Context, companyID string, lines []domain.JournalLine) error {
	for _, line := range lines {
		if err := s.dimensionSvc.EnsureDimensionValid(ctx, companyID, line.CostCenterID, domain.CostCenter); err != nil {
			return err
		}
		if err := s.dimensionSvc.EnsureDimensionValid(ctx, companyID, line.ProjectID, domain.Project); err != nil {
			return err
		}
		dims := domain.DimensionRefs{CostCenterID: line.CostCenterID, ProjectID: line.ProjectID}
		if err := s.dimensionSvc.EnsureAccountPolicy(ctx, companyID, line.AccountCode, dims); err != nil {
			return err
		}
	}
	return nil
}

// PostByRule builds and persists a balanced journal for one business
// document. All validation (rule, dimensions, period) fails fast before any
// write; the persist step is a single transaction and the idempotency key
// guarantees at most one journal per logical event.
func (s *postingService) PostByRule(ctx context.Context, req dto.PostByRuleRequest) (*dto.PostingResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	// Pre-condition, runs outside the posting transaction.
	if err := s.periodSvc.AssertOpenPeriod(ctx, req.CompanyID, req.PostingDate); err != nil {
		return nil, err
	}

	rule, err := s.registry.Load(req.DocType)
	if err != nil {
		return nil, err
	}
	key := rule.RenderKey(req.DocID)

	now := time.Now().UTC()
	journalID := uuid.NewString()

	lines, err := s.buildLines(rule, journalID, req.CurrencyCode, req.Document, now)
	if err != nil {
		return nil, err
	}

	if err := s.validateDimensions(ctx, req.CompanyID, lines); err != nil {
		return nil, err
	}

	conv, err := s.currencySvc.ComputeBaseAmounts(ctx, req.CompanyID, req.PostingDate, req.CurrencyCode, lines)
	if err != nil {
		return nil, err
	}
	lines = conv.Lines

	if !domain.DebitBaseTotal(lines).Equal(domain.CreditBaseTotal(lines)) {
		return nil, fmt.Errorf("%w: debits %s, credits %s for key %s",
			ErrJournalUnbalanced, domain.DebitBaseTotal(lines), domain.CreditBaseTotal(lines), key)
	}

	journal := domain.Journal{
		JournalID:      journalID,
		CompanyID:      req.CompanyID,
		PostingDate:    req.PostingDate,
		CurrencyCode:   req.CurrencyCode,
		BaseCurrency:   conv.BaseCurrency,
		FxRate:         conv.RateUsed,
		SourceDocType:  req.DocType,
		SourceDocID:    req.DocID,
		IdempotencyKey: key,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     systemActor,
			LastUpdatedAt: now,
			LastUpdatedBy: systemActor,
		},
	}

	payload, err := json.Marshal(domain.JournalPostedEvent{
		JournalID:      journalID,
		CompanyID:      req.CompanyID,
		SourceDocType:  req.DocType,
		SourceDocID:    req.DocID,
		IdempotencyKey: key,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode journal posted event: %w", err)
	}
	entry := domain.OutboxEntry{
		EntryID:   uuid.NewString(),
		CompanyID: req.CompanyID,
		Topic:     domain.TopicJournalPosted,
		Payload:   payload,
		CreatedAt: now,
	}

	persistedID, created, err := s.journalRepo.SaveJournalWithOutbox(ctx, journal, lines, entry)
	if err != nil {
		logger.Error("Failed to persist journal", slog.String("key", key), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to persist journal for key %s: %w", key, err)
	}

	if !created {
		logger.Info("Posting replayed", slog.String("key", key), slog.String("journal_id", persistedID))
	} else {
		logger.Info("Journal posted", slog.String("key", key), slog.String("journal_id", persistedID))
	}
	return &dto.PostingResult{JournalID: persistedID, Replayed: !created}, nil
}

// reversalKey derives the idempotency key of a reversal, one per
// (original journal, posting date).
func reversalKey(journalID string, postingDate time.Time) string {
	return fmt.Sprintf("Reverse:%s:%s", journalID, postingDate.Format("2006-01-02"))
}

// ReverseJournal posts the mirror of an existing journal: every line keeps
// its account, amounts, currency, party and dimensions, with the side
// flipped. Idempotent per (journalID, postingDate).
func (s *postingService) ReverseJournal(ctx context.Context, companyID string, journalID string, postingDate time.Time) (*dto.ReversalResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	// A reversal creates a journal, so the temporal invariant applies to it.
	if err := s.periodSvc.AssertOpenPeriod(ctx, companyID, postingDate); err != nil {
		return nil, err
	}

	key := reversalKey(journalID, postingDate)

	original, err := s.journalRepo.FindJournalByID(ctx, journalID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Original journal not found for reversal", slog.String("journal_id", journalID))
		}
		return nil, fmt.Errorf("failed to load journal %s for reversal: %w", journalID, err)
	}
	if original.CompanyID != companyID {
		// Obscure existence across tenants.
		return nil, apperrors.ErrNotFound
	}

	originalLines, err := s.journalRepo.FindLinesByJournalID(ctx, journalID)
	if err != nil {
		return nil, fmt.Errorf("failed to load lines of journal %s: %w", journalID, err)
	}

	now := time.Now().UTC()
	reversalID := uuid.NewString()

	reversal := domain.Journal{
		JournalID:         reversalID,
		CompanyID:         companyID,
		PostingDate:       postingDate,
		CurrencyCode:      original.CurrencyCode,
		BaseCurrency:      original.BaseCurrency,
		FxRate:            original.FxRate,
		SourceDocType:     original.SourceDocType,
		SourceDocID:       original.SourceDocID,
		IdempotencyKey:    key,
		IsReversal:        true,
		ReversesJournalID: &original.JournalID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     systemActor,
			LastUpdatedAt: now,
			LastUpdatedBy: systemActor,
		},
	}

	mirrored := make([]domain.JournalLine, len(originalLines))
	for i, line := range originalLines {
		mirrored[i] = domain.JournalLine{
			LineID:       uuid.NewString(),
			JournalID:    reversalID,
			AccountCode:  line.AccountCode,
			Side:         line.Side.Opposite(),
			Amount:       line.Amount,
			CurrencyCode: line.CurrencyCode,
			BaseAmount:   line.BaseAmount,
			BaseCurrency: line.BaseCurrency,
			PartyID:      line.PartyID,
			CostCenterID: line.CostCenterID,
			ProjectID:    line.ProjectID,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     systemActor,
				LastUpdatedAt: now,
				LastUpdatedBy: systemActor,
			},
		}
	}

	payload, err := json.Marshal(domain.JournalReversedEvent{
		ReversalID:        reversalID,
		ReversedJournalID: original.JournalID,
		CompanyID:         companyID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode journal reversed event: %w", err)
	}
	entry := domain.OutboxEntry{
		EntryID:   uuid.NewString(),
		CompanyID: companyID,
		Topic:     domain.TopicJournalReversed,
		Payload:   payload,
		CreatedAt: now,
	}

	persistedID, created, err := s.journalRepo.SaveJournalWithOutbox(ctx, reversal, mirrored, entry)
	if err != nil {
		return nil, fmt.Errorf("failed to persist reversal for key %s: %w", key, err)
	}

	logger.Info("Journal reversal resolved",
		slog.String("original_journal_id", journalID),
		slog.String("reversal_id", persistedID),
		slog.Bool("replayed", !created),
	)
	return &dto.ReversalResult{ReversalID: persistedID, Replayed: !created}, nil
}

// LinkJournal records on journalID the journal that settles it, typically a
// payment against an invoice. Both journals must belong to the company.
func (s *postingService) LinkJournal(ctx context.Context, companyID string, journalID string, linkedJournalID string) error {
	journal, err := s.journalRepo.FindJournalByID(ctx, journalID)
	if err != nil {
		return fmt.Errorf("failed to find journal %s: %w", journalID, err)
	}
	if journal.CompanyID != companyID {
		return apperrors.ErrNotFound
	}

	linked, err := s.journalRepo.FindJournalByID(ctx, linkedJournalID)
	if err != nil {
		return fmt.Errorf("failed to find journal %s: %w", linkedJournalID, err)
	}
	if linked.CompanyID != companyID {
		return apperrors.ErrNotFound
	}

	return s.journalRepo.AttachLinkedJournal(ctx, journalID, linkedJournalID, systemActor, time.Now().UTC())
}

// GetJournal loads a journal with its lines, scoped to the company.
func (s *postingService) GetJournal(ctx context.Context, companyID string, journalID string) (*domain.Journal, error) {
	journal, err := s.journalRepo.FindJournalByID(ctx, journalID)
	if err != nil {
		return nil, fmt.Errorf("failed to find journal %s: %w", journalID, err)
	}
	if journal.CompanyID != companyID {
		return nil, apperrors.ErrNotFound
	}

	lines, err := s.journalRepo.FindLinesByJournalID(ctx, journalID)
	if err != nil {
		return nil, fmt.Errorf("failed to load lines of journal %s: %w", journalID, err)
	}
	journal.Lines = lines
	return journal, nil
}
