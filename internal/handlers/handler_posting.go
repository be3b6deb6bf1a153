package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/finposting/ledger-core/internal/apperrors"
	portssvc "github.com/finposting/ledger-core/internal/core/ports/services"
	"github.com/finposting/ledger-core/internal/dto"
	"github.com/finposting/ledger-core/internal/middleware"
	"github.com/gin-gonic/gin"
)

// postingHandler handles HTTP requests for rule-driven posting and reversal.
type postingHandler struct {
	postingSvc portssvc.PostingSvcFacade
}

func newPostingHandler(postingSvc portssvc.PostingSvcFacade) *postingHandler {
	return &postingHandler{postingSvc: postingSvc}
}

// postByRule posts one business document through its rule. A replayed key
// answers 200 with the prior journal id; a fresh posting answers 201.
func (h *postingHandler) postByRule(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")

	var req dto.PostByRuleHTTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind posting request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	result, err := h.postingSvc.PostByRule(c.Request.Context(), req.ToServiceRequest(companyID))
	if err != nil {
		respondPostingError(c, logger, err)
		return
	}

	status := http.StatusCreated
	if result.Replayed {
		status = http.StatusOK
	}
	c.JSON(status, result)
}

// reverseJournal posts the mirror of an existing journal.
func (h *postingHandler) reverseJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")
	journalID := c.Param("journalID")

	var req dto.ReverseJournalHTTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	postingDate, err := time.Parse("2006-01-02", req.PostingDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "postingDate must be YYYY-MM-DD"})
		return
	}

	result, err := h.postingSvc.ReverseJournal(c.Request.Context(), companyID, journalID, postingDate)
	if err != nil {
		respondPostingError(c, logger, err)
		return
	}

	status := http.StatusCreated
	if result.Replayed {
		status = http.StatusOK
	}
	c.JSON(status, result)
}

// linkJournal attaches the settling journal to an existing one.
func (h *postingHandler) linkJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")
	journalID := c.Param("journalID")

	var req dto.LinkJournalHTTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	err := h.postingSvc.LinkJournal(c.Request.Context(), companyID, journalID, req.LinkedJournalID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Journal not found"})
			return
		}
		logger.Error("Failed to link journals", slog.String("error", err.Error()), slog.String("journal_id", journalID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to link journals"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"journalID": journalID, "linkedJournalID": req.LinkedJournalID})
}

// getJournal retrieves a journal with its lines.
func (h *postingHandler) getJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")
	journalID := c.Param("journalID")

	journal, err := h.postingSvc.GetJournal(c.Request.Context(), companyID, journalID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Journal not found"})
			return
		}
		logger.Error("Failed to get journal", slog.String("error", err.Error()), slog.String("journal_id", journalID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve journal"})
		return
	}
	c.JSON(http.StatusOK, journal)
}

// respondPostingError maps core error taxonomy onto HTTP statuses. Period
// locks answer 423 so callers can present them apart from plain validation.
func respondPostingError(c *gin.Context, logger *slog.Logger, err error) {
	var locked *apperrors.PeriodLockedError
	switch {
	case errors.As(err, &locked):
		c.JSON(http.StatusLocked, gin.H{"error": locked.Error(), "state": string(locked.State)})
	case errors.Is(err, apperrors.ErrRuleNotFound),
		errors.Is(err, apperrors.ErrMissingAmountField),
		errors.Is(err, apperrors.ErrDimensionNotFound),
		errors.Is(err, apperrors.ErrDimensionRequired),
		errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Journal not found"})
	default:
		logger.Error("Posting failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Posting failed"})
	}
}
