package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/finposting/ledger-core/internal/apperrors"
	portssvc "github.com/finposting/ledger-core/internal/core/ports/services"
	"github.com/finposting/ledger-core/internal/dto"
	"github.com/finposting/ledger-core/internal/middleware"
	"github.com/gin-gonic/gin"
)

// revalHandler handles HTTP requests for month-end FX revaluation runs.
type revalHandler struct {
	revalSvc portssvc.RevalSvcFacade
}

func newRevalHandler(revalSvc portssvc.RevalSvcFacade) *revalHandler {
	return &revalHandler{revalSvc: revalSvc}
}

func (h *revalHandler) runRevaluation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")

	var req dto.RevalHTTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind revaluation request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	result, err := h.revalSvc.RevalueMonetaryAccounts(c.Request.Context(), req.ToServiceParams(companyID))
	if err != nil {
		var locked *apperrors.PeriodLockedError
		switch {
		case errors.As(err, &locked):
			c.JSON(http.StatusLocked, gin.H{"error": locked.Error(), "state": string(locked.State)})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Revaluation run failed", slog.String("error", err.Error()),
				slog.String("company_id", companyID), slog.Int("year", req.Year), slog.Int("month", req.Month))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Revaluation run failed"})
		}
		return
	}
	c.JSON(http.StatusOK, result)
}
