package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/finposting/ledger-core/internal/apperrors"
	portssvc "github.com/finposting/ledger-core/internal/core/ports/services"
	"github.com/finposting/ledger-core/internal/middleware"
	"github.com/gin-gonic/gin"
)

// periodHandler answers whether a posting date is currently allowed.
type periodHandler struct {
	periodSvc portssvc.PeriodSvcFacade
}

func newPeriodHandler(periodSvc portssvc.PeriodSvcFacade) *periodHandler {
	return &periodHandler{periodSvc: periodSvc}
}

func (h *periodHandler) checkPeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")

	dateStr := c.Query("date")
	if dateStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date query parameter is required"})
		return
	}
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}

	err = h.periodSvc.AssertOpenPeriod(c.Request.Context(), companyID, date)
	if err != nil {
		var locked *apperrors.PeriodLockedError
		if errors.As(err, &locked) {
			c.JSON(http.StatusOK, gin.H{"allowed": false, "state": string(locked.State)})
			return
		}
		logger.Error("Period check failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Period check failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"allowed": true})
}
