package handlers

import (
	"github.com/finposting/ledger-core/internal/core/services"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(r *gin.Engine, container *services.Container) {

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	setupAPIV1Routes(r, container)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to the
// company-scoped route registrations
func setupAPIV1Routes(r *gin.Engine, container *services.Container) {
	v1 := r.Group("/api/v1")

	companies := v1.Group("/companies/:companyID")
	registerPostingRoutes(companies, container)
	registerRevalRoutes(companies, container)
	registerPeriodRoutes(companies, container)
}

func registerPostingRoutes(rg *gin.RouterGroup, container *services.Container) {
	h := newPostingHandler(container.Posting)
	rg.POST("/postings", h.postByRule)
	rg.GET("/journals/:journalID", h.getJournal)
	rg.POST("/journals/:journalID/reverse", h.reverseJournal)
	rg.POST("/journals/:journalID/link", h.linkJournal)
}

func registerRevalRoutes(rg *gin.RouterGroup, container *services.Container) {
	h := newRevalHandler(container.Reval)
	rg.POST("/revaluations", h.runRevaluation)
}

func registerPeriodRoutes(rg *gin.RouterGroup, container *services.Container) {
	h := newPeriodHandler(container.Period)
	rg.GET("/periods/check", h.checkPeriod)
}
