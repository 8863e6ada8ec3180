package handlers

import (
	"net/http"

	portssvc "github.com/coopsoc/backoffice_app/internal/core/ports/services"
	"github.com/coopsoc/backoffice_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// interestHandler triggers the accrual batch over HTTP. The cron scheduler
// calls the same service directly.
type interestHandler struct {
	interestService portssvc.InterestSvc
}

// registerInterestRoutes registers routes related to interest accrual.
func registerInterestRoutes(rg *gin.RouterGroup, interestService portssvc.InterestSvc) {
	h := &interestHandler{interestService: interestService}

	interest := rg.Group("/interest")
	interest.POST("/apply-monthly-interest", middleware.RequirePermission(middleware.ActionInterestRun), h.applyMonthlyInterest)
}

func (h *interestHandler) applyMonthlyInterest(c *gin.Context) {
	// Optional period override ("YYYY-MM"); defaults to the current month.
	period := c.Query("period")

	result, err := h.interestService.ApplyMonthlyInterest(c.Request.Context(), period)
	if err != nil {
		respondAppError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "Interest accrual completed", result)
}
