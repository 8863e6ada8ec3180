package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/coopsoc/backoffice_app/internal/core/domain"
	portssvc "github.com/coopsoc/backoffice_app/internal/core/ports/services"
	"github.com/coopsoc/backoffice_app/internal/dto"
	"github.com/coopsoc/backoffice_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ledgerHandler handles HTTP requests related to the office ledger.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvc
}

// registerLedgerRoutes registers routes related to the ledger.
func registerLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvc) {
	h := &ledgerHandler{ledgerService: ledgerService}

	ledger := rg.Group("/ledger")
	{
		ledger.POST("", middleware.RequirePermission(middleware.ActionLedgerWrite), h.upsertEntry)
		ledger.GET("", middleware.RequirePermission(middleware.ActionLedgerRead), h.listEntries)
		ledger.GET("/summary", middleware.RequirePermission(middleware.ActionLedgerRead), h.summarize)
		ledger.GET("/:id", middleware.RequirePermission(middleware.ActionLedgerRead), h.getEntry)
		ledger.DELETE("/:id", middleware.RequirePermission(middleware.ActionLedgerWrite), h.deleteEntry)
	}
}

func (h *ledgerHandler) upsertEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpsertLedgerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind ledger request", slog.String("error", err.Error()))
		respondError(c, http.StatusBadRequest, "Invalid request format: "+err.Error())
		return
	}

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	entry, err := h.ledgerService.UpsertEntry(c.Request.Context(), req, actor)
	if err != nil {
		respondAppError(c, err)
		return
	}

	status := http.StatusCreated
	message := "Ledger entry created"
	if req.LedgerID != "" {
		status = http.StatusOK
		message = "Ledger entry updated"
	}
	respondOK(c, status, message, dto.ToLedgerEntryResponse(entry))
}

func (h *ledgerHandler) getEntry(c *gin.Context) {
	entry, err := h.ledgerService.GetEntryByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondAppError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Ledger entry retrieved", dto.ToLedgerEntryResponse(entry))
}

func (h *ledgerHandler) listEntries(c *gin.Context) {
	filter := ledgerFilter(c)
	entries, err := h.ledgerService.ListEntries(c.Request.Context(), filter)
	if err != nil {
		respondAppError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Ledger entries retrieved", dto.ToLedgerEntryResponses(entries))
}

func (h *ledgerHandler) summarize(c *gin.Context) {
	filter := ledgerFilter(c)
	summary, err := h.ledgerService.Summarize(c.Request.Context(), filter)
	if err != nil {
		respondAppError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Ledger summary computed", summary)
}

func (h *ledgerHandler) deleteEntry(c *gin.Context) {
	if err := h.ledgerService.DeleteEntry(c.Request.Context(), c.Param("id")); err != nil {
		respondAppError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Ledger entry deleted", nil)
}

// ledgerFilter builds the query filter from request params.
func ledgerFilter(c *gin.Context) domain.LedgerFilter {
	limit, offset := paging(c)
	filter := domain.LedgerFilter{
		AccountID: c.Query("accountID"),
		Type:      domain.EntryType(c.Query("type")),
		Limit:     limit,
		Offset:    offset,
	}
	if raw := c.Query("from"); raw != "" {
		if t, err := time.Parse("2006-01-02", raw); err == nil {
			filter.From = &t
		}
	}
	if raw := c.Query("to"); raw != "" {
		if t, err := time.Parse("2006-01-02", raw); err == nil {
			// The filter's upper bound is exclusive; advance to the next
			// midnight so entries later the same day are included.
			end := t.AddDate(0, 0, 1)
			filter.To = &end
		}
	}
	return filter
}
