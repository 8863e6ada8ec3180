package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/coopsoc/backoffice_app/internal/core/ports/services"
	"github.com/coopsoc/backoffice_app/internal/dto"
	"github.com/coopsoc/backoffice_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// transactionHandler handles HTTP requests related to member transactions.
type transactionHandler struct {
	transactionService portssvc.TransactionSvc
}

// registerTransactionRoutes registers routes related to transactions.
func registerTransactionRoutes(rg *gin.RouterGroup, transactionService portssvc.TransactionSvc) {
	h := &transactionHandler{transactionService: transactionService}

	transactions := rg.Group("/transactions")
	{
		transactions.POST("", middleware.RequirePermission(middleware.ActionTransactionsWrite), h.recordTransaction)
		transactions.GET("", middleware.RequirePermission(middleware.ActionTransactionsRead), h.listTransactions)
		transactions.PUT("/:id", middleware.RequirePermission(middleware.ActionTransactionsWrite), h.updateTransaction)
		transactions.DELETE("/:id", middleware.RequirePermission(middleware.ActionTransactionsWrite), h.deleteTransaction)
	}
}

func (h *transactionHandler) recordTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind transaction request", slog.String("error", err.Error()))
		respondError(c, http.StatusBadRequest, "Invalid request format: "+err.Error())
		return
	}

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	txn, err := h.transactionService.RecordTransaction(c.Request.Context(), req, actor)
	if err != nil {
		respondAppError(c, err)
		return
	}

	respondOK(c, http.StatusCreated, "Transaction recorded", dto.ToTransactionResponse(txn))
}

func (h *transactionHandler) updateTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind transaction update", slog.String("error", err.Error()))
		respondError(c, http.StatusBadRequest, "Invalid request format: "+err.Error())
		return
	}

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	txn, err := h.transactionService.UpdateTransaction(c.Request.Context(), c.Param("id"), req, actor)
	if err != nil {
		respondAppError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "Transaction updated", dto.ToTransactionResponse(txn))
}

func (h *transactionHandler) deleteTransaction(c *gin.Context) {
	if err := h.transactionService.DeleteTransaction(c.Request.Context(), c.Param("id")); err != nil {
		respondAppError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Transaction deleted", nil)
}

func (h *transactionHandler) listTransactions(c *gin.Context) {
	limit, offset := paging(c)
	txns, err := h.transactionService.ListTransactions(c.Request.Context(), c.Query("accountID"), limit, offset)
	if err != nil {
		respondAppError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Transactions retrieved", dto.ToTransactionResponses(txns))
}
