package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	portssvc "github.com/coopsoc/backoffice_app/internal/core/ports/services"
	"github.com/coopsoc/backoffice_app/internal/dto"
	"github.com/coopsoc/backoffice_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// accountHandler handles HTTP requests related to accounts.
type accountHandler struct {
	accountService portssvc.AccountSvc
}

// registerAccountRoutes registers routes related to accounts.
func registerAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvc, importService portssvc.ImportSvc, uploadDir string) {
	h := &accountHandler{accountService: accountService}
	ih := &importHandler{importService: importService, uploadDir: uploadDir}

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", middleware.RequirePermission(middleware.ActionAccountsWrite), h.createAccount)
		accounts.GET("", middleware.RequirePermission(middleware.ActionAccountsRead), h.listAccounts)
		accounts.GET("/generate-account-number", middleware.RequirePermission(middleware.ActionAccountsRead), h.generateAccountNumber)
		accounts.POST("/import", middleware.RequirePermission(middleware.ActionAccountsWrite), ih.importAccounts)
		accounts.GET("/:id", middleware.RequirePermission(middleware.ActionAccountsRead), h.getAccount)
		accounts.DELETE("/:id", middleware.RequirePermission(middleware.ActionAccountsWrite), h.deleteAccount)
	}
}

func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind account request", slog.String("error", err.Error()))
		respondError(c, http.StatusBadRequest, "Invalid request format: "+err.Error())
		return
	}

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	account, err := h.accountService.CreateAccount(c.Request.Context(), req, actor)
	if err != nil {
		respondAppError(c, err)
		return
	}

	respondOK(c, http.StatusCreated, "Account created", dto.ToAccountResponse(account))
}

func (h *accountHandler) getAccount(c *gin.Context) {
	account, err := h.accountService.GetAccountByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondAppError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Account retrieved", dto.ToAccountResponse(account))
}

func (h *accountHandler) listAccounts(c *gin.Context) {
	limit, offset := paging(c)
	accounts, err := h.accountService.ListAccounts(c.Request.Context(), limit, offset)
	if err != nil {
		respondAppError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Accounts retrieved", dto.ToAccountResponses(accounts))
}

func (h *accountHandler) deleteAccount(c *gin.Context) {
	if err := h.accountService.DeleteAccount(c.Request.Context(), c.Param("id")); err != nil {
		respondAppError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Account deleted", nil)
}

func (h *accountHandler) generateAccountNumber(c *gin.Context) {
	number, err := h.accountService.NextAccountNumber(c.Request.Context())
	if err != nil {
		respondAppError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Account number generated", gin.H{"accountNumber": number})
}

// paging reads limit/offset query params with sane defaults.
func paging(c *gin.Context) (int, int) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit <= 0 || limit > 500 {
		limit = 50
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}
	return limit, offset
}
