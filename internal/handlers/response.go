package handlers

import (
	"errors"
	"net/http"

	"github.com/coopsoc/backoffice_app/internal/apperrors"
	"github.com/gin-gonic/gin"
)

// envelope is the JSON shape of every API response.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func respondOK(c *gin.Context, status int, message string, data any) {
	c.JSON(status, envelope{Success: true, Message: message, Data: data})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, envelope{Success: false, Message: message})
}

// respondAppError maps application errors to HTTP statuses. Insufficient
// funds surfaces the exact shortfall; internal failures keep their message
// out of the response.
func respondAppError(c *gin.Context, err error) {
	var insufficient *apperrors.InsufficientFundsError
	switch {
	case errors.As(err, &insufficient):
		c.JSON(http.StatusBadRequest, envelope{
			Success: false,
			Message: insufficient.Error(),
			Data: gin.H{
				"accountNumber": insufficient.AccountNumber,
				"balance":       insufficient.Balance,
				"requested":     insufficient.Requested,
			},
		})
	case errors.Is(err, apperrors.ErrValidation):
		respondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, apperrors.ErrNotFound):
		respondError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, apperrors.ErrDuplicate):
		respondError(c, http.StatusConflict, err.Error())
	case errors.Is(err, apperrors.ErrForbidden):
		respondError(c, http.StatusForbidden, err.Error())
	default:
		respondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
