package handlers

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	portssvc "github.com/coopsoc/backoffice_app/internal/core/ports/services"
	"github.com/coopsoc/backoffice_app/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// importHandler handles the multipart CSV account import.
type importHandler struct {
	importService portssvc.ImportSvc
	uploadDir     string
}

func (h *importHandler) importAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondError(c, http.StatusBadRequest, "CSV file is required under field 'file'")
		return
	}

	dir := h.uploadDir
	if dir == "" {
		dir = os.TempDir()
	}
	// Spool to disk first so a slow upload never holds a DB connection.
	tmpPath := filepath.Join(dir, "import-"+uuid.NewString()+".csv")
	if err := c.SaveUploadedFile(fileHeader, tmpPath); err != nil {
		logger.Error("Failed to save uploaded CSV", slog.String("error", err.Error()))
		respondError(c, http.StatusInternalServerError, "Failed to store uploaded file")
		return
	}
	// The uploaded artifact is removed regardless of import outcome.
	defer func() {
		if err := os.Remove(tmpPath); err != nil {
			logger.Warn("Failed to remove uploaded CSV", slog.String("path", tmpPath), slog.String("error", err.Error()))
		}
	}()

	file, err := os.Open(tmpPath)
	if err != nil {
		logger.Error("Failed to reopen uploaded CSV", slog.String("error", err.Error()))
		respondError(c, http.StatusInternalServerError, "Failed to read uploaded file")
		return
	}
	defer file.Close()

	result, err := h.importService.ImportAccounts(c.Request.Context(), file, actor)
	if err != nil {
		respondAppError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "Import completed", result)
}
