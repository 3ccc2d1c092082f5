package handlers

import (
	"net/http"

	"github.com/Column-org/Column-backend/internal/models"
	"github.com/Column-org/Column-backend/internal/services"
	"github.com/Column-org/Column-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// TransferHandler handles transfer code lookups
type TransferHandler struct {
	transferService services.TransferServiceInterface
}

// NewTransferHandler creates a new TransferHandler instance
func NewTransferHandler(transferService services.TransferServiceInterface) *TransferHandler {
	return &TransferHandler{
		transferService: transferService,
	}
}

// ViewTransfer handles POST /view-transfer requests
func (h *TransferHandler) ViewTransfer(c *gin.Context) {
	log := logger.GetLogger().WithContext(c.Request.Context())

	var req models.ViewTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		models.HandleError(c, models.NewAppErrorWithCause(models.ErrorCodeMalformedJSON, "Invalid JSON body", err), log)
		return
	}

	if req.Code == "" {
		models.HandleError(c, models.NewValidationError("code is required"), log)
		return
	}

	record, wrongNetwork, err := h.transferService.Lookup(req.Network, req.Code)
	if err != nil {
		models.HandleError(c, err, log)
		return
	}

	if wrongNetwork != nil {
		c.JSON(http.StatusOK, wrongNetwork)
		return
	}

	c.JSON(http.StatusOK, record)
}
