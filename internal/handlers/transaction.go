package handlers

import (
	"net/http"

	"github.com/Column-org/Column-backend/internal/models"
	"github.com/Column-org/Column-backend/internal/services"
	"github.com/Column-org/Column-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// TransactionHandler handles transaction build and submission requests
type TransactionHandler struct {
	txService services.TransactionServiceInterface
}

// NewTransactionHandler creates a new TransactionHandler instance
func NewTransactionHandler(txService services.TransactionServiceInterface) *TransactionHandler {
	return &TransactionHandler{
		txService: txService,
	}
}

// GenerateHash handles POST /generate-hash requests
func (h *TransactionHandler) GenerateHash(c *gin.Context) {
	log := logger.GetLogger().WithContext(c.Request.Context())

	var req models.GenerateHashRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		models.HandleError(c, models.NewAppErrorWithCause(models.ErrorCodeMalformedJSON, "Invalid JSON body", err), log)
		return
	}

	// All three are mandatory; functionArguments must be present as an
	// array even when empty.
	switch {
	case req.Sender == "":
		models.HandleError(c, models.NewValidationError("sender is required"), log)
		return
	case req.Function == "":
		models.HandleError(c, models.NewValidationError("function is required"), log)
		return
	case req.FunctionArguments == nil:
		models.HandleError(c, models.NewValidationError("functionArguments must be an array"), log)
		return
	}

	resp, err := h.txService.GenerateHash(&req)
	if err != nil {
		models.HandleError(c, err, log)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// SubmitTransaction handles POST /submit-transaction requests
func (h *TransactionHandler) SubmitTransaction(c *gin.Context) {
	log := logger.GetLogger().WithContext(c.Request.Context())

	var req models.SubmitTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		models.HandleError(c, models.NewAppErrorWithCause(models.ErrorCodeMalformedJSON, "Invalid JSON body", err), log)
		return
	}

	switch {
	case req.RawTxnHex == "":
		models.HandleError(c, models.NewValidationError("rawTxnHex is required"), log)
		return
	case req.PublicKey == "":
		models.HandleError(c, models.NewValidationError("publicKey is required"), log)
		return
	case req.Signature == "":
		models.HandleError(c, models.NewValidationError("signature is required"), log)
		return
	}

	resp, err := h.txService.Submit(&req)
	if err != nil {
		models.HandleError(c, err, log)
		return
	}

	c.JSON(http.StatusOK, resp)
}
