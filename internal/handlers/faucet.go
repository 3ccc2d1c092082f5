package handlers

import (
	"net/http"

	"github.com/Column-org/Column-backend/internal/models"
	"github.com/Column-org/Column-backend/internal/services"
	"github.com/Column-org/Column-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// FaucetHandler handles faucet relay requests
type FaucetHandler struct {
	faucetService services.FaucetServiceInterface
}

// NewFaucetHandler creates a new FaucetHandler instance
func NewFaucetHandler(faucetService services.FaucetServiceInterface) *FaucetHandler {
	return &FaucetHandler{
		faucetService: faucetService,
	}
}

// Fund handles POST /faucet requests
func (h *FaucetHandler) Fund(c *gin.Context) {
	log := logger.GetLogger().WithContext(c.Request.Context())

	var req models.FaucetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		models.HandleError(c, models.NewAppErrorWithCause(models.ErrorCodeMalformedJSON, "Invalid JSON body", err), log)
		return
	}

	switch {
	case req.Address == "":
		models.HandleError(c, models.NewValidationError("address is required"), log)
		return
	case req.Amount == 0:
		models.HandleError(c, models.NewValidationError("amount is required"), log)
		return
	}

	upstream, err := h.faucetService.Fund(req.Network, req.Address, req.Amount)
	if err != nil {
		models.HandleError(c, err, log)
		return
	}

	c.JSON(http.StatusOK, upstream)
}
