package handlers

import (
	"net/http"

	"github.com/Column-org/Column-backend/internal/models"
	"github.com/Column-org/Column-backend/internal/services"
	"github.com/Column-org/Column-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// AccountHandler handles read-only account query requests
type AccountHandler struct {
	accountService services.AccountServiceInterface
}

// NewAccountHandler creates a new AccountHandler instance
func NewAccountHandler(accountService services.AccountServiceInterface) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
	}
}

// GetBalance handles GET /balance/:address requests
func (h *AccountHandler) GetBalance(c *gin.Context) {
	log := logger.GetLogger().WithContext(c.Request.Context())

	resp, err := h.accountService.NativeBalance(c.Query("network"), c.Param("address"))
	if err != nil {
		models.HandleError(c, err, log)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetFABalance handles GET /fa-balance/:owner/:asset requests
func (h *AccountHandler) GetFABalance(c *gin.Context) {
	log := logger.GetLogger().WithContext(c.Request.Context())

	resp, err := h.accountService.FABalance(c.Query("network"), c.Param("owner"), c.Param("asset"))
	if err != nil {
		models.HandleError(c, err, log)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetAccountInfo handles GET /account-info/:address requests
func (h *AccountHandler) GetAccountInfo(c *gin.Context) {
	log := logger.GetLogger().WithContext(c.Request.Context())

	info, err := h.accountService.AccountInfo(c.Query("network"), c.Param("address"))
	if err != nil {
		models.HandleError(c, err, log)
		return
	}

	c.JSON(http.StatusOK, info)
}

// GetOwnedObjects handles GET /owned-objects/:address requests.
// Permanent stub: object indexing is not served by this relay.
func (h *AccountHandler) GetOwnedObjects(c *gin.Context) {
	c.JSON(http.StatusOK, models.OwnedObjectsResponse{
		Objects: []any{},
		Note:    "Owned-object indexing is not available through this API",
	})
}
