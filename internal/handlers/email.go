package handlers

import (
	"net/http"
	"strings"

	"github.com/Column-org/Column-backend/internal/models"
	"github.com/Column-org/Column-backend/internal/services"
	"github.com/Column-org/Column-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// EmailHandler handles email relay requests
type EmailHandler struct {
	emailService services.EmailServiceInterface
}

// NewEmailHandler creates a new EmailHandler instance
func NewEmailHandler(emailService services.EmailServiceInterface) *EmailHandler {
	return &EmailHandler{
		emailService: emailService,
	}
}

// SendEmail handles POST /api/send-email requests. The per-IP quota is
// enforced by the rate-limit middleware ahead of this handler.
func (h *EmailHandler) SendEmail(c *gin.Context) {
	log := logger.GetLogger().WithContext(c.Request.Context())

	var req models.SendEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		models.HandleError(c, models.NewAppErrorWithCause(models.ErrorCodeMalformedJSON, "Invalid JSON body", err), log)
		return
	}

	if req.To == "" || !strings.Contains(req.To, "@") {
		models.HandleError(c, models.NewValidationError("to must be a valid email address"), log)
		return
	}

	resp, err := h.emailService.Send(&req)
	if err != nil {
		models.HandleError(c, err, log)
		return
	}

	c.JSON(http.StatusOK, resp)
}
