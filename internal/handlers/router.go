package handlers

import (
	"net/http"

	"github.com/Column-org/Column-backend/internal/services"
	"github.com/Column-org/Column-backend/pkg/ratelimiter"

	"github.com/gin-gonic/gin"
)

// Router wires all route handlers onto a Gin engine
type Router struct {
	transactionHandler *TransactionHandler
	accountHandler     *AccountHandler
	faucetHandler      *FaucetHandler
	transferHandler    *TransferHandler
	emailHandler       *EmailHandler
	healthHandler      *HealthHandler
	emailLimiter       *ratelimiter.RateLimiter
}

// NewRouter creates a Router with handlers for all services
func NewRouter(
	txService services.TransactionServiceInterface,
	accountService services.AccountServiceInterface,
	faucetService services.FaucetServiceInterface,
	transferService services.TransferServiceInterface,
	emailService services.EmailServiceInterface,
	emailLimiter *ratelimiter.RateLimiter,
) *Router {
	return &Router{
		transactionHandler: NewTransactionHandler(txService),
		accountHandler:     NewAccountHandler(accountService),
		faucetHandler:      NewFaucetHandler(faucetService),
		transferHandler:    NewTransferHandler(transferService),
		emailHandler:       NewEmailHandler(emailService),
		healthHandler:      NewHealthHandler(),
		emailLimiter:       emailLimiter,
	}
}

// SetupRoutes configures all API routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	// Transaction endpoints
	engine.POST("/generate-hash", r.transactionHandler.GenerateHash)
	engine.POST("/submit-transaction", r.transactionHandler.SubmitTransaction)

	// Faucet relay
	engine.POST("/faucet", r.faucetHandler.Fund)

	// Account queries
	engine.GET("/balance/:address", r.accountHandler.GetBalance)
	engine.GET("/fa-balance/:owner/:asset", r.accountHandler.GetFABalance)
	engine.GET("/account-info/:address", r.accountHandler.GetAccountInfo)
	engine.GET("/owned-objects/:address", r.accountHandler.GetOwnedObjects)

	// Transfer lookup
	engine.POST("/view-transfer", r.transferHandler.ViewTransfer)

	// Email relay, quota-limited per sender IP
	api := engine.Group("/api")
	api.POST("/send-email", r.emailLimiter.Middleware(), r.emailHandler.SendEmail)

	// Liveness probe
	engine.GET("/test", r.healthHandler.Test)

	// Unknown paths return a structured 404
	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error":  "Not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})
}
