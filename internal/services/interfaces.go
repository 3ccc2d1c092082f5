package services

import (
	"github.com/Column-org/Column-backend/internal/config"
	"github.com/Column-org/Column-backend/internal/models"
)

// ChainClientInterface is the per-network chain client surface. The
// concrete implementation wraps the Move SDK; tests substitute mocks.
type ChainClientInterface interface {
	// BuildEntryFunction builds an unsigned entry-function transaction
	// and returns the hex signing message and BCS-serialized raw txn.
	BuildEntryFunction(sender, function string, typeArgs []string, args []any) (hashHex string, rawTxnHex string, err error)

	// SubmitSigned reassembles an authenticator from key and signature,
	// submits the transaction and waits for terminal execution.
	SubmitSigned(rawTxnHex, publicKeyHex, signatureHex string) (*models.SubmitResult, error)

	// NativeBalance returns the native coin balance in base units
	NativeBalance(address string) (uint64, error)

	// AccountInfo returns the chain's account metadata unmodified
	AccountInfo(address string) (map[string]any, error)

	// View invokes a read-only view function. function is fully
	// qualified as address::module::name.
	View(function string, typeArgs []string, args []models.ViewArg) ([]any, error)

	// RecentModuleEvents returns events from recent transactions of the
	// given module account, newest first, bounded by limit.
	RecentModuleEvents(moduleAddress string, limit uint64) ([]models.ChainEvent, error)

	// Healthy checks whether the node endpoint is responsive
	Healthy() error
}

// ClientProviderInterface hands out one cached client per network
type ClientProviderInterface interface {
	Get(id config.NetworkID) (ChainClientInterface, error)
}

// TransactionServiceInterface defines transaction build/submit operations
type TransactionServiceInterface interface {
	GenerateHash(req *models.GenerateHashRequest) (*models.GenerateHashResponse, error)
	Submit(req *models.SubmitTransactionRequest) (*models.SubmitTransactionResponse, error)
}

// AccountServiceInterface defines read-only account queries
type AccountServiceInterface interface {
	NativeBalance(network, address string) (*models.BalanceResponse, error)
	FABalance(network, owner, asset string) (*models.FABalanceResponse, error)
	AccountInfo(network, address string) (map[string]any, error)
}

// FaucetServiceInterface forwards funding requests to a network faucet
type FaucetServiceInterface interface {
	Fund(network, address string, amount uint64) (any, error)
}

// TransferServiceInterface resolves transfer codes to transfer metadata
type TransferServiceInterface interface {
	Lookup(network, code string) (*models.TransferRecord, *models.WrongNetworkResponse, error)
}

// EmailServiceInterface relays transactional email
type EmailServiceInterface interface {
	Send(req *models.SendEmailRequest) (*models.SendEmailResponse, error)
}
