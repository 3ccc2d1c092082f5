package services

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/Column-org/Column-backend/internal/config"
	"github.com/Column-org/Column-backend/internal/models"
	"github.com/Column-org/Column-backend/pkg/logger"

	"go.uber.org/zap"
)

// TransactionService builds unsigned transactions for client-side
// signing and submits signed ones
type TransactionService struct {
	clients  ClientProviderInterface
	networks config.NetworksConfig
}

// NewTransactionService creates a new TransactionService instance
func NewTransactionService(clients ClientProviderInterface, networks config.NetworksConfig) *TransactionService {
	return &TransactionService{
		clients:  clients,
		networks: networks,
	}
}

// GenerateHash builds the unsigned transaction and returns the signing
// hash plus the serialized transaction blob
func (s *TransactionService) GenerateHash(req *models.GenerateHashRequest) (*models.GenerateHashResponse, error) {
	network := s.networks.Resolve(req.Network)

	client, err := s.clients.Get(network)
	if err != nil {
		return nil, models.NewUpstreamError(models.ErrorCodeRPCUnavailable, "Failed to generate transaction hash", err)
	}

	hash, rawTxnHex, err := client.BuildEntryFunction(req.Sender, req.Function, req.TypeArguments, req.FunctionArguments)
	if err != nil {
		return nil, models.NewUpstreamError(models.ErrorCodeRPCUnavailable, "Failed to generate transaction hash", err)
	}

	logger.GetLogger().Info("Generated transaction hash",
		zap.String("network", string(network)),
		zap.String("function", req.Function),
	)

	return &models.GenerateHashResponse{
		Success:   true,
		Hash:      hash,
		RawTxnHex: rawTxnHex,
	}, nil
}

// Submit reconstructs an authenticator from the supplied public key and
// signature, submits the transaction and waits for execution. The
// response echoes the chain's own execution outcome.
func (s *TransactionService) Submit(req *models.SubmitTransactionRequest) (*models.SubmitTransactionResponse, error) {
	publicKey, err := NormalizePublicKey(req.PublicKey)
	if err != nil {
		// Malformed key is caller input, handled inside the same error
		// boundary as everything else.
		return nil, models.NewAppErrorWithCause(models.ErrorCodeInvalidKey, "Invalid public key format", err)
	}

	network := s.networks.Resolve(req.Network)

	client, err := s.clients.Get(network)
	if err != nil {
		return nil, models.NewUpstreamError(models.ErrorCodeRPCUnavailable, "Failed to submit transaction", err)
	}

	result, err := client.SubmitSigned(req.RawTxnHex, publicKey, req.Signature)
	if err != nil {
		return nil, models.NewUpstreamError(models.ErrorCodeRPCUnavailable, "Failed to submit transaction", err)
	}

	logger.GetLogger().Info("Transaction submitted",
		zap.String("network", string(network)),
		zap.String("hash", result.Hash),
		zap.Bool("success", result.Success),
		zap.String("vm_status", result.VMStatus),
	)

	return &models.SubmitTransactionResponse{
		Success:         result.Success,
		TransactionHash: result.Hash,
		VMStatus:        result.VMStatus,
	}, nil
}

// NormalizePublicKey reduces the accepted public key encodings to a bare
// 64-character hex string: an optional 0x prefix is stripped, and a
// spurious leading 00 scheme byte emitted by some key sources is dropped
// when the remainder is 66 characters.
func NormalizePublicKey(input string) (string, error) {
	key := strings.TrimPrefix(input, "0x")

	if len(key) == 66 && strings.HasPrefix(key, "00") {
		key = key[2:]
	}

	if len(key) != 64 {
		return "", fmt.Errorf("public key must be 32 bytes, got %d hex characters", len(key))
	}

	if _, err := hex.DecodeString(key); err != nil {
		return "", fmt.Errorf("public key is not valid hex: %w", err)
	}

	return key, nil
}
