package services

import (
	"errors"
	"net/http"
	"testing"

	"github.com/Column-org/Column-backend/internal/config"
	"github.com/Column-org/Column-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPublicKey = "a1b2c3d4e5f6a7b8c9d0e1f2a3b4c5d6e7f8a9b0c1d2e3f4a5b6c7d8e9f0a1b2"

func TestNormalizePublicKey(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"bare 64 hex", testPublicKey},
		{"0x prefixed", "0x" + testPublicKey},
		{"scheme byte prefixed", "00" + testPublicKey},
		{"0x and scheme byte", "0x00" + testPublicKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizePublicKey(tt.input)
			require.NoError(t, err)
			assert.Equal(t, testPublicKey, got)
		})
	}
}

func TestNormalizePublicKey_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"too short", "abcdef"},
		{"too long", testPublicKey + "aa"},
		{"66 chars without scheme byte", "ab" + testPublicKey},
		{"not hex", "zz" + testPublicKey[2:]},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NormalizePublicKey(tt.input)
			assert.Error(t, err)
		})
	}
}

func TestTransactionService_GenerateHash(t *testing.T) {
	client := NewMockChainClient()
	client.SetBuildResult("0xhash", "0xdeadbeef", nil)

	provider := NewMockClientProvider()
	provider.SetClient(config.NetworkTestnet, client)

	service := NewTransactionService(provider, testNetworks())

	resp, err := service.GenerateHash(&models.GenerateHashRequest{
		Sender:            "0x1",
		Function:          "0x1::coin::transfer",
		FunctionArguments: []any{"0x2", "100"},
		Network:           "testnet",
	})

	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "0xhash", resp.Hash)
	assert.Equal(t, "0xdeadbeef", resp.RawTxnHex)
	assert.Equal(t, 1, client.Calls("BuildEntryFunction"))
}

func TestTransactionService_GenerateHash_UnknownNetworkUsesDefault(t *testing.T) {
	client := NewMockChainClient()
	client.SetBuildResult("0xhash", "0xraw", nil)

	// Only the default network has a client; an unrecognized network
	// string must resolve there rather than fail.
	provider := NewMockClientProvider()
	provider.SetClient(config.NetworkTestnet, client)

	service := NewTransactionService(provider, testNetworks())

	resp, err := service.GenerateHash(&models.GenerateHashRequest{
		Sender:            "0x1",
		Function:          "0x1::coin::transfer",
		FunctionArguments: []any{},
		Network:           "devnet",
	})

	require.NoError(t, err)
	assert.Equal(t, "0xhash", resp.Hash)
}

func TestTransactionService_Submit(t *testing.T) {
	client := NewMockChainClient()
	client.SetSubmitResult(&models.SubmitResult{
		Hash:     "0xtxn",
		Success:  true,
		VMStatus: "Executed successfully",
	}, nil)

	provider := NewMockClientProvider()
	provider.SetClient(config.NetworkTestnet, client)

	service := NewTransactionService(provider, testNetworks())

	resp, err := service.Submit(&models.SubmitTransactionRequest{
		RawTxnHex: "0xdeadbeef",
		PublicKey: "0x" + testPublicKey,
		Signature: "0xsig",
		Network:   "testnet",
	})

	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "0xtxn", resp.TransactionHash)
	assert.Equal(t, "Executed successfully", resp.VMStatus)
}

func TestTransactionService_Submit_MalformedKeyIsBadRequest(t *testing.T) {
	client := NewMockChainClient()
	provider := NewMockClientProvider()
	provider.SetClient(config.NetworkTestnet, client)

	service := NewTransactionService(provider, testNetworks())

	_, err := service.Submit(&models.SubmitTransactionRequest{
		RawTxnHex: "0xdeadbeef",
		PublicKey: "not-a-key",
		Signature: "0xsig",
		Network:   "testnet",
	})

	require.Error(t, err)

	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.ErrorCodeInvalidKey, appErr.Code)
	assert.Equal(t, http.StatusBadRequest, appErr.StatusCode)

	// The request must be rejected before touching the chain
	assert.Equal(t, 0, client.Calls("SubmitSigned"))
	assert.Equal(t, 0, provider.Gets())
}

func TestTransactionService_Submit_ExecutionFailureIsNotAnError(t *testing.T) {
	client := NewMockChainClient()
	client.SetSubmitResult(&models.SubmitResult{
		Hash:     "0xtxn",
		Success:  false,
		VMStatus: "Move abort: insufficient balance",
	}, nil)

	provider := NewMockClientProvider()
	provider.SetClient(config.NetworkTestnet, client)

	service := NewTransactionService(provider, testNetworks())

	resp, err := service.Submit(&models.SubmitTransactionRequest{
		RawTxnHex: "0xdeadbeef",
		PublicKey: testPublicKey,
		Signature: "0xsig",
	})

	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, "Move abort: insufficient balance", resp.VMStatus)
}
