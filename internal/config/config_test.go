package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNetworksResolve(t *testing.T) {
	cfg := LoadConfig()

	tests := []struct {
		input string
		want  NetworkID
	}{
		{"mainnet", NetworkMainnet},
		{"testnet", NetworkTestnet},
		{"", NetworkTestnet},
		{"devnet", NetworkTestnet},
		{"MAINNET", NetworkTestnet},
		{"garbage", NetworkTestnet},
	}

	for _, tt := range tests {
		t.Run("input_"+tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, cfg.Networks.Resolve(tt.input))
		})
	}
}

func TestNetworksAlternate(t *testing.T) {
	cfg := LoadConfig()

	assert.Equal(t, NetworkTestnet, cfg.Networks.Alternate(NetworkMainnet))
	assert.Equal(t, NetworkMainnet, cfg.Networks.Alternate(NetworkTestnet))
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg := LoadConfig()

	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, NetworkTestnet, cfg.Networks.Default)

	testnet := cfg.Networks.Config(NetworkTestnet)
	require.NotEmpty(t, testnet.NodeURL)
	assert.NotEmpty(t, testnet.FaucetURL)

	mainnet := cfg.Networks.Config(NetworkMainnet)
	require.NotEmpty(t, mainnet.NodeURL)
	assert.Empty(t, mainnet.FaucetURL, "mainnet must have no faucet")

	assert.Equal(t, 12, cfg.RateLimit.RequestsPerWindow)
	assert.Equal(t, 24*time.Hour, cfg.RateLimit.WindowSize)
	assert.Equal(t, 30*time.Second, cfg.Transfer.LookupTimeout)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("DEFAULT_NETWORK", "mainnet")
	t.Setenv("EMAIL_RATE_LIMIT", "3")
	t.Setenv("TRANSFER_LOOKUP_TIMEOUT", "5s")

	cfg := LoadConfig()

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, NetworkMainnet, cfg.Networks.Default)
	assert.Equal(t, 3, cfg.RateLimit.RequestsPerWindow)
	assert.Equal(t, 5*time.Second, cfg.Transfer.LookupTimeout)
}

func TestLogOutputPathsSplitOnCommas(t *testing.T) {
	t.Setenv("LOG_OUTPUT_PATHS", "stdout,./app.log")

	cfg := LoadConfig()

	assert.Equal(t, []string{"stdout", "./app.log"}, cfg.Logging.OutputPaths)
}

func TestLogOutputPathsSingleValue(t *testing.T) {
	t.Setenv("LOG_OUTPUT_PATHS", "stderr")

	cfg := LoadConfig()

	assert.Equal(t, []string{"stderr"}, cfg.Logging.OutputPaths)
}

func TestTransferFullEventType(t *testing.T) {
	transfer := TransferConfig{
		ModuleAddress: "0xabc",
		ModuleName:    "transfer",
		CreationEvent: "TransferCreatedEvent",
	}

	assert.Equal(t, "0xabc::transfer::TransferCreatedEvent", transfer.FullEventType())
}

func TestLoggingIsProduction(t *testing.T) {
	assert.True(t, LoggingConfig{Environment: "production"}.IsProduction())
	assert.False(t, LoggingConfig{Environment: "development"}.IsProduction())
	assert.False(t, LoggingConfig{}.IsProduction())
}
