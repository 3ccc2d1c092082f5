package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// NetworkID identifies one of the supported chain networks
type NetworkID string

const (
	NetworkMainnet NetworkID = "mainnet"
	NetworkTestnet NetworkID = "testnet"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig    `json:"server"`
	Networks  NetworksConfig  `json:"networks"`
	Transfer  TransferConfig  `json:"transfer"`
	Email     EmailConfig     `json:"email"`
	Cache     CacheConfig     `json:"cache"`
	RateLimit RateLimitConfig `json:"rate_limit"`
	Logging   LoggingConfig   `json:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port         string        `json:"port"`
	Host         string        `json:"host"`
	ReadTimeout  time.Duration `json:"read_timeout"`
	WriteTimeout time.Duration `json:"write_timeout"`
	IdleTimeout  time.Duration `json:"idle_timeout"`
}

// NetworkConfig holds the endpoints for a single chain network.
// FaucetURL is empty for networks without a faucet (mainnet).
type NetworkConfig struct {
	Name      NetworkID     `json:"name"`
	NodeURL   string        `json:"node_url"`
	FaucetURL string        `json:"faucet_url,omitempty"`
	Timeout   time.Duration `json:"timeout"`
}

// NetworksConfig is the static registry of supported networks plus the
// process-wide default applied to unrecognized input.
type NetworksConfig struct {
	Default  NetworkID                   `json:"default"`
	Networks map[NetworkID]NetworkConfig `json:"networks"`
}

// Resolve maps an untrusted network string to a supported NetworkID.
// Anything that is not exactly a supported identifier resolves to the
// configured default. Never fails.
func (n NetworksConfig) Resolve(input string) NetworkID {
	id := NetworkID(input)
	if _, ok := n.Networks[id]; ok {
		return id
	}
	return n.Default
}

// Config returns the network configuration for a resolved identifier.
// Identifiers are always valid post-Resolve, so the lookup is total.
func (n NetworksConfig) Config(id NetworkID) NetworkConfig {
	return n.Networks[id]
}

// Alternate returns the other supported network, used by the
// wrong-network fallback in the transfer lookup.
func (n NetworksConfig) Alternate(id NetworkID) NetworkID {
	if id == NetworkMainnet {
		return NetworkTestnet
	}
	return NetworkMainnet
}

// TransferConfig describes the on-chain transfer module queried by the
// transfer lookup flow.
type TransferConfig struct {
	ModuleAddress     string        `json:"module_address"`
	ModuleName        string        `json:"module_name"`
	ViewFunction      string        `json:"view_function"`
	FAViewFunction    string        `json:"fa_view_function"`
	ClaimableFunction string        `json:"claimable_function"`
	CreationEvent     string        `json:"creation_event"`
	LookupTimeout     time.Duration `json:"lookup_timeout"`
	EventScanLimit    uint64        `json:"event_scan_limit"`
}

// FullEventType returns the fully qualified creation event type for the
// configured transfer module.
func (t TransferConfig) FullEventType() string {
	return t.ModuleAddress + "::" + t.ModuleName + "::" + t.CreationEvent
}

// EmailConfig holds transactional email provider configuration
type EmailConfig struct {
	APIKey      string `json:"-"`
	FromAddress string `json:"from_address"`
	SenderName  string `json:"sender_name"`
}

// CacheConfig holds balance cache configuration
type CacheConfig struct {
	TTL             time.Duration `json:"ttl"`
	CleanupInterval time.Duration `json:"cleanup_interval"`
}

// RateLimitConfig holds email quota configuration
type RateLimitConfig struct {
	RequestsPerWindow int           `json:"requests_per_window"`
	WindowSize        time.Duration `json:"window_size"`
	CleanupInterval   time.Duration `json:"cleanup_interval"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level       string   `json:"level"`
	Environment string   `json:"environment"`
	OutputPaths []string `json:"output_paths"`
}

// IsProduction reports whether the process runs in production mode.
// Error details are suppressed from HTTP responses in production.
func (l LoggingConfig) IsProduction() bool {
	return l.Environment == "production"
}

// LoadConfig loads configuration from environment variables with defaults
func LoadConfig() *Config {
	rpcTimeout := getDurationEnv("RPC_TIMEOUT", 30*time.Second)

	return &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "3000"),
			Host:         getEnv("HOST", "0.0.0.0"),
			ReadTimeout:  getDurationEnv("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout: getDurationEnv("SERVER_WRITE_TIMEOUT", 60*time.Second),
			IdleTimeout:  getDurationEnv("SERVER_IDLE_TIMEOUT", 60*time.Second),
		},
		Networks: NetworksConfig{
			Default: NetworkID(getEnv("DEFAULT_NETWORK", string(NetworkTestnet))),
			Networks: map[NetworkID]NetworkConfig{
				NetworkMainnet: {
					Name:    NetworkMainnet,
					NodeURL: getEnv("MAINNET_RPC_URL", "https://mainnet.movementnetwork.xyz/v1"),
					Timeout: rpcTimeout,
				},
				NetworkTestnet: {
					Name:      NetworkTestnet,
					NodeURL:   getEnv("TESTNET_RPC_URL", "https://testnet.bardock.movementnetwork.xyz/v1"),
					FaucetURL: getEnv("TESTNET_FAUCET_URL", "https://faucet.testnet.bardock.movementnetwork.xyz"),
					Timeout:   rpcTimeout,
				},
			},
		},
		Transfer: TransferConfig{
			ModuleAddress:     getEnv("TRANSFER_MODULE_ADDRESS", "0x4b28d29d9a1724e0eeba1db2c146a7321f806e51b4f1adbd33b56de9ee59cbf0"),
			ModuleName:        getEnv("TRANSFER_MODULE_NAME", "transfer"),
			ViewFunction:      getEnv("TRANSFER_VIEW_FUNCTION", "get_transfer_details"),
			FAViewFunction:    getEnv("TRANSFER_FA_VIEW_FUNCTION", "get_fa_transfer_details"),
			ClaimableFunction: getEnv("TRANSFER_CLAIMABLE_FUNCTION", "is_transfer_claimable"),
			CreationEvent:     getEnv("TRANSFER_CREATION_EVENT", "TransferCreatedEvent"),
			LookupTimeout:     getDurationEnv("TRANSFER_LOOKUP_TIMEOUT", 30*time.Second),
			EventScanLimit:    getUint64Env("TRANSFER_EVENT_SCAN_LIMIT", 100),
		},
		Email: EmailConfig{
			APIKey:      getEnv("RESEND_API_KEY", ""),
			FromAddress: getEnv("DEFAULT_FROM_EMAIL", "no-reply@column.money"),
			SenderName:  getEnv("DEFAULT_SENDER_NAME", "Column"),
		},
		Cache: CacheConfig{
			TTL:             getDurationEnv("CACHE_TTL", 10*time.Second),
			CleanupInterval: getDurationEnv("CACHE_CLEANUP_INTERVAL", 60*time.Second),
		},
		RateLimit: RateLimitConfig{
			RequestsPerWindow: getIntEnv("EMAIL_RATE_LIMIT", 12),
			WindowSize:        getDurationEnv("EMAIL_RATE_WINDOW", 24*time.Hour),
			CleanupInterval:   getDurationEnv("EMAIL_RATE_CLEANUP_INTERVAL", time.Hour),
		},
		Logging: LoggingConfig{
			Level:       getEnv("LOG_LEVEL", "info"),
			Environment: getEnv("APP_ENV", "development"),
			OutputPaths: getStringSliceEnv("LOG_OUTPUT_PATHS", []string{"stdout"}),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getUint64Env(key string, defaultValue uint64) uint64 {
	if value := os.Getenv(key); value != "" {
		if uint64Value, err := strconv.ParseUint(value, 10, 64); err == nil {
			return uint64Value
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getStringSliceEnv(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return defaultValue
}
