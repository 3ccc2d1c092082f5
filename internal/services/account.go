package services

import (
	"strconv"
	"time"

	"github.com/Column-org/Column-backend/internal/config"
	"github.com/Column-org/Column-backend/internal/models"
	"github.com/Column-org/Column-backend/pkg/cache"
	"github.com/Column-org/Column-backend/pkg/logger"
	"github.com/Column-org/Column-backend/pkg/metrics"
	"github.com/Column-org/Column-backend/pkg/mutex"

	"go.uber.org/zap"
)

const (
	faBalanceView    = "0x1::primary_fungible_store::balance"
	faMetadataStruct = "0x1::fungible_asset::Metadata"
)

// AccountService serves read-only account queries. Native balance reads
// go through a short-TTL cache with per-address single-flight so hot
// addresses don't hammer the node.
type AccountService struct {
	clients      ClientProviderInterface
	networks     config.NetworksConfig
	cache        *cache.Cache
	requestMutex *mutex.RequestMutex
	metrics      *metrics.MetricsCollector
}

// NewAccountService creates a new AccountService instance
func NewAccountService(clients ClientProviderInterface, networks config.NetworksConfig, cacheCfg config.CacheConfig, collector *metrics.MetricsCollector) *AccountService {
	return &AccountService{
		clients:      clients,
		networks:     networks,
		cache:        cache.New(cacheCfg.TTL),
		requestMutex: mutex.New(cacheCfg.CleanupInterval),
		metrics:      collector,
	}
}

// NativeBalance returns the native coin balance for an address
func (s *AccountService) NativeBalance(networkInput, address string) (*models.BalanceResponse, error) {
	network := s.networks.Resolve(networkInput)
	cacheKey := string(network) + ":" + address

	if cached, found := s.cache.Get(cacheKey); found {
		s.metrics.RecordCacheHit()
		balance, err := strconv.ParseUint(cached, 10, 64)
		if err == nil {
			return &models.BalanceResponse{
				Address: address,
				Balance: balance,
				Network: string(network),
			}, nil
		}
	}

	s.metrics.RecordCacheMiss()

	// Collapse concurrent lookups for the same address
	addressMutex := s.requestMutex.GetMutex(cacheKey)
	addressMutex.Lock()
	defer addressMutex.Unlock()

	// Another request may have populated the cache while we waited
	if cached, found := s.cache.Get(cacheKey); found {
		s.metrics.RecordCacheHit()
		if balance, err := strconv.ParseUint(cached, 10, 64); err == nil {
			return &models.BalanceResponse{
				Address: address,
				Balance: balance,
				Network: string(network),
			}, nil
		}
	}

	client, err := s.clients.Get(network)
	if err != nil {
		return nil, models.NewUpstreamError(models.ErrorCodeRPCUnavailable, "Failed to fetch balance", err)
	}

	start := time.Now()
	balance, err := client.NativeBalance(address)
	s.metrics.RecordRPCCall(time.Since(start), err == nil)
	if err != nil {
		return nil, models.NewUpstreamError(models.ErrorCodeRPCUnavailable, "Failed to fetch balance", err)
	}

	s.cache.Set(cacheKey, strconv.FormatUint(balance, 10))

	logger.GetLogger().Debug("Fetched native balance",
		zap.String("network", string(network)),
		zap.String("address", address),
		zap.Uint64("balance", balance),
	)

	return &models.BalanceResponse{
		Address: address,
		Balance: balance,
		Network: string(network),
	}, nil
}

// FABalance returns the fungible-asset balance for an owner and asset
// metadata address. An empty view result means the owner holds none of
// the asset, reported as "0" rather than an error.
func (s *AccountService) FABalance(networkInput, owner, asset string) (*models.FABalanceResponse, error) {
	network := s.networks.Resolve(networkInput)

	client, err := s.clients.Get(network)
	if err != nil {
		return nil, models.NewUpstreamError(models.ErrorCodeRPCUnavailable, "Failed to fetch FA balance", err)
	}

	start := time.Now()
	vals, err := client.View(faBalanceView, []string{faMetadataStruct}, []models.ViewArg{
		models.AddressArg(owner),
		models.AddressArg(asset),
	})
	s.metrics.RecordRPCCall(time.Since(start), err == nil)
	if err != nil {
		return nil, models.NewUpstreamError(models.ErrorCodeRPCUnavailable, "Failed to fetch FA balance", err)
	}

	balance := "0"
	if len(vals) > 0 && vals[0] != nil {
		balance = decimalString(vals[0])
	}

	return &models.FABalanceResponse{
		Owner:   owner,
		Asset:   asset,
		Balance: balance,
		Network: string(network),
	}, nil
}

// AccountInfo returns the chain's account metadata unmodified
func (s *AccountService) AccountInfo(networkInput, address string) (map[string]any, error) {
	network := s.networks.Resolve(networkInput)

	client, err := s.clients.Get(network)
	if err != nil {
		return nil, models.NewUpstreamError(models.ErrorCodeRPCUnavailable, "Failed to fetch account info", err)
	}

	start := time.Now()
	info, err := client.AccountInfo(address)
	s.metrics.RecordRPCCall(time.Since(start), err == nil)
	if err != nil {
		return nil, models.NewUpstreamError(models.ErrorCodeRPCUnavailable, "Failed to fetch account info", err)
	}

	return info, nil
}

// Stop releases the cache and mutex cleanup goroutines
func (s *AccountService) Stop() {
	s.cache.Stop()
	s.requestMutex.Stop()
}
