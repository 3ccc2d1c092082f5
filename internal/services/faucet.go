package services

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Column-org/Column-backend/internal/config"
	"github.com/Column-org/Column-backend/internal/models"
	"github.com/Column-org/Column-backend/pkg/logger"

	"go.uber.org/zap"
)

// FaucetService forwards funding requests to the network's faucet HTTP
// service. Networks without a faucet (mainnet) reject the request.
type FaucetService struct {
	networks   config.NetworksConfig
	httpClient *http.Client
}

// NewFaucetService creates a new FaucetService instance
func NewFaucetService(networks config.NetworksConfig) *FaucetService {
	return &FaucetService{
		networks: networks,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Fund POSTs address and amount to the faucet mint endpoint and returns
// the parsed upstream JSON body. A non-2xx upstream response becomes an
// error carrying the upstream status and body.
func (s *FaucetService) Fund(networkInput, address string, amount uint64) (any, error) {
	network := s.networks.Resolve(networkInput)
	netCfg := s.networks.Config(network)

	if netCfg.FaucetURL == "" {
		return nil, models.NewAppError(models.ErrorCodeNoFaucet,
			fmt.Sprintf("No faucet available for network %s", network))
	}

	mintURL := fmt.Sprintf("%s/mint?address=%s&amount=%s",
		strings.TrimSuffix(netCfg.FaucetURL, "/"),
		url.QueryEscape(address),
		strconv.FormatUint(amount, 10),
	)

	resp, err := s.httpClient.Post(mintURL, "application/json", nil)
	if err != nil {
		return nil, models.NewUpstreamError(models.ErrorCodeFaucetFailure, "Faucet request failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, models.NewUpstreamError(models.ErrorCodeFaucetFailure, "Faucet request failed", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, models.NewUpstreamError(models.ErrorCodeFaucetFailure, "Faucet request failed",
			fmt.Errorf("faucet returned %d: %s", resp.StatusCode, string(body)))
	}

	logger.GetLogger().Info("Faucet request forwarded",
		zap.String("network", string(network)),
		zap.String("address", address),
		zap.Uint64("amount", amount),
	)

	// An empty success body still echoes as a JSON object, not null
	if len(body) == 0 {
		return map[string]any{}, nil
	}

	var parsed any
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, models.NewUpstreamError(models.ErrorCodeFaucetFailure, "Faucet returned malformed response", err)
	}

	return parsed, nil
}
