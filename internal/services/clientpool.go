package services

import (
	"sync"

	"github.com/Column-org/Column-backend/internal/config"
)

// ClientFactory constructs a chain client for a network configuration
type ClientFactory func(cfg config.NetworkConfig) (ChainClientInterface, error)

// ClientPool lazily constructs and memoizes one chain client per
// network so repeated requests reuse connections and configuration.
// First construction is guarded by a mutex; correctness does not depend
// on any single-threaded scheduling assumption.
type ClientPool struct {
	networks config.NetworksConfig
	factory  ClientFactory
	mu       sync.Mutex
	clients  map[config.NetworkID]ChainClientInterface
}

// NewClientPool creates a pool using the given factory. Production code
// passes NewChainClient; tests inject a fake.
func NewClientPool(networks config.NetworksConfig, factory ClientFactory) *ClientPool {
	return &ClientPool{
		networks: networks,
		factory:  factory,
		clients:  make(map[config.NetworkID]ChainClientInterface),
	}
}

// Get returns the cached client for a resolved network identifier,
// constructing it on first use. Clients live for the process lifetime.
func (p *ClientPool) Get(id config.NetworkID) (ChainClientInterface, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if client, ok := p.clients[id]; ok {
		return client, nil
	}

	client, err := p.factory(p.networks.Config(id))
	if err != nil {
		return nil, err
	}

	p.clients[id] = client
	return client, nil
}
