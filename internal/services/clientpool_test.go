package services

import (
	"errors"
	"sync"
	"testing"

	"github.com/Column-org/Column-backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientPool_MemoizesPerNetwork(t *testing.T) {
	var constructions int
	pool := NewClientPool(testNetworks(), func(cfg config.NetworkConfig) (ChainClientInterface, error) {
		constructions++
		return NewMockChainClient(), nil
	})

	first, err := pool.Get(config.NetworkTestnet)
	require.NoError(t, err)
	second, err := pool.Get(config.NetworkTestnet)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, constructions)
}

func TestClientPool_DistinctClientsPerNetwork(t *testing.T) {
	pool := NewClientPool(testNetworks(), func(cfg config.NetworkConfig) (ChainClientInterface, error) {
		return NewMockChainClient(), nil
	})

	testnet, err := pool.Get(config.NetworkTestnet)
	require.NoError(t, err)
	mainnet, err := pool.Get(config.NetworkMainnet)
	require.NoError(t, err)

	assert.NotSame(t, testnet, mainnet)
}

func TestClientPool_FactoryErrorIsNotCached(t *testing.T) {
	calls := 0
	pool := NewClientPool(testNetworks(), func(cfg config.NetworkConfig) (ChainClientInterface, error) {
		calls++
		if calls == 1 {
			return nil, errors.New("transient construction failure")
		}
		return NewMockChainClient(), nil
	})

	_, err := pool.Get(config.NetworkTestnet)
	require.Error(t, err)

	client, err := pool.Get(config.NetworkTestnet)
	require.NoError(t, err)
	assert.NotNil(t, client)
}

func TestClientPool_ConcurrentGets(t *testing.T) {
	var mu sync.Mutex
	constructions := 0

	pool := NewClientPool(testNetworks(), func(cfg config.NetworkConfig) (ChainClientInterface, error) {
		mu.Lock()
		constructions++
		mu.Unlock()
		return NewMockChainClient(), nil
	})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := pool.Get(config.NetworkTestnet)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, constructions)
}
