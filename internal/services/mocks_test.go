package services

import (
	"fmt"
	"sync"
	"time"

	"github.com/Column-org/Column-backend/internal/config"
	"github.com/Column-org/Column-backend/internal/models"
)

// viewReply is one canned response for a mocked view function
type viewReply struct {
	vals []any
	err  error
	wait time.Duration
}

// MockChainClient implements ChainClientInterface for testing
type MockChainClient struct {
	mu sync.Mutex

	views       map[string]viewReply
	events      []models.ChainEvent
	eventsErr   error
	balance     uint64
	balanceErr  error
	accountInfo map[string]any

	buildHash   string
	buildRawTxn string
	buildErr    error

	submitResult *models.SubmitResult
	submitErr    error

	calls map[string]int
}

// NewMockChainClient creates a mock with no responses configured
func NewMockChainClient() *MockChainClient {
	return &MockChainClient{
		views: make(map[string]viewReply),
		calls: make(map[string]int),
	}
}

// SetView configures the response for a fully qualified view function
func (m *MockChainClient) SetView(function string, vals []any, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.views[function] = viewReply{vals: vals, err: err}
}

// SetViewDelay configures a view to block before responding
func (m *MockChainClient) SetViewDelay(function string, wait time.Duration, vals []any, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.views[function] = viewReply{vals: vals, err: err, wait: wait}
}

// SetEvents configures the recent-events response
func (m *MockChainClient) SetEvents(events []models.ChainEvent, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = events
	m.eventsErr = err
}

// SetBalance configures the native balance response
func (m *MockChainClient) SetBalance(balance uint64, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.balance = balance
	m.balanceErr = err
}

// SetBuildResult configures the unsigned-transaction build response
func (m *MockChainClient) SetBuildResult(hash, rawTxn string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.buildHash = hash
	m.buildRawTxn = rawTxn
	m.buildErr = err
}

// SetSubmitResult configures the submission response
func (m *MockChainClient) SetSubmitResult(result *models.SubmitResult, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.submitResult = result
	m.submitErr = err
}

// Calls returns the number of invocations recorded under a name
func (m *MockChainClient) Calls(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[name]
}

func (m *MockChainClient) record(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls[name]++
}

func (m *MockChainClient) BuildEntryFunction(sender, function string, typeArgs []string, args []any) (string, string, error) {
	m.record("BuildEntryFunction")
	return m.buildHash, m.buildRawTxn, m.buildErr
}

func (m *MockChainClient) SubmitSigned(rawTxnHex, publicKeyHex, signatureHex string) (*models.SubmitResult, error) {
	m.record("SubmitSigned")
	return m.submitResult, m.submitErr
}

func (m *MockChainClient) NativeBalance(address string) (uint64, error) {
	m.record("NativeBalance")
	return m.balance, m.balanceErr
}

func (m *MockChainClient) AccountInfo(address string) (map[string]any, error) {
	m.record("AccountInfo")
	return m.accountInfo, nil
}

func (m *MockChainClient) View(function string, typeArgs []string, args []models.ViewArg) ([]any, error) {
	m.record("View:" + function)

	m.mu.Lock()
	reply, ok := m.views[function]
	m.mu.Unlock()

	if !ok {
		return nil, fmt.Errorf("no response configured for %s", function)
	}
	if reply.wait > 0 {
		time.Sleep(reply.wait)
	}
	return reply.vals, reply.err
}

func (m *MockChainClient) RecentModuleEvents(moduleAddress string, limit uint64) ([]models.ChainEvent, error) {
	m.record("RecentModuleEvents")
	return m.events, m.eventsErr
}

func (m *MockChainClient) Healthy() error {
	m.record("Healthy")
	return nil
}

// MockClientProvider hands out fixed clients per network
type MockClientProvider struct {
	mu      sync.Mutex
	clients map[config.NetworkID]ChainClientInterface
	errs    map[config.NetworkID]error
	gets    int
}

// NewMockClientProvider creates an empty provider
func NewMockClientProvider() *MockClientProvider {
	return &MockClientProvider{
		clients: make(map[config.NetworkID]ChainClientInterface),
		errs:    make(map[config.NetworkID]error),
	}
}

// SetClient binds a client to a network
func (p *MockClientProvider) SetClient(id config.NetworkID, client ChainClientInterface) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.clients[id] = client
}

// SetError makes Get fail for a network
func (p *MockClientProvider) SetError(id config.NetworkID, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.errs[id] = err
}

// Gets returns how many times Get was called
func (p *MockClientProvider) Gets() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.gets
}

func (p *MockClientProvider) Get(id config.NetworkID) (ChainClientInterface, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.gets++

	if err, ok := p.errs[id]; ok {
		return nil, err
	}
	if client, ok := p.clients[id]; ok {
		return client, nil
	}
	return nil, fmt.Errorf("no client configured for network %s", id)
}

// testNetworks is the two-network registry used throughout service tests
func testNetworks() config.NetworksConfig {
	return config.NetworksConfig{
		Default: config.NetworkTestnet,
		Networks: map[config.NetworkID]config.NetworkConfig{
			config.NetworkMainnet: {
				Name:    config.NetworkMainnet,
				NodeURL: "https://mainnet.example.test/v1",
			},
			config.NetworkTestnet: {
				Name:      config.NetworkTestnet,
				NodeURL:   "https://testnet.example.test/v1",
				FaucetURL: "https://faucet.example.test",
			},
		},
	}
}

// testTransferConfig returns a transfer module config with a short
// lookup timeout suitable for tests
func testTransferConfig() config.TransferConfig {
	return config.TransferConfig{
		ModuleAddress:     "0xabc",
		ModuleName:        "transfer",
		ViewFunction:      "get_transfer_details",
		FAViewFunction:    "get_fa_transfer_details",
		ClaimableFunction: "is_transfer_claimable",
		CreationEvent:     "TransferCreatedEvent",
		LookupTimeout:     100 * time.Millisecond,
		EventScanLimit:    25,
	}
}
