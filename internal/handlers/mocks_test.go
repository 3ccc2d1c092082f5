package handlers

import (
	"github.com/Column-org/Column-backend/internal/models"
)

// MockTransactionService implements TransactionServiceInterface
type MockTransactionService struct {
	generateCalls int
	submitCalls   int

	generateResp *models.GenerateHashResponse
	submitResp   *models.SubmitTransactionResponse
	err          error
}

func (m *MockTransactionService) GenerateHash(req *models.GenerateHashRequest) (*models.GenerateHashResponse, error) {
	m.generateCalls++
	return m.generateResp, m.err
}

func (m *MockTransactionService) Submit(req *models.SubmitTransactionRequest) (*models.SubmitTransactionResponse, error) {
	m.submitCalls++
	return m.submitResp, m.err
}

// MockAccountService implements AccountServiceInterface
type MockAccountService struct {
	balanceResp *models.BalanceResponse
	faResp      *models.FABalanceResponse
	info        map[string]any
	err         error
}

func (m *MockAccountService) NativeBalance(network, address string) (*models.BalanceResponse, error) {
	return m.balanceResp, m.err
}

func (m *MockAccountService) FABalance(network, owner, asset string) (*models.FABalanceResponse, error) {
	return m.faResp, m.err
}

func (m *MockAccountService) AccountInfo(network, address string) (map[string]any, error) {
	return m.info, m.err
}

// MockFaucetService implements FaucetServiceInterface
type MockFaucetService struct {
	calls  int
	result any
	err    error
}

func (m *MockFaucetService) Fund(network, address string, amount uint64) (any, error) {
	m.calls++
	return m.result, m.err
}

// MockTransferService implements TransferServiceInterface
type MockTransferService struct {
	calls        int
	record       *models.TransferRecord
	wrongNetwork *models.WrongNetworkResponse
	err          error
}

func (m *MockTransferService) Lookup(network, code string) (*models.TransferRecord, *models.WrongNetworkResponse, error) {
	m.calls++
	return m.record, m.wrongNetwork, m.err
}

// MockEmailService implements EmailServiceInterface
type MockEmailService struct {
	calls int
	resp  *models.SendEmailResponse
	err   error
}

func (m *MockEmailService) Send(req *models.SendEmailRequest) (*models.SendEmailResponse, error) {
	m.calls++
	return m.resp, m.err
}
