package models

// GenerateHashResponse carries the signing hash and the serialized
// unsigned transaction back to the wallet for client-side signing.
type GenerateHashResponse struct {
	Success   bool   `json:"success"`
	Hash      string `json:"hash"`
	RawTxnHex string `json:"rawTxnHex"`
}

// SubmitTransactionResponse echoes the chain's own execution outcome.
// A transaction can be submitted successfully yet still fail execution;
// Success reflects the VM result, not submission.
type SubmitTransactionResponse struct {
	Success         bool   `json:"success"`
	TransactionHash string `json:"transactionHash"`
	VMStatus        string `json:"vmStatus"`
}

// SubmitResult is the service-level submission outcome
type SubmitResult struct {
	Hash     string
	Success  bool
	VMStatus string
}

// TransferKind discriminates the two transfer flavors
type TransferKind string

const (
	TransferKindMove TransferKind = "move"
	TransferKindFA   TransferKind = "fa"
)

// TransferSource tags where a lookup result came from. Empty means the
// authoritative contract view; "events" means a best-effort
// reconstruction from the module event log after a view timeout.
type TransferSource string

const TransferSourceEvents TransferSource = "events"

// TransferRecord is the resolved transfer returned by /view-transfer.
// Numeric chain values are decimal strings to avoid precision loss.
type TransferRecord struct {
	Type          TransferKind   `json:"type"`
	Sender        string         `json:"sender"`
	Amount        string         `json:"amount"`
	AssetMetadata string         `json:"assetMetadata,omitempty"`
	CreatedAt     string         `json:"createdAt"`
	Expiration    string         `json:"expiration"`
	IsClaimable   bool           `json:"isClaimable"`
	Source        TransferSource `json:"source,omitempty"`
}

// WrongNetworkResponse is returned when a transfer code resolves on the
// other supported network. The caller is expected to resubmit there.
type WrongNetworkResponse struct {
	Error          string `json:"error"`
	CorrectNetwork string `json:"correctNetwork"`
}

// BalanceResponse is returned by GET /balance/:address
type BalanceResponse struct {
	Address string `json:"address"`
	Balance uint64 `json:"balance"`
	Network string `json:"network"`
}

// FABalanceResponse is returned by GET /fa-balance/:owner/:asset.
// Balance is a decimal string; "0" when the owner holds none.
type FABalanceResponse struct {
	Owner   string `json:"owner"`
	Asset   string `json:"asset"`
	Balance string `json:"balance"`
	Network string `json:"network"`
}

// OwnedObjectsResponse is the permanent stub returned by
// GET /owned-objects/:address
type OwnedObjectsResponse struct {
	Objects []any  `json:"objects"`
	Note    string `json:"note"`
}

// SendEmailResponse is returned by POST /api/send-email
type SendEmailResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
}

// ChainEvent is one event pulled from the module's recent event log,
// used by the transfer lookup's events fallback.
type ChainEvent struct {
	Type string
	Data map[string]any
}
