package models

// GenerateHashRequest is the incoming payload for POST /generate-hash.
// FunctionArguments must be present as a JSON array, even if empty.
type GenerateHashRequest struct {
	Sender            string   `json:"sender"`
	Function          string   `json:"function"`
	TypeArguments     []string `json:"typeArguments"`
	FunctionArguments []any    `json:"functionArguments"`
	Network           string   `json:"network"`
}

// SubmitTransactionRequest is the incoming payload for POST /submit-transaction
type SubmitTransactionRequest struct {
	RawTxnHex string `json:"rawTxnHex"`
	PublicKey string `json:"publicKey"`
	Signature string `json:"signature"`
	Network   string `json:"network"`
}

// FaucetRequest is the incoming payload for POST /faucet
type FaucetRequest struct {
	Address string `json:"address"`
	Amount  uint64 `json:"amount"`
	Network string `json:"network"`
}

// ViewTransferRequest is the incoming payload for POST /view-transfer
type ViewTransferRequest struct {
	Code    string `json:"code"`
	Network string `json:"network"`
}

// SendEmailRequest is the incoming payload for POST /api/send-email
type SendEmailRequest struct {
	To         string `json:"to"`
	Subject    string `json:"subject"`
	From       string `json:"from"`
	HTML       string `json:"html"`
	SenderName string `json:"senderName"`
}

// ViewArgKind discriminates how a view-function argument is BCS-encoded
type ViewArgKind string

const (
	ViewArgString  ViewArgKind = "string"
	ViewArgAddress ViewArgKind = "address"
	ViewArgU64     ViewArgKind = "u64"
)

// ViewArg is a single argument to a read-only view function call
type ViewArg struct {
	Kind  ViewArgKind
	Value string
}

// StringArg builds a Move String view argument
func StringArg(v string) ViewArg { return ViewArg{Kind: ViewArgString, Value: v} }

// AddressArg builds an account-address view argument
func AddressArg(v string) ViewArg { return ViewArg{Kind: ViewArgAddress, Value: v} }
