package services

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Column-org/Column-backend/internal/config"
	"github.com/Column-org/Column-backend/internal/models"

	"github.com/aptos-labs/aptos-go-sdk"
	"github.com/aptos-labs/aptos-go-sdk/bcs"
	"github.com/aptos-labs/aptos-go-sdk/crypto"
)

// ChainClient wraps the Move SDK client for one network
type ChainClient struct {
	client  *aptos.Client
	network config.NetworkConfig
}

// NewChainClient creates a chain client from a network configuration
func NewChainClient(cfg config.NetworkConfig) (ChainClientInterface, error) {
	client, err := aptos.NewClient(aptos.NetworkConfig{
		Name:      string(cfg.Name),
		NodeUrl:   cfg.NodeURL,
		FaucetUrl: cfg.FaucetURL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create chain client for %s: %w", cfg.Name, err)
	}

	if cfg.Timeout > 0 {
		client.SetTimeout(cfg.Timeout)
	}

	return &ChainClient{
		client:  client,
		network: cfg,
	}, nil
}

// BuildEntryFunction builds an unsigned entry-function transaction.
// Callers pass plain JSON values the same way the wallet does; each
// argument's shape decides its BCS encoding (see encodeEntryArg).
func (cc *ChainClient) BuildEntryFunction(sender, function string, typeArgs []string, args []any) (string, string, error) {
	senderAddr := aptos.AccountAddress{}
	if err := senderAddr.ParseStringRelaxed(sender); err != nil {
		return "", "", fmt.Errorf("invalid sender address: %w", err)
	}

	moduleAddr, moduleName, functionName, err := splitFunctionID(function)
	if err != nil {
		return "", "", err
	}

	tags, err := parseTypeTags(typeArgs)
	if err != nil {
		return "", "", err
	}

	encoded := make([][]byte, 0, len(args))
	for i, arg := range args {
		b, err := encodeEntryArg(arg)
		if err != nil {
			return "", "", fmt.Errorf("argument %d: %w", i, err)
		}
		encoded = append(encoded, b)
	}

	entry := &aptos.EntryFunction{
		Module:   aptos.ModuleId{Address: moduleAddr, Name: moduleName},
		Function: functionName,
		ArgTypes: tags,
		Args:     encoded,
	}

	rawTxn, err := cc.client.BuildTransaction(senderAddr, aptos.TransactionPayload{Payload: entry})
	if err != nil {
		return "", "", fmt.Errorf("failed to build transaction: %w", err)
	}

	signingMessage, err := rawTxn.SigningMessage()
	if err != nil {
		return "", "", fmt.Errorf("failed to derive signing message: %w", err)
	}

	txnBytes, err := bcs.Serialize(rawTxn)
	if err != nil {
		return "", "", fmt.Errorf("failed to serialize transaction: %w", err)
	}

	return "0x" + hex.EncodeToString(signingMessage), hex.EncodeToString(txnBytes), nil
}

// SubmitSigned deserializes the raw transaction, attaches an ed25519
// authenticator built from the supplied key and signature, submits, and
// waits for a terminal execution state.
func (cc *ChainClient) SubmitSigned(rawTxnHex, publicKeyHex, signatureHex string) (*models.SubmitResult, error) {
	txnBytes, err := hex.DecodeString(strings.TrimPrefix(rawTxnHex, "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid raw transaction hex: %w", err)
	}

	rawTxn := &aptos.RawTransaction{}
	if err := bcs.Deserialize(rawTxn, txnBytes); err != nil {
		return nil, fmt.Errorf("failed to deserialize raw transaction: %w", err)
	}

	pubKey := &crypto.Ed25519PublicKey{}
	if err := pubKey.FromHex(publicKeyHex); err != nil {
		return nil, fmt.Errorf("invalid public key: %w", err)
	}

	sig := &crypto.Ed25519Signature{}
	if err := sig.FromHex(strings.TrimPrefix(signatureHex, "0x")); err != nil {
		return nil, fmt.Errorf("invalid signature: %w", err)
	}

	auth := &crypto.AccountAuthenticator{
		Variant: crypto.AccountAuthenticatorEd25519,
		Auth: &crypto.Ed25519Authenticator{
			PubKey: pubKey,
			Sig:    sig,
		},
	}

	signedTxn, err := rawTxn.SignedTransactionWithAuthenticator(auth)
	if err != nil {
		return nil, fmt.Errorf("failed to assemble signed transaction: %w", err)
	}

	submitted, err := cc.client.SubmitTransaction(signedTxn)
	if err != nil {
		return nil, fmt.Errorf("submission failed: %w", err)
	}

	// Block until the transaction reaches a terminal state. Submission
	// success does not imply execution success.
	executed, err := cc.client.WaitForTransaction(submitted.Hash)
	if err != nil {
		return nil, fmt.Errorf("failed waiting for transaction %s: %w", submitted.Hash, err)
	}

	return &models.SubmitResult{
		Hash:     executed.Hash,
		Success:  executed.Success,
		VMStatus: executed.VmStatus,
	}, nil
}

// NativeBalance returns the native coin balance in base units
func (cc *ChainClient) NativeBalance(address string) (uint64, error) {
	addr := aptos.AccountAddress{}
	if err := addr.ParseStringRelaxed(address); err != nil {
		return 0, fmt.Errorf("invalid address: %w", err)
	}

	balance, err := cc.client.AccountAPTBalance(addr)
	if err != nil {
		return 0, fmt.Errorf("balance query failed: %w", err)
	}

	return balance, nil
}

// AccountInfo returns the chain's native account metadata
func (cc *ChainClient) AccountInfo(address string) (map[string]any, error) {
	addr := aptos.AccountAddress{}
	if err := addr.ParseStringRelaxed(address); err != nil {
		return nil, fmt.Errorf("invalid address: %w", err)
	}

	info, err := cc.client.Account(addr)
	if err != nil {
		return nil, fmt.Errorf("account query failed: %w", err)
	}

	return map[string]any{
		"sequence_number":    info.SequenceNumberStr,
		"authentication_key": info.AuthenticationKeyHex,
	}, nil
}

// View invokes a read-only view function with BCS-encoded arguments
func (cc *ChainClient) View(function string, typeArgs []string, args []models.ViewArg) ([]any, error) {
	moduleAddr, moduleName, functionName, err := splitFunctionID(function)
	if err != nil {
		return nil, err
	}

	tags, err := parseTypeTags(typeArgs)
	if err != nil {
		return nil, err
	}

	encoded := make([][]byte, 0, len(args))
	for _, arg := range args {
		b, err := encodeViewArg(arg)
		if err != nil {
			return nil, err
		}
		encoded = append(encoded, b)
	}

	return cc.client.View(&aptos.ViewPayload{
		Module:   aptos.ModuleId{Address: moduleAddr, Name: moduleName},
		Function: functionName,
		ArgTypes: tags,
		Args:     encoded,
	})
}

// RecentModuleEvents scans recent transactions of the module account and
// collects their emitted events
func (cc *ChainClient) RecentModuleEvents(moduleAddress string, limit uint64) ([]models.ChainEvent, error) {
	addr := aptos.AccountAddress{}
	if err := addr.ParseStringRelaxed(moduleAddress); err != nil {
		return nil, fmt.Errorf("invalid module address: %w", err)
	}

	txns, err := cc.client.AccountTransactions(addr, nil, &limit)
	if err != nil {
		return nil, fmt.Errorf("event scan failed: %w", err)
	}

	var events []models.ChainEvent
	for _, txn := range txns {
		user, err := txn.UserTransaction()
		if err != nil {
			continue
		}
		for _, ev := range user.Events {
			events = append(events, models.ChainEvent{
				Type: ev.Type,
				Data: ev.Data,
			})
		}
	}

	return events, nil
}

// Healthy checks whether the node endpoint is responsive
func (cc *ChainClient) Healthy() error {
	if _, err := cc.client.Info(); err != nil {
		return fmt.Errorf("node health check failed: %w", err)
	}
	return nil
}

// splitFunctionID parses a fully qualified address::module::function id
func splitFunctionID(function string) (aptos.AccountAddress, string, string, error) {
	addr := aptos.AccountAddress{}

	parts := strings.Split(function, "::")
	if len(parts) != 3 {
		return addr, "", "", fmt.Errorf("invalid function identifier %q, expected address::module::function", function)
	}

	if err := addr.ParseStringRelaxed(parts[0]); err != nil {
		return addr, "", "", fmt.Errorf("invalid module address in %q: %w", function, err)
	}

	return addr, parts[1], parts[2], nil
}

// parseTypeTags parses a list of Move type strings
func parseTypeTags(inputs []string) ([]aptos.TypeTag, error) {
	tags := make([]aptos.TypeTag, 0, len(inputs))
	for _, t := range inputs {
		tag, err := parseTypeTag(t)
		if err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

// parseTypeTag parses a Move type string into a TypeTag: primitives,
// vector<...>, and struct tags like 0x1::fungible_asset::Metadata with
// optional nested type parameters.
func parseTypeTag(input string) (aptos.TypeTag, error) {
	s := strings.TrimSpace(input)

	switch s {
	case "bool":
		return aptos.NewTypeTag(&aptos.BoolTag{}), nil
	case "u8":
		return aptos.NewTypeTag(&aptos.U8Tag{}), nil
	case "u16":
		return aptos.NewTypeTag(&aptos.U16Tag{}), nil
	case "u32":
		return aptos.NewTypeTag(&aptos.U32Tag{}), nil
	case "u64":
		return aptos.NewTypeTag(&aptos.U64Tag{}), nil
	case "u128":
		return aptos.NewTypeTag(&aptos.U128Tag{}), nil
	case "u256":
		return aptos.NewTypeTag(&aptos.U256Tag{}), nil
	case "address":
		return aptos.NewTypeTag(&aptos.AddressTag{}), nil
	case "signer":
		return aptos.NewTypeTag(&aptos.SignerTag{}), nil
	}

	if strings.HasPrefix(s, "vector<") {
		if !strings.HasSuffix(s, ">") {
			return aptos.TypeTag{}, fmt.Errorf("unbalanced vector type %q", input)
		}
		elem, err := parseTypeTag(s[len("vector<") : len(s)-1])
		if err != nil {
			return aptos.TypeTag{}, err
		}
		return aptos.NewTypeTag(&aptos.VectorTag{TypeParam: elem}), nil
	}

	base := s
	var params []aptos.TypeTag
	if i := strings.Index(s, "<"); i >= 0 {
		if !strings.HasSuffix(s, ">") {
			return aptos.TypeTag{}, fmt.Errorf("unbalanced struct type %q", input)
		}
		base = s[:i]
		for _, p := range splitTypeParams(s[i+1 : len(s)-1]) {
			tag, err := parseTypeTag(p)
			if err != nil {
				return aptos.TypeTag{}, err
			}
			params = append(params, tag)
		}
	}

	parts := strings.Split(base, "::")
	if len(parts) != 3 {
		return aptos.TypeTag{}, fmt.Errorf("invalid type tag %q", input)
	}

	addr := aptos.AccountAddress{}
	if err := addr.ParseStringRelaxed(parts[0]); err != nil {
		return aptos.TypeTag{}, fmt.Errorf("invalid address in type tag %q: %w", input, err)
	}

	return aptos.NewTypeTag(&aptos.StructTag{
		Address:    addr,
		Module:     parts[1],
		Name:       parts[2],
		TypeParams: params,
	}), nil
}

// splitTypeParams splits a comma-separated type parameter list at the
// top nesting level only
func splitTypeParams(s string) []string {
	var parts []string
	depth := 0
	start := 0
	for i, r := range s {
		switch r {
		case '<':
			depth++
		case '>':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	if rest := strings.TrimSpace(s[start:]); rest != "" {
		parts = append(parts, rest)
	}
	return parts
}

// encodeEntryArg BCS-encodes one entry-function argument. The module ABI
// is not consulted; the JSON value's shape decides the encoding. Booleans
// map to bool, integral numbers and decimal strings to u64, 0x-prefixed
// account addresses to address, and any other string to a Move String.
func encodeEntryArg(v any) ([]byte, error) {
	switch t := v.(type) {
	case bool:
		return bcs.SerializeBool(t)
	case float64:
		if t < 0 || t != math.Trunc(t) {
			return nil, fmt.Errorf("numeric argument %v is not an unsigned integer", t)
		}
		return bcs.SerializeU64(uint64(t))
	case json.Number:
		u, err := strconv.ParseUint(t.String(), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("numeric argument %q is not a u64: %w", t.String(), err)
		}
		return bcs.SerializeU64(u)
	case string:
		if strings.HasPrefix(t, "0x") {
			addr := aptos.AccountAddress{}
			if err := addr.ParseStringRelaxed(t); err == nil {
				return bcs.Serialize(&addr)
			}
		}
		if u, err := strconv.ParseUint(t, 10, 64); err == nil {
			return bcs.SerializeU64(u)
		}
		return bcs.SerializeBytes([]byte(t))
	default:
		return nil, fmt.Errorf("unsupported argument type %T", v)
	}
}

// encodeViewArg BCS-encodes a single view argument by kind
func encodeViewArg(arg models.ViewArg) ([]byte, error) {
	switch arg.Kind {
	case models.ViewArgString:
		return bcs.SerializeBytes([]byte(arg.Value))
	case models.ViewArgAddress:
		addr := aptos.AccountAddress{}
		if err := addr.ParseStringRelaxed(arg.Value); err != nil {
			return nil, fmt.Errorf("invalid address argument %q: %w", arg.Value, err)
		}
		return bcs.Serialize(&addr)
	case models.ViewArgU64:
		u, err := strconv.ParseUint(arg.Value, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid u64 argument %q: %w", arg.Value, err)
		}
		return bcs.SerializeU64(u)
	default:
		return nil, fmt.Errorf("unsupported view argument kind %q", arg.Kind)
	}
}

// decimalString renders a JSON-decoded chain value as a decimal string.
// The node returns u64/u128 as JSON strings already; anything else is
// normalized so large integers never round-trip through float64 silently.
func decimalString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", t)
	}
}

// addressString extracts an address from a view return value, which may
// be a bare string or an object wrapper like {"inner": "0x.."}.
func addressString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case map[string]any:
		if inner, ok := t["inner"].(string); ok {
			return inner
		}
	}
	return decimalString(v)
}
