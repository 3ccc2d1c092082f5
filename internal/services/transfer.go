package services

import (
	"strconv"
	"strings"
	"time"

	"github.com/Column-org/Column-backend/internal/config"
	"github.com/Column-org/Column-backend/internal/models"
	"github.com/Column-org/Column-backend/pkg/logger"

	"go.uber.org/zap"
)

// lookupOutcome tags the result of one resolution strategy
type lookupOutcome int

const (
	lookupFound lookupOutcome = iota
	lookupNotFound
	lookupTimedOut
)

// lookupResult is the tagged outcome of a single strategy attempt
type lookupResult struct {
	outcome lookupOutcome
	record  *models.TransferRecord
}

// lookupStrategy is one resolution attempt in the prioritized list
type lookupStrategy struct {
	name string
	run  func(client ChainClientInterface, code string) lookupResult
}

// TransferService resolves an opaque transfer code to transfer metadata
// by trying an ordered list of resolution strategies: the native (MOVE)
// transfer view, then the fungible-asset view, then the same pair on the
// alternate network. The flow holds no state and is idempotent.
type TransferService struct {
	clients  ClientProviderInterface
	networks config.NetworksConfig
	cfg      config.TransferConfig
	now      func() time.Time
}

// NewTransferService creates a new TransferService instance
func NewTransferService(clients ClientProviderInterface, networks config.NetworksConfig, cfg config.TransferConfig) *TransferService {
	return &TransferService{
		clients:  clients,
		networks: networks,
		cfg:      cfg,
		now:      time.Now,
	}
}

// Lookup resolves a transfer code on the requested network, falling back
// to the alternate network before reporting not found. Exactly one of
// the three return values is non-zero on success paths; a nil, nil
// return with a NotFound error means the code resolved nowhere.
func (s *TransferService) Lookup(networkInput, rawCode string) (*models.TransferRecord, *models.WrongNetworkResponse, error) {
	code := NormalizeCode(rawCode)
	network := s.networks.Resolve(networkInput)

	log := logger.GetLogger().WithFields(map[string]interface{}{
		"network": string(network),
	})

	client, err := s.clients.Get(network)
	if err != nil {
		return nil, nil, models.NewUpstreamError(models.ErrorCodeRPCUnavailable, "Failed to look up transfer", err)
	}

	result := s.runStrategies(client, code)

	switch result.outcome {
	case lookupFound:
		log.Info("Transfer resolved",
			zap.String("type", string(result.record.Type)),
			zap.String("source", string(result.record.Source)),
		)
		return result.record, nil, nil

	case lookupTimedOut:
		// The view timed out and the events fallback found nothing.
		// A timeout is not a conclusive miss, so the alternate-network
		// probe is skipped.
		log.Warn("Transfer lookup timed out with no event match")
		return nil, nil, models.NewNotFoundError("Transfer not found")
	}

	// Conclusive miss on the requested network: probe the alternate one.
	alternate := s.networks.Alternate(network)
	if altClient, err := s.clients.Get(alternate); err == nil {
		if s.probe(altClient, code) {
			log.Info("Transfer found on alternate network",
				zap.String("correct_network", string(alternate)),
			)
			return nil, &models.WrongNetworkResponse{
				Error:          "Wrong network",
				CorrectNetwork: string(alternate),
			}, nil
		}
	}

	return nil, nil, models.NewNotFoundError("Transfer not found")
}

// runStrategies evaluates the ordered strategy list until one returns
// something other than a conclusive miss
func (s *TransferService) runStrategies(client ChainClientInterface, code string) lookupResult {
	strategies := []lookupStrategy{
		{name: "move-view", run: s.lookupMove},
		{name: "fa-view", run: s.lookupFA},
	}

	for _, strategy := range strategies {
		result := strategy.run(client, code)
		if result.outcome == lookupNotFound {
			continue
		}
		return result
	}

	return lookupResult{outcome: lookupNotFound}
}

// lookupMove queries the native-transfer view. A well-formed response is
// the tuple [sender, amount, createdAt, expiration]; anything shorter or
// missing is a miss rather than a hard error. The view is raced against
// the lookup timeout; on timeout the module event log is scanned instead.
func (s *TransferService) lookupMove(client ChainClientInterface, code string) lookupResult {
	vals, timedOut, err := s.viewWithTimeout(client, s.cfg.ViewFunction, code)
	if timedOut {
		if record := s.lookupFromEvents(client, code); record != nil {
			return lookupResult{outcome: lookupFound, record: record}
		}
		return lookupResult{outcome: lookupTimedOut}
	}
	if err != nil || len(vals) < 4 {
		return lookupResult{outcome: lookupNotFound}
	}

	record := &models.TransferRecord{
		Type:       models.TransferKindMove,
		Sender:     addressString(vals[0]),
		Amount:     decimalString(vals[1]),
		CreatedAt:  decimalString(vals[2]),
		Expiration: decimalString(vals[3]),
	}
	record.IsClaimable = s.claimable(client, code)

	return lookupResult{outcome: lookupFound, record: record}
}

// lookupFA queries the fungible-asset view. A well-formed response is
// the tuple [sender, assetMetadata, amount, createdAt, expiration].
func (s *TransferService) lookupFA(client ChainClientInterface, code string) lookupResult {
	vals, err := client.View(s.moduleFunction(s.cfg.FAViewFunction), nil, []models.ViewArg{models.StringArg(code)})
	if err != nil || len(vals) < 5 {
		return lookupResult{outcome: lookupNotFound}
	}

	record := &models.TransferRecord{
		Type:          models.TransferKindFA,
		Sender:        addressString(vals[0]),
		AssetMetadata: addressString(vals[1]),
		Amount:        decimalString(vals[2]),
		CreatedAt:     decimalString(vals[3]),
		Expiration:    decimalString(vals[4]),
	}
	record.IsClaimable = s.claimable(client, code)

	return lookupResult{outcome: lookupFound, record: record}
}

// claimable is a best-effort secondary query; any failure degrades to
// false without disturbing the primary result.
func (s *TransferService) claimable(client ChainClientInterface, code string) bool {
	return attemptBool(func() (bool, error) {
		vals, err := client.View(s.moduleFunction(s.cfg.ClaimableFunction), nil, []models.ViewArg{models.StringArg(code)})
		if err != nil {
			return false, err
		}
		if len(vals) == 0 {
			return false, nil
		}
		claimable, _ := vals[0].(bool)
		return claimable, nil
	}, false)
}

// viewWithTimeout races a view call against the configured lookup
// timeout. On timeout the in-flight call is abandoned, not cancelled;
// its eventual result is discarded via the buffered channel.
func (s *TransferService) viewWithTimeout(client ChainClientInterface, function, code string) ([]any, bool, error) {
	type reply struct {
		vals []any
		err  error
	}

	ch := make(chan reply, 1)
	go func() {
		vals, err := client.View(s.moduleFunction(function), nil, []models.ViewArg{models.StringArg(code)})
		ch <- reply{vals: vals, err: err}
	}()

	timer := time.NewTimer(s.cfg.LookupTimeout)
	defer timer.Stop()

	select {
	case r := <-ch:
		return r.vals, false, r.err
	case <-timer.C:
		return nil, true, nil
	}
}

// lookupFromEvents scans the module's recent event log for a creation
// event with a matching code. A match is a best-effort reconstruction:
// creation time approximated to now, claimability assumed, and tagged
// with provenance "events" so callers can tell it apart from
// authoritative view data.
func (s *TransferService) lookupFromEvents(client ChainClientInterface, code string) *models.TransferRecord {
	events, err := client.RecentModuleEvents(s.cfg.ModuleAddress, s.cfg.EventScanLimit)
	if err != nil {
		return nil
	}

	wantType := s.cfg.FullEventType()
	for _, ev := range events {
		if ev.Type != wantType {
			continue
		}

		evCode, _ := ev.Data["code"].(string)
		if NormalizeCode(evCode) != code {
			continue
		}

		return &models.TransferRecord{
			Type:        models.TransferKindMove,
			Sender:      addressString(ev.Data["sender"]),
			Amount:      decimalString(ev.Data["amount"]),
			CreatedAt:   strconv.FormatInt(s.now().Unix(), 10),
			Expiration:  decimalString(ev.Data["expiration"]),
			IsClaimable: true,
			Source:      models.TransferSourceEvents,
		}
	}

	return nil
}

// probe checks whether either view resolves the code on a network.
// Used by the wrong-network fallback; all failures are swallowed.
func (s *TransferService) probe(client ChainClientInterface, code string) bool {
	if vals, err := client.View(s.moduleFunction(s.cfg.ViewFunction), nil, []models.ViewArg{models.StringArg(code)}); err == nil && len(vals) >= 4 {
		return true
	}
	if vals, err := client.View(s.moduleFunction(s.cfg.FAViewFunction), nil, []models.ViewArg{models.StringArg(code)}); err == nil && len(vals) >= 5 {
		return true
	}
	return false
}

// moduleFunction qualifies a function name with the transfer module
func (s *TransferService) moduleFunction(name string) string {
	return s.cfg.ModuleAddress + "::" + s.cfg.ModuleName + "::" + name
}

// NormalizeCode canonicalizes a transfer code: case-folded with an
// optional 0x prefix stripped
func NormalizeCode(code string) string {
	return strings.TrimPrefix(strings.ToLower(strings.TrimSpace(code)), "0x")
}

// attemptBool runs a best-effort query, substituting the fallback on any
// failure so secondary calls never abort a primary path
func attemptBool(f func() (bool, error), fallback bool) bool {
	v, err := f()
	if err != nil {
		return fallback
	}
	return v
}
