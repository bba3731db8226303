// Package onchain implements the settlement client against the contract
// gateway: an HTTP bridge that signs and submits calls to the settlement
// contract. Chain mechanics (gas, consensus, signing) stay on the gateway
// side; this client only speaks its JSON API.
package onchain

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/onramptee/openbank/config"
	"github.com/onramptee/openbank/pkg/domain"
	"github.com/onramptee/openbank/pkg/provider/settlement"
)

// Gateway talks to the settlement contract through the gateway's REST API.
type Gateway struct {
	baseURL    string
	contract   string
	ownerKey   string
	chainID    uint64
	httpClient *http.Client
	logger     *slog.Logger
}

// New creates a Gateway client from configuration.
func New(cfg config.Settlement, logger *slog.Logger) *Gateway {
	return &Gateway{
		baseURL:  cfg.GatewayURL,
		contract: cfg.ContractAddress,
		ownerKey: cfg.OwnerPrivateKey,
		chainID:  cfg.ChainID,
		httpClient: &http.Client{
			Timeout: cfg.HTTPTimeout,
		},
		logger: logger,
	}
}

type balanceResponse struct {
	Deposited      int64 `json:"deposited"`
	Withdrawn      int64 `json:"withdrawn"`
	LastDeposit    int64 `json:"last_deposit"`
	LastWithdrawal int64 `json:"last_withdrawal"`
	HasDeposited   bool  `json:"has_deposited"`
}

type transferRequest struct {
	Recipient   string `json:"recipient"`
	Amount      int64  `json:"amount"`
	Description string `json:"description"`
	ChainID     uint64 `json:"chain_id"`
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// GetExternalBalance queries the contract's balance record for an address.
func (g *Gateway) GetExternalBalance(
	ctx context.Context,
	address string,
) (*settlement.ExternalBalance, error) {
	if !domain.IsValidWalletAddress(address) {
		return nil, &domain.InvalidAddressError{Address: address}
	}

	url := fmt.Sprintf("%s/contract/%s/balances/%s", g.baseURL, g.contract, address)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	g.authorize(req)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("balance query failed: %w", domain.ErrSettlementUnavailable)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return nil, g.mapStatusError(resp)
	}

	var body balanceResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode balance response: %w", domain.ErrSettlementUnavailable)
	}
	return &settlement.ExternalBalance{
		Deposited:        body.Deposited,
		Withdrawn:        body.Withdrawn,
		LastDepositAt:    time.Unix(body.LastDeposit, 0).UTC(),
		LastWithdrawalAt: time.Unix(body.LastWithdrawal, 0).UTC(),
		HasDeposited:     body.HasDeposited,
	}, nil
}

// SendFunds submits a transfer out of the contract to the destination.
// A timeout after the request may have been delivered maps to
// domain.ErrSettlementUncertain, never to plain failure: the transfer may
// still be applied by the chain.
func (g *Gateway) SendFunds(
	ctx context.Context,
	destination string,
	minorUnits int64,
	description string,
) error {
	if !domain.IsValidWalletAddress(destination) {
		return &domain.InvalidAddressError{Address: destination}
	}

	payload, err := json.Marshal(transferRequest{
		Recipient:   destination,
		Amount:      minorUnits,
		Description: description,
		ChainID:     g.chainID,
	})
	if err != nil {
		return fmt.Errorf("failed to encode transfer: %w", err)
	}

	url := fmt.Sprintf("%s/contract/%s/transfers", g.baseURL, g.contract)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	g.authorize(req)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			g.logger.Warn("transfer outcome unknown after timeout",
				"destination", destination, "minor_units", minorUnits)
			return fmt.Errorf("transfer to %s: %w", destination, domain.ErrSettlementUncertain)
		}
		return fmt.Errorf("transfer to %s: %w", destination, domain.ErrSettlementUnavailable)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		return g.mapStatusError(resp)
	}
	g.logger.Info("transfer submitted",
		"destination", destination, "minor_units", minorUnits)
	return nil
}

// Stats returns the contract's aggregate counters.
func (g *Gateway) Stats(ctx context.Context) (*settlement.Stats, error) {
	url := fmt.Sprintf("%s/contract/%s/stats", g.baseURL, g.contract)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	g.authorize(req)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("stats query failed: %w", domain.ErrSettlementUnavailable)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return nil, g.mapStatusError(resp)
	}

	var stats settlement.Stats
	if err := json.NewDecoder(resp.Body).Decode(&stats); err != nil {
		return nil, fmt.Errorf("failed to decode stats response: %w", domain.ErrSettlementUnavailable)
	}
	return &stats, nil
}

func (g *Gateway) authorize(req *http.Request) {
	if g.ownerKey != "" {
		req.Header.Set("Authorization", "Bearer "+g.ownerKey)
	}
}

// mapStatusError translates a non-2xx gateway response into the settlement
// error taxonomy.
func (g *Gateway) mapStatusError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var body errorResponse
	_ = json.Unmarshal(raw, &body)

	switch {
	case body.Error.Code == "invalid_address":
		return &domain.InvalidAddressError{Address: body.Error.Message}
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		reason := body.Error.Message
		if reason == "" {
			reason = string(raw)
		}
		return fmt.Errorf("gateway refused (%d): %s: %w",
			resp.StatusCode, reason, domain.ErrSettlementRejected)
	default:
		return fmt.Errorf("gateway returned status %d: %w",
			resp.StatusCode, domain.ErrSettlementUnavailable)
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

var _ settlement.Client = (*Gateway)(nil)
