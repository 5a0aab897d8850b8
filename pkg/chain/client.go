package chain

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"go.uber.org/zap"

	"github.com/roastarena/backend/pkg/config"
)

// Client is the log source adapter: a thin, deadline-bounded wrapper
// around the ledger's JSON-RPC endpoint scoped to the arena contract.
// It is treated as unreliable and rate-limited; callers retry.
type Client struct {
	cfg      *config.ChainConfig
	client   *ethclient.Client
	contract common.Address
	logger   *zap.Logger
}

// NewClient connects to the ledger RPC endpoint.
func NewClient(cfg *config.ChainConfig, logger *zap.Logger) (*Client, error) {
	if !common.IsHexAddress(cfg.ContractAddress) {
		return nil, fmt.Errorf("invalid contract address %q", cfg.ContractAddress)
	}

	client, err := ethclient.Dial(cfg.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to ledger RPC: %w", err)
	}

	contract := common.HexToAddress(cfg.ContractAddress)

	logger.Info("Connected to ledger RPC",
		zap.String("rpc_url", cfg.RPCURL),
		zap.String("contract", contract.Hex()),
		zap.Uint64("confirmations", cfg.Confirmations))

	return &Client{
		cfg:      cfg,
		client:   client,
		contract: contract,
		logger:   logger,
	}, nil
}

// Close closes the underlying RPC connection.
func (c *Client) Close() {
	c.client.Close()
}

// Height returns the highest confirmed block number: the reported head
// minus the configured trailing confirmation lag.
func (c *Client) Height(ctx context.Context) (uint64, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.RequestTimeout())
	defer cancel()

	head, err := c.client.BlockNumber(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get latest block: %w", err)
	}
	if head < c.cfg.Confirmations {
		return 0, nil
	}
	return head - c.cfg.Confirmations, nil
}

// Events returns every log the arena contract emitted in [from, to]
// inclusive, in ascending (block, index-within-block) order as delivered
// by the provider.
func (c *Client) Events(ctx context.Context, from, to uint64) ([]types.Log, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.RequestTimeout())
	defer cancel()

	query := ethereum.FilterQuery{
		FromBlock: new(big.Int).SetUint64(from),
		ToBlock:   new(big.Int).SetUint64(to),
		Addresses: []common.Address{c.contract},
	}

	logs, err := c.client.FilterLogs(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to filter logs [%d, %d]: %w", from, to, err)
	}
	return logs, nil
}
