package client

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/christopherkarani/blend-client/core"
	"github.com/christopherkarani/blend-client/service/cache"
	"github.com/christopherkarani/blend-client/service/history"
	"github.com/christopherkarani/blend-client/service/pool"
	"github.com/christopherkarani/blend-client/service/position"
	"github.com/christopherkarani/blend-client/service/request"
	"github.com/christopherkarani/blend-client/service/rpc"
	"github.com/christopherkarani/blend-client/service/submitter"
)

// Client the composed sdk surface. Built by explicit constructor injection;
// there is no process-wide instance.
type Client struct {
	cfg       *core.Config
	store     core.ICacheStore
	pools     core.IPoolService
	positions core.IPositionService
	history   core.ITransactionService
	builder   core.IRequestBuilder
	submitter core.ISubmitService
	ledger    core.ILedgerService
}

// New client against the shipped rpc collaborator.
func New(cfg *core.Config) *Client {
	collaborator := rpc.New(cfg.Network)
	return NewWithCollaborators(cfg, collaborator, collaborator, collaborator)
}

// NewWithCollaborators client over caller-supplied ledger collaborators.
func NewWithCollaborators(cfg *core.Config, reader core.IContractReader, invoker core.IContractInvoker, ledger core.ILedgerService) *Client {
	store := cache.NewStore(cfg.Cache.Capacity)
	executor := cache.NewExecutor(store, cfg.DefaultTTL())

	pools := pool.New(cfg, reader, executor)
	return &Client{
		cfg:       cfg,
		store:     store,
		pools:     pools,
		positions: position.New(cfg, reader, pools, executor),
		history:   history.New(ledger, executor),
		builder:   request.New(pools),
		submitter: submitter.New(cfg, invoker),
		ledger:    ledger,
	}
}

// GetPoolStats normalized pool snapshot under the given cache policy.
func (c *Client) GetPoolStats(ctx context.Context, poolID string, policy core.CachePolicy) (*core.PoolSnapshot, error) {
	return c.pools.GetPoolStats(ctx, poolID, policy)
}

// GetUserPosition the account's position in one pool.
func (c *Client) GetUserPosition(ctx context.Context, accountID, poolID string, policy core.CachePolicy) (*core.PositionSnapshot, error) {
	return c.positions.GetUserPosition(ctx, accountID, poolID, policy)
}

// GetUserPositions positions across every configured pool.
func (c *Client) GetUserPositions(ctx context.Context, accountID string, policy core.CachePolicy) ([]*core.PositionSnapshot, error) {
	return c.positions.GetUserPositions(ctx, accountID, policy)
}

// GetAccount current sequence number for the account, needed by callers
// signing the submitted transaction outside the sdk.
func (c *Client) GetAccount(ctx context.Context, accountID string) (*core.Account, error) {
	return c.ledger.GetAccount(ctx, accountID)
}

// GetTransactionHistory recent ledger activity for the account.
func (c *Client) GetTransactionHistory(ctx context.Context, accountID string, limit int, policy core.CachePolicy) ([]*core.Transaction, error) {
	return c.history.GetTransactionHistory(ctx, accountID, limit, policy)
}

// BuildRequest validated request without submitting it, for callers
// assembling multi-operation batches.
func (c *Client) BuildRequest(ctx context.Context, accountID, poolID, address string, amount decimal.Decimal, kind core.RequestType) (*core.FundOperationRequest, error) {
	return c.builder.Build(ctx, accountID, poolID, address, amount, kind)
}

// SubmitRequest submit one already-built request.
func (c *Client) SubmitRequest(ctx context.Context, req *core.FundOperationRequest) (*core.OperationOutcome, error) {
	return c.submitter.Submit(ctx, []*core.FundOperationRequest{req})
}

// SubmitRequests submit a batch as one atomic transaction.
func (c *Client) SubmitRequests(ctx context.Context, requests []*core.FundOperationRequest) (*core.OperationOutcome, error) {
	return c.submitter.Submit(ctx, requests)
}

// Deposit supply assets into the pool.
func (c *Client) Deposit(ctx context.Context, accountID, poolID, assetID string, amount decimal.Decimal) (*core.OperationOutcome, error) {
	return c.run(ctx, accountID, poolID, assetID, amount, core.RequestTypeDeposit)
}

// Withdraw withdraw a plain deposit.
func (c *Client) Withdraw(ctx context.Context, accountID, poolID, assetID string, amount decimal.Decimal) (*core.OperationOutcome, error) {
	return c.run(ctx, accountID, poolID, assetID, amount, core.RequestTypeWithdraw)
}

// DepositCollateral supply assets as collateral.
func (c *Client) DepositCollateral(ctx context.Context, accountID, poolID, assetID string, amount decimal.Decimal) (*core.OperationOutcome, error) {
	return c.run(ctx, accountID, poolID, assetID, amount, core.RequestTypeDepositCollateral)
}

// WithdrawCollateral withdraw posted collateral.
func (c *Client) WithdrawCollateral(ctx context.Context, accountID, poolID, assetID string, amount decimal.Decimal) (*core.OperationOutcome, error) {
	return c.run(ctx, accountID, poolID, assetID, amount, core.RequestTypeWithdrawCollateral)
}

// Borrow borrow against posted collateral.
func (c *Client) Borrow(ctx context.Context, accountID, poolID, assetID string, amount decimal.Decimal) (*core.OperationOutcome, error) {
	return c.run(ctx, accountID, poolID, assetID, amount, core.RequestTypeBorrow)
}

// Repay repay an open borrow.
func (c *Client) Repay(ctx context.Context, accountID, poolID, assetID string, amount decimal.Decimal) (*core.OperationOutcome, error) {
	return c.run(ctx, accountID, poolID, assetID, amount, core.RequestTypeRepay)
}

// InvalidateCache drop every cached entry.
func (c *Client) InvalidateCache() {
	c.store.Clear()
}

func (c *Client) run(ctx context.Context, accountID, poolID, assetID string, amount decimal.Decimal, kind core.RequestType) (*core.OperationOutcome, error) {
	req, err := c.builder.Build(ctx, accountID, poolID, assetID, amount, kind)
	if err != nil {
		return nil, err
	}
	return c.submitter.Submit(ctx, []*core.FundOperationRequest{req})
}
