package position

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/christopherkarani/blend-client/core"
	"github.com/christopherkarani/blend-client/service/cache"
	"github.com/christopherkarani/blend-client/service/pool"
)

const poolDoc = `{
	"status": 0,
	"backstop_amount": "50000",
	"backstop_take_rate": "0.1",
	"max_positions": 4,
	"min_collateral": "10",
	"reserves": [
		{
			"asset_id": "USDC", "code": "USDC", "issuer": "GISSUER",
			"price": "1", "supplied": "10000", "borrowed": "2500",
			"c_factor": "0.9", "l_factor": "0.95",
			"base_rate": "0.01", "util_mult": "0.05",
			"jump_point": "0.8", "jump_mult": "0.5"
		},
		{
			"asset_id": "XLM", "code": "XLM", "issuer": "",
			"price": "0.5", "supplied": "20000", "borrowed": "5000",
			"c_factor": "0.75", "l_factor": "0.8",
			"base_rate": "0.02", "util_mult": "0.1",
			"jump_point": "0.7", "jump_mult": "1"
		}
	]
}`

type fakeReader struct {
	positionDoc string
	calls       int
}

func (r *fakeReader) GetContractData(ctx context.Context, contractID, key string) (json.RawMessage, error) {
	r.calls++
	if strings.HasPrefix(key, "Positions:") {
		return json.RawMessage(r.positionDoc), nil
	}
	return json.RawMessage(poolDoc), nil
}

func newService(reader *fakeReader) core.IPositionService {
	cfg := &core.Config{
		Pools: map[string]string{"main": "CPOOL"},
		Cache: core.CacheConfig{DefaultTTL: time.Minute, StatusTTL: time.Minute},
	}
	executor := cache.NewExecutor(cache.NewStore(64), cfg.DefaultTTL())
	pools := pool.New(cfg, reader, executor)
	return New(cfg, reader, pools, executor)
}

func TestGetUserPosition(t *testing.T) {
	reader := &fakeReader{positionDoc: `{
		"collateral": [{"asset_id": "USDC", "amount": "1000", "principal": "950"}],
		"liabilities": [{"asset_id": "XLM", "amount": "800", "principal": "800"}],
		"supply": [{"asset_id": "XLM", "amount": "200", "principal": "180"}],
		"deposit_date": 1700000000
	}`}
	srv := newService(reader)

	snapshot, err := srv.GetUserPosition(context.Background(), "GACCOUNT", "main", core.NoCache())
	require.NoError(t, err)
	require.Equal(t, "GACCOUNT", snapshot.AccountID)
	require.Len(t, snapshot.Collateral, 1)
	require.Len(t, snapshot.Borrows, 1)
	require.Len(t, snapshot.Deposits, 1)

	// collateral 1000 USDC @ 1 * 0.9 = 900; borrow 800 XLM @ 0.5 / 0.8 = 500
	require.True(t, snapshot.HealthFactor.Equal(decimal.NewFromFloat(1.8)), "got %s", snapshot.HealthFactor)

	// supply side value 1000 + 100, principal 950 + 90
	require.True(t, snapshot.YieldEarned.Equal(decimal.NewFromInt(60)), "got %s", snapshot.YieldEarned)

	// adjusted collateral 900 against adjusted borrows 500
	require.True(t, snapshot.BorrowCapacity.Equal(decimal.NewFromInt(400)), "got %s", snapshot.BorrowCapacity)
	require.True(t, snapshot.WithdrawCapacity.Equal(decimal.NewFromInt(400)), "got %s", snapshot.WithdrawCapacity)

	// 1100 supplied at the value-weighted supply rate grows about 6.09 in a year
	require.True(t, snapshot.ProjectedYield.GreaterThan(decimal.NewFromInt(6)), "got %s", snapshot.ProjectedYield)
	require.True(t, snapshot.ProjectedYield.LessThan(decimal.NewFromInt(7)), "got %s", snapshot.ProjectedYield)

	require.Equal(t, int64(1700000000), snapshot.DepositDate.Unix())
}

func TestGetUserPositionNoBorrows(t *testing.T) {
	reader := &fakeReader{positionDoc: `{
		"collateral": [{"asset_id": "USDC", "amount": "500", "principal": "500"}],
		"liabilities": [],
		"supply": [],
		"deposit_date": 1700000000
	}`}
	srv := newService(reader)

	snapshot, err := srv.GetUserPosition(context.Background(), "GACCOUNT", "main", core.NoCache())
	require.NoError(t, err)
	require.True(t, snapshot.HealthFactor.Equal(decimal.New(1, 9)), "no borrows reports the sentinel, got %s", snapshot.HealthFactor)
	require.True(t, snapshot.YieldEarned.IsZero(), "fresh deposit has no yield")

	// nothing borrowed: both capacities are the full adjusted collateral
	require.True(t, snapshot.BorrowCapacity.Equal(decimal.NewFromInt(450)), "got %s", snapshot.BorrowCapacity)
	require.True(t, snapshot.WithdrawCapacity.Equal(decimal.NewFromInt(450)), "got %s", snapshot.WithdrawCapacity)
}

func TestGetUserPositionUnknownAsset(t *testing.T) {
	reader := &fakeReader{positionDoc: `{
		"collateral": [{"asset_id": "DOGE", "amount": "1", "principal": "1"}],
		"deposit_date": 0
	}`}
	srv := newService(reader)

	_, err := srv.GetUserPosition(context.Background(), "GACCOUNT", "main", core.NoCache())
	require.Error(t, err)
	require.Equal(t, core.ErrSerializationFailure, core.CodeOf(err))
}

func TestGetUserPositions(t *testing.T) {
	reader := &fakeReader{positionDoc: `{
		"collateral": [{"asset_id": "USDC", "amount": "100", "principal": "100"}],
		"deposit_date": 0
	}`}
	srv := newService(reader)

	snapshots, err := srv.GetUserPositions(context.Background(), "GACCOUNT", core.NoCache())
	require.NoError(t, err)
	require.Len(t, snapshots, 1)
	require.Equal(t, "main", snapshots[0].PoolID)
}
