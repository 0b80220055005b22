package position

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/fox-one/pkg/logger"
	"github.com/shopspring/decimal"

	"github.com/christopherkarani/blend-client/core"
	"github.com/christopherkarani/blend-client/internal/blend"
)

type service struct {
	cfg      *core.Config
	reader   core.IContractReader
	pools    core.IPoolService
	executor core.ICachePolicyExecutor
}

// New new position service
func New(cfg *core.Config, reader core.IContractReader, pools core.IPoolService, executor core.ICachePolicyExecutor) core.IPositionService {
	return &service{
		cfg:      cfg,
		reader:   reader,
		pools:    pools,
		executor: executor,
	}
}

func (s *service) GetUserPosition(ctx context.Context, accountID, poolID string, policy core.CachePolicy) (*core.PositionSnapshot, error) {
	contractID, ok := s.cfg.ContractID(poolID)
	if !ok {
		return nil, core.ErrorWith(core.ErrPoolNotFound, fmt.Sprintf("unknown pool %q", poolID))
	}

	v, err := s.executor.Execute(ctx, positionKey(accountID, poolID), policy, func(ctx context.Context) (interface{}, error) {
		return s.fetchPosition(ctx, accountID, poolID, contractID, policy)
	})
	if err != nil {
		return nil, err
	}

	snapshot, ok := v.(*core.PositionSnapshot)
	if !ok {
		return nil, core.ErrorWith(core.ErrUnknown, "unexpected cache value for position")
	}
	return snapshot, nil
}

// GetUserPositions positions across every configured pool; pools where the
// account holds nothing are skipped.
func (s *service) GetUserPositions(ctx context.Context, accountID string, policy core.CachePolicy) ([]*core.PositionSnapshot, error) {
	poolIDs := make([]string, 0, len(s.cfg.Pools))
	for poolID := range s.cfg.Pools {
		poolIDs = append(poolIDs, poolID)
	}
	sort.Strings(poolIDs)

	var snapshots []*core.PositionSnapshot
	for _, poolID := range poolIDs {
		snapshot, err := s.GetUserPosition(ctx, accountID, poolID, policy)
		if err != nil {
			if core.CodeOf(err) == core.ErrNotFound {
				continue
			}
			return nil, err
		}
		snapshots = append(snapshots, snapshot)
	}

	return snapshots, nil
}

func (s *service) fetchPosition(ctx context.Context, accountID, poolID, contractID string, policy core.CachePolicy) (*core.PositionSnapshot, error) {
	log := logger.FromContext(ctx).WithField("service", "position")

	raw, err := s.reader.GetContractData(ctx, contractID, fmt.Sprintf("Positions:%s", accountID))
	if err != nil {
		log.WithError(err).Errorln("read positions")
		return nil, err
	}

	var data positionData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, core.WrapError(core.ErrSerializationFailure, "malformed position data", err)
	}

	pool, err := s.pools.GetPoolStats(ctx, poolID, policy)
	if err != nil {
		return nil, err
	}

	return derive(accountID, poolID, &data, pool)
}

func positionKey(accountID, poolID string) string {
	return fmt.Sprintf("position:%s:%s", accountID, poolID)
}

// positionData wire shape of the account's position document.
type positionData struct {
	Collateral  []legData `json:"collateral"`
	Liabilities []legData `json:"liabilities"`
	Supply      []legData `json:"supply"`
	DepositDate int64     `json:"deposit_date"`
}

type legData struct {
	AssetID   string          `json:"asset_id"`
	Amount    decimal.Decimal `json:"amount"`
	Principal decimal.Decimal `json:"principal"`
}

// derive price the raw legs against the pool snapshot and compute the
// derived health factor and yield. Pure given its inputs.
func derive(accountID, poolID string, data *positionData, pool *core.PoolSnapshot) (*core.PositionSnapshot, error) {
	snapshot := &core.PositionSnapshot{
		AccountID:   accountID,
		PoolID:      poolID,
		DepositDate: time.Unix(data.DepositDate, 0).UTC(),
		UpdatedAt:   time.Now(),
	}

	var (
		collateralLegs []blend.Leg
		borrowLegs     []blend.Leg
		supplyValue    = decimal.Zero
		principal      = decimal.Zero
		weightedRate   = decimal.Zero
	)

	appendLeg := func(leg legData, factorOf func(*core.AssetSnapshot) decimal.Decimal) (*core.AssetPosition, *core.AssetSnapshot, blend.Leg, error) {
		asset := pool.Asset(leg.AssetID)
		if asset == nil {
			return nil, nil, blend.Leg{}, core.ErrorWith(core.ErrSerializationFailure, fmt.Sprintf("position references unknown asset %q", leg.AssetID))
		}
		pos := &core.AssetPosition{
			AssetID:   leg.AssetID,
			Code:      asset.Code,
			Amount:    leg.Amount,
			Principal: leg.Principal,
			Price:     asset.Price,
		}
		return pos, asset, blend.Leg{Value: pos.Value(), Factor: factorOf(asset)}, nil
	}

	for _, leg := range data.Collateral {
		pos, asset, riskLeg, err := appendLeg(leg, func(a *core.AssetSnapshot) decimal.Decimal { return a.CollateralFactor })
		if err != nil {
			return nil, err
		}
		snapshot.Collateral = append(snapshot.Collateral, pos)
		collateralLegs = append(collateralLegs, riskLeg)
		supplyValue = supplyValue.Add(pos.Value())
		principal = principal.Add(pos.Principal.Mul(pos.Price))
		weightedRate = weightedRate.Add(pos.Value().Mul(asset.SupplyAPY))
	}

	for _, leg := range data.Liabilities {
		pos, _, riskLeg, err := appendLeg(leg, func(a *core.AssetSnapshot) decimal.Decimal { return a.LiabilityFactor })
		if err != nil {
			return nil, err
		}
		snapshot.Borrows = append(snapshot.Borrows, pos)
		borrowLegs = append(borrowLegs, riskLeg)
	}

	for _, leg := range data.Supply {
		pos, asset, _, err := appendLeg(leg, func(a *core.AssetSnapshot) decimal.Decimal { return decimal.Zero })
		if err != nil {
			return nil, err
		}
		snapshot.Deposits = append(snapshot.Deposits, pos)
		supplyValue = supplyValue.Add(pos.Value())
		principal = principal.Add(pos.Principal.Mul(pos.Price))
		weightedRate = weightedRate.Add(pos.Value().Mul(asset.SupplyAPY))
	}

	snapshot.HealthFactor = blend.HealthFactor(collateralLegs, borrowLegs)
	snapshot.YieldEarned = blend.YieldEarned(supplyValue, principal)
	snapshot.BorrowCapacity = blend.MaxSafeBorrow(collateralLegs, borrowLegs, blend.One)
	snapshot.WithdrawCapacity = blend.MaxSafeWithdraw(collateralLegs, borrowLegs, blend.One)

	if supplyValue.IsPositive() {
		rate := weightedRate.Div(supplyValue)
		snapshot.ProjectedYield = blend.AccruedValue(supplyValue, rate, blend.Year).Sub(supplyValue).Truncate(blend.MaxPrecision)
	}
	return snapshot, nil
}
