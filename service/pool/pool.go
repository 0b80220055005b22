package pool

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fox-one/pkg/logger"
	"github.com/shopspring/decimal"

	"github.com/christopherkarani/blend-client/core"
	"github.com/christopherkarani/blend-client/internal/blend"
)

const keyPoolData = "PoolData"

type service struct {
	cfg      *core.Config
	reader   core.IContractReader
	executor core.ICachePolicyExecutor
}

// New new pool service
func New(cfg *core.Config, reader core.IContractReader, executor core.ICachePolicyExecutor) core.IPoolService {
	return &service{
		cfg:      cfg,
		reader:   reader,
		executor: executor,
	}
}

func (s *service) GetPoolStats(ctx context.Context, poolID string, policy core.CachePolicy) (*core.PoolSnapshot, error) {
	contractID, ok := s.cfg.ContractID(poolID)
	if !ok {
		return nil, core.ErrorWith(core.ErrPoolNotFound, fmt.Sprintf("unknown pool %q", poolID))
	}

	v, err := s.executor.Execute(ctx, statsKey(poolID), policy, func(ctx context.Context) (interface{}, error) {
		return s.fetchPool(ctx, poolID, contractID)
	})
	if err != nil {
		return nil, err
	}

	snapshot, ok := v.(*core.PoolSnapshot)
	if !ok {
		return nil, core.ErrorWith(core.ErrUnknown, "unexpected cache value for pool stats")
	}
	return snapshot, nil
}

// GetPoolStatus status under its own cache key, never the stats key. A
// long-lived stats entry must not extend how stale a status read can be.
func (s *service) GetPoolStatus(ctx context.Context, poolID string, policy core.CachePolicy) (core.PoolStatus, error) {
	contractID, ok := s.cfg.ContractID(poolID)
	if !ok {
		return 0, core.ErrorWith(core.ErrPoolNotFound, fmt.Sprintf("unknown pool %q", poolID))
	}

	v, err := s.executor.Execute(ctx, statusKey(poolID), policy, func(ctx context.Context) (interface{}, error) {
		snapshot, err := s.fetchPool(ctx, poolID, contractID)
		if err != nil {
			return nil, err
		}
		return snapshot.Status, nil
	})
	if err != nil {
		return 0, err
	}

	status, ok := v.(core.PoolStatus)
	if !ok {
		return 0, core.ErrorWith(core.ErrUnknown, "unexpected cache value for pool status")
	}
	return status, nil
}

// ValidateOperation admit or reject kind against the pool's current status.
// The status read goes through the cache with a short ttl; a failed read is
// a validation failure, never a silent admission.
func (s *service) ValidateOperation(ctx context.Context, poolID string, kind core.RequestType) error {
	status, err := s.GetPoolStatus(ctx, poolID, core.UseCache(s.cfg.StatusTTL()))
	if err != nil {
		if core.CodeOf(err).IsValidation() {
			return err
		}
		return core.WrapError(core.ErrPoolStatusUnknown, fmt.Sprintf("pool %s status unavailable", poolID), err)
	}

	if !blend.OperationAllowed(status, kind) {
		return core.ErrorWith(core.ErrOperationForbidden, fmt.Sprintf("pool %s is %s, %s not admitted", poolID, status, kind))
	}
	return nil
}

func (s *service) fetchPool(ctx context.Context, poolID, contractID string) (*core.PoolSnapshot, error) {
	log := logger.FromContext(ctx).WithField("service", "pool")

	raw, err := s.reader.GetContractData(ctx, contractID, keyPoolData)
	if err != nil {
		log.WithError(err).Errorln("read pool data")
		return nil, err
	}

	var data poolData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, core.WrapError(core.ErrSerializationFailure, "malformed pool data", err)
	}

	return normalize(poolID, &data)
}

func statsKey(poolID string) string {
	return fmt.Sprintf("pool:stats:%s", poolID)
}

func statusKey(poolID string) string {
	return fmt.Sprintf("pool:status:%s", poolID)
}

// poolData wire shape of the contract's pool document.
type poolData struct {
	Status           int             `json:"status"`
	BackstopAmount   decimal.Decimal `json:"backstop_amount"`
	BackstopTakeRate decimal.Decimal `json:"backstop_take_rate"`
	MaxPositions     int             `json:"max_positions"`
	MinCollateral    decimal.Decimal `json:"min_collateral"`
	Reserves         []reserveData   `json:"reserves"`
}

type reserveData struct {
	AssetID          string          `json:"asset_id"`
	Code             string          `json:"code"`
	Issuer           string          `json:"issuer"`
	Price            decimal.Decimal `json:"price"`
	Supplied         decimal.Decimal `json:"supplied"`
	Borrowed         decimal.Decimal `json:"borrowed"`
	CollateralFactor decimal.Decimal `json:"c_factor"`
	LiabilityFactor  decimal.Decimal `json:"l_factor"`
	BaseRate         decimal.Decimal `json:"base_rate"`
	UtilMultiplier   decimal.Decimal `json:"util_mult"`
	JumpPoint        decimal.Decimal `json:"jump_point"`
	JumpMultiplier   decimal.Decimal `json:"jump_mult"`
}

// normalize wire document into a validated snapshot with derived rates.
func normalize(poolID string, data *poolData) (*core.PoolSnapshot, error) {
	snapshot := &core.PoolSnapshot{
		PoolID:           poolID,
		Status:           core.PoolStatus(data.Status),
		BackstopAmount:   data.BackstopAmount,
		BackstopTakeRate: data.BackstopTakeRate,
		MaxPositions:     data.MaxPositions,
		MinCollateral:    data.MinCollateral,
		UpdatedAt:        time.Now(),
	}

	for _, r := range data.Reserves {
		asset := &core.AssetSnapshot{
			AssetID:          r.AssetID,
			Code:             r.Code,
			Issuer:           r.Issuer,
			Price:            r.Price,
			Supplied:         r.Supplied,
			Borrowed:         r.Borrowed,
			CollateralFactor: r.CollateralFactor,
			LiabilityFactor:  r.LiabilityFactor,
			BaseRate:         r.BaseRate,
			UtilMultiplier:   r.UtilMultiplier,
			JumpPoint:        r.JumpPoint,
			JumpMultiplier:   r.JumpMultiplier,
		}
		if err := asset.Validate(); err != nil {
			return nil, err
		}

		asset.Utilization = blend.UtilizationRate(asset.Supplied, asset.Borrowed)
		asset.BorrowAPY = blend.BorrowRate(asset.Utilization, asset.BaseRate, asset.UtilMultiplier, asset.JumpPoint, asset.JumpMultiplier)
		asset.SupplyAPY = blend.SupplyRate(asset.Utilization, asset.BorrowAPY, snapshot.BackstopTakeRate)

		snapshot.TotalSupplied = snapshot.TotalSupplied.Add(asset.Supplied.Mul(asset.Price))
		snapshot.TotalBorrowed = snapshot.TotalBorrowed.Add(asset.Borrowed.Mul(asset.Price))
		snapshot.Assets = append(snapshot.Assets, asset)
	}

	snapshot.Utilization = blend.UtilizationRate(snapshot.TotalSupplied, snapshot.TotalBorrowed)
	return snapshot, nil
}
