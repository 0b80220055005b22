package core

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// PoolStatus pool status reported by the pool contract. The ordinal space
// has reserved gaps; classify by threshold, not by exhaustive match.
type PoolStatus int

const (
	// PoolStatusActive active
	PoolStatusActive PoolStatus = 0
	// PoolStatusOnIce on ice, borrowing disabled
	PoolStatusOnIce PoolStatus = 1
	// PoolStatusFrozen frozen, supplying disabled
	PoolStatusFrozen PoolStatus = 3
	// PoolStatusSetup still in setup, nothing admitted
	PoolStatusSetup PoolStatus = 6
)

func (s PoolStatus) String() string {
	switch s {
	case PoolStatusActive:
		return "active"
	case PoolStatusOnIce:
		return "on_ice"
	case PoolStatusFrozen:
		return "frozen"
	case PoolStatusSetup:
		return "setup"
	default:
		return fmt.Sprintf("status_%d", int(s))
	}
}

// PoolSnapshot pool info at a point in time
type PoolSnapshot struct {
	PoolID           string           `json:"pool_id"`
	Status           PoolStatus       `json:"status"`
	TotalSupplied    decimal.Decimal  `json:"total_supplied"`
	TotalBorrowed    decimal.Decimal  `json:"total_borrowed"`
	BackstopAmount   decimal.Decimal  `json:"backstop_amount"`
	BackstopTakeRate decimal.Decimal  `json:"backstop_take_rate"`
	MaxPositions     int              `json:"max_positions"`
	MinCollateral    decimal.Decimal  `json:"min_collateral"`
	Utilization      decimal.Decimal  `json:"utilization"`
	Assets           []*AssetSnapshot `json:"assets"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// Asset find the asset snapshot by asset id, nil if absent.
func (p *PoolSnapshot) Asset(assetID string) *AssetSnapshot {
	for _, a := range p.Assets {
		if a.AssetID == assetID {
			return a
		}
	}
	return nil
}

// AssetSnapshot per-asset reserve info inside a pool. Immutable value
// object; a refresh produces a new snapshot rather than mutating this one.
type AssetSnapshot struct {
	AssetID          string          `json:"asset_id"`
	Code             string          `json:"code"`
	Issuer           string          `json:"issuer"`
	Price            decimal.Decimal `json:"price"`
	Supplied         decimal.Decimal `json:"supplied"`
	Borrowed         decimal.Decimal `json:"borrowed"`
	CollateralFactor decimal.Decimal `json:"collateral_factor"`
	LiabilityFactor  decimal.Decimal `json:"liability_factor"`
	BaseRate         decimal.Decimal `json:"base_rate"`
	UtilMultiplier   decimal.Decimal `json:"util_multiplier"`
	JumpPoint        decimal.Decimal `json:"jump_point"`
	JumpMultiplier   decimal.Decimal `json:"jump_multiplier"`

	// derived at normalization, never read from the wire
	Utilization decimal.Decimal `json:"utilization"`
	BorrowAPY   decimal.Decimal `json:"borrow_apy"`
	SupplyAPY   decimal.Decimal `json:"supply_apy"`
}

// Validate range checks done once at the snapshot boundary; the
// calculators downstream assume well-formed inputs.
func (a *AssetSnapshot) Validate() error {
	one := decimal.New(1, 0)
	if a.Supplied.IsNegative() || a.Borrowed.IsNegative() || a.Price.IsNegative() {
		return ErrorWith(ErrSerializationFailure, fmt.Sprintf("asset %s: negative amount", a.AssetID))
	}
	if a.CollateralFactor.IsNegative() || a.CollateralFactor.GreaterThan(one) {
		return ErrorWith(ErrSerializationFailure, fmt.Sprintf("asset %s: collateral factor out of range", a.AssetID))
	}
	if a.LiabilityFactor.IsNegative() || a.LiabilityFactor.GreaterThan(one) {
		return ErrorWith(ErrSerializationFailure, fmt.Sprintf("asset %s: liability factor out of range", a.AssetID))
	}
	if a.BaseRate.IsNegative() || a.UtilMultiplier.IsNegative() || a.JumpPoint.IsNegative() || a.JumpMultiplier.IsNegative() {
		return ErrorWith(ErrSerializationFailure, fmt.Sprintf("asset %s: negative rate model parameter", a.AssetID))
	}
	return nil
}

// IPoolService pool read interface
type IPoolService interface {
	GetPoolStats(ctx context.Context, poolID string, policy CachePolicy) (*PoolSnapshot, error)
	GetPoolStatus(ctx context.Context, poolID string, policy CachePolicy) (PoolStatus, error)
	ValidateOperation(ctx context.Context, poolID string, kind RequestType) error
}
