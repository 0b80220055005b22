package core

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// AssetPosition a single asset leg of a user position.
type AssetPosition struct {
	AssetID   string          `json:"asset_id"`
	Code      string          `json:"code"`
	Amount    decimal.Decimal `json:"amount"`
	Principal decimal.Decimal `json:"principal"`
	Price     decimal.Decimal `json:"price"`
}

// Value amount priced in the pool's quote unit.
func (p *AssetPosition) Value() decimal.Decimal {
	return p.Amount.Mul(p.Price)
}

// PositionSnapshot a user's position in one pool. Derived entity: always
// recomputed from on-chain amounts plus asset pricing, never persisted
// authoritatively.
type PositionSnapshot struct {
	AccountID    string           `json:"account_id"`
	PoolID       string           `json:"pool_id"`
	Collateral   []*AssetPosition `json:"collateral"`
	Borrows      []*AssetPosition `json:"borrows"`
	Deposits     []*AssetPosition `json:"deposits"`
	HealthFactor decimal.Decimal  `json:"health_factor"`
	YieldEarned  decimal.Decimal  `json:"yield_earned"`
	// BorrowCapacity extra risk-adjusted borrow value admissible before the
	// health factor drops below 1.
	BorrowCapacity decimal.Decimal `json:"borrow_capacity"`
	// WithdrawCapacity risk-adjusted collateral value removable before the
	// health factor drops below 1.
	WithdrawCapacity decimal.Decimal `json:"withdraw_capacity"`
	// ProjectedYield supply-side yield over the next year at the pool's
	// current supply rates, continuously compounded.
	ProjectedYield decimal.Decimal `json:"projected_yield"`
	DepositDate    time.Time       `json:"deposit_date"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// IPositionService position read interface
type IPositionService interface {
	GetUserPosition(ctx context.Context, accountID, poolID string, policy CachePolicy) (*PositionSnapshot, error)
	GetUserPositions(ctx context.Context, accountID string, policy CachePolicy) ([]*PositionSnapshot, error)
}

// Transaction a normalized history record for an account.
type Transaction struct {
	Hash      string          `json:"hash"`
	Ledger    int64           `json:"ledger"`
	Kind      string          `json:"kind"`
	AssetID   string          `json:"asset_id"`
	Amount    decimal.Decimal `json:"amount"`
	Memo      string          `json:"memo,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// ITransactionService transaction history interface
type ITransactionService interface {
	GetTransactionHistory(ctx context.Context, accountID string, limit int, policy CachePolicy) ([]*Transaction, error)
}
