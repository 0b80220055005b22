package core

import (
	"context"

	"github.com/shopspring/decimal"
)

// RequestType fund operation kind. Ordinals are the on-chain request_type
// values and must not be reordered.
type RequestType int

const (
	// RequestTypeDeposit deposit into the pool
	RequestTypeDeposit RequestType = 0
	// RequestTypeWithdraw withdraw a plain deposit
	RequestTypeWithdraw RequestType = 1
	// RequestTypeDepositCollateral deposit as collateral
	RequestTypeDepositCollateral RequestType = 2
	// RequestTypeWithdrawCollateral withdraw collateral
	RequestTypeWithdrawCollateral RequestType = 3
	// RequestTypeBorrow borrow against collateral
	RequestTypeBorrow RequestType = 4
	// RequestTypeRepay repay a borrow
	RequestTypeRepay RequestType = 5
)

// RequestTypes all kinds, in ordinal order.
func RequestTypes() []RequestType {
	return []RequestType{
		RequestTypeDeposit,
		RequestTypeWithdraw,
		RequestTypeDepositCollateral,
		RequestTypeWithdrawCollateral,
		RequestTypeBorrow,
		RequestTypeRepay,
	}
}

func (t RequestType) String() string {
	switch t {
	case RequestTypeDeposit:
		return "deposit"
	case RequestTypeWithdraw:
		return "withdraw"
	case RequestTypeDepositCollateral:
		return "deposit_collateral"
	case RequestTypeWithdrawCollateral:
		return "withdraw_collateral"
	case RequestTypeBorrow:
		return "borrow"
	case RequestTypeRepay:
		return "repay"
	default:
		return "unknown"
	}
}

// IsSupply true for the two deposit-side kinds.
func (t RequestType) IsSupply() bool {
	return t == RequestTypeDeposit || t == RequestTypeDepositCollateral
}

// IsExit true for the kinds that must always be admitted so users can
// unwind a position regardless of pool status.
func (t RequestType) IsExit() bool {
	switch t {
	case RequestTypeWithdraw, RequestTypeWithdrawCollateral, RequestTypeRepay:
		return true
	default:
		return false
	}
}

// FundOperationRequest a validated fund operation. Immutable once built;
// identity is structural.
type FundOperationRequest struct {
	Kind      RequestType     `json:"kind"`
	Address   string          `json:"address"`
	Amount    decimal.Decimal `json:"amount"`
	AccountID string          `json:"account_id"`
	PoolID    string          `json:"pool_id"`
	Memo      string          `json:"memo,omitempty"`
}

// ContractRequest the structural record the pool contract's submit entry
// expects for each request. Amount stays decimal; fixed-point scaling is
// the serializer's contract with the ledger.
type ContractRequest struct {
	RequestType int             `json:"request_type"`
	Address     string          `json:"address"`
	Amount      decimal.Decimal `json:"amount"`
}

// IRequestBuilder request builder interface
type IRequestBuilder interface {
	Build(ctx context.Context, accountID, poolID, address string, amount decimal.Decimal, kind RequestType) (*FundOperationRequest, error)
}

// ISubmitService batch submit interface
type ISubmitService interface {
	Submit(ctx context.Context, requests []*FundOperationRequest) (*OperationOutcome, error)
}
