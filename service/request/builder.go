package request

import (
	"context"
	"fmt"

	"github.com/asaskevich/govalidator"
	"github.com/shopspring/decimal"

	"github.com/christopherkarani/blend-client/core"
	"github.com/christopherkarani/blend-client/pkg/number"
)

type builder struct {
	pools core.IPoolService
}

// New new request builder
func New(pools core.IPoolService) core.IRequestBuilder {
	return &builder{pools: pools}
}

// Build validate locally, then against pool status, and emit an immutable
// request. Local defects surface before any status lookup happens.
func (b *builder) Build(ctx context.Context, accountID, poolID, address string, amount decimal.Decimal, kind core.RequestType) (*core.FundOperationRequest, error) {
	if !number.Positive(amount) {
		return nil, core.ErrorWith(core.ErrInvalidAmount, fmt.Sprintf("amount must be positive, got %s", amount))
	}

	if !validAddress(accountID) {
		return nil, core.ErrorWith(core.ErrInvalidAddress, "malformed account id")
	}
	if !validAddress(address) {
		return nil, core.ErrorWith(core.ErrInvalidAddress, "malformed target address")
	}

	switch kind {
	case core.RequestTypeDeposit, core.RequestTypeWithdraw,
		core.RequestTypeDepositCollateral, core.RequestTypeWithdrawCollateral,
		core.RequestTypeBorrow, core.RequestTypeRepay:
	default:
		return nil, core.ErrorWith(core.ErrOperationForbidden, fmt.Sprintf("unsupported request type %d", kind))
	}

	if err := b.pools.ValidateOperation(ctx, poolID, kind); err != nil {
		return nil, err
	}

	return &core.FundOperationRequest{
		Kind:      kind,
		Address:   address,
		Amount:    amount,
		AccountID: accountID,
		PoolID:    poolID,
	}, nil
}

func validAddress(v string) bool {
	return v != "" && govalidator.IsASCII(v) && !govalidator.HasWhitespace(v)
}
