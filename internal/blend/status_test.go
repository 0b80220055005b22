package blend

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/christopherkarani/blend-client/core"
)

func TestOperationAllowed(t *testing.T) {
	cases := []struct {
		status  core.PoolStatus
		kind    core.RequestType
		allowed bool
	}{
		// active admits everything
		{core.PoolStatusActive, core.RequestTypeDeposit, true},
		{core.PoolStatusActive, core.RequestTypeWithdraw, true},
		{core.PoolStatusActive, core.RequestTypeDepositCollateral, true},
		{core.PoolStatusActive, core.RequestTypeWithdrawCollateral, true},
		{core.PoolStatusActive, core.RequestTypeBorrow, true},
		{core.PoolStatusActive, core.RequestTypeRepay, true},

		// on ice blocks borrow, deposits still fine
		{core.PoolStatusOnIce, core.RequestTypeBorrow, false},
		{core.PoolStatusOnIce, core.RequestTypeDeposit, true},
		{core.PoolStatusOnIce, core.RequestTypeDepositCollateral, true},
		{core.PoolStatusOnIce, core.RequestTypeRepay, true},

		// frozen blocks the supply side, exits stay open
		{core.PoolStatusFrozen, core.RequestTypeDeposit, false},
		{core.PoolStatusFrozen, core.RequestTypeDepositCollateral, false},
		{core.PoolStatusFrozen, core.RequestTypeBorrow, false},
		{core.PoolStatusFrozen, core.RequestTypeWithdraw, true},
		{core.PoolStatusFrozen, core.RequestTypeWithdrawCollateral, true},
		{core.PoolStatusFrozen, core.RequestTypeRepay, true},

		// setup rejects everything
		{core.PoolStatusSetup, core.RequestTypeDeposit, false},
		{core.PoolStatusSetup, core.RequestTypeWithdraw, false},
		{core.PoolStatusSetup, core.RequestTypeBorrow, false},
		{core.PoolStatusSetup, core.RequestTypeRepay, false},
	}

	for _, c := range cases {
		got := OperationAllowed(c.status, c.kind)
		require.Equal(t, c.allowed, got, "status %s kind %s", c.status, c.kind)
	}
}

func TestOperationAllowedReservedStatuses(t *testing.T) {
	// reserved ordinals between the named statuses classify by threshold
	require.False(t, OperationAllowed(core.PoolStatus(2), core.RequestTypeBorrow))
	require.True(t, OperationAllowed(core.PoolStatus(2), core.RequestTypeDeposit))

	require.False(t, OperationAllowed(core.PoolStatus(4), core.RequestTypeDeposit))
	require.False(t, OperationAllowed(core.PoolStatus(5), core.RequestTypeDepositCollateral))
	require.True(t, OperationAllowed(core.PoolStatus(5), core.RequestTypeRepay))

	// anything at or beyond setup stays locked
	require.False(t, OperationAllowed(core.PoolStatus(7), core.RequestTypeWithdraw))
}
