package blend

import (
	"github.com/christopherkarani/blend-client/core"
)

// Status thresholds. The protocol reserves unused ordinals between the
// named statuses, so admission classifies by numeric threshold rather than
// by exhaustive case match; an unrecognized intermediate value degrades to
// the nearest stricter behavior instead of falling through to "admitted".
const (
	// maxStatusBorrow highest status that still admits borrowing
	maxStatusBorrow = core.PoolStatusActive
	// maxStatusSupply highest status that still admits deposits
	maxStatusSupply = core.PoolStatusFrozen - 1
	// maxStatusAny highest status that admits anything at all
	maxStatusAny = core.PoolStatusSetup - 1
)

// OperationAllowed admission table over pool status, strictest rule first.
// Exit-side kinds (withdraw, withdraw collateral, repay) are admitted for
// every status short of setup so users can always unwind.
func OperationAllowed(status core.PoolStatus, kind core.RequestType) bool {
	if status > maxStatusAny {
		return false
	}

	switch {
	case kind.IsSupply():
		return status <= maxStatusSupply
	case kind == core.RequestTypeBorrow:
		return status <= maxStatusBorrow
	default:
		return kind.IsExit()
	}
}
