package core

import (
	"context"
	"encoding/json"
)

// InvokeResult raw result of a contract invocation, before reconciliation.
type InvokeResult struct {
	ReturnValue     json.RawMessage `json:"return_value"`
	TransactionHash string          `json:"transaction_hash"`
	Ledger          int64           `json:"ledger"`
	RawResult       json.RawMessage `json:"raw_result"`
}

// IContractReader read interface of the ledger rpc collaborator.
type IContractReader interface {
	GetContractData(ctx context.Context, contractID, key string) (json.RawMessage, error)
}

// IContractInvoker write interface of the ledger rpc collaborator. The
// collaborator owns envelope construction, signing, fixed-point scaling and
// confirmation; this sdk only shapes the call.
type IContractInvoker interface {
	InvokeContract(ctx context.Context, contractID, method string, args []interface{}) (*InvokeResult, error)
}

// Account ledger account context used when building envelopes.
type Account struct {
	ID       string `json:"id"`
	Sequence int64  `json:"sequence"`
}

// ILedgerService account and history reads from the ledger.
type ILedgerService interface {
	GetAccount(ctx context.Context, accountID string) (*Account, error)
	GetTransactions(ctx context.Context, accountID string, limit int) ([]*Transaction, error)
}
