package core

import (
	"encoding/json"
	"time"
)

// OperationOutcome result of one submitted batch. A batch of N requests
// yields exactly one outcome.
type OperationOutcome struct {
	Success         bool            `json:"success"`
	TransactionHash string          `json:"transaction_hash,omitempty"`
	Ledger          int64           `json:"ledger,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	RawResult       json.RawMessage `json:"raw_result,omitempty"`
	ErrorMessage    string          `json:"error_message,omitempty"`
}

// FailureOutcome outcome view of a failed submission, for callers that
// present outcomes rather than errors.
func FailureOutcome(err error) *OperationOutcome {
	return &OperationOutcome{
		Success:      false,
		CreatedAt:    time.Now(),
		ErrorMessage: err.Error(),
	}
}
