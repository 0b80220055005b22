package history

import (
	"context"
	"fmt"

	"github.com/christopherkarani/blend-client/core"
)

type service struct {
	ledger   core.ILedgerService
	executor core.ICachePolicyExecutor
}

// New new transaction history service
func New(ledger core.ILedgerService, executor core.ICachePolicyExecutor) core.ITransactionService {
	return &service{
		ledger:   ledger,
		executor: executor,
	}
}

func (s *service) GetTransactionHistory(ctx context.Context, accountID string, limit int, policy core.CachePolicy) ([]*core.Transaction, error) {
	key := fmt.Sprintf("history:%s:%d", accountID, limit)

	v, err := s.executor.Execute(ctx, key, policy, func(ctx context.Context) (interface{}, error) {
		return s.ledger.GetTransactions(ctx, accountID, limit)
	})
	if err != nil {
		return nil, err
	}

	transactions, ok := v.([]*core.Transaction)
	if !ok {
		return nil, core.ErrorWith(core.ErrUnknown, "unexpected cache value for history")
	}
	return transactions, nil
}
