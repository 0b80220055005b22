package submitter

import (
	"context"
	"fmt"
	"time"

	"github.com/fox-one/pkg/logger"

	"github.com/christopherkarani/blend-client/core"
)

type service struct {
	cfg     *core.Config
	invoker core.IContractInvoker
}

// New new batch submitter
func New(cfg *core.Config, invoker core.IContractInvoker) core.ISubmitService {
	return &service{
		cfg:     cfg,
		invoker: invoker,
	}
}

// Submit encode the batch and submit it as one atomic contract invocation.
// Precondition: every request in the batch shares the first request's
// account id; the spender/from/to triple is taken from the first request
// and mixed-account batches are a caller programming error.
func (s *service) Submit(ctx context.Context, requests []*core.FundOperationRequest) (*core.OperationOutcome, error) {
	if len(requests) == 0 {
		return nil, core.ErrorWith(core.ErrEmptyBatch, "empty batch")
	}

	head := requests[0]
	contractID, ok := s.cfg.ContractID(head.PoolID)
	if !ok {
		return nil, core.ErrorWith(core.ErrPoolNotFound, fmt.Sprintf("unknown pool %q", head.PoolID))
	}

	vector := make([]core.ContractRequest, 0, len(requests))
	for _, req := range requests {
		encoded, err := encode(req)
		if err != nil {
			return nil, err
		}
		vector = append(vector, encoded)
	}

	log := logger.FromContext(ctx).WithFields(map[string]interface{}{
		"service": "submitter",
		"pool":    head.PoolID,
		"batch":   len(vector),
	})

	args := []interface{}{vector, head.AccountID, head.AccountID, head.AccountID}
	result, err := s.invoker.InvokeContract(ctx, contractID, "submit", args)
	if err != nil {
		log.WithError(err).Errorln("submit failed")
		return nil, mapFailure(err)
	}

	log.WithField("hash", result.TransactionHash).Infoln("batch submitted")

	return &core.OperationOutcome{
		Success:         true,
		TransactionHash: result.TransactionHash,
		Ledger:          result.Ledger,
		CreatedAt:       time.Now(),
		RawResult:       result.RawResult,
	}, nil
}

// encode exhaustive mapping into the contract's request record; a kind this
// build does not know about must fail here, never be submitted blind.
func encode(req *core.FundOperationRequest) (core.ContractRequest, error) {
	switch req.Kind {
	case core.RequestTypeDeposit, core.RequestTypeWithdraw,
		core.RequestTypeDepositCollateral, core.RequestTypeWithdrawCollateral,
		core.RequestTypeBorrow, core.RequestTypeRepay:
	default:
		return core.ContractRequest{}, core.ErrorWith(core.ErrOperationForbidden, fmt.Sprintf("unsupported request type %d", req.Kind))
	}

	return core.ContractRequest{
		RequestType: int(req.Kind),
		Address:     req.Address,
		Amount:      req.Amount,
	}, nil
}

// mapFailure collaborator failures always leave here typed.
func mapFailure(err error) error {
	if code := core.CodeOf(err); code != core.ErrUnknown {
		return err
	}
	return core.WrapError(core.ErrUnknown, "submission failed", err)
}
