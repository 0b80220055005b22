package rpc

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/fox-one/pkg/logger"
	"github.com/go-resty/resty/v2"
	"github.com/gofrs/uuid"
	"github.com/shopspring/decimal"

	"github.com/christopherkarani/blend-client/core"
	"github.com/christopherkarani/blend-client/pkg/resthttp"
)

// Client the shipped ledger collaborator: contract reads and invocations
// over json-rpc, account and history reads over the horizon-style rest api.
// Implements core.IContractReader, core.IContractInvoker and
// core.ILedgerService; every failure leaves typed.
type Client struct {
	network core.Network
}

// New new rpc client
func New(network core.Network) *Client {
	return &Client{network: network}
}

type rpcRequest struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      string      `json:"id"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params,omitempty"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *rpcError       `json:"error,omitempty"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (c *Client) GetContractData(ctx context.Context, contractID, key string) (json.RawMessage, error) {
	return c.call(ctx, "getContractData", map[string]string{
		"contract_id": contractID,
		"key":         key,
	})
}

func (c *Client) InvokeContract(ctx context.Context, contractID, method string, args []interface{}) (*core.InvokeResult, error) {
	raw, err := c.call(ctx, "invokeContract", map[string]interface{}{
		"contract_id": contractID,
		"method":      method,
		"args":        args,
	})
	if err != nil {
		return nil, err
	}

	var result struct {
		ReturnValue     json.RawMessage `json:"return_value"`
		TransactionHash string          `json:"transaction_hash"`
		Ledger          int64           `json:"ledger"`
		RawResult       json.RawMessage `json:"raw_result"`
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, core.WrapError(core.ErrSerializationFailure, "malformed invoke result", err)
	}

	return &core.InvokeResult{
		ReturnValue:     result.ReturnValue,
		TransactionHash: result.TransactionHash,
		Ledger:          result.Ledger,
		RawResult:       result.RawResult,
	}, nil
}

func (c *Client) GetAccount(ctx context.Context, accountID string) (*core.Account, error) {
	resp, err := c.request(ctx).Get(fmt.Sprintf("%s/accounts/%s", c.network.HorizonEndpoint, accountID))
	if err != nil {
		return nil, core.WrapError(core.ErrNetworkFailure, "account lookup failed", err)
	}
	if !resp.IsSuccess() {
		return nil, httpError(resp)
	}

	var body struct {
		ID       string `json:"id"`
		Sequence int64  `json:"sequence,string"`
	}
	if err := resthttp.ParseResponse(resp, &body); err != nil {
		return nil, core.WrapError(core.ErrSerializationFailure, "malformed account", err)
	}

	return &core.Account{ID: body.ID, Sequence: body.Sequence}, nil
}

func (c *Client) GetTransactions(ctx context.Context, accountID string, limit int) ([]*core.Transaction, error) {
	if limit <= 0 {
		limit = 20
	}

	url := fmt.Sprintf("%s/accounts/%s/transactions?limit=%d&order=desc", c.network.HorizonEndpoint, accountID, limit)
	resp, err := c.request(ctx).Get(url)
	if err != nil {
		return nil, core.WrapError(core.ErrNetworkFailure, "transaction lookup failed", err)
	}
	if !resp.IsSuccess() {
		return nil, httpError(resp)
	}

	var body struct {
		Embedded struct {
			Records []struct {
				Hash      string          `json:"hash"`
				Ledger    int64           `json:"ledger"`
				Kind      string          `json:"kind"`
				AssetID   string          `json:"asset_id"`
				Amount    decimal.Decimal `json:"amount"`
				Memo      string          `json:"memo"`
				CreatedAt time.Time       `json:"created_at"`
			} `json:"records"`
		} `json:"_embedded"`
	}
	if err := resthttp.ParseResponse(resp, &body); err != nil {
		return nil, core.WrapError(core.ErrSerializationFailure, "malformed transactions", err)
	}

	transactions := make([]*core.Transaction, 0, len(body.Embedded.Records))
	for _, r := range body.Embedded.Records {
		transactions = append(transactions, &core.Transaction{
			Hash:      r.Hash,
			Ledger:    r.Ledger,
			Kind:      r.Kind,
			AssetID:   r.AssetID,
			Amount:    r.Amount,
			Memo:      r.Memo,
			CreatedAt: r.CreatedAt,
		})
	}
	return transactions, nil
}

func (c *Client) call(ctx context.Context, method string, params interface{}) (json.RawMessage, error) {
	log := logger.FromContext(ctx).WithField("rpc", method)

	resp, err := c.request(ctx).
		SetBody(rpcRequest{JSONRPC: "2.0", ID: requestID(), Method: method, Params: params}).
		Post(c.network.RPCEndpoint)
	if err != nil {
		log.WithError(err).Errorln("rpc transport")
		return nil, core.WrapError(core.ErrNetworkFailure, fmt.Sprintf("%s failed", method), err)
	}
	if !resp.IsSuccess() {
		return nil, httpError(resp)
	}

	var body rpcResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return nil, core.WrapError(core.ErrSerializationFailure, "malformed rpc response", err)
	}
	if body.Error != nil {
		log.Debugln("rpc error:", body.Error.Code, body.Error.Message)
		return nil, core.ErrorWith(core.ErrContractFailure, body.Error.Message)
	}

	return body.Result, nil
}

func (c *Client) request(ctx context.Context) *resty.Request {
	return resthttp.WithRequestID(ctx, requestID())
}

func requestID() string {
	id, err := uuid.NewV4()
	if err != nil {
		return ""
	}
	return id.String()
}

func httpError(resp *resty.Response) error {
	switch resp.StatusCode() {
	case http.StatusUnauthorized, http.StatusForbidden:
		return core.ErrorWith(core.ErrUnauthorized, "request not authorized")
	case http.StatusNotFound:
		return core.ErrorWith(core.ErrNotFound, "not found")
	default:
		return core.ErrorWith(core.ErrNetworkFailure, fmt.Sprintf("http %d", resp.StatusCode()))
	}
}
