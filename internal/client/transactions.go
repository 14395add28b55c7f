package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/fivetwenty-io/xmoney-go/internal/constants"
	"github.com/fivetwenty-io/xmoney-go/internal/validation"
	"github.com/fivetwenty-io/xmoney-go/pkg/xmoney"
)

// TransactionsClient implements the xmoney.TransactionsClient interface.
type TransactionsClient struct {
	requester xmoney.Requester
}

// NewTransactionsClient creates a new TransactionsClient.
func NewTransactionsClient(requester xmoney.Requester) *TransactionsClient {
	return &TransactionsClient{
		requester: requester,
	}
}

// List lists one page of transactions.
func (c *TransactionsClient) List(ctx context.Context, params *xmoney.TransactionListParams) (*xmoney.ListResponse[xmoney.Transaction], error) {
	err := validateParams(params)
	if err != nil {
		return nil, err
	}

	result, err := xmoney.RequestPaginated[xmoney.Transaction](ctx, c.requester, http.MethodGet, constants.APIPathTransactions, nil, params.ToValues())
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}

	return result, nil
}

// ListAutoPaging iterates over every transaction matching params.
func (c *TransactionsClient) ListAutoPaging(ctx context.Context, params *xmoney.TransactionListParams) *xmoney.Iterator[xmoney.Transaction] {
	return autoPage[xmoney.Transaction](ctx, c.requester, constants.APIPathTransactions, validateParams(params), params)
}

// Retrieve retrieves a specific transaction.
func (c *TransactionsClient) Retrieve(ctx context.Context, id int64) (*xmoney.Transaction, error) {
	err := validation.ID(id)
	if err != nil {
		return nil, err
	}

	transaction, err := xmoney.Request[xmoney.Transaction](ctx, c.requester, http.MethodGet, resourcePath(constants.APIPathTransactions, id), nil, nil)
	if err != nil {
		return nil, fmt.Errorf("retrieving transaction: %w", err)
	}

	return transaction, nil
}

// Capture captures an authorized transaction.
func (c *TransactionsClient) Capture(ctx context.Context, id int64, request *xmoney.TransactionCaptureRequest) error {
	err := validation.ID(id)
	if err != nil {
		return err
	}

	err = validation.Struct(request)
	if err != nil {
		return err
	}

	_, err = c.requester.Do(ctx, http.MethodPut, resourcePath(constants.APIPathTransactions, id), request, nil)
	if err != nil {
		return fmt.Errorf("capturing transaction: %w", err)
	}

	return nil
}

// Refund refunds a transaction, fully or partially. A nil request refunds in
// full with no reason.
func (c *TransactionsClient) Refund(ctx context.Context, id int64, request *xmoney.TransactionRefundRequest) error {
	err := validation.ID(id)
	if err != nil {
		return err
	}

	if request == nil {
		request = &xmoney.TransactionRefundRequest{}
	}

	err = validation.Struct(request)
	if err != nil {
		return err
	}

	_, err = c.requester.Do(ctx, http.MethodDelete, resourcePath(constants.APIPathTransactions, id), request, nil)
	if err != nil {
		return fmt.Errorf("refunding transaction: %w", err)
	}

	return nil
}
