package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/fivetwenty-io/xmoney-go/internal/constants"
	"github.com/fivetwenty-io/xmoney-go/internal/validation"
	"github.com/fivetwenty-io/xmoney-go/pkg/xmoney"
)

// OrdersClient implements the xmoney.OrdersClient interface.
type OrdersClient struct {
	requester xmoney.Requester
}

// NewOrdersClient creates a new OrdersClient.
func NewOrdersClient(requester xmoney.Requester) *OrdersClient {
	return &OrdersClient{
		requester: requester,
	}
}

// Create creates a new order.
func (c *OrdersClient) Create(ctx context.Context, request *xmoney.OrderCreateRequest) (*xmoney.Order, error) {
	err := validation.Struct(request)
	if err != nil {
		return nil, err
	}

	order, err := xmoney.Request[xmoney.Order](ctx, c.requester, http.MethodPost, constants.APIPathOrders, request, nil)
	if err != nil {
		return nil, fmt.Errorf("creating order: %w", err)
	}

	return order, nil
}

// List lists one page of orders.
func (c *OrdersClient) List(ctx context.Context, params *xmoney.OrderListParams) (*xmoney.ListResponse[xmoney.Order], error) {
	err := validateParams(params)
	if err != nil {
		return nil, err
	}

	result, err := xmoney.RequestPaginated[xmoney.Order](ctx, c.requester, http.MethodGet, constants.APIPathOrders, nil, params.ToValues())
	if err != nil {
		return nil, fmt.Errorf("listing orders: %w", err)
	}

	return result, nil
}

// ListAutoPaging iterates over every order matching params.
func (c *OrdersClient) ListAutoPaging(ctx context.Context, params *xmoney.OrderListParams) *xmoney.Iterator[xmoney.Order] {
	return autoPage[xmoney.Order](ctx, c.requester, constants.APIPathOrders, validateParams(params), params)
}

// Retrieve retrieves a specific order.
func (c *OrdersClient) Retrieve(ctx context.Context, id int64) (*xmoney.Order, error) {
	err := validation.ID(id)
	if err != nil {
		return nil, err
	}

	order, err := xmoney.Request[xmoney.Order](ctx, c.requester, http.MethodGet, resourcePath(constants.APIPathOrders, id), nil, nil)
	if err != nil {
		return nil, fmt.Errorf("retrieving order: %w", err)
	}

	return order, nil
}

// Rebill charges a recurring order again.
func (c *OrdersClient) Rebill(ctx context.Context, id int64, request *xmoney.OrderRebillRequest) (*xmoney.Order, error) {
	err := validation.ID(id)
	if err != nil {
		return nil, err
	}

	err = validation.Struct(request)
	if err != nil {
		return nil, err
	}

	order, err := xmoney.Request[xmoney.Order](ctx, c.requester, http.MethodPost, resourcePath(constants.APIPathOrderRebill, id), request, nil)
	if err != nil {
		return nil, fmt.Errorf("rebilling order: %w", err)
	}

	return order, nil
}

// Cancel cancels an order.
func (c *OrdersClient) Cancel(ctx context.Context, id int64) error {
	err := validation.ID(id)
	if err != nil {
		return err
	}

	_, err = c.requester.Do(ctx, http.MethodDelete, resourcePath(constants.APIPathOrders, id), nil, nil)
	if err != nil {
		return fmt.Errorf("canceling order: %w", err)
	}

	return nil
}

func resourcePath(base string, id int64) string {
	return fmt.Sprintf("%s/%d", base, id)
}

// validateParams checks list params when present.
func validateParams[T any](params *T) error {
	if params == nil {
		return nil
	}

	return validation.Struct(params)
}

// autoPage returns an iterator over path. When invalid is non-nil the
// iterator yields it on every pull and never issues a request.
func autoPage[T any](ctx context.Context, requester xmoney.Requester, path string, invalid error, params xmoney.QueryEncoder) *xmoney.Iterator[T] {
	if invalid != nil {
		return xmoney.NewIterator[T](ctx, func(context.Context, url.Values) (*xmoney.ListResponse[T], error) {
			return nil, invalid
		}, nil)
	}

	return xmoney.RequestAutoPaginated[T](ctx, requester, http.MethodGet, path, params.ToValues())
}
