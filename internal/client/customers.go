package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/fivetwenty-io/xmoney-go/internal/constants"
	"github.com/fivetwenty-io/xmoney-go/internal/validation"
	"github.com/fivetwenty-io/xmoney-go/pkg/xmoney"
)

// CustomersClient implements the xmoney.CustomersClient interface.
type CustomersClient struct {
	requester xmoney.Requester
}

// NewCustomersClient creates a new CustomersClient.
func NewCustomersClient(requester xmoney.Requester) *CustomersClient {
	return &CustomersClient{
		requester: requester,
	}
}

// Create creates a new customer.
func (c *CustomersClient) Create(ctx context.Context, request *xmoney.CustomerCreateRequest) (*xmoney.Customer, error) {
	err := validation.Struct(request)
	if err != nil {
		return nil, err
	}

	customer, err := xmoney.Request[xmoney.Customer](ctx, c.requester, http.MethodPost, constants.APIPathCustomers, request, nil)
	if err != nil {
		return nil, fmt.Errorf("creating customer: %w", err)
	}

	return customer, nil
}

// List lists one page of customers.
func (c *CustomersClient) List(ctx context.Context, params *xmoney.CustomerListParams) (*xmoney.ListResponse[xmoney.Customer], error) {
	err := validateParams(params)
	if err != nil {
		return nil, err
	}

	result, err := xmoney.RequestPaginated[xmoney.Customer](ctx, c.requester, http.MethodGet, constants.APIPathCustomers, nil, params.ToValues())
	if err != nil {
		return nil, fmt.Errorf("listing customers: %w", err)
	}

	return result, nil
}

// ListAutoPaging iterates over every customer matching params.
func (c *CustomersClient) ListAutoPaging(ctx context.Context, params *xmoney.CustomerListParams) *xmoney.Iterator[xmoney.Customer] {
	return autoPage[xmoney.Customer](ctx, c.requester, constants.APIPathCustomers, validateParams(params), params)
}

// Retrieve retrieves a specific customer.
func (c *CustomersClient) Retrieve(ctx context.Context, id int64) (*xmoney.Customer, error) {
	err := validation.ID(id)
	if err != nil {
		return nil, err
	}

	customer, err := xmoney.Request[xmoney.Customer](ctx, c.requester, http.MethodGet, resourcePath(constants.APIPathCustomers, id), nil, nil)
	if err != nil {
		return nil, fmt.Errorf("retrieving customer: %w", err)
	}

	return customer, nil
}

// Update updates a customer.
func (c *CustomersClient) Update(ctx context.Context, id int64, request *xmoney.CustomerUpdateRequest) (*xmoney.Customer, error) {
	err := validation.ID(id)
	if err != nil {
		return nil, err
	}

	err = validation.Struct(request)
	if err != nil {
		return nil, err
	}

	customer, err := xmoney.Request[xmoney.Customer](ctx, c.requester, http.MethodPut, resourcePath(constants.APIPathCustomers, id), request, nil)
	if err != nil {
		return nil, fmt.Errorf("updating customer: %w", err)
	}

	return customer, nil
}

// Delete deletes a customer.
func (c *CustomersClient) Delete(ctx context.Context, id int64) error {
	err := validation.ID(id)
	if err != nil {
		return err
	}

	_, err = c.requester.Do(ctx, http.MethodDelete, resourcePath(constants.APIPathCustomers, id), nil, nil)
	if err != nil {
		return fmt.Errorf("deleting customer: %w", err)
	}

	return nil
}
