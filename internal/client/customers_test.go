package client

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/xmoney-go/pkg/xmoney"
)

func TestCustomersClient_Create(t *testing.T) {
	t.Parallel()

	tests := []TestCreateOperation[xmoney.CustomerCreateRequest, xmoney.Customer]{
		{
			Name:         "successful create",
			Request:      &xmoney.CustomerCreateRequest{Identifier: "cust-1", Email: "a@example.com"},
			ExpectedPath: "/customer",
			StatusCode:   http.StatusOK,
			Response:     ok(xmoney.Customer{ID: 1, Identifier: "cust-1"}),
			Check: func(t *testing.T, customer *xmoney.Customer) {
				t.Helper()
				assert.Equal(t, "cust-1", customer.Identifier)
			},
		},
		{
			Name:       "missing identifier",
			Request:    &xmoney.CustomerCreateRequest{Email: "a@example.com"},
			WantErr:    true,
			WantKind:   xmoney.KindInvalidRequest,
			ErrMessage: "identifier is required",
		},
		{
			Name:         "unauthorized",
			Request:      &xmoney.CustomerCreateRequest{Identifier: "cust-1", Email: "a@example.com"},
			ExpectedPath: "/customer",
			StatusCode:   http.StatusUnauthorized,
			Response:     failure(401, "Invalid API key"),
			WantErr:      true,
			WantKind:     xmoney.KindAuthentication,
			ErrMessage:   "Invalid API key",
		},
	}

	RunCreateTests(t, tests, func(c *Client) func(context.Context, *xmoney.CustomerCreateRequest) (*xmoney.Customer, error) {
		return c.Customers().Create
	})
}

func TestCustomersClient_Retrieve(t *testing.T) {
	t.Parallel()

	tests := []TestGetOperation[xmoney.Customer]{
		{
			Name:         "found",
			ID:           2,
			ExpectedPath: "/customer/2",
			StatusCode:   http.StatusOK,
			Response:     ok(xmoney.Customer{ID: 2, Email: "b@example.com"}),
		},
	}

	RunGetTests(t, tests, func(c *Client) func(context.Context, int64) (*xmoney.Customer, error) {
		return c.Customers().Retrieve
	})
}

func TestCustomersClient_Update(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, http.MethodPut, request.Method)
		assert.Equal(t, "/customer/2", request.URL.Path)

		var body map[string]interface{}
		assert.NoError(t, json.NewDecoder(request.Body).Decode(&body))
		assert.Equal(t, map[string]interface{}{"city": "Bucharest"}, body)

		writeJSON(writer, http.StatusOK, ok(xmoney.Customer{ID: 2, City: "Bucharest"}))
	})

	customer, err := client.Customers().Update(context.Background(), 2, &xmoney.CustomerUpdateRequest{City: "Bucharest"})
	require.NoError(t, err)
	assert.Equal(t, "Bucharest", customer.City)
}

func TestCustomersClient_Delete(t *testing.T) {
	t.Parallel()

	tests := []TestDeleteOperation{
		{
			Name:         "deleted",
			ID:           2,
			ExpectedPath: "/customer/2",
			StatusCode:   http.StatusOK,
			Response:     ok[any](nil),
		},
		{
			Name:         "not found",
			ID:           3,
			ExpectedPath: "/customer/3",
			StatusCode:   http.StatusNotFound,
			Response:     failure(404, "Customer not found"),
			WantErr:      true,
			WantKind:     xmoney.KindInvalidRequest,
			ErrMessage:   "Customer not found",
		},
	}

	RunDeleteTests(t, tests, func(c *Client) func(context.Context, int64) error {
		return c.Customers().Delete
	})
}
