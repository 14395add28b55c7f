package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/xmoney-go/pkg/xmoney"
)

const testSecretKey = "sk_test_0123456789abcdef0123456789abcdef"

// newTestClient starts a server running handler and returns a client bound
// to it.
func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := New(&xmoney.Config{SecretKey: testSecretKey, BaseURL: server.URL})
	require.NoError(t, err)

	return client
}

// writeJSON writes value as the response body with the given status.
func writeJSON(writer http.ResponseWriter, status int, value interface{}) {
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)

	if value != nil {
		_ = json.NewEncoder(writer).Encode(value)
	}
}

// ok wraps data in a successful envelope.
func ok[T any](data T) xmoney.Envelope[T] {
	return xmoney.Envelope[T]{Code: http.StatusOK, Message: "Success", Data: data}
}

// page wraps items in a successful paginated envelope.
func page[T any](items []T, current, count int) xmoney.Envelope[[]T] {
	return xmoney.Envelope[[]T]{
		Code:    http.StatusOK,
		Message: "Success",
		Data:    items,
		Pagination: &xmoney.Pagination{
			CurrentPageNumber: current,
			PageCount:         count,
			ItemCountPerPage:  len(items),
			CurrentItemCount:  len(items),
			TotalItemCount:    len(items) * count,
		},
	}
}

// failure is an error envelope.
func failure(code int, message string, details ...xmoney.ErrorDetail) xmoney.Envelope[any] {
	return xmoney.Envelope[any]{Code: code, Message: message, Error: details}
}

// TestCreateOperation represents a generic create operation test case.
type TestCreateOperation[TRequest, TResponse any] struct {
	Name         string
	Request      *TRequest
	ExpectedPath string
	StatusCode   int
	Response     interface{}
	WantErr      bool
	WantKind     xmoney.ErrorKind
	ErrMessage   string
	Check        func(t *testing.T, result *TResponse)
}

// TestGetOperation represents a generic get operation test case.
type TestGetOperation[TResponse any] struct {
	Name         string
	ID           int64
	ExpectedPath string
	StatusCode   int
	Response     interface{}
	WantErr      bool
	WantKind     xmoney.ErrorKind
	ErrMessage   string
	Check        func(t *testing.T, result *TResponse)
}

// TestDeleteOperation represents a generic delete operation test case.
type TestDeleteOperation struct {
	Name         string
	ID           int64
	ExpectedPath string
	StatusCode   int
	Response     interface{}
	WantErr      bool
	WantKind     xmoney.ErrorKind
	ErrMessage   string
}

// RunCreateTests runs a series of create operation tests.
func RunCreateTests[TRequest, TResponse any](
	t *testing.T,
	tests []TestCreateOperation[TRequest, TResponse],
	createFunc func(*Client) func(context.Context, *TRequest) (*TResponse, error),
) {
	t.Helper()

	for _, testCase := range tests {
		t.Run(testCase.Name, func(t *testing.T) {
			t.Parallel()

			var called atomic.Bool

			client := newTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
				called.Store(true)

				assert.Equal(t, testCase.ExpectedPath, request.URL.Path)
				assert.Equal(t, http.MethodPost, request.Method)
				assert.Equal(t, "application/json", request.Header.Get("Content-Type"))

				var body TRequest
				assert.NoError(t, json.NewDecoder(request.Body).Decode(&body))

				writeJSON(writer, testCase.StatusCode, testCase.Response)
			})

			result, err := createFunc(client)(context.Background(), testCase.Request)
			assertOutcome(t, err, testCase.WantErr, testCase.WantKind, testCase.ErrMessage)

			if testCase.WantErr {
				assert.Nil(t, result)

				return
			}

			assert.True(t, called.Load())
			require.NotNil(t, result)

			if testCase.Check != nil {
				testCase.Check(t, result)
			}
		})
	}
}

// RunGetTests runs a series of get operation tests.
func RunGetTests[TResponse any](
	t *testing.T,
	tests []TestGetOperation[TResponse],
	getFunc func(*Client) func(context.Context, int64) (*TResponse, error),
) {
	t.Helper()

	for _, testCase := range tests {
		t.Run(testCase.Name, func(t *testing.T) {
			t.Parallel()

			client := newTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
				assert.Equal(t, testCase.ExpectedPath, request.URL.Path)
				assert.Equal(t, http.MethodGet, request.Method)
				assert.Equal(t, "Bearer 0123456789abcdef0123456789abcdef", request.Header.Get("Authorization"))

				writeJSON(writer, testCase.StatusCode, testCase.Response)
			})

			result, err := getFunc(client)(context.Background(), testCase.ID)
			assertOutcome(t, err, testCase.WantErr, testCase.WantKind, testCase.ErrMessage)

			if testCase.WantErr {
				assert.Nil(t, result)

				return
			}

			require.NotNil(t, result)

			if testCase.Check != nil {
				testCase.Check(t, result)
			}
		})
	}
}

// RunDeleteTests runs a series of delete operation tests.
func RunDeleteTests(
	t *testing.T,
	tests []TestDeleteOperation,
	deleteFunc func(*Client) func(context.Context, int64) error,
) {
	t.Helper()

	for _, testCase := range tests {
		t.Run(testCase.Name, func(t *testing.T) {
			t.Parallel()

			client := newTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
				assert.Equal(t, testCase.ExpectedPath, request.URL.Path)
				assert.Equal(t, http.MethodDelete, request.Method)

				writeJSON(writer, testCase.StatusCode, testCase.Response)
			})

			err := deleteFunc(client)(context.Background(), testCase.ID)
			assertOutcome(t, err, testCase.WantErr, testCase.WantKind, testCase.ErrMessage)
		})
	}
}

func assertOutcome(t *testing.T, err error, wantErr bool, wantKind xmoney.ErrorKind, errMessage string) {
	t.Helper()

	if !wantErr {
		require.NoError(t, err)

		return
	}

	require.Error(t, err)

	if wantKind != "" {
		assert.Equal(t, wantKind, xmoney.KindOf(err))
	}

	if errMessage != "" {
		var xErr *xmoney.Error
		require.True(t, errors.As(err, &xErr))
		assert.Equal(t, errMessage, xErr.Message)
	}
}
