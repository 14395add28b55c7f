package xmoney

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Requester is the generic request capability the resource clients are
// built on. Do unwraps the response envelope and returns its raw data;
// DoPaginated also returns the envelope's pagination block.
type Requester interface {
	Do(ctx context.Context, method, path string, body any, query url.Values) (json.RawMessage, error)
	DoPaginated(ctx context.Context, method, path string, body any, query url.Values) (json.RawMessage, *Pagination, error)
}

// Request issues one call and decodes the envelope data into T.
func Request[T any](ctx context.Context, r Requester, method, path string, body any, query url.Values) (*T, error) {
	raw, err := r.Do(ctx, method, path, body, query)
	if err != nil {
		return nil, err
	}

	var out T

	if hasData(raw) {
		err = json.Unmarshal(raw, &out)
		if err != nil {
			return nil, WrapError(KindAPI, fmt.Sprintf("parsing %s %s response: %v", method, path, err), err)
		}
	}

	return &out, nil
}

// RequestPaginated issues one call against a list endpoint.
func RequestPaginated[T any](ctx context.Context, r Requester, method, path string, body any, query url.Values) (*ListResponse[T], error) {
	raw, pagination, err := r.DoPaginated(ctx, method, path, body, query)
	if err != nil {
		return nil, err
	}

	result := &ListResponse[T]{Data: []T{}, Pagination: *pagination}

	if hasData(raw) {
		err = json.Unmarshal(raw, &result.Data)
		if err != nil {
			return nil, WrapError(KindAPI, fmt.Sprintf("parsing %s %s list response: %v", method, path, err), err)
		}
	}

	return result, nil
}

// RequestAutoPaginated returns a lazy iterator over every item of a list
// endpoint. The query is copied; the caller's values are never mutated.
func RequestAutoPaginated[T any](ctx context.Context, r Requester, method, path string, query url.Values) *Iterator[T] {
	fetch := func(ctx context.Context, q url.Values) (*ListResponse[T], error) {
		return RequestPaginated[T](ctx, r, method, path, nil, q)
	}

	return NewIterator(ctx, fetch, query)
}

func hasData(raw json.RawMessage) bool {
	return len(raw) > 0 && string(raw) != "null"
}

// OrdersClient manages orders.
type OrdersClient interface {
	Create(ctx context.Context, request *OrderCreateRequest) (*Order, error)
	List(ctx context.Context, params *OrderListParams) (*ListResponse[Order], error)
	ListAutoPaging(ctx context.Context, params *OrderListParams) *Iterator[Order]
	Retrieve(ctx context.Context, id int64) (*Order, error)
	Rebill(ctx context.Context, id int64, request *OrderRebillRequest) (*Order, error)
	Cancel(ctx context.Context, id int64) error
}

// TransactionsClient manages transactions.
type TransactionsClient interface {
	List(ctx context.Context, params *TransactionListParams) (*ListResponse[Transaction], error)
	ListAutoPaging(ctx context.Context, params *TransactionListParams) *Iterator[Transaction]
	Retrieve(ctx context.Context, id int64) (*Transaction, error)
	Capture(ctx context.Context, id int64, request *TransactionCaptureRequest) error
	Refund(ctx context.Context, id int64, request *TransactionRefundRequest) error
}

// CustomersClient manages customers.
type CustomersClient interface {
	Create(ctx context.Context, request *CustomerCreateRequest) (*Customer, error)
	List(ctx context.Context, params *CustomerListParams) (*ListResponse[Customer], error)
	ListAutoPaging(ctx context.Context, params *CustomerListParams) *Iterator[Customer]
	Retrieve(ctx context.Context, id int64) (*Customer, error)
	Update(ctx context.Context, id int64, request *CustomerUpdateRequest) (*Customer, error)
	Delete(ctx context.Context, id int64) error
}

// CardsClient manages stored cards.
type CardsClient interface {
	List(ctx context.Context, params *CardListParams) (*ListResponse[Card], error)
	ListAutoPaging(ctx context.Context, params *CardListParams) *Iterator[Card]
	Retrieve(ctx context.Context, id, customerID int64) (*Card, error)
	Delete(ctx context.Context, id int64) error
}

// CheckoutClient builds signed hosted checkout submissions. No network calls.
type CheckoutClient interface {
	CreateHosted(order *OrderCreateRequest) (string, error)
	CreateHostedPayload(order any) (*HostedPayload, error)
}

// WebhooksClient decrypts webhook notifications. No network calls.
type WebhooksClient interface {
	ConstructEvent(payload string) (*WebhookEvent, error)
	ConstructEventWithKey(payload, key string) (*WebhookEvent, error)
}

// ResourceClients provides access to all resource-specific clients.
type ResourceClients interface {
	Orders() OrdersClient
	Transactions() TransactionsClient
	Customers() CustomersClient
	Cards() CardsClient
	Checkout() CheckoutClient
	Webhooks() WebhooksClient
}

// Client is the xMoney API client.
type Client interface {
	Requester
	ResourceClients

	// BaseURL returns the effective API base URL.
	BaseURL() string
	// SecureBaseURL returns the hosted checkout URL of the key's environment.
	SecureBaseURL() string
	// SecretKey returns the classified secret key.
	SecretKey() *SecretKey
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// KeyMaterial selects which form of the secret key is the AES key for
// webhook decryption.
type KeyMaterial string

const (
	// KeyMaterialBearerToken uses the text after the sk_<env>_ prefix.
	KeyMaterialBearerToken KeyMaterial = "bearer-token"
	// KeyMaterialSecretKey uses the full secret key string.
	KeyMaterialSecretKey KeyMaterial = "secret-key"
)

// ParseKeyMaterial parses a KeyMaterial name. Empty selects the default.
func ParseKeyMaterial(value string) (KeyMaterial, error) {
	switch KeyMaterial(value) {
	case "", KeyMaterialBearerToken:
		return KeyMaterialBearerToken, nil
	case KeyMaterialSecretKey:
		return KeyMaterialSecretKey, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKeyMaterial, value)
	}
}

// Resolve returns the key string selected by the material.
func (m KeyMaterial) Resolve(key *SecretKey) string {
	if m == KeyMaterialSecretKey {
		return key.Raw()
	}

	return key.BearerToken()
}

// Config represents client configuration for building a Client.
//
// # Environment selection
//
// The environment is derived from SecretKey: sk_test_ keys use the test API
// and secure checkout URLs, sk_live_ keys the live ones. BaseURL overrides the
// derived API URL only; the secure checkout URL always follows the key.
//
// # Timeouts
//
// Timeout is applied to every request. Zero selects the default of ten
// seconds. There are no retries; a transient failure surfaces as a
// KindConnection or KindAPI error for the caller to retry.
type Config struct {
	// SecretKey: merchant key, sk_test_<token> or sk_live_<token>. Required.
	SecretKey string
	// BaseURL: optional override of the environment's API base URL.
	BaseURL string
	// Timeout: per-request timeout.
	Timeout time.Duration
	// UserAgent: overrides the default User-Agent header.
	UserAgent string
	// Debug: enables request/response logging when a Logger is provided.
	Debug bool
	// Logger: optional structured logger used by the HTTP layer.
	Logger Logger
	// HTTPClient: optional base client whose transport is reused.
	HTTPClient *http.Client
	// WebhookKeyMaterial: AES key source for webhook decryption. Empty selects
	// KeyMaterialBearerToken.
	WebhookKeyMaterial KeyMaterial
	// Environments: optional replacement for DefaultEnvironmentTable.
	Environments EnvironmentTable
}

// EnvironmentTable returns the configured table or the default one.
func (c *Config) EnvironmentTable() EnvironmentTable {
	if c.Environments == nil {
		return DefaultEnvironmentTable()
	}

	return c.Environments
}

// Validate classifies the secret key and checks the remaining settings.
// Every failure is a KindConfiguration error.
func (c *Config) Validate() error {
	if c == nil {
		return WrapError(KindConfiguration, ErrConfigRequired.Error(), ErrConfigRequired)
	}

	_, err := ParseSecretKeyWithTable(c.SecretKey, c.EnvironmentTable())
	if err != nil {
		return err
	}

	_, err = ParseKeyMaterial(string(c.WebhookKeyMaterial))
	if err != nil {
		return WrapError(KindConfiguration, err.Error(), err)
	}

	if c.Timeout < 0 {
		return WrapError(KindConfiguration, ErrNegativeTimeout.Error(), ErrNegativeTimeout)
	}

	if c.BaseURL != "" {
		parsed, err := url.Parse(c.BaseURL)
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			return WrapError(KindConfiguration, fmt.Sprintf("%s: %q", ErrInvalidBaseURL, c.BaseURL), ErrInvalidBaseURL)
		}
	}

	return nil
}
