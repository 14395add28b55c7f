package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/fivetwenty-io/xmoney-go/internal/http"
	"github.com/fivetwenty-io/xmoney-go/pkg/xmoney"
)

// Client implements the xmoney.Client interface.
type Client struct {
	httpClient  *http.Client
	secretKey   *xmoney.SecretKey
	baseURL     string
	logger      xmoney.Logger
	keyMaterial xmoney.KeyMaterial

	// Resource clients
	orders       *OrdersClient
	transactions *TransactionsClient
	customers    *CustomersClient
	cards        *CardsClient
	checkout     *CheckoutClient
	webhooks     *WebhooksClient
}

var _ xmoney.Client = (*Client)(nil)

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *xmoney.Config) []http.Option {
	var httpOpts []http.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(config.Logger))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	if config.Timeout > 0 {
		httpOpts = append(httpOpts, http.WithTimeout(config.Timeout))
	}

	if config.HTTPClient != nil {
		httpOpts = append(httpOpts, http.WithHTTPClient(config.HTTPClient))
	}

	return httpOpts
}

// New creates a new xMoney API client. The secret key is classified before
// anything else; a malformed key fails with a KindConfiguration error and no
// HTTP client is built.
func New(config *xmoney.Config) (*Client, error) {
	err := config.Validate()
	if err != nil {
		return nil, err
	}

	secretKey, err := xmoney.ParseSecretKeyWithTable(config.SecretKey, config.EnvironmentTable())
	if err != nil {
		return nil, err
	}

	keyMaterial, err := xmoney.ParseKeyMaterial(string(config.WebhookKeyMaterial))
	if err != nil {
		return nil, xmoney.WrapError(xmoney.KindConfiguration, err.Error(), err)
	}

	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = secretKey.APIBaseURL()
	}

	httpClient := http.NewClient(baseURL, secretKey.BearerToken(), createHTTPClientOptions(config)...)

	client := &Client{
		httpClient:  httpClient,
		secretKey:   secretKey,
		baseURL:     httpClient.BaseURL(),
		logger:      config.Logger,
		keyMaterial: keyMaterial,
	}

	// Initialize resource clients
	client.initializeResourceClients()

	return client, nil
}

func (c *Client) initializeResourceClients() {
	c.orders = NewOrdersClient(c)
	c.transactions = NewTransactionsClient(c)
	c.customers = NewCustomersClient(c)
	c.cards = NewCardsClient(c)
	c.checkout = NewCheckoutClient(c.secretKey)
	c.webhooks = NewWebhooksClient(c.keyMaterial.Resolve(c.secretKey))
}

// Do implements xmoney.Requester.Do. It returns the envelope's data.
func (c *Client) Do(ctx context.Context, method, path string, body any, query url.Values) (json.RawMessage, error) {
	env, err := c.do(ctx, method, path, body, query)
	if err != nil {
		return nil, err
	}

	if env == nil {
		return nil, nil
	}

	return env.Data, nil
}

// DoPaginated implements xmoney.Requester.DoPaginated. A response without a
// pagination block is a KindAPI error.
func (c *Client) DoPaginated(ctx context.Context, method, path string, body any, query url.Values) (json.RawMessage, *xmoney.Pagination, error) {
	env, err := c.do(ctx, method, path, body, query)
	if err != nil {
		return nil, nil, err
	}

	if env == nil || env.Pagination == nil {
		return nil, nil, xmoney.WrapError(xmoney.KindAPI, xmoney.ErrMissingPagination.Error(), xmoney.ErrMissingPagination)
	}

	return env.Data, env.Pagination, nil
}

// do sends the request and unwraps the envelope. Transport-level failures are
// already classified by the HTTP layer and take precedence over the envelope.
func (c *Client) do(ctx context.Context, method, path string, body any, query url.Values) (*http.Envelope, error) {
	resp, err := c.httpClient.Do(ctx, &http.Request{
		Method: method,
		Path:   path,
		Query:  query,
		Body:   body,
	})
	if err != nil {
		return nil, err
	}

	if len(resp.Body) == 0 {
		return nil, nil
	}

	env, err := http.DecodeEnvelope(resp.Body)
	if err != nil {
		return nil, xmoney.WrapError(xmoney.KindAPI, fmt.Sprintf("parsing %s %s response: %v", method, path, err), err)
	}

	if xErr := http.ClassifyEnvelope(env); xErr != nil {
		if c.logger != nil {
			c.logger.Debug("API envelope error", map[string]interface{}{
				"method": method,
				"path":   path,
				"code":   env.Code,
			})
		}

		return nil, xErr
	}

	return env, nil
}

// BaseURL implements xmoney.Client.BaseURL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// SecureBaseURL implements xmoney.Client.SecureBaseURL.
func (c *Client) SecureBaseURL() string {
	return c.secretKey.SecureCheckoutBaseURL()
}

// SecretKey implements xmoney.Client.SecretKey.
func (c *Client) SecretKey() *xmoney.SecretKey {
	return c.secretKey
}

// Resource client accessors

// Orders implements xmoney.Client.Orders.
func (c *Client) Orders() xmoney.OrdersClient {
	return c.orders
}

// Transactions implements xmoney.Client.Transactions.
func (c *Client) Transactions() xmoney.TransactionsClient {
	return c.transactions
}

// Customers implements xmoney.Client.Customers.
func (c *Client) Customers() xmoney.CustomersClient {
	return c.customers
}

// Cards implements xmoney.Client.Cards.
func (c *Client) Cards() xmoney.CardsClient {
	return c.cards
}

// Checkout implements xmoney.Client.Checkout.
func (c *Client) Checkout() xmoney.CheckoutClient {
	return c.checkout
}

// Webhooks implements xmoney.Client.Webhooks.
func (c *Client) Webhooks() xmoney.WebhooksClient {
	return c.webhooks
}
