package client

import (
	"github.com/fivetwenty-io/xmoney-go/internal/checkout"
	"github.com/fivetwenty-io/xmoney-go/pkg/xmoney"
)

// CheckoutClient implements the xmoney.CheckoutClient interface. It makes no
// network calls.
type CheckoutClient struct {
	secretKey *xmoney.SecretKey
}

// NewCheckoutClient creates a new CheckoutClient.
func NewCheckoutClient(secretKey *xmoney.SecretKey) *CheckoutClient {
	return &CheckoutClient{
		secretKey: secretKey,
	}
}

// CreateHosted returns the self-submitting form posting order to the secure
// checkout page of the key's environment.
func (c *CheckoutClient) CreateHosted(order *xmoney.OrderCreateRequest) (string, error) {
	payload, err := c.CreateHostedPayload(order)
	if err != nil {
		return "", err
	}

	return checkout.RenderForm(payload)
}

// CreateHostedPayload signs order without rendering a form. order may be an
// *xmoney.OrderCreateRequest, a map or any JSON-encodable value.
func (c *CheckoutClient) CreateHostedPayload(order any) (*xmoney.HostedPayload, error) {
	return checkout.Payload(order, c.secretKey.Raw(), c.secretKey.SecureCheckoutBaseURL())
}
