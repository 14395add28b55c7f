package xmoneyclient

import (
	"fmt"

	"github.com/fivetwenty-io/xmoney-go/internal/client"
	"github.com/fivetwenty-io/xmoney-go/pkg/xmoney"
)

// New creates a new xMoney API client. Configuration errors keep their
// KindConfiguration kind through the wrapping.
func New(config *xmoney.Config) (xmoney.Client, error) {
	c, err := client.New(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return c, nil
}

// NewWithSecretKey creates a client from a secret key with default settings.
func NewWithSecretKey(secretKey string) (xmoney.Client, error) {
	return New(&xmoney.Config{SecretKey: secretKey})
}
