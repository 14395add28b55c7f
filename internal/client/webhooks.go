package client

import (
	"github.com/fivetwenty-io/xmoney-go/internal/webhook"
	"github.com/fivetwenty-io/xmoney-go/pkg/xmoney"
)

// WebhooksClient implements the xmoney.WebhooksClient interface.
type WebhooksClient struct {
	key string
}

// NewWebhooksClient creates a WebhooksClient keyed by the resolved key
// material.
func NewWebhooksClient(key string) *WebhooksClient {
	return &WebhooksClient{
		key: key,
	}
}

// ConstructEvent decrypts a notification with the client's key.
func (c *WebhooksClient) ConstructEvent(payload string) (*xmoney.WebhookEvent, error) {
	return webhook.Decrypt(payload, c.key)
}

// ConstructEventWithKey decrypts a notification with an explicit key. An
// empty key falls back to the client's key.
func (c *WebhooksClient) ConstructEventWithKey(payload, key string) (*xmoney.WebhookEvent, error) {
	if key == "" {
		key = c.key
	}

	return webhook.Decrypt(payload, key)
}
