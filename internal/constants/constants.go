package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// Environment base URLs.
const (
	// LiveAPIBaseURL is the API base for sk_live_ keys.
	LiveAPIBaseURL = "https://api.xmoney.com"

	// TestAPIBaseURL is the API base for sk_test_ keys.
	TestAPIBaseURL = "https://api-stage.xmoney.com"

	// LiveSecureCheckoutURL is the hosted checkout endpoint for sk_live_ keys.
	LiveSecureCheckoutURL = "https://secure.xmoney.com"

	// TestSecureCheckoutURL is the hosted checkout endpoint for sk_test_ keys.
	TestSecureCheckoutURL = "https://secure-stage.xmoney.com"
)

// HTTP defaults.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 10 * time.Second

	// DefaultUserAgent is sent when the config does not override it.
	DefaultUserAgent = "xmoney-go/1.0"

	// ContentTypeJSON is the request and response media type.
	ContentTypeJSON = "application/json"

	// MaxResponseBodySize bounds how much of a response body is read.
	MaxResponseBodySize = 10 << 20
)

// API paths.
const (
	// APIPathOrders for orders endpoint.
	APIPathOrders = "/order"

	// APIPathOrderRebill for the order rebill endpoint.
	APIPathOrderRebill = "/order-rebill"

	// APIPathTransactions for transactions endpoint.
	APIPathTransactions = "/transaction"

	// APIPathCustomers for customers endpoint.
	APIPathCustomers = "/customer"

	// APIPathCards for cards endpoint.
	APIPathCards = "/card"
)

// Hosted checkout.
const (
	// CheckoutFormID is the id and name of the generated form.
	CheckoutFormID = "xmoney-checkout-form"

	// CheckoutSubmitDelay is the delay before the form auto-submits.
	CheckoutSubmitDelay = 200 * time.Millisecond
)

// Webhooks.
const (
	// WebhookAESKeySize is the AES-256 key length in bytes.
	WebhookAESKeySize = 32

	// WebhookPayloadSeparator separates the IV from the ciphertext.
	WebhookPayloadSeparator = ","

	// DefaultWebhookListenAddr is the default receiver address.
	DefaultWebhookListenAddr = ":3000"

	// DefaultWebhookPath is the route the receiver accepts deliveries on.
	DefaultWebhookPath = "/webhook"

	// DefaultNATSSubjectPrefix prefixes subjects of forwarded events.
	DefaultNATSSubjectPrefix = "xmoney.webhooks"

	// MaxWebhookBodySize bounds an accepted webhook delivery.
	MaxWebhookBodySize = 1 << 20

	// WebhookReadHeaderTimeout bounds reading request headers.
	WebhookReadHeaderTimeout = 10 * time.Second
)

// CLI.
const (
	// ConfigDirName is the directory under $HOME holding the CLI config.
	ConfigDirName = ".xmoney"

	// ConfigFileName is the CLI config file name without extension.
	ConfigFileName = "config"

	// EnvPrefix prefixes environment variables read by the CLI.
	EnvPrefix = "XMONEY"

	// DefaultPerPage is the page size used by list commands.
	DefaultPerPage = 20

	// JSONIndent is the indentation of pretty-printed JSON.
	JSONIndent = "  "

	// MinimumArgumentCount is the argument count of KEY VALUE commands.
	MinimumArgumentCount = 2
)

// Output formats.
const (
	FormatJSON  = "json"
	FormatYAML  = "yaml"
	FormatTable = "table"
)
