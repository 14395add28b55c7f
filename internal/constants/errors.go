package constants

import "errors"

// Configuration errors.
var (
	ErrSecretKeyNotConfigured = errors.New("no secret key configured, use --secret-key or XMONEY_SECRET_KEY")
	ErrUnknownConfigKey       = errors.New("unknown configuration key")
	ErrInvalidConfigValue     = errors.New("invalid configuration value")
	ErrInvalidOutputFormat    = errors.New("invalid output format, must be one of json, yaml, table")
)

// Webhook errors.
var (
	ErrMissingPayloadSeparator = errors.New("invalid payload format: missing IV or encrypted data")
	ErrInvalidIVLength         = errors.New("invalid IV length")
	ErrInvalidKeyLength        = errors.New("invalid key length, AES-256 requires 32 bytes")
	ErrInvalidCiphertextLength = errors.New("ciphertext is not a multiple of the block size")
	ErrInvalidPadding          = errors.New("invalid PKCS#7 padding")
	ErrNATSConnRequired        = errors.New("NATS connection is required")
)

// Validation errors.
var (
	ErrRequestValidation = errors.New("request validation failed")
	ErrInvalidID         = errors.New("id must be a positive integer")
)
