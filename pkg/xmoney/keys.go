package xmoney

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/fivetwenty-io/xmoney-go/internal/constants"
)

// Environment is the API environment a secret key belongs to.
type Environment string

const (
	EnvironmentTest Environment = "test"
	EnvironmentLive Environment = "live"
)

// EnvironmentURLs holds the fixed base URLs of one environment.
type EnvironmentURLs struct {
	API            string `json:"api"            yaml:"api"`
	SecureCheckout string `json:"secureCheckout" yaml:"secureCheckout"`
}

// EnvironmentTable maps each environment to its base URLs.
type EnvironmentTable map[Environment]EnvironmentURLs

// DefaultEnvironmentTable returns the production URL table.
func DefaultEnvironmentTable() EnvironmentTable {
	return EnvironmentTable{
		EnvironmentTest: {
			API:            constants.TestAPIBaseURL,
			SecureCheckout: constants.TestSecureCheckoutURL,
		},
		EnvironmentLive: {
			API:            constants.LiveAPIBaseURL,
			SecureCheckout: constants.LiveSecureCheckoutURL,
		},
	}
}

var secretKeyPattern = regexp.MustCompile(`^sk_(test|live)_(.+)$`)

// SecretKey is a classified merchant secret key. It is immutable.
type SecretKey struct {
	raw         string
	environment Environment
	token       string
	urls        EnvironmentURLs
}

// ParseSecretKey classifies raw against the default environment table.
func ParseSecretKey(raw string) (*SecretKey, error) {
	return ParseSecretKeyWithTable(raw, DefaultEnvironmentTable())
}

// ParseSecretKeyWithTable classifies raw against the given environment table.
// It fails with a KindConfiguration error when raw does not match
// sk_(test|live)_<token> or the table has no entry for the environment.
func ParseSecretKeyWithTable(raw string, table EnvironmentTable) (*SecretKey, error) {
	if raw == "" {
		return nil, WrapError(KindConfiguration, ErrSecretKeyRequired.Error(), ErrSecretKeyRequired)
	}

	match := secretKeyPattern.FindStringSubmatch(raw)
	if match == nil {
		return nil, WrapError(KindConfiguration, ErrInvalidSecretKey.Error(), ErrInvalidSecretKey)
	}

	env := Environment(match[1])

	urls, ok := table[env]
	if !ok {
		return nil, NewError(KindConfiguration, fmt.Sprintf("no base URLs configured for environment %q", env))
	}

	return &SecretKey{
		raw:         raw,
		environment: env,
		token:       match[2],
		urls:        urls,
	}, nil
}

// IsValidSecretKey reports whether raw has the sk_(test|live)_<token> shape.
func IsValidSecretKey(raw string) bool {
	return secretKeyPattern.MatchString(raw)
}

// Raw returns the full secret key, prefix included. It is the HMAC key for
// hosted checkout checksums.
func (k *SecretKey) Raw() string {
	return k.raw
}

// Environment returns the environment encoded in the key prefix.
func (k *SecretKey) Environment() Environment {
	return k.environment
}

// IsLive reports whether the key targets the live environment.
func (k *SecretKey) IsLive() bool {
	return k.environment == EnvironmentLive
}

// BearerToken returns the text following the sk_<env>_ prefix.
func (k *SecretKey) BearerToken() string {
	return k.token
}

// APIBaseURL returns the environment's API base URL.
func (k *SecretKey) APIBaseURL() string {
	return k.urls.API
}

// SecureCheckoutBaseURL returns the environment's hosted checkout URL.
func (k *SecretKey) SecureCheckoutBaseURL() string {
	return k.urls.SecureCheckout
}

// String returns a masked form of the key safe for logs.
func (k *SecretKey) String() string {
	return MaskSecretKey(k.raw)
}

// MaskSecretKey keeps the environment prefix and the last four characters.
func MaskSecretKey(raw string) string {
	match := secretKeyPattern.FindStringSubmatch(raw)
	if match == nil {
		return strings.Repeat("*", len(raw))
	}

	token := match[2]
	if len(token) <= 4 {
		return "sk_" + match[1] + "_" + strings.Repeat("*", len(token))
	}

	return "sk_" + match[1] + "_" + strings.Repeat("*", len(token)-4) + token[len(token)-4:]
}
