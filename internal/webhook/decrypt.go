// Package webhook decrypts xMoney webhook notifications and serves the
// receiving endpoint.
package webhook

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fivetwenty-io/xmoney-go/internal/constants"
	"github.com/fivetwenty-io/xmoney-go/pkg/xmoney"
)

// Decryptor decrypts notification payloads with one AES-256 key.
type Decryptor struct {
	key []byte
}

// NewDecryptor creates a Decryptor. The key must be exactly 32 bytes.
func NewDecryptor(key string) (*Decryptor, error) {
	if len(key) != constants.WebhookAESKeySize {
		return nil, keyLengthError(len(key))
	}

	return &Decryptor{key: []byte(key)}, nil
}

// ConstructEvent decrypts payload into a WebhookEvent.
func (d *Decryptor) ConstructEvent(payload string) (*xmoney.WebhookEvent, error) {
	return Decrypt(payload, string(d.key))
}

// Decrypt splits payload into <base64 iv>,<base64 ciphertext>, decrypts it
// with AES-256-CBC under key and parses the plaintext as a WebhookEvent.
// Every failure is a KindPayloadFormat error.
func Decrypt(payload, key string) (*xmoney.WebhookEvent, error) {
	plaintext, err := DecryptRaw(payload, key)
	if err != nil {
		return nil, err
	}

	var event xmoney.WebhookEvent

	err = json.Unmarshal(plaintext, &event)
	if err != nil {
		return nil, payloadError(fmt.Sprintf("decrypted payload is not valid JSON: %v", err), err)
	}

	return &event, nil
}

// DecryptRaw returns the decrypted plaintext without parsing it.
func DecryptRaw(payload, key string) ([]byte, error) {
	payload = strings.TrimSpace(payload)
	if payload == "" {
		return nil, payloadError(xmoney.ErrEmptyWebhookPayload.Error(), xmoney.ErrEmptyWebhookPayload)
	}

	ivPart, cipherPart, found := strings.Cut(payload, constants.WebhookPayloadSeparator)
	if !found || ivPart == "" || cipherPart == "" {
		return nil, payloadError(constants.ErrMissingPayloadSeparator.Error(), constants.ErrMissingPayloadSeparator)
	}

	if len(key) != constants.WebhookAESKeySize {
		return nil, keyLengthError(len(key))
	}

	iv, err := base64.StdEncoding.DecodeString(ivPart)
	if err != nil {
		return nil, payloadError(fmt.Sprintf("decoding IV: %v", err), err)
	}

	if len(iv) != aes.BlockSize {
		return nil, payloadError(fmt.Sprintf("%s: %d", constants.ErrInvalidIVLength, len(iv)), constants.ErrInvalidIVLength)
	}

	ciphertext, err := base64.StdEncoding.DecodeString(cipherPart)
	if err != nil {
		return nil, payloadError(fmt.Sprintf("decoding ciphertext: %v", err), err)
	}

	if len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return nil, payloadError(constants.ErrInvalidCiphertextLength.Error(), constants.ErrInvalidCiphertextLength)
	}

	block, err := aes.NewCipher([]byte(key))
	if err != nil {
		return nil, payloadError(fmt.Sprintf("creating cipher: %v", err), err)
	}

	plaintext := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plaintext, ciphertext)

	return unpad(plaintext)
}

// Encrypt is the inverse of Decrypt. A nil iv is generated randomly.
func Encrypt(event interface{}, key string, iv []byte) (string, error) {
	plaintext, err := json.Marshal(event)
	if err != nil {
		return "", fmt.Errorf("encoding webhook event: %w", err)
	}

	if len(key) != constants.WebhookAESKeySize {
		return "", keyLengthError(len(key))
	}

	if iv == nil {
		iv = make([]byte, aes.BlockSize)

		_, err = rand.Read(iv)
		if err != nil {
			return "", fmt.Errorf("generating IV: %w", err)
		}
	}

	if len(iv) != aes.BlockSize {
		return "", payloadError(fmt.Sprintf("%s: %d", constants.ErrInvalidIVLength, len(iv)), constants.ErrInvalidIVLength)
	}

	block, err := aes.NewCipher([]byte(key))
	if err != nil {
		return "", fmt.Errorf("creating cipher: %w", err)
	}

	padded := pad(plaintext)
	ciphertext := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, padded)

	return base64.StdEncoding.EncodeToString(iv) + constants.WebhookPayloadSeparator +
		base64.StdEncoding.EncodeToString(ciphertext), nil
}

func pad(data []byte) []byte {
	n := aes.BlockSize - len(data)%aes.BlockSize

	return append(data, bytes.Repeat([]byte{byte(n)}, n)...)
}

func unpad(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, payloadError(constants.ErrInvalidPadding.Error(), constants.ErrInvalidPadding)
	}

	n := int(data[len(data)-1])
	if n == 0 || n > aes.BlockSize || n > len(data) {
		return nil, payloadError(constants.ErrInvalidPadding.Error(), constants.ErrInvalidPadding)
	}

	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return nil, payloadError(constants.ErrInvalidPadding.Error(), constants.ErrInvalidPadding)
		}
	}

	return data[:len(data)-n], nil
}

func keyLengthError(n int) *xmoney.Error {
	return payloadError(fmt.Sprintf("%s, got %d", constants.ErrInvalidKeyLength, n), constants.ErrInvalidKeyLength)
}

func payloadError(message string, cause error) *xmoney.Error {
	return xmoney.WrapError(xmoney.KindPayloadFormat, message, cause)
}
