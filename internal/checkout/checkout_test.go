package checkout_test

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/base64"
	"encoding/json"
	"html"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/xmoney-go/internal/checkout"
	"github.com/fivetwenty-io/xmoney-go/pkg/xmoney"
)

const testSecretKey = "sk_test_0123456789abcdef0123456789abcdef"

func testOrder() *xmoney.OrderCreateRequest {
	return &xmoney.OrderCreateRequest{
		Amount:          100,
		Currency:        "EUR",
		OrderType:       xmoney.OrderTypePurchase,
		CustomerID:      7,
		ExternalOrderID: "order-1",
		Description:     "Fish & chips <large>",
	}
}

func TestSign_Deterministic(t *testing.T) {
	t.Parallel()

	first, err := checkout.Sign(testOrder(), testSecretKey)
	require.NoError(t, err)

	second, err := checkout.Sign(testOrder(), testSecretKey)
	require.NoError(t, err)

	assert.Equal(t, first.Checksum, second.Checksum)
	assert.Equal(t, first.JSONRequest, second.JSONRequest)
}

func TestSign_FieldChangeChangesChecksum(t *testing.T) {
	t.Parallel()

	base, err := checkout.Sign(testOrder(), testSecretKey)
	require.NoError(t, err)

	changed := testOrder()
	changed.Amount = 101

	other, err := checkout.Sign(changed, testSecretKey)
	require.NoError(t, err)

	assert.NotEqual(t, base.Checksum, other.Checksum)

	otherKey, err := checkout.Sign(testOrder(), "sk_test_another")
	require.NoError(t, err)
	assert.NotEqual(t, base.Checksum, otherKey.Checksum)
}

func TestSign_PayloadAndChecksumShareSerialization(t *testing.T) {
	t.Parallel()

	signed, err := checkout.Sign(testOrder(), testSecretKey)
	require.NoError(t, err)

	decoded, err := base64.StdEncoding.DecodeString(signed.JSONRequest)
	require.NoError(t, err)
	assert.Equal(t, signed.JSON, decoded)

	mac := hmac.New(sha512.New, []byte(testSecretKey))
	_, _ = mac.Write(decoded)
	assert.Equal(t, base64.StdEncoding.EncodeToString(mac.Sum(nil)), signed.Checksum)
	assert.True(t, checkout.Verify(decoded, signed.Checksum, testSecretKey))
	assert.False(t, checkout.Verify(decoded, signed.Checksum, "sk_test_wrong"))

	// HTML characters are not escaped in the signed text.
	assert.Contains(t, string(decoded), "Fish & chips <large>")
}

func TestSign_DefaultsSaveCardOnClone(t *testing.T) {
	t.Parallel()

	order := testOrder()

	signed, err := checkout.Sign(order, testSecretKey)
	require.NoError(t, err)
	assert.Nil(t, order.SaveCard, "caller's order must not be mutated")

	var fields map[string]interface{}

	require.NoError(t, json.Unmarshal(signed.JSON, &fields))
	assert.Equal(t, false, fields["saveCard"])

	saveCard := true
	order.SaveCard = &saveCard

	signed, err = checkout.Sign(order, testSecretKey)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(signed.JSON, &fields))
	assert.Equal(t, true, fields["saveCard"])
}

func TestSign_MapAndStructInputs(t *testing.T) {
	t.Parallel()

	input := map[string]interface{}{"amount": 5, "currency": "RON"}

	signed, err := checkout.Sign(input, testSecretKey)
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount":5,"currency":"RON","saveCard":false}`, string(signed.JSON))
	assert.NotContains(t, input, "saveCard")

	type custom struct {
		Amount   int64  `json:"amount"`
		Currency string `json:"currency"`
		SaveCard bool   `json:"saveCard"`
	}

	signed, err = checkout.Sign(custom{Amount: 9007199254740993, Currency: "USD", SaveCard: true}, testSecretKey)
	require.NoError(t, err)
	assert.Equal(t, `{"amount":9007199254740993,"currency":"USD","saveCard":true}`, string(signed.JSON))
}

func TestSign_Nil(t *testing.T) {
	t.Parallel()

	var order *xmoney.OrderCreateRequest

	_, err := checkout.Sign(order, testSecretKey)
	require.ErrorIs(t, err, xmoney.ErrNilRequest)

	_, err = checkout.Sign(nil, testSecretKey)
	require.ErrorIs(t, err, xmoney.ErrNilRequest)
}

func TestRenderForm(t *testing.T) {
	t.Parallel()

	payload, err := checkout.Payload(testOrder(), testSecretKey, "https://secure-stage.xmoney.com")
	require.NoError(t, err)

	form, err := checkout.RenderForm(payload)
	require.NoError(t, err)

	unescaped := html.UnescapeString(form)
	assert.Contains(t, form, `id="xmoney-checkout-form"`)
	assert.Contains(t, form, `name="xmoney-checkout-form"`)
	assert.Contains(t, form, `action="https://secure-stage.xmoney.com"`)
	assert.Contains(t, form, `method="post"`)
	assert.Contains(t, unescaped, `name="jsonRequest" value="`+payload.JSONRequest+`"`)
	assert.Contains(t, unescaped, `name="checksum" value="`+payload.Checksum+`"`)
	assert.Contains(t, form, "window.setTimeout")
	assert.Contains(t, form, "200")

	_, err = checkout.RenderForm(nil)
	require.ErrorIs(t, err, xmoney.ErrNilRequest)
}
