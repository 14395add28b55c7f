// Package checkout signs hosted checkout orders and renders the
// self-submitting form that posts them to the secure checkout page.
package checkout

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"html/template"
	"strings"

	"github.com/fivetwenty-io/xmoney-go/internal/constants"
	"github.com/fivetwenty-io/xmoney-go/pkg/xmoney"
)

const saveCardField = "saveCard"

// Signed is a serialized order with its checksum. JSON is the exact text
// both JSONRequest and Checksum were derived from.
type Signed struct {
	JSON        []byte
	JSONRequest string
	Checksum    string
}

// Sign clones order, defaults saveCard to false on the clone, serializes it
// once and derives the base64 payload and the base64 HMAC-SHA512 checksum
// keyed by the full secret key from that single serialization.
func Sign(order interface{}, secretKey string) (*Signed, error) {
	prepared, err := prepare(order)
	if err != nil {
		return nil, err
	}

	jsonText, err := marshal(prepared)
	if err != nil {
		return nil, xmoney.WrapError(xmoney.KindInvalidRequest, fmt.Sprintf("encoding checkout order: %v", err), err)
	}

	return &Signed{
		JSON:        jsonText,
		JSONRequest: base64.StdEncoding.EncodeToString(jsonText),
		Checksum:    Checksum(jsonText, secretKey),
	}, nil
}

// Checksum returns base64(HMAC-SHA512(jsonText, secretKey)).
func Checksum(jsonText []byte, secretKey string) string {
	mac := hmac.New(sha512.New, []byte(secretKey))
	_, _ = mac.Write(jsonText)

	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// Verify reports whether checksum matches jsonText under secretKey.
func Verify(jsonText []byte, checksum, secretKey string) bool {
	expected, err := base64.StdEncoding.DecodeString(checksum)
	if err != nil {
		return false
	}

	mac := hmac.New(sha512.New, []byte(secretKey))
	_, _ = mac.Write(jsonText)

	return hmac.Equal(mac.Sum(nil), expected)
}

// Payload signs order and pairs it with the form action URL.
func Payload(order interface{}, secretKey, action string) (*xmoney.HostedPayload, error) {
	signed, err := Sign(order, secretKey)
	if err != nil {
		return nil, err
	}

	return &xmoney.HostedPayload{
		Action:      action,
		JSONRequest: signed.JSONRequest,
		Checksum:    signed.Checksum,
	}, nil
}

var formTemplate = template.Must(template.New("checkout").Parse(`<form id="{{.FormID}}" name="{{.FormID}}" action="{{.Action}}" method="post" accept-charset="UTF-8">
  <input type="hidden" name="jsonRequest" value="{{.JSONRequest}}">
  <input type="hidden" name="checksum" value="{{.Checksum}}">
  <input type="submit" style="visibility:hidden">
</form>
<script type="text/javascript">
  window.onload = function () {
    window.setTimeout(function () { document.getElementById({{.FormID}}).submit(); }, {{.DelayMillis}});
  };
</script>`))

type formData struct {
	FormID      string
	DelayMillis int64
	Action      string
	JSONRequest string
	Checksum    string
}

// RenderForm renders the auto-submitting hosted checkout form.
func RenderForm(payload *xmoney.HostedPayload) (string, error) {
	if payload == nil {
		return "", xmoney.WrapError(xmoney.KindInvalidRequest, xmoney.ErrNilRequest.Error(), xmoney.ErrNilRequest)
	}

	var buf strings.Builder

	err := formTemplate.Execute(&buf, formData{
		FormID:      constants.CheckoutFormID,
		DelayMillis: constants.CheckoutSubmitDelay.Milliseconds(),
		Action:      payload.Action,
		JSONRequest: payload.JSONRequest,
		Checksum:    payload.Checksum,
	})
	if err != nil {
		return "", fmt.Errorf("rendering checkout form: %w", err)
	}

	return buf.String(), nil
}

func prepare(order interface{}) (interface{}, error) {
	switch typed := order.(type) {
	case nil:
		return nil, xmoney.WrapError(xmoney.KindInvalidRequest, xmoney.ErrNilRequest.Error(), xmoney.ErrNilRequest)
	case *xmoney.OrderCreateRequest:
		if typed == nil {
			return nil, xmoney.WrapError(xmoney.KindInvalidRequest, xmoney.ErrNilRequest.Error(), xmoney.ErrNilRequest)
		}

		return withSaveCard(*typed), nil
	case xmoney.OrderCreateRequest:
		return withSaveCard(typed), nil
	case map[string]interface{}:
		return withSaveCardField(typed), nil
	default:
		fields, err := toFields(order)
		if err != nil {
			return nil, xmoney.WrapError(xmoney.KindInvalidRequest, fmt.Sprintf("encoding checkout order: %v", err), err)
		}

		return withSaveCardField(fields), nil
	}
}

func withSaveCard(order xmoney.OrderCreateRequest) *xmoney.OrderCreateRequest {
	if order.SaveCard == nil {
		saveCard := false
		order.SaveCard = &saveCard
	}

	return &order
}

func withSaveCardField(fields map[string]interface{}) map[string]interface{} {
	clone := make(map[string]interface{}, len(fields)+1)
	for key, value := range fields {
		clone[key] = value
	}

	if _, ok := clone[saveCardField]; !ok {
		clone[saveCardField] = false
	}

	return clone
}

func toFields(order interface{}) (map[string]interface{}, error) {
	raw, err := json.Marshal(order)
	if err != nil {
		return nil, err
	}

	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()

	var fields map[string]interface{}

	err = decoder.Decode(&fields)
	if err != nil {
		return nil, err
	}

	if fields == nil {
		fields = map[string]interface{}{}
	}

	return fields, nil
}

// marshal encodes without HTML escaping so the signed text matches what the
// checkout page decodes.
func marshal(value interface{}) ([]byte, error) {
	var buf bytes.Buffer

	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)

	err := encoder.Encode(value)
	if err != nil {
		return nil, err
	}

	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
