package http

import (
	"encoding/json"
	"net/http"

	"github.com/fivetwenty-io/xmoney-go/pkg/xmoney"
)

const unknownAPIError = "Unknown API Error"

// Outcome is the raw result of one exchange: either a transport error with no
// status, or a status with the response body.
type Outcome struct {
	Err        error
	StatusCode int
	Body       []byte
}

// Envelope is the decoded outer object of an API response with the data left
// raw. The error array is decoded leniently: a non-array value is ignored.
type Envelope struct {
	Code       int
	Message    string
	Data       json.RawMessage
	Pagination *xmoney.Pagination
	Details    []xmoney.ErrorDetail
}

// Failed reports whether the envelope signals a logical failure.
func (e *Envelope) Failed() bool {
	return e.Code >= 400
}

type rawEnvelope struct {
	Code       int                `json:"code"`
	Message    string             `json:"message"`
	Data       json.RawMessage    `json:"data"`
	Pagination *xmoney.Pagination `json:"pagination"`
	Error      json.RawMessage    `json:"error"`
}

// DecodeEnvelope parses a response body into an Envelope.
func DecodeEnvelope(body []byte) (*Envelope, error) {
	var raw rawEnvelope

	err := json.Unmarshal(body, &raw)
	if err != nil {
		return nil, err
	}

	env := &Envelope{
		Code:       raw.Code,
		Message:    raw.Message,
		Data:       raw.Data,
		Pagination: raw.Pagination,
	}

	if len(raw.Error) > 0 {
		var details []xmoney.ErrorDetail
		if json.Unmarshal(raw.Error, &details) == nil {
			env.Details = details
		}
	}

	return env, nil
}

// Classify maps an exchange outcome to an *xmoney.Error, or nil for a
// successful status. A missing status means no response was received.
func Classify(outcome Outcome) *xmoney.Error {
	if outcome.StatusCode == 0 || (outcome.Err != nil && outcome.StatusCode < http.StatusBadRequest) {
		message := "no response received from xMoney API"
		if outcome.Err != nil {
			message = outcome.Err.Error()
		}

		return xmoney.WrapError(xmoney.KindConnection, message, outcome.Err)
	}

	if outcome.StatusCode < http.StatusBadRequest {
		return nil
	}

	var (
		message string
		details []xmoney.ErrorDetail
	)

	if env, err := DecodeEnvelope(outcome.Body); err == nil {
		message = xmoney.ErrorMessage(env.Message, env.Details)
		details = env.Details
	}

	if message == "" {
		message = http.StatusText(outcome.StatusCode)
	}

	if message == "" {
		message = unknownAPIError
	}

	return &xmoney.Error{
		Kind:       xmoney.KindForStatus(outcome.StatusCode),
		Message:    message,
		StatusCode: outcome.StatusCode,
		Details:    details,
		Err:        outcome.Err,
	}
}

// ClassifyEnvelope maps a failed envelope on a successful HTTP status to an
// *xmoney.Error using the envelope code as the status.
func ClassifyEnvelope(env *Envelope) *xmoney.Error {
	if env == nil || !env.Failed() {
		return nil
	}

	message := xmoney.ErrorMessage(env.Message, env.Details)
	if message == "" {
		message = unknownAPIError
	}

	return &xmoney.Error{
		Kind:       xmoney.KindForStatus(env.Code),
		Message:    message,
		StatusCode: env.Code,
		Details:    env.Details,
	}
}
