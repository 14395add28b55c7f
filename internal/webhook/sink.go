package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/nats-io/nats.go"

	"github.com/fivetwenty-io/xmoney-go/internal/constants"
	"github.com/fivetwenty-io/xmoney-go/pkg/xmoney"
)

// Sink receives decrypted events.
type Sink interface {
	Handle(ctx context.Context, event *xmoney.WebhookEvent) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, event *xmoney.WebhookEvent) error

// Handle calls f.
func (f SinkFunc) Handle(ctx context.Context, event *xmoney.WebhookEvent) error {
	return f(ctx, event)
}

// LogSink logs every event.
type LogSink struct {
	logger xmoney.Logger
}

// NewLogSink creates a LogSink.
func NewLogSink(logger xmoney.Logger) *LogSink {
	return &LogSink{logger: logger}
}

// Handle logs the event at info level.
func (s *LogSink) Handle(_ context.Context, event *xmoney.WebhookEvent) error {
	if s.logger == nil {
		return nil
	}

	fields := map[string]interface{}{
		"transactionStatus": string(event.TransactionStatus),
		"orderId":           event.OrderID,
		"externalOrderId":   event.ExternalOrderID,
		"transactionId":     event.TransactionID,
		"customerId":        event.CustomerID,
		"amount":            event.Amount,
		"currency":          event.Currency,
		"timestamp":         event.Timestamp,
	}
	if event.CardID != nil {
		fields["cardId"] = *event.CardID
	}

	if len(event.Errors) > 0 {
		fields["error"] = event.Errors[0].Message
	}

	s.logger.Info("webhook event", fields)

	return nil
}

// Publisher is the subset of *nats.Conn used by NATSSink.
type Publisher interface {
	Publish(subject string, data []byte) error
}

var _ Publisher = (*nats.Conn)(nil)

// NATSSink publishes each event as JSON to <prefix>.<transactionStatus>.
type NATSSink struct {
	publisher Publisher
	prefix    string
}

// NewNATSSink creates a NATSSink. An empty prefix selects the default.
func NewNATSSink(publisher Publisher, prefix string) (*NATSSink, error) {
	if publisher == nil {
		return nil, constants.ErrNATSConnRequired
	}

	prefix = strings.TrimSuffix(prefix, ".")
	if prefix == "" {
		prefix = constants.DefaultNATSSubjectPrefix
	}

	return &NATSSink{publisher: publisher, prefix: prefix}, nil
}

// ConnectNATS dials a NATS server for use with NATSSink.
func ConnectNATS(url string) (*nats.Conn, error) {
	conn, err := nats.Connect(url, nats.Name("xmoney-webhooks"))
	if err != nil {
		return nil, fmt.Errorf("connecting to NATS at %s: %w", url, err)
	}

	return conn, nil
}

// Subject returns the subject an event is published on.
func (s *NATSSink) Subject(event *xmoney.WebhookEvent) string {
	return s.prefix + "." + normalizeLabel(string(event.TransactionStatus))
}

// Handle publishes the event.
func (s *NATSSink) Handle(_ context.Context, event *xmoney.WebhookEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encoding webhook event: %w", err)
	}

	subject := s.Subject(event)

	err = s.publisher.Publish(subject, data)
	if err != nil {
		return fmt.Errorf("publishing to %s: %w", subject, err)
	}

	return nil
}

// MultiSink fans an event out to every sink and joins their errors.
type MultiSink []Sink

// Handle calls every sink even when one fails.
func (m MultiSink) Handle(ctx context.Context, event *xmoney.WebhookEvent) error {
	var errs []error

	for _, sink := range m {
		if sink == nil {
			continue
		}

		err := sink.Handle(ctx, event)
		if err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
