package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/xmoney-go/internal/constants"
	"github.com/fivetwenty-io/xmoney-go/internal/webhook"
	"github.com/fivetwenty-io/xmoney-go/pkg/xmoney"
)

const shutdownTimeout = 5 * time.Second

// NewWebhooksCommand creates the webhooks command group.
func NewWebhooksCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "webhooks",
		Aliases: []string{"webhook"},
		Short:   "Decrypt and receive webhook notifications",
		Long:    "Decrypt xMoney webhook notifications or run a receiver for them",
	}

	cmd.AddCommand(newWebhooksDecryptCommand())
	cmd.AddCommand(newWebhooksListenCommand())

	return cmd
}

func newWebhooksDecryptCommand() *cobra.Command {
	var key string

	cmd := &cobra.Command{
		Use:   "decrypt [PAYLOAD]",
		Short: "Decrypt a webhook payload",
		Long: `Decrypt a webhook payload of the form base64(iv),base64(ciphertext).
The payload is read from stdin when omitted or "-". The key defaults to the
configured secret key, selected by webhook-key-material.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := readPayload(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}

			decoder, err := webhookDecoder(key)
			if err != nil {
				return err
			}

			event, err := decoder.ConstructEvent(payload)
			if err != nil {
				return err
			}

			return render(cmd.OutOrStdout(), event, propertyTable(eventRows(event)))
		},
	}

	cmd.Flags().StringVar(&key, "key", "", "AES-256 key (32 bytes), overrides the configured secret key")

	return cmd
}

func newWebhooksListenCommand() *cobra.Command {
	var (
		addr        string
		path        string
		natsURL     string
		natsSubject string
		key         string
	)

	cmd := &cobra.Command{
		Use:   "listen",
		Short: "Run a webhook receiver",
		Long: `Serve POST deliveries on --path, decrypt them and log each event.
With --nats-url every event is also published as JSON on
<nats-subject>.<transactionStatus>. Prometheus metrics are served on /metrics.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			decoder, err := webhookDecoder(key)
			if err != nil {
				return err
			}

			logger := newLogger()
			sinks := webhook.MultiSink{webhook.NewLogSink(logger)}

			if natsURL != "" {
				conn, err := webhook.ConnectNATS(natsURL)
				if err != nil {
					return err
				}
				defer conn.Close()

				natsSink, err := webhook.NewNATSSink(conn, natsSubject)
				if err != nil {
					return err
				}

				sinks = append(sinks, natsSink)
			}

			registry := prometheus.NewRegistry()
			registry.MustRegister(collectors.NewGoCollector())

			handler := webhook.NewHandler(webhook.HandlerConfig{
				Decoder: decoder,
				Sink:    sinks,
				Metrics: webhook.NewMetrics(registry),
				Logger:  logger,
				Path:    path,
				Extra: map[string]http.Handler{
					"/metrics": promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}),
				},
			})

			server := &http.Server{
				Addr:              addr,
				Handler:           handler,
				ReadHeaderTimeout: constants.WebhookReadHeaderTimeout,
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return serve(ctx, server, logger)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", constants.DefaultWebhookListenAddr, "listen address")
	cmd.Flags().StringVar(&path, "path", constants.DefaultWebhookPath, "delivery route")
	cmd.Flags().StringVar(&natsURL, "nats-url", "", "NATS server URL to publish events to")
	cmd.Flags().StringVar(&natsSubject, "nats-subject", constants.DefaultNATSSubjectPrefix, "NATS subject prefix")
	cmd.Flags().StringVar(&key, "key", "", "AES-256 key (32 bytes), overrides the configured secret key")

	return cmd
}

// webhookDecoder returns a decryptor for an explicit key, or the configured
// client's webhook decoder.
func webhookDecoder(key string) (webhook.Decoder, error) {
	if key != "" {
		return webhook.NewDecryptor(key)
	}

	client, err := CreateClient()
	if err != nil {
		return nil, err
	}

	return client.Webhooks(), nil
}

func readPayload(in io.Reader, args []string) (string, error) {
	if len(args) == 1 && args[0] != "-" {
		return args[0], nil
	}

	data, err := io.ReadAll(in)
	if err != nil {
		return "", fmt.Errorf("reading payload from stdin: %w", err)
	}

	payload := strings.TrimSpace(string(data))
	if payload == "" {
		return "", ErrNoWebhookPayload
	}

	return payload, nil
}

func serve(ctx context.Context, server *http.Server, logger xmoney.Logger) error {
	errCh := make(chan error, 1)

	go func() {
		logger.Info("webhook receiver listening", map[string]interface{}{"addr": server.Addr})

		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}

		return fmt.Errorf("webhook receiver: %w", err)
	case <-ctx.Done():
		logger.Info("webhook receiver shutting down", nil)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		return server.Shutdown(shutdownCtx)
	}
}

func eventRows(event *xmoney.WebhookEvent) [][]string {
	rows := [][]string{
		{"Status", string(event.TransactionStatus)},
		{"Order ID", formatInt(event.OrderID)},
		{"External Order ID", orNotAvailable(event.ExternalOrderID)},
		{"Transaction ID", formatInt(event.TransactionID)},
		{"Method", orNotAvailable(event.TransactionMethod)},
		{"Customer ID", formatInt(event.CustomerID)},
		{"Identifier", orNotAvailable(event.Identifier)},
		{"Amount", formatAmount(event.Amount, event.Currency)},
		{"Timestamp", time.Unix(event.Timestamp, 0).UTC().Format(time.RFC3339)},
	}

	if event.CardID != nil {
		rows = append(rows, []string{"Card ID", formatInt(*event.CardID)})
	}

	return rows
}
