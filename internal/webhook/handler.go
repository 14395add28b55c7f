package webhook

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/fivetwenty-io/xmoney-go/internal/constants"
	"github.com/fivetwenty-io/xmoney-go/pkg/xmoney"
)

// Decoder turns a raw notification body into an event. xmoney.WebhooksClient
// and *Decryptor satisfy it.
type Decoder interface {
	ConstructEvent(payload string) (*xmoney.WebhookEvent, error)
}

// HandlerConfig wires a Handler.
type HandlerConfig struct {
	Decoder Decoder
	Sink    Sink
	Metrics *Metrics
	Logger  xmoney.Logger
	// Path: route accepting deliveries. Empty selects /webhook.
	Path string
	// Extra: optional additional routes mounted on the router, e.g. /metrics.
	Extra map[string]http.Handler
}

type handler struct {
	decoder Decoder
	sink    Sink
	metrics *Metrics
	logger  xmoney.Logger
}

// NewHandler returns the receiver router: POST <path> decrypts and dispatches
// a notification, GET /healthz reports liveness.
func NewHandler(cfg HandlerConfig) http.Handler {
	h := &handler{
		decoder: cfg.Decoder,
		sink:    cfg.Sink,
		metrics: cfg.Metrics,
		logger:  cfg.Logger,
	}

	path := cfg.Path
	if path == "" {
		path = constants.DefaultWebhookPath
	}

	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Post(path, h.receive)
	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	for route, extra := range cfg.Extra {
		router.Handle(route, extra)
	}

	return router
}

func (h *handler) receive(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, constants.MaxWebhookBodySize))
	if err != nil {
		h.metrics.IncFailure(ReasonRead)
		h.log("webhook read failed", err)

		status := http.StatusBadRequest

		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			status = http.StatusRequestEntityTooLarge
		}

		http.Error(w, "Webhook Error: "+err.Error(), status)

		return
	}

	event, err := h.decoder.ConstructEvent(string(body))
	if err != nil {
		h.metrics.IncFailure(ReasonDecrypt)
		h.log("webhook rejected", err)

		message := err.Error()

		var xErr *xmoney.Error
		if errors.As(err, &xErr) {
			message = xErr.Message
		}

		http.Error(w, "Webhook Error: "+message, http.StatusBadRequest)

		return
	}

	if h.sink != nil {
		err = h.sink.Handle(r.Context(), event)
		if err != nil {
			h.metrics.IncFailure(ReasonSink)
			h.log("webhook dispatch failed", err)
			http.Error(w, "Webhook Error: dispatch failed", http.StatusInternalServerError)

			return
		}
	}

	h.metrics.IncEvent(string(event.TransactionStatus))

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func (h *handler) log(msg string, err error) {
	if h.logger == nil {
		return
	}

	h.logger.Warn(msg, map[string]interface{}{"error": err.Error()})
}
