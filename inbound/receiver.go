package inbound

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/goliatone/go-fonnte/core"
	"github.com/goliatone/go-fonnte/webhooks"
)

const (
	loggerName = "fonnte.inbound"

	OperationReceiveWebhook = "webhook_receive"

	MessageReceived   = "Webhook received"
	MessageProcessErr = "Error processing webhook"
	MessageHealthy    = "Webhook server is running"

	defaultReadHeaderTimeout = 10 * time.Second
)

type ackResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
}

// Receiver is the webhook listener. Its lifecycle is Stopped -> Listening ->
// Stopped and it can be started again after Stop.
type Receiver struct {
	config     core.WebhookConfig
	verifier   core.Verifier
	normalizer *webhooks.Normalizer
	dispatcher *Dispatcher
	telemetry  core.Telemetry
	mux        *http.ServeMux

	mu        sync.Mutex
	server    *http.Server
	listener  net.Listener
	serveDone chan struct{}

	// fanMu guards inflight. Stop swaps in a fresh group before waiting on
	// the old one, so Add never overlaps Wait on the same group.
	fanMu    sync.Mutex
	inflight *sync.WaitGroup
}

func NewReceiver(cfg core.WebhookConfig, opts ...Option) (*Receiver, error) {
	builder := receiverBuilder{}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&builder)
	}

	resolved, err := core.ResolveWebhookConfig(context.Background(), builder.configLoader, cfg)
	if err != nil {
		return nil, err
	}

	telemetry := core.NewTelemetry(loggerName, builder.loggerProvider, builder.logger, builder.metricsRecorder)
	if builder.verifier == nil {
		builder.verifier = webhooks.NewSharedSecretVerifier(resolved.SecretHeader, resolved.Secret)
	}
	if builder.normalizer == nil {
		builder.normalizer = webhooks.NewNormalizer()
	}

	r := &Receiver{
		config:     resolved,
		verifier:   builder.verifier,
		normalizer: builder.normalizer,
		dispatcher: NewDispatcher(telemetry),
		telemetry:  telemetry,
		inflight:   &sync.WaitGroup{},
	}
	r.mux = http.NewServeMux()
	r.mux.HandleFunc("POST "+webhookPattern(resolved.Path), r.handleWebhook)
	r.mux.HandleFunc("GET "+core.HealthPath, r.handleHealth)
	return r, nil
}

func (r *Receiver) Config() core.WebhookConfig {
	return r.config
}

// OnMessage appends handler to the registry. Nil handlers are ignored.
func (r *Receiver) OnMessage(handler Handler) *Receiver {
	_ = r.dispatcher.Register(handler)
	return r
}

func (r *Receiver) OnMessageFunc(fn func(ctx context.Context, msg core.InboundMessage) error) *Receiver {
	if fn == nil {
		return r
	}
	return r.OnMessage(HandlerFunc(fn))
}

// Handler exposes the webhook and health routes for mounting on an existing
// server instead of calling Start.
func (r *Receiver) Handler() http.Handler {
	return r.mux
}

// Start binds the listener and returns once it accepts connections.
func (r *Receiver) Start(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.server != nil {
		return core.AlreadyStartedError(map[string]any{"addr": r.listener.Addr().String()})
	}

	addr := net.JoinHostPort(r.config.Host, strconv.Itoa(r.config.Port))
	var lc net.ListenConfig
	listener, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return core.SetupError(err, "inbound: bind listener", map[string]any{"addr": addr})
	}

	server := &http.Server{
		Handler:           r.mux,
		ReadHeaderTimeout: defaultReadHeaderTimeout,
	}
	done := make(chan struct{})
	go func() {
		defer close(done)
		if serveErr := server.Serve(listener); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			r.telemetry.Error(context.Background(), "webhook receiver stopped unexpectedly", map[string]any{
				"addr":  listener.Addr().String(),
				"error": serveErr.Error(),
			})
		}
	}()

	r.server = server
	r.listener = listener
	r.serveDone = done
	r.telemetry.Info(ctx, "webhook receiver listening", map[string]any{
		"addr":          listener.Addr().String(),
		"route":         r.config.Path,
		"secret_header": r.config.SecretHeader,
	})
	return nil
}

// Stop releases the port and waits, bounded by ctx, for in-flight handler
// fan-outs. Stop on a receiver that is not running returns nil.
func (r *Receiver) Stop(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	server := r.server
	if server == nil {
		return nil
	}
	done := r.serveDone
	addr := r.listener.Addr().String()

	if _, ok := ctx.Deadline(); !ok && r.config.ShutdownTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.config.ShutdownTimeout)
		defer cancel()
	}

	shutdownErr := server.Shutdown(ctx)
	if shutdownErr != nil {
		_ = server.Close()
	}
	<-done
	r.server = nil
	r.listener = nil
	r.serveDone = nil

	waitErr := r.waitInflight(ctx, r.drainGroup())
	r.telemetry.Info(ctx, "webhook receiver stopped", map[string]any{"addr": addr})
	return errors.Join(shutdownErr, waitErr)
}

// Addr reports the bound address, or "" when the receiver is not running.
func (r *Receiver) Addr() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listener == nil {
		return ""
	}
	return r.listener.Addr().String()
}

func (r *Receiver) handleWebhook(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	startedAt := time.Now()
	fields := map[string]any{"route": r.config.Path}

	if err := r.verifier.Verify(ctx, req.Header); err != nil {
		r.telemetry.Observe(ctx, startedAt, OperationReceiveWebhook, err, fields)
		writeAck(w, http.StatusUnauthorized, false, webhooks.UnauthorizedMessage)
		return
	}

	msg, err := r.normalize(w, req)
	if err != nil {
		r.telemetry.Observe(ctx, startedAt, OperationReceiveWebhook, err, fields)
		writeAck(w, http.StatusInternalServerError, false, MessageProcessErr)
		return
	}

	fields["event_id"] = msg.EventID
	fields["message_id"] = msg.MessageID
	fields["device_id"] = msg.DeviceID
	fields["handlers"] = r.dispatcher.Len()
	r.fanOut(ctx, msg)

	r.telemetry.Observe(ctx, startedAt, OperationReceiveWebhook, nil, fields)
	writeAck(w, http.StatusOK, true, MessageReceived)
}

func (r *Receiver) normalize(w http.ResponseWriter, req *http.Request) (core.InboundMessage, error) {
	raw, err := decodeBody(w, req, r.config.MaxBodyBytes)
	if err != nil {
		return core.InboundMessage{}, core.NormalizationError(err, "inbound: decode webhook body", map[string]any{
			"content_type": req.Header.Get("Content-Type"),
		})
	}
	return r.normalizer.Normalize(raw)
}

// fanOut acknowledges after initiating dispatch unless WaitForHandlers is set.
// Detached fan-outs outlive the request and are tracked for Stop.
func (r *Receiver) fanOut(ctx context.Context, msg core.InboundMessage) {
	if r.dispatcher.Len() == 0 {
		return
	}
	if r.config.WaitForHandlers {
		r.dispatcher.Dispatch(ctx, msg)
		return
	}
	r.fanMu.Lock()
	group := r.inflight
	group.Add(1)
	r.fanMu.Unlock()
	go func() {
		defer group.Done()
		r.dispatcher.Dispatch(context.WithoutCancel(ctx), msg)
	}()
}

// drainGroup detaches the current in-flight group for waiting. Fan-outs
// started afterwards join the next group.
func (r *Receiver) drainGroup() *sync.WaitGroup {
	r.fanMu.Lock()
	defer r.fanMu.Unlock()
	group := r.inflight
	r.inflight = &sync.WaitGroup{}
	return group
}

func (r *Receiver) waitInflight(ctx context.Context, group *sync.WaitGroup) error {
	done := make(chan struct{})
	go func() {
		group.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r *Receiver) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeAck(w, http.StatusOK, true, MessageHealthy)
}

// webhookPattern keeps the root route an exact match instead of a subtree.
func webhookPattern(path string) string {
	if path == "/" {
		return "/{$}"
	}
	return path
}

func writeAck(w http.ResponseWriter, status int, ok bool, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ackResponse{Status: ok, Message: message})
}
