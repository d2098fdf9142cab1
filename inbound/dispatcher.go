package inbound

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/goliatone/go-fonnte/core"
)

const OperationHandleMessage = "webhook_handler"

type Handler = core.MessageHandler

type HandlerFunc = core.MessageHandlerFunc

// Dispatcher fans one message out to every registered handler. The registry
// is append-only.
type Dispatcher struct {
	Telemetry core.Telemetry

	mu       sync.RWMutex
	handlers []Handler
}

func NewDispatcher(telemetry core.Telemetry) *Dispatcher {
	return &Dispatcher{Telemetry: telemetry}
}

func (d *Dispatcher) Register(handler Handler) error {
	if d == nil {
		return inboundInternal("inbound: dispatcher is nil", nil)
	}
	if handler == nil {
		return inboundBadInput("inbound: handler is nil", nil)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers = append(d.handlers, handler)
	return nil
}

func (d *Dispatcher) Len() int {
	if d == nil {
		return 0
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.handlers)
}

// Dispatch runs all handlers concurrently and returns once every one of them
// has finished. A failing or panicking handler never affects its siblings; the
// returned errors are for observation only.
func (d *Dispatcher) Dispatch(ctx context.Context, msg core.InboundMessage) []error {
	if d == nil {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	handlers := d.snapshot()
	if len(handlers) == 0 {
		return nil
	}

	results := make([]error, len(handlers))
	var wg sync.WaitGroup
	for index, handler := range handlers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[index] = d.invoke(ctx, index, handler, msg)
		}()
	}
	wg.Wait()

	var errs []error
	for _, err := range results {
		if err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

func (d *Dispatcher) invoke(ctx context.Context, index int, handler Handler, msg core.InboundMessage) (err error) {
	startedAt := time.Now()
	metadata := map[string]any{
		"handler_index": index,
		"event_id":      msg.EventID,
		"message_id":    msg.MessageID,
	}
	defer func() {
		if recovered := recover(); recovered != nil {
			metadata["panic"] = true
			err = core.HandlerError(fmt.Errorf("panic: %v", recovered), "inbound: handler panicked", metadata)
		}
		d.Telemetry.Observe(ctx, startedAt, OperationHandleMessage, err, metadata)
	}()

	if handlerErr := handler.HandleMessage(ctx, msg); handlerErr != nil {
		err = core.HandlerError(handlerErr, "inbound: handler failed", metadata)
	}
	return err
}

func (d *Dispatcher) snapshot() []Handler {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]Handler, len(d.handlers))
	copy(out, d.handlers)
	return out
}
