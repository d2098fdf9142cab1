package gocommand

import (
	"context"

	"github.com/goliatone/go-command"
	commanddispatcher "github.com/goliatone/go-command/dispatcher"
	"github.com/goliatone/go-fonnte/core"
)

type Subscription = commanddispatcher.Subscription

// RegistryAdapter registers fonnte commands and queries on a go-command
// registry and subscribes them on the package level dispatcher.
type RegistryAdapter struct {
	registry *command.Registry
}

func NewRegistryAdapter(registry *command.Registry) *RegistryAdapter {
	if registry == nil {
		registry = command.NewRegistry()
	}
	return &RegistryAdapter{registry: registry}
}

func (a *RegistryAdapter) Registry() *command.Registry {
	if a == nil {
		return nil
	}
	return a.registry
}

func (a *RegistryAdapter) Initialize() error {
	if err := a.ready(); err != nil {
		return err
	}
	return a.registry.Initialize()
}

func (a *RegistryAdapter) ready() error {
	if a == nil || a.registry == nil {
		return core.InternalError("gocommand: registry is not configured", map[string]any{"component": "gocommand"})
	}
	return nil
}

// RegisterAndSubscribe subscribes cmd and records it in the registry. The
// subscription is released when registration fails.
func RegisterAndSubscribe[T any](adapter *RegistryAdapter, cmd command.Commander[T]) (Subscription, error) {
	if err := adapter.ready(); err != nil {
		return nil, err
	}
	if cmd == nil {
		return nil, core.InternalError("gocommand: command is required", nil)
	}
	subscription := commanddispatcher.SubscribeCommand(cmd)
	if err := adapter.registry.RegisterCommand(cmd); err != nil {
		release(subscription)
		return nil, err
	}
	return subscription, nil
}

func RegisterAndSubscribeQuery[T any, R any](adapter *RegistryAdapter, qry command.Querier[T, R]) (Subscription, error) {
	if err := adapter.ready(); err != nil {
		return nil, err
	}
	if qry == nil {
		return nil, core.InternalError("gocommand: query is required", nil)
	}
	subscription := commanddispatcher.SubscribeQuery(qry)
	if err := adapter.registry.RegisterCommand(qry); err != nil {
		release(subscription)
		return nil, err
	}
	return subscription, nil
}

func Dispatch[T any](ctx context.Context, msg T) error {
	return commanddispatcher.Dispatch(ctx, msg)
}

// DispatchSend dispatches a send command and returns the OutboundResult the
// handler stored, together with the dispatch error. A failed send yields both
// a populated result and an error.
func DispatchSend[T any](ctx context.Context, msg T) (core.OutboundResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	collector := command.NewResult[core.OutboundResult]()
	err := commanddispatcher.Dispatch(command.ContextWithResult(ctx, collector), msg)
	result, ok := collector.Load()
	if !ok && err == nil {
		return result, core.InternalError("gocommand: send handler stored no result", nil)
	}
	return result, err
}

func Query[T any, R any](ctx context.Context, msg T) (R, error) {
	return commanddispatcher.Query[T, R](ctx, msg)
}

func release(subscription Subscription) {
	if subscription != nil {
		subscription.Unsubscribe()
	}
}
