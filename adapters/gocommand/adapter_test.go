package gocommand

import (
	"context"
	"testing"

	"github.com/goliatone/go-command"
	fonntecommand "github.com/goliatone/go-fonnte/command"
	"github.com/goliatone/go-fonnte/core"
	"github.com/goliatone/go-fonnte/query"
)

type dispatchMessage struct {
	ID string
}

func (dispatchMessage) Type() string { return "fonnte.command.test" }

func TestRegisterAndSubscribe_RequiresRegistry(t *testing.T) {
	var adapter *RegistryAdapter
	cmd := command.CommandFunc[dispatchMessage](func(context.Context, dispatchMessage) error { return nil })
	if _, err := RegisterAndSubscribe(adapter, cmd); err == nil {
		t.Fatalf("expected missing registry error")
	}
	if err := adapter.Initialize(); err == nil {
		t.Fatalf("expected initialize to fail without registry")
	}
	if NewRegistryAdapter(nil).Registry() == nil {
		t.Fatalf("expected default registry")
	}
}

func TestRegistryAndDispatchWiring(t *testing.T) {
	adapter := NewRegistryAdapter(command.NewRegistry())
	executed := 0

	cmd := command.CommandFunc[dispatchMessage](func(context.Context, dispatchMessage) error {
		executed++
		return nil
	})

	sub, err := RegisterAndSubscribe(adapter, cmd)
	if err != nil {
		t.Fatalf("register and subscribe: %v", err)
	}
	defer sub.Unsubscribe()
	if err := adapter.Initialize(); err != nil {
		t.Fatalf("initialize registry: %v", err)
	}

	if err := Dispatch(context.Background(), dispatchMessage{ID: "m1"}); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if executed != 1 {
		t.Fatalf("expected command execution count=1, got %d", executed)
	}
}

type stubGateway struct {
	sent   []core.OutboundMessage
	device string
}

func (g *stubGateway) send(msg core.OutboundMessage) core.OutboundResult {
	g.sent = append(g.sent, msg)
	return core.OutboundResult{Succeeded: true, Message: "Message sent successfully"}
}

func (g *stubGateway) SendMessage(_ context.Context, msg core.OutboundMessage) core.OutboundResult {
	return g.send(msg)
}

func (g *stubGateway) SendMedia(_ context.Context, msg core.OutboundMessage) core.OutboundResult {
	return g.send(msg)
}

func (g *stubGateway) SendDocument(_ context.Context, msg core.OutboundMessage) core.OutboundResult {
	return g.send(msg)
}

func (g *stubGateway) SendButtons(_ context.Context, msg core.OutboundMessage) core.OutboundResult {
	return g.send(msg)
}

func (g *stubGateway) SendList(_ context.Context, msg core.OutboundMessage) core.OutboundResult {
	return g.send(msg)
}

func (g *stubGateway) GetDeviceStatusFor(_ context.Context, deviceID string) core.OutboundResult {
	g.device = deviceID
	return core.OutboundResult{Succeeded: true, Message: "Device status retrieved"}
}

func TestSendCommandAndDeviceQueryDispatch(t *testing.T) {
	adapter := NewRegistryAdapter(command.NewRegistry())
	gateway := &stubGateway{}

	sendSub, err := RegisterAndSubscribe(adapter, fonntecommand.NewSendMessageCommand(gateway))
	if err != nil {
		t.Fatalf("register send command: %v", err)
	}
	defer sendSub.Unsubscribe()
	querySub, err := RegisterAndSubscribeQuery(adapter, query.NewDeviceStatusQuery(gateway))
	if err != nil {
		t.Fatalf("register device query: %v", err)
	}
	defer querySub.Unsubscribe()
	if err := adapter.Initialize(); err != nil {
		t.Fatalf("initialize registry: %v", err)
	}

	msg := fonntecommand.SendMessageMessage{Message: core.OutboundMessage{Target: "628123456789", Text: "hi"}}
	if err := Dispatch(context.Background(), msg); err != nil {
		t.Fatalf("dispatch send: %v", err)
	}
	if len(gateway.sent) != 1 || gateway.sent[0].Text != "hi" {
		t.Fatalf("expected command to reach the gateway, got %#v", gateway.sent)
	}

	stored, err := DispatchSend(context.Background(), msg)
	if err != nil {
		t.Fatalf("dispatch send with result: %v", err)
	}
	if !stored.Succeeded || stored.Message != "Message sent successfully" {
		t.Fatalf("unexpected stored result %#v", stored)
	}

	result, err := Query[query.DeviceStatusMessage, core.OutboundResult](context.Background(), query.DeviceStatusMessage{DeviceID: "dev_1"})
	if err != nil {
		t.Fatalf("query device status: %v", err)
	}
	if !result.Succeeded || gateway.device != "dev_1" {
		t.Fatalf("unexpected query result %#v device=%q", result, gateway.device)
	}
}
