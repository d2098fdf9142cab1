// Package fonnte wires an outbound client for the Fonnte WhatsApp gateway and
// an inbound webhook receiver that normalizes gateway events for handlers.
package fonnte

import (
	"github.com/goliatone/go-fonnte/client"
	"github.com/goliatone/go-fonnte/core"
	"github.com/goliatone/go-fonnte/inbound"
)

type ClientConfig = core.ClientConfig
type WebhookConfig = core.WebhookConfig

type OutboundMessage = core.OutboundMessage
type OutboundResult = core.OutboundResult
type InboundMessage = core.InboundMessage
type PresenceHints = core.PresenceHints
type Button = core.Button
type ButtonMenu = core.ButtonMenu
type ListMenu = core.ListMenu
type Section = core.Section
type ListRow = core.ListRow

type Handler = core.MessageHandler
type HandlerFunc = core.MessageHandlerFunc

type Client = client.Client
type ClientOption = client.Option
type Receiver = inbound.Receiver
type ReceiverOption = inbound.Option

type ErrorKind = core.ErrorKind

func DefaultClientConfig() ClientConfig {
	return core.DefaultClientConfig()
}

func DefaultWebhookConfig() WebhookConfig {
	return core.DefaultWebhookConfig()
}

// NewClient builds an outbound client bound to one API key.
func NewClient(cfg ClientConfig, opts ...ClientOption) (*Client, error) {
	return client.New(cfg, opts...)
}

// NewReceiver builds an inbound webhook receiver. It does not bind a port
// until Start is called.
func NewReceiver(cfg WebhookConfig, opts ...ReceiverOption) (*Receiver, error) {
	return inbound.NewReceiver(cfg, opts...)
}

// KindOf reports the error kind carried by err, or an empty kind.
func KindOf(err error) ErrorKind {
	return core.KindOf(err)
}
