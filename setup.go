package fonnte

import (
	"github.com/goliatone/go-fonnte/adapters/gologger"
	"github.com/goliatone/go-fonnte/client"
	"github.com/goliatone/go-fonnte/core"
	"github.com/goliatone/go-fonnte/inbound"
)

// Dependencies are shared by every component built by Setup. All fields are
// optional.
type Dependencies struct {
	Logger         core.Logger
	LoggerProvider core.LoggerProvider
	Metrics        core.MetricsRecorder
	HTTPClient     core.HTTPDoer
}

// Bundle groups an outbound client, its command facade and an inbound
// receiver that log and record metrics through the same sinks.
type Bundle struct {
	Client   *Client
	Facade   *Facade
	Receiver *Receiver
}

// Setup builds the outbound and inbound halves together. The receiver is
// returned unstarted.
func Setup(clientCfg ClientConfig, webhookCfg WebhookConfig, deps Dependencies) (*Bundle, error) {
	provider := gologger.ResolveProvider("fonnte", deps.LoggerProvider, deps.Logger)

	clientOpts := []client.Option{
		client.WithLoggerProvider(provider),
		client.WithMetricsRecorder(deps.Metrics),
	}
	if deps.HTTPClient != nil {
		clientOpts = append(clientOpts, client.WithHTTPClient(deps.HTTPClient))
	}
	c, err := client.New(clientCfg, clientOpts...)
	if err != nil {
		return nil, err
	}
	facade, err := NewFacade(c)
	if err != nil {
		return nil, err
	}
	receiver, err := inbound.NewReceiver(webhookCfg,
		inbound.WithLoggerProvider(provider),
		inbound.WithMetricsRecorder(deps.Metrics),
	)
	if err != nil {
		return nil, err
	}
	return &Bundle{Client: c, Facade: facade, Receiver: receiver}, nil
}
