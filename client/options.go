package client

import (
	"github.com/goliatone/go-fonnte/core"
)

type clientBuilder struct {
	logger          core.Logger
	loggerProvider  core.LoggerProvider
	metricsRecorder core.MetricsRecorder
	httpClient      core.HTTPDoer
	transport       core.TransportAdapter
	configLoader    core.RawConfigLoader
	requestID       func() string
}

type Option func(*clientBuilder)

func WithLogger(logger core.Logger) Option {
	return func(b *clientBuilder) {
		b.logger = logger
	}
}

func WithLoggerProvider(provider core.LoggerProvider) Option {
	return func(b *clientBuilder) {
		b.loggerProvider = provider
	}
}

func WithMetricsRecorder(recorder core.MetricsRecorder) Option {
	return func(b *clientBuilder) {
		b.metricsRecorder = recorder
	}
}

// WithHTTPClient replaces the http client used by the default REST transport.
// It is ignored when WithTransport is also set.
func WithHTTPClient(client core.HTTPDoer) Option {
	return func(b *clientBuilder) {
		b.httpClient = client
	}
}

func WithTransport(adapter core.TransportAdapter) Option {
	return func(b *clientBuilder) {
		b.transport = adapter
	}
}

// WithConfigLoader layers raw configuration between the defaults and the
// config passed to New.
func WithConfigLoader(loader core.RawConfigLoader) Option {
	return func(b *clientBuilder) {
		b.configLoader = loader
	}
}

func WithRequestIDGenerator(generator func() string) Option {
	return func(b *clientBuilder) {
		b.requestID = generator
	}
}
