package inbound

import (
	"github.com/goliatone/go-fonnte/core"
	"github.com/goliatone/go-fonnte/webhooks"
)

type receiverBuilder struct {
	logger          core.Logger
	loggerProvider  core.LoggerProvider
	metricsRecorder core.MetricsRecorder
	configLoader    core.RawConfigLoader
	verifier        core.Verifier
	normalizer      *webhooks.Normalizer
}

type Option func(*receiverBuilder)

func WithLogger(logger core.Logger) Option {
	return func(b *receiverBuilder) {
		b.logger = logger
	}
}

func WithLoggerProvider(provider core.LoggerProvider) Option {
	return func(b *receiverBuilder) {
		b.loggerProvider = provider
	}
}

func WithMetricsRecorder(recorder core.MetricsRecorder) Option {
	return func(b *receiverBuilder) {
		b.metricsRecorder = recorder
	}
}

func WithConfigLoader(loader core.RawConfigLoader) Option {
	return func(b *receiverBuilder) {
		b.configLoader = loader
	}
}

// WithVerifier replaces the shared-secret verifier built from the config.
func WithVerifier(verifier core.Verifier) Option {
	return func(b *receiverBuilder) {
		b.verifier = verifier
	}
}

// WithNormalizer replaces the default normalizer, typically to extend the
// field table with another payload dialect.
func WithNormalizer(normalizer *webhooks.Normalizer) Option {
	return func(b *receiverBuilder) {
		b.normalizer = normalizer
	}
}
