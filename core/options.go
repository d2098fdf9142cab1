package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-config/cfgx"
	opts "github.com/goliatone/go-options"
)

type staticRawConfigLoader struct {
	Values map[string]any
}

// StaticConfigLoader serves a fixed raw configuration map, typically the
// section of an application config file that belongs to this library.
func StaticConfigLoader(values map[string]any) RawConfigLoader {
	return staticRawConfigLoader{Values: values}
}

func (l staticRawConfigLoader) LoadRaw(context.Context) (map[string]any, error) {
	if len(l.Values) == 0 {
		return map[string]any{}, nil
	}
	out := make(map[string]any, len(l.Values))
	for key, value := range l.Values {
		out[key] = value
	}
	return out, nil
}

// ResolveClientConfig layers defaults < loaded raw config < runtime values.
func ResolveClientConfig(ctx context.Context, loader RawConfigLoader, runtime ClientConfig) (ClientConfig, error) {
	defaults := DefaultClientConfig()
	loaded, err := loadConfig(ctx, loader, defaults)
	if err != nil {
		return ClientConfig{}, err
	}
	return resolveLayers(
		defaults,
		clientConfigLayer(defaults, true),
		clientConfigLayer(loaded, false),
		clientConfigLayer(runtime, false),
		(*ClientConfig).Validate,
	)
}

// ResolveWebhookConfig layers defaults < loaded raw config < runtime values.
func ResolveWebhookConfig(ctx context.Context, loader RawConfigLoader, runtime WebhookConfig) (WebhookConfig, error) {
	defaults := DefaultWebhookConfig()
	loaded, err := loadConfig(ctx, loader, defaults)
	if err != nil {
		return WebhookConfig{}, err
	}
	return resolveLayers(
		defaults,
		webhookConfigLayer(defaults, true),
		webhookConfigLayer(loaded, false),
		webhookConfigLayer(runtime, false),
		(*WebhookConfig).Validate,
	)
}

func loadConfig[T any](ctx context.Context, loader RawConfigLoader, defaults T) (T, error) {
	var zero T
	if loader == nil {
		loader = staticRawConfigLoader{}
	}
	if ctx == nil {
		ctx = context.Background()
	}
	raw, err := loader.LoadRaw(ctx)
	if err != nil {
		return zero, err
	}
	// validation runs once on the merged result, a partial file is fine here
	cfg, err := cfgx.Build[T](raw, cfgx.WithDefaults(defaults))
	if err != nil {
		return zero, err
	}
	return cfg, nil
}

func resolveLayers[T any](
	defaults T,
	defaultLayer map[string]any,
	loadedLayer map[string]any,
	runtimeLayer map[string]any,
	validate func(*T) error,
) (T, error) {
	var zero T
	stack, err := opts.NewStack(
		opts.NewLayer(
			opts.NewScope("defaults", 0),
			defaultLayer,
			opts.WithSnapshotID[map[string]any]("defaults"),
		),
		opts.NewLayer(
			opts.NewScope("config", 10),
			loadedLayer,
			opts.WithSnapshotID[map[string]any]("config"),
		),
		opts.NewLayer(
			opts.NewScope("runtime", 20),
			runtimeLayer,
			opts.WithSnapshotID[map[string]any]("runtime"),
		),
	)
	if err != nil {
		return zero, fmt.Errorf("core: options stack build failed: %w", err)
	}
	merged, err := stack.Merge()
	if err != nil {
		return zero, fmt.Errorf("core: options merge failed: %w", err)
	}
	resolved, err := cfgx.Build[T](merged.Value,
		cfgx.WithDefaults(defaults),
		cfgx.WithValidator[T](validate),
	)
	if err != nil {
		return zero, err
	}
	if err := validate(&resolved); err != nil {
		return zero, err
	}
	return resolved, nil
}

func clientConfigLayer(cfg ClientConfig, includeZero bool) map[string]any {
	layer := map[string]any{}
	if includeZero || strings.TrimSpace(cfg.APIKey) != "" {
		layer["api_key"] = cfg.APIKey
	}
	if includeZero || strings.TrimSpace(cfg.BaseURL) != "" {
		layer["base_url"] = cfg.BaseURL
	}
	if includeZero || strings.TrimSpace(cfg.DeviceID) != "" {
		layer["device_id"] = cfg.DeviceID
	}
	if includeZero || cfg.Timeout != 0 {
		layer["timeout"] = cfg.Timeout
	}
	return layer
}

func webhookConfigLayer(cfg WebhookConfig, includeZero bool) map[string]any {
	layer := map[string]any{}
	if includeZero || strings.TrimSpace(cfg.Host) != "" {
		layer["host"] = cfg.Host
	}
	if includeZero || cfg.Port != 0 {
		layer["port"] = cfg.Port
	}
	if includeZero || strings.TrimSpace(cfg.Path) != "" {
		layer["path"] = cfg.Path
	}
	if includeZero || strings.TrimSpace(cfg.Secret) != "" {
		layer["secret"] = cfg.Secret
	}
	if includeZero || strings.TrimSpace(cfg.SecretHeader) != "" {
		layer["secret_header"] = cfg.SecretHeader
	}
	if includeZero || cfg.WaitForHandlers {
		layer["wait_for_handlers"] = cfg.WaitForHandlers
	}
	if includeZero || cfg.MaxBodyBytes != 0 {
		layer["max_body_bytes"] = cfg.MaxBodyBytes
	}
	if includeZero || cfg.ShutdownTimeout != 0 {
		layer["shutdown_timeout"] = cfg.ShutdownTimeout
	}
	return layer
}
