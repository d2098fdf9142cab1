package core

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestResolveClientConfig_Defaults(t *testing.T) {
	cfg, err := ResolveClientConfig(context.Background(), nil, ClientConfig{APIKey: "key_1"})
	if err != nil {
		t.Fatalf("resolve client config: %v", err)
	}
	if cfg.BaseURL != DefaultBaseURL {
		t.Fatalf("expected default base url, got %q", cfg.BaseURL)
	}
	if cfg.Timeout != DefaultTimeout {
		t.Fatalf("expected default timeout, got %s", cfg.Timeout)
	}
	if cfg.APIKey != "key_1" {
		t.Fatalf("expected runtime api key, got %q", cfg.APIKey)
	}
}

func TestResolveClientConfig_LayeringPrecedence(t *testing.T) {
	loader := mapRawLoader{values: map[string]any{
		"api_key":   "from-config",
		"base_url":  "https://gateway.example",
		"device_id": "dev_config",
	}}

	cfg, err := ResolveClientConfig(context.Background(), loader, ClientConfig{
		DeviceID: "dev_runtime",
		Timeout:  5 * time.Second,
	})
	if err != nil {
		t.Fatalf("resolve client config: %v", err)
	}
	if cfg.APIKey != "from-config" {
		t.Fatalf("expected config layer api key, got %q", cfg.APIKey)
	}
	if cfg.BaseURL != "https://gateway.example" {
		t.Fatalf("expected config layer base url, got %q", cfg.BaseURL)
	}
	if cfg.DeviceID != "dev_runtime" {
		t.Fatalf("expected runtime device to override config, got %q", cfg.DeviceID)
	}
	if cfg.Timeout != 5*time.Second {
		t.Fatalf("expected runtime timeout, got %s", cfg.Timeout)
	}
}

func TestResolveClientConfig_RequiresAPIKey(t *testing.T) {
	_, err := ResolveClientConfig(context.Background(), nil, ClientConfig{})
	if err == nil {
		t.Fatalf("expected missing api key error")
	}
}

func TestResolveClientConfig_LoaderFailure(t *testing.T) {
	sentinel := errors.New("boom")
	_, err := ResolveClientConfig(context.Background(), mapRawLoader{err: sentinel}, ClientConfig{APIKey: "k"})
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected loader error, got %v", err)
	}
}

func TestResolveWebhookConfig_Defaults(t *testing.T) {
	cfg, err := ResolveWebhookConfig(context.Background(), nil, WebhookConfig{Port: 3000, Path: "/webhook"})
	if err != nil {
		t.Fatalf("resolve webhook config: %v", err)
	}
	if cfg.SecretHeader != DefaultSecretHeader {
		t.Fatalf("expected default secret header, got %q", cfg.SecretHeader)
	}
	if cfg.MaxBodyBytes != DefaultMaxBodyBytes {
		t.Fatalf("expected default body limit, got %d", cfg.MaxBodyBytes)
	}
	if cfg.Port != 3000 || cfg.Path != "/webhook" {
		t.Fatalf("unexpected runtime values %#v", cfg)
	}
}

func TestResolveWebhookConfig_FromStaticLoader(t *testing.T) {
	loader := StaticConfigLoader(map[string]any{
		"port":   8081,
		"path":   "/fonnte",
		"secret": "s3cr3t",
	})
	cfg, err := ResolveWebhookConfig(context.Background(), loader, WebhookConfig{})
	if err != nil {
		t.Fatalf("resolve webhook config: %v", err)
	}
	if cfg.Port != 8081 || cfg.Path != "/fonnte" || cfg.Secret != "s3cr3t" {
		t.Fatalf("expected loader values, got %#v", cfg)
	}
}

func TestWebhookConfigValidate(t *testing.T) {
	cases := []struct {
		name string
		cfg  WebhookConfig
		ok   bool
	}{
		{name: "valid", cfg: WebhookConfig{Port: 3000, Path: "/webhook", SecretHeader: DefaultSecretHeader}, ok: true},
		{name: "ephemeral port", cfg: WebhookConfig{Port: 0, Path: "/webhook"}, ok: true},
		{name: "missing path", cfg: WebhookConfig{Port: 3000}, ok: false},
		{name: "relative path", cfg: WebhookConfig{Port: 3000, Path: "webhook"}, ok: false},
		{name: "health path reserved", cfg: WebhookConfig{Port: 3000, Path: HealthPath}, ok: false},
		{name: "port out of range", cfg: WebhookConfig{Port: 70000, Path: "/webhook"}, ok: false},
		{name: "secret without header", cfg: WebhookConfig{Port: 3000, Path: "/webhook", Secret: "s"}, ok: false},
		{name: "root path", cfg: WebhookConfig{Path: "/"}, ok: true},
		{name: "nested path", cfg: WebhookConfig{Path: "/hooks/fonnte"}, ok: true},
		{name: "unterminated wildcard", cfg: WebhookConfig{Path: "/hooks/{bad"}, ok: false},
		{name: "named wildcard", cfg: WebhookConfig{Path: "/hooks/{name}"}, ok: false},
		{name: "trailing slash", cfg: WebhookConfig{Path: "/hooks/"}, ok: false},
		{name: "inner space", cfg: WebhookConfig{Path: "/hooks /x"}, ok: false},
		{name: "leading space", cfg: WebhookConfig{Path: " /webhook"}, ok: false},
		{name: "percent escape", cfg: WebhookConfig{Path: "/hooks%2Fx"}, ok: false},
		{name: "unclean path", cfg: WebhookConfig{Path: "/hooks//x"}, ok: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.ok && err != nil {
				t.Fatalf("expected valid config, got %v", err)
			}
			if !tc.ok && err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}

func TestClientConfigEndpoint(t *testing.T) {
	cfg := ClientConfig{BaseURL: "https://api.fonnte.com/"}
	if got := cfg.Endpoint("/send"); got != "https://api.fonnte.com/send" {
		t.Fatalf("unexpected endpoint %q", got)
	}
	if got := cfg.Endpoint("device"); got != "https://api.fonnte.com/device" {
		t.Fatalf("unexpected endpoint %q", got)
	}
}
