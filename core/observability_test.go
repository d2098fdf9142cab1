package core

import (
	"context"
	"testing"
	"time"
)

func TestTelemetryObserve_SuccessRecordsMetricsAndLog(t *testing.T) {
	metrics := &captureMetricsRecorder{}
	logger := newCaptureLogger()
	telemetry := NewTelemetry("fonnte.test", stubLoggerProvider{logger: logger}, nil, metrics)

	telemetry.Observe(context.Background(), time.Now(), "send message", nil, map[string]any{
		"request_id": "req_1",
		"api_key":    "super-secret",
	})

	if len(metrics.counters) != 1 || metrics.counters[0].name != "fonnte.send_message.total" {
		t.Fatalf("expected fonnte.send_message.total counter, got %#v", metrics.counters)
	}
	if metrics.counters[0].tags["status"] != "success" {
		t.Fatalf("expected success status tag, got %#v", metrics.counters[0].tags)
	}
	if len(metrics.histograms) != 1 || metrics.histograms[0].name != "fonnte.send_message.duration_ms" {
		t.Fatalf("expected duration histogram, got %#v", metrics.histograms)
	}

	records := logger.snapshot()
	if len(records) != 1 {
		t.Fatalf("expected one log record, got %d", len(records))
	}
	last := records[0]
	if last.level != "info" || last.msg != "send_message succeeded" {
		t.Fatalf("unexpected log record %#v", last)
	}
	if last.fields["request_id"] != "req_1" {
		t.Fatalf("expected request_id field, got %#v", last.fields["request_id"])
	}
	if last.fields["api_key"] != RedactedValue {
		t.Fatalf("expected api_key to be redacted in logs, got %#v", last.fields["api_key"])
	}
}

func TestTelemetryObserve_FailureTagsErrorKind(t *testing.T) {
	metrics := &captureMetricsRecorder{}
	logger := newCaptureLogger()
	telemetry := NewTelemetry("fonnte.test", nil, logger, metrics)

	telemetry.Observe(context.Background(), time.Now(), "webhook_receive", UnauthorizedError("Unauthorized", nil), map[string]any{
		"route": "/webhook",
	})

	if len(metrics.counters) != 1 {
		t.Fatalf("expected one counter, got %#v", metrics.counters)
	}
	tags := metrics.counters[0].tags
	if tags["status"] != "failure" || tags["error_kind"] != string(ErrorKindAuth) || tags["route"] != "/webhook" {
		t.Fatalf("unexpected failure tags %#v", tags)
	}
	records := logger.snapshot()
	if len(records) != 1 || records[0].level != "error" {
		t.Fatalf("expected one error log, got %#v", records)
	}
	if records[0].fields["error_kind"] != string(ErrorKindAuth) {
		t.Fatalf("expected error_kind field, got %#v", records[0].fields["error_kind"])
	}
}

func TestNewTelemetry_DefaultsToNop(t *testing.T) {
	telemetry := NewTelemetry("fonnte", nil, nil, nil)
	if telemetry.Logger == nil {
		t.Fatalf("expected nop logger fallback")
	}
	if telemetry.Metrics == nil {
		t.Fatalf("expected nop metrics fallback")
	}
	telemetry.Observe(context.Background(), time.Now(), "noop", nil, nil)
}
