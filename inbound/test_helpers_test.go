package inbound

import (
	"context"
	"sync"
)

type capturedCounter struct {
	name string
	tags map[string]string
}

type captureMetricsRecorder struct {
	mu       sync.Mutex
	counters []capturedCounter
}

func (m *captureMetricsRecorder) IncCounter(_ context.Context, name string, _ int64, tags map[string]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counters = append(m.counters, capturedCounter{name: name, tags: tags})
}

func (*captureMetricsRecorder) ObserveHistogram(context.Context, string, float64, map[string]string) {}

func (m *captureMetricsRecorder) count(name string, status string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	total := 0
	for _, item := range m.counters {
		if item.name == name && item.tags["status"] == status {
			total++
		}
	}
	return total
}
