package query

import (
	"context"

	"github.com/goliatone/go-fonnte/core"
)

type DeviceStatusReader interface {
	GetDeviceStatusFor(ctx context.Context, deviceID string) core.OutboundResult
}

type DeviceStatusQuery struct {
	reader DeviceStatusReader
}

func NewDeviceStatusQuery(reader DeviceStatusReader) *DeviceStatusQuery {
	return &DeviceStatusQuery{reader: reader}
}

// Query returns the shaped result together with its error so query pipelines
// observe gateway failures.
func (q *DeviceStatusQuery) Query(ctx context.Context, msg DeviceStatusMessage) (core.OutboundResult, error) {
	if q == nil || q.reader == nil {
		return core.OutboundResult{}, queryDependencyError("query: device status reader is required")
	}
	result := q.reader.GetDeviceStatusFor(ctx, msg.DeviceID)
	return result, queryResultError(result)
}
