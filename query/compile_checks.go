package query

import (
	gocmd "github.com/goliatone/go-command"
	"github.com/goliatone/go-fonnte/core"
)

var _ gocmd.Querier[DeviceStatusMessage, core.OutboundResult] = (*DeviceStatusQuery)(nil)
