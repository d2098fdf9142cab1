package query

const TypeDeviceStatus = "fonnte.query.device.status"

// DeviceStatusMessage asks for the status of DeviceID, or of the client's
// default device when DeviceID is empty.
type DeviceStatusMessage struct {
	DeviceID string
}

func (DeviceStatusMessage) Type() string { return TypeDeviceStatus }

func (DeviceStatusMessage) Validate() error { return nil }
