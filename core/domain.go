package core

import "time"

// PresenceHints asks the gateway to simulate activity before delivery.
type PresenceHints struct {
	Typing      bool
	ReadReceipt bool
	Online      bool
}

type Button struct {
	Display string `json:"display"`
	ID      string `json:"id"`
}

// ButtonMenu is an ordered set of tappable buttons. IDs are opaque correlation
// tokens echoed back by the gateway in inbound events.
type ButtonMenu struct {
	Buttons []Button
}

type ListRow struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ID          string `json:"id"`
}

type Section struct {
	Title string    `json:"title"`
	Rows  []ListRow `json:"rows"`
}

type ListMenu struct {
	Title    string    `json:"title"`
	Sections []Section `json:"sections"`
}

// OutboundMessage is built per call. Zero values mean "absent" and are left
// out of the request body.
type OutboundMessage struct {
	Target      string
	Text        string
	MediaURL    string
	DeviceID    string
	ScheduledAt time.Time
	Delay       time.Duration
	Presence    PresenceHints
	Filename    string
	Footer      string
	Header      string
	ButtonMenu  *ButtonMenu
	ListMenu    *ListMenu
}

// OutboundResult is the uniform outcome of every send operation. Failures are
// encoded here and never returned as Go errors.
type OutboundResult struct {
	Succeeded   bool   `json:"status"`
	Message     string `json:"message"`
	Payload     any    `json:"data,omitempty"`
	ErrorDetail any    `json:"error,omitempty"`
	StatusCode  int    `json:"statusCode,omitempty"`
	RequestID   string `json:"requestId,omitempty"`
	Err         error  `json:"-"`
}

func (r OutboundResult) Kind() ErrorKind {
	if r.Succeeded {
		return ErrorKindNone
	}
	return KindOf(r.Err)
}

// InboundMessage is the normalized shape of one gateway webhook event.
type InboundMessage struct {
	EventID         string         `json:"event_id,omitempty"`
	DeviceID        string         `json:"device_id,omitempty"`
	SenderAddress   string         `json:"sender,omitempty"`
	SenderName      string         `json:"sender_name,omitempty"`
	BodyText        string         `json:"message,omitempty"`
	MessageID       string         `json:"id,omitempty"`
	MessageType     string         `json:"type"`
	IsGroupMessage  bool           `json:"is_group"`
	GroupID         string         `json:"group_id,omitempty"`
	GroupName       string         `json:"group_name,omitempty"`
	TappedButtonID  string         `json:"button_id,omitempty"`
	TappedListRowID string         `json:"list_id,omitempty"`
	MediaURL        string         `json:"url,omitempty"`
	Caption         string         `json:"caption,omitempty"`
	Filename        string         `json:"filename,omitempty"`
	ReceivedAt      time.Time      `json:"timestamp"`
	RawPayload      map[string]any `json:"raw,omitempty"`
}

const DefaultMessageType = "text"
