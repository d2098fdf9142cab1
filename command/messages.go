package command

import (
	"github.com/goliatone/go-fonnte/core"
)

const (
	TypeSendMessage  = "fonnte.command.message.send"
	TypeSendMedia    = "fonnte.command.media.send"
	TypeSendDocument = "fonnte.command.document.send"
	TypeSendButtons  = "fonnte.command.buttons.send"
	TypeSendList     = "fonnte.command.list.send"
)

// Send messages carry no Validate method. Target and variant checks run in
// the Sender so a rejected payload still yields a stored OutboundResult with
// the same message a direct client call returns.

type SendMessageMessage struct {
	Message core.OutboundMessage
}

func (SendMessageMessage) Type() string { return TypeSendMessage }

type SendMediaMessage struct {
	Message core.OutboundMessage
}

func (SendMediaMessage) Type() string { return TypeSendMedia }

type SendDocumentMessage struct {
	Message core.OutboundMessage
}

func (SendDocumentMessage) Type() string { return TypeSendDocument }

type SendButtonsMessage struct {
	Message core.OutboundMessage
}

func (SendButtonsMessage) Type() string { return TypeSendButtons }

type SendListMessage struct {
	Message core.OutboundMessage
}

func (SendListMessage) Type() string { return TypeSendList }
