package command

import gocmd "github.com/goliatone/go-command"

var (
	_ gocmd.Commander[SendMessageMessage]  = (*SendMessageCommand)(nil)
	_ gocmd.Commander[SendMediaMessage]    = (*SendMediaCommand)(nil)
	_ gocmd.Commander[SendDocumentMessage] = (*SendDocumentCommand)(nil)
	_ gocmd.Commander[SendButtonsMessage]  = (*SendButtonsCommand)(nil)
	_ gocmd.Commander[SendListMessage]     = (*SendListCommand)(nil)
)
