package command

import (
	"context"

	gocmd "github.com/goliatone/go-command"
	"github.com/goliatone/go-fonnte/core"
)

// Sender is the outbound surface the commands delegate to; *client.Client
// satisfies it.
type Sender interface {
	SendMessage(ctx context.Context, msg core.OutboundMessage) core.OutboundResult
	SendMedia(ctx context.Context, msg core.OutboundMessage) core.OutboundResult
	SendDocument(ctx context.Context, msg core.OutboundMessage) core.OutboundResult
	SendButtons(ctx context.Context, msg core.OutboundMessage) core.OutboundResult
	SendList(ctx context.Context, msg core.OutboundMessage) core.OutboundResult
}

type SendMessageCommand struct {
	sender Sender
}

func NewSendMessageCommand(sender Sender) *SendMessageCommand {
	return &SendMessageCommand{sender: sender}
}

func (c *SendMessageCommand) Execute(ctx context.Context, msg SendMessageMessage) error {
	if c == nil || c.sender == nil {
		return commandDependencyError("command: message sender is required")
	}
	result := c.sender.SendMessage(ctx, msg.Message)
	storeResult(ctx, result)
	return resultError(result)
}

type SendMediaCommand struct {
	sender Sender
}

func NewSendMediaCommand(sender Sender) *SendMediaCommand {
	return &SendMediaCommand{sender: sender}
}

func (c *SendMediaCommand) Execute(ctx context.Context, msg SendMediaMessage) error {
	if c == nil || c.sender == nil {
		return commandDependencyError("command: media sender is required")
	}
	result := c.sender.SendMedia(ctx, msg.Message)
	storeResult(ctx, result)
	return resultError(result)
}

type SendDocumentCommand struct {
	sender Sender
}

func NewSendDocumentCommand(sender Sender) *SendDocumentCommand {
	return &SendDocumentCommand{sender: sender}
}

func (c *SendDocumentCommand) Execute(ctx context.Context, msg SendDocumentMessage) error {
	if c == nil || c.sender == nil {
		return commandDependencyError("command: document sender is required")
	}
	result := c.sender.SendDocument(ctx, msg.Message)
	storeResult(ctx, result)
	return resultError(result)
}

type SendButtonsCommand struct {
	sender Sender
}

func NewSendButtonsCommand(sender Sender) *SendButtonsCommand {
	return &SendButtonsCommand{sender: sender}
}

func (c *SendButtonsCommand) Execute(ctx context.Context, msg SendButtonsMessage) error {
	if c == nil || c.sender == nil {
		return commandDependencyError("command: buttons sender is required")
	}
	result := c.sender.SendButtons(ctx, msg.Message)
	storeResult(ctx, result)
	return resultError(result)
}

type SendListCommand struct {
	sender Sender
}

func NewSendListCommand(sender Sender) *SendListCommand {
	return &SendListCommand{sender: sender}
}

func (c *SendListCommand) Execute(ctx context.Context, msg SendListMessage) error {
	if c == nil || c.sender == nil {
		return commandDependencyError("command: list sender is required")
	}
	result := c.sender.SendList(ctx, msg.Message)
	storeResult(ctx, result)
	return resultError(result)
}

func storeResult[T any](ctx context.Context, value T) {
	collector := gocmd.ResultFromContext[T](ctx)
	if collector == nil {
		return
	}
	collector.Store(value)
}
