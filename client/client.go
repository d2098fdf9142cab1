package client

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/goliatone/go-fonnte/core"
	"github.com/goliatone/go-fonnte/transport"
	"github.com/google/uuid"
)

const (
	loggerName = "fonnte.client"

	SendPath   = "/send"
	DevicePath = "/device"
)

const (
	OperationSendMessage     = "send_message"
	OperationSendMedia       = "send_media"
	OperationSendDocument    = "send_document"
	OperationSendButtons     = "send_buttons"
	OperationSendList        = "send_list"
	OperationGetDeviceStatus = "get_device_status"
)

const (
	MessageSent             = "Message sent successfully"
	DeviceStatusRetrieved   = "Device status retrieved"
	MediaURLRequired        = "URL is required for media messages"
	DocumentURLRequired     = "URL is required for document messages"
	DocumentFilenameMissing = "Filename is required for document messages"
	ButtonTemplateRequired  = "Button template is required for button messages"
	ListTemplateRequired    = "List template is required for list messages"
)

// Client is safe for concurrent use; it holds no mutable state after New.
type Client struct {
	config    core.ClientConfig
	transport core.TransportAdapter
	telemetry core.Telemetry
	requestID func() string
}

func New(cfg core.ClientConfig, opts ...Option) (*Client, error) {
	builder := clientBuilder{}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&builder)
	}

	resolved, err := core.ResolveClientConfig(context.Background(), builder.configLoader, cfg)
	if err != nil {
		return nil, err
	}

	adapter := builder.transport
	if adapter == nil {
		rest := transport.NewRESTAdapter(builder.httpClient)
		rest.DefaultHeaders["Accept"] = "application/json"
		adapter = rest
	}
	if builder.requestID == nil {
		builder.requestID = uuid.NewString
	}

	return &Client{
		config:    resolved,
		transport: adapter,
		telemetry: core.NewTelemetry(loggerName, builder.loggerProvider, builder.logger, builder.metricsRecorder),
		requestID: builder.requestID,
	}, nil
}

// Config returns the resolved configuration.
func (c *Client) Config() core.ClientConfig {
	return c.config
}

func (c *Client) SendMessage(ctx context.Context, msg core.OutboundMessage) core.OutboundResult {
	return c.send(ctx, OperationSendMessage, msg)
}

func (c *Client) SendMedia(ctx context.Context, msg core.OutboundMessage) core.OutboundResult {
	if strings.TrimSpace(msg.MediaURL) == "" {
		return c.reject(ctx, OperationSendMedia, "url", MediaURLRequired)
	}
	return c.send(ctx, OperationSendMedia, msg)
}

func (c *Client) SendDocument(ctx context.Context, msg core.OutboundMessage) core.OutboundResult {
	if strings.TrimSpace(msg.MediaURL) == "" {
		return c.reject(ctx, OperationSendDocument, "url", DocumentURLRequired)
	}
	if strings.TrimSpace(msg.Filename) == "" {
		return c.reject(ctx, OperationSendDocument, "filename", DocumentFilenameMissing)
	}
	return c.send(ctx, OperationSendDocument, msg)
}

func (c *Client) SendButtons(ctx context.Context, msg core.OutboundMessage) core.OutboundResult {
	if msg.ButtonMenu == nil || len(msg.ButtonMenu.Buttons) == 0 {
		return c.reject(ctx, OperationSendButtons, "button", ButtonTemplateRequired)
	}
	return c.send(ctx, OperationSendButtons, msg)
}

func (c *Client) SendList(ctx context.Context, msg core.OutboundMessage) core.OutboundResult {
	if msg.ListMenu == nil || len(msg.ListMenu.Sections) == 0 {
		return c.reject(ctx, OperationSendList, "list", ListTemplateRequired)
	}
	return c.send(ctx, OperationSendList, msg)
}

// GetDeviceStatus queries the configured default device, or the account's
// device when no default is configured.
func (c *Client) GetDeviceStatus(ctx context.Context) core.OutboundResult {
	return c.GetDeviceStatusFor(ctx, "")
}

func (c *Client) GetDeviceStatusFor(ctx context.Context, deviceID string) core.OutboundResult {
	ctx = ensureContext(ctx)
	startedAt := time.Now()
	device := c.resolveDevice(deviceID)
	requestID := c.requestID()

	req := core.TransportRequest{
		Method:  http.MethodGet,
		URL:     c.config.Endpoint(DevicePath),
		Headers: c.headers(false),
		Timeout: c.config.Timeout,
	}
	if device != "" {
		req.Query = map[string]string{"device": device}
	}
	res, err := c.transport.Do(ctx, req)
	result := shapeResult(res, err, DeviceStatusRetrieved)
	result.RequestID = requestID

	c.telemetry.Observe(ctx, startedAt, OperationGetDeviceStatus, result.Err, map[string]any{
		"request_id":  requestID,
		"route":       DevicePath,
		"device_id":   device,
		"status_code": result.StatusCode,
	})
	return result
}

func (c *Client) send(ctx context.Context, operation string, msg core.OutboundMessage) core.OutboundResult {
	ctx = ensureContext(ctx)
	startedAt := time.Now()
	requestID := c.requestID()
	device := c.resolveDevice(msg.DeviceID)
	fields := map[string]any{
		"request_id": requestID,
		"route":      SendPath,
		"device_id":  device,
	}

	result := c.dispatchSend(ctx, msg, device)
	result.RequestID = requestID
	fields["status_code"] = result.StatusCode

	c.telemetry.Observe(ctx, startedAt, operation, result.Err, fields)
	return result
}

func (c *Client) dispatchSend(ctx context.Context, msg core.OutboundMessage, device string) core.OutboundResult {
	target, err := core.NormalizePhoneNumber(msg.Target)
	if err != nil {
		return failedResult(err, 0, nil)
	}
	body, err := encodeSendBody(target, msg, device)
	if err != nil {
		return failedResult(core.SetupError(err, "client: encode request body", nil), 0, nil)
	}
	res, err := c.transport.Do(ctx, core.TransportRequest{
		Method:  http.MethodPost,
		URL:     c.config.Endpoint(SendPath),
		Headers: c.headers(true),
		Body:    body,
		Timeout: c.config.Timeout,
	})
	return shapeResult(res, err, MessageSent)
}

func (c *Client) reject(ctx context.Context, operation string, field string, message string) core.OutboundResult {
	ctx = ensureContext(ctx)
	startedAt := time.Now()
	requestID := c.requestID()
	result := failedResult(core.ValidationError(field, message), 0, nil)
	result.RequestID = requestID
	c.telemetry.Observe(ctx, startedAt, operation, result.Err, map[string]any{
		"request_id": requestID,
		"route":      SendPath,
		"field":      field,
	})
	return result
}

func (c *Client) headers(withBody bool) map[string]string {
	headers := map[string]string{"Authorization": c.config.APIKey}
	if withBody {
		headers["Content-Type"] = "application/json"
	}
	return headers
}

func (c *Client) resolveDevice(override string) string {
	if device := strings.TrimSpace(override); device != "" {
		return device
	}
	return strings.TrimSpace(c.config.DeviceID)
}

func ensureContext(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}

