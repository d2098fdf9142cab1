package webhooks

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-fonnte/core"
	"github.com/google/uuid"
)

const (
	FieldDeviceID   = "device_id"
	FieldSender     = "sender"
	FieldSenderName = "sender_name"
	FieldMessage    = "message"
	FieldMessageID  = "id"
	FieldType       = "type"
	FieldIsGroup    = "is_group"
	FieldGroupID    = "group_id"
	FieldGroupName  = "group_name"
	FieldButtonID   = "button_id"
	FieldListID     = "list_id"
	FieldMediaURL   = "url"
	FieldCaption    = "caption"
	FieldFilename   = "filename"
	FieldTimestamp  = "timestamp"
)

// millisecondThreshold separates unix seconds from unix milliseconds; a
// seconds value only crosses it in the year 33658.
const millisecondThreshold = 1e12

// FieldRule lists the raw payload keys accepted for one normalized field, in
// priority order. The first key holding a non-empty value wins.
type FieldRule struct {
	Field string
	Keys  []string
}

func DefaultFieldTable() []FieldRule {
	return []FieldRule{
		{Field: FieldDeviceID, Keys: []string{"device_id", "deviceId", "device"}},
		{Field: FieldSender, Keys: []string{"sender", "from", "phone"}},
		{Field: FieldSenderName, Keys: []string{"name", "pushname"}},
		{Field: FieldMessage, Keys: []string{"message", "text", "body"}},
		{Field: FieldMessageID, Keys: []string{"id", "message_id"}},
		{Field: FieldType, Keys: []string{"type"}},
		{Field: FieldIsGroup, Keys: []string{"is_group", "isGroup"}},
		{Field: FieldGroupID, Keys: []string{"group_id", "groupId"}},
		{Field: FieldGroupName, Keys: []string{"group_name", "groupName"}},
		{Field: FieldButtonID, Keys: []string{"button_id", "buttonId", "button"}},
		{Field: FieldListID, Keys: []string{"list_id", "listId", "list"}},
		{Field: FieldMediaURL, Keys: []string{"url", "media_url", "mediaUrl"}},
		{Field: FieldCaption, Keys: []string{"caption"}},
		{Field: FieldFilename, Keys: []string{"filename", "file_name"}},
		{Field: FieldTimestamp, Keys: []string{"timestamp"}},
	}
}

type assigner func(msg *core.InboundMessage, key string, value any) error

var assigners = map[string]assigner{
	FieldDeviceID:   stringAssigner(func(m *core.InboundMessage, v string) { m.DeviceID = v }),
	FieldSender:     stringAssigner(func(m *core.InboundMessage, v string) { m.SenderAddress = v }),
	FieldSenderName: stringAssigner(func(m *core.InboundMessage, v string) { m.SenderName = v }),
	FieldMessage:    stringAssigner(func(m *core.InboundMessage, v string) { m.BodyText = v }),
	FieldMessageID:  stringAssigner(func(m *core.InboundMessage, v string) { m.MessageID = v }),
	FieldType:       stringAssigner(func(m *core.InboundMessage, v string) { m.MessageType = v }),
	FieldGroupID:    stringAssigner(func(m *core.InboundMessage, v string) { m.GroupID = v }),
	FieldGroupName:  stringAssigner(func(m *core.InboundMessage, v string) { m.GroupName = v }),
	FieldButtonID:   stringAssigner(func(m *core.InboundMessage, v string) { m.TappedButtonID = v }),
	FieldListID:     stringAssigner(func(m *core.InboundMessage, v string) { m.TappedListRowID = v }),
	FieldMediaURL:   stringAssigner(func(m *core.InboundMessage, v string) { m.MediaURL = v }),
	FieldCaption:    stringAssigner(func(m *core.InboundMessage, v string) { m.Caption = v }),
	FieldFilename:   stringAssigner(func(m *core.InboundMessage, v string) { m.Filename = v }),
	FieldIsGroup: func(m *core.InboundMessage, _ string, value any) error {
		m.IsGroupMessage = truthy(value)
		return nil
	},
	FieldTimestamp: func(m *core.InboundMessage, key string, value any) error {
		ts, err := parseTimestamp(value)
		if err != nil {
			return fmt.Errorf("webhooks: field %q: %w", key, err)
		}
		m.ReceivedAt = ts
		return nil
	},
}

// Normalizer turns one raw webhook payload into a core.InboundMessage.
type Normalizer struct {
	Table      []FieldRule
	Now        func() time.Time
	NewEventID func() string
}

func NewNormalizer() *Normalizer {
	return &Normalizer{
		Table:      DefaultFieldTable(),
		Now:        func() time.Time { return time.Now().UTC() },
		NewEventID: uuid.NewString,
	}
}

// Normalize resolves every table field from raw. Missing fields keep their
// defaults: type "text", not a group, received now. A value of the wrong shape
// (an object where text is expected, an unreadable timestamp) is a
// normalization error.
func (n *Normalizer) Normalize(raw map[string]any) (core.InboundMessage, error) {
	if n == nil {
		n = NewNormalizer()
	}
	table := n.Table
	if len(table) == 0 {
		table = DefaultFieldTable()
	}
	now := n.Now
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}

	msg := core.InboundMessage{
		MessageType: core.DefaultMessageType,
		RawPayload:  raw,
	}
	if n.NewEventID != nil {
		msg.EventID = n.NewEventID()
	}

	for _, rule := range table {
		assign, ok := assigners[rule.Field]
		if !ok {
			continue
		}
		key, value, found := resolve(raw, rule.Keys)
		if !found {
			continue
		}
		if err := assign(&msg, key, value); err != nil {
			return core.InboundMessage{}, core.NormalizationError(err, "webhooks: payload normalization failed", map[string]any{
				"field": rule.Field,
				"key":   key,
			})
		}
	}

	if strings.TrimSpace(msg.MessageType) == "" {
		msg.MessageType = core.DefaultMessageType
	}
	if msg.ReceivedAt.IsZero() {
		msg.ReceivedAt = now()
	}
	return msg, nil
}

// resolve returns the first key in keys whose value is present and non-empty.
// false, 0 and blank strings count as absent.
func resolve(raw map[string]any, keys []string) (string, any, bool) {
	for _, key := range keys {
		value, ok := raw[key]
		if !ok || isEmpty(value) {
			continue
		}
		return key, value, true
	}
	return "", nil, false
}

func isEmpty(value any) bool {
	switch typed := value.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(typed) == ""
	case bool:
		return !typed
	case float64:
		return typed == 0
	case int:
		return typed == 0
	case int64:
		return typed == 0
	case json.Number:
		return typed.String() == "" || typed.String() == "0"
	case []string:
		return len(typed) == 0
	default:
		return false
	}
}

func stringAssigner(set func(msg *core.InboundMessage, value string)) assigner {
	return func(msg *core.InboundMessage, key string, value any) error {
		text, err := scalarString(value)
		if err != nil {
			return fmt.Errorf("webhooks: field %q: %w", key, err)
		}
		set(msg, text)
		return nil
	}
}

func scalarString(value any) (string, error) {
	switch typed := value.(type) {
	case string:
		return strings.TrimSpace(typed), nil
	case json.Number:
		return typed.String(), nil
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64), nil
	case int:
		return strconv.Itoa(typed), nil
	case int64:
		return strconv.FormatInt(typed, 10), nil
	case bool:
		return strconv.FormatBool(typed), nil
	case []string:
		// repeated form keys keep the first value
		return strings.TrimSpace(typed[0]), nil
	default:
		return "", fmt.Errorf("unsupported value type %T", value)
	}
}

func truthy(value any) bool {
	switch typed := value.(type) {
	case bool:
		return typed
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(typed))
		if err != nil {
			return strings.EqualFold(strings.TrimSpace(typed), "yes")
		}
		return parsed
	case []string:
		return len(typed) > 0 && truthy(typed[0])
	default:
		return !isEmpty(value)
	}
}

// parseTimestamp accepts unix seconds or milliseconds, as numbers or numeric
// strings, and RFC 3339 strings.
func parseTimestamp(value any) (time.Time, error) {
	switch typed := value.(type) {
	case float64:
		return unixTime(typed)
	case int:
		return unixTime(float64(typed))
	case int64:
		return unixTime(float64(typed))
	case json.Number:
		parsed, err := typed.Float64()
		if err != nil {
			return time.Time{}, err
		}
		return unixTime(parsed)
	case []string:
		return parseTimestamp(typed[0])
	case string:
		text := strings.TrimSpace(typed)
		if parsed, err := strconv.ParseFloat(text, 64); err == nil {
			return unixTime(parsed)
		}
		parsed, err := time.Parse(time.RFC3339, text)
		if err != nil {
			return time.Time{}, fmt.Errorf("unreadable timestamp %q", text)
		}
		return parsed.UTC(), nil
	default:
		return time.Time{}, fmt.Errorf("unsupported timestamp type %T", value)
	}
}

func unixTime(value float64) (time.Time, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) || value < 0 {
		return time.Time{}, fmt.Errorf("invalid timestamp %v", value)
	}
	if value >= millisecondThreshold {
		return time.UnixMilli(int64(value)).UTC(), nil
	}
	seconds, fraction := math.Modf(value)
	return time.Unix(int64(seconds), int64(fraction*float64(time.Second))).UTC(), nil
}
