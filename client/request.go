package client

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/goliatone/go-fonnte/core"
)

// encodeSendBody renders the /send body. Absent optional fields are left out;
// button and list menus travel as JSON encoded strings.
func encodeSendBody(target string, msg core.OutboundMessage, device string) ([]byte, error) {
	body := map[string]any{
		"target":  target,
		"message": msg.Text,
	}
	if device != "" {
		body["device"] = device
	}
	setString(body, "url", msg.MediaURL)
	setString(body, "filename", msg.Filename)
	setString(body, "footer", msg.Footer)
	setString(body, "header", msg.Header)
	if !msg.ScheduledAt.IsZero() {
		body["schedule"] = msg.ScheduledAt.Unix()
	}
	if seconds := delaySeconds(msg.Delay); seconds > 0 {
		body["delay"] = seconds
	}
	if msg.Presence.Typing {
		body["typing"] = true
	}
	if msg.Presence.ReadReceipt {
		body["read"] = true
	}
	if msg.Presence.Online {
		body["online"] = true
	}

	if msg.ButtonMenu != nil {
		buttons := make([]core.Button, 0, len(msg.ButtonMenu.Buttons))
		buttons = append(buttons, msg.ButtonMenu.Buttons...)
		encoded, err := encodeJSON(buttons)
		if err != nil {
			return nil, err
		}
		body["button"] = string(encoded)
	}
	if msg.ListMenu != nil {
		encoded, err := encodeJSON(normalizeListMenu(*msg.ListMenu))
		if err != nil {
			return nil, err
		}
		body["list"] = string(encoded)
	}
	return encodeJSON(body)
}

// normalizeListMenu keeps section and row order and turns nil slices into
// empty arrays so the gateway always sees a complete shape.
func normalizeListMenu(menu core.ListMenu) core.ListMenu {
	sections := make([]core.Section, 0, len(menu.Sections))
	for _, section := range menu.Sections {
		rows := make([]core.ListRow, 0, len(section.Rows))
		rows = append(rows, section.Rows...)
		sections = append(sections, core.Section{Title: section.Title, Rows: rows})
	}
	return core.ListMenu{Title: menu.Title, Sections: sections}
}

// delaySeconds rounds down to whole seconds; any positive delay is at least 1.
func delaySeconds(delay time.Duration) int64 {
	if delay <= 0 {
		return 0
	}
	seconds := int64(delay / time.Second)
	if seconds < 1 {
		return 1
	}
	return seconds
}

func setString(body map[string]any, key string, value string) {
	if strings.TrimSpace(value) == "" {
		return
	}
	body[key] = value
}

func encodeJSON(value any) ([]byte, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(value); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
