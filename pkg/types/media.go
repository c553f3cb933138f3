package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// MediaType discriminates the supported media kinds.
type MediaType string

const (
	MediaTypeImage MediaType = "image"
	MediaTypeVideo MediaType = "video"
)

func (m MediaType) IsValid() bool {
	return m == MediaTypeImage || m == MediaTypeVideo
}

// Media is one entry of a menu item's media gallery.
type Media struct {
	URL   string    `json:"url"`
	Type  MediaType `json:"type"`
	YPos  *int      `json:"y_pos,omitempty"`
	Muted *bool     `json:"muted,omitempty"`
}

// MediaList stores the gallery as a JSON document column.
type MediaList []Media

// Value marshals the list for storage.
func (m MediaList) Value() (driver.Value, error) {
	if m == nil {
		return "[]", nil
	}
	raw, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("media: marshal %w", err)
	}
	return string(raw), nil
}

// Scan decodes the stored JSON document.
func (m *MediaList) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}
	var raw []byte
	switch v := value.(type) {
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("media: unsupported scan type %T", value)
	}
	if len(raw) == 0 {
		*m = nil
		return nil
	}
	return json.Unmarshal(raw, m)
}
