package repository

import (
	"encoding/base64"
	"fmt"
	"strings"

	"meetingsManagement/models"
)

const cursorSeparator = "|"

// MeetingCursor is the keyset position of the last meeting of a page.
type MeetingCursor struct {
	StartsAt string
	ID       string
}

// CursorAfter returns the cursor positioned on m.
func CursorAfter(m models.Meeting) *MeetingCursor {
	return &MeetingCursor{StartsAt: m.StartsAt, ID: m.ID}
}

// Encode returns an opaque page token for the cursor.
func (c *MeetingCursor) Encode() string {
	if c == nil || c.ID == "" {
		return ""
	}
	return base64.RawURLEncoding.EncodeToString([]byte(c.StartsAt + cursorSeparator + c.ID))
}

// DecodeCursor parses an opaque page token. An empty token yields a nil cursor.
func DecodeCursor(token string) (*MeetingCursor, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, nil
	}
	b, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("base64: %w", err)
	}
	parts := strings.SplitN(string(b), cursorSeparator, 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return nil, fmt.Errorf("invalid cursor format")
	}
	if _, err := normalizeStartsAt(parts[0]); err != nil {
		return nil, fmt.Errorf("invalid cursor: %w", err)
	}
	return &MeetingCursor{StartsAt: parts[0], ID: parts[1]}, nil
}
