package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Moment is a backend timestamp. The backend serializes dates either as
// RFC 3339 / ISO date strings or as numeric arrays [y, m, d, h, min, s, nanos].
type Moment struct {
	time.Time
}

var momentLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.999999999",
	time.DateOnly,
}

// UnmarshalJSON implements json.Unmarshaler.
func (m *Moment) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		m.Time = time.Time{}
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		return m.parseString(s)
	case '[':
		var parts []int
		if err := json.Unmarshal(data, &parts); err != nil {
			return fmt.Errorf("moment array: %w", err)
		}
		return m.fromParts(parts)
	default:
		return fmt.Errorf("moment: unsupported json %s", string(data))
	}
}

// MarshalJSON implements json.Marshaler.
func (m Moment) MarshalJSON() ([]byte, error) {
	if m.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(m.Format(time.RFC3339))
}

func (m *Moment) parseString(s string) error {
	if s == "" {
		m.Time = time.Time{}
		return nil
	}
	for _, layout := range momentLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			m.Time = t
			return nil
		}
	}
	return fmt.Errorf("moment: unrecognized time %q", s)
}

func (m *Moment) fromParts(p []int) error {
	if len(p) < 3 {
		return fmt.Errorf("moment: need at least [y,m,d], got %d parts", len(p))
	}
	at := func(i int) int {
		if i < len(p) {
			return p[i]
		}
		return 0
	}
	m.Time = time.Date(p[0], time.Month(p[1]), p[2], at(3), at(4), at(5), at(6), time.UTC)
	return nil
}

// Date renders the moment as YYYY-MM-DD, or "-" when unset.
func (m Moment) Date() string {
	if m.IsZero() {
		return "-"
	}
	return m.Format(time.DateOnly)
}
