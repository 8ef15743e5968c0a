package timex

import (
	"encoding/json"
	"fmt"
	"time"
)

// naiveLayouts are the offset-less ISO forms servers emit for timestamp
// columns without a time zone.
var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

// Time decodes RFC 3339 timestamps as well as offset-less ISO timestamps,
// which are read as UTC. null and "" decode to the zero time.
type Time struct {
	time.Time
}

func (t *Time) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		t.Time = time.Time{}
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		t.Time = time.Time{}
		return nil
	}

	if v, err := time.Parse(time.RFC3339Nano, s); err == nil {
		t.Time = v
		return nil
	}
	for _, layout := range naiveLayouts {
		if v, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			t.Time = v
			return nil
		}
	}
	return fmt.Errorf("invalid timestamp %q", s)
}
