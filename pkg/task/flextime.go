package task

import (
	"encoding/json"
	"fmt"
	"time"
)

// FlexTime accepts the timestamp shapes produced by the various clients that
// feed tasks into the system:
//   - {"seconds": N} or {"_seconds": N} objects (epoch seconds)
//   - RFC3339 / ISO-8601 strings, with or without time component
//   - plain numbers (epoch milliseconds, or epoch seconds for small values)
//
// A JSON null leaves the value zero; IsZero() distinguishes "absent".
type FlexTime struct {
	time.Time
}

// epochMillisCutoff separates epoch-second from epoch-millisecond numbers.
// Anything above it is far beyond year 9999 when read as seconds.
const epochMillisCutoff = 1e11

func (ft *FlexTime) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		ft.Time = time.Time{}
		return nil
	}

	// Firestore-style object with epoch seconds.
	var obj struct {
		Seconds        *int64 `json:"seconds"`
		PrivateSeconds *int64 `json:"_seconds"`
	}
	if err := json.Unmarshal(data, &obj); err == nil {
		if obj.Seconds != nil {
			ft.Time = time.Unix(*obj.Seconds, 0)
			return nil
		}
		if obj.PrivateSeconds != nil {
			ft.Time = time.Unix(*obj.PrivateSeconds, 0)
			return nil
		}
	}

	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		return ft.parseString(str)
	}

	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		if num > epochMillisCutoff {
			ft.Time = time.UnixMilli(int64(num))
		} else {
			ft.Time = time.Unix(int64(num), 0)
		}
		return nil
	}

	return fmt.Errorf("unrecognized timestamp value: %s", string(data))
}

func (ft *FlexTime) parseString(s string) error {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			ft.Time = t
			return nil
		}
	}
	return fmt.Errorf("unrecognized timestamp format: %q", s)
}

func (ft FlexTime) MarshalJSON() ([]byte, error) {
	if ft.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(ft.Time.Format(time.RFC3339))
}
