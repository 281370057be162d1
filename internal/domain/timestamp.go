package domain

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Timestamp is a creation timestamp tolerant of the two encodings found in
// stored registration documents: a structured seconds-since-epoch value and a
// free-form date-like string. Absent or unparseable values report zero seconds
// and therefore sort oldest.
type Timestamp struct {
	t time.Time
}

func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{t: t.UTC()}
}

func (ts Timestamp) IsZero() bool { return ts.t.IsZero() }

func (ts Timestamp) Time() time.Time { return ts.t }

// Seconds returns the timestamp floored to whole seconds since epoch, or 0
// when the timestamp is absent.
func (ts Timestamp) Seconds() int64 {
	if ts.t.IsZero() {
		return 0
	}
	return ts.t.Unix()
}

func (ts Timestamp) MarshalJSON() ([]byte, error) {
	if ts.t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(ts.t.Format(time.RFC3339))
}

// UnmarshalJSON accepts:
//   - null / absent → zero
//   - a JSON number of epoch seconds
//   - an object carrying a "seconds" field (structured store timestamps)
//   - a string in RFC 3339, "YYYY-MM-DD HH:MM:SS", or "YYYY-MM-DD" form
//
// Anything else decodes as zero rather than failing: stored documents are not
// under this system's control.
func (ts *Timestamp) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "" || s == "null" {
		*ts = Timestamp{}
		return nil
	}

	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		*ts = Timestamp{t: time.Unix(n, 0).UTC()}
		return nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		*ts = Timestamp{t: time.Unix(int64(f), 0).UTC()}
		return nil
	}

	if strings.HasPrefix(s, "{") {
		var obj struct {
			Seconds *int64 `json:"seconds"`
		}
		if err := json.Unmarshal(b, &obj); err == nil && obj.Seconds != nil {
			*ts = Timestamp{t: time.Unix(*obj.Seconds, 0).UTC()}
			return nil
		}
		*ts = Timestamp{}
		return nil
	}

	var str string
	if err := json.Unmarshal(b, &str); err != nil {
		*ts = Timestamp{}
		return nil
	}
	*ts = ParseTimestamp(str)
	return nil
}

// ParseTimestamp parses a free-form date-like string, floored to seconds.
// Unparseable input yields the zero Timestamp.
func ParseTimestamp(s string) Timestamp {
	s = strings.TrimSpace(s)
	if s == "" {
		return Timestamp{}
	}
	layouts := []string{
		time.RFC3339,
		"2006-01-02 15:04:05",
		"2006-01-02",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Timestamp{t: t.Truncate(time.Second).UTC()}
		}
	}
	return Timestamp{}
}
