package family

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Year is a birth year as authored: a number, free text such as "1850s",
// or nothing at all.
//
// Text is what labels display. Value is the leading integer of Text and is
// what rows are sorted by; it is 0 when no integer could be read, which sorts
// unknown years first.
type Year struct {
	Text  string
	Value int
	Known bool
}

// YearOf returns a known numeric year.
func YearOf(v int) Year {
	return Year{Text: strconv.Itoa(v), Value: v, Known: true}
}

// ParseYear reads the leading integer of s the way hand-written years are
// usually meant: "1850" and "1850s" are 1850, "unknown" is not a year.
func ParseYear(s string) Year {
	y := Year{Text: strings.TrimSpace(s)}
	y.Value, y.Known = leadingInt(y.Text)
	return y
}

// IsZero reports whether no year was given at all.
func (y Year) IsZero() bool { return y.Text == "" && !y.Known }

// String returns the display text.
func (y Year) String() string { return y.Text }

// MarshalJSON writes known numeric years as numbers and everything else as
// its text, or null when absent.
func (y Year) MarshalJSON() ([]byte, error) {
	if y.IsZero() {
		return []byte("null"), nil
	}
	if y.Known && y.Text == strconv.Itoa(y.Value) {
		return []byte(y.Text), nil
	}
	return json.Marshal(y.Text)
}

// UnmarshalJSON accepts a number, a string or null.
func (y *Year) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	return y.set(raw)
}

// UnmarshalTOML accepts an integer, a float or a string.
func (y *Year) UnmarshalTOML(v any) error {
	return y.set(v)
}

func (y *Year) set(raw any) error {
	switch v := raw.(type) {
	case nil:
		*y = Year{}
	case float64:
		*y = ParseYear(strconv.FormatFloat(v, 'f', -1, 64))
	case int64:
		*y = YearOf(int(v))
	case string:
		*y = ParseYear(v)
	default:
		return fmt.Errorf("year: unsupported value %v (%T)", raw, raw)
	}
	return nil
}

// leadingInt parses an optional sign followed by digits at the start of s.
func leadingInt(s string) (int, bool) {
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}
