package jwt

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"

	"gopkg.in/yaml.v3"
)

var durationLiteral = regexp.MustCompile(`^(\d+)([smhd])$`)

// ToSeconds converts a duration option to seconds.
//
// Numbers (any Go integer or float kind, or a json.Number) are already
// seconds and are returned unchanged (floats are truncated).
// Strings must be a single non-negative integer followed by exactly one
// unit letter: "s" (x1), "m" (x60), "h" (x3600) or "d" (x86400),
// e.g. "10s", "5m", "2h", "1d".
//
// Anything else, including a value that does not fit in an int64
// number of seconds, fails with a *ConfigError matching ErrTimeFormat.
func ToSeconds(v any) (int64, error) {
	if n, ok := toInt64(v); ok {
		return n, nil
	}

	switch t := v.(type) {
	case Duration:
		return ToSeconds(t.value)
	case string:
		return parseDurationLiteral(t)
	default:
		if isNumber(v) {
			return 0, newConfigError(KindTimeFormat, fmt.Errorf("%v seconds out of range", v))
		}
		return 0, newConfigError(KindTimeFormat, fmt.Errorf("unsupported duration value %v (%T)", v, v))
	}
}

func parseDurationLiteral(s string) (int64, error) {
	m := durationLiteral.FindStringSubmatch(s)
	if m == nil {
		return 0, newConfigError(KindTimeFormat, fmt.Errorf("%q", s))
	}

	n, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, newConfigError(KindTimeFormat, err)
	}

	var unit int64
	switch m[2] {
	case "s":
		unit = 1
	case "m":
		unit = 60
	case "h":
		unit = 3600
	case "d":
		unit = 86400
	default:
		// The pattern already restricts the unit.
		return 0, newConfigError(KindTimeUnit, fmt.Errorf("%q", m[2]))
	}

	if n > math.MaxInt64/unit {
		return 0, newConfigError(KindTimeFormat, fmt.Errorf("%q out of range", s))
	}
	return n * unit, nil
}

// toInt64 reports the integer value of a numeric "v".
func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		return uint64ToInt64(uint64(n))
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		return uint64ToInt64(n)
	case float32:
		return truncate(float64(n))
	case float64:
		return truncate(n)
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, true
		}
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return truncate(f)
	default:
		return 0, false
	}
}

func uint64ToInt64(n uint64) (int64, bool) {
	if n > math.MaxInt64 {
		return 0, false
	}
	return int64(n), true
}

// truncate fails on NaN, infinities and values outside of the int64 range.
func truncate(f float64) (int64, bool) {
	if math.IsNaN(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

// isNumber reports whether "v" is of a numeric kind, whatever its value.
func isNumber(v any) bool {
	switch n := v.(type) {
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return true
	case json.Number:
		_, err := n.Float64()
		return err == nil
	default:
		return false
	}
}

// Duration holds a duration option: either a number of seconds
// or a literal such as "15m". The zero value means "not set".
//
// It decodes from JSON and YAML as either form. A value of any other type
// is kept as-is so that option validation can report it.
type Duration struct {
	value any
}

// Seconds returns a Duration of "n" seconds.
func Seconds(n int64) Duration {
	return Duration{value: n}
}

// Literal returns a Duration from a literal, e.g. "10s", "5m", "2h" or "1d".
// The literal is checked when the duration is used.
func Literal(s string) Duration {
	return Duration{value: s}
}

// DurationOf wraps any value as a Duration.
func DurationOf(v any) Duration {
	if d, ok := v.(Duration); ok {
		return d
	}
	return Duration{value: v}
}

// IsZero reports whether the duration is unset, an empty literal or zero seconds.
func (d Duration) IsZero() bool {
	switch v := d.value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case bool:
		return !v
	default:
		n, ok := toInt64(v)
		return ok && n == 0
	}
}

// Seconds converts the duration to seconds, see ToSeconds.
func (d Duration) Seconds() (int64, error) {
	return ToSeconds(d.value)
}

// Value returns the wrapped value.
func (d Duration) Value() any {
	return d.value
}

func (d Duration) typeOK() bool {
	switch d.value.(type) {
	case nil, string:
		return true
	default:
		return isNumber(d.value)
	}
}

func (d Duration) String() string {
	if d.value == nil {
		return ""
	}
	return fmt.Sprint(d.value)
}

// MarshalJSON encodes the duration as its literal or number.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.value)
}

// UnmarshalJSON accepts a string, a number or null.
func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	d.value = v
	return nil
}

// MarshalYAML encodes the duration as its literal or number.
func (d Duration) MarshalYAML() (any, error) {
	return d.value, nil
}

// UnmarshalYAML accepts a string, a number or null.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var v any
	if err := node.Decode(&v); err != nil {
		return err
	}
	d.value = v
	return nil
}
