package types

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cast"
)

// Duration wraps time.Duration with support for JSON and environment encoding.
type Duration struct {
	time.Duration
}

// NewDuration wraps a time.Duration with a Duration.
func NewDuration(d time.Duration) Duration {
	return Duration{Duration: d}
}

// ParseDuration parses a duration in the time.Duration format ("1h30m") or as a bare integer
// number of seconds ("3600").
func ParseDuration(s string) (Duration, error) {
	if secs, err := cast.ToInt64E(s); err == nil {
		if secs < 0 {
			return Duration{}, fmt.Errorf("negative duration: %s", s)
		}

		return NewDuration(time.Duration(secs) * time.Second), nil
	}

	d, err := time.ParseDuration(s)
	if err != nil {
		return Duration{}, err
	}
	if d < 0 {
		return Duration{}, fmt.Errorf("negative duration: %s", s)
	}

	return NewDuration(d), nil
}

// MustParseDuration parses a duration string, panicking if it is invalid.
//
// Useful for tests, but should be avoided in production code.
func MustParseDuration(s string) Duration {
	d, err := ParseDuration(s)
	if err != nil {
		panic(err)
	}

	return d
}

// String returns a string representing the duration in the form "72h3m0.5s".
func (d Duration) String() string {
	return d.Duration.String()
}

// MarshalJSON encodes the duration as a string.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON accepts either a duration string or a number of seconds.
func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case string:
		parsed, err := ParseDuration(value)
		if err != nil {
			return err
		}
		*d = parsed

		return nil
	case float64:
		if value < 0 || value != float64(int64(value)) {
			return fmt.Errorf("invalid duration seconds: %v", value)
		}
		d.Duration = time.Duration(int64(value)) * time.Second

		return nil
	default:
		return fmt.Errorf("invalid duration type: %T", v)
	}
}
