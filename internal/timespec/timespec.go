// Package timespec parses user-supplied clip timestamps.
//
// Three textual forms are accepted, distinguished by colon count:
// plain seconds ("90", "12.5"), minutes:seconds ("1:30"), and
// hours:minutes:seconds ("1:30:45"). Parsing is the only construction
// path; a TimeSpec is immutable once built.
package timespec

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrInvalidFormat marks input with unexpected characters or shape.
	ErrInvalidFormat = errors.New("invalid time format")
	// ErrEmptyOrNegative marks empty input or negative values.
	ErrEmptyOrNegative = errors.New("time must be a non-negative value")
)

// TimeSpec is a non-negative elapsed duration within a video.
type TimeSpec struct {
	d time.Duration
}

// Parse converts a timestamp string into a TimeSpec.
//
// Non-leftmost minute and second components must be integers in [0, 60);
// out-of-range components such as "1:75" are rejected rather than
// normalized so user typos surface immediately. Only the final seconds
// component may carry a decimal fraction.
func Parse(text string) (TimeSpec, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return TimeSpec{}, fmt.Errorf("%w: empty input", ErrEmptyOrNegative)
	}
	if strings.HasPrefix(trimmed, "-") {
		return TimeSpec{}, fmt.Errorf("%w: %q", ErrEmptyOrNegative, text)
	}
	for _, r := range trimmed {
		if (r < '0' || r > '9') && r != ':' && r != '.' {
			return TimeSpec{}, fmt.Errorf("%w: unexpected character %q in %q", ErrInvalidFormat, r, text)
		}
	}

	parts := strings.Split(trimmed, ":")
	if len(parts) > 3 {
		return TimeSpec{}, fmt.Errorf("%w: too many components in %q", ErrInvalidFormat, text)
	}

	var total time.Duration
	for i, part := range parts {
		last := i == len(parts)-1
		component, err := parseComponent(part, last)
		if err != nil {
			return TimeSpec{}, fmt.Errorf("%w: component %q in %q", err, part, text)
		}
		if i > 0 && component >= 60*time.Second {
			return TimeSpec{}, fmt.Errorf("%w: component %q in %q must be below 60", ErrInvalidFormat, part, text)
		}
		total = total*60 + component
	}

	return TimeSpec{d: total}, nil
}

// maxComponentSeconds bounds any single field. 100 hours is far past
// any real video, and larger values would overflow the nanosecond
// arithmetic into negative durations.
const maxComponentSeconds = 100 * 60 * 60

// parseComponent reads one colon-delimited field. The final field may be
// fractional; all others must be whole numbers.
func parseComponent(part string, allowFraction bool) (time.Duration, error) {
	if part == "" {
		return 0, ErrInvalidFormat
	}
	if !strings.Contains(part, ".") {
		value, err := strconv.Atoi(part)
		if err != nil || value > maxComponentSeconds {
			return 0, ErrInvalidFormat
		}
		return time.Duration(value) * time.Second, nil
	}
	if !allowFraction {
		return 0, ErrInvalidFormat
	}
	value, err := strconv.ParseFloat(part, 64)
	if err != nil || value > maxComponentSeconds {
		return 0, ErrInvalidFormat
	}
	return time.Duration(value * float64(time.Second)), nil
}

// Duration returns the elapsed time as a time.Duration.
func (t TimeSpec) Duration() time.Duration {
	return t.d
}

// Seconds returns the elapsed time in seconds.
func (t TimeSpec) Seconds() float64 {
	return t.d.Seconds()
}

// Before reports whether t is strictly earlier than other.
func (t TimeSpec) Before(other TimeSpec) bool {
	return t.d < other.d
}

// Sub returns the duration between t and an earlier TimeSpec.
func (t TimeSpec) Sub(earlier TimeSpec) time.Duration {
	return t.d - earlier.d
}

// FormatSeconds renders the value in plain seconds with millisecond
// precision, the form both yt-dlp section ranges and ffmpeg seek flags
// accept.
func (t TimeSpec) FormatSeconds() string {
	return strconv.FormatFloat(t.Seconds(), 'f', 3, 64)
}

// Clock renders the value as M:SS or H:MM:SS, with a fractional second
// suffix only when one is present.
func (t TimeSpec) Clock() string {
	total := t.d / time.Second
	millis := (t.d % time.Second) / time.Millisecond

	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60

	var base string
	if hours > 0 {
		base = fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	} else {
		base = fmt.Sprintf("%d:%02d", minutes, seconds)
	}
	if millis > 0 {
		base += strings.TrimRight(fmt.Sprintf(".%03d", millis), "0")
	}
	return base
}

// Token renders Clock with colons replaced by dashes, safe for filenames.
func (t TimeSpec) Token() string {
	return strings.ReplaceAll(t.Clock(), ":", "-")
}

// String implements fmt.Stringer.
func (t TimeSpec) String() string {
	return t.Clock()
}
