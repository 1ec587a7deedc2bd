// Package clip defines the validated clip request that downstream
// components consume.
package clip

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"ytclip/internal/timespec"
)

var (
	// ErrEmptyURL marks a blank source URL.
	ErrEmptyURL = errors.New("source URL must not be empty")
	// ErrUnsupportedHost marks a URL whose host is not a recognized video host.
	ErrUnsupportedHost = errors.New("unsupported video host")
	// ErrNonPositiveDuration marks a range where the end does not follow the start.
	ErrNonPositiveDuration = errors.New("end time must be after start time")
	// ErrSpeedOutOfRange marks a playback speed outside the supported range.
	ErrSpeedOutOfRange = errors.New("speed must be between 0.5 and 4.0")
)

// Speed bounds accepted for playback adjustment.
const (
	MinSpeed     = 0.5
	MaxSpeed     = 4.0
	DefaultSpeed = 1.0
)

// ValidateSpeed checks an explicitly requested playback speed against the
// supported range. Zero is never a valid explicit value; Options.Speed
// uses it to mean "unset", so callers that can tell the difference (the
// CLI flag) must validate the raw value with this before building a
// Request.
func ValidateSpeed(speed float64) error {
	if speed < MinSpeed || speed > MaxSpeed {
		return fmt.Errorf("%w: got %.2f", ErrSpeedOutOfRange, speed)
	}
	return nil
}

// videoIDPattern matches the eleven-character identifier in the common
// YouTube URL shapes (watch, short link, embed, shorts).
var videoIDPattern = regexp.MustCompile(`(?:youtube\.com/watch\?.*v=|youtu\.be/|youtube\.com/embed/|youtube\.com/shorts/)([A-Za-z0-9_-]{11})`)

// Options carries the optional knobs supplied alongside the positional
// arguments plus the configured validation strictness.
type Options struct {
	Output string
	// Speed is the requested playback multiplier; zero means unset and
	// selects DefaultSpeed. Explicit values must be pre-checked with
	// ValidateSpeed where zero can be told apart from absent.
	Speed            float64
	RequireKnownHost bool
	AllowedHosts     []string
}

// Request is a validated, immutable clip request. It is built once from
// raw CLI input and passed by value to downstream components.
type Request struct {
	URL     string
	VideoID string
	Start   timespec.TimeSpec
	End     timespec.TimeSpec
	Output  string
	Speed   float64
}

// New validates the raw arguments and assembles a Request.
func New(rawURL, startText, endText string, opts Options) (Request, error) {
	source := strings.TrimSpace(rawURL)
	if source == "" {
		return Request{}, ErrEmptyURL
	}

	start, err := timespec.Parse(startText)
	if err != nil {
		return Request{}, fmt.Errorf("start time: %w", err)
	}
	end, err := timespec.Parse(endText)
	if err != nil {
		return Request{}, fmt.Errorf("end time: %w", err)
	}
	if !start.Before(end) {
		return Request{}, fmt.Errorf("%w: start %s, end %s", ErrNonPositiveDuration, start, end)
	}

	speed := opts.Speed
	if speed == 0 {
		speed = DefaultSpeed
	}
	if err := ValidateSpeed(speed); err != nil {
		return Request{}, err
	}

	videoID := ExtractVideoID(source)
	if opts.RequireKnownHost {
		if err := checkHost(source, opts.AllowedHosts); err != nil {
			return Request{}, err
		}
		if videoID == "" {
			return Request{}, fmt.Errorf("%w: no video ID found in %q", ErrUnsupportedHost, source)
		}
	}

	return Request{
		URL:     source,
		VideoID: videoID,
		Start:   start,
		End:     end,
		Output:  strings.TrimSpace(opts.Output),
		Speed:   speed,
	}, nil
}

// Duration returns the length of the requested clip before speed
// adjustment.
func (r Request) Duration() time.Duration {
	return r.End.Sub(r.Start)
}

// HasSpeedChange reports whether playback speed adjustment is requested.
// Tiny deviations from 1.0 are treated as no change.
func (r Request) HasSpeedChange() bool {
	diff := r.Speed - 1.0
	if diff < 0 {
		diff = -diff
	}
	return diff > 0.01
}

// ExtractVideoID pulls the video identifier out of the supported URL
// shapes. It returns the empty string when no identifier is present.
func ExtractVideoID(rawURL string) string {
	match := videoIDPattern.FindStringSubmatch(rawURL)
	if match == nil {
		return ""
	}
	return match[1]
}

func checkHost(source string, allowed []string) error {
	parsed, err := url.Parse(source)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrUnsupportedHost, source)
	}
	host := strings.ToLower(parsed.Hostname())
	if host == "" {
		return fmt.Errorf("%w: %q has no host", ErrUnsupportedHost, source)
	}
	for _, candidate := range allowed {
		candidate = strings.ToLower(strings.TrimSpace(candidate))
		if candidate == "" {
			continue
		}
		if host == candidate || host == "www."+candidate {
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnsupportedHost, host)
}
