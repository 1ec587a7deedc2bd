package plan

import (
	"fmt"
	"strings"
)

// videoSpeedFilter scales presentation timestamps by the inverse of the
// playback speed.
func videoSpeedFilter(speed float64) string {
	return fmt.Sprintf("setpts=%.2f*PTS", 1.0/speed)
}

// audioSpeedFilter builds a pitch-preserving atempo chain. A single atempo
// link only supports factors up to 2.0, so faster speeds are factored into
// repeated 2.0 links with the remainder appended.
func audioSpeedFilter(speed float64) string {
	if speed <= 2.0 {
		return fmt.Sprintf("atempo=%.2f", speed)
	}
	var chain []string
	tempo := speed
	for tempo > 2.0 {
		chain = append(chain, "atempo=2.0")
		tempo /= 2.0
	}
	if tempo > 1.0 {
		chain = append(chain, fmt.Sprintf("atempo=%.2f", tempo))
	}
	return strings.Join(chain, ",")
}
