// Package fileutil provides small filesystem helpers shared across the
// pipeline.
package fileutil

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// filesystem-reserved characters, replaced the same way across platforms.
var nameReplacer = strings.NewReplacer(
	"/", "_", "\\", "_", ":", "_", "*", "_",
	"?", "_", "\"", "_", "<", "_", ">", "_", "|", "_",
)

// SanitizeFileName makes an arbitrary string (typically a video title)
// safe to use as a filename stem. Unicode is NFC-normalized first so
// visually identical titles produce identical names.
func SanitizeFileName(name string) string {
	name = norm.NFC.String(strings.TrimSpace(name))
	if name == "" {
		return ""
	}
	cleaned := nameReplacer.Replace(name)
	return strings.Join(strings.Fields(cleaned), " ")
}
