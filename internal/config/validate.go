package config

import (
	"errors"
	"fmt"
	"strings"
)

// x264 accepts presets from this set only; anything else aborts the encode
// at runtime, so reject it up front.
var knownEncodePresets = map[string]struct{}{
	"ultrafast": {},
	"superfast": {},
	"veryfast":  {},
	"faster":    {},
	"fast":      {},
	"medium":    {},
	"slow":      {},
	"slower":    {},
	"veryslow":  {},
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateTools(); err != nil {
		return err
	}
	if err := c.validateDownload(); err != nil {
		return err
	}
	if err := c.validateEncode(); err != nil {
		return err
	}
	if err := c.validateValidation(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.WorkDir) == "" {
		return errors.New("paths.work_dir must be set")
	}
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		return errors.New("paths.output_dir must be set")
	}
	return nil
}

func (c *Config) validateTools() error {
	if strings.TrimSpace(c.Tools.YtDlp) == "" {
		return errors.New("tools.ytdlp must be set")
	}
	if strings.TrimSpace(c.Tools.FFmpeg) == "" {
		return errors.New("tools.ffmpeg must be set")
	}
	return nil
}

func (c *Config) validateDownload() error {
	if strings.TrimSpace(c.Download.Format) == "" {
		return errors.New("download.format must be set")
	}
	return nil
}

func (c *Config) validateEncode() error {
	if c.Encode.CRF < 0 || c.Encode.CRF > 51 {
		return fmt.Errorf("encode.crf must be between 0 and 51, got %d", c.Encode.CRF)
	}
	if _, ok := knownEncodePresets[c.Encode.Preset]; !ok {
		return fmt.Errorf("encode.preset %q is not a recognized x264 preset", c.Encode.Preset)
	}
	return nil
}

func (c *Config) validateValidation() error {
	if c.Validation.RequireKnownHost && len(c.Validation.AllowedHosts) == 0 {
		return errors.New("validation.allowed_hosts must include at least one host when validation.require_known_host is true")
	}
	return nil
}
