package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeTools()
	c.normalizeDownload()
	c.normalizeEncode()
	c.normalizeValidation()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.WorkDir) == "" {
		c.Paths.WorkDir = defaultWorkDir()
	}
	if c.Paths.WorkDir, err = expandPath(c.Paths.WorkDir); err != nil {
		return fmt.Errorf("paths.work_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		c.Paths.OutputDir = defaultOutputDir
	}
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) != "" {
		if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
			return fmt.Errorf("paths.log_dir: %w", err)
		}
	}
	return nil
}

func (c *Config) normalizeTools() {
	c.Tools.YtDlp = strings.TrimSpace(c.Tools.YtDlp)
	if c.Tools.YtDlp == "" {
		if value, ok := os.LookupEnv("YTCLIP_YTDLP"); ok {
			c.Tools.YtDlp = strings.TrimSpace(value)
		}
	}
	if c.Tools.YtDlp == "" {
		c.Tools.YtDlp = defaultYtDlpBinary
	}
	c.Tools.FFmpeg = strings.TrimSpace(c.Tools.FFmpeg)
	if c.Tools.FFmpeg == "" {
		if value, ok := os.LookupEnv("YTCLIP_FFMPEG"); ok {
			c.Tools.FFmpeg = strings.TrimSpace(value)
		}
	}
	if c.Tools.FFmpeg == "" {
		c.Tools.FFmpeg = defaultFFmpegBinary
	}
}

func (c *Config) normalizeDownload() {
	c.Download.Format = strings.TrimSpace(c.Download.Format)
	if c.Download.Format == "" {
		c.Download.Format = defaultDownloadFormat
	}
}

func (c *Config) normalizeEncode() {
	if c.Encode.CRF <= 0 {
		c.Encode.CRF = defaultCRF
	}
	c.Encode.Preset = strings.ToLower(strings.TrimSpace(c.Encode.Preset))
	if c.Encode.Preset == "" {
		c.Encode.Preset = defaultEncodePreset
	}
	c.Encode.PixelFormat = strings.TrimSpace(c.Encode.PixelFormat)
	if c.Encode.PixelFormat == "" {
		c.Encode.PixelFormat = defaultPixelFormat
	}
	c.Encode.AudioBitrate = strings.TrimSpace(c.Encode.AudioBitrate)
	if c.Encode.AudioBitrate == "" {
		c.Encode.AudioBitrate = defaultAudioBitrate
	}
}

func (c *Config) normalizeValidation() {
	hosts := make([]string, 0, len(c.Validation.AllowedHosts))
	seen := make(map[string]struct{}, len(c.Validation.AllowedHosts))
	for _, host := range c.Validation.AllowedHosts {
		normalized := strings.ToLower(strings.TrimSpace(host))
		normalized = strings.TrimPrefix(normalized, "www.")
		if normalized == "" {
			continue
		}
		if _, exists := seen[normalized]; exists {
			continue
		}
		seen[normalized] = struct{}{}
		hosts = append(hosts, normalized)
	}
	if len(hosts) == 0 {
		hosts = defaultAllowedHosts()
	}
	c.Validation.AllowedHosts = hosts
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
