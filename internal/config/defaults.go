package config

const (
	defaultOutputDir      = "."
	defaultYtDlpBinary    = "yt-dlp"
	defaultFFmpegBinary   = "ffmpeg"
	defaultDownloadFormat = "best[ext=mp4]/best"
	defaultCRF            = 23
	defaultEncodePreset   = "fast"
	defaultPixelFormat    = "yuv420p"
	defaultAudioBitrate   = "128k"
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
)

func defaultAllowedHosts() []string {
	return []string{
		"youtube.com",
		"m.youtube.com",
		"music.youtube.com",
		"youtu.be",
	}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			WorkDir:   defaultWorkDir(),
			OutputDir: defaultOutputDir,
		},
		Tools: Tools{
			YtDlp:  defaultYtDlpBinary,
			FFmpeg: defaultFFmpegBinary,
		},
		Download: Download{
			Format:          defaultDownloadFormat,
			SectionDownload: true,
		},
		Encode: Encode{
			CRF:          defaultCRF,
			Preset:       defaultEncodePreset,
			PixelFormat:  defaultPixelFormat,
			AudioBitrate: defaultAudioBitrate,
		},
		Validation: Validation{
			RequireKnownHost: true,
			AllowedHosts:     defaultAllowedHosts(),
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
