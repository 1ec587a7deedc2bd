// Package config loads, normalizes, and validates ytclip configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// YTCLIP_YTDLP. The Config type centralizes every knob the CLI needs: the
// working and output directories, external binary overrides, retrieval and
// encode settings, and URL validation strictness.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
