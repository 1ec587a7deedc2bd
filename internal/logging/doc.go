// Package logging assembles the structured slog loggers used across
// ytclip.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes a no-op logger for tests. Components tag their
// lines with a "component" attribute, which the console handler renders
// as a message prefix.
//
// Prefer these constructors over hand-rolled slog setup so every part of
// the tool emits lines with the same shape.
package logging
