// Package services defines shared utilities consumed by the external tool
// clients and the pipeline.
//
// Key responsibilities:
//   - Structured error markers plus the Wrap helper that tag failures with
//     the stage they came from, so the CLI can map them onto distinct exit
//     codes.
//   - ToolError, which preserves a subprocess's exit code and diagnostic
//     output for user-facing messages.
//
// Use these helpers when wiring new stage logic so error handling stays
// uniform across the pipeline.
package services
