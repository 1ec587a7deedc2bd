// Package main hosts the ytclip CLI entrypoint and command graph.
//
// The Cobra-based command tree turns terminal invocations into clip runs,
// metadata probes, dependency checks, and configuration scaffolding. It
// centralizes configuration resolution and logging setup so subcommands can
// focus on user experience instead of wiring; the actual work lives in the
// internal packages.
package main
