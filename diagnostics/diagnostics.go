// Package diagnostics provides an opt-in gops agent and pprof knobs.
// Build with the "gops" tag to activate.
package diagnostics
