// Copyright (c) 2026 ToeiRei
// Tally - keypad calculator for the terminal
// This source code is licensed under the MIT license found in the LICENSE file.

// Package buildvars contains variables injected at build time.
package buildvars

// Version is set at link time via `-ldflags -X github.com/toeirei/tally/buildvars.Version=...`.
// It will be empty for local or development builds.
var Version string

// GitCommit and BuildDate are injected the same way and may be empty.
var (
	GitCommit string
	BuildDate string
)

// VersionOrDefault returns `Version` if set, otherwise returns the provided default.
func VersionOrDefault(def string) string {
	if len(Version) > 0 {
		return Version
	}
	return def
}

// Composite returns a single human-readable version line built from
// whatever was injected, e.g. "0.3.0 (abc1234, 2026-08-29)".
func Composite() string {
	s := VersionOrDefault("dev")
	if GitCommit == "" && BuildDate == "" {
		return s
	}
	s += " ("
	if GitCommit != "" {
		s += GitCommit
	}
	if BuildDate != "" {
		if GitCommit != "" {
			s += ", "
		}
		s += BuildDate
	}
	return s + ")"
}
