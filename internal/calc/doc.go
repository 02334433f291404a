// Copyright (c) 2026 ToeiRei
// Tally - keypad calculator for the terminal
// This source code is licensed under the MIT license found in the LICENSE file.

// Package calc implements the calculator engine behind Tally's keypad
// dialog. It turns a stream of discrete key events (digits, decimal
// separator, sign toggle, operator, equals, erase, clear) into a
// validated, precisely rounded decimal value.
//
// The package has no presentation concerns. A Session exposes a display
// string, an error kind and a confirmability flag; rendering those is the
// caller's job. Arithmetic is exact decimal arithmetic via cockroachdb/apd,
// never binary floating point.
//
// The moving parts, leaves first:
//
//   - Settings: per-session policy (digit limits, rounding, bounds, sign
//     constraint, separators, grouping, display behavior). Validated when
//     set, immutable once a Session is running.
//   - Formatter: pure conversions between the raw entry buffer, canonical
//     decimal values and the grouped display string.
//   - Engine: applies one binary operation and finalizes results (bounds
//     check, rescale, trailing-zero strip).
//   - Session: the state machine that owns the entry buffer, the
//     accumulator and the pending operator, and reacts to key events.
package calc
