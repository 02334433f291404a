// Copyright (c) 2026 ToeiRei
// Tally - keypad calculator for the terminal
// This source code is licensed under the MIT license found in the LICENSE file.

package calc

import (
	"fmt"

	"github.com/cockroachdb/apd/v3"
)

// RoundingMode selects how results are rounded to the configured fractional
// precision.
type RoundingMode int

const (
	// RoundHalfUp rounds towards the nearest neighbor; ties round away
	// from zero. This is the default.
	RoundHalfUp RoundingMode = iota
	// RoundHalfDown rounds towards the nearest neighbor; ties round
	// towards zero.
	RoundHalfDown
	// RoundHalfEven rounds towards the nearest neighbor; ties round to the
	// even neighbor (banker's rounding).
	RoundHalfEven
	// RoundUp rounds away from zero.
	RoundUp
	// RoundDown rounds towards zero (truncation).
	RoundDown
	// RoundCeiling rounds towards positive infinity.
	RoundCeiling
	// RoundFloor rounds towards negative infinity.
	RoundFloor
	// RoundExact performs no rounding and errors when a result is inexact.
	// It exists only so the setter can reject it: a keypad calculator must
	// always be able to produce a result.
	RoundExact
)

// String returns the config-file spelling of the mode.
func (m RoundingMode) String() string {
	switch m {
	case RoundHalfUp:
		return "half-up"
	case RoundHalfDown:
		return "half-down"
	case RoundHalfEven:
		return "half-even"
	case RoundUp:
		return "up"
	case RoundDown:
		return "down"
	case RoundCeiling:
		return "ceiling"
	case RoundFloor:
		return "floor"
	case RoundExact:
		return "exact"
	}
	return fmt.Sprintf("rounding(%d)", int(m))
}

// ParseRoundingMode converts a config-file spelling into a RoundingMode.
// "exact" parses successfully so that SetRoundingMode can report the real
// problem (it is a disallowed mode, not an unknown word).
func ParseRoundingMode(s string) (RoundingMode, error) {
	for m := RoundHalfUp; m <= RoundExact; m++ {
		if m.String() == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown rounding mode %q: %w", s, ErrInvalidArgument)
}

// rounder maps the mode onto the matching apd rounder.
func (m RoundingMode) rounder() apd.Rounder {
	switch m {
	case RoundHalfDown:
		return apd.RoundHalfDown
	case RoundHalfEven:
		return apd.RoundHalfEven
	case RoundUp:
		return apd.RoundUp
	case RoundDown:
		return apd.RoundDown
	case RoundCeiling:
		return apd.RoundCeiling
	case RoundFloor:
		return apd.RoundFloor
	}
	return apd.RoundHalfUp
}
