// Copyright (c) 2026 ToeiRei
// Tally - keypad calculator for the terminal
// This source code is licensed under the MIT license found in the LICENSE file.

// Shared error values for the calculator engine. Interaction-time errors
// (division by zero, out of bounds, wrong sign) are session states rather
// than faults: they block confirmation until the user starts fresh entry.
// Configuration errors wrap ErrInvalidArgument and are raised synchronously
// by the Settings setters, never during interaction.
package calc

import "errors"

// ErrInvalidArgument is wrapped by every configuration-time validation
// failure. Check with errors.Is.
var ErrInvalidArgument = errors.New("invalid argument")

var (
	// ErrDivisionByZero is set on the session when the operand of a
	// division is exactly zero.
	ErrDivisionByZero = errors.New("division by zero")

	// ErrOutOfBounds is set when a finalized value's magnitude exceeds the
	// configured maximum.
	ErrOutOfBounds = errors.New("value out of bounds")

	// ErrWrongSignPositive is set when the confirmed value is positive but
	// the session's fixed-sign constraint requires a negative value.
	ErrWrongSignPositive = errors.New("positive value, negative required")

	// ErrWrongSignNegative is set when the confirmed value is negative but
	// the session's fixed-sign constraint requires a positive value.
	ErrWrongSignNegative = errors.New("negative value, positive required")
)

// MessageKey maps an interaction-time session error to its i18n message ID
// so the presentation layer can show localized text. The wrong-sign keys are
// worded for the sign the configuration requires, while the error values
// themselves are named for the sign the value has. Returns "" for nil or
// unknown errors.
func MessageKey(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrDivisionByZero):
		return "calc.error.div_zero"
	case errors.Is(err, ErrOutOfBounds):
		return "calc.error.out_of_bounds"
	case errors.Is(err, ErrWrongSignNegative):
		return "calc.error.positive_required"
	case errors.Is(err, ErrWrongSignPositive):
		return "calc.error.negative_required"
	}
	return ""
}
