// Copyright (c) 2026 ToeiRei
// Tally - keypad calculator for the terminal
// This source code is licensed under the MIT license found in the LICENSE file.

package calc

import (
	"fmt"

	"github.com/cockroachdb/apd/v3"
)

// MaxDigitsUnlimited disables the digit limit for the integer or fractional
// part when passed to SetMaxDigits.
const MaxDigitsUnlimited = -1

// SeparatorLocaleDefault makes a separator resolve to the active locale's
// default character at session construction time.
const SeparatorLocaleDefault rune = 0

// Settings holds the per-session calculator policy. Every setter validates
// its input and fails with an ErrInvalidArgument-wrapped error; a Settings
// value that was only mutated through its setters is always consistent.
// Settings are copied into the Session at construction and are not consulted
// again afterwards, so mutating them mid-interaction has no effect.
type Settings struct {
	maxIntDigits  int
	maxFracDigits int

	maxValue *apd.Decimal // nil means unbounded; always >= 0

	rounding            RoundingMode
	stripTrailingZeroes bool

	signFixed bool
	fixedSign int // +1 or -1 when signFixed

	decimalSep rune
	groupSep   rune
	groupSize  int

	clearDisplayOnOperator bool
	showZeroWhenEmpty      bool
}

// NewSettings returns settings with the stock keypad defaults: up to ten
// integer and eight fractional digits, a symmetric bound of 1e10, half-up
// rounding, trailing zeroes stripped, locale separators, groups of three,
// display kept on operator press, and "0" shown for an empty buffer.
func NewSettings() *Settings {
	return &Settings{
		maxIntDigits:           10,
		maxFracDigits:          8,
		maxValue:               apd.New(1, 10),
		rounding:               RoundHalfUp,
		stripTrailingZeroes:    true,
		decimalSep:             SeparatorLocaleDefault,
		groupSep:               SeparatorLocaleDefault,
		groupSize:              3,
		clearDisplayOnOperator: false,
		showZeroWhenEmpty:      true,
	}
}

// SetMaxDigits bounds the number of digits that can be typed into the
// integer and fractional parts. Use MaxDigitsUnlimited for either to
// disable the check. The integer bound must be at least 1, the fractional
// bound at least 0 (0 forbids a fractional part entirely).
func (s *Settings) SetMaxDigits(intPart, fracPart int) error {
	if intPart != MaxDigitsUnlimited && intPart < 1 {
		return fmt.Errorf("max integer digits must be at least 1, got %d: %w", intPart, ErrInvalidArgument)
	}
	if fracPart != MaxDigitsUnlimited && fracPart < 0 {
		return fmt.Errorf("max fractional digits must be at least 0, got %d: %w", fracPart, ErrInvalidArgument)
	}
	s.maxIntDigits = intPart
	s.maxFracDigits = fracPart
	return nil
}

// SetMaxValue bounds the magnitude of any finalized result, applied
// symmetrically for both signs. A negative value is silently replaced with
// its magnitude. nil removes the bound.
func (s *Settings) SetMaxValue(max *apd.Decimal) {
	if max == nil {
		s.maxValue = nil
		return
	}
	m := new(apd.Decimal).Set(max)
	if m.Sign() < 0 {
		m.Neg(m)
	}
	s.maxValue = m
}

// SetRoundingMode selects the rounding mode for division and final
// rescaling. RoundExact is rejected: the calculator must always be able to
// round a result to the configured precision.
func (s *Settings) SetRoundingMode(m RoundingMode) error {
	if m == RoundExact {
		return fmt.Errorf("rounding mode %q cannot be used: %w", m, ErrInvalidArgument)
	}
	if m < RoundHalfUp || m > RoundFloor {
		return fmt.Errorf("unknown rounding mode %d: %w", int(m), ErrInvalidArgument)
	}
	s.rounding = m
	return nil
}

// SetStripTrailingZeroes controls whether fractional trailing zeroes are
// removed from results (12.340000 becomes 12.34).
func (s *Settings) SetStripTrailingZeroes(strip bool) {
	s.stripTrailingZeroes = strip
}

// SetFixedSign constrains confirmed values to the given sign, +1 or -1.
// Zero never violates the constraint. Confirming a nonzero value of the
// other sign puts the session into a wrong-sign error state.
func (s *Settings) SetFixedSign(sign int) error {
	if sign != 1 && sign != -1 {
		return fmt.Errorf("fixed sign must be +1 or -1, got %d: %w", sign, ErrInvalidArgument)
	}
	s.signFixed = true
	s.fixedSign = sign
	return nil
}

// SetFreeSign removes a fixed-sign constraint; the sign toggle key then
// behaves normally. This is the default.
func (s *Settings) SetFreeSign() {
	s.signFixed = false
	s.fixedSign = 0
}

// SetSeparators sets the decimal and group separator characters. Use
// SeparatorLocaleDefault for either to resolve it from the active locale at
// session start. The two must not resolve to the same explicit character.
func (s *Settings) SetSeparators(decimal, group rune) error {
	if decimal != SeparatorLocaleDefault && decimal == group {
		return fmt.Errorf("decimal separator %q equals group separator: %w", decimal, ErrInvalidArgument)
	}
	s.decimalSep = decimal
	s.groupSep = group
	return nil
}

// SetGroupSize sets how many integer digits form one display group
// (3 renders 000,000,000; 4 renders 0,0000,0000). 0 disables grouping.
func (s *Settings) SetGroupSize(size int) error {
	if size < 0 {
		return fmt.Errorf("group size must not be negative, got %d: %w", size, ErrInvalidArgument)
	}
	s.groupSize = size
	return nil
}

// SetClearDisplayOnOperator controls whether pressing an operator blanks
// the visible display immediately or leaves the previous operand on screen
// until the next digit key.
func (s *Settings) SetClearDisplayOnOperator(clear bool) {
	s.clearDisplayOnOperator = clear
}

// SetShowZeroWhenEmpty controls whether an empty entry buffer renders as a
// localized zero or as empty text.
func (s *Settings) SetShowZeroWhenEmpty(show bool) {
	s.showZeroWhenEmpty = show
}

// DecimalSeparator returns the configured decimal separator, which may be
// SeparatorLocaleDefault.
func (s *Settings) DecimalSeparator() rune { return s.decimalSep }

// GroupSeparator returns the configured group separator, which may be
// SeparatorLocaleDefault.
func (s *Settings) GroupSeparator() rune { return s.groupSep }

// RoundingMode returns the configured rounding mode.
func (s *Settings) RoundingMode() RoundingMode { return s.rounding }

// MaxValue returns a copy of the configured bound, or nil if unbounded.
func (s *Settings) MaxValue() *apd.Decimal {
	if s.maxValue == nil {
		return nil
	}
	return new(apd.Decimal).Set(s.maxValue)
}

// clone returns an independent copy so a running session is unaffected by
// later setter calls on the original.
func (s *Settings) clone() *Settings {
	c := *s
	if s.maxValue != nil {
		c.maxValue = new(apd.Decimal).Set(s.maxValue)
	}
	return &c
}
