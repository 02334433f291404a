// Copyright (c) 2026 ToeiRei
// Tally - keypad calculator for the terminal
// This source code is licensed under the MIT license found in the LICENSE file.

package calc

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/apd/v3"
)

// Formatter converts between the raw entry buffer, canonical decimal values
// and the grouped display string. It is pure: the same input always yields
// the same output, and no call mutates the formatter.
//
// Round-trip property: Parse(Format(v)) equals v for any v already rounded
// to the session's fractional precision.
type Formatter struct {
	decimalSep rune
	groupSep   rune
	groupSize  int
}

// NewFormatter returns a formatter for the given resolved separator
// characters and group size. groupSize 0 disables grouping.
func NewFormatter(decimalSep, groupSep rune, groupSize int) Formatter {
	return Formatter{decimalSep: decimalSep, groupSep: groupSep, groupSize: groupSize}
}

// Parse converts a display or entry buffer into an exact decimal. Group
// separators are stripped and the configured decimal separator is rewritten
// to the canonical '.'. An empty buffer parses to exact zero, and a
// trailing decimal separator (as in "5.") is tolerated.
func (f Formatter) Parse(buffer string) (*apd.Decimal, error) {
	s := f.Ungroup(buffer)
	if f.decimalSep != '.' {
		s = strings.ReplaceAll(s, string(f.decimalSep), ".")
	}
	s = strings.TrimSuffix(s, ".")
	if s == "" || s == "-" {
		return apd.New(0, 0), nil
	}
	d, _, err := apd.NewFromString(s)
	if err != nil {
		return nil, fmt.Errorf("parse %q: %w", buffer, err)
	}
	return d, nil
}

// Format renders a canonical decimal as a grouped display string: the plain
// (non-exponential) form with the configured decimal separator substituted
// and group separators inserted.
func (f Formatter) Format(value *apd.Decimal) string {
	s := value.Text('f')
	if f.decimalSep != '.' {
		s = strings.Replace(s, ".", string(f.decimalSep), 1)
	}
	return f.Group(s)
}

// Group inserts the group separator into the integer part of an ungrouped
// buffer, every groupSize digits counting left from the decimal separator.
// The walk stops before index 1 so a leading '-' is never isolated from the
// first digit.
func (f Formatter) Group(buffer string) string {
	if f.groupSize <= 0 {
		return buffer
	}
	r := []rune(buffer)
	pointPos := len(r)
	for i, c := range r {
		if c == f.decimalSep {
			pointPos = i
			break
		}
	}
	start := pointPos - f.groupSize
	for i := start; i > 0; i -= f.groupSize {
		if i == 1 && r[0] == '-' {
			break
		}
		r = append(r[:i], append([]rune{f.groupSep}, r[i:]...)...)
	}
	return string(r)
}

// Ungroup removes every group separator, turning "10,000,000" back into
// "10000000".
func (f Formatter) Ungroup(buffer string) string {
	if f.groupSize <= 0 {
		return buffer
	}
	return strings.ReplaceAll(buffer, string(f.groupSep), "")
}
