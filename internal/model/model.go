// Copyright (c) 2026 ToeiRei
// Tally - keypad calculator for the terminal
// This source code is licensed under the MIT license found in the LICENSE file.

// Package model defines the plain data types shared between Tally's
// storage layer and its user interfaces.
package model

import (
	"fmt"
	"time"
)

// Entry is one confirmed calculation in the history: the expression as it
// was entered and the result the engine produced, both in canonical form
// (ASCII operators, '.' decimal separator, no grouping).
type Entry struct {
	ID         int64
	Expression string
	Result     string
	CreatedAt  time.Time
}

// String returns the "expression = result" representation.
func (e Entry) String() string {
	return fmt.Sprintf("%s = %s", e.Expression, e.Result)
}
