// Copyright (c) 2026 ToeiRei
// Tally - keypad calculator for the terminal
// This source code is licensed under the MIT license found in the LICENSE file.

// Package tui implements Tally's interactive calculator dialog on top of
// bubbletea. The dialog wraps one calc.Session; it owns no calculator
// state of its own beyond what is needed for rendering and the history
// record.
package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cockroachdb/apd/v3"
	"github.com/toeirei/tally/internal/calc"
	"github.com/toeirei/tally/internal/i18n"
)

// Run opens the calculator dialog for the given settings and blocks until
// the user confirms or cancels. It returns the confirmed value and true,
// or nil and false when the dialog was cancelled. Locale-default
// separators are resolved from the active i18n locale, and an optional
// seed value pre-fills the entry.
func Run(settings *calc.Settings, seed *apd.Decimal) (*apd.Decimal, bool, error) {
	opts := []calc.SessionOption{
		calc.WithLocaleSeparators(i18n.DecimalSeparator(), i18n.GroupSeparator()),
	}
	if seed != nil {
		opts = append(opts, calc.WithInitialValue(seed))
	}
	session, err := calc.NewSession(settings, opts...)
	if err != nil {
		return nil, false, err
	}

	m := newCalcModel(session)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return nil, false, fmt.Errorf("calculator dialog failed: %w", err)
	}
	if m.confirmed == nil {
		return nil, false, nil
	}
	return m.confirmed, true, nil
}
