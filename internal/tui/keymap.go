// Copyright (c) 2026 ToeiRei
// Tally - keypad calculator for the terminal
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/toeirei/tally/internal/i18n"
)

// keyMap declares the calculator dialog's key bindings for bubbles' help
// component. Digit keys are matched directly in Update and are summarized
// here as one binding.
type keyMap struct {
	Digits    key.Binding
	Decimal   key.Binding
	Add       key.Binding
	Sub       key.Binding
	Mul       key.Binding
	Div       key.Binding
	Operators key.Binding
	Equals    key.Binding
	Sign      key.Binding
	Erase     key.Binding
	Clear     key.Binding
	Confirm   key.Binding
	Copy      key.Binding
	History   key.Binding
	Help      key.Binding
	Cancel    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Digits: key.NewBinding(
			key.WithKeys("0", "1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("0-9", i18n.T("tui.help.digits")),
		),
		Decimal: key.NewBinding(
			key.WithKeys(".", ","),
			key.WithHelp(".", i18n.T("tui.help.decimal")),
		),
		Add: key.NewBinding(key.WithKeys("+")),
		Sub: key.NewBinding(key.WithKeys("-")),
		Mul: key.NewBinding(key.WithKeys("*", "x")),
		Div: key.NewBinding(key.WithKeys("/", ":")),
		Operators: key.NewBinding(
			key.WithKeys("+", "-", "*", "/"),
			key.WithHelp("+-*/", i18n.T("tui.help.operators")),
		),
		Equals: key.NewBinding(
			key.WithKeys("enter", "="),
			key.WithHelp("=/enter", i18n.T("tui.help.equals")),
		),
		Sign: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", i18n.T("tui.help.sign")),
		),
		Erase: key.NewBinding(
			key.WithKeys("backspace"),
			key.WithHelp("⌫", i18n.T("tui.help.erase")),
		),
		Clear: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", i18n.T("tui.help.clear")),
		),
		Confirm: key.NewBinding(
			key.WithKeys("o", "ctrl+s"),
			key.WithHelp("o", i18n.T("tui.help.confirm")),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", i18n.T("tui.help.copy")),
		),
		History: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", i18n.T("tui.help.history")),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", i18n.T("tui.help.toggle")),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc", "q", "ctrl+c"),
			key.WithHelp("esc", i18n.T("tui.help.cancel")),
		),
	}
}

// ShortHelp is the single-line help shown under the keypad.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Equals, k.Confirm, k.Clear, k.Cancel, k.Help}
}

// FullHelp is the expanded help toggled with '?'.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Digits, k.Decimal, k.Operators, k.Sign, k.Erase},
		{k.Equals, k.Confirm, k.Clear, k.Cancel},
		{k.Copy, k.History, k.Help},
	}
}
