// Copyright (c) 2026 ToeiRei
// Tally - keypad calculator for the terminal
// This source code is licensed under the MIT license found in the LICENSE file.

package i18n

import "testing"

func TestTranslations(t *testing.T) {
	Init("en")
	if got := T("calc.error.div_zero"); got != "Division by zero" {
		t.Errorf("T(calc.error.div_zero) = %q", got)
	}

	Init("de")
	if got := T("calc.error.div_zero"); got != "Division durch Null" {
		t.Errorf("T(calc.error.div_zero) = %q", got)
	}
}

func TestTranslationFallsBackToMessageID(t *testing.T) {
	Init("en")
	if got := T("no.such.key"); got != "no.such.key" {
		t.Errorf("T(no.such.key) = %q, want the message ID back", got)
	}
}

func TestTranslationFormatsArguments(t *testing.T) {
	Init("en")
	if got := T("cli.history.cleared", 3); got != "removed 3 history entries" {
		t.Errorf("T(cli.history.cleared, 3) = %q", got)
	}
}

func TestLocaleSeparators(t *testing.T) {
	Init("en")
	if DecimalSeparator() != '.' || GroupSeparator() != ',' {
		t.Errorf("en separators = %q %q, want . and ,", DecimalSeparator(), GroupSeparator())
	}

	Init("de")
	if DecimalSeparator() != ',' || GroupSeparator() != '.' {
		t.Errorf("de separators = %q %q, want , and .", DecimalSeparator(), GroupSeparator())
	}
}

func TestGetAvailableLocales(t *testing.T) {
	locales := GetAvailableLocales()
	if locales["en"] != "English" {
		t.Errorf("locales[en] = %q, want English", locales["en"])
	}
	if locales["de"] != "Deutsch" {
		t.Errorf("locales[de] = %q, want Deutsch", locales["de"])
	}
}

func TestUnknownLanguageFallsBack(t *testing.T) {
	Init("tlh")
	if got := T("calc.error.div_zero"); got != "Division by zero" {
		t.Errorf("T under unknown language = %q, want the English text", got)
	}
}
