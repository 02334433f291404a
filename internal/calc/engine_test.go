// Copyright (c) 2026 ToeiRei
// Tally - keypad calculator for the terminal
// This source code is licensed under the MIT license found in the LICENSE file.

package calc

import (
	"errors"
	"testing"

	"github.com/cockroachdb/apd/v3"
)

func mustDecimal(t *testing.T, s string) *apd.Decimal {
	t.Helper()
	d, _, err := apd.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", s, err)
	}
	return d
}

func TestApplyBasicOps(t *testing.T) {
	eng := NewEngine(NewSettings())
	tests := []struct {
		a, b string
		op   Operator
		want string
	}{
		{"2", "3", OpAdd, "5"},
		{"2", "3", OpSub, "-1"},
		{"2", "3", OpMul, "6"},
		{"6", "3", OpDiv, "2"},
		{"0.1", "0.2", OpAdd, "0.3"},
		{"1.5", "-2", OpMul, "-3"},
	}
	for _, tt := range tests {
		got, err := eng.Apply(mustDecimal(t, tt.a), mustDecimal(t, tt.b), tt.op)
		if err != nil {
			t.Fatalf("Apply(%s %s %s): %v", tt.a, tt.op, tt.b, err)
		}
		if got.Cmp(mustDecimal(t, tt.want)) != 0 {
			t.Errorf("Apply(%s %s %s) = %s, want %s", tt.a, tt.op, tt.b, got.Text('f'), tt.want)
		}
	}
}

func TestApplyDivisionByZero(t *testing.T) {
	eng := NewEngine(NewSettings())
	_, err := eng.Apply(mustDecimal(t, "1"), mustDecimal(t, "0"), OpDiv)
	if !errors.Is(err, ErrDivisionByZero) {
		t.Fatalf("dividing by zero: got %v, want ErrDivisionByZero", err)
	}
}

func TestApplyDivisionRoundsToScale(t *testing.T) {
	settings := NewSettings()
	if err := settings.SetMaxDigits(10, 2); err != nil {
		t.Fatal(err)
	}
	eng := NewEngine(settings)

	got, err := eng.Apply(mustDecimal(t, "1"), mustDecimal(t, "3"), OpDiv)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if got.Text('f') != "0.33" {
		t.Errorf("1/3 at two fractional digits = %q, want %q", got.Text('f'), "0.33")
	}

	got, err = eng.Apply(mustDecimal(t, "2"), mustDecimal(t, "3"), OpDiv)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if got.Text('f') != "0.67" {
		t.Errorf("2/3 at two fractional digits = %q, want %q", got.Text('f'), "0.67")
	}
}

func TestFinalizeOutOfBounds(t *testing.T) {
	settings := NewSettings()
	settings.SetMaxValue(mustDecimal(t, "1e10"))
	eng := NewEngine(settings)

	if _, err := eng.Finalize(mustDecimal(t, "10000000000")); err != nil {
		t.Errorf("value at the bound should pass, got %v", err)
	}
	if _, err := eng.Finalize(mustDecimal(t, "10000000001")); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("value above the bound: got %v, want ErrOutOfBounds", err)
	}
	if _, err := eng.Finalize(mustDecimal(t, "-10000000001")); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("value below the negative bound: got %v, want ErrOutOfBounds", err)
	}
}

func TestFinalizeUnbounded(t *testing.T) {
	settings := NewSettings()
	settings.SetMaxValue(nil)
	eng := NewEngine(settings)
	if _, err := eng.Finalize(mustDecimal(t, "1e50")); err != nil {
		t.Errorf("unbounded settings rejected a large value: %v", err)
	}
}

func TestFinalizeStripsTrailingZeroes(t *testing.T) {
	eng := NewEngine(NewSettings())
	got, err := eng.Finalize(mustDecimal(t, "12.340000"))
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	if got.Text('f') != "12.34" {
		t.Errorf("Finalize(12.340000) = %q, want %q", got.Text('f'), "12.34")
	}
}

func TestFinalizeZeroStripsToPlainZero(t *testing.T) {
	eng := NewEngine(NewSettings())
	got, err := eng.Finalize(mustDecimal(t, "0.00000000"))
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	if got.Text('f') != "0" {
		t.Errorf("Finalize(0.00000000) = %q, want %q", got.Text('f'), "0")
	}
}

func TestFinalizeKeepsTrailingZeroes(t *testing.T) {
	settings := NewSettings()
	settings.SetStripTrailingZeroes(false)
	if err := settings.SetMaxDigits(10, 2); err != nil {
		t.Fatal(err)
	}
	eng := NewEngine(settings)
	got, err := eng.Finalize(mustDecimal(t, "12.3"))
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	if got.Text('f') != "12.30" {
		t.Errorf("Finalize(12.3) = %q, want %q", got.Text('f'), "12.30")
	}
}

func TestFinalizeRoundingModes(t *testing.T) {
	tests := []struct {
		mode RoundingMode
		in   string
		want string
	}{
		{RoundHalfUp, "0.125", "0.13"},
		{RoundHalfDown, "0.125", "0.12"},
		{RoundHalfEven, "0.125", "0.12"},
		{RoundHalfEven, "0.135", "0.14"},
		{RoundUp, "0.121", "0.13"},
		{RoundDown, "0.129", "0.12"},
		{RoundCeiling, "-0.129", "-0.12"},
		{RoundFloor, "-0.121", "-0.13"},
		{RoundHalfUp, "-0.125", "-0.13"},
	}
	for _, tt := range tests {
		settings := NewSettings()
		if err := settings.SetMaxDigits(10, 2); err != nil {
			t.Fatal(err)
		}
		if err := settings.SetRoundingMode(tt.mode); err != nil {
			t.Fatal(err)
		}
		eng := NewEngine(settings)
		got, err := eng.Finalize(mustDecimal(t, tt.in))
		if err != nil {
			t.Fatalf("Finalize(%s, %s): %v", tt.in, tt.mode, err)
		}
		if got.Text('f') != tt.want {
			t.Errorf("Finalize(%s, %s) = %q, want %q", tt.in, tt.mode, got.Text('f'), tt.want)
		}
	}
}

func TestOperatorString(t *testing.T) {
	if OpAdd.String() != "+" || OpSub.String() != "-" || OpMul.String() != "*" || OpDiv.String() != "/" {
		t.Error("operator symbols are wrong")
	}
	if OpNone.String() != "" {
		t.Errorf("OpNone.String() = %q, want empty", OpNone.String())
	}
}
