// Copyright (c) 2026 ToeiRei
// Tally - keypad calculator for the terminal
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"testing"

	"github.com/toeirei/tally/internal/calc"
)

func evalToString(t *testing.T, tokens ...string) string {
	t.Helper()
	session, err := calc.NewSession(calc.NewSettings())
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	if err := evalTokens(session, tokens); err != nil {
		t.Fatalf("evalTokens(%v): %v", tokens, err)
	}
	v, ok := session.Confirm()
	if !ok {
		t.Fatalf("Confirm failed after %v: %v", tokens, session.Err())
	}
	return v.Text('f')
}

func TestEvalTokens(t *testing.T) {
	tests := []struct {
		tokens []string
		want   string
	}{
		{[]string{"2", "+", "3"}, "5"},
		{[]string{"2", "+", "3", "x", "4"}, "20"},
		{[]string{"10", "/", "4"}, "2.5"},
		{[]string{"-5", "+", "12"}, "7"},
		{[]string{"1.5", "*", "2"}, "3"},
		{[]string{"6", ":", "3"}, "2"},
	}
	for _, tt := range tests {
		if got := evalToString(t, tt.tokens...); got != tt.want {
			t.Errorf("eval %v = %s, want %s", tt.tokens, got, tt.want)
		}
	}
}

func TestEvalRejectsBadToken(t *testing.T) {
	session, err := calc.NewSession(calc.NewSettings())
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	if err := evalTokens(session, []string{"2", "+", "banana"}); err == nil {
		t.Error("non-numeric token should fail")
	}
	if err := evalTokens(session, []string{"2", "+", "%"}); err == nil {
		t.Error("unknown operator token should fail")
	}
}

func TestParseOperator(t *testing.T) {
	tests := []struct {
		in   string
		want calc.Operator
	}{
		{"+", calc.OpAdd},
		{"-", calc.OpSub},
		{"*", calc.OpMul},
		{"x", calc.OpMul},
		{"/", calc.OpDiv},
		{":", calc.OpDiv},
		{"-5", calc.OpNone},
		{"12", calc.OpNone},
	}
	for _, tt := range tests {
		if got := parseOperator(tt.in); got != tt.want {
			t.Errorf("parseOperator(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
