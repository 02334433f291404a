// Copyright (c) 2026 ToeiRei
// Tally - keypad calculator for the terminal
// This source code is licensed under the MIT license found in the LICENSE file.

package calc

import (
	"fmt"

	"github.com/cockroachdb/apd/v3"
)

// Operator identifies the binary operation pending between the accumulator
// and the next operand.
type Operator int

const (
	OpNone Operator = iota
	OpAdd
	OpSub
	OpMul
	OpDiv
)

// String returns the conventional symbol for the operator, or "" for OpNone.
func (op Operator) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	}
	return ""
}

// Engine applies binary operations between decimals and finalizes results
// under the session's precision, rounding and bounds policy. Add, subtract
// and multiply are exact; division is rounded to the configured fractional
// scale as it happens, like the final rescale would.
type Engine struct {
	settings *Settings
}

// NewEngine returns an engine bound to the given settings.
func NewEngine(settings *Settings) Engine {
	return Engine{settings: settings}
}

// workingContext returns an apd context with enough precision that addition,
// subtraction and multiplication of anything the digit limits allow stay
// exact, plus headroom for division results.
func (e Engine) workingContext() *apd.Context {
	prec := 200
	if e.settings.maxIntDigits != MaxDigitsUnlimited && e.settings.maxFracDigits != MaxDigitsUnlimited {
		prec = 2*(e.settings.maxIntDigits+e.settings.maxFracDigits) + 34
		if prec < 64 {
			prec = 64
		}
	}
	ctx := apd.BaseContext.WithPrecision(uint32(prec))
	ctx.Rounding = e.settings.rounding.rounder()
	return ctx
}

// Apply computes accumulator op operand. Division by an operand of exactly
// zero fails with ErrDivisionByZero; division results are rounded to the
// configured fractional scale with the configured rounding mode. The inputs
// are not modified.
func (e Engine) Apply(accumulator, operand *apd.Decimal, op Operator) (*apd.Decimal, error) {
	ctx := e.workingContext()
	res := new(apd.Decimal)
	var err error
	switch op {
	case OpAdd:
		_, err = ctx.Add(res, accumulator, operand)
	case OpSub:
		_, err = ctx.Sub(res, accumulator, operand)
	case OpMul:
		_, err = ctx.Mul(res, accumulator, operand)
	case OpDiv:
		if operand.IsZero() {
			return nil, ErrDivisionByZero
		}
		if _, err = ctx.Quo(res, accumulator, operand); err == nil {
			if e.settings.maxFracDigits != MaxDigitsUnlimited {
				_, err = ctx.Quantize(res, res, int32(-e.settings.maxFracDigits))
			}
		}
	default:
		return nil, fmt.Errorf("no operator to apply: %w", ErrInvalidArgument)
	}
	if err != nil {
		return nil, fmt.Errorf("apply %s: %w", op, err)
	}
	return res, nil
}

// Finalize turns a raw arithmetic result into a session value: it checks
// the symmetric magnitude bound, rescales to the configured fractional
// precision under the configured rounding mode, and strips trailing
// fractional zeroes when configured to. An exact-zero result always strips
// to a single unscaled zero rather than a zero carrying the result scale.
// The input is not modified.
func (e Engine) Finalize(value *apd.Decimal) (*apd.Decimal, error) {
	if e.outOfBounds(value) {
		return nil, ErrOutOfBounds
	}
	res := new(apd.Decimal).Set(value)
	if e.settings.maxFracDigits != MaxDigitsUnlimited {
		ctx := e.workingContext()
		if _, err := ctx.Quantize(res, res, int32(-e.settings.maxFracDigits)); err != nil {
			return nil, fmt.Errorf("rescale: %w", err)
		}
	}
	if e.settings.stripTrailingZeroes {
		if res.IsZero() {
			return apd.New(0, 0), nil
		}
		res.Reduce(res)
	}
	return res, nil
}

// outOfBounds reports whether the value's magnitude exceeds the configured
// maximum, checked symmetrically for both signs.
func (e Engine) outOfBounds(value *apd.Decimal) bool {
	max := e.settings.maxValue
	if max == nil {
		return false
	}
	if value.Cmp(max) > 0 {
		return true
	}
	neg := new(apd.Decimal).Neg(max)
	return value.Cmp(neg) < 0
}
