// Copyright (c) 2026 ToeiRei
// Tally - keypad calculator for the terminal
// This source code is licensed under the MIT license found in the LICENSE file.

package calc

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/apd/v3"
)

// ConfirmHandler receives the confirmed value when the user accepts the
// entry. It is optional; a session without one simply resets on confirm.
type ConfirmHandler func(value *apd.Decimal)

// Session is the key-event state machine for one calculator interaction.
// It owns the raw entry buffer (what the user is currently typing), the
// accumulator (the confirmed running result) and the pending operator, and
// mutates them in response to key events. Handling is fully synchronous;
// a Session must not be shared between goroutines.
//
// Interaction-time failures are states, not returned errors: the session
// enters an error state that blocks confirmation, and the next digit,
// decimal or clear key recovers it.
type Session struct {
	settings *Settings
	fmtr     Formatter
	eng      Engine

	decimalSep rune // resolved, never SeparatorLocaleDefault

	buffer []rune // raw entry, ungrouped
	acc    *apd.Decimal
	op     Operator
	errSt  error

	view    string // cached display, mirrors visible text timing
	zeroStr string // rendering of zero for an empty buffer

	onConfirm ConfirmHandler
}

// SessionOption configures a Session at construction time.
type SessionOption func(*sessionConfig)

type sessionConfig struct {
	localeDecimal rune
	localeGroup   rune
	initial       *apd.Decimal
	onConfirm     ConfirmHandler
}

// WithLocaleSeparators supplies the active locale's default separator
// characters, used for settings that carry SeparatorLocaleDefault.
func WithLocaleSeparators(decimal, group rune) SessionOption {
	return func(c *sessionConfig) {
		c.localeDecimal = decimal
		c.localeGroup = group
	}
}

// WithInitialValue seeds the session with a starting value. The value is
// clamped to the configured bounds (positive overflow becomes +max,
// negative overflow -max) and rounded to the session precision.
func WithInitialValue(value *apd.Decimal) SessionOption {
	return func(c *sessionConfig) { c.initial = value }
}

// WithConfirmHandler registers the handler invoked with the confirmed
// value. A panicking handler is swallowed; the confirm still succeeds.
func WithConfirmHandler(h ConfirmHandler) SessionOption {
	return func(c *sessionConfig) { c.onConfirm = h }
}

// NewSession builds a session from a snapshot of the given settings.
// Locale-default separators are resolved here, once; it is an error for
// both separators to resolve to the same character.
func NewSession(settings *Settings, opts ...SessionOption) (*Session, error) {
	cfg := sessionConfig{localeDecimal: '.', localeGroup: ','}
	for _, opt := range opts {
		opt(&cfg)
	}

	st := settings.clone()
	if st.decimalSep == SeparatorLocaleDefault {
		st.decimalSep = cfg.localeDecimal
	}
	if st.groupSep == SeparatorLocaleDefault {
		st.groupSep = cfg.localeGroup
	}
	if st.decimalSep == st.groupSep {
		return nil, fmt.Errorf("separators both resolve to %q: %w", st.decimalSep, ErrInvalidArgument)
	}

	s := &Session{
		settings:   st,
		fmtr:       NewFormatter(st.decimalSep, st.groupSep, st.groupSize),
		eng:        NewEngine(st),
		decimalSep: st.decimalSep,
		onConfirm:  cfg.onConfirm,
	}
	s.zeroStr = s.renderZero()

	if cfg.initial != nil {
		if err := s.seed(cfg.initial); err != nil {
			return nil, err
		}
	}
	s.updateView()
	return s, nil
}

// renderZero builds the string shown for an empty buffer when
// showZeroWhenEmpty is on: plain "0", or zero at the full fractional scale
// when trailing zeroes are kept.
func (s *Session) renderZero() string {
	if !s.settings.stripTrailingZeroes && s.settings.maxFracDigits != MaxDigitsUnlimited && s.settings.maxFracDigits > 0 {
		return "0" + string(s.decimalSep) + strings.Repeat("0", s.settings.maxFracDigits)
	}
	return "0"
}

// seed installs the initial value: clamp to bounds, finalize to session
// precision, then make it both the accumulator and the visible entry.
func (s *Session) seed(value *apd.Decimal) error {
	v := new(apd.Decimal).Set(value)
	if s.eng.outOfBounds(v) {
		max := s.settings.maxValue
		if v.Sign() > 0 {
			v.Set(max)
		} else {
			v.Neg(max)
		}
	}
	fin, err := s.eng.Finalize(v)
	if err != nil {
		return fmt.Errorf("seed value: %w", err)
	}
	s.acc = fin
	s.buffer = []rune(s.plain(fin))
	return nil
}

// plain renders a value for the entry buffer: non-exponential, decimal
// separator substituted, no grouping.
func (s *Session) plain(value *apd.Decimal) string {
	str := value.Text('f')
	if s.decimalSep != '.' {
		str = strings.Replace(str, ".", string(s.decimalSep), 1)
	}
	return str
}

// Display returns the text the presentation layer should render: the
// grouped buffer, the zero/empty representation for an empty buffer, or ""
// while an error is pending (the error message replaces the value).
func (s *Session) Display() string {
	if s.errSt != nil {
		return ""
	}
	return s.view
}

// Err returns the pending interaction error (ErrDivisionByZero,
// ErrOutOfBounds, ErrWrongSignPositive, ErrWrongSignNegative), or nil.
func (s *Session) Err() error { return s.errSt }

// CanConfirm reports whether the confirm key would currently be accepted.
func (s *Session) CanConfirm() bool { return s.errSt == nil }

// Pending returns the operator waiting for its second operand, or OpNone.
func (s *Session) Pending() Operator { return s.op }

// Buffer returns the raw, ungrouped entry buffer. Mostly useful to callers
// assembling a textual record of the calculation.
func (s *Session) Buffer() string { return string(s.buffer) }

// Separators returns the resolved decimal and group separator characters,
// for presentation layers that label a decimal key or normalize the buffer.
func (s *Session) Separators() (decimal, group rune) {
	return s.settings.decimalSep, s.settings.groupSep
}

// Digit handles a digit key 0-9. It recovers a pending error state and
// begins fresh entry. A lone "0" is replaced rather than appended to, and
// the key is ignored once the configured digit limit for the current part
// of the number is reached.
func (s *Session) Digit(d int) {
	if d < 0 || d > 9 {
		return
	}
	s.recoverError()

	if len(s.buffer) == 1 && s.buffer[0] == '0' {
		s.buffer = s.buffer[:0]
	}

	pointPos := s.pointPos()
	if pointPos == -1 {
		if s.settings.maxIntDigits != MaxDigitsUnlimited && s.countDigits(len(s.buffer)) >= s.settings.maxIntDigits {
			s.updateView()
			return
		}
	} else {
		if s.settings.maxFracDigits != MaxDigitsUnlimited && len(s.buffer)-pointPos-1 >= s.settings.maxFracDigits {
			s.updateView()
			return
		}
	}
	s.buffer = append(s.buffer, rune('0'+d))
	s.updateView()
}

// Decimal handles the decimal separator key. It recovers a pending error
// state. Ignored when the buffer already holds a separator; on an empty
// buffer a "0" is inserted first so entry reads "0.1" rather than ".1".
func (s *Session) Decimal() {
	s.recoverError()
	if s.pointPos() != -1 {
		return
	}
	if len(s.buffer) == 0 {
		s.buffer = append(s.buffer, '0')
	}
	s.buffer = append(s.buffer, s.decimalSep)
	s.updateView()
}

// ToggleSign handles the +/- key, toggling a leading '-'. A bare zero
// (empty, "0" or "0.") cannot be negated; the key is ignored in an error
// state.
func (s *Session) ToggleSign() {
	if s.errSt != nil {
		return
	}
	str := string(s.buffer)
	if str == "" || str == "0" || str == "0"+string(s.decimalSep) {
		return
	}
	if s.buffer[0] == '-' {
		s.buffer = s.buffer[1:]
	} else {
		s.buffer = append([]rune{'-'}, s.buffer...)
	}
	s.updateView()
}

// Erase handles the backspace key: it removes the last buffer character,
// and with it any decimal separator or lone '-' it would leave dangling.
// A no-op on an empty buffer or in an error state.
func (s *Session) Erase() {
	if s.errSt != nil {
		return
	}
	if len(s.buffer) == 0 {
		return
	}
	s.buffer = s.buffer[:len(s.buffer)-1]
	if n := len(s.buffer); n > 0 {
		if last := s.buffer[n-1]; last == s.decimalSep || last == '-' {
			s.buffer = s.buffer[:n-1]
		}
	}
	s.updateView()
}

// Operator handles one of the four operator keys. A non-empty buffer is
// captured: either resolved through the already-pending operator (implicit
// equals) or, at the start of a chain, parsed straight into the
// accumulator. The buffer is then cleared for the second operand; whether
// the visible display clears too is a Settings choice. Ignored in an error
// state, as is an implicit equals that fails.
func (s *Session) Operator(op Operator) {
	if s.errSt != nil {
		return
	}
	if op <= OpNone || op > OpDiv {
		return
	}
	if len(s.buffer) > 0 {
		if s.op != OpNone {
			s.equals()
			if s.errSt != nil {
				return
			}
		} else {
			s.acc = s.parseBuffer()
		}
	}
	s.op = op
	s.buffer = s.buffer[:0]
	if s.settings.clearDisplayOnOperator {
		s.updateView()
	}
}

// Equals resolves the pending operation, or finalizes the current entry
// when none is pending. Ignored in an error state.
func (s *Session) Equals() {
	if s.errSt != nil {
		return
	}
	s.equals()
}

// equals is the shared resolution step behind the equals key, operator
// chaining and confirm. On success the result becomes both the accumulator
// and the buffer, and the pending operator is cleared. On failure the
// session transitions to the corresponding error state.
func (s *Session) equals() {
	if s.op == OpNone {
		// No pending operation: the entry (or the previous result, or
		// zero) is the result, still subject to bounds and rounding.
		var v *apd.Decimal
		switch {
		case len(s.buffer) > 0:
			v = s.parseBuffer()
		case s.acc != nil:
			v = s.acc
		default:
			v = apd.New(0, 0)
		}
		fin, err := s.eng.Finalize(v)
		if err != nil {
			s.setError(err)
			return
		}
		s.commit(fin)
		return
	}

	acc := s.acc
	if acc == nil {
		acc = apd.New(0, 0)
	}
	// Operator pressed and then equals with nothing typed: the operation
	// applies the accumulator to itself (5, +, = yields 10).
	operand := acc
	if len(s.buffer) > 0 {
		operand = s.parseBuffer()
	}

	raw, err := s.eng.Apply(acc, operand, s.op)
	if err != nil {
		s.setError(ErrDivisionByZero)
		return
	}
	fin, err := s.eng.Finalize(raw)
	if err != nil {
		s.setError(err)
		return
	}
	s.commit(fin)
}

// commit installs a finalized result as the new accumulator and entry.
func (s *Session) commit(value *apd.Decimal) {
	s.acc = value
	s.buffer = []rune(s.plain(value))
	s.op = OpNone
	s.updateView()
}

// Confirm resolves any pending entry like Equals, enforces the fixed-sign
// constraint, hands the value to the confirm handler and resets the
// session. It reports the confirmed value and true on success; false when
// the session is (or ends up) in an error state, in which case nothing is
// emitted and the session stays put for the user to recover.
func (s *Session) Confirm() (*apd.Decimal, bool) {
	if s.errSt != nil {
		return nil, false
	}
	s.equals()
	if s.errSt != nil {
		return nil, false
	}

	value := s.acc
	if value == nil {
		value = apd.New(0, 0)
	}
	if s.settings.signFixed {
		if sign := value.Sign(); sign != 0 && sign != s.settings.fixedSign {
			if sign > 0 {
				s.setError(ErrWrongSignPositive)
			} else {
				s.setError(ErrWrongSignNegative)
			}
			return nil, false
		}
	}

	emitted := new(apd.Decimal).Set(value)
	if s.onConfirm != nil {
		s.invokeHandler(emitted)
	}
	s.reset()
	return emitted, true
}

// invokeHandler calls the confirm handler, swallowing a panic: a broken
// listener must not keep the interaction from ending.
func (s *Session) invokeHandler(value *apd.Decimal) {
	defer func() { _ = recover() }()
	s.onConfirm(value)
}

// Clear handles the C key: back to the initial state, whatever the current
// one is, including error states.
func (s *Session) Clear() {
	s.reset()
}

// Cancel abandons the interaction: same reset as Clear, and by contract no
// value is emitted.
func (s *Session) Cancel() {
	s.reset()
}

// reset restores the initial entering state.
func (s *Session) reset() {
	s.buffer = s.buffer[:0]
	s.acc = nil
	s.op = OpNone
	s.errSt = nil
	s.updateView()
}

// setError enters an error state: entry and accumulator are gone, and
// confirmation stays blocked until a digit, decimal or clear key.
func (s *Session) setError(err error) {
	s.errSt = err
	s.buffer = s.buffer[:0]
	s.acc = nil
	s.op = OpNone
	s.view = ""
}

// recoverError leaves a pending error state for events that begin fresh
// entry (digit and decimal keys).
func (s *Session) recoverError() {
	s.errSt = nil
}

// updateView refreshes the cached display text. Operator presses skip this
// when clearDisplayOnOperator is off, which is how the previous operand
// stays visible until the next digit key.
func (s *Session) updateView() {
	if len(s.buffer) == 0 {
		if s.settings.showZeroWhenEmpty {
			s.view = s.zeroStr
		} else {
			s.view = ""
		}
		return
	}
	s.view = s.fmtr.Group(string(s.buffer))
}

// parseBuffer parses the entry buffer, which is well formed by
// construction; a parse failure degrades to zero rather than a fault.
func (s *Session) parseBuffer() *apd.Decimal {
	v, err := s.fmtr.Parse(string(s.buffer))
	if err != nil {
		return apd.New(0, 0)
	}
	return v
}

// pointPos returns the buffer index of the decimal separator, or -1.
func (s *Session) pointPos() int {
	for i, c := range s.buffer {
		if c == s.decimalSep {
			return i
		}
	}
	return -1
}

// countDigits counts buffer digits in the first n runes, skipping a sign.
func (s *Session) countDigits(n int) int {
	count := 0
	for _, c := range s.buffer[:n] {
		if c >= '0' && c <= '9' {
			count++
		}
	}
	return count
}
