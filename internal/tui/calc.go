// Copyright (c) 2026 ToeiRei
// Tally - keypad calculator for the terminal
// This source code is licensed under the MIT license found in the LICENSE file.

// The calculator dialog: a single bubbletea model wrapping one calc.Session.
// Every keystroke becomes a session key event; the view renders whatever
// the session exposes (display string, pending operator, error state) plus
// a static keypad, an optional history pane and the help footer.
package tui

import (
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/cockroachdb/apd/v3"
	"github.com/toeirei/tally/internal/calc"
	"github.com/toeirei/tally/internal/db"
	"github.com/toeirei/tally/internal/i18n"
	"github.com/toeirei/tally/internal/model"
)

// historyPaneSize is how many entries the history pane shows.
const historyPaneSize = 8

type calcModel struct {
	session *calc.Session
	keys    keyMap
	help    help.Model

	// tokens accumulates the canonical form of the calculation for the
	// history record: operands as committed by operator keys, operators in
	// between. The operand currently being typed lives in the session.
	tokens []string

	copied      bool
	showHistory bool
	history     []model.Entry
	historyErr  error

	confirmed *apd.Decimal
	cancelled bool
}

func newCalcModel(session *calc.Session) *calcModel {
	return &calcModel{
		session: session,
		keys:    newKeyMap(),
		help:    help.New(),
	}
}

func (m *calcModel) Init() tea.Cmd {
	return nil
}

func (m *calcModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *calcModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.copied = false

	str := msg.String()
	if len(str) == 1 && str[0] >= '0' && str[0] <= '9' {
		m.session.Digit(int(str[0] - '0'))
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Decimal):
		m.session.Decimal()
	case key.Matches(msg, m.keys.Add):
		m.operator(calc.OpAdd)
	case key.Matches(msg, m.keys.Sub):
		m.operator(calc.OpSub)
	case key.Matches(msg, m.keys.Mul):
		m.operator(calc.OpMul)
	case key.Matches(msg, m.keys.Div):
		m.operator(calc.OpDiv)
	case key.Matches(msg, m.keys.Equals):
		m.captureOperand()
		m.session.Equals()
	case key.Matches(msg, m.keys.Sign):
		m.session.ToggleSign()
	case key.Matches(msg, m.keys.Erase):
		m.session.Erase()
	case key.Matches(msg, m.keys.Clear):
		m.session.Clear()
		m.tokens = nil
	case key.Matches(msg, m.keys.Confirm):
		return m.confirm()
	case key.Matches(msg, m.keys.Copy):
		if out := m.session.Display(); out != "" {
			if err := clipboard.WriteAll(out); err == nil {
				m.copied = true
			}
		}
	case key.Matches(msg, m.keys.History):
		m.toggleHistory()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Cancel):
		m.session.Cancel()
		m.cancelled = true
		return m, tea.Quit
	}
	return m, nil
}

// operator records the operand being committed, then forwards the key.
// Pressing a second operator with nothing typed replaces the pending one
// in the record, mirroring what the session does.
func (m *calcModel) operator(op calc.Operator) {
	if m.session.Err() != nil {
		return
	}
	if m.session.Buffer() == "" && len(m.tokens) > 0 && isOperatorToken(m.tokens[len(m.tokens)-1]) {
		m.tokens[len(m.tokens)-1] = op.String()
		m.session.Operator(op)
		return
	}
	m.captureOperand()
	m.session.Operator(op)
	if m.session.Err() == nil {
		m.tokens = append(m.tokens, op.String())
	} else {
		m.tokens = nil
	}
}

// captureOperand appends the session buffer, canonicalized, to the token
// record if an operand is pending there.
func (m *calcModel) captureOperand() {
	buf := m.session.Buffer()
	if buf == "" {
		return
	}
	if n := len(m.tokens); n > 0 && !isOperatorToken(m.tokens[n-1]) {
		// Result of a previous equals still sits in the buffer and is
		// already recorded.
		return
	}
	m.tokens = append(m.tokens, m.canonical(buf))
}

// canonical rewrites a buffer into locale-independent form for storage.
func (m *calcModel) canonical(buf string) string {
	dec, _ := m.session.Separators()
	if dec != '.' {
		buf = strings.Replace(buf, string(dec), ".", 1)
	}
	return buf
}

func isOperatorToken(tok string) bool {
	switch tok {
	case "+", "-", "*", "/":
		return true
	}
	return false
}

// confirm resolves and accepts the entry. On success the dialog records
// the calculation, remembers the value for the caller and quits.
func (m *calcModel) confirm() (tea.Model, tea.Cmd) {
	m.captureOperand()
	value, ok := m.session.Confirm()
	if !ok {
		m.tokens = nil
		return m, nil
	}

	result := value.Text('f')
	expr := strings.Join(m.tokens, " ")
	if expr == "" {
		expr = result
	}
	if db.IsInitialized() {
		// Best effort; a full disk must not keep the value from the user.
		_, _ = db.AddEntry(expr, result)
	}

	m.confirmed = value
	m.tokens = nil
	return m, tea.Quit
}

func (m *calcModel) toggleHistory() {
	m.showHistory = !m.showHistory
	if !m.showHistory {
		return
	}
	if !db.IsInitialized() {
		m.history, m.historyErr = nil, db.ErrNotInitialized
		return
	}
	m.history, m.historyErr = db.GetRecentEntries(historyPaneSize)
}

func (m *calcModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(i18n.T("tui.title")))
	b.WriteString("\n")

	display := m.session.Display()
	if err := m.session.Err(); err != nil {
		display = errorStyle.Render(i18n.T(calc.MessageKey(err)))
	}
	b.WriteString(displayStyle.Render(display))
	b.WriteString("\n")

	if op := m.session.Pending(); op != calc.OpNone {
		b.WriteString(pendingStyle.Render("pending: " + op.String()))
		b.WriteString("\n")
	}

	main := b.String() + m.keypad()

	if m.showHistory {
		main = lipgloss.JoinHorizontal(lipgloss.Top, main, m.historyPane())
	}

	footer := ""
	if m.copied {
		footer = noticeStyle.Render(i18n.T("tui.copied")) + "\n"
	}
	footer += helpStyle.Render(m.help.View(m.keys))

	return main + "\n" + footer
}

// keypad renders the static button grid. It is a legend, not a focusable
// widget: every button is driven directly by its key.
func (m *calcModel) keypad() string {
	dec, _ := m.session.Separators()
	rows := [][]string{
		{"7", "8", "9", "/"},
		{"4", "5", "6", "*"},
		{"1", "2", "3", "-"},
		{"±", "0", string(dec), "+"},
	}
	var lines []string
	for _, row := range rows {
		var cells []string
		for i, label := range row {
			style := buttonStyle
			if i == 3 || label == "±" || label == string(dec) {
				style = opButtonStyle
			}
			cells = append(cells, style.Render(label))
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m *calcModel) historyPane() string {
	title := historyTitleStyle.Render(i18n.T("tui.history.title"))
	var body string
	switch {
	case m.historyErr != nil:
		body = i18n.T("tui.history.unavailable")
	case len(m.history) == 0:
		body = i18n.T("tui.history.empty")
	default:
		var lines []string
		for _, e := range m.history {
			lines = append(lines, e.String())
		}
		body = strings.Join(lines, "\n")
	}
	return historyPaneStyle.Render(title + "\n" + body)
}
