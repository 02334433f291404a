// Copyright (c) 2026 ToeiRei
// Tally - keypad calculator for the terminal
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/toeirei/tally/internal/calc"
	"github.com/toeirei/tally/internal/db"
	"github.com/toeirei/tally/internal/i18n"
)

// evalCmd evaluates an expression given as arguments by replaying it
// through the same entry session the interactive dialog uses, so the
// digit limits, rounding and chained left-to-right evaluation match the
// dialog exactly. Example: tally eval 2 + 3 x 4
var evalCmd = &cobra.Command{
	Use:   "eval <token>...",
	Short: "Evaluate an expression non-interactively",
	Long: `Evaluate evaluates a whitespace-separated expression with the same
left-to-right semantics as the interactive calculator: 2 + 3 x 4 is 20,
not 14. Use x for multiplication to avoid shell globbing.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := calc.NewSession(appSettings,
			calc.WithLocaleSeparators(i18n.DecimalSeparator(), i18n.GroupSeparator()))
		if err != nil {
			return err
		}

		if err := evalTokens(session, args); err != nil {
			return err
		}

		value, ok := session.Confirm()
		if !ok {
			reason := ""
			if sessErr := session.Err(); sessErr != nil {
				reason = i18n.T(calc.MessageKey(sessErr))
			}
			return fmt.Errorf("%s", i18n.T("cli.eval.not_confirmed", reason))
		}

		result := value.Text('f')
		if db.IsInitialized() {
			_, _ = db.AddEntry(strings.Join(args, " "), result)
		}
		fmt.Fprintln(cmd.OutOrStdout(), result)
		return nil
	},
}

// evalTokens replays the tokens as keypad input: numbers are typed
// digit-wise, operator tokens press the operator key.
func evalTokens(session *calc.Session, tokens []string) error {
	for _, token := range tokens {
		if op := parseOperator(token); op != calc.OpNone {
			session.Operator(op)
			continue
		}
		if err := feedNumber(session, token); err != nil {
			return err
		}
	}
	return nil
}
