// Copyright (c) 2026 ToeiRei
// Tally - keypad calculator for the terminal
// This source code is licensed under the MIT license found in the LICENSE file.

// main.go sets up the command-line interface for Tally using the Cobra
// library: the root command (which launches the calculator dialog), the
// eval command for scripted use, the history commands, and the flag and
// configuration wiring shared between them.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/cockroachdb/apd/v3"
	"github.com/spf13/cobra"
	"github.com/toeirei/tally/buildvars"
	"github.com/toeirei/tally/internal/calc"
	"github.com/toeirei/tally/internal/config"
	"github.com/toeirei/tally/internal/db"
	"github.com/toeirei/tally/internal/i18n"
	"github.com/toeirei/tally/internal/logging"
	"github.com/toeirei/tally/internal/tui"
	"golang.org/x/term"
)

var (
	cfgFile         string
	verbose         bool
	showVersionFlag bool
	seedFlag        string

	appConfig   config.Config
	appSettings *calc.Settings
)

// Execute runs the CLI entrypoint. The root main package calls this and
// handles process exit.
func Execute() error {
	defer func() { _ = db.Close() }()
	return NewRootCmd().Execute()
}

// applyDefaultFlags defines the database flags on a command unless they
// already exist: NewRootCmd may be called multiple times in tests while
// the subcommands are package-level, and pflag panics on redefinition.
func applyDefaultFlags(cmd *cobra.Command) {
	if cmd.Flags().Lookup("database.type") == nil {
		cmd.Flags().String("database.type", "sqlite", "History database type (sqlite, postgres, mysql)")
	}
	if cmd.Flags().Lookup("database.dsn") == nil {
		cmd.Flags().String("database.dsn", "./tally.db", "History database connection string (DSN)")
	}
}

// getConfigPathFromCli returns the --config path when the user set one,
// after checking the file actually exists.
func getConfigPathFromCli(cmd *cobra.Command) (*string, error) {
	if !cmd.Flags().Changed("config") {
		return nil, nil
	}
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("could not read --config flag: %w", err)
	}
	if path == "" {
		return nil, nil
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file specified via --config flag not found or is not accessible: %w", err)
	}
	return &path, nil
}

// setupDefaultServices loads the configuration and initializes i18n, the
// calculator settings and the history store. A broken history database is
// not fatal: the calculator works, it just does not record.
func setupDefaultServices(cmd *cobra.Command, _ []string) error {
	configPath, err := getConfigPathFromCli(cmd)
	if err != nil {
		return err
	}

	defaults := map[string]any{
		"language":      "en",
		"database.type": "sqlite",
		"database.dsn":  "./tally.db",
	}
	appConfig, err = config.LoadConfig[config.Config](cmd, defaults, configPath)
	if err != nil {
		return err
	}

	i18n.Init(appConfig.Language)

	appSettings, err = appConfig.Calculator.Settings()
	if err != nil {
		return err
	}

	if err := db.InitDB(appConfig.Database.Type, appConfig.Database.Dsn); err != nil {
		logging.Warnf("%s", i18n.T("cli.history_disabled", err))
	}
	return nil
}

// NewRootCmd creates and configures a new root cobra command. It is a
// constructor so tests can build fresh, isolated instances.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tally",
		Short: "Tally is a keypad calculator for the terminal.",
		Long: `Tally puts the familiar enter-a-number keypad dialog in the
terminal: digits, decimal point, sign toggle and the four basic operators,
with exact decimal arithmetic, configurable precision and rounding, locale
formatting, and a history of confirmed calculations.

Running without a subcommand opens the interactive calculator; the
confirmed value is printed to stdout.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if showVersionFlag {
				fmt.Println(buildvars.Composite())
				os.Exit(0)
			}
			if verbose {
				logging.SetDebug(true)
			}
			return setupDefaultServices(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if !term.IsTerminal(int(os.Stdin.Fd())) {
				return fmt.Errorf("%s", i18n.T("cli.not_a_terminal"))
			}

			var seed *apd.Decimal
			if seedFlag != "" {
				v, _, err := apd.NewFromString(seedFlag)
				if err != nil {
					return fmt.Errorf("invalid --value %q: %w", seedFlag, err)
				}
				seed = v
			}

			value, confirmed, err := tui.Run(appSettings, seed)
			if err != nil {
				return err
			}
			if confirmed {
				fmt.Println(value.Text('f'))
			}
			return nil
		},
	}

	cmd.Version = buildvars.Composite()

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output (debug logging)")
	cmd.PersistentFlags().BoolVarP(&showVersionFlag, "version", "V", false, "Print version and exit")
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file")
	cmd.PersistentFlags().String("language", "en", `UI language ("en", "de")`)
	cmd.Flags().StringVar(&seedFlag, "value", "", "Initial value to pre-fill the calculator with")
	applyDefaultFlags(cmd)

	applyDefaultFlags(evalCmd)
	applyDefaultFlags(historyCmd)
	if historyExportCmd.Flags().Lookup("output") == nil {
		historyExportCmd.Flags().StringP("output", "o", "tally-history.json.zst", "Export destination file")
	}
	if !historyCmd.HasSubCommands() {
		historyCmd.AddCommand(historyClearCmd, historyExportCmd)
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version",
		// The root PersistentPreRunE would try to load config and the
		// database; version should work in any environment.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(*cobra.Command, []string) {
			fmt.Println(buildvars.Composite())
		},
	}

	cmd.AddCommand(evalCmd, historyCmd, versionCmd)
	return cmd
}

// feedNumber types one numeric token into the session, character by
// character, exactly as keypad input would. A leading '-' becomes a sign
// toggle after the digits are entered.
func feedNumber(session *calc.Session, token string) error {
	negative := strings.HasPrefix(token, "-")
	digits := strings.TrimPrefix(token, "-")
	if digits == "" {
		return fmt.Errorf("%s", i18n.T("cli.eval.bad_token", token))
	}
	for _, c := range digits {
		switch {
		case c >= '0' && c <= '9':
			session.Digit(int(c - '0'))
		case c == '.' || c == ',':
			session.Decimal()
		default:
			return fmt.Errorf("%s", i18n.T("cli.eval.bad_token", token))
		}
	}
	if negative {
		session.ToggleSign()
	}
	return nil
}

// parseOperator maps an eval token onto an operator key, OpNone for
// tokens that are not operators.
func parseOperator(token string) calc.Operator {
	switch token {
	case "+":
		return calc.OpAdd
	case "-":
		return calc.OpSub
	case "*", "x":
		return calc.OpMul
	case "/", ":":
		return calc.OpDiv
	}
	return calc.OpNone
}
