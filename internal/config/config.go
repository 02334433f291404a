// Copyright (c) 2026 ToeiRei
// Tally - keypad calculator for the terminal
// This source code is licensed under the MIT license found in the LICENSE file.

// Package config loads and writes Tally's configuration: language, history
// database and calculator policy. Sources are merged in the usual viper
// order: defaults, tally.yaml from the standard locations, TALLY_*
// environment variables, then command-line flags.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/cockroachdb/apd/v3"
	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/toeirei/tally/internal/calc"
)

// Config is Tally's on-disk and flag-driven configuration.
type Config struct {
	Language string `mapstructure:"language" yaml:"language"`

	Database struct {
		Type string `mapstructure:"type" yaml:"type"`
		Dsn  string `mapstructure:"dsn" yaml:"dsn"`
	} `mapstructure:"database" yaml:"database"`

	Calculator Calculator `mapstructure:"calculator" yaml:"calculator"`
}

// Calculator mirrors calc.Settings in config-file form. Zero values keep
// the calc defaults; a negative digit limit means unlimited.
type Calculator struct {
	MaxIntDigits           int    `mapstructure:"max_int_digits" yaml:"max_int_digits"`
	MaxFracDigits          int    `mapstructure:"max_frac_digits" yaml:"max_frac_digits"`
	MaxValue               string `mapstructure:"max_value" yaml:"max_value"`
	RoundingMode           string `mapstructure:"rounding_mode" yaml:"rounding_mode"`
	KeepTrailingZeroes     bool   `mapstructure:"keep_trailing_zeroes" yaml:"keep_trailing_zeroes"`
	DecimalSeparator       string `mapstructure:"decimal_separator" yaml:"decimal_separator"`
	GroupSeparator         string `mapstructure:"group_separator" yaml:"group_separator"`
	GroupSize              *int   `mapstructure:"group_size" yaml:"group_size"`
	FixedSign              int    `mapstructure:"fixed_sign" yaml:"fixed_sign"`
	ClearDisplayOnOperator bool   `mapstructure:"clear_display_on_operator" yaml:"clear_display_on_operator"`
	HideZeroWhenEmpty      bool   `mapstructure:"hide_zero_when_empty" yaml:"hide_zero_when_empty"`
}

// Settings converts the config-file calculator section into validated
// calc.Settings. Empty or zero fields keep the calc defaults; "none" is
// accepted for max_value to remove the bound.
func (c Calculator) Settings() (*calc.Settings, error) {
	st := calc.NewSettings()

	if c.MaxIntDigits != 0 || c.MaxFracDigits != 0 {
		intDigits := digitLimit(c.MaxIntDigits, 10)
		fracDigits := digitLimit(c.MaxFracDigits, 8)
		if err := st.SetMaxDigits(intDigits, fracDigits); err != nil {
			return nil, err
		}
	}

	switch c.MaxValue {
	case "":
	case "none":
		st.SetMaxValue(nil)
	default:
		max, _, err := apd.NewFromString(c.MaxValue)
		if err != nil {
			return nil, fmt.Errorf("max_value %q: %w", c.MaxValue, err)
		}
		st.SetMaxValue(max)
	}

	if c.RoundingMode != "" {
		mode, err := calc.ParseRoundingMode(c.RoundingMode)
		if err != nil {
			return nil, err
		}
		if err := st.SetRoundingMode(mode); err != nil {
			return nil, err
		}
	}

	st.SetStripTrailingZeroes(!c.KeepTrailingZeroes)

	if c.DecimalSeparator != "" || c.GroupSeparator != "" {
		if err := st.SetSeparators(firstRune(c.DecimalSeparator), firstRune(c.GroupSeparator)); err != nil {
			return nil, err
		}
	}

	if c.GroupSize != nil {
		if err := st.SetGroupSize(*c.GroupSize); err != nil {
			return nil, err
		}
	}

	if c.FixedSign != 0 {
		if err := st.SetFixedSign(c.FixedSign); err != nil {
			return nil, err
		}
	}

	st.SetClearDisplayOnOperator(c.ClearDisplayOnOperator)
	st.SetShowZeroWhenEmpty(!c.HideZeroWhenEmpty)
	return st, nil
}

// digitLimit translates a config digit bound: 0 keeps the given default
// and a negative value disables the limit.
func digitLimit(n, def int) int {
	switch {
	case n < 0:
		return calc.MaxDigitsUnlimited
	case n == 0:
		return def
	}
	return n
}

// firstRune returns the first rune of s, or the locale-default sentinel
// for an empty string.
func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return calc.SeparatorLocaleDefault
}

// getConfigPath returns the full path for the configuration file.
func getConfigPath(system bool) (string, error) {
	var configDir string
	var err error

	if system {
		switch runtime.GOOS {
		case "windows":
			configDir = filepath.Join(os.Getenv("ProgramData"), "Tally")
		default: // Linux, macOS, etc.
			configDir = "/etc/tally"
		}
	} else {
		configDir, err = os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("could not get user config directory: %w", err)
		}
		configDir = filepath.Join(configDir, "tally")
	}

	return filepath.Join(configDir, "tally.yaml"), nil
}

// LoadConfig merges defaults, the tally.yaml search path (or an explicit
// --config file), TALLY_* environment variables and the command's flags
// into a T.
func LoadConfig[T any](cmd *cobra.Command, defaults map[string]any, additionalConfigFilePath *string) (T, error) {
	var c T
	v := viper.New()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetConfigName("tally")
	v.SetConfigType("yaml")

	// An explicit --config path has the highest precedence for file-based
	// configuration.
	if additionalConfigFilePath != nil {
		v.SetConfigFile(*additionalConfigFilePath)
	}

	if userConfigPath, err := getConfigPath(false); err == nil {
		v.AddConfigPath(filepath.Dir(userConfigPath))
	}
	if systemConfigPath, err := getConfigPath(true); err == nil {
		v.AddConfigPath(filepath.Dir(systemConfigPath))
	}
	v.AddConfigPath(".") // Look for tally.yaml in current dir

	if err := v.ReadInConfig(); err != nil {
		// It's okay if the file is not found, but other errors are fatal.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return c, err
		}
	}

	v.AutomaticEnv()
	v.AllowEmptyEnv(true)
	v.SetEnvPrefix("tally")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return c, err
	}

	if err := v.Unmarshal(&c); err != nil {
		return c, err
	}

	return c, nil
}

// WriteConfigFile persists the configuration as tally.yaml in the user or
// system config directory.
func WriteConfigFile[T any](c *T, system bool) error {
	path, err := getConfigPath(system)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	configDir := filepath.Dir(path)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("could not create config directory %s: %w", configDir, err)
	}

	return os.WriteFile(path, data, 0600)
}
