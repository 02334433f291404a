// Copyright (c) 2026 ToeiRei
// Tally - keypad calculator for the terminal
// This source code is licensed under the MIT license found in the LICENSE file.

// Package i18n provides internationalization support for Tally. It uses the
// go-i18n library to load translation files embedded into the binary, so
// the calculator's labels and error messages can be displayed in multiple
// languages. The locale files also carry each locale's default number
// formatting characters, which the calculator engine consumes when its
// separators are left at the locale-default sentinel.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// localeFS embeds the YAML translation files from the 'locales' directory
// into the application binary.
//
//go:embed locales/*.yaml
var localeFS embed.FS

// bundle stores all the loaded translation messages from the locale files.
var bundle *i18n.Bundle

// localizer translates messages into the active language.
var localizer *i18n.Localizer

// activeLang is the language tag passed to the last Init call.
var activeLang string

// Init initializes the i18n bundle and sets up the localizer for a specific
// language. It parses all embedded YAML files from the 'locales' directory.
func Init(lang string) {
	bundle = i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)

	files, _ := fs.ReadDir(localeFS, "locales")
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		data, _ := localeFS.ReadFile("locales/" + f.Name())
		bundle.ParseMessageFileBytes(data, f.Name())
	}

	activeLang = lang
	localizer = i18n.NewLocalizer(bundle, lang)
}

// GetLang returns the active language tag ("en" until Init is called).
func GetLang() string {
	if activeLang == "" {
		return "en"
	}
	return activeLang
}

// SetLang changes the active language of the localizer.
func SetLang(lang string) {
	Init(lang)
}

// T translates a message by its ID. Extra arguments are applied with
// Sprintf formatting against the localized template. If the i18n system has
// not been initialized it defaults to English, and an unknown ID is
// returned as-is so a missing translation degrades visibly but harmlessly.
func T(messageID string, args ...interface{}) string {
	if localizer == nil {
		Init("en")
	}
	msg, err := localizer.Localize(&i18n.LocalizeConfig{MessageID: messageID})
	if err != nil {
		return messageID
	}
	if len(args) > 0 {
		return fmt.Sprintf(msg, args...)
	}
	return msg
}

// GetAvailableLocales lists the embedded locales as a map of language tag
// to self-described display name (the "language.name" message of each
// file). A file without a display name falls back to its tag.
func GetAvailableLocales() map[string]string {
	locales := map[string]string{}
	files, _ := fs.ReadDir(localeFS, "locales")
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		tag := strings.TrimSuffix(f.Name(), ".yaml")
		name := tag
		if data, err := localeFS.ReadFile("locales/" + f.Name()); err == nil {
			var msgs map[string]string
			if yaml.Unmarshal(data, &msgs) == nil {
				if n, ok := msgs["language.name"]; ok && n != "" {
					name = n
				}
			}
		}
		locales[tag] = name
	}
	return locales
}

// DecimalSeparator returns the active locale's default decimal separator,
// falling back to '.' when the locale does not declare one.
func DecimalSeparator() rune {
	return separatorMessage("number.decimal_separator", '.')
}

// GroupSeparator returns the active locale's default group separator,
// falling back to ',' when the locale does not declare one.
func GroupSeparator() rune {
	return separatorMessage("number.group_separator", ',')
}

func separatorMessage(id string, fallback rune) rune {
	s := T(id)
	if s == id || s == "" {
		return fallback
	}
	return []rune(s)[0]
}
