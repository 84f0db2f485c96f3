// Copyright 2016-2025 Fraunhofer AISEC
//
// SPDX-License-Identifier: Apache-2.0
//
//                                 /$$$$$$  /$$                                     /$$
//                               /$$__  $$|__/                                    | $$
//   /$$$$$$$  /$$$$$$  /$$$$$$$ | $$  \__/ /$$  /$$$$$$  /$$$$$$/$$$$   /$$$$$$  /$$$$$$    /$$$$$$
//  /$$_____/ /$$__  $$| $$__  $$| $$$$    | $$ /$$__  $$| $$_  $$_  $$ |____  $$|_  $$_/   /$$__  $$
// | $$      | $$  \ $$| $$  \ $$| $$_/    | $$| $$  \__/| $$ \ $$ \ $$  /$$$$$$$  | $$    | $$$$$$$$
// | $$      | $$  | $$| $$  | $$| $$      | $$| $$      | $$ | $$ | $$ /$$__  $$  | $$ /$$| $$_____/
// |  $$$$$$$|  $$$$$$/| $$  | $$| $$      | $$| $$      | $$ | $$ | $$|  $$$$$$$  |  $$$$/|  $$$$$$$
// \_______/ \______/ |__/  |__/|__/      |__/|__/      |__/ |__/ |__/ \_______/   \___/   \_______/
//
// This file is part of Confirmate Core.

package tmtlog

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
)

// Level is a log level that extends slog.Level with a TRACE level below DEBUG. It implements
// slog.Leveler plus the text/JSON marshaling interfaces, so it can be used directly as a
// configuration field.
type Level slog.Level

// Log levels for Confirmate.
// We re-export standard slog levels and add a custom TRACE level for very detailed logging.
const (
	// LevelTrace is a custom log level below DEBUG for very detailed logging (e.g., SQL queries).
	// This is set to -8 to be below slog.LevelDebug (-4).
	LevelTrace Level = Level(slog.LevelDebug) - 4 // -8

	// Standard slog levels (re-exported for convenience)
	LevelDebug Level = Level(slog.LevelDebug) // -4
	LevelInfo  Level = Level(slog.LevelInfo)  // 0
	LevelWarn  Level = Level(slog.LevelWarn)  // 4
	LevelError Level = Level(slog.LevelError) // 8
)

// Level implements slog.Leveler.
func (l Level) Level() slog.Level {
	return slog.Level(l)
}

// String renders the level the same way slog.Level does, with an extra TRACE bucket below DEBUG.
func (l Level) String() string {
	str := func(base string, val Level) string {
		if val == 0 {
			return base
		}
		return fmt.Sprintf("%s%+d", base, val)
	}

	switch {
	case l < Level(LevelDebug):
		return str("TRACE", l-Level(LevelTrace))
	case l < Level(LevelInfo):
		return str("DEBUG", l-Level(LevelDebug))
	case l < Level(LevelWarn):
		return str("INFO", l-Level(LevelInfo))
	case l < Level(LevelError):
		return str("WARN", l-Level(LevelWarn))
	default:
		return str("ERROR", l-Level(LevelError))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler, parsing names (TRACE, DEBUG, INFO, WARN,
// WARNING, ERROR) optionally followed by a +N/-N offset, e.g. "INFO+2" or "WARN-1".
func (l *Level) UnmarshalText(data []byte) error {
	return l.parse(string(data))
}

func (l *Level) parse(s string) error {
	name := s
	var offset int

	if i := strings.IndexAny(s, "+-"); i >= 0 {
		name = s[:i]
		off, err := strconv.Atoi(s[i:])
		if err != nil {
			return fmt.Errorf("invalid level offset %q: %w", s[i:], err)
		}
		offset = off
	}

	switch strings.ToUpper(name) {
	case "TRACE":
		*l = Level(LevelTrace) + Level(offset)
	case "DEBUG":
		*l = Level(LevelDebug) + Level(offset)
	case "INFO":
		*l = Level(LevelInfo) + Level(offset)
	case "WARN", "WARNING":
		*l = Level(LevelWarn) + Level(offset)
	case "ERROR":
		*l = Level(LevelError) + Level(offset)
	default:
		return &InvalidLevelError{Level: s}
	}

	return nil
}

// ParseLevel converts a string to a slog.Level, supporting our custom TRACE level.
// Valid values: TRACE, DEBUG, INFO, WARN, WARNING, ERROR (optionally with a +N/-N offset).
// Returns an error if the level string is not recognized.
func ParseLevel(levelStr string) (slog.Level, error) {
	var l Level
	if err := l.parse(levelStr); err != nil {
		return slog.Level(LevelInfo), err
	}
	return slog.Level(l), nil
}

// InvalidLevelError is returned when ParseLevel or Level.UnmarshalText receives an invalid level
// string.
type InvalidLevelError struct {
	Level string
}

func (e *InvalidLevelError) Error() string {
	return "unknown log level: " + e.Level + " (valid: TRACE, DEBUG, INFO, WARN, ERROR)"
}
