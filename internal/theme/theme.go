// Package theme owns the application's active colour theme.
//
// A Controller holds the single process-wide Theme. It reads the persisted
// preference lazily, writes changes through a Store, mirrors them onto the
// presentation layer through an Applier and notifies subscribers.
package theme

import (
	"errors"
	"fmt"
	"strings"
)

// Theme is the active visual mode.
type Theme string

const (
	Light  Theme = "light"
	Dark   Theme = "dark"
	System Theme = "system"
)

// DefaultTheme is used when no preference has been persisted.
const DefaultTheme = System

// All lists the supported themes in display order.
var All = []Theme{Light, Dark, System}

// ErrInvalidTheme is matched by every InvalidThemeError via errors.Is.
var ErrInvalidTheme = errors.New("invalid theme")

// InvalidThemeError reports a value outside the supported set.
type InvalidThemeError struct {
	Value string
}

func (e *InvalidThemeError) Error() string {
	return fmt.Sprintf("invalid theme %q: must be one of light, dark, system", e.Value)
}

func (e *InvalidThemeError) Is(target error) bool { return target == ErrInvalidTheme }

// Valid reports whether t is one of the supported themes.
func (t Theme) Valid() bool {
	switch t {
	case Light, Dark, System:
		return true
	}
	return false
}

func (t Theme) String() string { return string(t) }

// Parse normalizes raw and validates it.
func Parse(raw string) (Theme, error) {
	t := Theme(strings.ToLower(strings.TrimSpace(raw)))
	if !t.Valid() {
		return "", &InvalidThemeError{Value: raw}
	}
	return t, nil
}

// ResolveSystem maps System onto a concrete theme using the
// Sec-CH-Prefers-Color-Scheme client hint. Concrete themes pass through.
// Without a usable hint System resolves to Dark.
func ResolveSystem(t Theme, hint string) Theme {
	if t != System {
		return t
	}
	switch strings.Trim(strings.ToLower(strings.TrimSpace(hint)), `"`) {
	case "light":
		return Light
	default:
		return Dark
	}
}
