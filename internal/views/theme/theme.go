package theme

import (
	"sort"

	apptheme "pureui/internal/theme"
)

// Option represents a selectable theme exposed to the UI.
type Option struct {
	Value       string
	Label       string
	Description string
}

// ShellTheme contains resolved styling primitives for the application shell.
type ShellTheme struct {
	Key             apptheme.Theme
	BodyClass       string
	SurfaceClass    string
	BorderClass     string
	AccentTextClass string
	MutedTextClass  string
}

var catalogue = map[apptheme.Theme]ShellTheme{
	apptheme.Light: {
		Key:             apptheme.Light,
		BodyClass:       "min-h-screen bg-stone-50 text-stone-900",
		SurfaceClass:    "bg-white",
		BorderClass:     "border border-stone-200",
		AccentTextClass: "text-indigo-600",
		MutedTextClass:  "text-stone-500",
	},
	apptheme.Dark: {
		Key:             apptheme.Dark,
		BodyClass:       "min-h-screen bg-slate-950 text-slate-100",
		SurfaceClass:    "bg-slate-900",
		BorderClass:     "border border-slate-800",
		AccentTextClass: "text-cyan-300",
		MutedTextClass:  "text-slate-400",
	},
	apptheme.System: {
		Key:             apptheme.System,
		BodyClass:       "min-h-screen bg-stone-50 text-stone-900 dark:bg-slate-950 dark:text-slate-100",
		SurfaceClass:    "bg-white dark:bg-slate-900",
		BorderClass:     "border border-stone-200 dark:border-slate-800",
		AccentTextClass: "text-indigo-600 dark:text-cyan-300",
		MutedTextClass:  "text-stone-500 dark:text-slate-400",
	},
}

var options = []Option{
	{Value: string(apptheme.Light), Label: "Light", Description: "Warm ivory canvas with charcoal typography."},
	{Value: string(apptheme.Dark), Label: "Dark", Description: "Low-glare slate with cyan highlights."},
	{Value: string(apptheme.System), Label: "System", Description: "Follows the operating system preference."},
}

// Resolve returns the registered styling for t, falling back to the default
// theme for unknown values.
func Resolve(t apptheme.Theme) ShellTheme {
	if value, ok := catalogue[t]; ok {
		return value
	}
	return catalogue[apptheme.DefaultTheme]
}

// Options exposes the available theme selections sorted by label.
func Options() []Option {
	sorted := make([]Option, len(options))
	copy(sorted, options)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Label < sorted[j].Label
	})
	return sorted
}
