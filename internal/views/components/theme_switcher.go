package components

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"pureui/internal/classes"
	viewtheme "pureui/internal/views/theme"
)

// ThemeSwitcher renders the theme form. With HTMX loaded it posts in the
// background; without it the form falls back to a normal submit.
func ThemeSwitcher(current string, options []viewtheme.Option) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<form id="theme-switcher" method="post" action="/preferences/theme" hx-post="/preferences/theme" hx-swap="none" class="flex items-center gap-2">`+
			`<label for="theme-select" class="text-sm font-medium">Theme</label>`+
			`<select id="theme-select" name="theme" class="rounded-md border px-2 py-1 text-sm" hx-trigger="change" hx-post="/preferences/theme" hx-swap="none">`); err != nil {
			return err
		}
		for _, opt := range options {
			selected := ""
			if opt.Value == current {
				selected = " selected"
			}
			if _, err := fmt.Fprintf(w, `<option value="%s" title="%s" class="%s"%s>%s</option>`,
				templ.EscapeString(opt.Value),
				templ.EscapeString(opt.Description),
				templ.EscapeString(optionClass(opt.Value == current)),
				selected,
				templ.EscapeString(opt.Label),
			); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</select><noscript><button type="submit" class="rounded-md px-3 py-1 text-sm">Apply</button></noscript></form>`)
		return err
	})
}

func optionClass(active bool) string {
	return classes.Merge("font-normal", classes.If(active, "font-semibold"))
}
