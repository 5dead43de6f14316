package pages

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"pureui/internal/classes"
	"pureui/internal/views/components"
	viewtheme "pureui/internal/views/theme"
)

// HomeData is everything the landing page shows.
type HomeData struct {
	Theme    string
	Resolved string
	Today    string
	Updated  string
}

// Home renders the landing page body.
func Home(data HomeData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		styles := viewtheme.Resolve(themeKey(data.Theme))
		card := classes.Merge("rounded-xl p-4", styles.SurfaceClass, styles.BorderClass, "p-6")

		if _, err := fmt.Fprintf(w,
			`<main class="mx-auto flex max-w-3xl flex-col gap-6 p-8"><header class="flex items-center justify-between">`+
				`<h1 class="%s">pureui</h1>`,
			templ.EscapeString(classes.Merge("text-2xl font-semibold", styles.AccentTextClass)),
		); err != nil {
			return err
		}
		if err := components.ThemeSwitcher(data.Theme, viewtheme.Options()).Render(ctx, w); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w,
			`</header><section class="%s" data-resolved-theme="%s"><p>Today is <time>%s</time>.</p>`,
			templ.EscapeString(card),
			templ.EscapeString(data.Resolved),
			templ.EscapeString(data.Today),
		); err != nil {
			return err
		}
		if data.Updated != "" {
			if _, err := fmt.Fprintf(w, `<p class="%s">Theme last changed %s.</p>`,
				templ.EscapeString(classes.Merge("text-sm", styles.MutedTextClass)),
				templ.EscapeString(data.Updated),
			); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `<button type="button" class="mt-4 rounded-md bg-indigo-600 px-3 py-1 text-sm text-white" hx-post="/api/toast" hx-vals='{"message":"Hello from pureui","kind":"success"}' hx-swap="none">Show toast</button></section></main>`)
		return err
	})
}
