package layout

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"pureui/internal/classes"
	apptheme "pureui/internal/theme"
	"pureui/internal/toast"
	"pureui/internal/views/components"
	viewtheme "pureui/internal/views/theme"
)

// Shell carries the per-render state of the document frame.
type Shell struct {
	Title string
	// Theme is the value of the root data-theme attribute.
	Theme string
	// Resolved is the concrete light or dark theme Theme stands for. It
	// decides the Tailwind dark class when Theme is system.
	Resolved string
	Toasts   []toast.Toast
}

const clientScript = `<script>
document.body.addEventListener("themeChanged", function (evt) {
  var root = document.documentElement;
  root.setAttribute("data-theme", evt.detail.theme);
  root.classList.toggle("dark", evt.detail.resolved === "dark");
});
document.body.addEventListener("showToast", function (evt) {
  var region = document.getElementById("toast-region");
  var list = Array.isArray(evt.detail) ? evt.detail : (evt.detail.value || []);
  list.forEach(function (t) {
    var el = document.createElement("div");
    el.id = "toast-" + t.id;
    el.setAttribute("role", "status");
    el.dataset.toastKind = t.kind;
    el.dataset.duration = t.durationMs;
    el.textContent = t.message;
    region.appendChild(el);
  });
  dismissToasts(region);
});
function dismissToasts(region) {
  region.querySelectorAll("[data-duration]:not([data-scheduled])").forEach(function (el) {
    el.dataset.scheduled = "1";
    setTimeout(function () {
      el.dataset.leaving = "1";
      setTimeout(function () { el.remove(); }, 150);
    }, parseInt(el.dataset.duration, 10));
  });
}
dismissToasts(document.getElementById("toast-region"));
</script>`

// Page renders the HTML document around content.
func Page(shell Shell, content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		key := apptheme.Theme(shell.Theme)
		if !key.Valid() {
			key = apptheme.DefaultTheme
		}
		styles := viewtheme.Resolve(key)
		title := shell.Title
		if title == "" {
			title = "pureui"
		}

		if _, err := fmt.Fprintf(w,
			`<!DOCTYPE html><html lang="en" %s="%s" class="%s"><head><meta charset="utf-8"/>`+
				`<meta name="viewport" content="width=device-width, initial-scale=1"/>`+
				`<title>%s</title><link rel="stylesheet" href="/assets/app.css"/>`+
				`<script src="https://cdn.tailwindcss.com"></script>`+
				`<script src="https://unpkg.com/htmx.org@2.0.4" defer></script></head><body class="%s">`,
			apptheme.AttributeName,
			templ.EscapeString(string(key)),
			templ.EscapeString(htmlClass(key, apptheme.Theme(shell.Resolved))),
			templ.EscapeString(title),
			templ.EscapeString(styles.BodyClass),
		); err != nil {
			return err
		}
		if err := components.ToastRegion(shell.Toasts).Render(ctx, w); err != nil {
			return err
		}
		if content != nil {
			if err := content.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, clientScript+`</body></html>`)
		return err
	})
}

func htmlClass(key, resolved apptheme.Theme) string {
	dark := key == apptheme.Dark || (key == apptheme.System && resolved == apptheme.Dark)
	return classes.Join("h-full", classes.If(dark, "dark"))
}
