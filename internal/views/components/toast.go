package components

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"pureui/internal/classes"
	"pureui/internal/toast"
)

const toastBaseClass = "pointer-events-auto flex items-start gap-3 rounded-lg px-4 py-3 text-sm shadow-lg ring-1"

func toastKindClass(kind toast.Kind) string {
	switch kind {
	case toast.Success:
		return "bg-emerald-600 text-white ring-emerald-700"
	case toast.Warning:
		return "bg-amber-400 text-amber-950 ring-amber-500"
	case toast.Error:
		return "bg-rose-600 text-white ring-rose-700"
	default:
		return "bg-slate-800 text-white ring-slate-900"
	}
}

// ToastItem renders one toast. The client script removes it after
// data-duration milliseconds.
func ToastItem(t toast.Toast) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w,
			`<div id="toast-%s" role="status" class="%s" data-toast-kind="%s" data-duration="%d">%s</div>`,
			templ.EscapeString(t.ID),
			templ.EscapeString(classes.Merge(toastBaseClass, toastKindClass(t.Kind))),
			templ.EscapeString(string(t.Kind)),
			t.DurationMS,
			templ.EscapeString(t.Message),
		)
		return err
	})
}

// ToastRegion renders the live region new toasts are appended to, prefilled
// with any toasts carried over from the previous request.
func ToastRegion(toasts []toast.Toast) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<div id="toast-region" aria-live="polite" class="pointer-events-none fixed right-4 top-4 z-50 flex flex-col gap-2">`); err != nil {
			return err
		}
		for _, t := range toasts {
			if err := ToastItem(t).Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</div>`)
		return err
	})
}
