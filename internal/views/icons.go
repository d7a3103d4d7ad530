package views

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// Glyph identifiers for the icons used by the panel.
const (
	IconPlus   = "plus"
	IconSearch = "search"
	IconFilter = "filter"
)

// Lucide path data, 24x24 viewBox.
var iconPaths = map[string]string{
	IconPlus:   `<path d="M5 12h14"></path><path d="M12 5v14"></path>`,
	IconSearch: `<circle cx="11" cy="11" r="8"></circle><path d="m21 21-4.3-4.3"></path>`,
	IconFilter: `<polygon points="22 3 2 3 10 12.46 10 19 14 21 14 12.46 22 3"></polygon>`,
}

// Icon renders a stroke icon as inline SVG. Unknown names render nothing.
func Icon(name string, size int, class string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		paths, ok := iconPaths[name]
		if !ok {
			return nil
		}

		h := newHTMLWriter(ctx, w)
		h.raw(`<svg xmlns="http://www.w3.org/2000/svg"`)
		h.intAttr("width", size)
		h.intAttr("height", size)
		h.raw(` viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2" stroke-linecap="round" stroke-linejoin="round" aria-hidden="true"`)
		cls := "lucide lucide-" + name
		if class != "" {
			cls += " " + class
		}
		h.attr("class", cls)
		h.raw(">")
		h.raw(paths)
		h.raw("</svg>")
		return h.err
	})
}
