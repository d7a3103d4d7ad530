package views

import (
	"context"

	"golang.org/x/text/message"

	"github.com/xferant/panel/internal/i18n"
)

// Localizer provides translated strings for components.
type Localizer interface {
	Sprintf(key message.Reference, args ...any) string
}

// PageContext carries per-request presentation settings through the render
// context.
type PageContext struct {
	Lang       string
	Loc        Localizer
	// LinkPrefix is prepended to internal links, e.g. "/en" for exported
	// locale trees.
	LinkPrefix string
}

type pageContextKey struct{}

// WithPageContext attaches page settings to ctx.
func WithPageContext(ctx context.Context, pc PageContext) context.Context {
	return context.WithValue(ctx, pageContextKey{}, pc)
}

// PageContextFrom returns the page settings in ctx. Missing values resolve to
// the base locale of the embedded catalogs.
func PageContextFrom(ctx context.Context) PageContext {
	pc, _ := ctx.Value(pageContextKey{}).(PageContext)
	if pc.Loc == nil || pc.Lang == "" {
		b := i18n.Default()
		if pc.Loc == nil {
			pc.Loc = b.Printer(b.Base())
		}
		if pc.Lang == "" {
			pc.Lang = b.Base().String()
		}
	}
	return pc
}

// T returns a translated string or the key if no localizer is available.
func T(loc Localizer, key message.Reference, args ...any) string {
	if loc == nil {
		if keyString, ok := key.(string); ok {
			return keyString
		}
		return ""
	}
	return loc.Sprintf(key, args...)
}
