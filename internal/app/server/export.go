package server

import (
	"context"

	"github.com/xferant/panel/internal/app/render"
	"github.com/xferant/panel/internal/i18n"
	"github.com/xferant/panel/internal/views"
)

// LocaleVariants returns one export tree per locale under /<locale>/, plus the
// base locale at the export root.
func LocaleVariants(b *i18n.Bundle) []render.Variant {
	base := b.Base()
	variants := []render.Variant{{
		Dir:      "",
		Decorate: decorate(b, base.String(), ""),
	}}
	for _, tag := range b.Tags() {
		locale := tag.String()
		variants = append(variants, render.Variant{
			Dir:      locale,
			Decorate: decorate(b, locale, "/"+locale),
		})
	}
	return variants
}

func decorate(b *i18n.Bundle, locale, prefix string) func(context.Context) context.Context {
	tag, _ := b.Parse(locale)
	return func(ctx context.Context) context.Context {
		return views.WithPageContext(ctx, views.PageContext{
			Lang:       locale,
			Loc:        b.Printer(tag),
			LinkPrefix: prefix,
		})
	}
}
