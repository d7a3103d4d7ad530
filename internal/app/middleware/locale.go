package middleware

import (
	"net/http"

	"github.com/xferant/panel/internal/i18n"
	"github.com/xferant/panel/internal/views"
)

// Locale resolves the request language against the store's active bundle and
// attaches the matching printer to the request context.
func Locale(store *i18n.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			bundle := store.Bundle()
			tag, persist := i18n.ResolveTag(r, bundle)
			if persist {
				i18n.SetLanguageCookie(w, tag)
			}
			w.Header().Set("Content-Language", tag.String())
			w.Header().Add("Vary", "Accept-Language, Cookie")

			ctx := views.WithPageContext(r.Context(), views.PageContext{
				Lang: tag.String(),
				Loc:  bundle.Printer(tag),
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
