package views

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

const tailwindCDN = "https://cdn.tailwindcss.com"

// Page wraps body in the HTML document shell. titleKey is the catalog key of
// the document title.
func Page(titleKey string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		pc := PageContextFrom(ctx)
		appName := T(pc.Loc, "app.name")

		h := newHTMLWriter(ctx, w)
		h.raw(`<!DOCTYPE html><html`)
		h.attr("lang", pc.Lang)
		h.raw(`><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>`)
		h.text(T(pc.Loc, titleKey) + " · " + appName)
		h.raw(`</title><script`)
		h.attr("src", tailwindCDN)
		h.raw(`></script></head>`)
		h.raw(`<body class="bg-gray-100 dark:bg-gray-900 min-h-screen">`)
		h.raw(`<nav class="bg-white dark:bg-gray-800 shadow"><div class="container mx-auto px-4 py-3 flex items-center gap-6">`)
		h.raw(`<span class="font-bold text-gray-900 dark:text-white">`)
		h.text(appName)
		h.raw(`</span><a`)
		h.attr("href", pc.LinkPrefix+"/users")
		h.raw(` class="text-gray-600 hover:text-blue-600 dark:text-gray-300">`)
		h.text(T(pc.Loc, "nav.users"))
		h.raw(`</a></div></nav><main class="container mx-auto p-6">`)
		h.component(body)
		h.raw(`</main></body></html>`)
		return h.err
	})
}

// NotFound is the body of the 404 page.
func NotFound() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		pc := PageContextFrom(ctx)

		h := newHTMLWriter(ctx, w)
		h.raw(`<div class="text-center py-16" data-view="not-found">`)
		h.raw(`<h1 class="text-6xl font-bold text-gray-300 dark:text-gray-600">404</h1>`)
		h.raw(`<p class="mt-4 text-xl text-gray-900 dark:text-white">`)
		h.text(T(pc.Loc, "errors.not_found.title"))
		h.raw(`</p><p class="mt-2 text-gray-600 dark:text-gray-400">`)
		h.text(T(pc.Loc, "errors.not_found.body"))
		h.raw(`</p><a`)
		h.attr("href", pc.LinkPrefix+"/users")
		h.raw(` class="inline-block mt-6 text-blue-600 hover:text-blue-700">`)
		h.text(T(pc.Loc, "errors.not_found.back"))
		h.raw(`</a></div>`)
		return h.err
	})
}

// NotFoundPage is NotFound inside the page shell.
func NotFoundPage() templ.Component {
	return Page("errors.not_found.title", NotFound())
}

// RedirectPage is a static stand-in for an HTTP redirect to target, prefixed
// with the context's link prefix. Static hosts cannot answer with a 302.
func RedirectPage(target string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		pc := PageContextFrom(ctx)
		href := pc.LinkPrefix + target

		h := newHTMLWriter(ctx, w)
		h.raw(`<!DOCTYPE html><html`)
		h.attr("lang", pc.Lang)
		h.raw(`><head><meta charset="utf-8"><meta http-equiv="refresh"`)
		h.attr("content", "0; url="+href)
		h.raw(`><link rel="canonical"`)
		h.attr("href", href)
		h.raw(`><title>`)
		h.text(T(pc.Loc, "app.name"))
		h.raw(`</title></head><body><a`)
		h.attr("href", href)
		h.raw(`>`)
		h.text(T(pc.Loc, "nav.users"))
		h.raw(`</a></body></html>`)
		return h.err
	})
}
