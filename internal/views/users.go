package views

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// UserListView renders the users management screen: a header with the "add
// user" action, a search toolbar and an empty content panel. The view takes
// no data; the controls carry no behavior yet.
func UserListView() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)
		h.raw(`<div class="space-y-6" data-view="users">`)
		h.component(usersHeader())
		h.component(usersToolbar())
		h.component(usersContent())
		h.raw(`</div>`)
		return h.err
	})
}

// UsersPage is UserListView inside the page shell.
func UsersPage() templ.Component {
	return Page("users.title", UserListView())
}

func usersHeader() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		loc := PageContextFrom(ctx).Loc

		h := newHTMLWriter(ctx, w)
		h.raw(`<div class="flex justify-between items-center" data-region="header"><div>`)
		h.raw(`<h1 class="text-2xl font-bold text-gray-900 dark:text-white" data-role="title">`)
		h.text(T(loc, "users.title"))
		h.raw(`</h1><p class="text-gray-600 dark:text-gray-400" data-role="subtitle">`)
		h.text(T(loc, "users.subtitle"))
		h.raw(`</p></div>`)
		h.raw(`<button type="button" class="bg-blue-600 hover:bg-blue-700 text-white px-4 py-2 rounded-lg flex items-center" data-role="add-user">`)
		h.component(Icon(IconPlus, 20, "mr-2"))
		h.text(T(loc, "users.add"))
		h.raw(`</button></div>`)
		return h.err
	})
}

func usersToolbar() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		loc := PageContextFrom(ctx).Loc

		h := newHTMLWriter(ctx, w)
		h.raw(`<div class="bg-white dark:bg-gray-800 rounded-lg shadow p-4" data-region="toolbar">`)
		h.raw(`<div class="flex flex-col sm:flex-row gap-4"><div class="relative flex-1">`)
		h.component(Icon(IconSearch, 20, "absolute left-3 top-1/2 transform -translate-y-1/2 text-gray-400"))
		h.raw(`<input type="text"`)
		h.attr("placeholder", T(loc, "users.search.placeholder"))
		h.raw(` class="w-full pl-10 pr-4 py-2 border border-gray-300 dark:border-gray-600 rounded-lg bg-white dark:bg-gray-700 text-gray-900 dark:text-white" data-role="search">`)
		h.raw(`</div>`)
		h.raw(`<button type="button" class="px-4 py-2 border border-gray-300 dark:border-gray-600 rounded-lg flex items-center" data-role="filters">`)
		h.component(Icon(IconFilter, 20, "mr-2"))
		h.text(T(loc, "users.filters"))
		h.raw(`</button></div></div>`)
		return h.err
	})
}

func usersContent() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		loc := PageContextFrom(ctx).Loc

		h := newHTMLWriter(ctx, w)
		h.raw(`<div class="bg-white dark:bg-gray-800 rounded-lg shadow overflow-hidden" data-region="content">`)
		h.raw(`<div class="p-6"><p class="text-center text-gray-500 dark:text-gray-400" data-role="empty">`)
		h.text(T(loc, "users.empty"))
		h.raw(`</p></div></div>`)
		return h.err
	})
}
