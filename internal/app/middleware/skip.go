package middleware

import "net/http"

// Skip applies mw to every request except those whose path is exactly one of
// paths. Long-lived endpoints such as websockets use it to bypass per-request
// deadlines.
func Skip(mw func(http.Handler) http.Handler, paths ...string) func(http.Handler) http.Handler {
	skipped := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		skipped[p] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		wrapped := mw(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := skipped[r.URL.Path]; ok {
				next.ServeHTTP(w, r)
				return
			}
			wrapped.ServeHTTP(w, r)
		})
	}
}
