package middleware

import (
	"crypto/subtle"
	"fmt"
	"net/http"
	"strings"
)

// BasicAuth protects requests whose path starts with one of paths (all paths
// when empty). With no users configured it passes every request through.
func BasicAuth(realm string, users map[string]string, paths []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if len(users) == 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !shouldProtect(paths, r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			user, pass, ok := r.BasicAuth()
			if !ok {
				unauthorized(w, realm)
				return
			}

			expected, exists := users[user]
			if !exists || subtle.ConstantTimeCompare([]byte(pass), []byte(expected)) != 1 {
				unauthorized(w, realm)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func shouldProtect(paths []string, path string) bool {
	if len(paths) == 0 {
		return true
	}
	for _, prefix := range paths {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

var realmEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

func unauthorized(w http.ResponseWriter, realm string) {
	w.Header().Set("WWW-Authenticate", fmt.Sprintf(`Basic realm="%s", charset="UTF-8"`, realmEscaper.Replace(realm)))
	http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
}
