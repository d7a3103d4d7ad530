// Package middleware holds the panel's HTTP middleware.
package middleware

import (
	"bufio"
	"errors"
	"net"
	"net/http"
)

// SecurityHeaders are set on every response unless configuration overrides
// them.
var SecurityHeaders = map[string]string{
	"X-Content-Type-Options": "nosniff",
	"X-Frame-Options":        "DENY",
	"Referrer-Policy":        "same-origin",
}

// Headers sets the security headers merged with add, and strips remove from
// the final response, including headers set by downstream handlers.
func Headers(add map[string]string, remove []string) func(http.Handler) http.Handler {
	set := make(map[string]string, len(SecurityHeaders)+len(add))
	for key, value := range SecurityHeaders {
		set[http.CanonicalHeaderKey(key)] = value
	}
	for key, value := range add {
		set[http.CanonicalHeaderKey(key)] = value
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for key, value := range set {
				w.Header().Set(key, value)
			}

			if len(remove) == 0 {
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(&stripWriter{ResponseWriter: w, remove: remove}, r)
		})
	}
}

type stripWriter struct {
	http.ResponseWriter
	remove      []string
	wroteHeader bool
}

func (w *stripWriter) WriteHeader(status int) {
	if !w.wroteHeader {
		w.wroteHeader = true
		for _, header := range w.remove {
			w.ResponseWriter.Header().Del(header)
		}
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w *stripWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

func (w *stripWriter) Flush() {
	if flusher, ok := w.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

func (w *stripWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hijacker, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("middleware: response writer does not support hijacking")
	}
	return hijacker.Hijack()
}

func (w *stripWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
