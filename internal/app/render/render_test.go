package render

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/a-h/templ"
)

type ctxKey struct{}

func staticComponent(body string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		prefix, _ := ctx.Value(ctxKey{}).(string)
		_, err := io.WriteString(w, prefix+body)
		return err
	})
}

func failingComponent() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		io.WriteString(w, "partial")
		return errors.New("boom")
	})
}

func TestParseRenderMode(t *testing.T) {
	tests := []struct {
		in      string
		want    RenderMode
		wantErr bool
	}{
		{"", ModeSSR, false},
		{"ssr", ModeSSR, false},
		{"SSG", ModeSSG, false},
		{"isr", ModeSSR, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRenderMode(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseRenderMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseRenderMode(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestRenderer_Page(t *testing.T) {
	r := NewRenderer(ModeSSR, nil)

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	rec := httptest.NewRecorder()
	r.Page(rec, req, http.StatusOK, staticComponent("<p>ok</p>"))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("Content-Type = %q", ct)
	}
	if rec.Body.String() != "<p>ok</p>" {
		t.Errorf("body = %q", rec.Body.String())
	}
}

func TestRenderer_PageRenderError(t *testing.T) {
	r := NewRenderer(ModeSSR, nil)

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	rec := httptest.NewRecorder()
	r.Page(rec, req, http.StatusOK, failingComponent())

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "partial") {
		t.Errorf("partial output leaked into response: %q", rec.Body.String())
	}
}

func TestRenderer_Export(t *testing.T) {
	r := NewRenderer(ModeSSG, nil)
	out := t.TempDir()

	pages := []StaticPage{
		{Path: "/", Component: staticComponent("home")},
		{Path: "/users", Component: staticComponent("users")},
		{Path: "/404.html", Component: staticComponent("missing")},
	}
	variants := []Variant{
		{Dir: ""},
		{Dir: "en", Decorate: func(ctx context.Context) context.Context {
			return context.WithValue(ctx, ctxKey{}, "en:")
		}},
	}

	written, err := r.Export(context.Background(), out, pages, variants)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if len(written) != 6 {
		t.Errorf("written = %d files, want 6", len(written))
	}

	files := map[string]string{
		"index.html":          "home",
		"users/index.html":    "users",
		"404.html":            "missing",
		"en/index.html":       "en:home",
		"en/users/index.html": "en:users",
		"en/404.html":         "en:missing",
	}
	for name, want := range files {
		data, err := os.ReadFile(filepath.Join(out, filepath.FromSlash(name)))
		if err != nil {
			t.Errorf("read %s: %v", name, err)
			continue
		}
		if string(data) != want {
			t.Errorf("%s = %q, want %q", name, data, want)
		}
	}
}

func TestRenderer_ExportError(t *testing.T) {
	r := NewRenderer(ModeSSG, nil)

	_, err := r.Export(context.Background(), t.TempDir(), []StaticPage{
		{Path: "/users", Component: failingComponent()},
	}, []Variant{{}})
	if err == nil {
		t.Fatal("Export() error = nil, want render error")
	}
}

func TestRenderer_ExportCancelled(t *testing.T) {
	r := NewRenderer(ModeSSG, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Export(ctx, t.TempDir(), []StaticPage{
		{Path: "/users", Component: staticComponent("users")},
	}, []Variant{{}})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Export() error = %v, want context.Canceled", err)
	}
}
