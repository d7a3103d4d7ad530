package server

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xferant/panel/internal/app/render"
	"github.com/xferant/panel/internal/i18n"
)

func TestExportAllLocales(t *testing.T) {
	b := i18n.Default()
	out := t.TempDir()

	written, err := render.NewRenderer(render.ModeSSG, nil).Export(context.Background(), out, Pages(), LocaleVariants(b))
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if want := len(Pages()) * (len(b.Locales()) + 1); len(written) != want {
		t.Errorf("written = %d files, want %d", len(written), want)
	}

	tests := []struct {
		file string
		want []string
	}{
		{"users/index.html", []string{`<html lang="ru">`, "Управление пользователями", `href="/users"`}},
		{"en/users/index.html", []string{`<html lang="en">`, "User management", `href="/en/users"`}},
		{"ru/users/index.html", []string{`<html lang="ru">`, `href="/ru/users"`}},
		{"en/404.html", []string{`data-view="not-found"`, "Page not found"}},
		{"index.html", []string{`http-equiv="refresh"`, `content="0; url=/users"`}},
		{"en/index.html", []string{`<html lang="en">`, `content="0; url=/en/users"`}},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			data, err := os.ReadFile(filepath.Join(out, filepath.FromSlash(tt.file)))
			if err != nil {
				t.Fatalf("read: %v", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(string(data), want) {
					t.Errorf("%s missing %q", tt.file, want)
				}
			}
		})
	}
}
