package render

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/a-h/templ"
)

type RenderMode int

const (
	ModeSSR RenderMode = iota
	ModeSSG
)

func (m RenderMode) String() string {
	switch m {
	case ModeSSG:
		return "ssg"
	default:
		return "ssr"
	}
}

func ParseRenderMode(s string) (RenderMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "ssr":
		return ModeSSR, nil
	case "ssg":
		return ModeSSG, nil
	default:
		return ModeSSR, fmt.Errorf("unknown render mode %q", s)
	}
}

// StaticPage is a page written by Export. Path is the URL path; paths ending
// in ".html" are written as-is, others as <path>/index.html.
type StaticPage struct {
	Path      string
	Component templ.Component
}

// Variant is one exported tree, e.g. one locale. Dir is relative to the
// export root; Decorate prepares the render context for the variant.
type Variant struct {
	Dir      string
	Decorate func(ctx context.Context) context.Context
}

type Renderer struct {
	mode   RenderMode
	logger *slog.Logger
}

func NewRenderer(mode RenderMode, logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{mode: mode, logger: logger}
}

func (r *Renderer) Mode() RenderMode {
	return r.mode
}

func (r *Renderer) Render(ctx context.Context, w io.Writer, component templ.Component) error {
	return component.Render(ctx, w)
}

// Page renders component into a buffer and only then writes the response, so
// a failed render produces a 500 instead of a truncated document.
func (r *Renderer) Page(w http.ResponseWriter, req *http.Request, status int, component templ.Component) {
	var buf bytes.Buffer
	if err := r.Render(req.Context(), &buf, component); err != nil {
		r.logger.Error("Failed to render page", "path", req.URL.Path, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		r.logger.Debug("Failed to write page", "path", req.URL.Path, "error", err)
	}
}

// Export renders every page for every variant below outDir and returns the
// written file paths.
func (r *Renderer) Export(ctx context.Context, outDir string, pages []StaticPage, variants []Variant) ([]string, error) {
	var written []string
	for _, variant := range variants {
		vctx := ctx
		if variant.Decorate != nil {
			vctx = variant.Decorate(ctx)
		}

		for _, page := range pages {
			if err := ctx.Err(); err != nil {
				return written, err
			}

			dest := filepath.Join(outDir, variant.Dir, pageFile(page.Path))
			if err := r.exportPage(vctx, dest, page.Component); err != nil {
				return written, fmt.Errorf("export %s: %w", dest, err)
			}
			r.logger.Debug("Exported page", "path", page.Path, "file", dest)
			written = append(written, dest)
		}
	}
	return written, nil
}

func (r *Renderer) exportPage(ctx context.Context, dest string, component templ.Component) error {
	var buf bytes.Buffer
	if err := r.Render(ctx, &buf, component); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	return os.WriteFile(dest, buf.Bytes(), 0644)
}

func pageFile(urlPath string) string {
	p := strings.Trim(urlPath, "/")
	if strings.HasSuffix(p, ".html") {
		return filepath.FromSlash(p)
	}
	if p == "" {
		return "index.html"
	}
	return filepath.Join(filepath.FromSlash(p), "index.html")
}
