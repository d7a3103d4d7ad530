package views

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestIcon(t *testing.T) {
	tests := []struct {
		name  string
		class string
		want  []string
	}{
		{IconPlus, "mr-2", []string{`class="lucide lucide-plus mr-2"`, `d="M5 12h14"`}},
		{IconSearch, "", []string{`class="lucide lucide-search"`, `<circle cx="11"`}},
		{IconFilter, "mr-2", []string{`class="lucide lucide-filter mr-2"`, "<polygon"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := Icon(tt.name, 20, tt.class).Render(context.Background(), &buf); err != nil {
				t.Fatalf("render Icon: %v", err)
			}
			got := buf.String()
			if !strings.Contains(got, `width="20" height="20"`) {
				t.Errorf("icon missing size: %q", got)
			}
			for _, want := range tt.want {
				if !strings.Contains(got, want) {
					t.Errorf("icon missing %q: %q", want, got)
				}
			}
		})
	}
}

func TestIcon_Unknown(t *testing.T) {
	var buf bytes.Buffer
	if err := Icon("nope", 20, "").Render(context.Background(), &buf); err != nil {
		t.Fatalf("render Icon: %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("unknown icon rendered %q, want nothing", buf.String())
	}
}
