package i18n

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/text/language"
)

func TestResolveTag(t *testing.T) {
	b := Default()

	tests := []struct {
		name        string
		target      string
		cookie      string
		accept      string
		wantTag     language.Tag
		wantPersist bool
	}{
		{name: "default", target: "/users", wantTag: language.Russian},
		{name: "query", target: "/users?lang=en", wantTag: language.English, wantPersist: true},
		{name: "unsupported query", target: "/users?lang=de", wantTag: language.Russian},
		{name: "cookie", target: "/users", cookie: "en", wantTag: language.English},
		{name: "query beats cookie", target: "/users?lang=ru", cookie: "en", wantTag: language.Russian, wantPersist: true},
		{name: "accept language", target: "/users", accept: "en-US,en;q=0.9", wantTag: language.English},
		{name: "accept unsupported", target: "/users", accept: "de-DE", wantTag: language.Russian},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: LangCookieName, Value: tt.cookie})
			}
			if tt.accept != "" {
				req.Header.Set("Accept-Language", tt.accept)
			}

			tag, persist := ResolveTag(req, b)
			if tag != tt.wantTag {
				t.Errorf("tag = %v, want %v", tag, tt.wantTag)
			}
			if persist != tt.wantPersist {
				t.Errorf("persist = %v, want %v", persist, tt.wantPersist)
			}
		})
	}
}

func TestSetLanguageCookie(t *testing.T) {
	rec := httptest.NewRecorder()
	SetLanguageCookie(rec, language.English)

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("cookies = %d, want 1", len(cookies))
	}
	if cookies[0].Name != LangCookieName || cookies[0].Value != "en" {
		t.Errorf("cookie = %s=%s", cookies[0].Name, cookies[0].Value)
	}
}
