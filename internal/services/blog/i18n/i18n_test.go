package i18n

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/text/language"
)

func TestResolveTag(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		target      string
		cookie      string
		accept      string
		want        language.Tag
		wantPersist bool
	}{
		{name: "default", target: "/blog/", want: language.AmericanEnglish},
		{name: "query wins and persists", target: "/blog/?lang=pt-BR", cookie: "en-US", accept: "en", want: language.BrazilianPortuguese, wantPersist: true},
		{name: "cookie over header", target: "/blog/", cookie: "pt-BR", accept: "en-US", want: language.BrazilianPortuguese},
		{name: "accept language", target: "/blog/", accept: "pt;q=0.9, fr;q=0.5", want: language.BrazilianPortuguese},
		{name: "unsupported header falls back", target: "/blog/", accept: "ja", want: language.AmericanEnglish},
		{name: "bad query ignored", target: "/blog/?lang=!!", cookie: "pt-BR", want: language.BrazilianPortuguese},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodGet, tc.target, nil)
			if tc.cookie != "" {
				req.AddCookie(&http.Cookie{Name: LangCookieName, Value: tc.cookie})
			}
			if tc.accept != "" {
				req.Header.Set("Accept-Language", tc.accept)
			}
			tag, persist := ResolveTag(req)
			if tag != tc.want {
				t.Fatalf("tag = %v, want %v", tag, tc.want)
			}
			if persist != tc.wantPersist {
				t.Fatalf("persist = %v, want %v", persist, tc.wantPersist)
			}
		})
	}
}

func TestMiddlewareSetsCookieAndLocalizer(t *testing.T) {
	t.Parallel()

	var got Localizer
	h := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = FromContext(r.Context())
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/blog/?lang=pt-BR", nil))

	if got.Tag != language.BrazilianPortuguese {
		t.Fatalf("localizer tag = %v, want pt-BR", got.Tag)
	}
	if msg := got.T("posts.form.error.required"); msg != "Este campo é obrigatório." {
		t.Fatalf("message = %q", msg)
	}
	cookies := rr.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != LangCookieName || cookies[0].Value != "pt-BR" {
		t.Fatalf("cookies = %v", cookies)
	}
}

func TestFromContextDefaultsToEnglish(t *testing.T) {
	t.Parallel()

	loc := FromContext(context.Background())
	if loc.Lang() != "en-US" {
		t.Fatalf("lang = %q, want en-US", loc.Lang())
	}
	if msg := loc.T("posts.list.empty"); msg != "No posts are available." {
		t.Fatalf("message = %q", msg)
	}
	var zero Localizer
	if msg := zero.T("posts.action.edit"); msg != "Edit" {
		t.Fatalf("zero localizer message = %q", msg)
	}
}

func TestLanguageOptions(t *testing.T) {
	t.Parallel()

	options := LanguageOptions(NewLocalizer(language.BrazilianPortuguese), "/blog/3/", "x=1")
	if len(options) != 2 {
		t.Fatalf("len(options) = %d, want 2", len(options))
	}
	if options[0].Tag != "en-US" || options[0].Active {
		t.Fatalf("options[0] = %+v", options[0])
	}
	if !options[1].Active || options[1].Label != "Português (Brasil)" {
		t.Fatalf("options[1] = %+v", options[1])
	}
	if options[1].URL != "/blog/3/?lang=pt-BR&x=1" {
		t.Fatalf("url = %q", options[1].URL)
	}
}

func TestLanguageURL(t *testing.T) {
	t.Parallel()

	if got := LanguageURL("", "page=2", "en-US"); got != "/?lang=en-US&page=2" {
		t.Fatalf("LanguageURL = %q", got)
	}
}
