package templates

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/a-h/templ"
	"github.com/louisbranch/blogger/internal/services/blog/form"
	"github.com/louisbranch/blogger/internal/services/blog/i18n"
	"github.com/louisbranch/blogger/internal/services/blog/storage"
	"golang.org/x/text/language"
)

var (
	english    = i18n.NewLocalizer(language.AmericanEnglish)
	portuguese = i18n.NewLocalizer(language.BrazilianPortuguese)
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var b strings.Builder
	if err := c.Render(context.Background(), &b); err != nil {
		t.Fatalf("render: %v", err)
	}
	return b.String()
}

func TestLayoutWrapsChildren(t *testing.T) {
	t.Parallel()

	child := templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<p id="child">hi</p>`)
		return err
	})
	var b strings.Builder
	err := Layout(LayoutOptions{
		Title:     "Recent posts",
		Loc:       portuguese,
		Languages: i18n.LanguageOptions(portuguese, "/blog/", ""),
	}).Render(templ.WithChildren(context.Background(), child), &b)
	if err != nil {
		t.Fatalf("render layout: %v", err)
	}
	got := b.String()
	for _, want := range []string{
		`<html lang="pt-BR">`,
		`<title>Recent posts | Blog</title>`,
		`<main class="content"><p id="child">hi</p></main>`,
		`href="/blog/feed/"`,
		`<strong lang="pt-BR">Português (Brasil)</strong>`,
		`href="/blog/?lang=en-US"`,
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("layout missing %q in %q", want, got)
		}
	}
}

func TestPostListRendersPlaceholderWhenEmpty(t *testing.T) {
	t.Parallel()

	got := render(t, PostList(PostListView{}, english))
	if !strings.Contains(got, "No posts are available.") {
		t.Fatalf("expected placeholder, got %q", got)
	}
	if strings.Contains(got, "tivix-list") {
		t.Fatalf("unexpected list markup in %q", got)
	}
}

func TestPostListEscapesAndLinksPosts(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.March, 14, 12, 0, 0, 0, time.UTC)
	got := render(t, PostList(PostListView{
		Now: now,
		Posts: []storage.Post{
			{ID: 3, Title: "<b>bold</b>", CreatedAt: now.AddDate(0, 0, -3)},
		},
	}, english))

	if !strings.Contains(got, `<ul class="tivix-list">`) {
		t.Fatalf("expected tivix-list, got %q", got)
	}
	if !strings.Contains(got, `<a href="/blog/3/">&lt;b&gt;bold&lt;/b&gt;</a>`) {
		t.Fatalf("expected escaped linked title, got %q", got)
	}
	if !strings.Contains(got, "posted 3 days ago") {
		t.Fatalf("expected relative age, got %q", got)
	}
}

func TestPostDetailShowsFieldsAndActions(t *testing.T) {
	t.Parallel()

	post := storage.Post{
		ID:          9,
		Title:       "Test Post 1",
		Description: "Testing Post 1",
		CreatedAt:   time.Date(2026, time.March, 14, 21, 5, 0, 0, time.UTC),
	}
	got := render(t, PostDetail(post, english))
	for _, want := range []string{
		"Test Post 1",
		"Testing Post 1",
		"Mar 14, 2026, 9:05 p.m.",
		`href="/blog/9/update/"`,
		`href="/blog/9/delete/"`,
		">Edit<",
		">Delete<",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("detail missing %q in %q", want, got)
		}
	}
}

func TestPostFormRendersValuesAndErrors(t *testing.T) {
	t.Parallel()

	view := PostFormView{
		HeadingKey: "posts.create.title",
		Action:     "/blog/create/",
		Form:       form.PostForm{Title: `say "hi"`, Description: "a < b"},
		Errors: form.Errors{
			form.FieldTitle:       {{Code: form.CodeMaxLength, Limit: 50, Actual: 78}},
			form.FieldDescription: {{Code: form.CodeRequired}},
		},
	}
	got := render(t, PostForm(view, english))
	for _, want := range []string{
		`action="/blog/create/"`,
		`value="say &#34;hi&#34;"`,
		`>a &lt; b</textarea>`,
		"Ensure this value has at most 50 characters (it has 78).",
		"This field is required.",
		`type="submit"`,
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("form missing %q in %q", want, got)
		}
	}
	if n := strings.Count(got, "<form"); n != 1 {
		t.Fatalf("form count = %d, want 1", n)
	}
}

func TestPostDeleteConfirm(t *testing.T) {
	t.Parallel()

	got := render(t, PostDeleteConfirm(storage.Post{ID: 4, Title: "Doomed", Description: "Bye"}, english))
	for _, want := range []string{
		`action="/blog/4/delete/"`,
		`Are you sure you want to delete &#34;Doomed&#34;?`,
		"Bye",
		`href="/blog/4/"`,
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("delete page missing %q in %q", want, got)
		}
	}
}

func TestErrorState(t *testing.T) {
	t.Parallel()

	got := render(t, ErrorState(ErrorView{StatusCode: http.StatusNotFound}, english))
	if !strings.Contains(got, "Page not found") || !strings.Contains(got, `data-status="404"`) {
		t.Fatalf("unexpected not found state %q", got)
	}
	if !strings.Contains(got, "The page or post you requested does not exist.") {
		t.Fatalf("expected default not found copy in %q", got)
	}

	got = render(t, ErrorState(ErrorView{StatusCode: http.StatusServiceUnavailable, MessageKey: "posts.error.store_unavailable"}, portuguese))
	if !strings.Contains(got, "nenhum armazenamento foi configurado") {
		t.Fatalf("expected keyed message in %q", got)
	}
	if title := ErrorPageTitle(http.StatusInternalServerError, portuguese); title != "Algo deu errado" {
		t.Fatalf("title = %q", title)
	}
	if title := ErrorPageTitle(http.StatusServiceUnavailable, english); title != "Service unavailable" {
		t.Fatalf("title = %q", title)
	}
}

func TestFieldErrorMessageKeepsCountsUngrouped(t *testing.T) {
	t.Parallel()

	fe := form.FieldError{Code: form.CodeMaxLength, Limit: 200, Actual: 1500}
	if got := FieldErrorMessage(fe, english); got != "Ensure this value has at most 200 characters (it has 1500)." {
		t.Fatalf("en = %q", got)
	}
	if got := FieldErrorMessage(fe, portuguese); got != "Certifique-se de que o valor tenha no máximo 200 caracteres (ele possui 1500)." {
		t.Fatalf("pt-BR = %q", got)
	}
}

func TestFormatCreated(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		at   time.Time
		lang string
		want string
	}{
		{name: "morning", at: time.Date(2026, time.January, 2, 9, 4, 0, 0, time.UTC), lang: "en-US", want: "Jan 2, 2026, 9:04 a.m."},
		{name: "noon", at: time.Date(2026, time.January, 2, 12, 30, 0, 0, time.UTC), lang: "en-US", want: "Jan 2, 2026, 12:30 p.m."},
		{name: "converted to utc", at: time.Date(2026, time.January, 2, 23, 0, 0, 0, time.FixedZone("BRT", -3*3600)), lang: "en-US", want: "Jan 3, 2026, 2:00 a.m."},
		{name: "portuguese", at: time.Date(2026, time.March, 14, 21, 5, 0, 0, time.UTC), lang: "pt-BR", want: "14 de mar. de 2026, 21:05"},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := FormatCreated(tc.at, tc.lang); got != tc.want {
				t.Fatalf("FormatCreated = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestRelativeTime(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.March, 14, 12, 0, 0, 0, time.UTC)
	if got := RelativeTime(now.AddDate(0, 0, -5), now, "en-US"); got != "5 days ago" {
		t.Fatalf("en = %q", got)
	}
	if got := RelativeTime(now.AddDate(0, 0, -5), now, "pt-BR"); got != "5 dias atrás" {
		t.Fatalf("pt-BR = %q", got)
	}
	if got := RelativeTime(now, now, "pt-BR"); got != "agora" {
		t.Fatalf("pt-BR now = %q", got)
	}
}

func TestTWithoutLocalizerReturnsKey(t *testing.T) {
	t.Parallel()

	if got := T(nil, "posts.list.empty"); got != "posts.list.empty" {
		t.Fatalf("T(nil) = %q", got)
	}
}
