package templates

import (
	"net/http"
	"strconv"
	"time"

	"github.com/louisbranch/blogger/internal/services/blog/form"
	"github.com/louisbranch/blogger/internal/services/blog/i18n"
	"github.com/louisbranch/blogger/internal/services/blog/storage"
)

// LayoutOptions configures the page shell.
type LayoutOptions struct {
	Title     string
	Loc       Localizer
	Languages []i18n.LanguageOption
}

// PostListView is the data behind the recent posts page.
type PostListView struct {
	Posts []storage.Post
	Now   time.Time
}

// PostFormView is the data behind the create and update pages.
type PostFormView struct {
	HeadingKey string
	Action     string
	CancelURL  string
	Form       form.PostForm
	Errors     form.Errors
}

// ErrorView is the data behind an error page. MessageKey, when set,
// replaces the generic copy for StatusCode.
type ErrorView struct {
	StatusCode int
	MessageKey string
}

type errorCopy struct {
	titleKey string
	bodyKey  string
}

func errorCopyFor(view ErrorView) errorCopy {
	var msg errorCopy
	switch view.StatusCode {
	case http.StatusNotFound:
		msg = errorCopy{titleKey: "core.error.not_found.title", bodyKey: "core.error.not_found.body"}
	case http.StatusBadRequest:
		msg = errorCopy{titleKey: "core.error.bad_request.title", bodyKey: "core.error.bad_request.body"}
	case http.StatusServiceUnavailable:
		msg = errorCopy{titleKey: "core.error.unavailable.title", bodyKey: "core.error.unavailable.body"}
	default:
		msg = errorCopy{titleKey: "core.error.internal.title", bodyKey: "core.error.internal.body"}
	}
	if view.MessageKey != "" {
		msg.bodyKey = view.MessageKey
	}
	return msg
}

// ErrorPageTitle returns the browser title for an error page.
func ErrorPageTitle(statusCode int, loc Localizer) string {
	return T(loc, errorCopyFor(ErrorView{StatusCode: statusCode}).titleKey)
}

// FieldErrorMessage localizes one field error. Counts are passed as plain
// digits so no locale grouping is applied.
func FieldErrorMessage(fe form.FieldError, loc Localizer) string {
	switch fe.Code {
	case form.CodeRequired:
		return T(loc, "posts.form.error.required")
	case form.CodeMaxLength:
		return T(loc, "posts.form.error.max_length", strconv.Itoa(fe.Limit), strconv.Itoa(fe.Actual))
	default:
		return fe.Code
	}
}
