// Package weberror renders localized error pages for blog modules.
package weberror

import (
	"net/http"

	"github.com/louisbranch/blogger/internal/services/blog/i18n"
	apperrors "github.com/louisbranch/blogger/internal/services/blog/platform/errors"
	"github.com/louisbranch/blogger/internal/services/blog/platform/pagerender"
	"github.com/louisbranch/blogger/internal/services/blog/templates"
	"github.com/rs/zerolog"
)

// WriteError maps err to a status and renders the matching error page.
// Server-side failures are logged; client-side ones are not.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	statusCode := apperrors.HTTPStatus(err)
	if statusCode >= http.StatusInternalServerError {
		zerolog.Ctx(r.Context()).Error().Err(err).
			Str("kind", string(apperrors.KindOf(err))).
			Msg("request failed")
	}
	writePage(w, r, statusCode, apperrors.LocalizationKey(err))
}

// WriteNotFound renders the 404 page.
func WriteNotFound(w http.ResponseWriter, r *http.Request) {
	WriteStatus(w, r, http.StatusNotFound)
}

// WriteStatus renders the error page for statusCode.
func WriteStatus(w http.ResponseWriter, r *http.Request, statusCode int) {
	writePage(w, r, statusCode, "")
}

// writePage renders the error page, replacing the status copy with the
// message under key when one is given.
func writePage(w http.ResponseWriter, r *http.Request, statusCode int, key string) {
	if statusCode < http.StatusBadRequest {
		statusCode = http.StatusInternalServerError
	}
	loc := i18n.FromContext(r.Context())
	err := pagerender.WritePage(w, r, pagerender.Page{
		Title:      templates.ErrorPageTitle(statusCode, loc),
		StatusCode: statusCode,
		Body:       templates.ErrorState(templates.ErrorView{StatusCode: statusCode, MessageKey: key}, loc),
	})
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("render error page")
		http.Error(w, http.StatusText(statusCode), statusCode)
	}
}
