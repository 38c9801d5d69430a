package posts

import (
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/louisbranch/blogger/internal/services/blog/form"
	"github.com/louisbranch/blogger/internal/services/blog/i18n"
	"github.com/louisbranch/blogger/internal/services/blog/platform/httpx"
	"github.com/louisbranch/blogger/internal/services/blog/platform/pagerender"
	"github.com/louisbranch/blogger/internal/services/blog/platform/weberror"
	"github.com/louisbranch/blogger/internal/services/blog/routepath"
	"github.com/louisbranch/blogger/internal/services/blog/templates"
	"github.com/rs/zerolog"
)

type handlers struct {
	service service
	nowFunc func() time.Time
}

func newHandlers(s service, now func() time.Time) handlers {
	if now == nil {
		now = time.Now
	}
	return handlers{service: s, nowFunc: now}
}

// withPostID resolves the {id} path value; malformed ids are not found.
func (h handlers) withPostID(next func(http.ResponseWriter, *http.Request, int64)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := routepath.ParseID(r.PathValue(routepath.PostIDParam))
		if !ok {
			weberror.WriteNotFound(w, r)
			return
		}
		next(w, r, id)
	}
}

func (h handlers) handleList(w http.ResponseWriter, r *http.Request) {
	loc := i18n.FromContext(r.Context())
	posts, err := h.service.listRecent(r.Context())
	if err != nil {
		weberror.WriteError(w, r, err)
		return
	}
	view := templates.PostListView{Posts: posts, Now: h.nowFunc()}
	h.writePage(w, r, loc.T("posts.list.title"), http.StatusOK, templates.PostList(view, loc))
}

func (h handlers) handleDetailRoute(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		httpx.MethodNotAllowed(allowRead)(w, r)
		return
	}
	h.withPostID(h.handleDetail)(w, r)
}

func (h handlers) handleDetail(w http.ResponseWriter, r *http.Request, id int64) {
	loc := i18n.FromContext(r.Context())
	post, err := h.service.get(r.Context(), id)
	if err != nil {
		weberror.WriteError(w, r, err)
		return
	}
	h.writePage(w, r, post.Title, http.StatusOK, templates.PostDetail(post, loc))
}

func (h handlers) handleCreateForm(w http.ResponseWriter, r *http.Request) {
	h.writeForm(w, r, createFormView(form.PostForm{}, nil))
}

func (h handlers) handleCreate(w http.ResponseWriter, r *http.Request) {
	submitted, err := form.Decode(r)
	if err != nil {
		weberror.WriteStatus(w, r, http.StatusBadRequest)
		return
	}
	post, errs, err := h.service.create(r.Context(), submitted)
	if err != nil {
		weberror.WriteError(w, r, err)
		return
	}
	if errs != nil {
		h.writeForm(w, r, createFormView(submitted, errs))
		return
	}
	zerolog.Ctx(r.Context()).Info().Int64("post_id", post.ID).Msg("post created")
	httpx.WriteRedirect(w, r, routepath.Blog)
}

func (h handlers) handleUpdateForm(w http.ResponseWriter, r *http.Request, id int64) {
	post, err := h.service.get(r.Context(), id)
	if err != nil {
		weberror.WriteError(w, r, err)
		return
	}
	h.writeForm(w, r, updateFormView(id, form.FromPost(post), nil))
}

func (h handlers) handleUpdate(w http.ResponseWriter, r *http.Request, id int64) {
	submitted, err := form.Decode(r)
	if err != nil {
		weberror.WriteStatus(w, r, http.StatusBadRequest)
		return
	}
	_, errs, err := h.service.update(r.Context(), id, submitted)
	if err != nil {
		weberror.WriteError(w, r, err)
		return
	}
	if errs != nil {
		h.writeForm(w, r, updateFormView(id, submitted, errs))
		return
	}
	zerolog.Ctx(r.Context()).Info().Int64("post_id", id).Msg("post updated")
	httpx.WriteRedirect(w, r, routepath.Blog)
}

func (h handlers) handleDeleteConfirm(w http.ResponseWriter, r *http.Request, id int64) {
	loc := i18n.FromContext(r.Context())
	post, err := h.service.get(r.Context(), id)
	if err != nil {
		weberror.WriteError(w, r, err)
		return
	}
	h.writePage(w, r, loc.T("posts.delete.title"), http.StatusOK, templates.PostDeleteConfirm(post, loc))
}

func (h handlers) handleDelete(w http.ResponseWriter, r *http.Request, id int64) {
	if err := h.service.delete(r.Context(), id); err != nil {
		weberror.WriteError(w, r, err)
		return
	}
	zerolog.Ctx(r.Context()).Info().Int64("post_id", id).Msg("post deleted")
	httpx.WriteRedirect(w, r, routepath.Blog)
}

func (h handlers) writeForm(w http.ResponseWriter, r *http.Request, view templates.PostFormView) {
	loc := i18n.FromContext(r.Context())
	h.writePage(w, r, loc.T(view.HeadingKey), http.StatusOK, templates.PostForm(view, loc))
}

func (h handlers) writePage(w http.ResponseWriter, r *http.Request, title string, status int, body templ.Component) {
	err := pagerender.WritePage(w, r, pagerender.Page{Title: title, StatusCode: status, Body: body})
	if err != nil {
		weberror.WriteError(w, r, err)
	}
}

func createFormView(f form.PostForm, errs form.Errors) templates.PostFormView {
	return templates.PostFormView{
		HeadingKey: "posts.create.title",
		Action:     routepath.BlogCreate,
		CancelURL:  routepath.Blog,
		Form:       f,
		Errors:     errs,
	}
}

func updateFormView(id int64, f form.PostForm, errs form.Errors) templates.PostFormView {
	return templates.PostFormView{
		HeadingKey: "posts.update.title",
		Action:     routepath.PostUpdate(id),
		CancelURL:  routepath.Post(id),
		Form:       f,
		Errors:     errs,
	}
}
