package article

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/SergeyParamoshkin/articlefeed/internal/errresponse"
	"github.com/SergeyParamoshkin/articlefeed/internal/model"
)

type ctxKey int8

const ctxKeyArticle ctxKey = iota

// ArticleCtx middleware is used to load an Article object from
// the URL parameters passed through as the request. In case
// the Article could not be found, we stop here and return a 404.
func (h *Handler) ArticleCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		articleID := chi.URLParam(r, "articleID")
		if articleID == "" {
			errresponse.Fail(w, r, model.ErrArticleNotFound)

			return
		}

		article, err := h.Articles.Get(r.Context(), articleID)
		if err != nil {
			errresponse.Fail(w, r, err)

			return
		}

		ctx := context.WithValue(r.Context(), ctxKeyArticle, article)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// articleFromContext assumes the handler is a child of ArticleCtx. The
// worst case, the recoverer middleware will save us.
func articleFromContext(ctx context.Context) model.ArticleWithAuthorExpanded {
	return ctx.Value(ctxKeyArticle).(model.ArticleWithAuthorExpanded)
}
