package article

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/SergeyParamoshkin/articlefeed/internal/articlerequest"
	"github.com/SergeyParamoshkin/articlefeed/internal/articleresponse"
	"github.com/SergeyParamoshkin/articlefeed/internal/auth"
	"github.com/SergeyParamoshkin/articlefeed/internal/errresponse"
	"github.com/SergeyParamoshkin/articlefeed/internal/feed"
	"github.com/SergeyParamoshkin/articlefeed/internal/imagestore"
	"github.com/SergeyParamoshkin/articlefeed/internal/logging"
	"github.com/SergeyParamoshkin/articlefeed/internal/metrics"
	"github.com/SergeyParamoshkin/articlefeed/internal/model"
	"github.com/SergeyParamoshkin/articlefeed/internal/reaction"
	"github.com/SergeyParamoshkin/articlefeed/internal/user"
	"github.com/SergeyParamoshkin/articlefeed/internal/userpayload"
)

const DefaultMaxImageBytes = 5 << 20

var (
	ErrImageRequired = errors.New("image file is required")
	ErrNotAnImage    = errors.New("only image files are allowed")
	ErrImageTooLarge = errors.New("image is too large")
)

// Handler serves the articles resource.
type Handler struct {
	Articles Store
	Users    user.Store
	Images   imagestore.Store
	Tokens   *auth.Issuer
	Metrics  *metrics.Recorder

	MaxImageBytes int64
	Now           func() time.Time
}

func (h *Handler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}

	return time.Now()
}

func (h *Handler) maxImageBytes() int64 {
	if h.MaxImageBytes > 0 {
		return h.MaxImageBytes
	}

	return DefaultMaxImageBytes
}

// Routes is mounted at /api/articles. Every route needs a session.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(h.Tokens.Middleware)

	r.Get("/", h.Feed)                      // GET /articles
	r.Post("/", h.CreateArticle)            // POST /articles
	r.Get("/mine", h.MyArticles)            // GET /articles/mine
	r.Put("/preferences", h.SetPreferences) // PUT /articles/preferences

	r.Route("/{articleID}", func(r chi.Router) {
		r.Use(h.ArticleCtx)            // Load the article on the request context
		r.Get("/", h.GetArticle)       // GET /articles/123
		r.Put("/", h.UpdateArticle)    // PUT /articles/123
		r.Delete("/", h.DeleteArticle) // DELETE /articles/123
		r.Put("/image", h.UploadImage) // PUT /articles/123/image
		r.Put("/reaction", h.React)    // PUT /articles/123/reaction
	})

	return r
}

// Feed returns the viewer's articles filtered by their preferences, newest
// first, each annotated with the viewer's reactions.
func (h *Handler) Feed(w http.ResponseWriter, r *http.Request) {
	viewerID := auth.UserID(r.Context())

	viewer, err := h.Users.Get(r.Context(), viewerID)
	if errors.Is(err, model.ErrUserNotFound) {
		errresponse.Fail(w, r, model.ErrInvalidCredentials)

		return
	}
	if err != nil {
		errresponse.Fail(w, r, err)

		return
	}

	articles, err := h.Articles.List(r.Context(), viewer.Preferences)
	if err != nil {
		errresponse.Fail(w, r, err)

		return
	}

	projected, err := feed.Project(articles, viewerID, viewer.Preferences)
	if err != nil {
		errresponse.Fail(w, r, err)

		return
	}

	respond(w, r, articleresponse.NewFeedResponse(projected))
}

// MyArticles lists the viewer's own articles for editing; no reaction
// annotation is attached.
func (h *Handler) MyArticles(w http.ResponseWriter, r *http.Request) {
	authorID := auth.UserID(r.Context())

	articles, err := h.Articles.ListByAuthor(r.Context(), authorID)
	if err != nil {
		errresponse.Fail(w, r, err)

		return
	}

	respond(w, r, articleresponse.NewAuthoredResponse(feed.ProjectAuthored(articles, authorID)))
}

// CreateArticle persists the posted Article and returns it
// back to the client as an acknowledgement.
func (h *Handler) CreateArticle(w http.ResponseWriter, r *http.Request) {
	data := &articlerequest.ArticleRequest{}
	if err := render.Bind(r, data); err != nil {
		respond(w, r, errresponse.ErrInvalidRequest(err))

		return
	}

	a := data.Article(auth.UserID(r.Context()), h.now())
	if err := h.Articles.Create(r.Context(), a); err != nil {
		errresponse.Fail(w, r, err)

		return
	}

	created, err := h.Articles.Get(r.Context(), a.ID)
	if err != nil {
		errresponse.Fail(w, r, err)

		return
	}

	h.Metrics.ArticleCreated(r.Context())
	logging.FromContext(r.Context()).Infow("article created", "article_id", a.ID, "category", a.Category)

	render.Status(r, http.StatusCreated)
	respond(w, r, articleresponse.NewArticleEnvelope(created))
}

// GetArticle returns the specific Article annotated for the viewer.
func (h *Handler) GetArticle(w http.ResponseWriter, r *http.Request) {
	article := articleFromContext(r.Context())

	respond(w, r, articleresponse.NewAnnotatedResponse(article, auth.UserID(r.Context())))
}

// UpdateArticle applies a partial edit. Only the author may edit.
func (h *Handler) UpdateArticle(w http.ResponseWriter, r *http.Request) {
	article := articleFromContext(r.Context())
	userID := auth.UserID(r.Context())

	data := &articlerequest.ArticleUpdateRequest{}
	if err := render.Bind(r, data); err != nil {
		respond(w, r, errresponse.ErrInvalidRequest(err))

		return
	}

	updated, err := h.Articles.Update(r.Context(), article.ID, func(a *model.Article) error {
		if !a.IsAuthor(userID) {
			return model.ErrNotAuthor
		}
		data.Apply(a, h.now())

		return nil
	})
	if err != nil {
		errresponse.Fail(w, r, err)

		return
	}

	respond(w, r, articleresponse.NewArticleEnvelope(updated))
}

// DeleteArticle removes an existing Article and its image. Only the author
// may delete.
func (h *Handler) DeleteArticle(w http.ResponseWriter, r *http.Request) {
	article := articleFromContext(r.Context())
	if !article.IsAuthor(auth.UserID(r.Context())) {
		errresponse.Fail(w, r, model.ErrNotAuthor)

		return
	}

	if err := h.Articles.Delete(r.Context(), article.ID); err != nil {
		errresponse.Fail(w, r, err)

		return
	}

	if article.ImageURL != "" {
		if err := h.Images.Delete(r.Context(), article.ImageURL); err != nil {
			logging.FromContext(r.Context()).Warnw("delete image", "article_id", article.ID, "error", err)
		}
	}

	h.Metrics.ArticleDeleted(r.Context())
	respond(w, r, &userpayload.MessagePayload{Message: "Article deleted successfully"})
}

// UploadImage stores the multipart "image" file and points the article at
// it, replacing any previous image.
func (h *Handler) UploadImage(w http.ResponseWriter, r *http.Request) {
	article := articleFromContext(r.Context())
	userID := auth.UserID(r.Context())
	if !article.IsAuthor(userID) {
		errresponse.Fail(w, r, model.ErrNotAuthor)

		return
	}

	limit := h.maxImageBytes()
	r.Body = http.MaxBytesReader(w, r.Body, limit+(1<<20))
	if err := r.ParseMultipartForm(limit); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) || errors.Is(err, multipart.ErrMessageTooLarge) {
			err = fmt.Errorf("%w: %v", ErrImageTooLarge, err)
		}
		respond(w, r, errresponse.ErrInvalidRequest(err))

		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	file, header, err := r.FormFile("image")
	if err != nil {
		respond(w, r, errresponse.ErrInvalidRequest(ErrImageRequired))

		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	switch {
	case header.Size > limit:
		respond(w, r, errresponse.ErrInvalidRequest(ErrImageTooLarge))

		return
	case !strings.HasPrefix(contentType, "image/"):
		respond(w, r, errresponse.ErrInvalidRequest(ErrNotAnImage))

		return
	}

	url, err := h.Images.Put(r.Context(), header.Filename, contentType, file)
	if err != nil {
		errresponse.Fail(w, r, err)

		return
	}

	var previous string
	updated, err := h.Articles.Update(r.Context(), article.ID, func(a *model.Article) error {
		if !a.IsAuthor(userID) {
			return model.ErrNotAuthor
		}
		previous = a.ImageURL
		a.ImageURL = url
		a.UpdatedAt = h.now()

		return nil
	})
	if err != nil {
		h.deleteImage(r, url)
		errresponse.Fail(w, r, err)

		return
	}
	if previous != "" {
		h.deleteImage(r, previous)
	}

	respond(w, r, articleresponse.NewArticleEnvelope(updated))
}

// React toggles the viewer's like, dislike or block and returns the article
// annotated for the viewer.
func (h *Handler) React(w http.ResponseWriter, r *http.Request) {
	article := articleFromContext(r.Context())
	userID := auth.UserID(r.Context())

	data := &articlerequest.ReactionRequest{}
	if err := render.Bind(r, data); err != nil {
		respond(w, r, errresponse.ErrInvalidRequest(err))

		return
	}

	updated, err := h.Articles.Update(r.Context(), article.ID, func(a *model.Article) error {
		next, err := reaction.Apply(a, userID, data.Parsed(), h.now())
		if err != nil {
			return err
		}
		*a = *next

		return nil
	})
	if err != nil {
		errresponse.Fail(w, r, err)

		return
	}

	h.Metrics.Reaction(r.Context(), string(data.Parsed()))
	respond(w, r, articleresponse.NewAnnotatedResponse(updated, userID))
}

// SetPreferences replaces the categories the viewer's feed is filtered by.
func (h *Handler) SetPreferences(w http.ResponseWriter, r *http.Request) {
	data := &articlerequest.PreferencesRequest{}
	if err := render.Bind(r, data); err != nil {
		respond(w, r, errresponse.ErrInvalidRequest(err))

		return
	}

	u, err := h.Users.Update(r.Context(), auth.UserID(r.Context()), func(u *model.User) error {
		u.Preferences = data.Preferences
		u.UpdatedAt = h.now()

		return nil
	})
	if errors.Is(err, model.ErrUserNotFound) {
		errresponse.Fail(w, r, model.ErrInvalidCredentials)

		return
	}
	if err != nil {
		errresponse.Fail(w, r, err)

		return
	}

	respond(w, r, &userpayload.MessagePayload{
		Message: "preferences updated successfully",
		User:    userpayload.NewUserPayloadResponse(u, ""),
	})
}

func (h *Handler) deleteImage(r *http.Request, url string) {
	if err := h.Images.Delete(r.Context(), url); err != nil {
		logging.FromContext(r.Context()).Warnw("delete image", "url", url, "error", err)
	}
}

func respond(w http.ResponseWriter, r *http.Request, v render.Renderer) {
	if err := render.Render(w, r, v); err != nil {
		errresponse.RenderFailed(w, r, err)
	}
}
