package errresponse

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"github.com/SergeyParamoshkin/articlefeed/internal/feed"
	"github.com/SergeyParamoshkin/articlefeed/internal/logging"
	"github.com/SergeyParamoshkin/articlefeed/internal/model"
	"github.com/SergeyParamoshkin/articlefeed/internal/reaction"
)

// ErrResponse renderer type for handling all sorts of errors.
type ErrResponse struct {
	Err            error `json:"-"` // low-level runtime error
	HTTPStatusCode int   `json:"-"` // http response status code

	StatusText string `json:"status"`          // user-level status message
	AppCode    int64  `json:"code,omitempty"`  // application-specific error code
	ErrorText  string `json:"error,omitempty"` // application-level error message, for debugging
}

func (e *ErrResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)

	return nil
}

func ErrInvalidRequest(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusBadRequest,
		StatusText:     "Invalid request.",
		ErrorText:      err.Error(),
	}
}

func ErrUnauthorized(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusUnauthorized,
		StatusText:     "Unauthorized.",
		ErrorText:      err.Error(),
	}
}

func ErrForbidden(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusForbidden,
		StatusText:     "Forbidden.",
		ErrorText:      err.Error(),
	}
}

func ErrConflict(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusConflict,
		StatusText:     "Conflict.",
		ErrorText:      err.Error(),
	}
}

func ErrRender(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusUnprocessableEntity,
		StatusText:     "Error rendering response.",
		ErrorText:      err.Error(),
	}
}

// ErrInternal never exposes err to the client.
func ErrInternal(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusInternalServerError,
		StatusText:     "Server error.",
	}
}

var ErrNotFound = &ErrResponse{HTTPStatusCode: http.StatusNotFound, StatusText: "Resource not found."}

// FromError maps domain errors onto their HTTP renderers. Unknown errors
// become a generic 500.
func FromError(err error) render.Renderer {
	var verrs validator.ValidationErrors

	switch {
	case errors.Is(err, model.ErrArticleNotFound), errors.Is(err, model.ErrUserNotFound):
		return &ErrResponse{
			Err:            err,
			HTTPStatusCode: http.StatusNotFound,
			StatusText:     "Resource not found.",
			ErrorText:      err.Error(),
		}
	case errors.Is(err, reaction.ErrInvalidAction),
		errors.Is(err, bcrypt.ErrPasswordTooLong),
		errors.As(err, &verrs):
		return ErrInvalidRequest(err)
	case errors.Is(err, reaction.ErrUnauthenticated),
		errors.Is(err, feed.ErrViewerRequired),
		errors.Is(err, model.ErrInvalidCredentials):
		return ErrUnauthorized(err)
	case errors.Is(err, model.ErrNotAuthor):
		return ErrForbidden(err)
	case errors.Is(err, model.ErrUserExists):
		return ErrConflict(err)
	default:
		return ErrInternal(err)
	}
}

// RenderFailed answers with ErrRender when a payload could not be rendered.
func RenderFailed(w http.ResponseWriter, r *http.Request, err error) {
	logging.FromContext(r.Context()).Errorw("render response", "error", err)
	if rerr := render.Render(w, r, ErrRender(err)); rerr != nil {
		logging.FromContext(r.Context()).Errorw("render error response", "error", rerr)
	}
}

// NotFound answers unknown routes.
func NotFound(w http.ResponseWriter, r *http.Request) {
	if err := render.Render(w, r, ErrNotFound); err != nil {
		logging.FromContext(r.Context()).Errorw("render error response", "error", err)
	}
}

// Fail renders err through FromError. Server-side failures are logged with
// their detail, which the client never sees.
func Fail(w http.ResponseWriter, r *http.Request, err error) {
	resp := FromError(err)
	if e, ok := resp.(*ErrResponse); ok && e.HTTPStatusCode >= http.StatusInternalServerError {
		logging.FromContext(r.Context()).Errorw("request failed", "error", err, "path", r.URL.Path)
	}

	if rerr := render.Render(w, r, resp); rerr != nil {
		logging.FromContext(r.Context()).Errorw("render error response", "error", rerr)
	}
}
