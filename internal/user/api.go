package user

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/SergeyParamoshkin/articlefeed/internal/auth"
	"github.com/SergeyParamoshkin/articlefeed/internal/errresponse"
	"github.com/SergeyParamoshkin/articlefeed/internal/logging"
	"github.com/SergeyParamoshkin/articlefeed/internal/model"
	"github.com/SergeyParamoshkin/articlefeed/internal/userpayload"
)

// Handler serves registration, login and account maintenance.
type Handler struct {
	Users         Store
	Tokens        *auth.Issuer
	SecureCookies bool

	Now func() time.Time
}

func (h *Handler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}

	return time.Now()
}

// Routes is mounted at /api/auth.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/register", h.Register)
	r.Post("/login", h.Login)
	r.Post("/logout", h.Logout)

	r.Group(func(r chi.Router) {
		r.Use(h.Tokens.Middleware)
		r.Put("/profile", h.Profile)
		r.Put("/password", h.Password)
	})

	return r
}

// Register creates the account and logs the new user in.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	data := &userpayload.RegisterRequest{}
	if err := render.Bind(r, data); err != nil {
		respond(w, r, errresponse.ErrInvalidRequest(err))

		return
	}

	hash, err := HashPassword(data.Password)
	if err != nil {
		errresponse.Fail(w, r, err)

		return
	}

	u := data.User(h.now())
	u.PasswordHash = hash
	if err := h.Users.Create(r.Context(), u); err != nil {
		errresponse.Fail(w, r, err)

		return
	}

	token, err := h.login(w, u)
	if err != nil {
		errresponse.Fail(w, r, err)

		return
	}

	logging.FromContext(r.Context()).Infow("user registered", "user_id", u.ID)
	render.Status(r, http.StatusCreated)
	respond(w, r, userpayload.NewUserPayloadResponse(u, token))
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	data := &userpayload.LoginRequest{}
	if err := render.Bind(r, data); err != nil {
		respond(w, r, errresponse.ErrInvalidRequest(err))

		return
	}

	u, err := h.Users.FindByLogin(r.Context(), data.EmailOrPhone)
	if errors.Is(err, model.ErrUserNotFound) || (err == nil && !CheckPassword(u.PasswordHash, data.Password)) {
		errresponse.Fail(w, r, model.ErrInvalidCredentials)

		return
	}
	if err != nil {
		errresponse.Fail(w, r, err)

		return
	}

	token, err := h.login(w, u)
	if err != nil {
		errresponse.Fail(w, r, err)

		return
	}

	respond(w, r, userpayload.NewUserPayloadResponse(u, token))
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearCookie(w)
	respond(w, r, &userpayload.MessagePayload{Message: "Logged out successfully"})
}

// Profile updates the names and phone of the authenticated user.
func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	data := &userpayload.ProfileRequest{}
	if err := render.Bind(r, data); err != nil {
		respond(w, r, errresponse.ErrInvalidRequest(err))

		return
	}

	u, err := h.Users.Update(r.Context(), auth.UserID(r.Context()), func(u *model.User) error {
		u.FirstName = data.FirstName
		u.LastName = data.LastName
		u.Phone = data.Phone
		u.UpdatedAt = h.now()

		return nil
	})
	if err != nil {
		errresponse.Fail(w, r, err)

		return
	}

	respond(w, r, &userpayload.MessagePayload{
		Message: "Profile updated successfully",
		User:    userpayload.NewUserPayloadResponse(u, ""),
	})
}

// Password changes the password after checking the current one.
func (h *Handler) Password(w http.ResponseWriter, r *http.Request) {
	data := &userpayload.PasswordRequest{}
	if err := render.Bind(r, data); err != nil {
		respond(w, r, errresponse.ErrInvalidRequest(err))

		return
	}

	hash, err := HashPassword(data.NewPassword)
	if err != nil {
		errresponse.Fail(w, r, err)

		return
	}

	_, err = h.Users.Update(r.Context(), auth.UserID(r.Context()), func(u *model.User) error {
		if !CheckPassword(u.PasswordHash, data.CurrentPassword) {
			return model.ErrInvalidCredentials
		}
		u.PasswordHash = hash
		u.UpdatedAt = h.now()

		return nil
	})
	if err != nil {
		errresponse.Fail(w, r, err)

		return
	}

	respond(w, r, &userpayload.MessagePayload{Message: "Password updated successfully."})
}

func (h *Handler) login(w http.ResponseWriter, u *model.User) (string, error) {
	token, err := h.Tokens.Issue(u.ID, u.Email)
	if err != nil {
		return "", err
	}
	h.Tokens.SetCookie(w, token, h.SecureCookies)

	return token, nil
}

func respond(w http.ResponseWriter, r *http.Request, v render.Renderer) {
	if err := render.Render(w, r, v); err != nil {
		errresponse.RenderFailed(w, r, err)
	}
}
