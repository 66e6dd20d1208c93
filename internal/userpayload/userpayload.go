package userpayload

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/SergeyParamoshkin/articlefeed/internal/model"
	"github.com/SergeyParamoshkin/articlefeed/internal/validate"
)

var ErrPasswordMismatch = errors.New("new passwords do not match")

//--
// Request and Response payloads for the auth endpoints.
//
// The payloads embed the data model objects; the password hash never
// leaves the server because model.User does not serialise it.
//--

type UserPayload struct {
	*model.User

	Token string `json:"token,omitempty"`
}

func NewUserPayloadResponse(user *model.User, token string) *UserPayload {
	return &UserPayload{User: user, Token: token}
}

func (u *UserPayload) Render(w http.ResponseWriter, r *http.Request) error {
	if u.User.Preferences == nil {
		u.User.Preferences = []string{}
	}

	return nil
}

// MessagePayload is a plain acknowledgement, optionally carrying the user.
type MessagePayload struct {
	Message string       `json:"message"`
	User    *UserPayload `json:"user,omitempty"`
}

func (m *MessagePayload) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

type RegisterRequest struct {
	FirstName   string    `json:"firstName" validate:"required"`
	LastName    string    `json:"lastName" validate:"required"`
	Email       string    `json:"email" validate:"required,email"`
	Phone       string    `json:"phone" validate:"required"`
	DOB         time.Time `json:"dob" validate:"required"`
	Password    string    `json:"password" validate:"required,min=8,max=72"`
	Preferences []string  `json:"preferences"`
}

// Bind on RegisterRequest will run after the unmarshalling is complete, its
// a good time to normalise before validation.
func (rr *RegisterRequest) Bind(r *http.Request) error {
	rr.Email = strings.ToLower(strings.TrimSpace(rr.Email))
	rr.Phone = strings.TrimSpace(rr.Phone)
	rr.Preferences = model.NormalizePreferences(rr.Preferences)

	return validate.Struct(rr)
}

// User builds the record to store; the caller sets PasswordHash.
func (rr *RegisterRequest) User(now time.Time) *model.User {
	return &model.User{
		FirstName:   rr.FirstName,
		LastName:    rr.LastName,
		Email:       rr.Email,
		Phone:       rr.Phone,
		DOB:         rr.DOB,
		Preferences: rr.Preferences,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// LoginRequest accepts either the email or the phone number.
type LoginRequest struct {
	EmailOrPhone string `json:"emailOrPhone" validate:"required"`
	Password     string `json:"password" validate:"required"`
}

func (l *LoginRequest) Bind(r *http.Request) error {
	l.EmailOrPhone = strings.TrimSpace(l.EmailOrPhone)
	if strings.Contains(l.EmailOrPhone, "@") {
		l.EmailOrPhone = strings.ToLower(l.EmailOrPhone)
	}

	return validate.Struct(l)
}

type ProfileRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Phone     string `json:"phone" validate:"required"`
}

func (p *ProfileRequest) Bind(r *http.Request) error {
	p.Phone = strings.TrimSpace(p.Phone)

	return validate.Struct(p)
}

type PasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8,max=72"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
}

func (p *PasswordRequest) Bind(r *http.Request) error {
	if err := validate.Struct(p); err != nil {
		return err
	}
	if p.NewPassword != p.ConfirmPassword {
		return ErrPasswordMismatch
	}

	return nil
}
