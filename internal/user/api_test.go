package user_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SergeyParamoshkin/articlefeed/internal/auth"
	"github.com/SergeyParamoshkin/articlefeed/internal/storage/memory"
	"github.com/SergeyParamoshkin/articlefeed/internal/user"
)

const registerBody = `{
	"firstName": "Peter",
	"lastName": "Parker",
	"email": " Peter@Example.com ",
	"phone": "5550100",
	"dob": "1990-01-02T00:00:00Z",
	"password": "spider-man",
	"preferences": ["technology", "", "technology"]
}`

type userBody struct {
	ID          string   `json:"_id"`
	Email       string   `json:"email"`
	FirstName   string   `json:"firstName"`
	Preferences []string `json:"preferences"`
	Token       string   `json:"token"`
	Password    string   `json:"password"`
}

func newRouter(t *testing.T) (http.Handler, *auth.Issuer) {
	t.Helper()

	tokens := auth.NewIssuer("test-secret", time.Hour)
	h := &user.Handler{Users: memory.NewUserStore(), Tokens: tokens}

	r := chi.NewRouter()
	r.Mount("/api/auth", h.Routes())

	return r, tokens
}

func send(t *testing.T, router http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	return rec
}

func register(t *testing.T, router http.Handler) userBody {
	t.Helper()

	rec := send(t, router, http.MethodPost, "/api/auth/register", "", registerBody)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var u userBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &u))

	return u
}

func TestRegister(t *testing.T) {
	router, tokens := newRouter(t)

	u := register(t, router)
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, "peter@example.com", u.Email)
	assert.Equal(t, []string{"technology"}, u.Preferences)
	assert.Empty(t, u.Password)

	claims, err := tokens.Verify(u.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.Subject)

	rec := send(t, router, http.MethodPost, "/api/auth/register", "", registerBody)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = send(t, router, http.MethodPost, "/api/auth/register", "", `{"email":"bad"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegisterRejectsOverlongPassword(t *testing.T) {
	router, _ := newRouter(t)

	body := strings.Replace(registerBody, `"spider-man"`, `"`+strings.Repeat("p", 80)+`"`, 1)
	rec := send(t, router, http.MethodPost, "/api/auth/register", "", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
}

func TestLogin(t *testing.T) {
	router, _ := newRouter(t)
	u := register(t, router)

	for _, login := range []string{"peter@example.com", "PETER@example.com", "5550100"} {
		rec := send(t, router, http.MethodPost, "/api/auth/login", "", `{"emailOrPhone":"`+login+`","password":"spider-man"}`)
		require.Equal(t, http.StatusOK, rec.Code, login)

		cookies := rec.Result().Cookies()
		require.NotEmpty(t, cookies)
		assert.Equal(t, auth.CookieName, cookies[0].Name)
		assert.True(t, cookies[0].HttpOnly)

		var got userBody
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, u.ID, got.ID)
	}

	rec := send(t, router, http.MethodPost, "/api/auth/login", "", `{"emailOrPhone":"peter@example.com","password":"wrong-password"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = send(t, router, http.MethodPost, "/api/auth/login", "", `{"emailOrPhone":"nobody@example.com","password":"spider-man"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogoutClearsCookie(t *testing.T) {
	router, _ := newRouter(t)

	rec := send(t, router, http.MethodPost, "/api/auth/logout", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, auth.CookieName, cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Negative(t, cookies[0].MaxAge)
}

func TestProfileAndPassword(t *testing.T) {
	router, _ := newRouter(t)
	u := register(t, router)

	rec := send(t, router, http.MethodPut, "/api/auth/profile", "", `{"firstName":"P","lastName":"P","phone":"1"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = send(t, router, http.MethodPut, "/api/auth/profile", u.Token, `{"firstName":"Pete","lastName":"Parker","phone":"5550199"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"firstName":"Pete"`)

	rec = send(t, router, http.MethodPut, "/api/auth/password", u.Token,
		`{"currentPassword":"wrong-password","newPassword":"venom-rules","confirmPassword":"venom-rules"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = send(t, router, http.MethodPut, "/api/auth/password", u.Token,
		`{"currentPassword":"spider-man","newPassword":"venom-rules","confirmPassword":"venom-rulez"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	long := strings.Repeat("v", 80)
	rec = send(t, router, http.MethodPut, "/api/auth/password", u.Token,
		`{"currentPassword":"spider-man","newPassword":"`+long+`","confirmPassword":"`+long+`"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = send(t, router, http.MethodPut, "/api/auth/password", u.Token,
		`{"currentPassword":"spider-man","newPassword":"venom-rules","confirmPassword":"venom-rules"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = send(t, router, http.MethodPost, "/api/auth/login", "", `{"emailOrPhone":"5550199","password":"venom-rules"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
}
