package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/phlebotomy-portal/internal/middleware"
	"github.com/noah-isme/phlebotomy-portal/internal/models"
	"github.com/noah-isme/phlebotomy-portal/pkg/config"
	appErrors "github.com/noah-isme/phlebotomy-portal/pkg/errors"
)

type fakeAuthService struct {
	session   *models.Session
	signInErr error
	signedOut []string
}

func (f *fakeAuthService) SignIn(context.Context, models.SignInRequest) (*models.Session, error) {
	return f.session, f.signInErr
}

func (f *fakeAuthService) SignOut(_ context.Context, sessionID string) {
	f.signedOut = append(f.signedOut, sessionID)
}

func newAuthRouter(svc *fakeAuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewAuthHandler(svc, config.SessionConfig{CookieName: "portal_session"})
	h.now = func() time.Time { return time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC) }
	r := gin.New()
	r.POST("/signin", h.SignIn)
	r.POST("/signout", h.SignOut)
	r.GET("/", h.Root)
	return r
}

func TestSignInSetsSessionCookie(t *testing.T) {
	svc := &fakeAuthService{session: &models.Session{
		ID:        "sess-1",
		Role:      models.RoleAdmin,
		ExpiresAt: time.Date(2026, 1, 1, 13, 0, 0, 0, time.UTC),
	}}
	r := newAuthRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/signin", strings.NewReader(`{"email":"a@b.co","password":"secret"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "portal_session", cookies[0].Name)
	assert.Equal(t, "sess-1", cookies[0].Value)
	assert.Equal(t, 3600, cookies[0].MaxAge)
	assert.True(t, cookies[0].HttpOnly)
	assert.Contains(t, rec.Body.String(), "/admin/dashboard")
}

func TestSignInFailureRedirectsWithMessage(t *testing.T) {
	svc := &fakeAuthService{signInErr: appErrors.Clone(appErrors.ErrInvalidCredentials, "Wrong password")}
	r := newAuthRouter(svc)

	form := url.Values{"email": {"a@b.co"}, "password": {"nope"}}
	req := httptest.NewRequest(http.MethodPost, "/signin", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "text/html")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	location, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, middleware.SignInPath, location.Path)
	assert.Equal(t, "Wrong password", location.Query().Get(errorParam))
	assert.Empty(t, rec.Result().Cookies())
}

func TestSignOutClearsCookie(t *testing.T) {
	svc := &fakeAuthService{}
	r := newAuthRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/signout", nil)
	req.AddCookie(&http.Cookie{Name: "portal_session", Value: "sess-1"})
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, []string{"sess-1"}, svc.signedOut)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, -1, cookies[0].MaxAge)
}

func TestRootWithoutSessionGoesToSignIn(t *testing.T) {
	r := newAuthRouter(&fakeAuthService{})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, middleware.SignInPath, rec.Header().Get("Location"))
}
