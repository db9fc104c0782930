package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/phlebotomy-portal/internal/middleware"
	"github.com/noah-isme/phlebotomy-portal/internal/models"
	"github.com/noah-isme/phlebotomy-portal/internal/service"
	appErrors "github.com/noah-isme/phlebotomy-portal/pkg/errors"
	"github.com/noah-isme/phlebotomy-portal/web"
)

type fakeAccounts struct {
	profile   models.Profile
	toggleErr error
	toggled   []string
}

func (f *fakeAccounts) Profile(context.Context, service.Credentials, models.UserRole) (models.Profile, error) {
	return f.profile, nil
}

func (f *fakeAccounts) ChangePassword(context.Context, service.Credentials, models.ChangePasswordRequest) (string, error) {
	return "Password changed", nil
}

func (f *fakeAccounts) ToggleNotifications(context.Context, service.Credentials) (string, error) {
	return f.toggle("notifications")
}

func (f *fakeAccounts) ToggleAccount(context.Context, service.Credentials) (string, error) {
	return f.toggle("account")
}

func (f *fakeAccounts) toggle(setting string) (string, error) {
	if f.toggleErr != nil {
		return "", f.toggleErr
	}
	f.toggled = append(f.toggled, setting)
	return "Setting updated", nil
}

type fakeProfileEditor struct {
	role  models.UserRole
	form  *models.UpdateProfileForm
	image *service.Upload
}

func (f *fakeProfileEditor) UpdateProfile(_ context.Context, _ service.Credentials, role models.UserRole, form models.UpdateProfileForm, image *service.Upload) (string, error) {
	f.role = role
	f.form = &form
	f.image = image
	return "Profile updated successfully", nil
}

func newAccountRouter(t *testing.T, role models.UserRole, accounts *fakeAccounts, editor *fakeProfileEditor) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	templates, err := web.Templates("")
	require.NoError(t, err)

	h := NewAccountHandler(accounts, editor, fakeBinder{creds: &fakeCredentials{}})
	r := gin.New()
	r.SetHTMLTemplate(templates)
	r.Use(func(c *gin.Context) {
		c.Set(middleware.ContextSessionKey, &models.Session{ID: "s1", Role: role})
		c.Next()
	})
	r.GET(accountRoute, h.Account)
	r.POST(accountRoute+"/profile", h.UpdateProfile)
	r.POST(accountRoute+"/notifications/toggle", h.ToggleNotifications)
	r.POST(accountRoute+"/status/toggle", h.ToggleAccount)
	r.POST(passwordRoute, h.ChangePassword)
	return r
}

func TestAccountPagePrefillsLaboratorySchedule(t *testing.T) {
	accounts := &fakeAccounts{profile: models.Profile{
		FullName: "Quest Diagnostics",
		About:    "Walk-ins welcome",
		IsActive: true,
		Timings:  models.WeeklyTimings{{Day: "Wednesday", Time: []string{"08:15", "16:45"}}},
	}}
	r := newAccountRouter(t, models.RoleLaboratory, accounts, &fakeProfileEditor{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, accountRoute, nil)
	req.Header.Set("Accept", "text/html")
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `name="opens[Wednesday]" value="08:15"`)
	assert.Contains(t, body, `name="closes[Wednesday]" value="16:45"`)
	assert.Contains(t, body, "Walk-ins welcome")
	assert.Contains(t, body, "Go inactive")
	assert.NotContains(t, body, `name="jobRole"`)
}

func TestAccountJSONKeepsProfileShape(t *testing.T) {
	accounts := &fakeAccounts{profile: models.Profile{FullName: "Ada Admin", IsNotification: true}}
	r := newAccountRouter(t, models.RoleAdmin, accounts, &fakeProfileEditor{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, accountRoute, nil)
	req.Header.Set("Accept", "application/json")
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var env struct {
		Data map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, "Ada Admin", env.Data["fullName"])
	assert.Equal(t, true, env.Data["isNotification"])
	_, leaked := env.Data["WeekDays"]
	assert.False(t, leaked)
}

func TestUpdateProfileBuildsTimingsFromDayInputs(t *testing.T) {
	editor := &fakeProfileEditor{}
	r := newAccountRouter(t, models.RoleLaboratory, &fakeAccounts{}, editor)

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for k, v := range map[string]string{
		"fullName":         "Quest Diagnostics",
		"email":            "lab@quest.test",
		"about":            "Open late",
		"opens[Monday]":    "08:00",
		"closes[Monday]":   "17:00",
		"opens[Tuesday]":   "",
		"closes[Tuesday]":  "",
		"opens[Saturday]":  "09:00",
		"closes[Saturday]": "12:00",
	} {
		require.NoError(t, w.WriteField(k, v))
	}
	part, err := w.CreateFormFile("image", "logo.png")
	require.NoError(t, err)
	_, _ = part.Write([]byte("\x89PNG\r\n\x1a\n"))
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, accountRoute+"/profile", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Accept", "text/html")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	location, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, accountRoute, location.Path)
	assert.Equal(t, "Profile updated successfully", location.Query().Get(noticeParam))

	require.NotNil(t, editor.form)
	assert.Equal(t, models.RoleLaboratory, editor.role)
	assert.Equal(t, "Open late", editor.form.About)
	assert.Equal(t, models.WeeklyTimings{
		{Day: "Monday", Time: []string{"08:00", "17:00"}},
		{Day: "Saturday", Time: []string{"09:00", "12:00"}},
	}, editor.form.Timings)
	require.NotNil(t, editor.image)
	assert.Equal(t, "logo.png", editor.image.Filename)
}

func TestTogglesAnswerWithMessage(t *testing.T) {
	accounts := &fakeAccounts{}
	r := newAccountRouter(t, models.RoleEmployee, accounts, &fakeProfileEditor{})

	for _, target := range []string{"/notifications/toggle", "/status/toggle"} {
		req := httptest.NewRequest(http.MethodPost, accountRoute+target, nil)
		req.Header.Set("Accept", "application/json")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Setting updated")
	}
	assert.Equal(t, []string{"notifications", "account"}, accounts.toggled)
}

func TestToggleWithRefusedCredentialSignsOut(t *testing.T) {
	accounts := &fakeAccounts{toggleErr: appErrors.Clone(appErrors.ErrUnauthorized, "")}
	r := newAccountRouter(t, models.RoleAdmin, accounts, &fakeProfileEditor{})

	req := httptest.NewRequest(http.MethodPost, accountRoute+"/status/toggle", nil)
	req.Header.Set("Accept", "text/html")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, middleware.SignInPath, rec.Header().Get("Location"))
}

func TestChangePasswordRedirectsWithNotice(t *testing.T) {
	r := newAccountRouter(t, models.RoleAdmin, &fakeAccounts{}, &fakeProfileEditor{})

	form := url.Values{"oldPassword": {"old-pass"}, "newPassword": {"new-pass"}}
	req := httptest.NewRequest(http.MethodPost, passwordRoute, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "text/html")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, passwordRoute+"?notice=Password+changed", rec.Header().Get("Location"))
}
