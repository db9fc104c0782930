package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/phlebotomy-portal/internal/models"
	appErrors "github.com/noah-isme/phlebotomy-portal/pkg/errors"
)

const testCookie = "phlebo_session"

type stubResolver struct {
	sessions map[string]*models.Session
}

func (s stubResolver) Resolve(_ context.Context, id string) (*models.Session, error) {
	if session, ok := s.sessions[id]; ok {
		return session, nil
	}
	return nil, appErrors.ErrMissingCredential
}

func newGuardedRouter(roles ...models.UserRole) *gin.Engine {
	gin.SetMode(gin.TestMode)
	resolver := stubResolver{sessions: map[string]*models.Session{
		"admin-1": {ID: "admin-1", Token: "t", Role: models.RoleAdmin},
		"emp-1":   {ID: "emp-1", Token: "t", Role: models.RoleEmployee},
	}}
	r := gin.New()
	r.Use(WithResponseMeta())
	r.GET("/area", Session(resolver, testCookie), RequireRoles(roles...), func(c *gin.Context) {
		session, ok := CurrentSession(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.String(http.StatusOK, session.ID)
	})
	return r
}

func doRequest(r http.Handler, cookie, accept string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/area", nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: testCookie, Value: cookie})
	}
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestSessionRedirectsPagesWithoutCookie(t *testing.T) {
	rec := doRequest(newGuardedRouter(models.RoleAdmin), "", "text/html")

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, SignInPath, rec.Header().Get("Location"))
}

func TestSessionAnswersJSONWithMissingCredential(t *testing.T) {
	rec := doRequest(newGuardedRouter(models.RoleAdmin), "unknown", "application/json")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	var body struct {
		Error appErrors.Error `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, appErrors.ErrMissingCredential.Code, body.Error.Code)
}

func TestRequireRolesAdmitsListedRole(t *testing.T) {
	rec := doRequest(newGuardedRouter(models.RoleAdmin), "admin-1", "text/html")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "admin-1", rec.Body.String())
}

func TestRequireRolesSendsOtherRolesAway(t *testing.T) {
	r := newGuardedRouter(models.RoleAdmin)

	page := doRequest(r, "emp-1", "text/html")
	assert.Equal(t, http.StatusSeeOther, page.Code)
	assert.Equal(t, NotFoundPath, page.Header().Get("Location"))

	api := doRequest(r, "emp-1", "application/json")
	assert.Equal(t, http.StatusForbidden, api.Code)
}

func TestExtractMetaReportsProcessingTime(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(WithResponseMeta())
	var meta map[string]interface{}
	r.GET("/", func(c *gin.Context) {
		SetMeta(c, "view", "admin-appointments")
		meta = ExtractMeta(c)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	require.NotNil(t, meta)
	assert.Equal(t, "admin-appointments", meta["view"])
	assert.Contains(t, meta, "processing_time_ms")
	assert.NotContains(t, meta, "started_at")
}
