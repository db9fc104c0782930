package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/phlebotomy-portal/internal/middleware"
	"github.com/noah-isme/phlebotomy-portal/internal/models"
	"github.com/noah-isme/phlebotomy-portal/pkg/config"
	appErrors "github.com/noah-isme/phlebotomy-portal/pkg/errors"
	"github.com/noah-isme/phlebotomy-portal/pkg/response"
)

type authService interface {
	SignIn(ctx context.Context, req models.SignInRequest) (*models.Session, error)
	SignOut(ctx context.Context, sessionID string)
}

// AuthHandler wires the sign-in endpoints to the auth service.
type AuthHandler struct {
	service authService
	cookie  config.SessionConfig
	now     func() time.Time
}

// NewAuthHandler creates a new handler.
func NewAuthHandler(svc authService, cookie config.SessionConfig) *AuthHandler {
	return &AuthHandler{service: svc, cookie: cookie, now: time.Now}
}

// Root sends signed-in users to their role's landing page.
func (h *AuthHandler) Root(c *gin.Context) {
	if session := sessionFromContext(c); session != nil {
		c.Redirect(http.StatusSeeOther, session.Role.HomePath())
		return
	}
	c.Redirect(http.StatusSeeOther, middleware.SignInPath)
}

// SignInPage renders the sign-in form.
func (h *AuthHandler) SignInPage(c *gin.Context) {
	if session := sessionFromContext(c); session != nil {
		c.Redirect(http.StatusSeeOther, session.Role.HomePath())
		return
	}
	render(c, http.StatusOK, "signin.html", "Sign in", nil, nil)
}

// SignIn godoc
// @Summary Sign in
// @Description Exchanges email and password for a portal session cookie.
// @Tags Authentication
// @Accept json
// @Accept x-www-form-urlencoded
// @Produce json
// @Param payload body models.SignInRequest true "Sign-in payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /signin [post]
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req models.SignInRequest
	if err := c.ShouldBind(&req); err != nil {
		h.signInFailed(c, bindError(err, "invalid sign-in payload"))
		return
	}
	session, err := h.service.SignIn(c.Request.Context(), req)
	if err != nil {
		h.signInFailed(c, err)
		return
	}

	maxAge := int(session.ExpiresAt.Sub(h.now()).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.CookieName, session.ID, maxAge, "/", "", h.cookie.CookieSecure, true)

	home := session.Role.HomePath()
	if response.WantsJSON(c) {
		response.JSON(c, http.StatusOK, gin.H{
			"role":       session.Role,
			"expires_at": session.ExpiresAt,
			"redirect":   home,
		}, nil)
		return
	}
	c.Redirect(http.StatusSeeOther, home)
}

func (h *AuthHandler) signInFailed(c *gin.Context, err error) {
	if response.WantsJSON(c) {
		response.Error(c, err)
		return
	}
	rejected(c, middleware.SignInPath, err)
}

// SignOut godoc
// @Summary Sign out
// @Tags Authentication
// @Produce json
// @Success 204
// @Router /signout [post]
func (h *AuthHandler) SignOut(c *gin.Context) {
	if id, err := c.Cookie(h.cookie.CookieName); err == nil && id != "" {
		h.service.SignOut(c.Request.Context(), id)
	}
	c.SetCookie(h.cookie.CookieName, "", -1, "/", "", h.cookie.CookieSecure, true)
	if response.WantsJSON(c) {
		response.NoContent(c)
		return
	}
	c.Redirect(http.StatusSeeOther, middleware.SignInPath)
}

// NotFound renders the page shown for unknown routes and other roles' areas.
func (h *AuthHandler) NotFound(c *gin.Context) {
	if response.WantsJSON(c) {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "page not found"))
		return
	}
	response.HTML(c, http.StatusNotFound, "not_found.html", page{Title: "Not found", Session: sessionFromContext(c)})
}
