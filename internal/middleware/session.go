package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/phlebotomy-portal/internal/models"
	appErrors "github.com/noah-isme/phlebotomy-portal/pkg/errors"
	"github.com/noah-isme/phlebotomy-portal/pkg/response"
)

// ContextSessionKey is the gin context key storing the resolved portal session.
const ContextSessionKey = "portalSession"

// SignInPath is where unauthenticated page requests are sent.
const SignInPath = "/signin"

// NotFoundPath is where page requests for another role's area are sent.
const NotFoundPath = "/not-found"

type sessionResolver interface {
	Resolve(ctx context.Context, id string) (*models.Session, error)
}

// Session requires a live portal session. Pages redirect to sign-in, JSON callers get 401.
func Session(resolver sessionResolver, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, _ := c.Cookie(cookieName)
		session, err := resolver.Resolve(c.Request.Context(), id)
		if err != nil {
			Unauthenticated(c, err)
			return
		}
		c.Set(ContextSessionKey, session)
		c.Next()
	}
}

// OptionalSession attaches the session when present but does not block.
func OptionalSession(resolver sessionResolver, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if id, err := c.Cookie(cookieName); err == nil && id != "" {
			if session, err := resolver.Resolve(c.Request.Context(), id); err == nil {
				c.Set(ContextSessionKey, session)
			}
		}
		c.Next()
	}
}

// CurrentSession returns the session attached by Session.
func CurrentSession(c *gin.Context) (*models.Session, bool) {
	value, exists := c.Get(ContextSessionKey)
	if !exists {
		return nil, false
	}
	session, ok := value.(*models.Session)
	return session, ok && session != nil
}

// Unauthenticated ends the request for a caller without a usable credential.
func Unauthenticated(c *gin.Context, err error) {
	if response.WantsJSON(c) {
		if err == nil {
			err = appErrors.ErrMissingCredential
		}
		response.Error(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, SignInPath)
	c.Abort()
}
