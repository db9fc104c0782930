package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/phlebotomy-portal/internal/models"
	appErrors "github.com/noah-isme/phlebotomy-portal/pkg/errors"
	"github.com/noah-isme/phlebotomy-portal/pkg/response"
)

// RequireRoles admits sessions whose role is listed. Other roles are sent to the not-found page.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	allowed := make(map[models.UserRole]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		session, ok := CurrentSession(c)
		if !ok {
			Unauthenticated(c, appErrors.ErrMissingCredential)
			return
		}
		if _, ok := allowed[session.Role]; ok {
			c.Next()
			return
		}
		if response.WantsJSON(c) {
			response.Error(c, appErrors.ErrForbidden)
			return
		}
		c.Redirect(http.StatusSeeOther, NotFoundPath)
		c.Abort()
	}
}
