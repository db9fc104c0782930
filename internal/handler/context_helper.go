package handler

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/phlebotomy-portal/internal/middleware"
	"github.com/noah-isme/phlebotomy-portal/internal/models"
	"github.com/noah-isme/phlebotomy-portal/internal/service"
	appErrors "github.com/noah-isme/phlebotomy-portal/pkg/errors"
	"github.com/noah-isme/phlebotomy-portal/pkg/response"
)

const (
	noticeParam = "notice"
	errorParam  = "error"
)

type sessionBinder interface {
	Bind(id string) service.Credentials
}

// page is the data handed to every HTML template.
type page struct {
	Title   string
	Session *models.Session
	Notice  string
	Error   string
	Data    interface{}
}

func sessionFromContext(c *gin.Context) *models.Session {
	session, ok := middleware.CurrentSession(c)
	if !ok {
		return nil
	}
	return session
}

func sessionID(c *gin.Context) string {
	if session := sessionFromContext(c); session != nil {
		return session.ID
	}
	return ""
}

func credentialsFor(c *gin.Context, binder sessionBinder) service.Credentials {
	return binder.Bind(sessionID(c))
}

// render answers with the JSON envelope or the named template.
func render(c *gin.Context, status int, name, title string, data interface{}, pagination *models.Pagination) {
	if response.WantsJSON(c) {
		response.JSON(c, status, data, pagination, middleware.ExtractMeta(c))
		return
	}
	response.HTML(c, status, name, page{
		Title:   title,
		Session: sessionFromContext(c),
		Notice:  c.Query(noticeParam),
		Error:   c.Query(errorParam),
		Data:    data,
	})
}

// fail reports err. Credential failures end the session flow; others render the error page.
func fail(c *gin.Context, err error) {
	if credentialFailure(err) {
		middleware.Unauthenticated(c, err)
		return
	}
	if response.WantsJSON(c) {
		response.Error(c, err)
		return
	}
	appErr := appErrors.FromError(err)
	_ = c.Error(err)
	response.HTML(c, appErr.Status, "error.html", page{
		Title:   "Something went wrong",
		Session: sessionFromContext(c),
		Error:   appErr.Message,
	})
	c.Abort()
}

// done completes a form post: pages are redirected to target with a notice, JSON gets the message.
func done(c *gin.Context, target, message string, data interface{}) {
	if response.WantsJSON(c) {
		if data == nil {
			data = gin.H{"message": message}
		}
		response.JSON(c, http.StatusOK, data, nil, middleware.ExtractMeta(c))
		return
	}
	redirectWith(c, target, noticeParam, message)
}

// rejected reports a failed form post. Pages return to target with the error shown.
func rejected(c *gin.Context, target string, err error) {
	if credentialFailure(err) || response.WantsJSON(c) {
		fail(c, err)
		return
	}
	_ = c.Error(err)
	redirectWith(c, target, errorParam, appErrors.FromError(err).Message)
}

func redirectWith(c *gin.Context, target, key, message string) {
	if message != "" {
		u, err := url.Parse(target)
		if err == nil {
			q := u.Query()
			q.Set(key, message)
			u.RawQuery = q.Encode()
			target = u.String()
		}
	}
	c.Redirect(http.StatusSeeOther, target)
	c.Abort()
}

func credentialFailure(err error) bool {
	return appErrors.IsUnauthorized(err)
}

func bindError(err error, message string) error {
	return appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, message)
}
