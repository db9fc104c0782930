package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/phlebotomy-portal/internal/middleware"
	"github.com/noah-isme/phlebotomy-portal/internal/models"
	"github.com/noah-isme/phlebotomy-portal/internal/service"
)

const (
	accountRoute  = "/account"
	passwordRoute = "/account/password"
)

type accountService interface {
	Profile(ctx context.Context, creds service.Credentials, role models.UserRole) (models.Profile, error)
	ChangePassword(ctx context.Context, creds service.Credentials, req models.ChangePasswordRequest) (string, error)
	ToggleNotifications(ctx context.Context, creds service.Credentials) (string, error)
	ToggleAccount(ctx context.Context, creds service.Credentials) (string, error)
}

type profileEditor interface {
	UpdateProfile(ctx context.Context, creds service.Credentials, role models.UserRole, form models.UpdateProfileForm, image *service.Upload) (string, error)
}

// AccountView is the signed-in account with the choices its settings form offers.
type AccountView struct {
	models.Profile
	WeekDays []string `json:"-"`
	Genders  []string `json:"-"`
}

// AccountHandler serves the account page, its settings and the password change.
type AccountHandler struct {
	accounts accountService
	profiles profileEditor
	sessions sessionBinder
}

// NewAccountHandler constructs the handler.
func NewAccountHandler(accounts accountService, profiles profileEditor, sessions sessionBinder) *AccountHandler {
	return &AccountHandler{accounts: accounts, profiles: profiles, sessions: sessions}
}

// Account godoc
// @Summary Current account
// @Tags Account
// @Produce json
// @Produce html
// @Success 200 {object} response.Envelope
// @Router /account [get]
func (h *AccountHandler) Account(c *gin.Context) {
	session := sessionFromContext(c)
	if session == nil {
		middleware.Unauthenticated(c, nil)
		return
	}
	profile, err := h.accounts.Profile(c.Request.Context(), credentialsFor(c, h.sessions), session.Role)
	if err != nil {
		fail(c, err)
		return
	}
	render(c, http.StatusOK, "account.html", "Account", AccountView{
		Profile:  profile,
		WeekDays: models.WeekDays,
		Genders:  models.Genders,
	}, nil)
}

// UpdateProfile godoc
// @Summary Update account settings
// @Description Saves the profile fields for the caller's role with an optional new image.
// @Tags Account
// @Accept multipart/form-data
// @Accept json
// @Produce json
// @Param image formData file false "Profile image"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /account/profile [post]
func (h *AccountHandler) UpdateProfile(c *gin.Context) {
	session := sessionFromContext(c)
	if session == nil {
		middleware.Unauthenticated(c, nil)
		return
	}
	var form models.UpdateProfileForm
	if err := c.ShouldBind(&form); err != nil {
		rejected(c, accountRoute, bindError(err, "invalid profile form"))
		return
	}
	if len(form.Timings) == 0 {
		form.Timings = models.TimingsFromForm(c.PostFormMap("opens"), c.PostFormMap("closes"))
	}
	image, closeImage, err := formUpload(c, "image")
	if err != nil {
		rejected(c, accountRoute, bindError(err, "could not read the uploaded image"))
		return
	}
	defer closeImage()

	msg, err := h.profiles.UpdateProfile(c.Request.Context(), credentialsFor(c, h.sessions), session.Role, form, image)
	if err != nil {
		rejected(c, accountRoute, err)
		return
	}
	done(c, accountRoute, msg, nil)
}

// ToggleNotifications godoc
// @Summary Toggle notifications
// @Tags Account
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /account/notifications/toggle [post]
func (h *AccountHandler) ToggleNotifications(c *gin.Context) {
	h.toggle(c, h.accounts.ToggleNotifications)
}

// ToggleAccount godoc
// @Summary Toggle account status
// @Tags Account
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /account/status/toggle [post]
func (h *AccountHandler) ToggleAccount(c *gin.Context) {
	h.toggle(c, h.accounts.ToggleAccount)
}

func (h *AccountHandler) toggle(c *gin.Context, flip func(context.Context, service.Credentials) (string, error)) {
	msg, err := flip(c.Request.Context(), credentialsFor(c, h.sessions))
	if err != nil {
		rejected(c, accountRoute, err)
		return
	}
	done(c, accountRoute, msg, nil)
}

// PasswordPage renders the password change form.
func (h *AccountHandler) PasswordPage(c *gin.Context) {
	render(c, http.StatusOK, "password.html", "Change password", nil, nil)
}

// ChangePassword godoc
// @Summary Change password
// @Tags Account
// @Accept json
// @Accept x-www-form-urlencoded
// @Produce json
// @Param payload body models.ChangePasswordRequest true "Change password"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /account/password [post]
func (h *AccountHandler) ChangePassword(c *gin.Context) {
	var req models.ChangePasswordRequest
	if err := c.ShouldBind(&req); err != nil {
		rejected(c, passwordRoute, bindError(err, "invalid password payload"))
		return
	}
	msg, err := h.accounts.ChangePassword(c.Request.Context(), credentialsFor(c, h.sessions), req)
	if err != nil {
		rejected(c, passwordRoute, err)
		return
	}
	if msg == "" {
		msg = "Password changed"
	}
	done(c, passwordRoute, msg, nil)
}
