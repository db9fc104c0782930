package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/phlebotomy-portal/internal/models"
	"github.com/noah-isme/phlebotomy-portal/internal/service"
)

const (
	employeesRoute    = "/admin/employees"
	laboratoriesRoute = "/admin/laboratories"
)

type directoryService interface {
	ActiveEmployees(ctx context.Context, creds service.Credentials) ([]models.Employee, error)
	Laboratories(ctx context.Context, creds service.Credentials) ([]models.Laboratory, error)
	DeleteEmployee(ctx context.Context, creds service.Credentials, id string) (string, error)
	DeleteLaboratory(ctx context.Context, creds service.Credentials, id string) (string, error)
}

// DirectoryHandler lists and removes employees and laboratories.
type DirectoryHandler struct {
	service  directoryService
	sessions sessionBinder
}

// NewDirectoryHandler constructs the handler.
func NewDirectoryHandler(service directoryService, sessions sessionBinder) *DirectoryHandler {
	return &DirectoryHandler{service: service, sessions: sessions}
}

// Employees godoc
// @Summary Active employees
// @Tags Directory
// @Produce json
// @Produce html
// @Success 200 {object} response.Envelope
// @Router /admin/employees [get]
func (h *DirectoryHandler) Employees(c *gin.Context) {
	items, err := h.service.ActiveEmployees(c.Request.Context(), credentialsFor(c, h.sessions))
	if err != nil {
		fail(c, err)
		return
	}
	render(c, http.StatusOK, "employees.html", "Employees", items, nil)
}

// DeleteEmployee godoc
// @Summary Delete employee
// @Tags Directory
// @Produce json
// @Param id path string true "Employee ID"
// @Success 200 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /admin/employees/{id}/delete [post]
func (h *DirectoryHandler) DeleteEmployee(c *gin.Context) {
	msg, err := h.service.DeleteEmployee(c.Request.Context(), credentialsFor(c, h.sessions), c.Param("id"))
	if err != nil {
		rejected(c, employeesRoute, err)
		return
	}
	if msg == "" {
		msg = "Employee deleted"
	}
	done(c, employeesRoute, msg, nil)
}

// Laboratories godoc
// @Summary Laboratories
// @Tags Directory
// @Produce json
// @Produce html
// @Success 200 {object} response.Envelope
// @Router /admin/laboratories [get]
func (h *DirectoryHandler) Laboratories(c *gin.Context) {
	items, err := h.service.Laboratories(c.Request.Context(), credentialsFor(c, h.sessions))
	if err != nil {
		fail(c, err)
		return
	}
	render(c, http.StatusOK, "laboratories.html", "Laboratories", items, nil)
}

// DeleteLaboratory godoc
// @Summary Delete laboratory
// @Tags Directory
// @Produce json
// @Param id path string true "Laboratory ID"
// @Success 200 {object} response.Envelope
// @Router /admin/laboratories/{id}/delete [post]
func (h *DirectoryHandler) DeleteLaboratory(c *gin.Context) {
	msg, err := h.service.DeleteLaboratory(c.Request.Context(), credentialsFor(c, h.sessions), c.Param("id"))
	if err != nil {
		rejected(c, laboratoriesRoute, err)
		return
	}
	if msg == "" {
		msg = "Laboratory deleted"
	}
	done(c, laboratoriesRoute, msg, nil)
}
