package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/phlebotomy-portal/internal/models"
	"github.com/noah-isme/phlebotomy-portal/internal/service"
)

type dashboardService interface {
	Admin(ctx context.Context, creds service.Credentials) (models.AdminDashboard, error)
	Employee(ctx context.Context, creds service.Credentials) (models.EmployeeDashboard, error)
	Laboratory(ctx context.Context, creds service.Credentials) (models.LaboratoryDashboard, error)
}

// DashboardHandler wires dashboard service to HTTP endpoints.
type DashboardHandler struct {
	service  dashboardService
	sessions sessionBinder
}

// NewDashboardHandler constructs the handler.
func NewDashboardHandler(service dashboardService, sessions sessionBinder) *DashboardHandler {
	return &DashboardHandler{service: service, sessions: sessions}
}

// Admin godoc
// @Summary Admin dashboard
// @Tags Dashboard
// @Produce json
// @Produce html
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /admin/dashboard [get]
func (h *DashboardHandler) Admin(c *gin.Context) {
	summary, err := h.service.Admin(c.Request.Context(), credentialsFor(c, h.sessions))
	if err != nil {
		fail(c, err)
		return
	}
	render(c, http.StatusOK, "dashboard_admin.html", "Dashboard", summary, nil)
}

// Employee godoc
// @Summary Employee dashboard
// @Tags Dashboard
// @Produce json
// @Produce html
// @Success 200 {object} response.Envelope
// @Router /employee/dashboard [get]
func (h *DashboardHandler) Employee(c *gin.Context) {
	summary, err := h.service.Employee(c.Request.Context(), credentialsFor(c, h.sessions))
	if err != nil {
		fail(c, err)
		return
	}
	render(c, http.StatusOK, "dashboard_employee.html", "Dashboard", summary, nil)
}

// Laboratory godoc
// @Summary Laboratory dashboard
// @Description Appointment counters and weekly volume for the signed-in laboratory.
// @Tags Dashboard
// @Produce json
// @Produce html
// @Success 200 {object} response.Envelope
// @Router /laboratory/dashboard [get]
func (h *DashboardHandler) Laboratory(c *gin.Context) {
	summary, err := h.service.Laboratory(c.Request.Context(), credentialsFor(c, h.sessions))
	if err != nil {
		fail(c, err)
		return
	}
	render(c, http.StatusOK, "dashboard_laboratory.html", "Dashboard", summary, nil)
}
