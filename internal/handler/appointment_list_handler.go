package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/phlebotomy-portal/internal/middleware"
	"github.com/noah-isme/phlebotomy-portal/internal/models"
	"github.com/noah-isme/phlebotomy-portal/internal/service"
	"github.com/noah-isme/phlebotomy-portal/pkg/response"
)

type listRegistry interface {
	Get(sessionID string, variant service.ListVariant, creds service.Credentials) *service.AppointmentList
}

type listReferences interface {
	Employees(ctx context.Context, creds service.Credentials) ([]models.Employee, error)
	LaboratoryChoices(ctx context.Context, creds service.Credentials) []string
}

type snapshotExporter interface {
	Render(snap service.ListSnapshot, format service.ExportFormat) (*service.ExportFile, error)
}

// AppointmentListView is the page model for every appointment list.
type AppointmentListView struct {
	service.ListSnapshot
	Route        string                     `json:"route"`
	Statuses     []models.AppointmentStatus `json:"statuses"`
	Priorities   []models.Priority          `json:"priorities"`
	Laboratories []string                   `json:"laboratories,omitempty"`
}

// HasFilter reports whether the view offers field as a filter control.
func (v AppointmentListView) HasFilter(field string) bool {
	for _, f := range v.Filters {
		if string(f) == field {
			return true
		}
	}
	return false
}

// AppointmentListHandler serves one appointment list variant under route.
type AppointmentListHandler struct {
	route      string
	variant    service.ListVariant
	registry   listRegistry
	sessions   sessionBinder
	references listReferences
	exporter   snapshotExporter
	logger     *zap.Logger
}

// NewAppointmentListHandler constructs a list handler.
func NewAppointmentListHandler(route string, variant service.ListVariant, registry listRegistry, sessions sessionBinder, references listReferences, exporter snapshotExporter, logger *zap.Logger) *AppointmentListHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AppointmentListHandler{
		route:      route,
		variant:    variant,
		registry:   registry,
		sessions:   sessions,
		references: references,
		exporter:   exporter,
		logger:     logger.With(zap.String("view", variant.Name)),
	}
}

// Register mounts the list routes on rg, which must already be rooted at the handler route.
func (h *AppointmentListHandler) Register(rg *gin.RouterGroup, audit func(action string) gin.HandlerFunc) {
	rg.GET("", h.List)
	rg.GET("/export", h.Export)
	rg.GET("/:id", h.Detail)
	rg.POST("/filters", h.ApplyFilters)
	rg.POST("/filters/clear", h.ClearFilters)
	rg.POST("/detail/close", h.CloseDetail)
	if h.variant.StatusEditable {
		rg.POST("/:id/status", audit("appointment.status"), h.ChangeStatus)
	}
	if h.variant.Assignable {
		rg.POST("/:id/assign", audit("appointment.assign"), h.Assign)
	}
}

func (h *AppointmentListHandler) list(c *gin.Context) (*service.AppointmentList, service.Credentials) {
	creds := credentialsFor(c, h.sessions)
	return h.registry.Get(sessionID(c), h.variant, creds), creds
}

// List godoc
// @Summary Appointment list
// @Description Shows the current page of the list. The first visit, refresh=1, page or dir trigger a load.
// @Tags Appointments
// @Produce json
// @Produce html
// @Param page query int false "Page number"
// @Param dir query string false "Relative step (next|prev)"
// @Param refresh query bool false "Reload the current page"
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /admin/appointments [get]
func (h *AppointmentListHandler) List(c *gin.Context) {
	list, creds := h.list(c)
	ctx := c.Request.Context()

	var err error
	switch {
	case c.Query("page") != "":
		n, convErr := strconv.Atoi(c.Query("page"))
		if convErr != nil {
			fail(c, bindError(convErr, "page must be a number"))
			return
		}
		_, err = list.GoToPage(ctx, n)
	case c.Query("dir") != "":
		_, err = list.Paginate(ctx, models.PageDirection(strings.ToLower(c.Query("dir"))))
	}
	if err == nil && (c.Query("refresh") != "" || !list.Loaded()) {
		err = list.Load(ctx)
	}
	if err != nil && (credentialFailure(err) || response.WantsJSON(c)) {
		fail(c, err)
		return
	}

	view := h.view(ctx, list, creds)
	middleware.SetMeta(c, "view", h.variant.Name)
	render(c, http.StatusOK, "appointments.html", h.variant.Title, view, paginationOf(view.ListSnapshot))
}

// Detail godoc
// @Summary Appointment detail
// @Description Opens one appointment of the displayed list.
// @Tags Appointments
// @Produce json
// @Produce html
// @Param id path string true "Appointment ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/appointments/{id} [get]
func (h *AppointmentListHandler) Detail(c *gin.Context) {
	list, creds := h.list(c)
	if !list.Loaded() {
		if err := list.Load(c.Request.Context()); err != nil {
			fail(c, err)
			return
		}
	}
	if _, err := list.OpenDetail(c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	view := h.view(c.Request.Context(), list, creds)
	if response.WantsJSON(c) {
		response.JSON(c, http.StatusOK, view.Detail, nil, middleware.ExtractMeta(c))
		return
	}
	render(c, http.StatusOK, "appointments.html", h.variant.Title, view, paginationOf(view.ListSnapshot))
}

// CloseDetail godoc
// @Summary Close appointment detail
// @Tags Appointments
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /admin/appointments/detail/close [post]
func (h *AppointmentListHandler) CloseDetail(c *gin.Context) {
	list, _ := h.list(c)
	list.CloseDetail()
	done(c, h.route, "", gin.H{"message": "detail closed"})
}

// ApplyFilters godoc
// @Summary Apply filters
// @Description Commits the submitted filters, returns to page 1 and reloads.
// @Tags Appointments
// @Accept json
// @Accept x-www-form-urlencoded
// @Produce json
// @Param payload body models.AppointmentFilter true "Filters"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /admin/appointments/filters [post]
func (h *AppointmentListHandler) ApplyFilters(c *gin.Context) {
	var filter models.AppointmentFilter
	if err := c.ShouldBind(&filter); err != nil {
		rejected(c, h.route, bindError(err, "invalid filters"))
		return
	}
	list, creds := h.list(c)
	draft := models.DraftQuery{Filter: filter}
	list.SetDraft(draft)
	if err := list.ApplyFilters(c.Request.Context(), draft); err != nil {
		rejected(c, h.route, err)
		return
	}
	h.respondSnapshot(c, list, creds)
}

// ClearFilters godoc
// @Summary Clear filters
// @Description Restores the default filters and sort, returns to page 1 and reloads.
// @Tags Appointments
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /admin/appointments/filters/clear [post]
func (h *AppointmentListHandler) ClearFilters(c *gin.Context) {
	list, creds := h.list(c)
	if err := list.ClearFilters(c.Request.Context()); err != nil {
		rejected(c, h.route, err)
		return
	}
	h.respondSnapshot(c, list, creds)
}

// ChangeStatus godoc
// @Summary Change appointment status
// @Tags Appointments
// @Accept json
// @Accept x-www-form-urlencoded
// @Produce json
// @Param id path string true "Appointment ID"
// @Param status formData string true "Pending, Completed or Rejected"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /admin/appointments/{id}/status [post]
func (h *AppointmentListHandler) ChangeStatus(c *gin.Context) {
	var payload struct {
		Status models.AppointmentStatus `json:"status" form:"status"`
	}
	if err := c.ShouldBind(&payload); err != nil {
		rejected(c, h.route, bindError(err, "invalid status payload"))
		return
	}
	list, _ := h.list(c)
	msg, err := list.ChangeStatus(c.Request.Context(), c.Param("id"), payload.Status)
	if err != nil {
		rejected(c, h.route, err)
		return
	}
	if msg == "" {
		msg = "Status updated"
	}
	done(c, h.route, msg, nil)
}

// Assign godoc
// @Summary Assign employee
// @Description Assigns an employee to an unassigned appointment.
// @Tags Appointments
// @Accept json
// @Accept x-www-form-urlencoded
// @Produce json
// @Param id path string true "Appointment ID"
// @Param employeeId formData string true "Employee ID"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /admin/appointments/{id}/assign [post]
func (h *AppointmentListHandler) Assign(c *gin.Context) {
	var payload struct {
		EmployeeID string `json:"employeeId" form:"employeeId"`
	}
	if err := c.ShouldBind(&payload); err != nil {
		rejected(c, h.route, bindError(err, "invalid assignment payload"))
		return
	}
	list, _ := h.list(c)
	msg, err := list.AssignEmployee(c.Request.Context(), c.Param("id"), payload.EmployeeID)
	if err != nil {
		rejected(c, h.route, err)
		return
	}
	if msg == "" {
		msg = "Employee assigned"
	}
	done(c, h.route, msg, nil)
}

// Export godoc
// @Summary Export displayed page
// @Tags Appointments
// @Produce octet-stream
// @Param format query string false "csv, pdf or xlsx"
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /admin/appointments/export [get]
func (h *AppointmentListHandler) Export(c *gin.Context) {
	list, _ := h.list(c)
	if !list.Loaded() {
		if err := list.Load(c.Request.Context()); err != nil {
			fail(c, err)
			return
		}
	}
	file, err := h.exporter.Render(list.Snapshot(), service.ExportFormat(c.Query("format")))
	if err != nil {
		fail(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Body)
}

func (h *AppointmentListHandler) respondSnapshot(c *gin.Context, list *service.AppointmentList, creds service.Credentials) {
	if !response.WantsJSON(c) {
		redirectWith(c, h.route, noticeParam, "")
		return
	}
	view := h.view(c.Request.Context(), list, creds)
	response.JSON(c, http.StatusOK, view, paginationOf(view.ListSnapshot), middleware.ExtractMeta(c))
}

// view decorates the snapshot with selection choices. Reference failures only
// leave the choices empty.
func (h *AppointmentListHandler) view(ctx context.Context, list *service.AppointmentList, creds service.Credentials) AppointmentListView {
	snap := list.Snapshot()
	if h.variant.Assignable && len(snap.Employees) == 0 {
		employees, err := h.references.Employees(ctx, creds)
		if err != nil {
			h.logger.Warn("employee choices unavailable", zap.Error(err))
		} else {
			list.SetEmployees(employees)
			snap = list.Snapshot()
		}
	}
	view := AppointmentListView{
		ListSnapshot: snap,
		Route:        h.route,
		Statuses:     models.AppointmentStatuses,
		Priorities:   models.Priorities,
	}
	if view.HasFilter(string(models.FilterLaboratory)) {
		view.Laboratories = h.references.LaboratoryChoices(ctx, creds)
	}
	return view
}

func paginationOf(snap service.ListSnapshot) *models.Pagination {
	if !snap.Paginated {
		return nil
	}
	p := snap.Pagination
	return &p
}
