package handler

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/phlebotomy-portal/internal/models"
	"github.com/noah-isme/phlebotomy-portal/internal/service"
)

const (
	newAppointmentRoute = "/admin/appointments/new"
	newEmployeeRoute    = "/admin/employees/new"
	newLaboratoryRoute  = "/admin/laboratories/new"
)

type intakeService interface {
	CreateAppointment(ctx context.Context, creds service.Credentials, form models.CreateAppointmentForm, image *service.Upload, documents []service.Upload) (string, error)
	AddEmployee(ctx context.Context, creds service.Credentials, form models.AddEmployeeForm, image *service.Upload) (string, error)
	AddLaboratory(ctx context.Context, creds service.Credentials, form models.AddLaboratoryForm, image *service.Upload) (string, error)
}

type intakeChoices interface {
	Employees(ctx context.Context, creds service.Credentials) ([]models.Employee, error)
	LaboratoryChoices(ctx context.Context, creds service.Credentials) []string
}

// AppointmentFormView carries the choices offered by the appointment form.
type AppointmentFormView struct {
	Employees    []models.Employee          `json:"employees"`
	Laboratories []string                   `json:"laboratories"`
	Priorities   []models.Priority          `json:"priorities"`
	Statuses     []models.AppointmentStatus `json:"statuses"`
}

// EmployeeFormView carries the choices offered by the employee form.
type EmployeeFormView struct {
	Departments []string `json:"departments"`
}

// LaboratoryFormView carries the days offered by the laboratory form.
type LaboratoryFormView struct {
	WeekDays []string `json:"week_days"`
}

// IntakeHandler serves the appointment, employee and laboratory creation forms.
type IntakeHandler struct {
	service  intakeService
	choices  intakeChoices
	sessions sessionBinder
	logger   *zap.Logger
}

// NewIntakeHandler constructs the handler.
func NewIntakeHandler(service intakeService, choices intakeChoices, sessions sessionBinder, logger *zap.Logger) *IntakeHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &IntakeHandler{service: service, choices: choices, sessions: sessions, logger: logger}
}

// NewAppointmentPage renders the appointment form.
func (h *IntakeHandler) NewAppointmentPage(c *gin.Context) {
	ctx := c.Request.Context()
	creds := credentialsFor(c, h.sessions)
	employees, err := h.choices.Employees(ctx, creds)
	if err != nil {
		if credentialFailure(err) {
			fail(c, err)
			return
		}
		h.logger.Warn("employee choices unavailable", zap.Error(err))
	}
	render(c, http.StatusOK, "appointment_new.html", "New appointment", AppointmentFormView{
		Employees:    employees,
		Laboratories: h.choices.LaboratoryChoices(ctx, creds),
		Priorities:   models.Priorities,
		Statuses:     models.AppointmentStatuses,
	}, nil)
}

// CreateAppointment godoc
// @Summary Create appointment
// @Description Validates the form and forwards it with the optional image and documents.
// @Tags Intake
// @Accept multipart/form-data
// @Produce json
// @Param image formData file false "Patient image"
// @Param documents formData file false "Supporting documents"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /admin/appointments/new [post]
func (h *IntakeHandler) CreateAppointment(c *gin.Context) {
	var form models.CreateAppointmentForm
	if err := c.ShouldBind(&form); err != nil {
		rejected(c, newAppointmentRoute, bindError(err, "invalid appointment form"))
		return
	}
	image, closeImage, err := formUpload(c, "image")
	if err != nil {
		rejected(c, newAppointmentRoute, bindError(err, "could not read the uploaded image"))
		return
	}
	defer closeImage()
	documents, closeDocuments, err := formUploads(c, "documents")
	if err != nil {
		rejected(c, newAppointmentRoute, bindError(err, "could not read the uploaded documents"))
		return
	}
	defer closeDocuments()

	msg, err := h.service.CreateAppointment(c.Request.Context(), credentialsFor(c, h.sessions), form, image, documents)
	if err != nil {
		rejected(c, newAppointmentRoute, err)
		return
	}
	if msg == "" {
		msg = "Appointment created"
	}
	done(c, "/admin/appointments?refresh=1", msg, nil)
}

// NewEmployeePage renders the employee onboarding form.
func (h *IntakeHandler) NewEmployeePage(c *gin.Context) {
	render(c, http.StatusOK, "employee_new.html", "Add employee", EmployeeFormView{Departments: models.Departments}, nil)
}

// AddEmployee godoc
// @Summary Add employee
// @Tags Intake
// @Accept multipart/form-data
// @Produce json
// @Param image formData file false "Profile image"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /admin/employees/new [post]
func (h *IntakeHandler) AddEmployee(c *gin.Context) {
	var form models.AddEmployeeForm
	if err := c.ShouldBind(&form); err != nil {
		rejected(c, newEmployeeRoute, bindError(err, "invalid employee form"))
		return
	}
	image, closeImage, err := formUpload(c, "image")
	if err != nil {
		rejected(c, newEmployeeRoute, bindError(err, "could not read the uploaded image"))
		return
	}
	defer closeImage()

	msg, err := h.service.AddEmployee(c.Request.Context(), credentialsFor(c, h.sessions), form, image)
	if err != nil {
		rejected(c, newEmployeeRoute, err)
		return
	}
	if msg == "" {
		msg = "Employee added"
	}
	done(c, employeesRoute, msg, nil)
}

// NewLaboratoryPage renders the laboratory onboarding form.
func (h *IntakeHandler) NewLaboratoryPage(c *gin.Context) {
	render(c, http.StatusOK, "laboratory_new.html", "Add laboratory", LaboratoryFormView{WeekDays: models.WeekDays}, nil)
}

// AddLaboratory godoc
// @Summary Add laboratory
// @Description Registers a laboratory account with its weekly opening times.
// @Tags Intake
// @Accept multipart/form-data
// @Accept json
// @Produce json
// @Param image formData file false "Laboratory image"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /admin/laboratories/new [post]
func (h *IntakeHandler) AddLaboratory(c *gin.Context) {
	var form models.AddLaboratoryForm
	if err := c.ShouldBind(&form); err != nil {
		rejected(c, newLaboratoryRoute, bindError(err, "invalid laboratory form"))
		return
	}
	if len(form.Timings) == 0 {
		form.Timings = models.TimingsFromForm(c.PostFormMap("opens"), c.PostFormMap("closes"))
	}
	image, closeImage, err := formUpload(c, "image")
	if err != nil {
		rejected(c, newLaboratoryRoute, bindError(err, "could not read the uploaded image"))
		return
	}
	defer closeImage()

	msg, err := h.service.AddLaboratory(c.Request.Context(), credentialsFor(c, h.sessions), form, image)
	if err != nil {
		rejected(c, newLaboratoryRoute, err)
		return
	}
	if msg == "" {
		msg = "Laboratory added"
	}
	done(c, laboratoriesRoute, msg, nil)
}

// formUpload opens the first file of field. A missing file yields nil.
func formUpload(c *gin.Context, field string) (*service.Upload, func(), error) {
	files, closeAll, err := formUploads(c, field)
	if err != nil || len(files) == 0 {
		return nil, closeAll, err
	}
	return &files[0], closeAll, nil
}

func formUploads(c *gin.Context, field string) ([]service.Upload, func(), error) {
	form, err := c.MultipartForm()
	if err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			return nil, func() {}, nil
		}
		return nil, func() {}, err
	}
	headers := form.File[field]
	out := make([]service.Upload, 0, len(headers))
	opened := make([]io.Closer, 0, len(headers))
	closeAll := func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}
	for _, header := range headers {
		file, err := header.Open()
		if err != nil {
			closeAll()
			return nil, func() {}, err
		}
		opened = append(opened, file)
		out = append(out, service.Upload{Field: field, Filename: header.Filename, Size: header.Size, Content: file})
	}
	return out, closeAll, nil
}
