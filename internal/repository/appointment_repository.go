package repository

import (
	"context"
	"net/http"
	"net/url"

	"github.com/noah-isme/phlebotomy-portal/internal/models"
	"github.com/noah-isme/phlebotomy-portal/pkg/apiclient"
)

// Appointment list endpoints, relative to the API prefix.
const (
	PathAdminAppointments    = "/admin/get-appointments"
	PathAdminArchive         = "/admin/get-archeived"
	PathEmployeeAppointments = "/employee/get-appointments"
	PathEmployeeArchive      = "/employee/get-archeived"
	PathEmployeeToday        = "/employee/get-today-appointments"

	pathUpdateAppointment = "/admin/update-appointment/"
	pathAssignAppointment = "/admin/assign-appointment/"
	pathCreateAppointment = "/admin/create-appointment"
)

// AppointmentRepository reads and mutates appointments through the API.
type AppointmentRepository struct {
	api Upstream
}

// NewAppointmentRepository constructs the repository.
func NewAppointmentRepository(api Upstream) *AppointmentRepository {
	return &AppointmentRepository{api: api}
}

// List fetches one page from a list endpoint.
func (r *AppointmentRepository) List(ctx context.Context, token, path string, query url.Values) (models.AppointmentPage, error) {
	var page models.AppointmentPage
	_, err := r.api.Do(ctx, apiclient.Request{
		Method:   http.MethodGet,
		Path:     path,
		Query:    query,
		Token:    token,
		Fallback: "Failed to fetch appointments",
	}, &page)
	if err != nil {
		return models.AppointmentPage{}, err
	}
	if page.TotalPages < 1 {
		page.TotalPages = 1
	}
	return page, nil
}

// UpdateStatus sets the status of one appointment and returns the confirmation message.
func (r *AppointmentRepository) UpdateStatus(ctx context.Context, token, id string, status models.AppointmentStatus) (string, error) {
	res, err := r.api.Do(ctx, apiclient.Request{
		Method:   http.MethodPost,
		Path:     pathUpdateAppointment + url.PathEscape(id),
		Endpoint: "admin.update-appointment",
		Body:     map[string]models.AppointmentStatus{"status": status},
		Token:    token,
		Fallback: "Failed to update status",
	}, nil)
	if err != nil {
		return "", err
	}
	return messageOr(res, "Status updated successfully"), nil
}

// Assign assigns an employee to one appointment and returns the confirmation message.
func (r *AppointmentRepository) Assign(ctx context.Context, token, id, employeeID string) (string, error) {
	res, err := r.api.Do(ctx, apiclient.Request{
		Method:   http.MethodPost,
		Path:     pathAssignAppointment + url.PathEscape(id),
		Endpoint: "admin.assign-appointment",
		Body:     map[string]string{"employeeId": employeeID},
		Token:    token,
		Fallback: "Failed to assign employee",
	}, nil)
	if err != nil {
		return "", err
	}
	return messageOr(res, "Employee assigned successfully"), nil
}

// Create submits a new appointment with its optional image and documents.
func (r *AppointmentRepository) Create(ctx context.Context, token string, fields map[string]string, files []apiclient.File) (string, error) {
	res, err := r.api.DoMultipart(ctx, apiclient.MultipartRequest{
		Path:     pathCreateAppointment,
		Token:    token,
		Fields:   fields,
		Files:    files,
		Fallback: "Failed to create appointment",
	}, nil)
	if err != nil {
		return "", err
	}
	return messageOr(res, "Appointment created successfully!"), nil
}
