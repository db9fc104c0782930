package repository

import (
	"context"
	"net/http"
	"net/url"

	"github.com/noah-isme/phlebotomy-portal/internal/models"
	"github.com/noah-isme/phlebotomy-portal/pkg/apiclient"
)

const (
	pathEmployees        = "/admin/get-employees"
	pathActiveEmployees  = "/admin/get-active-employees"
	pathLaboratories     = "/admin/get-laboratories"
	pathAddEmployee      = "/admin/add-employee"
	pathAddLaboratory    = "/admin/add-laboratory"
	pathDeleteEmployee   = "/admin/delete-employee/"
	pathDeleteLaboratory = "/admin/delete-laboratory/"
)

// ReferenceRepository reads the employee and laboratory directories.
type ReferenceRepository struct {
	api Upstream
}

// NewReferenceRepository constructs the repository.
func NewReferenceRepository(api Upstream) *ReferenceRepository {
	return &ReferenceRepository{api: api}
}

// Employees lists every employee.
func (r *ReferenceRepository) Employees(ctx context.Context, token string) ([]models.Employee, error) {
	return r.employees(ctx, token, pathEmployees, "Failed to fetch employees")
}

// ActiveEmployees lists employees currently on shift.
func (r *ReferenceRepository) ActiveEmployees(ctx context.Context, token string) ([]models.Employee, error) {
	return r.employees(ctx, token, pathActiveEmployees, "Failed to fetch active employees")
}

func (r *ReferenceRepository) employees(ctx context.Context, token, path, fallback string) ([]models.Employee, error) {
	var out []models.Employee
	if _, err := r.api.Do(ctx, apiclient.Request{Method: http.MethodGet, Path: path, Token: token, Fallback: fallback}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Laboratories lists registered laboratories.
func (r *ReferenceRepository) Laboratories(ctx context.Context, token string) ([]models.Laboratory, error) {
	var out []models.Laboratory
	if _, err := r.api.Do(ctx, apiclient.Request{Method: http.MethodGet, Path: pathLaboratories, Token: token, Fallback: "Failed to fetch laboratories"}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AddEmployee onboards an employee with an optional profile image.
func (r *ReferenceRepository) AddEmployee(ctx context.Context, token string, fields map[string]string, files []apiclient.File) (string, error) {
	res, err := r.api.DoMultipart(ctx, apiclient.MultipartRequest{
		Path:     pathAddEmployee,
		Token:    token,
		Fields:   fields,
		Files:    files,
		Fallback: "Failed to add employee",
	}, nil)
	if err != nil {
		return "", err
	}
	return messageOr(res, "Employee added successfully!"), nil
}

// AddLaboratory registers a laboratory account with its weekly timings and an optional image.
func (r *ReferenceRepository) AddLaboratory(ctx context.Context, token string, fields map[string]string, files []apiclient.File) (string, error) {
	res, err := r.api.DoMultipart(ctx, apiclient.MultipartRequest{
		Path:     pathAddLaboratory,
		Token:    token,
		Fields:   fields,
		Files:    files,
		Fallback: "Failed to add laboratory",
	}, nil)
	if err != nil {
		return "", err
	}
	return messageOr(res, "Laboratory added successfully!"), nil
}

// DeleteEmployee removes an employee.
func (r *ReferenceRepository) DeleteEmployee(ctx context.Context, token, id string) (string, error) {
	return r.delete(ctx, token, pathDeleteEmployee+url.PathEscape(id), "admin.delete-employee", "Failed to delete employee", "Employee deleted successfully")
}

// DeleteLaboratory removes a laboratory.
func (r *ReferenceRepository) DeleteLaboratory(ctx context.Context, token, id string) (string, error) {
	return r.delete(ctx, token, pathDeleteLaboratory+url.PathEscape(id), "admin.delete-laboratory", "Failed to delete laboratory", "Laboratory deleted successfully")
}

func (r *ReferenceRepository) delete(ctx context.Context, token, path, endpoint, fallback, success string) (string, error) {
	res, err := r.api.Do(ctx, apiclient.Request{Method: http.MethodPost, Path: path, Endpoint: endpoint, Body: struct{}{}, Token: token, Fallback: fallback}, nil)
	if err != nil {
		return "", err
	}
	return messageOr(res, success), nil
}
