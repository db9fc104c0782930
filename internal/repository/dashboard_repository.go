package repository

import (
	"context"
	"net/http"

	"github.com/noah-isme/phlebotomy-portal/internal/models"
	"github.com/noah-isme/phlebotomy-portal/pkg/apiclient"
)

const (
	pathAdminDashboard      = "/admin/get-dashboard"
	pathEmployeeDashboard   = "/employee/get-dashboard"
	pathLaboratoryDashboard = "/laboratory/get-dashboard"
)

// DashboardRepository reads the per-role landing metrics.
type DashboardRepository struct {
	api Upstream
}

// NewDashboardRepository constructs the repository.
func NewDashboardRepository(api Upstream) *DashboardRepository {
	return &DashboardRepository{api: api}
}

// Admin returns admin metrics.
func (r *DashboardRepository) Admin(ctx context.Context, token string) (models.AdminDashboard, error) {
	var out models.AdminDashboard
	_, err := r.api.Do(ctx, apiclient.Request{Method: http.MethodGet, Path: pathAdminDashboard, Token: token, Fallback: "Failed to fetch dashboard data"}, &out)
	return out, err
}

// Employee returns employee metrics.
func (r *DashboardRepository) Employee(ctx context.Context, token string) (models.EmployeeDashboard, error) {
	var out models.EmployeeDashboard
	_, err := r.api.Do(ctx, apiclient.Request{Method: http.MethodGet, Path: pathEmployeeDashboard, Token: token, Fallback: "Failed to fetch dashboard data"}, &out)
	return out, err
}

// Laboratory returns laboratory metrics and weekly series.
func (r *DashboardRepository) Laboratory(ctx context.Context, token string) (models.LaboratoryDashboard, error) {
	var out models.LaboratoryDashboard
	_, err := r.api.Do(ctx, apiclient.Request{Method: http.MethodGet, Path: pathLaboratoryDashboard, Token: token, Fallback: "Failed to fetch dashboard data"}, &out)
	return out, err
}
