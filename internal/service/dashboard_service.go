package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/noah-isme/phlebotomy-portal/internal/models"
)

type dashboardSource interface {
	Admin(ctx context.Context, token string) (models.AdminDashboard, error)
	Employee(ctx context.Context, token string) (models.EmployeeDashboard, error)
	Laboratory(ctx context.Context, token string) (models.LaboratoryDashboard, error)
}

// DashboardService loads the landing metrics for each role.
type DashboardService struct {
	repo   dashboardSource
	logger *zap.Logger
}

// NewDashboardService constructs a DashboardService.
func NewDashboardService(repo dashboardSource, logger *zap.Logger) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{repo: repo, logger: logger}
}

// Admin returns the admin metrics.
func (s *DashboardService) Admin(ctx context.Context, creds Credentials) (models.AdminDashboard, error) {
	return withToken(ctx, creds, s.repo.Admin)
}

// Employee returns the metrics of the signed-in employee.
func (s *DashboardService) Employee(ctx context.Context, creds Credentials) (models.EmployeeDashboard, error) {
	return withToken(ctx, creds, s.repo.Employee)
}

// Laboratory returns the metrics and weekly series of the signed-in laboratory.
func (s *DashboardService) Laboratory(ctx context.Context, creds Credentials) (models.LaboratoryDashboard, error) {
	return withToken(ctx, creds, s.repo.Laboratory)
}

// withToken runs fetch with the current credential and drops it if the API rejects it.
func withToken[T any](ctx context.Context, creds Credentials, fetch func(context.Context, string) (T, error)) (T, error) {
	var zero T
	token, err := creds.Token(ctx)
	if err != nil {
		return zero, err
	}
	out, err := fetch(ctx, token)
	if err != nil {
		rejectCredential(ctx, creds, err)
		return zero, err
	}
	return out, nil
}
