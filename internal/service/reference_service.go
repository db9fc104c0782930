package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/phlebotomy-portal/internal/models"
	"github.com/noah-isme/phlebotomy-portal/pkg/apiclient"
)

const (
	cacheKeyEmployees       = "refs:employees"
	cacheKeyActiveEmployees = "refs:employees:active"
	cacheKeyLaboratories    = "refs:laboratories"
)

type referenceSource interface {
	Employees(ctx context.Context, token string) ([]models.Employee, error)
	ActiveEmployees(ctx context.Context, token string) ([]models.Employee, error)
	Laboratories(ctx context.Context, token string) ([]models.Laboratory, error)
	AddEmployee(ctx context.Context, token string, fields map[string]string, files []apiclient.File) (string, error)
	AddLaboratory(ctx context.Context, token string, fields map[string]string, files []apiclient.File) (string, error)
	DeleteEmployee(ctx context.Context, token, id string) (string, error)
	DeleteLaboratory(ctx context.Context, token, id string) (string, error)
}

// ReferenceService serves the employee and laboratory directories, cached when Redis is enabled.
type ReferenceService struct {
	repo   referenceSource
	cache  *CacheService
	ttl    time.Duration
	logger *zap.Logger
}

// NewReferenceService constructs a ReferenceService.
func NewReferenceService(repo referenceSource, cache *CacheService, ttl time.Duration, logger *zap.Logger) *ReferenceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReferenceService{repo: repo, cache: cache, ttl: ttl, logger: logger}
}

// Employees returns every employee, used by the assign and employee filter controls.
func (s *ReferenceService) Employees(ctx context.Context, creds Credentials) ([]models.Employee, error) {
	return cachedList(ctx, s, creds, cacheKeyEmployees, s.repo.Employees)
}

// ActiveEmployees returns the employee directory.
func (s *ReferenceService) ActiveEmployees(ctx context.Context, creds Credentials) ([]models.Employee, error) {
	return cachedList(ctx, s, creds, cacheKeyActiveEmployees, s.repo.ActiveEmployees)
}

// Laboratories returns registered laboratories.
func (s *ReferenceService) Laboratories(ctx context.Context, creds Credentials) ([]models.Laboratory, error) {
	return cachedList(ctx, s, creds, cacheKeyLaboratories, s.repo.Laboratories)
}

// LaboratoryChoices returns the laboratory filter options. A failed fetch degrades to the fixed options.
func (s *ReferenceService) LaboratoryChoices(ctx context.Context, creds Credentials) []string {
	labs, err := s.Laboratories(ctx, creds)
	if err != nil {
		s.logger.Warn("laboratory choices degraded to fixed options", zap.Error(err))
	}
	return models.LaboratoryChoices(labs)
}

// AddEmployee onboards an employee and drops the cached employee lists.
func (s *ReferenceService) AddEmployee(ctx context.Context, creds Credentials, fields map[string]string, files []apiclient.File) (string, error) {
	return s.add(ctx, creds, fields, files, cacheKeyEmployees+"*", s.repo.AddEmployee)
}

// AddLaboratory registers a laboratory and drops the cached laboratory list.
func (s *ReferenceService) AddLaboratory(ctx context.Context, creds Credentials, fields map[string]string, files []apiclient.File) (string, error) {
	return s.add(ctx, creds, fields, files, cacheKeyLaboratories+"*", s.repo.AddLaboratory)
}

func (s *ReferenceService) add(ctx context.Context, creds Credentials, fields map[string]string, files []apiclient.File, pattern string, submit func(context.Context, string, map[string]string, []apiclient.File) (string, error)) (string, error) {
	token, err := creds.Token(ctx)
	if err != nil {
		return "", err
	}
	msg, err := submit(ctx, token, fields, files)
	if err != nil {
		rejectCredential(ctx, creds, err)
		return "", err
	}
	s.cache.Invalidate(ctx, pattern)
	return msg, nil
}

// DeleteEmployee removes an employee and drops the cached employee lists.
func (s *ReferenceService) DeleteEmployee(ctx context.Context, creds Credentials, id string) (string, error) {
	return s.remove(ctx, creds, id, cacheKeyEmployees+"*", s.repo.DeleteEmployee)
}

// DeleteLaboratory removes a laboratory and drops the cached laboratory list.
func (s *ReferenceService) DeleteLaboratory(ctx context.Context, creds Credentials, id string) (string, error) {
	return s.remove(ctx, creds, id, cacheKeyLaboratories+"*", s.repo.DeleteLaboratory)
}

func (s *ReferenceService) remove(ctx context.Context, creds Credentials, id, pattern string, del func(context.Context, string, string) (string, error)) (string, error) {
	token, err := creds.Token(ctx)
	if err != nil {
		return "", err
	}
	msg, err := del(ctx, token, id)
	if err != nil {
		rejectCredential(ctx, creds, err)
		return "", err
	}
	s.cache.Invalidate(ctx, pattern)
	return msg, nil
}

func cachedList[T any](ctx context.Context, s *ReferenceService, creds Credentials, key string, fetch func(context.Context, string) ([]T, error)) ([]T, error) {
	token, err := creds.Token(ctx)
	if err != nil {
		return nil, err
	}
	var cached []T
	if s.cache.Get(ctx, key, &cached) {
		return cached, nil
	}
	items, err := fetch(ctx, token)
	if err != nil {
		rejectCredential(ctx, creds, err)
		return nil, err
	}
	s.cache.Set(ctx, key, items, s.ttl)
	return items, nil
}
