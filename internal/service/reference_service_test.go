package service

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/phlebotomy-portal/internal/models"
	"github.com/noah-isme/phlebotomy-portal/pkg/apiclient"
	appErrors "github.com/noah-isme/phlebotomy-portal/pkg/errors"
)

type memoryCacheRepo struct {
	mu    sync.Mutex
	items map[string][]byte
}

func newMemoryCacheRepo() *memoryCacheRepo {
	return &memoryCacheRepo{items: map[string][]byte{}}
}

func (m *memoryCacheRepo) Get(_ context.Context, key string, dest interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.items[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (m *memoryCacheRepo) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = raw
	return nil
}

func (m *memoryCacheRepo) DeleteByPattern(_ context.Context, pattern string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	prefix := strings.TrimSuffix(pattern, "*")
	for key := range m.items {
		if strings.HasPrefix(key, prefix) {
			delete(m.items, key)
		}
	}
	return nil
}

type stubReferenceSource struct {
	employeeCalls int
	labCalls      int
	labsErr       error
	deleted       []string
	added         []map[string]string
}

func (s *stubReferenceSource) Employees(context.Context, string) ([]models.Employee, error) {
	s.employeeCalls++
	return []models.Employee{{ID: "e1", EmployeeID: "EMP-1", FullName: "Ana"}}, nil
}

func (s *stubReferenceSource) ActiveEmployees(context.Context, string) ([]models.Employee, error) {
	return []models.Employee{{ID: "e1"}}, nil
}

func (s *stubReferenceSource) Laboratories(context.Context, string) ([]models.Laboratory, error) {
	s.labCalls++
	if s.labsErr != nil {
		return nil, s.labsErr
	}
	return []models.Laboratory{{ID: "l1", FullName: "Quest"}}, nil
}

func (s *stubReferenceSource) AddEmployee(_ context.Context, _ string, fields map[string]string, _ []apiclient.File) (string, error) {
	s.added = append(s.added, fields)
	return "Employee added successfully!", nil
}

func (s *stubReferenceSource) AddLaboratory(_ context.Context, _ string, fields map[string]string, _ []apiclient.File) (string, error) {
	s.added = append(s.added, fields)
	return "Laboratory added successfully!", nil
}

func (s *stubReferenceSource) DeleteEmployee(_ context.Context, _ string, id string) (string, error) {
	s.deleted = append(s.deleted, id)
	return "Employee deleted", nil
}

func (s *stubReferenceSource) DeleteLaboratory(_ context.Context, _ string, id string) (string, error) {
	s.deleted = append(s.deleted, id)
	return "Laboratory deleted", nil
}

func TestReferenceServiceCachesEmployeesUntilDelete(t *testing.T) {
	src := &stubReferenceSource{}
	cache := NewCacheService(newMemoryCacheRepo(), NewMetricsService(), time.Minute, nil)
	svc := NewReferenceService(src, cache, time.Minute, nil)
	creds := &stubCredentials{token: "tok"}

	for i := 0; i < 2; i++ {
		employees, err := svc.Employees(context.Background(), creds)
		require.NoError(t, err)
		require.Len(t, employees, 1)
		assert.Equal(t, "Ana", employees[0].FullName)
	}
	assert.Equal(t, 1, src.employeeCalls)

	_, err := svc.DeleteEmployee(context.Background(), creds, "e1")
	require.NoError(t, err)
	_, err = svc.Employees(context.Background(), creds)
	require.NoError(t, err)
	assert.Equal(t, 2, src.employeeCalls)
}

func TestReferenceServiceWithoutCacheAlwaysFetches(t *testing.T) {
	src := &stubReferenceSource{}
	svc := NewReferenceService(src, NewCacheService(nil, nil, 0, nil), time.Minute, nil)
	creds := &stubCredentials{token: "tok"}

	_, _ = svc.Employees(context.Background(), creds)
	_, _ = svc.Employees(context.Background(), creds)
	assert.Equal(t, 2, src.employeeCalls)
}

func TestReferenceServiceRequiresCredentialEvenWhenCached(t *testing.T) {
	src := &stubReferenceSource{}
	cache := NewCacheService(newMemoryCacheRepo(), nil, time.Minute, nil)
	svc := NewReferenceService(src, cache, time.Minute, nil)
	_, err := svc.Employees(context.Background(), &stubCredentials{token: "tok"})
	require.NoError(t, err)

	_, err = svc.Employees(context.Background(), &stubCredentials{})
	assert.True(t, appErrors.IsUnauthorized(err))
}

func TestLaboratoryChoicesDegradeToFixedOptions(t *testing.T) {
	src := &stubReferenceSource{labsErr: appErrors.ErrUpstreamUnavailable}
	svc := NewReferenceService(src, nil, time.Minute, nil)

	choices := svc.LaboratoryChoices(context.Background(), &stubCredentials{token: "tok"})
	assert.Equal(t, models.LaboratoryOptions, choices)

	src.labsErr = nil
	choices = svc.LaboratoryChoices(context.Background(), &stubCredentials{token: "tok"})
	assert.Equal(t, "Quest", choices[0])
}

func TestAddLaboratoryDropsCachedLaboratories(t *testing.T) {
	src := &stubReferenceSource{}
	cache := NewCacheService(newMemoryCacheRepo(), nil, time.Minute, nil)
	svc := NewReferenceService(src, cache, time.Minute, nil)
	creds := &stubCredentials{token: "tok"}

	_, err := svc.Laboratories(context.Background(), creds)
	require.NoError(t, err)
	_, err = svc.Employees(context.Background(), creds)
	require.NoError(t, err)

	msg, err := svc.AddLaboratory(context.Background(), creds, map[string]string{"fullName": "Quest"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Laboratory added successfully!", msg)
	require.Len(t, src.added, 1)

	_, _ = svc.Laboratories(context.Background(), creds)
	_, _ = svc.Employees(context.Background(), creds)
	assert.Equal(t, 2, src.labCalls)
	assert.Equal(t, 1, src.employeeCalls)
}
