package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/phlebotomy-portal/internal/middleware"
	"github.com/noah-isme/phlebotomy-portal/internal/models"
	"github.com/noah-isme/phlebotomy-portal/internal/service"
	appErrors "github.com/noah-isme/phlebotomy-portal/pkg/errors"
	"github.com/noah-isme/phlebotomy-portal/web"
)

const listRoute = "/admin/appointments"

type fakeCredentials struct {
	mu          sync.Mutex
	invalidated bool
}

func (f *fakeCredentials) Token(context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.invalidated {
		return "", appErrors.ErrMissingCredential
	}
	return "tok", nil
}

func (f *fakeCredentials) Invalidate(context.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.invalidated = true
}

type fakeBinder struct {
	creds *fakeCredentials
}

func (b fakeBinder) Bind(string) service.Credentials { return b.creds }

type fakeAppointments struct {
	mu       sync.Mutex
	page     models.AppointmentPage
	listErr  error
	queries  []url.Values
	statuses map[string]models.AppointmentStatus
}

func (f *fakeAppointments) List(_ context.Context, _ string, _ string, query url.Values) (models.AppointmentPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, query)
	if f.listErr != nil {
		return models.AppointmentPage{}, f.listErr
	}
	return f.page, nil
}

func (f *fakeAppointments) UpdateStatus(_ context.Context, _ string, id string, status models.AppointmentStatus) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.statuses == nil {
		f.statuses = map[string]models.AppointmentStatus{}
	}
	f.statuses[id] = status
	return "Appointment status updated", nil
}

func (f *fakeAppointments) Assign(context.Context, string, string, string) (string, error) {
	return "Employee assigned", nil
}

func (f *fakeAppointments) listCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queries)
}

type fakeReferences struct{}

func (fakeReferences) Employees(context.Context, service.Credentials) ([]models.Employee, error) {
	return []models.Employee{{ID: "e1", EmployeeID: "EMP-1", FullName: "Dana Reyes"}}, nil
}

func (fakeReferences) LaboratoryChoices(context.Context, service.Credentials) []string {
	return models.LaboratoryOptions
}

type listFixture struct {
	router *gin.Engine
	source *fakeAppointments
	creds  *fakeCredentials
}

func newListFixture(t *testing.T) *listFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	source := &fakeAppointments{page: models.AppointmentPage{
		TotalPages: 2,
		Appointments: []models.Appointment{
			{ID: "a1", PatientName: "Jane Roe", Status: models.StatusPending},
			{ID: "a2", PatientName: "John Doe", Status: models.StatusPending, Employee: &models.EmployeeRef{ID: "e9", FullName: "Sam Lee"}},
		},
	}}
	creds := &fakeCredentials{}
	registry := service.NewListRegistry(source, 16, 0, nil, nil)
	h := NewAppointmentListHandler(listRoute, service.AdminAppointmentsView, registry, fakeBinder{creds: creds}, fakeReferences{}, service.NewExportService(nil), nil)

	templates, err := web.Templates("https://assets.example.test")
	require.NoError(t, err)

	r := gin.New()
	r.SetHTMLTemplate(templates)
	r.Use(middleware.WithResponseMeta())
	group := r.Group(listRoute, func(c *gin.Context) {
		c.Set(middleware.ContextSessionKey, &models.Session{ID: "s1", Token: "tok", Role: models.RoleAdmin})
		c.Next()
	})
	h.Register(group, func(string) gin.HandlerFunc { return func(c *gin.Context) { c.Next() } })

	return &listFixture{router: r, source: source, creds: creds}
}

func (f *listFixture) do(method, target, body, contentType, accept string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", accept)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

type listEnvelope struct {
	Data       AppointmentListView `json:"data"`
	Pagination *models.Pagination  `json:"pagination"`
	Meta       map[string]any      `json:"meta"`
	Error      *appErrors.Error    `json:"error"`
}

func decodeList(t *testing.T, rec *httptest.ResponseRecorder) listEnvelope {
	t.Helper()
	var env listEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestListHandlerLoadsOnFirstVisit(t *testing.T) {
	f := newListFixture(t)

	rec := f.do(http.MethodGet, listRoute, "", "", "application/json")

	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeList(t, rec)
	assert.Len(t, env.Data.Rows, 2)
	assert.True(t, env.Data.Loaded)
	require.NotNil(t, env.Pagination)
	assert.Equal(t, 2, env.Pagination.TotalPages)
	assert.Equal(t, "admin-appointments", env.Meta["view"])
	assert.Len(t, env.Data.Employees, 1)

	q := f.source.queries[0]
	assert.Equal(t, "1", q.Get("page"))
	assert.Equal(t, "createdAt", q.Get("sortFields"))
	assert.Equal(t, "-1", q.Get("sortOrder"))
	_, hasStatus := q["status"]
	assert.False(t, hasStatus)

	f.do(http.MethodGet, listRoute, "", "", "application/json")
	assert.Equal(t, 1, f.source.listCalls())
}

func TestListHandlerNextPageSendsPageTwo(t *testing.T) {
	f := newListFixture(t)
	f.do(http.MethodGet, listRoute, "", "", "application/json")

	rec := f.do(http.MethodGet, listRoute+"?dir=next", "", "", "application/json")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2", f.source.queries[1].Get("page"))
	assert.Equal(t, 2, decodeList(t, rec).Pagination.Page)

	f.do(http.MethodGet, listRoute+"?dir=next", "", "", "application/json")
	assert.Equal(t, 2, f.source.listCalls())
}

func TestApplyFiltersOmitsEmptyValues(t *testing.T) {
	f := newListFixture(t)
	form := url.Values{"status": {"Pending"}, "labortary": {""}, "sortFields": {"patientName"}, "sortOrder": {"1"}}

	rec := f.do(http.MethodPost, listRoute+"/filters", form.Encode(), "application/x-www-form-urlencoded", "application/json")

	require.Equal(t, http.StatusOK, rec.Code)
	q := f.source.queries[len(f.source.queries)-1]
	assert.Equal(t, "Pending", q.Get("status"))
	assert.Equal(t, "patientName", q.Get("sortFields"))
	assert.Equal(t, "1", q.Get("sortOrder"))
	assert.Equal(t, "1", q.Get("page"))
	_, hasLab := q["labortary"]
	assert.False(t, hasLab)
}

func TestApplyFiltersRejectsInvalidDraft(t *testing.T) {
	f := newListFixture(t)

	rec := f.do(http.MethodPost, listRoute+"/filters", `{"status":"Lost"}`, "application/json", "application/json")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, f.source.listCalls())
}

func TestChangeStatusPatchesWithoutReload(t *testing.T) {
	f := newListFixture(t)
	f.do(http.MethodGet, listRoute, "", "", "application/json")

	rec := f.do(http.MethodPost, listRoute+"/a1/status", `{"status":"Completed"}`, "application/json", "application/json")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.StatusCompleted, f.source.statuses["a1"])

	env := decodeList(t, f.do(http.MethodGet, listRoute, "", "", "application/json"))
	assert.Equal(t, models.StatusCompleted, env.Data.Rows[0].Appointment.Status)
	assert.Equal(t, 1, f.source.listCalls())
}

func TestChangeStatusFormRedirectsWithNotice(t *testing.T) {
	f := newListFixture(t)
	f.do(http.MethodGet, listRoute, "", "", "application/json")

	rec := f.do(http.MethodPost, listRoute+"/a1/status", "status=Rejected", "application/x-www-form-urlencoded", "text/html")

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	location, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, listRoute, location.Path)
	assert.Equal(t, "Appointment status updated", location.Query().Get(noticeParam))
}

func TestAssignRefusedForAssignedRow(t *testing.T) {
	f := newListFixture(t)
	f.do(http.MethodGet, listRoute, "", "", "application/json")

	rec := f.do(http.MethodPost, listRoute+"/a2/assign", `{"employeeId":"e1"}`, "application/json", "application/json")

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestDetailUnknownRecord(t *testing.T) {
	f := newListFixture(t)

	rec := f.do(http.MethodGet, listRoute+"/zzz", "", "", "application/json")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestExportStreamsAttachment(t *testing.T) {
	f := newListFixture(t)

	rec := f.do(http.MethodGet, listRoute+"/export?format=csv", "", "", "*/*")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")
	assert.Contains(t, rec.Body.String(), "Jane Roe")
}

func TestListRejectedCredentialInvalidates(t *testing.T) {
	f := newListFixture(t)
	f.source.listErr = appErrors.Clone(appErrors.ErrUnauthorized, "")

	rec := f.do(http.MethodGet, listRoute, "", "", "application/json")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.True(t, f.creds.invalidated)

	page := f.do(http.MethodGet, listRoute, "", "", "text/html")
	assert.Equal(t, http.StatusSeeOther, page.Code)
	assert.Equal(t, middleware.SignInPath, page.Header().Get("Location"))
}

func TestListPageRendersRowsAndLoadFailure(t *testing.T) {
	f := newListFixture(t)

	rec := f.do(http.MethodGet, listRoute, "", "", "text/html")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Jane Roe")
	assert.Contains(t, body, "Sam Lee")
	assert.Contains(t, body, "Page 1 of 2")

	f.source.listErr = appErrors.Clone(appErrors.ErrUpstreamUnavailable, "")
	rec = f.do(http.MethodGet, listRoute+"?refresh=1", "", "", "text/html")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Jane Roe")
	assert.Contains(t, rec.Body.String(), appErrors.ErrUpstreamUnavailable.Message)
}

func TestListPageRendersEmptyResultInsideTable(t *testing.T) {
	f := newListFixture(t)
	f.source.page = models.AppointmentPage{TotalPages: 1}

	rec := f.do(http.MethodGet, listRoute, "", "", "text/html")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<th>Patient</th>")
	assert.Contains(t, body, `<tr><td colspan="8" class="empty">`+service.EmptyListMessage+`</td></tr>`)
	assert.NotContains(t, body, `<p class="empty">`)
}
