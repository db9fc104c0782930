package service

import (
	"context"
	"net/url"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/phlebotomy-portal/internal/models"
	"github.com/noah-isme/phlebotomy-portal/internal/repository"
	appErrors "github.com/noah-isme/phlebotomy-portal/pkg/errors"
)

// EmptyListMessage is shown when a loaded list has no rows.
const EmptyListMessage = "No appointments scheduled."

const (
	mutationStatus = "status"
	mutationAssign = "assign"
)

// Credentials supplies the API credential for the signed-in user.
type Credentials interface {
	// Token returns the current credential or a MISSING_CREDENTIAL error.
	Token(ctx context.Context) (string, error)
	// Invalidate drops the credential after the API rejected it.
	Invalidate(ctx context.Context)
}

type appointmentSource interface {
	List(ctx context.Context, token, path string, query url.Values) (models.AppointmentPage, error)
	UpdateStatus(ctx context.Context, token, id string, status models.AppointmentStatus) (string, error)
	Assign(ctx context.Context, token, id, employeeID string) (string, error)
}

// ListVariant configures one appointment list view.
type ListVariant struct {
	Name           string
	Title          string
	Path           string
	Shape          models.QueryShape
	StatusEditable bool
	Assignable     bool
}

var allFilterFields = []models.FilterField{
	models.FilterStatus,
	models.FilterPriority,
	models.FilterLaboratory,
	models.FilterEmployee,
	models.FilterDate,
	models.FilterAssigned,
	models.FilterTracking,
}

// List variants served by the portal.
var (
	AdminAppointmentsView = ListVariant{
		Name:           "admin-appointments",
		Title:          "Appointments",
		Path:           repository.PathAdminAppointments,
		Shape:          models.QueryShape{Fields: allFilterFields, Paginated: true, Sortable: true},
		StatusEditable: true,
		Assignable:     true,
	}
	AdminArchiveView = ListVariant{
		Name:  "admin-archive",
		Title: "Archive",
		Path:  repository.PathAdminArchive,
		Shape: models.QueryShape{
			Fields:    []models.FilterField{models.FilterStatus, models.FilterPriority, models.FilterLaboratory, models.FilterEmployee, models.FilterDate},
			Paginated: true,
			Sortable:  true,
		},
	}
	EmployeeAppointmentsView = ListVariant{Name: "employee-appointments", Title: "My Appointments", Path: repository.PathEmployeeAppointments}
	EmployeeArchiveView      = ListVariant{Name: "employee-archive", Title: "My Archive", Path: repository.PathEmployeeArchive}
	EmployeeTodayView        = ListVariant{Name: "employee-today", Title: "Today's Appointments", Path: repository.PathEmployeeToday}
)

var filterValidator = validator.New()

// AppointmentRow is one displayed record with its per-row affordances.
type AppointmentRow struct {
	Index           int                `json:"index"`
	Appointment     models.Appointment `json:"appointment"`
	Busy            bool               `json:"busy"`
	CanChangeStatus bool               `json:"can_change_status"`
	CanAssign       bool               `json:"can_assign"`
}

// ListSnapshot is a consistent read of the list state for rendering.
type ListSnapshot struct {
	View           string               `json:"view"`
	Title          string               `json:"title"`
	Rows           []AppointmentRow     `json:"rows"`
	Loaded         bool                 `json:"loaded"`
	Loading        bool                 `json:"loading"`
	Empty          bool                 `json:"empty"`
	EmptyMessage   string               `json:"empty_message,omitempty"`
	Paginated      bool                 `json:"paginated"`
	Pagination     models.Pagination    `json:"pagination"`
	Error          *appErrors.Error     `json:"error,omitempty"`
	Draft          models.DraftQuery    `json:"draft"`
	Applied        models.AppliedQuery  `json:"applied"`
	Filters        []models.FilterField `json:"filters"`
	Sortable       bool                 `json:"sortable"`
	StatusEditable bool                 `json:"status_editable"`
	Assignable     bool                 `json:"assignable"`
	Employees      []models.Employee    `json:"employees,omitempty"`
	Detail         *AppointmentRow      `json:"detail,omitempty"`
}

// AppointmentList is the per-user controller for one list view. It holds the draft and
// applied queries, the current page of records, and the rows with a mutation in flight.
// The lock is never held across an API call.
type AppointmentList struct {
	variant ListVariant
	source  appointmentSource
	creds   Credentials
	metrics *MetricsService
	logger  *zap.Logger

	mu         sync.Mutex
	draft      models.DraftQuery
	applied    models.AppliedQuery
	records    []models.Appointment
	totalPages int
	loaded     bool
	loadSeq    uint64
	loading    bool
	loadErr    *appErrors.Error
	busy       inflight
	detail     *models.Appointment
	employees  []models.Employee
	closed     bool
}

// NewAppointmentList constructs a controller positioned on page 1 with default filters.
func NewAppointmentList(variant ListVariant, source appointmentSource, creds Credentials, metrics *MetricsService, logger *zap.Logger) *AppointmentList {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AppointmentList{
		variant:    variant,
		source:     source,
		creds:      creds,
		metrics:    metrics,
		logger:     logger.With(zap.String("view", variant.Name)),
		draft:      models.NewDraftQuery(),
		applied:    models.NewAppliedQuery(),
		totalPages: 1,
		busy:       make(inflight),
	}
}

// Variant returns the view configuration.
func (l *AppointmentList) Variant() ListVariant {
	return l.variant
}

// Loaded reports whether at least one load has completed successfully.
func (l *AppointmentList) Loaded() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loaded
}

// Load fetches the applied page. Results of a load superseded by a newer one are
// discarded. On failure the previous records stay on screen.
func (l *AppointmentList) Load(ctx context.Context) error {
	token, err := l.creds.Token(ctx)
	if err != nil {
		return err
	}

	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return nil
	}
	l.loadSeq++
	seq := l.loadSeq
	query := l.applied.Values(l.variant.Shape)
	l.loading = true
	l.mu.Unlock()

	page, err := l.source.List(ctx, token, l.variant.Path, query)

	l.mu.Lock()
	if l.closed || seq != l.loadSeq {
		l.mu.Unlock()
		l.logger.Debug("discarding superseded load", zap.Uint64("seq", seq))
		// a refused credential is dropped even when the result itself is discarded
		rejectCredential(ctx, l.creds, err)
		if appErrors.IsUnauthorized(err) {
			return err
		}
		return nil
	}
	l.loading = false
	if err != nil {
		l.loadErr = appErrors.FromError(err)
		l.mu.Unlock()
		l.logger.Warn("appointment list load failed", zap.String("code", appErrors.FromError(err).Code), zap.Error(err))
		rejectCredential(ctx, l.creds, err)
		return err
	}
	l.records = page.Appointments
	l.totalPages = page.TotalPages
	if l.totalPages < 1 {
		l.totalPages = 1
	}
	l.loaded = true
	l.loadErr = nil
	l.refreshDetailLocked()
	l.mu.Unlock()
	return nil
}

// SetDraft replaces the pending filter inputs without touching the displayed list.
func (l *AppointmentList) SetDraft(draft models.DraftQuery) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.draft = draft
}

// ApplyFilters commits the draft, resets to page 1 and reloads. An invalid draft commits nothing.
func (l *AppointmentList) ApplyFilters(ctx context.Context, draft models.DraftQuery) error {
	if err := filterValidator.Struct(draft.Filter); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid filters")
	}
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return nil
	}
	l.draft = draft
	applied := draft.Commit()
	applied.Filter = applied.Filter.Restrict(l.variant.Shape.Fields)
	l.applied = applied
	l.mu.Unlock()
	return l.Load(ctx)
}

// ClearFilters restores the default filter on page 1 and reloads.
func (l *AppointmentList) ClearFilters(ctx context.Context) error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return nil
	}
	l.draft = models.NewDraftQuery()
	l.applied = models.NewAppliedQuery()
	l.mu.Unlock()
	return l.Load(ctx)
}

// Paginate moves one page in dir. It reports false without a request when already at the bound.
func (l *AppointmentList) Paginate(ctx context.Context, dir models.PageDirection) (bool, error) {
	l.mu.Lock()
	target := l.applied.Page
	switch dir {
	case models.PageNext:
		target++
	case models.PagePrev:
		target--
	default:
		l.mu.Unlock()
		return false, appErrors.Clone(appErrors.ErrValidation, "direction must be next or prev")
	}
	l.mu.Unlock()
	return l.GoToPage(ctx, target)
}

// GoToPage loads page n, clamped to [1, totalPages]. It reports false when no request was made.
func (l *AppointmentList) GoToPage(ctx context.Context, n int) (bool, error) {
	l.mu.Lock()
	if l.closed || !l.variant.Shape.Paginated {
		l.mu.Unlock()
		return false, nil
	}
	if n > l.totalPages {
		n = l.totalPages
	}
	if n < 1 {
		n = 1
	}
	if n == l.applied.Page {
		l.mu.Unlock()
		return false, nil
	}
	l.applied.Page = n
	l.mu.Unlock()
	return true, l.Load(ctx)
}

// ChangeStatus updates one appointment's status and patches the local copy on success.
func (l *AppointmentList) ChangeStatus(ctx context.Context, id string, status models.AppointmentStatus) (string, error) {
	if !l.variant.StatusEditable {
		return "", appErrors.Clone(appErrors.ErrForbidden, "status changes are not available in this view")
	}
	if !status.Valid() {
		return "", appErrors.Clone(appErrors.ErrValidation, "status must be Pending, Completed or Rejected")
	}
	token, err := l.creds.Token(ctx)
	if err != nil {
		return "", err
	}
	if err := l.beginMutation(id, nil); err != nil {
		return "", err
	}

	msg, err := l.source.UpdateStatus(ctx, token, id, status)
	if !l.finishMutation(ctx, id, mutationStatus, err, func(a *models.Appointment) {
		a.Status = status
	}) {
		return "", err
	}
	return msg, nil
}

// AssignEmployee assigns an employee to an unassigned appointment and patches the local copy.
func (l *AppointmentList) AssignEmployee(ctx context.Context, id, employeeID string) (string, error) {
	if !l.variant.Assignable {
		return "", appErrors.Clone(appErrors.ErrForbidden, "assignment is not available in this view")
	}
	employeeID = strings.TrimSpace(employeeID)
	if employeeID == "" {
		return "", appErrors.Clone(appErrors.ErrValidation, "select an employee")
	}
	token, err := l.creds.Token(ctx)
	if err != nil {
		return "", err
	}
	if err := l.beginMutation(id, func(a models.Appointment) error {
		if a.IsAssigned() {
			return appErrors.Clone(appErrors.ErrConflict, "appointment already has an assigned employee")
		}
		return nil
	}); err != nil {
		return "", err
	}

	msg, err := l.source.Assign(ctx, token, id, employeeID)
	if !l.finishMutation(ctx, id, mutationAssign, err, func(a *models.Appointment) {
		a.Employee = l.employeeRefLocked(employeeID)
	}) {
		return "", err
	}
	return msg, nil
}

// OpenDetail selects a known record for the detail view.
func (l *AppointmentList) OpenDetail(id string) (*models.Appointment, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	rec := l.findLocked(id)
	if rec == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "appointment not found in this view")
	}
	detail := *rec
	l.detail = &detail
	out := detail
	return &out, nil
}

// CloseDetail clears the detail selection.
func (l *AppointmentList) CloseDetail() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.detail = nil
}

// SetEmployees stores the employee choices used by the assign control.
func (l *AppointmentList) SetEmployees(employees []models.Employee) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.employees = append([]models.Employee(nil), employees...)
}

// Snapshot returns a copy of the current state.
func (l *AppointmentList) Snapshot() ListSnapshot {
	l.mu.Lock()
	defer l.mu.Unlock()

	snap := ListSnapshot{
		View:           l.variant.Name,
		Title:          l.variant.Title,
		Loaded:         l.loaded,
		Loading:        l.loading,
		Paginated:      l.variant.Shape.Paginated,
		Pagination:     models.NewPagination(l.applied.Page, l.totalPages),
		Draft:          l.draft,
		Applied:        l.applied,
		Filters:        append([]models.FilterField(nil), l.variant.Shape.Fields...),
		Sortable:       l.variant.Shape.Sortable,
		StatusEditable: l.variant.StatusEditable,
		Assignable:     l.variant.Assignable,
		Employees:      append([]models.Employee(nil), l.employees...),
		Rows:           make([]AppointmentRow, 0, len(l.records)),
	}
	if l.loadErr != nil {
		snap.Error = appErrors.Clone(l.loadErr, "")
	}
	for i, rec := range l.records {
		snap.Rows = append(snap.Rows, l.rowLocked(i+1, rec))
	}
	if l.loaded && len(l.records) == 0 {
		snap.Empty = true
		snap.EmptyMessage = EmptyListMessage
	}
	if l.detail != nil {
		row := l.rowLocked(0, *l.detail)
		snap.Detail = &row
	}
	return snap
}

// Close stops the controller. Completions that arrive afterwards are ignored.
func (l *AppointmentList) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.closed = true
}

func (l *AppointmentList) isClosed() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.closed
}

func (l *AppointmentList) rowLocked(index int, rec models.Appointment) AppointmentRow {
	busy := l.busy.has(rec.ID)
	return AppointmentRow{
		Index:           index,
		Appointment:     rec,
		Busy:            busy,
		CanChangeStatus: l.variant.StatusEditable && !busy,
		CanAssign:       l.variant.Assignable && !busy && !rec.IsAssigned(),
	}
}

// beginMutation marks id in flight after checking it is known and passes check.
func (l *AppointmentList) beginMutation(id string, check func(models.Appointment) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return appErrors.Clone(appErrors.ErrConflict, "this view is no longer open")
	}
	rec := l.findLocked(id)
	if rec == nil {
		return appErrors.Clone(appErrors.ErrNotFound, "appointment not found in this view")
	}
	if check != nil {
		if err := check(*rec); err != nil {
			return err
		}
	}
	if !l.busy.begin(id) {
		return appErrors.Clone(appErrors.ErrConflict, "an update for this appointment is already in progress")
	}
	return nil
}

// finishMutation clears the in-flight mark and applies patch when err is nil.
// It reports whether the caller should treat the mutation as successful.
func (l *AppointmentList) finishMutation(ctx context.Context, id, kind string, err error, patch func(*models.Appointment)) bool {
	l.mu.Lock()
	l.busy.done(id)
	if l.closed {
		l.mu.Unlock()
		rejectCredential(ctx, l.creds, err)
		return err == nil
	}
	if err != nil {
		l.mu.Unlock()
		l.metrics.RecordMutation(kind, "failed")
		l.logger.Info("row mutation failed", zap.String("kind", kind), zap.String("appointment_id", id), zap.Error(err))
		rejectCredential(ctx, l.creds, err)
		return false
	}
	for i := range l.records {
		if l.records[i].ID == id {
			patch(&l.records[i])
		}
	}
	if l.detail != nil && l.detail.ID == id {
		patch(l.detail)
	}
	l.mu.Unlock()
	l.metrics.RecordMutation(kind, "succeeded")
	return true
}

func (l *AppointmentList) findLocked(id string) *models.Appointment {
	for i := range l.records {
		if l.records[i].ID == id {
			return &l.records[i]
		}
	}
	if l.detail != nil && l.detail.ID == id {
		return l.detail
	}
	return nil
}

func (l *AppointmentList) refreshDetailLocked() {
	if l.detail == nil {
		return
	}
	for _, rec := range l.records {
		if rec.ID == l.detail.ID {
			fresh := rec
			l.detail = &fresh
			return
		}
	}
}

func (l *AppointmentList) employeeRefLocked(employeeID string) *models.EmployeeRef {
	for _, e := range l.employees {
		if e.ID == employeeID {
			return e.Ref()
		}
	}
	return &models.EmployeeRef{ID: employeeID, EmployeeID: employeeID}
}
