package models

import (
	"net/url"
	"strconv"
	"strings"
)

// FilterField names a query parameter accepted by appointment list endpoints.
type FilterField string

const (
	FilterStatus     FilterField = "status"
	FilterPriority   FilterField = "priorityLevel"
	FilterLaboratory FilterField = "labortary"
	FilterEmployee   FilterField = "employeeId"
	FilterDate       FilterField = "dateAndTime"
	FilterAssigned   FilterField = "assigned"
	FilterTracking   FilterField = "tracking"
)

// SortOrder follows the API convention: -1 newest first, 1 oldest first.
type SortOrder int

const (
	SortDescending SortOrder = -1
	SortAscending  SortOrder = 1
)

const (
	SortByCreatedAt   = "createdAt"
	SortByPatientName = "patientName"
)

// PageDirection is a relative pagination step.
type PageDirection string

const (
	PageNext PageDirection = "next"
	PagePrev PageDirection = "prev"
)

// AppointmentFilter holds filter and sort values for appointment lists.
// Empty values mean "no filter".
type AppointmentFilter struct {
	Status     AppointmentStatus `json:"status,omitempty" form:"status" validate:"omitempty,oneof=Pending Completed Rejected"`
	Priority   Priority          `json:"priorityLevel,omitempty" form:"priorityLevel" validate:"omitempty,oneof=Urgent High Medium Low"`
	Laboratory string            `json:"labortary,omitempty" form:"labortary" validate:"max=120"`
	EmployeeID string            `json:"employeeId,omitempty" form:"employeeId" validate:"max=64"`
	Date       string            `json:"dateAndTime,omitempty" form:"dateAndTime" validate:"omitempty,datetime=2006-01-02"`
	Assigned   string            `json:"assigned,omitempty" form:"assigned" validate:"omitempty,oneof=True False"`
	Tracking   string            `json:"tracking,omitempty" form:"tracking" validate:"omitempty,oneof=True False"`
	SortField  string            `json:"sortFields,omitempty" form:"sortFields" validate:"omitempty,oneof=createdAt patientName"`
	SortOrder  SortOrder         `json:"sortOrder" form:"sortOrder" validate:"omitempty,oneof=-1 1"`
}

// DefaultFilter is the state after clearing filters.
func DefaultFilter() AppointmentFilter {
	return AppointmentFilter{SortField: SortByCreatedAt, SortOrder: SortDescending}
}

// Value returns the trimmed value for field.
func (f AppointmentFilter) Value(field FilterField) string {
	var v string
	switch field {
	case FilterStatus:
		v = string(f.Status)
	case FilterPriority:
		v = string(f.Priority)
	case FilterLaboratory:
		v = f.Laboratory
	case FilterEmployee:
		v = f.EmployeeID
	case FilterDate:
		v = f.Date
	case FilterAssigned:
		v = f.Assigned
	case FilterTracking:
		v = f.Tracking
	}
	return strings.TrimSpace(v)
}

// Restrict clears every filter not listed in fields. Sort settings are kept.
func (f AppointmentFilter) Restrict(fields []FilterField) AppointmentFilter {
	allowed := make(map[FilterField]bool, len(fields))
	for _, field := range fields {
		allowed[field] = true
	}
	out := AppointmentFilter{SortField: f.SortField, SortOrder: f.SortOrder}
	if allowed[FilterStatus] {
		out.Status = f.Status
	}
	if allowed[FilterPriority] {
		out.Priority = f.Priority
	}
	if allowed[FilterLaboratory] {
		out.Laboratory = f.Laboratory
	}
	if allowed[FilterEmployee] {
		out.EmployeeID = f.EmployeeID
	}
	if allowed[FilterDate] {
		out.Date = f.Date
	}
	if allowed[FilterAssigned] {
		out.Assigned = f.Assigned
	}
	if allowed[FilterTracking] {
		out.Tracking = f.Tracking
	}
	return out
}

func (f AppointmentFilter) normalized() AppointmentFilter {
	f.Status = AppointmentStatus(strings.TrimSpace(string(f.Status)))
	f.Priority = Priority(strings.TrimSpace(string(f.Priority)))
	f.Laboratory = strings.TrimSpace(f.Laboratory)
	f.EmployeeID = strings.TrimSpace(f.EmployeeID)
	f.Date = strings.TrimSpace(f.Date)
	f.Assigned = strings.TrimSpace(f.Assigned)
	f.Tracking = strings.TrimSpace(f.Tracking)
	f.SortField = strings.TrimSpace(f.SortField)
	if f.SortOrder != SortAscending {
		f.SortOrder = SortDescending
	}
	return f
}

// Active reports whether any filter (not sort) is set.
func (f AppointmentFilter) Active() bool {
	for _, field := range []FilterField{FilterStatus, FilterPriority, FilterLaboratory, FilterEmployee, FilterDate, FilterAssigned, FilterTracking} {
		if f.Value(field) != "" {
			return true
		}
	}
	return false
}

// DraftQuery holds pending filter inputs that have not been applied yet.
type DraftQuery struct {
	Filter AppointmentFilter `json:"filter"`
}

// NewDraftQuery returns a draft holding the default filter.
func NewDraftQuery() DraftQuery {
	return DraftQuery{Filter: DefaultFilter()}
}

// Commit turns the draft into an applied query positioned on page 1.
func (d DraftQuery) Commit() AppliedQuery {
	return AppliedQuery{Filter: d.Filter.normalized(), Page: 1}
}

// AppliedQuery is the filter and page that the displayed list reflects.
type AppliedQuery struct {
	Filter AppointmentFilter `json:"filter"`
	Page   int               `json:"page"`
}

// NewAppliedQuery returns the default query on page 1.
func NewAppliedQuery() AppliedQuery {
	return NewDraftQuery().Commit()
}

// QueryShape describes which parameters an endpoint understands.
type QueryShape struct {
	Fields    []FilterField
	Paginated bool
	Sortable  bool
}

// Values builds the outgoing query string. Empty filter values are never sent;
// page and sortOrder are always sent when the endpoint supports them.
func (q AppliedQuery) Values(shape QueryShape) url.Values {
	values := url.Values{}
	if shape.Paginated {
		page := q.Page
		if page < 1 {
			page = 1
		}
		values.Set("page", strconv.Itoa(page))
	}
	for _, field := range shape.Fields {
		if v := q.Filter.Value(field); v != "" {
			values.Set(string(field), v)
		}
	}
	if shape.Sortable {
		if sortField := strings.TrimSpace(q.Filter.SortField); sortField != "" {
			values.Set("sortFields", sortField)
		}
		order := q.Filter.SortOrder
		if order != SortAscending {
			order = SortDescending
		}
		values.Set("sortOrder", strconv.Itoa(int(order)))
	}
	return values
}
