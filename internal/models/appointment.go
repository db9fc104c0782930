package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// AppointmentStatus enumerates the lifecycle states of an appointment.
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "Pending"
	StatusCompleted AppointmentStatus = "Completed"
	StatusRejected  AppointmentStatus = "Rejected"
)

// AppointmentStatuses lists selectable statuses in display order.
var AppointmentStatuses = []AppointmentStatus{StatusPending, StatusCompleted, StatusRejected}

// Valid reports whether s is a known status.
func (s AppointmentStatus) Valid() bool {
	for _, known := range AppointmentStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Terminal reports whether the appointment belongs in the archive.
func (s AppointmentStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusRejected
}

// Priority enumerates appointment urgency.
type Priority string

const (
	PriorityUrgent Priority = "Urgent"
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// Priorities lists selectable priorities in display order.
var Priorities = []Priority{PriorityUrgent, PriorityHigh, PriorityMedium, PriorityLow}

// LaboratoryOptions are offered in the laboratory filter in addition to registered laboratories.
var LaboratoryOptions = []string{"Natera", "Caredx", "Prosecco study", "Assisted Living", "Other"}

// EmployeeRef is the employee assigned to an appointment. The API sends either a
// bare identifier or a populated object.
type EmployeeRef struct {
	ID         string `json:"_id,omitempty"`
	EmployeeID string `json:"employeeId,omitempty"`
	FullName   string `json:"fullName,omitempty"`
}

// UnmarshalJSON accepts a string id, an object, or null.
func (r *EmployeeRef) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*r = EmployeeRef{}
		return nil
	}
	if trimmed[0] == '"' {
		var id string
		if err := json.Unmarshal(trimmed, &id); err != nil {
			return err
		}
		*r = EmployeeRef{ID: id}
		return nil
	}
	type plain EmployeeRef
	var p plain
	if err := json.Unmarshal(trimmed, &p); err != nil {
		return fmt.Errorf("employee reference: %w", err)
	}
	*r = EmployeeRef(p)
	return nil
}

// Assigned reports whether the reference identifies an employee.
func (r *EmployeeRef) Assigned() bool {
	return r != nil && (r.ID != "" || r.EmployeeID != "")
}

// Label renders the reference for tables.
func (r *EmployeeRef) Label() string {
	switch {
	case !r.Assigned():
		return "Unassigned"
	case r.FullName != "" && r.EmployeeID != "":
		return r.FullName + " (" + r.EmployeeID + ")"
	case r.FullName != "":
		return r.FullName
	case r.EmployeeID != "":
		return r.EmployeeID
	default:
		return r.ID
	}
}

// Appointment is a scheduled phlebotomy visit.
type Appointment struct {
	ID                  string            `json:"_id"`
	PatientName         string            `json:"patientName"`
	Email               string            `json:"email,omitempty"`
	ContactNumber       LooseString       `json:"contactNumber,omitempty"`
	Address             string            `json:"address,omitempty"`
	Gender              string            `json:"gender,omitempty"`
	DateOfBirth         Timestamp         `json:"dateOfBirth,omitempty"`
	Age                 LooseString       `json:"age,omitempty"`
	Image               string            `json:"image,omitempty"`
	AppointmentDateTime Timestamp         `json:"appointmentDateTime"`
	Laboratory          string            `json:"labortary,omitempty"`
	Fees                LooseString       `json:"fees,omitempty"`
	Employee            *EmployeeRef      `json:"employeeId,omitempty"`
	PriorityLevel       Priority          `json:"priorityLevel,omitempty"`
	Status              AppointmentStatus `json:"status"`
	SpecialInstructions string            `json:"specialInstructions,omitempty"`
	Documents           []string          `json:"documents,omitempty"`
	TrackingID          string            `json:"trackingId,omitempty"`
	CreatedAt           Timestamp         `json:"createdAt,omitempty"`
}

// IsAssigned reports whether an employee has been assigned.
func (a Appointment) IsAssigned() bool {
	return a.Employee.Assigned()
}

// EmployeeLabel renders the assigned employee, or "Unassigned".
func (a Appointment) EmployeeLabel() string {
	return a.Employee.Label()
}

// HasTracking reports whether a tracking image was uploaded.
func (a Appointment) HasTracking() bool {
	return strings.TrimSpace(a.TrackingID) != ""
}

// AppointmentPage is one page of appointments. List endpoints answer with either
// {appointments, totalPages} or a bare array.
type AppointmentPage struct {
	Appointments []Appointment `json:"appointments"`
	TotalPages   int           `json:"totalPages"`
}

// UnmarshalJSON narrows both response shapes into a page.
func (p *AppointmentPage) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*p = AppointmentPage{TotalPages: 1}
		return nil
	}
	if trimmed[0] == '[' {
		var items []Appointment
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return fmt.Errorf("appointment list: %w", err)
		}
		*p = AppointmentPage{Appointments: items, TotalPages: 1}
		return nil
	}
	type plain AppointmentPage
	var out plain
	if err := json.Unmarshal(trimmed, &out); err != nil {
		return fmt.Errorf("appointment page: %w", err)
	}
	*p = AppointmentPage(out)
	if p.TotalPages < 1 {
		p.TotalPages = 1
	}
	return nil
}

// LooseString accepts JSON strings, numbers and null.
type LooseString string

// UnmarshalJSON implements json.Unmarshaler.
func (s *LooseString) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	switch {
	case len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")):
		*s = ""
	case trimmed[0] == '"':
		var v string
		if err := json.Unmarshal(trimmed, &v); err != nil {
			return err
		}
		*s = LooseString(v)
	default:
		var n json.Number
		if err := json.Unmarshal(trimmed, &n); err != nil {
			return fmt.Errorf("loose string: %w", err)
		}
		*s = LooseString(n.String())
	}
	return nil
}

// Float parses the value as a number, returning 0 when it is not numeric.
func (s LooseString) Float() float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(string(s)), 64)
	if err != nil {
		return 0
	}
	return f
}

// Timestamp is a time that tolerates empty strings, null and date-only values.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04", "2006-01-02 15:04:05", "2006-01-02"}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}
	var raw string
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return fmt.Errorf("timestamp: %w", err)
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("timestamp: unsupported format %q", raw)
}

// MarshalJSON renders zero values as null.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Time.UTC().Format(time.RFC3339))
}

// Format renders the timestamp, or an empty string when unset.
func (t Timestamp) Format(layout string) string {
	if t.IsZero() {
		return ""
	}
	return t.Time.Format(layout)
}
