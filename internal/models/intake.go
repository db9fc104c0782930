package models

import "strings"

// CreateAppointmentForm holds the admin appointment intake form.
type CreateAppointmentForm struct {
	PatientName         string            `form:"patientName" json:"patientName" validate:"required,min=2,max=120"`
	Email               string            `form:"email" json:"email" validate:"required,email"`
	ContactNumber       string            `form:"contactNumber" json:"contactNumber" validate:"required,phone"`
	Address             string            `form:"address" json:"address" validate:"max=240"`
	DateOfBirth         string            `form:"dateOfBirth" json:"dateOfBirth" validate:"omitempty,datetime=2006-01-02"`
	Gender              string            `form:"gender" json:"gender" validate:"omitempty,oneof=Male Female Other"`
	EmployeeID          string            `form:"employeeId" json:"employeeId" validate:"max=64"`
	Laboratory          string            `form:"labortary" json:"labortary" validate:"required,max=120"`
	Fees                string            `form:"fees" json:"fees" validate:"omitempty,numeric"`
	PriorityLevel       Priority          `form:"priorityLevel" json:"priorityLevel" validate:"required,oneof=Urgent High Medium Low"`
	AppointmentDateTime string            `form:"appointmentDateTime" json:"appointmentDateTime" validate:"required,datetime=2006-01-02T15:04"`
	Status              AppointmentStatus `form:"status" json:"status" validate:"omitempty,oneof=Pending Completed Rejected"`
	SpecialInstructions string            `form:"specialInstructions" json:"specialInstructions" validate:"max=1000"`
}

// Fields returns the non-empty form values keyed by API field name.
func (f CreateAppointmentForm) Fields() map[string]string {
	return compactFields(map[string]string{
		"patientName":         f.PatientName,
		"email":               f.Email,
		"contactNumber":       f.ContactNumber,
		"address":             f.Address,
		"dateOfBirth":         f.DateOfBirth,
		"gender":              f.Gender,
		"employeeId":          f.EmployeeID,
		"labortary":           f.Laboratory,
		"fees":                f.Fees,
		"priorityLevel":       string(f.PriorityLevel),
		"appointmentDateTime": f.AppointmentDateTime,
		"status":              string(f.Status),
		"specialInstructions": f.SpecialInstructions,
	})
}

// Departments lists the departments an employee can join.
var Departments = []string{"Laboratory", "Radiology", "Pharmacy", "Admin"}

// AddEmployeeForm holds the employee onboarding form. Every field except About is required.
type AddEmployeeForm struct {
	FullName      string `form:"fullName" json:"fullName" validate:"required,max=120"`
	Email         string `form:"email" json:"email" validate:"required,email"`
	ContactNumber string `form:"contactNumber" json:"contactNumber" validate:"required,phone"`
	Address       string `form:"address" json:"address" validate:"required,min=5,max=240"`
	HireDate      string `form:"hireDate" json:"hireDate" validate:"required,datetime=2006-01-02"`
	EmployeeID    string `form:"employeeId" json:"employeeId" validate:"required,max=64"`
	Username      string `form:"username" json:"username" validate:"required,max=64"`
	Password      string `form:"password" json:"password" validate:"required,min=8"`
	JobRole       string `form:"jobRole" json:"jobRole" validate:"required,max=120"`
	ShiftTiming   string `form:"shiftTiming" json:"shiftTiming" validate:"required,max=120"`
	About         string `form:"about" json:"about" validate:"max=1000"`
	Gender        string `form:"gender" json:"gender" validate:"required,oneof=Male Female Other"`
	Department    string `form:"department" json:"department" validate:"required,oneof=Laboratory Radiology Pharmacy Admin"`
}

// Fields returns the non-empty form values keyed by API field name.
func (f AddEmployeeForm) Fields() map[string]string {
	return compactFields(map[string]string{
		"fullName":      f.FullName,
		"email":         f.Email,
		"contactNumber": f.ContactNumber,
		"address":       f.Address,
		"hireDate":      f.HireDate,
		"employeeId":    f.EmployeeID,
		"username":      f.Username,
		"password":      f.Password,
		"jobRole":       f.JobRole,
		"shiftTiming":   f.ShiftTiming,
		"about":         f.About,
		"gender":        f.Gender,
		"department":    f.Department,
	})
}

func compactFields(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		if v = strings.TrimSpace(v); v != "" {
			out[k] = v
		}
	}
	return out
}
