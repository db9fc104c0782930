package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// WeekDays lists the days a laboratory can open, in display order.
var WeekDays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// Genders lists the accepted gender values.
var Genders = []string{"Male", "Female", "Other"}

// LaboratoryTiming is one opening day with its opening and closing time.
type LaboratoryTiming struct {
	Day  string   `json:"day" validate:"required,oneof=Monday Tuesday Wednesday Thursday Friday Saturday Sunday"`
	Time []string `json:"time" validate:"len=2,dive,clock"`
}

// WeeklyTimings is a laboratory's opening schedule. The API stores it either as
// an array or as a JSON-encoded string.
type WeeklyTimings []LaboratoryTiming

// UnmarshalJSON implements json.Unmarshaler.
func (w *WeeklyTimings) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*w = nil
		return nil
	}
	if trimmed[0] == '"' {
		var raw string
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return err
		}
		if strings.TrimSpace(raw) == "" {
			*w = nil
			return nil
		}
		trimmed = []byte(raw)
	}
	var out []LaboratoryTiming
	if err := json.Unmarshal(trimmed, &out); err != nil {
		return fmt.Errorf("weekly timings: %w", err)
	}
	*w = out
	return nil
}

// Opens returns the opening time for day as HH:mm, or "" when closed.
func (w WeeklyTimings) Opens(day string) string {
	return w.clock(day, 0)
}

// Closes returns the closing time for day as HH:mm, or "" when closed.
func (w WeeklyTimings) Closes(day string) string {
	return w.clock(day, 1)
}

func (w WeeklyTimings) clock(day string, i int) string {
	for _, t := range w {
		if t.Day == day && len(t.Time) > i {
			return ClockOf(t.Time[i])
		}
	}
	return ""
}

// ClockOf renders an HH:mm or ISO timestamp value as HH:mm in local time.
func ClockOf(v string) string {
	v = strings.TrimSpace(v)
	if ts, err := time.Parse(time.RFC3339Nano, v); err == nil {
		return ts.Local().Format("15:04")
	}
	return v
}

// TimingsFromForm builds the schedule from the per-day opening and closing inputs.
// Days with neither value are closed.
func TimingsFromForm(opens, closes map[string]string) WeeklyTimings {
	var out WeeklyTimings
	for _, day := range WeekDays {
		open := strings.TrimSpace(opens[day])
		shut := strings.TrimSpace(closes[day])
		if open == "" && shut == "" {
			continue
		}
		out = append(out, LaboratoryTiming{Day: day, Time: []string{open, shut}})
	}
	return out
}

// isoClock anchors an HH:mm value to now's date and renders it as a UTC ISO timestamp.
func isoClock(clock string, now time.Time) string {
	hour, minute, ok := strings.Cut(clock, ":")
	if !ok {
		return clock
	}
	h, errH := strconv.Atoi(hour)
	m, errM := strconv.Atoi(minute)
	if errH != nil || errM != nil {
		return clock
	}
	at := time.Date(now.Year(), now.Month(), now.Day(), h, m, 0, 0, now.Location())
	return at.UTC().Format("2006-01-02T15:04:05.000Z")
}

// AddLaboratoryForm holds the laboratory onboarding form. Every field except About is required.
type AddLaboratoryForm struct {
	Email         string        `form:"email" json:"email" validate:"required,email"`
	Username      string        `form:"username" json:"username" validate:"required,max=64"`
	Password      string        `form:"password" json:"password" validate:"required,min=8"`
	FullName      string        `form:"fullName" json:"fullName" validate:"required,max=120"`
	Address       string        `form:"address" json:"address" validate:"required,min=5,max=240"`
	ContactNumber string        `form:"contactNumber" json:"contactNumber" validate:"required,phone"`
	About         string        `form:"about" json:"about" validate:"max=1000"`
	Timings       WeeklyTimings `form:"-" json:"timings" validate:"required,min=1,unique=Day,dive"`
}

// Fields returns the multipart fields. Timings are flattened to timings[i][day] and
// timings[i][time][j], with each time sent as today's date at that clock time.
func (f AddLaboratoryForm) Fields(now time.Time) map[string]string {
	out := compactFields(map[string]string{
		"email":         f.Email,
		"username":      f.Username,
		"password":      f.Password,
		"fullName":      f.FullName,
		"address":       f.Address,
		"contactNumber": f.ContactNumber,
		"about":         f.About,
	})
	for i, t := range f.Timings {
		out[fmt.Sprintf("timings[%d][day]", i)] = t.Day
		for j, clock := range t.Time {
			out[fmt.Sprintf("timings[%d][time][%d]", i, j)] = isoClock(clock, now)
		}
	}
	return out
}

// UpdateProfileForm holds the account settings form. Which optional fields are
// required depends on the account's role.
type UpdateProfileForm struct {
	FullName      string        `form:"fullName" json:"fullName" validate:"required,max=120"`
	Email         string        `form:"email" json:"email" validate:"required,email"`
	ContactNumber string        `form:"contactNumber" json:"contactNumber" validate:"required,phone"`
	Address       string        `form:"address" json:"address" validate:"required,min=5,max=240"`
	Username      string        `form:"username" json:"username" validate:"required,max=64"`
	Gender        string        `form:"gender" json:"gender" validate:"omitempty,oneof=Male Female Other"`
	JobRole       string        `form:"jobRole" json:"jobRole" validate:"max=120"`
	HireDate      string        `form:"hireDate" json:"hireDate" validate:"omitempty,datetime=2006-01-02"`
	About         string        `form:"about" json:"about" validate:"max=1000"`
	Timings       WeeklyTimings `form:"-" json:"timings" validate:"omitempty,unique=Day,dive"`
}

// Fields returns the multipart fields for role. Laboratories send their schedule
// as one JSON-encoded timings field.
func (f UpdateProfileForm) Fields(role UserRole) map[string]string {
	in := map[string]string{
		"fullName":      f.FullName,
		"email":         f.Email,
		"contactNumber": f.ContactNumber,
		"address":       f.Address,
		"username":      f.Username,
	}
	switch role {
	case RoleLaboratory:
		in["about"] = f.About
	case RoleAdmin:
		in["gender"] = f.Gender
		in["jobRole"] = f.JobRole
		in["hireDate"] = f.HireDate
	default:
		in["gender"] = f.Gender
	}
	out := compactFields(in)
	if role == RoleLaboratory && len(f.Timings) > 0 {
		encoded, err := json.Marshal([]LaboratoryTiming(f.Timings))
		if err == nil {
			out["timings"] = string(encoded)
		}
	}
	return out
}
