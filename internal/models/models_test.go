package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var adminShape = QueryShape{
	Fields:    []FilterField{FilterStatus, FilterPriority, FilterLaboratory, FilterEmployee, FilterDate, FilterAssigned, FilterTracking},
	Paginated: true,
	Sortable:  true,
}

func TestAppliedQueryValuesOmitsEmptyFilters(t *testing.T) {
	q := DraftQuery{Filter: AppointmentFilter{Status: "", Priority: "  ", Laboratory: "Natera"}}.Commit()

	values := q.Values(adminShape)

	assert.Equal(t, "1", values.Get("page"))
	assert.Equal(t, "Natera", values.Get("labortary"))
	assert.Equal(t, "-1", values.Get("sortOrder"))
	_, hasStatus := values["status"]
	assert.False(t, hasStatus)
	_, hasPriority := values["priorityLevel"]
	assert.False(t, hasPriority)
	_, hasSortFields := values["sortFields"]
	assert.False(t, hasSortFields)
}

func TestAppliedQueryValuesDefaults(t *testing.T) {
	values := NewAppliedQuery().Values(adminShape)
	assert.Equal(t, "page=1&sortFields=createdAt&sortOrder=-1", values.Encode())

	values = NewAppliedQuery().Values(QueryShape{})
	assert.Empty(t, values)
}

func TestDraftCommitResetsPage(t *testing.T) {
	applied := DraftQuery{Filter: AppointmentFilter{Status: StatusPending, SortOrder: SortAscending}}.Commit()
	assert.Equal(t, 1, applied.Page)
	assert.Equal(t, SortAscending, applied.Filter.SortOrder)
}

func TestRestrictDropsUnsupportedFilters(t *testing.T) {
	f := AppointmentFilter{Status: StatusPending, Assigned: "True", Tracking: "False", SortField: SortByPatientName}
	out := f.Restrict([]FilterField{FilterStatus})
	assert.Equal(t, StatusPending, out.Status)
	assert.Empty(t, out.Assigned)
	assert.Empty(t, out.Tracking)
	assert.Equal(t, SortByPatientName, out.SortField)
}

func TestAppointmentPageAcceptsBothShapes(t *testing.T) {
	var paged AppointmentPage
	require.NoError(t, json.Unmarshal([]byte(`{"appointments":[{"_id":"a1","status":"Pending"}],"totalPages":3}`), &paged))
	assert.Len(t, paged.Appointments, 1)
	assert.Equal(t, 3, paged.TotalPages)

	var bare AppointmentPage
	require.NoError(t, json.Unmarshal([]byte(`[{"_id":"a1"},{"_id":"a2"}]`), &bare))
	assert.Len(t, bare.Appointments, 2)
	assert.Equal(t, 1, bare.TotalPages)

	var zero AppointmentPage
	require.NoError(t, json.Unmarshal([]byte(`{"appointments":[],"totalPages":0}`), &zero))
	assert.Equal(t, 1, zero.TotalPages)
}

func TestAppointmentEmployeeShapes(t *testing.T) {
	var populated Appointment
	require.NoError(t, json.Unmarshal([]byte(`{"_id":"a1","employeeId":{"_id":"e1","employeeId":"EMP-7","fullName":"Ana"}}`), &populated))
	assert.True(t, populated.IsAssigned())
	assert.Equal(t, "Ana (EMP-7)", populated.Employee.Label())

	var bareID Appointment
	require.NoError(t, json.Unmarshal([]byte(`{"_id":"a2","employeeId":"e9"}`), &bareID))
	assert.True(t, bareID.IsAssigned())

	var empty Appointment
	require.NoError(t, json.Unmarshal([]byte(`{"_id":"a3","employeeId":null}`), &empty))
	assert.False(t, empty.IsAssigned())
	assert.Equal(t, "Unassigned", empty.Employee.Label())
}

func TestLooseValuesAndTimestamps(t *testing.T) {
	var a Appointment
	require.NoError(t, json.Unmarshal([]byte(`{"_id":"a1","age":42,"fees":"120.50","dateOfBirth":"","appointmentDateTime":"2024-05-01T10:30:00.000Z","createdAt":"2024-04-01"}`), &a))
	assert.Equal(t, LooseString("42"), a.Age)
	assert.InDelta(t, 120.5, a.Fees.Float(), 0.001)
	assert.True(t, a.DateOfBirth.IsZero())
	assert.Equal(t, "2024-05-01 10:30", a.AppointmentDateTime.Format("2006-01-02 15:04"))
	assert.Equal(t, "2024-04-01", a.CreatedAt.Format("2006-01-02"))
}

func TestMaskedAccount(t *testing.T) {
	assert.Equal(t, "******7890", Transaction{AccountNumber: "1234567890"}.MaskedAccount())
	assert.Equal(t, "123", Transaction{AccountNumber: "123"}.MaskedAccount())
}

func TestLaboratoryChoices(t *testing.T) {
	out := LaboratoryChoices([]Laboratory{{FullName: "Quest"}, {FullName: "Natera"}})
	assert.Equal(t, []string{"Quest", "Natera", "Caredx", "Prosecco study", "Assisted Living", "Other"}, out)
}

func TestNewPaginationClamps(t *testing.T) {
	p := NewPagination(9, 3)
	assert.Equal(t, 3, p.Page)
	assert.False(t, p.HasNext)
	assert.Equal(t, 3, p.NextPage())
	assert.Equal(t, 2, p.PrevPage())
}

func TestWeeklyTimingsAcceptEncodedString(t *testing.T) {
	var p Profile
	require.NoError(t, json.Unmarshal([]byte(`{"fullName":"Quest","timings":"[{\"day\":\"Monday\",\"time\":[\"08:00\",\"17:00\"]}]"}`), &p))
	require.Len(t, p.Timings, 1)
	assert.Equal(t, "08:00", p.Timings.Opens("Monday"))
	assert.Equal(t, "17:00", p.Timings.Closes("Monday"))
	assert.Empty(t, p.Timings.Opens("Sunday"))

	require.NoError(t, json.Unmarshal([]byte(`{"timings":[{"day":"Friday","time":["09:30","12:00"]}]}`), &p))
	assert.Equal(t, "09:30", p.Timings.Opens("Friday"))

	require.NoError(t, json.Unmarshal([]byte(`{"timings":""}`), &p))
	assert.Nil(t, p.Timings)
}

func TestAddLaboratoryFieldsAnchorTimesToToday(t *testing.T) {
	form := AddLaboratoryForm{
		FullName: "Quest",
		Timings:  WeeklyTimings{{Day: "Monday", Time: []string{"08:00", "17:45"}}},
	}
	fields := form.Fields(time.Date(2024, 3, 9, 23, 0, 0, 0, time.UTC))
	assert.Equal(t, "Monday", fields["timings[0][day]"])
	assert.Equal(t, "2024-03-09T08:00:00.000Z", fields["timings[0][time][0]"])
	assert.Equal(t, "2024-03-09T17:45:00.000Z", fields["timings[0][time][1]"])
	_, hasPassword := fields["password"]
	assert.False(t, hasPassword)
}
