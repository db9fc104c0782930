package service

import (
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/phlebotomy-portal/internal/models"
	appErrors "github.com/noah-isme/phlebotomy-portal/pkg/errors"
)

func exportSnapshot() ListSnapshot {
	a := appt("a1", models.StatusPending)
	a.Laboratory = "Quest"
	a.Employee = &models.EmployeeRef{ID: "e1", EmployeeID: "EMP-1", FullName: "Ana"}
	b := appt("a2", models.StatusCompleted)
	return ListSnapshot{
		View:       "admin-appointments",
		Title:      "Appointments",
		Paginated:  true,
		Pagination: models.NewPagination(2, 5),
		Rows:       []AppointmentRow{{Index: 1, Appointment: a}, {Index: 2, Appointment: b}},
	}
}

func newExportServiceForTest() *ExportService {
	svc := NewExportService(nil)
	svc.now = func() time.Time { return time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC) }
	return svc
}

func TestExportServiceRenderCSV(t *testing.T) {
	file, err := newExportServiceForTest().Render(exportSnapshot(), "CSV")
	require.NoError(t, err)

	assert.Equal(t, "admin-appointments_page2_20240501_100000.csv", file.Filename)
	assert.Equal(t, "text/csv", file.ContentType)

	records, err := csv.NewReader(strings.NewReader(string(file.Body))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, exportHeaders, records[0])
	assert.Equal(t, "Patient a1", records[1][1])
	assert.Equal(t, "Ana (EMP-1)", records[1][8])
	assert.Equal(t, "Unassigned", records[2][8])
}

func TestExportServiceRenderBinaryFormats(t *testing.T) {
	svc := newExportServiceForTest()
	for _, format := range []ExportFormat{ExportPDF, ExportXLSX} {
		file, err := svc.Render(exportSnapshot(), format)
		require.NoError(t, err, format)
		assert.NotEmpty(t, file.Body)
		assert.True(t, strings.HasSuffix(file.Filename, "."+string(format)))
	}
}

func TestExportServiceRejectsUnknownFormat(t *testing.T) {
	_, err := newExportServiceForTest().Render(exportSnapshot(), "docx")
	assert.True(t, appErrors.HasCode(err, appErrors.ErrValidation.Code))
}

func TestBuildDatasetTitle(t *testing.T) {
	assert.Equal(t, "Appointments: page 2 of 5", BuildDataset(exportSnapshot()).Title)

	snap := exportSnapshot()
	snap.Paginated = false
	snap.Title = "Today's Appointments"
	assert.Equal(t, "Today's Appointments", BuildDataset(snap).Title)
}
