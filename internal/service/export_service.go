package service

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/phlebotomy-portal/pkg/export"
	appErrors "github.com/noah-isme/phlebotomy-portal/pkg/errors"
)

// ExportFormat enumerates downloadable formats.
type ExportFormat string

const (
	ExportCSV  ExportFormat = "csv"
	ExportPDF  ExportFormat = "pdf"
	ExportXLSX ExportFormat = "xlsx"
)

var exportContentTypes = map[ExportFormat]string{
	ExportCSV:  "text/csv",
	ExportPDF:  "application/pdf",
	ExportXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

var exportHeaders = []string{"No", "Patient", "Email", "Contact", "Appointment", "Laboratory", "Priority", "Status", "Employee", "Fees"}

// ExportFile is a rendered download.
type ExportFile struct {
	Filename    string
	ContentType string
	Body        []byte
}

type datasetRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

// ExportService renders the displayed page of a list view.
type ExportService struct {
	renderers map[ExportFormat]datasetRenderer
	logger    *zap.Logger
	now       func() time.Time
}

// NewExportService constructs an ExportService with the CSV, PDF and XLSX renderers.
func NewExportService(logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		renderers: map[ExportFormat]datasetRenderer{
			ExportCSV:  export.NewCSVExporter(),
			ExportPDF:  export.NewPDFExporter(),
			ExportXLSX: export.NewXLSXExporter(),
		},
		logger: logger,
		now:    time.Now,
	}
}

// Render converts snapshot rows into the requested format.
func (s *ExportService) Render(snap ListSnapshot, format ExportFormat) (*ExportFile, error) {
	format = ExportFormat(strings.ToLower(strings.TrimSpace(string(format))))
	if format == "" {
		format = ExportCSV
	}
	renderer, ok := s.renderers[format]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be csv, pdf or xlsx")
	}

	dataset := BuildDataset(snap)
	payload, err := renderer.Render(dataset)
	if err != nil {
		s.logger.Error("export render failed", zap.String("view", snap.View), zap.String("format", string(format)), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}

	filename := fmt.Sprintf("%s_page%d_%s.%s", snap.View, snap.Pagination.Page, s.now().UTC().Format("20060102_150405"), format)
	return &ExportFile{Filename: filename, ContentType: exportContentTypes[format], Body: payload}, nil
}

// BuildDataset maps list rows onto export columns.
func BuildDataset(snap ListSnapshot) export.Dataset {
	title := snap.Title
	if snap.Paginated {
		title = fmt.Sprintf("%s: page %d of %d", snap.Title, snap.Pagination.Page, snap.Pagination.TotalPages)
	}
	rows := make([]map[string]string, 0, len(snap.Rows))
	for _, row := range snap.Rows {
		a := row.Appointment
		rows = append(rows, map[string]string{
			"No":          strconv.Itoa(row.Index),
			"Patient":     a.PatientName,
			"Email":       a.Email,
			"Contact":     string(a.ContactNumber),
			"Appointment": a.AppointmentDateTime.Format("2006-01-02 15:04"),
			"Laboratory":  a.Laboratory,
			"Priority":    string(a.PriorityLevel),
			"Status":      string(a.Status),
			"Employee":    a.Employee.Label(),
			"Fees":        string(a.Fees),
		})
	}
	return export.Dataset{Title: title, Headers: exportHeaders, Rows: rows}
}
