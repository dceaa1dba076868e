package service

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rosterly/shift-solver-api/internal/models"
	apperrors "github.com/rosterly/shift-solver-api/pkg/errors"
	"github.com/rosterly/shift-solver-api/pkg/export"
)

// ExportFile is a rendered schedule export ready to stream.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportService renders solved schedules as CSV or PDF downloads.
type ExportService struct {
	csv    *export.CSVExporter
	pdf    *export.PDFExporter
	logger *zap.Logger
}

// NewExportService wires the exporters.
func NewExportService(logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		csv:    export.NewCSVExporter(),
		pdf:    export.NewPDFExporter(),
		logger: logger,
	}
}

// Render produces the export in the requested format.
func (s *ExportService) Render(result models.ScheduleResult, format string) (ExportFile, error) {
	dataset := scheduleDataset(result)
	name := "schedule-" + uuid.NewString()

	switch strings.ToLower(format) {
	case "csv":
		data, err := s.csv.Render(dataset)
		if err != nil {
			return ExportFile{}, apperrors.Wrap(err, apperrors.ErrInternal.Code, apperrors.ErrInternal.Status, "rendering csv export")
		}
		return ExportFile{Filename: name + ".csv", ContentType: "text/csv", Data: data}, nil
	case "pdf":
		data, err := s.pdf.Render(dataset)
		if err != nil {
			return ExportFile{}, apperrors.Wrap(err, apperrors.ErrInternal.Code, apperrors.ErrInternal.Status, "rendering pdf export")
		}
		return ExportFile{Filename: name + ".pdf", ContentType: "application/pdf", Data: data}, nil
	default:
		return ExportFile{}, apperrors.Clone(apperrors.ErrUnsupported, fmt.Sprintf("unsupported export format %q", format))
	}
}

func scheduleDataset(result models.ScheduleResult) export.Dataset {
	headers := []string{"Shift ID", "Date", "Start", "End", "Assigned Employees", "Status"}
	rows := make([]map[string]string, 0, len(result.Shifts))
	for _, sh := range result.Shifts {
		rows = append(rows, map[string]string{
			"Shift ID":           sh.ID,
			"Date":               sh.Date.Format("2006-01-02"),
			"Start":              sh.StartTime,
			"End":                sh.EndTime,
			"Assigned Employees": strings.Join(sh.AssignedEmployees, "; "),
			"Status":             string(sh.Status),
		})
	}
	return export.Dataset{Title: "Shift Schedule", Headers: headers, Rows: rows}
}
