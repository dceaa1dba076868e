package service

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rosterly/shift-solver-api/internal/models"
	apperrors "github.com/rosterly/shift-solver-api/pkg/errors"
)

func sampleResult() models.ScheduleResult {
	return models.ScheduleResult{
		Shifts: []models.GeneratedShift{{
			ID:                "shift-1",
			ShiftTypeID:       "morning",
			Date:              time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC),
			StartTime:         "09:00",
			EndTime:           "17:00",
			AssignedEmployees: []string{"emp-1", "emp-2"},
			Status:            models.ShiftStatusConfirmed,
		}},
	}
}

func TestRenderCSV(t *testing.T) {
	svc := NewExportService(zap.NewNop())

	file, err := svc.Render(sampleResult(), "csv")
	require.NoError(t, err)

	assert.Equal(t, "text/csv", file.ContentType)
	assert.True(t, strings.HasPrefix(file.Filename, "schedule-"))
	assert.True(t, strings.HasSuffix(file.Filename, ".csv"))

	body := string(file.Data)
	lines := strings.Split(strings.TrimSpace(body), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Shift ID,Date,Start,End,Assigned Employees,Status", lines[0])
	assert.Contains(t, lines[1], "shift-1")
	assert.Contains(t, lines[1], "2024-06-03")
	assert.Contains(t, lines[1], "emp-1; emp-2")
	assert.Contains(t, lines[1], "confirmed")
}

func TestRenderPDF(t *testing.T) {
	svc := NewExportService(zap.NewNop())

	file, err := svc.Render(sampleResult(), "pdf")
	require.NoError(t, err)

	assert.Equal(t, "application/pdf", file.ContentType)
	assert.True(t, strings.HasSuffix(file.Filename, ".pdf"))
	assert.True(t, strings.HasPrefix(string(file.Data), "%PDF"))
}

func TestRenderUnsupportedFormat(t *testing.T) {
	svc := NewExportService(zap.NewNop())

	_, err := svc.Render(sampleResult(), "xml")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrUnsupported.Code, apperrors.FromError(err).Code)
}
