package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rosterly/shift-solver-api/internal/dto"
	"github.com/rosterly/shift-solver-api/internal/models"
	"github.com/rosterly/shift-solver-api/internal/service"
	appErrors "github.com/rosterly/shift-solver-api/pkg/errors"
	"github.com/rosterly/shift-solver-api/pkg/response"
)

type fakeScheduleSrv struct {
	result  models.ScheduleResult
	err     error
	lastReq dto.GenerateScheduleRequest
}

func (f *fakeScheduleSrv) Generate(_ context.Context, req dto.GenerateScheduleRequest) (models.ScheduleResult, error) {
	f.lastReq = req
	return f.result, f.err
}

type fakeExportSrv struct {
	file service.ExportFile
	err  error
}

func (f *fakeExportSrv) Render(models.ScheduleResult, string) (service.ExportFile, error) {
	return f.file, f.err
}

func validBody() []byte {
	body := map[string]interface{}{
		"employees": []map[string]interface{}{{
			"id": "emp-1", "name": "Alice", "role": "Manager", "maxHoursPerWeek": 40,
		}},
		"shiftTypes": []map[string]interface{}{{
			"id": "morning", "name": "Morning", "startTime": "09:00", "endTime": "17:00",
			"duration": 8, "isRepeating": true,
		}},
		"schedulingPeriod": map[string]interface{}{
			"startDate": "2024-06-03", "endDate": "2024-06-03",
		},
		"constraints": map[string]interface{}{
			"maxHoursPerEmployee": 40,
		},
	}
	raw, _ := json.Marshal(body)
	return raw
}

func TestScheduleHandlerGenerate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeScheduleSrv{result: models.ScheduleResult{
		Shifts:       []models.GeneratedShift{{ID: "shift-1", Status: models.ShiftStatusConfirmed}},
		SolverStatus: "optimal",
	}}
	h := NewScheduleHandler(srv, nil)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/schedule", bytes.NewReader(validBody()))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Generate(c)

	require.Equal(t, http.StatusOK, rec.Code)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Meta)
	assert.Equal(t, "optimal", envelope.Meta["solverStatus"])
	assert.NotEmpty(t, envelope.Meta["scheduleId"])
	assert.Equal(t, "emp-1", srv.lastReq.Employees[0].ID)
}

func TestScheduleHandlerGenerateBadJSON(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewScheduleHandler(&fakeScheduleSrv{}, nil)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/schedule", bytes.NewReader([]byte("{not json")))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Generate(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestScheduleHandlerGenerateServiceError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeScheduleSrv{err: appErrors.Clone(appErrors.ErrInvalidConfig, "bad period")}
	h := NewScheduleHandler(srv, nil)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/schedule", bytes.NewReader(validBody()))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Generate(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Error)
	assert.Equal(t, appErrors.ErrInvalidConfig.Code, envelope.Error.Code)
}

func TestScheduleHandlerExport(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeScheduleSrv{}
	exp := &fakeExportSrv{file: service.ExportFile{
		Filename:    "schedule-test.csv",
		ContentType: "text/csv",
		Data:        []byte("Shift ID\n"),
	}}
	h := NewScheduleHandler(srv, exp)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/schedule/export?format=csv", bytes.NewReader(validBody()))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Export(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "schedule-test.csv")
	assert.Equal(t, "Shift ID\n", rec.Body.String())
}

func TestScheduleHandlerExportDisabled(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewScheduleHandler(&fakeScheduleSrv{}, nil)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/schedule/export", bytes.NewReader(validBody()))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Export(c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestScheduleHandlerEcho(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewScheduleHandler(&fakeScheduleSrv{}, nil)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/test", bytes.NewReader([]byte(`{"ping":"pong"}`)))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Echo(c)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Test successful", body["message"])
	received, ok := body["received"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "pong", received["ping"])
}
