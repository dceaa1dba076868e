package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/rosterly/shift-solver-api/internal/dto"
	"github.com/rosterly/shift-solver-api/internal/models"
	"github.com/rosterly/shift-solver-api/internal/service"
	appErrors "github.com/rosterly/shift-solver-api/pkg/errors"
	"github.com/rosterly/shift-solver-api/pkg/response"
)

type scheduleService interface {
	Generate(ctx context.Context, req dto.GenerateScheduleRequest) (models.ScheduleResult, error)
}

type exportService interface {
	Render(result models.ScheduleResult, format string) (service.ExportFile, error)
}

// ScheduleHandler wires the schedule generator to HTTP endpoints.
type ScheduleHandler struct {
	service scheduleService
	export  exportService
}

// NewScheduleHandler constructs the handler. The export service may be nil
// when exports are disabled.
func NewScheduleHandler(svc scheduleService, export exportService) *ScheduleHandler {
	return &ScheduleHandler{service: svc, export: export}
}

// Generate godoc
// @Summary Generate an optimized shift schedule
// @Tags Schedule
// @Accept json
// @Produce json
// @Param request body dto.GenerateScheduleRequest true "Scheduling configuration"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /schedule [post]
func (h *ScheduleHandler) Generate(c *gin.Context) {
	var req dto.GenerateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, err.Error()))
		return
	}

	result, err := h.service.Generate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	meta := map[string]interface{}{
		"scheduleId":   uuid.NewString(),
		"solverStatus": result.SolverStatus,
	}
	response.JSON(c, http.StatusOK, dto.FromResult(result), meta)
}

// Export godoc
// @Summary Generate a schedule and download it as CSV or PDF
// @Tags Schedule
// @Accept json
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "Export format (csv or pdf)" default(csv)
// @Param request body dto.GenerateScheduleRequest true "Scheduling configuration"
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /schedule/export [post]
func (h *ScheduleHandler) Export(c *gin.Context) {
	if h.export == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "exports are disabled"))
		return
	}

	var req dto.GenerateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, err.Error()))
		return
	}

	result, err := h.service.Generate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	file, err := h.export.Render(result, c.DefaultQuery("format", "csv"))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+file.Filename+`"`)
	c.Data(http.StatusOK, file.ContentType, file.Data)
}

// Echo godoc
// @Summary Echo a request body back, for connectivity checks
// @Tags Schedule
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /test [post]
func (h *ScheduleHandler) Echo(c *gin.Context) {
	var body interface{}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusOK, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Test successful", "received": body})
}
