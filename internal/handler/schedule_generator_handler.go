package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/classwise/timetabler/internal/dto"
	"github.com/classwise/timetabler/internal/engine"
	internalexport "github.com/classwise/timetabler/internal/export"
	"github.com/classwise/timetabler/internal/middleware"
	"github.com/classwise/timetabler/internal/service"
	appErrors "github.com/classwise/timetabler/pkg/errors"
	"github.com/classwise/timetabler/pkg/response"
)

type scheduleGenerator interface {
	Submit(ctx context.Context, req dto.GenerateScheduleRequest) (*dto.GenerateScheduleResponse, error)
	Poll(ctx context.Context, jobID string) (*dto.GenerateScheduleResponse, error)
	Export(ctx context.Context, jobID string) ([]engine.Schedule, error)
}

// ScheduleGeneratorHandler exposes the timetable generation HTTP surface.
type ScheduleGeneratorHandler struct {
	service scheduleGenerator
}

// NewScheduleGeneratorHandler constructs the handler.
func NewScheduleGeneratorHandler(svc *service.ScheduleGeneratorService) *ScheduleGeneratorHandler {
	return &ScheduleGeneratorHandler{service: svc}
}

// Generate godoc
// @Summary Submit a timetable generation job
// @Description Validates the catalog/config payload and enqueues a background generate() run; poll the returned jobId for results.
// @Tags Schedules
// @Accept json
// @Produce json
// @Param payload body dto.GenerateScheduleRequest true "Generate schedule payload"
// @Success 202 {object} response.Envelope
// @Router /schedules/generate [post]
func (h *ScheduleGeneratorHandler) Generate(c *gin.Context) {
	var req dto.GenerateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid generate payload"))
		return
	}
	result, err := h.service.Submit(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusAccepted, result, nil, middleware.ExtractMeta(c))
}

// Job godoc
// @Summary Poll a generation job
// @Tags Schedules
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} response.Envelope
// @Router /schedules/jobs/{id} [get]
func (h *ScheduleGeneratorHandler) Job(c *gin.Context) {
	result, err := h.service.Poll(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, result.CacheHit)
	response.JSON(c, http.StatusOK, result, nil, middleware.ExtractMeta(c))
}

// Export godoc
// @Summary Download a completed job's schedules
// @Tags Schedules
// @Produce text/html,text/csv
// @Param id path string true "Job ID"
// @Param format query string false "csv (default) or html"
// @Success 200 {string} string "rendered export"
// @Router /schedules/jobs/{id}/export [get]
func (h *ScheduleGeneratorHandler) Export(c *gin.Context) {
	schedules, err := h.service.Export(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	switch format := c.DefaultQuery("format", "csv"); format {
	case "html":
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.Header("Content-Disposition", `attachment; filename="schedules.html"`)
		if err := internalexport.WriteHTML(c.Writer, schedules); err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render html export"))
		}
	case "csv":
		c.Header("Content-Type", "text/csv; charset=utf-8")
		c.Header("Content-Disposition", `attachment; filename="schedules.csv"`)
		if err := internalexport.WriteCSVSummary(c.Writer, schedules); err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv export"))
		}
	default:
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "format must be csv or html"))
	}
}
