package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/locationgenius/dashboard/internal/application/dashboard/dto"
	"github.com/locationgenius/dashboard/internal/shared/errors"
	"github.com/locationgenius/dashboard/internal/shared/logger"
	"github.com/locationgenius/dashboard/internal/shared/utils"
)

type DashboardService interface {
	ResolveTimeframe(ctx context.Context, req dto.ResolveTimeframeRequest) (*dto.TimeframeResponse, error)
	PickDate(ctx context.Context, req dto.PickDateRequest) (*dto.TimeframeResponse, error)
	ListTimeframes() []dto.TimeframeOption
}

type DashboardHandler struct {
	service DashboardService
	logger  logger.Interface
}

func NewDashboardHandler(service DashboardService, logger logger.Interface) *DashboardHandler {
	return &DashboardHandler{
		service: service,
		logger:  logger,
	}
}

// ListTimeframes godoc
// @Summary List timeframe options in display order
// @Security Bearer
// @Tags dashboard
// @Produce json
// @Success 200 {object} utils.APIResponse{data=[]dto.TimeframeOption}
// @Router /dashboard/timeframes [get]
func (h *DashboardHandler) ListTimeframes(c *gin.Context) {
	utils.SuccessResponse(c, http.StatusOK, "", h.service.ListTimeframes())
}

// ResolveTimeframe godoc
// @Summary Resolve a timeframe selection to its anchor date
// @Security Bearer
// @Tags dashboard
// @Produce json
// @Param selection query string true "Timeframe" example(last_month)
// @Param previous query string false "Previously selected date (RFC3339)"
// @Success 200 {object} utils.APIResponse{data=dto.TimeframeResponse}
// @Failure 400 {object} utils.APIResponse "Unknown timeframe"
// @Router /dashboard/timeframe [get]
func (h *DashboardHandler) ResolveTimeframe(c *gin.Context) {
	var req dto.ResolveTimeframeRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.logger.Warnw("invalid timeframe query", "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError("Invalid query parameters", err.Error()))
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.service.ResolveTimeframe(c.Request.Context(), req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// PickDate godoc
// @Summary Select an explicit calendar date
// @Security Bearer
// @Tags dashboard
// @Produce json
// @Param date query string true "Date (YYYY-MM-DD)" example(2025-05-01)
// @Param timeframe query string false "Current timeframe"
// @Success 200 {object} utils.APIResponse{data=dto.TimeframeResponse}
// @Failure 400 {object} utils.APIResponse "Bad date or timeframe"
// @Router /dashboard/date [get]
func (h *DashboardHandler) PickDate(c *gin.Context) {
	var req dto.PickDateRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("Invalid query parameters", err.Error()))
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.service.PickDate(c.Request.Context(), req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
