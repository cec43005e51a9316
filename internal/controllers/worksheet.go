package controllers

import (
	"net/http"
	"strconv"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/internal/services"
	"gearguard/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type WorksheetController struct {
	worksheetService services.WorksheetServiceInterface
	logger           *zap.Logger
}

func NewWorksheetController(service services.WorksheetServiceInterface, logger *zap.Logger) *WorksheetController {
	return &WorksheetController{worksheetService: service, logger: logger}
}

type worksheetListResponse struct {
	Worksheets []entities.Worksheet     `json:"worksheets"`
	Summary    *dto.WorksheetSummaryDTO `json:"summary"`
}

func (c *WorksheetController) GetWorksheets(ctx echo.Context) error {
	requestID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx, echo.NewHTTPError(http.StatusBadRequest, "Неверный формат ID"), c.logger)
	}
	sheets, summary, err := c.worksheetService.GetWorksheets(ctx.Request().Context(), requestID)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, worksheetListResponse{Worksheets: sheets, Summary: summary},
		"Записи учёта времени успешно получены", http.StatusOK)
}

func (c *WorksheetController) CreateWorksheet(ctx echo.Context) error {
	requestID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx, echo.NewHTTPError(http.StatusBadRequest, "Неверный формат ID"), c.logger)
	}
	var payload dto.CreateWorksheetDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, echo.NewHTTPError(http.StatusBadRequest, "Неверное тело запроса"), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	res, err := c.worksheetService.CreateWorksheet(ctx.Request().Context(), requestID, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Запись учёта времени успешно создана", http.StatusCreated)
}

func (c *WorksheetController) DeleteWorksheet(ctx echo.Context) error {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx, echo.NewHTTPError(http.StatusBadRequest, "Неверный формат ID"), c.logger)
	}
	if err := c.worksheetService.DeleteWorksheet(ctx.Request().Context(), id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Запись учёта времени успешно удалена", http.StatusOK)
}
