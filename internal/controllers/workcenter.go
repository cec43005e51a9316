package controllers

import (
	"net/http"
	"strconv"

	"gearguard/internal/dto"
	"gearguard/internal/services"
	"gearguard/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type WorkCenterController struct {
	workCenterService services.WorkCenterServiceInterface
	logger            *zap.Logger
}

func NewWorkCenterController(service services.WorkCenterServiceInterface, logger *zap.Logger) *WorkCenterController {
	return &WorkCenterController{workCenterService: service, logger: logger}
}

func (c *WorkCenterController) GetWorkCenters(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())
	centers, total, err := c.workCenterService.GetWorkCenters(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, centers, "Рабочие центры успешно получены", http.StatusOK, total)
}

func (c *WorkCenterController) FindWorkCenter(ctx echo.Context) error {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx, echo.NewHTTPError(http.StatusBadRequest, "Неверный формат ID"), c.logger)
	}
	res, err := c.workCenterService.FindWorkCenter(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Рабочий центр успешно найден", http.StatusOK)
}

func (c *WorkCenterController) CreateWorkCenter(ctx echo.Context) error {
	var payload dto.CreateWorkCenterDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, echo.NewHTTPError(http.StatusBadRequest, "Неверное тело запроса"), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	res, err := c.workCenterService.CreateWorkCenter(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Рабочий центр успешно создан", http.StatusCreated)
}

func (c *WorkCenterController) UpdateWorkCenter(ctx echo.Context) error {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx, echo.NewHTTPError(http.StatusBadRequest, "Неверный формат ID"), c.logger)
	}
	var payload dto.UpdateWorkCenterDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, echo.NewHTTPError(http.StatusBadRequest, "Неверное тело запроса"), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	res, err := c.workCenterService.UpdateWorkCenter(ctx.Request().Context(), id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Рабочий центр успешно обновлён", http.StatusOK)
}
