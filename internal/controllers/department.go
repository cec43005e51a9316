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

type DepartmentController struct {
	departmentService services.DepartmentServiceInterface
	logger            *zap.Logger
}

func NewDepartmentController(service services.DepartmentServiceInterface, logger *zap.Logger) *DepartmentController {
	return &DepartmentController{departmentService: service, logger: logger}
}

func (c *DepartmentController) GetDepartments(ctx echo.Context) error {
	departments, err := c.departmentService.GetDepartments(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, departments, "Подразделения успешно получены", http.StatusOK)
}

func (c *DepartmentController) FindDepartment(ctx echo.Context) error {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx, echo.NewHTTPError(http.StatusBadRequest, "Неверный формат ID"), c.logger)
	}
	res, err := c.departmentService.FindDepartment(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Подразделение успешно найдено", http.StatusOK)
}

func (c *DepartmentController) CreateDepartment(ctx echo.Context) error {
	var payload dto.CreateDepartmentDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, echo.NewHTTPError(http.StatusBadRequest, "Неверное тело запроса"), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	res, err := c.departmentService.CreateDepartment(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Подразделение успешно создано", http.StatusCreated)
}
