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

type CategoryController struct {
	categoryService services.CategoryServiceInterface
	logger          *zap.Logger
}

func NewCategoryController(service services.CategoryServiceInterface, logger *zap.Logger) *CategoryController {
	return &CategoryController{categoryService: service, logger: logger}
}

func (c *CategoryController) GetCategories(ctx echo.Context) error {
	categories, err := c.categoryService.GetCategories(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, categories, "Категории успешно получены", http.StatusOK)
}

func (c *CategoryController) FindCategory(ctx echo.Context) error {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx, echo.NewHTTPError(http.StatusBadRequest, "Неверный формат ID"), c.logger)
	}
	res, err := c.categoryService.FindCategory(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Категория успешно найдена", http.StatusOK)
}

func (c *CategoryController) CreateCategory(ctx echo.Context) error {
	var payload dto.CreateCategoryDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, echo.NewHTTPError(http.StatusBadRequest, "Неверное тело запроса"), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	res, err := c.categoryService.CreateCategory(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Категория успешно создана", http.StatusCreated)
}
