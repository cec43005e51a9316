package controllers

import (
	"net/http"

	"gearguard/internal/services"
	"gearguard/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type DashboardController struct {
	dashboardService services.DashboardServiceInterface
	logger           *zap.Logger
}

func NewDashboardController(service services.DashboardServiceInterface, logger *zap.Logger) *DashboardController {
	return &DashboardController{dashboardService: service, logger: logger}
}

func (c *DashboardController) GetDashboard(ctx echo.Context) error {
	dashboard, err := c.dashboardService.GetDashboard(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, dashboard, "Сводка успешно получена", http.StatusOK)
}
