package controllers

import (
	"net/http"

	"gearguard/internal/services"
	"gearguard/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type ActivityLogController struct {
	logService services.ActivityLogServiceInterface
	logger     *zap.Logger
}

func NewActivityLogController(service services.ActivityLogServiceInterface, logger *zap.Logger) *ActivityLogController {
	return &ActivityLogController{logService: service, logger: logger}
}

func (c *ActivityLogController) GetActivityLogs(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())
	logs, total, err := c.logService.GetActivityLogs(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, logs, "Журнал активности успешно получен", http.StatusOK, total)
}
