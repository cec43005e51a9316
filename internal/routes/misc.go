package routes

import (
	"github.com/labstack/echo/v4"

	"gearguard/internal/controllers"
)

func runActivityLogRouter(g *echo.Group, ctrl *controllers.ActivityLogController) {
	g.GET("/logs", ctrl.GetActivityLogs)
}

func runDashboardRouter(g *echo.Group, ctrl *controllers.DashboardController) {
	g.GET("/dashboard", ctrl.GetDashboard)
}

func runReportRouter(g *echo.Group, ctrl *controllers.ReportController) {
	g.GET("/reports/equipment/export", ctrl.ExportEquipment)
}
