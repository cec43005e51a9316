package routes

import (
	"github.com/labstack/echo/v4"

	"gearguard/internal/controllers"
)

func runRequestRouter(g *echo.Group, requests *controllers.RequestController, worksheets *controllers.WorksheetController) {
	g.GET("/requests", requests.GetRequests)
	g.GET("/requests/:id", requests.FindRequest)
	g.POST("/requests", requests.CreateRequest)
	g.PUT("/requests/:id", requests.UpdateRequest)

	g.GET("/requests/:id/worksheets", worksheets.GetWorksheets)
	g.POST("/requests/:id/worksheets", worksheets.CreateWorksheet)
	g.DELETE("/worksheets/:id", worksheets.DeleteWorksheet)
}
