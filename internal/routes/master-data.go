package routes

import (
	"github.com/labstack/echo/v4"

	"gearguard/internal/controllers"
)

func runMasterDataRouter(
	g *echo.Group,
	departments *controllers.DepartmentController,
	categories *controllers.CategoryController,
	teams *controllers.TeamController,
) {
	g.GET("/departments", departments.GetDepartments)
	g.GET("/departments/:id", departments.FindDepartment)
	g.POST("/departments", departments.CreateDepartment)

	g.GET("/categories", categories.GetCategories)
	g.GET("/categories/:id", categories.FindCategory)
	g.POST("/categories", categories.CreateCategory)

	g.GET("/teams", teams.GetTeams)
	g.GET("/teams/:id", teams.FindTeam)
	g.POST("/teams", teams.CreateTeam)
	g.PATCH("/teams/:id", teams.UpdateTeam)
}
