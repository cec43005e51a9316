package routes

import (
	"github.com/labstack/echo/v4"

	"gearguard/internal/controllers"
)

func runUserRouter(g *echo.Group, ctrl *controllers.UserController) {
	g.GET("/users", ctrl.GetUsers)
	g.GET("/users/technicians", ctrl.GetTechnicians)
	g.GET("/users/:id", ctrl.FindUser)
	g.PATCH("/users/:id", ctrl.UpdateUser)
}
