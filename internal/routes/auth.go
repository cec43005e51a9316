package routes

import (
	"github.com/labstack/echo/v4"

	"gearguard/internal/controllers"
)

func runAuthRouter(public *echo.Group, secure *echo.Group, ctrl *controllers.AuthController) {
	public.POST("/register", ctrl.Register)
	public.POST("/login", ctrl.Login)
	public.POST("/forgot-password", ctrl.ForgotPassword)
	public.POST("/reset-password", ctrl.ResetPassword)

	secure.POST("/logout", ctrl.Logout)
	secure.GET("/user", ctrl.CurrentUser)
	secure.POST("/change-password", ctrl.ChangePassword)
}
