package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"gearguard/internal/controllers"
	"gearguard/internal/listeners"
	"gearguard/internal/repositories"
	"gearguard/internal/services"
	"gearguard/pkg/config"
	"gearguard/pkg/eventbus"
	"gearguard/pkg/mailer"
	"gearguard/pkg/middleware"
	"gearguard/pkg/service"
)

// InitRouter собирает весь граф зависимостей: репозитории, сервисы,
// контроллеры, слушателей шины и маршруты.
func InitRouter(e *echo.Echo, dbConn *pgxpool.Pool, redisClient *redis.Client, cfg *config.Config, logger *zap.Logger) {
	logger.Info("InitRouter: начало создания маршрутов")

	api := e.Group("/api")

	txManager := repositories.NewTxManager(dbConn)
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)
	sessionSvc := service.NewSessionService(redisClient, cfg.Auth.SessionTTL, logger)
	smtpMailer := mailer.NewSMTPMailer(cfg.SMTP, cfg.Server.AppURL, logger)
	bus := eventbus.New(logger)
	authMW := middleware.NewAuthMiddleware(sessionSvc, cfg.Auth.SessionCookie, logger)

	// --- репозитории ---
	userRepo := repositories.NewUserRepository(dbConn, logger)
	departmentRepo := repositories.NewDepartmentRepository(dbConn, logger)
	categoryRepo := repositories.NewCategoryRepository(dbConn, logger)
	teamRepo := repositories.NewTeamRepository(dbConn, logger)
	equipmentRepo := repositories.NewEquipmentRepository(dbConn, logger)
	requestRepo := repositories.NewRequestRepository(dbConn, logger)
	worksheetRepo := repositories.NewWorksheetRepository(dbConn, logger)
	workCenterRepo := repositories.NewWorkCenterRepository(dbConn, logger)
	activityLogRepo := repositories.NewActivityLogRepository(dbConn, logger)
	dashboardRepo := repositories.NewDashboardRepository(dbConn, logger)

	// --- слушатели шины ---
	listeners.NewActivityLogListener(activityLogRepo, logger).Register(bus)

	// --- сервисы ---
	authService := services.NewAuthService(userRepo, sessionSvc, cacheRepo, smtpMailer,
		cfg.Auth.ResetTokenTTL, cfg.Auth.ResendCooldown, logger)
	userService := services.NewUserService(userRepo, logger)
	departmentService := services.NewDepartmentService(departmentRepo, logger)
	categoryService := services.NewCategoryService(categoryRepo, logger)
	teamService := services.NewTeamService(teamRepo, logger)
	equipmentService := services.NewEquipmentService(equipmentRepo, bus, logger)
	requestService := services.NewRequestService(requestRepo, equipmentRepo, txManager, bus, logger)
	worksheetService := services.NewWorksheetService(worksheetRepo, requestRepo, logger)
	workCenterService := services.NewWorkCenterService(workCenterRepo, bus, logger)
	activityLogService := services.NewActivityLogService(activityLogRepo, logger)
	dashboardService := services.NewDashboardService(dashboardRepo, activityLogRepo, logger)

	// --- контроллеры ---
	authController := controllers.NewAuthController(authService, cfg.Auth.SessionCookie,
		cfg.Auth.SessionTTL, cfg.Auth.SecureCookies, logger)
	userController := controllers.NewUserController(userService, logger)
	departmentController := controllers.NewDepartmentController(departmentService, logger)
	categoryController := controllers.NewCategoryController(categoryService, logger)
	teamController := controllers.NewTeamController(teamService, logger)
	equipmentController := controllers.NewEquipmentController(equipmentService, logger)
	requestController := controllers.NewRequestController(requestService, logger)
	worksheetController := controllers.NewWorksheetController(worksheetService, logger)
	workCenterController := controllers.NewWorkCenterController(workCenterService, logger)
	activityLogController := controllers.NewActivityLogController(activityLogService, logger)
	dashboardController := controllers.NewDashboardController(dashboardService, logger)
	reportController := controllers.NewReportController(equipmentService, logger)

	// --- маршруты ---
	secureGroup := api.Group("", authMW.Auth)

	runAuthRouter(api, secureGroup, authController)
	runUserRouter(secureGroup, userController)
	runMasterDataRouter(secureGroup, departmentController, categoryController, teamController)
	runEquipmentRouter(secureGroup, equipmentController)
	runRequestRouter(secureGroup, requestController, worksheetController)
	runWorkCenterRouter(secureGroup, workCenterController)
	runActivityLogRouter(secureGroup, activityLogController)
	runDashboardRouter(secureGroup, dashboardController)
	runReportRouter(secureGroup, reportController)

	logger.Info("InitRouter: создание маршрутов завершено")
}
