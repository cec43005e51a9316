package controllers

import (
	"net/http"
	"time"

	"gearguard/internal/dto"
	"gearguard/internal/services"
	"gearguard/pkg/contextkeys"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type AuthController struct {
	authService   services.AuthServiceInterface
	cookieName    string
	sessionTTL    time.Duration
	secureCookies bool
	logger        *zap.Logger
}

func NewAuthController(
	authService services.AuthServiceInterface,
	cookieName string,
	sessionTTL time.Duration,
	secureCookies bool,
	logger *zap.Logger,
) *AuthController {
	return &AuthController{
		authService:   authService,
		cookieName:    cookieName,
		sessionTTL:    sessionTTL,
		secureCookies: secureCookies,
		logger:        logger,
	}
}

func (c *AuthController) sessionCookie(sessionID string, maxAge time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     c.cookieName,
		Value:    sessionID,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		Secure:   c.secureCookies,
		SameSite: http.SameSiteLaxMode,
	}
}

func (c *AuthController) Register(ctx echo.Context) error {
	var payload dto.RegisterDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, echo.NewHTTPError(http.StatusBadRequest, "Неверное тело запроса"), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	user, sessionID, err := c.authService.Register(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	ctx.SetCookie(c.sessionCookie(sessionID, c.sessionTTL))
	return utils.SuccessResponse(ctx, user, "Пользователь успешно зарегистрирован", http.StatusCreated)
}

func (c *AuthController) Login(ctx echo.Context) error {
	var payload dto.LoginDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, echo.NewHTTPError(http.StatusBadRequest, "Неверное тело запроса"), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	user, sessionID, err := c.authService.Login(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	ctx.SetCookie(c.sessionCookie(sessionID, c.sessionTTL))
	return utils.SuccessResponse(ctx, user, "Вход выполнен успешно", http.StatusOK)
}

func (c *AuthController) Logout(ctx echo.Context) error {
	sessionID, ok := ctx.Request().Context().Value(contextkeys.SessionKey).(string)
	if !ok || sessionID == "" {
		return utils.ErrorResponse(ctx, apperrors.ErrEmptySessionCookie, c.logger)
	}

	if err := c.authService.Logout(ctx.Request().Context(), sessionID); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	ctx.SetCookie(c.sessionCookie("", -1))
	return utils.SuccessResponse(ctx, nil, "Выход выполнен успешно", http.StatusOK)
}

func (c *AuthController) CurrentUser(ctx echo.Context) error {
	user, err := c.authService.CurrentUser(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, user, "Текущий пользователь", http.StatusOK)
}

func (c *AuthController) ForgotPassword(ctx echo.Context) error {
	var payload dto.ForgotPasswordDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, echo.NewHTTPError(http.StatusBadRequest, "Неверное тело запроса"), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.authService.ForgotPassword(ctx.Request().Context(), payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	// Ответ одинаков и для существующего, и для неизвестного email.
	return utils.SuccessResponse(ctx, nil, "Если адрес зарегистрирован, письмо отправлено", http.StatusOK)
}

func (c *AuthController) ResetPassword(ctx echo.Context) error {
	var payload dto.ResetPasswordDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, echo.NewHTTPError(http.StatusBadRequest, "Неверное тело запроса"), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.authService.ResetPassword(ctx.Request().Context(), payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Пароль успешно изменён", http.StatusOK)
}

func (c *AuthController) ChangePassword(ctx echo.Context) error {
	var payload dto.ChangePasswordDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, echo.NewHTTPError(http.StatusBadRequest, "Неверное тело запроса"), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.authService.ChangePassword(ctx.Request().Context(), payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Пароль успешно изменён", http.StatusOK)
}
