package middleware

import (
	"context"

	"gearguard/pkg/contextkeys"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/service"
	"gearguard/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type AuthMiddleware struct {
	sessions   service.SessionService
	cookieName string
	logger     *zap.Logger
}

func NewAuthMiddleware(sessions service.SessionService, cookieName string, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		sessions:   sessions,
		cookieName: cookieName,
		logger:     logger,
	}
}

// Auth - основная функция middleware: достаёт cookie сессии, ищет её в Redis
// и кладёт UserID/роль в контекст запроса. Без валидной сессии - 401.
func (m *AuthMiddleware) Auth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		cookie, err := c.Cookie(m.cookieName)
		if err != nil || cookie.Value == "" {
			return utils.ErrorResponse(c, apperrors.ErrEmptySessionCookie, m.logger)
		}

		userID, role, err := m.sessions.Lookup(c.Request().Context(), cookie.Value)
		if err != nil {
			m.logger.Warn("AuthMiddleware: сессия не найдена", zap.Error(err))
			return utils.ErrorResponse(c, apperrors.ErrSessionNotFound, m.logger)
		}

		ctx := c.Request().Context()
		ctx = context.WithValue(ctx, contextkeys.UserIDKey, userID)
		ctx = context.WithValue(ctx, contextkeys.UserRoleKey, role)
		ctx = context.WithValue(ctx, contextkeys.SessionKey, cookie.Value)
		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}
