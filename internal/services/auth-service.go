package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/internal/repositories"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/mailer"
	"gearguard/pkg/service"
	"gearguard/pkg/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const resetThrottleKeyPrefix = "reset_throttle:"

type AuthServiceInterface interface {
	Register(ctx context.Context, payload dto.RegisterDTO) (*entities.User, string, error)
	Login(ctx context.Context, payload dto.LoginDTO) (*entities.User, string, error)
	Logout(ctx context.Context, sessionID string) error
	CurrentUser(ctx context.Context) (*entities.User, error)
	ForgotPassword(ctx context.Context, payload dto.ForgotPasswordDTO) error
	ResetPassword(ctx context.Context, payload dto.ResetPasswordDTO) error
	ChangePassword(ctx context.Context, payload dto.ChangePasswordDTO) error
}

type AuthService struct {
	users          repositories.UserRepositoryInterface
	sessions       service.SessionService
	cache          repositories.CacheRepositoryInterface
	mailer         mailer.MailerInterface
	resetTokenTTL  time.Duration
	resendCooldown time.Duration
	logger         *zap.Logger
}

func NewAuthService(
	users repositories.UserRepositoryInterface,
	sessions service.SessionService,
	cache repositories.CacheRepositoryInterface,
	mail mailer.MailerInterface,
	resetTokenTTL time.Duration,
	resendCooldown time.Duration,
	logger *zap.Logger,
) AuthServiceInterface {
	return &AuthService{
		users:          users,
		sessions:       sessions,
		cache:          cache,
		mailer:         mail,
		resetTokenTTL:  resetTokenTTL,
		resendCooldown: resendCooldown,
		logger:         logger,
	}
}

// Register создаёт пользователя с ролью employee и сразу открывает сессию.
func (s *AuthService) Register(ctx context.Context, payload dto.RegisterDTO) (*entities.User, string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user := entities.User{
		Username: payload.Username,
		Email:    payload.Email,
		Password: string(hash),
		Name:     payload.Name,
		Role:     entities.RoleEmployee,
		IsActive: true,
	}

	created, err := s.users.CreateUser(ctx, user, nil)
	if err != nil {
		return nil, "", err
	}

	sessionID, err := s.sessions.Create(ctx, created.ID, created.Role)
	if err != nil {
		return nil, "", err
	}

	s.logger.Info("зарегистрирован новый пользователь",
		zap.Uint64("user_id", created.ID), zap.String("username", created.Username))
	return created, sessionID, nil
}

// Login: несуществующий логин и неверный пароль неразличимы для клиента.
func (s *AuthService) Login(ctx context.Context, payload dto.LoginDTO) (*entities.User, string, error) {
	user, err := s.users.FindUserByUsername(ctx, payload.Username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, "", apperrors.ErrInvalidCredentials
		}
		return nil, "", err
	}
	if !user.IsActive {
		return nil, "", apperrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(payload.Password)); err != nil {
		return nil, "", apperrors.ErrInvalidCredentials
	}

	sessionID, err := s.sessions.Create(ctx, user.ID, user.Role)
	if err != nil {
		return nil, "", err
	}
	return user, sessionID, nil
}

func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	return s.sessions.Destroy(ctx, sessionID)
}

func (s *AuthService) CurrentUser(ctx context.Context) (*entities.User, error) {
	userID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	return s.users.FindUser(ctx, userID)
}

// ForgotPassword всегда отвечает успехом, чтобы не раскрывать существование
// email. Повторная отправка письма ограничена кулдауном в Redis.
func (s *AuthService) ForgotPassword(ctx context.Context, payload dto.ForgotPasswordDTO) error {
	user, err := s.users.FindUserByEmail(ctx, payload.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.logger.Info("запрос сброса пароля для неизвестного email", zap.String("email", payload.Email))
			return nil
		}
		return err
	}

	throttleKey := resetThrottleKeyPrefix + payload.Email
	if _, err := s.cache.Get(ctx, throttleKey); err == nil {
		s.logger.Warn("сброс пароля: письмо уже отправлялось недавно", zap.String("email", payload.Email))
		return nil
	}

	token, err := generateResetToken()
	if err != nil {
		return err
	}
	expiry := time.Now().Add(s.resetTokenTTL)

	if err := s.users.UpdateResetToken(ctx, user.ID, &token, &expiry); err != nil {
		return err
	}
	if err := s.cache.Set(ctx, throttleKey, "1", s.resendCooldown); err != nil {
		s.logger.Warn("не удалось поставить кулдаун сброса пароля", zap.Error(err))
	}

	if err := s.mailer.SendPasswordResetEmail(user.Email, token); err != nil {
		s.logger.Error("не удалось отправить письмо сброса пароля",
			zap.String("email", user.Email), zap.Error(err))
		return err
	}
	return nil
}

func (s *AuthService) ResetPassword(ctx context.Context, payload dto.ResetPasswordDTO) error {
	user, err := s.users.FindUserByResetToken(ctx, payload.Token)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.ErrResetTokenInvalid
		}
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	// UpdatePassword одновременно гасит токен, повторное использование невозможно.
	if err := s.users.UpdatePassword(ctx, user.ID, string(hash)); err != nil {
		return err
	}
	s.logger.Info("пароль сброшен по токену", zap.Uint64("user_id", user.ID))
	return nil
}

func (s *AuthService) ChangePassword(ctx context.Context, payload dto.ChangePasswordDTO) error {
	userID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return err
	}

	user, err := s.users.FindUser(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(payload.CurrentPassword)); err != nil {
		return apperrors.ErrWrongPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, userID, string(hash))
}

func generateResetToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
