package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	apperrors "gearguard/pkg/errors"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SessionService - персистентное хранилище сессий в Redis.
// Кука несёт только непрозрачный id; все данные сессии живут на сервере,
// поэтому logout действительно гасит сессию (в отличие от JWT).
type SessionService interface {
	Create(ctx context.Context, userID uint64, role string) (string, error)
	Lookup(ctx context.Context, sessionID string) (uint64, string, error)
	Destroy(ctx context.Context, sessionID string) error
	TTL() time.Duration
}

type sessionService struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewSessionService(client *redis.Client, ttl time.Duration, logger *zap.Logger) SessionService {
	return &sessionService{client: client, ttl: ttl, logger: logger}
}

func sessionKey(id string) string { return "session:" + id }

func (s *sessionService) Create(ctx context.Context, userID uint64, role string) (string, error) {
	sessionID := uuid.New().String()
	value := fmt.Sprintf("%d:%s", userID, role)
	if err := s.client.Set(ctx, sessionKey(sessionID), value, s.ttl).Err(); err != nil {
		s.logger.Error("не удалось сохранить сессию в Redis", zap.Error(err))
		return "", err
	}
	return sessionID, nil
}

func (s *sessionService) Lookup(ctx context.Context, sessionID string) (uint64, string, error) {
	value, err := s.client.Get(ctx, sessionKey(sessionID)).Result()
	if err == redis.Nil {
		return 0, "", apperrors.ErrSessionNotFound
	}
	if err != nil {
		s.logger.Error("ошибка чтения сессии из Redis", zap.Error(err))
		return 0, "", err
	}

	userID, role, err := parseSessionValue(value)
	if err != nil {
		return 0, "", err
	}

	// скользящее продление: активная сессия не истекает
	s.client.Expire(ctx, sessionKey(sessionID), s.ttl)

	return userID, role, nil
}

// parseSessionValue разбирает значение вида "userID:role"; роль может быть пустой.
func parseSessionValue(value string) (uint64, string, error) {
	idPart, role, ok := strings.Cut(value, ":")
	if !ok {
		return 0, "", apperrors.ErrSessionNotFound
	}
	userID, err := strconv.ParseUint(idPart, 10, 64)
	if err != nil {
		return 0, "", apperrors.ErrSessionNotFound
	}
	return userID, role, nil
}

func (s *sessionService) Destroy(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, sessionKey(sessionID)).Err()
}

func (s *sessionService) TTL() time.Duration { return s.ttl }
