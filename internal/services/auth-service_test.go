package services

import (
	"context"
	"testing"
	"time"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	apperrors "gearguard/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type authFixture struct {
	users    *fakeUserRepo
	sessions *fakeSessionService
	cache    *fakeCacheRepo
	mail     *fakeMailer
	svc      AuthServiceInterface
}

func newAuthFixture() *authFixture {
	f := &authFixture{
		users:    newFakeUserRepo(),
		sessions: newFakeSessionService(),
		cache:    newFakeCacheRepo(),
		mail:     &fakeMailer{},
	}
	f.svc = NewAuthService(f.users, f.sessions, f.cache, f.mail, time.Hour, time.Minute, zap.NewNop())
	return f
}

func (f *authFixture) seedUser(t *testing.T, username, email, password string, active bool) *entities.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user, err := f.users.CreateUser(context.Background(), entities.User{
		Username: username,
		Email:    email,
		Password: string(hash),
		Name:     "Тест",
		Role:     entities.RoleEmployee,
		IsActive: active,
	}, nil)
	require.NoError(t, err)
	return user
}

func TestRegisterOpensSession(t *testing.T) {
	f := newAuthFixture()

	user, sessionID, err := f.svc.Register(context.Background(), dto.RegisterDTO{
		Username: "petrov",
		Email:    "petrov@example.com",
		Password: "secret123",
		Name:     "Петров",
	})
	require.NoError(t, err)

	assert.Equal(t, entities.RoleEmployee, user.Role)
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "secret123", user.Password)

	gotID, role, err := f.sessions.Lookup(context.Background(), sessionID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, gotID)
	assert.Equal(t, entities.RoleEmployee, role)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	f := newAuthFixture()
	f.seedUser(t, "petrov", "petrov@example.com", "secret123", true)

	_, _, err := f.svc.Register(context.Background(), dto.RegisterDTO{
		Username: "petrov",
		Email:    "other@example.com",
		Password: "secret123",
		Name:     "Двойник",
	})

	var httpErr *apperrors.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, "username", httpErr.Details["field"])
}

func TestLoginSuccess(t *testing.T) {
	f := newAuthFixture()
	seeded := f.seedUser(t, "petrov", "petrov@example.com", "secret123", true)

	user, sessionID, err := f.svc.Login(context.Background(), dto.LoginDTO{
		Username: "petrov", Password: "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, user.ID)

	gotID, _, err := f.sessions.Lookup(context.Background(), sessionID)
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, gotID)
}

// Неизвестный логин, неверный пароль и отключённая учётка дают одинаковую ошибку.
func TestLoginRejections(t *testing.T) {
	f := newAuthFixture()
	f.seedUser(t, "petrov", "petrov@example.com", "secret123", true)
	f.seedUser(t, "fired", "fired@example.com", "secret123", false)

	cases := []dto.LoginDTO{
		{Username: "nobody", Password: "secret123"},
		{Username: "petrov", Password: "wrong-pass"},
		{Username: "fired", Password: "secret123"},
	}
	for _, payload := range cases {
		_, _, err := f.svc.Login(context.Background(), payload)
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials, "login %q", payload.Username)
	}
}

func TestForgotPasswordSendsToken(t *testing.T) {
	f := newAuthFixture()
	seeded := f.seedUser(t, "petrov", "petrov@example.com", "secret123", true)

	err := f.svc.ForgotPassword(context.Background(), dto.ForgotPasswordDTO{Email: "petrov@example.com"})
	require.NoError(t, err)

	require.Len(t, f.mail.sentTo, 1)
	assert.Equal(t, "petrov@example.com", f.mail.sentTo[0])

	stored, err := f.users.FindUser(context.Background(), seeded.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.ResetToken)
	assert.Equal(t, *stored.ResetToken, f.mail.sentTokens[0])
	require.NotNil(t, stored.ResetTokenExpiry)
	assert.True(t, stored.ResetTokenExpiry.After(time.Now()))
}

func TestForgotPasswordUnknownEmailIsSilent(t *testing.T) {
	f := newAuthFixture()

	err := f.svc.ForgotPassword(context.Background(), dto.ForgotPasswordDTO{Email: "ghost@example.com"})
	require.NoError(t, err)
	assert.Empty(t, f.mail.sentTo)
}

func TestForgotPasswordThrottlesResend(t *testing.T) {
	f := newAuthFixture()
	f.seedUser(t, "petrov", "petrov@example.com", "secret123", true)

	require.NoError(t, f.svc.ForgotPassword(context.Background(), dto.ForgotPasswordDTO{Email: "petrov@example.com"}))
	require.NoError(t, f.svc.ForgotPassword(context.Background(), dto.ForgotPasswordDTO{Email: "petrov@example.com"}))

	assert.Len(t, f.mail.sentTo, 1)
}

func TestResetPasswordConsumesToken(t *testing.T) {
	f := newAuthFixture()
	f.seedUser(t, "petrov", "petrov@example.com", "secret123", true)
	require.NoError(t, f.svc.ForgotPassword(context.Background(), dto.ForgotPasswordDTO{Email: "petrov@example.com"}))
	token := f.mail.sentTokens[0]

	err := f.svc.ResetPassword(context.Background(), dto.ResetPasswordDTO{Token: token, Password: "brand-new"})
	require.NoError(t, err)

	_, _, err = f.svc.Login(context.Background(), dto.LoginDTO{Username: "petrov", Password: "brand-new"})
	require.NoError(t, err)

	// Токен погашен вместе со сменой пароля.
	err = f.svc.ResetPassword(context.Background(), dto.ResetPasswordDTO{Token: token, Password: "third-try"})
	assert.ErrorIs(t, err, apperrors.ErrResetTokenInvalid)
}

func TestResetPasswordExpiredToken(t *testing.T) {
	f := newAuthFixture()
	seeded := f.seedUser(t, "petrov", "petrov@example.com", "secret123", true)

	token := "deadbeef"
	expired := time.Now().Add(-time.Minute)
	require.NoError(t, f.users.UpdateResetToken(context.Background(), seeded.ID, &token, &expired))

	err := f.svc.ResetPassword(context.Background(), dto.ResetPasswordDTO{Token: token, Password: "brand-new"})
	assert.ErrorIs(t, err, apperrors.ErrResetTokenInvalid)
}

func TestChangePassword(t *testing.T) {
	f := newAuthFixture()
	seeded := f.seedUser(t, "petrov", "petrov@example.com", "secret123", true)
	ctx := authedCtx(seeded.ID)

	err := f.svc.ChangePassword(ctx, dto.ChangePasswordDTO{
		CurrentPassword: "wrong-pass", NewPassword: "brand-new",
	})
	assert.ErrorIs(t, err, apperrors.ErrWrongPassword)

	err = f.svc.ChangePassword(ctx, dto.ChangePasswordDTO{
		CurrentPassword: "secret123", NewPassword: "brand-new",
	})
	require.NoError(t, err)

	_, _, err = f.svc.Login(context.Background(), dto.LoginDTO{Username: "petrov", Password: "brand-new"})
	require.NoError(t, err)
}

func TestCurrentUserRequiresSessionContext(t *testing.T) {
	f := newAuthFixture()

	_, err := f.svc.CurrentUser(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrUserIDNotFoundInContext)
}
