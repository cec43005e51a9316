package mailer

import (
	"fmt"
	"net/smtp"
	"strings"

	"gearguard/pkg/config"

	"go.uber.org/zap"
)

type MailerInterface interface {
	SendPasswordResetEmail(to, token string) error
}

type SMTPMailer struct {
	cfg    config.SMTPConfig
	appURL string
	logger *zap.Logger
}

func NewSMTPMailer(cfg config.SMTPConfig, appURL string, logger *zap.Logger) MailerInterface {
	return &SMTPMailer{cfg: cfg, appURL: appURL, logger: logger}
}

func (m *SMTPMailer) SendPasswordResetEmail(to, token string) error {
	resetURL := fmt.Sprintf("%s/reset-password/%s", strings.TrimRight(m.appURL, "/"), token)

	body := strings.Join([]string{
		"GearGuard - Password Reset Request",
		"",
		"We received a request to reset your password.",
		"Click the link below to create a new password:",
		"",
		resetURL,
		"",
		"This link will expire in 1 hour. If you didn't request this, you can safely ignore this email.",
	}, "\r\n")

	msg := strings.Join([]string{
		"From: " + m.cfg.From,
		"To: " + to,
		"Subject: GearGuard - Password Reset Request",
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"utf-8\"",
		"",
		body,
	}, "\r\n")

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}

	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{to}, []byte(msg)); err != nil {
		m.logger.Error("не удалось отправить письмо сброса пароля", zap.String("to", to), zap.Error(err))
		return err
	}

	m.logger.Info("Письмо сброса пароля отправлено", zap.String("to", to))
	return nil
}
