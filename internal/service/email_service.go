package service

import (
	"fmt"
	"net/smtp"

	"studyhive_backend/internal/config"
	"studyhive_backend/pkg/logger"

	"go.uber.org/zap"
)

type EmailService struct {
	cfg config.SMTPConfig
}

func NewEmailService(cfg config.SMTPConfig) *EmailService {
	return &EmailService{cfg: cfg}
}

func (s *EmailService) send(to, subject, body string) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	auth := smtp.PlainAuth("", s.cfg.User, s.cfg.Password, s.cfg.Host)

	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=\"utf-8\"\r\n\r\n%s\r\n",
		s.cfg.From, to, subject, body,
	))

	if err := smtp.SendMail(addr, auth, s.cfg.From, []string{to}, msg); err != nil {
		logger.Log.Error("Failed to send email",
			zap.String("to", to),
			zap.String("subject", subject),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func (s *EmailService) SendOTP(to, name, otp string) error {
	body := fmt.Sprintf(
		"Hi %s,\n\nYour StudyHive verification code is: %s\n\nIt expires in 10 minutes. If you didn't request this, you can ignore this email.\n",
		name, otp,
	)
	return s.send(to, "Verify your StudyHive account", body)
}

func (s *EmailService) SendPasswordReset(to, name, resetURL string) error {
	body := fmt.Sprintf(
		"Hi %s,\n\nWe received a request to reset your StudyHive password. Use the link below within the next hour:\n\n%s\n\nIf you didn't request a reset, no action is needed.\n",
		name, resetURL,
	)
	return s.send(to, "Reset your StudyHive password", body)
}
