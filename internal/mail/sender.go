package mail

import (
	"fmt"
	"net/smtp"

	"go.uber.org/zap"

	"github.com/duel-labs/roadmap-service/internal/config"
)

// Sender delivers verification codes to users.
type Sender interface {
	SendCode(email, code string) error
}

// NewSender picks an implementation from configuration. Without an SMTP
// host the service logs codes instead of sending them, which keeps local
// development working.
func NewSender(cfg config.MailConfig, logger *zap.Logger) Sender {
	if cfg.Host == "" {
		logger.Warn("MAIL_SMTP_HOST not provided; verification codes will only be logged")
		return &logSender{logger: logger}
	}
	return &smtpSender{cfg: cfg}
}

type smtpSender struct {
	cfg config.MailConfig
}

func (s *smtpSender) SendCode(email, code string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: Email verification code\r\n\r\nYour verification code is %s\r\n",
		s.cfg.From, email, code)

	addr := s.cfg.Host + ":" + s.cfg.Port
	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	if err := smtp.SendMail(addr, auth, s.cfg.From, []string{email}, []byte(msg)); err != nil {
		return fmt.Errorf("send verification mail: %w", err)
	}
	return nil
}

type logSender struct {
	logger *zap.Logger
}

func (s *logSender) SendCode(email, code string) error {
	s.logger.Info("verification code issued",
		zap.String("email", email),
		zap.String("code", code))
	return nil
}
