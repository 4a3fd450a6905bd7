package notify

import (
	"context"

	"github.com/durendeer/petcare/config"
	"gopkg.in/gomail.v2"
)

// EmailSender delivers messages over SMTP.
type EmailSender struct {
	cfg config.SmtpConfig
}

func NewEmailSender(cfg config.SmtpConfig) *EmailSender {
	return &EmailSender{cfg: cfg}
}

func (s *EmailSender) Channel() string {
	return "email"
}

func (s *EmailSender) Send(ctx context.Context, recipient, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", recipient)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.Username, s.cfg.Passwd)
	return d.DialAndSend(m)
}
