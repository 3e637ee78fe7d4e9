package smtp

import (
	"context"
	"fmt"

	"github.com/Ahmet872/Alarm-System/internal/service/notification"
	"gopkg.in/gomail.v2"
)

var _ notification.EmailService = (*Service)(nil)

// Service SMTP 邮件发送, STARTTLS + 账号密码认证
type Service struct {
	dialer *gomail.Dialer
	from   string
}

func NewService(host string, port int, username, password string) *Service {
	return &Service{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   username,
	}
}

func (s *Service) send(ctx context.Context, to, subject, contentType, body string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", notification.ErrDelivery, err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody(contentType, body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("%w: smtp: %v", notification.ErrDelivery, err)
	}
	return nil
}

func (s *Service) SendText(ctx context.Context, to, subject, body string) error {
	return s.send(ctx, to, subject, "text/plain", body)
}

func (s *Service) SendHTML(ctx context.Context, to, subject, body string) error {
	return s.send(ctx, to, subject, "text/html", body)
}
