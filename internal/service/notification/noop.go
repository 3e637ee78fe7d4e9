package notification

import (
	"context"
	"log/slog"
)

var _ EmailService = (*noopService)(nil)

// noopService logs instead of sending, for development runs without
// mail credentials.
type noopService struct {
}

func NewNoopService() EmailService {
	return &noopService{}
}

func (s *noopService) SendText(ctx context.Context, to, subject, body string) error {
	slog.Info("dev mode: would send email", "to", to, "subject", subject)
	return nil
}

func (s *noopService) SendHTML(ctx context.Context, to, subject, body string) error {
	slog.Info("dev mode: would send html email", "to", to, "subject", subject)
	return nil
}
