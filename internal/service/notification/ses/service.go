package ses

import (
	"context"
	"fmt"

	"github.com/Ahmet872/Alarm-System/internal/service/notification"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

var _ notification.EmailService = (*Service)(nil)

// Service 基于 AWS SES 的托管邮件发送
type Service struct {
	cli  *sesv2.Client
	from string
}

func NewService(cli *sesv2.Client, from string) *Service {
	return &Service{
		cli:  cli,
		from: from,
	}
}

func (s *Service) send(ctx context.Context, to, subject string, body types.Body) error {
	_, err := s.cli.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(s.from),
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(subject)},
				Body:    &body,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("%w: ses: %v", notification.ErrDelivery, err)
	}
	return nil
}

func (s *Service) SendText(ctx context.Context, to, subject, body string) error {
	return s.send(ctx, to, subject, types.Body{
		Text: &types.Content{Data: aws.String(body)},
	})
}

func (s *Service) SendHTML(ctx context.Context, to, subject, body string) error {
	return s.send(ctx, to, subject, types.Body{
		Html: &types.Content{Data: aws.String(body)},
	})
}
