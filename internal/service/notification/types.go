package notification

import (
	"context"
	"errors"
)

// ErrDelivery wraps every backend failure. Senders do not retry:
// once an email may have left the building, a blind retry risks duplicate
// notifications, so the retry decision belongs to the caller's state machine.
var ErrDelivery = errors.New("email delivery failed")

type EmailService interface {
	SendText(ctx context.Context, to, subject, body string) error
	SendHTML(ctx context.Context, to, subject, body string) error
}
