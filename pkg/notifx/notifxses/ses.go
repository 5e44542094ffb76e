package notifxses

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/casedesk/casedesk/pkg/notifx"
)

// SESProvider implements notifx.Sender using AWS SES.
type SESProvider struct {
	client *ses.Client
}

// NewSESProvider creates a new SES notification provider.
func NewSESProvider(client *ses.Client) *SESProvider {
	return &SESProvider{client: client}
}

// Send delivers a single message via SES.
func (p *SESProvider) Send(ctx context.Context, msg notifx.Message) error {
	body := &types.Body{}
	if msg.TextBody != "" {
		body.Text = &types.Content{
			Data:    aws.String(msg.TextBody),
			Charset: aws.String("UTF-8"),
		}
	}
	if msg.HTMLBody != "" {
		body.Html = &types.Content{
			Data:    aws.String(msg.HTMLBody),
			Charset: aws.String("UTF-8"),
		}
	}

	input := &ses.SendEmailInput{
		Source: aws.String(msg.From),
		Destination: &types.Destination{
			ToAddresses: msg.To,
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data:    aws.String(msg.Subject),
				Charset: aws.String("UTF-8"),
			},
			Body: body,
		},
	}

	if msg.ReplyTo != "" {
		input.ReplyToAddresses = []string{msg.ReplyTo}
	}

	_, err := p.client.SendEmail(ctx, input)
	if err != nil {
		return sesErrors.NewWithCause(ErrSendFailed, err).
			WithDetail("to", msg.To).
			WithDetail("subject", msg.Subject)
	}

	return nil
}
