package email

import (
	"context"

	c "remindme/internal/core/domain/common"
	domain "remindme/internal/core/domain/email"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

type sesClient interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

type SES struct {
	client sesClient
	// This address must be verified with Amazon SES.
	sender c.Email
}

func NewSES(awsConfig aws.Config, sender c.Email) *SES {
	return &SES{client: ses.NewFromConfig(awsConfig), sender: sender}
}

func (s *SES) IsConfigured() bool {
	return s.sender != ""
}

func (s *SES) Send(ctx context.Context, msg domain.Message) error {
	if !s.IsConfigured() {
		return domain.ErrNotConfigured
	}
	body := &types.Body{}
	if msg.HTML != "" {
		body.Html = &types.Content{Data: aws.String(msg.HTML), Charset: aws.String("UTF-8")}
	}
	if msg.Text != "" {
		body.Text = &types.Content{Data: aws.String(msg.Text), Charset: aws.String("UTF-8")}
	}
	_, err := s.client.SendEmail(ctx, &ses.SendEmailInput{
		Source: aws.String(SENDER_NAME + " <" + string(s.sender) + ">"),
		Destination: &types.Destination{
			ToAddresses: []string{string(msg.To)},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(msg.Subject), Charset: aws.String("UTF-8")},
			Body:    body,
		},
	})
	return err
}
