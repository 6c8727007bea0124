package email

import (
	"context"
	"errors"
	"testing"

	domain "remindme/internal/core/domain/email"

	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/stretchr/testify/require"
)

type stubSESClient struct {
	input       *ses.SendEmailInput
	returnError error
}

func (s *stubSESClient) SendEmail(
	ctx context.Context,
	params *ses.SendEmailInput,
	optFns ...func(*ses.Options),
) (*ses.SendEmailOutput, error) {
	s.input = params
	return &ses.SendEmailOutput{}, s.returnError
}

func TestSESSend(t *testing.T) {
	client := &stubSESClient{}
	sender := &SES{client: client, sender: "noreply@test.test"}

	err := sender.Send(context.Background(), domain.Message{
		To:      "to@test.test",
		Subject: "Subject",
		HTML:    "<p>html</p>",
		Text:    "text",
	})

	require.Nil(t, err)
	require.Equal(t, "Smart Reminder <noreply@test.test>", *client.input.Source)
	require.Equal(t, []string{"to@test.test"}, client.input.Destination.ToAddresses)
	require.Equal(t, "Subject", *client.input.Message.Subject.Data)
	require.Equal(t, "<p>html</p>", *client.input.Message.Body.Html.Data)
	require.Equal(t, "text", *client.input.Message.Body.Text.Data)
}

func TestSESSendError(t *testing.T) {
	client := &stubSESClient{returnError: errors.New("throttled")}
	sender := &SES{client: client, sender: "noreply@test.test"}

	err := sender.Send(context.Background(), domain.Message{To: "to@test.test", Text: "text"})

	require.EqualError(t, err, "throttled")
	require.Nil(t, client.input.Message.Body.Html)
}

func TestSESNotConfigured(t *testing.T) {
	sender := &SES{client: &stubSESClient{}}

	require.False(t, sender.IsConfigured())
	require.ErrorIs(t, sender.Send(context.Background(), domain.Message{To: "to@test.test"}), domain.ErrNotConfigured)
}
