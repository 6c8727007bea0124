package email

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"
	"time"

	c "remindme/internal/core/domain/common"
	domain "remindme/internal/core/domain/email"

	"github.com/golang-module/carbon/v2"
)

const (
	PASSWORD_RESET_SUBJECT = "Password Reset Request - Smart Reminder"
	TEST_SUBJECT           = "Test Email - Smart Reminder"
)

var passwordResetHTML = htmltemplate.Must(htmltemplate.New("password_reset_html").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Password Reset - Smart Reminder</title></head>
<body style="font-family: sans-serif; background-color: #f8fafc;">
  <div style="max-width: 600px; margin: 0 auto; padding: 40px 20px;">
    <h1 style="color: #1e40af; text-align: center;">Smart Reminder</h1>
    <h2>Password Reset Request</h2>
    <p>Hello{{if .Name}} {{.Name}}{{end}},</p>
    <p>We received a request to reset your password for your Smart Reminder account. If you made this request, click the button below to reset your password:</p>
    <p style="text-align: center;">
      <a href="{{.ResetURL}}" style="display: inline-block; background: #1e40af; color: #ffffff; padding: 14px 32px; text-decoration: none; border-radius: 8px;">Reset Your Password</a>
    </p>
    <p>Or copy and paste this link into your browser:</p>
    <p style="word-break: break-all; color: #1e40af;">{{.ResetURL}}</p>
    <p><strong>Security Note:</strong> This password reset link will expire in {{.ValidFor}} for your security. If you didn't request this password reset, you can safely ignore this email.</p>
    <p>Best regards,<br>The Smart Reminder Team</p>
  </div>
</body>
</html>
`))

var passwordResetText = texttemplate.Must(texttemplate.New("password_reset_text").Parse(`Password Reset Request - Smart Reminder

Hello{{if .Name}} {{.Name}}{{end}},

We received a request to reset your password for your Smart Reminder account.

Reset your password by clicking this link: {{.ResetURL}}

This link will expire in {{.ValidFor}} for your security.

If you didn't request this password reset, you can safely ignore this email.

Best regards,
The Smart Reminder Team
`))

var testText = texttemplate.Must(texttemplate.New("test_text").Parse(`This is a test email from Smart Reminder.

If you received it, email delivery is configured correctly.

Sent at {{.SentAt}}.
`))

type passwordResetParams struct {
	Name     string
	ResetURL string
	ValidFor string
}

type testParams struct {
	SentAt string
}

type Composer struct{}

func NewComposer() *Composer {
	return &Composer{}
}

func (cm *Composer) ComposePasswordReset(params domain.PasswordResetParams) (msg domain.Message, err error) {
	templateParams := passwordResetParams{
		ResetURL: params.ResetURL,
		ValidFor: humanizeDuration(params.Now, params.ExpiresAt),
	}
	if params.Name.IsPresent {
		templateParams.Name = params.Name.Value
	}

	var html, text bytes.Buffer
	if err := passwordResetHTML.Execute(&html, templateParams); err != nil {
		return msg, err
	}
	if err := passwordResetText.Execute(&text, templateParams); err != nil {
		return msg, err
	}
	return domain.Message{
		To:      params.To,
		Subject: PASSWORD_RESET_SUBJECT,
		HTML:    html.String(),
		Text:    text.String(),
	}, nil
}

func (cm *Composer) ComposeTest(to c.Email, at time.Time) (msg domain.Message, err error) {
	var text bytes.Buffer
	err = testText.Execute(&text, testParams{SentAt: carbon.Time2Carbon(at).ToDateTimeString(carbon.UTC)})
	if err != nil {
		return msg, err
	}
	return domain.Message{To: to, Subject: TEST_SUBJECT, Text: text.String()}, nil
}

func humanizeDuration(from time.Time, to time.Time) string {
	minutes := carbon.Time2Carbon(from).DiffAbsInMinutes(carbon.Time2Carbon(to))
	switch {
	case minutes == 60:
		return "1 hour"
	case minutes > 60 && minutes%60 == 0:
		return fmt.Sprintf("%d hours", minutes/60)
	case minutes == 1:
		return "1 minute"
	default:
		return fmt.Sprintf("%d minutes", minutes)
	}
}
