package email

import (
	"context"
	"crypto/tls"
	"io"
	"net"
	"net/smtp"
	"strconv"
	"strings"

	c "remindme/internal/core/domain/common"
	domain "remindme/internal/core/domain/email"

	"gopkg.in/gomail.v2"
)

const (
	SENDER_NAME = "Smart Reminder"
	SMTPS_PORT  = 465
)

// Values shipped in the example environment file. They mean the operator
// never filled in real credentials.
var placeholderCredentials = map[string]struct{}{
	"your-actual-email@gmail.com":   {},
	"your-actual-app-password-here": {},
	"your-email@gmail.com":          {},
	"your-app-password":             {},
}

type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     c.Email
}

type SMTP struct {
	config SMTPConfig
}

func NewSMTP(config SMTPConfig) *SMTP {
	return &SMTP{config: config}
}

func (s *SMTP) IsConfigured() bool {
	user := strings.TrimSpace(s.config.User)
	password := strings.TrimSpace(s.config.Password)
	if user == "" || password == "" {
		return false
	}
	if _, ok := placeholderCredentials[user]; ok {
		return false
	}
	if _, ok := placeholderCredentials[password]; ok {
		return false
	}
	return true
}

// Send runs the whole SMTP exchange on a connection that is closed as soon
// as ctx is done, so nothing outlives the call.
func (s *SMTP) Send(ctx context.Context, msg domain.Message) error {
	if !s.IsConfigured() {
		return domain.ErrNotConfigured
	}
	err := s.deliver(ctx, s.buildMessage(msg))
	if err != nil && ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}

func (s *SMTP) deliver(ctx context.Context, m *gomail.Message) error {
	host := s.config.Host
	var dialer net.Dialer
	raw, err := dialer.DialContext(ctx, "tcp", net.JoinHostPort(host, strconv.Itoa(s.config.Port)))
	if err != nil {
		return err
	}
	defer raw.Close()

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			raw.Close()
		case <-stop:
		}
	}()

	conn := raw
	if s.config.Port == SMTPS_PORT {
		conn = tls.Client(raw, &tls.Config{ServerName: host})
	}
	client, err := smtp.NewClient(conn, host)
	if err != nil {
		return err
	}
	defer client.Close()

	if _, isTLS := conn.(*tls.Conn); !isTLS {
		if ok, _ := client.Extension("STARTTLS"); ok {
			if err := client.StartTLS(&tls.Config{ServerName: host}); err != nil {
				return err
			}
		}
	}
	if ok, _ := client.Extension("AUTH"); ok {
		if err := client.Auth(smtp.PlainAuth("", s.config.User, s.config.Password, host)); err != nil {
			return err
		}
	}

	send := gomail.SendFunc(func(from string, to []string, body io.WriterTo) error {
		if err := client.Mail(from); err != nil {
			return err
		}
		for _, addr := range to {
			if err := client.Rcpt(addr); err != nil {
				return err
			}
		}
		w, err := client.Data()
		if err != nil {
			return err
		}
		if _, err := body.WriteTo(w); err != nil {
			w.Close()
			return err
		}
		return w.Close()
	})
	if err := gomail.Send(send, m); err != nil {
		return err
	}
	return client.Quit()
}

func (s *SMTP) buildMessage(msg domain.Message) *gomail.Message {
	from := s.config.From
	if from == "" {
		from = c.Email(s.config.User)
	}
	m := gomail.NewMessage()
	m.SetAddressHeader("From", string(from), SENDER_NAME)
	m.SetHeader("To", string(msg.To))
	m.SetHeader("Subject", msg.Subject)
	switch {
	case msg.Text != "" && msg.HTML != "":
		m.SetBody("text/plain", msg.Text)
		m.AddAlternative("text/html", msg.HTML)
	case msg.HTML != "":
		m.SetBody("text/html", msg.HTML)
	default:
		m.SetBody("text/plain", msg.Text)
	}
	return m
}
