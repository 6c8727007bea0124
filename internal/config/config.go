package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v6"
)

const (
	EMAIL_TRANSPORT_SMTP = "smtp"
	EMAIL_TRANSPORT_SES  = "ses"
	EMAIL_TRANSPORT_AMQP = "amqp"
	EMAIL_TRANSPORT_NONE = "none"
)

type Config struct {
	IsTestMode bool   `env:"TEST_MODE" envDefault:"false"`
	Port       uint16 `env:"PORT" envDefault:"9090"`
	Secret     string `env:"SECRET,required,notEmpty"`

	PostgresqlURL  string `env:"POSTGRESQL_URL,required,notEmpty"`
	MigrationsPath string `env:"MIGRATIONS_PATH" envDefault:"migrations"`
	RedisURL       string `env:"REDIS_URL,required,notEmpty"`

	RabbitmqURL        string `env:"RABBITMQ_URL"`
	RabbitmqEmailQueue string `env:"RABBITMQ_EMAIL_QUEUE" envDefault:"emails"`

	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`

	BcryptHasherCost           int           `env:"BCRYPT_HASHER_COST" envDefault:"10"`
	PasswordResetValidDuration time.Duration `env:"PASSWORD_RESET_VALID_DURATION" envDefault:"1h"`
	PasswordResetBaseURL       url.URL       `env:"PASSWORD_RESET_BASE_URL" envDefault:"http://localhost:3000/reset-password"`

	EmailTransport      string        `env:"EMAIL_TRANSPORT" envDefault:"smtp"`
	EmailFrom           string        `env:"EMAIL_FROM"`
	EmailServerHost     string        `env:"EMAIL_SERVER_HOST" envDefault:"smtp.gmail.com"`
	EmailServerPort     int           `env:"EMAIL_SERVER_PORT" envDefault:"587"`
	EmailServerUser     string        `env:"EMAIL_SERVER_USER"`
	EmailServerPassword string        `env:"EMAIL_SERVER_PASSWORD"`
	EmailSendTimeout    time.Duration `env:"EMAIL_SEND_TIMEOUT" envDefault:"10s"`

	AwsRegion    string `env:"AWS_REGION" envDefault:"eu-central-1"`
	AwsAccessKey string `env:"AWS_ACCESS_KEY"`
	AwsSecretKey string `env:"AWS_SECRET_KEY"`

	SentryDsn *url.URL `env:"SENTRY_DSN"`
}

func Load() (*Config, error) {
	config := &Config{}
	if err := env.Parse(config); err != nil {
		return nil, err
	}
	if err := config.validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) validate() error {
	switch c.EmailTransport {
	case EMAIL_TRANSPORT_SMTP, EMAIL_TRANSPORT_SES, EMAIL_TRANSPORT_NONE:
	case EMAIL_TRANSPORT_AMQP:
		if c.RabbitmqURL == "" {
			return fmt.Errorf("RABBITMQ_URL must be set for EMAIL_TRANSPORT=%s", c.EmailTransport)
		}
		// Queued messages are delivered by the mailer over SMTP.
		if c.EmailServerUser == "" || c.EmailServerPassword == "" {
			return fmt.Errorf(
				"EMAIL_SERVER_USER and EMAIL_SERVER_PASSWORD must be set for EMAIL_TRANSPORT=%s",
				c.EmailTransport,
			)
		}
	default:
		return fmt.Errorf("invalid EMAIL_TRANSPORT value: %q", c.EmailTransport)
	}
	if c.PasswordResetValidDuration <= 0 {
		return fmt.Errorf("PASSWORD_RESET_VALID_DURATION must be positive")
	}
	if c.EmailSendTimeout <= 0 {
		return fmt.Errorf("EMAIL_SEND_TIMEOUT must be positive")
	}
	return nil
}

// EmailSender is the address messages are sent from. It falls back to the
// SMTP user, which most providers require anyway.
func (c *Config) EmailSender() string {
	if c.EmailFrom != "" {
		return c.EmailFrom
	}
	return c.EmailServerUser
}
