package emailqueue

import (
	"context"
	"remindme/internal/core/domain/email"
	e "remindme/internal/core/domain/errors"
	"remindme/internal/core/domain/logging"
	"remindme/internal/rabbitmq/schema"

	"github.com/rabbitmq/amqp091-go"
)

type publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, msg amqp091.Publishing) error
}

// RabbitMQ is an email.Sender that hands messages over to the mailer process
// through a durable queue.
type RabbitMQ struct {
	log     logging.Logger
	channel publisher
	queue   string
}

func NewRabbitMQ(log logging.Logger, channel publisher, queue string) *RabbitMQ {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if channel == nil {
		panic(e.NewNilArgumentError("channel"))
	}
	if queue == "" {
		panic("queue name must not be empty")
	}
	return &RabbitMQ{log: log, channel: channel, queue: queue}
}

// IsConfigured is always true: config requires SMTP credentials for the
// mailer when this transport is selected. Delivery failures surface in the
// mailer, a request only fails when publishing does.
func (s *RabbitMQ) IsConfigured() bool {
	return true
}

func (s *RabbitMQ) Send(ctx context.Context, msg email.Message) error {
	body, err := (&schema.Email{
		To:      string(msg.To),
		Subject: msg.Subject,
		HTML:    msg.HTML,
		Text:    msg.Text,
	}).Marshal()
	if err != nil {
		return err
	}

	err = s.channel.PublishWithContext(ctx, "", s.queue, amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		Body:         body,
	})
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("queue", s.queue))
		return err
	}
	s.log.Info(
		ctx,
		"Email has been queued for delivery.",
		logging.Entry("queue", s.queue),
		logging.Entry("to", msg.To),
	)
	return nil
}
