package emaildelivery

import (
	"context"
	c "remindme/internal/core/domain/common"
	"remindme/internal/core/domain/email"
	e "remindme/internal/core/domain/errors"
	"remindme/internal/core/domain/logging"
	"remindme/internal/core/services"
	deliveremail "remindme/internal/core/services/deliver_email"
	"remindme/internal/rabbitmq/schema"

	"github.com/rabbitmq/amqp091-go"
)

type Consumer struct {
	log     logging.Logger
	service services.Service[deliveremail.Input, deliveremail.Result]
}

func New(
	log logging.Logger,
	service services.Service[deliveremail.Input, deliveremail.Result],
) *Consumer {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Consumer{log: log, service: service}
}

// Consume handles deliveries until the channel is closed. Messages that can
// not be parsed are dropped, failed deliveries are requeued once.
func (c *Consumer) Consume(ctx context.Context, deliveries <-chan amqp091.Delivery) {
	for delivery := range deliveries {
		c.handle(ctx, delivery)
	}
}

func (c *Consumer) handle(ctx context.Context, delivery amqp091.Delivery) {
	msg := &schema.Email{}
	if err := msg.Unmarshal(delivery.Body); err != nil {
		c.log.Error(ctx, "Could not unmarshal email message.", logging.Entry("err", err))
		c.ack(ctx, delivery)
		return
	}

	_, err := c.service.Run(ctx, deliveremail.Input{Message: toMessage(msg)})
	if err == nil {
		c.ack(ctx, delivery)
		return
	}

	c.log.Error(
		ctx,
		"Could not deliver email, service returned an error.",
		logging.Entry("to", msg.To),
		logging.Entry("redelivered", delivery.Redelivered),
		logging.Entry("err", err),
	)
	if err := delivery.Nack(false, !delivery.Redelivered); err != nil {
		c.log.Error(ctx, "Could not NACK AMQP message.", logging.Entry("err", err))
	}
}

func (c *Consumer) ack(ctx context.Context, delivery amqp091.Delivery) {
	if err := delivery.Ack(false); err != nil {
		c.log.Error(ctx, "Could not ACK AMQP message.", logging.Entry("err", err))
	}
}

func toMessage(msg *schema.Email) email.Message {
	return email.Message{
		To:      c.NewEmail(msg.To),
		Subject: msg.Subject,
		HTML:    msg.HTML,
		Text:    msg.Text,
	}
}
