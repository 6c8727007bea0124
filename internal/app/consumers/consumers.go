package consumers

import (
	"context"
	"remindme/internal/app/deps"
	"remindme/internal/app/services"
	dl "remindme/internal/core/domain/logging"
	emaildelivery "remindme/internal/rabbitmq/consumers/email_delivery"
	"sync"
)

const EMAIL_DELIVERY_CONSUMER = "mailer"

func initEmailDeliveryConsumer(deps *deps.Deps, services *services.Services) func() {
	ctx := context.Background()
	if deps.Rabbitmq == nil {
		deps.Logger.Error(ctx, "RabbitMQ is not configured, set RABBITMQ_URL.")
		panic("RabbitMQ is not configured")
	}

	rabbitmqChannel, err := deps.Rabbitmq.Channel()
	if err != nil {
		deps.Logger.Error(ctx, "Could not create RabbitMQ channel.", dl.Entry("err", err))
		panic(err)
	}

	queue := deps.Config.RabbitmqEmailQueue
	if err := rabbitmqChannel.DeclareQueue(queue); err != nil {
		deps.Logger.Error(ctx, "Could not create RabbitMQ queue.", dl.Entry("err", err), dl.Entry("queue", queue))
		panic(err)
	}

	consumer := emaildelivery.New(deps.Logger, services.DeliverEmail)
	deliveries := rabbitmqChannel.Consume(queue, EMAIL_DELIVERY_CONSUMER)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		consumer.Consume(ctx, deliveries)
	}()

	deps.Logger.Info(ctx, "Consumer has started.", dl.Entry("queue", queue))
	return func() {
		rabbitmqChannel.Close()
		wg.Wait()
		deps.Logger.Info(context.Background(), "Consumer has stopped.", dl.Entry("queue", queue))
	}
}

func InitConsumers(deps *deps.Deps, services *services.Services) func() {
	shutdownEmailDeliveryConsumer := initEmailDeliveryConsumer(deps, services)

	return func() {
		shutdownEmailDeliveryConsumer()
	}
}
