package main

import (
	"context"
	"os"
	"os/signal"
	"remindme/internal/app/consumers"
	"remindme/internal/app/deps"
	"remindme/internal/app/services"
	"remindme/internal/core/domain/logging"
	"syscall"
)

func main() {
	deps, shutdownDeps := deps.InitDeps()
	log := deps.Logger
	defer shutdownDeps()

	services := services.InitServices(deps)

	if !deps.SMTPSender.IsConfigured() {
		log.Error(context.Background(), "SMTP is not configured, queued emails can not be delivered.")
		panic("SMTP is not configured")
	}

	stopCh, closeCh := createChannel()
	defer closeCh()

	shutdownConsumers := consumers.InitConsumers(deps, services)
	log.Info(
		context.Background(),
		"Mailer has started.",
		logging.Entry("queue", deps.Config.RabbitmqEmailQueue),
	)

	<-stopCh
	log.Info(context.Background(), "Stopping mailer.")
	shutdownConsumers()
}

func createChannel() (chan os.Signal, func()) {
	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	return stopCh, func() {
		close(stopCh)
	}
}
