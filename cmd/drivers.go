package main

import (
	"io"
	"time"

	"github.com/jeffjr007/locahubaju-project/internal/config"
	"github.com/jeffjr007/locahubaju-project/internal/integrations/notifier"
	"github.com/jeffjr007/locahubaju-project/pkg/logger"
)

// buildDrivers создает внешние драйверы уведомлений, перечисленные в notifier.drivers.
// Возвращает также список того, что нужно закрыть при остановке
func buildDrivers(cfg config.NotifierConfig, log *logger.Logger) ([]notifier.Driver, []io.Closer, error) {
	var (
		drivers []notifier.Driver
		closers []io.Closer
	)

	if cfg.HasDriver(config.NotifierDriverWebhook) {
		drivers = append(drivers, notifier.NewWebhookDriver(notifier.WebhookURLs{
			Created:   cfg.Webhook.CreatedURL,
			Edited:    cfg.Webhook.EditedURL,
			Cancelled: cfg.Webhook.CancelledURL,
		}, time.Duration(cfg.Timeout)*time.Second))
		log.Info("Notifier: webhook driver enabled")
	}

	if cfg.HasDriver(config.NotifierDriverRabbitMQ) {
		rabbit, err := notifier.NewRabbitMQDriver(cfg.RabbitMQ.URL, cfg.RabbitMQ.Queue)
		if err != nil {
			return nil, closers, err
		}
		drivers = append(drivers, rabbit)
		closers = append(closers, rabbit)
		log.Info("Notifier: rabbitmq driver enabled (queue=%s)", cfg.RabbitMQ.Queue)
	}

	if cfg.HasDriver(config.NotifierDriverKafka) {
		kafka := notifier.NewKafkaDriver(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		drivers = append(drivers, kafka)
		closers = append(closers, kafka)
		log.Info("Notifier: kafka driver enabled (brokers=%v, topic=%s)", cfg.Kafka.Brokers, cfg.Kafka.Topic)
	}

	if cfg.HasDriver(config.NotifierDriverNATS) {
		conn, err := notifier.ConnectNATS(cfg.NATS.URL, log)
		if err != nil {
			return nil, closers, err
		}
		nats := notifier.NewNATSDriver(conn, cfg.NATS.SubjectPrefix)
		drivers = append(drivers, nats)
		closers = append(closers, nats)
		log.Info("Notifier: nats driver enabled (prefix=%s)", cfg.NATS.SubjectPrefix)
	}

	return drivers, closers, nil
}

func closeAll(closers []io.Closer, log *logger.Logger) {
	for i := len(closers) - 1; i >= 0; i-- {
		if err := closers[i].Close(); err != nil {
			log.Warn("Failed to close resource: %v", err)
		}
	}
}
