package main

import (
	"context"
	"errors"

	"github.com/joho/godotenv"

	draftsrepository "campreserv/internal/drafts/repository"
	draftsservice "campreserv/internal/drafts/service"
	draftsvalidator "campreserv/internal/drafts/validator"
	"campreserv/internal/frontdesk/handler"
	"campreserv/internal/frontdesk/service"
	"campreserv/internal/payments"
	"campreserv/internal/pricing"
	"campreserv/pkg/app"
	"campreserv/pkg/config"
	"campreserv/pkg/kafka"
	kafka_config "campreserv/pkg/kafka/config"
)

const (
	ServiceName   = "frontdesk"
	ConsumerGroup = "frontdesk-payment-events"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	cfg.SetBackendClients()
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting Front Desk service")

	draftRepo := draftsrepository.NewMongoDraftRepository(cfg)
	draftService := draftsservice.NewDraftService(draftRepo, cfg)
	defer draftService.Stop()

	flowService := service.NewFlowService(
		draftsvalidator.NewDraftValidator(cfg.Log),
		pricing.NewService(cfg.Client.SiteClient, cfg.Client.QuoteClient, cfg),
		draftService,
		cfg,
	)

	stopConsumer := startPaymentConsumer(cfg)
	defer stopConsumer()

	serverApp := app.NewApplication()
	serverApp.SetApp(cfg, handler.NewFlowHandler(flowService, cfg.Log))
	serverApp.Run()
}

// startPaymentConsumer wires the payment-events consumer. Kafka being down
// is fatal at startup; reservations would silently stay pending otherwise.
func startPaymentConsumer(cfg *config.Config) func() {
	kafkaCfg, err := kafka_config.Load()
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}
	kafkaCfg.LogConfiguration(cfg.Log.Info)

	producer, err := kafka.NewProducer(kafkaCfg, kafka.TopicBookingDeadLetter, kafka.TopicBookingDeadLetter, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}

	processor := payments.NewEventProcessor(cfg.Client.ReservationClient, producer, cfg.Log)
	consumer, err := kafka.NewConsumer(
		kafkaCfg,
		kafka.TopicPaymentEvents,
		ConsumerGroup,
		kafka.TopicBookingDeadLetter,
		processor.Handle,
		cfg.Log,
	)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka consumer", "error", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			cfg.Log.Error("Payment-events consumer stopped", "error", err)
		}
	}()

	return func() {
		cancel()
		if err := consumer.Close(); err != nil {
			cfg.Log.Error("Failed to close Kafka consumer", "error", err)
		}
		if err := producer.Close(); err != nil {
			cfg.Log.Error("Failed to close Kafka producer", "error", err)
		}
	}
}
