package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hrconsole/internal/messaging/kafka"
	"hrconsole/internal/messaging/kafka/producer"
	"hrconsole/internal/shared/connection"

	"go.uber.org/zap"
)

const defaultOutboxPollInterval = 3 * time.Second

// RunWorker menjalankan relay outbox: baris outbox hasil transaksi HR
// (employee dibuat, siklus hidup pengajuan cuti) dipoll dan dikirim ke
// Kafka sampai proses menerima sinyal berhenti.
func RunWorker() error {
	logger := zap.L().Named("hrconsole.outbox-relay")

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	kafkaBroker := os.Getenv("KAFKA_BROKER")
	if kafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	kafkaWriter, err := connection.ConnectKafkaWithRetry(kafkaBroker, 5)
	if err != nil {
		return err
	}
	defer kafkaWriter.Close()

	pollInterval := defaultOutboxPollInterval
	if raw := os.Getenv("OUTBOX_POLL_INTERVAL"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("invalid OUTBOX_POLL_INTERVAL %q: %w", raw, err)
		}
		pollInterval = parsed
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	outboxRepo := kafka.NewOutboxRepository(sqlDB)
	go producer.ProcessOutboxEvents(ctx, outboxRepo, kafkaWriter, logger, pollInterval)

	logger.Info("outbox relay running",
		zap.String("broker", kafkaBroker),
		zap.Duration("poll_interval", pollInterval),
	)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("outbox relay shutting down", zap.String("signal", sig.String()))
	cancel()

	return nil
}
