package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"catering/internal/config"
	"catering/internal/logger"
	"catering/internal/messaging"
	"catering/internal/notify"

	"go.uber.org/zap"
)

const prefetch = 5

func main() {
	cfg, err := config.LoadWorker()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	zlog, err := logger.New(cfg.AppEnv)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer zlog.Sync()

	zlog.Info("notify worker starting")

	mailer, err := notify.NewSMTPMailer(cfg.SMTP, zlog)
	if err != nil {
		zlog.Fatal("smtp init failed", zap.Error(err))
	}

	conn, err := messaging.Dial(cfg.RabbitMQ.URL, zlog)
	if err != nil {
		zlog.Fatal("rabbitmq connection failed", zap.Error(err))
	}
	defer conn.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	worker := notify.NewWorker(mailer, zlog)
	consumer := messaging.NewConsumer(conn, messaging.OrderNotificationQueue, "notify-worker", prefetch, zlog)

	zlog.Info("waiting for orders", zap.String("queue", messaging.OrderNotificationQueue))
	if err := consumer.Run(ctx, worker.Handle); err != nil && !errors.Is(err, context.Canceled) {
		zlog.Error("consumer stopped", zap.Error(err))
		return
	}
	zlog.Info("notify worker stopped")
}
