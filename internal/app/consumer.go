package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go-payroll/internal/events"
	"go-payroll/internal/messaging/kafka/consumer"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const payslipDeliveryGroup = "go-payroll-payslip-delivery"

// RunConsumer mails generated payslips to employees. It exits immediately
// unless AUTO_EMAIL_PAYSLIPS is enabled.
func RunConsumer(cfg Config) error {
	logger := zap.L().Named("app.consumer")

	if !cfg.AutoEmail {
		logger.Info("AUTO_EMAIL_PAYSLIPS disabled, consumer not started")
		return nil
	}
	if cfg.KafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	inf, err := Connect(cfg)
	if err != nil {
		return err
	}
	defer inf.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	payrollService, err := inf.PayrollService(ctx)
	if err != nil {
		return err
	}

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{cfg.KafkaBroker},
		Topic:          events.PayslipGeneratedTopic,
		GroupID:        payslipDeliveryGroup,
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	go consumer.ConsumePayslipGenerated(ctx, reader, payrollService, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}
