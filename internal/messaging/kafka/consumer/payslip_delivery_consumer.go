package consumer

import (
	"context"
	"encoding/json"

	"go-payroll/internal/events"
	"go-payroll/internal/shared/apperror"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// PayslipMailer is the part of the payroll service the consumer needs.
type PayslipMailer interface {
	SendToEmployee(ctx context.Context, payslipID string) error
}

// ConsumePayslipGenerated mails every freshly generated payslip to the
// employee on record. Delivery failures are logged and the message is
// committed anyway; an admin can resend from the API.
func ConsumePayslipGenerated(
	ctx context.Context,
	reader MessageReader,
	mailer PayslipMailer,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.payslip_delivery")
	log.Info("payslip delivery consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("payslip delivery consumer stopped")
				return
			}
			log.Error("fetch payslip message failed", zap.Error(err))
			continue
		}

		var event events.PayslipGeneratedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil || event.PayslipID == "" {
			log.Error("decode payslip_generated event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := mailer.SendToEmployee(ctx, event.PayslipID); err != nil {
			httpErr := apperror.ToHTTP(err)
			log.Warn("payslip delivery skipped",
				zap.String("payslip_id", event.PayslipID),
				zap.String("employee_id", event.EmployeeID),
				zap.String("code", httpErr.Code),
				zap.Error(err),
			)
		} else {
			log.Info("payslip delivered",
				zap.String("payslip_id", event.PayslipID),
				zap.String("employee_id", event.EmployeeID),
			)
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit payslip message failed", zap.Error(err))
		}
	}
}
