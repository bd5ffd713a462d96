package delivery

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	deliveryerrors "go-payroll/internal/delivery/errors"
	"go-payroll/internal/shared/apperror"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

type fakeDialer struct {
	sent  []*gomail.Message
	err   error
	block chan struct{}
}

func (f *fakeDialer) DialAndSend(m ...*gomail.Message) error {
	if f.block != nil {
		<-f.block
	}
	f.sent = append(f.sent, m...)
	return f.err
}

var testConfig = SMTPConfig{Host: "smtp.acme.in", Port: 587, User: "payroll@acme.in", Pass: "secret"}

func TestSMTPSender_Unconfigured(t *testing.T) {
	for _, cfg := range []SMTPConfig{
		{},
		{Host: "smtp.acme.in", User: "payroll@acme.in"},
		{User: "payroll@acme.in", Pass: "secret"},
	} {
		err := NewSMTPSender(cfg).Send(context.Background(), Message{To: "asha@acme.in"})

		assert.ErrorIs(t, err, deliveryerrors.ErrUnconfigured)
		assert.True(t, apperror.Is(err, apperror.CodeUnconfigured))
	}
}

func TestSMTPSender_Send(t *testing.T) {
	t.Run("builds message with pdf attachment", func(t *testing.T) {
		d := &fakeDialer{}
		s := &smtpSender{cfg: testConfig, dialer: d, logger: zap.NewNop()}

		err := s.Send(context.Background(), Message{
			To:      "asha@acme.in",
			Subject: "Payslip 2024-03",
			Text:    "Please find attached your payslip for 2024-03",
			Attachment: &Attachment{
				Filename: "payslip-PAY-EMP001-1.pdf",
				Data:     []byte("%PDF-1.4"),
			},
		})

		assert.NoError(t, err)
		assert.Len(t, d.sent, 1)

		var buf bytes.Buffer
		_, err = d.sent[0].WriteTo(&buf)
		assert.NoError(t, err)
		raw := buf.String()
		assert.Contains(t, raw, "Subject: Payslip 2024-03")
		assert.Contains(t, raw, "From: payroll@acme.in")
		assert.Contains(t, raw, "payslip-PAY-EMP001-1.pdf")
		assert.Contains(t, raw, "application/pdf")
	})

	t.Run("transport error is a delivery failure", func(t *testing.T) {
		cause := errors.New("535 authentication failed")
		s := &smtpSender{cfg: testConfig, dialer: &fakeDialer{err: cause}, logger: zap.NewNop()}

		err := s.Send(context.Background(), Message{To: "asha@acme.in", Subject: "s"})

		assert.ErrorIs(t, err, deliveryerrors.ErrDeliveryFailed)
		assert.ErrorIs(t, err, cause)
	})

	t.Run("invalid recipient is rejected before dialing", func(t *testing.T) {
		d := &fakeDialer{}
		s := &smtpSender{cfg: testConfig, dialer: d, logger: zap.NewNop()}

		err := s.Send(context.Background(), Message{To: "asha@example.org"})

		assert.ErrorIs(t, err, deliveryerrors.ErrInvalidAddress)
		assert.Empty(t, d.sent)
	})

	t.Run("deadline exceeded", func(t *testing.T) {
		block := make(chan struct{})
		defer close(block)
		s := &smtpSender{cfg: testConfig, dialer: &fakeDialer{block: block}, logger: zap.NewNop()}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()
		err := s.Send(ctx, Message{To: "asha@acme.in"})

		assert.ErrorIs(t, err, deliveryerrors.ErrDeliveryFailed)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}
