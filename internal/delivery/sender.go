package delivery

import (
	"context"
	"crypto/tls"
	"io"
	"strings"

	deliveryerrors "go-payroll/internal/delivery/errors"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

type Message struct {
	To         string
	Subject    string
	Text       string
	Attachment *Attachment
}

//go:generate mockgen -source=sender.go -destination=mock/sender_mock.go -package=mock
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Pass     string
	From     string
	Insecure bool // skip TLS certificate verification
}

func (c SMTPConfig) configured() bool {
	return c.Host != "" && c.User != "" && c.Pass != ""
}

type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

type smtpSender struct {
	cfg    SMTPConfig
	dialer dialer
	logger *zap.Logger
}

// NewSMTPSender returns a Sender backed by gomail. Sending through a sender
// built from an incomplete config fails with ErrUnconfigured.
func NewSMTPSender(cfg SMTPConfig, logger ...*zap.Logger) Sender {
	l := zap.L().Named("delivery.smtp")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("delivery.smtp")
	}
	if cfg.Port == 0 {
		cfg.Port = 465
	}

	s := &smtpSender{cfg: cfg, logger: l}
	if cfg.configured() {
		d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Pass)
		d.TLSConfig = &tls.Config{ServerName: cfg.Host, InsecureSkipVerify: cfg.Insecure}
		s.dialer = d
	}
	return s
}

func (s *smtpSender) Send(ctx context.Context, msg Message) error {
	if s.dialer == nil {
		return deliveryerrors.ErrUnconfigured
	}
	if err := ValidateAddress(msg.To); err != nil {
		return err
	}

	m := s.build(msg)

	done := make(chan error, 1)
	go func() { done <- s.dialer.DialAndSend(m) }()

	select {
	case err := <-done:
		if err != nil {
			s.logger.Warn("smtp send failed", zap.String("to", msg.To), zap.Error(err))
			return deliveryerrors.ErrDeliveryFailed.WithCause(err)
		}
		s.logger.Info("smtp send success", zap.String("to", msg.To))
		return nil
	case <-ctx.Done():
		return deliveryerrors.ErrDeliveryFailed.WithCause(ctx.Err())
	}
}

func (s *smtpSender) build(msg Message) *gomail.Message {
	from := s.cfg.From
	if from == "" {
		from = s.cfg.User
	}

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", strings.TrimSpace(msg.To))
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Text)

	if a := msg.Attachment; a != nil {
		contentType := a.ContentType
		if contentType == "" {
			contentType = "application/pdf"
		}
		m.Attach(a.Filename,
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(a.Data)
				return err
			}),
			gomail.SetHeader(map[string][]string{"Content-Type": {contentType}}),
		)
	}
	return m
}
