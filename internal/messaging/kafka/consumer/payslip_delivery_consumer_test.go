package consumer_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	deliveryerrors "go-payroll/internal/delivery/errors"
	"go-payroll/internal/messaging/kafka/consumer"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeReader struct {
	mu        sync.Mutex
	messages  []kafkago.Message
	committed []int64
	cancel    context.CancelFunc
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafkago.Message, error) {
	r.mu.Lock()
	if len(r.messages) == 0 {
		r.mu.Unlock()
		r.cancel()
		<-ctx.Done()
		return kafkago.Message{}, ctx.Err()
	}
	msg := r.messages[0]
	r.messages = r.messages[1:]
	r.mu.Unlock()
	return msg, nil
}

func (r *fakeReader) CommitMessages(_ context.Context, msgs ...kafkago.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range msgs {
		r.committed = append(r.committed, m.Offset)
	}
	return nil
}

type fakeMailer struct {
	sent []string
	errs map[string]error
}

func (m *fakeMailer) SendToEmployee(_ context.Context, id string) error {
	m.sent = append(m.sent, id)
	return m.errs[id]
}

func TestConsumePayslipGenerated(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	reader := &fakeReader{
		cancel: cancel,
		messages: []kafkago.Message{
			{Offset: 1, Value: []byte(`{"event_type":"payslip_generated","payslip_id":"PAY-EMP001-1","employee_id":"EMP001"}`)},
			{Offset: 2, Value: []byte(`not json`)},
			{Offset: 3, Value: []byte(`{"payslip_id":"PAY-EMP002-1","employee_id":"EMP002"}`)},
			{Offset: 4, Value: []byte(`{"payslip_id":"PAY-EMP003-1","employee_id":"EMP003"}`)},
		},
	}
	mailer := &fakeMailer{errs: map[string]error{
		"PAY-EMP002-1": deliveryerrors.ErrUnconfigured,
		"PAY-EMP003-1": errors.New("smtp down"),
	}}

	consumer.ConsumePayslipGenerated(ctx, reader, mailer, zap.NewNop())

	assert.Equal(t, []string{"PAY-EMP001-1", "PAY-EMP002-1", "PAY-EMP003-1"}, mailer.sent)
	assert.Equal(t, []int64{1, 2, 3, 4}, reader.committed)
}
