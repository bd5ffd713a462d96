package archive

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
)

type fakeS3 struct {
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = in
	f.body, _ = io.ReadAll(in.Body)
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{}, nil
}

func TestS3Store_Put(t *testing.T) {
	t.Run("uploads under the given key", func(t *testing.T) {
		fake := &fakeS3{}
		store := &s3Store{client: fake, bucket: "payslips-archive"}

		key, err := store.Put(context.Background(), PayslipKey("EMP001", "PAY-EMP001-1"), []byte("%PDF-1.4"), "application/pdf")

		assert.NoError(t, err)
		assert.Equal(t, "payslips/EMP001/PAY-EMP001-1.pdf", key)
		assert.Equal(t, "payslips-archive", *fake.input.Bucket)
		assert.Equal(t, "application/pdf", *fake.input.ContentType)
		assert.Equal(t, "%PDF-1.4", string(fake.body))
	})

	t.Run("client error is wrapped", func(t *testing.T) {
		cause := errors.New("access denied")
		store := &s3Store{client: &fakeS3{err: cause}, bucket: "b"}

		key, err := store.Put(context.Background(), "k", []byte("x"), "application/pdf")

		assert.Empty(t, key)
		assert.ErrorIs(t, err, cause)
	})
}

func TestNopStore(t *testing.T) {
	key, err := NewNopStore().Put(context.Background(), "k", []byte("x"), "application/pdf")

	assert.NoError(t, err)
	assert.Empty(t, key)
}

func TestNewS3Store_RequiresBucket(t *testing.T) {
	_, err := NewS3Store(context.Background(), S3Config{})
	assert.Error(t, err)
}
