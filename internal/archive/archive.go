package archive

import (
	"context"
	"fmt"
	"time"
)

// Store keeps rendered payslip documents outside the database.
type Store interface {
	// Put uploads data under key and returns the key it was stored under.
	// An empty key with a nil error means the store is disabled.
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
	// URL returns a time-limited download link for a stored key.
	URL(ctx context.Context, key string, ttl time.Duration) (string, error)
}

func PayslipKey(employeeID, payslipID string) string {
	return fmt.Sprintf("payslips/%s/%s.pdf", employeeID, payslipID)
}

type nopStore struct{}

// NewNopStore returns a Store that archives nothing. It is used when no
// bucket is configured.
func NewNopStore() Store {
	return nopStore{}
}

func (nopStore) Put(context.Context, string, []byte, string) (string, error) {
	return "", nil
}

func (nopStore) URL(context.Context, string, time.Duration) (string, error) {
	return "", nil
}
