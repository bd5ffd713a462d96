package bootstrap

import "context"

type AuditLog struct {
	Action  string
	Message string
	Meta    map[string]any
}

// AuditLogger records process lifecycle events (startup, shutdown).
type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}
