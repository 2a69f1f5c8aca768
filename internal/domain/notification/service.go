package notification

import (
	"context"
)

// Sink receives anomaly and audit events. Implementations are best-effort:
// a failed Record is logged and swallowed.
type Sink interface {
	Record(ctx context.Context, event Event)
}
