package notification

import (
	"context"
	"log/slog"

	"github.com/staffdesk/hr-backoffice/internal/domain/notification"
)

// StoreSink persists events and logs them. Recording is best effort: a
// storage failure is logged and swallowed so it can never change the outcome
// of the computation that raised the event.
type StoreSink struct {
	repo notification.Repository
}

func NewStoreSink(repo notification.Repository) notification.Sink {
	return &StoreSink{repo: repo}
}

// Record implements notification.Sink.
func (s *StoreSink) Record(ctx context.Context, event notification.Event) {
	attrs := []any{
		"kind", string(event.Kind),
		"message", event.Message,
	}
	if event.EmployeeID != nil {
		attrs = append(attrs, "employee_id", *event.EmployeeID)
	}
	slog.Info("notification event", attrs...)

	if err := s.repo.Create(ctx, event); err != nil {
		slog.Error("failed to persist notification event",
			"kind", string(event.Kind),
			"error", err)
	}
}
