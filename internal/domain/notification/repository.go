package notification

import (
	"context"
)

// Repository persists recorded events.
type Repository interface {
	Create(ctx context.Context, event Event) error
	List(ctx context.Context, kind *Kind, limit int) ([]Event, error)
}
