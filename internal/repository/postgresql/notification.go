package postgresql

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/staffdesk/hr-backoffice/internal/domain/notification"
	"github.com/staffdesk/hr-backoffice/internal/pkg/database"
)

type notificationRepository struct {
	db *database.DB
}

// Create implements notification.Repository.
func (n *notificationRepository) Create(ctx context.Context, event notification.Event) error {
	q := GetQuerier(ctx, n.db)

	if event.ID == "" {
		event.ID = uuid.New().String()
	}

	query := `
		INSERT INTO notification_events (id, kind, message, employee_id, data)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := q.Exec(ctx, query, event.ID, event.Kind, event.Message, event.EmployeeID, event.Data)
	if err != nil {
		return fmt.Errorf("failed to create notification event: %w", err)
	}

	return nil
}

// List implements notification.Repository.
func (n *notificationRepository) List(ctx context.Context, kind *notification.Kind, limit int) ([]notification.Event, error) {
	q := GetQuerier(ctx, n.db)

	query := `
		SELECT id, kind, message, employee_id, data, created_at
		FROM notification_events
	`
	args := []interface{}{}
	if kind != nil {
		query += " WHERE kind = $1"
		args = append(args, *kind)
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT %d", limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query notification events: %w", err)
	}
	defer rows.Close()

	var events []notification.Event
	for rows.Next() {
		var event notification.Event
		err := rows.Scan(&event.ID, &event.Kind, &event.Message, &event.EmployeeID, &event.Data, &event.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan notification event: %w", err)
		}
		events = append(events, event)
	}

	return events, rows.Err()
}

func NewNotificationRepository(db *database.DB) notification.Repository {
	return &notificationRepository{db: db}
}
