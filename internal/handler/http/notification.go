package http

import (
	"net/http"
	"strconv"

	"github.com/staffdesk/hr-backoffice/internal/domain/notification"
	"github.com/staffdesk/hr-backoffice/internal/handler/http/response"
)

type NotificationHandler interface {
	List(w http.ResponseWriter, r *http.Request)
}

type NotificationHandlerImpl struct {
	notificationRepo notification.Repository
}

func NewNotificationHandler(notificationRepo notification.Repository) NotificationHandler {
	return &NotificationHandlerImpl{notificationRepo: notificationRepo}
}

// List implements NotificationHandler. Returns the most recent audit events,
// optionally filtered by kind.
func (n *NotificationHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if parsed, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && parsed > 0 && parsed <= 200 {
		limit = parsed
	}

	var kind *notification.Kind
	if kindStr := r.URL.Query().Get("kind"); kindStr != "" {
		k := notification.Kind(kindStr)
		kind = &k
	}

	events, err := n.notificationRepo.List(r.Context(), kind, limit)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, events)
}
