package http

import (
	"time"

	"github.com/wildpitch/spot-booking-backend/internal/notification"
	"github.com/wildpitch/spot-booking-backend/internal/pkg/request"
)

// ListNotificationsRequest defines query parameters for the feed.
type ListNotificationsRequest struct {
	request.ListParams
	UnreadOnly bool `form:"unread_only"`
}

type NotificationResponse struct {
	ID            string    `json:"id"`
	ReservationID string    `json:"reservation_id"`
	Kind          string    `json:"kind"`
	IsRead        bool      `json:"is_read"`
	CreatedAt     time.Time `json:"created_at"`
}

func NewNotificationResponse(n *notification.Notification) NotificationResponse {
	return NotificationResponse{
		ID:            n.ID,
		ReservationID: n.ReservationID,
		Kind:          string(n.Kind),
		IsRead:        n.IsRead,
		CreatedAt:     n.CreatedAt,
	}
}
