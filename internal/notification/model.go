package notification

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("notification not found")

// Kind identifies the reservation lifecycle moment an event describes.
type Kind string

const (
	KindReservationRequested Kind = "reservation_requested"
	KindReservationConfirmed Kind = "reservation_confirmed"
	KindReservationCancelled Kind = "reservation_cancelled"
	KindReservationCompleted Kind = "reservation_completed"
)

// Event is the structured payload emitted by the reservation engine for the
// mail/notification subsystem. Delivery is fire-and-forget: a failed or
// dropped event never affects the reservation that produced it.
type Event struct {
	ReservationID string
	RequesterID   string
	OwnerID       string
	Kind          Kind
}

// Notification is one user-visible feed entry derived from an Event.
type Notification struct {
	ID            string
	UserID        string
	ReservationID string
	Kind          Kind
	IsRead        bool
	CreatedAt     time.Time
}

// Filter defines parameters for listing a user's feed.
type Filter struct {
	UnreadOnly bool
	Page       int
	PageSize   int
}
