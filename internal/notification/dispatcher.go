package notification

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Dispatcher turns reservation events into feed entries on a background
// goroutine. Emit never blocks the caller: when the buffer is full the event
// is dropped with a warning, because notifying is best effort by contract.
type Dispatcher struct {
	repo Repository
	log  *zap.Logger

	events chan Event
	wg     sync.WaitGroup
	once   sync.Once
}

func NewDispatcher(repo Repository, log *zap.Logger) *Dispatcher {
	d := &Dispatcher{
		repo:   repo,
		log:    log.Named("notification_dispatcher"),
		events: make(chan Event, 256),
	}
	d.wg.Add(1)
	go d.run()
	return d
}

// Emit queues an event for delivery without blocking.
func (d *Dispatcher) Emit(e Event) {
	select {
	case d.events <- e:
	default:
		d.log.Warn("notification buffer full, dropping event",
			zap.String("reservation_id", e.ReservationID),
			zap.String("kind", string(e.Kind)))
	}
}

func (d *Dispatcher) run() {
	defer d.wg.Done()
	for e := range d.events {
		d.deliver(e)
	}
}

func (d *Dispatcher) deliver(e Event) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Both parties get a feed entry. The requester already knows they made a
	// request, so the requested kind only notifies the owner.
	recipients := []string{e.OwnerID}
	if e.Kind != KindReservationRequested {
		recipients = append(recipients, e.RequesterID)
	}

	for _, userID := range recipients {
		n := &Notification{
			UserID:        userID,
			ReservationID: e.ReservationID,
			Kind:          e.Kind,
		}
		if err := d.repo.Create(ctx, n); err != nil {
			d.log.Warn("failed to store notification",
				zap.String("user_id", userID),
				zap.String("reservation_id", e.ReservationID),
				zap.Error(err))
		}
	}
}

// Close drains the queue and stops the worker.
func (d *Dispatcher) Close() {
	d.once.Do(func() {
		close(d.events)
	})
	d.wg.Wait()
}
