package notification

import (
	"context"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memoryRepository struct {
	mu            sync.Mutex
	notifications []*Notification
}

func (m *memoryRepository) Create(ctx context.Context, n *Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	n.ID = strconv.Itoa(len(m.notifications) + 1)
	m.notifications = append(m.notifications, n)
	return nil
}

func (m *memoryRepository) ListForUser(ctx context.Context, userID string, filter Filter) ([]*Notification, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*Notification
	for _, n := range m.notifications {
		if n.UserID != userID {
			continue
		}
		if filter.UnreadOnly && n.IsRead {
			continue
		}
		out = append(out, n)
	}
	return out, len(out), nil
}

func (m *memoryRepository) MarkRead(ctx context.Context, id, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, n := range m.notifications {
		if n.ID == id && n.UserID == userID {
			n.IsRead = true
			return nil
		}
	}
	return ErrNotFound
}

func TestDispatcherDelivery(t *testing.T) {
	repo := &memoryRepository{}
	d := NewDispatcher(repo, zap.NewNop())

	d.Emit(Event{ReservationID: "r1", RequesterID: "guest", OwnerID: "host", Kind: KindReservationRequested})
	d.Emit(Event{ReservationID: "r1", RequesterID: "guest", OwnerID: "host", Kind: KindReservationConfirmed})
	d.Close()

	t.Run("Request Notifies Owner Only", func(t *testing.T) {
		hostFeed, _, err := repo.ListForUser(context.Background(), "host", Filter{})
		require.NoError(t, err)
		assert.Len(t, hostFeed, 2)
	})

	t.Run("Confirmation Notifies Both Parties", func(t *testing.T) {
		guestFeed, _, err := repo.ListForUser(context.Background(), "guest", Filter{})
		require.NoError(t, err)
		require.Len(t, guestFeed, 1)
		assert.Equal(t, KindReservationConfirmed, guestFeed[0].Kind)
	})
}

func TestDispatcherCloseIsIdempotent(t *testing.T) {
	d := NewDispatcher(&memoryRepository{}, zap.NewNop())
	d.Close()
	d.Close()
}

func TestMarkRead(t *testing.T) {
	repo := &memoryRepository{}
	svc := NewService(repo)

	require.NoError(t, repo.Create(context.Background(), &Notification{UserID: "u1", Kind: KindReservationConfirmed}))

	t.Run("Owner Marks Their Entry", func(t *testing.T) {
		require.NoError(t, svc.MarkRead(context.Background(), "1", "u1"))

		unread, _, err := svc.ListForUser(context.Background(), "u1", Filter{UnreadOnly: true})
		require.NoError(t, err)
		assert.Empty(t, unread)
	})

	t.Run("Cannot Mark Someone Else's Entry", func(t *testing.T) {
		assert.ErrorIs(t, svc.MarkRead(context.Background(), "1", "u2"), ErrNotFound)
	})
}
